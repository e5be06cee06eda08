package schema

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type numberCheck struct {
	code    string
	message string
	ok      func(float64) bool
}

// NumberSchema coerces raw text to a float64 and range-checks it.
type NumberSchema struct {
	checks []numberCheck
}

// Number returns a schema that accepts any numeric text.
func Number() *NumberSchema {
	return &NumberSchema{}
}

func (s *NumberSchema) with(c numberCheck) *NumberSchema {
	return &NumberSchema{checks: append(append([]numberCheck(nil), s.checks...), c)}
}

// Min rejects values below n, and anything that is not a number. An empty
// message selects the default one.
func (s *NumberSchema) Min(n float64, message string) *NumberSchema {
	if message == "" {
		message = fmt.Sprintf("Number must be greater than or equal to %s", formatNumber(n))
	}
	return s.with(numberCheck{
		code:    CodeTooSmall,
		message: message,
		ok:      func(v float64) bool { return !math.IsNaN(v) && v >= n },
	})
}

// Max rejects values above n, and anything that is not a number. An empty
// message selects the default one.
func (s *NumberSchema) Max(n float64, message string) *NumberSchema {
	if message == "" {
		message = fmt.Sprintf("Number must be less than or equal to %s", formatNumber(n))
	}
	return s.with(numberCheck{
		code:    CodeTooBig,
		message: message,
		ok:      func(v float64) bool { return !math.IsNaN(v) && v <= n },
	})
}

// Parse implements Schema.
func (s *NumberSchema) Parse(path Path, raw string) (float64, Issues) {
	v := Coerce(raw)
	for _, c := range s.checks {
		if !c.ok(v) {
			return 0, Issues{{Path: path.String(), Code: c.code, Message: c.message}}
		}
	}
	return v, nil
}

// Coerce converts typed text to a number. Empty or non-numeric text becomes
// NaN so that range checks reject it.
func Coerce(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
