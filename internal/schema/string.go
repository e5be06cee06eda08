package schema

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rivo/uniseg"
)

var validate = validator.New()

type stringCheck struct {
	code    string
	message string
	ok      func(string) bool
}

// StringSchema validates and transforms a string. Builder methods return a
// new schema and leave the receiver untouched.
type StringSchema struct {
	checks     []stringCheck
	transforms []func(string) string
}

// String returns an empty string schema that accepts any value.
func String() *StringSchema {
	return &StringSchema{}
}

func (s *StringSchema) clone() *StringSchema {
	return &StringSchema{
		checks:     append([]stringCheck(nil), s.checks...),
		transforms: append([]func(string) string(nil), s.transforms...),
	}
}

func (s *StringSchema) with(c stringCheck) *StringSchema {
	n := s.clone()
	n.checks = append(n.checks, c)
	return n
}

// NonEmpty rejects values that are empty after trimming whitespace.
func (s *StringSchema) NonEmpty(message string) *StringSchema {
	return s.with(stringCheck{
		code:    CodeRequired,
		message: message,
		ok:      func(v string) bool { return strings.TrimSpace(v) != "" },
	})
}

// Email rejects values that are not a syntactically valid address.
func (s *StringSchema) Email(message string) *StringSchema {
	return s.with(stringCheck{
		code:    CodeInvalidFormat,
		message: message,
		ok:      func(v string) bool { return validate.Var(v, "email") == nil },
	})
}

// EndsWith rejects values without the given suffix.
func (s *StringSchema) EndsWith(suffix, message string) *StringSchema {
	return s.with(stringCheck{
		code:    CodeCustom,
		message: message,
		ok:      func(v string) bool { return strings.HasSuffix(v, suffix) },
	})
}

// Min rejects values shorter than n characters, counted as grapheme clusters.
func (s *StringSchema) Min(n int, message string) *StringSchema {
	return s.with(stringCheck{
		code:    CodeTooShort,
		message: message,
		ok:      func(v string) bool { return uniseg.GraphemeClusterCount(v) >= n },
	})
}

// Refine adds a custom predicate.
func (s *StringSchema) Refine(pred func(string) bool, message string) *StringSchema {
	return s.with(stringCheck{code: CodeCustom, message: message, ok: pred})
}

// Transform appends a normalization step. Transforms run in order and only
// once every check has passed.
func (s *StringSchema) Transform(fn func(string) string) *StringSchema {
	n := s.clone()
	n.transforms = append(n.transforms, fn)
	return n
}

// Parse implements Schema.
func (s *StringSchema) Parse(path Path, v string) (string, Issues) {
	for _, c := range s.checks {
		if !c.ok(v) {
			return "", Issues{{Path: path.String(), Code: c.code, Message: c.message}}
		}
	}
	for _, fn := range s.transforms {
		v = fn(v)
	}
	return v, nil
}
