package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes.
const (
	CodeRequired      = "required"
	CodeInvalidFormat = "invalid_format"
	CodeTooShort      = "too_short"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodeCustom        = "custom"
)

// Issue is a single violated constraint.
type Issue struct {
	Path    string // Dotted path, e.g. "techs.0.title". Empty for the root value.
	Code    string // One of the codes above.
	Message string // User-facing message.
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path == "" {
			b.WriteString(it.Message)
			continue
		}
		fmt.Fprintf(b, "%s: %s", it.Path, it.Message)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// At returns the issues reported for exactly the given path.
func (iss Issues) At(path string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == path {
			out = append(out, it)
		}
	}
	return out
}

// Messages returns the first message for each path, keyed by path.
func (iss Issues) Messages() map[string]string {
	out := make(map[string]string, len(iss))
	for _, it := range iss {
		if _, seen := out[it.Path]; !seen {
			out[it.Path] = it.Message
		}
	}
	return out
}

// AsIssues extracts Issues from an error using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
