// Package output renders validated records and validation issues as text.
package output

import (
	"bytes"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/schema"
)

// Format selects the serialization of a record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatYAML}

// ParseFormat resolves a format name. Empty selects JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json or yaml)", s)
}

// Lang returns the fenced code block language for the format.
func (f Format) Lang() string {
	return string(f)
}

// Render serializes rec as indented, human-readable text.
func Render(rec registration.Record, f Format) (string, error) {
	switch f {
	case FormatJSON, "":
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding json: %w", err)
		}
		return string(b), nil

	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encoding yaml: %w", err)
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	}
	return "", fmt.Errorf("unknown output format %q", f)
}

// RenderIssues lists one "path: message" line per issue.
func RenderIssues(iss schema.Issues) string {
	var b strings.Builder
	for i, it := range iss {
		if i > 0 {
			b.WriteString("\n")
		}
		if it.Path == "" {
			b.WriteString(it.Message)
			continue
		}
		b.WriteString(it.Path)
		b.WriteString(": ")
		b.WriteString(it.Message)
	}
	return b.String()
}
