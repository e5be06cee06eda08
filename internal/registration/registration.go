// Package registration defines the "new user" record and the schema that
// turns raw form input into it.
package registration

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zjrosen/signup/internal/schema"
)

// Default constraint values.
const (
	DefaultEmailDomain       = "@rocketseat.com.br"
	DefaultMinPasswordLength = 6
	DefaultKnowledgeMin      = 1
	DefaultKnowledgeMax      = 100
)

// User-facing messages.
const (
	MsgNameRequired  = "name is required"
	MsgEmailRequired = "email is required"
	MsgEmailFormat   = "invalid email format"
	MsgEmailDomain   = "email must be from the expected organization"
	MsgTitleRequired = "title is required"
)

// TechInput is one technology row as typed. Knowledge is kept as text until
// the schema coerces it.
type TechInput struct {
	Title     string `json:"title" yaml:"title" mapstructure:"title"`
	Knowledge string `json:"knowledge" yaml:"knowledge" mapstructure:"knowledge"`
}

// Input is the raw form state.
type Input struct {
	Name     string      `json:"name" yaml:"name" mapstructure:"name"`
	Email    string      `json:"email" yaml:"email" mapstructure:"email"`
	Password string      `json:"password" yaml:"password" mapstructure:"password"`
	Techs    []TechInput `json:"techs" yaml:"techs" mapstructure:"techs"`
}

// TechEntry is a validated technology.
type TechEntry struct {
	Title     string  `json:"title" yaml:"title"`
	Knowledge float64 `json:"knowledge" yaml:"knowledge"`
}

// Record is a validated, normalized registration.
type Record struct {
	Name     string      `json:"name" yaml:"name"`
	Email    string      `json:"email" yaml:"email"`
	Password string      `json:"password" yaml:"password"`
	Techs    []TechEntry `json:"techs" yaml:"techs"`
}

// Input converts the record back to raw form state, e.g. to validate it again.
func (r Record) Input() Input {
	in := Input{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Techs:    make([]TechInput, len(r.Techs)),
	}
	for i, t := range r.Techs {
		in.Techs[i] = TechInput{
			Title:     t.Title,
			Knowledge: strconv.FormatFloat(t.Knowledge, 'f', -1, 64),
		}
	}
	return in
}

// Options tunes the constraints of the schema.
type Options struct {
	EmailDomain       string
	MinPasswordLength int
	KnowledgeMin      float64
	KnowledgeMax      float64
}

// DefaultOptions returns the stock constraints.
func DefaultOptions() Options {
	return Options{
		EmailDomain:       DefaultEmailDomain,
		MinPasswordLength: DefaultMinPasswordLength,
		KnowledgeMin:      DefaultKnowledgeMin,
		KnowledgeMax:      DefaultKnowledgeMax,
	}
}

// PasswordMessage is the message reported for a short password.
func PasswordMessage(minLength int) string {
	return fmt.Sprintf("password needs at least %d characters", minLength)
}

// NewSchema builds the registration schema for opts.
func NewSchema(opts Options) schema.Schema[Input, Record] {
	name := schema.String().
		NonEmpty(MsgNameRequired).
		Transform(TitleCase)

	email := schema.String().
		NonEmpty(MsgEmailRequired).
		Email(MsgEmailFormat).
		EndsWith(opts.EmailDomain, MsgEmailDomain)

	password := schema.String().
		Min(opts.MinPasswordLength, PasswordMessage(opts.MinPasswordLength))

	title := schema.String().NonEmpty(MsgTitleRequired)
	knowledge := schema.Number().
		Min(opts.KnowledgeMin, "").
		Max(opts.KnowledgeMax, "")

	tech := schema.Object(func(p schema.Path, in TechInput, iss *schema.Issues) TechEntry {
		return TechEntry{
			Title:     schema.Field(iss, p.Key("title"), title.Parse, in.Title),
			Knowledge: schema.Field(iss, p.Key("knowledge"), knowledge.Parse, in.Knowledge),
		}
	})
	techs := schema.Array(tech)

	return schema.Object(func(p schema.Path, in Input, iss *schema.Issues) Record {
		return Record{
			Name:     schema.Field(iss, p.Key("name"), name.Parse, in.Name),
			Email:    schema.Field(iss, p.Key("email"), email.Parse, in.Email),
			Password: schema.Field(iss, p.Key("password"), password.Parse, in.Password),
			Techs:    schema.Field(iss, p.Key("techs"), techs.Parse, in.Techs),
		}
	})
}

var defaultSchema = NewSchema(DefaultOptions())

// Validate checks in against the default schema. On failure the error is a
// schema.Issues holding every violated constraint.
func Validate(in Input) (Record, error) {
	return schema.Validate(defaultSchema, in)
}

// TitleCase trims s, collapses runs of whitespace and upper-cases the first
// letter of every word, leaving the rest of each word untouched.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
