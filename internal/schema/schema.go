// Package schema provides small composable validators that normalize raw
// input and report every violated constraint with the dotted path of the
// offending field.
//
// A schema is anything with a Parse(Path, In) (Out, Issues) method. Leaf
// schemas (String, Number) run their checks in order and stop at the first
// failure of that value; Object and Array run all of their children and merge
// the issues, so one bad field never hides another.
//
//	user := schema.Object(func(p schema.Path, in Input, iss *schema.Issues) Output {
//	    return Output{
//	        Name:  schema.Field(iss, p.Key("name"), nameSchema.Parse, in.Name),
//	        Techs: schema.Field(iss, p.Key("techs"), schema.Array(techSchema).Parse, in.Techs),
//	    }
//	})
//	out, err := schema.Validate(user, in)
package schema

import (
	"strconv"
	"strings"
)

// Path is a field location inside a validated value.
type Path []string

// Root is the path of the value passed to Validate.
var Root Path

// Key returns the path of a named child.
func (p Path) Key(name string) Path {
	return append(p[:len(p):len(p)], name)
}

// Index returns the path of a sequence element.
func (p Path) Index(i int) Path {
	return p.Key(strconv.Itoa(i))
}

// String renders the path dot-separated ("techs.0.title").
func (p Path) String() string {
	return strings.Join(p, ".")
}

// Schema validates an In value and produces its normalized Out form.
// Out is only meaningful when the returned Issues are empty.
type Schema[In, Out any] interface {
	Parse(path Path, v In) (Out, Issues)
}

// Func adapts a function to the Schema interface.
type Func[In, Out any] func(path Path, v In) (Out, Issues)

// Parse calls f.
func (f Func[In, Out]) Parse(path Path, v In) (Out, Issues) {
	return f(path, v)
}

// Object builds a record-level schema. build receives a collector and is
// expected to run every field through Field; if any field reported an issue
// the built value is discarded.
func Object[In, Out any](build func(path Path, v In, iss *Issues) Out) Schema[In, Out] {
	return Func[In, Out](func(path Path, v In) (Out, Issues) {
		var iss Issues
		out := build(path, v, &iss)
		if len(iss) > 0 {
			var zero Out
			return zero, iss
		}
		return out, nil
	})
}

// Field parses v at path with parse (usually a schema's Parse method value)
// and appends any issues to iss.
func Field[In, Out any](iss *Issues, path Path, parse func(Path, In) (Out, Issues), v In) Out {
	out, fieldIssues := parse(path, v)
	*iss = append(*iss, fieldIssues...)
	return out
}

// Validate parses v from the root path. The error, when non-nil, is Issues.
func Validate[In, Out any](s Schema[In, Out], v In) (Out, error) {
	out, iss := s.Parse(Root, v)
	if len(iss) > 0 {
		var zero Out
		return zero, iss
	}
	return out, nil
}
