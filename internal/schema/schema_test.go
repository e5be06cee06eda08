package schema

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath_String(t *testing.T) {
	require.Equal(t, "", Root.String())
	require.Equal(t, "email", Root.Key("email").String())
	require.Equal(t, "techs.0.title", Root.Key("techs").Index(0).Key("title").String())
}

func TestPath_KeyDoesNotAlias(t *testing.T) {
	base := Root.Key("techs")
	a := base.Index(0)
	b := base.Index(1)
	require.Equal(t, "techs.0", a.String())
	require.Equal(t, "techs.1", b.String())
}

func TestString_ChecksStopAtFirstFailure(t *testing.T) {
	s := String().
		NonEmpty("required").
		Email("bad format").
		EndsWith("@example.com", "wrong domain")

	tests := []struct {
		in       string
		wantCode string
		wantMsg  string
	}{
		{in: "", wantCode: CodeRequired, wantMsg: "required"},
		{in: "   ", wantCode: CodeRequired, wantMsg: "required"},
		{in: "bad", wantCode: CodeInvalidFormat, wantMsg: "bad format"},
		{in: "a@other.org", wantCode: CodeCustom, wantMsg: "wrong domain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, iss := s.Parse(Root.Key("email"), tt.in)
			require.Len(t, iss, 1)
			require.Equal(t, "email", iss[0].Path)
			require.Equal(t, tt.wantCode, iss[0].Code)
			require.Equal(t, tt.wantMsg, iss[0].Message)
		})
	}

	out, iss := s.Parse(Root.Key("email"), "a@example.com")
	require.Empty(t, iss)
	require.Equal(t, "a@example.com", out)
}

func TestString_TransformRunsOnlyWhenValid(t *testing.T) {
	calls := 0
	s := String().NonEmpty("required").Transform(func(v string) string {
		calls++
		return strings.ToUpper(v)
	})

	_, iss := s.Parse(Root, "")
	require.Len(t, iss, 1)
	require.Zero(t, calls, "transform must not run on invalid input")

	out, iss := s.Parse(Root, "go")
	require.Empty(t, iss)
	require.Equal(t, "GO", out)
	require.Equal(t, 1, calls)
}

func TestString_TransformsApplyInOrder(t *testing.T) {
	s := String().
		Transform(strings.TrimSpace).
		Transform(func(v string) string { return v + "!" })

	out, iss := s.Parse(Root, "  hi ")
	require.Empty(t, iss)
	require.Equal(t, "hi!", out)
}

func TestString_BuilderIsImmutable(t *testing.T) {
	base := String().NonEmpty("required")
	_ = base.Min(10, "too short")

	_, iss := base.Parse(Root, "abc")
	require.Empty(t, iss, "adding a check to a derived schema must not change the base")
}

func TestString_Min(t *testing.T) {
	s := String().Min(6, "too short")

	_, iss := s.Parse(Root.Key("password"), "12345")
	require.Len(t, iss, 1)
	require.Equal(t, CodeTooShort, iss[0].Code)

	_, iss = s.Parse(Root.Key("password"), "123456")
	require.Empty(t, iss)

	// Counted in characters, not bytes
	_, iss = s.Parse(Root.Key("password"), "ããããã")
	require.Len(t, iss, 1)

	// A combining accent does not add a character
	_, iss = s.Parse(Root.Key("password"), "abcde\u0301")
	require.Len(t, iss, 1)
	_, iss = s.Parse(Root.Key("password"), "abcdé\u0301f")
	require.Empty(t, iss)
}

func TestString_Refine(t *testing.T) {
	s := String().Refine(func(v string) bool { return v != "root" }, "reserved")
	_, iss := s.Parse(Root.Key("user"), "root")
	require.Equal(t, Issues{{Path: "user", Code: CodeCustom, Message: "reserved"}}, iss)
}

func TestNumber_Range(t *testing.T) {
	s := Number().Min(1, "").Max(100, "")

	tests := []struct {
		raw      string
		want     float64
		wantCode string
	}{
		{raw: "1", want: 1},
		{raw: "100", want: 100},
		{raw: " 42 ", want: 42},
		{raw: "12.5", want: 12.5},
		{raw: "0", wantCode: CodeTooSmall},
		{raw: "-3", wantCode: CodeTooSmall},
		{raw: "150", wantCode: CodeTooBig},
		{raw: "", wantCode: CodeTooSmall},
		{raw: "abc", wantCode: CodeTooSmall},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.raw), func(t *testing.T) {
			got, iss := s.Parse(Root.Key("knowledge"), tt.raw)
			if tt.wantCode == "" {
				require.Empty(t, iss)
				require.Equal(t, tt.want, got)
				return
			}
			require.Len(t, iss, 1)
			require.Equal(t, tt.wantCode, iss[0].Code)
			require.Equal(t, "knowledge", iss[0].Path)
		})
	}
}

func TestNumber_DefaultMessages(t *testing.T) {
	s := Number().Min(1, "").Max(100, "")

	_, iss := s.Parse(Root, "0")
	require.Equal(t, "Number must be greater than or equal to 1", iss[0].Message)

	_, iss = s.Parse(Root, "101")
	require.Equal(t, "Number must be less than or equal to 100", iss[0].Message)
}

func TestNumber_CustomMessage(t *testing.T) {
	_, iss := Number().Max(5, "at most five").Parse(Root, "6")
	require.Equal(t, "at most five", iss[0].Message)
}

func TestCoerce(t *testing.T) {
	require.Equal(t, 7.0, Coerce("7"))
	require.True(t, math.IsNaN(Coerce("")))
	require.True(t, math.IsNaN(Coerce("seven")))
}

func TestArray_CollectsAllElements(t *testing.T) {
	s := Array[string, string](String().NonEmpty("required"))

	_, iss := s.Parse(Root.Key("tags"), []string{"", "ok", ""})
	require.Equal(t, Issues{
		{Path: "tags.0", Code: CodeRequired, Message: "required"},
		{Path: "tags.2", Code: CodeRequired, Message: "required"},
	}, iss)
}

func TestArray_EmptyIsValid(t *testing.T) {
	s := Array[string, string](String().NonEmpty("required"))

	out, iss := s.Parse(Root.Key("tags"), nil)
	require.Empty(t, iss)
	require.NotNil(t, out)
	require.Empty(t, out)
}

type pair struct {
	A string
	B string
}

func pairSchema() Schema[pair, pair] {
	str := String().NonEmpty("required")
	return Object(func(p Path, in pair, iss *Issues) pair {
		return pair{
			A: Field(iss, p.Key("a"), str.Parse, in.A),
			B: Field(iss, p.Key("b"), str.Parse, in.B),
		}
	})
}

func TestObject_NoShortCircuit(t *testing.T) {
	_, err := Validate(pairSchema(), pair{})
	require.Error(t, err)

	iss, ok := AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 2)
	require.Equal(t, "a", iss[0].Path)
	require.Equal(t, "b", iss[1].Path)
}

func TestObject_PartialValidityYieldsZero(t *testing.T) {
	out, iss := pairSchema().Parse(Root, pair{A: "x"})
	require.Len(t, iss, 1)
	require.Equal(t, pair{}, out)
}

func TestValidate_Success(t *testing.T) {
	out, err := Validate(pairSchema(), pair{A: "x", B: "y"})
	require.NoError(t, err)
	require.Equal(t, pair{A: "x", B: "y"}, out)
}

func TestIssues_Error(t *testing.T) {
	require.Equal(t, "", Issues{}.Error())

	iss := Issues{
		{Path: "a", Message: "one"},
		{Path: "", Message: "two"},
		{Path: "c", Message: "three"},
		{Path: "d", Message: "four"},
	}
	require.Equal(t, "a: one; two; c: three; ... (total 4)", iss.Error())
}

func TestIssues_AtAndMessages(t *testing.T) {
	iss := Issues{
		{Path: "email", Message: "first"},
		{Path: "email", Message: "second"},
		{Path: "name", Message: "name is required"},
	}
	require.Len(t, iss.At("email"), 2)
	require.Empty(t, iss.At("password"))
	require.Equal(t, map[string]string{
		"email": "first",
		"name":  "name is required",
	}, iss.Messages())
}

func TestAsIssues(t *testing.T) {
	_, ok := AsIssues(nil)
	require.False(t, ok)

	_, ok = AsIssues(errors.New("plain"))
	require.False(t, ok)

	wrapped := fmt.Errorf("validating: %w", Issues{{Path: "x", Message: "bad"}})
	iss, ok := AsIssues(wrapped)
	require.True(t, ok)
	require.Equal(t, "x", iss[0].Path)
}
