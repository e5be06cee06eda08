package markdown

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)
	require.NotNil(t, r)
	require.Equal(t, 80, r.Width())
}

func TestNew_Styles(t *testing.T) {
	for _, style := range []string{"dark", "light", "notty"} {
		t.Run(style, func(t *testing.T) {
			r, err := New(60, style)
			require.NoError(t, err)
			require.Equal(t, 60, r.Width())
		})
	}
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(60, "does-not-exist")
	require.Error(t, err)
}

func TestFence(t *testing.T) {
	require.Equal(t, "```json\n{}\n```\n", Fence("json", "{}\n\n"))
	require.Equal(t, "```\nplain\n```\n", Fence("", "plain"))
}

func TestRenderer_RenderCode_JSON(t *testing.T) {
	r, err := New(80, "notty")
	require.NoError(t, err)

	out, err := r.RenderCode("json", "{\n  \"name\": \"Ana Silva\"\n}")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, `"name"`)
	require.Contains(t, plain, `"Ana Silva"`)
	require.NotContains(t, plain, "```")
}

func TestRenderer_RenderCode_YAML(t *testing.T) {
	r, err := New(80, "dark")
	require.NoError(t, err)

	out, err := r.RenderCode("yaml", "name: Ana Silva\ntechs: []")
	require.NoError(t, err)

	plain := ansi.Strip(out)
	require.Contains(t, plain, "name")
	require.Contains(t, plain, "Ana Silva")
	require.Contains(t, plain, "techs")
}

func TestRenderer_Render_Heading(t *testing.T) {
	r, err := New(80, "")
	require.NoError(t, err)

	result, err := r.Render("# Saved\n\nContent")
	require.NoError(t, err)

	plain := ansi.Strip(result)
	require.Contains(t, plain, "Saved")
	require.Contains(t, plain, "Content")
}
