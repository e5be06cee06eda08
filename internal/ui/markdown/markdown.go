// Package markdown renders the submitted record as a styled code block.
package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	},
	"code_block": {
		"margin": 0
	}
}`

// Renderer wraps glamour with signup's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and style.
// style is "dark", "light" or "notty" and defaults to "dark".
// A fixed style avoids the terminal background query WithAutoStyle makes,
// whose reply would otherwise leak into the input stream.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating markdown renderer: %w", err)
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderCode renders body as a fenced code block highlighted for lang.
func (r *Renderer) RenderCode(lang, body string) (string, error) {
	out, err := r.Render(Fence(lang, body))
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}

// Fence wraps body in a markdown code fence.
func Fence(lang, body string) string {
	return "```" + lang + "\n" + strings.TrimRight(body, "\n") + "\n```\n"
}
