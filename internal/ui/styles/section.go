package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Border characters (rounded) used by RenderFormSection.
const (
	borderTopLeft     = "╭"
	borderTopRight    = "╮"
	borderBottomLeft  = "╰"
	borderBottomRight = "╯"
	borderHorizontal  = "─"
	borderVertical    = "│"
)

// SectionState selects the border color of a form section.
type SectionState int

const (
	SectionBlurred SectionState = iota
	SectionFocused
	SectionInvalid
)

func (s SectionState) color() lipgloss.TerminalColor {
	switch s {
	case SectionFocused:
		return BorderHighlightFocusColor
	case SectionInvalid:
		return StatusErrorColor
	default:
		return BorderDefaultColor
	}
}

// RenderFormSection renders a bordered section with an optional title and hint.
// The border and title take the color of state.
func RenderFormSection(content []string, title, hint string, width int, state SectionState) string {
	color := state.color()
	borderStyle := lipgloss.NewStyle().Foreground(color)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(color)

	innerWidth := max(width-2, 1) // Account for left/right borders

	// Build top border with inline title: ╭─ Title (hint) ──────╮
	var topBorder string
	if title == "" {
		topBorder = borderStyle.Render(borderTopLeft + strings.Repeat(borderHorizontal, innerWidth) + borderTopRight)
	} else {
		// Title and hint must fit between "─ " and " ╮"; the hint gives way first.
		maxTitle := max(innerWidth-3, 1)
		title = TruncateString(title, maxTitle)
		if hint != "" {
			if room := maxTitle - lipgloss.Width(title) - 3; room >= 4 {
				hint = TruncateString(hint, room)
			} else {
				hint = ""
			}
		}

		titleLen := lipgloss.Width(title)
		if hint != "" {
			titleLen = lipgloss.Width(title + " (" + hint + ")")
		}
		dashesAfter := max(innerWidth-titleLen-3, 0) // -3 for "─ " before and " " after title

		topBorder = borderStyle.Render(borderTopLeft+borderHorizontal+" ") + titleStyle.Render(title)
		if hint != "" {
			topBorder += " " + HintStyle.Render("("+hint+")")
		}
		topBorder += borderStyle.Render(" " + strings.Repeat(borderHorizontal, dashesAfter) + borderTopRight)
	}

	lines := make([]string, 0, len(content)+2)
	lines = append(lines, topBorder)
	for _, row := range content {
		padding := ""
		if w := lipgloss.Width(row); w < innerWidth {
			padding = strings.Repeat(" ", innerWidth-w)
		}
		lines = append(lines, borderStyle.Render(borderVertical)+row+padding+borderStyle.Render(borderVertical))
	}
	lines = append(lines, borderStyle.Render(borderBottomLeft+strings.Repeat(borderHorizontal, innerWidth)+borderBottomRight))

	return strings.Join(lines, "\n")
}
