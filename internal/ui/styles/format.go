package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// TruncateString truncates a string to fit within maxWidth, adding ellipsis if needed.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return truncate.String("...", uint(maxWidth))
	}
	return truncate.StringWithTail(s, uint(maxWidth), "...")
}

// FormatRowCount returns the counter shown next to the techs section title.
func FormatRowCount(n int) string {
	switch n {
	case 0:
		return "none"
	case 1:
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
