// Package toaster provides a short-lived notice shown under the form.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/signup/internal/ui/styles"
)

// Style determines the visual appearance of the toast.
type Style int

const (
	// StyleSuccess shows ✅ with green border.
	StyleSuccess Style = iota
	// StyleError shows ❌ with red border.
	StyleError
	// StyleInfo shows ℹ️ with blue border for informational messages.
	StyleInfo
)

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	seq     int
}

// New creates a new toaster model.
func New() Model {
	return Model{}
}

// Show displays a toast with the given message and style.
// Each call starts a new toast; dismissals scheduled for earlier toasts
// no longer apply.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = true
	m.seq++
	return m
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Visible returns whether the toast is currently showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// View renders the toast box.
func (m Model) View() string {
	if !m.visible || m.message == "" {
		return ""
	}

	style := lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder())

	var content string
	switch m.style {
	case StyleError:
		style = style.BorderForeground(styles.StatusErrorColor)
		content = "❌ " + m.message
	case StyleInfo:
		style = style.BorderForeground(styles.BorderHighlightFocusColor)
		content = "ℹ️ " + m.message
	default: // StyleSuccess
		style = style.BorderForeground(styles.StatusSuccessColor)
		content = "✅ " + m.message
	}

	return style.Render(content)
}

// DismissMsg signals that the toast should be dismissed.
type DismissMsg struct {
	seq int
}

// ScheduleDismiss returns a command that dismisses the current toast after d.
func (m Model) ScheduleDismiss(d time.Duration) tea.Cmd {
	seq := m.seq
	return tea.Tick(d, func(_ time.Time) tea.Msg {
		return DismissMsg{seq: seq}
	})
}

// Dismiss hides the toast if msg was scheduled for it.
func (m Model) Dismiss(msg DismissMsg) Model {
	if msg.seq != m.seq {
		return m
	}
	return m.Hide()
}
