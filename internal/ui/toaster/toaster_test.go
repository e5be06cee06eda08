package toaster

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow(t *testing.T) {
	m := New().Show("Hello", StyleSuccess)

	assert.True(t, m.Visible())
	assert.Equal(t, "Hello", m.Message())
	assert.Contains(t, m.View(), "Hello")
}

func TestHide(t *testing.T) {
	m := New().Show("Hello", StyleSuccess).Hide()

	assert.False(t, m.Visible())
	assert.Empty(t, m.View())
}

func TestShow_ReplacesExisting(t *testing.T) {
	m := New().
		Show("First", StyleSuccess).
		Show("Second", StyleError)

	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Second")
	assert.NotContains(t, m.View(), "First")
}

func TestView_EmptyWhenMessageEmpty(t *testing.T) {
	m := Model{visible: true, message: ""}

	assert.Empty(t, m.View())
}

func TestView_Styles(t *testing.T) {
	tests := []struct {
		style Style
		icon  string
	}{
		{StyleSuccess, "✅"},
		{StyleError, "❌"},
		{StyleInfo, "ℹ️"},
	}
	for _, tt := range tests {
		view := New().Show("msg", tt.style).View()
		assert.Contains(t, view, tt.icon)
		assert.Contains(t, view, "msg")
		assert.Contains(t, view, "╭") // Rounded border corner
	}
}

func TestScheduleDismiss_ReturnsCmd(t *testing.T) {
	m := New().Show("Hello", StyleInfo)
	require.NotNil(t, m.ScheduleDismiss(time.Millisecond))
}

func TestDismiss_CurrentToast(t *testing.T) {
	m := New().Show("Hello", StyleInfo)
	msg := m.ScheduleDismiss(time.Millisecond)()

	dismiss, ok := msg.(DismissMsg)
	require.True(t, ok)
	assert.False(t, m.Dismiss(dismiss).Visible())
}

func TestDismiss_StaleToastIgnored(t *testing.T) {
	m := New().Show("First", StyleInfo)
	stale := m.ScheduleDismiss(time.Millisecond)().(DismissMsg)

	m = m.Show("Second", StyleSuccess)
	m = m.Dismiss(stale)

	assert.True(t, m.Visible())
	assert.Equal(t, "Second", m.Message())
}
