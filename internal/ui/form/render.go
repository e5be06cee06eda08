package form

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/signup/internal/techlist"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.layoutWidth()
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Create account"))
	b.WriteString("\n\n")

	b.WriteString(m.renderInputSection(fieldName, "Name", "", m.name, width))
	b.WriteString(m.renderInputSection(fieldEmail, "Email", m.opts.Schema.EmailDomain, m.email, width))
	b.WriteString(m.renderInputSection(fieldPassword, "Password",
		fmt.Sprintf("min %d chars", m.opts.Schema.MinPasswordLength), m.password, width))
	b.WriteString(m.renderTechs(width))
	b.WriteString("\n")

	b.WriteString(m.renderButtons())
	b.WriteString("\n")

	if toast := m.toast.View(); toast != "" {
		b.WriteString("\n")
		b.WriteString(toast)
		b.WriteString("\n")
	}

	if m.result != "" {
		b.WriteString("\n")
		b.WriteString(styles.SuccessStyle.Render("Saved"))
		b.WriteString(styles.HintStyle.Render(" (" + string(m.format) + ")"))
		b.WriteString("\n")
		b.WriteString(m.result)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return zone.Scan(b.String())
}

// renderInputSection renders one text input in a bordered section with its
// error message underneath.
func (m Model) renderInputSection(f field, title, hint string, in textinput.Model, width int) string {
	errMsg := m.fieldErrs[f]
	state := m.sectionState(m.focus.field == f, errMsg != "")

	section := styles.RenderFormSection([]string{" " + in.View()}, title, hint, width, state)
	out := zone.Mark(m.zoneID(target{field: f}), section) + "\n"
	if errMsg != "" {
		out += renderError(errMsg, width, "  ")
	}
	return out
}

// renderTechs renders the tech rows inside one section.
func (m Model) renderTechs(width int) string {
	rows := m.techs.Rows()
	focused := m.focus.row != ""
	invalid := len(m.rowErrs) > 0

	var lines []string
	if len(rows) == 0 {
		lines = append(lines, styles.HintStyle.Render(" No technologies yet. Press ctrl+a to add one."))
	}
	for _, row := range rows {
		lines = append(lines, m.renderTechRow(row, width)...)
	}

	title := "Technologies"
	hint := styles.FormatRowCount(len(rows))
	return styles.RenderFormSection(lines, title, hint, width, m.sectionState(focused, invalid)) + "\n"
}

// renderTechRow renders the inputs of one row followed by its errors.
func (m Model) renderTechRow(row techlist.Row, width int) []string {
	r, ok := m.rows[row.ID]
	if !ok {
		return nil
	}

	prefix := "  "
	if m.focus.row == row.ID {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	title := zone.Mark(m.zoneID(target{field: fieldTitle, row: row.ID}), r.title.View())
	knowledge := zone.Mark(m.zoneID(target{field: fieldKnowledge, row: row.ID}), r.knowledge.View())
	remove := zone.Mark(m.removeZoneID(row.ID), styles.FieldErrorStyle.Render("[x]"))

	lines := []string{prefix + title + "  " + knowledge + "  " + remove}

	errs := m.rowErrs[row.ID]
	inner := max(width-2, 1)
	for _, msg := range []string{errs.title, errs.knowledge} {
		if msg == "" {
			continue
		}
		lines = append(lines, strings.Split(strings.TrimRight(renderError(msg, inner, "    "), "\n"), "\n")...)
	}
	return lines
}

// renderButtons renders the add and save buttons.
func (m Model) renderButtons() string {
	addStyle := styles.SecondaryButtonStyle
	if m.focus.field == fieldAdd {
		addStyle = styles.SecondaryButtonFocusedStyle
	}
	saveStyle := styles.PrimaryButtonStyle
	if m.focus.field == fieldSave {
		saveStyle = styles.PrimaryButtonFocusedStyle
	}

	add := zone.Mark(m.zoneID(target{field: fieldAdd}), addStyle.Render("Add technology"))
	save := zone.Mark(m.zoneID(target{field: fieldSave}), saveStyle.Render("Save"))
	return lipgloss.JoinHorizontal(lipgloss.Top, " ", add, "  ", save)
}

func (m Model) sectionState(focused, invalid bool) styles.SectionState {
	switch {
	case invalid:
		return styles.SectionInvalid
	case focused:
		return styles.SectionFocused
	}
	return styles.SectionBlurred
}

// renderError wraps msg to width and styles each line.
func renderError(msg string, width int, indent string) string {
	wrapped := wordwrap.String(msg, max(width-len(indent), 10))
	var b strings.Builder
	for _, line := range strings.Split(wrapped, "\n") {
		b.WriteString(indent)
		b.WriteString(styles.FieldErrorStyle.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
