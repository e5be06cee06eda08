package form

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/zjrosen/signup/internal/techlist"
	"github.com/zjrosen/signup/internal/ui/styles"
)

// field identifies a focusable element of the form.
type field int

const (
	fieldName field = iota
	fieldEmail
	fieldPassword
	fieldTitle
	fieldKnowledge
	fieldAdd
	fieldSave
)

func (f field) String() string {
	switch f {
	case fieldName:
		return "name"
	case fieldEmail:
		return "email"
	case fieldPassword:
		return "password"
	case fieldTitle:
		return "title"
	case fieldKnowledge:
		return "knowledge"
	case fieldAdd:
		return "add"
	case fieldSave:
		return "save"
	}
	return "unknown"
}

// target is a focus position. row is set only for tech row fields.
type target struct {
	field field
	row   techlist.ID
}

func (t target) isButton() bool {
	return t.field == fieldAdd || t.field == fieldSave
}

// techRow holds the inputs bound to one list row.
type techRow struct {
	title     textinput.Model
	knowledge textinput.Model
}

// rowErrors holds the messages shown under one tech row.
type rowErrors struct {
	title     string
	knowledge string
}

const knowledgeInputWidth = 6

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.PlaceholderStyle = ti.PlaceholderStyle.Foreground(styles.TextPlaceholderColor)
	ti.Width = width
	return ti
}

func newPasswordInput(width int) textinput.Model {
	ti := newInput("••••••", width)
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '•'
	return ti
}

func newTechRow(title, knowledge string, titleWidth int) *techRow {
	r := &techRow{
		title:     newInput("technology", titleWidth),
		knowledge: newInput("1-100", knowledgeInputWidth),
	}
	r.knowledge.CharLimit = 8
	r.title.SetValue(title)
	r.knowledge.SetValue(knowledge)
	return r
}

// targets returns every focus position in tab order.
func (m Model) targets() []target {
	out := make([]target, 0, 5+2*m.techs.Len())
	out = append(out,
		target{field: fieldName},
		target{field: fieldEmail},
		target{field: fieldPassword},
	)
	for _, row := range m.techs.Rows() {
		out = append(out,
			target{field: fieldTitle, row: row.ID},
			target{field: fieldKnowledge, row: row.ID},
		)
	}
	return append(out, target{field: fieldAdd}, target{field: fieldSave})
}

// focusIndex returns the position of the focused target in tab order.
func (m Model) focusIndex() int {
	for i, t := range m.targets() {
		if t == m.focus {
			return i
		}
	}
	return 0
}

// input returns the text input behind t, or nil for buttons and gone rows.
func (m *Model) input(t target) *textinput.Model {
	switch t.field {
	case fieldName:
		return &m.name
	case fieldEmail:
		return &m.email
	case fieldPassword:
		return &m.password
	case fieldTitle, fieldKnowledge:
		r, ok := m.rows[t.row]
		if !ok {
			return nil
		}
		if t.field == fieldTitle {
			return &r.title
		}
		return &r.knowledge
	}
	return nil
}

// resizeInputs fits every input to the current layout width.
func (m *Model) resizeInputs() {
	w := m.inputWidth()
	m.name.Width = w
	m.email.Width = w
	m.password.Width = w
	tw := m.titleWidth()
	for _, r := range m.rows {
		r.title.Width = tw
	}
}

// inputWidth is the width of a single-input section's text input.
func (m Model) inputWidth() int {
	return max(m.layoutWidth()-4, 1) // borders and one space padding each side
}

// titleWidth is the width of a tech row's title input.
func (m Model) titleWidth() int {
	// prefix(2) + title + gap(2) + knowledge + gap(2) + remove marker(3) + borders(2) + cursor slack(2)
	return max(m.layoutWidth()-2-2-knowledgeInputWidth-2-3-2-2, 8)
}
