// Package form implements the interactive registration form.
//
// The form binds text inputs to the name, email and password fields and to
// the rows of a techlist.List. Tech row inputs are keyed by the row's stable
// ID, so removing a row never moves typed text between rows. Submitting runs
// the whole input through the registration schema: a valid input is rendered
// in the configured output format, an invalid one puts each message under
// the field it belongs to.
package form

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/signup/internal/config"
	"github.com/zjrosen/signup/internal/keys"
	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/output"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/schema"
	"github.com/zjrosen/signup/internal/techlist"
	"github.com/zjrosen/signup/internal/ui/markdown"
	"github.com/zjrosen/signup/internal/ui/toaster"
)

const (
	defaultWidth = 60
	minWidth     = 40
	toastTimeout = 3 * time.Second
)

// Options configures a form.
type Options struct {
	Schema        registration.Options
	Format        output.Format
	Width         int    // Layout width in cells, defaults to 60
	MarkdownStyle string // glamour style for the output pane
	// ConfigPath receives the output format when it is toggled.
	// Empty disables persistence.
	ConfigPath  string
	Prefill     registration.Input
	ListOptions []techlist.Option
}

// OptionsFromConfig builds form options from the loaded configuration.
func OptionsFromConfig(cfg config.Config, configPath string) (Options, error) {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Schema:        cfg.Form.Options(),
		Format:        format,
		Width:         cfg.UI.Width,
		MarkdownStyle: cfg.UI.MarkdownStyle,
		ConfigPath:    configPath,
	}, nil
}

// SubmittedMsg is sent after every submit, valid or not.
type SubmittedMsg struct {
	Input  registration.Input
	Record registration.Record // Zero when Issues is non-empty
	Issues schema.Issues
}

// OK reports whether the submit produced a record.
func (m SubmittedMsg) OK() bool {
	return len(m.Issues) == 0
}

// Model is the form state. It implements tea.Model.
type Model struct {
	opts   Options
	schema schema.Schema[registration.Input, registration.Record]
	keys   keys.FormKeyMap
	help   help.Model
	zones  string // bubblezone ID prefix

	name     textinput.Model
	email    textinput.Model
	password textinput.Model
	techs    *techlist.List
	rows     map[techlist.ID]*techRow

	focus target

	// Validation state. Errors are re-derived on every edit once the form
	// has been submitted.
	submitted bool
	fieldErrs map[field]string
	rowErrs   map[techlist.ID]rowErrors

	format output.Format
	record *registration.Record
	output string // serialized record
	result string // output as displayed
	md     *markdown.Renderer

	toast toaster.Model

	width, height int
	quitting      bool
}

// New creates a form. The name field has focus.
func New(opts Options) Model {
	if opts.Width == 0 {
		opts.Width = defaultWidth
	}
	if opts.Format == "" {
		opts.Format = output.FormatJSON
	}

	m := Model{
		opts:      opts,
		schema:    registration.NewSchema(opts.Schema),
		keys:      keys.Form,
		help:      help.New(),
		zones:     zone.NewPrefix(),
		format:    opts.Format,
		toast:     toaster.New(),
		rows:      make(map[techlist.ID]*techRow),
		fieldErrs: make(map[field]string),
		rowErrs:   make(map[techlist.ID]rowErrors),
	}

	w := m.inputWidth()
	m.name = newInput("Your name", w)
	m.email = newInput("you"+opts.Schema.EmailDomain, w)
	m.password = newPasswordInput(w)

	m.name.SetValue(opts.Prefill.Name)
	m.email.SetValue(opts.Prefill.Email)
	m.password.SetValue(opts.Prefill.Password)

	m.techs = techlist.FromInputs(opts.Prefill.Techs, opts.ListOptions...)
	for _, row := range m.techs.Rows() {
		m.rows[row.ID] = newTechRow(row.Title, row.Knowledge, m.titleWidth())
	}

	md, err := markdown.New(m.layoutWidth(), opts.MarkdownStyle)
	if err != nil {
		log.Warn(log.CatUI, "Markdown renderer unavailable, using plain output", "error", err)
	} else {
		m.md = md
	}

	m.focus = target{field: fieldName}
	m.name.Focus()

	log.Debug(log.CatForm, "Form created", "techs", m.techs.Len(), "format", m.format)
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeInputs()
		m.resizeRenderer()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil

	case toaster.DismissMsg:
		m.toast = m.toast.Dismiss(msg)
		return m, nil
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		log.Debug(log.CatForm, "Quit requested")
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		return m.submit()

	case key.Matches(msg, m.keys.AddTech):
		return m.addTech()

	case key.Matches(msg, m.keys.RemoveTech):
		if m.focus.row == "" {
			return m, nil
		}
		return m.removeTech(m.focus.row)

	case key.Matches(msg, m.keys.Reset):
		return m.reset()

	case key.Matches(msg, m.keys.ToggleFormat):
		return m.toggleFormat()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Next):
		return m.moveFocus(1)

	case key.Matches(msg, m.keys.Prev):
		return m.moveFocus(-1)

	case key.Matches(msg, m.keys.Enter):
		return m.handleEnter()
	}

	return m.updateFocusedInput(msg)
}

// handleEnter presses the focused button or advances from a text input.
func (m Model) handleEnter() (Model, tea.Cmd) {
	switch m.focus.field {
	case fieldAdd:
		return m.addTech()
	case fieldSave:
		return m.submit()
	}
	return m.moveFocus(1)
}

// updateFocusedInput forwards msg to the focused text input and writes the
// new value back into the form state.
func (m Model) updateFocusedInput(msg tea.Msg) (Model, tea.Cmd) {
	in := m.input(m.focus)
	if in == nil {
		return m, nil
	}

	before := in.Value()
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)

	if v := in.Value(); v != before {
		switch m.focus.field {
		case fieldTitle:
			m.techs.SetTitle(m.focus.row, v)
		case fieldKnowledge:
			m.techs.SetKnowledge(m.focus.row, v)
		}
		if m.submitted {
			m.revalidate()
		}
	}
	return m, cmd
}

// setFocus moves focus to t, blurring the previous input.
func (m Model) setFocus(t target) (Model, tea.Cmd) {
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}
	m.focus = t
	if in := m.input(t); in != nil {
		return m, in.Focus()
	}
	return m, nil
}

// moveFocus moves focus delta positions through the tab order, wrapping.
func (m Model) moveFocus(delta int) (Model, tea.Cmd) {
	targets := m.targets()
	n := len(targets)
	i := ((m.focusIndex()+delta)%n + n) % n
	return m.setFocus(targets[i])
}

// addTech appends an empty row and focuses its title.
func (m Model) addTech() (Model, tea.Cmd) {
	id := m.techs.Append()
	m.rows[id] = newTechRow("", "", m.titleWidth())
	log.Info(log.CatForm, "Tech row added", "id", id, "rows", m.techs.Len())
	if m.submitted {
		m.revalidate()
	}
	return m.setFocus(target{field: fieldTitle, row: id})
}

// removeTech removes the row with the given ID. When the row had focus,
// focus moves to the same field of the row now at its index, or the
// previous row, or the add button once the list is empty.
func (m Model) removeTech(id techlist.ID) (Model, tea.Cmd) {
	idx := m.techs.Index(id)
	if idx < 0 {
		return m, nil
	}
	hadFocus := m.focus.row == id
	keep := m.focus.field
	if hadFocus {
		if in := m.input(m.focus); in != nil {
			in.Blur()
		}
	}

	m.techs.Remove(id)
	delete(m.rows, id)
	delete(m.rowErrs, id)
	log.Info(log.CatForm, "Tech row removed", "id", id, "index", idx, "rows", m.techs.Len())

	if m.submitted {
		m.revalidate()
	}
	if !hadFocus {
		return m, nil
	}

	rows := m.techs.Rows()
	if len(rows) == 0 {
		m.focus = target{field: fieldAdd}
		return m, nil
	}
	next := rows[min(idx, len(rows)-1)]
	m.focus = target{field: keep, row: next.ID}
	return m, m.input(m.focus).Focus()
}

// reset returns the form to an empty state.
func (m Model) reset() (Model, tea.Cmd) {
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}
	m.name.Reset()
	m.email.Reset()
	m.password.Reset()
	m.techs.Clear()
	m.rows = make(map[techlist.ID]*techRow)
	m.clearResult()
	m.submitted = false
	m.fieldErrs = make(map[field]string)
	m.rowErrs = make(map[techlist.ID]rowErrors)
	m.focus = target{field: fieldName}
	log.Info(log.CatForm, "Form reset")
	return m, m.name.Focus()
}

// Input returns the current form values as schema input.
func (m Model) Input() registration.Input {
	return registration.Input{
		Name:     m.name.Value(),
		Email:    m.email.Value(),
		Password: m.password.Value(),
		Techs:    m.techs.Inputs(),
	}
}

// submit validates the whole input at once.
func (m Model) submit() (Model, tea.Cmd) {
	in := m.Input()
	rec, err := schema.Validate(m.schema, in)
	m.submitted = true

	result := SubmittedMsg{Input: in}
	if err != nil {
		iss, _ := schema.AsIssues(err)
		m.applyIssues(iss)
		m.clearResult()
		result.Issues = iss
		log.Info(log.CatForm, "Submit rejected", "issues", len(iss))
	} else {
		m.applyIssues(nil)
		m.record = &rec
		m.renderResult()
		result.Record = rec
		log.Info(log.CatForm, "Submit accepted", "techs", len(rec.Techs))
	}

	return m, func() tea.Msg { return result }
}

// revalidate refreshes the inline errors without touching the output.
func (m *Model) revalidate() {
	_, iss := m.schema.Parse(schema.Root, m.Input())
	m.applyIssues(iss)
}

// applyIssues binds issue messages to fields. Tech row messages are stored
// by row ID so they follow the row when earlier rows are removed.
func (m *Model) applyIssues(iss schema.Issues) {
	msgs := iss.Messages()

	m.fieldErrs = make(map[field]string)
	for _, f := range []field{fieldName, fieldEmail, fieldPassword} {
		if msg, ok := msgs[schema.Root.Key(f.String()).String()]; ok {
			m.fieldErrs[f] = msg
		}
	}

	m.rowErrs = make(map[techlist.ID]rowErrors)
	techs := schema.Root.Key("techs")
	for i, row := range m.techs.Rows() {
		p := techs.Index(i)
		re := rowErrors{
			title:     msgs[p.Key("title").String()],
			knowledge: msgs[p.Key("knowledge").String()],
		}
		if re != (rowErrors{}) {
			m.rowErrs[row.ID] = re
		}
	}
}

func (m *Model) clearResult() {
	m.record = nil
	m.output = ""
	m.result = ""
}

// renderResult serializes the record and styles it for display.
func (m *Model) renderResult() {
	if m.record == nil {
		return
	}
	text, err := output.Render(*m.record, m.format)
	if err != nil {
		log.ErrorErr(log.CatForm, "Failed to render record", err, "format", m.format)
		m.output = ""
		m.result = err.Error()
		return
	}
	m.output = text
	m.result = text

	if m.md == nil {
		return
	}
	styled, err := m.md.RenderCode(m.format.Lang(), text)
	if err != nil {
		log.Warn(log.CatUI, "Markdown render failed, using plain output", "error", err)
		return
	}
	m.result = styled
}

// resizeRenderer rebuilds the markdown renderer when the layout width changed.
func (m *Model) resizeRenderer() {
	w := m.layoutWidth()
	if m.md == nil || m.md.Width() == w {
		return
	}
	md, err := markdown.New(w, m.opts.MarkdownStyle)
	if err != nil {
		log.Warn(log.CatUI, "Markdown renderer resize failed", "width", w, "error", err)
		return
	}
	m.md = md
	m.renderResult()
}

// toggleFormat switches between JSON and YAML and saves the choice.
func (m Model) toggleFormat() (Model, tea.Cmd) {
	if m.format == output.FormatJSON {
		m.format = output.FormatYAML
	} else {
		m.format = output.FormatJSON
	}
	m.renderResult()
	log.Info(log.CatForm, "Output format changed", "format", m.format)

	msg := fmt.Sprintf("Output format: %s", m.format)
	style := toaster.StyleInfo
	if m.opts.ConfigPath != "" {
		if err := config.SaveOutputFormat(m.opts.ConfigPath, m.format); err != nil {
			log.ErrorErr(log.CatConfig, "Failed to save output format", err, "path", m.opts.ConfigPath)
			msg = "Could not save output format: " + err.Error()
			style = toaster.StyleError
		} else {
			msg += " (saved)"
			style = toaster.StyleSuccess
		}
	}
	m.toast = m.toast.Show(msg, style)
	return m, m.toast.ScheduleDismiss(toastTimeout)
}

// handleClick dispatches a left click to the zone under the pointer.
func (m Model) handleClick(msg tea.MouseMsg) (Model, tea.Cmd) {
	if z := zone.Get(m.zoneID(target{field: fieldAdd})); z != nil && z.InBounds(msg) {
		m, _ = m.setFocus(target{field: fieldAdd})
		return m.addTech()
	}
	if z := zone.Get(m.zoneID(target{field: fieldSave})); z != nil && z.InBounds(msg) {
		m, _ = m.setFocus(target{field: fieldSave})
		return m.submit()
	}
	for _, row := range m.techs.Rows() {
		if z := zone.Get(m.removeZoneID(row.ID)); z != nil && z.InBounds(msg) {
			return m.removeTech(row.ID)
		}
	}
	for _, t := range m.targets() {
		if t.isButton() {
			continue
		}
		if z := zone.Get(m.zoneID(t)); z != nil && z.InBounds(msg) {
			return m.setFocus(t)
		}
	}
	return m, nil
}

func (m Model) zoneID(t target) string {
	if t.row != "" {
		return m.zones + t.field.String() + ":" + string(t.row)
	}
	return m.zones + t.field.String()
}

func (m Model) removeZoneID(id techlist.ID) string {
	return m.zones + "remove:" + string(id)
}

// layoutWidth is the configured width, narrowed to fit the terminal.
func (m Model) layoutWidth() int {
	w := m.opts.Width
	if m.width > 0 && m.width < w {
		w = max(m.width, minWidth)
	}
	return w
}

// Record returns the last accepted record.
func (m Model) Record() (registration.Record, bool) {
	if m.record == nil {
		return registration.Record{}, false
	}
	return *m.record, true
}

// Output returns the last accepted record serialized in the current format.
func (m Model) Output() string {
	return m.output
}

// Format returns the current output format.
func (m Model) Format() output.Format {
	return m.format
}

// Errors returns the displayed messages keyed by their current field path.
func (m Model) Errors() map[string]string {
	out := make(map[string]string, len(m.fieldErrs)+2*len(m.rowErrs))
	for f, msg := range m.fieldErrs {
		out[f.String()] = msg
	}
	techs := schema.Root.Key("techs")
	for i, row := range m.techs.Rows() {
		re, ok := m.rowErrs[row.ID]
		if !ok {
			continue
		}
		p := techs.Index(i)
		if re.title != "" {
			out[p.Key("title").String()] = re.title
		}
		if re.knowledge != "" {
			out[p.Key("knowledge").String()] = re.knowledge
		}
	}
	return out
}

// Rows returns the tech rows in display order.
func (m Model) Rows() []techlist.Row {
	return m.techs.Rows()
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
