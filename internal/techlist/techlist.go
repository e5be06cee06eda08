// Package techlist keeps the ordered technology rows of the form.
//
// Rows are bound to their inputs by a stable ID rather than by position, so
// removing a row never moves another row's typed values. The position of a
// row is still what validation paths use (techs.<index>.title), and it shifts
// as rows before it come and go.
package techlist

import (
	"github.com/google/uuid"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
)

// ID identifies a row for its whole lifetime. IDs are never reused.
type ID string

// NewID generates a new unique row ID using UUID v4.
func NewID() ID {
	return ID(uuid.New().String())
}

// Row is one technology entry as typed.
type Row struct {
	ID        ID
	Title     string
	Knowledge string
}

// List is an ordered collection of rows.
type List struct {
	rows  []Row
	newID func() ID
}

// Option configures a List.
type Option func(*List)

// WithIDGenerator replaces the UUID generator. The generator must never
// return the same ID twice.
func WithIDGenerator(gen func() ID) Option {
	return func(l *List) {
		l.newID = gen
	}
}

// New creates an empty list.
func New(opts ...Option) *List {
	l := &List{newID: NewID}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromInputs creates a list pre-filled with one row per input.
func FromInputs(inputs []registration.TechInput, opts ...Option) *List {
	l := New(opts...)
	for _, in := range inputs {
		id := l.Append()
		l.SetTitle(id, in.Title)
		l.SetKnowledge(id, in.Knowledge)
	}
	return l
}

// Append adds an empty row at the end and returns its ID.
func (l *List) Append() ID {
	id := l.newID()
	l.rows = append(l.rows, Row{ID: id})
	log.Debug(log.CatList, "Row appended", "id", id, "len", len(l.rows))
	return id
}

// Remove deletes the row with the given ID. Returns false if no such row
// exists, in which case the list is unchanged.
func (l *List) Remove(id ID) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.rows = append(l.rows[:i:i], l.rows[i+1:]...)
	log.Debug(log.CatList, "Row removed", "id", id, "index", i, "len", len(l.rows))
	return true
}

// SetTitle updates the title of a row. Returns false if the row is gone.
func (l *List) SetTitle(id ID, title string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.rows[i].Title = title
	return true
}

// SetKnowledge updates the knowledge text of a row. Returns false if the row
// is gone.
func (l *List) SetKnowledge(id ID, knowledge string) bool {
	i := l.Index(id)
	if i < 0 {
		return false
	}
	l.rows[i].Knowledge = knowledge
	return true
}

// Index returns the current position of a row, or -1.
func (l *List) Index(id ID) int {
	for i := range l.rows {
		if l.rows[i].ID == id {
			return i
		}
	}
	return -1
}

// Row returns the row with the given ID.
func (l *List) Row(id ID) (Row, bool) {
	i := l.Index(id)
	if i < 0 {
		return Row{}, false
	}
	return l.rows[i], true
}

// Len returns the number of rows.
func (l *List) Len() int {
	return len(l.rows)
}

// Rows returns a copy of the rows in order.
func (l *List) Rows() []Row {
	return append([]Row(nil), l.rows...)
}

// Inputs returns the rows as schema input, in order.
func (l *List) Inputs() []registration.TechInput {
	out := make([]registration.TechInput, len(l.rows))
	for i, r := range l.rows {
		out[i] = registration.TechInput{Title: r.Title, Knowledge: r.Knowledge}
	}
	return out
}

// Clear removes every row.
func (l *List) Clear() {
	l.rows = nil
}
