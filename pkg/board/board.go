// Package board provides the in-memory board of categorized subjects and
// include/exclude terms, together with the mutation primitives that are the
// only legal way to change board state.
//
// A board holds categories (each a named bucket of subjects) and a flat list
// of filter terms. Two identity invariants hold at all times:
//
//   - at most one subject with a given case-insensitive name exists across
//     the whole board, and
//   - no text is simultaneously an include term and an exclude term, and an
//     exclude term's text never equals a subject's name.
//
// Every producer (lab-seed import, CSV import, manual entry, direct user
// action) funnels its changes through the primitives in this package, so the
// invariants are enforced in exactly one place.
//
// A Board is not safe for concurrent use. The host owns the current snapshot
// exclusively and replaces it wholesale after each accepted operation; Clone
// provides the copy-on-write snapshot for that discipline.
package board

import (
	"github.com/google/uuid"

	"github.com/subjectlab/boardmerge/pkg/constants"
)

// Board is the complete in-memory state being assembled: categories with
// their subjects, plus include/exclude terms. The default uncategorized
// category always exists and is always first.
type Board struct {
	categories []*Category
	terms      []*Term
}

// Option configures a new Board.
type Option func(*Board)

// New creates an empty board containing only the default uncategorized
// category.
func New(opts ...Option) *Board {
	b := &Board{
		categories: []*Category{newUncategorized()},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Categories returns the board's categories in display order. The slice is a
// copy; the categories are not.
func (b *Board) Categories() []*Category {
	out := make([]*Category, len(b.categories))
	copy(out, b.categories)
	return out
}

// Terms returns the board's terms in display order. The slice is a copy; the
// terms are not.
func (b *Board) Terms() []*Term {
	out := make([]*Term, len(b.terms))
	copy(out, b.terms)
	return out
}

// Uncategorized returns the default category.
func (b *Board) Uncategorized() *Category {
	for _, c := range b.categories {
		if c.IsDefault() {
			return c
		}
	}
	// A board always carries its default category; restore it if a caller
	// constructed the struct by hand.
	u := newUncategorized()
	b.categories = append([]*Category{u}, b.categories...)
	return u
}

// Category returns a category by id.
func (b *Board) Category(id string) (*Category, bool) {
	for _, c := range b.categories {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// CategoryByName returns a category by case-insensitive display name.
func (b *Board) CategoryByName(name string) (*Category, bool) {
	key := Key(name)
	for _, c := range b.categories {
		if Key(c.Name) == key {
			return c, true
		}
	}
	return nil, false
}

// Subject returns the subject with the given case-insensitive name along
// with the category holding it.
func (b *Board) Subject(name string) (*Subject, *Category, bool) {
	key := Key(name)
	for _, c := range b.categories {
		for _, s := range c.Subjects {
			if Key(s.Name) == key {
				return s, c, true
			}
		}
	}
	return nil, nil, false
}

// SubjectByID returns the subject with the given id along with the category
// holding it.
func (b *Board) SubjectByID(id string) (*Subject, *Category, bool) {
	for _, c := range b.categories {
		for _, s := range c.Subjects {
			if s.ID == id {
				return s, c, true
			}
		}
	}
	return nil, nil, false
}

// Subjects returns every subject on the board across all categories.
func (b *Board) Subjects() []*Subject {
	var out []*Subject
	for _, c := range b.categories {
		out = append(out, c.Subjects...)
	}
	return out
}

// Term returns the term with the given case-insensitive text and direction.
func (b *Board) Term(text string, direction Direction) (*Term, bool) {
	key := Key(text)
	for _, t := range b.terms {
		if t.Direction == direction && Key(t.Text) == key {
			return t, true
		}
	}
	return nil, false
}

// TermByText returns the term with the given case-insensitive text in either
// direction.
func (b *Board) TermByText(text string) (*Term, bool) {
	key := Key(text)
	for _, t := range b.terms {
		if Key(t.Text) == key {
			return t, true
		}
	}
	return nil, false
}

// TermByID returns the term with the given id.
func (b *Board) TermByID(id string) (*Term, bool) {
	for _, t := range b.terms {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// newID returns a fresh opaque identifier.
func newID() string {
	return uuid.NewString()
}

// categoryDisplay resolves an id to a display name for error reporting.
func (b *Board) categoryDisplay(id string) string {
	if c, ok := b.Category(id); ok {
		return c.Name
	}
	return constants.UncategorizedName
}
