// Package reconcile implements the two-stage CSV import pipeline: an
// internal validation pass over the freshly parsed dataset, a pure
// classification pass against the live board, and a deterministic
// application step that merges user resolutions into a new board snapshot.
//
// Stage 1 (ValidateDataset/ResolveDataset) only looks at the CSV itself.
// Stage 2 (Classify/Apply) compares the cleaned dataset to the board. The
// Session type sequences the stages as an explicit state machine; stage 2
// never starts while stage 1 conflicts remain, and nothing mutates the board
// until Apply produces a new snapshot.
package reconcile

import (
	"fmt"
	"strings"

	"github.com/subjectlab/boardmerge/pkg/board"
)

// InternalConflictKind discriminates stage-one conflict variants.
type InternalConflictKind string

// Stage-one conflict kinds.
const (
	// DuplicateSubject flags one subject name appearing under more than one
	// distinct category within the CSV
	DuplicateSubject InternalConflictKind = "duplicate_subject"
	// SubjectVsExclude flags a name that is both a subject and an exclude
	// term within the CSV
	SubjectVsExclude InternalConflictKind = "subject_vs_exclude"
	// IncludeVsExclude flags a text that is both an include and an exclude
	// term within the CSV
	IncludeVsExclude InternalConflictKind = "include_vs_exclude"
)

// InternalConflict is a stage-one conflict: a contradiction inside the CSV
// itself, before the board is consulted. Categories lists every bucket the
// name was found in, original casing preserved for display; the sentinel
// buckets _include and _exclude stand for the term lists.
type InternalConflict struct {
	Kind       InternalConflictKind
	Name       string
	Categories []string
}

// String returns a display summary of the conflict.
func (c InternalConflict) String() string {
	return fmt.Sprintf("%s: %q in [%s]", c.Kind, c.Name, strings.Join(c.Categories, ", "))
}

// BoardConflict is a stage-two conflict: a cleaned CSV entry colliding with
// what is already on the board.
type BoardConflict struct {
	// Name of the colliding subject or term, CSV casing
	Name string

	// ExistingCategory is the display name of the category holding the
	// existing subject, when one is involved
	ExistingCategory string

	// NewCategory is the category the CSV wants, or the _exclude sentinel
	// when the incoming entry is an exclude term
	NewCategory string

	// Source of the incoming entry (always csv during an import)
	Source board.Source

	// ExistingSource identifies which producer created the existing entry
	ExistingSource board.Source

	// IsExcludeConflict is true when an exclude term is involved on either
	// side of the collision
	IsExcludeConflict bool
}

// String returns a display summary of the conflict.
func (c BoardConflict) String() string {
	if c.IsExcludeConflict {
		return fmt.Sprintf("exclude conflict: %q (existing %s vs new %s)", c.Name, c.ExistingCategory, c.NewCategory)
	}
	return fmt.Sprintf("category conflict: %q (existing %s vs new %s)", c.Name, c.ExistingCategory, c.NewCategory)
}

// Choice selects which side of a board conflict wins.
type Choice string

// Board conflict choices.
const (
	// KeepExisting discards the incoming CSV entry and leaves the board as
	// it is
	KeepExisting Choice = "keep_existing"
	// UseNew applies the incoming CSV entry, displacing the existing one
	UseNew Choice = "use_new"
)

// Resolution is one user decision for a stage-two conflict. Resolutions are
// keyed by conflicting name and discarded once applied.
type Resolution struct {
	Choice Choice

	// TargetCategory optionally overrides the category a use_new subject
	// lands in; empty means the conflict's NewCategory.
	TargetCategory string
}
