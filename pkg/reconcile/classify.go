package reconcile

import (
	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

// AutoMerge records a subject move the classifier decided on its own: the
// subject already exists in the default category and the CSV supplies a real
// one, so the import upgrades it without asking.
type AutoMerge struct {
	Name         string
	SubjectID    string
	FromCategory string
	ToCategory   string
}

// Classification is the stage-two verdict for a cleaned dataset against a
// board: the collisions that need a user decision and the moves that do not.
// Entries absent from both lists flow straight through Apply as plain
// insertions or term merges.
type Classification struct {
	Conflicts  []BoardConflict
	AutoMerges []AutoMerge
}

// HasConflicts reports whether any conflict still needs a resolution.
func (c *Classification) HasConflicts() bool {
	return len(c.Conflicts) > 0
}

// Classify compares a cleaned dataset against the board without mutating
// either. For each incoming subject, in priority order: a matching board
// exclude term is a conflict, a matching subject in the same category is a
// no-op, a matching subject in the default category is an auto-merge upgrade,
// and a matching subject elsewhere is a category conflict. Incoming exclude
// terms that match board subject names are conflicts from the other
// direction. Terms already on the board, in either direction, stay as they
// are.
func Classify(b *board.Board, d *ingest.Dataset) *Classification {
	cls := &Classification{}

	for _, sub := range d.Subjects {
		newCategory := displayCategory(sub.Category)

		if term, ok := b.Term(sub.Name, board.Exclude); ok {
			cls.Conflicts = append(cls.Conflicts, BoardConflict{
				Name:              sub.Name,
				ExistingCategory:  constants.ExcludeSentinel,
				NewCategory:       newCategory,
				Source:            board.SourceCSV,
				ExistingSource:    term.Source,
				IsExcludeConflict: true,
			})
			continue
		}

		existing, cat, ok := b.Subject(sub.Name)
		if !ok {
			continue // plain insertion, handled by Apply
		}

		switch {
		case board.SameName(cat.Name, newCategory):
			// Already where the CSV wants it.
		case cat.IsDefault() && sub.Category != "":
			cls.AutoMerges = append(cls.AutoMerges, AutoMerge{
				Name:         existing.Name,
				SubjectID:    existing.ID,
				FromCategory: cat.Name,
				ToCategory:   sub.Category,
			})
		case sub.Category == "":
			// An uncategorized import never demotes a categorized subject.
		default:
			cls.Conflicts = append(cls.Conflicts, BoardConflict{
				Name:             sub.Name,
				ExistingCategory: cat.Name,
				NewCategory:      newCategory,
				Source:           board.SourceCSV,
				ExistingSource:   existing.Source,
			})
		}
	}

	for _, text := range d.ExcludeTerms {
		if _, ok := b.TermByText(text); ok {
			continue // existing term wins regardless of direction
		}
		if existing, cat, ok := b.Subject(text); ok {
			cls.Conflicts = append(cls.Conflicts, BoardConflict{
				Name:              text,
				ExistingCategory:  cat.Name,
				NewCategory:       constants.ExcludeSentinel,
				Source:            board.SourceCSV,
				ExistingSource:    existing.Source,
				IsExcludeConflict: true,
			})
		}
	}

	return cls
}
