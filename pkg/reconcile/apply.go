package reconcile

import (
	stderrors "errors"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

// Apply merges a cleaned dataset into a clone of the board, honoring the
// classification and the user's resolutions. The input board is never
// touched; the returned board is a fresh snapshot the caller can swap in.
// Every classified conflict must carry a resolution with one of the two
// defined choices or Apply refuses to run.
//
// Each subject name is applied at most once: conflict outcomes and auto-merge
// moves claim their names first, and the insertion pass skips anything
// already claimed or deliberately dropped.
func Apply(b *board.Board, d *ingest.Dataset, cls *Classification, resolutions map[string]Resolution) (*board.Board, error) {
	resolved := map[string]Resolution{}
	for name, r := range resolutions {
		resolved[board.Key(name)] = r
	}

	var missing []string
	for _, c := range cls.Conflicts {
		r, ok := resolved[board.Key(c.Name)]
		if !ok {
			missing = append(missing, c.Name)
			continue
		}
		if r.Choice != KeepExisting && r.Choice != UseNew {
			return nil, errors.NewValidationError("choice", string(r.Choice),
				"resolution for "+c.Name+" must be keep_existing or use_new")
		}
	}
	if len(missing) > 0 {
		return nil, &errors.UnresolvedConflictsError{Stage: "board reconciliation", Names: missing}
	}

	next := b.Clone()

	for _, name := range d.Subcategories {
		if _, err := next.EnsureCategory(name); err != nil {
			return nil, err
		}
	}

	processed := map[string]struct{}{} // names already placed on the board
	dropped := map[string]struct{}{}   // incoming entries the user discarded

	for _, c := range cls.Conflicts {
		key := board.Key(c.Name)
		r := resolved[key]

		switch {
		case c.IsExcludeConflict && c.NewCategory == constants.ExcludeSentinel:
			// Incoming exclude term vs existing subject.
			if r.Choice == KeepExisting {
				dropped[key] = struct{}{}
				continue
			}
			if sub, _, ok := next.Subject(c.Name); ok {
				if err := next.RemoveSubject(sub.ID); err != nil {
					return nil, err
				}
			}
			// The term itself lands in the term merge pass.

		case c.IsExcludeConflict:
			// Incoming subject vs existing exclude term.
			if r.Choice == KeepExisting {
				dropped[key] = struct{}{}
				continue
			}
			if err := next.RemoveTerm(c.Name, board.Exclude); err != nil && !errors.IsNotFound(err) {
				return nil, err
			}
			// The subject itself lands in the insertion pass.

		default:
			// Category conflict over an existing subject.
			if r.Choice == KeepExisting {
				dropped[key] = struct{}{}
				continue
			}
			target := r.TargetCategory
			if target == "" {
				target = c.NewCategory
			}
			if err := moveSubjectTo(next, c.Name, target); err != nil {
				return nil, err
			}
			processed[key] = struct{}{}
		}
	}

	for _, m := range cls.AutoMerges {
		key := board.Key(m.Name)
		if _, done := processed[key]; done {
			continue
		}
		if err := moveSubjectTo(next, m.Name, m.ToCategory); err != nil {
			return nil, err
		}
		processed[key] = struct{}{}
	}

	for _, sub := range d.Subjects {
		key := board.Key(sub.Name)
		if _, done := processed[key]; done {
			continue
		}
		if _, skip := dropped[key]; skip {
			continue
		}
		processed[key] = struct{}{}

		cat, err := next.EnsureCategory(sub.Category)
		if err != nil {
			return nil, err
		}
		_, err = next.AddSubject(board.Subject{
			Name:       sub.Name,
			CategoryID: cat.ID,
			Source:     board.SourceCSV,
			IsNewTerm:  true,
		})
		if err != nil {
			if errors.IsAlreadyExists(err) {
				// Idempotent re-import; the subject is already settled.
				continue
			}
			return nil, err
		}
	}

	for _, text := range d.IncludeTerms {
		if _, skip := dropped[board.Key(text)]; skip {
			continue
		}
		if err := addTermMerged(next, text, board.Include); err != nil {
			return nil, err
		}
	}
	for _, text := range d.ExcludeTerms {
		if _, skip := dropped[board.Key(text)]; skip {
			continue
		}
		if err := addTermMerged(next, text, board.Exclude); err != nil {
			return nil, err
		}
	}

	return next, nil
}

// moveSubjectTo moves the named subject into the category with the given
// display name, creating the category when absent.
func moveSubjectTo(b *board.Board, name, category string) error {
	sub, _, ok := b.Subject(name)
	if !ok {
		return errors.NewNotFoundError("subject", name)
	}
	cat, err := b.EnsureCategory(category)
	if err != nil {
		return err
	}
	return b.MoveSubject(sub.ID, cat.ID)
}

// addTermMerged adds a term, treating an existing term of either direction as
// already merged. An exclude collision with a surviving subject means the
// classifier missed a conflict, so it surfaces as an error.
func addTermMerged(b *board.Board, text string, direction board.Direction) error {
	if _, ok := b.TermByText(text); ok {
		return nil
	}
	_, err := b.AddTerm(text, direction, board.SourceCSV)
	if err != nil {
		var etc *board.ExcludeTermConflict
		if stderrors.As(err, &etc) {
			return errors.NewPreconditionError("merge terms", etc.Error())
		}
		if errors.IsAlreadyExists(err) {
			return nil
		}
		return err
	}
	return nil
}
