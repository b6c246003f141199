package board

import (
	"strings"

	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
)

// DeleteStrategy selects what happens to a non-empty category's subjects
// when the category is deleted.
type DeleteStrategy string

// Category delete strategies.
const (
	// DeleteMoveToUncategorized reassigns the category's subjects to the
	// default category before removing it
	DeleteMoveToUncategorized DeleteStrategy = "move_to_uncategorized"
	// DeleteSubjects removes the category and all of its subjects
	DeleteSubjects DeleteStrategy = "delete_subjects"
)

// AddSubject adds a subject to the board. The subject's name must not exist
// anywhere on the board: a collision with an existing subject returns a
// DuplicateNameError naming the category holding it, and a collision with an
// exclude term returns an ExcludeTermConflict for the caller to resolve.
// A missing CategoryID lands the subject in the uncategorized category; a
// missing ID is assigned.
func (b *Board) AddSubject(sub Subject) (*Subject, error) {
	if strings.TrimSpace(sub.Name) == "" {
		return nil, errors.NewValidationError("name", sub.Name, "subject name cannot be empty")
	}

	if _, cat, ok := b.Subject(sub.Name); ok {
		return nil, errors.NewDuplicateNameError("subject", sub.Name, cat.Name)
	}
	if term, ok := b.Term(sub.Name, Exclude); ok {
		return nil, &ExcludeTermConflict{Text: term.Text}
	}

	if sub.CategoryID == "" {
		sub.CategoryID = constants.UncategorizedID
	}
	cat, ok := b.Category(sub.CategoryID)
	if !ok {
		return nil, errors.NewNotFoundError("category", sub.CategoryID)
	}
	if sub.ID == "" {
		sub.ID = newID()
	}

	added := sub
	cat.Subjects = append(cat.Subjects, &added)
	return &added, nil
}

// MoveSubject reassigns a subject to another category. The subject already
// exists uniquely, so no identity re-check is needed. The first move records
// the subject's original category for audit.
func (b *Board) MoveSubject(id, categoryID string) error {
	sub, from, ok := b.SubjectByID(id)
	if !ok {
		return errors.NewNotFoundError("subject", id)
	}
	to, ok := b.Category(categoryID)
	if !ok {
		return errors.NewNotFoundError("category", categoryID)
	}
	if from.ID == to.ID {
		return nil
	}

	i := from.subjectIndex(id)
	from.Subjects = append(from.Subjects[:i], from.Subjects[i+1:]...)
	if sub.OriginalCategory == "" {
		sub.OriginalCategory = from.Name
	}
	sub.CategoryID = to.ID
	to.Subjects = append(to.Subjects, sub)
	return nil
}

// RemoveSubject deletes a subject from the board.
func (b *Board) RemoveSubject(id string) error {
	_, cat, ok := b.SubjectByID(id)
	if !ok {
		return errors.NewNotFoundError("subject", id)
	}
	i := cat.subjectIndex(id)
	cat.Subjects = append(cat.Subjects[:i], cat.Subjects[i+1:]...)
	return nil
}

// AddCategory creates a custom category. Names are checked case-insensitively
// against every existing category, the default one included.
func (b *Board) AddCategory(name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.NewValidationError("name", name, "category name cannot be empty")
	}
	if existing, ok := b.CategoryByName(name); ok {
		return nil, errors.NewDuplicateNameError("category", existing.Name, "")
	}

	cat := &Category{
		ID:   newID(),
		Name: strings.TrimSpace(name),
		Kind: CategoryCustom,
	}
	b.categories = append(b.categories, cat)
	return cat, nil
}

// EnsureCategory returns the category with the given case-insensitive name,
// creating it when absent. An empty name resolves to the uncategorized
// category.
func (b *Board) EnsureCategory(name string) (*Category, error) {
	if strings.TrimSpace(name) == "" || Key(name) == constants.UncategorizedID {
		return b.Uncategorized(), nil
	}
	if existing, ok := b.CategoryByName(name); ok {
		return existing, nil
	}
	return b.AddCategory(name)
}

// RenameCategory renames a custom category, checked case-insensitively
// against all other categories. The default category cannot be renamed.
func (b *Board) RenameCategory(id, name string) error {
	cat, ok := b.Category(id)
	if !ok {
		return errors.NewNotFoundError("category", id)
	}
	if cat.IsDefault() {
		return errors.ErrProtected
	}
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", name, "category name cannot be empty")
	}
	if existing, ok := b.CategoryByName(name); ok && existing.ID != id {
		return errors.NewDuplicateNameError("category", existing.Name, "")
	}

	cat.Name = strings.TrimSpace(name)
	return nil
}

// DeleteCategory removes a category. An empty category is removed
// immediately; a non-empty one requires an explicit strategy for its
// subjects. The default category can never be deleted.
func (b *Board) DeleteCategory(id string, strategy DeleteStrategy) error {
	cat, ok := b.Category(id)
	if !ok {
		return errors.NewNotFoundError("category", id)
	}
	if cat.IsDefault() {
		return errors.ErrProtected
	}

	if cat.Len() > 0 {
		switch strategy {
		case DeleteMoveToUncategorized:
			uncat := b.Uncategorized()
			for _, sub := range cat.Subjects {
				if sub.OriginalCategory == "" {
					sub.OriginalCategory = cat.Name
				}
				sub.CategoryID = uncat.ID
				uncat.Subjects = append(uncat.Subjects, sub)
			}
		case DeleteSubjects:
			// Subjects vanish with the category.
		case "":
			return errors.NewValidationError("strategy", strategy, "deleting a non-empty category requires a strategy")
		default:
			return errors.NewValidationError("strategy", strategy, "unknown delete strategy")
		}
	}

	for i, c := range b.categories {
		if c.ID == id {
			b.categories = append(b.categories[:i], b.categories[i+1:]...)
			break
		}
	}
	return nil
}

// AddTerm adds a filter term. A text collision with an existing term in
// either direction returns a DuplicateNameError; adding an exclude term
// whose text matches existing subject names returns an ExcludeTermConflict
// for the caller to resolve via ResolveExcludeTerm.
func (b *Board) AddTerm(text string, direction Direction, source Source) (*Term, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewValidationError("text", text, "term text cannot be empty")
	}
	if existing, ok := b.TermByText(text); ok {
		return nil, errors.NewDuplicateNameError("term", existing.Text, string(existing.Direction))
	}
	if direction == Exclude {
		if colliding := b.subjectsNamed(text); len(colliding) > 0 {
			return nil, &ExcludeTermConflict{Text: strings.TrimSpace(text), Subjects: colliding}
		}
	}

	term := &Term{
		ID:        newID(),
		Text:      strings.TrimSpace(text),
		Direction: direction,
		Source:    source,
	}
	b.terms = append(b.terms, term)
	return term, nil
}

// SetTermDirection flips a term's direction. Flipping to exclude runs the
// same subject-name collision check as AddTerm and blocks with an
// ExcludeTermConflict until resolved.
func (b *Board) SetTermDirection(id string, direction Direction) error {
	term, ok := b.TermByID(id)
	if !ok {
		return errors.NewNotFoundError("term", id)
	}
	if term.Direction == direction {
		return nil
	}
	if direction == Exclude {
		if colliding := b.subjectsNamed(term.Text); len(colliding) > 0 {
			return &ExcludeTermConflict{Text: term.Text, Subjects: colliding}
		}
	}

	term.Direction = direction
	return nil
}

// ResolveExcludeTerm settles an ExcludeTermConflict raised while adding or
// flipping an exclude term. KeepExclude deletes the colliding subjects and
// lands the exclude term; KeepSubjects abandons the term change and leaves
// the board untouched.
func (b *Board) ResolveExcludeTerm(conflict *ExcludeTermConflict, resolution ExcludeResolution, source Source) error {
	switch resolution {
	case KeepSubjects:
		return nil
	case KeepExclude:
		for _, sub := range b.subjectsNamed(conflict.Text) {
			if err := b.RemoveSubject(sub.ID); err != nil {
				return err
			}
		}
		if existing, ok := b.TermByText(conflict.Text); ok {
			// The conflict came from a direction flip; finish the flip.
			existing.Direction = Exclude
			return nil
		}
		_, err := b.AddTerm(conflict.Text, Exclude, source)
		return err
	default:
		return errors.NewValidationError("resolution", resolution, "unknown exclude resolution")
	}
}

// RemoveTerm deletes the term with the given case-insensitive text and
// direction.
func (b *Board) RemoveTerm(text string, direction Direction) error {
	key := Key(text)
	for i, t := range b.terms {
		if t.Direction == direction && Key(t.Text) == key {
			b.terms = append(b.terms[:i], b.terms[i+1:]...)
			return nil
		}
	}
	return errors.NewNotFoundError("term", text)
}

// subjectsNamed returns every subject whose name matches the given text
// case-insensitively. On a consistent board this is at most one subject.
func (b *Board) subjectsNamed(text string) []*Subject {
	var out []*Subject
	key := Key(text)
	for _, c := range b.categories {
		for _, s := range c.Subjects {
			if Key(s.Name) == key {
				out = append(out, s)
			}
		}
	}
	return out
}
