package board

// Clone returns a deep copy of the board. Mutating the copy never affects
// the original, which is what lets the reconciliation pipeline build a new
// snapshot while the host keeps serving the old one.
func (b *Board) Clone() *Board {
	clone := &Board{
		categories: make([]*Category, 0, len(b.categories)),
		terms:      make([]*Term, 0, len(b.terms)),
	}

	for _, c := range b.categories {
		cc := &Category{
			ID:       c.ID,
			Name:     c.Name,
			Kind:     c.Kind,
			Subjects: make([]*Subject, 0, len(c.Subjects)),
		}
		for _, s := range c.Subjects {
			cs := *s
			cc.Subjects = append(cc.Subjects, &cs)
		}
		clone.categories = append(clone.categories, cc)
	}

	for _, t := range b.terms {
		ct := *t
		clone.terms = append(clone.terms, &ct)
	}

	return clone
}
