package reconcile

import (
	"slices"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

// ValidateDataset performs the stage-one pass over a freshly normalized
// dataset. Subject groups that agree on a single category are auto-merged
// down to one entry (first-seen casing); everything contradictory becomes an
// InternalConflict. The returned dataset still contains the conflicting
// entries so that a later ResolveDataset can place them.
func ValidateDataset(d *ingest.Dataset) (*ingest.Dataset, []InternalConflict) {
	clean := &ingest.Dataset{
		IncludeTerms:  lo.UniqBy(d.IncludeTerms, board.Key),
		ExcludeTerms:  lo.UniqBy(d.ExcludeTerms, board.Key),
		Subcategories: lo.UniqBy(d.Subcategories, board.Key),
	}
	var conflicts []InternalConflict

	// Group subjects by folded name, preserving first-seen order.
	var order []string
	groups := map[string][]ingest.SubjectRow{}
	for _, sub := range d.Subjects {
		key := board.Key(sub.Name)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], sub)
	}

	excludeKeys := termKeySet(clean.ExcludeTerms)
	includeKeys := termKeySet(clean.IncludeTerms)

	for _, key := range order {
		group := groups[key]
		categories := distinctCategories(group)

		if len(categories) > 1 {
			conflicts = append(conflicts, InternalConflict{
				Kind:       DuplicateSubject,
				Name:       group[0].Name,
				Categories: categories,
			})
			// Keep the group intact; resolution decides the single bucket.
			clean.Subjects = append(clean.Subjects, group...)
			continue
		}

		merged := ingest.SubjectRow{Name: group[0].Name, Category: group[0].Category}
		clean.Subjects = append(clean.Subjects, merged)

		if _, hit := excludeKeys[key]; hit {
			conflicts = append(conflicts, InternalConflict{
				Kind:       SubjectVsExclude,
				Name:       merged.Name,
				Categories: []string{displayCategory(merged.Category), constants.ExcludeSentinel},
			})
		}
	}

	for _, text := range clean.ExcludeTerms {
		if _, hit := includeKeys[board.Key(text)]; hit {
			conflicts = append(conflicts, InternalConflict{
				Kind:       IncludeVsExclude,
				Name:       text,
				Categories: []string{constants.IncludeSentinel, constants.ExcludeSentinel},
			})
		}
	}

	return clean, conflicts
}

// ResolveDataset applies per-name bucket choices to a validated dataset and
// re-validates. Every outstanding conflict must have a resolution: the
// chosen bucket is a category name, the _include/_exclude sentinel, or
// uncategorized; the name is removed from every other bucket it appeared in.
// A missing resolution is a precondition violation, and a resolution naming
// anything without an outstanding conflict is a validation error.
func ResolveDataset(d *ingest.Dataset, resolutions map[string]string) (*ingest.Dataset, []InternalConflict, error) {
	_, conflicts := ValidateDataset(d)

	conflictKeys := map[string]struct{}{}
	for _, c := range conflicts {
		conflictKeys[board.Key(c.Name)] = struct{}{}
	}

	// Only conflicting names may be resolved; a resolution for anything else
	// is rejected rather than quietly swallowing the entry it names.
	buckets := map[string]string{}
	var extra []string
	for name, bucket := range resolutions {
		key := board.Key(name)
		if _, ok := conflictKeys[key]; !ok {
			extra = append(extra, name)
			continue
		}
		buckets[key] = bucket
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return nil, nil, errors.NewValidationError("resolutions", extra,
			"no outstanding conflict named "+strings.Join(extra, ", "))
	}

	if len(conflicts) == 0 {
		return d.Clone(), nil, nil
	}

	var missing []string
	for _, c := range conflicts {
		if _, ok := buckets[board.Key(c.Name)]; !ok {
			missing = append(missing, c.Name)
		}
	}
	if len(missing) > 0 {
		return nil, nil, &errors.UnresolvedConflictsError{Stage: "internal validation", Names: missing}
	}

	next := &ingest.Dataset{Subcategories: slices.Clone(d.Subcategories)}

	// Strip every resolved name from every bucket, then place it once.
	next.Subjects = lo.Filter(d.Subjects, func(s ingest.SubjectRow, _ int) bool {
		_, resolved := buckets[board.Key(s.Name)]
		return !resolved
	})
	next.IncludeTerms = lo.Filter(d.IncludeTerms, func(t string, _ int) bool {
		_, resolved := buckets[board.Key(t)]
		return !resolved
	})
	next.ExcludeTerms = lo.Filter(d.ExcludeTerms, func(t string, _ int) bool {
		_, resolved := buckets[board.Key(t)]
		return !resolved
	})

	for _, c := range conflicts {
		key := board.Key(c.Name)
		bucket, ok := buckets[key]
		if !ok {
			continue
		}
		delete(buckets, key) // place each name exactly once

		switch board.Key(bucket) {
		case constants.IncludeSentinel:
			next.IncludeTerms = append(next.IncludeTerms, c.Name)
		case constants.ExcludeSentinel:
			next.ExcludeTerms = append(next.ExcludeTerms, c.Name)
		case "", constants.UncategorizedID:
			next.Subjects = append(next.Subjects, ingest.SubjectRow{Name: c.Name})
		default:
			next.Subjects = append(next.Subjects, ingest.SubjectRow{Name: c.Name, Category: bucket})
			if !lo.ContainsBy(next.Subcategories, func(s string) bool { return board.SameName(s, bucket) }) {
				next.Subcategories = append(next.Subcategories, bucket)
			}
		}
	}

	clean, remaining := ValidateDataset(next)
	return clean, remaining, nil
}

// distinctCategories returns the distinct categories of a subject group in
// first-seen order and casing, with missing categories normalized to
// uncategorized.
func distinctCategories(group []ingest.SubjectRow) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, sub := range group {
		display := displayCategory(sub.Category)
		key := board.Key(display)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, display)
	}
	return out
}

// displayCategory maps an empty category to the reserved uncategorized name.
func displayCategory(category string) string {
	if category == "" {
		return constants.UncategorizedID
	}
	return category
}

// termKeySet builds a folded-key membership set from term texts.
func termKeySet(texts []string) map[string]struct{} {
	return lo.SliceToMap(texts, func(t string) (string, struct{}) {
		return board.Key(t), struct{}{}
	})
}
