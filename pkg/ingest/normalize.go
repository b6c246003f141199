// Package ingest turns externally authored CSV content into the typed
// dataset the reconciliation pipeline consumes. The lexical CSV parsing is a
// thin collaborator around encoding/csv; the interesting part is the row
// normalizer, which routes sentinel subcategories into the term lists and
// leaves deduplication to the validation stage.
package ingest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
)

// Row is one header-normalized CSV row: lowercased, underscore-joined column
// names mapped to raw cell values.
type Row map[string]string

// SubjectRow is one subject candidate from a CSV. An empty Category means
// uncategorized.
type SubjectRow struct {
	Name     string
	Category string
}

// Dataset is the normalizer's output: subject candidates and term texts,
// still carrying whatever duplicates the CSV author wrote. Subcategories
// lists the distinct non-sentinel subcategory names in first-seen casing.
type Dataset struct {
	Subjects      []SubjectRow
	IncludeTerms  []string
	ExcludeTerms  []string
	Subcategories []string
}

// Column aliases tolerated in normalized headers.
var (
	subjectColumns  = []string{"subject_name", "term", "name"}
	categoryColumns = []string{"subcategory_name", "category", "subcategory"}
)

// Normalize turns flat rows into a Dataset. It is pure: malformed input
// returns a single terminal error and no partial dataset. A row whose
// subcategory is the _include or _exclude sentinel contributes a term
// instead of a subject. Names are not deduplicated here.
func Normalize(rows []Row) (*Dataset, error) {
	d := &Dataset{}
	seenSubcategories := map[string]struct{}{}

	for i, row := range rows {
		if rowEmpty(row) {
			continue
		}

		name := firstValue(row, subjectColumns)
		if name == "" {
			return nil, errors.NewParseError("csv", "", fmt.Sprintf("row %d has no subject name", i+1), nil)
		}
		category := firstValue(row, categoryColumns)

		switch board.Key(category) {
		case constants.IncludeSentinel:
			d.IncludeTerms = append(d.IncludeTerms, name)
		case constants.ExcludeSentinel:
			d.ExcludeTerms = append(d.ExcludeTerms, name)
		case "":
			d.Subjects = append(d.Subjects, SubjectRow{Name: name})
		default:
			d.Subjects = append(d.Subjects, SubjectRow{Name: name, Category: category})
			key := board.Key(category)
			if _, seen := seenSubcategories[key]; !seen {
				seenSubcategories[key] = struct{}{}
				d.Subcategories = append(d.Subcategories, category)
			}
		}
	}

	return d, nil
}

// Clone returns a deep copy of the dataset.
func (d *Dataset) Clone() *Dataset {
	return &Dataset{
		Subjects:      slices.Clone(d.Subjects),
		IncludeTerms:  slices.Clone(d.IncludeTerms),
		ExcludeTerms:  slices.Clone(d.ExcludeTerms),
		Subcategories: slices.Clone(d.Subcategories),
	}
}

// firstValue returns the first non-empty trimmed value among the aliased
// columns.
func firstValue(row Row, columns []string) string {
	for _, col := range columns {
		if v := strings.TrimSpace(row[col]); v != "" {
			return v
		}
	}
	return ""
}

// rowEmpty reports whether every cell in the row is blank.
func rowEmpty(row Row) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
