package board

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/subjectlab/boardmerge/pkg/errors"
)

// Seed is a lab-seed document: the categorized subjects and terms a lab
// starts a board from. Seed subjects carry stable external references from
// the prior catalog.
type Seed struct {
	Categories   []SeedCategory `yaml:"categories"`
	IncludeTerms []string       `yaml:"include_terms,omitempty"`
	ExcludeTerms []string       `yaml:"exclude_terms,omitempty"`
}

// SeedCategory is one named bucket of seed subjects. An empty name seeds the
// uncategorized category.
type SeedCategory struct {
	Name     string        `yaml:"name"`
	Subjects []SeedSubject `yaml:"subjects"`
}

// SeedSubject is one seeded subject.
type SeedSubject struct {
	Name        string `yaml:"name"`
	ExternalRef string `yaml:"external_ref,omitempty"`
}

// SeedReport summarizes what a seed application changed.
type SeedReport struct {
	SubjectsAdded int
	TermsAdded    int

	// Skipped lists seed entries dropped because their name already existed
	// on the board (first entry wins).
	Skipped []string
}

// LoadSeed reads a seed document from a YAML file.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}
	return &seed, nil
}

// ApplySeed adds the seed's categories, subjects, and terms to the board
// through the standard mutation primitives, with source set to seed. Entries
// colliding with names already on the board are skipped and reported rather
// than treated as errors; a seed is a starting point, not a merge.
func (b *Board) ApplySeed(seed *Seed) (*SeedReport, error) {
	report := &SeedReport{}

	for _, sc := range seed.Categories {
		cat, err := b.EnsureCategory(sc.Name)
		if err != nil {
			return nil, err
		}
		for _, ss := range sc.Subjects {
			_, err := b.AddSubject(Subject{
				Name:        ss.Name,
				ExternalRef: ss.ExternalRef,
				CategoryID:  cat.ID,
				Source:      SourceSeed,
				IsNewTerm:   ss.ExternalRef == "",
			})
			switch {
			case err == nil:
				report.SubjectsAdded++
			case errors.IsAlreadyExists(err) || errors.IsConflict(err):
				report.Skipped = append(report.Skipped, ss.Name)
			default:
				return nil, err
			}
		}
	}

	addTerms := func(texts []string, direction Direction) error {
		for _, text := range texts {
			_, err := b.AddTerm(text, direction, SourceSeed)
			switch {
			case err == nil:
				report.TermsAdded++
			case errors.IsAlreadyExists(err) || errors.IsConflict(err):
				report.Skipped = append(report.Skipped, text)
			default:
				return err
			}
		}
		return nil
	}

	if err := addTerms(seed.IncludeTerms, Include); err != nil {
		return nil, err
	}
	if err := addTerms(seed.ExcludeTerms, Exclude); err != nil {
		return nil, err
	}

	return report, nil
}
