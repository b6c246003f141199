package board

// Source identifies which producer created a subject or term.
type Source string

// Subject and term producers.
const (
	// SourceSeed marks entries created by a lab-seed import
	SourceSeed Source = "seed"
	// SourceCSV marks entries created by a CSV import
	SourceCSV Source = "csv"
	// SourceManual marks entries created by direct user entry
	SourceManual Source = "manual"
)

// Subject is a candidate or confirmed item of interest, placed into exactly
// one category. Its identity key is the case-insensitive trimmed form of its
// name; at most one subject with a given key may exist on a board.
type Subject struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`

	// ExternalRef is a stable identifier from a prior catalog. It is only
	// present when the subject came from a seed or an earlier confirmed
	// import, never for manual or csv-new subjects.
	ExternalRef string `yaml:"external_ref,omitempty"`

	CategoryID string `yaml:"category_id"`
	Source     Source `yaml:"source"`

	// IsNewTerm is true when the subject has no external reference and
	// therefore requires downstream processing.
	IsNewTerm bool `yaml:"is_new_term,omitempty"`

	// OriginalCategory records the display name of the category the subject
	// was first placed in, set when the subject is moved. Audit only.
	OriginalCategory string `yaml:"original_category,omitempty"`
}

// Is reports whether the subject's name matches the given display name
// case-insensitively.
func (s *Subject) Is(name string) bool {
	return SameName(s.Name, name)
}
