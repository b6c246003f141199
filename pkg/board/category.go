package board

import "github.com/subjectlab/boardmerge/pkg/constants"

// CategoryKind distinguishes the built-in default category from user or
// import created ones.
type CategoryKind string

// Category kinds.
const (
	// CategoryDefault marks the singleton uncategorized category
	CategoryDefault CategoryKind = "default"
	// CategoryCustom marks every other category
	CategoryCustom CategoryKind = "custom"
)

// Category is a named bucket of subjects. Custom category names are unique
// case-insensitively among themselves and against the default category.
type Category struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Kind     CategoryKind `yaml:"kind"`
	Subjects []*Subject   `yaml:"subjects"`
}

// IsDefault reports whether this is the protected uncategorized category.
func (c *Category) IsDefault() bool {
	return c.Kind == CategoryDefault || c.ID == constants.UncategorizedID
}

// Len returns the number of subjects in the category.
func (c *Category) Len() int {
	return len(c.Subjects)
}

// Subject returns the subject with the given case-insensitive name, if any.
func (c *Category) Subject(name string) (*Subject, bool) {
	key := Key(name)
	for _, s := range c.Subjects {
		if Key(s.Name) == key {
			return s, true
		}
	}
	return nil, false
}

// subjectIndex returns the index of the subject with the given id, or -1.
func (c *Category) subjectIndex(id string) int {
	for i, s := range c.Subjects {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// newUncategorized constructs the default category.
func newUncategorized() *Category {
	return &Category{
		ID:   constants.UncategorizedID,
		Name: constants.UncategorizedName,
		Kind: CategoryDefault,
	}
}
