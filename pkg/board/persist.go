package board

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/subjectlab/boardmerge/pkg/constants"
	"github.com/subjectlab/boardmerge/pkg/errors"
)

// boardFile is the YAML document a board round-trips through.
type boardFile struct {
	Categories []*Category `yaml:"categories"`
	Terms      []*Term     `yaml:"terms,omitempty"`
}

// Load reads a board snapshot from a YAML file.
func Load(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Unmarshal(data, path)
}

// Unmarshal decodes a board snapshot from YAML bytes. The default category
// is restored if the document omitted it.
func Unmarshal(data []byte, path string) (*Board, error) {
	var file boardFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	b := &Board{
		categories: file.Categories,
		terms:      file.Terms,
	}

	hasDefault := false
	for _, c := range b.categories {
		if c.Subjects == nil {
			c.Subjects = []*Subject{}
		}
		if c.IsDefault() {
			c.Kind = CategoryDefault
			hasDefault = true
		} else if c.Kind == "" {
			c.Kind = CategoryCustom
		}
		for _, s := range c.Subjects {
			s.CategoryID = c.ID
		}
	}
	if !hasDefault {
		b.categories = append([]*Category{newUncategorized()}, b.categories...)
	}

	return b, nil
}

// Save writes the board snapshot to a YAML file.
func (b *Board) Save(path string) error {
	data, err := b.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Marshal encodes the board snapshot as YAML bytes.
func (b *Board) Marshal() ([]byte, error) {
	file := boardFile{
		Categories: b.categories,
		Terms:      b.terms,
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return nil, errors.WrapParse("yaml", "", err)
	}
	return data, nil
}
