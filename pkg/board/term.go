package board

import (
	"fmt"
	"strings"

	"github.com/subjectlab/boardmerge/pkg/errors"
)

// Direction indicates whether a term includes or excludes matches.
type Direction string

// Term directions.
const (
	// Include terms may freely coexist with subjects of the same text
	Include Direction = "include"
	// Exclude terms may never share text with a subject or an include term
	Exclude Direction = "exclude"
)

// Term is a filter directive, independent of categories. Its identity key is
// the case-insensitive trimmed form of its text.
type Term struct {
	ID        string    `yaml:"id"`
	Text      string    `yaml:"text"`
	Direction Direction `yaml:"direction"`
	Source    Source    `yaml:"source"`
}

// ExcludeTermConflict is returned as an error by mutations that would leave
// an exclude term and one or more subjects sharing the same text. The caller
// must resolve it with ResolveExcludeTerm before the change can land.
type ExcludeTermConflict struct {
	// Text of the exclude term involved in the collision
	Text string
	// Subjects currently on the board whose names collide with Text
	Subjects []*Subject
}

// Error implements the error interface.
func (e *ExcludeTermConflict) Error() string {
	names := make([]string, len(e.Subjects))
	for i, s := range e.Subjects {
		names[i] = s.Name
	}
	return fmt.Sprintf("exclude term %q collides with subjects: %s", e.Text, strings.Join(names, ", "))
}

// Is implements errors.Is support.
func (e *ExcludeTermConflict) Is(target error) bool {
	return target == errors.ErrConflict
}

// ExcludeResolution selects how an ExcludeTermConflict is settled.
type ExcludeResolution string

// Exclude conflict resolutions.
const (
	// KeepExclude deletes the colliding subjects and keeps the exclude term
	KeepExclude ExcludeResolution = "keep_exclude"
	// KeepSubjects abandons the term change and leaves the board untouched
	KeepSubjects ExcludeResolution = "keep_subjects"
)
