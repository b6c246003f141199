// Package boardmerge maintains an in-memory board of categorized subjects
// and include/exclude filter terms, and reconciles CSV imports against it
// through a two-stage, conflict-detecting merge pipeline.
//
// The Engine owns the current board snapshot and replaces it wholesale after
// each accepted change (copy-on-write). Direct mutations go through the
// engine's passthrough methods; bulk CSV imports go through a
// reconcile.Session obtained from NewImport, whose merged result is handed
// back via Accept. Change hooks observe accepted snapshots.
package boardmerge

import (
	stderrors "errors"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/logging"
	"github.com/subjectlab/boardmerge/pkg/reconcile"
)

// Engine manages a board with conflict-detecting imports and event hooks
type Engine interface {
	// Board returns a snapshot of the current board
	Board() *board.Board

	// AddSubject adds a subject through the board's identity checks
	AddSubject(sub board.Subject) (*board.Subject, error)

	// MoveSubject reassigns a subject to another category
	MoveSubject(id, categoryID string) error

	// RemoveSubject deletes a subject
	RemoveSubject(id string) error

	// AddCategory creates a custom category
	AddCategory(name string) (*board.Category, error)

	// RenameCategory renames a custom category
	RenameCategory(id, name string) error

	// DeleteCategory removes a category, applying the given strategy to its
	// subjects when it is not empty
	DeleteCategory(id string, strategy board.DeleteStrategy) error

	// AddTerm adds an include or exclude term
	AddTerm(text string, direction board.Direction) (*board.Term, error)

	// SetTermDirection flips a term between include and exclude
	SetTermDirection(id string, direction board.Direction) error

	// ResolveExcludeTerm settles an ExcludeTermConflict returned by AddSubject,
	// AddTerm, or SetTermDirection
	ResolveExcludeTerm(conflict *board.ExcludeTermConflict, resolution board.ExcludeResolution) error

	// RemoveTerm deletes a term
	RemoveTerm(text string, direction board.Direction) error

	// NewImport opens an import session over a snapshot of the current board
	NewImport(opts ...reconcile.SessionOption) *reconcile.Session

	// Accept swaps in a merged board produced by a completed import session
	Accept(merged *board.Board) error

	// Seed applies a lab-seed file to the board
	Seed(path string) (*board.SeedReport, error)

	// Save persists the current board to its configured file, or to the given
	// path when one is provided
	Save(path string) error

	// OnSubjectAdded registers a callback for when subjects are added
	OnSubjectAdded(SubjectAddedHook)

	// OnSubjectMoved registers a callback for when subjects change category
	OnSubjectMoved(SubjectMovedHook)

	// OnTermAdded registers a callback for when terms are added
	OnTermAdded(TermAddedHook)
}

// engine is the internal implementation of the Engine interface
type engine struct {
	mu     sync.RWMutex
	board  *board.Board
	config *config
	logger zerolog.Logger

	// Event hooks
	hooks *hooks
}

// New creates a new Engine instance with the given options
func New(opts ...Option) (Engine, error) {
	cfg := &config{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	e := &engine{
		config: cfg,
		logger: *logging.Default(),
		hooks:  newHooks(),
	}
	if cfg.logger != nil {
		e.logger = *cfg.logger
	}

	switch {
	case cfg.initialBoard != nil:
		e.board = cfg.initialBoard.Clone()
	case cfg.boardFile != "":
		b, err := board.Load(cfg.boardFile)
		switch {
		case err == nil:
			e.board = b
		case stderrors.Is(err, fs.ErrNotExist):
			e.board = board.New()
		default:
			return nil, err
		}
	default:
		e.board = board.New()
	}

	if cfg.seedFile != "" {
		report, err := e.Seed(cfg.seedFile)
		if err != nil {
			return nil, err
		}
		e.logger.Info().
			Str("file", cfg.seedFile).
			Int("subjects", report.SubjectsAdded).
			Int("terms", report.TermsAdded).
			Msg("seed applied")
	}

	return e, nil
}

// Board returns a snapshot of the current board
func (e *engine) Board() *board.Board {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.Clone()
}

// mutate runs fn against a clone of the current board and swaps the clone in
// when fn succeeds, firing change hooks against the difference. Errors leave
// the current board untouched.
func (e *engine) mutate(fn func(b *board.Board) error) error {
	e.mu.Lock()
	old := e.board
	next := old.Clone()
	if err := fn(next); err != nil {
		e.mu.Unlock()
		return err
	}
	e.board = next
	e.mu.Unlock()

	e.hooks.triggerBoardUpdate(old, next)
	return nil
}

// AddSubject adds a subject through the board's identity checks
func (e *engine) AddSubject(sub board.Subject) (*board.Subject, error) {
	if sub.Source == "" {
		sub.Source = board.SourceManual
	}
	var added *board.Subject
	err := e.mutate(func(b *board.Board) error {
		var err error
		added, err = b.AddSubject(sub)
		return err
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug().Str("subject", added.Name).Str("category", added.CategoryID).Msg("subject added")
	return added, nil
}

// MoveSubject reassigns a subject to another category
func (e *engine) MoveSubject(id, categoryID string) error {
	return e.mutate(func(b *board.Board) error {
		return b.MoveSubject(id, categoryID)
	})
}

// RemoveSubject deletes a subject
func (e *engine) RemoveSubject(id string) error {
	return e.mutate(func(b *board.Board) error {
		return b.RemoveSubject(id)
	})
}

// AddCategory creates a custom category
func (e *engine) AddCategory(name string) (*board.Category, error) {
	var added *board.Category
	err := e.mutate(func(b *board.Board) error {
		var err error
		added, err = b.AddCategory(name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// RenameCategory renames a custom category
func (e *engine) RenameCategory(id, name string) error {
	return e.mutate(func(b *board.Board) error {
		return b.RenameCategory(id, name)
	})
}

// DeleteCategory removes a category
func (e *engine) DeleteCategory(id string, strategy board.DeleteStrategy) error {
	return e.mutate(func(b *board.Board) error {
		return b.DeleteCategory(id, strategy)
	})
}

// AddTerm adds an include or exclude term
func (e *engine) AddTerm(text string, direction board.Direction) (*board.Term, error) {
	var added *board.Term
	err := e.mutate(func(b *board.Board) error {
		var err error
		added, err = b.AddTerm(text, direction, board.SourceManual)
		return err
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// SetTermDirection flips a term between include and exclude
func (e *engine) SetTermDirection(id string, direction board.Direction) error {
	return e.mutate(func(b *board.Board) error {
		return b.SetTermDirection(id, direction)
	})
}

// ResolveExcludeTerm settles an ExcludeTermConflict
func (e *engine) ResolveExcludeTerm(conflict *board.ExcludeTermConflict, resolution board.ExcludeResolution) error {
	return e.mutate(func(b *board.Board) error {
		return b.ResolveExcludeTerm(conflict, resolution, board.SourceManual)
	})
}

// RemoveTerm deletes a term
func (e *engine) RemoveTerm(text string, direction board.Direction) error {
	return e.mutate(func(b *board.Board) error {
		return b.RemoveTerm(text, direction)
	})
}

// NewImport opens an import session over a snapshot of the current board.
// The session never touches the engine's board; hand its merged result to
// Accept to commit the import.
func (e *engine) NewImport(opts ...reconcile.SessionOption) *reconcile.Session {
	e.mu.RLock()
	defer e.mu.RUnlock()
	opts = append([]reconcile.SessionOption{reconcile.WithLogger(e.logger)}, opts...)
	return reconcile.NewSession(e.board, opts...)
}

// Accept swaps in a merged board produced by a completed import session
func (e *engine) Accept(merged *board.Board) error {
	if merged == nil {
		return errors.NewValidationError("merged", merged, "merged board cannot be nil")
	}

	e.mu.Lock()
	old := e.board
	e.board = merged.Clone()
	next := e.board
	e.mu.Unlock()

	e.hooks.triggerBoardUpdate(old, next)
	e.logger.Info().
		Int("subjects", len(next.Subjects())).
		Int("terms", len(next.Terms())).
		Msg("import accepted")
	return nil
}

// Seed applies a lab-seed file to the board
func (e *engine) Seed(path string) (*board.SeedReport, error) {
	seed, err := board.LoadSeed(path)
	if err != nil {
		return nil, err
	}

	var report *board.SeedReport
	err = e.mutate(func(b *board.Board) error {
		var err error
		report, err = b.ApplySeed(seed)
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Save persists the current board to its configured file, or to the given
// path when one is provided
func (e *engine) Save(path string) error {
	if path == "" {
		path = e.config.boardFile
	}
	if path == "" {
		return errors.NewValidationError("path", path, "no board file configured")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.Save(path)
}

// OnSubjectAdded registers a callback for when subjects are added
func (e *engine) OnSubjectAdded(fn SubjectAddedHook) {
	e.hooks.OnSubjectAdded(fn)
}

// OnSubjectMoved registers a callback for when subjects change category
func (e *engine) OnSubjectMoved(fn SubjectMovedHook) {
	e.hooks.OnSubjectMoved(fn)
}

// OnTermAdded registers a callback for when terms are added
func (e *engine) OnTermAdded(fn TermAddedHook) {
	e.hooks.OnTermAdded(fn)
}
