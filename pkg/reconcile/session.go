package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/subjectlab/boardmerge/pkg/board"
	"github.com/subjectlab/boardmerge/pkg/errors"
	"github.com/subjectlab/boardmerge/pkg/ingest"
)

// State names a session's position in the import pipeline.
type State string

// Session states.
const (
	// StateIdle is a session that has not started yet
	StateIdle State = "idle"
	// StateInternalConflicts waits on stage-one resolutions
	StateInternalConflicts State = "internal_conflicts"
	// StateBoardConflicts waits on stage-two resolutions
	StateBoardConflicts State = "board_conflicts"
	// StateDone holds a merged board ready for the caller
	StateDone State = "done"
	// StateCanceled is terminal; the board was never touched
	StateCanceled State = "canceled"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Progress is one coarse progress report emitted while a stage runs.
type Progress struct {
	Message string
	Percent int
}

// ProgressFunc receives progress reports. It is called synchronously from
// session methods.
type ProgressFunc func(Progress)

// StageResult is what a session hands back after each step: the state it
// landed in, the conflicts that block it (if any), and the merged board once
// the pipeline completes.
type StageResult struct {
	State    State
	Internal []InternalConflict
	Board    []BoardConflict
	Merged   *board.Board
}

// Session drives one CSV import through the pipeline as an explicit state
// machine. It works on a private snapshot of the board; the caller's board is
// only replaced when the caller takes Merged from a done result. A session is
// single-use and not safe for concurrent use.
type Session struct {
	board    *board.Board
	dataset  *ingest.Dataset
	cls      *Classification
	state    State
	logger   zerolog.Logger
	progress ProgressFunc
}

// SessionOption configures a session.
type SessionOption func(*Session)

// WithLogger sets the session's logger.
func WithLogger(logger zerolog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithProgress sets a callback for coarse progress reports.
func WithProgress(fn ProgressFunc) SessionOption {
	return func(s *Session) {
		s.progress = fn
	}
}

// NewSession creates an idle session over a snapshot of the given board.
func NewSession(b *board.Board, opts ...SessionOption) *Session {
	s := &Session{
		board:  b.Clone(),
		state:  StateIdle,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the session's current state.
func (s *Session) State() State {
	return s.state
}

// Start normalizes the rows and runs the internal validation stage. Malformed
// input is terminal. With no internal conflicts the session advances straight
// into classification, and with no board conflicts either it completes in one
// call.
func (s *Session) Start(rows []ingest.Row) (*StageResult, error) {
	if s.state != StateIdle {
		return nil, errors.NewPreconditionError("start import", "session already started")
	}

	s.report("normalizing rows", 10)
	dataset, err := ingest.Normalize(rows)
	if err != nil {
		s.state = StateCanceled
		return nil, err
	}

	s.report("validating import", 25)
	clean, internal := ValidateDataset(dataset)
	s.dataset = clean

	if len(internal) > 0 {
		s.state = StateInternalConflicts
		s.logger.Info().Int("conflicts", len(internal)).Msg("import blocked on internal conflicts")
		return &StageResult{State: s.state, Internal: internal}, nil
	}

	return s.classify()
}

// ResolveInternal applies stage-one resolutions and re-validates. If the
// resolutions themselves introduce new contradictions the session stays in
// StateInternalConflicts with the fresh conflict list.
func (s *Session) ResolveInternal(resolutions map[string]string) (*StageResult, error) {
	if s.state != StateInternalConflicts {
		return nil, errors.NewPreconditionError("resolve internal conflicts",
			"session is in state "+s.state.String())
	}

	clean, remaining, err := ResolveDataset(s.dataset, resolutions)
	if err != nil {
		return nil, err
	}
	s.dataset = clean

	if len(remaining) > 0 {
		s.logger.Info().Int("conflicts", len(remaining)).Msg("resolutions left internal conflicts open")
		return &StageResult{State: s.state, Internal: remaining}, nil
	}

	return s.classify()
}

// ResolveBoard applies stage-two resolutions and produces the merged board.
func (s *Session) ResolveBoard(resolutions map[string]Resolution) (*StageResult, error) {
	if s.state != StateBoardConflicts {
		return nil, errors.NewPreconditionError("resolve board conflicts",
			"session is in state "+s.state.String())
	}
	return s.apply(resolutions)
}

// Cancel abandons the import. The caller's board was never touched; the
// session becomes unusable.
func (s *Session) Cancel() error {
	if s.state == StateDone {
		return errors.NewPreconditionError("cancel import", "import already completed")
	}
	s.state = StateCanceled
	s.logger.Info().Msg("import canceled")
	return nil
}

// classify runs stage two and either blocks on its conflicts or finishes the
// import outright.
func (s *Session) classify() (*StageResult, error) {
	s.report("classifying against board", 50)
	s.cls = Classify(s.board, s.dataset)

	if s.cls.HasConflicts() {
		s.state = StateBoardConflicts
		s.logger.Info().
			Int("conflicts", len(s.cls.Conflicts)).
			Int("auto_merges", len(s.cls.AutoMerges)).
			Msg("import blocked on board conflicts")
		return &StageResult{State: s.state, Board: s.cls.Conflicts}, nil
	}

	return s.apply(nil)
}

// apply merges the dataset into the snapshot and completes the session.
func (s *Session) apply(resolutions map[string]Resolution) (*StageResult, error) {
	s.report("applying import", 75)
	merged, err := Apply(s.board, s.dataset, s.cls, resolutions)
	if err != nil {
		return nil, err
	}

	s.state = StateDone
	s.report("import complete", 100)
	s.logger.Info().
		Int("subjects", len(merged.Subjects())).
		Int("terms", len(merged.Terms())).
		Msg("import applied")
	return &StageResult{State: s.state, Merged: merged}, nil
}

// report forwards a progress event when a callback is configured.
func (s *Session) report(message string, percent int) {
	if s.progress == nil {
		return
	}
	s.progress(Progress{Message: message, Percent: percent})
}
