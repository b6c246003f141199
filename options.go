package boardmerge

import (
	"github.com/rs/zerolog"

	"github.com/subjectlab/boardmerge/pkg/board"
)

// Option is a function that configures an Engine instance
type Option func(*config) error

// config holds engine construction settings
type config struct {
	initialBoard *board.Board
	boardFile    string
	seedFile     string
	logger       *zerolog.Logger
}

// WithBoard configures the initial board to use. The engine takes its own
// snapshot; the caller's board is not shared.
func WithBoard(b *board.Board) Option {
	return func(c *config) error {
		c.initialBoard = b
		return nil
	}
}

// WithBoardFile configures a YAML board file to load on startup. A missing
// file is not an error; the engine starts with an empty board instead.
func WithBoardFile(path string) Option {
	return func(c *config) error {
		c.boardFile = path
		return nil
	}
}

// WithSeedFile configures a lab-seed YAML file applied on startup.
func WithSeedFile(path string) Option {
	return func(c *config) error {
		c.seedFile = path
		return nil
	}
}

// WithLogger configures the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = &logger
		return nil
	}
}
