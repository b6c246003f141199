package boardmerge

import (
	"sync"

	"github.com/subjectlab/boardmerge/pkg/board"
)

// Hook function types for board events
type (
	// SubjectAddedHook is called when a subject is added to the board
	SubjectAddedHook func(subject board.Subject)

	// SubjectMovedHook is called when a subject changes category
	SubjectMovedHook func(subject board.Subject, fromCategory, toCategory string)

	// TermAddedHook is called when a term is added to the board
	TermAddedHook func(term board.Term)
)

// hooks manages event callbacks for board changes
type hooks struct {
	mu             sync.RWMutex
	onSubjectAdded []SubjectAddedHook
	onSubjectMoved []SubjectMovedHook
	onTermAdded    []TermAddedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnSubjectAdded registers a callback for when subjects are added
func (h *hooks) OnSubjectAdded(fn SubjectAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSubjectAdded = append(h.onSubjectAdded, fn)
}

// OnSubjectMoved registers a callback for when subjects change category
func (h *hooks) OnSubjectMoved(fn SubjectMovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSubjectMoved = append(h.onSubjectMoved, fn)
}

// OnTermAdded registers a callback for when terms are added
func (h *hooks) OnTermAdded(fn TermAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTermAdded = append(h.onTermAdded, fn)
}

// triggerBoardUpdate compares old and new snapshots and fires the appropriate
// hooks for every subject that appeared or moved and every term that
// appeared. Callbacks receive copies; they cannot reach into engine state.
func (h *hooks) triggerBoardUpdate(oldBoard, newBoard *board.Board) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	type location struct {
		categoryID   string
		categoryName string
	}
	oldSubjects := map[string]location{} // subject key -> holding category
	for _, c := range oldBoard.Categories() {
		for _, s := range c.Subjects {
			oldSubjects[board.Key(s.Name)] = location{categoryID: c.ID, categoryName: c.Name}
		}
	}
	oldTerms := map[string]struct{}{}
	for _, t := range oldBoard.Terms() {
		oldTerms[board.Key(t.Text)] = struct{}{}
	}

	for _, c := range newBoard.Categories() {
		for _, s := range c.Subjects {
			from, existed := oldSubjects[board.Key(s.Name)]
			switch {
			case !existed:
				for _, fn := range h.onSubjectAdded {
					fn(*s)
				}
			// Compared by ID so a category rename does not read as a move.
			case from.categoryID != c.ID:
				for _, fn := range h.onSubjectMoved {
					fn(*s, from.categoryName, c.Name)
				}
			}
		}
	}

	for _, t := range newBoard.Terms() {
		if _, existed := oldTerms[board.Key(t.Text)]; !existed {
			for _, fn := range h.onTermAdded {
				fn(*t)
			}
		}
	}
}
