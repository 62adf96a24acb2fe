// Package ledger holds the ordered delivery record that is the single
// source of truth for a match. The ledger is append-only except for
// truncation during undo; a redo stack retains truncated balls until a
// fresh append discards them.
package ledger

import "github.com/ayush9889/score-wise/internal/domain/model"

// Ledger is an ordered sequence of Ball records with undo/redo support.
// It is not safe for concurrent use; the owning scorer serializes access.
type Ledger struct {
	balls []model.Ball
	redo  []model.Ball
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Len returns the number of appended balls.
func (l *Ledger) Len() int {
	return len(l.balls)
}

// Balls returns a copy of the appended sequence in order. Callers must
// never mutate a Ball that has been appended.
func (l *Ledger) Balls() []model.Ball {
	out := make([]model.Ball, len(l.balls))
	copy(out, l.balls)
	return out
}

// Append assigns the next sequence index to b, appends it, and discards
// any redo history. Branching history is not supported: once a new ball
// is appended after an undo, the undone balls are gone.
func (l *Ledger) Append(b model.Ball) model.Ball {
	b.Seq = len(l.balls)
	l.balls = append(l.balls, b)
	l.redo = l.redo[:0]
	return b
}

// Undo truncates the last ball onto the redo stack. Reports false when
// the ledger is empty.
func (l *Ledger) Undo() (model.Ball, bool) {
	if len(l.balls) == 0 {
		return model.Ball{}, false
	}
	last := l.balls[len(l.balls)-1]
	l.balls = l.balls[:len(l.balls)-1]
	l.redo = append(l.redo, last)
	return last, true
}

// Redo re-appends the most recently undone ball. Reports false when the
// redo stack is empty.
func (l *Ledger) Redo() (model.Ball, bool) {
	if len(l.redo) == 0 {
		return model.Ball{}, false
	}
	b := l.redo[len(l.redo)-1]
	l.redo = l.redo[:len(l.redo)-1]
	l.balls = append(l.balls, b)
	return b, true
}

// RedoDepth returns how many undone balls can still be redone.
func (l *Ledger) RedoDepth() int {
	return len(l.redo)
}
