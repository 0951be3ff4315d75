package prefs

import (
	"time"

	"github.com/google/uuid"
)

// Change is one committed mutation of a bound value. Records are immutable:
// both value snapshots are deep copies taken at record time, so later list
// or map mutations never leak into history.
type Change struct {
	ID         uuid.UUID `json:"id"`
	Breadcrumb string    `json:"breadcrumb"`
	OldValue   any       `json:"old_value"`
	NewValue   any       `json:"new_value"`
	Seq        uint64    `json:"seq"`
	At         time.Time `json:"at"`
}

// HistoryAction identifies what a history notification reports.
type HistoryAction int

const (
	// HistoryCommit signals a change appended to the record list.
	HistoryCommit HistoryAction = iota
	// HistoryUndo signals a record replayed backwards.
	HistoryUndo
	// HistoryRedo signals a record replayed forwards.
	HistoryRedo
)

func (a HistoryAction) String() string {
	switch a {
	case HistoryCommit:
		return "commit"
	case HistoryUndo:
		return "undo"
	case HistoryRedo:
		return "redo"
	default:
		return "unknown"
	}
}

// HistoryEvent is delivered to history observers after the history has
// mutated and the bound value reflects the new state.
type HistoryEvent struct {
	Action HistoryAction
	Change Change
}
