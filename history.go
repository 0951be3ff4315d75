package prefs

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-prefs/internal/clone"
)

type historyState int

const (
	historyIdle historyState = iota
	historyRecording
)

// pendingChange is one coalescing slot inside an open transaction. The first
// write to a target fixes OldValue; later writes only move NewValue.
type pendingChange struct {
	breadcrumb string
	oldValue   any
	newValue   any
}

// HistoryOption configures a History instance.
type HistoryOption func(*History)

// WithHistoryObserver registers fn to run after every history mutation. The
// callback runs synchronously on the owning goroutine.
func WithHistoryObserver(fn func(HistoryEvent)) HistoryOption {
	return func(h *History) {
		if fn != nil {
			h.observers = append(h.observers, fn)
		}
	}
}

// History is the linear undo stack over a session's settings. Records before
// the cursor are undoable, records at or past it are redoable; appending
// truncates everything from the cursor on. Session-scoped: history is never
// persisted. Not safe for concurrent use; a single goroutine owns the model.
type History struct {
	records   []Change
	cursor    int
	seq       uint64
	state     historyState
	pending   []pendingChange
	targets   map[string]Value
	replaying bool
	observers []func(HistoryEvent)
}

// NewHistory constructs an empty history.
func NewHistory(opts ...HistoryOption) *History {
	h := &History{targets: map[string]Value{}}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Attach registers a setting so its writes are recorded and its breadcrumb
// resolves during replay. Writes performed by Undo and Redo themselves are
// not observed as new edits.
func (h *History) Attach(s *Setting) {
	crumb := s.breadcrumb
	h.targets[crumb] = s.value
	s.value.Watch(func(old, new any) {
		if h.replaying {
			return
		}
		h.Record(crumb, old, new)
	})
}

// BeginTransaction opens a coalescing span. No-op when one is already open;
// transactions do not nest.
func (h *History) BeginTransaction() {
	if h.state == historyRecording {
		return
	}
	h.state = historyRecording
	h.pending = h.pending[:0]
}

// Record notes one mutation. Inside an open transaction, consecutive writes
// to the same target collapse into one slot keeping the earliest old value.
// While idle it commits a single-entry step immediately.
func (h *History) Record(breadcrumb string, oldValue, newValue any) {
	oldValue = clone.Any(oldValue)
	newValue = clone.Any(newValue)

	if h.state == historyRecording {
		for i := range h.pending {
			if h.pending[i].breadcrumb == breadcrumb {
				h.pending[i].newValue = newValue
				return
			}
		}
		h.pending = append(h.pending, pendingChange{
			breadcrumb: breadcrumb,
			oldValue:   oldValue,
			newValue:   newValue,
		})
		return
	}

	h.append(breadcrumb, oldValue, newValue)
}

// CommitTransaction closes the open span and appends one record per touched
// target in first-touch order. No-op while idle. Slots whose value ended up
// back where it started are dropped.
func (h *History) CommitTransaction() {
	if h.state != historyRecording {
		return
	}
	h.state = historyIdle
	for _, p := range h.pending {
		if equalValues(p.oldValue, p.newValue) {
			continue
		}
		h.append(p.breadcrumb, p.oldValue, p.newValue)
	}
	h.pending = h.pending[:0]
}

// InTransaction reports whether a coalescing span is open.
func (h *History) InTransaction() bool {
	return h.state == historyRecording
}

// Undo steps the cursor back one record and restores that record's old
// value. An open transaction is committed first. Reports whether a record
// was applied; at the bottom of the stack it is a no-op.
func (h *History) Undo() bool {
	h.CommitTransaction()
	if h.cursor == 0 {
		return false
	}
	h.cursor--
	rec := h.records[h.cursor]
	h.apply(rec.Breadcrumb, rec.OldValue)
	h.notify(HistoryEvent{Action: HistoryUndo, Change: rec})
	return true
}

// Redo reapplies the record at the cursor and steps forward. An open
// transaction is committed first, which truncates the redoable tail, so a
// redo straight after recording inside a transaction is a no-op.
func (h *History) Redo() bool {
	h.CommitTransaction()
	if h.cursor >= len(h.records) {
		return false
	}
	rec := h.records[h.cursor]
	h.apply(rec.Breadcrumb, rec.NewValue)
	h.cursor++
	h.notify(HistoryEvent{Action: HistoryRedo, Change: rec})
	return true
}

// CanUndo reports whether Undo would apply a record.
func (h *History) CanUndo() bool {
	if h.state == historyRecording {
		for _, p := range h.pending {
			if !equalValues(p.oldValue, p.newValue) {
				return true
			}
		}
	}
	return h.cursor > 0
}

// CanRedo reports whether Redo would apply a record.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.records)
}

// DiscardAll rolls every touched setting back to its value at session start
// and leaves the cursor at zero. An open transaction is committed first so
// its writes roll back too.
func (h *History) DiscardAll() {
	h.CommitTransaction()
	for h.cursor > 0 {
		h.Undo()
	}
}

// Len returns the number of committed records.
func (h *History) Len() int { return len(h.records) }

// Cursor returns the current cursor position in [0, Len()].
func (h *History) Cursor() int { return h.cursor }

// Changes returns a copy of the committed records in commit order.
func (h *History) Changes() []Change {
	out := make([]Change, len(h.records))
	copy(out, h.records)
	return out
}

// WithoutRecording runs fn with change recording suspended. The model loads
// stored values through this so startup loads never become undoable edits.
func (h *History) WithoutRecording(fn func()) {
	prev := h.replaying
	h.replaying = true
	defer func() { h.replaying = prev }()
	fn()
}

func (h *History) append(breadcrumb string, oldValue, newValue any) {
	h.records = h.records[:h.cursor]
	h.seq++
	rec := Change{
		ID:         uuid.New(),
		Breadcrumb: breadcrumb,
		OldValue:   oldValue,
		NewValue:   newValue,
		Seq:        h.seq,
		At:         time.Now(),
	}
	h.records = append(h.records, rec)
	h.cursor = len(h.records)
	h.notify(HistoryEvent{Action: HistoryCommit, Change: rec})
}

// apply writes v onto the record's target with recording suspended. Targets
// detached since recording (never the case for a model-owned tree) are
// skipped; the value round-trips through the same cell that produced it, so
// a set failure here cannot happen and is ignored.
func (h *History) apply(breadcrumb string, v any) {
	target, ok := h.targets[breadcrumb]
	if !ok {
		return
	}
	prev := h.replaying
	h.replaying = true
	defer func() { h.replaying = prev }()
	_ = target.Set(clone.Any(v))
}

func (h *History) notify(event HistoryEvent) {
	for _, fn := range h.observers {
		fn(event)
	}
}
