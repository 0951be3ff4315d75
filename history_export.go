package prefs

import (
	"encoding/json"
	"time"
)

// HistorySnapshot captures the committed undo stack at one point in time.
// Debug views and log sinks serialise it; the stack itself never persists
// across sessions.
type HistorySnapshot struct {
	Cursor  int       `json:"cursor"`
	Changes []Change  `json:"changes"`
	TakenAt time.Time `json:"taken_at"`
}

// Snapshot copies the current records and cursor.
func (h *History) Snapshot() HistorySnapshot {
	return HistorySnapshot{
		Cursor:  h.cursor,
		Changes: h.Changes(),
		TakenAt: time.Now(),
	}
}

// ToJSON serialises the snapshot for logging or transport.
func (s HistorySnapshot) ToJSON() ([]byte, error) {
	type alias HistorySnapshot
	return json.Marshal(alias(s))
}

// HistorySnapshotFromJSON deserialises a payload previously generated via
// ToJSON.
func HistorySnapshotFromJSON(payload []byte) (HistorySnapshot, error) {
	type alias HistorySnapshot
	var snapshot alias
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return HistorySnapshot{}, err
	}
	return HistorySnapshot(snapshot), nil
}
