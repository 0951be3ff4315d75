package event

import "time"

// Actions emitted by the preferences model. Hooks filter on these instead
// of string literals.
const (
	ActionSettingChanged    = "setting.changed"
	ActionHistoryUndo       = "history.undo"
	ActionHistoryRedo       = "history.redo"
	ActionSettingsLoaded    = "settings.loaded"
	ActionSettingsSaved     = "settings.saved"
	ActionSettingsDiscarded = "settings.discarded"
	ActionCategoryDisplayed = "category.displayed"
	ActionSearchApplied     = "search.applied"
	ActionSearchCleared     = "search.cleared"
)

// ChangeInput describes one value mutation for event construction.
type ChangeInput struct {
	Breadcrumb string
	Title      string
	OldValue   any
	NewValue   any
	ActorID    string
	UserID     string
	TenantID   string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildSettingChangedEvent constructs an event for a committed value change.
func BuildSettingChangedEvent(input ChangeInput) Event {
	return buildChangeEvent(ActionSettingChanged, input)
}

// BuildHistoryUndoneEvent constructs an event for a replayed-backwards change.
func BuildHistoryUndoneEvent(input ChangeInput) Event {
	return buildChangeEvent(ActionHistoryUndo, input)
}

// BuildHistoryRedoneEvent constructs an event for a replayed-forwards change.
func BuildHistoryRedoneEvent(input ChangeInput) Event {
	return buildChangeEvent(ActionHistoryRedo, input)
}

func buildChangeEvent(action string, input ChangeInput) Event {
	return Event{
		Action:     action,
		Breadcrumb: input.Breadcrumb,
		Title:      input.Title,
		OldValue:   input.OldValue,
		NewValue:   input.NewValue,
		ActorID:    input.ActorID,
		UserID:     input.UserID,
		TenantID:   input.TenantID,
		Channel:    input.Channel,
		Metadata:   cloneMap(input.Metadata),
		OccurredAt: input.OccurredAt,
	}
}
