package prefs

import (
	"context"

	"github.com/goliatone/go-prefs/pkg/event"
)

// onHistoryEvent runs after every history mutation: it persists the touched
// setting in instant mode and forwards the change to the event hooks.
func (m *Model) onHistoryEvent(e HistoryEvent) {
	s := m.settings[e.Change.Breadcrumb]
	if m.instant && s != nil {
		_ = s.saveValue(m.adapter) // best effort; Save re-walks every setting
	}
	input := event.ChangeInput{
		Breadcrumb: e.Change.Breadcrumb,
		OldValue:   e.Change.OldValue,
		NewValue:   e.Change.NewValue,
	}
	if s != nil {
		input.Title = s.Title()
	}
	switch e.Action {
	case HistoryCommit:
		m.emit(event.BuildSettingChangedEvent(input))
	case HistoryUndo:
		m.emit(event.BuildHistoryUndoneEvent(input))
	case HistoryRedo:
		m.emit(event.BuildHistoryRedoneEvent(input))
	}
}

// emit forwards ev to the configured hooks, stamping the session actor onto
// events that do not carry one. Emission is best effort: hook failures
// never fail the operation that produced the event.
func (m *Model) emit(ev event.Event) {
	if !m.emitter.Enabled() {
		return
	}
	if ev.ActorID == "" {
		ev.ActorID = m.actorID
	}
	if ev.UserID == "" {
		ev.UserID = m.userID
	}
	if ev.TenantID == "" {
		ev.TenantID = m.tenantID
	}
	_ = m.emitter.Emit(context.Background(), ev)
}
