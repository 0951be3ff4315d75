// Package usersink bridges preference events into a go-users activity sink,
// producing an audit trail of who changed which setting when.
package usersink

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-prefs/pkg/event"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook adapts preference events to a go-users ActivitySink.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify maps the event into an ActivityRecord and forwards it to the sink.
func (h Hook) Notify(ctx context.Context, evt event.Event) error {
	if h.Sink == nil {
		return nil
	}

	normalized := event.NormalizeEvent(evt)
	if normalized.Action == "" {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	objectType := "preferences"
	objectID := normalized.Breadcrumb
	if objectID != "" {
		objectType = "setting"
	} else {
		objectID = objectType
	}

	record := usertypes.ActivityRecord{
		ActorID:    parseUUID(normalized.ActorID),
		UserID:     parseUUID(normalized.UserID),
		TenantID:   parseUUID(normalized.TenantID),
		Verb:       normalized.Action,
		ObjectType: objectType,
		ObjectID:   objectID,
		Channel:    normalized.Channel,
		Data:       cloneMap(normalized.Metadata),
		OccurredAt: normalized.OccurredAt,
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = time.Now()
	}
	if normalized.Title != "" {
		record.Data = ensureData(record.Data)
		record.Data["title"] = normalized.Title
	}
	if normalized.OldValue != nil {
		record.Data = ensureData(record.Data)
		record.Data["old_value"] = normalized.OldValue
	}
	if normalized.NewValue != nil {
		record.Data = ensureData(record.Data)
		record.Data["new_value"] = normalized.NewValue
	}

	return h.Sink.Log(ctx, record)
}

func parseUUID(input string) uuid.UUID {
	value := strings.TrimSpace(input)
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func ensureData(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}

func cloneMap(src map[string]any) map[string]any {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
