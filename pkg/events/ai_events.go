package events

import "time"

const TypeAiIndexUpdated = "AI_INDEX_UPDATED"

// NewAiIndexUpdated is emitted after the semantic gateway accepted an index push.
func NewAiIndexUpdated(indexed int, async bool, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeAiIndexUpdated,
		Data: map[string]interface{}{
			"indexed":    indexed,
			"async":      async,
			"occurredAt": at.UTC().Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}
