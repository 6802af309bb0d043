package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewAiIndexUpdated(t *testing.T) {
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	var e Event = NewAiIndexUpdated(12, true, at)

	assert.Equal(t, "AI_INDEX_UPDATED", e.EventType())
	assert.Equal(t, at, e.Timestamp())
	assert.Equal(t, 12, e.Payload()["indexed"])
	assert.Equal(t, true, e.Payload()["async"])
	assert.Equal(t, "2025-05-01T10:00:00Z", e.Payload()["occurredAt"])
}
