package rabbitmq

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventPayload is the envelope of every message this service publishes.
type EventPayload struct {
	ID         uuid.UUID       `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

func NewEvent(eventType string, payload any) (EventPayload, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return EventPayload{}, err
	}
	return EventPayload{
		ID:         uuid.New(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	}, nil
}
