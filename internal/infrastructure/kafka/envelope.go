package kafka

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/swenautos/escrow-service/internal/domain"
)

// Envelope is the wire format of every changelog event: one event per
// committed transition, carrying the full transition context in the payload.
type Envelope struct {
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// NewMessage wraps a payload into an enveloped Kafka message keyed for
// per-entity ordering.
func NewMessage(eventType, key string, payload interface{}) (domain.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.Message{}, err
	}
	value, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    raw,
	})
	if err != nil {
		return domain.Message{}, err
	}
	return domain.Message{Key: []byte(key), Value: value}, nil
}
