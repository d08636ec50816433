package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeChangeRecorded  Type = "change.recorded"
	TypeItemTypeChanged Type = "item_type.changed"
	TypeCartChanged     Type = "cart.changed"
)

type Event struct {
	ID        string `json:"id"`
	Type      Type   `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
	ActorID   string `json:"actor_id,omitempty"`
}

// New returns an event with a fresh id stamped at at.
func New(typ Type, actor string, payload any, at time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      typ,
		Payload:   payload,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
		ActorID:   actor,
	}
}

type Bus interface {
	Publish(e Event)
	// Subscribe returns a channel of events of the given types (all types when
	// none are given) and a function that closes it.
	Subscribe(types ...Type) (<-chan Event, func())
}
