package event

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeContentSaved   Type = "content_saved"
	TypeContentDeleted Type = "content_deleted"
	TypeProjectCreated Type = "project_created"
	TypeProjectDeleted Type = "project_deleted"
)

// Channel is a domain-scoped Postgres NOTIFY channel.
// All event types within a domain share one LISTEN connection.
type Channel string

const (
	ChannelContent Channel = "content"
	ChannelProject Channel = "project"
)

var typeToChannel = map[Type]Channel{
	TypeContentSaved:   ChannelContent,
	TypeContentDeleted: ChannelContent,
	TypeProjectCreated: ChannelProject,
	TypeProjectDeleted: ChannelProject,
}

// ChannelFor returns the domain channel for a given event type.
func ChannelFor(t Type) Channel { return typeToChannel[t] }

// Event carries identifiers only, not full state.
// UserID scopes delivery: websocket clients only receive their own events.
type Event struct {
	Type      Type      `json:"type"`
	EntityID  uuid.UUID `json:"entity_id"`
	UserID    uuid.UUID `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
}

func New(eventType Type, entityID, userID uuid.UUID) Event {
	return Event{
		Type:      eventType,
		EntityID:  entityID,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
	}
}
