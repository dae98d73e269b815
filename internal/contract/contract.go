//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"time"

	"github.com/Tyrowin/roomchat/internal/session"
)

// SessionStore is the registry surface used by a connection handler.
type SessionStore interface {
	AddSession(connectionID, rawUsername, rawRoom string) (session.Session, error)
	RemoveSession(connectionID string) (session.Session, bool)
	GetSession(connectionID string) (session.Session, bool)
	ListRoom(room string) []session.Session
}

// Delivery pushes an encoded frame to a single connection without blocking.
// It reports false when the connection is gone or its buffer is full.
type Delivery interface {
	Deliver(connectionID string, frame []byte) bool
}

// Broadcaster is the room router surface used by a connection handler.
type Broadcaster interface {
	SendTo(connectionID, event string, payload any) error
	BroadcastToRoom(room, event string, payload any) error
	BroadcastToRoomExceptSender(room, senderConnectionID, event string, payload any) error
	// BroadcastRoomData sends the room's current roster to the members it lists.
	BroadcastRoomData(room string) error
}

// ProfanityFilter decides whether a chat line may be relayed.
type ProfanityFilter interface {
	IsProfane(text string) bool
}

// ActivityKind names what happened in a room.
type ActivityKind string

const (
	ActivityJoined   ActivityKind = "joined"
	ActivityLeft     ActivityKind = "left"
	ActivityMessage  ActivityKind = "message"
	ActivityLocation ActivityKind = "location"
)

// Activity is a record of something that happened in a room, mirrored to
// external consumers.
type Activity struct {
	Kind     ActivityKind `json:"kind"`
	Room     string       `json:"room"`
	Username string       `json:"username"`
	Body     string       `json:"body,omitempty"`
	At       time.Time    `json:"at"`
}

// ActivityPublisher mirrors room activity to an external sink.
type ActivityPublisher interface {
	Publish(ctx context.Context, activity Activity) error
	Close() error
}
