// Package lifecycle sequences a single connection through join, chat and
// leave, turning each inbound event into registry updates, room broadcasts
// and an acknowledgement.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Tyrowin/roomchat/internal/apperrors"
	"github.com/Tyrowin/roomchat/internal/contract"
	"github.com/Tyrowin/roomchat/internal/message"
	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/go-playground/validator/v10"
)

const (
	msgWelcome         = "Hello, welcome to the chat app"
	msgUserNotFound    = "User was not found"
	msgProfanity       = "Profanity isn't allowed!"
	msgAlreadyJoined   = "Connection has already joined a room"
	msgConnClosed      = "Connection is closed"
	msgInvalidLocation = "Location is invalid"
)

// State is the stage a connection has reached.
type State int

const (
	Connecting State = iota
	Joined
	Rejected
	Closed
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Joined:
		return "joined"
	case Rejected:
		return "rejected"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Dependencies are shared by every connection handler of a server.
type Dependencies struct {
	Log       *slog.Logger
	Sessions  contract.SessionStore
	Router    contract.Broadcaster
	Filter    contract.ProfanityFilter
	Publisher contract.ActivityPublisher
}

type coordinates struct {
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
}

var validate = validator.New()

// Handler owns the state of one connection. Methods return nil to
// acknowledge success or an *apperrors.Error whose text goes back to the
// client.
type Handler struct {
	deps         Dependencies
	connectionID string
	log          *slog.Logger

	mu    sync.Mutex
	state State
}

// NewHandler creates the handler for a freshly accepted connection.
func NewHandler(deps Dependencies, connectionID string) *Handler {
	return &Handler{
		deps:         deps,
		connectionID: connectionID,
		log:          deps.Log.With("conn_id", connectionID),
		state:        Connecting,
	}
}

// State returns the connection's current stage.
func (h *Handler) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Join claims username in room. On success the joiner gets a welcome notice,
// the other members a join notice and everyone a fresh roster.
func (h *Handler) Join(username, room string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case Joined:
		return apperrors.Validation(msgAlreadyJoined)
	case Rejected, Closed:
		return apperrors.Validation(msgConnClosed)
	}

	s, err := h.deps.Sessions.AddSession(h.connectionID, username, room)
	if err != nil {
		h.state = Rejected
		h.log.Info("Join rejected", "username", username, "room", room, "error", err)
		return err
	}
	h.state = Joined
	h.log.Info("User joined", "username", s.Username, "room", s.Room)

	h.emit(h.deps.Router.SendTo(h.connectionID, wire.EventMessage,
		message.New(message.AdminSender, msgWelcome)))
	h.emit(h.deps.Router.BroadcastToRoomExceptSender(s.Room, h.connectionID, wire.EventMessage,
		message.New(message.AdminSender, fmt.Sprintf("%s has joined the room", s.Username))))
	h.emit(h.deps.Router.BroadcastRoomData(s.Room))

	h.publish(contract.Activity{Kind: contract.ActivityJoined, Room: s.Room, Username: s.Username})
	return nil
}

// SendMessage relays text to the sender's room unless the profanity filter
// flags it.
func (h *Handler) SendMessage(text string) error {
	s, ok := h.deps.Sessions.GetSession(h.connectionID)
	if !ok {
		return apperrors.Validation(msgUserNotFound)
	}

	if h.deps.Filter.IsProfane(text) {
		h.log.Info("Message rejected by profanity filter", "room", s.Room)
		return apperrors.Policy(msgProfanity)
	}

	h.emit(h.deps.Router.BroadcastToRoom(s.Room, wire.EventMessage, message.New(s.Username, text)))
	h.publish(contract.Activity{Kind: contract.ActivityMessage, Room: s.Room, Username: s.Username, Body: text})
	return nil
}

// SendLocation shares a maps link for the coordinates with the sender's room.
func (h *Handler) SendLocation(latitude, longitude float64) error {
	s, ok := h.deps.Sessions.GetSession(h.connectionID)
	if !ok {
		return apperrors.Validation(msgUserNotFound)
	}

	if err := validate.Struct(coordinates{Latitude: latitude, Longitude: longitude}); err != nil {
		return apperrors.Validation(msgInvalidLocation)
	}

	url := message.MapsURL(latitude, longitude)
	h.emit(h.deps.Router.BroadcastToRoom(s.Room, wire.EventLocationMessage, message.NewLocation(s.Username, url)))
	h.publish(contract.Activity{Kind: contract.ActivityLocation, Room: s.Room, Username: s.Username, Body: url})
	return nil
}

// Disconnect releases the connection's session. Remaining members are told
// who left and get a roster computed after the removal. Calling it more than
// once, or before a successful join, broadcasts nothing.
func (h *Handler) Disconnect() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.state = Closed

	s, ok := h.deps.Sessions.RemoveSession(h.connectionID)
	if !ok {
		return
	}
	h.log.Info("User left", "username", s.Username, "room", s.Room)

	h.emit(h.deps.Router.BroadcastToRoom(s.Room, wire.EventMessage,
		message.New(message.AdminSender, fmt.Sprintf("%s has left the chat", s.Username))))
	h.emit(h.deps.Router.BroadcastRoomData(s.Room))

	h.publish(contract.Activity{Kind: contract.ActivityLeft, Room: s.Room, Username: s.Username})
}

// emit logs a failed fan-out; delivery is best effort.
func (h *Handler) emit(err error) {
	if err != nil {
		h.log.Error("Failed to emit event", "error", err)
	}
}

func (h *Handler) publish(activity contract.Activity) {
	activity.At = time.Now().UTC()
	if err := h.deps.Publisher.Publish(context.Background(), activity); err != nil {
		h.log.Warn("Failed to mirror activity", "kind", activity.Kind, "error", err)
	}
}
