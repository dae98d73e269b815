// Package router resolves room membership from the session registry on every
// call and fans encoded events out to the members' connections.
package router

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/Tyrowin/roomchat/internal/contract"
	"github.com/Tyrowin/roomchat/internal/session"
	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/samber/lo"
)

// RoomLister is the registry query the router is built on.
type RoomLister interface {
	ListRoom(room string) []session.Session
}

// Router never caches membership: each broadcast reads the registry, so joins
// and leaves are visible to the very next call.
type Router struct {
	sessions RoomLister
	delivery contract.Delivery
	log      *slog.Logger

	// rosterMu orders roster fan-outs so an older roster is never
	// delivered after a newer one.
	rosterMu sync.Mutex
}

// New creates a Router that resolves rooms through sessions and reaches
// connections through delivery.
func New(log *slog.Logger, sessions RoomLister, delivery contract.Delivery) *Router {
	return &Router{sessions: sessions, delivery: delivery, log: log}
}

// SendTo delivers an event to a single connection.
func (r *Router) SendTo(connectionID, event string, payload any) error {
	frame, err := wire.Encode(event, payload)
	if err != nil {
		return err
	}
	if !r.delivery.Deliver(connectionID, frame) {
		r.log.Warn("Dropped event for unreachable connection",
			"conn_id", connectionID, "event", event)
	}
	return nil
}

// BroadcastToRoom delivers an event to every member of room, the sender included.
func (r *Router) BroadcastToRoom(room, event string, payload any) error {
	return r.broadcast(room, "", event, payload)
}

// BroadcastToRoomExceptSender delivers an event to every member of room but
// the connection identified by senderConnectionID.
func (r *Router) BroadcastToRoomExceptSender(room, senderConnectionID, event string, payload any) error {
	if senderConnectionID == "" {
		return fmt.Errorf("broadcast %s to %q: empty sender connection id", event, room)
	}
	return r.broadcast(room, senderConnectionID, event, payload)
}

// RoomSnapshot lists the usernames present in room.
func (r *Router) RoomSnapshot(room string) wire.RoomData {
	return roster(room, r.sessions.ListRoom(room))
}

// BroadcastRoomData sends the roster of room to exactly the members it lists.
// The roster is read and queued under one lock, so members always end up
// holding the latest roster.
func (r *Router) BroadcastRoomData(room string) error {
	r.rosterMu.Lock()
	defer r.rosterMu.Unlock()

	members := r.sessions.ListRoom(room)
	frame, err := wire.Encode(wire.EventRoomData, roster(room, members))
	if err != nil {
		return err
	}

	r.deliver(room, wire.EventRoomData, frame, members)
	return nil
}

func roster(room string, members []session.Session) wire.RoomData {
	return wire.RoomData{
		Room: session.Normalize(room),
		Users: lo.Map(members, func(s session.Session, _ int) string {
			return s.Username
		}),
	}
}

func (r *Router) broadcast(room, except, event string, payload any) error {
	frame, err := wire.Encode(event, payload)
	if err != nil {
		return err
	}

	recipients := lo.Reject(r.sessions.ListRoom(room), func(s session.Session, _ int) bool {
		return s.ConnectionID == except
	})

	r.deliver(room, event, frame, recipients)
	return nil
}

func (r *Router) deliver(room, event string, frame []byte, recipients []session.Session) {
	delivered := 0
	for _, s := range recipients {
		if r.delivery.Deliver(s.ConnectionID, frame) {
			delivered++
			continue
		}
		r.log.Warn("Dropped event for unreachable member",
			"conn_id", s.ConnectionID, "room", s.Room, "event", event)
	}

	r.log.Debug("Broadcast event",
		"room", room, "event", event, "recipients", len(recipients), "delivered", delivered)
}
