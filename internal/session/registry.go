// Package session keeps the table of live connections and the room each one
// has joined. It is the only mutable state shared between connections.
package session

import (
	"strings"
	"sync"

	"github.com/Tyrowin/roomchat/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

const (
	msgRequired      = "Username and room are required!"
	msgUsernameInUse = "Username is in use!"
	msgAlreadyJoined = "Connection has already joined a room"
)

// Session binds one connection to a normalized username and room.
// Values are copies; changing a field never affects the registry.
type Session struct {
	ConnectionID string
	Username     string
	Room         string
}

type joinRequest struct {
	ConnectionID string `validate:"required"`
	Username     string `validate:"required"`
	Room         string `validate:"required"`
}

// Normalize trims and lower-cases a username or room name.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Registry maps connection ids to sessions.
//
// Every mutation holds the write lock for the whole check-then-act sequence,
// so two concurrent joins for the same username and room cannot both succeed.
type Registry struct {
	mu        sync.RWMutex
	validate  *validator.Validate
	order     []string                     // connection ids in insertion order
	byConn    map[string]Session           // connection id -> session
	usernames map[string]map[string]string // room -> username -> connection id
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		validate:  validator.New(),
		byConn:    make(map[string]Session),
		usernames: make(map[string]map[string]string),
	}
}

// AddSession normalizes the username and room and stores a new session.
// It fails with a validation error when either field is blank and with a
// conflict error when the username is already taken in that room.
func (r *Registry) AddSession(connectionID, rawUsername, rawRoom string) (Session, error) {
	request := joinRequest{
		ConnectionID: connectionID,
		Username:     Normalize(rawUsername),
		Room:         Normalize(rawRoom),
	}
	if err := r.validate.Struct(request); err != nil {
		return Session{}, apperrors.Validation(msgRequired)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byConn[connectionID]; exists {
		return Session{}, apperrors.Conflict(msgAlreadyJoined)
	}
	if _, taken := r.usernames[request.Room][request.Username]; taken {
		return Session{}, apperrors.Conflict(msgUsernameInUse)
	}

	s := Session{
		ConnectionID: connectionID,
		Username:     request.Username,
		Room:         request.Room,
	}
	r.byConn[connectionID] = s
	r.order = append(r.order, connectionID)
	if _, ok := r.usernames[s.Room]; !ok {
		r.usernames[s.Room] = make(map[string]string)
	}
	r.usernames[s.Room][s.Username] = connectionID

	return s, nil
}

// RemoveSession deletes the session owned by connectionID and returns it.
// Unknown ids are a no-op, so a double disconnect is safe.
func (r *Registry) RemoveSession(connectionID string) (Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byConn[connectionID]
	if !ok {
		return Session{}, false
	}

	delete(r.byConn, connectionID)
	r.order = lo.Without(r.order, connectionID)
	if members, ok := r.usernames[s.Room]; ok {
		delete(members, s.Username)
		if len(members) == 0 {
			delete(r.usernames, s.Room)
		}
	}

	return s, true
}

// GetSession returns the session owned by connectionID, if any.
func (r *Registry) GetSession(connectionID string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byConn[connectionID]
	return s, ok
}

// ListRoom returns the sessions in room, in the order they joined.
// The room argument is normalized before matching.
func (r *Registry) ListRoom(room string) []Session {
	room = Normalize(room)

	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := lo.Map(r.order, func(id string, _ int) Session {
		return r.byConn[id]
	})
	return lo.Filter(sessions, func(s Session, _ int) bool {
		return s.Room == room
	})
}

// Rooms returns the distinct rooms that currently have members, in the order
// their earliest remaining member joined.
func (r *Registry) Rooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Uniq(lo.Map(r.order, func(id string, _ int) string {
		return r.byConn[id].Room
	}))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byConn)
}
