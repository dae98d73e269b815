// Package server exposes HTTP handlers, including WebSocket upgrades, health
// checks, and the room presence probe.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Tyrowin/roomchat/internal/lifecycle"
	"github.com/Tyrowin/roomchat/internal/session"
	"github.com/google/uuid"
)

// WebSocketHandler upgrades GET requests from allowed origins and registers
// the new connection with the hub, which launches its pumps.
func (s *Server) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("WebSocket upgrade failed", "addr", r.RemoteAddr, "error", err)
		return
	}

	id := uuid.NewString()
	handler := lifecycle.NewHandler(s.deps, id)
	client := NewClient(conn, s.hub, handler, id, r.RemoteAddr, s.cfg, s.log)

	if !s.hub.Register(client) {
		s.log.Warn("Hub is shutting down; closing new connection", "conn_id", id)
		_ = conn.Close()
	}
}

// HealthHandler provides a simple health check endpoint that returns server status.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = fmt.Fprintf(w, "RoomChat server is running!")
}

type roomList struct {
	Rooms []string `json:"rooms"`
}

// RoomsHandler lists the rooms that currently have members.
func (s *Server) RoomsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(roomList{Rooms: s.registry.Rooms()}); err != nil {
		s.log.Error("Error writing room list", "error", err)
	}
}

// RoomHandler reports who is currently in a room.
func (s *Server) RoomHandler(w http.ResponseWriter, r *http.Request) {
	room := session.Normalize(r.PathValue("room"))
	if room == "" {
		http.Error(w, "room is required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.router.RoomSnapshot(room)); err != nil {
		s.log.Error("Error writing room snapshot", "room", room, "error", err)
	}
}
