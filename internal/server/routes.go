// Package server wires HTTP handlers into a ServeMux for the RoomChat
// application via routing helpers.
package server

import "net/http"

// SetupRoutes returns a ServeMux with the health check, the room listing and
// presence endpoints, and the WebSocket endpoint.
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", HealthHandler)
	mux.HandleFunc("GET /rooms", s.RoomsHandler)
	mux.HandleFunc("GET /rooms/{room}", s.RoomHandler)
	mux.HandleFunc("/ws", s.WebSocketHandler)
	return mux
}
