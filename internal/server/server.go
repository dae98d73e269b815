// Package server assembles the room registry, router and hub into a Server
// that serves WebSocket connections.
package server

import (
	"log/slog"

	"github.com/Tyrowin/roomchat/internal/contract"
	"github.com/Tyrowin/roomchat/internal/lifecycle"
	"github.com/Tyrowin/roomchat/internal/router"
	"github.com/Tyrowin/roomchat/internal/session"
	"github.com/gorilla/websocket"
)

// Server owns the state shared by every connection.
type Server struct {
	cfg      *Config
	log      *slog.Logger
	hub      *Hub
	registry *session.Registry
	router   *router.Router
	deps     lifecycle.Dependencies
	upgrader websocket.Upgrader
}

// New wires a Server. Call Start before serving requests.
func New(cfg *Config, log *slog.Logger, filter contract.ProfanityFilter, publisher contract.ActivityPublisher) *Server {
	cfg.Sanitize()

	hub := NewHub(log)
	registry := session.NewRegistry()
	rt := router.New(log, registry, hub)
	origins := newOriginPolicy(log, cfg.Origins())

	return &Server{
		cfg:      cfg,
		log:      log,
		hub:      hub,
		registry: registry,
		router:   rt,
		deps: lifecycle.Dependencies{
			Log:       log,
			Sessions:  registry,
			Router:    rt,
			Filter:    filter,
			Publisher: publisher,
		},
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     origins.checkOrigin,
		},
	}
}

// Start runs the hub loop in its own goroutine.
func (s *Server) Start() {
	go s.hub.Run()
	s.log.Info("Hub started and ready to manage WebSocket connections")
}

// Hub returns the connection hub for shutdown coordination.
func (s *Server) Hub() *Hub {
	return s.hub
}

// Registry returns the session registry.
func (s *Server) Registry() *session.Registry {
	return s.registry
}
