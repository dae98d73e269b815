package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Tyrowin/roomchat/internal/apperrors"
	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	joins     []wire.JoinPayload
	texts     []string
	locations []wire.LocationPayload
	err       error
}

func (h *recordingHandler) Join(username, room string) error {
	h.joins = append(h.joins, wire.JoinPayload{Username: username, Room: room})
	return h.err
}

func (h *recordingHandler) SendMessage(text string) error {
	h.texts = append(h.texts, text)
	return h.err
}

func (h *recordingHandler) SendLocation(latitude, longitude float64) error {
	h.locations = append(h.locations, wire.LocationPayload{Latitude: latitude, Longitude: longitude})
	return h.err
}

func (h *recordingHandler) Disconnect() {}

// attach registers a socketless client directly in the hub table.
func attach(t *testing.T, hub *Hub, id string, cfg *Config, handler ConnectionHandler) *Client {
	t.Helper()
	client := NewClient(nil, hub, handler, id, "test", cfg, logs.GetLoggerFromLevel(slog.LevelDebug))
	hub.mutex.Lock()
	hub.clients[id] = client
	hub.mutex.Unlock()
	return client
}

func nextAck(t *testing.T, client *Client) wire.Frame {
	t.Helper()
	select {
	case raw := <-client.send:
		var frame wire.Frame
		require.NoError(t, json.Unmarshal(raw, &frame))
		require.Equal(t, wire.EventAck, frame.Event)
		return frame
	case <-time.After(time.Second):
		t.Fatal("no acknowledgement queued")
		return wire.Frame{}
	}
}

func TestHub_Deliver(t *testing.T) {
	hub := NewHub(logs.GetLoggerFromLevel(slog.LevelDebug))
	cfg := NewConfig()
	cfg.SendBufferSize = 1

	t.Run("Unknown connection", func(t *testing.T) {
		require.False(t, hub.Deliver("nobody", []byte("x")))
	})

	t.Run("Queues frame", func(t *testing.T) {
		client := attach(t, hub, "a", cfg, &recordingHandler{})
		require.True(t, hub.Deliver("a", []byte("frame")))
		require.Equal(t, []byte("frame"), <-client.send)
	})

	t.Run("Full buffer drops the client", func(t *testing.T) {
		client := attach(t, hub, "b", cfg, &recordingHandler{})
		require.True(t, hub.Deliver("b", []byte("one")))
		require.False(t, hub.Deliver("b", []byte("two")))

		require.True(t, client.closed)
		require.Equal(t, []byte("one"), <-client.send)
		_, open := <-client.send
		require.False(t, open)
		require.False(t, hub.Deliver("b", []byte("three")))
	})

	require.Equal(t, 1, hub.ClientCount())
}

func TestHub_ShutdownWithoutClients(t *testing.T) {
	hub := NewHub(logs.GetLoggerFromLevel(slog.LevelDebug))
	go hub.Run()

	require.NoError(t, hub.Shutdown(time.Second))
	require.False(t, hub.Register(&Client{id: "late"}))
}

func TestHub_UnregisterAfterShutdownDoesNotBlock(t *testing.T) {
	hub := NewHub(logs.GetLoggerFromLevel(slog.LevelDebug))
	go hub.Run()
	require.NoError(t, hub.Shutdown(time.Second))

	done := make(chan struct{})
	go func() {
		hub.unregisterClient(&Client{id: "gone"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("unregister blocked after shutdown")
	}
}

func TestClient_Dispatch(t *testing.T) {
	hub := NewHub(logs.GetLoggerFromLevel(slog.LevelDebug))
	cfg := NewConfig()

	t.Run("Routes events to the handler", func(t *testing.T) {
		req := require.New(t)
		handler := &recordingHandler{}
		client := attach(t, hub, "routes", cfg, handler)

		client.processFrame([]byte(`{"event":"join","id":1,"data":{"username":"Alice","room":"R"}}`))
		client.processFrame([]byte(`{"event":"sendMessage","id":2,"data":{"text":"hi"}}`))
		client.processFrame([]byte(`{"event":"sendLocation","id":3,"data":{"latitude":1.5,"longitude":-2}}`))

		req.Equal([]wire.JoinPayload{{Username: "Alice", Room: "R"}}, handler.joins)
		req.Equal([]string{"hi"}, handler.texts)
		req.Equal([]wire.LocationPayload{{Latitude: 1.5, Longitude: -2}}, handler.locations)
		for id := uint64(1); id <= 3; id++ {
			ack := nextAck(t, client)
			req.Equal(id, ack.ID)
			req.Empty(ack.Error)
		}
	})

	t.Run("Handler error becomes ack text", func(t *testing.T) {
		handler := &recordingHandler{err: apperrors.Conflict("Username is in use!")}
		client := attach(t, hub, "conflict", cfg, handler)

		client.processFrame([]byte(`{"event":"join","id":4,"data":{"username":"a","room":"r"}}`))

		require.Equal(t, "Username is in use!", nextAck(t, client).Error)
	})

	t.Run("No id means no ack", func(t *testing.T) {
		client := attach(t, hub, "silent", cfg, &recordingHandler{})

		client.processFrame([]byte(`{"event":"sendMessage","data":{"text":"hi"}}`))

		require.Empty(t, client.send)
	})

	t.Run("Unknown event", func(t *testing.T) {
		client := attach(t, hub, "unknown", cfg, &recordingHandler{})
		err := client.dispatch(wire.Request{Event: "nope"})
		require.True(t, errors.Is(err, apperrors.ErrValidation))
	})
}
