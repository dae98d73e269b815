// Package testhelpers provides common utilities for testing the RoomChat server.
//
// It wraps the WebSocket dialer and the event envelope so tests can speak the
// wire protocol in a line or two, and offers small HTTP assertions shared by
// handler tests.
package testhelpers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// TestOrigin is the origin every helper connection presents.
const TestOrigin = "http://localhost:8080"

const defaultFrameTimeout = 2 * time.Second

// BuildWebSocketURL turns an httptest server URL into its /ws endpoint.
func BuildWebSocketURL(serverURL string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/ws"
}

// MakeRequest creates and executes an HTTP request with a 5 second timeout.
func MakeRequest(t *testing.T, method, url string) *http.Response {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequest(method, url, http.NoBody)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

// AssertStatusCode checks the HTTP response status code.
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	require.Equal(t, expected, resp.StatusCode)
}

// AssertContentType checks the HTTP response Content-Type header.
func AssertContentType(t *testing.T, resp *http.Response, expected string) {
	t.Helper()
	require.Equal(t, expected, resp.Header.Get("Content-Type"))
}

// ConnectWebSocket dials url presenting origin. The response is returned so
// callers can inspect a failed handshake.
func ConnectWebSocket(url, origin string) (*websocket.Conn, *http.Response, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}

	headers := http.Header{}
	if origin != "" {
		headers.Set("Origin", origin)
	}

	conn, resp, err := dialer.Dial(url, headers)
	if resp != nil {
		_ = resp.Body.Close()
	}
	return conn, resp, err
}

// MustConnect dials url with TestOrigin and registers cleanup.
func MustConnect(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := ConnectWebSocket(url, TestOrigin)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// SendEvent writes a request envelope.
func SendEvent(t *testing.T, conn *websocket.Conn, event string, id uint64, data any) {
	t.Helper()

	raw, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(wire.Request{Event: event, ID: id, Data: raw}))
}

// ReadFrame reads the next server frame.
func ReadFrame(t *testing.T, conn *websocket.Conn) wire.Frame {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(defaultFrameTimeout)))
	var frame wire.Frame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

// ExpectEvent reads the next frame and requires it to be event.
func ExpectEvent(t *testing.T, conn *websocket.Conn, event string) wire.Frame {
	t.Helper()

	frame := ReadFrame(t, conn)
	require.Equal(t, event, frame.Event, "unexpected frame %+v", frame)
	return frame
}

// ExpectAck reads the next frame and requires it to acknowledge id with
// errText ("" for success).
func ExpectAck(t *testing.T, conn *websocket.Conn, id uint64, errText string) {
	t.Helper()

	frame := ExpectEvent(t, conn, wire.EventAck)
	require.Equal(t, id, frame.ID)
	require.Equal(t, errText, frame.Error)
}

// DecodeData unmarshals a frame payload into v.
func DecodeData(t *testing.T, frame wire.Frame, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(frame.Data, v))
}

// ExpectNoFrame requires that nothing arrives within timeout.
func ExpectNoFrame(t *testing.T, conn *websocket.Conn, timeout time.Duration) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(timeout)))
	_, raw, err := conn.ReadMessage()
	require.Error(t, err, "unexpected frame %s", raw)
}

// CloseWebSocket sends a normal close frame and closes the connection.
func CloseWebSocket(conn *websocket.Conn) error {
	err := conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil {
		return err
	}
	return conn.Close()
}
