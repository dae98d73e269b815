// Package wire defines the JSON envelope exchanged over a WebSocket
// connection: named events, optional acknowledgement ids and payloads.
package wire

import (
	"encoding/json"
	"fmt"
)

// Inbound event names.
const (
	EventJoin         = "join"
	EventSendMessage  = "sendMessage"
	EventSendLocation = "sendLocation"
)

// Outbound event names.
const (
	EventAck             = "ack"
	EventMessage         = "message"
	EventLocationMessage = "locationMessage"
	EventRoomData        = "roomData"
)

// Request is a client event. ID is echoed in the acknowledgement; zero means
// the client does not expect one.
type Request struct {
	Event string          `json:"event"`
	ID    uint64          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Frame is a server event.
type Frame struct {
	Event string          `json:"event"`
	ID    uint64          `json:"id,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// JoinPayload is the data of a join event.
type JoinPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// MessagePayload is the data of a sendMessage event.
type MessagePayload struct {
	Text string `json:"text"`
}

// LocationPayload is the data of a sendLocation event.
type LocationPayload struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RoomData is the presence list of a room.
type RoomData struct {
	Room  string   `json:"room"`
	Users []string `json:"users"`
}

// DecodeRequest parses a raw frame into a Request.
func DecodeRequest(raw []byte) (Request, error) {
	var r Request
	if err := json.Unmarshal(raw, &r); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if r.Event == "" {
		return r, fmt.Errorf("decode request: missing event name")
	}
	return r, nil
}

// DecodeData parses the request payload into v.
func (r Request) DecodeData(v any) error {
	if len(r.Data) == 0 {
		return fmt.Errorf("event %q: missing data", r.Event)
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("event %q: %w", r.Event, err)
	}
	return nil
}

// Encode builds a server event frame. The payload is marshalled once so the
// same bytes can be fanned out to every recipient.
func Encode(event string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode %s payload: %w", event, err)
	}
	return json.Marshal(Frame{Event: event, Data: data})
}

// EncodeAck builds the acknowledgement for request id. A nil err acknowledges
// success.
func EncodeAck(id uint64, err error) ([]byte, error) {
	f := Frame{Event: EventAck, ID: id}
	if err != nil {
		f.Error = err.Error()
	}
	return json.Marshal(f)
}
