// Package message builds the chat and location payloads sent to room members.
// Timestamps always come from the server clock.
package message

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// AdminSender is the sender name used for server notices.
const AdminSender = "Admin"

// Message is a chat line as delivered to clients.
type Message struct {
	Sender    string
	Body      string
	CreatedAt time.Time
}

// LocationMessage is a shared location as delivered to clients.
type LocationMessage struct {
	Sender    string
	URL       string
	CreatedAt time.Time
}

type messageJSON struct {
	Sender    string `json:"username"`
	Body      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

type locationJSON struct {
	Sender    string `json:"username"`
	URL       string `json:"url"`
	CreatedAt int64  `json:"createdAt"`
}

// New creates a chat message stamped with the current time.
func New(sender, body string) Message {
	return Message{Sender: sender, Body: body, CreatedAt: time.Now()}
}

// NewLocation creates a location message stamped with the current time.
func NewLocation(sender, url string) LocationMessage {
	return LocationMessage{Sender: sender, URL: url, CreatedAt: time.Now()}
}

// MapsURL links to the given coordinates on Google Maps.
func MapsURL(latitude, longitude float64) string {
	return fmt.Sprintf("https://google.com/maps?q=%s,%s",
		strconv.FormatFloat(latitude, 'f', -1, 64),
		strconv.FormatFloat(longitude, 'f', -1, 64))
}

// MarshalJSON encodes createdAt as Unix milliseconds.
func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(messageJSON{
		Sender:    m.Sender,
		Body:      m.Body,
		CreatedAt: m.CreatedAt.UnixMilli(),
	})
}

// UnmarshalJSON decodes the client wire format.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = Message{Sender: raw.Sender, Body: raw.Body, CreatedAt: time.UnixMilli(raw.CreatedAt)}
	return nil
}

// MarshalJSON encodes createdAt as Unix milliseconds.
func (l LocationMessage) MarshalJSON() ([]byte, error) {
	return json.Marshal(locationJSON{
		Sender:    l.Sender,
		URL:       l.URL,
		CreatedAt: l.CreatedAt.UnixMilli(),
	})
}

// UnmarshalJSON decodes the client wire format.
func (l *LocationMessage) UnmarshalJSON(data []byte) error {
	var raw locationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*l = LocationMessage{Sender: raw.Sender, URL: raw.URL, CreatedAt: time.UnixMilli(raw.CreatedAt)}
	return nil
}
