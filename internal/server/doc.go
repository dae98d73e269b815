// Package server implements the HTTP and WebSocket transport for RoomChat.
//
// A Server owns the session registry, the room router and the Hub. Each
// upgraded connection becomes a Client whose read pump feeds a
// lifecycle.Handler and whose write pump drains frames the router delivers
// through the Hub.
package server
