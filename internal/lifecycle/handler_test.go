package lifecycle

import (
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/Tyrowin/roomchat/internal/apperrors"
	"github.com/Tyrowin/roomchat/internal/message"
	"github.com/Tyrowin/roomchat/internal/mirror"
	"github.com/Tyrowin/roomchat/internal/mocks"
	"github.com/Tyrowin/roomchat/internal/router"
	"github.com/Tyrowin/roomchat/internal/session"
	"github.com/Tyrowin/roomchat/internal/wire"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// inbox records every frame delivered per connection.
type inbox struct {
	mu     sync.Mutex
	frames map[string][]wire.Frame
}

func newInbox() *inbox {
	return &inbox{frames: make(map[string][]wire.Frame)}
}

func (b *inbox) Deliver(connectionID string, frame []byte) bool {
	var f wire.Frame
	if err := json.Unmarshal(frame, &f); err != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames[connectionID] = append(b.frames[connectionID], f)
	return true
}

// take returns and clears the frames received by connectionID.
func (b *inbox) take(connectionID string) []wire.Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	frames := b.frames[connectionID]
	delete(b.frames, connectionID)
	return frames
}

type fakeFilter map[string]bool

func (f fakeFilter) IsProfane(text string) bool { return f[text] }

func newDeps(t *testing.T, box *inbox) Dependencies {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	registry := session.NewRegistry()
	return Dependencies{
		Log:       log,
		Sessions:  registry,
		Router:    router.New(log, registry, box),
		Filter:    fakeFilter{"darn": true},
		Publisher: mirror.Discard{},
	}
}

func decodeMessage(t *testing.T, f wire.Frame) message.Message {
	t.Helper()
	require.Equal(t, wire.EventMessage, f.Event)
	var m message.Message
	require.NoError(t, json.Unmarshal(f.Data, &m))
	return m
}

func decodeRoomData(t *testing.T, f wire.Frame) wire.RoomData {
	t.Helper()
	require.Equal(t, wire.EventRoomData, f.Event)
	var d wire.RoomData
	require.NoError(t, json.Unmarshal(f.Data, &d))
	return d
}

func TestHandler_AliceAndBobConversation(t *testing.T) {
	req := require.New(t)
	box := newInbox()
	deps := newDeps(t, box)
	alice := NewHandler(deps, "A")
	bob := NewHandler(deps, "B")

	// When alice joins room r
	req.NoError(alice.Join("alice", "r"))

	// Then she is welcomed and sees herself in the roster
	frames := box.take("A")
	req.Len(frames, 2)
	welcome := decodeMessage(t, frames[0])
	req.Equal(message.AdminSender, welcome.Sender)
	req.Equal("Hello, welcome to the chat app", welcome.Body)
	req.Equal(wire.RoomData{Room: "r", Users: []string{"alice"}}, decodeRoomData(t, frames[1]))

	// When bob joins the same room
	req.NoError(bob.Join("bob", "r"))

	// Then alice is told bob joined and both get the new roster
	frames = box.take("A")
	req.Len(frames, 2)
	req.Equal("bob has joined the room", decodeMessage(t, frames[0]).Body)
	req.Equal([]string{"alice", "bob"}, decodeRoomData(t, frames[1]).Users)

	frames = box.take("B")
	req.Len(frames, 2)
	req.Equal("Hello, welcome to the chat app", decodeMessage(t, frames[0]).Body)
	req.Equal([]string{"alice", "bob"}, decodeRoomData(t, frames[1]).Users)

	// When bob says hello both members receive it
	req.NoError(bob.SendMessage("hello"))
	for _, conn := range []string{"A", "B"} {
		frames = box.take(conn)
		req.Len(frames, 1)
		m := decodeMessage(t, frames[0])
		req.Equal("bob", m.Sender)
		req.Equal("hello", m.Body)
	}

	// When alice disconnects bob learns she left and gets the new roster
	alice.Disconnect()
	req.Empty(box.take("A"))
	frames = box.take("B")
	req.Len(frames, 2)
	req.Equal("alice has left the chat", decodeMessage(t, frames[0]).Body)
	req.Equal(wire.RoomData{Room: "r", Users: []string{"bob"}}, decodeRoomData(t, frames[1]))
	req.Equal(Closed, alice.State())
}

func TestHandler_Join_Conflict(t *testing.T) {
	req := require.New(t)
	box := newInbox()
	deps := newDeps(t, box)

	req.NoError(NewHandler(deps, "A").Join("alice", "r"))
	box.take("A")

	second := NewHandler(deps, "B")
	err := second.Join("Alice", "R")

	req.ErrorIs(err, apperrors.ErrConflict)
	req.Equal("Username is in use!", err.Error())
	req.Equal(Rejected, second.State())
	req.Empty(box.take("A"))
	req.Empty(box.take("B"))

	// A rejected connection cannot retry
	req.ErrorIs(second.Join("bob", "r"), apperrors.ErrValidation)
}

func TestHandler_Join_Validation(t *testing.T) {
	req := require.New(t)
	deps := newDeps(t, newInbox())

	h := NewHandler(deps, "A")
	err := h.Join("  ", "general")

	req.ErrorIs(err, apperrors.ErrValidation)
	req.Equal("Username and room are required!", err.Error())
	req.Equal(Rejected, h.State())
}

func TestHandler_Join_Twice(t *testing.T) {
	req := require.New(t)
	deps := newDeps(t, newInbox())

	h := NewHandler(deps, "A")
	req.NoError(h.Join("alice", "r"))
	req.ErrorIs(h.Join("alice", "other"), apperrors.ErrValidation)
	req.Equal(Joined, h.State())
}

func TestHandler_SendMessage_BeforeJoin(t *testing.T) {
	req := require.New(t)
	deps := newDeps(t, newInbox())

	err := NewHandler(deps, "A").SendMessage("hi")
	req.ErrorIs(err, apperrors.ErrValidation)
	req.Equal("User was not found", err.Error())

	err = NewHandler(deps, "A").SendLocation(1, 2)
	req.ErrorIs(err, apperrors.ErrValidation)
	req.Equal("User was not found", err.Error())
}

func TestHandler_SendMessage_ProfanityNeverBroadcasts(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	filter := mocks.NewMockProfanityFilter(ctrl)
	publisher := mocks.NewMockActivityPublisher(ctrl)
	registry := session.NewRegistry()

	_, err := registry.AddSession("A", "alice", "r")
	req.NoError(err)

	h := NewHandler(Dependencies{
		Log: log, Sessions: registry, Router: broadcaster, Filter: filter, Publisher: publisher,
	}, "A")

	// Given the filter flags the text
	filter.EXPECT().IsProfane("bad words").Return(true)
	// Then nothing is broadcast or mirrored
	broadcaster.EXPECT().BroadcastToRoom(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	err = h.SendMessage("bad words")
	req.ErrorIs(err, apperrors.ErrPolicy)
	req.Equal("Profanity isn't allowed!", err.Error())
}

func TestHandler_SendMessage_BroadcastsToSenderRoom(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	filter := mocks.NewMockProfanityFilter(ctrl)
	publisher := mocks.NewMockActivityPublisher(ctrl)
	registry := session.NewRegistry()

	_, err := registry.AddSession("A", "Alice", "Room")
	req.NoError(err)

	h := NewHandler(Dependencies{
		Log: log, Sessions: registry, Router: broadcaster, Filter: filter, Publisher: publisher,
	}, "A")

	filter.EXPECT().IsProfane("hello").Return(false)
	broadcaster.EXPECT().BroadcastToRoom("room", wire.EventMessage, gomock.Any()).DoAndReturn(
		func(_, _ string, payload any) error {
			m, ok := payload.(message.Message)
			req.True(ok)
			req.Equal("alice", m.Sender)
			req.Equal("hello", m.Body)
			return nil
		})
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	req.NoError(h.SendMessage("hello"))
}

func TestHandler_SendLocation(t *testing.T) {
	req := require.New(t)
	box := newInbox()
	deps := newDeps(t, box)

	h := NewHandler(deps, "A")
	req.NoError(h.Join("alice", "r"))
	box.take("A")

	req.NoError(h.SendLocation(48.8566, 2.3522))

	frames := box.take("A")
	req.Len(frames, 1)
	req.Equal(wire.EventLocationMessage, frames[0].Event)

	var loc message.LocationMessage
	req.NoError(json.Unmarshal(frames[0].Data, &loc))
	req.Equal("alice", loc.Sender)
	req.Equal("https://google.com/maps?q=48.8566,2.3522", loc.URL)
}

func TestHandler_SendLocation_OutOfRange(t *testing.T) {
	req := require.New(t)
	box := newInbox()
	deps := newDeps(t, box)

	h := NewHandler(deps, "A")
	req.NoError(h.Join("alice", "r"))
	box.take("A")

	req.ErrorIs(h.SendLocation(91, 0), apperrors.ErrValidation)
	req.ErrorIs(h.SendLocation(0, -180.5), apperrors.ErrValidation)
	req.Empty(box.take("A"))
}

func TestHandler_Disconnect_BeforeJoinIsSilent(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	publisher := mocks.NewMockActivityPublisher(ctrl)

	broadcaster.EXPECT().BroadcastToRoom(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	h := NewHandler(Dependencies{
		Log: log, Sessions: session.NewRegistry(), Router: broadcaster,
		Filter: mocks.NewMockProfanityFilter(ctrl), Publisher: publisher,
	}, "A")

	h.Disconnect()
	h.Disconnect()
	req.Equal(Closed, h.State())
}

func TestHandler_Disconnect_Twice(t *testing.T) {
	req := require.New(t)
	box := newInbox()
	deps := newDeps(t, box)

	alice := NewHandler(deps, "A")
	bob := NewHandler(deps, "B")
	req.NoError(alice.Join("alice", "r"))
	req.NoError(bob.Join("bob", "r"))
	box.take("B")

	alice.Disconnect()
	req.Len(box.take("B"), 2)

	alice.Disconnect()
	req.Empty(box.take("B"))

	// And a closed connection cannot send
	req.ErrorIs(alice.SendMessage("still here?"), apperrors.ErrValidation)
}

func TestHandler_JoinPublishesActivity(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	publisher := mocks.NewMockActivityPublisher(ctrl)
	registry := session.NewRegistry()

	// Then a joined and a left record are mirrored
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	h := NewHandler(Dependencies{
		Log: log, Sessions: registry, Router: router.New(log, registry, newInbox()),
		Filter: fakeFilter{}, Publisher: publisher,
	}, "A")

	req.NoError(h.Join("alice", "r"))
	h.Disconnect()
}

func TestHandler_ConcurrentJoinsSameUsername(t *testing.T) {
	req := require.New(t)
	deps := newDeps(t, newInbox())

	const n = 20
	handlers := make([]*Handler, n)
	for i := range handlers {
		handlers[i] = NewHandler(deps, string(rune('a'+i)))
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i, h := range handlers {
		wg.Add(1)
		go func(i int, h *Handler) {
			defer wg.Done()
			errs[i] = h.Join("alice", "r")
		}(i, h)
	}
	wg.Wait()

	joined := 0
	for _, err := range errs {
		if err == nil {
			joined++
			continue
		}
		req.ErrorIs(err, apperrors.ErrConflict)
	}
	req.Equal(1, joined)
	req.Len(deps.Sessions.ListRoom("r"), 1)
}

func TestHandler_RosterGoesThroughBroadcastRoomData(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	broadcaster := mocks.NewMockBroadcaster(ctrl)
	registry := session.NewRegistry()

	h := NewHandler(Dependencies{
		Log: log, Sessions: registry, Router: broadcaster, Filter: fakeFilter{}, Publisher: mirror.Discard{},
	}, "A")

	// Given a join and a leave
	broadcaster.EXPECT().SendTo("A", wire.EventMessage, gomock.Any()).Return(nil)
	broadcaster.EXPECT().BroadcastToRoomExceptSender("r", "A", wire.EventMessage, gomock.Any()).Return(nil)
	broadcaster.EXPECT().BroadcastToRoom("r", wire.EventMessage, gomock.Any()).Return(nil)
	// Then each roster is sent as one atomic router operation
	broadcaster.EXPECT().BroadcastRoomData("r").Return(nil).Times(2)

	req.NoError(h.Join("alice", "R"))
	h.Disconnect()
	req.Equal(0, registry.Len())
}
