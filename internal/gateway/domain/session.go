package domain

import (
	"context"
	"sync"
)

// Kinds of backend event streams a session can hold per room.
const (
	StreamKindRoom        = "room"
	StreamKindInteraction = "interaction"
)

// StreamKey identifies one backend subscription held by a session.
func StreamKey(kind, roomID string) string {
	return kind + "-" + roomID
}

// Identity is the authenticated principal behind a connection, taken
// from the verified token at handshake time. Client-supplied user ids
// in message payloads are never trusted over this.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

// Session tracks the per-connection state the gateway owns: which rooms
// the connection joined and which backend event streams it holds.
type Session struct {
	mu       sync.Mutex
	identity Identity
	rooms    map[string]bool // roomID -> joined as host
	streams  map[string]context.CancelFunc
}

func NewSession(identity Identity) *Session {
	return &Session{
		identity: identity,
		rooms:    make(map[string]bool),
		streams:  make(map[string]context.CancelFunc),
	}
}

func (s *Session) Identity() Identity {
	return s.identity
}

func (s *Session) UserID() string {
	return s.identity.UserID
}

// MarkJoined records room membership and the role it was joined with.
// Returns false if the room was already joined, which makes join
// handling idempotent.
func (s *Session) MarkJoined(roomID string, isHost bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[roomID]; ok {
		return false
	}
	s.rooms[roomID] = isHost
	return true
}

func (s *Session) Joined(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.rooms[roomID]
	return ok
}

// IsHostOf reports whether this session joined the room as its host.
func (s *Session) IsHostOf(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms[roomID]
}

// Rooms returns the rooms this session joined, in no particular order.
func (s *Session) Rooms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.rooms))
	for roomID := range s.rooms {
		out = append(out, roomID)
	}
	return out
}

func (s *Session) HasStream(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.streams[key]
	return ok
}

// PutStream stores the cancel function for an open backend stream. If a
// stream with the same key already exists it is cancelled first so the
// session never holds two subscriptions for the same room and kind.
func (s *Session) PutStream(key string, cancel context.CancelFunc) {
	s.mu.Lock()
	prev := s.streams[key]
	s.streams[key] = cancel
	s.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// DrainStreams removes and returns every stream cancel function. Used
// on disconnect to tear down all backend subscriptions at once.
func (s *Session) DrainStreams() []context.CancelFunc {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]context.CancelFunc, 0, len(s.streams))
	for _, cancel := range s.streams {
		out = append(out, cancel)
	}
	s.streams = make(map[string]context.CancelFunc)
	return out
}
