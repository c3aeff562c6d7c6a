package registry

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

var (
	// ErrHostTaken is the expected business outcome when a second distinct
	// user asks for the host slot of a room.
	ErrHostTaken = errors.New("room already has a host")

	// ErrRoomNotFound is returned for operations on rooms with no participants.
	ErrRoomNotFound = errors.New("room not found")

	// ErrBadPayload is returned when an interaction event carries an empty or
	// malformed payload.
	ErrBadPayload = errors.New("event payload is not a JSON object")
)

// Kind distinguishes the two subscriber sets of a room.
type Kind string

const (
	KindRoom        Kind = "room"
	KindInteraction Kind = "interaction"
)

// Participant is one member of a room.
type Participant struct {
	IsHost   bool
	JoinedAt time.Time
}

// MediaState holds the host's published media flags.
type MediaState struct {
	HasVideo  bool
	HasAudio  bool
	HasScreen bool
}

type room struct {
	participants map[string]Participant
	media        MediaState
	subs         map[Kind]map[*Subscription]struct{}
}

func newRoom() *room {
	return &room{
		participants: make(map[string]Participant),
		subs: map[Kind]map[*Subscription]struct{}{
			KindRoom:        make(map[*Subscription]struct{}),
			KindInteraction: make(map[*Subscription]struct{}),
		},
	}
}

// Subscription is one live event stream handle. Events arrive on C in
// emission order. C is closed when the room is torn down.
type Subscription struct {
	C      <-chan *rpc.Event
	ch     chan *rpc.Event
	roomID string
	kind   Kind
	closed bool
}

// Registry is the authoritative in-process room state. All mutation goes
// through its methods; each method performs its map mutation and the
// consequent event emission under one lock acquisition.
type Registry struct {
	mu        sync.Mutex
	rooms     map[string]*room
	subBuffer int
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		rooms:     make(map[string]*room),
		subBuffer: 64,
	}
}

// JoinRoom upserts a participant, creating the room lazily. A host join is
// rejected with ErrHostTaken while a different user holds the host slot;
// the existing host re-joining succeeds idempotently.
func (r *Registry) JoinRoom(roomID, userID string, isHost bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		rm = newRoom()
		r.rooms[roomID] = rm
	}

	if isHost {
		for id, p := range rm.participants {
			if p.IsHost && id != userID {
				return ErrHostTaken
			}
		}
	}

	if p, ok := rm.participants[userID]; ok {
		p.IsHost = isHost
		rm.participants[userID] = p
	} else {
		rm.participants[userID] = Participant{IsHost: isHost, JoinedAt: time.Now()}
	}

	r.emitLocked(rm, KindRoom, &rpc.Event{
		Type:        rpc.EventUserJoined,
		UserID:      userID,
		PayloadJSON: mustPayload(map[string]interface{}{"isHost": isHost}),
	})

	log.L().Info().
		Str(log.FieldRoomID, roomID).
		Str(log.FieldUserID, userID).
		Bool("is_host", isHost).
		Msg("participant joined room")
	return nil
}

// LeaveRoom removes a participant. When the last participant leaves, the
// room is deleted and both of its subscriber sets are torn down together.
func (r *Registry) LeaveRoom(roomID, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	p, ok := rm.participants[userID]
	if !ok {
		return nil
	}
	delete(rm.participants, userID)

	r.emitLocked(rm, KindRoom, &rpc.Event{
		Type:        rpc.EventUserLeft,
		UserID:      userID,
		PayloadJSON: mustPayload(map[string]interface{}{"wasHost": p.IsHost}),
	})

	if len(rm.participants) == 0 {
		r.teardownLocked(roomID, rm)
	}

	log.L().Info().
		Str(log.FieldRoomID, roomID).
		Str(log.FieldUserID, userID).
		Msg("participant left room")
	return nil
}

// UpdateMediaState replaces the room's media flags and notifies subscribers.
func (r *Registry) UpdateMediaState(roomID, userID string, video, audio, screen bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	rm.media = MediaState{HasVideo: video, HasAudio: audio, HasScreen: screen}

	r.emitLocked(rm, KindRoom, &rpc.Event{
		Type:   rpc.EventHostMediaUpdated,
		UserID: userID,
		PayloadJSON: mustPayload(map[string]interface{}{
			"hasVideo":  video,
			"hasAudio":  audio,
			"hasScreen": screen,
		}),
	})
	return nil
}

// Subscribe opens an event stream handle for a room and kind.
func (r *Registry) Subscribe(roomID string, kind Kind) (*Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}

	ch := make(chan *rpc.Event, r.subBuffer)
	sub := &Subscription{C: ch, ch: ch, roomID: roomID, kind: kind}
	rm.subs[kind][sub] = struct{}{}
	return sub, nil
}

// Unsubscribe removes a handle. Safe to call after the room was torn down.
func (r *Registry) Unsubscribe(sub *Subscription) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub.closed {
		return
	}
	if rm, ok := r.rooms[sub.roomID]; ok {
		delete(rm.subs[sub.kind], sub)
	}
	sub.closed = true
	close(sub.ch)
}

// EmitRoomEvent fans a room-lifecycle event out to the room's subscribers.
func (r *Registry) EmitRoomEvent(roomID string, ev *rpc.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	r.emitLocked(rm, KindRoom, ev)
	return nil
}

// EmitInteractionEvent fans an interaction event out to the room's
// subscribers. The payload is validated once, before any subscriber is
// touched, so a malformed event is never partially forwarded.
func (r *Registry) EmitInteractionEvent(roomID string, ev *rpc.Event) error {
	if ev.PayloadJSON == "" || !isJSONObject(ev.PayloadJSON) {
		log.L().Warn().
			Str(log.FieldRoomID, roomID).
			Str(log.FieldEvent, ev.Type).
			Msg("dropping interaction event with malformed payload")
		return ErrBadPayload
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}
	r.emitLocked(rm, KindInteraction, ev)
	return nil
}

// Host reports the current host of a room, if one exists.
func (r *Registry) Host(roomID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return "", false
	}
	for id, p := range rm.participants {
		if p.IsHost {
			return id, true
		}
	}
	return "", false
}

// Participants returns a copy of the room's participant map.
func (r *Registry) Participants(roomID string) map[string]Participant {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return nil
	}
	out := make(map[string]Participant, len(rm.participants))
	for id, p := range rm.participants {
		out[id] = p
	}
	return out
}

// MediaStateOf returns the room's media flags.
func (r *Registry) MediaStateOf(roomID string) (MediaState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return MediaState{}, false
	}
	return rm.media, true
}

// RoomExists reports whether a room currently has participants.
func (r *Registry) RoomExists(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.rooms[roomID]
	return ok
}

// SubscriberCount reports the size of a room's subscriber set.
func (r *Registry) SubscriberCount(roomID string, kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	rm, ok := r.rooms[roomID]
	if !ok {
		return 0
	}
	return len(rm.subs[kind])
}

// emitLocked writes the event to every live handle of the set, in emission
// order. A write failure is the liveness signal: the handle is removed on
// the spot, with no separate probe.
func (r *Registry) emitLocked(rm *room, kind Kind, ev *rpc.Event) {
	for sub := range rm.subs[kind] {
		select {
		case sub.ch <- ev:
		default:
			delete(rm.subs[kind], sub)
			sub.closed = true
			close(sub.ch)
			log.L().Warn().
				Str(log.FieldRoomID, sub.roomID).
				Str("kind", string(kind)).
				Msg("evicted slow event subscriber")
		}
	}
}

// teardownLocked deletes an empty room together with both subscriber sets.
// An orphaned subscriber set would leak streaming handles into a room that
// could be silently recreated later.
func (r *Registry) teardownLocked(roomID string, rm *room) {
	for _, set := range rm.subs {
		for sub := range set {
			sub.closed = true
			close(sub.ch)
		}
	}
	delete(r.rooms, roomID)
	log.L().Info().Str(log.FieldRoomID, roomID).Msg("room emptied, state collected")
}

func mustPayload(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func isJSONObject(s string) bool {
	var m map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &m) == nil
}
