package bridge

import (
	"encoding/json"
	"strings"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// Broadcaster is the transport-side fanout the bridge writes into.
type Broadcaster interface {
	BroadcastToRoom(roomKey string, message interface{}, exclude string) error
}

// interactionEventNames maps backend interaction event types to the
// message types clients understand. Unknown types are dropped.
var interactionEventNames = map[string]string{
	rpc.EventMessage:           domain.MsgTypeNewMessage,
	rpc.EventPollCreated:       domain.MsgTypeNewPoll,
	rpc.EventQuizCreated:       domain.MsgTypeNewQuiz,
	rpc.EventQuestionSubmitted: domain.MsgTypeQuestionSubmitted,
	rpc.EventQuestionApproved:  domain.MsgTypeQuestionApproved,
	rpc.EventPollResponse:      "poll-update",
}

// Fanout translates backend room and interaction events into client
// messages and broadcasts them to everyone in the room, sender
// included, so all participants observe the same ordered feed.
type Fanout struct {
	hub Broadcaster
}

func NewFanout(hub Broadcaster) *Fanout {
	return &Fanout{hub: hub}
}

// RoomEvent forwards a lifecycle event (joins, leaves, media updates).
// The payload is parsed leniently: a malformed payload degrades to an
// empty object rather than suppressing the event.
func (f *Fanout) RoomEvent(roomID string, ev *rpc.Event) {
	payload := map[string]interface{}{}
	if len(ev.PayloadJSON) > 0 {
		if err := json.Unmarshal([]byte(ev.PayloadJSON), &payload); err != nil {
			pkglog.L().Warn().Err(err).
				Str(pkglog.FieldRoomID, roomID).
				Str(pkglog.FieldEvent, ev.Type).
				Msg("malformed room event payload")
			payload = map[string]interface{}{}
		}
	}

	payload["type"] = lifecycleEventName(ev.Type)
	payload["userId"] = ev.UserID
	f.hub.BroadcastToRoom(roomID, payload, "")
}

// InteractionEvent forwards a content event. The payload carries the
// content itself, so an unparseable payload drops the event.
func (f *Fanout) InteractionEvent(roomID string, ev *rpc.Event) {
	msgType, ok := interactionEventNames[ev.Type]
	if !ok {
		return
	}

	payload := map[string]interface{}{}
	if err := json.Unmarshal([]byte(ev.PayloadJSON), &payload); err != nil {
		pkglog.L().Warn().Err(err).
			Str(pkglog.FieldRoomID, roomID).
			Str(pkglog.FieldEvent, ev.Type).
			Msg("dropping interaction event with malformed payload")
		return
	}

	payload["type"] = msgType
	payload["userId"] = ev.UserID
	if msgType == domain.MsgTypeNewMessage {
		// Chat clients expect a nested user object.
		if _, ok := payload["user"]; !ok {
			payload["user"] = map[string]interface{}{"id": ev.UserID}
		}
	}
	f.hub.BroadcastToRoom(roomID, payload, "")
}

// lifecycleEventName converts a backend event type such as USER_JOINED
// into its client-facing form, user-joined.
func lifecycleEventName(eventType string) string {
	return strings.ReplaceAll(strings.ToLower(eventType), "_", "-")
}
