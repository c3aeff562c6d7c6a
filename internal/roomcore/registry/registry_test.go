package registry

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
)

func drain(sub *Subscription) []*rpc.Event {
	var out []*rpc.Event
	for {
		select {
		case ev, ok := <-sub.C:
			if !ok {
				return out
			}
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestJoinRoomHostInvariant(t *testing.T) {
	r := New()

	require.NoError(t, r.JoinRoom("room1", "alice", true))
	require.ErrorIs(t, r.JoinRoom("room1", "bob", true), ErrHostTaken)

	// The same host re-joining is idempotent.
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	// A plain viewer join is always allowed.
	require.NoError(t, r.JoinRoom("room1", "bob", false))

	host, ok := r.Host("room1")
	require.True(t, ok)
	require.Equal(t, "alice", host)
}

func TestJoinEmitsUserJoined(t *testing.T) {
	r := New()
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	sub, err := r.Subscribe("room1", KindRoom)
	require.NoError(t, err)

	require.NoError(t, r.JoinRoom("room1", "bob", false))

	events := drain(sub)
	require.Len(t, events, 1)
	require.Equal(t, rpc.EventUserJoined, events[0].Type)
	require.Equal(t, "bob", events[0].UserID)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(events[0].PayloadJSON), &payload))
	require.Equal(t, false, payload["isHost"])
}

func TestSubscribeUnknownRoom(t *testing.T) {
	r := New()
	_, err := r.Subscribe("nope", KindRoom)
	require.ErrorIs(t, err, ErrRoomNotFound)
}

func TestEmissionOrderPreserved(t *testing.T) {
	r := New()
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	sub, err := r.Subscribe("room1", KindInteraction)
	require.NoError(t, err)

	ids := []string{"m1", "m2", "m3", "m4"}
	for _, id := range ids {
		ev := &rpc.Event{
			Type:        rpc.EventMessage,
			UserID:      "alice",
			PayloadJSON: `{"id":"` + id + `"}`,
		}
		require.NoError(t, r.EmitInteractionEvent("room1", ev))
	}

	events := drain(sub)
	require.Len(t, events, len(ids))
	for i, ev := range events {
		var payload map[string]string
		require.NoError(t, json.Unmarshal([]byte(ev.PayloadJSON), &payload))
		require.Equal(t, ids[i], payload["id"])
	}
}

func TestMalformedInteractionPayloadDropped(t *testing.T) {
	r := New()
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	sub, err := r.Subscribe("room1", KindInteraction)
	require.NoError(t, err)

	cases := []string{"", "not json", `"a string"`, `[1,2,3]`}
	for _, payload := range cases {
		err := r.EmitInteractionEvent("room1", &rpc.Event{
			Type:        rpc.EventMessage,
			UserID:      "alice",
			PayloadJSON: payload,
		})
		require.ErrorIs(t, err, ErrBadPayload, "payload %q", payload)
	}

	require.Empty(t, drain(sub))
}

func TestSlowSubscriberEvicted(t *testing.T) {
	r := New()
	r.subBuffer = 2
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	slow, err := r.Subscribe("room1", KindInteraction)
	require.NoError(t, err)
	require.Equal(t, 1, r.SubscriberCount("room1", KindInteraction))

	// Fill the buffer, then overflow it by one.
	for i := 0; i < 3; i++ {
		r.EmitInteractionEvent("room1", &rpc.Event{
			Type:        rpc.EventMessage,
			UserID:      "alice",
			PayloadJSON: `{"n":1}`,
		})
	}

	require.Equal(t, 0, r.SubscriberCount("room1", KindInteraction))

	// The channel was closed on eviction; the two buffered events are
	// still readable.
	events := drain(slow)
	require.Len(t, events, 2)
	_, open := <-slow.C
	require.False(t, open)
}

func TestLastLeaveTearsDownBothSubscriberSets(t *testing.T) {
	r := New()
	require.NoError(t, r.JoinRoom("room1", "alice", true))
	require.NoError(t, r.JoinRoom("room1", "bob", false))

	roomSub, err := r.Subscribe("room1", KindRoom)
	require.NoError(t, err)
	interSub, err := r.Subscribe("room1", KindInteraction)
	require.NoError(t, err)

	require.NoError(t, r.LeaveRoom("room1", "bob"))
	require.True(t, r.RoomExists("room1"))

	require.NoError(t, r.LeaveRoom("room1", "alice"))
	require.False(t, r.RoomExists("room1"))

	// Both channels end closed; the room-kind one saw the leave events
	// first.
	events := drain(roomSub)
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	require.Equal(t, rpc.EventUserLeft, last.Type)
	require.Equal(t, "alice", last.UserID)
	_, open := <-roomSub.C
	require.False(t, open)

	drain(interSub)
	_, open = <-interSub.C
	require.False(t, open)

	// Unsubscribe after teardown must not panic.
	r.Unsubscribe(roomSub)
	r.Unsubscribe(interSub)
}

func TestLeaveUnknownRoom(t *testing.T) {
	r := New()
	require.ErrorIs(t, r.LeaveRoom("nope", "alice"), ErrRoomNotFound)
}

func TestUpdateMediaState(t *testing.T) {
	r := New()
	require.NoError(t, r.JoinRoom("room1", "alice", true))

	sub, err := r.Subscribe("room1", KindRoom)
	require.NoError(t, err)

	require.NoError(t, r.UpdateMediaState("room1", "alice", true, false, true))

	state, ok := r.MediaStateOf("room1")
	require.True(t, ok)
	require.Equal(t, MediaState{HasVideo: true, HasAudio: false, HasScreen: true}, state)

	events := drain(sub)
	require.Len(t, events, 1)
	require.Equal(t, rpc.EventHostMediaUpdated, events[0].Type)

	var payload map[string]bool
	require.NoError(t, json.Unmarshal([]byte(events[0].PayloadJSON), &payload))
	require.True(t, payload["hasVideo"])
	require.False(t, payload["hasAudio"])
	require.True(t, payload["hasScreen"])
}
