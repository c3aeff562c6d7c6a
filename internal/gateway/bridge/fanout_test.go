package bridge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
)

type capturedBroadcast struct {
	roomKey string
	message interface{}
	exclude string
}

type fakeBroadcaster struct {
	broadcasts []capturedBroadcast
}

func (f *fakeBroadcaster) BroadcastToRoom(roomKey string, message interface{}, exclude string) error {
	f.broadcasts = append(f.broadcasts, capturedBroadcast{roomKey, message, exclude})
	return nil
}

func asMap(t *testing.T, message interface{}) map[string]interface{} {
	t.Helper()
	m, ok := message.(map[string]interface{})
	require.True(t, ok)
	return m
}

func TestRoomEventNameNormalization(t *testing.T) {
	hub := &fakeBroadcaster{}
	f := NewFanout(hub)

	f.RoomEvent("room1", &rpc.Event{
		Type:        rpc.EventUserJoined,
		UserID:      "alice",
		PayloadJSON: `{"isHost":true}`,
	})

	require.Len(t, hub.broadcasts, 1)
	b := hub.broadcasts[0]
	require.Equal(t, "room1", b.roomKey)
	// Everyone in the room gets the event, the originator included.
	require.Equal(t, "", b.exclude)

	m := asMap(t, b.message)
	require.Equal(t, "user-joined", m["type"])
	require.Equal(t, "alice", m["userId"])
	require.Equal(t, true, m["isHost"])
}

func TestRoomEventToleratesBadPayload(t *testing.T) {
	hub := &fakeBroadcaster{}
	f := NewFanout(hub)

	f.RoomEvent("room1", &rpc.Event{
		Type:        rpc.EventHostMediaUpdated,
		UserID:      "alice",
		PayloadJSON: "{{{not json",
	})

	require.Len(t, hub.broadcasts, 1)
	m := asMap(t, hub.broadcasts[0].message)
	require.Equal(t, "host-media-updated", m["type"])
	require.Equal(t, "alice", m["userId"])
}

func TestInteractionEventMapping(t *testing.T) {
	cases := []struct {
		backendType string
		wantType    string
	}{
		{rpc.EventMessage, "new-message"},
		{rpc.EventPollCreated, "new-poll"},
		{rpc.EventQuizCreated, "new-quiz"},
		{rpc.EventQuestionSubmitted, "question-submitted"},
		{rpc.EventQuestionApproved, "question-approved"},
		{rpc.EventPollResponse, "poll-update"},
	}

	for _, tc := range cases {
		hub := &fakeBroadcaster{}
		f := NewFanout(hub)

		f.InteractionEvent("room1", &rpc.Event{
			Type:        tc.backendType,
			UserID:      "alice",
			PayloadJSON: `{"id":"x1"}`,
		})

		require.Len(t, hub.broadcasts, 1, "type %s", tc.backendType)
		m := asMap(t, hub.broadcasts[0].message)
		require.Equal(t, tc.wantType, m["type"])
		require.Equal(t, "x1", m["id"])
	}
}

func TestInteractionEventUnknownTypeDropped(t *testing.T) {
	hub := &fakeBroadcaster{}
	f := NewFanout(hub)

	f.InteractionEvent("room1", &rpc.Event{
		Type:        rpc.EventQuizResponse,
		UserID:      "bob",
		PayloadJSON: `{"quizId":"q1"}`,
	})

	require.Empty(t, hub.broadcasts)
}

func TestInteractionEventBadPayloadDropped(t *testing.T) {
	hub := &fakeBroadcaster{}
	f := NewFanout(hub)

	f.InteractionEvent("room1", &rpc.Event{
		Type:        rpc.EventMessage,
		UserID:      "alice",
		PayloadJSON: "not json",
	})

	require.Empty(t, hub.broadcasts)
}

func TestMessageEventSynthesizesUserObject(t *testing.T) {
	hub := &fakeBroadcaster{}
	f := NewFanout(hub)

	f.InteractionEvent("room1", &rpc.Event{
		Type:        rpc.EventMessage,
		UserID:      "alice",
		PayloadJSON: `{"id":"m1","content":"hi"}`,
	})

	require.Len(t, hub.broadcasts, 1)
	m := asMap(t, hub.broadcasts[0].message)

	raw, err := json.Marshal(m["user"])
	require.NoError(t, err)
	var user map[string]string
	require.NoError(t, json.Unmarshal(raw, &user))
	require.Equal(t, "alice", user["id"])
}
