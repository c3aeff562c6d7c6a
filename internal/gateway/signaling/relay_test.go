package signaling

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

type sentDirect struct {
	clientID string
	message  interface{}
}

type sentBroadcast struct {
	roomKey string
	message interface{}
	exclude string
}

type fakeSender struct {
	direct     []sentDirect
	broadcasts []sentBroadcast
}

func (f *fakeSender) SendToClient(clientID string, message interface{}) error {
	f.direct = append(f.direct, sentDirect{clientID, message})
	return nil
}

func (f *fakeSender) BroadcastToRoom(roomKey string, message interface{}, exclude string) error {
	f.broadcasts = append(f.broadcasts, sentBroadcast{roomKey, message, exclude})
	return nil
}

func roundTrip(t *testing.T, message interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(message)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestParseTarget(t *testing.T) {
	require.True(t, ParseTarget("host").IsHost())
	require.True(t, ParseTarget("").IsHost())
	require.False(t, ParseTarget("conn-42").IsHost())
}

func TestOfferToHostBroadcastsToGroup(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.Offer("evt1", "viewer-conn", ToHost(), json.RawMessage(`{"sdp":"v=0"}`))

	require.Empty(t, sender.direct)
	require.Len(t, sender.broadcasts, 1)
	require.Equal(t, RoomKey("evt1"), sender.broadcasts[0].roomKey)
	require.Equal(t, "viewer-conn", sender.broadcasts[0].exclude)

	m := roundTrip(t, sender.broadcasts[0].message)
	require.Equal(t, "offer", m["type"])
	require.Equal(t, "evt1", m["eventId"])
	require.Equal(t, "viewer-conn", m["fromUserId"])
	require.NotNil(t, m["offer"])
}

func TestOfferToConnectionGoesDirect(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.Offer("evt1", "host-conn", ToConnection("viewer-conn"), json.RawMessage(`{"sdp":"v=0"}`))

	require.Empty(t, sender.broadcasts)
	require.Len(t, sender.direct, 1)
	require.Equal(t, "viewer-conn", sender.direct[0].clientID)
}

func TestAnswerGoesToNamedConnection(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.Answer("evt1", "host-conn", ToConnection("viewer-conn"), json.RawMessage(`{"sdp":"v=0"}`))

	require.Len(t, sender.direct, 1)
	require.Equal(t, "viewer-conn", sender.direct[0].clientID)

	m := roundTrip(t, sender.direct[0].message)
	require.Equal(t, "answer", m["type"])
	require.Equal(t, "host-conn", m["fromUserId"])
}

func TestAnswerWithoutConcreteTargetIsDropped(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.Answer("evt1", "viewer-conn", ParseTarget(""), json.RawMessage(`{"sdp":"v=0"}`))
	relay.Answer("evt1", "viewer-conn", ParseTarget("host"), json.RawMessage(`{"sdp":"v=0"}`))

	require.Empty(t, sender.direct)
	require.Empty(t, sender.broadcasts)
}

func TestICECandidateDualMode(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.ICECandidate("evt1", "viewer-conn", ParseTarget("host"), json.RawMessage(`{"candidate":"c"}`))
	relay.ICECandidate("evt1", "host-conn", ParseTarget("viewer-conn"), json.RawMessage(`{"candidate":"c"}`))

	require.Len(t, sender.broadcasts, 1)
	require.Equal(t, "viewer-conn", sender.broadcasts[0].exclude)
	require.Len(t, sender.direct, 1)
	require.Equal(t, "viewer-conn", sender.direct[0].clientID)
}

func TestScreenShareBroadcastsExcludingSender(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.ScreenShare("evt1", "host-conn", true)
	relay.ScreenShare("evt1", "host-conn", false)

	require.Len(t, sender.broadcasts, 2)
	require.Equal(t, RoomKey("evt1"), sender.broadcasts[0].roomKey)
	require.Equal(t, "host-conn", sender.broadcasts[0].exclude)

	started := roundTrip(t, sender.broadcasts[0].message)
	require.Equal(t, "screen-share-started", started["type"])
	stopped := roundTrip(t, sender.broadcasts[1].message)
	require.Equal(t, "screen-share-stopped", stopped["type"])
}

func TestViewerJoinedCarriesViewerID(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.ViewerJoined("evt1", "viewer-conn", "viewer-conn")

	require.Len(t, sender.broadcasts, 1)
	m := roundTrip(t, sender.broadcasts[0].message)
	require.Equal(t, "viewer-joined", m["type"])
	require.Equal(t, "viewer-conn", m["viewerId"])
	require.Equal(t, "viewer-conn", m["fromUserId"])
}

func TestRequestViewersBroadcasts(t *testing.T) {
	sender := &fakeSender{}
	relay := NewRelay(sender)

	relay.RequestViewers("evt1", "host-conn")

	require.Len(t, sender.broadcasts, 1)
	require.Equal(t, "host-conn", sender.broadcasts[0].exclude)
	m := roundTrip(t, sender.broadcasts[0].message)
	require.Equal(t, "request-viewers", m["type"])
}
