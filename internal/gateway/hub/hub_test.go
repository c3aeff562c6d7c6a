package hub

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/config"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
)

func testWSConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		PingInterval:   30 * time.Second,
		PongWait:       60 * time.Second,
		WriteWait:      10 * time.Second,
		MaxMessageSize: 65536,
	}
}

// newMember builds a registered client without a live websocket. The
// write pump never runs, so deliveries pile up in Send for inspection.
func newMember(t *testing.T, h *Hub, id string) *Client {
	t.Helper()
	c := NewClient(id, h, nil, domain.NewSession(domain.Identity{UserID: id}))
	h.Register(c)
	return c
}

func recvRaw(t *testing.T, c *Client) map[string]interface{} {
	t.Helper()
	select {
	case raw := <-c.Send:
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &m))
		return m
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return nil
	}
}

func TestJoinRoomReportsNewMembership(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()
	c := newMember(t, h, "conn1")

	require.True(t, h.JoinRoom(c, "room1"))
	require.False(t, h.JoinRoom(c, "room1"))
	require.True(t, h.JoinRoom(c, "room2"))
	require.Equal(t, 1, h.RoomClientCount("room1"))
}

func TestBroadcastExcludesSender(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()
	a := newMember(t, h, "conn-a")
	b := newMember(t, h, "conn-b")
	h.JoinRoom(a, "room1")
	h.JoinRoom(b, "room1")

	require.NoError(t, h.BroadcastToRoom("room1", map[string]string{"type": "ping"}, "conn-a"))

	m := recvRaw(t, b)
	require.Equal(t, "ping", m["type"])
	select {
	case raw := <-a.Send:
		t.Fatalf("sender received its own broadcast: %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLeaveRoomCollectsEmptyRoom(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()
	c := newMember(t, h, "conn1")
	h.JoinRoom(c, "room1")

	h.LeaveRoom(c, "room1")
	require.Equal(t, 0, h.RoomClientCount("room1"))
	// A fresh join after leaving is new again.
	require.True(t, h.JoinRoom(c, "room1"))
}

func TestUnregisterRemovesAllMemberships(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()
	c := newMember(t, h, "conn1")
	other := newMember(t, h, "conn2")
	h.JoinRoom(c, "room1")
	h.JoinRoom(c, "room2")
	h.JoinRoom(other, "room1")

	h.Unregister(c)

	require.Eventually(t, func() bool {
		return h.RoomClientCount("room1") == 1 && h.RoomClientCount("room2") == 0
	}, time.Second, 10*time.Millisecond)

	// The departed client's Send channel is closed.
	_, open := <-c.Send
	require.False(t, open)
}

func TestSendToClientUnknownIDIsNoop(t *testing.T) {
	h := NewHub(testWSConfig())
	go h.Run()

	require.NoError(t, h.SendToClient("nobody", map[string]string{"type": "ping"}))
}
