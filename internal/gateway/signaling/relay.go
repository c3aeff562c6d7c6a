package signaling

import (
	"encoding/json"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// HostTarget is the sentinel a viewer uses to address the host without
// knowing the host's connection id.
const HostTarget = "host"

// roomKeyPrefix keeps negotiation membership separate from event-room
// membership on the shared hub.
const roomKeyPrefix = "webrtc:"

// RoomKey returns the hub room key for an event's negotiation group.
func RoomKey(eventID string) string {
	return roomKeyPrefix + eventID
}

// Target identifies the recipient of a directed signaling message:
// either a specific connection or whoever owns the host role.
type Target struct {
	connID string
}

func ToHost() Target {
	return Target{}
}

func ToConnection(id string) Target {
	return Target{connID: id}
}

// ParseTarget interprets a client-supplied targetUserId. The literal
// "host" (or an empty value) addresses the host; anything else is a
// connection id.
func ParseTarget(raw string) Target {
	if raw == "" || raw == HostTarget {
		return ToHost()
	}
	return ToConnection(raw)
}

func (t Target) IsHost() bool {
	return t.connID == ""
}

// Sender is the transport surface the relay routes through.
type Sender interface {
	BroadcastToRoom(roomKey string, message interface{}, exclude string) error
	SendToClient(clientID string, message interface{}) error
}

// Relay forwards WebRTC negotiation messages between participants. It
// keeps no membership state, and it never inspects SDP or candidate
// payloads; they pass through opaque.
type Relay struct {
	sender Sender
}

func NewRelay(sender Sender) *Relay {
	return &Relay{sender: sender}
}

// Offer routes an SDP offer. A host-addressed offer is broadcast to
// the negotiation group, sender excluded; the host side listens for
// all of them. A connection-addressed offer goes there directly.
func (r *Relay) Offer(eventID, fromConnID string, target Target, sdp json.RawMessage) {
	r.route(eventID, fromConnID, target, &domain.SignalingMessage{
		Type:    domain.MsgTypeOffer,
		EventID: eventID,
		Offer:   sdp,
	})
}

// Answer routes an SDP answer to the connection it responds to. An
// answer always names the offerer's connection id; one without a
// concrete target has nothing to respond to and is dropped.
func (r *Relay) Answer(eventID, fromConnID string, target Target, sdp json.RawMessage) {
	if target.IsHost() {
		pkglog.L().Warn().
			Str(pkglog.FieldRoomID, eventID).
			Str(pkglog.FieldClientID, fromConnID).
			Msg("dropping answer without a target connection")
		return
	}
	r.route(eventID, fromConnID, target, &domain.SignalingMessage{
		Type:    domain.MsgTypeAnswer,
		EventID: eventID,
		Answer:  sdp,
	})
}

// ICECandidate routes a trickled ICE candidate, host-addressable like
// offers.
func (r *Relay) ICECandidate(eventID, fromConnID string, target Target, candidate json.RawMessage) {
	r.route(eventID, fromConnID, target, &domain.SignalingMessage{
		Type:      domain.MsgTypeICECandidate,
		EventID:   eventID,
		Candidate: candidate,
	})
}

// ScreenShare announces a screen share starting or stopping to every
// other participant in the negotiation group.
func (r *Relay) ScreenShare(eventID, fromConnID string, started bool) {
	msgType := domain.MsgTypeScreenShareStopped
	if started {
		msgType = domain.MsgTypeScreenShareStarted
	}
	r.broadcast(eventID, fromConnID, &domain.SignalingMessage{
		Type:    msgType,
		EventID: eventID,
	})
}

// ViewerJoined announces a viewer to the rest of the group so the host
// can initiate an offer toward the named viewer id.
func (r *Relay) ViewerJoined(eventID, fromConnID, viewerID string) {
	r.broadcast(eventID, fromConnID, &domain.SignalingMessage{
		Type:     domain.MsgTypeViewerJoined,
		EventID:  eventID,
		ViewerID: viewerID,
	})
}

// RequestViewers asks current viewers to re-announce themselves, used
// by a host that reconnected mid-event.
func (r *Relay) RequestViewers(eventID, fromConnID string) {
	r.broadcast(eventID, fromConnID, &domain.SignalingMessage{
		Type:    domain.MsgTypeRequestViewers,
		EventID: eventID,
	})
}

// outbound wraps a message with the sender's connection id so the
// recipient can address its reply.
type outbound struct {
	*domain.SignalingMessage
	FromUserID string `json:"fromUserId"`
}

// route delivers a targeted message. Host targets become group
// broadcasts rather than a lookup: only the host acts on messages it
// did not address, so the group is the resolution mechanism.
func (r *Relay) route(eventID, fromConnID string, target Target, msg *domain.SignalingMessage) {
	out := &outbound{SignalingMessage: msg, FromUserID: fromConnID}

	if target.IsHost() {
		if err := r.sender.BroadcastToRoom(RoomKey(eventID), out, fromConnID); err != nil {
			pkglog.L().Warn().Err(err).
				Str(pkglog.FieldRoomID, eventID).
				Str(pkglog.FieldEvent, msg.Type).
				Msg("failed to relay host-addressed message")
		}
		return
	}

	if err := r.sender.SendToClient(target.connID, out); err != nil {
		pkglog.L().Warn().Err(err).
			Str(pkglog.FieldClientID, target.connID).
			Msg("failed to relay signaling message")
	}
}

func (r *Relay) broadcast(eventID, fromConnID string, msg *domain.SignalingMessage) {
	out := &outbound{SignalingMessage: msg, FromUserID: fromConnID}
	if err := r.sender.BroadcastToRoom(RoomKey(eventID), out, fromConnID); err != nil {
		pkglog.L().Warn().Err(err).
			Str(pkglog.FieldRoomID, eventID).
			Msg("failed to broadcast signaling message")
	}
}
