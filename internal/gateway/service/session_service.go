package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/bridge"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/client"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/hub"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/registry"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

type sessionService struct {
	hub      *hub.Hub
	rooms    RoomBridge
	fanout   *bridge.Fanout
	presence registry.Registry

	// one outage warning per (room, operation) to avoid log storms
	warnedMu sync.Mutex
	warned   map[string]struct{}
}

func NewSessionService(h *hub.Hub, rooms RoomBridge, fanout *bridge.Fanout, presence registry.Registry) SessionService {
	return &sessionService{
		hub:      h,
		rooms:    rooms,
		fanout:   fanout,
		presence: presence,
		warned:   make(map[string]struct{}),
	}
}

func (s *sessionService) HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string, isHost bool) error {
	if roomID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeJoinRoom, "roomId is required"))
	}

	// Re-joining an already joined room must not open a second set of
	// backend streams. The hub owns transport membership and reports
	// whether this join is new.
	if !s.hub.JoinRoom(c, roomID) {
		return nil
	}
	c.Session.MarkJoined(roomID, isHost)

	if err := s.presence.Register(ctx, roomID, c.ID); err != nil {
		pkglog.Ctx(ctx).Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("presence registration failed")
	}

	// The transport-level join above has independent value: signaling
	// works without the backend. A backend join failure degrades, it
	// does not abort.
	if err := s.rooms.JoinRoom(ctx, roomID, c.Session.UserID(), isHost); err != nil {
		switch {
		case client.IsUnavailable(err):
			s.warnUnavailable(ctx, roomID, domain.MsgTypeJoinRoom, err)
		case status.Code(err) == codes.AlreadyExists:
			c.SendMessage(domain.NewErrorMessage(domain.MsgTypeJoinRoom, statusMessage(err)))
		default:
			pkglog.Ctx(ctx).Warn().Err(err).
				Str(pkglog.FieldRoomID, roomID).
				Str(pkglog.FieldUserID, c.Session.UserID()).
				Msg("backend join failed")
		}
	}

	s.openStream(ctx, c, roomID, domain.StreamKindRoom, func(ev *rpc.Event) {
		s.fanout.RoomEvent(roomID, ev)
	})
	s.openStream(ctx, c, roomID, domain.StreamKindInteraction, func(ev *rpc.Event) {
		s.fanout.InteractionEvent(roomID, ev)
	})

	return c.SendMessage(&domain.RoomJoinedMessage{Type: domain.MsgTypeRoomJoined, RoomID: roomID, IsHost: isHost})
}

func (s *sessionService) HandleSendMessage(ctx context.Context, c *hub.Client, roomID, content string) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeNewMessage); err != nil {
		return err
	}

	userID := c.Session.UserID()
	_, err := s.rooms.SendMessage(ctx, roomID, userID, content)
	if err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeNewMessage, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeNewMessage, err)
		// Degraded: local echo with a locally generated id.
		s.hub.BroadcastToRoom(roomID, map[string]interface{}{
			"type":      domain.MsgTypeNewMessage,
			"id":        uuid.NewString(),
			"content":   content,
			"userId":    userID,
			"user":      map[string]interface{}{"id": userID},
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		}, "")
		return nil
	}

	// The backend's own fanout echoes the message back to the whole
	// room, sender included.
	return nil
}

func (s *sessionService) HandleCreatePoll(ctx context.Context, c *hub.Client, roomID, question string, options []string) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeNewPoll); err != nil {
		return err
	}

	userID := c.Session.UserID()
	id, err := s.rooms.CreatePoll(ctx, roomID, userID, question, options)
	if err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeNewPoll, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeNewPoll, err)
		id = uuid.NewString()
	}

	// Optimistic copy so UI latency is not gated on the backend's own
	// fanout. Clients de-duplicate on id.
	s.hub.BroadcastToRoom(roomID, map[string]interface{}{
		"type":     domain.MsgTypeNewPoll,
		"id":       id,
		"question": question,
		"options":  options,
		"userId":   userID,
	}, "")
	return nil
}

func (s *sessionService) HandleCreateQuiz(ctx context.Context, c *hub.Client, roomID, question string, options []string, correctOption, timeLimitSec int) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeNewQuiz); err != nil {
		return err
	}

	userID := c.Session.UserID()
	id, err := s.rooms.CreateQuiz(ctx, roomID, userID, question, options, correctOption, timeLimitSec)
	if err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeNewQuiz, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeNewQuiz, err)
		id = uuid.NewString()
	}

	// The correct option never leaves the backend.
	s.hub.BroadcastToRoom(roomID, map[string]interface{}{
		"type":         domain.MsgTypeNewQuiz,
		"id":           id,
		"question":     question,
		"options":      options,
		"timeLimitSec": timeLimitSec,
		"userId":       userID,
	}, "")
	return nil
}

func (s *sessionService) HandleSubmitQuestion(ctx context.Context, c *hub.Client, roomID, text string) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeQuestionSubmitted); err != nil {
		return err
	}

	userID := c.Session.UserID()
	id, err := s.rooms.CreateQuestion(ctx, roomID, userID, text)
	if err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeQuestionSubmitted, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeQuestionSubmitted, err)
		id = uuid.NewString()
	}

	s.hub.BroadcastToRoom(roomID, map[string]interface{}{
		"type":   domain.MsgTypeQuestionSubmitted,
		"id":     id,
		"text":   text,
		"userId": userID,
	}, "")
	return nil
}

func (s *sessionService) HandleApproveQuestion(ctx context.Context, c *hub.Client, roomID, questionID string) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeQuestionApproved); err != nil {
		return err
	}

	userID := c.Session.UserID()
	if err := s.rooms.ApproveQuestion(ctx, roomID, userID, questionID); err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeQuestionApproved, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeQuestionApproved, err)
		// Degraded: announce the approval locally so the Q&A UI is not
		// stuck; the question text is only known to the backend.
		s.hub.BroadcastToRoom(roomID, map[string]interface{}{
			"type":   domain.MsgTypeQuestionApproved,
			"id":     questionID,
			"userId": userID,
		}, "")
	}
	// On success the backend echo carries the approved question.
	return nil
}

func (s *sessionService) HandlePollResponse(ctx context.Context, c *hub.Client, roomID, pollID string, optionIndex int) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypePollResponse); err != nil {
		return err
	}

	err := s.rooms.SendPollResponse(ctx, roomID, c.Session.UserID(), pollID, optionIndex)
	if err != nil {
		if client.IsUnavailable(err) {
			// Tallies live in the backend; nothing useful to echo.
			s.warnUnavailable(ctx, roomID, domain.MsgTypePollResponse, err)
			return nil
		}
		return c.SendMessage(domain.NewErrorMessage(domain.MsgTypePollResponse, statusMessage(err)))
	}
	return nil
}

func (s *sessionService) HandleQuizResponse(ctx context.Context, c *hub.Client, roomID, quizID string, optionIndex int, answerMs int64) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeQuizResponse); err != nil {
		return err
	}

	err := s.rooms.SendQuizResponse(ctx, roomID, c.Session.UserID(), quizID, optionIndex, answerMs)
	if err != nil {
		if client.IsUnavailable(err) {
			s.warnUnavailable(ctx, roomID, domain.MsgTypeQuizResponse, err)
			return nil
		}
		return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeQuizResponse, statusMessage(err)))
	}
	return nil
}

func (s *sessionService) HandleMediaState(ctx context.Context, c *hub.Client, roomID string, video, audio, screen bool) error {
	if err := s.requireJoined(c, roomID, domain.MsgTypeHostMediaState); err != nil {
		return err
	}

	userID := c.Session.UserID()
	if err := s.rooms.UpdateMediaState(ctx, roomID, userID, video, audio, screen); err != nil {
		if !client.IsUnavailable(err) {
			return c.SendMessage(domain.NewErrorMessage(domain.MsgTypeHostMediaState, statusMessage(err)))
		}
		s.warnUnavailable(ctx, roomID, domain.MsgTypeHostMediaState, err)
		// Degraded: viewers still need to track the host's tracks.
		s.hub.BroadcastToRoom(roomID, map[string]interface{}{
			"type":      "host-media-updated",
			"hasVideo":  video,
			"hasAudio":  audio,
			"hasScreen": screen,
			"userId":    userID,
		}, "")
	}
	return nil
}

func (s *sessionService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	// Tear down every backend stream this connection held.
	for _, cancel := range c.Session.DrainStreams() {
		cancel()
	}

	userID := c.Session.UserID()
	for _, roomID := range c.Session.Rooms() {
		if err := s.rooms.LeaveRoom(ctx, roomID, userID); err != nil && !client.IsUnavailable(err) {
			pkglog.Ctx(ctx).Warn().Err(err).
				Str(pkglog.FieldRoomID, roomID).
				Str(pkglog.FieldUserID, userID).
				Msg("backend leave failed")
		}
		if err := s.presence.Deregister(ctx, roomID, c.ID); err != nil {
			pkglog.Ctx(ctx).Warn().Err(err).Str(pkglog.FieldRoomID, roomID).Msg("presence deregistration failed")
		}
	}

	pkglog.Ctx(ctx).Info().
		Str(pkglog.FieldClientID, c.ID).
		Str(pkglog.FieldUserID, userID).
		Msg("session closed")
	return nil
}

// openStream opens one backend event stream for a room, tolerating
// failure: the join already succeeded at the transport level.
func (s *sessionService) openStream(ctx context.Context, c *hub.Client, roomID, kind string, sink func(*rpc.Event)) {
	key := domain.StreamKey(kind, roomID)
	if c.Session.HasStream(key) {
		return
	}

	cancel, err := s.rooms.OpenEventStream(roomID, kind, sink)
	if err != nil {
		if client.IsUnavailable(err) {
			s.warnUnavailable(ctx, roomID, "stream-"+kind, err)
		} else {
			pkglog.Ctx(ctx).Warn().Err(err).
				Str(pkglog.FieldRoomID, roomID).
				Str("stream_kind", kind).
				Msg("failed to open event stream")
		}
		return
	}
	c.Session.PutStream(key, cancel)
}

var errNotJoined = errors.New("room not joined")

func (s *sessionService) requireJoined(c *hub.Client, roomID, action string) error {
	if roomID == "" || !c.Session.Joined(roomID) {
		c.SendMessage(domain.NewErrorMessage(action, "join the room first"))
		return errNotJoined
	}
	return nil
}

// warnUnavailable logs a backend outage once per room and operation.
func (s *sessionService) warnUnavailable(ctx context.Context, roomID, op string, err error) {
	key := roomID + "|" + op
	s.warnedMu.Lock()
	_, seen := s.warned[key]
	if !seen {
		s.warned[key] = struct{}{}
	}
	s.warnedMu.Unlock()
	if seen {
		return
	}

	pkglog.Ctx(ctx).Warn().Err(err).
		Str(pkglog.FieldRoomID, roomID).
		Str(pkglog.FieldEvent, op).
		Msg("backend unavailable, degrading to transport-only")
}

func statusMessage(err error) string {
	return status.Convert(err).Message()
}
