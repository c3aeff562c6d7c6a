package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/hub"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/service"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/signaling"
	pkgjwt "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/jwt"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub      *hub.Hub
	service  service.SessionService
	relay    *signaling.Relay
	verifier *pkgjwt.Verifier
}

func NewWSHandler(h *hub.Hub, svc service.SessionService, relay *signaling.Relay, verifier *pkgjwt.Verifier) *WSHandler {
	return &WSHandler{
		hub:      h,
		service:  svc,
		relay:    relay,
		verifier: verifier,
	}
}

// HandleWebSocket authenticates the handshake, then upgrades. A bad or
// missing token is rejected before the upgrade: the client never sees
// any room traffic.
func (h *WSHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.verifier.Verify(token)
	if err != nil {
		pkglog.L().Warn().Err(err).Msg("websocket auth rejected")
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		pkglog.L().Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	session := domain.NewSession(domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	})
	client := hub.NewClient(uuid.New().String(), h.hub, conn, session)
	client.SetDisconnectHandler(h.handleDisconnect)

	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump(h.handleMessage)

	client.SendMessage(&domain.ConnectedMessage{
		Type:         domain.MsgTypeConnected,
		ConnectionID: client.ID,
		UserID:       claims.UserID,
	})
}

func (h *WSHandler) handleDisconnect(c *hub.Client) {
	if err := h.service.HandleDisconnect(context.Background(), c); err != nil {
		pkglog.L().Warn().Err(err).Str(pkglog.FieldClientID, c.ID).Msg("disconnect cleanup failed")
	}
}

func (h *WSHandler) handleMessage(client *hub.Client, message []byte) {
	var base domain.BaseMessage
	if err := json.Unmarshal(message, &base); err != nil {
		client.SendMessage(domain.NewErrorMessage("", "invalid message format"))
		return
	}

	ctx := context.Background()
	l := pkglog.L()

	switch base.Type {
	case domain.MsgTypeJoinRoom:
		var msg domain.JoinRoomMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid join-room message"))
			return
		}
		if err := h.service.HandleJoinRoom(ctx, client, msg.RoomID, msg.IsHost); err != nil {
			l.Warn().Err(err).Str(pkglog.FieldClientID, client.ID).Msg("join room failed")
		}

	case domain.MsgTypeNewMessage:
		var msg domain.NewMessageMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid new-message"))
			return
		}
		h.service.HandleSendMessage(ctx, client, msg.RoomID, msg.Content)

	case domain.MsgTypeNewPoll:
		var msg domain.NewPollMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid new-poll"))
			return
		}
		h.service.HandleCreatePoll(ctx, client, msg.RoomID, msg.Question, msg.Options)

	case domain.MsgTypeNewQuiz:
		var msg domain.NewQuizMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid new-quiz"))
			return
		}
		h.service.HandleCreateQuiz(ctx, client, msg.RoomID, msg.Question, msg.Options, msg.CorrectOption, msg.TimeLimitSec)

	case domain.MsgTypeQuestionSubmitted:
		var msg domain.SubmitQuestionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid question-submitted"))
			return
		}
		h.service.HandleSubmitQuestion(ctx, client, msg.RoomID, msg.Text)

	case domain.MsgTypeQuestionApproved:
		var msg domain.ApproveQuestionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid question-approved"))
			return
		}
		h.service.HandleApproveQuestion(ctx, client, msg.RoomID, msg.QuestionID)

	case domain.MsgTypePollResponse:
		var msg domain.PollResponseMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid poll-response"))
			return
		}
		h.service.HandlePollResponse(ctx, client, msg.RoomID, msg.PollID, msg.OptionIndex)

	case domain.MsgTypeQuizResponse:
		var msg domain.QuizResponseMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid quiz-response"))
			return
		}
		h.service.HandleQuizResponse(ctx, client, msg.RoomID, msg.QuizID, msg.OptionIndex, msg.AnswerMs)

	case domain.MsgTypeHostMediaState:
		var msg domain.HostMediaStateMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.SendMessage(domain.NewErrorMessage(base.Type, "invalid host-media-state"))
			return
		}
		h.service.HandleMediaState(ctx, client, msg.RoomID, msg.HasVideo, msg.HasAudio, msg.HasScreen)

	case domain.MsgTypeJoinWebRTCRoom,
		domain.MsgTypeOffer,
		domain.MsgTypeAnswer,
		domain.MsgTypeICECandidate,
		domain.MsgTypeScreenShareStarted,
		domain.MsgTypeScreenShareStopped,
		domain.MsgTypeViewerJoined,
		domain.MsgTypeRequestViewers:
		h.handleSignaling(client, base.Type, message)

	default:
		client.SendMessage(domain.NewErrorMessage(base.Type, "unknown message type"))
	}
}

// handleSignaling routes negotiation traffic. Payloads pass through
// opaque; only addressing fields are read.
func (h *WSHandler) handleSignaling(client *hub.Client, msgType string, message []byte) {
	var msg domain.SignalingMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		client.SendMessage(domain.NewErrorMessage(msgType, "invalid signaling message"))
		return
	}
	if msg.EventID == "" {
		client.SendMessage(domain.NewErrorMessage(msgType, "eventId is required"))
		return
	}

	switch msgType {
	case domain.MsgTypeJoinWebRTCRoom:
		h.hub.JoinRoom(client, signaling.RoomKey(msg.EventID))

	case domain.MsgTypeOffer:
		h.relay.Offer(msg.EventID, client.ID, signaling.ParseTarget(msg.TargetUserID), msg.Offer)

	case domain.MsgTypeAnswer:
		h.relay.Answer(msg.EventID, client.ID, signaling.ParseTarget(msg.TargetUserID), msg.Answer)

	case domain.MsgTypeICECandidate:
		h.relay.ICECandidate(msg.EventID, client.ID, signaling.ParseTarget(msg.TargetUserID), msg.Candidate)

	case domain.MsgTypeScreenShareStarted:
		h.relay.ScreenShare(msg.EventID, client.ID, true)

	case domain.MsgTypeScreenShareStopped:
		h.relay.ScreenShare(msg.EventID, client.ID, false)

	case domain.MsgTypeViewerJoined:
		viewerID := msg.ViewerID
		if viewerID == "" {
			viewerID = client.ID
		}
		h.relay.ViewerJoined(msg.EventID, client.ID, viewerID)

	case domain.MsgTypeRequestViewers:
		h.relay.RequestViewers(msg.EventID, client.ID)
	}
}

func (h *WSHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.HandleWebSocket)
}

// bearerToken extracts the credential from the Authorization header or
// the token query parameter. Browser WebSocket clients cannot set
// headers, so the query form is accepted too.
func bearerToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimPrefix(auth, "Bearer ")
		}
		return auth
	}
	return r.URL.Query().Get("token")
}
