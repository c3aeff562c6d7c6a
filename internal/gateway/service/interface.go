package service

import (
	"context"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/hub"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
)

// RoomBridge is the backend surface the session service drives. It is
// satisfied by client.RoomClient.
type RoomBridge interface {
	JoinRoom(ctx context.Context, roomID, userID string, isHost bool) error
	LeaveRoom(ctx context.Context, roomID, userID string) error
	UpdateMediaState(ctx context.Context, roomID, userID string, video, audio, screen bool) error
	SendMessage(ctx context.Context, roomID, userID, content string) (string, error)
	CreatePoll(ctx context.Context, roomID, userID, question string, options []string) (string, error)
	CreateQuiz(ctx context.Context, roomID, userID, question string, options []string, correctOption, timeLimitSec int) (string, error)
	CreateQuestion(ctx context.Context, roomID, userID, text string) (string, error)
	ApproveQuestion(ctx context.Context, roomID, userID, questionID string) error
	SendPollResponse(ctx context.Context, roomID, userID, pollID string, optionIndex int) error
	SendQuizResponse(ctx context.Context, roomID, userID, quizID string, optionIndex int, answerMs int64) error
	OpenEventStream(roomID, kind string, sink func(*rpc.Event)) (context.CancelFunc, error)
}

// SessionService owns the per-connection room lifecycle and relays
// interaction actions to the backend.
type SessionService interface {
	HandleJoinRoom(ctx context.Context, c *hub.Client, roomID string, isHost bool) error
	HandleSendMessage(ctx context.Context, c *hub.Client, roomID, content string) error
	HandleCreatePoll(ctx context.Context, c *hub.Client, roomID, question string, options []string) error
	HandleCreateQuiz(ctx context.Context, c *hub.Client, roomID, question string, options []string, correctOption, timeLimitSec int) error
	HandleSubmitQuestion(ctx context.Context, c *hub.Client, roomID, text string) error
	HandleApproveQuestion(ctx context.Context, c *hub.Client, roomID, questionID string) error
	HandlePollResponse(ctx context.Context, c *hub.Client, roomID, pollID string, optionIndex int) error
	HandleQuizResponse(ctx context.Context, c *hub.Client, roomID, quizID string, optionIndex int, answerMs int64) error
	HandleMediaState(ctx context.Context, c *hub.Client, roomID string, video, audio, screen bool) error
	HandleDisconnect(ctx context.Context, c *hub.Client) error
}
