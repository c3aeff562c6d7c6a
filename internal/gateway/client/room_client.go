package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/gateway/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	pkglog "github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// RoomClient wraps the room core gRPC client. It owns the connection
// and the event stream lifecycle; callers see typed operations plus a
// uniform way to recognize backend outages.
type RoomClient struct {
	conn   *grpc.ClientConn
	client rpc.RoomServiceClient
}

// NewRoomClient connects to the room core service.
func NewRoomClient(address string) (*RoomClient, error) {
	conn, err := grpc.Dial(address,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to room core: %w", err)
	}

	return &RoomClient{
		conn:   conn,
		client: rpc.NewRoomServiceClient(conn),
	}, nil
}

// IsUnavailable reports whether an error means the backend cannot be
// reached right now, as opposed to rejecting the request.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	return status.Code(err) == codes.Unavailable
}

func (c *RoomClient) JoinRoom(ctx context.Context, roomID, userID string, isHost bool) error {
	_, err := c.client.JoinRoom(ctx, &rpc.JoinRoomRequest{RoomID: roomID, UserID: userID, IsHost: isHost})
	return err
}

func (c *RoomClient) LeaveRoom(ctx context.Context, roomID, userID string) error {
	_, err := c.client.LeaveRoom(ctx, &rpc.LeaveRoomRequest{RoomID: roomID, UserID: userID})
	return err
}

func (c *RoomClient) UpdateMediaState(ctx context.Context, roomID, userID string, video, audio, screen bool) error {
	_, err := c.client.UpdateMediaState(ctx, &rpc.UpdateMediaStateRequest{
		RoomID: roomID, UserID: userID,
		HasVideo: video, HasAudio: audio, HasScreen: screen,
	})
	return err
}

func (c *RoomClient) SendMessage(ctx context.Context, roomID, userID, content string) (string, error) {
	resp, err := c.client.SendMessage(ctx, &rpc.SendMessageRequest{RoomID: roomID, UserID: userID, Content: content})
	if err != nil {
		return "", err
	}
	return resp.MessageID, nil
}

func (c *RoomClient) CreatePoll(ctx context.Context, roomID, userID, question string, options []string) (string, error) {
	resp, err := c.client.CreatePoll(ctx, &rpc.CreatePollRequest{RoomID: roomID, UserID: userID, Question: question, Options: options})
	if err != nil {
		return "", err
	}
	return resp.PollID, nil
}

func (c *RoomClient) CreateQuiz(ctx context.Context, roomID, userID, question string, options []string, correctOption, timeLimitSec int) (string, error) {
	resp, err := c.client.CreateQuiz(ctx, &rpc.CreateQuizRequest{
		RoomID: roomID, UserID: userID, Question: question, Options: options,
		CorrectOption: correctOption, TimeLimitSec: timeLimitSec,
	})
	if err != nil {
		return "", err
	}
	return resp.QuizID, nil
}

func (c *RoomClient) CreateQuestion(ctx context.Context, roomID, userID, text string) (string, error) {
	resp, err := c.client.CreateQuestion(ctx, &rpc.CreateQuestionRequest{RoomID: roomID, UserID: userID, Text: text})
	if err != nil {
		return "", err
	}
	return resp.QuestionID, nil
}

func (c *RoomClient) ApproveQuestion(ctx context.Context, roomID, userID, questionID string) error {
	_, err := c.client.ApproveQuestion(ctx, &rpc.ApproveQuestionRequest{RoomID: roomID, UserID: userID, QuestionID: questionID})
	return err
}

func (c *RoomClient) SendPollResponse(ctx context.Context, roomID, userID, pollID string, optionIndex int) error {
	_, err := c.client.SendPollResponse(ctx, &rpc.SendPollResponseRequest{
		RoomID: roomID, UserID: userID, PollID: pollID, OptionIndex: optionIndex,
	})
	return err
}

func (c *RoomClient) SendQuizResponse(ctx context.Context, roomID, userID, quizID string, optionIndex int, answerMs int64) error {
	_, err := c.client.SendQuizResponse(ctx, &rpc.SendQuizResponseRequest{
		RoomID: roomID, UserID: userID, QuizID: quizID, OptionIndex: optionIndex, AnswerMs: answerMs,
	})
	return err
}

// OpenEventStream opens the backend event stream of the given kind for
// a room and forwards every event to sink from a dedicated goroutine.
// The returned cancel function tears the stream down.
func (c *RoomClient) OpenEventStream(roomID, kind string, sink func(*rpc.Event)) (context.CancelFunc, error) {
	ctx, cancel := context.WithCancel(context.Background())

	var (
		stream rpc.EventReceiver
		err    error
	)
	switch kind {
	case domain.StreamKindRoom:
		stream, err = c.client.StreamRoomEvents(ctx, &rpc.StreamEventsRequest{RoomID: roomID})
	case domain.StreamKindInteraction:
		stream, err = c.client.StreamInteractionEvents(ctx, &rpc.StreamEventsRequest{RoomID: roomID})
	default:
		err = fmt.Errorf("unknown stream kind %q", kind)
	}
	if err != nil {
		cancel()
		return nil, err
	}

	go func() {
		defer cancel()
		for {
			ev, err := stream.Recv()
			if err != nil {
				if !isStreamShutdown(err) {
					pkglog.L().Warn().Err(err).
						Str(pkglog.FieldRoomID, roomID).
						Str("stream_kind", kind).
						Msg("event stream closed")
				}
				return
			}
			sink(ev)
		}
	}()

	return cancel, nil
}

// Close closes the gRPC connection.
func (c *RoomClient) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func isStreamShutdown(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		return true
	}
	switch status.Code(err) {
	case codes.Canceled:
		return true
	case codes.Unavailable:
		return true
	}
	return strings.Contains(err.Error(), "transport is closing")
}
