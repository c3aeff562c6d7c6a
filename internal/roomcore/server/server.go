package server

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/registry"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/repository"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// RoomServer implements rpc.RoomServiceServer on top of the room registry
// and the content store.
type RoomServer struct {
	reg   *registry.Registry
	store repository.ContentStore
}

// New creates a RoomServer.
func New(reg *registry.Registry, store repository.ContentStore) *RoomServer {
	return &RoomServer{reg: reg, store: store}
}

func (s *RoomServer) JoinRoom(ctx context.Context, req *rpc.JoinRoomRequest) (*rpc.JoinRoomResponse, error) {
	if req.RoomID == "" || req.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "roomId and userId are required")
	}

	if err := s.reg.JoinRoom(req.RoomID, req.UserID, req.IsHost); err != nil {
		if errors.Is(err, registry.ErrHostTaken) {
			return nil, status.Error(codes.AlreadyExists, "room already has a host")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}

	return &rpc.JoinRoomResponse{IsHost: req.IsHost}, nil
}

func (s *RoomServer) LeaveRoom(ctx context.Context, req *rpc.LeaveRoomRequest) (*rpc.Ack, error) {
	if req.RoomID == "" || req.UserID == "" {
		return nil, status.Error(codes.InvalidArgument, "roomId and userId are required")
	}

	if err := s.reg.LeaveRoom(req.RoomID, req.UserID); err != nil {
		if errors.Is(err, registry.ErrRoomNotFound) {
			return nil, status.Error(codes.NotFound, "room not found")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &rpc.Ack{}, nil
}

func (s *RoomServer) UpdateMediaState(ctx context.Context, req *rpc.UpdateMediaStateRequest) (*rpc.Ack, error) {
	if err := s.requireHost(req.RoomID, req.UserID); err != nil {
		return nil, err
	}

	if err := s.reg.UpdateMediaState(req.RoomID, req.UserID, req.HasVideo, req.HasAudio, req.HasScreen); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &rpc.Ack{}, nil
}

func (s *RoomServer) SendMessage(ctx context.Context, req *rpc.SendMessageRequest) (*rpc.SendMessageResponse, error) {
	if req.Content == "" {
		return nil, status.Error(codes.InvalidArgument, "message content is required")
	}
	if !s.reg.RoomExists(req.RoomID) {
		return nil, status.Error(codes.NotFound, "room not found")
	}

	msg := &domain.Message{
		ID:        uuid.New().String(),
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveMessage(ctx, msg); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist message")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventMessage, req.UserID, map[string]interface{}{
		"id":        msg.ID,
		"content":   msg.Content,
		"createdAt": msg.CreatedAt,
	})

	return &rpc.SendMessageResponse{MessageID: msg.ID}, nil
}

func (s *RoomServer) CreatePoll(ctx context.Context, req *rpc.CreatePollRequest) (*rpc.CreatePollResponse, error) {
	if req.Question == "" || len(req.Options) < 2 {
		return nil, status.Error(codes.InvalidArgument, "a poll needs a question and at least two options")
	}
	if !s.reg.RoomExists(req.RoomID) {
		return nil, status.Error(codes.NotFound, "room not found")
	}

	poll := &domain.Poll{
		ID:        uuid.New().String(),
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		Question:  req.Question,
		Options:   marshalOptions(req.Options),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SavePoll(ctx, poll); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist poll")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventPollCreated, req.UserID, map[string]interface{}{
		"id":       poll.ID,
		"question": poll.Question,
		"options":  req.Options,
	})

	return &rpc.CreatePollResponse{PollID: poll.ID}, nil
}

func (s *RoomServer) CreateQuiz(ctx context.Context, req *rpc.CreateQuizRequest) (*rpc.CreateQuizResponse, error) {
	if req.Question == "" || len(req.Options) < 2 {
		return nil, status.Error(codes.InvalidArgument, "a quiz needs a question and at least two options")
	}
	if req.CorrectOption < 0 || req.CorrectOption >= len(req.Options) {
		return nil, status.Error(codes.InvalidArgument, "correctOption is out of range")
	}
	if err := s.requireHost(req.RoomID, req.UserID); err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		ID:            uuid.New().String(),
		RoomID:        req.RoomID,
		UserID:        req.UserID,
		Question:      req.Question,
		Options:       marshalOptions(req.Options),
		CorrectOption: req.CorrectOption,
		TimeLimitSec:  req.TimeLimitSec,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.store.SaveQuiz(ctx, quiz); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist quiz")
	}

	// The correct option stays server-side until scoring.
	s.emitInteraction(ctx, req.RoomID, rpc.EventQuizCreated, req.UserID, map[string]interface{}{
		"id":           quiz.ID,
		"question":     quiz.Question,
		"options":      req.Options,
		"timeLimitSec": quiz.TimeLimitSec,
	})

	return &rpc.CreateQuizResponse{QuizID: quiz.ID}, nil
}

func (s *RoomServer) CreateQuestion(ctx context.Context, req *rpc.CreateQuestionRequest) (*rpc.CreateQuestionResponse, error) {
	if req.Text == "" {
		return nil, status.Error(codes.InvalidArgument, "question text is required")
	}
	if !s.reg.RoomExists(req.RoomID) {
		return nil, status.Error(codes.NotFound, "room not found")
	}

	q := &domain.Question{
		ID:        uuid.New().String(),
		RoomID:    req.RoomID,
		UserID:    req.UserID,
		Text:      req.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveQuestion(ctx, q); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist question")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventQuestionSubmitted, req.UserID, map[string]interface{}{
		"id":   q.ID,
		"text": q.Text,
	})

	return &rpc.CreateQuestionResponse{QuestionID: q.ID}, nil
}

func (s *RoomServer) ApproveQuestion(ctx context.Context, req *rpc.ApproveQuestionRequest) (*rpc.Ack, error) {
	if err := s.requireHost(req.RoomID, req.UserID); err != nil {
		return nil, err
	}

	q, err := s.store.ApproveQuestion(ctx, req.QuestionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			return nil, status.Error(codes.NotFound, "question not found")
		}
		return nil, status.Error(codes.Internal, "failed to approve question")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventQuestionApproved, q.UserID, map[string]interface{}{
		"id":   q.ID,
		"text": q.Text,
	})

	return &rpc.Ack{}, nil
}

func (s *RoomServer) SendPollResponse(ctx context.Context, req *rpc.SendPollResponseRequest) (*rpc.Ack, error) {
	if !s.reg.RoomExists(req.RoomID) {
		return nil, status.Error(codes.NotFound, "room not found")
	}

	resp := &domain.PollResponse{
		PollID:      req.PollID,
		UserID:      req.UserID,
		RoomID:      req.RoomID,
		OptionIndex: req.OptionIndex,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.SavePollResponse(ctx, resp); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist poll response")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventPollResponse, req.UserID, map[string]interface{}{
		"pollId":      req.PollID,
		"optionIndex": req.OptionIndex,
	})

	return &rpc.Ack{}, nil
}

func (s *RoomServer) SendQuizResponse(ctx context.Context, req *rpc.SendQuizResponseRequest) (*rpc.Ack, error) {
	if !s.reg.RoomExists(req.RoomID) {
		return nil, status.Error(codes.NotFound, "room not found")
	}

	resp := &domain.QuizResponse{
		QuizID:      req.QuizID,
		UserID:      req.UserID,
		RoomID:      req.RoomID,
		OptionIndex: req.OptionIndex,
		AnswerMs:    req.AnswerMs,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.SaveQuizResponse(ctx, resp); err != nil {
		return nil, status.Error(codes.Internal, "failed to persist quiz response")
	}

	s.emitInteraction(ctx, req.RoomID, rpc.EventQuizResponse, req.UserID, map[string]interface{}{
		"quizId":      req.QuizID,
		"optionIndex": req.OptionIndex,
		"answerMs":    req.AnswerMs,
	})

	return &rpc.Ack{}, nil
}

func (s *RoomServer) StreamRoomEvents(req *rpc.StreamEventsRequest, stream rpc.EventStream) error {
	return s.streamEvents(req, stream, registry.KindRoom)
}

func (s *RoomServer) StreamInteractionEvents(req *rpc.StreamEventsRequest, stream rpc.EventStream) error {
	return s.streamEvents(req, stream, registry.KindInteraction)
}

func (s *RoomServer) streamEvents(req *rpc.StreamEventsRequest, stream rpc.EventStream, kind registry.Kind) error {
	sub, err := s.reg.Subscribe(req.RoomID, kind)
	if err != nil {
		return status.Error(codes.NotFound, "room not found")
	}
	defer s.reg.Unsubscribe(sub)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-sub.C:
			if !ok {
				// Room torn down; end the stream cleanly.
				return nil
			}
			if err := stream.Send(ev); err != nil {
				return err
			}
		}
	}
}

// requireHost checks the room exists and the acting user holds its host slot.
func (s *RoomServer) requireHost(roomID, userID string) error {
	host, ok := s.reg.Host(roomID)
	if !ok {
		if !s.reg.RoomExists(roomID) {
			return status.Error(codes.NotFound, "room not found")
		}
		return status.Error(codes.PermissionDenied, "room has no host")
	}
	if host != userID {
		return status.Error(codes.PermissionDenied, "only the room host may perform this action")
	}
	return nil
}

func (s *RoomServer) emitInteraction(ctx context.Context, roomID, eventType, userID string, payload map[string]interface{}) {
	b, err := json.Marshal(payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldEvent, eventType).Msg("failed to encode event payload")
		return
	}
	if err := s.reg.EmitInteractionEvent(roomID, &rpc.Event{
		Type:        eventType,
		UserID:      userID,
		PayloadJSON: string(b),
	}); err != nil {
		log.Ctx(ctx).Warn().Err(err).
			Str(log.FieldRoomID, roomID).
			Str(log.FieldEvent, eventType).
			Msg("interaction event not emitted")
	}
}

func marshalOptions(opts []string) string {
	b, _ := json.Marshal(opts)
	return string(b)
}
