package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/registry"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/repository"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/rpc"
)

func newServer(t *testing.T) (*RoomServer, *registry.Registry, *repository.MemoryStore) {
	t.Helper()
	reg := registry.New()
	store := repository.NewMemoryStore()
	return New(reg, store), reg, store
}

func join(t *testing.T, s *RoomServer, roomID, userID string, isHost bool) {
	t.Helper()
	_, err := s.JoinRoom(context.Background(), &rpc.JoinRoomRequest{RoomID: roomID, UserID: userID, IsHost: isHost})
	require.NoError(t, err)
}

func TestJoinRoomValidation(t *testing.T) {
	s, _, _ := newServer(t)

	_, err := s.JoinRoom(context.Background(), &rpc.JoinRoomRequest{RoomID: "", UserID: "alice"})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.JoinRoom(context.Background(), &rpc.JoinRoomRequest{RoomID: "room1", UserID: ""})
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestJoinRoomHostConflict(t *testing.T) {
	s, _, _ := newServer(t)
	join(t, s, "room1", "alice", true)

	_, err := s.JoinRoom(context.Background(), &rpc.JoinRoomRequest{RoomID: "room1", UserID: "bob", IsHost: true})
	require.Equal(t, codes.AlreadyExists, status.Code(err))

	// Same host again is fine.
	join(t, s, "room1", "alice", true)
}

func TestLeaveUnknownRoomNotFound(t *testing.T) {
	s, _, _ := newServer(t)
	_, err := s.LeaveRoom(context.Background(), &rpc.LeaveRoomRequest{RoomID: "nope", UserID: "alice"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestSendMessagePersistsAndReturnsID(t *testing.T) {
	s, _, store := newServer(t)
	join(t, s, "room1", "alice", true)

	resp, err := s.SendMessage(context.Background(), &rpc.SendMessageRequest{RoomID: "room1", UserID: "alice", Content: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.MessageID)
	require.Equal(t, 1, store.MessageCount())

	_, err = s.SendMessage(context.Background(), &rpc.SendMessageRequest{RoomID: "room1", UserID: "alice", Content: ""})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = s.SendMessage(context.Background(), &rpc.SendMessageRequest{RoomID: "ghost", UserID: "alice", Content: "hi"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestCreatePollValidation(t *testing.T) {
	s, _, _ := newServer(t)
	join(t, s, "room1", "alice", true)

	_, err := s.CreatePoll(context.Background(), &rpc.CreatePollRequest{RoomID: "room1", UserID: "alice", Question: "q", Options: []string{"only"}})
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	resp, err := s.CreatePoll(context.Background(), &rpc.CreatePollRequest{RoomID: "room1", UserID: "alice", Question: "q", Options: []string{"a", "b"}})
	require.NoError(t, err)
	require.NotEmpty(t, resp.PollID)
}

func TestCreateQuizHostOnly(t *testing.T) {
	s, _, _ := newServer(t)
	join(t, s, "room1", "alice", true)
	join(t, s, "room1", "bob", false)

	req := &rpc.CreateQuizRequest{
		RoomID: "room1", UserID: "bob",
		Question: "q", Options: []string{"a", "b"}, CorrectOption: 0, TimeLimitSec: 30,
	}
	_, err := s.CreateQuiz(context.Background(), req)
	require.Equal(t, codes.PermissionDenied, status.Code(err))

	req.UserID = "alice"
	resp, err := s.CreateQuiz(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.QuizID)

	req.CorrectOption = 5
	_, err = s.CreateQuiz(context.Background(), req)
	require.Equal(t, codes.InvalidArgument, status.Code(err))

	req.RoomID = "ghost"
	req.CorrectOption = 0
	_, err = s.CreateQuiz(context.Background(), req)
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestQuizCreatedEventHidesCorrectOption(t *testing.T) {
	s, reg, _ := newServer(t)
	join(t, s, "room1", "alice", true)

	sub, err := reg.Subscribe("room1", registry.KindInteraction)
	require.NoError(t, err)

	_, err = s.CreateQuiz(context.Background(), &rpc.CreateQuizRequest{
		RoomID: "room1", UserID: "alice",
		Question: "q", Options: []string{"a", "b"}, CorrectOption: 1, TimeLimitSec: 20,
	})
	require.NoError(t, err)

	select {
	case ev := <-sub.C:
		require.Equal(t, rpc.EventQuizCreated, ev.Type)
		require.NotContains(t, ev.PayloadJSON, "correctOption")
	case <-time.After(time.Second):
		t.Fatal("no quiz event emitted")
	}
}

func TestApproveQuestionFlow(t *testing.T) {
	s, _, _ := newServer(t)
	join(t, s, "room1", "alice", true)
	join(t, s, "room1", "bob", false)

	created, err := s.CreateQuestion(context.Background(), &rpc.CreateQuestionRequest{RoomID: "room1", UserID: "bob", Text: "why?"})
	require.NoError(t, err)

	// Only the host may approve.
	_, err = s.ApproveQuestion(context.Background(), &rpc.ApproveQuestionRequest{RoomID: "room1", UserID: "bob", QuestionID: created.QuestionID})
	require.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = s.ApproveQuestion(context.Background(), &rpc.ApproveQuestionRequest{RoomID: "room1", UserID: "alice", QuestionID: created.QuestionID})
	require.NoError(t, err)

	_, err = s.ApproveQuestion(context.Background(), &rpc.ApproveQuestionRequest{RoomID: "room1", UserID: "alice", QuestionID: "missing"})
	require.Equal(t, codes.NotFound, status.Code(err))
}

func TestPollResponseUpsertDeduplicates(t *testing.T) {
	s, _, store := newServer(t)
	join(t, s, "room1", "alice", true)
	join(t, s, "room1", "bob", false)

	vote := &rpc.SendPollResponseRequest{RoomID: "room1", UserID: "bob", PollID: "p1", OptionIndex: 0}
	_, err := s.SendPollResponse(context.Background(), vote)
	require.NoError(t, err)

	// A revote replaces the previous response instead of duplicating it.
	vote.OptionIndex = 1
	_, err = s.SendPollResponse(context.Background(), vote)
	require.NoError(t, err)
	require.Equal(t, 1, store.PollResponseCount())
}

type fakeStream struct {
	grpc.ServerStream
	ctx    context.Context
	events chan *rpc.Event
}

func (f *fakeStream) Context() context.Context { return f.ctx }

func (f *fakeStream) Send(ev *rpc.Event) error {
	f.events <- ev
	return nil
}

func TestStreamRoomEventsDeliversAndEnds(t *testing.T) {
	s, reg, _ := newServer(t)
	join(t, s, "room1", "alice", true)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := &fakeStream{ctx: ctx, events: make(chan *rpc.Event, 16)}

	done := make(chan error, 1)
	go func() {
		done <- s.StreamRoomEvents(&rpc.StreamEventsRequest{RoomID: "room1"}, stream)
	}()

	// Give the stream a moment to subscribe before producing.
	require.Eventually(t, func() bool {
		return reg.SubscriberCount("room1", registry.KindRoom) == 1
	}, time.Second, 10*time.Millisecond)

	join(t, s, "room1", "bob", false)

	select {
	case ev := <-stream.events:
		require.Equal(t, rpc.EventUserJoined, ev.Type)
		require.Equal(t, "bob", ev.UserID)
	case <-time.After(time.Second):
		t.Fatal("no event delivered")
	}

	// Emptying the room ends the stream cleanly.
	_, err := s.LeaveRoom(context.Background(), &rpc.LeaveRoomRequest{RoomID: "room1", UserID: "bob"})
	require.NoError(t, err)
	_, err = s.LeaveRoom(context.Background(), &rpc.LeaveRoomRequest{RoomID: "room1", UserID: "alice"})
	require.NoError(t, err)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("stream did not end after room teardown")
	}
}

func TestStreamUnknownRoom(t *testing.T) {
	s, _, _ := newServer(t)
	stream := &fakeStream{ctx: context.Background(), events: make(chan *rpc.Event, 1)}
	err := s.StreamRoomEvents(&rpc.StreamEventsRequest{RoomID: "nope"}, stream)
	require.Equal(t, codes.NotFound, status.Code(err))
}
