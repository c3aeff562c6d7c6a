package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// EventReceiver is the client-side receive half of an event subscription.
type EventReceiver interface {
	Recv() (*Event, error)
	grpc.ClientStream
}

// RoomServiceClient mirrors RoomServiceServer for callers.
type RoomServiceClient interface {
	JoinRoom(ctx context.Context, in *JoinRoomRequest, opts ...grpc.CallOption) (*JoinRoomResponse, error)
	LeaveRoom(ctx context.Context, in *LeaveRoomRequest, opts ...grpc.CallOption) (*Ack, error)
	UpdateMediaState(ctx context.Context, in *UpdateMediaStateRequest, opts ...grpc.CallOption) (*Ack, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	CreatePoll(ctx context.Context, in *CreatePollRequest, opts ...grpc.CallOption) (*CreatePollResponse, error)
	CreateQuiz(ctx context.Context, in *CreateQuizRequest, opts ...grpc.CallOption) (*CreateQuizResponse, error)
	CreateQuestion(ctx context.Context, in *CreateQuestionRequest, opts ...grpc.CallOption) (*CreateQuestionResponse, error)
	ApproveQuestion(ctx context.Context, in *ApproveQuestionRequest, opts ...grpc.CallOption) (*Ack, error)
	SendPollResponse(ctx context.Context, in *SendPollResponseRequest, opts ...grpc.CallOption) (*Ack, error)
	SendQuizResponse(ctx context.Context, in *SendQuizResponseRequest, opts ...grpc.CallOption) (*Ack, error)
	StreamRoomEvents(ctx context.Context, in *StreamEventsRequest, opts ...grpc.CallOption) (EventReceiver, error)
	StreamInteractionEvents(ctx context.Context, in *StreamEventsRequest, opts ...grpc.CallOption) (EventReceiver, error)
}

type roomServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRoomServiceClient creates a RoomServiceClient on an existing connection.
func NewRoomServiceClient(cc grpc.ClientConnInterface) RoomServiceClient {
	return &roomServiceClient{cc: cc}
}

func (c *roomServiceClient) JoinRoom(ctx context.Context, in *JoinRoomRequest, opts ...grpc.CallOption) (*JoinRoomResponse, error) {
	out := new(JoinRoomResponse)
	if err := c.cc.Invoke(ctx, MethodJoinRoom, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) LeaveRoom(ctx context.Context, in *LeaveRoomRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, MethodLeaveRoom, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) UpdateMediaState(ctx context.Context, in *UpdateMediaStateRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, MethodUpdateMediaState, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	out := new(SendMessageResponse)
	if err := c.cc.Invoke(ctx, MethodSendMessage, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) CreatePoll(ctx context.Context, in *CreatePollRequest, opts ...grpc.CallOption) (*CreatePollResponse, error) {
	out := new(CreatePollResponse)
	if err := c.cc.Invoke(ctx, MethodCreatePoll, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) CreateQuiz(ctx context.Context, in *CreateQuizRequest, opts ...grpc.CallOption) (*CreateQuizResponse, error) {
	out := new(CreateQuizResponse)
	if err := c.cc.Invoke(ctx, MethodCreateQuiz, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) CreateQuestion(ctx context.Context, in *CreateQuestionRequest, opts ...grpc.CallOption) (*CreateQuestionResponse, error) {
	out := new(CreateQuestionResponse)
	if err := c.cc.Invoke(ctx, MethodCreateQuestion, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) ApproveQuestion(ctx context.Context, in *ApproveQuestionRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, MethodApproveQuestion, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) SendPollResponse(ctx context.Context, in *SendPollResponseRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, MethodSendPollResponse, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) SendQuizResponse(ctx context.Context, in *SendQuizResponseRequest, opts ...grpc.CallOption) (*Ack, error) {
	out := new(Ack)
	if err := c.cc.Invoke(ctx, MethodSendQuizResponse, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *roomServiceClient) StreamRoomEvents(ctx context.Context, in *StreamEventsRequest, opts ...grpc.CallOption) (EventReceiver, error) {
	return c.openEventStream(ctx, &roomServiceDesc.Streams[0], MethodStreamRoomEvents, in, opts...)
}

func (c *roomServiceClient) StreamInteractionEvents(ctx context.Context, in *StreamEventsRequest, opts ...grpc.CallOption) (EventReceiver, error) {
	return c.openEventStream(ctx, &roomServiceDesc.Streams[1], MethodStreamInteractionEvents, in, opts...)
}

func (c *roomServiceClient) openEventStream(ctx context.Context, desc *grpc.StreamDesc, method string, in *StreamEventsRequest, opts ...grpc.CallOption) (EventReceiver, error) {
	stream, err := c.cc.NewStream(ctx, desc, method, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &eventClientStream{stream}, nil
}

type eventClientStream struct {
	grpc.ClientStream
}

func (s *eventClientStream) Recv() (*Event, error) {
	ev := new(Event)
	if err := s.ClientStream.RecvMsg(ev); err != nil {
		return nil, err
	}
	return ev, nil
}
