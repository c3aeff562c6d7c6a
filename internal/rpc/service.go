package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Full method names for the room service.
const (
	MethodJoinRoom                = "/roomcore.RoomService/JoinRoom"
	MethodLeaveRoom               = "/roomcore.RoomService/LeaveRoom"
	MethodUpdateMediaState        = "/roomcore.RoomService/UpdateMediaState"
	MethodSendMessage             = "/roomcore.RoomService/SendMessage"
	MethodCreatePoll              = "/roomcore.RoomService/CreatePoll"
	MethodCreateQuiz              = "/roomcore.RoomService/CreateQuiz"
	MethodCreateQuestion          = "/roomcore.RoomService/CreateQuestion"
	MethodApproveQuestion         = "/roomcore.RoomService/ApproveQuestion"
	MethodSendPollResponse        = "/roomcore.RoomService/SendPollResponse"
	MethodSendQuizResponse        = "/roomcore.RoomService/SendQuizResponse"
	MethodStreamRoomEvents        = "/roomcore.RoomService/StreamRoomEvents"
	MethodStreamInteractionEvents = "/roomcore.RoomService/StreamInteractionEvents"
)

// EventStream is the server-side send half of an event subscription.
type EventStream interface {
	Send(*Event) error
	grpc.ServerStream
}

// RoomServiceServer is the room service contract.
type RoomServiceServer interface {
	JoinRoom(context.Context, *JoinRoomRequest) (*JoinRoomResponse, error)
	LeaveRoom(context.Context, *LeaveRoomRequest) (*Ack, error)
	UpdateMediaState(context.Context, *UpdateMediaStateRequest) (*Ack, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	CreatePoll(context.Context, *CreatePollRequest) (*CreatePollResponse, error)
	CreateQuiz(context.Context, *CreateQuizRequest) (*CreateQuizResponse, error)
	CreateQuestion(context.Context, *CreateQuestionRequest) (*CreateQuestionResponse, error)
	ApproveQuestion(context.Context, *ApproveQuestionRequest) (*Ack, error)
	SendPollResponse(context.Context, *SendPollResponseRequest) (*Ack, error)
	SendQuizResponse(context.Context, *SendQuizResponseRequest) (*Ack, error)
	StreamRoomEvents(*StreamEventsRequest, EventStream) error
	StreamInteractionEvents(*StreamEventsRequest, EventStream) error
}

// RegisterRoomServiceServer registers the service implementation on a gRPC server.
func RegisterRoomServiceServer(s *grpc.Server, srv RoomServiceServer) {
	s.RegisterService(&roomServiceDesc, srv)
}

var roomServiceDesc = grpc.ServiceDesc{
	ServiceName: "roomcore.RoomService",
	HandlerType: (*RoomServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "JoinRoom", Handler: joinRoomHandler},
		{MethodName: "LeaveRoom", Handler: leaveRoomHandler},
		{MethodName: "UpdateMediaState", Handler: updateMediaStateHandler},
		{MethodName: "SendMessage", Handler: sendMessageHandler},
		{MethodName: "CreatePoll", Handler: createPollHandler},
		{MethodName: "CreateQuiz", Handler: createQuizHandler},
		{MethodName: "CreateQuestion", Handler: createQuestionHandler},
		{MethodName: "ApproveQuestion", Handler: approveQuestionHandler},
		{MethodName: "SendPollResponse", Handler: sendPollResponseHandler},
		{MethodName: "SendQuizResponse", Handler: sendQuizResponseHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "StreamRoomEvents", Handler: streamRoomEventsHandler, ServerStreams: true},
		{StreamName: "StreamInteractionEvents", Handler: streamInteractionEventsHandler, ServerStreams: true},
	},
}

func joinRoomHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(JoinRoomRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).JoinRoom(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodJoinRoom}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).JoinRoom(ctx, req.(*JoinRoomRequest))
	})
}

func leaveRoomHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(LeaveRoomRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).LeaveRoom(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodLeaveRoom}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).LeaveRoom(ctx, req.(*LeaveRoomRequest))
	})
}

func updateMediaStateHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(UpdateMediaStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).UpdateMediaState(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodUpdateMediaState}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).UpdateMediaState(ctx, req.(*UpdateMediaStateRequest))
	})
}

func sendMessageHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSendMessage}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	})
}

func createPollHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreatePollRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).CreatePoll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreatePoll}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).CreatePoll(ctx, req.(*CreatePollRequest))
	})
}

func createQuizHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateQuizRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).CreateQuiz(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateQuiz}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).CreateQuiz(ctx, req.(*CreateQuizRequest))
	})
}

func createQuestionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateQuestionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).CreateQuestion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodCreateQuestion}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).CreateQuestion(ctx, req.(*CreateQuestionRequest))
	})
}

func approveQuestionHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ApproveQuestionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).ApproveQuestion(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodApproveQuestion}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).ApproveQuestion(ctx, req.(*ApproveQuestionRequest))
	})
}

func sendPollResponseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SendPollResponseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).SendPollResponse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSendPollResponse}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).SendPollResponse(ctx, req.(*SendPollResponseRequest))
	})
}

func sendQuizResponseHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SendQuizResponseRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RoomServiceServer).SendQuizResponse(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodSendQuizResponse}
	return interceptor(ctx, in, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(RoomServiceServer).SendQuizResponse(ctx, req.(*SendQuizResponseRequest))
	})
}

type eventServerStream struct {
	grpc.ServerStream
}

func (s *eventServerStream) Send(ev *Event) error {
	return s.ServerStream.SendMsg(ev)
}

func streamRoomEventsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(StreamEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(RoomServiceServer).StreamRoomEvents(in, &eventServerStream{stream})
}

func streamInteractionEventsHandler(srv interface{}, stream grpc.ServerStream) error {
	in := new(StreamEventsRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(RoomServiceServer).StreamInteractionEvents(in, &eventServerStream{stream})
}
