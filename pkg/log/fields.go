package log

const (
	// Request
	FieldRequestID = "request_id"
	FieldLatency   = "latency_ms"

	// Actor
	FieldUserID   = "user_id"
	FieldClientID = "client_id"

	// Domain
	FieldRoomID = "room_id"
	FieldEvent  = "event"

	// Service
	FieldService = "service"

	// gRPC
	FieldGRPCMethod = "grpc_method"
	FieldGRPCCode   = "grpc_code"

	// Log type (for audit log)
	FieldLogType = "log_type"
	LogTypeAudit = "audit"
)
