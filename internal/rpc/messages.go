package rpc

// Room-lifecycle event types emitted by the room registry.
const (
	EventUserJoined       = "USER_JOINED"
	EventUserLeft         = "USER_LEFT"
	EventHostMediaUpdated = "HOST_MEDIA_UPDATED"
	EventStarted          = "EVENT_STARTED"
	EventEnded            = "EVENT_ENDED"
)

// Interaction event types emitted by the room registry.
const (
	EventMessage           = "MESSAGE"
	EventPollCreated       = "POLL_CREATED"
	EventQuizCreated       = "QUIZ_CREATED"
	EventQuestionSubmitted = "QUESTION_SUBMITTED"
	EventQuestionApproved  = "QUESTION_APPROVED"
	EventPollResponse      = "POLL_RESPONSE"
	EventQuizResponse      = "QUIZ_RESPONSE"
)

// Event is the single wire schema for both event kinds. UserID may be empty
// for system-originated events. PayloadJSON must be a JSON object string.
type Event struct {
	Type        string `json:"type"`
	UserID      string `json:"userId"`
	PayloadJSON string `json:"payloadJson"`
}

// Ack is the empty response for operations with no result payload.
type Ack struct{}

type JoinRoomRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	IsHost bool   `json:"isHost"`
}

type JoinRoomResponse struct {
	IsHost bool `json:"isHost"`
}

type LeaveRoomRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type UpdateMediaStateRequest struct {
	RoomID    string `json:"roomId"`
	UserID    string `json:"userId"`
	HasVideo  bool   `json:"hasVideo"`
	HasAudio  bool   `json:"hasAudio"`
	HasScreen bool   `json:"hasScreen"`
}

type SendMessageRequest struct {
	RoomID  string `json:"roomId"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
}

type SendMessageResponse struct {
	MessageID string `json:"messageId"`
}

type CreatePollRequest struct {
	RoomID   string   `json:"roomId"`
	UserID   string   `json:"userId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type CreatePollResponse struct {
	PollID string `json:"pollId"`
}

type CreateQuizRequest struct {
	RoomID        string   `json:"roomId"`
	UserID        string   `json:"userId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	TimeLimitSec  int      `json:"timeLimitSec"`
}

type CreateQuizResponse struct {
	QuizID string `json:"quizId"`
}

type CreateQuestionRequest struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
	Text   string `json:"text"`
}

type CreateQuestionResponse struct {
	QuestionID string `json:"questionId"`
}

type ApproveQuestionRequest struct {
	RoomID     string `json:"roomId"`
	UserID     string `json:"userId"`
	QuestionID string `json:"questionId"`
}

type SendPollResponseRequest struct {
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
}

type SendQuizResponseRequest struct {
	RoomID      string `json:"roomId"`
	UserID      string `json:"userId"`
	QuizID      string `json:"quizId"`
	OptionIndex int    `json:"optionIndex"`
	AnswerMs    int64  `json:"answerMs"`
}

type StreamEventsRequest struct {
	RoomID string `json:"roomId"`
}
