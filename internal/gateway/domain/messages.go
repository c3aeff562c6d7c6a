package domain

import "encoding/json"

// Client -> server message types.
const (
	MsgTypeJoinRoom          = "join-room"
	MsgTypeNewMessage        = "new-message"
	MsgTypeNewPoll           = "new-poll"
	MsgTypeNewQuiz           = "new-quiz"
	MsgTypePollResponse      = "poll-response"
	MsgTypeQuizResponse      = "quiz-response"
	MsgTypeQuestionSubmitted = "question-submitted"
	MsgTypeQuestionApproved  = "question-approved"
	MsgTypeHostMediaState    = "host-media-state"
)

// Signaling message types, relayed without payload inspection.
const (
	MsgTypeJoinWebRTCRoom     = "join-webrtc-room"
	MsgTypeOffer              = "offer"
	MsgTypeAnswer             = "answer"
	MsgTypeICECandidate       = "ice-candidate"
	MsgTypeScreenShareStarted = "screen-share-started"
	MsgTypeScreenShareStopped = "screen-share-stopped"
	MsgTypeViewerJoined       = "viewer-joined"
	MsgTypeRequestViewers     = "request-viewers"
)

// Server -> client message types.
const (
	MsgTypeConnected  = "connected"
	MsgTypeRoomJoined = "room-joined"
	MsgTypeError      = "error"
)

// BaseMessage is the envelope shared by all inbound messages.
type BaseMessage struct {
	Type string `json:"type"`
}

// Client -> Server messages

type JoinRoomMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	IsHost bool   `json:"isHost"`
}

type NewMessageMessage struct {
	Type    string `json:"type"`
	RoomID  string `json:"roomId"`
	Content string `json:"content"`
}

type NewPollMessage struct {
	Type     string   `json:"type"`
	RoomID   string   `json:"roomId"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type NewQuizMessage struct {
	Type          string   `json:"type"`
	RoomID        string   `json:"roomId"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correctOption"`
	TimeLimitSec  int      `json:"timeLimitSec"`
}

type PollResponseMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId"`
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
}

type QuizResponseMessage struct {
	Type        string `json:"type"`
	RoomID      string `json:"roomId"`
	QuizID      string `json:"quizId"`
	OptionIndex int    `json:"optionIndex"`
	AnswerMs    int64  `json:"answerMs"`
}

type SubmitQuestionMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Text   string `json:"text"`
}

type ApproveQuestionMessage struct {
	Type       string `json:"type"`
	RoomID     string `json:"roomId"`
	QuestionID string `json:"questionId"`
}

type HostMediaStateMessage struct {
	Type      string `json:"type"`
	RoomID    string `json:"roomId"`
	HasVideo  bool   `json:"hasVideo"`
	HasAudio  bool   `json:"hasAudio"`
	HasScreen bool   `json:"hasScreen"`
}

// SignalingMessage covers every relayed negotiation message. The payload
// fields are opaque to the gateway.
type SignalingMessage struct {
	Type         string          `json:"type"`
	EventID      string          `json:"eventId"`
	TargetUserID string          `json:"targetUserId,omitempty"`
	ViewerID     string          `json:"viewerId,omitempty"`
	Offer        json.RawMessage `json:"offer,omitempty"`
	Answer       json.RawMessage `json:"answer,omitempty"`
	Candidate    json.RawMessage `json:"candidate,omitempty"`
}

// Server -> Client messages

type ConnectedMessage struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId"`
	UserID       string `json:"userId"`
}

type RoomJoinedMessage struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	IsHost bool   `json:"isHost"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Action  string `json:"action,omitempty"`
	Message string `json:"message"`
}

// NewErrorMessage creates a sender-scoped error notice for a failed action.
func NewErrorMessage(action, message string) *ErrorMessage {
	return &ErrorMessage{Type: MsgTypeError, Action: action, Message: message}
}
