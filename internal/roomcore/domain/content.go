package domain

import "time"

// Message is one chat message in a room.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	RoomID    string    `json:"roomId" gorm:"index"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Poll is a live poll with free-form options.
type Poll struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	RoomID    string    `json:"roomId" gorm:"index"`
	UserID    string    `json:"userId"`
	Question  string    `json:"question"`
	Options   string    `json:"options" gorm:"type:text"` // JSON array
	CreatedAt time.Time `json:"createdAt"`
}

// Quiz is a timed quiz question with one correct option.
type Quiz struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	RoomID        string    `json:"roomId" gorm:"index"`
	UserID        string    `json:"userId"`
	Question      string    `json:"question"`
	Options       string    `json:"options" gorm:"type:text"` // JSON array
	CorrectOption int       `json:"correctOption"`
	TimeLimitSec  int       `json:"timeLimitSec"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Question is an audience Q&A entry, hidden until approved.
type Question struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	RoomID    string    `json:"roomId" gorm:"index"`
	UserID    string    `json:"userId"`
	Text      string    `json:"text"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"createdAt"`
}

// PollResponse is one user's answer to a poll. The (PollID, UserID) pair is
// the identity: re-submitting replaces the previous answer.
type PollResponse struct {
	PollID      string    `json:"pollId" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"primaryKey"`
	RoomID      string    `json:"roomId" gorm:"index"`
	OptionIndex int       `json:"optionIndex"`
	CreatedAt   time.Time `json:"createdAt"`
}

// QuizResponse is one user's answer to a quiz, with answer latency for scoring.
type QuizResponse struct {
	QuizID      string    `json:"quizId" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"primaryKey"`
	RoomID      string    `json:"roomId" gorm:"index"`
	OptionIndex int       `json:"optionIndex"`
	AnswerMs    int64     `json:"answerMs"`
	CreatedAt   time.Time `json:"createdAt"`
}
