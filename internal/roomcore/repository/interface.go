package repository

import (
	"context"
	"errors"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/domain"
)

var ErrQuestionNotFound = errors.New("question not found")

// ContentStore persists room interaction content. All Save operations are
// upserts keyed by id, so the optimistic copy and the authoritative echo of
// the same logical action collapse into one row.
type ContentStore interface {
	SaveMessage(ctx context.Context, m *domain.Message) error
	SavePoll(ctx context.Context, p *domain.Poll) error
	SaveQuiz(ctx context.Context, q *domain.Quiz) error
	SaveQuestion(ctx context.Context, q *domain.Question) error
	ApproveQuestion(ctx context.Context, questionID string) (*domain.Question, error)
	SavePollResponse(ctx context.Context, r *domain.PollResponse) error
	SaveQuizResponse(ctx context.Context, r *domain.QuizResponse) error
}
