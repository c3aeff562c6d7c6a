package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/domain"
	"github.com/RohitPithani026/LiveEvent-Platform-sub000/pkg/log"
)

// GormStore implements ContentStore on a relational database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GORM-backed content store and migrates its tables.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(
		&domain.Message{},
		&domain.Poll{},
		&domain.Quiz{},
		&domain.Question{},
		&domain.PollResponse{},
		&domain.QuizResponse{},
	); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) SaveMessage(ctx context.Context, m *domain.Message) error {
	return s.upsert(ctx, m)
}

func (s *GormStore) SavePoll(ctx context.Context, p *domain.Poll) error {
	return s.upsert(ctx, p)
}

func (s *GormStore) SaveQuiz(ctx context.Context, q *domain.Quiz) error {
	return s.upsert(ctx, q)
}

func (s *GormStore) SaveQuestion(ctx context.Context, q *domain.Question) error {
	return s.upsert(ctx, q)
}

func (s *GormStore) ApproveQuestion(ctx context.Context, questionID string) (*domain.Question, error) {
	var q domain.Question
	err := s.db.WithContext(ctx).First(&q, "id = ?", questionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	q.Approved = true
	if err := s.db.WithContext(ctx).Save(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *GormStore) SavePollResponse(ctx context.Context, r *domain.PollResponse) error {
	return s.upsert(ctx, r)
}

func (s *GormStore) SaveQuizResponse(ctx context.Context, r *domain.QuizResponse) error {
	return s.upsert(ctx, r)
}

func (s *GormStore) upsert(ctx context.Context, model interface{}) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(model).Error
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("content upsert failed")
	}
	return err
}
