package repository

import (
	"context"
	"sync"

	"github.com/RohitPithani026/LiveEvent-Platform-sub000/internal/roomcore/domain"
)

// MemoryStore implements ContentStore in process memory. Used by tests and
// by db-less deployments where persistence is handled elsewhere.
type MemoryStore struct {
	mu            sync.Mutex
	messages      map[string]domain.Message
	polls         map[string]domain.Poll
	quizzes       map[string]domain.Quiz
	questions     map[string]domain.Question
	pollResponses map[string]domain.PollResponse // pollID+userID
	quizResponses map[string]domain.QuizResponse // quizID+userID
}

// NewMemoryStore creates an empty in-memory content store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		messages:      make(map[string]domain.Message),
		polls:         make(map[string]domain.Poll),
		quizzes:       make(map[string]domain.Quiz),
		questions:     make(map[string]domain.Question),
		pollResponses: make(map[string]domain.PollResponse),
		quizResponses: make(map[string]domain.QuizResponse),
	}
}

func (s *MemoryStore) SaveMessage(_ context.Context, m *domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[m.ID] = *m
	return nil
}

func (s *MemoryStore) SavePoll(_ context.Context, p *domain.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[p.ID] = *p
	return nil
}

func (s *MemoryStore) SaveQuiz(_ context.Context, q *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizzes[q.ID] = *q
	return nil
}

func (s *MemoryStore) SaveQuestion(_ context.Context, q *domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = *q
	return nil
}

func (s *MemoryStore) ApproveQuestion(_ context.Context, questionID string) (*domain.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.questions[questionID]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	q.Approved = true
	s.questions[questionID] = q
	return &q, nil
}

func (s *MemoryStore) SavePollResponse(_ context.Context, r *domain.PollResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pollResponses[r.PollID+":"+r.UserID] = *r
	return nil
}

func (s *MemoryStore) SaveQuizResponse(_ context.Context, r *domain.QuizResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizResponses[r.QuizID+":"+r.UserID] = *r
	return nil
}

// MessageCount reports the number of stored messages.
func (s *MemoryStore) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// PollResponseCount reports the number of distinct poll answers.
func (s *MemoryStore) PollResponseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pollResponses)
}
