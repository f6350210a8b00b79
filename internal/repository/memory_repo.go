package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"feedback-dashboard/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps everything in process. Used for local development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	feedbacks map[string]models.Feedback
	trends    *models.RatingTrends
	summary   *models.SummarySnapshot
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		feedbacks: make(map[string]models.Feedback),
		now:       time.Now,
	}
}

// WithClock replaces the timestamp source.
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Put stores a record as given, keeping its timestamps. A missing ID is generated.
func (s *MemoryStore) Put(feedback models.Feedback) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feedback.ID == "" {
		feedback.ID = uuid.NewString()
	}
	s.feedbacks[feedback.ID] = cloneFeedback(feedback)
	return feedback.ID
}

func (s *MemoryStore) List(ctx context.Context) ([]models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Feedback, 0, len(s.feedbacks))
	for _, f := range s.feedbacks {
		out = append(out, cloneFeedback(f))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Feedback, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.feedbacks[id]
	if !ok {
		return nil, nil
	}
	out := cloneFeedback(f)
	return &out, nil
}

func (s *MemoryStore) Create(ctx context.Context, feedback *models.Feedback) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	now := s.now()
	feedback.ID = uuid.NewString()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedbacks[feedback.ID] = cloneFeedback(*feedback)
	return nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return s.mutate(ctx, id, func(f *models.Feedback) {
		f.Status = status
	})
}

func (s *MemoryStore) SaveResponse(ctx context.Context, id, response string, analysis *models.AIAnalysis) error {
	now := s.now()
	return s.mutate(ctx, id, func(f *models.Feedback) {
		f.Response = response
		f.ResponseDate = &now
		f.Status = models.StatusResponded
		if analysis != nil {
			a := *analysis
			f.AIAnalysis = &a
		}
	})
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.feedbacks[id]; !ok {
		return ErrNotFound
	}
	delete(s.feedbacks, id)
	return nil
}

func (s *MemoryStore) mutate(ctx context.Context, id string, apply func(f *models.Feedback)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.feedbacks[id]
	if !ok {
		return ErrNotFound
	}
	apply(&f)
	f.UpdatedAt = s.now()
	s.feedbacks[id] = f
	return nil
}

func (s *MemoryStore) SaveTrendsSnapshot(ctx context.Context, trends models.RatingTrends) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trends = &trends
	return nil
}

func (s *MemoryStore) GetTrendsSnapshot(ctx context.Context) (*models.RatingTrends, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.trends == nil {
		return nil, nil
	}
	t := *s.trends
	return &t, nil
}

func (s *MemoryStore) SaveSummarySnapshot(ctx context.Context, summary models.SummarySnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary = &summary
	return nil
}

func (s *MemoryStore) GetSummarySnapshot(ctx context.Context) (*models.SummarySnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.summary == nil {
		return nil, nil
	}
	sum := *s.summary
	return &sum, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func cloneFeedback(f models.Feedback) models.Feedback {
	if f.Rating != nil {
		r := *f.Rating
		f.Rating = &r
	}
	if f.ResponseDate != nil {
		d := *f.ResponseDate
		f.ResponseDate = &d
	}
	if f.AIAnalysis != nil {
		a := *f.AIAnalysis
		a.TopIssues = append([]string(nil), a.TopIssues...)
		a.RecommendedActions = append([]string(nil), a.RecommendedActions...)
		f.AIAnalysis = &a
	}
	return f
}
