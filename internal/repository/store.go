package repository

import (
	"context"
	"errors"

	"feedback-dashboard/internal/models"
)

// ErrNotFound is returned by mutating operations when the target record does
// not exist. Lookups return a nil record and a nil error instead.
var ErrNotFound = errors.New("not found")

const (
	feedbackCollection  = "feedbacks"
	analyticsCollection = "analytics"
	trendsDocID         = "ratingTrends"
	summaryDocID        = "feedbackSummary"
)

// FeedbackStore reads and mutates feedback records. Every mutation bumps
// updatedAt.
type FeedbackStore interface {
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.Feedback, error)
	Get(ctx context.Context, id string) (*models.Feedback, error)
	Create(ctx context.Context, feedback *models.Feedback) error
	UpdateStatus(ctx context.Context, id string, status models.Status) error
	// SaveResponse records a reply and marks the record responded. A nil
	// analysis leaves any stored analysis untouched.
	SaveResponse(ctx context.Context, id, response string, analysis *models.AIAnalysis) error
	Delete(ctx context.Context, id string) error
}

// SnapshotStore keeps the single cached trends and summary documents.
// Saves overwrite the written fields; the last writer wins.
type SnapshotStore interface {
	SaveTrendsSnapshot(ctx context.Context, trends models.RatingTrends) error
	GetTrendsSnapshot(ctx context.Context) (*models.RatingTrends, error)
	SaveSummarySnapshot(ctx context.Context, summary models.SummarySnapshot) error
	GetSummarySnapshot(ctx context.Context) (*models.SummarySnapshot, error)
}

type Store interface {
	FeedbackStore
	SnapshotStore
	Close(ctx context.Context) error
}
