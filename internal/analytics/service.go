package analytics

import (
	"context"
	"errors"
	"strings"
	"time"

	"feedback-dashboard/internal/composer"
	"feedback-dashboard/internal/metrics"
	"feedback-dashboard/internal/models"
	"feedback-dashboard/internal/notify"
	"feedback-dashboard/internal/repository"

	log "github.com/sirupsen/logrus"
)

const (
	// HistoryLimit caps how many earlier records of a guest go into a prompt.
	HistoryLimit = 3
	// SummaryPeriod labels the window GenerateSummary covers.
	SummaryPeriod = "Past 30 days"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrEmptyResponse = errors.New("response text is required")
)

// ResponseComposer is the AI side of the dashboard.
type ResponseComposer interface {
	ComposeResponse(ctx context.Context, f *models.Feedback, history []models.Feedback) composer.Outcome[models.ComposedResponse]
	Summarize(ctx context.Context, records []models.Feedback) composer.Outcome[string]
	LocalizedResponse(ctx context.Context, f *models.Feedback, history []models.Feedback, lang models.Language) composer.Outcome[string]
}

type Options struct {
	// Location defines local calendar days. Defaults to time.Local.
	Location *time.Location
	// AlertDropThreshold triggers an alert when the 7-day average falls this
	// far below the 30-day average. Zero disables alerts.
	AlertDropThreshold float64
	// LowRatingAlert publishes an alert for every new submission rated at or
	// below it. Zero disables.
	LowRatingAlert int
	Categories     []string
	Now            func() time.Time
}

// Service reads the store once per call and derives everything the
// dashboard shows from that snapshot.
type Service struct {
	store    repository.Store
	composer ResponseComposer
	notifier notify.Notifier
	opts     Options
}

func NewService(store repository.Store, c ResponseComposer, n notify.Notifier, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Categories == nil {
		opts.Categories = models.Categories
	}
	return &Service{store: store, composer: c, notifier: n, opts: opts}
}

func (s *Service) now() time.Time {
	return s.opts.Now().In(s.opts.Location)
}

func (s *Service) list(ctx context.Context) ([]models.Feedback, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		metrics.RecordStoreError("list")
		return nil, &DataFetchError{Op: "list feedback", Err: err}
	}
	return records, nil
}

// List returns the records matching filter, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.Feedback, error) {
	records, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(records), nil
}

// Recent returns the n newest records.
func (s *Service) Recent(ctx context.Context, n int) ([]models.Feedback, error) {
	records, err := s.list(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(records) > n {
		records = records[:n]
	}
	return records, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Feedback, error) {
	f, err := s.store.Get(ctx, id)
	if err != nil {
		metrics.RecordStoreError("get")
		return nil, &DataFetchError{Op: "get feedback", Err: err}
	}
	if f == nil {
		return nil, repository.ErrNotFound
	}
	return f, nil
}

// Submit stores a new guest record in the pending state.
func (s *Service) Submit(ctx context.Context, f *models.Feedback) error {
	f.Status = models.StatusPending
	f.Response = ""
	f.ResponseDate = nil
	f.AIAnalysis = nil
	if err := s.store.Create(ctx, f); err != nil {
		return s.persistErr("create feedback", err)
	}

	if s.notifier != nil && f.HasRating() && *f.Rating <= s.opts.LowRatingAlert {
		id, message := f.ID, notify.FormatLowRatingAlert(f)
		go func() {
			if err := s.notifier.Publish(context.Background(), message); err != nil {
				metrics.AlertsPublished.WithLabelValues("failed").Inc()
				log.WithError(err).WithField("feedback_id", id).Error("Error publishing low rating alert")
				return
			}
			metrics.AlertsPublished.WithLabelValues("sent").Inc()
		}()
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return s.persistErr("update status", err)
	}
	return nil
}

// Respond records a staff reply and marks the record responded.
func (s *Service) Respond(ctx context.Context, id, response string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return ErrEmptyResponse
	}
	if err := s.store.SaveResponse(ctx, id, response, nil); err != nil {
		return s.persistErr("save response", err)
	}
	return nil
}

// SaveAIResponse stores an accepted AI reply together with its analysis.
func (s *Service) SaveAIResponse(ctx context.Context, id string, composed models.ComposedResponse) error {
	response := strings.TrimSpace(composed.SuggestedResponse)
	if response == "" {
		return ErrEmptyResponse
	}
	if err := s.store.SaveResponse(ctx, id, response, composed.Analysis()); err != nil {
		return s.persistErr("save ai response", err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.persistErr("delete feedback", err)
	}
	return nil
}

// Stats computes FeedbackStats over the whole store.
func (s *Service) Stats(ctx context.Context) (models.FeedbackStats, error) {
	records, err := s.list(ctx)
	if err != nil {
		return models.FeedbackStats{}, err
	}
	started := time.Now()
	stats := ComputeStats(records, s.now())
	metrics.RecordAggregation("stats", len(records), started)
	return stats, nil
}

// RefreshTrends recomputes rating trends and overwrites the cached snapshot.
// A significant drop is reported through the notifier.
func (s *Service) RefreshTrends(ctx context.Context) (models.RatingTrends, error) {
	records, err := s.list(ctx)
	if err != nil {
		return models.RatingTrends{}, err
	}

	started := time.Now()
	trends := ComputeTrends(records, s.now(), s.opts.Categories)
	metrics.RecordAggregation("trends", len(records), started)

	if err := s.store.SaveTrendsSnapshot(ctx, trends); err != nil {
		return models.RatingTrends{}, s.persistErr("save trends snapshot", err)
	}

	s.alertOnDrop(ctx, trends)
	return trends, nil
}

func (s *Service) alertOnDrop(ctx context.Context, trends models.RatingTrends) {
	threshold := s.opts.AlertDropThreshold
	if threshold <= 0 || s.notifier == nil || trends.OverallChange > -threshold {
		return
	}

	if err := s.notifier.Publish(ctx, notify.FormatTrendAlert(trends, threshold)); err != nil {
		metrics.AlertsPublished.WithLabelValues("failed").Inc()
		log.WithError(err).Error("Error publishing trend alert")
		return
	}
	metrics.AlertsPublished.WithLabelValues("sent").Inc()
}

// LatestTrends returns the cached trends snapshot.
func (s *Service) LatestTrends(ctx context.Context) (*models.RatingTrends, error) {
	trends, err := s.store.GetTrendsSnapshot(ctx)
	if err != nil {
		metrics.RecordStoreError("get trends snapshot")
		return nil, &DataFetchError{Op: "get trends snapshot", Err: err}
	}
	if trends == nil {
		return nil, repository.ErrNotFound
	}
	return trends, nil
}

// GenerateSummary summarizes the last month of feedback and caches the
// result. A degraded summary is returned but not cached.
func (s *Service) GenerateSummary(ctx context.Context) (composer.Outcome[models.SummarySnapshot], error) {
	records, err := s.list(ctx)
	if err != nil {
		return composer.Outcome[models.SummarySnapshot]{}, err
	}

	now := s.now()
	since := now.AddDate(0, -1, 0)
	recent := make([]models.Feedback, 0, len(records))
	for _, f := range records {
		if !f.CreatedAt.Before(since) {
			recent = append(recent, f)
		}
	}

	summary := s.composer.Summarize(ctx, recent)
	out := composer.Outcome[models.SummarySnapshot]{
		Value: models.SummarySnapshot{
			Summary:     summary.Value,
			BasedOn:     len(recent),
			Period:      SummaryPeriod,
			GeneratedAt: now,
		},
		Err: summary.Err,
	}
	if summary.Degraded() || len(recent) == 0 {
		return out, nil
	}

	if err := s.store.SaveSummarySnapshot(ctx, out.Value); err != nil {
		return composer.Outcome[models.SummarySnapshot]{}, s.persistErr("save summary snapshot", err)
	}
	return out, nil
}

// LatestSummary returns the cached summary snapshot.
func (s *Service) LatestSummary(ctx context.Context) (*models.SummarySnapshot, error) {
	summary, err := s.store.GetSummarySnapshot(ctx)
	if err != nil {
		metrics.RecordStoreError("get summary snapshot")
		return nil, &DataFetchError{Op: "get summary snapshot", Err: err}
	}
	if summary == nil {
		return nil, repository.ErrNotFound
	}
	return summary, nil
}

// Analyze drafts an AI reply for one record, using the guest's earlier
// feedback as context.
func (s *Service) Analyze(ctx context.Context, id string) (composer.Outcome[models.ComposedResponse], error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return composer.Outcome[models.ComposedResponse]{}, err
	}
	return s.composer.ComposeResponse(ctx, f, s.history(ctx, f)), nil
}

// Localize drafts an AI reply and translates it into lang.
func (s *Service) Localize(ctx context.Context, id string, lang models.Language) (composer.Outcome[string], error) {
	f, err := s.Get(ctx, id)
	if err != nil {
		return composer.Outcome[string]{}, err
	}
	return s.composer.LocalizedResponse(ctx, f, s.history(ctx, f), lang), nil
}

// history is best effort: without it the reply is composed from the record alone.
func (s *Service) history(ctx context.Context, f *models.Feedback) []models.Feedback {
	if f.UserEmail == "" {
		return nil
	}
	records, err := s.store.List(ctx)
	if err != nil {
		log.WithError(err).WithField("feedback_id", f.ID).Warn("⚠️  Could not load guest history")
		return nil
	}
	return GuestHistory(records, f, HistoryLimit)
}

func (s *Service) persistErr(op string, err error) error {
	if !errors.Is(err, repository.ErrNotFound) {
		metrics.RecordStoreError(op)
	}
	return &PersistenceError{Op: op, Err: err}
}
