package repository

import (
	"context"
	"fmt"

	"feedback-dashboard/internal/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore keeps records in the "feedbacks" collection and the cached
// snapshots in the "analytics" collection.
type FirestoreStore struct {
	client    *firestore.Client
	feedbacks *firestore.CollectionRef
	analytics *firestore.CollectionRef
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{
		client:    client,
		feedbacks: client.Collection(feedbackCollection),
		analytics: client.Collection(analyticsCollection),
	}
}

func (r *FirestoreStore) List(ctx context.Context) ([]models.Feedback, error) {
	docs, err := r.feedbacks.OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	feedbacks := make([]models.Feedback, 0, len(docs))
	for _, doc := range docs {
		var f models.Feedback
		if err := doc.DataTo(&f); err != nil {
			return nil, fmt.Errorf("decode feedback %s: %w", doc.Ref.ID, err)
		}
		f.ID = doc.Ref.ID
		feedbacks = append(feedbacks, f)
	}
	return feedbacks, nil
}

func (r *FirestoreStore) Get(ctx context.Context, id string) (*models.Feedback, error) {
	doc, err := r.feedbacks.Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var f models.Feedback
	if err := doc.DataTo(&f); err != nil {
		return nil, fmt.Errorf("decode feedback %s: %w", id, err)
	}
	f.ID = doc.Ref.ID
	return &f, nil
}

func (r *FirestoreStore) Create(ctx context.Context, feedback *models.Feedback) error {
	ref := r.feedbacks.NewDoc()
	_, err := ref.Create(ctx, feedback)
	if err != nil {
		return err
	}
	// Reread to pick up the server timestamps.
	doc, err := ref.Get(ctx)
	if err != nil {
		return err
	}
	if err := doc.DataTo(feedback); err != nil {
		return err
	}
	feedback.ID = ref.ID
	return nil
}

func (r *FirestoreStore) UpdateStatus(ctx context.Context, id string, s models.Status) error {
	return r.update(ctx, id, []firestore.Update{
		{Path: "status", Value: string(s)},
	})
}

func (r *FirestoreStore) SaveResponse(ctx context.Context, id, response string, analysis *models.AIAnalysis) error {
	updates := []firestore.Update{
		{Path: "response", Value: response},
		{Path: "responseDate", Value: firestore.ServerTimestamp},
		{Path: "status", Value: string(models.StatusResponded)},
	}
	if analysis != nil {
		updates = append(updates, firestore.Update{Path: "aiAnalysis", Value: analysis})
	}
	return r.update(ctx, id, updates)
}

func (r *FirestoreStore) update(ctx context.Context, id string, updates []firestore.Update) error {
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
	_, err := r.feedbacks.Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

func (r *FirestoreStore) Delete(ctx context.Context, id string) error {
	_, err := r.feedbacks.Doc(id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	return err
}

// MergeAll only accepts maps, so snapshots are flattened by hand.

func (r *FirestoreStore) SaveTrendsSnapshot(ctx context.Context, trends models.RatingTrends) error {
	categoryTrends := make(map[string]interface{}, len(trends.CategoryTrends))
	for category, t := range trends.CategoryTrends {
		categoryTrends[category] = map[string]interface{}{
			"recent": t.Recent,
			"month":  t.Month,
			"change": t.Change,
		}
	}
	_, err := r.analytics.Doc(trendsDocID).Set(ctx, map[string]interface{}{
		"overallRecent":  trends.OverallRecent,
		"overallMonth":   trends.OverallMonth,
		"overallChange":  trends.OverallChange,
		"categoryTrends": categoryTrends,
		"updatedAt":      firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return err
}

func (r *FirestoreStore) GetTrendsSnapshot(ctx context.Context) (*models.RatingTrends, error) {
	var trends models.RatingTrends
	found, err := r.getSnapshot(ctx, trendsDocID, &trends)
	if err != nil || !found {
		return nil, err
	}
	return &trends, nil
}

func (r *FirestoreStore) SaveSummarySnapshot(ctx context.Context, summary models.SummarySnapshot) error {
	_, err := r.analytics.Doc(summaryDocID).Set(ctx, map[string]interface{}{
		"summary":     summary.Summary,
		"basedOn":     summary.BasedOn,
		"period":      summary.Period,
		"generatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return err
}

func (r *FirestoreStore) GetSummarySnapshot(ctx context.Context) (*models.SummarySnapshot, error) {
	var summary models.SummarySnapshot
	found, err := r.getSnapshot(ctx, summaryDocID, &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

func (r *FirestoreStore) getSnapshot(ctx context.Context, docID string, out interface{}) (bool, error) {
	doc, err := r.analytics.Doc(docID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, err
	}
	if err := doc.DataTo(out); err != nil {
		return false, fmt.Errorf("decode snapshot %s: %w", docID, err)
	}
	return true, nil
}

func (r *FirestoreStore) Close(ctx context.Context) error {
	return r.client.Close()
}
