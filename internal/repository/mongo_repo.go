package repository

import (
	"context"
	"errors"
	"time"

	"feedback-dashboard/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// feedbackDocument adds the Mongo object id to the stored record.
type feedbackDocument struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	models.Feedback `bson:",inline"`
}

func (d feedbackDocument) toModel() models.Feedback {
	f := d.Feedback
	f.ID = d.ID.Hex()
	return f
}

type MongoStore struct {
	feedbacks *mongo.Collection
	analytics *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		feedbacks: db.Collection(feedbackCollection),
		analytics: db.Collection(analyticsCollection),
	}
}

func (r *MongoStore) List(ctx context.Context) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.feedbacks.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	feedbacks := make([]models.Feedback, 0, len(docs))
	for _, doc := range docs {
		feedbacks = append(feedbacks, doc.toModel())
	}
	return feedbacks, nil
}

func (r *MongoStore) Get(ctx context.Context, id string) (*models.Feedback, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc feedbackDocument
	err = r.feedbacks.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	f := doc.toModel()
	return &f, nil
}

func (r *MongoStore) Create(ctx context.Context, feedback *models.Feedback) error {
	now := time.Now()
	feedback.CreatedAt = now
	feedback.UpdatedAt = now
	result, err := r.feedbacks.InsertOne(ctx, feedbackDocument{Feedback: *feedback})
	if err != nil {
		return err
	}
	feedback.ID = result.InsertedID.(bson.ObjectID).Hex()
	return nil
}

func (r *MongoStore) UpdateStatus(ctx context.Context, id string, status models.Status) error {
	return r.update(ctx, id, bson.M{"status": status})
}

func (r *MongoStore) SaveResponse(ctx context.Context, id, response string, analysis *models.AIAnalysis) error {
	set := bson.M{
		"response":     response,
		"responseDate": time.Now(),
		"status":       models.StatusResponded,
	}
	if analysis != nil {
		set["aiAnalysis"] = analysis
	}
	return r.update(ctx, id, set)
}

func (r *MongoStore) update(ctx context.Context, id string, set bson.M) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	set["updatedAt"] = time.Now()

	result, err := r.feedbacks.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoStore) Delete(ctx context.Context, id string) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	result, err := r.feedbacks.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoStore) SaveTrendsSnapshot(ctx context.Context, trends models.RatingTrends) error {
	return r.saveSnapshot(ctx, trendsDocID, trends)
}

func (r *MongoStore) GetTrendsSnapshot(ctx context.Context) (*models.RatingTrends, error) {
	var trends models.RatingTrends
	found, err := r.getSnapshot(ctx, trendsDocID, &trends)
	if err != nil || !found {
		return nil, err
	}
	return &trends, nil
}

func (r *MongoStore) SaveSummarySnapshot(ctx context.Context, summary models.SummarySnapshot) error {
	return r.saveSnapshot(ctx, summaryDocID, summary)
}

func (r *MongoStore) GetSummarySnapshot(ctx context.Context) (*models.SummarySnapshot, error) {
	var summary models.SummarySnapshot
	found, err := r.getSnapshot(ctx, summaryDocID, &summary)
	if err != nil || !found {
		return nil, err
	}
	return &summary, nil
}

// saveSnapshot $sets the snapshot fields, so fields it does not carry survive.
func (r *MongoStore) saveSnapshot(ctx context.Context, docID string, snapshot interface{}) error {
	_, err := r.analytics.UpdateOne(ctx,
		bson.M{"_id": docID},
		bson.M{"$set": snapshot},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *MongoStore) getSnapshot(ctx context.Context, docID string, out interface{}) (bool, error) {
	err := r.analytics.FindOne(ctx, bson.M{"_id": docID}).Decode(out)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// EnsureIndexes creates the indexes the dashboard queries rely on
func (r *MongoStore) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "createdAt", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "userEmail", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, err := r.feedbacks.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *MongoStore) Close(ctx context.Context) error {
	return r.feedbacks.Database().Client().Disconnect(ctx)
}
