package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"feedback-dashboard/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestFeedbackDocument_Encoding(t *testing.T) {
	id := bson.NewObjectID()
	created := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)
	doc := feedbackDocument{
		ID: id,
		Feedback: models.Feedback{
			ID:        "ignored",
			UserName:  "Selam",
			Rating:    models.IntPtr(4),
			Comment:   "Great kayaking",
			Status:    models.StatusPending,
			CreatedAt: created,
		},
	}

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var fields bson.M
	require.NoError(t, bson.Unmarshal(raw, &fields))
	assert.Equal(t, id, fields["_id"])
	assert.Equal(t, "Selam", fields["userName"])
	assert.Equal(t, "pending", fields["status"])
	assert.NotContains(t, fields, "id")
	assert.NotContains(t, fields, "response")

	var decoded feedbackDocument
	require.NoError(t, bson.Unmarshal(raw, &decoded))
	f := decoded.toModel()
	assert.Equal(t, id.Hex(), f.ID)
	assert.Equal(t, 4, *f.Rating)
	assert.True(t, created.Equal(f.CreatedAt))
}

// Invalid ids are rejected before any round trip, so an unreachable server is fine here.
func TestMongoStore_InvalidIDs(t *testing.T) {
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1").SetServerSelectionTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer client.Disconnect(context.Background())

	store := NewMongoStore(client.Database("feedback_test"))
	ctx := context.Background()

	got, err := store.Get(ctx, "not-an-object-id")
	assert.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.UpdateStatus(ctx, "not-an-object-id", models.StatusReviewed), ErrNotFound)
	assert.ErrorIs(t, store.SaveResponse(ctx, "nope", "x", nil), ErrNotFound)
	assert.ErrorIs(t, store.Delete(ctx, "nope"), ErrNotFound)
}

// newMongoTestStore connects to MONGODB_URI and uses a throwaway database.
func newMongoTestStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		t.Skip("MONGODB_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("feedback_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	store := NewMongoStore(db)
	require.NoError(t, store.EnsureIndexes(ctx))
	return store
}

func TestMongoStore_Contract(t *testing.T) {
	testStoreContract(t, newMongoTestStore(t))
}

func TestMongoStore_SnapshotKeepsUnwrittenFields(t *testing.T) {
	store := newMongoTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveSummarySnapshot(ctx, models.SummarySnapshot{Summary: "first", BasedOn: 3, Period: "Past 30 days"}))
	_, err := store.analytics.UpdateOne(ctx, bson.M{"_id": summaryDocID}, bson.M{"$set": bson.M{"note": "kept"}})
	require.NoError(t, err)

	require.NoError(t, store.SaveSummarySnapshot(ctx, models.SummarySnapshot{Summary: "second", BasedOn: 5, Period: "Past 30 days"}))

	var raw bson.M
	require.NoError(t, store.analytics.FindOne(ctx, bson.M{"_id": summaryDocID}).Decode(&raw))
	assert.Equal(t, "kept", raw["note"])
	assert.Equal(t, "second", raw["summary"])
	assert.EqualValues(t, 5, raw["basedOn"])

	count, err := store.analytics.CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count, "snapshot saves upsert a single document")
}

func TestMongoStore_DecodesLegacyRecords(t *testing.T) {
	store := newMongoTestStore(t)
	ctx := context.Background()

	result, err := store.feedbacks.InsertOne(ctx, bson.M{
		"comment":   "Written before ratings existed",
		"status":    "pending",
		"createdAt": time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	id := result.InsertedID.(bson.ObjectID).Hex()

	got, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.Rating)
	assert.Equal(t, "Written before ratings existed", got.Comment)
}
