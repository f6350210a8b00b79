package repository

import (
	"context"
	"sort"
	"testing"
	"time"

	"feedback-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStoreContract runs the behaviour every Store backend shares. The store
// must start without snapshots.
func testStoreContract(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("records", func(t *testing.T) {
		rated := &models.Feedback{
			UserName: "Meron",
			Rating:   models.IntPtr(4),
			Comment:  "Lovely lake view",
			Category: "Nature & Views",
			Status:   models.StatusPending,
		}
		require.NoError(t, store.Create(ctx, rated))
		require.NotEmpty(t, rated.ID)

		unrated := &models.Feedback{Comment: "No stars given", Status: models.StatusPending}
		require.NoError(t, store.Create(ctx, unrated))

		got, err := store.Get(ctx, rated.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, rated.ID, got.ID)
		assert.Equal(t, "Meron", got.UserName)
		require.NotNil(t, got.Rating)
		assert.Equal(t, 4, *got.Rating)
		assert.Equal(t, models.StatusPending, got.Status)
		assert.False(t, got.CreatedAt.IsZero())
		assert.Nil(t, got.ResponseDate)

		got, err = store.Get(ctx, unrated.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.Rating)

		records, err := store.List(ctx)
		require.NoError(t, err)
		assert.True(t, sort.SliceIsSorted(records, func(i, j int) bool {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}), "records should be newest first")
		ids := make([]string, 0, len(records))
		for _, r := range records {
			ids = append(ids, r.ID)
		}
		assert.Subset(t, ids, []string{rated.ID, unrated.ID})

		require.NoError(t, store.UpdateStatus(ctx, rated.ID, models.StatusReviewed))
		got, err = store.Get(ctx, rated.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusReviewed, got.Status)
		assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

		analysis := &models.AIAnalysis{SentimentScore: 7, TopIssues: []string{"slow check-in"}, RecommendedActions: []string{"add staff"}}
		require.NoError(t, store.SaveResponse(ctx, rated.ID, "Thank you", analysis))
		require.NoError(t, store.SaveResponse(ctx, rated.ID, "Thank you again", nil))
		got, err = store.Get(ctx, rated.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusResponded, got.Status)
		assert.Equal(t, "Thank you again", got.Response)
		require.NotNil(t, got.ResponseDate)
		require.NotNil(t, got.AIAnalysis, "a nil analysis keeps the stored one")
		assert.Equal(t, 7.0, got.AIAnalysis.SentimentScore)
		assert.Equal(t, []string{"slow check-in"}, got.AIAnalysis.TopIssues)

		for _, id := range []string{rated.ID, unrated.ID} {
			require.NoError(t, store.Delete(ctx, id))
			got, err := store.Get(ctx, id)
			assert.NoError(t, err)
			assert.Nil(t, got)
			assert.ErrorIs(t, store.Delete(ctx, id), ErrNotFound)
			assert.ErrorIs(t, store.UpdateStatus(ctx, id, models.StatusReviewed), ErrNotFound)
			assert.ErrorIs(t, store.SaveResponse(ctx, id, "late", nil), ErrNotFound)
		}
	})

	t.Run("snapshots", func(t *testing.T) {
		trends, err := store.GetTrendsSnapshot(ctx)
		require.NoError(t, err)
		assert.Nil(t, trends)
		summary, err := store.GetSummarySnapshot(ctx)
		require.NoError(t, err)
		assert.Nil(t, summary)

		first := models.RatingTrends{
			OverallRecent: 4.5,
			OverallMonth:  4,
			OverallChange: 0.5,
			CategoryTrends: map[string]models.CategoryTrend{
				"Spa Services": {Recent: 5, Month: 4, Change: 1},
			},
			UpdatedAt: time.Now().UTC(),
		}
		require.NoError(t, store.SaveTrendsSnapshot(ctx, first))

		second := first
		second.OverallRecent = 3
		second.OverallChange = -1
		second.CategoryTrends = map[string]models.CategoryTrend{
			"Spa Services": {Recent: 3, Month: 4, Change: -1},
		}
		require.NoError(t, store.SaveTrendsSnapshot(ctx, second))

		trends, err = store.GetTrendsSnapshot(ctx)
		require.NoError(t, err)
		require.NotNil(t, trends)
		assert.Equal(t, 3.0, trends.OverallRecent)
		assert.Equal(t, 4.0, trends.OverallMonth)
		assert.Equal(t, -1.0, trends.OverallChange)
		assert.Equal(t, second.CategoryTrends, trends.CategoryTrends)

		require.NoError(t, store.SaveSummarySnapshot(ctx, models.SummarySnapshot{
			Summary: "Guests praise the spa.", BasedOn: 12, Period: "Past 30 days", GeneratedAt: time.Now().UTC(),
		}))
		summary, err = store.GetSummarySnapshot(ctx)
		require.NoError(t, err)
		require.NotNil(t, summary)
		assert.Equal(t, "Guests praise the spa.", summary.Summary)
		assert.Equal(t, 12, summary.BasedOn)
		assert.Equal(t, "Past 30 days", summary.Period)
		assert.False(t, summary.GeneratedAt.IsZero())
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	clock := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	store := NewMemoryStore().WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	testStoreContract(t, store)
}
