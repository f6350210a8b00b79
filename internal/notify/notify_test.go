package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"feedback-dashboard/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTrendAlert(t *testing.T) {
	trends := models.RatingTrends{
		OverallRecent: 2.5,
		OverallMonth:  4,
		OverallChange: -1.5,
		CategoryTrends: map[string]models.CategoryTrend{
			"Dining Experience": {Recent: 2, Month: 4, Change: -2},
			"Spa Services":      {Recent: 4.8, Month: 5, Change: -0.2},
			"Water Park":        {Recent: 5, Month: 4, Change: 1},
		},
	}

	msg := FormatTrendAlert(trends, 0.5)

	assert.Contains(t, msg, "7-day average: 2.50")
	assert.Contains(t, msg, "30-day average: 4.00")
	assert.Contains(t, msg, "Change: -1.50")
	assert.Contains(t, msg, "Dining Experience: 4.00 → 2.00 (-2.00)")
	assert.NotContains(t, msg, "Spa Services")
	assert.NotContains(t, msg, "Water Park")
}

func TestFormatTrendAlert_CustomCategories(t *testing.T) {
	trends := models.RatingTrends{
		OverallChange: -1,
		CategoryTrends: map[string]models.CategoryTrend{
			"Rooftop Bar": {Recent: 3, Month: 4, Change: -1},
			"Kids Club":   {Recent: 2, Month: 4.5, Change: -2.5},
		},
	}

	msg := FormatTrendAlert(trends, 0.5)

	kids := strings.Index(msg, "Kids Club: 4.50 → 2.00 (-2.50)")
	bar := strings.Index(msg, "Rooftop Bar: 4.00 → 3.00 (-1.00)")
	require.NotEqual(t, -1, kids)
	require.NotEqual(t, -1, bar)
	assert.Less(t, kids, bar)
}

func TestFormatLowRatingAlert(t *testing.T) {
	msg := FormatLowRatingAlert(&models.Feedback{
		ID:       "f-9",
		UserName: "Dawit",
		Rating:   models.IntPtr(2),
		Comment:  "Cold food",
		Category: "Dining Experience",
	})

	assert.Contains(t, msg, "Rating: ⭐⭐ (2/5)")
	assert.Contains(t, msg, "Category: Dining Experience")
	assert.Contains(t, msg, "Guest: Dawit")
	assert.Contains(t, msg, "Comment: Cold food")
	assert.Contains(t, msg, "`f-9`")

	// out-of-range ratings print without stars
	assert.Contains(t, FormatLowRatingAlert(&models.Feedback{Rating: models.IntPtr(0)}), "Rating: (0/5)")
}

func TestEmailNotifier_Publish(t *testing.T) {
	var body map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "Bearer re_test", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"email-1"}`))
	}))
	defer server.Close()

	n := NewEmailNotifier("re_test", "alerts@hotel.test", []string{"gm@hotel.test"})
	n.client.BaseURL, _ = url.Parse(server.URL + "/")

	require.NoError(t, n.Publish(context.Background(), "*Guest rating drop detected*"))
	assert.Equal(t, "Guest feedback alert", body["subject"])
	assert.Equal(t, "Guest rating drop detected", body["text"])
}

func TestEmailNotifier_CancelledContext(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	n := NewEmailNotifier("re_test", "alerts@hotel.test", []string{"gm@hotel.test"})
	n.client.BaseURL, _ = url.Parse(server.URL + "/")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := n.Publish(ctx, "drop")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, hits.Load())
}

func TestEmailNotifier_NoRecipients(t *testing.T) {
	n := NewEmailNotifier("re_test", "alerts@hotel.test", nil)

	assert.EqualError(t, n.Publish(context.Background(), "drop"), "no alert recipients configured")
}

func TestRedisNotifier_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	n := NewRedisNotifier(client, "")
	defer n.Close()

	ctx := context.Background()
	require.NoError(t, n.Publish(ctx, "ratings dropped"))
	require.NoError(t, n.Publish(ctx, "ratings dropped again"))

	check := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer check.Close()
	entries, err := check.XRange(ctx, DefaultAlertStream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "ratings dropped", entries[0].Values["message"])
	assert.Equal(t, "rating_trend_alert", entries[0].Values["type"])
	assert.NotEmpty(t, entries[0].Values["occurred_at"])
}

func TestRedisNotifierWithURL(t *testing.T) {
	mr := miniredis.RunT(t)

	n, err := NewRedisNotifierWithURL("redis://"+mr.Addr()+"/0", "custom:alerts")
	require.NoError(t, err)
	defer n.Close()

	require.NoError(t, n.Publish(context.Background(), "hello"))
	assert.True(t, mr.Exists("custom:alerts"))

	_, err = NewRedisNotifierWithURL("://bad", "")
	assert.Error(t, err)
}

func TestRedisNotifier_Unavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	n := NewRedisNotifier(client, "")
	defer n.Close()
	mr.Close()

	assert.Error(t, n.Publish(context.Background(), "lost"))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Publish(context.Background(), "hello"))
}
