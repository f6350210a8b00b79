// Package analytics turns the flat feedback list into dashboard numbers:
// summary statistics, daily trend buckets and 7/30-day rating trends.
package analytics

import (
	"math"
	"strconv"
	"time"

	"feedback-dashboard/internal/models"
)

// TrendDays is the number of daily buckets in FeedbackStats.TrendsData.
const TrendDays = 30

const dateLayout = "2006-01-02"

// ComputeStats aggregates records into FeedbackStats. Daily buckets are local
// calendar days in now's location, oldest first, ending with now's day.
// The input slice is not modified.
func ComputeStats(records []models.Feedback, now time.Time) models.FeedbackStats {
	stats := models.FeedbackStats{
		TotalCount:         len(records),
		CategoryBreakdown:  map[string]int{},
		RatingDistribution: map[string]int{"1": 0, "2": 0, "3": 0, "4": 0, "5": 0},
	}

	var acc ratingAcc
	for i := range records {
		f := &records[i]

		if f.HasRating() {
			acc.add(*f.Rating)
			if r := *f.Rating; r >= 1 && r <= 5 {
				stats.RatingDistribution[strconv.Itoa(r)]++
			}
		}

		if f.Category != "" {
			stats.CategoryBreakdown[f.Category]++
		}

		switch f.Status {
		case models.StatusPending:
			stats.PendingCount++
		case models.StatusResponded:
			stats.RespondedCount++
		case models.StatusReviewed:
			stats.ReviewedCount++
		}
	}
	stats.AverageRating = roundTenth(acc.mean())
	stats.TrendsData = dailyTrends(records, now, TrendDays)

	return stats
}

func dailyTrends(records []models.Feedback, now time.Time, days int) []models.TrendBucket {
	loc := now.Location()
	y, m, d := now.Date()

	// Labels use UTC calendar arithmetic so a DST change that skips local
	// midnight cannot fold two days into one.
	labels := make([]string, days)
	index := make(map[string]int, days)
	for i := 0; i < days; i++ {
		labels[i] = time.Date(y, m, d+i-(days-1), 12, 0, 0, 0, time.UTC).Format(dateLayout)
		index[labels[i]] = i
	}

	accs := make([]ratingAcc, days)
	for i := range records {
		f := &records[i]
		slot, ok := index[f.CreatedAt.In(loc).Format(dateLayout)]
		if !ok {
			continue
		}
		accs[slot].count++
		if f.HasRating() {
			accs[slot].add(*f.Rating)
		}
	}

	buckets := make([]models.TrendBucket, days)
	for i, label := range labels {
		buckets[i] = models.TrendBucket{
			Date:          label,
			Count:         accs[i].count,
			AverageRating: roundTenth(accs[i].mean()),
		}
	}
	return buckets
}

// ratingAcc accumulates defined ratings. count tracks records seen, which
// may exceed rated when some records carry no rating.
type ratingAcc struct {
	sum   int
	rated int
	count int
}

func (a *ratingAcc) add(rating int) {
	a.sum += rating
	a.rated++
}

func (a *ratingAcc) mean() float64 {
	if a.rated == 0 {
		return 0
	}
	return float64(a.sum) / float64(a.rated)
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
