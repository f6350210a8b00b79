package analytics

import (
	"time"

	"feedback-dashboard/internal/models"
)

const (
	RecentWindowDays = 7
	MonthWindowDays  = 30
)

// ComputeTrends compares the average rating of the last 7 days with the last
// 30 days, overall and for every category in categories. Categories without
// records in a window read 0 for that window.
func ComputeTrends(records []models.Feedback, now time.Time, categories []string) models.RatingTrends {
	recent, month := partitionWindows(records, now)

	trends := models.RatingTrends{
		OverallRecent:  windowAverage(recent, ""),
		OverallMonth:   windowAverage(month, ""),
		CategoryTrends: make(map[string]models.CategoryTrend, len(categories)),
		UpdatedAt:      now,
	}
	trends.OverallChange = trends.OverallRecent - trends.OverallMonth

	for _, category := range categories {
		r := windowAverage(recent, category)
		m := windowAverage(month, category)
		trends.CategoryTrends[category] = models.CategoryTrend{
			Recent: r,
			Month:  m,
			Change: r - m,
		}
	}
	return trends
}

// partitionWindows splits records into the recent (7-day) and month (30-day)
// windows. Both are measured from the same now, so recent is a subset of month.
func partitionWindows(records []models.Feedback, now time.Time) (recent, month []models.Feedback) {
	recentStart := now.AddDate(0, 0, -RecentWindowDays)
	monthStart := now.AddDate(0, 0, -MonthWindowDays)

	for _, f := range records {
		if f.CreatedAt.Before(monthStart) {
			continue
		}
		month = append(month, f)
		if !f.CreatedAt.Before(recentStart) {
			recent = append(recent, f)
		}
	}
	return recent, month
}

// windowAverage averages the defined ratings of records in category, or of
// all records when category is empty. Unrated records are skipped.
func windowAverage(records []models.Feedback, category string) float64 {
	var acc ratingAcc
	for i := range records {
		f := &records[i]
		if category != "" && f.Category != category {
			continue
		}
		if f.HasRating() {
			acc.add(*f.Rating)
		}
	}
	return acc.mean()
}
