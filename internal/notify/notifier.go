package notify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"feedback-dashboard/internal/models"
)

// Notifier defines the interface for publishing messages to a notification channel.
// Implementations: log output, e-mail (Resend) and a Redis stream.
type Notifier interface {
	Publish(ctx context.Context, message string) error
}

// FormatTrendAlert renders a rating-drop alert for management.
func FormatTrendAlert(trends models.RatingTrends, threshold float64) string {
	var b strings.Builder
	b.WriteString("📉 *Guest rating drop detected*\n")
	fmt.Fprintf(&b, "7-day average: %.2f\n", trends.OverallRecent)
	fmt.Fprintf(&b, "30-day average: %.2f\n", trends.OverallMonth)
	fmt.Fprintf(&b, "Change: %+.2f (alert threshold -%.2f)\n", trends.OverallChange, threshold)

	categories := make([]string, 0, len(trends.CategoryTrends))
	for category := range trends.CategoryTrends {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		t := trends.CategoryTrends[category]
		if t.Change > -threshold {
			continue
		}
		fmt.Fprintf(&b, "• %s: %.2f → %.2f (%+.2f)\n", category, t.Month, t.Recent, t.Change)
	}
	return b.String()
}

// FormatLowRatingAlert renders the staff alert for a poorly rated submission.
func FormatLowRatingAlert(f *models.Feedback) string {
	var b strings.Builder
	b.WriteString("⚠️ *Low rated feedback received*\n")
	if f.HasRating() {
		stars := ""
		if r := *f.Rating; r > 0 && r <= 5 {
			stars = strings.Repeat("⭐", r) + " "
		}
		fmt.Fprintf(&b, "Rating: %s(%d/5)\n", stars, *f.Rating)
	}
	if f.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", f.Category)
	}
	if f.UserName != "" {
		fmt.Fprintf(&b, "Guest: %s\n", f.UserName)
	}
	fmt.Fprintf(&b, "Comment: %s\n", f.Comment)
	fmt.Fprintf(&b, "ID: `%s`", f.ID)
	return b.String()
}
