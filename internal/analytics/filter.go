package analytics

import (
	"strings"

	"feedback-dashboard/internal/models"
)

// Filter narrows a feedback list the way the dashboard list view does.
// Zero-valued fields match everything.
type Filter struct {
	Search string
	Status models.Status
	Rating int
}

func (f Filter) Match(fb *models.Feedback) bool {
	if f.Status != "" && fb.Status != f.Status {
		return false
	}
	if f.Rating != 0 && (!fb.HasRating() || *fb.Rating != f.Rating) {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		return strings.Contains(strings.ToLower(fb.UserName), term) ||
			strings.Contains(strings.ToLower(fb.Comment), term) ||
			strings.Contains(strings.ToLower(fb.Category), term)
	}
	return true
}

// Apply returns the matching records, preserving order.
func (f Filter) Apply(records []models.Feedback) []models.Feedback {
	out := make([]models.Feedback, 0, len(records))
	for i := range records {
		if f.Match(&records[i]) {
			out = append(out, records[i])
		}
	}
	return out
}

// GuestHistory returns up to limit of the guest's other records, newest first.
// records must already be ordered newest first.
func GuestHistory(records []models.Feedback, target *models.Feedback, limit int) []models.Feedback {
	if target.UserEmail == "" {
		return nil
	}
	var history []models.Feedback
	for _, f := range records {
		if f.ID == target.ID || f.UserEmail != target.UserEmail {
			continue
		}
		history = append(history, f)
		if len(history) == limit {
			break
		}
	}
	return history
}
