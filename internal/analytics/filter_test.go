package analytics

import (
	"testing"

	"feedback-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
)

func filterFixture() []models.Feedback {
	return []models.Feedback{
		{ID: "1", UserName: "Abebe Kebede", Comment: "Lovely pool", Category: "Water Park", Status: models.StatusPending, Rating: models.IntPtr(5)},
		{ID: "2", UserName: "Sara", Comment: "Cold breakfast", Category: "Dining Experience", Status: models.StatusResponded, Rating: models.IntPtr(2)},
		{ID: "3", Comment: "Great massage", Category: "Spa Services", Status: models.StatusReviewed},
	}
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty filter matches all", Filter{}, []string{"1", "2", "3"}},
		{"search user name", Filter{Search: "abebe"}, []string{"1"}},
		{"search comment", Filter{Search: "BREAKFAST"}, []string{"2"}},
		{"search category", Filter{Search: "spa"}, []string{"3"}},
		{"status", Filter{Status: models.StatusResponded}, []string{"2"}},
		{"rating skips unrated", Filter{Rating: 5}, []string{"1"}},
		{"combined", Filter{Search: "o", Status: models.StatusPending}, []string{"1"}},
		{"no match", Filter{Search: "wifi"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(filterFixture())
			assert.Equal(t, tt.want, idsOf(got))
		})
	}
}

func TestGuestHistory(t *testing.T) {
	records := []models.Feedback{
		{ID: "5", UserEmail: "guest@example.com"},
		{ID: "4", UserEmail: "other@example.com"},
		{ID: "3", UserEmail: "guest@example.com"},
		{ID: "2", UserEmail: "guest@example.com"},
		{ID: "1", UserEmail: "guest@example.com"},
		{ID: "0", UserEmail: "guest@example.com"},
	}

	history := GuestHistory(records, &records[0], 3)
	assert.Equal(t, []string{"3", "2", "1"}, idsOf(history))

	anonymous := models.Feedback{ID: "x"}
	assert.Empty(t, GuestHistory(records, &anonymous, 3))
}
