package analytics

import (
	"strconv"
	"testing"

	"feedback-dashboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTrends_OldRecordOutsideMonth(t *testing.T) {
	records := []models.Feedback{
		rated("a", 5, "Staff Service", models.StatusPending, refNow.AddDate(0, 0, -2)),
		rated("b", 1, "Staff Service", models.StatusPending, refNow.AddDate(0, 0, -40)),
	}

	trends := ComputeTrends(records, refNow, models.Categories)

	assert.Equal(t, 5.0, trends.OverallRecent)
	assert.Equal(t, 5.0, trends.OverallMonth)
	assert.Equal(t, 0.0, trends.OverallChange)
	assert.Equal(t, models.CategoryTrend{Recent: 5, Month: 5, Change: 0}, trends.CategoryTrends["Staff Service"])
	assert.Equal(t, refNow, trends.UpdatedAt)
}

func TestComputeTrends_RecentVersusMonth(t *testing.T) {
	records := []models.Feedback{
		rated("a", 2, "Dining Experience", models.StatusPending, refNow.AddDate(0, 0, -1)),
		rated("b", 5, "Dining Experience", models.StatusPending, refNow.AddDate(0, 0, -10)),
		rated("c", 5, "Water Park", models.StatusPending, refNow.AddDate(0, 0, -20)),
	}

	trends := ComputeTrends(records, refNow, models.Categories)

	assert.Equal(t, 2.0, trends.OverallRecent)
	assert.Equal(t, 4.0, trends.OverallMonth)
	assert.Equal(t, -2.0, trends.OverallChange)

	dining := trends.CategoryTrends["Dining Experience"]
	assert.Equal(t, 2.0, dining.Recent)
	assert.Equal(t, 3.5, dining.Month)
	assert.Equal(t, -1.5, dining.Change)

	water := trends.CategoryTrends["Water Park"]
	assert.Equal(t, models.CategoryTrend{Recent: 0, Month: 5, Change: -5}, water)
}

func TestComputeTrends_ZeroFillsEveryCategory(t *testing.T) {
	trends := ComputeTrends(nil, refNow, models.Categories)

	assert.Equal(t, 0.0, trends.OverallRecent)
	assert.Equal(t, 0.0, trends.OverallMonth)
	assert.Equal(t, 0.0, trends.OverallChange)
	require.Len(t, trends.CategoryTrends, len(models.Categories))
	for _, category := range models.Categories {
		assert.Equal(t, models.CategoryTrend{}, trends.CategoryTrends[category], category)
	}
}

func TestComputeTrends_IgnoresUnknownCategoriesAndUnrated(t *testing.T) {
	records := []models.Feedback{
		rated("a", 3, "Parking", models.StatusPending, refNow.AddDate(0, 0, -1)),
		{ID: "b", Category: "Room Comfort", CreatedAt: refNow.AddDate(0, 0, -1)},
		rated("c", 4, "Room Comfort", models.StatusPending, refNow.AddDate(0, 0, -1)),
	}

	trends := ComputeTrends(records, refNow, models.Categories)

	assert.NotContains(t, trends.CategoryTrends, "Parking")
	assert.Equal(t, 4.0, trends.CategoryTrends["Room Comfort"].Recent)
	assert.Equal(t, 3.5, trends.OverallRecent)
}

func TestComputeTrends_ChangeIsNotRounded(t *testing.T) {
	records := []models.Feedback{
		rated("a", 5, "", models.StatusPending, refNow.AddDate(0, 0, -1)),
		rated("b", 4, "", models.StatusPending, refNow.AddDate(0, 0, -1)),
		rated("c", 4, "", models.StatusPending, refNow.AddDate(0, 0, -1)),
		rated("d", 1, "", models.StatusPending, refNow.AddDate(0, 0, -15)),
	}

	trends := ComputeTrends(records, refNow, nil)

	assert.InDelta(t, 13.0/3.0, trends.OverallRecent, 1e-9)
	assert.InDelta(t, 3.5, trends.OverallMonth, 1e-9)
	assert.InDelta(t, 13.0/3.0-3.5, trends.OverallChange, 1e-9)
	assert.Empty(t, trends.CategoryTrends)
}

func TestPartitionWindows_RecentIsSubsetOfMonth(t *testing.T) {
	var records []models.Feedback
	for days := 0; days <= 45; days += 3 {
		records = append(records, rated(strconv.Itoa(days), 3, "", models.StatusPending, refNow.AddDate(0, 0, -days)))
	}
	records = append(records, rated("edge-7", 3, "", models.StatusPending, refNow.AddDate(0, 0, -RecentWindowDays)))
	records = append(records, rated("edge-30", 3, "", models.StatusPending, refNow.AddDate(0, 0, -MonthWindowDays)))

	recent, month := partitionWindows(records, refNow)

	inMonth := map[string]bool{}
	for _, f := range month {
		inMonth[f.ID] = true
	}
	for _, f := range recent {
		assert.True(t, inMonth[f.ID], "recent record %s missing from month window", f.ID)
	}
	assert.Contains(t, idsOf(recent), "edge-7")
	assert.Contains(t, idsOf(month), "edge-30")
	assert.Less(t, len(recent), len(month))
}

func idsOf(records []models.Feedback) []string {
	ids := make([]string, 0, len(records))
	for _, f := range records {
		ids = append(ids, f.ID)
	}
	return ids
}
