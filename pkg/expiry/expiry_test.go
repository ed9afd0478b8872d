package expiry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyBuckets(t *testing.T) {
	today := date(2024, time.March, 15)

	tests := []struct {
		name          string
		shelfLife     int
		addedDate     time.Time
		remainingDays int
		status        Status
		label         string
	}{
		{"expired yesterday", 7, date(2024, time.March, 7), -1, StatusExpired, "Expired 1 day ago"},
		{"expired two days ago", 5, date(2024, time.March, 8), -2, StatusExpired, "Expired 2 days ago"},
		{"expires today", 7, date(2024, time.March, 8), 0, StatusExpiresSoon, "Expires today"},
		{"expires tomorrow", 7, date(2024, time.March, 9), 1, StatusExpiresSoon, "Expires in 1 day"},
		{"alert threshold boundary", 7, date(2024, time.March, 11), 3, StatusExpiresSoon, "Expires in 3 days"},
		{"just past alert threshold", 7, date(2024, time.March, 12), 4, StatusNearingExpiry, "4 days left"},
		{"nearing threshold boundary", 7, date(2024, time.March, 15), 7, StatusNearingExpiry, "7 days left"},
		{"just past nearing threshold", 10, date(2024, time.March, 13), 8, StatusFresh, "Expires in 8 days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Classify(tt.addedDate, tt.shelfLife, today)
			assert.Equal(t, tt.remainingDays, c.RemainingDays)
			assert.Equal(t, tt.status, c.Status)
			assert.Equal(t, tt.label, c.Label)
		})
	}
}

func TestClassifyScenarios(t *testing.T) {
	t.Run("seven day shelf life reaches its last day", func(t *testing.T) {
		c := Classify(date(2024, time.January, 1), 7, date(2024, time.January, 8))
		assert.Equal(t, 0, c.RemainingDays)
		assert.Equal(t, StatusExpiresSoon, c.Status)
		assert.Equal(t, "Expires today", c.Label)
	})

	t.Run("ten day shelf life partway through", func(t *testing.T) {
		c := Classify(date(2024, time.January, 1), 10, date(2024, time.January, 5))
		assert.Equal(t, 6, c.RemainingDays)
		assert.Equal(t, StatusNearingExpiry, c.Status)
	})
}

func TestClassifyNormalizesTimeOfDay(t *testing.T) {
	added := time.Date(2024, time.June, 1, 23, 45, 12, 0, time.FixedZone("CEST", 2*3600))
	today := time.Date(2024, time.June, 4, 0, 5, 0, 0, time.UTC)

	c := Classify(added, 5, today)
	assert.Equal(t, 2, c.RemainingDays, "partial-day differences must not appear")
}

func TestClassifyCalendarRollover(t *testing.T) {
	t.Run("month boundary", func(t *testing.T) {
		c := Classify(date(2024, time.January, 30), 5, date(2024, time.January, 30))
		assert.Equal(t, date(2024, time.February, 4), c.ExpiryDate)
	})

	t.Run("year boundary", func(t *testing.T) {
		c := Classify(date(2023, time.December, 28), 10, date(2023, time.December, 28))
		assert.Equal(t, date(2024, time.January, 7), c.ExpiryDate)
	})

	t.Run("leap day", func(t *testing.T) {
		c := Classify(date(2024, time.February, 28), 2, date(2024, time.February, 28))
		assert.Equal(t, date(2024, time.March, 1), c.ExpiryDate)
	})
}

func TestClassifyDeterministic(t *testing.T) {
	added := date(2024, time.May, 10)
	today := date(2024, time.May, 12)

	first := Classify(added, 9, today)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(added, 9, today))
	}
}

func TestRemainingDaysMonotonic(t *testing.T) {
	added := date(2024, time.April, 1)
	shelfLife := 30

	prev := Classify(added, shelfLife, added).RemainingDays
	for day := 1; day <= 60; day++ {
		today := added.AddDate(0, 0, day)
		got := Classify(added, shelfLife, today).RemainingDays
		require.Equal(t, prev-1, got, "advancing one day must decrease remaining days by exactly 1")
		prev = got
	}
}

func TestSortByUrgency(t *testing.T) {
	today := date(2024, time.July, 1)

	items := []Item{
		{ID: "a", Name: "Milk", AddedDate: date(2024, time.June, 25), ShelfLifeDays: 10},  // 4 left
		{ID: "b", Name: "Bread", AddedDate: date(2024, time.June, 20), ShelfLifeDays: 5},  // expired
		{ID: "c", Name: "Eggs", AddedDate: date(2024, time.June, 10), ShelfLifeDays: 30},  // 9 left
		{ID: "d", Name: "Yogurt", AddedDate: date(2024, time.June, 27), ShelfLifeDays: 8}, // 4 left, ties with a
		{ID: "e", Name: "Ham", AddedDate: date(2024, time.June, 28), ShelfLifeDays: 3},    // expires today
	}

	classified := ClassifyAll(items, today)
	SortByUrgency(classified)

	var order []string
	for _, item := range classified {
		order = append(order, item.ID)
	}
	assert.Equal(t, []string{"b", "e", "a", "d", "c"}, order, "expired first, then ascending remaining days, stable ties")

	for i := 1; i < len(classified); i++ {
		assert.LessOrEqual(t, classified[i-1].RemainingDays, classified[i].RemainingDays)
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, 3, DaysBetween(date(2024, time.March, 1), date(2024, time.March, 4)))
	assert.Equal(t, -2, DaysBetween(date(2024, time.March, 4), date(2024, time.March, 2)))
}
