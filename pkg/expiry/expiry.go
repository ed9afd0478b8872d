package expiry

import (
	"fmt"
	"sort"
	"time"
)

type Status string

const (
	StatusFresh         Status = "fresh"
	StatusNearingExpiry Status = "nearing-expiry"
	StatusExpiresSoon   Status = "expires-soon"
	StatusExpired       Status = "expired"
)

const (
	// AlertThresholdDays is the remaining-days cutoff at or below which an
	// item qualifies for the daily notification digest.
	AlertThresholdDays = 3

	// NearingExpiryThresholdDays is the remaining-days cutoff at or below
	// which an item is flagged for attention in the pantry view.
	NearingExpiryThresholdDays = 7
)

type (
	// Item is the minimal shape the engine classifies. Shelf life is
	// calendar days counted from the added date.
	Item struct {
		ID            string
		Name          string
		AddedDate     time.Time
		ShelfLifeDays int
	}

	Classification struct {
		ExpiryDate    time.Time `json:"expiry_date"`
		RemainingDays int       `json:"remaining_days"`
		Status        Status    `json:"status"`
		Label         string    `json:"label"`
	}

	ClassifiedItem struct {
		Item
		Classification
	}
)

// midnight drops the time-of-day and location so that day arithmetic never
// picks up sub-day drift or daylight-saving offsets.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts whole calendar days from one date to another, negative
// when the second date is in the past relative to the first.
func DaysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)).Hours() / 24)
}

// Classify computes the expiry date and remaining days for an item and
// buckets it into a status. Both dates are normalized to midnight before any
// arithmetic, and the expiry date is calendar addition so month and year
// boundaries roll over correctly. Deterministic for a given
// (addedDate, shelfLifeDays, today).
func Classify(addedDate time.Time, shelfLifeDays int, today time.Time) Classification {
	expiryDate := midnight(addedDate).AddDate(0, 0, shelfLifeDays)
	remainingDays := DaysBetween(today, expiryDate)

	var status Status
	switch {
	case remainingDays < 0:
		status = StatusExpired
	case remainingDays <= AlertThresholdDays:
		status = StatusExpiresSoon
	case remainingDays <= NearingExpiryThresholdDays:
		status = StatusNearingExpiry
	default:
		status = StatusFresh
	}

	return Classification{
		ExpiryDate:    expiryDate,
		RemainingDays: remainingDays,
		Status:        status,
		Label:         label(remainingDays, status),
	}
}

// ClassifyItem is Classify plus the item identity carried along, for callers
// that sort or filter whole pantries.
func ClassifyItem(item Item, today time.Time) ClassifiedItem {
	return ClassifiedItem{
		Item:           item,
		Classification: Classify(item.AddedDate, item.ShelfLifeDays, today),
	}
}

// ClassifyAll classifies every item against the same reference day,
// preserving input order.
func ClassifyAll(items []Item, today time.Time) []ClassifiedItem {
	classified := make([]ClassifiedItem, 0, len(items))
	for _, item := range items {
		classified = append(classified, ClassifyItem(item, today))
	}
	return classified
}

// SortByUrgency orders items soonest-to-expire first. Expired items carry
// negative remaining days, so they sort ahead of everything else. The sort is
// stable: ties keep their insertion order.
func SortByUrgency(items []ClassifiedItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RemainingDays < items[j].RemainingDays
	})
}

func label(remainingDays int, status Status) string {
	switch {
	case status == StatusExpired:
		return fmt.Sprintf("Expired %s ago", dayText(-remainingDays))
	case remainingDays == 0:
		return "Expires today"
	case status == StatusNearingExpiry:
		return fmt.Sprintf("%s left", dayText(remainingDays))
	default:
		return fmt.Sprintf("Expires in %s", dayText(remainingDays))
	}
}

func dayText(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
