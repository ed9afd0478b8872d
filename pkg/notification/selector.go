package notification

import (
	"fmt"
	"strings"
	"time"

	"pantrypal/pkg/expiry"
)

type (
	// UserPantry is one user's full item list as loaded for a batch run.
	UserPantry struct {
		UserID string
		Items  []expiry.Item
	}

	ExpiringItem struct {
		Name          string
		RemainingDays int
	}

	// Candidate is a user selected to receive an expiry digest, with the
	// items that qualified.
	Candidate struct {
		UserID        string
		ExpiringItems []ExpiringItem
	}
)

// Select decides which users should be notified. An item qualifies when its
// remaining days sit in [0, alertThresholdDays]: already-expired items are
// excluded on purpose, the digest is a use-it-before-it-goes-bad reminder and
// not a retrospective one. Users with no items or no qualifying items yield
// no candidate. Pure; identical inputs always produce identical output.
func Select(pantries []UserPantry, today time.Time, alertThresholdDays int) []Candidate {
	var candidates []Candidate
	for _, pantry := range pantries {
		if len(pantry.Items) == 0 {
			continue
		}

		var expiring []ExpiringItem
		for _, item := range pantry.Items {
			c := expiry.Classify(item.AddedDate, item.ShelfLifeDays, today)
			if c.RemainingDays < 0 || c.RemainingDays > alertThresholdDays {
				continue
			}
			expiring = append(expiring, ExpiringItem{
				Name:          item.Name,
				RemainingDays: c.RemainingDays,
			})
		}

		if len(expiring) == 0 {
			continue
		}

		candidates = append(candidates, Candidate{
			UserID:        pantry.UserID,
			ExpiringItems: expiring,
		})
	}
	return candidates
}

const digestSubject = "You have items expiring soon in your Pantry!"

// BuildDigest renders the alert email for one candidate.
func BuildDigest(candidate Candidate) (subject string, body string) {
	var list strings.Builder
	for _, item := range candidate.ExpiringItems {
		list.WriteString(fmt.Sprintf("<li><b>%s</b>: %s</li>", item.Name, dayText(item.RemainingDays)))
	}

	body = fmt.Sprintf(`<h1>PantryPal Expiry Alert!</h1>
<p>Hello! You have some items in your pantry that are expiring soon:</p>
<ul>%s</ul>
<p>Log in to PantryPal to manage your items and prevent food waste!</p>`, list.String())

	return digestSubject, body
}

func dayText(remainingDays int) string {
	switch remainingDays {
	case 0:
		return "Expires today"
	case 1:
		return "Expires in 1 day"
	default:
		return fmt.Sprintf("Expires in %d days", remainingDays)
	}
}
