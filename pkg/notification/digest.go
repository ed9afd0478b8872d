package notification

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"pantrypal/domain"
	"pantrypal/pkg/expiry"
)

type (
	// PantryLister is the slice of the item store the batch run needs.
	PantryLister interface {
		GetAllPantries(ctx context.Context) ([]UserPantry, error)
	}

	// ContactResolver maps a user id to a deliverable address. A missing
	// address is reported with domain.ErrEmailNotFound and treated as a
	// skip, not a failure.
	ContactResolver interface {
		GetContactAddress(ctx context.Context, userID string) (string, error)
	}

	Mailer interface {
		Send(to string, subject string, htmlBody string) error
	}

	// RunReport summarizes one digest run. Failed holds per-user errors;
	// one user's failure never aborts the rest of the batch.
	RunReport struct {
		Selected int
		Sent     int
		Skipped  int
		Failed   map[string]error
	}

	DigestService interface {
		Run(ctx context.Context, today time.Time) (RunReport, error)
	}

	digestService struct {
		pantries PantryLister
		contacts ContactResolver
		mailer   Mailer
	}
)

func NewDigestService(pantries PantryLister, contacts ContactResolver, mailer Mailer) DigestService {
	return &digestService{
		pantries: pantries,
		contacts: contacts,
		mailer:   mailer,
	}
}

// Run performs one daily digest pass: load every pantry, select candidates,
// then fan out delivery per user. Re-running on the same day recomputes from
// current state and simply re-notifies; the job keeps no state of its own.
func (s *digestService) Run(ctx context.Context, today time.Time) (RunReport, error) {
	pantries, err := s.pantries.GetAllPantries(ctx)
	if err != nil {
		return RunReport{}, err
	}

	candidates := Select(pantries, today, expiry.AlertThresholdDays)

	report := RunReport{
		Selected: len(candidates),
		Failed:   make(map[string]error),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, candidate := range candidates {
		wg.Add(1)
		go func(candidate Candidate) {
			defer wg.Done()

			address, err := s.contacts.GetContactAddress(ctx, candidate.UserID)
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				if errors.Is(err, domain.ErrEmailNotFound) {
					log.Printf("user %s has no email, skipping expiry alert", candidate.UserID)
					report.Skipped++
					return
				}
				log.Printf("failed to resolve contact for user %s: %v", candidate.UserID, err)
				report.Failed[candidate.UserID] = err
				return
			}

			subject, body := BuildDigest(candidate)
			if err := s.mailer.Send(address, subject, body); err != nil {
				mu.Lock()
				defer mu.Unlock()
				log.Printf("failed to send expiry alert to user %s: %v", candidate.UserID, err)
				report.Failed[candidate.UserID] = err
				return
			}

			mu.Lock()
			defer mu.Unlock()
			report.Sent++
		}(candidate)
	}
	wg.Wait()

	return report, nil
}
