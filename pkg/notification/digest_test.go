package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantrypal/domain"
	"pantrypal/pkg/expiry"
)

type fakePantryLister struct {
	pantries []UserPantry
	err      error
}

func (f *fakePantryLister) GetAllPantries(_ context.Context) ([]UserPantry, error) {
	return f.pantries, f.err
}

type fakeContacts struct {
	addresses map[string]string
	errs      map[string]error
}

func (f *fakeContacts) GetContactAddress(_ context.Context, userID string) (string, error) {
	if err, ok := f.errs[userID]; ok {
		return "", err
	}
	address, ok := f.addresses[userID]
	if !ok || address == "" {
		return "", domain.ErrEmailNotFound
	}
	return address, nil
}

type sentMail struct {
	to      string
	subject string
	body    string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]error
}

func (f *fakeMailer) Send(to, subject, body string) error {
	if err, ok := f.failTo[to]; ok {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func expiringPantry(userID string, today time.Time) UserPantry {
	return UserPantry{
		UserID: userID,
		Items: []expiry.Item{
			{Name: "Milk", AddedDate: today.AddDate(0, 0, -5), ShelfLifeDays: 7},
		},
	}
}

func TestDigestRun(t *testing.T) {
	today := date(2024, time.September, 1)

	t.Run("sends one digest per candidate", func(t *testing.T) {
		lister := &fakePantryLister{pantries: []UserPantry{
			expiringPantry("user-a", today),
			expiringPantry("user-b", today),
			{UserID: "user-c"}, // empty pantry, never a candidate
		}}
		contacts := &fakeContacts{addresses: map[string]string{
			"user-a": "a@example.com",
			"user-b": "b@example.com",
		}}
		mailer := &fakeMailer{}

		report, err := NewDigestService(lister, contacts, mailer).Run(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, 2, report.Selected)
		assert.Equal(t, 2, report.Sent)
		assert.Equal(t, 0, report.Skipped)
		assert.Empty(t, report.Failed)
		assert.Len(t, mailer.sent, 2)
		for _, mail := range mailer.sent {
			assert.Equal(t, "You have items expiring soon in your Pantry!", mail.subject)
			assert.Contains(t, mail.body, "Milk")
		}
	})

	t.Run("missing address is a skip, not a failure", func(t *testing.T) {
		lister := &fakePantryLister{pantries: []UserPantry{
			expiringPantry("user-a", today),
			expiringPantry("user-b", today),
		}}
		contacts := &fakeContacts{addresses: map[string]string{"user-b": "b@example.com"}}
		mailer := &fakeMailer{}

		report, err := NewDigestService(lister, contacts, mailer).Run(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, 1, report.Sent)
		assert.Empty(t, report.Failed)
	})

	t.Run("one user's failure does not abort the rest", func(t *testing.T) {
		lister := &fakePantryLister{pantries: []UserPantry{
			expiringPantry("user-a", today),
			expiringPantry("user-b", today),
			expiringPantry("user-c", today),
		}}
		contacts := &fakeContacts{
			addresses: map[string]string{
				"user-a": "a@example.com",
				"user-c": "c@example.com",
			},
			errs: map[string]error{"user-b": errors.New("auth backend down")},
		}
		mailer := &fakeMailer{failTo: map[string]error{"c@example.com": errors.New("smtp refused")}}

		report, err := NewDigestService(lister, contacts, mailer).Run(context.Background(), today)

		require.NoError(t, err)
		assert.Equal(t, 3, report.Selected)
		assert.Equal(t, 1, report.Sent)
		require.Len(t, report.Failed, 2)
		assert.Error(t, report.Failed["user-b"])
		assert.Error(t, report.Failed["user-c"])
	})

	t.Run("store failure surfaces as an error, not an empty run", func(t *testing.T) {
		lister := &fakePantryLister{err: errors.New("connection refused")}

		_, err := NewDigestService(lister, &fakeContacts{}, &fakeMailer{}).Run(context.Background(), today)
		assert.Error(t, err)
	})
}
