package main

import (
	"context"
	"log"
	"time"

	"pantrypal/cmd/config"
	"pantrypal/internal/utils"
	"pantrypal/internal/utils/mailing"
	"pantrypal/pkg/notification"
	"pantrypal/pkg/pantry"
	"pantrypal/pkg/user"
)

// Invoked once a day by an external scheduler (cron). The run itself is
// stateless and idempotent: it recomputes everything from current pantry
// contents, so an accidental second run only re-sends the same digests.
func main() {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	pantryRepository := pantry.NewPantryRepository(db)
	userRepository := user.NewUserRepository(db)

	digest := notification.NewDigestService(
		pantry.NewDigestSource(pantryRepository),
		user.NewContactResolver(userRepository),
		mailing.NewSMTPMailer(),
	)

	log.Println("Running daily expiry check...")
	report, err := digest.Run(context.Background(), time.Now())
	if err != nil {
		log.Fatalf("daily expiry check failed: %v", err)
	}

	log.Printf("Daily expiry check complete: %d selected, %d sent, %d skipped, %d failed",
		report.Selected, report.Sent, report.Skipped, len(report.Failed))
	for userID, failure := range report.Failed {
		log.Printf("user %s: %v", userID, failure)
	}
}
