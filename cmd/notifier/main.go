package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/backoff/v5"
	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/db"
	"github.com/givehub/backend/internal/events"
	"github.com/givehub/backend/internal/services"
	"go.uber.org/zap"
)

// The notifier subscribes to platform events and turns the ones people
// care about into email through the internal mailer. Delivery is retried
// with exponential backoff; a notification that still fails is logged and
// dropped, never blocking the event stream.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)
	mailer := services.NewMailerClient(cfg.MailerInternalURL, cfg.MailerFrom, log)

	log.Info("notifier started")

	_ = subscriber.Subscribe(ctx, events.StreamDonation, func(event events.Event) {
		handleEvent(ctx, mailer, event, log)
	})
	_ = subscriber.Subscribe(ctx, events.StreamCampaign, func(event events.Event) {
		handleEvent(ctx, mailer, event, log)
	})
	_ = subscriber.Subscribe(ctx, events.StreamWithdrawal, func(event events.Event) {
		handleEvent(ctx, mailer, event, log)
	})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down notifier")
	cancel()
}

func handleEvent(ctx context.Context, mailer *services.MailerClient, event events.Event, log *zap.Logger) {
	email, ok := composeEmail(event)
	if !ok {
		return
	}

	operation := func() (struct{}, error) {
		return struct{}{}, mailer.Send(ctx, email)
	}
	if _, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(5),
	); err != nil {
		log.Error("dropping notification after retries",
			zap.String("event", event.Type),
			zap.String("to", email.To),
			zap.Error(err),
		)
	}
}

// composeEmail maps an event to a concrete message. Events without a
// recipient email in the payload are not mailable.
func composeEmail(event events.Event) (services.Email, bool) {
	switch event.Type {
	case events.EventHighValueDonation:
		to, _ := event.Payload["account_email"].(string)
		if to == "" {
			return services.Email{}, false
		}
		return services.Email{
			To:      to,
			Subject: "Thank you for your generous donation",
			Body: fmt.Sprintf(
				"We received your donation of %s. Our compliance team may reach out to verify details.",
				formatCentavos(event.Payload["gross_amount"])),
		}, true

	case events.EventCampaignApproved:
		to, _ := event.Payload["beneficiary_email"].(string)
		name, _ := event.Payload["campaign_name"].(string)
		if to == "" {
			return services.Email{}, false
		}
		return services.Email{
			To:      to,
			Subject: fmt.Sprintf("Your campaign %q has been approved", name),
			Body:    "Your campaign is now live and accepting donations.",
		}, true

	case events.EventCampaignRejected:
		to, _ := event.Payload["beneficiary_email"].(string)
		name, _ := event.Payload["campaign_name"].(string)
		notes, _ := event.Payload["notes"].(string)
		if to == "" {
			return services.Email{}, false
		}
		return services.Email{
			To:      to,
			Subject: fmt.Sprintf("Your campaign %q was not approved", name),
			Body:    fmt.Sprintf("Reviewer notes: %s", notes),
		}, true

	case events.EventWithdrawalApproved:
		to, _ := event.Payload["beneficiary_email"].(string)
		if to == "" {
			return services.Email{}, false
		}
		return services.Email{
			To:      to,
			Subject: "Your withdrawal has been approved",
			Body: fmt.Sprintf(
				"%s is on its way to your bank account.",
				formatCentavos(event.Payload["disbursed_amount"])),
		}, true

	case events.EventWithdrawalRejected:
		to, _ := event.Payload["beneficiary_email"].(string)
		notes, _ := event.Payload["notes"].(string)
		if to == "" {
			return services.Email{}, false
		}
		return services.Email{
			To:      to,
			Subject: "Your withdrawal was rejected",
			Body:    fmt.Sprintf("Your campaign funds remain available. Notes: %s", notes),
		}, true
	}

	return services.Email{}, false
}

// formatCentavos renders a payload amount (json number, so float64) as
// pesos for email copy.
func formatCentavos(v any) string {
	n, ok := v.(float64)
	if !ok {
		return "your donation"
	}
	return fmt.Sprintf("PHP %.2f", n/100)
}
