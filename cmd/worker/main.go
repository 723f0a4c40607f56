package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/db"
	"github.com/givehub/backend/internal/events"
	"github.com/givehub/backend/internal/repositories"
	"go.uber.org/zap"
)

// The worker sweeps campaigns past their end date: once the end date
// passes, a campaign stops accepting donations (the fundability check in
// the API already enforces that), and the sweep publishes campaign_ended
// so listeners can react.

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	campaignRepo := repositories.NewCampaignRepo(pool)
	publisher := events.NewRedisPublisher(rdb, log)

	log.Info("worker started", zap.Duration("sweep_interval", cfg.ExpirySweepInterval))

	sweepTicker := time.NewTicker(cfg.ExpirySweepInterval)
	defer sweepTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			runExpirySweep(ctx, campaignRepo, publisher, log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

func runExpirySweep(ctx context.Context, campaignRepo *repositories.CampaignRepo, publisher events.Publisher, log *zap.Logger) {
	ended, err := campaignRepo.MarkEnded(ctx, time.Now())
	if err != nil {
		log.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if len(ended) == 0 {
		return
	}

	log.Info("campaigns past end date", zap.Int("count", len(ended)))

	for _, campaign := range ended {
		if err := publisher.Publish(ctx, events.StreamCampaign, events.Event{
			Type: events.EventCampaignEnded,
			Payload: map[string]any{
				"campaign_id":    campaign.ID.String(),
				"campaign_name":  campaign.Name,
				"current_raised": campaign.CurrentRaised,
				"target_fund":    campaign.TargetFund,
			},
		}); err != nil {
			log.Warn("failed to publish campaign_ended",
				zap.String("campaign_id", campaign.ID.String()), zap.Error(err))
		}
	}
}
