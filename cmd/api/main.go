package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/db"
	"github.com/givehub/backend/internal/events"
	apphttp "github.com/givehub/backend/internal/http"
	"github.com/givehub/backend/internal/http/handlers"
	"github.com/givehub/backend/internal/payments"
	"github.com/givehub/backend/internal/repositories"
	"github.com/givehub/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, "migrations", log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	accountRepo := repositories.NewAccountRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	donationRepo := repositories.NewDonationRepo(pool)
	withdrawalRepo := repositories.NewWithdrawalRepo(pool)
	rewardRepo := repositories.NewRewardRepo(pool)
	revenueRepo := repositories.NewRevenueRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	paymentClient := payments.NewClient(cfg.PaymentProviderURL, cfg.PaymentProviderKey, log)
	donationService := services.NewDonationService(pool, campaignRepo, donationRepo, accountRepo, revenueRepo, auditRepo, paymentClient, publisher, log)
	campaignService := services.NewCampaignService(campaignRepo, accountRepo, auditRepo, publisher, log)
	withdrawalService := services.NewWithdrawalService(pool, withdrawalRepo, campaignRepo, accountRepo, auditRepo, publisher, log)
	rewardService := services.NewRewardService(pool, rewardRepo, accountRepo, auditRepo, publisher, log)

	// Handlers
	donationHandler := handlers.NewDonationHandler(donationService, log)
	paymentHandler := handlers.NewPaymentHandler(donationService, paymentClient, cfg, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	withdrawalHandler := handlers.NewWithdrawalHandler(withdrawalService, log)
	rewardHandler := handlers.NewRewardHandler(rewardService, log)
	accountHandler := handlers.NewAccountHandler(accountRepo, log)
	revenueHandler := handlers.NewRevenueHandler(revenueRepo, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb,
		donationHandler, paymentHandler, campaignHandler, withdrawalHandler,
		rewardHandler, accountHandler, revenueHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
