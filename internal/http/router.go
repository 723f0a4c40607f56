package http

import (
	"time"

	"github.com/givehub/backend/internal/config"
	"github.com/givehub/backend/internal/http/handlers"
	"github.com/givehub/backend/internal/middleware"
	"github.com/givehub/backend/internal/rbac"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	donationHandler *handlers.DonationHandler,
	paymentHandler *handlers.PaymentHandler,
	campaignHandler *handlers.CampaignHandler,
	withdrawalHandler *handlers.WithdrawalHandler,
	rewardHandler *handlers.RewardHandler,
	accountHandler *handlers.AccountHandler,
	revenueHandler *handlers.RevenueHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID, X-Callback-Secret",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Provider webhook (public, gated by shared secret inside the handler)
	api.Post("/payments/callback", paymentHandler.Callback)

	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))

	// Donations
	protected.Post("/donations", middleware.RequirePermission(rbac.PermDonate), donationHandler.CreateDonation)
	protected.Get("/donations/fees", middleware.AdminMiddleware(), donationHandler.GetFeeSummary)
	protected.Get("/donations/campaign/:id", donationHandler.ListByCampaign)
	protected.Get("/donations/:id", donationHandler.GetDonation)

	// Campaigns
	protected.Post("/campaigns", middleware.RequirePermission(rbac.PermCreateCampaign), campaignHandler.CreateCampaign)
	protected.Get("/campaigns", campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id/approve", middleware.RequirePermission(rbac.PermApproveCampaign), campaignHandler.ApproveCampaign)
	protected.Put("/campaigns/:id/reject", middleware.RequirePermission(rbac.PermApproveCampaign), campaignHandler.RejectCampaign)

	// Withdrawals
	protected.Post("/withdrawals/request", middleware.RequirePermission(rbac.PermRequestWithdraw), withdrawalHandler.RequestWithdrawal)
	protected.Put("/withdrawals/:id/approve", middleware.RequirePermission(rbac.PermResolveWithdraw), withdrawalHandler.ApproveWithdrawal)
	protected.Put("/withdrawals/:id/reject", middleware.RequirePermission(rbac.PermResolveWithdraw), withdrawalHandler.RejectWithdrawal)
	protected.Put("/withdrawals/:id/testimony", withdrawalHandler.SubmitTestimony)
	protected.Get("/withdrawals/campaign/:id", withdrawalHandler.ListByCampaign)
	protected.Get("/withdrawals/:id", withdrawalHandler.GetWithdrawal)

	// Rewards
	protected.Get("/rewards", rewardHandler.ListRewards)
	protected.Post("/rewards", middleware.RequirePermission(rbac.PermManageRewards), rewardHandler.CreateReward)
	protected.Post("/rewards/:id/redeem", middleware.RequirePermission(rbac.PermRedeemReward), rewardHandler.RedeemReward)

	// Accounts
	protected.Get("/accounts/:id", accountHandler.GetAccount)
	protected.Get("/accounts/:id/points", accountHandler.GetPoints)

	// Revenue (admin)
	protected.Get("/revenue/campaign/:id", middleware.RequirePermission(rbac.PermViewRevenue), revenueHandler.ListByCampaign)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
