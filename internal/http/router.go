package http

import (
	"time"

	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/http/handlers"
	"github.com/adforge/backend/internal/middleware"
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
	sessionHandler *handlers.SessionHandler,
	settingsHandler *handlers.SettingsHandler,
	metaHandler *handlers.MetaHandler,
	contentHandler *handlers.ContentHandler,
	campaignHandler *handlers.CampaignHandler,
	runHandler *handlers.RunHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api/v1")

	// Session bootstrap (public)
	api.Post("/auth/session", sessionHandler.CreateSession)

	// Rate-limited public endpoints
	api.Use(middleware.RateLimitMiddleware(rdb, 100, time.Minute))

	// Catalogs (public, no auth required)
	catalogHandler := handlers.NewCatalogHandler()
	api.Get("/catalog/objectives", catalogHandler.GetObjectives)
	api.Get("/catalog/call-to-actions", catalogHandler.GetCallToActions)
	api.Get("/catalog/countries", catalogHandler.GetCountries)

	// Protected endpoints
	protected := api.Group("", middleware.SessionMiddleware(cfg, log))

	// Session settings
	protected.Get("/settings", settingsHandler.GetSettings)
	protected.Put("/settings", settingsHandler.UpdateSettings)

	// Meta account discovery
	protected.Get("/meta/check-access", metaHandler.CheckAccess)
	protected.Get("/meta/ad-account", metaHandler.GetAdAccount)
	protected.Get("/meta/page", metaHandler.GetPage)

	// Content generation
	protected.Post("/content/generate", contentHandler.GenerateContent)
	protected.Get("/content", contentHandler.GetContent)

	// Campaign pipeline
	protected.Post("/campaigns", campaignHandler.LaunchCampaign)
	protected.Get("/campaigns/:id", campaignHandler.GetCampaign)

	// Runs
	protected.Get("/runs/current", runHandler.GetCurrentRun)
	protected.Get("/runs/:id", runHandler.GetRun)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
