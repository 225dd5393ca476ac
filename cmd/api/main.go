package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adforge/backend/internal/config"
	"github.com/adforge/backend/internal/db"
	"github.com/adforge/backend/internal/events"
	apphttp "github.com/adforge/backend/internal/http"
	"github.com/adforge/backend/internal/http/handlers"
	"github.com/adforge/backend/internal/llm"
	"github.com/adforge/backend/internal/metaads"
	"github.com/adforge/backend/internal/services"
	"github.com/adforge/backend/internal/sessions"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	log, _ := cfg.Build()
	return log
}

func main() {
	cfg := config.Load()

	log := newLogger(cfg.LogLevel)
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Session store
	store := sessions.NewStore(rdb, cfg.SessionTTL, log)

	// External clients
	metaClient := metaads.NewClient(cfg.GraphBaseURL, log)
	generator := llm.NewTogetherClient(cfg.TogetherBaseURL, cfg.TogetherAPIKey, log)

	// Services
	settingsService := services.NewSettingsService(store, cfg)
	contentService := services.NewContentService(generator, settingsService, store, publisher, log)
	pipelineService := services.NewPipelineService(metaClient, store, publisher, log)

	// Handlers
	sessionHandler := handlers.NewSessionHandler(cfg, log)
	settingsHandler := handlers.NewSettingsHandler(settingsService, log)
	metaHandler := handlers.NewMetaHandler(metaClient, settingsService, log)
	contentHandler := handlers.NewContentHandler(contentService, store, log)
	campaignHandler := handlers.NewCampaignHandler(pipelineService, settingsService, metaClient, store, log)
	runHandler := handlers.NewRunHandler(store, log)
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

	apphttp.SetupRouter(app, cfg, log, rdb, sessionHandler, settingsHandler, metaHandler, contentHandler, campaignHandler, runHandler, wsHub)

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
