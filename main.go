package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"game-score-service/config"
	"game-score-service/handlers"
	"game-score-service/middleware"
	"game-score-service/services"
	"game-score-service/store"
	"game-score-service/utils"
	"game-score-service/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("failed to open store:", err)
	}

	generator := services.NewCodeGenerator(db, cfg.CodeMaxAttempts)
	codeService := services.NewCodeService(generator)
	userService := services.NewUserService(db)
	scoreService := services.NewScoreService(db, generator)
	exportService := services.NewExportService(db)

	app := fiber.New(fiber.Config{
		AppName: "game-score-service",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(middleware.CORS(cfg.AllowedOrigins))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})

	handlers.SetupCodeRoutes(app, codeService)
	handlers.SetupUserRoutes(app, userService)
	handlers.SetupScoreRoutes(app, scoreService)
	handlers.SetupExportRoutes(app, exportService)

	if cfg.Archive.Enabled() {
		bucket, err := utils.OpenBucket(ctx, cfg.Archive)
		if err != nil {
			log.Fatal("failed to initialize archive bucket:", err)
		}
		archiver := workers.NewExportArchiveWorker(exportService, bucket, cfg.Archive.Prefix, cfg.Archive.Interval)
		if err := archiver.Start(ctx); err != nil {
			log.Fatal("failed to start export archiver:", err)
		}
		log.Printf("✅ Export archiver running (every %s) to bucket %s", cfg.Archive.Interval, cfg.Archive.Bucket)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", cfg.Port)
	log.Printf("✅ Store backend: %s", cfg.StoreBackend)
	log.Printf("✅ CORS configured for origins: %s", cfg.AllowedOrigins)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pg, err := store.OpenPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case config.BackendDynamo:
		client, err := store.NewDynamoClient(ctx, cfg.AWSRegion, cfg.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoStore(client, store.Tables{
			Codes:       cfg.CodesTable,
			Users:       cfg.UsersTable,
			ScoresStats: cfg.ScoresStatsTable,
			Scores:      cfg.ScoresTable,
		}), nil
	default:
		log.Println("⚠️  Using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), nil
	}
}
