package cmd

import (
	"log"

	"testset-sync/core/config"
	"testset-sync/core/loader"
	"testset-sync/core/logger"
	"testset-sync/core/middleware/auth"
	"testset-sync/core/middleware/rayid"

	"testset-sync/feature/integrity"
	"testset-sync/feature/sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "testset-sync/docs/swagger"
)

// @title Test Set Sync API
// @version 1.0
// @description API for applying automated test results to test-management test sets.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the sync server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect database and storage
		rt, err := buildRuntime(cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize test repository", zap.Error(err))
		}
		defer rt.close()
		logg.Info("Connected to test-management database", zap.String("repository", cfg.Repository.Host))

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 4. Register Features
		svc := sync.NewService(rt.repo, rt.source, *specFromConfig(cfg), logg)
		if rt.archiver != nil {
			svc.WithArchiver(rt.archiver)
		}
		mgr := loader.NewManager()
		mgr.Register(sync.NewFeature(svc))
		mgr.Register(integrity.NewFeature(rt.db, rt.store, cfg.Storage.Bucket, storageFolders(cfg), logg))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		if cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty; the API is unauthenticated")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		<-cmd.Context().Done()
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
