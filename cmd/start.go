package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storage-bridge/core/broker"
	"storage-bridge/core/config"
	"storage-bridge/core/database"
	"storage-bridge/core/loader"
	"storage-bridge/core/logger"
	"storage-bridge/core/middleware/auth"
	"storage-bridge/core/middleware/rayid"
	"storage-bridge/core/storage"

	"storage-bridge/feature/assets"
	"storage-bridge/feature/bridge"
	"storage-bridge/feature/chat"
	"storage-bridge/feature/inventory"
	"storage-bridge/feature/search"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "storage-bridge/docs/swagger"
)

// @title Storage Bridge API
// @version 1.0
// @description Operator API for the in-game storage bridge: inventory, limits, search and chat.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bridge and the operator API",
	Long: `Starts the storage-system socket, the observer socket, the limit evaluation
scheduler and the operator HTTP API.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err), zap.String("driver", cfg.Database.Driver))
		}
		store := inventory.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			logg.Fatal("Failed to migrate inventory tables", zap.Error(err))
		}

		// 4. Observer mirror (Optional)
		var publisher bridge.Publisher
		var redisPub *broker.Publisher
		if cfg.Redis.Enabled {
			client, err := broker.Connect(ctx, cfg.Redis)
			if err != nil {
				logg.Warn("Redis unavailable, observer events stay local", zap.Error(err))
			} else {
				redisPub = broker.NewPublisher(client, cfg.Redis.Channel, time.Duration(cfg.Redis.TimeoutSeconds)*time.Second)
				publisher = redisPub
				logg.Info("Mirroring observer events to redis", zap.String("channel", redisPub.Channel()))
			}
		}

		// 5. Bridge core
		hub := bridge.NewHub(publisher, logg)
		emitter := bridge.NewEmitter(cfg.Bridge, logg)

		index := search.NewIndex(store, logg)
		if err := index.Rebuild(ctx); err != nil {
			logg.Warn("Initial search index build failed", zap.Error(err))
		}

		invService := inventory.NewService(store, emitter, index, logg)

		chatService := chat.NewService(db, emitter, hub, logg)
		if err := chatService.Migrate(ctx); err != nil {
			logg.Fatal("Failed to migrate chat table", zap.Error(err))
		}

		processor := bridge.NewProcessor(inventory.NewReconciler(store), invService, emitter, hub, index, logg)
		bridgeServer := bridge.NewServer(cfg.Bridge, processor, emitter, hub, chatService, logg)

		var scheduler *bridge.Scheduler
		if interval := cfg.Bridge.EvaluateInterval(); interval > 0 {
			scheduler = bridge.NewScheduler(processor, interval, logg)
			if err := scheduler.Start(ctx); err != nil {
				logg.Fatal("Failed to start limit evaluation", zap.Error(err))
			}
		}

		// 6. Initialize Storage (Optional, only the asset import needs it)
		var objects storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable, asset import disabled", zap.Error(err))
		} else {
			objects = client
		}
		assetService := assets.NewService(objects, cfg.Storage.Bucket, cfg.Assets, store, index, logg)

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// RayID first so every log line can be traced.
		app.Use(rayid.New())
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Debug("Request started",
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

		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok", "storageConnections": emitter.Connected()})
		})
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{
			ApiKey:         cfg.Server.ApiKey,
			PublicPrefixes: []string{"/health", "/swagger"},
		}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, operator API is unauthenticated")
		}

		// 8. Load Features
		mgr := loader.NewManager()
		mgr.Register(inventory.NewFeature(invService))
		mgr.Register(search.NewFeature(index))
		mgr.Register(chat.NewFeature(chatService))
		mgr.Register(bridge.NewFeature(processor, emitter, hub))
		mgr.Register(assets.NewFeature(assetService))

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 9. Start Servers, stop on SIGINT/SIGTERM or when either server fails
		runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		g, gctx := errgroup.WithContext(runCtx)
		g.Go(bridgeServer.ListenAndServe)
		g.Go(func() error {
			logg.Info("Starting operator API", zap.String("port", cfg.Server.Port))
			return app.Listen(cfg.Server.Addr())
		})

		// 10. Graceful Shutdown
		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down...")

			if scheduler != nil {
				scheduler.Stop()
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := bridgeServer.Shutdown(shutdownCtx); err != nil {
				logg.Warn("Bridge shutdown incomplete", zap.Error(err))
			}
			return app.ShutdownWithTimeout(5 * time.Second)
		})

		if err := g.Wait(); err != nil {
			logg.Error("Server stopped with error", zap.Error(err))
		}

		hub.Close()
		if redisPub != nil {
			_ = redisPub.Close()
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
