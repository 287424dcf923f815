package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/Apolar-scc/Hava-Durumu/internal/api/http"
	"github.com/Apolar-scc/Hava-Durumu/internal/cache"
	"github.com/Apolar-scc/Hava-Durumu/internal/catalog"
	"github.com/Apolar-scc/Hava-Durumu/internal/config"
	"github.com/Apolar-scc/Hava-Durumu/internal/locations"
	"github.com/Apolar-scc/Hava-Durumu/internal/scheduler"
	"github.com/Apolar-scc/Hava-Durumu/internal/weather"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Static fallback dataset, bootstrap-created when absent.
	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	// Persisted response cache, starting empty when absent.
	store, err := cache.Open(cfg.CacheFile, cfg.CacheTTL)
	if err != nil {
		log.Fatalf("failed to open cache: %v", err)
	}

	// User-managed location list.
	list, err := locations.Open(cfg.LocationsFile)
	if err != nil {
		log.Fatalf("failed to open location list: %v", err)
	}

	// Remote source is optional: without a credential every request goes
	// straight to the catalog fallback.
	var source weather.Source
	if cfg.OpenWeatherAPIKey != "" {
		httpClient := &http.Client{Timeout: cfg.FetchTimeout}
		source = weather.NewOpenWeatherSource(httpClient, cfg.OpenWeatherAPIKey)
	} else {
		log.Println("OPENWEATHER_API_KEY not set; serving catalog fallback only")
	}

	// Single fetch worker serializing all outbound acquisition.
	worker := weather.NewWorker(source, cat, store, cfg.FetchTimeout)
	worker.Start()

	// Request gateway consulted by the HTTP surface and the scheduler.
	service := weather.NewService(store, worker)

	// Optional background refresh of the saved locations.
	sched := scheduler.New(list, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "hava-durumu",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          30 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "hava-durumu",
		})
	})

	httpapi.RegisterRoutes(app, service, list)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}

	// Drain the queue and stop the worker last so in-flight requests still
	// resolve and persist.
	worker.Stop()
}
