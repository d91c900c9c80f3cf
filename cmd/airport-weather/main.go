package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	httpapi "github.com/i474232898/airport-weather/internal/api/http"
	"github.com/i474232898/airport-weather/internal/config"
	"github.com/i474232898/airport-weather/internal/loader"
	"github.com/i474232898/airport-weather/internal/logging"
	"github.com/i474232898/airport-weather/internal/mqtt"
	"github.com/i474232898/airport-weather/internal/scheduler"
	"github.com/i474232898/airport-weather/internal/store"
	"github.com/i474232898/airport-weather/internal/telemetry"
	"github.com/i474232898/airport-weather/internal/weather"
	"github.com/i474232898/airport-weather/internal/weather/providers"
)

const appName = "airport-weather"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg := logging.New(cfg, appName)
	slog.SetDefault(logg)

	// Core state: registry, latest readings and query counters.
	registry := store.NewAirportRegistry()
	readings := store.NewMemoryStore(registry)
	tracker := telemetry.NewFrequencyTracker(registry)

	if cfg.AirportsFile != "" {
		airports, err := loader.LoadFile(cfg.AirportsFile)
		if err != nil {
			logg.Error("failed to load airports", "file", cfg.AirportsFile, "error", err)
			os.Exit(1)
		}
		if err := registry.Replace(airports); err != nil {
			logg.Error("failed to register airports", "file", cfg.AirportsFile, "error", err)
			os.Exit(1)
		}
		logg.Info("airports loaded", "count", len(airports), "file", cfg.AirportsFile)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker).
	provs := []weather.Provider{providers.NewOpenMeteoProvider(httpClient)}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}

	service := weather.NewService(registry, readings, tracker, provs)
	health := weather.NewHealth(registry, readings, tracker, cfg.LegacyRadiusHistogram)

	sched := scheduler.New(scheduler.Config{
		FetchAirports:  cfg.FetchAirports,
		FetchInterval:  cfg.FetchInterval,
		AirportsFile:   cfg.AirportsFile,
		ReloadInterval: cfg.AirportsReloadInterval,
		HealthInterval: cfg.HealthLogInterval,
	}, service, health, logg)
	if err := sched.Start(); err != nil {
		logg.Error("failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MQTTBroker != "" {
		sub := mqtt.NewSubscriber(cfg, service, logg)
		connectCtx, connectCancel := context.WithTimeout(ctx, 5*time.Second)
		if err := sub.Connect(connectCtx); err != nil {
			logg.Warn("mqtt connection failed (continuing without mqtt)", "error", err)
		}
		connectCancel()
		defer sub.Disconnect()
	}

	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
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

	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": appName,
		})
	})

	httpapi.RegisterRoutes(app, service, health)

	go func() {
		logg.Info("http listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logg.Error("fiber server stopped", "error", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Error("error during shutdown", "error", err)
	}
}
