package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-reporter/internal/api/http"
	"github.com/i474232898/weather-reporter/internal/scheduler"
	"github.com/i474232898/weather-reporter/internal/store"
	"github.com/i474232898/weather-reporter/internal/weather"
	"github.com/i474232898/weather-reporter/internal/weather/sources"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and reload configured datasets periodically",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Shared HTTP client for remote weather logs.
		httpClient := &http.Client{
			Timeout: cfg.HTTPTimeout,
		}

		memStore := store.NewMemoryStore(cfg.StoreMaxDatasets)

		var srcs []weather.Source
		for _, ds := range cfg.Datasets {
			srcs = append(srcs, sources.New(ds.Name, ds.Location, httpClient))
		}

		sched := scheduler.New(srcs, cfg.ReloadInterval, cfg.NormalizeOptions(), memStore)
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		app := fiber.New(fiber.Config{
			AppName:               "weather-reporter",
			DisableStartupMessage: true,
			ReadTimeout:           10 * time.Second,
			WriteTimeout:          10 * time.Second,
			BodyLimit:             64 * 1024 * 1024,
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
				"status":   "ok",
				"service":  "weather-reporter",
				"datasets": len(memStore.List()),
			})
		})

		httpapi.RegisterRoutes(app, memStore, httpapi.Settings{
			Normalize:      cfg.NormalizeOptions(),
			StationName:    cfg.StationName,
			PrimaryField:   cfg.PrimaryField,
			SecondaryField: cfg.SecondaryField,
		})

		go func() {
			log.Info().Str("Port", cfg.Port).Msg("listening")
			if err := app.Listen(":" + cfg.Port); err != nil {
				log.Error().Err(err).Msg("fiber server stopped")
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("error during shutdown")
		}
		return nil
	},
}
