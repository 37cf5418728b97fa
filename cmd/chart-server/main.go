package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/icuchart/icuchart/internal/config"
	"github.com/icuchart/icuchart/internal/domain/account"
	"github.com/icuchart/icuchart/internal/domain/bundle"
	"github.com/icuchart/icuchart/internal/domain/handover"
	"github.com/icuchart/icuchart/internal/domain/patient"
	"github.com/icuchart/icuchart/internal/domain/vitals"
	"github.com/icuchart/icuchart/internal/platform/auth"
	"github.com/icuchart/icuchart/internal/platform/db"
	"github.com/icuchart/icuchart/internal/platform/middleware"
	"github.com/icuchart/icuchart/internal/platform/ws"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "chart-server",
		Short: "ICU patient charting API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the chart API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("migrations")
			return runServer(dir)
		},
	}
	cmd.Flags().String("migrations", "migrations", "Path to the migrations directory")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := connect()
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d migration(s)\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "migrations", "Path to the migrations directory")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, err := connect()
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(context.Background())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied && s.AppliedAt != nil {
					state = "applied " + s.AppliedAt.Format(time.RFC3339)
				}
				fmt.Printf("%3d  %-30s %s\n", s.Version, s.Name, state)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "migrations", "Path to the migrations directory")

	cmd.AddCommand(upCmd)
	cmd.AddCommand(statusCmd)
	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert reference bundles and sample patients if the tables are empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

			pool, err := connect()
			if err != nil {
				return err
			}
			defer pool.Close()

			return db.Seed(context.Background(), pool, logger)
		},
	}
}

func connect() (*pgxpool.Pool, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return db.NewPool(context.Background(), cfg)
}

func runServer(migrationsDir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Schema and seed data are applied on every boot; both are no-ops once
	// the database is populated.
	if count, err := db.NewMigrator(pool, migrationsDir).Up(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	} else if count > 0 {
		logger.Info().Int("applied", count).Msg("applied migrations")
	}
	if err := db.Seed(ctx, pool, logger); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed reference data")
	}

	// Token issuer is process-wide: one secret, one TTL, injected into the
	// account service and the auth middleware.
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})

	// Open routes: register and login only.
	api := e.Group("/api")
	accountHandler := account.NewHandler(account.NewService(account.NewUserRepo(pool), tokens))
	accountHandler.RegisterRoutes(api)

	// Everything else requires a valid capability token.
	protected := api.Group("", auth.RequireToken(tokens))
	patient.NewHandler(patient.NewService(patient.NewRepo(pool))).RegisterRoutes(protected)
	vitals.NewHandler(vitals.NewService(vitals.NewRepo(pool))).RegisterRoutes(protected)
	bundle.NewHandler(bundle.NewService(bundle.NewRepo(pool))).RegisterRoutes(protected)
	handover.NewHandler(handover.NewService(handover.NewRepo(pool))).RegisterRoutes(protected)

	// Live vitals feed (synthetic demo data, per-connection timer).
	ws.NewFeed(logger).RegisterRoutes(e)

	// Start server
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("server starting")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
