package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medibridge/medibridge/internal/config"
	"github.com/medibridge/medibridge/internal/domain/handoff"
	"github.com/medibridge/medibridge/internal/domain/records"
	"github.com/medibridge/medibridge/internal/domain/user"
	"github.com/medibridge/medibridge/internal/platform/auth"
	"github.com/medibridge/medibridge/internal/platform/db"
	"github.com/medibridge/medibridge/internal/platform/httpx"
	"github.com/medibridge/medibridge/internal/platform/middleware"
	"github.com/medibridge/medibridge/internal/platform/notification"
	"github.com/medibridge/medibridge/internal/platform/token"
)

const version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "medibridge-server",
		Short: "MediBridge patient and doctor portal API",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}
	var migrationsDir string
	migrate.PersistentFlags().StringVar(&migrationsDir, "dir", "migrations", "migrations directory")

	migrateUp := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationsDir, false)
		},
	}
	migrateStatus := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(migrationsDir, true)
		},
	}
	migrate.AddCommand(migrateUp, migrateStatus)
	root.AddCommand(serve, migrate)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
	return logger
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	issuer := token.NewIssuer([]byte(cfg.JWTSecret))

	userRepo := user.NewRepoPG(pool)
	userSvc := user.NewService(userRepo, issuer)
	userHandler := user.NewHandler(userSvc)

	recSvc := records.NewService(
		records.NewAppointmentRepoPG(pool),
		records.NewLabReportRepoPG(pool),
		records.NewMedicationRepoPG(pool),
		records.NewInsuranceRepoPG(pool),
		records.NewMedicalRecordRepoPG(pool),
		records.NewGlucoseTrendRepoPG(pool),
		records.NewHealthMonitoringRepoPG(pool),
	)

	notifier := notification.NewLogNotifier(logger)
	handoffSvc := handoff.NewService(userSvc, recSvc, notifier, logger)
	handoffHandler := handoff.NewHandler(handoffSvc, userSvc, recSvc, issuer)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpx.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok", "version": version})
	})

	api := e.Group("/api")
	userGroup := api.Group("/user")
	doctorGroup := api.Group("/doctor")

	userHandler.RegisterRoutes(userGroup)
	handoffHandler.RegisterHandoffRoutes(userGroup, doctorGroup)

	protected := api.Group("/user", auth.Middleware(issuer))
	handoffHandler.RegisterPatientRoutes(protected)

	go func() {
		logger.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(dir string, statusOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := newLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, 2, 1)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	m := db.NewMigrator(pool, dir)
	if statusOnly {
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, st := range statuses {
			state := "pending"
			if st.Applied {
				state = "applied"
			}
			fmt.Printf("%04d  %-10s %s\n", st.Version, state, st.Name)
		}
		return nil
	}

	applied, err := m.Up(ctx)
	if err != nil {
		return err
	}
	logger.Info().Int("applied", applied).Msg("migrations complete")
	return nil
}
