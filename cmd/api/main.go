package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/itimpact/spendx/internal/config"
	"github.com/itimpact/spendx/internal/db"
	"github.com/itimpact/spendx/internal/handlers"
	"github.com/itimpact/spendx/internal/logger"
	"github.com/itimpact/spendx/internal/services"
	"github.com/itimpact/spendx/internal/validator"
)

func main() {
	// .env is optional
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Env)
	defer logger.Sync()

	if envErr != nil {
		logger.Get().Info("No .env file found, using environment variables")
	}

	if err := run(cfg); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close(conn)

	migrations := db.NewMigrationRunner(conn, cfg.Database.MigrationsPath)
	if err := migrations.WaitForDatabase(); err != nil {
		return err
	}
	if err := migrations.RunMigrations(); err != nil {
		return err
	}

	recorder := services.NewInvestmentRecorder(conn, cfg.Recorder.Workers, cfg.Recorder.QueueSize)
	recorder.Start()
	defer recorder.Stop()

	investmentSummaries := services.NewInvestmentSummaryService(conn)

	gin.SetMode(cfg.Server.GinMode)
	validator.Register()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(conn, "spendx"),
	)

	router := handlers.NewRouter(handlers.RouterOptions{
		Summaries:      handlers.NewSummaryHandler(investmentSummaries, services.NewUserSummaryService(conn)),
		Users:          handlers.NewUserHandler(services.NewUserService(conn, 0)),
		Investments:    handlers.NewInvestmentHandler(recorder),
		Feed:           handlers.NewSummaryFeed(investmentSummaries, cfg.Feed.Interval),
		Registry:       registry,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server starting on http://localhost:%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
