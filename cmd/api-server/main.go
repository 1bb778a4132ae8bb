package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmhub/database"
	"filmhub/internal/config"
	"filmhub/internal/logging"
	"filmhub/internal/microservices/http-api/handler"
	"filmhub/internal/microservices/http-api/middleware"
	"filmhub/internal/microservices/http-api/repository"
	"filmhub/internal/microservices/http-api/service"
	"filmhub/internal/notify"

	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open GORM DB and migrate the schema
	gdb, err := database.OpenGorm(cfg, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.AdminEmail != "" {
		if err := database.SeedAdmin(ctx, gdb, cfg.AdminEmail, cfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	// Domain events go to Redis when configured
	var pub notify.Publisher = notify.NopPublisher{}
	if cfg.RedisURL != "" {
		rp, err := notify.NewRedisPublisher(cfg.RedisURL, notify.DefaultChannel)
		if err != nil {
			logger.Warn("redis unavailable, events disabled", "error", err)
		} else {
			pub = rp
			logger.Info("publishing events to redis", "channel", notify.DefaultChannel)
		}
	}
	notifier := notify.NewNotifier(pub, logger)
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("close event publisher", "error", err)
		}
	}()

	// Create repositories
	movieRepo := repository.NewMovieRepo(gdb)
	categoryRepo := repository.NewCategoryRepo(gdb)
	ledgerRepo := repository.NewLedgerRepo(gdb)
	commentRepo := repository.NewCommentRepository(gdb)
	proposalRepo := repository.NewProposalRepo(gdb)
	reportRepo := repository.NewReportRepo(gdb)
	userRepo := repository.NewUserRepository(gdb)

	routerCfg := handler.RouterConfig{
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
		DB:             sqlDB,

		Auth:       service.NewAuthService(userRepo, cfg),
		Movies:     service.NewMovieService(movieRepo, categoryRepo, ledgerRepo, notifier),
		Ledger:     service.NewLedgerService(ledgerRepo, movieRepo, commentRepo),
		Comments:   service.NewCommentService(commentRepo, movieRepo),
		Categories: service.NewCategoryService(categoryRepo),
		Proposals:  service.NewProposalService(gdb, proposalRepo, movieRepo, categoryRepo, notifier),
		Reports:    service.NewReportService(reportRepo, proposalRepo),
	}
	if cfg.PrometheusEnabled {
		routerCfg.Metrics = middleware.NewMetrics()
	}
	if cfg.RateLimitRPS > 0 {
		routerCfg.Limiter = middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewRouter(routerCfg)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler.WithCORS(r, cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("api server listening", "addr", srv.Addr, "env", cfg.GoEnv)
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

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
