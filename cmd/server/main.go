package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/frequencyai/member-platform/internal/auth"
	"github.com/frequencyai/member-platform/internal/auth/mailer"
	"github.com/frequencyai/member-platform/internal/dashboard"
	"github.com/frequencyai/member-platform/internal/domain"
	"github.com/frequencyai/member-platform/internal/httpd"
	"github.com/frequencyai/member-platform/internal/platform"
	"github.com/frequencyai/member-platform/internal/repo/postgres"
	"github.com/frequencyai/member-platform/internal/repo/redisstore"
	"github.com/frequencyai/member-platform/pkg/config"
	"github.com/frequencyai/member-platform/pkg/logger"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	client, err := platform.New(ctx, cfg)
	if err != nil {
		if errors.Is(err, domain.ErrNotInitialized) {
			logger.Error("Platform is not configured; set PLATFORM_URL and PLATFORM_API_KEY", "error", err)
		} else {
			logger.Error("Failed to initialize platform client", "error", err)
		}
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Ping(ctx); err != nil {
		logger.Error("Platform backend unreachable", "error", err)
		os.Exit(1)
	}

	pool, _ := client.DB()
	rdb, _ := client.Redis()
	bus, _ := client.Bus()

	// Repositories
	usersRepo := postgres.NewUsersRepo(pool)
	customersRepo := postgres.NewCustomersRepo(pool)
	appointmentsRepo := postgres.NewAppointmentsRepo(pool)
	metricsRepo := postgres.NewMetricsRepo(pool)
	verifyRepo := postgres.NewVerifyRepo(pool)
	sessionsStore := redisstore.NewSessionsStore(rdb)

	// Services
	authService := auth.NewService(usersRepo, customersRepo, verifyRepo, sessionsStore, buildMailer(cfg), cfg)
	dashboardService := dashboard.NewService(appointmentsRepo, metricsRepo, bus)

	// Handlers
	guard := httpd.NewGuard(authService, "/member", client.Configured)
	router := httpd.NewRouter(httpd.RouterDeps{
		Auth:     httpd.NewAuthHandler(authService),
		Member:   httpd.NewMemberHandler(dashboardService),
		Customer: httpd.NewCustomerHandler(customersRepo),
		Contact:  httpd.NewContactHandler(),
		Pages:    httpd.NewPageHandler(),
		Guard:    guard,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down member platform...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting member platform", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}

// buildMailer picks the real MailerSend sender when a key is configured
// and dev mode is off; otherwise emails go to the logs.
func buildMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode || cfg.Email.MailerSendKey == "" {
		logger.Info("Email dev mode: verification emails will be logged, not sent")
		return mailer.NewDevMailer()
	}

	ms, err := mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	if err != nil {
		logger.Warn("Failed to configure MailerSend, falling back to log mailer", "error", err)
		return mailer.NewDevMailer()
	}
	return ms
}
