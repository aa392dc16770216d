// Package main is the entry point for the golf physics API server.
//
// It loads configuration, connects the backing services (Postgres, Redis,
// SQS, CloudWatch, the upstream weather/billing/captcha providers), builds
// the HTTP server on the core chassis, and serves until a shutdown signal.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/go-chi/chi/v5"

	"golfphysics/internal/api/handlers"
	"golfphysics/internal/auth"
	"golfphysics/internal/billing"
	"golfphysics/internal/config"
	"golfphysics/internal/core"
	"golfphysics/internal/db"
	"golfphysics/internal/external"
	"golfphysics/internal/physics"
	"golfphysics/internal/queue"
	"golfphysics/internal/ratelimit"
	"golfphysics/internal/telemetry"
	"golfphysics/internal/types"
	"golfphysics/internal/usage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so that main() can cleanly exit on error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("golf physics API starting",
		"environment", cfg.Environment,
		"version", cfg.Build.Version,
		"commit", cfg.Build.Commit,
		"port", cfg.Server.Port,
	)

	ctx := context.Background()

	// Postgres.
	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	clientRepo := db.NewClientRepository(pool)
	leadRepo := db.NewLeadRepository(pool)
	usageRepo := db.NewUsageRepository(pool)

	// Background retention sweep for raw request logs.
	pruneCtx, stopPruner := context.WithCancel(ctx)
	defer stopPruner()
	go usage.NewPruner(usageRepo, logger).Run(pruneCtx)

	// Redis rate limiter. A nil store means no Redis configured; the
	// middleware then allows everything.
	limiter, err := ratelimit.NewStore(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}

	// AWS clients (SQS for email jobs, CloudWatch for metrics).
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return fmt.Errorf("loading AWS configuration: %w", err)
	}
	awsOpts := localstackOverride(cfg.AWS)
	sqsClient := sqs.NewFromConfig(awsCfg, awsOpts.sqs...)
	cwClient := cloudwatch.NewFromConfig(awsCfg, awsOpts.cloudwatch...)

	var metrics *telemetry.Collector
	if cfg.Observability.EnableMetrics {
		metrics = telemetry.NewCollector(cwClient, cfg.Observability.MetricNamespace, logger)
	}

	emailProducer := queue.NewEmailProducer(sqsClient, cfg.AWS, logger)

	// Upstream clients.
	weatherClient := external.NewWeatherClient(
		&http.Client{Timeout: cfg.Weather.Timeout},
		external.WeatherClientConfig{
			APIKey:  cfg.Weather.APIKey.Unmask(),
			BaseURL: cfg.Weather.BaseURL,
			Logger:  logger,
		},
	)
	stripeClient := external.NewStripeClient(
		&http.Client{Timeout: 20 * time.Second},
		external.StripeClientConfig{
			SecretKey: cfg.Billing.StripeSecretKey.Unmask(),
			Logger:    logger,
		},
	)
	captcha := external.NewRecaptchaClient(
		&http.Client{Timeout: 10 * time.Second},
		external.RecaptchaClientConfig{
			Secret: cfg.Security.RecaptchaSecret.Unmask(),
			Logger: logger,
		},
	)
	if !captcha.Enabled() {
		logger.Warn("reCAPTCHA secret not configured; captcha checks are disabled")
	}

	// Billing.
	priceIDs, err := cfg.Billing.ParsePriceIDs()
	if err != nil {
		return fmt.Errorf("parsing Stripe price IDs: %w", err)
	}
	planRegistry := billing.NewStaticPlanRegistry()
	billingService := billing.NewService(stripeClient, clientRepo, emailProducer, planRegistry, priceIDs, logger)
	webhookVerifier := external.NewStripeWebhookVerifier(cfg.Billing.StripeWebhookSecret.Unmask())

	// Physics engine.
	var engineMetrics types.MetricsCollector
	if metrics != nil {
		engineMetrics = metrics
	}
	engine := physics.NewEngine(engineMetrics, &slogAdapter{logger: logger})

	// Server chassis.
	srv, err := core.NewServer(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	srv.Authenticator = auth.NewService(clientRepo, logger)
	srv.AdminVerifier = auth.NewAdminVerifier(cfg.Security.AdminKeyHash.Unmask())
	srv.LimitForTier = billing.PerMinuteLimit(planRegistry)
	srv.DailyLimitForTier = billing.PerDayLimit(planRegistry)
	srv.Usage = usage.NewRecorder(usageRepo, logger)
	srv.HealthProbes = []core.HealthProbe{&db.Probe{Pool: pool}}
	if metrics != nil {
		srv.Metrics = metrics
	}
	if limiter != nil {
		srv.RateLimitStore = limiter
		srv.HealthProbes = append(srv.HealthProbes, &ratelimit.Probe{Store: limiter})
	}

	// Domain handlers.
	trajectoryHandler := handlers.NewTrajectoryHandler(engine, weatherClient, srv.Validator, logger)
	conditionsHandler := handlers.NewConditionsHandler(weatherClient, logger)
	contactHandler := handlers.NewContactHandler(leadRepo, emailProducer, captcha, cfg.Email.AdminAddress, srv.Validator, logger)
	apiKeyHandler := handlers.NewAPIKeyHandler(clientRepo, leadRepo, emailProducer, captcha, planRegistry,
		cfg.Email.AdminAddress, cfg.Server.DocsURL, srv.Validator, logger)
	adminHandler := handlers.NewAdminHandler(clientRepo, usageRepo, leadRepo, srv.Validator, logger)
	billingHandler := handlers.NewBillingHandler(billingService, webhookVerifier, srv.Validator, logger)

	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars,
		trajectoryHandler.RegisterRoutes,
		conditionsHandler.RegisterRoutes,
		contactHandler.RegisterRoutes,
		apiKeyHandler.RegisterRoutes,
		billingHandler.RegisterRoutes,
		func(r chi.Router) {
			adminHandler.RegisterRoutes(r, srv.RequireAdmin)
		},
	)

	srv.MountRoutes()

	return runHTTPServer(srv, cfg, logger)
}

// runHTTPServer starts the server in standard HTTP mode with graceful shutdown.
func runHTTPServer(srv *core.Server, cfg *config.Config, logger *slog.Logger) error {
	addr := ":" + cfg.Server.Port

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-shutdown:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	logger.Info("initiating graceful shutdown")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped cleanly")
	return nil
}

// awsClientOpts carries per-service option overrides.
type awsClientOpts struct {
	sqs        []func(*sqs.Options)
	cloudwatch []func(*cloudwatch.Options)
}

// localstackOverride points the AWS clients at a local endpoint when one is
// configured (LocalStack in development). Empty in production.
func localstackOverride(cfg config.AWSConfig) awsClientOpts {
	if cfg.EndpointURL == "" {
		return awsClientOpts{}
	}
	return awsClientOpts{
		sqs: []func(*sqs.Options){func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}},
		cloudwatch: []func(*cloudwatch.Options){func(o *cloudwatch.Options) {
			o.BaseEndpoint = aws.String(cfg.EndpointURL)
		}},
	}
}

// newLogger creates a structured slog.Logger configured for the given log level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}

// slogAdapter bridges *slog.Logger to the types.Logger interface used by the
// physics engine.
type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Info(msg string, args ...any)  { a.logger.Info(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { a.logger.Error(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { a.logger.Warn(msg, args...) }
func (a *slogAdapter) With(args ...any) types.Logger {
	return &slogAdapter{logger: a.logger.With(args...)}
}
