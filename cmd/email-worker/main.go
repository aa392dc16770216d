// Package main is the entry point for the email worker.
//
// The worker long-polls the email SQS queue, renders each EmailJob against
// the transactional template set, and delivers it through SendGrid. Failed
// sends are re-published with a backoff delay; rendering failures are
// dropped because the template set is static.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"golfphysics/internal/config"
	"golfphysics/internal/email"
	"golfphysics/internal/external"
	"golfphysics/internal/queue"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("email worker starting",
		"environment", cfg.Environment,
		"queue_url", cfg.AWS.EmailQueueURL,
		"email_enabled", cfg.Email.Enabled,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		return fmt.Errorf("loading AWS configuration: %w", err)
	}
	var sqsOpts []func(*sqs.Options)
	if cfg.AWS.EndpointURL != "" {
		sqsOpts = append(sqsOpts, func(o *sqs.Options) {
			o.BaseEndpoint = aws.String(cfg.AWS.EndpointURL)
		})
	}
	sqsClient := sqs.NewFromConfig(awsCfg, sqsOpts...)

	var provider external.EmailProvider
	if cfg.Email.Enabled {
		provider = external.NewSendGridClient(
			&http.Client{Timeout: 10 * time.Second},
			external.SendGridClientConfig{
				APIKey:      cfg.Email.SendGridAPIKey.Unmask(),
				FromAddress: cfg.Email.FromAddress,
				FromName:    cfg.Email.FromName,
				Logger:      logger,
			},
		)
	} else {
		logger.Warn("email delivery disabled; messages will be logged and dropped")
		provider = &external.NoopEmailProvider{Logger: logger}
	}

	renderer := email.NewRenderer(cfg.Server.DocsURL)
	worker := queue.NewWorker(sqsClient, cfg.AWS, renderer, provider, logger)

	if err := worker.Run(ctx); err != nil {
		return fmt.Errorf("worker stopped: %w", err)
	}

	logger.Info("email worker stopped cleanly")
	return nil
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
