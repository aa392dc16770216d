package external

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEmailProvider logs instead of delivering. Wired when
// FEATURE_ENABLE_EMAIL is off so local stacks never need SendGrid
// credentials.
type NoopEmailProvider struct {
	Logger *slog.Logger
}

// Send logs the would-be delivery and returns a synthetic message ID.
func (n *NoopEmailProvider) Send(ctx context.Context, email Email) (string, error) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "email delivery disabled; dropping message",
		"to", email.ToEmail,
		"subject", email.Subject,
	)
	return "noop-" + uuid.NewString(), nil
}

var _ EmailProvider = (*NoopEmailProvider)(nil)
