package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// ClientStore is the data access the checkout flow needs.
// Implemented by db.ClientRepository.
type ClientStore interface {
	GetByClientID(ctx context.Context, clientID string) (*types.APIClient, error)
	UpdateTier(ctx context.Context, clientID string, tier types.PlanTier) error
}

// EmailEnqueuer publishes email jobs for the worker.
// Implemented by queue.EmailProducer.
type EmailEnqueuer interface {
	Enqueue(ctx context.Context, job types.EmailJob) error
}

// Service drives plan upgrades: creating Checkout sessions and applying
// completed payments from the Stripe webhook.
type Service struct {
	checkout external.CheckoutProvider
	clients  ClientStore
	emails   EmailEnqueuer
	registry PlanRegistry
	priceIDs map[types.PlanTier]string
	logger   *slog.Logger
	clock    types.Clock
}

// NewService creates the billing service. priceIDs comes from
// config.BillingConfig.ParsePriceIDs; tiers absent from the map cannot be
// purchased. emails may be nil, which skips the upgrade confirmation.
func NewService(
	checkout external.CheckoutProvider,
	clients ClientStore,
	emails EmailEnqueuer,
	registry PlanRegistry,
	priceIDs map[types.PlanTier]string,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		checkout: checkout,
		clients:  clients,
		emails:   emails,
		registry: registry,
		priceIDs: priceIDs,
		logger:   logger,
		clock:    types.RealClock{},
	}
}

// CreateCheckout builds a Checkout session upgrading the calling client to
// the requested tier.
func (s *Service) CreateCheckout(ctx context.Context, actor types.Actor, req types.CheckoutRequest) (*types.CheckoutResponse, error) {
	if !req.Tier.Valid() || req.Tier == types.TierDeveloper {
		return nil, types.NewAppError(
			types.ErrCodeValidationBody,
			fmt.Sprintf("tier %q is not purchasable", req.Tier),
			nil,
		)
	}

	priceID, ok := s.priceIDs[req.Tier]
	if !ok {
		// Enterprise is typically sales-led rather than self-serve.
		return nil, types.NewAppError(
			types.ErrCodeValidationBody,
			fmt.Sprintf("tier %q is not available for self-serve checkout", req.Tier),
			nil,
		)
	}

	client, err := s.clients.GetByClientID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	resp, err := s.checkout.CreateCheckoutSession(ctx, external.CheckoutSessionParams{
		ClientID:   client.ClientID,
		Email:      client.Email,
		Tier:       req.Tier,
		PriceID:    priceID,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "checkout session created",
		"client_id", client.ClientID,
		"tier", req.Tier,
		"session_id", resp.SessionID,
	)
	return resp, nil
}

// ApplyCheckoutCompletion upgrades the client's tier after Stripe confirms
// payment, then queues the upgrade confirmation email. The email is best
// effort; the tier change is the part that must land.
func (s *Service) ApplyCheckoutCompletion(ctx context.Context, completion external.CheckoutCompletion) error {
	if err := s.clients.UpdateTier(ctx, completion.ClientID, completion.Tier); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "plan upgraded",
		"client_id", completion.ClientID,
		"tier", completion.Tier,
	)

	if s.emails == nil {
		return nil
	}

	client, err := s.clients.GetByClientID(ctx, completion.ClientID)
	if err != nil {
		s.logger.WarnContext(ctx, "upgraded client lookup failed; skipping confirmation email",
			"client_id", completion.ClientID,
			"error", err,
		)
		return nil
	}

	limits := s.registry.GetLimits(completion.Tier)
	job := types.EmailJob{
		JobID:   uuid.NewString(),
		Kind:    types.EmailPlanUpgraded,
		ToEmail: client.Email,
		ToName:  client.Name,
		Data: map[string]string{
			"name":                client.Name,
			"tier":                string(completion.Tier),
			"requests_per_minute": formatLimit(limits.RequestsPerMinute),
			"requests_per_day":    formatLimit(limits.RequestsPerDay),
		},
		RequestID:  types.GetRequestID(ctx),
		EnqueuedAt: s.clock.Now(),
	}
	if err := s.emails.Enqueue(ctx, job); err != nil {
		s.logger.WarnContext(ctx, "failed to queue plan upgrade email",
			"client_id", completion.ClientID,
			"error", err,
		)
	}
	return nil
}

// formatLimit renders a limit for email templates, spelling out unlimited.
func formatLimit(n int) string {
	if n <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%d", n)
}
