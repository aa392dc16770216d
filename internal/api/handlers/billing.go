package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stripe/stripe-go/v82"

	"golfphysics/internal/core"
	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// maxWebhookBodySize caps the Stripe webhook payload (64 KB is generous for
// checkout events).
const maxWebhookBodySize = 64 << 10

// CheckoutService creates checkout sessions and applies completed upgrades.
// Implemented by billing.Service.
type CheckoutService interface {
	CreateCheckout(ctx context.Context, actor types.Actor, req types.CheckoutRequest) (*types.CheckoutResponse, error)
	ApplyCheckoutCompletion(ctx context.Context, completion external.CheckoutCompletion) error
}

// WebhookVerifier validates Stripe webhook signatures. Implemented by
// external.StripeWebhookVerifier.
type WebhookVerifier interface {
	VerifyAndParse(payload []byte, sigHeader string) (stripe.Event, error)
}

// BillingHandler serves the checkout endpoint and the Stripe webhook.
type BillingHandler struct {
	service   CheckoutService
	webhooks  WebhookVerifier
	validator *core.Validator
	logger    *slog.Logger
}

// NewBillingHandler creates the billing handler.
func NewBillingHandler(service CheckoutService, webhooks WebhookVerifier, v *core.Validator, l *slog.Logger) *BillingHandler {
	if l == nil {
		l = slog.Default()
	}
	return &BillingHandler{
		service:   service,
		webhooks:  webhooks,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts the billing endpoints on the v1 router. The webhook
// is a public path; it authenticates via the Stripe signature instead of an
// API key.
func (h *BillingHandler) RegisterRoutes(r chi.Router) {
	r.Post("/billing/checkout", h.CreateCheckout)
	r.Post("/billing/webhook", h.Webhook)
}

// CreateCheckout handles POST /v1/billing/checkout. The authenticated client
// picks a paid tier and receives a hosted Stripe Checkout URL.
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	actor, ok := types.GetActor(r.Context())
	if !ok {
		core.Error(w, r, types.NewAppError(types.ErrCodeAuthKeyMissing,
			"authentication required", nil))
		return
	}

	var req types.CheckoutRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	resp, err := h.service.CreateCheckout(r.Context(), actor, req)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, resp)
}

// Webhook handles POST /v1/billing/webhook. The raw body is needed for
// signature verification, so this handler reads it directly instead of going
// through DecodeJSON. Events other than checkout completion are acknowledged
// and ignored.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodySize))
	if err != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationBody,
			"failed to read webhook payload", err))
		return
	}

	event, err := h.webhooks.VerifyAndParse(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		core.Error(w, r, err)
		return
	}

	completion, ok, err := external.ParseCheckoutCompletion(event)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if !ok {
		// Not a checkout completion; acknowledge so Stripe stops retrying.
		core.Data(w, r, http.StatusOK, map[string]any{"received": true})
		return
	}

	if err := h.service.ApplyCheckoutCompletion(r.Context(), completion); err != nil {
		core.Error(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "checkout completed",
		"client_id", completion.ClientID,
		"tier", string(completion.Tier),
	)

	core.Data(w, r, http.StatusOK, map[string]any{"received": true})
}
