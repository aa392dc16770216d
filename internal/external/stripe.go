package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"

	"golfphysics/internal/types"
)

// stripeAPIBase is the default Stripe API base URL.
// Overridable in tests via StripeClientConfig.BaseURL.
const stripeAPIBase = "https://api.stripe.com"

// StripeClientConfig holds the configuration for creating a StripeClient.
type StripeClientConfig struct {
	SecretKey string
	BaseURL   string // Override for testing; defaults to stripeAPIBase
	Logger    *slog.Logger
}

// StripeClient implements CheckoutProvider by calling the Stripe REST API
// through BaseClient, which keeps checkout on the same circuit breaker and
// retry path as every other upstream and makes httptest-based testing
// straightforward. The stripe-go SDK is used for webhook signature
// verification and event types only.
type StripeClient struct {
	base      *BaseClient
	secretKey string
	baseURL   string
	logger    *slog.Logger
}

// NewStripeClient creates a StripeClient. The httpClient timeout should be
// around 20 seconds; checkout session creation is a single synchronous call.
func NewStripeClient(httpClient *http.Client, cfg StripeClientConfig) *StripeClient {
	base := NewBaseClient(httpClient, "stripe", DefaultRetryPolicy())
	return NewStripeClientWithBase(base, cfg)
}

// NewStripeClientWithBase creates a StripeClient with a pre-configured
// BaseClient, for tests.
func NewStripeClientWithBase(base *BaseClient, cfg StripeClientConfig) *StripeClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = stripeAPIBase
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &StripeClient{
		base:      base,
		secretKey: cfg.SecretKey,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		logger:    logger,
	}
}

// CreateCheckoutSession builds a subscription-mode Checkout session for a
// plan upgrade. client_reference_id and the metadata block carry the API
// client ID and target tier so the completion webhook can apply the upgrade.
func (s *StripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutSessionParams) (*types.CheckoutResponse, error) {
	params := url.Values{}
	params.Set("mode", "subscription")
	params.Set("client_reference_id", p.ClientID)
	params.Set("customer_email", p.Email)
	params.Set("success_url", p.SuccessURL)
	params.Set("cancel_url", p.CancelURL)
	params.Set("metadata[client_id]", p.ClientID)
	params.Set("metadata[tier]", string(p.Tier))
	params.Set("line_items[0][price]", p.PriceID)
	params.Set("line_items[0][quantity]", "1")

	resp, err := s.doPost(ctx, "/v1/checkout/sessions", params)
	if err != nil {
		return nil, s.wrapStripeError("CreateCheckoutSession", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, s.handleErrorResponse(resp, "CreateCheckoutSession")
	}

	var session stripeCheckoutSession
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, types.NewAppError(
			types.ErrCodeInternalUnexpected,
			"failed to decode checkout session response",
			err,
		)
	}

	return &types.CheckoutResponse{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}

// doPost performs an authenticated POST to the Stripe API with a
// form-encoded body.
func (s *StripeClient) doPost(ctx context.Context, path string, params url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	req.Header.Set("Stripe-Version", stripe.APIVersion)

	return s.base.Do(req)
}

// ---------------------------------------------------------------------------
// Error Handling
// ---------------------------------------------------------------------------

// stripeErrorResponse is the JSON error body returned by the Stripe API.
type stripeErrorResponse struct {
	Error stripeErrorBody `json:"error"`
}

type stripeErrorBody struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	DeclineCode string `json:"decline_code"`
	Message     string `json:"message"`
	Param       string `json:"param"`
}

func (s *StripeClient) handleErrorResponse(resp *http.Response, operation string) error {
	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamStripe,
			fmt.Sprintf("%s: Stripe returned status %d and response body was unreadable", operation, resp.StatusCode),
			readErr,
		)
	}

	var stripeErr stripeErrorResponse
	if jsonErr := json.Unmarshal(body, &stripeErr); jsonErr != nil {
		return types.NewAppError(
			types.ErrCodeUpstreamStripe,
			fmt.Sprintf("%s: Stripe returned status %d with non-JSON body", operation, resp.StatusCode),
			jsonErr,
		)
	}

	return s.mapStripeError(operation, resp.StatusCode, &stripeErr.Error)
}

func (s *StripeClient) mapStripeError(operation string, statusCode int, stripeErr *stripeErrorBody) error {
	if stripeErr.Code == "card_declined" || stripeErr.DeclineCode != "" {
		return types.NewAppErrorWithDetails(
			types.ErrCodePaymentDeclined,
			fmt.Sprintf("%s: payment declined: %s", operation, stripeErr.Message),
			nil,
			map[string]any{
				"decline_code": stripeErr.DeclineCode,
				"stripe_code":  stripeErr.Code,
			},
		)
	}

	switch {
	case statusCode == http.StatusTooManyRequests:
		return types.NewAppError(
			types.ErrCodeUpstreamRateLimit,
			fmt.Sprintf("%s: Stripe rate limit exceeded", operation),
			nil,
		)
	case statusCode >= 500:
		return types.NewAppError(
			types.ErrCodeUpstreamUnavail,
			fmt.Sprintf("%s: Stripe server error: %s", operation, stripeErr.Message),
			nil,
		)
	default:
		return types.NewAppError(
			types.ErrCodeUpstreamStripe,
			fmt.Sprintf("%s: Stripe error (%d): %s", operation, statusCode, stripeErr.Message),
			nil,
		)
	}
}

func (s *StripeClient) wrapStripeError(operation string, err error) error {
	var appErr *types.AppError
	if asAppError(err, &appErr) {
		return types.NewAppError(types.ErrCodeUpstreamStripe, fmt.Sprintf("%s: %s", operation, appErr.Message), appErr)
	}
	return types.NewAppError(
		types.ErrCodeUpstreamStripe,
		fmt.Sprintf("%s: Stripe request failed", operation),
		err,
	)
}

// stripeCheckoutSession is the slice of the Checkout session response the
// service cares about.
type stripeCheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ---------------------------------------------------------------------------
// Webhook Verification
// ---------------------------------------------------------------------------

// StripeWebhookVerifier validates incoming webhook payloads against the
// endpoint signing secret using stripe-go's HMAC-SHA256 check with
// timestamp tolerance.
type StripeWebhookVerifier struct {
	secret string
}

// NewStripeWebhookVerifier creates a verifier for the given signing secret.
func NewStripeWebhookVerifier(secret string) *StripeWebhookVerifier {
	return &StripeWebhookVerifier{secret: secret}
}

// VerifyAndParse checks the Stripe-Signature header and returns the parsed
// event. A bad signature comes back as a validation error so the handler
// answers 400 and Stripe retries only on real failures.
func (v *StripeWebhookVerifier) VerifyAndParse(payload []byte, sigHeader string) (stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, v.secret)
	if err != nil {
		return stripe.Event{}, types.NewAppError(
			types.ErrCodeValidationBody,
			"invalid webhook signature",
			err,
		)
	}
	return event, nil
}

// CheckoutCompletion is the subset of a checkout.session.completed event
// needed to apply a plan upgrade.
type CheckoutCompletion struct {
	ClientID string
	Tier     types.PlanTier
}

// ParseCheckoutCompletion extracts the client and target tier from a
// checkout.session.completed event. Returns ok=false for other event types,
// which the webhook handler acknowledges without acting on.
func ParseCheckoutCompletion(event stripe.Event) (CheckoutCompletion, bool, error) {
	if event.Type != "checkout.session.completed" {
		return CheckoutCompletion{}, false, nil
	}

	var session struct {
		ClientReferenceID string            `json:"client_reference_id"`
		Metadata          map[string]string `json:"metadata"`
	}
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		return CheckoutCompletion{}, false, types.NewAppError(
			types.ErrCodeValidationBody,
			"malformed checkout session payload",
			err,
		)
	}

	clientID := session.ClientReferenceID
	if clientID == "" {
		clientID = session.Metadata["client_id"]
	}
	tier := types.PlanTier(session.Metadata["tier"])

	if clientID == "" || !tier.Valid() {
		return CheckoutCompletion{}, false, types.NewAppError(
			types.ErrCodeValidationBody,
			"checkout session missing client reference or tier metadata",
			nil,
		)
	}

	return CheckoutCompletion{ClientID: clientID, Tier: tier}, true, nil
}

// Compile-time assertion that StripeClient satisfies CheckoutProvider.
var _ CheckoutProvider = (*StripeClient)(nil)
