package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

type stubCheckoutService struct {
	checkoutResp *types.CheckoutResponse
	checkoutErr  error
	lastActor    types.Actor
	lastReq      types.CheckoutRequest
	completions  []external.CheckoutCompletion
	applyErr     error
}

func (s *stubCheckoutService) CreateCheckout(_ context.Context, actor types.Actor, req types.CheckoutRequest) (*types.CheckoutResponse, error) {
	s.lastActor = actor
	s.lastReq = req
	return s.checkoutResp, s.checkoutErr
}

func (s *stubCheckoutService) ApplyCheckoutCompletion(_ context.Context, completion external.CheckoutCompletion) error {
	if s.applyErr != nil {
		return s.applyErr
	}
	s.completions = append(s.completions, completion)
	return nil
}

type stubWebhookVerifier struct {
	event stripe.Event
	err   error
	sigs  []string
}

func (s *stubWebhookVerifier) VerifyAndParse(_ []byte, sigHeader string) (stripe.Event, error) {
	s.sigs = append(s.sigs, sigHeader)
	return s.event, s.err
}

func newBillingRouter(service *stubCheckoutService, webhooks *stubWebhookVerifier) http.Handler {
	h := NewBillingHandler(service, webhooks, newTestValidator(), nil)
	return newV1Router(h.RegisterRoutes)
}

func checkoutCompletedEvent(t *testing.T, clientID string, tier types.PlanTier) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":                  "cs_test_123",
		"client_reference_id": clientID,
		"metadata": map[string]string{
			"client_id": clientID,
			"tier":      string(tier),
		},
	})
	require.NoError(t, err)
	return stripe.Event{
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestCreateCheckout_Success(t *testing.T) {
	service := &stubCheckoutService{checkoutResp: &types.CheckoutResponse{
		SessionID:   "cs_test_123",
		CheckoutURL: "https://checkout.stripe.com/c/pay/cs_test_123",
	}}
	router := newBillingRouter(service, &stubWebhookVerifier{})

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/checkout", types.CheckoutRequest{
		Tier:       types.TierStarter,
		SuccessURL: "https://app.example.com/upgraded",
		CancelURL:  "https://app.example.com/pricing",
	}, withActor(types.Actor{ID: "client_a", Type: types.ActorTypeAPIClient, Tier: types.TierDeveloper}))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.CheckoutResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "client_a", service.lastActor.ID)
	assert.Equal(t, types.TierStarter, service.lastReq.Tier)
}

func TestCreateCheckout_RequiresActor(t *testing.T) {
	router := newBillingRouter(&stubCheckoutService{}, &stubWebhookVerifier{})

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/checkout", types.CheckoutRequest{
		Tier:       types.TierStarter,
		SuccessURL: "https://app.example.com/upgraded",
		CancelURL:  "https://app.example.com/pricing",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCheckout_MissingURLs(t *testing.T) {
	router := newBillingRouter(&stubCheckoutService{}, &stubWebhookVerifier{})

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/checkout", types.CheckoutRequest{
		Tier: types.TierStarter,
	}, withActor(types.Actor{ID: "client_a"}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhook_CheckoutCompletedAppliesUpgrade(t *testing.T) {
	service := &stubCheckoutService{}
	webhooks := &stubWebhookVerifier{event: checkoutCompletedEvent(t, "client_a", types.TierProfessional)}
	router := newBillingRouter(service, webhooks)

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/webhook",
		map[string]string{"ignored": "body"},
		func(req *http.Request) {
			req.Header.Set("Stripe-Signature", "t=1,v1=sig")
		})

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, service.completions, 1)
	assert.Equal(t, "client_a", service.completions[0].ClientID)
	assert.Equal(t, types.TierProfessional, service.completions[0].Tier)
	assert.Equal(t, []string{"t=1,v1=sig"}, webhooks.sigs)
}

func TestWebhook_BadSignature(t *testing.T) {
	service := &stubCheckoutService{}
	webhooks := &stubWebhookVerifier{err: types.NewAppError(types.ErrCodeValidationBody, "invalid signature", nil)}
	router := newBillingRouter(service, webhooks)

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/webhook", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, service.completions)
}

func TestWebhook_IgnoresOtherEvents(t *testing.T) {
	service := &stubCheckoutService{}
	webhooks := &stubWebhookVerifier{event: stripe.Event{
		Type: "invoice.paid",
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}}
	router := newBillingRouter(service, webhooks)

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/webhook", map[string]string{})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, service.completions)

	var payload map[string]any
	decodeData(t, rec, &payload)
	assert.Equal(t, true, payload["received"])
}

func TestWebhook_ApplyFailure(t *testing.T) {
	service := &stubCheckoutService{applyErr: types.NewAppError(types.ErrCodeInternalDB, "tier update failed", nil)}
	webhooks := &stubWebhookVerifier{event: checkoutCompletedEvent(t, "client_a", types.TierStarter)}
	router := newBillingRouter(service, webhooks)

	rec := doJSON(t, router, http.MethodPost, "/v1/billing/webhook", map[string]string{})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
