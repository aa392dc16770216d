package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"golfphysics/internal/auth"
	"golfphysics/internal/billing"
	"golfphysics/internal/core"
	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// ClientIssuerStore is the client persistence the key request endpoint needs.
// Implemented by db.ClientRepository.
type ClientIssuerStore interface {
	Create(ctx context.Context, client *types.APIClient) error
	// GetByEmail returns (nil, nil) when no client exists for the email.
	GetByEmail(ctx context.Context, email string) (*types.APIClient, error)
}

// APIKeyHandler serves the public self-serve key issuance endpoint.
type APIKeyHandler struct {
	clients    ClientIssuerStore
	leads      LeadStore
	emails     EmailEnqueuer
	captcha    CaptchaVerifier
	registry   billing.PlanRegistry
	adminEmail string
	docsURL    string
	validator  *core.Validator
	logger     *slog.Logger
	clock      types.Clock
}

// NewAPIKeyHandler creates the key request handler.
func NewAPIKeyHandler(
	clients ClientIssuerStore,
	leads LeadStore,
	emails EmailEnqueuer,
	captcha CaptchaVerifier,
	registry billing.PlanRegistry,
	adminEmail string,
	docsURL string,
	v *core.Validator,
	l *slog.Logger,
) *APIKeyHandler {
	if l == nil {
		l = slog.Default()
	}
	return &APIKeyHandler{
		clients:    clients,
		leads:      leads,
		emails:     emails,
		captcha:    captcha,
		registry:   registry,
		adminEmail: adminEmail,
		docsURL:    docsURL,
		validator:  v,
		logger:     l,
		clock:      types.RealClock{},
	}
}

// RegisterRoutes mounts the key request endpoint on the v1 router.
func (h *APIKeyHandler) RegisterRoutes(r chi.Router) {
	r.Post("/request-api-key", h.Request)
}

// Request handles POST /v1/request-api-key. Every signup starts on the free
// developer tier. The plaintext key appears exactly twice: in this response
// and in the welcome email; only its SHA-256 digest is stored.
func (h *APIKeyHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req types.APIKeyRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	if !req.AcceptTerms {
		core.Error(w, r, types.NewAppError(types.ErrCodeValidationTermsRequired,
			"terms of service must be accepted", nil))
		return
	}

	if err := h.captcha.Verify(r.Context(), req.RecaptchaToken, external.MinScoreKeyRequest); err != nil {
		core.Error(w, r, err)
		return
	}

	existing, err := h.clients.GetByEmail(r.Context(), req.Email)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	if existing != nil {
		core.Error(w, r, types.NewAppError(types.ErrCodeConflictEmail,
			"an API key has already been issued for this email", nil))
		return
	}

	plaintext, keyHash, err := auth.GenerateAPIKey()
	if err != nil {
		core.Error(w, r, err)
		return
	}
	clientID, err := auth.GenerateClientID()
	if err != nil {
		core.Error(w, r, err)
		return
	}

	client := &types.APIClient{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Email:     req.Email,
		Name:      req.Name,
		Company:   req.Company,
		Tier:      types.TierDeveloper,
		KeyHash:   keyHash,
		Active:    true,
		CreatedAt: h.clock.Now(),
	}
	if err := h.clients.Create(r.Context(), client); err != nil {
		core.Error(w, r, err)
		return
	}

	priority := prospectPriority(req)
	h.recordLead(r.Context(), req, priority)

	h.enqueueEmail(r, types.EmailJob{
		JobID:   uuid.NewString(),
		Kind:    types.EmailAPIKeyWelcome,
		ToEmail: req.Email,
		ToName:  req.Name,
		Data: map[string]string{
			"name":    req.Name,
			"api_key": plaintext,
		},
	})

	if priority == types.LeadPriorityHigh {
		h.enqueueEmail(r, types.EmailJob{
			JobID:   uuid.NewString(),
			Kind:    types.EmailProspectAdminAlert,
			ToEmail: h.adminEmail,
			Data: map[string]string{
				"name":            req.Name,
				"email":           req.Email,
				"company":         req.Company,
				"use_case":        req.UseCase,
				"expected_volume": req.ExpectedVolume,
				"priority":        alertPriorityLabel(priority),
			},
		})
	}

	limits := h.registry.GetLimits(types.TierDeveloper)

	h.logger.InfoContext(r.Context(), "api key issued",
		"client_id", clientID,
		"priority", string(priority),
	)

	core.Data(w, r, http.StatusCreated, types.APIKeyIssuedResponse{
		APIKey:         plaintext,
		ClientID:       clientID,
		Tier:           types.TierDeveloper,
		RequestsPerMin: limits.RequestsPerMinute,
		RequestsPerDay: limits.RequestsPerDay,
		DocsURL:        h.docsURL,
	})
}

// recordLead stores the signup as a sales lead. Lead capture is best effort
// here: the client row already exists, so a lead insert failure must not
// fail the issuance.
func (h *APIKeyHandler) recordLead(ctx context.Context, req types.APIKeyRequest, priority types.LeadPriority) {
	lead := &types.Lead{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		Company:        req.Company,
		UseCase:        req.UseCase,
		ExpectedVolume: req.ExpectedVolume,
		Source:         types.LeadSourceAPIKeyRequest,
		Priority:       priority,
		Status:         types.LeadStatusNew,
		CreatedAt:      h.clock.Now(),
	}
	if err := h.leads.Create(ctx, lead); err != nil {
		h.logger.ErrorContext(ctx, "failed to record signup lead",
			"email_domain", emailDomain(req.Email),
			"error", err,
		)
	}
}

// enqueueEmail queues one email job, logging and swallowing failures.
func (h *APIKeyHandler) enqueueEmail(r *http.Request, job types.EmailJob) {
	job.RequestID = types.GetRequestID(r.Context())
	job.EnqueuedAt = h.clock.Now()

	if err := h.emails.Enqueue(r.Context(), job); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue email",
			"kind", string(job.Kind),
			"error", err,
		)
	}
}

// emailDomain extracts the domain part of an address for logging without
// recording the full address.
func emailDomain(email string) string {
	for i := len(email) - 1; i >= 0; i-- {
		if email[i] == '@' {
			return email[i+1:]
		}
	}
	return ""
}
