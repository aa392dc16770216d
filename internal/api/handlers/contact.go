package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"golfphysics/internal/core"
	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// ContactResponse is the payload returned by POST /v1/contact.
type ContactResponse struct {
	LeadID  string `json:"lead_id"`
	Message string `json:"message"`
}

// ContactHandler serves the public contact form endpoint.
type ContactHandler struct {
	leads      LeadStore
	emails     EmailEnqueuer
	captcha    CaptchaVerifier
	adminEmail string
	validator  *core.Validator
	logger     *slog.Logger
	clock      types.Clock
}

// NewContactHandler creates the contact handler. adminEmail receives the
// internal lead alert.
func NewContactHandler(leads LeadStore, emails EmailEnqueuer, captcha CaptchaVerifier, adminEmail string, v *core.Validator, l *slog.Logger) *ContactHandler {
	if l == nil {
		l = slog.Default()
	}
	return &ContactHandler{
		leads:      leads,
		emails:     emails,
		captcha:    captcha,
		adminEmail: adminEmail,
		validator:  v,
		logger:     l,
		clock:      types.RealClock{},
	}
}

// RegisterRoutes mounts the contact endpoint on the v1 router.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Post("/contact", h.Submit)
}

// Submit handles POST /v1/contact. The lead row is the source of truth:
// storing it must succeed, while the confirmation and alert emails are best
// effort.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.captcha.Verify(r.Context(), req.RecaptchaToken, external.MinScoreContact); err != nil {
		core.Error(w, r, err)
		return
	}

	lead := &types.Lead{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Message:   req.Message,
		Source:    types.LeadSourceContactForm,
		Priority:  contactPriority(req.Message),
		Status:    types.LeadStatusNew,
		CreatedAt: h.clock.Now(),
	}
	if err := h.leads.Create(r.Context(), lead); err != nil {
		core.Error(w, r, err)
		return
	}

	h.enqueueEmail(r, types.EmailJob{
		JobID:   uuid.NewString(),
		Kind:    types.EmailContactConfirmation,
		ToEmail: req.Email,
		ToName:  req.Name,
		Data: map[string]string{
			"name":    req.Name,
			"message": req.Message,
		},
	})

	h.enqueueEmail(r, types.EmailJob{
		JobID:   uuid.NewString(),
		Kind:    types.EmailContactAdminAlert,
		ToEmail: h.adminEmail,
		Data: map[string]string{
			"name":     req.Name,
			"email":    req.Email,
			"company":  req.Company,
			"message":  req.Message,
			"priority": alertPriorityLabel(lead.Priority),
		},
	})

	h.logger.InfoContext(r.Context(), "contact lead captured",
		"lead_id", lead.ID,
		"priority", string(lead.Priority),
	)

	core.Data(w, r, http.StatusAccepted, ContactResponse{
		LeadID:  lead.ID,
		Message: "Thanks for reaching out. We will get back to you within one business day.",
	})
}

// enqueueEmail queues one email job, logging and swallowing failures.
func (h *ContactHandler) enqueueEmail(r *http.Request, job types.EmailJob) {
	job.RequestID = types.GetRequestID(r.Context())
	job.EnqueuedAt = h.clock.Now()

	if err := h.emails.Enqueue(r.Context(), job); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to enqueue email",
			"kind", string(job.Kind),
			"error", err,
		)
	}
}
