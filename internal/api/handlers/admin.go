package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"golfphysics/internal/core"
	"golfphysics/internal/db"
	"golfphysics/internal/types"
)

// defaultUsageDays is the reporting window for admin usage queries when the
// request does not specify one.
const defaultUsageDays = 30

// maxLeadPageSize caps the admin lead listing.
const maxLeadPageSize = 200

// AdminClientStore is the client access the admin endpoints need.
type AdminClientStore interface {
	List(ctx context.Context) ([]*types.APIClient, error)
	Revoke(ctx context.Context, clientID string) error
}

// AdminUsageStore serves the usage reporting queries.
type AdminUsageStore interface {
	GetClientUsage(ctx context.Context, clientID string, days int) ([]*types.UsageDay, error)
	GetAllClientsUsage(ctx context.Context, days int) ([]*types.ClientUsageSummary, error)
}

// AdminLeadStore serves the lead pipeline queries.
type AdminLeadStore interface {
	List(ctx context.Context, params db.ListLeadsParams) ([]*types.Lead, error)
	UpdateStatus(ctx context.Context, id string, status types.LeadStatus) error
}

// LeadStatusUpdateRequest is the body of POST /v1/admin/leads/{id}/status.
type LeadStatusUpdateRequest struct {
	Status types.LeadStatus `json:"status" validate:"required,oneof=new contacted converted closed"`
}

// AdminHandler serves the operator endpoints: usage reporting, the lead
// pipeline, and key revocation. All routes are mounted behind the admin key
// guard.
type AdminHandler struct {
	clients   AdminClientStore
	usage     AdminUsageStore
	leads     AdminLeadStore
	validator *core.Validator
	logger    *slog.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(clients AdminClientStore, usage AdminUsageStore, leads AdminLeadStore, v *core.Validator, l *slog.Logger) *AdminHandler {
	if l == nil {
		l = slog.Default()
	}
	return &AdminHandler{
		clients:   clients,
		usage:     usage,
		leads:     leads,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts the admin endpoints under /admin, wrapped in the
// given guard middleware (core Server.RequireAdmin in production).
func (h *AdminHandler) RegisterRoutes(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(guard)
		r.Get("/usage", h.AllUsage)
		r.Get("/usage/{clientID}", h.ClientUsage)
		r.Get("/clients", h.ListClients)
		r.Get("/leads", h.ListLeads)
		r.Post("/leads/{id}/status", h.UpdateLeadStatus)
		r.Post("/keys/{clientID}/revoke", h.RevokeKey)
	})
}

// AllUsage handles GET /v1/admin/usage?days=N.
func (h *AdminHandler) AllUsage(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", defaultUsageDays)

	summaries, err := h.usage.GetAllClientsUsage(r.Context(), days)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"days":    days,
		"clients": summaries,
	})
}

// ClientUsage handles GET /v1/admin/usage/{clientID}?days=N.
func (h *AdminHandler) ClientUsage(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	days := queryInt(r, "days", defaultUsageDays)

	usage, err := h.usage.GetClientUsage(r.Context(), clientID, days)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"client_id": clientID,
		"days":      days,
		"usage":     usage,
	})
}

// ListClients handles GET /v1/admin/clients.
func (h *AdminHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.List(r.Context())
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"clients": clients,
		"count":   len(clients),
	})
}

// ListLeads handles GET /v1/admin/leads?status=&priority=&limit=.
func (h *AdminHandler) ListLeads(w http.ResponseWriter, r *http.Request) {
	params := db.ListLeadsParams{
		Status:   types.LeadStatus(r.URL.Query().Get("status")),
		Priority: types.LeadPriority(r.URL.Query().Get("priority")),
		Limit:    queryInt(r, "limit", maxLeadPageSize),
	}
	if params.Limit > maxLeadPageSize {
		params.Limit = maxLeadPageSize
	}

	leads, err := h.leads.List(r.Context(), params)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"leads": leads,
		"count": len(leads),
	})
}

// UpdateLeadStatus handles POST /v1/admin/leads/{id}/status.
func (h *AdminHandler) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req LeadStatusUpdateRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	if err := h.leads.UpdateStatus(r.Context(), id, req.Status); err != nil {
		core.Error(w, r, err)
		return
	}

	core.Data(w, r, http.StatusOK, map[string]any{
		"id":     id,
		"status": req.Status,
	})
}

// RevokeKey handles POST /v1/admin/keys/{clientID}/revoke. Revocation takes
// effect on the client's next request.
func (h *AdminHandler) RevokeKey(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")

	if err := h.clients.Revoke(r.Context(), clientID); err != nil {
		core.Error(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "api key revoked", "client_id", clientID)

	core.Data(w, r, http.StatusOK, map[string]any{
		"client_id": clientID,
		"revoked":   true,
	})
}

// queryInt parses a positive integer query parameter, falling back to def on
// absence or garbage.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
