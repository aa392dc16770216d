// Package handlers contains the HTTP handler implementations for the golf
// physics API: trajectory simulation, weather passthrough, course lookup,
// lead capture, self-serve key issuance, billing, and the admin surface.
//
// Handlers depend on locally declared interfaces rather than concrete
// services so that tests can inject mocks without pulling in Postgres, SQS,
// or the live upstream clients.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"golfphysics/internal/core"
	"golfphysics/internal/courses"
	"golfphysics/internal/external"
	"golfphysics/internal/types"
)

// Simulator runs the six-flight impact analysis. Implemented by
// physics.Engine.
type Simulator interface {
	ComputeImpactBreakdown(ctx context.Context, shot types.ShotParameters, conditions types.WeatherConditions) (*types.ImpactAnalysis, error)
}

// WeatherService fetches current conditions from the upstream provider.
// Mirrors external.WeatherProvider.
type WeatherService interface {
	CurrentByCity(ctx context.Context, city, state, country string) (*types.ObservedConditions, error)
	CurrentByCoords(ctx context.Context, lat, lon float64) (*types.ObservedConditions, error)
}

// TrajectoryHandler serves the three trajectory endpoints.
type TrajectoryHandler struct {
	sim       Simulator
	weather   WeatherService
	validator *core.Validator
	logger    *slog.Logger
}

// NewTrajectoryHandler creates the trajectory handler.
func NewTrajectoryHandler(sim Simulator, weather WeatherService, v *core.Validator, l *slog.Logger) *TrajectoryHandler {
	if l == nil {
		l = slog.Default()
	}
	return &TrajectoryHandler{
		sim:       sim,
		weather:   weather,
		validator: v,
		logger:    l,
	}
}

// RegisterRoutes mounts the trajectory endpoints on the v1 router.
func (h *TrajectoryHandler) RegisterRoutes(r chi.Router) {
	r.Post("/trajectory", h.Simulate)
	r.Post("/trajectory/location", h.SimulateAtLocation)
	r.Post("/trajectory/course", h.SimulateAtCourse)
}

// Simulate handles POST /v1/trajectory: shot plus caller-supplied conditions.
// Omitted condition fields take the neutral defaults.
func (h *TrajectoryHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req types.TrajectoryRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	h.respond(w, r, req.Shot.ToShot(), req.Conditions.ToConditions(), nil)
}

// SimulateAtLocation handles POST /v1/trajectory/location: shot plus a city.
// Conditions come from the weather provider; the provider reports no
// elevation, so altitude is filled from the city lookup table.
func (h *TrajectoryHandler) SimulateAtLocation(w http.ResponseWriter, r *http.Request) {
	var req types.TrajectoryLocationRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	obs, err := h.weather.CurrentByCity(r.Context(), req.Location.City, req.Location.State, req.Location.Country)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	obs.AltitudeFt = courses.CityAltitude(req.Location.City, req.Location.State, req.Location.Country)

	h.respond(w, r, req.Shot.ToShot(), obs.Weather(), obs)
}

// SimulateAtCourse handles POST /v1/trajectory/course: shot plus a course
// name. The course table supplies the location and its playing elevation,
// which takes precedence over any city-level altitude.
func (h *TrajectoryHandler) SimulateAtCourse(w http.ResponseWriter, r *http.Request) {
	var req types.TrajectoryCourseRequest
	if err := core.DecodeJSON(w, r, &req); err != nil {
		core.Error(w, r, err)
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		core.Error(w, r, err)
		return
	}

	course, ok := courses.Lookup(req.Course.Name)
	if !ok {
		core.Error(w, r, types.NewAppError(types.ErrCodeNotFoundCourse,
			"unknown course: "+req.Course.Name, nil))
		return
	}

	obs, err := h.weather.CurrentByCity(r.Context(), course.City, course.State, course.Country)
	if err != nil {
		core.Error(w, r, err)
		return
	}
	obs.AltitudeFt = course.AltitudeFt

	h.respond(w, r, req.Shot.ToShot(), obs.Weather(), obs)
}

// respond runs the simulation and writes the trajectory response. The
// adjusted flight's samples are lifted to the top-level trajectory_points
// field so the nested flight summaries stay compact.
func (h *TrajectoryHandler) respond(w http.ResponseWriter, r *http.Request, shot types.ShotParameters, conditions types.WeatherConditions, obs *types.ObservedConditions) {
	analysis, err := h.sim.ComputeImpactBreakdown(r.Context(), shot, conditions)
	if err != nil {
		core.Error(w, r, err)
		return
	}

	points := analysis.Adjusted.TrajectoryPoints
	adjusted := analysis.Adjusted
	adjusted.TrajectoryPoints = nil

	core.Data(w, r, http.StatusOK, types.TrajectoryResponse{
		Adjusted:                    adjusted,
		Baseline:                    analysis.Baseline,
		Breakdown:                   analysis.Breakdown,
		EquivalentCalmDistanceYards: analysis.EquivalentCalmDistanceYards,
		TrajectoryPoints:            points,
		ConditionsUsed:              obs,
	})
}

// compile-time check that the production weather client satisfies the
// handler-side interface.
var _ WeatherService = (*external.WeatherClient)(nil)
