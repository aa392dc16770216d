package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

type stubSimulator struct {
	shot       types.ShotParameters
	conditions types.WeatherConditions
	analysis   *types.ImpactAnalysis
	err        error
	calls      int
}

func (s *stubSimulator) ComputeImpactBreakdown(_ context.Context, shot types.ShotParameters, conditions types.WeatherConditions) (*types.ImpactAnalysis, error) {
	s.calls++
	s.shot = shot
	s.conditions = conditions
	if s.err != nil {
		return nil, s.err
	}
	return s.analysis, nil
}

type stubWeather struct {
	obs      *types.ObservedConditions
	err      error
	cityArgs []string
}

func (s *stubWeather) CurrentByCity(_ context.Context, city, state, country string) (*types.ObservedConditions, error) {
	s.cityArgs = []string{city, state, country}
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.obs
	return &cp, nil
}

func (s *stubWeather) CurrentByCoords(_ context.Context, _, _ float64) (*types.ObservedConditions, error) {
	if s.err != nil {
		return nil, s.err
	}
	cp := *s.obs
	return &cp, nil
}

func cannedAnalysis() *types.ImpactAnalysis {
	return &types.ImpactAnalysis{
		Adjusted: types.FlightResult{
			CarryYards: 268.4,
			TotalYards: 282.1,
			TrajectoryPoints: []types.TrajectoryPoint{
				{X: 0, Y: 0, Z: 0},
				{X: 50.2, Y: 18.7, Z: 0.4},
			},
		},
		Baseline: types.FlightResult{CarryYards: 275.0, TotalYards: 289.3},
		Breakdown: types.ImpactBreakdown{
			WindEffectYards:      -8.1,
			TotalAdjustmentYards: -6.6,
		},
		EquivalentCalmDistanceYards: 275.0,
	}
}

func denverObs() *types.ObservedConditions {
	return &types.ObservedConditions{
		Location:         "Denver, Colorado, United States of America",
		TemperatureF:     85,
		HumidityPct:      20,
		PressureInHg:     29.85,
		WindSpeedMPH:     12,
		WindDirectionDeg: 270,
		ConditionsText:   "Sunny",
		FetchedAt:        time.Date(2026, 8, 27, 15, 0, 0, 0, time.UTC),
	}
}

func validShot() types.ShotDTO {
	return types.ShotDTO{
		BallSpeedMPH:   167,
		LaunchAngleDeg: 12.5,
		SpinRateRPM:    2600,
	}
}

func newTrajectoryRouter(sim *stubSimulator, weather *stubWeather) http.Handler {
	h := NewTrajectoryHandler(sim, weather, newTestValidator(), nil)
	return newV1Router(h.RegisterRoutes)
}

func TestSimulate_ManualConditions(t *testing.T) {
	sim := &stubSimulator{analysis: cannedAnalysis()}
	router := newTrajectoryRouter(sim, &stubWeather{})

	wind := 10.0
	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory", types.TrajectoryRequest{
		Shot:       validShot(),
		Conditions: &types.ConditionsDTO{WindSpeedMPH: &wind},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp types.TrajectoryResponse
	decodeData(t, rec, &resp)
	assert.Equal(t, 268.4, resp.Adjusted.CarryYards)
	assert.Equal(t, 275.0, resp.EquivalentCalmDistanceYards)
	assert.Len(t, resp.TrajectoryPoints, 2)
	assert.Empty(t, resp.Adjusted.TrajectoryPoints, "points are lifted to the top level")
	assert.Nil(t, resp.ConditionsUsed)

	// Omitted fields take the neutral defaults; supplied wind is kept.
	assert.Equal(t, 10.0, sim.conditions.WindSpeedMPH)
	assert.Equal(t, 70.0, sim.conditions.TemperatureF)
	assert.Equal(t, 29.92, sim.conditions.PressureInHg)
}

func TestSimulate_DefaultsWithoutConditions(t *testing.T) {
	sim := &stubSimulator{analysis: cannedAnalysis()}
	router := newTrajectoryRouter(sim, &stubWeather{})

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory", types.TrajectoryRequest{Shot: validShot()})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.NeutralConditions, sim.conditions)
}

func TestSimulate_InvalidShot(t *testing.T) {
	sim := &stubSimulator{analysis: cannedAnalysis()}
	router := newTrajectoryRouter(sim, &stubWeather{})

	shot := validShot()
	shot.BallSpeedMPH = 0

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory", types.TrajectoryRequest{Shot: shot})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, sim.calls)
}

func TestSimulate_MalformedBody(t *testing.T) {
	router := newTrajectoryRouter(&stubSimulator{}, &stubWeather{})

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, string(types.ErrCodeValidationBody), decodeErrorCode(t, rec))
}

func TestSimulateAtLocation_FillsCityAltitude(t *testing.T) {
	sim := &stubSimulator{analysis: cannedAnalysis()}
	weather := &stubWeather{obs: denverObs()}
	router := newTrajectoryRouter(sim, weather)

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory/location", types.TrajectoryLocationRequest{
		Shot:     validShot(),
		Location: types.LocationQuery{City: "Denver", State: "CO", Country: "US"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Denver", "CO", "US"}, weather.cityArgs)
	assert.Equal(t, 5280.0, sim.conditions.AltitudeFt, "city altitude comes from the lookup table")
	assert.Equal(t, 85.0, sim.conditions.TemperatureF)

	var resp types.TrajectoryResponse
	decodeData(t, rec, &resp)
	require.NotNil(t, resp.ConditionsUsed)
	assert.Equal(t, 5280.0, resp.ConditionsUsed.AltitudeFt)
	assert.Equal(t, "Sunny", resp.ConditionsUsed.ConditionsText)
}

func TestSimulateAtLocation_WeatherFailurePropagates(t *testing.T) {
	weather := &stubWeather{err: types.NewAppError(types.ErrCodeUpstreamWeather, "provider down", nil)}
	router := newTrajectoryRouter(&stubSimulator{}, weather)

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory/location", types.TrajectoryLocationRequest{
		Shot:     validShot(),
		Location: types.LocationQuery{City: "Denver"},
	})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, string(types.ErrCodeUpstreamWeather), decodeErrorCode(t, rec))
}

func TestSimulateAtCourse_UsesCourseAltitude(t *testing.T) {
	sim := &stubSimulator{analysis: cannedAnalysis()}
	weather := &stubWeather{obs: denverObs()}
	router := newTrajectoryRouter(sim, weather)

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory/course", types.TrajectoryCourseRequest{
		Shot:   validShot(),
		Course: types.CourseQuery{Name: "Castle Pines"},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6500.0, sim.conditions.AltitudeFt, "course elevation beats city altitude")
	assert.Equal(t, "Castle Rock", weather.cityArgs[0])
}

func TestSimulateAtCourse_UnknownCourse(t *testing.T) {
	sim := &stubSimulator{}
	router := newTrajectoryRouter(sim, &stubWeather{})

	rec := doJSON(t, router, http.MethodPost, "/v1/trajectory/course", types.TrajectoryCourseRequest{
		Shot:   validShot(),
		Course: types.CourseQuery{Name: "Imaginary Links"},
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, string(types.ErrCodeNotFoundCourse), decodeErrorCode(t, rec))
	assert.Zero(t, sim.calls)
}
