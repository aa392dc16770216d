package physics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golfphysics/internal/types"
)

func denverSummer() types.WeatherConditions {
	return types.WeatherConditions{
		WindSpeedMPH:     10,
		WindDirectionDeg: 0,
		TemperatureF:     85,
		AltitudeFt:       5280,
		HumidityPct:      30,
		PressureInHg:     29.92,
	}
}

func TestComputeImpactBreakdownNeutralIsNoop(t *testing.T) {
	eng := NewEngine(nil, nil)
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), types.NeutralConditions)
	require.NoError(t, err)

	// Neutral conditions differ from the 1.225 baseline only through the
	// slightly lighter 70F/50% air, so wind effects must be exactly zero and
	// the density driven effects small but positive.
	assert.Zero(t, analysis.Breakdown.WindEffectYards)
	assert.Zero(t, analysis.Breakdown.WindLateralYards)
	assert.GreaterOrEqual(t, analysis.Breakdown.TemperatureEffectYards, 0.0)
	assert.Equal(t, analysis.EquivalentCalmDistanceYards, analysis.Baseline.CarryYards)
}

func TestComputeImpactBreakdownReferenceFlight(t *testing.T) {
	// A 130mph mid iron at 59F, sea level, 50% humidity, standard pressure,
	// no wind. The expected numbers are pinned from launch-monitor reference
	// data for this flight; they are ground truth for the integrator. If this
	// test breaks, the physics changed, not the test.
	shot := types.ShotParameters{
		BallSpeedMPH:   130,
		LaunchAngleDeg: 14.5,
		SpinRateRPM:    2800,
	}
	cond := types.WeatherConditions{
		WindSpeedMPH: 0,
		TemperatureF: 59,
		AltitudeFt:   0,
		HumidityPct:  50,
		PressureInHg: 29.92,
	}

	eng := NewEngine(nil, nil)
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), shot, cond)
	require.NoError(t, err)

	assert.InDelta(t, 121.8, analysis.Adjusted.CarryYards, 0.5)

	// 59F air is denser than the 70F reference but the difference is within
	// a club-selection margin.
	assert.Less(t, math.Abs(analysis.Breakdown.TotalAdjustmentYards), 5.0)
	assert.Zero(t, analysis.Breakdown.WindEffectYards)

	// The sampled flight path must have real resolution, not just launch
	// and landing.
	assert.Greater(t, len(analysis.Adjusted.TrajectoryPoints), 10)
	assert.Greater(t, analysis.Adjusted.ApexHeightYards, 5.0)
	assert.Greater(t, analysis.Adjusted.FlightTimeSeconds, 2.0)
}

func TestComputeImpactBreakdownDenver(t *testing.T) {
	eng := NewEngine(nil, nil)
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), denverSummer())
	require.NoError(t, err)

	b := analysis.Breakdown
	assert.Less(t, b.WindEffectYards, 0.0, "10mph headwind costs carry")
	assert.Greater(t, b.AltitudeEffectYards, 5.0, "a mile of altitude adds real distance")
	assert.Greater(t, b.TemperatureEffectYards, 0.0, "85F beats the 70F reference")

	total := analysis.Adjusted.CarryYards - analysis.Baseline.CarryYards
	assert.InDelta(t, total, b.TotalAdjustmentYards, 0.05)
}

func TestComputeImpactBreakdownFactorsDoNotSum(t *testing.T) {
	// The isolated effects are each measured against the baseline, not
	// stacked, so nothing forces them to add up to the total. This pins that
	// behavior rather than "fixing" it.
	eng := NewEngine(nil, nil)
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), denverSummer())
	require.NoError(t, err)

	b := analysis.Breakdown
	sum := b.WindEffectYards + b.TemperatureEffectYards + b.AltitudeEffectYards + b.HumidityEffectYards
	assert.NotZero(t, b.TotalAdjustmentYards)
	// They should be in the same ballpark even though they are not equal.
	assert.InDelta(t, b.TotalAdjustmentYards, sum, 15.0)
}

func TestComputeImpactBreakdownMatchesSequential(t *testing.T) {
	// Concurrency is an implementation detail; results must be identical to
	// running the isolated flights by hand.
	eng := NewEngine(nil, nil)
	cond := denverSummer()
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), cond)
	require.NoError(t, err)

	baseline := Simulate(driverShot(), CalmEnvironment())
	adjusted := Simulate(driverShot(), EnvironmentFor(cond))

	assert.Equal(t, baseline.CarryYards, analysis.Baseline.CarryYards)
	assert.Equal(t, adjusted.CarryYards, analysis.Adjusted.CarryYards)
	assert.Equal(t, adjusted.TrajectoryPoints, analysis.Adjusted.TrajectoryPoints)
	assert.Nil(t, analysis.Baseline.TrajectoryPoints)
}

func TestComputeImpactBreakdownIsolationUsesNeutralDefaults(t *testing.T) {
	// The humidity-only run holds temperature at 70F and altitude at sea
	// level regardless of the actual conditions. Verify by comparing against
	// a hand-built isolated environment.
	eng := NewEngine(nil, nil)
	cond := denverSummer()
	analysis, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), cond)
	require.NoError(t, err)

	humidOnly := Simulate(driverShot(), Environment{
		AirDensityKGM3: AirDensity(70, 0, cond.HumidityPct, 29.92),
	})
	baseline := Simulate(driverShot(), CalmEnvironment())

	want := diffYards(humidOnly.CarryYards, baseline.CarryYards)
	assert.Equal(t, want, analysis.Breakdown.HumidityEffectYards)
}

func TestComputeImpactBreakdownInvalidShot(t *testing.T) {
	eng := NewEngine(nil, nil)
	shot := driverShot()
	shot.BallSpeedMPH = 500

	_, err := eng.ComputeImpactBreakdown(context.Background(), shot, types.NeutralConditions)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeValidationShotParams, appErr.Code)
}

func TestComputeImpactBreakdownInvalidConditions(t *testing.T) {
	eng := NewEngine(nil, nil)
	cond := denverSummer()
	cond.WindSpeedMPH = 100

	_, err := eng.ComputeImpactBreakdown(context.Background(), driverShot(), cond)
	require.Error(t, err)

	var appErr *types.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, types.ErrCodeValidationConditions, appErr.Code)
}

// capturingLogger records Warn calls for assertions.
type capturingLogger struct {
	warns []string
}

func (l *capturingLogger) Info(msg string, args ...any)  {}
func (l *capturingLogger) Error(msg string, args ...any) {}
func (l *capturingLogger) Warn(msg string, args ...any)  { l.warns = append(l.warns, msg) }
func (l *capturingLogger) With(args ...any) types.Logger { return l }

func TestComputeImpactBreakdownLogsRejectedInput(t *testing.T) {
	log := &capturingLogger{}
	eng := NewEngine(nil, log)

	shot := driverShot()
	shot.BallSpeedMPH = 500
	_, err := eng.ComputeImpactBreakdown(context.Background(), shot, types.NeutralConditions)
	require.Error(t, err)

	cond := denverSummer()
	cond.WindSpeedMPH = 100
	_, err = eng.ComputeImpactBreakdown(context.Background(), driverShot(), cond)
	require.Error(t, err)

	require.Len(t, log.warns, 2)
	assert.Equal(t, "rejected shot parameters", log.warns[0])
	assert.Equal(t, "rejected weather conditions", log.warns[1])
}

func TestComputeImpactBreakdownNilLoggerSafe(t *testing.T) {
	eng := NewEngine(nil, nil)
	shot := driverShot()
	shot.BallSpeedMPH = 500

	assert.NotPanics(t, func() {
		_, _ = eng.ComputeImpactBreakdown(context.Background(), shot, types.NeutralConditions)
	})
}

func TestComputeImpactBreakdownCanceledContext(t *testing.T) {
	eng := NewEngine(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.ComputeImpactBreakdown(ctx, driverShot(), types.NeutralConditions)
	assert.ErrorIs(t, err, context.Canceled)
}
