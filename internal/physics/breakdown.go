package physics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"golfphysics/internal/types"
)

// Engine runs trajectory simulations and reports timing metrics. The zero
// value is usable; Metrics and Log are optional.
type Engine struct {
	Metrics types.MetricsCollector
	Log     types.Logger
}

// NewEngine builds an Engine with the given collaborators.
func NewEngine(metrics types.MetricsCollector, log types.Logger) *Engine {
	return &Engine{Metrics: metrics, Log: log}
}

// Simulate runs a single flight under the given conditions.
func (e *Engine) Simulate(shot types.ShotParameters, conditions types.WeatherConditions) types.FlightResult {
	return Simulate(shot, EnvironmentFor(conditions))
}

// ComputeImpactBreakdown runs the full six-flight analysis for one shot:
//
//   - baseline: standard density, no wind
//   - adjusted: actual density and wind
//   - wind only: standard density, actual wind
//   - temperature only: density from actual temperature, everything else neutral
//   - altitude only: density from actual altitude, everything else neutral
//   - humidity only: density from actual humidity, everything else neutral
//
// Isolated factors hold the remaining conditions at the fixed neutral
// reference (70F, sea level, 50%, 29.92 inHg), NOT at the caller's values,
// so each factor's effect is measured against the same baseline. The
// per-factor effects therefore do not sum to the total adjustment.
//
// The six simulations are independent and run concurrently; results are
// identical to running them sequentially.
func (e *Engine) ComputeImpactBreakdown(ctx context.Context, shot types.ShotParameters, conditions types.WeatherConditions) (*types.ImpactAnalysis, error) {
	if err := shot.Validate(); err != nil {
		e.warn("rejected shot parameters", "error", err, "ball_speed_mph", shot.BallSpeedMPH)
		return nil, err
	}
	if err := conditions.Validate(); err != nil {
		e.warn("rejected weather conditions", "error", err)
		return nil, err
	}

	start := time.Now()
	neutral := types.NeutralConditions

	head, cross := WindComponents(conditions.WindSpeedMPH, conditions.WindDirectionDeg)

	envs := []Environment{
		CalmEnvironment(), // baseline
		EnvironmentFor(conditions),
		{AirDensityKGM3: StandardAirDensity, HeadwindMPS: head, CrosswindMPS: cross}, // wind only
		{AirDensityKGM3: AirDensity(conditions.TemperatureF, neutral.AltitudeFt, neutral.HumidityPct, neutral.PressureInHg)},
		{AirDensityKGM3: AirDensity(neutral.TemperatureF, conditions.AltitudeFt, neutral.HumidityPct, neutral.PressureInHg)},
		{AirDensityKGM3: AirDensity(neutral.TemperatureF, neutral.AltitudeFt, conditions.HumidityPct, neutral.PressureInHg)},
	}

	results := make([]types.FlightResult, len(envs))
	g, ctx := errgroup.WithContext(ctx)
	for i, env := range envs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Simulate(shot, env)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseline, adjusted := results[0], results[1]
	windOnly, tempOnly, altOnly, humidOnly := results[2], results[3], results[4], results[5]

	// Only the adjusted flight's samples are surfaced to callers.
	baseline.TrajectoryPoints = nil

	analysis := &types.ImpactAnalysis{
		Adjusted: adjusted,
		Baseline: baseline,
		Breakdown: types.ImpactBreakdown{
			WindEffectYards:        diffYards(windOnly.CarryYards, baseline.CarryYards),
			WindLateralYards:       diffYards(windOnly.LateralDriftYards, baseline.LateralDriftYards),
			TemperatureEffectYards: diffYards(tempOnly.CarryYards, baseline.CarryYards),
			AltitudeEffectYards:    diffYards(altOnly.CarryYards, baseline.CarryYards),
			HumidityEffectYards:    diffYards(humidOnly.CarryYards, baseline.CarryYards),
			TotalAdjustmentYards:   diffYards(adjusted.CarryYards, baseline.CarryYards),
		},
		EquivalentCalmDistanceYards: baseline.CarryYards,
	}

	elapsed := time.Since(start)
	if e.Metrics != nil {
		e.Metrics.Timing(ctx, types.MetricSimulationTime, elapsed, nil)
	}
	if elapsed > slowAnalysisThreshold {
		e.warn("slow impact analysis", "elapsed_ms", elapsed.Milliseconds())
	}
	return analysis, nil
}

// slowAnalysisThreshold flags analyses that take long enough to threaten the
// request deadline. The six flights normally finish in single-digit
// milliseconds.
const slowAnalysisThreshold = 250 * time.Millisecond

func (e *Engine) warn(msg string, args ...any) {
	if e.Log != nil {
		e.Log.Warn(msg, args...)
	}
}

// diffYards re-rounds the difference of two already-rounded carries so float
// noise never shows up in the attribution numbers.
func diffYards(a, b float64) float64 {
	return round1(a - b)
}
