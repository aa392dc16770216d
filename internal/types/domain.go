package types

import (
	"time"
)

// ShotParameters describes the launch monitor data for a single golf shot.
// Units follow the launch monitor convention: speed in mph, angles in degrees,
// spin in rpm. SpinAxisDeg tilts the lift vector (positive = fade/right),
// DirectionDeg is the initial horizontal aim relative to the target line.
type ShotParameters struct {
	BallSpeedMPH   float64 `json:"ball_speed_mph"`
	LaunchAngleDeg float64 `json:"launch_angle_deg"`
	SpinRateRPM    float64 `json:"spin_rate_rpm"`
	SpinAxisDeg    float64 `json:"spin_axis_deg"`
	DirectionDeg   float64 `json:"direction_deg"`
}

// WeatherConditions describes the ambient environment a shot is played in.
// Imperial units throughout, matching what US golfers and weather feeds report.
type WeatherConditions struct {
	WindSpeedMPH     float64 `json:"wind_speed_mph"`
	WindDirectionDeg float64 `json:"wind_direction_deg"`
	TemperatureF     float64 `json:"temperature_f"`
	AltitudeFt       float64 `json:"altitude_ft"`
	HumidityPct      float64 `json:"humidity_pct"`
	PressureInHg     float64 `json:"pressure_inhg"`
}

// NeutralConditions are the fixed reference conditions used when isolating a
// single weather factor: 70F, sea level, 50% humidity, standard pressure,
// no wind. Changing these changes every attribution number the API reports.
var NeutralConditions = WeatherConditions{
	WindSpeedMPH:     0,
	WindDirectionDeg: 0,
	TemperatureF:     70,
	AltitudeFt:       0,
	HumidityPct:      50,
	PressureInHg:     29.92,
}

// TrajectoryPoint is one sampled position along the ball flight, in yards.
// X is downrange, Y is height above ground, Z is lateral (positive right).
type TrajectoryPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// FlightResult summarizes a single simulated ball flight.
// All distances are in yards, rounded to one decimal for presentation parity
// across every consumer of the API.
type FlightResult struct {
	CarryYards        float64           `json:"carry_yards"`
	TotalYards        float64           `json:"total_yards"`
	LateralDriftYards float64           `json:"lateral_drift_yards"`
	ApexHeightYards   float64           `json:"apex_height_yards"`
	FlightTimeSeconds float64           `json:"flight_time_seconds"`
	LandingAngleDeg   float64           `json:"landing_angle_deg"`
	TrajectoryPoints  []TrajectoryPoint `json:"trajectory_points,omitempty"`
}

// ImpactBreakdown attributes the carry difference between baseline and
// adjusted flights to individual weather factors. Factor effects come from
// isolated runs and are not constrained to sum to TotalAdjustmentYards.
type ImpactBreakdown struct {
	WindEffectYards        float64 `json:"wind_effect_yards"`
	WindLateralYards       float64 `json:"wind_lateral_yards"`
	TemperatureEffectYards float64 `json:"temperature_effect_yards"`
	AltitudeEffectYards    float64 `json:"altitude_effect_yards"`
	HumidityEffectYards    float64 `json:"humidity_effect_yards"`
	TotalAdjustmentYards   float64 `json:"total_adjustment_yards"`
}

// ImpactAnalysis is the full output of a weather-adjusted trajectory request:
// the flight under actual conditions, the calm-air reference flight, and the
// per-factor attribution between them.
type ImpactAnalysis struct {
	Adjusted                    FlightResult    `json:"adjusted"`
	Baseline                    FlightResult    `json:"baseline"`
	Breakdown                   ImpactBreakdown `json:"impact_breakdown"`
	EquivalentCalmDistanceYards float64         `json:"equivalent_calm_distance_yards"`
}

// ObservedConditions records the weather actually used for a simulation when
// it was fetched from an upstream provider rather than supplied by the caller.
type ObservedConditions struct {
	Location         string    `json:"location"`
	TemperatureF     float64   `json:"temperature_f"`
	HumidityPct      float64   `json:"humidity_pct"`
	PressureInHg     float64   `json:"pressure_inhg"`
	WindSpeedMPH     float64   `json:"wind_speed_mph"`
	WindDirectionDeg float64   `json:"wind_direction_deg"`
	AltitudeFt       float64   `json:"altitude_ft"`
	ConditionsText   string    `json:"conditions_text"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// Weather returns the observed conditions as simulation inputs.
func (o ObservedConditions) Weather() WeatherConditions {
	return WeatherConditions{
		WindSpeedMPH:     o.WindSpeedMPH,
		WindDirectionDeg: o.WindDirectionDeg,
		TemperatureF:     o.TemperatureF,
		AltitudeFt:       o.AltitudeFt,
		HumidityPct:      o.HumidityPct,
		PressureInHg:     o.PressureInHg,
	}
}

// APIClient is a customer record in the api_clients table. The plaintext key
// is never stored; KeyHash holds its SHA-256 hex digest.
type APIClient struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Company   string     `json:"company"`
	Tier      PlanTier   `json:"tier"`
	KeyHash   string     `json:"-"`
	Active    bool       `json:"active"`
	CreatedAt time.Time  `json:"created_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
}

// Lead is a captured sales contact from the public contact form or a
// self-serve API key request.
type Lead struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Company        string       `json:"company"`
	Message        string       `json:"message,omitempty"`
	UseCase        string       `json:"use_case,omitempty"`
	ExpectedVolume string       `json:"expected_volume,omitempty"`
	Source         LeadSource   `json:"source"`
	Priority       LeadPriority `json:"priority"`
	Status         LeadStatus   `json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
}

// UsageDay is one row of the per-client, per-endpoint daily usage aggregate.
type UsageDay struct {
	ClientID       string    `json:"client_id"`
	Endpoint       string    `json:"endpoint"`
	Date           time.Time `json:"date"`
	RequestCount   int64     `json:"request_count"`
	ErrorCount     int64     `json:"error_count"`
	TotalLatencyMS int64     `json:"total_latency_ms"`
}

// RequestLog is one row of the raw request log, kept for debugging and
// per-request billing disputes.
type RequestLog struct {
	ID         string    `json:"id"`
	ClientID   string    `json:"client_id"`
	Endpoint   string    `json:"endpoint"`
	Method     string    `json:"method"`
	StatusCode int       `json:"status_code"`
	LatencyMS  int64     `json:"latency_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// ClientUsageSummary aggregates a client's usage over a reporting window.
type ClientUsageSummary struct {
	ClientID      string  `json:"client_id"`
	Days          int     `json:"days"`
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
}

// CourseLocation is an entry in the golf course lookup table. AltitudeFt is
// the course's playing elevation and takes precedence over any city-level
// altitude when both are known.
type CourseLocation struct {
	Name       string  `json:"name"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Country    string  `json:"country"`
	AltitudeFt float64 `json:"altitude_ft"`
}
