package types

import (
	"time"
)

// ShotDTO is the wire form of ShotParameters. SpinAxisDeg and DirectionDeg
// are optional and default to 0 (a straight shot at the target line).
type ShotDTO struct {
	BallSpeedMPH   float64  `json:"ball_speed_mph" validate:"required,gt=0,lte=220"`
	LaunchAngleDeg float64  `json:"launch_angle_deg" validate:"gte=-10,lte=60"`
	SpinRateRPM    float64  `json:"spin_rate_rpm" validate:"gte=0,lte=15000"`
	SpinAxisDeg    *float64 `json:"spin_axis_deg,omitempty" validate:"omitempty,gte=-90,lte=90"`
	DirectionDeg   *float64 `json:"direction_deg,omitempty" validate:"omitempty,gte=-45,lte=45"`
}

// ToShot converts the DTO to domain shot parameters, applying defaults.
func (d ShotDTO) ToShot() ShotParameters {
	s := ShotParameters{
		BallSpeedMPH:   d.BallSpeedMPH,
		LaunchAngleDeg: d.LaunchAngleDeg,
		SpinRateRPM:    d.SpinRateRPM,
	}
	if d.SpinAxisDeg != nil {
		s.SpinAxisDeg = *d.SpinAxisDeg
	}
	if d.DirectionDeg != nil {
		s.DirectionDeg = *d.DirectionDeg
	}
	return s
}

// ConditionsDTO is the wire form of WeatherConditions. Every field is
// optional; omitted fields take the neutral defaults (70F, sea level, 50%
// humidity, 29.92 inHg, calm air).
type ConditionsDTO struct {
	WindSpeedMPH     *float64 `json:"wind_speed_mph,omitempty" validate:"omitempty,gte=0,lte=60"`
	WindDirectionDeg *float64 `json:"wind_direction_deg,omitempty" validate:"omitempty,gte=0,lt=360"`
	TemperatureF     *float64 `json:"temperature_f,omitempty" validate:"omitempty,gte=-20,lte=120"`
	AltitudeFt       *float64 `json:"altitude_ft,omitempty" validate:"omitempty,gte=-500,lte=12000"`
	HumidityPct      *float64 `json:"humidity_pct,omitempty" validate:"omitempty,gte=0,lte=100"`
	PressureInHg     *float64 `json:"pressure_inhg,omitempty" validate:"omitempty,gte=18,lte=32"`
}

// ToConditions converts the DTO to domain conditions, applying neutral
// defaults for omitted fields.
func (d *ConditionsDTO) ToConditions() WeatherConditions {
	c := NeutralConditions
	if d == nil {
		return c
	}
	if d.WindSpeedMPH != nil {
		c.WindSpeedMPH = *d.WindSpeedMPH
	}
	if d.WindDirectionDeg != nil {
		c.WindDirectionDeg = *d.WindDirectionDeg
	}
	if d.TemperatureF != nil {
		c.TemperatureF = *d.TemperatureF
	}
	if d.AltitudeFt != nil {
		c.AltitudeFt = *d.AltitudeFt
	}
	if d.HumidityPct != nil {
		c.HumidityPct = *d.HumidityPct
	}
	if d.PressureInHg != nil {
		c.PressureInHg = *d.PressureInHg
	}
	return c
}

// LocationQuery identifies a city for weather lookup.
type LocationQuery struct {
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state,omitempty" validate:"max=100"`
	Country string `json:"country,omitempty" validate:"max=100"`
}

// CourseQuery identifies a golf course by name.
type CourseQuery struct {
	Name string `json:"name" validate:"required,max=200"`
}

// TrajectoryRequest is the body of POST /v1/trajectory.
type TrajectoryRequest struct {
	Shot       ShotDTO        `json:"shot" validate:"required"`
	Conditions *ConditionsDTO `json:"conditions,omitempty"`
}

// TrajectoryLocationRequest is the body of POST /v1/trajectory/location.
type TrajectoryLocationRequest struct {
	Shot     ShotDTO       `json:"shot" validate:"required"`
	Location LocationQuery `json:"location" validate:"required"`
}

// TrajectoryCourseRequest is the body of POST /v1/trajectory/course.
type TrajectoryCourseRequest struct {
	Shot   ShotDTO     `json:"shot" validate:"required"`
	Course CourseQuery `json:"course" validate:"required"`
}

// TrajectoryResponse is the payload for all three trajectory endpoints.
// TrajectoryPoints samples the adjusted flight; ConditionsUsed is only set
// when the weather was fetched rather than supplied.
type TrajectoryResponse struct {
	Adjusted                    FlightResult        `json:"adjusted"`
	Baseline                    FlightResult        `json:"baseline"`
	Breakdown                   ImpactBreakdown     `json:"impact_breakdown"`
	EquivalentCalmDistanceYards float64             `json:"equivalent_calm_distance_yards"`
	TrajectoryPoints            []TrajectoryPoint   `json:"trajectory_points"`
	ConditionsUsed              *ObservedConditions `json:"conditions_used,omitempty"`
}

// ContactRequest is the body of POST /v1/contact.
type ContactRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Company        string `json:"company,omitempty" validate:"max=200"`
	Message        string `json:"message" validate:"required,max=2000"`
	RecaptchaToken string `json:"recaptcha_token,omitempty"`
}

// APIKeyRequest is the body of POST /v1/request-api-key.
type APIKeyRequest struct {
	Name           string `json:"name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Company        string `json:"company,omitempty" validate:"max=200"`
	UseCase        string `json:"use_case,omitempty" validate:"max=2000"`
	ExpectedVolume string `json:"expected_volume,omitempty" validate:"max=100"`
	AcceptTerms    bool   `json:"accept_terms"`
	RecaptchaToken string `json:"recaptcha_token,omitempty"`
}

// APIKeyIssuedResponse returns the one and only copy of a new plaintext key.
type APIKeyIssuedResponse struct {
	APIKey         string   `json:"api_key"`
	ClientID       string   `json:"client_id"`
	Tier           PlanTier `json:"tier"`
	RequestsPerMin int      `json:"requests_per_minute"`
	RequestsPerDay int      `json:"requests_per_day"`
	DocsURL        string   `json:"docs_url,omitempty"`
}

// CheckoutRequest is the body of POST /v1/billing/checkout.
type CheckoutRequest struct {
	Tier       PlanTier `json:"tier" validate:"required"`
	SuccessURL string   `json:"success_url" validate:"required,url"`
	CancelURL  string   `json:"cancel_url" validate:"required,url"`
}

// CheckoutResponse carries the hosted payment page URL.
type CheckoutResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}
