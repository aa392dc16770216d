package types

// Validation constraint constants.
// These mirror the validator tags on the DTOs and are the authoritative
// ranges the physics engine accepts.
const (
	MaxBallSpeedMPH   = 220.0
	MinLaunchAngleDeg = -10.0
	MaxLaunchAngleDeg = 60.0
	MaxSpinRateRPM    = 15000.0
	MaxSpinAxisDeg    = 90.0
	MaxDirectionDeg   = 45.0

	MaxWindSpeedMPH = 60.0
	MinTemperatureF = -20.0
	MaxTemperatureF = 120.0
	MinAltitudeFt   = -500.0
	MaxAltitudeFt   = 12000.0
	MinPressureInHg = 18.0
	MaxPressureInHg = 32.0
)

// Validate checks the shot against the accepted launch monitor ranges.
func (s ShotParameters) Validate() error {
	if s.BallSpeedMPH <= 0 || s.BallSpeedMPH > MaxBallSpeedMPH {
		return NewAppError(ErrCodeValidationShotParams, "ball_speed_mph must be in (0, 220]", nil)
	}
	if s.LaunchAngleDeg < MinLaunchAngleDeg || s.LaunchAngleDeg > MaxLaunchAngleDeg {
		return NewAppError(ErrCodeValidationShotParams, "launch_angle_deg must be in [-10, 60]", nil)
	}
	if s.SpinRateRPM < 0 || s.SpinRateRPM > MaxSpinRateRPM {
		return NewAppError(ErrCodeValidationShotParams, "spin_rate_rpm must be in [0, 15000]", nil)
	}
	if s.SpinAxisDeg < -MaxSpinAxisDeg || s.SpinAxisDeg > MaxSpinAxisDeg {
		return NewAppError(ErrCodeValidationShotParams, "spin_axis_deg must be in [-90, 90]", nil)
	}
	if s.DirectionDeg < -MaxDirectionDeg || s.DirectionDeg > MaxDirectionDeg {
		return NewAppError(ErrCodeValidationShotParams, "direction_deg must be in [-45, 45]", nil)
	}
	return nil
}

// Validate checks the conditions against the supported environment ranges.
func (c WeatherConditions) Validate() error {
	if c.WindSpeedMPH < 0 || c.WindSpeedMPH > MaxWindSpeedMPH {
		return NewAppError(ErrCodeValidationConditions, "wind_speed_mph must be in [0, 60]", nil)
	}
	if c.WindDirectionDeg < 0 || c.WindDirectionDeg >= 360 {
		return NewAppError(ErrCodeValidationConditions, "wind_direction_deg must be in [0, 360)", nil)
	}
	if c.TemperatureF < MinTemperatureF || c.TemperatureF > MaxTemperatureF {
		return NewAppError(ErrCodeValidationConditions, "temperature_f must be in [-20, 120]", nil)
	}
	if c.AltitudeFt < MinAltitudeFt || c.AltitudeFt > MaxAltitudeFt {
		return NewAppError(ErrCodeValidationConditions, "altitude_ft must be in [-500, 12000]", nil)
	}
	if c.HumidityPct < 0 || c.HumidityPct > 100 {
		return NewAppError(ErrCodeValidationConditions, "humidity_pct must be in [0, 100]", nil)
	}
	if c.PressureInHg < MinPressureInHg || c.PressureInHg > MaxPressureInHg {
		return NewAppError(ErrCodeValidationConditions, "pressure_inhg must be in [18, 32]", nil)
	}
	return nil
}
