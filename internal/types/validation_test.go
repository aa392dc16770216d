package types

import (
	"errors"
	"testing"
)

func validShot() ShotParameters {
	return ShotParameters{
		BallSpeedMPH:   167,
		LaunchAngleDeg: 10.9,
		SpinRateRPM:    2686,
	}
}

func TestShotParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ShotParameters)
		wantOK bool
	}{
		{"valid driver shot", func(s *ShotParameters) {}, true},
		{"zero ball speed", func(s *ShotParameters) { s.BallSpeedMPH = 0 }, false},
		{"negative ball speed", func(s *ShotParameters) { s.BallSpeedMPH = -10 }, false},
		{"ball speed over cap", func(s *ShotParameters) { s.BallSpeedMPH = 220.1 }, false},
		{"ball speed at cap", func(s *ShotParameters) { s.BallSpeedMPH = 220 }, true},
		{"launch below range", func(s *ShotParameters) { s.LaunchAngleDeg = -10.1 }, false},
		{"negative launch in range", func(s *ShotParameters) { s.LaunchAngleDeg = -5 }, true},
		{"launch above range", func(s *ShotParameters) { s.LaunchAngleDeg = 61 }, false},
		{"negative spin", func(s *ShotParameters) { s.SpinRateRPM = -1 }, false},
		{"spin over cap", func(s *ShotParameters) { s.SpinRateRPM = 15001 }, false},
		{"spin axis out of range", func(s *ShotParameters) { s.SpinAxisDeg = 91 }, false},
		{"direction out of range", func(s *ShotParameters) { s.DirectionDeg = -46 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shot := validShot()
			tt.mutate(&shot)
			err := shot.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK {
				var appErr *AppError
				if !errors.As(err, &appErr) {
					t.Fatalf("Validate() should return *AppError, got %v", err)
				}
				if appErr.Code != ErrCodeValidationShotParams {
					t.Errorf("Code = %q, want %q", appErr.Code, ErrCodeValidationShotParams)
				}
			}
		})
	}
}

func TestWeatherConditionsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*WeatherConditions)
		wantOK bool
	}{
		{"neutral defaults", func(c *WeatherConditions) {}, true},
		{"negative wind", func(c *WeatherConditions) { c.WindSpeedMPH = -1 }, false},
		{"wind over cap", func(c *WeatherConditions) { c.WindSpeedMPH = 60.5 }, false},
		{"direction 360 rejected", func(c *WeatherConditions) { c.WindDirectionDeg = 360 }, false},
		{"direction 359.9 accepted", func(c *WeatherConditions) { c.WindDirectionDeg = 359.9 }, true},
		{"temperature floor", func(c *WeatherConditions) { c.TemperatureF = -20 }, true},
		{"temperature below floor", func(c *WeatherConditions) { c.TemperatureF = -21 }, false},
		{"altitude ceiling", func(c *WeatherConditions) { c.AltitudeFt = 12000 }, true},
		{"altitude above ceiling", func(c *WeatherConditions) { c.AltitudeFt = 12001 }, false},
		{"below sea level ok", func(c *WeatherConditions) { c.AltitudeFt = -400 }, true},
		{"humidity over 100", func(c *WeatherConditions) { c.HumidityPct = 101 }, false},
		{"pressure below floor", func(c *WeatherConditions) { c.PressureInHg = 17.9 }, false},
		{"pressure above ceiling", func(c *WeatherConditions) { c.PressureInHg = 32.1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := NeutralConditions
			tt.mutate(&cond)
			err := cond.Validate()
			if tt.wantOK && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

// TestNeutralConditionsValues pins the neutral reference conditions.
// Every attribution number the API reports depends on these exact values.
func TestNeutralConditionsValues(t *testing.T) {
	n := NeutralConditions
	if n.TemperatureF != 70 || n.AltitudeFt != 0 || n.HumidityPct != 50 ||
		n.PressureInHg != 29.92 || n.WindSpeedMPH != 0 || n.WindDirectionDeg != 0 {
		t.Errorf("NeutralConditions changed: %+v", n)
	}
}
