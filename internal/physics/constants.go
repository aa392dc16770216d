package physics

import "math"

// Ball and environment constants. These are the regulation golf ball mass and
// diameter plus the standard unit conversions; every simulated distance the
// API has ever returned depends on them, so treat changes as breaking.
const (
	ballMassKG    = 0.04593
	ballDiameterM = 0.04267
	ballRadiusM   = ballDiameterM / 2

	gravityMPS2 = 9.81

	// StandardAirDensity is the baseline air density (kg/m^3) used for the
	// calm-air reference flight and for isolated wind runs.
	StandardAirDensity = 1.225

	mphToMPS      = 0.44704
	feetToMeters  = 0.3048
	metersToYards = 1.09361

	// Integrator parameters: forward Euler at a fixed 10ms step, with a hard
	// flight time cap so pathological inputs cannot spin forever.
	timeStepSeconds   = 0.01
	maxFlightSeconds  = 15.0
	minRelativeSpeed  = 0.1
	sampleIntervalSec = 0.1
)

// ballAreaM2 is the ball's cross-sectional area used in drag and lift.
var ballAreaM2 = math.Pi * ballRadiusM * ballRadiusM

// round1 rounds to one decimal place. All distances in yards and angles in
// degrees are presented at this precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 rounds to two decimal places, used for flight time.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
