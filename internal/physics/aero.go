package physics

import "math"

// Aerodynamic coefficient model: both drag and lift grow linearly with the
// spin parameter (surface speed from spin over airspeed) from a laminar base
// value up to a hard cap. Tuned against launch monitor carry tables rather
// than wind tunnel data.
const (
	dragCoefficientBase = 0.25
	dragSpinSlope       = 0.1
	dragCoefficientMax  = 0.5

	liftCoefficientBase = 0.15
	liftSpinSlope       = 0.2
	liftCoefficientMax  = 0.4
)

// spinParameter is the ratio of the ball's equatorial surface speed to its
// airspeed. Zero-speed guards live in the callers because their fallbacks
// differ.
func spinParameter(spinRateRPM, speedMPS float64) float64 {
	spinRPS := spinRateRPM / 60
	return (spinRPS * 2 * math.Pi * ballRadiusM) / speedMPS
}

// DragCoefficient returns the drag coefficient for the given spin rate and
// airspeed. At zero or negative airspeed it returns the spin-free base value.
func DragCoefficient(spinRateRPM, speedMPS float64) float64 {
	if speedMPS <= 0 {
		return dragCoefficientBase
	}
	cd := dragCoefficientBase + dragSpinSlope*spinParameter(spinRateRPM, speedMPS)
	return math.Min(cd, dragCoefficientMax)
}

// LiftCoefficient returns the Magnus lift coefficient for the given spin rate
// and airspeed. No airflow means no lift, so zero or negative airspeed
// returns 0 rather than the base value.
func LiftCoefficient(spinRateRPM, speedMPS float64) float64 {
	if speedMPS <= 0 {
		return 0
	}
	cl := liftCoefficientBase + liftSpinSlope*spinParameter(spinRateRPM, speedMPS)
	return math.Min(cl, liftCoefficientMax)
}
