package physics

import "math"

// Gas constants for the humid-air density calculation (J/(kg*K)).
const (
	gasConstantDryAir = 287.05
	gasConstantVapor  = 461.495

	inHgToPa = 3386.39

	// scaleHeightM is the exponential atmosphere scale height used for the
	// altitude density decay.
	scaleHeightM = 8500.0
)

// AirDensity computes the air density in kg/m^3 for the given surface
// conditions. The station pressure is split into dry-air and water-vapor
// partial pressures (humid air is lighter than dry air), each treated as an
// ideal gas, then the result is decayed exponentially with altitude.
//
// Saturation vapor pressure uses the Magnus formula over water, which is
// accurate to well under 1% across the supported temperature range.
func AirDensity(tempF, altitudeFt, humidityPct, pressureInHg float64) float64 {
	tempC := (tempF - 32) * 5 / 9
	tempK := tempC + 273.15
	altitudeM := altitudeFt * feetToMeters
	pressurePa := pressureInHg * inHgToPa

	// Magnus saturation vapor pressure, hPa -> Pa.
	satVaporPa := 6.1078 * math.Pow(10, 7.5*tempC/(tempC+237.3)) * 100
	vaporPa := (humidityPct / 100) * satVaporPa
	dryPa := pressurePa - vaporPa

	density := dryPa/(gasConstantDryAir*tempK) + vaporPa/(gasConstantVapor*tempK)

	return density * math.Exp(-altitudeM/scaleHeightM)
}
