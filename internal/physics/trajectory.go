package physics

import (
	"math"

	"golfphysics/internal/types"
)

// Environment is the resolved physical environment a flight is simulated in:
// an air density plus the wind decomposed into shot-relative components.
type Environment struct {
	AirDensityKGM3 float64
	HeadwindMPS    float64
	CrosswindMPS   float64
}

// EnvironmentFor resolves weather conditions into a simulation environment.
func EnvironmentFor(c types.WeatherConditions) Environment {
	head, cross := WindComponents(c.WindSpeedMPH, c.WindDirectionDeg)
	return Environment{
		AirDensityKGM3: AirDensity(c.TemperatureF, c.AltitudeFt, c.HumidityPct, c.PressureInHg),
		HeadwindMPS:    head,
		CrosswindMPS:   cross,
	}
}

// CalmEnvironment is the reference environment: standard air density, no wind.
func CalmEnvironment() Environment {
	return Environment{AirDensityKGM3: StandardAirDensity}
}

// Simulate integrates a single ball flight through the given environment.
//
// The state is advanced by forward Euler at a fixed 10ms step: accelerations
// from drag (opposing air-relative velocity), Magnus lift (tilted by the spin
// axis), and gravity update the velocity first, then the velocity updates the
// position. Integration stops when the ball returns to ground level, the
// air-relative speed collapses below 0.1 m/s, or the 15 second cap is hit.
//
// Positions are tracked in meters and converted to yards only at the output
// boundary. The trajectory is sampled every 0.1s of flight time, with the
// origin always included and displayed height floored at zero.
func Simulate(shot types.ShotParameters, env Environment) types.FlightResult {
	speed := shot.BallSpeedMPH * mphToMPS
	launchRad := shot.LaunchAngleDeg * math.Pi / 180
	dirRad := shot.DirectionDeg * math.Pi / 180
	spinAxisRad := shot.SpinAxisDeg * math.Pi / 180

	vx := speed * math.Cos(launchRad) * math.Cos(dirRad)
	vy := speed * math.Sin(launchRad)
	vz := speed * math.Cos(launchRad) * math.Sin(dirRad)

	var x, y, z float64
	var maxHeight, flightTime, lastSampleTime float64

	points := []types.TrajectoryPoint{{X: 0, Y: 0, Z: 0}}

	for y >= 0 && flightTime < maxFlightSeconds {
		// Air-relative velocity. A headwind adds to the relative airspeed in
		// x; a positive crosswind reduces it in z (wind pushing the ball).
		vxRel := vx + env.HeadwindMPS
		vzRel := vz - env.CrosswindMPS
		vRel := math.Sqrt(vxRel*vxRel + vy*vy + vzRel*vzRel)
		if vRel < minRelativeSpeed {
			break
		}

		cd := DragCoefficient(shot.SpinRateRPM, vRel)
		cl := LiftCoefficient(shot.SpinRateRPM, vRel)

		dragFactor := 0.5 * env.AirDensityKGM3 * ballAreaM2 * cd * vRel
		axDrag := -dragFactor * vxRel / ballMassKG
		ayDrag := -dragFactor * vy / ballMassKG
		azDrag := -dragFactor * vzRel / ballMassKG

		liftFactor := 0.5 * env.AirDensityKGM3 * ballAreaM2 * cl * vRel
		ayLift := liftFactor * math.Cos(spinAxisRad) / ballMassKG
		azLift := liftFactor * math.Sin(spinAxisRad) / ballMassKG

		ax := axDrag
		ay := ayDrag + ayLift - gravityMPS2
		az := azDrag + azLift

		vx += ax * timeStepSeconds
		vy += ay * timeStepSeconds
		vz += az * timeStepSeconds

		x += vx * timeStepSeconds
		y += vy * timeStepSeconds
		z += vz * timeStepSeconds

		if y > maxHeight {
			maxHeight = y
		}
		flightTime += timeStepSeconds

		if flightTime-lastSampleTime >= sampleIntervalSec {
			points = append(points, types.TrajectoryPoint{
				X: round1(x * metersToYards),
				Y: round1(math.Max(0, y) * metersToYards),
				Z: round1(z * metersToYards),
			})
			lastSampleTime = flightTime
		}
	}

	carry := x * metersToYards

	// Landing angle from the terminal velocity in the vertical plane. A dead
	// ball (both components zero) gets the 45 degree fallback so the roll
	// model still produces something sensible.
	landingAngle := 45.0
	if math.Sqrt(vx*vx+vy*vy) > 0 {
		landingAngle = math.Atan2(math.Abs(vy), math.Abs(vx)) * 180 / math.Pi
	}

	// Steeper landings roll less. Clamped so even the shallowest landing
	// rolls at most 15% of carry and the steepest never below 5%.
	rollFraction := math.Max(0.05, 0.15-(landingAngle-40)*0.003)
	total := carry + carry*rollFraction

	return types.FlightResult{
		CarryYards:        round1(carry),
		TotalYards:        round1(total),
		LateralDriftYards: round1(z * metersToYards),
		ApexHeightYards:   round1(maxHeight * metersToYards),
		FlightTimeSeconds: round2(flightTime),
		LandingAngleDeg:   round1(landingAngle),
		TrajectoryPoints:  points,
	}
}
