package physics

import "math"

// WindComponents decomposes a wind vector into headwind and crosswind
// components in m/s. Direction follows the shot-relative convention:
// 0 degrees blows straight at the golfer (pure headwind, hurts carry),
// 90 degrees blows left to right (positive crosswind), 180 is a tailwind
// (negative headwind).
func WindComponents(speedMPH, directionDeg float64) (headwindMPS, crosswindMPS float64) {
	speedMPS := speedMPH * mphToMPS
	dirRad := directionDeg * math.Pi / 180
	return speedMPS * math.Cos(dirRad), speedMPS * math.Sin(dirRad)
}
