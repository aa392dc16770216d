package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDragCoefficientZeroSpeed(t *testing.T) {
	assert.Equal(t, 0.25, DragCoefficient(3000, 0))
	assert.Equal(t, 0.25, DragCoefficient(3000, -1))
}

func TestDragCoefficientZeroSpin(t *testing.T) {
	assert.Equal(t, 0.25, DragCoefficient(0, 70))
}

func TestDragCoefficientGrowsWithSpin(t *testing.T) {
	low := DragCoefficient(2000, 70)
	high := DragCoefficient(6000, 70)
	assert.Greater(t, high, low)
}

func TestDragCoefficientCap(t *testing.T) {
	// Extreme spin at a crawl produces a huge spin parameter; cd must cap at 0.5.
	assert.Equal(t, 0.5, DragCoefficient(15000, 1))
}

func TestLiftCoefficientZeroSpeed(t *testing.T) {
	// No airflow, no Magnus force. Unlike drag there is no base value.
	assert.Equal(t, 0.0, LiftCoefficient(3000, 0))
	assert.Equal(t, 0.0, LiftCoefficient(3000, -5))
}

func TestLiftCoefficientZeroSpin(t *testing.T) {
	assert.Equal(t, 0.15, LiftCoefficient(0, 70))
}

func TestLiftCoefficientCap(t *testing.T) {
	assert.Equal(t, 0.4, LiftCoefficient(15000, 1))
}

func TestCoefficientsAgreeOnSpinParameter(t *testing.T) {
	// Same spin parameter feeds both models; check the linear slopes directly.
	sp := spinParameter(3000, 70)
	assert.InDelta(t, 0.25+0.1*sp, DragCoefficient(3000, 70), 1e-12)
	assert.InDelta(t, 0.15+0.2*sp, LiftCoefficient(3000, 70), 1e-12)
}
