package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindComponentsPureHeadwind(t *testing.T) {
	head, cross := WindComponents(10, 0)
	assert.InDelta(t, 4.4704, head, 1e-9)
	assert.InDelta(t, 0, cross, 1e-9)
}

func TestWindComponentsPureCrosswind(t *testing.T) {
	head, cross := WindComponents(10, 90)
	assert.InDelta(t, 0, head, 1e-9)
	assert.InDelta(t, 4.4704, cross, 1e-9)
}

func TestWindComponentsTailwind(t *testing.T) {
	head, cross := WindComponents(10, 180)
	assert.InDelta(t, -4.4704, head, 1e-9)
	assert.InDelta(t, 0, cross, 1e-6)
}

func TestWindComponentsMagnitudePreserved(t *testing.T) {
	for _, dir := range []float64{0, 37, 90, 135, 180, 222, 270, 315} {
		head, cross := WindComponents(25, dir)
		mag := math.Sqrt(head*head + cross*cross)
		assert.InDelta(t, 25*0.44704, mag, 1e-9, "direction %v", dir)
	}
}

func TestWindComponentsCalm(t *testing.T) {
	head, cross := WindComponents(0, 123)
	assert.Zero(t, head)
	assert.Zero(t, cross)
}
