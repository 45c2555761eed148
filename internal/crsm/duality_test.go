package crsm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// probe values shared by the operator tests. Zero, negatives, and large
// magnitudes are all legal inputs.
var dualityProbes = []float64{0, 1, -1, 0.5, -0.5, 3.14159, -2.71828, 1e6, -1e6, 1e-9}

// TestDualityOperator_Involution tests J(J(x)) == x within tolerance.
func TestDualityOperator_Involution(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.InDelta(t, x, d.J(d.J(x)), 1e-10, "J∘J must return %v", x)
		assert.True(t, d.VerifyInvolution(x))
	}
}

// TestDualityOperator_PiPlusDegenerate tests that Π+ vanishes everywhere
// under the negation realization of J.
func TestDualityOperator_PiPlusDegenerate(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.Equal(t, 0.0, d.PiPlus(x), "Π+(%v) must be exactly zero", x)
	}
}

// TestDualityOperator_PiMinusIdentity tests that Π− passes values through.
func TestDualityOperator_PiMinusIdentity(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.Equal(t, x, d.PiMinus(x), "Π−(%v) must be the identity", x)
	}
}

// TestDualityOperator_Completeness tests Π+ + Π− = I.
func TestDualityOperator_Completeness(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.InDelta(t, x, d.PiPlus(x)+d.PiMinus(x), 1e-10)
	}
}

// TestDualityOperator_Idempotence tests Π∘Π = Π for both projections.
func TestDualityOperator_Idempotence(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.Equal(t, d.PiPlus(x), d.PiPlus(d.PiPlus(x)))
		assert.Equal(t, d.PiMinus(x), d.PiMinus(d.PiMinus(x)))
	}
}

// TestDualityOperator_Orthogonality tests Π+(x)·Π−(x) ≈ 0.
func TestDualityOperator_Orthogonality(t *testing.T) {
	d := NewDualityOperator()

	for _, x := range dualityProbes {
		assert.InDelta(t, 0.0, d.PiPlus(x)*d.PiMinus(x), 1e-10)
	}
}

// TestDualityOperator_Linearity tests both projections over a linear
// combination.
func TestDualityOperator_Linearity(t *testing.T) {
	d := NewDualityOperator()

	a, b := 2.5, -1.5
	x, y := 3.0, 7.0

	assert.InDelta(t, a*d.PiMinus(x)+b*d.PiMinus(y), d.PiMinus(a*x+b*y), 1e-10)
	assert.InDelta(t, a*d.PiPlus(x)+b*d.PiPlus(y), d.PiPlus(a*x+b*y), 1e-10)
}

// TestDualityOperator_Apply tests polarity selection, including the
// boundary: polarity zero selects Π+.
func TestDualityOperator_Apply(t *testing.T) {
	d := NewDualityOperator()

	assert.Equal(t, 0.0, d.Apply(0.75, 1.0), "positive polarity selects Π+")
	assert.Equal(t, 0.0, d.Apply(0.75, 0.0), "zero polarity selects Π+")
	assert.Equal(t, 0.75, d.Apply(0.75, -1.0), "negative polarity selects Π−")
}

// TestDualityOperator_Bifurcate tests the projection pair.
func TestDualityOperator_Bifurcate(t *testing.T) {
	d := NewDualityOperator()

	plus, minus := d.Bifurcate(0.42)
	assert.Equal(t, d.PiPlus(0.42), plus)
	assert.Equal(t, d.PiMinus(0.42), minus)
}

// TestDualityOperator_IsCritical tests the critical band around 1/φ.
func TestDualityOperator_IsCritical(t *testing.T) {
	d := NewDualityOperator()

	assert.True(t, d.IsCritical(DetCritical))
	assert.True(t, d.IsCritical(DetCritical+0.009))
	assert.True(t, d.IsCritical(DetCritical-0.009))
	assert.False(t, d.IsCritical(DetCritical+0.011))
	assert.False(t, d.IsCritical(0.5))
	assert.False(t, d.IsCritical(math.Phi)) // φ itself is not 1/φ
}
