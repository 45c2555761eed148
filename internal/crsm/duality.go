package crsm

import "math"

// involutionTolerance bounds the round-trip error accepted by
// VerifyInvolution.
const involutionTolerance = 1e-10

// criticalWindow is the half-width of the critical band around det(g_A).
const criticalWindow = 0.01

// DualityOperator models the involution J with J(J(x)) = x, realized here as
// linear negation J(x) = −x, together with its projection pair
//
//	Π+(x) = ½(x + J(x))
//	Π−(x) = ½(x − J(x))
//
// Under the negation realization Π+ is identically zero and Π− is the
// identity, so Apply collapses to "zero or passthrough" selected by the sign
// of the polarity. That degeneracy is a property of the published operator
// and is kept exactly; substituting a different involution would change
// every collapse result downstream.
//
// The operator is stateless and safe to share.
type DualityOperator struct{}

// NewDualityOperator returns the operator. The zero value is equally usable.
func NewDualityOperator() DualityOperator {
	return DualityOperator{}
}

// J applies the involution: J(x) = −x.
func (DualityOperator) J(x float64) float64 {
	return -x
}

// VerifyInvolution reports whether J(J(x)) returns to x within tolerance.
// Diagnostic only; no part of the evolution law calls it.
func (d DualityOperator) VerifyInvolution(x float64) bool {
	return math.Abs(d.J(d.J(x))-x) < involutionTolerance
}

// PiPlus is the symmetric projection Π+(x) = ½(x + J(x)).
func (d DualityOperator) PiPlus(x float64) float64 {
	return 0.5 * (x + d.J(x))
}

// PiMinus is the antisymmetric projection Π−(x) = ½(x − J(x)).
func (d DualityOperator) PiMinus(x float64) float64 {
	return 0.5 * (x - d.J(x))
}

// Bifurcate returns both projections: B(Ψ) = (Π+Ψ, Π−Ψ).
func (d DualityOperator) Bifurcate(x float64) (plus, minus float64) {
	return d.PiPlus(x), d.PiMinus(x)
}

// Apply selects a projection by polarity: Π+ when polarity ≥ 0, Π− otherwise.
func (d DualityOperator) Apply(x, polarity float64) float64 {
	if polarity >= 0 {
		return d.PiPlus(x)
	}
	return d.PiMinus(x)
}

// IsCritical reports whether a metric determinant sits inside the critical
// band around det(g_A) = 1/φ.
func (DualityOperator) IsCritical(detG float64) bool {
	return math.Abs(detG-DetCritical) < criticalWindow
}
