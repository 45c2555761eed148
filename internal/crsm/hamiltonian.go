package crsm

// Equilibrium bounds for the Hamiltonian. Looser than the evolution-law
// tolerances: equilibrium is a descriptive diagnostic, not a collapse gate.
const (
	equilibriumGammaBound  = 1e-6
	equilibriumLambdaBound = 0.99
	equilibriumPhiBound    = 10.0
)

// Hamiltonian evaluates the CRSM energy operator
//
//	H = gc · Π± · (1−Γ) · ∇6D + tc · θ · J(ρ)
//
// with ∇6D approximated as Λ·Φ and Π± the polarity weight
// ½(1+ρ) for ρ ≥ 0, ½(1−|ρ|) otherwise.
type Hamiltonian struct {
	// GradientCoupling scales the projected gradient term.
	GradientCoupling float64
	// TorsionCoupling scales the torsion term.
	TorsionCoupling float64

	duality DualityOperator
}

// NewHamiltonian returns a Hamiltonian with unit couplings.
func NewHamiltonian() Hamiltonian {
	return NewHamiltonianWithCouplings(1.0, 1.0)
}

// NewHamiltonianWithCouplings returns a Hamiltonian with explicit coupling
// constants.
func NewHamiltonianWithCouplings(gradient, torsion float64) Hamiltonian {
	return Hamiltonian{
		GradientCoupling: gradient,
		TorsionCoupling:  torsion,
		duality:          NewDualityOperator(),
	}
}

// Compute evaluates H for one state.
func (h Hamiltonian) Compute(s State) float64 {
	var piFactor float64
	if s.Rho >= 0 {
		piFactor = 0.5 * (1.0 + s.Rho)
	} else {
		piFactor = 0.5 * (1.0 - (-s.Rho))
	}

	coherenceFactor := 1.0 - s.Gamma
	gradient6D := s.Lambda * s.Phi
	torsionTerm := s.Theta * h.duality.J(s.Rho)

	return h.GradientCoupling*piFactor*coherenceFactor*gradient6D +
		h.TorsionCoupling*torsionTerm
}

// IsEquilibrium reports the stationary condition C' = 0: decoherence gone
// and the Λ·Φ product saturated.
func (h Hamiltonian) IsEquilibrium(s State) bool {
	gammaZero := s.Gamma < equilibriumGammaBound
	lambdaPhiMax := s.Lambda > equilibriumLambdaBound && s.Phi > equilibriumPhiBound
	return gammaZero && lambdaPhiMax
}

// EnergyFunctional is the quadratic-kinetic, linear-potential energy of a
// state: E = kc·Λ² + pc·Φ.
type EnergyFunctional struct {
	KineticCoeff   float64
	PotentialCoeff float64
}

// NewEnergyFunctional returns the functional with unit coefficients.
func NewEnergyFunctional() EnergyFunctional {
	return EnergyFunctional{KineticCoeff: 1.0, PotentialCoeff: 1.0}
}

// TotalEnergy evaluates E for one state.
func (f EnergyFunctional) TotalEnergy(s State) float64 {
	kinetic := f.KineticCoeff * s.Lambda * s.Lambda
	potential := f.PotentialCoeff * s.Phi
	return kinetic + potential
}
