package crsm

import (
	"fmt"
	"math"
)

// State is the CRSM7 state vector. Fields are plain float64 scalars; the
// struct is small enough to copy, and the evolution law treats it as a value.
//
// Ξ is derived, never independently settable: constructors and
// ComputeEmergence assign it, everything else leaves it alone. After
// EvolveState it is zeroed and must be recomputed before use.
type State struct {
	Lambda float64 // Λ coherence
	Gamma  float64 // Γ decoherence
	Phi    float64 // Φ information
	Xi     float64 // Ξ emergence (derived)
	Rho    float64 // ρ polarity, ±1
	Theta  float64 // θ torsion, degrees
	Tau    float64 // τ epoch
}

// NewState builds a state from its six independent fields and derives Ξ.
func NewState(cfg Config, lambda, gamma, phi, rho, theta, tau float64) State {
	s := State{
		Lambda: lambda,
		Gamma:  gamma,
		Phi:    phi,
		Rho:    rho,
		Theta:  theta,
		Tau:    tau,
	}
	s.ComputeEmergence(cfg)
	return s
}

// DefaultState returns the canonical initial state used for aggregate slots
// and unconfigured genes.
func DefaultState(cfg Config) State {
	return NewState(cfg, 0.869, 0.012, 7.6901, 1.0, cfg.ThetaCritical, 0.0)
}

// ComputeEmergence sets and returns Ξ = ΛΦ/Γ. When Γ is at or below the
// tolerance the ratio would blow up, so Ξ is pinned to the finite cap
// instead. Not auto-triggered on mutation: callers that change Λ, Γ or Φ
// and need a fresh Ξ must invoke this themselves.
func (s *State) ComputeEmergence(cfg Config) float64 {
	if s.Gamma > cfg.GammaTolerance {
		s.Xi = (s.Lambda * s.Phi) / s.Gamma
	} else {
		s.Xi = cfg.EmergenceCap
	}
	return s.Xi
}

// EvolveState applies the evolution law for one time step and returns the
// successor state:
//
//	Λ' = min(Λ + α·f·Λ·dt, ceiling)   f = det(g_A)^(-1/2)
//	Γ' = max(Γ·e^(−α·dt), ε)
//	Φ' = Φ + 0.01·Λ·dt
//	τ' = τ + dt
//
// ρ and θ carry over unchanged. Ξ' is zero: the successor is stale until the
// caller recomputes emergence.
func EvolveState(cfg Config, s State, dt float64) State {
	detFactor := cfg.DetFactor()

	newLambda := s.Lambda + cfg.Alpha*detFactor*s.Lambda*dt
	newLambda = math.Min(newLambda, cfg.LambdaCeiling)

	newGamma := s.Gamma * math.Exp(-cfg.Alpha*dt)
	newGamma = math.Max(newGamma, cfg.GammaTolerance)

	newPhi := s.Phi + cfg.PhiGain*s.Lambda*dt

	return State{
		Lambda: newLambda,
		Gamma:  newGamma,
		Phi:    newPhi,
		Xi:     0, // stale until recomputed
		Rho:    s.Rho,
		Theta:  s.Theta,
		Tau:    s.Tau + dt,
	}
}

// Bifurcate splits the state into its two polarity branches:
// an identical copy with ρ = +1 and one with ρ = −1. The source state is
// untouched.
func (s State) Bifurcate() (positive, negative State) {
	positive = s
	positive.Rho = 1.0
	negative = s
	negative.Rho = -1.0
	return positive, negative
}

// AsArray returns the seven fields in canonical order
// (Λ, Γ, Φ, Ξ, ρ, θ, τ). Ξ is the raw stored value, not display-capped.
func (s State) AsArray() [7]float64 {
	return [7]float64{s.Lambda, s.Gamma, s.Phi, s.Xi, s.Rho, s.Theta, s.Tau}
}

// displayXiCap keeps huge emergence values readable in rendered output.
// Storage and math always use the raw Ξ.
const displayXiCap = 9999.99

// String renders the state as a fixed-width field block.
func (s State) String() string {
	return fmt.Sprintf(
		"  Λ (coherence):    %.3f\n"+
			"  Γ (decoherence):  %.3f\n"+
			"  Φ (information):  %.4f\n"+
			"  Ξ (emergence):    %.2f\n"+
			"  ρ± (polarity):    %+.0f\n"+
			"  θ (torsion):      %.3f°\n"+
			"  τ (epoch):        %d",
		s.Lambda,
		s.Gamma,
		s.Phi,
		math.Min(s.Xi, displayXiCap),
		s.Rho,
		s.Theta,
		int64(s.Tau),
	)
}
