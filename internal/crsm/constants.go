package crsm

import (
	"fmt"
	"math"
)

// Canonical constant values. DefaultConfig returns these; they are exported
// individually so callers can reference a single constant without carrying a
// full Config.
const (
	// ThetaCritical is the critical torsion angle in degrees.
	ThetaCritical = 51.843

	// DetCritical is the critical metric determinant det(g_A) = 1/φ,
	// the golden ratio inverse.
	DetCritical = 0.61803398875

	// Alpha is the evolution rate constant.
	Alpha = 0.1

	// GammaTolerance is the decoherence floor ε. Γ never reaches exactly
	// zero, which keeps the emergence ratio ΛΦ/Γ finite.
	GammaTolerance = 1e-9

	// EmergenceThreshold is the Ξ level at which the emergence criterion
	// is met. The boundary value itself passes.
	EmergenceThreshold = 7.0

	// EmergenceCap is the finite sentinel assigned to Ξ when Γ is at or
	// below the tolerance, instead of letting the ratio diverge.
	EmergenceCap = 1e12

	// SovereigntyThreshold is the Ω_sov level at which the sovereignty
	// criterion is met.
	SovereigntyThreshold = 0.97

	// LambdaCeiling is the hard upper bound on coherence.
	LambdaCeiling = 0.999

	// LambdaSealThreshold and LambdaPhiSealThreshold together define the
	// seal condition: Λ > LambdaSealThreshold and Λ·Φ > LambdaPhiSealThreshold.
	LambdaSealThreshold    = 0.99
	LambdaPhiSealThreshold = 10.0

	// SuppressionFactor scales Γ down after each raw evolution step.
	SuppressionFactor = 0.9

	// ElevationFactor scales Λ (capped) and Φ (uncapped) up after each
	// raw evolution step.
	ElevationFactor = 1.01

	// PhiGain is the information accumulation rate per unit coherence.
	PhiGain = 0.01
)

// Config carries every numeric constant the kernel depends on. It is an
// immutable value: functions receive it by value and never write back.
// Override individual fields before use; Validate rejects combinations the
// evolution law cannot tolerate.
type Config struct {
	ThetaCritical          float64
	DetCritical            float64
	Alpha                  float64
	GammaTolerance         float64
	EmergenceThreshold     float64
	EmergenceCap           float64
	SovereigntyThreshold   float64
	LambdaCeiling          float64
	LambdaSealThreshold    float64
	LambdaPhiSealThreshold float64
	SuppressionFactor      float64
	ElevationFactor        float64
	PhiGain                float64
}

// DefaultConfig returns the canonical constants.
func DefaultConfig() Config {
	return Config{
		ThetaCritical:          ThetaCritical,
		DetCritical:            DetCritical,
		Alpha:                  Alpha,
		GammaTolerance:         GammaTolerance,
		EmergenceThreshold:     EmergenceThreshold,
		EmergenceCap:           EmergenceCap,
		SovereigntyThreshold:   SovereigntyThreshold,
		LambdaCeiling:          LambdaCeiling,
		LambdaSealThreshold:    LambdaSealThreshold,
		LambdaPhiSealThreshold: LambdaPhiSealThreshold,
		SuppressionFactor:      SuppressionFactor,
		ElevationFactor:        ElevationFactor,
		PhiGain:                PhiGain,
	}
}

// DetFactor derives det(g_A)^(-1/2), the coherence growth multiplier.
// For the canonical DetCritical this is ≈ 1.2720196495139606.
func (c Config) DetFactor() float64 {
	return math.Pow(c.DetCritical, -0.5)
}

// Validate checks that an overridden Config still makes sense for the
// evolution law. The zero Config is invalid; start from DefaultConfig.
func (c Config) Validate() error {
	if c.DetCritical <= 0 {
		return fmt.Errorf("det critical must be positive, got %v", c.DetCritical)
	}
	if c.GammaTolerance <= 0 {
		return fmt.Errorf("gamma tolerance must be positive, got %v", c.GammaTolerance)
	}
	if c.LambdaCeiling <= 0 || c.LambdaCeiling > 1 {
		return fmt.Errorf("lambda ceiling must be in (0, 1], got %v", c.LambdaCeiling)
	}
	if c.EmergenceThreshold <= 0 {
		return fmt.Errorf("emergence threshold must be positive, got %v", c.EmergenceThreshold)
	}
	if c.EmergenceCap <= c.EmergenceThreshold {
		return fmt.Errorf("emergence cap %v must exceed threshold %v", c.EmergenceCap, c.EmergenceThreshold)
	}
	if c.SuppressionFactor <= 0 || c.SuppressionFactor > 1 {
		return fmt.Errorf("suppression factor must be in (0, 1], got %v", c.SuppressionFactor)
	}
	if c.ElevationFactor < 1 {
		return fmt.Errorf("elevation factor must be >= 1, got %v", c.ElevationFactor)
	}
	if c.SovereigntyThreshold <= 0 || c.SovereigntyThreshold > 1 {
		return fmt.Errorf("sovereignty threshold must be in (0, 1], got %v", c.SovereigntyThreshold)
	}
	return nil
}
