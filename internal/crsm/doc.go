// Package crsm implements the CRSM7 state vector and its evolution law.
//
// A state is the 7-scalar tuple C(t) = {Λ, Γ, Φ, Ξ, ρ, θ, τ}:
//
//   - Λ (coherence): bounded accumulator, capped at the lambda ceiling
//   - Γ (decoherence): exponential decay, floored at a small tolerance
//   - Φ (information): unbounded accumulator
//   - Ξ (emergence): derived ratio ΛΦ/Γ, capped near the Γ floor
//   - ρ (polarity): ±1 selector consumed by the duality operator
//   - θ (torsion): constant descriptive angle in degrees
//   - τ (epoch): monotonic simulated time
//
// Evolution is closed-form and fully deterministic:
//
//	∂τΨ = α · det(g_A)^(-1/2) Ψ - ∇W²
//
// realized as Λ' = min(Λ + α·f·Λ·dt, ceiling), Γ' = max(Γ·e^(−α·dt), ε),
// Φ' = Φ + 0.01·Λ·dt, τ' = τ + dt, with f = det(g_A)^(-1/2) ≈ 1.272.
//
// Ξ is stale after evolution: EvolveState returns it zeroed and callers
// recompute it explicitly when a fresh value is needed. Constructors are the
// one exception - they derive Ξ from the initial fields.
//
// All numeric thresholds live in Config. The package never reads them from
// globals, so tests and genome definitions can override individual constants
// without touching the law itself.
package crsm
