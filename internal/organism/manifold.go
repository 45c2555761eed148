package organism

import (
	"fmt"
	"strings"

	"github.com/ENKI-420/dnalang/internal/crsm"
)

// ManifoldState is an immutable snapshot of the seven manifold scalars.
// Unlike crsm.State it never recomputes anything: the emergence value is
// whatever the source state held at projection time, stale or not.
type ManifoldState struct {
	Coherence   float64 `json:"coherence" yaml:"coherence"`
	Decoherence float64 `json:"decoherence" yaml:"decoherence"`
	Information float64 `json:"information" yaml:"information"`
	Emergence   float64 `json:"emergence" yaml:"emergence"`
	Polarity    float64 `json:"polarity" yaml:"polarity"`
	Torsion     float64 `json:"torsion" yaml:"torsion"`
	Epoch       float64 `json:"epoch" yaml:"epoch"`
}

// FromState projects a state into a manifold snapshot.
func FromState(s crsm.State) ManifoldState {
	return ManifoldState{
		Coherence:   s.Lambda,
		Decoherence: s.Gamma,
		Information: s.Phi,
		Emergence:   s.Xi,
		Polarity:    s.Rho,
		Torsion:     s.Theta,
		Epoch:       s.Tau,
	}
}

// Manifold returns the organism's aggregate state as a snapshot.
func (o *Organism) Manifold() ManifoldState {
	return FromState(o.State)
}

// Report renders the snapshot as the canonical indented block, one scalar
// per line.
func (m ManifoldState) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  Λ (coherence):    %.4f\n", m.Coherence)
	fmt.Fprintf(&b, "  Γ (decoherence):  %.6f\n", m.Decoherence)
	fmt.Fprintf(&b, "  Φ (information):  %.4f\n", m.Information)
	fmt.Fprintf(&b, "  Ξ (emergence):    %.2f\n", m.Emergence)
	fmt.Fprintf(&b, "  ρ± (polarity):    %+.0f\n", m.Polarity)
	fmt.Fprintf(&b, "  θ (torsion):      %.3f°\n", m.Torsion)
	fmt.Fprintf(&b, "  τ (epoch):        %.0f", m.Epoch)
	return b.String()
}

// String is the compact single-line form.
func (m ManifoldState) String() string {
	return fmt.Sprintf("Λ=%.4f Γ=%.6f Φ=%.4f Ξ=%.2f ρ=%+.0f θ=%.3f° τ=%.0f",
		m.Coherence, m.Decoherence, m.Information, m.Emergence, m.Polarity, m.Torsion, m.Epoch)
}
