package organism

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/ENKI-420/dnalang/internal/crsm"
)

// Gene is a named carrier of one CRSM7 state. Names are NFC-normalized on
// construction so two spellings of the same name compare equal everywhere
// downstream.
type Gene struct {
	// ID is the stable lookup key, NFC-normalized.
	ID string
	// Name is the display name, NFC-normalized.
	Name string
	// State is the gene's current CRSM7 state.
	State crsm.State
	// Bound reports whether a mesh has bound this gene to a node.
	Bound bool
}

// NewGene returns a gene seeded with the default state.
func NewGene(cfg crsm.Config, id, name string) *Gene {
	return &Gene{
		ID:    norm.NFC.String(id),
		Name:  norm.NFC.String(name),
		State: crsm.DefaultState(cfg),
	}
}

// NewGeneWithState returns a gene seeded with an explicit state.
func NewGeneWithState(id, name string, state crsm.State) *Gene {
	return &Gene{
		ID:    norm.NFC.String(id),
		Name:  norm.NFC.String(name),
		State: state,
	}
}

// String renders the gene as "id state" using the state's display form.
func (g *Gene) String() string {
	return fmt.Sprintf("%s %s", g.ID, g.State.String())
}
