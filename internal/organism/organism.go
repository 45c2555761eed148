package organism

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/ENKI-420/dnalang/internal/crsm"
)

// Organism is an ordered collection of genes plus an aggregate state.
//
// The aggregate is an independent state slot: evolution steps it with the
// same law as every gene, but it is never recomputed from the gene states.
// Only the emergence component of the aggregate is ever refreshed, and only
// at the points the evolution cycle and the sovereignty check call for it.
type Organism struct {
	// Name identifies the organism, NFC-normalized.
	Name string
	// Genes holds the member genes in insertion order.
	Genes []*Gene
	// State is the aggregate state.
	State crsm.State
	// Operators lists the operator tags the organism advertises.
	Operators []string
}

// New returns an organism with the default aggregate state and no genes.
func New(cfg crsm.Config, name string, operators ...string) *Organism {
	return &Organism{
		Name:      norm.NFC.String(name),
		State:     crsm.DefaultState(cfg),
		Operators: operators,
	}
}

// NewWithState returns an organism with an explicit aggregate state and no
// genes.
func NewWithState(name string, state crsm.State, operators ...string) *Organism {
	return &Organism{
		Name:      norm.NFC.String(name),
		State:     state,
		Operators: operators,
	}
}

// AddGene appends a gene. Duplicate IDs are rejected; the first occurrence
// wins and stays.
func (o *Organism) AddGene(g *Gene) error {
	if g == nil {
		return fmt.Errorf("add gene to %s: nil gene", o.Name)
	}
	if existing := o.FindGene(g.ID); existing != nil {
		return fmt.Errorf("add gene to %s: duplicate gene id %q", o.Name, g.ID)
	}
	o.Genes = append(o.Genes, g)
	return nil
}

// FindGene returns the gene with the given ID, or nil. The probe is
// NFC-normalized before comparison.
func (o *Organism) FindGene(id string) *Gene {
	id = norm.NFC.String(id)
	for _, g := range o.Genes {
		if g.ID == id {
			return g
		}
	}
	return nil
}

// GeneCount returns the number of genes.
func (o *Organism) GeneCount() int {
	return len(o.Genes)
}
