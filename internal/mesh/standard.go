package mesh

import (
	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// NewStandard returns the reference mesh: the five canonical genes
// connected in a chain.
func NewStandard(cfg crsm.Config) *Mesh {
	m := New(cfg)
	org := organism.NewStandard(cfg)
	for _, g := range org.Genes {
		m.AddVertex(g)
	}
	for i := 0; i+1 < len(m.Vertices); i++ {
		// Chain connects cannot fail: indices are in range by construction.
		_ = m.Connect(i, i+1)
	}
	return m
}
