package kernel

import "github.com/ENKI-420/dnalang/internal/organism"

// Stream yields per-gene DMA contributions one at a time.
//
// A stream walks its gene collection once and cannot be restarted; after
// the last gene, Next keeps returning false.
type Stream struct {
	kernel *Kernel
	genes  []*organism.Gene
	dt     float64
	idx    int
	gene   *organism.Gene
	value  float64
}

// Stream returns an iterator over the DMA contributions of genes.
func (k *Kernel) Stream(genes []*organism.Gene, dt float64) *Stream {
	return &Stream{kernel: k, genes: genes, dt: dt}
}

// Next advances to the next gene. It returns false once the collection is
// exhausted.
func (s *Stream) Next() bool {
	if s.idx >= len(s.genes) {
		s.gene = nil
		return false
	}
	s.gene = s.genes[s.idx]
	s.value = s.kernel.GeneValue(s.gene, s.dt)
	s.idx++
	return true
}

// Gene returns the gene Next advanced to, or nil before the first Next and
// after exhaustion.
func (s *Stream) Gene() *organism.Gene {
	return s.gene
}

// Value returns the contribution of the gene Next advanced to.
func (s *Stream) Value() float64 {
	return s.value
}
