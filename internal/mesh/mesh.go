package mesh

import (
	"fmt"
	"math"
	"strings"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// kGamma is the decay constant applied to edge decoherence per unit time.
const kGamma = 0.1

// bindThreshold is the edge decoherence below which endpoints bind.
const bindThreshold = 0.01

// Edge connects two vertices and tracks their pairwise decoherence.
type Edge struct {
	// From and To index into the mesh vertex slice.
	From int
	To   int
	// Gamma is the pairwise decoherence Γ(i,j).
	Gamma float64
	// Weight is the 7D distance between the endpoint states.
	Weight float64
	// Bound reports whether the edge has crossed the binding threshold.
	Bound bool
}

// Mesh is the Z3 topology: gene vertices, edges, and the per-dimension
// weight matrix.
type Mesh struct {
	cfg crsm.Config

	// Vertices holds the gene vertices in insertion order.
	Vertices []*organism.Gene
	// Weights stores the signed per-dimension deltas for connected pairs.
	Weights *Matrix7D
	// Edges holds the connections in creation order.
	Edges []*Edge
}

// New returns an empty mesh bound to the given configuration.
func New(cfg crsm.Config) *Mesh {
	return &Mesh{
		cfg:     cfg,
		Weights: NewMatrix7D(0),
	}
}

// AddVertex appends a gene vertex and grows the weight matrix. It returns
// the vertex index, or -1 for a nil gene.
func (m *Mesh) AddVertex(g *organism.Gene) int {
	if g == nil {
		return -1
	}
	idx := len(m.Vertices)
	m.Vertices = append(m.Vertices, g)
	m.Weights = m.Weights.grow(len(m.Vertices))
	return idx
}

// Connect creates an edge between two vertices. The edge decoherence is
// the average of the endpoint decoherences, and an edge already under the
// binding threshold is born bound.
func (m *Mesh) Connect(from, to int) error {
	if from < 0 || to < 0 || from >= len(m.Vertices) || to >= len(m.Vertices) {
		return fmt.Errorf("connect %d..%d: vertex index out of range [0,%d)", from, to, len(m.Vertices))
	}
	gamma := (m.Vertices[from].State.Gamma + m.Vertices[to].State.Gamma) / 2.0
	m.Edges = append(m.Edges, &Edge{
		From:   from,
		To:     to,
		Gamma:  gamma,
		Weight: m.Metric(from, to),
		Bound:  gamma < bindThreshold,
	})
	m.storeDeltas(from, to)
	return nil
}

// Metric computes the 7D Euclidean distance between two vertex states.
// Out-of-range indices yield the maximal distance.
func (m *Mesh) Metric(i, j int) float64 {
	if i < 0 || j < 0 || i >= len(m.Vertices) || j >= len(m.Vertices) {
		return math.MaxFloat64
	}
	a := m.Vertices[i].State.AsArray()
	b := m.Vertices[j].State.AsArray()
	sum := 0.0
	for d := 0; d < dims; d++ {
		delta := a[d] - b[d]
		sum += delta * delta
	}
	return math.Sqrt(sum)
}

// storeDeltas records the signed per-dimension state deltas for a pair,
// antisymmetrically.
func (m *Mesh) storeDeltas(i, j int) {
	a := m.Vertices[i].State.AsArray()
	b := m.Vertices[j].State.AsArray()
	for d := 0; d < dims; d++ {
		delta := a[d] - b[d]
		m.Weights.Set(i, j, d, delta)
		m.Weights.Set(j, i, d, -delta)
	}
}

// Evolve advances every vertex state by dt, refreshes their emergence, and
// decays edge decoherence. Edge weights and the weight matrix are
// recomputed from the evolved states, and edges crossing the binding
// threshold become bound.
func (m *Mesh) Evolve(dt float64) {
	for _, v := range m.Vertices {
		v.State = crsm.EvolveState(m.cfg, v.State, dt)
		// The metric reads emergence, so the stale component must be
		// refreshed before any distance below.
		v.State.ComputeEmergence(m.cfg)
	}

	decay := math.Exp(-kGamma * dt)
	for _, e := range m.Edges {
		e.Gamma *= decay
		e.Weight = m.Metric(e.From, e.To)
		m.storeDeltas(e.From, e.To)
		if e.Gamma < bindThreshold && !e.Bound {
			e.Bound = true
		}
	}
}

// Collapse attempts to bind the edge between two vertices. When the edge
// decoherence is under the binding threshold, the endpoint coherences and
// informations are averaged, both emergences are recomputed, and the
// endpoints are marked bound. It reports whether the collapse happened.
func (m *Mesh) Collapse(i, j int) (bool, error) {
	if i < 0 || j < 0 || i >= len(m.Vertices) || j >= len(m.Vertices) {
		return false, fmt.Errorf("collapse %d..%d: vertex index out of range [0,%d)", i, j, len(m.Vertices))
	}
	edge := m.findEdge(i, j)
	if edge == nil {
		return false, fmt.Errorf("collapse %d..%d: no edge between vertices", i, j)
	}
	if edge.Gamma >= bindThreshold {
		return false, nil
	}

	edge.Bound = true
	vi, vj := m.Vertices[i], m.Vertices[j]
	avgLambda := (vi.State.Lambda + vj.State.Lambda) / 2.0
	avgPhi := (vi.State.Phi + vj.State.Phi) / 2.0
	vi.State.Lambda, vj.State.Lambda = avgLambda, avgLambda
	vi.State.Phi, vj.State.Phi = avgPhi, avgPhi
	vi.State.ComputeEmergence(m.cfg)
	vj.State.ComputeEmergence(m.cfg)
	vi.Bound = true
	vj.Bound = true
	return true, nil
}

// findEdge returns the first edge joining i and j in either direction.
func (m *Mesh) findEdge(i, j int) *Edge {
	for _, e := range m.Edges {
		if (e.From == i && e.To == j) || (e.From == j && e.To == i) {
			return e
		}
	}
	return nil
}

// TotalDecoherence sums the decoherence over all edges.
func (m *Mesh) TotalDecoherence() float64 {
	total := 0.0
	for _, e := range m.Edges {
		total += e.Gamma
	}
	return total
}

// BindingReport renders one line per edge with its decoherence and bound
// status.
func (m *Mesh) BindingReport() string {
	var b strings.Builder
	for _, e := range m.Edges {
		status := "○"
		if e.Bound {
			status = "✓"
		}
		fmt.Fprintf(&b, "  %s ←→ %s     Γ=%.3f %s\n",
			m.Vertices[e.From].Name, m.Vertices[e.To].Name, e.Gamma, status)
	}
	return b.String()
}
