package runtime

import (
	"fmt"
	"log/slog"

	"golang.org/x/text/unicode/norm"

	"github.com/ENKI-420/dnalang/internal/crsm"
	"github.com/ENKI-420/dnalang/internal/kernel"
	"github.com/ENKI-420/dnalang/internal/organism"
)

// DefaultMaxIterations is the default iteration budget for the open-ended
// run loops.
const DefaultMaxIterations = 1000

// gradientStep is the time step handed to the aggregation kernel. The
// gradient does not consume it; the value only keeps call sites uniform.
const gradientStep = 0.01

// Runtime drives organism evolution: registry, cycles, collapse checks,
// sovereignty, and the seal-gated run loops.
type Runtime struct {
	cfg           crsm.Config
	kernel        *kernel.Kernel
	duality       crsm.DualityOperator
	clock         *Clock
	tokens        TokenGenerator
	logger        *slog.Logger
	maxIterations int

	organisms []*organism.Organism
	epoch     float64
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithConfig replaces the default configuration.
func WithConfig(cfg crsm.Config) Option {
	return func(r *Runtime) {
		r.cfg = cfg
	}
}

// WithMaxIterations sets the iteration budget for the open-ended run
// loops.
//
// Default: 1000 (DefaultMaxIterations). Use a small value to exercise
// budget exhaustion in tests.
func WithMaxIterations(maxIterations int) Option {
	return func(r *Runtime) {
		r.maxIterations = maxIterations
	}
}

// WithTokenGenerator replaces the UUIDv7 token generator, mainly to pin
// tokens in tests.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(r *Runtime) {
		r.tokens = g
	}
}

// WithClock replaces the tick clock, for resuming from a prior report.
func WithClock(c *Clock) Option {
	return func(r *Runtime) {
		r.clock = c
	}
}

// WithLogger replaces the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = l
	}
}

// New constructs a Runtime. The configuration is validated after all
// options apply.
func New(opts ...Option) (*Runtime, error) {
	r := &Runtime{
		cfg:           crsm.DefaultConfig(),
		duality:       crsm.NewDualityOperator(),
		clock:         NewClock(),
		tokens:        UUIDv7Generator{},
		logger:        slog.Default(),
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runtime config: %w", err)
	}
	if r.maxIterations <= 0 {
		return nil, fmt.Errorf("runtime config: max iterations must be positive, got %d", r.maxIterations)
	}
	r.kernel = kernel.New(r.cfg)
	return r, nil
}

// Config returns the runtime's configuration.
func (r *Runtime) Config() crsm.Config {
	return r.cfg
}

// Kernel returns the aggregation kernel bound to the runtime's
// configuration.
func (r *Runtime) Kernel() *kernel.Kernel {
	return r.kernel
}

// Ticks returns the clock position: the number of evolution calls stamped
// so far.
func (r *Runtime) Ticks() int64 {
	return r.clock.Current()
}

// Epoch returns the total simulated time accumulated across all evolution
// calls, over all organisms.
func (r *Runtime) Epoch() float64 {
	return r.epoch
}

// LoadOrganism registers an organism and returns its stable index. The
// registry is append-only; organisms are never removed.
func (r *Runtime) LoadOrganism(o *organism.Organism) (int, error) {
	if o == nil {
		return 0, fmt.Errorf("load organism: nil organism")
	}
	r.organisms = append(r.organisms, o)
	idx := len(r.organisms) - 1
	r.logger.Debug("organism loaded", "name", o.Name, "index", idx, "genes", o.GeneCount())
	return idx, nil
}

// Organism returns the organism at a registry index.
func (r *Runtime) Organism(idx int) (*organism.Organism, error) {
	if idx < 0 || idx >= len(r.organisms) {
		return nil, &UnknownOrganismError{Name: fmt.Sprintf("#%d", idx)}
	}
	return r.organisms[idx], nil
}

// OrganismByName returns the first registered organism with the given
// name. The probe is NFC-normalized before comparison.
func (r *Runtime) OrganismByName(name string) (*organism.Organism, error) {
	name = norm.NFC.String(name)
	for _, o := range r.organisms {
		if o.Name == name {
			return o, nil
		}
	}
	return nil, &UnknownOrganismError{Name: fmt.Sprintf("%q", name)}
}

// OrganismCount returns the number of registered organisms.
func (r *Runtime) OrganismCount() int {
	return len(r.organisms)
}

// ExecuteDMA sums the DMA contributions of an organism's genes.
func (r *Runtime) ExecuteDMA(o *organism.Organism) float64 {
	return r.kernel.Execute(o.Genes, gradientStep)
}

// StreamDMA returns a one-shot iterator over the organism's per-gene DMA
// contributions.
func (r *Runtime) StreamDMA(o *organism.Organism) *kernel.Stream {
	return r.kernel.Stream(o.Genes, gradientStep)
}

// ManifoldState projects the organism's aggregate state into a snapshot
// without mutating anything.
func (r *Runtime) ManifoldState(o *organism.Organism) organism.ManifoldState {
	return o.Manifold()
}
