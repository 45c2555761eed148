package runtime

// IterationBudget bounds the open-ended run loops.
//
// Each RunToSovereignty call uses its own budget instance; Check is called
// once per iteration before the work happens. The bounded loops never
// consult a budget because their iteration count is explicit.
type IterationBudget struct {
	maxIterations int
	current       int
}

// NewIterationBudget returns a budget with the given limit.
func NewIterationBudget(maxIterations int) *IterationBudget {
	return &IterationBudget{maxIterations: maxIterations}
}

// Check counts one iteration and validates it against the limit. It
// returns an IterationsExceededError once the count passes the limit.
func (b *IterationBudget) Check(runToken string) error {
	b.current++
	if b.current > b.maxIterations {
		return &IterationsExceededError{
			RunToken:   runToken,
			Iterations: b.current,
			Limit:      b.maxIterations,
		}
	}
	return nil
}

// Reset returns the count to zero for reuse.
func (b *IterationBudget) Reset() {
	b.current = 0
}

// Current returns the iterations counted so far.
func (b *IterationBudget) Current() int {
	return b.current
}

// MaxIterations returns the limit.
func (b *IterationBudget) MaxIterations() int {
	return b.maxIterations
}
