package runtime

import (
	"errors"
	"fmt"
)

// IterationsExceededError is returned when an open-ended run loop exhausts
// its iteration budget before reaching its goal.
type IterationsExceededError struct {
	// RunToken identifies the run that exceeded the budget.
	RunToken string
	// Iterations is the number of iterations performed.
	Iterations int
	// Limit is the budget that was exceeded.
	Limit int
}

func (e *IterationsExceededError) Error() string {
	return fmt.Sprintf("run %s exceeded iteration budget: %d iterations > %d limit",
		e.RunToken, e.Iterations, e.Limit)
}

// IsIterationsExceededError reports whether err is an
// IterationsExceededError, unwrapping as needed.
func IsIterationsExceededError(err error) bool {
	var ie *IterationsExceededError
	return errors.As(err, &ie)
}

// UnknownOrganismError is returned when a registry lookup misses.
type UnknownOrganismError struct {
	// Name is the organism name or index that missed, rendered for display.
	Name string
}

func (e *UnknownOrganismError) Error() string {
	return fmt.Sprintf("unknown organism %s", e.Name)
}

// IsUnknownOrganismError reports whether err is an UnknownOrganismError,
// unwrapping as needed.
func IsUnknownOrganismError(err error) bool {
	var ue *UnknownOrganismError
	return errors.As(err, &ue)
}
