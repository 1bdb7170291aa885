package party

import "fmt"

// InvalidConfigError reports a bad generation parameter. It is raised during
// eager validation, before any sampling happens, so a failed Generate call
// never produces partial output.
type InvalidConfigError struct {
	Field  string
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// InfeasiblePoolError reports that a single requested item could not be
// built (its pool cannot satisfy the set-size constraint). The generator
// skips the item and keeps going; this error is only fatal when every item
// fails.
type InfeasiblePoolError struct {
	SetSize  int
	PoolSize int
	Reason   string
}

func (e *InfeasiblePoolError) Error() string {
	return fmt.Sprintf("infeasible pool for set size %d (pool size %d): %s", e.SetSize, e.PoolSize, e.Reason)
}

// MalformedPoolError reports an internal invariant violation in a generated
// pool. It always indicates a generator bug and is surfaced as a hard
// failure.
type MalformedPoolError struct {
	Violation string
}

func (e *MalformedPoolError) Error() string {
	return fmt.Sprintf("malformed pool: %s", e.Violation)
}
