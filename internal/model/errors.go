package model

import "fmt"

// ValidationError reports a missing or malformed field on a write
// operation. Repositories return it before anything is persisted so a
// failed write never leaves a partial record behind.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
