package nbhm

import "fmt"

// InvariantViolationError is raised by panic when the map's internal
// state machine observes something that every invariant in its design
// says cannot happen (for example, a primed value slot in a table with
// no successor). It always indicates a bug in this package rather than
// a caller error, since nothing a caller does through the public API
// can reach these checks.
type InvariantViolationError struct {
	Msg string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("nbhm: invariant violated: %s", e.Msg)
}

func assertInvariant(ok bool, msg string) {
	if !ok {
		panic(&InvariantViolationError{Msg: msg})
	}
}
