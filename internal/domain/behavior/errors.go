package behavior

import "strings"

// SelectFailureError is returned when every child of a Select node fails.
// spec.md §9 flags that the source collapses this into a generic message;
// we keep each child's error instead, for diagnostics.
type SelectFailureError struct {
	ChildErrors []error
}

func (e *SelectFailureError) Error() string {
	if len(e.ChildErrors) == 0 {
		return "no behavior successful"
	}
	parts := make([]string, len(e.ChildErrors))
	for i, err := range e.ChildErrors {
		parts[i] = err.Error()
	}
	return "no behavior successful: " + strings.Join(parts, "; ")
}

func newSelectFailure(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &SelectFailureError{ChildErrors: errs}
}
