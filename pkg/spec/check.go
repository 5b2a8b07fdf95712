package spec

import "fmt"

// EvaluationError reports a predicate that panicked while being evaluated
type EvaluationError struct {
	// Value is the value passed to panic
	Value any
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("spec: predicate panicked: %v", e.Value)
}

// Unwrap returns the panic value when it is an error
func (e *EvaluationError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Check evaluates s against candidate, converting a predicate panic into an
// *EvaluationError. Nothing inside the tree recovers; this is the caller's
// opt-in boundary.
func Check[T any](s Specification[T], candidate T) (satisfied bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			satisfied = false
			err = &EvaluationError{Value: r}
		}
	}()
	return s.IsSatisfiedBy(candidate), nil
}
