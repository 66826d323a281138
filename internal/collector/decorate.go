package collector

import (
	"fmt"
	"runtime/debug"
)

// Action is a single-argument unit of work.
type Action[T any] func(T) error

// PanicError records a panic recovered from a decorated action.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the goroutine stack at the point of recovery.
	Stack []byte
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("action panicked: %v", e.Value)
}

// Unwrap returns the panic value if it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Decorate returns action unchanged when c does not suppress failures.
// Otherwise it returns an action that runs the original, records any
// returned error or panic in c, and always returns nil.
func Decorate[T any](c *Collector, action Action[T]) Action[T] {
	if !c.IsSuppressed() {
		return action
	}
	return func(arg T) error {
		c.Add(invoke(action, arg))
		return nil
	}
}

// invoke runs action, converting a panic into a *PanicError.
func invoke[T any](action Action[T], arg T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return action(arg)
}
