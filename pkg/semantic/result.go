package semantic

import "fmt"

type ErrorKind string

const (
	// ErrUnavailable covers transport failures and an open circuit.
	ErrUnavailable ErrorKind = "unavailable"
	ErrTimeout     ErrorKind = "timeout"
	// ErrStatus is a non-2xx response; StatusCode carries the code.
	ErrStatus ErrorKind = "status"
	ErrDecode ErrorKind = "decode"
)

type GatewayError struct {
	Kind       ErrorKind
	Op         string
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	if e.Kind == ErrStatus {
		return fmt.Sprintf("semantic %s: status %d", e.Op, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("semantic %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("semantic %s: %s", e.Op, e.Kind)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Result is what every gateway operation returns. Exactly one of Value
// (meaningful) and Err is set; callers pick their own fallback.
type Result[T any] struct {
	Value T
	Err   *GatewayError
}

func (r Result[T]) Ok() bool {
	return r.Err == nil
}

func ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

func fail[T any](err *GatewayError) Result[T] {
	return Result[T]{Err: err}
}
