package system

// Result is the outcome of a fallible persistence operation. Callers can
// tell a stored value, a default that was substituted and a genuine
// failure apart without reading logs.
type Result[T any] struct {
	Value T

	// Err is set when the operation failed. Value then holds the
	// default, if one applies.
	Err error

	// Defaulted is set when Value is a default rather than stored data.
	Defaulted bool
}

// OK reports whether the operation succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Get returns the value and error.
func (r Result[T]) Get() (T, error) { return r.Value, r.Err }

func ok[T any](v T) Result[T] { return Result[T]{Value: v} }

func defaulted[T any](v T) Result[T] { return Result[T]{Value: v, Defaulted: true} }

func failed[T any](v T, err error) Result[T] { return Result[T]{Value: v, Err: err, Defaulted: true} }
