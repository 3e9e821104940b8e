package gohandoff

// Outcome is the result of a single worker once it has been joined.
type Outcome[T any] struct {
	Worker WorkerID // The worker that produced this outcome
	Value  T        // The value returned by the worker, zero if it panicked
	Error  error    // A *PanicError if the worker panicked
}

// OK reports whether the worker completed normally.
func (o Outcome[T]) OK() bool {
	return o.Error == nil
}
