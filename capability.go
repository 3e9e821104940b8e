package gohandoff

// Sendable is the constraint for values that can be moved into a single
// worker. Every Go value satisfies it. The constraint is a precondition on the
// caller rather than on the type: once a value has been handed to IntoWorker
// the caller must not keep using it or anything it points to.
type Sendable interface {
	any
}

// Sharable marks a type whose values can be read by several goroutines at
// once without synchronization because the data is:
//
// 1. immutable after construction; and
//
// 2. free of resources (connections, files, channels being written to) that
// only make sense to use from one goroutine.
//
// Only Sharable values can be passed to FanOut. A type without the marker,
// like a handle with a plain, non-atomic reference count, is rejected at
// compile time.
type Sharable interface {
	Sendable
	Sharable()
}
