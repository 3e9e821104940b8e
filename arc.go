package gohandoff

import (
	"fmt"
	"sync/atomic"
)

type arcInner[T any] struct {
	value   T
	strong  atomic.Int64
	release func(T)
}

// Arc is a handle to a value shared between goroutines. All clones of a
// handle point at the same storage, which carries an atomic count of live
// handles. The storage is released when the last handle is dropped.
//
// Arc gives read access only. The value must not be mutated through Get; use
// it with Sharable types.
type Arc[T any] struct {
	inner   *arcInner[T]
	dropped atomic.Bool
}

// ArcOption is a functional option for configuring an Arc
type ArcOption[T any] func(*arcInner[T])

// WithRelease sets a hook that is called exactly once, with the stored value,
// when the last handle is dropped.
func WithRelease[T any](fn func(T)) ArcOption[T] {
	return func(a *arcInner[T]) {
		a.release = fn
	}
}

// NewArc stores value and returns the first handle to it.
func NewArc[T any](value T, opts ...ArcOption[T]) *Arc[T] {
	inner := &arcInner[T]{value: value}
	for _, opt := range opts {
		opt(inner)
	}
	inner.strong.Store(1)
	return &Arc[T]{inner: inner}
}

func (a *Arc[T]) mustBeLive(op string) {
	if a.dropped.Load() {
		panic(fmt.Sprintf("gohandoff: Arc.%s called on a dropped handle", op))
	}
}

// Clone returns a new handle to the same storage. It only bumps the count;
// the value itself is not copied.
func (a *Arc[T]) Clone() *Arc[T] {
	a.mustBeLive("Clone")
	a.inner.strong.Add(1)
	return &Arc[T]{inner: a.inner}
}

// Get returns the shared value.
func (a *Arc[T]) Get() T {
	a.mustBeLive("Get")
	return a.inner.value
}

// Drop gives up this handle. Dropping the same handle twice is a no-op.
// The handle that takes the count to zero clears the storage and runs the
// release hook.
func (a *Arc[T]) Drop() {
	if !a.dropped.CompareAndSwap(false, true) {
		return
	}
	switch n := a.inner.strong.Add(-1); {
	case n == 0:
		value := a.inner.value
		var zero T
		a.inner.value = zero
		if a.inner.release != nil {
			a.inner.release(value)
		}
	case n < 0:
		panic("gohandoff: Arc strong count went negative")
	}
}

// StrongCount returns the number of live handles to the storage.
func (a *Arc[T]) StrongCount() int64 {
	return a.inner.strong.Load()
}

// GoString prints the shared value, so %#v of a handle looks like %#v of
// the value it points to.
func (a *Arc[T]) GoString() string {
	return fmt.Sprintf("%#v", a.Get())
}
