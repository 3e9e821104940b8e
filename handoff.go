package gohandoff

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
)

// DefaultFanOut is the number of workers IntoWorkers shares its value with.
const DefaultFanOut = 4

type options struct {
	out       io.Writer
	logger    *zap.Logger
	onRelease func()
}

// Option is a functional option for IntoWorker, IntoWorkers and FanOut
type Option func(*options)

// WithOutput sets where worker lines are written. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithLogger sets the logger for spawn, join and release events.
// Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithOnRelease sets a callback run once the value shared by FanOut has
// been released by its last handle.
func WithOnRelease(fn func()) Option {
	return func(o *options) {
		o.onRelease = fn
	}
}

func newOptions(opts []Option) *options {
	out := &options{
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(out)
	}
	out.out = &lineWriter{w: out.out}
	return out
}

// lineWriter serializes writes so lines from concurrent workers never tear.
type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lineWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	return lw.w.Write(p)
}

// report writes "<worker> => <value>" using the debug (%#v) form of both.
func report(w io.Writer, id WorkerID, value any) {
	fmt.Fprintf(w, "%#v => %#v\n", id, value)
}

// IntoWorker moves data into a single new worker, which prints it tagged
// with its own identity, and waits for that worker to finish. The caller
// must not use data, or anything it references, after the call.
//
// If the worker panics, IntoWorker panics with the worker's *PanicError.
func IntoWorker[T Sendable](data T, opts ...Option) {
	o := newOptions(opts)
	handle := Spawn(func(id WorkerID) struct{} {
		report(o.out, id, data)
		return struct{}{}
	}, WithSpawnLogger(o.logger))
	handle.MustJoin()
}

// IntoWorkers shares data between DefaultFanOut workers. See FanOut.
func IntoWorkers[T Sharable](data T, opts ...Option) {
	FanOut(data, DefaultFanOut, opts...)
}

// FanOut wraps data in an Arc, gives one clone of the handle to each of
// workers new workers, and waits for all of them. Every worker prints the
// shared value tagged with its own identity and then drops its handle; the
// value is released once the last handle is gone. Output order between
// workers is not defined.
//
// Workers are joined in spawn order. The first one found to have panicked
// makes FanOut panic with its *PanicError.
func FanOut[T Sharable](data T, workers int, opts ...Option) {
	if workers < 1 {
		panic(fmt.Sprintf("gohandoff: FanOut needs at least one worker, got %d", workers))
	}
	o := newOptions(opts)
	shared := NewArc(data, WithRelease(func(T) {
		o.logger.Debug("shared value released")
		if o.onRelease != nil {
			o.onRelease()
		}
	}))

	clones := make([]*Arc[T], workers)
	for i := range clones {
		clones[i] = shared.Clone()
	}

	group := NewGroup[struct{}]("fanout")
	for _, handle := range clones {
		handle := handle
		group.Go(func(id WorkerID) struct{} {
			defer handle.Drop()
			report(o.out, id, handle)
			return struct{}{}
		}, WithSpawnLogger(o.logger))
	}
	o.logger.Debug("fan-out started", zap.Int("workers", workers))
	shared.Drop()

	group.Wait()
}
