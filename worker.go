package gohandoff

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"sync/atomic"

	"go.uber.org/zap"
)

// WorkerID identifies a spawned worker. IDs are unique for the life of the
// process and are handed out in spawn order starting at 1.
type WorkerID uint64

var lastWorkerID atomic.Uint64

func nextWorkerID() WorkerID {
	return WorkerID(lastWorkerID.Add(1))
}

// GoString is used by the %#v verb, e.g. WorkerID(3).
func (id WorkerID) GoString() string {
	return "WorkerID(" + strconv.FormatUint(uint64(id), 10) + ")"
}

func (id WorkerID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// PanicError is returned by JoinHandle.Join when the worker panicked.
type PanicError struct {
	Worker WorkerID
	Name   string
	Value  any    // The value passed to panic
	Stack  []byte // Stack of the worker at the time of the panic
}

func (e *PanicError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("worker %s (%s) panicked: %v", e.Worker, e.Name, e.Value)
	}
	return fmt.Sprintf("worker %s panicked: %v", e.Worker, e.Value)
}

// Unwrap returns the panic value if it was an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

type spawnConfig struct {
	name   string
	logger *zap.Logger
	onDone func(id WorkerID, err error)
}

// SpawnOption is a functional option for configuring a spawned worker
type SpawnOption func(*spawnConfig)

// WithName gives the worker a name that shows up in logs and panic errors
func WithName(name string) SpawnOption {
	return func(c *spawnConfig) {
		c.name = name
	}
}

// WithSpawnLogger sets the logger used for the worker's lifecycle events
func WithSpawnLogger(logger *zap.Logger) SpawnOption {
	return func(c *spawnConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOnDone sets a callback that runs in the worker goroutine once the
// worker has finished, before any Join returns. err is a *PanicError if the
// worker panicked.
func WithOnDone(fn func(id WorkerID, err error)) SpawnOption {
	return func(c *spawnConfig) {
		c.onDone = fn
	}
}

// JoinHandle owns a running worker and lets the caller wait for its outcome.
type JoinHandle[T any] struct {
	id         WorkerID
	name       string
	logger     *zap.Logger
	onDone     func(id WorkerID, err error)
	running    atomic.Bool
	done       chan struct{}
	closedChan chan error

	// written by the worker before done is closed
	value T
	err   error
}

// Spawn runs fn in a new goroutine and returns immediately. fn receives the
// identity of the worker it runs on. A panic in fn does not crash the process
// by itself; it is recovered and reported by Join.
//
// Examples:
//
//	h := Spawn(func(id WorkerID) int { return 42 })
//	v := h.MustJoin()
//
//	h := Spawn(work, WithName("indexer"), WithSpawnLogger(logger))
//	if _, err := h.Join(); err != nil { ... }
func Spawn[T any](fn func(id WorkerID) T, opts ...SpawnOption) *JoinHandle[T] {
	cfg := spawnConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := nextWorkerID()
	h := &JoinHandle[T]{
		id:         id,
		name:       cfg.name,
		logger:     cfg.logger.With(zap.Stringer("worker", id)),
		onDone:     cfg.onDone,
		done:       make(chan struct{}),
		closedChan: make(chan error, 1),
	}
	if h.name != "" {
		h.logger = h.logger.With(zap.String("name", h.name))
	}
	h.running.Store(true)
	h.logger.Debug("spawning worker")
	go h.run(fn)
	return h
}

func (h *JoinHandle[T]) run(fn func(id WorkerID) T) {
	defer h.cleanup()
	defer func() {
		if r := recover(); r != nil {
			h.err = &PanicError{Worker: h.id, Name: h.name, Value: r, Stack: debug.Stack()}
			h.logger.Error("worker panicked", zap.Any("panic", r))
		}
	}()
	h.value = fn(h.id)
}

func (h *JoinHandle[T]) cleanup() {
	defer func() {
		h.running.Store(false)
		h.closedChan <- h.err
		close(h.closedChan)
		close(h.done)
	}()
	if h.onDone != nil {
		h.onDone(h.id, h.err)
	}
}

// ID returns the identity of the worker.
func (h *JoinHandle[T]) ID() WorkerID {
	return h.id
}

// Name returns the name given with WithName, if any.
func (h *JoinHandle[T]) Name() string {
	return h.name
}

// IsRunning returns true until the worker has finished.
func (h *JoinHandle[T]) IsRunning() bool {
	return h.running.Load()
}

// The channel used to signal when the worker is done. It delivers the
// worker's error (nil on success) once and is then closed.
func (h *JoinHandle[T]) ClosedChan() <-chan error {
	return h.closedChan
}

// Join blocks until the worker finishes and returns its value. If the worker
// panicked the error is a *PanicError. Join can be called any number of times
// and from any goroutine; every call sees the same outcome.
func (h *JoinHandle[T]) Join() (T, error) {
	<-h.done
	h.logger.Debug("worker joined", zap.Bool("panicked", h.err != nil))
	return h.value, h.err
}

// MustJoin is Join that re-panics with the *PanicError in the calling
// goroutine if the worker panicked. There is no recovery: a failed worker
// takes its caller down with it.
func (h *JoinHandle[T]) MustJoin() T {
	value, err := h.Join()
	if err != nil {
		panic(err)
	}
	return value
}

// Outcome joins the worker and packages the result.
func (h *JoinHandle[T]) Outcome() Outcome[T] {
	value, err := h.Join()
	return Outcome[T]{Worker: h.id, Value: value, Error: err}
}
