// Package gohandoff shows two ways of handing data to goroutines.
//
// The first is single ownership: a value is moved into exactly one worker,
// the caller keeps no reference to it, and the worker is joined before the
// call returns. The second is shared ownership: a value is wrapped in an
// atomically reference counted handle, the handle is cloned once per worker,
// and every worker reads the same immutable value without any locking.
//
// The main pieces are:
//
//   - Spawn / JoinHandle: start a worker goroutine and wait for its outcome, with
//     worker panics surfaced as *PanicError
//   - Group: join a set of workers in the order they were spawned
//   - Arc: a handle to shared storage that is released when the last handle is dropped
//   - IntoWorker: move one value into one worker and print it
//   - FanOut / IntoWorkers: share one value between several workers and print it from each
//   - Sendable / Sharable: the capability constraints for the two patterns
//
// Both demonstration operations treat a worker panic as fatal: the join
// re-panics in the caller rather than recovering.
package gohandoff
