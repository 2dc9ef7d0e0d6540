// Package asset loads sprite definitions and exposes them as polled resources.
package asset

import "sync/atomic"

// Status is the load state of a Resource.
type Status int32

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "pending"
	}
}

// Resource is a value published by a loader goroutine and polled by the game loop.
// Value and error are written before the status, so a reader that observes a
// terminal status also observes the value.
type Resource[T any] struct {
	status atomic.Int32
	value  T
	err    error
}

// Ready returns a resource that is already loaded.
func Ready[T any](v T) *Resource[T] {
	r := &Resource[T]{value: v}
	r.status.Store(int32(StatusReady))
	return r
}

// Status returns the current load state.
func (r *Resource[T]) Status() Status {
	if r == nil {
		return StatusPending
	}
	return Status(r.status.Load())
}

// Get returns the value and true once the resource is ready.
func (r *Resource[T]) Get() (T, bool) {
	var zero T
	if r.Status() != StatusReady {
		return zero, false
	}
	return r.value, true
}

// Err returns the load error of a failed resource.
func (r *Resource[T]) Err() error {
	if r.Status() != StatusFailed {
		return nil
	}
	return r.err
}

func (r *Resource[T]) resolve(v T) bool {
	if r.Status() != StatusPending {
		return false
	}
	r.value = v
	r.status.Store(int32(StatusReady))
	return true
}

func (r *Resource[T]) fail(err error) bool {
	if r.Status() != StatusPending {
		return false
	}
	r.err = err
	r.status.Store(int32(StatusFailed))
	return true
}
