package errors

import (
	"errors"
	"fmt"
)

// InvalidPoolSizeError is returned when a pool is created with less than one worker.
type InvalidPoolSizeError struct {
	size int
}

func NewInvalidPoolSizeError(size int) *InvalidPoolSizeError {
	return &InvalidPoolSizeError{size: size}
}

func (e *InvalidPoolSizeError) Error() string {
	return fmt.Sprintf("invalid pool size %d: must be at least 1", e.size)
}

func (e *InvalidPoolSizeError) Size() int {
	return e.size
}

func IsInvalidPoolSizeError(err error) bool {
	var e *InvalidPoolSizeError
	return errors.As(err, &e)
}

// InvalidJobError is returned when a nil job is submitted.
type InvalidJobError struct{}

func NewInvalidJobError() *InvalidJobError {
	return &InvalidJobError{}
}

func (e *InvalidJobError) Error() string {
	return "job must not be nil"
}

func IsInvalidJobError(err error) bool {
	var e *InvalidJobError
	return errors.As(err, &e)
}

// PoolClosedError is returned by Execute once shutdown has begun.
type PoolClosedError struct{}

func NewPoolClosedError() *PoolClosedError {
	return &PoolClosedError{}
}

func (e *PoolClosedError) Error() string {
	return "thread pool is shut down"
}

func IsPoolClosedError(err error) bool {
	var e *PoolClosedError
	return errors.As(err, &e)
}

// WorkerPanicError records a worker that exited because its job panicked.
type WorkerPanicError struct {
	workerID string
	value    any
}

func NewWorkerPanicError(workerID string, value any) *WorkerPanicError {
	return &WorkerPanicError{workerID: workerID, value: value}
}

func (e *WorkerPanicError) Error() string {
	return fmt.Sprintf("worker %s panicked: %v", e.workerID, e.value)
}

func (e *WorkerPanicError) WorkerID() string {
	return e.workerID
}

func (e *WorkerPanicError) Value() any {
	return e.value
}

func IsWorkerPanicError(err error) bool {
	var e *WorkerPanicError
	return errors.As(err, &e)
}

// ProbeError wraps failures to read or parse the cpu information source.
type ProbeError struct {
	path string
	err  error
}

func NewProbeError(path string, err error) *ProbeError {
	return &ProbeError{path: path, err: err}
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("failed to probe cpu info from %q: %v", e.path, e.err)
}

func (e *ProbeError) Unwrap() error {
	return e.err
}

func IsProbeError(err error) bool {
	var e *ProbeError
	return errors.As(err, &e)
}

type ConfigurationError struct {
	field  string
	reason string
}

func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{field: field, reason: reason}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.field, e.reason)
}

func (e *ConfigurationError) Field() string {
	return e.field
}

func IsConfigurationError(err error) bool {
	var e *ConfigurationError
	return errors.As(err, &e)
}
