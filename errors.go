package pagesearch

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPageRequest is returned when a page request has a negative
	// offset or a limit below one. The request is rejected, never clamped.
	ErrInvalidPageRequest = errors.New("invalid page request")
	// ErrInvalidSort is returned when a sort expression cannot be parsed.
	ErrInvalidSort = errors.New("invalid sort")
	// ErrQueryExecution matches every *QueryExecutionError via errors.Is.
	ErrQueryExecution = errors.New("query execution failure")
)

// QueryStep names the query of a search that failed.
type QueryStep string

const (
	QueryStepContent QueryStep = "content"
	QueryStepCount   QueryStep = "count"
)

// QueryExecutionError wraps a storage failure together with the query step
// that produced it.
type QueryExecutionError struct {
	Step QueryStep
	Err  error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Step, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// Is reports ErrQueryExecution as a match so callers can branch on the error
// category without knowing the storage cause.
func (e *QueryExecutionError) Is(target error) bool {
	return target == ErrQueryExecution
}

func newQueryExecutionError(step QueryStep, err error) error {
	return &QueryExecutionError{Step: step, Err: err}
}
