package coin

import (
	"errors"
	"fmt"
)

var (
	// ErrChainUnavailable is returned when the chain head cannot be determined. It fails the pass.
	ErrChainUnavailable = errors.New("chain unavailable")

	// ErrWindowQueryFailed marks a single failed window query. It is logged and skipped.
	ErrWindowQueryFailed = errors.New("window query failed")

	// ErrInvalidURI is returned for an empty or unsupported metadata URI.
	ErrInvalidURI = errors.New("invalid metadata uri")

	// ErrMetadataUnresolvable is returned when every resolution attempt failed.
	ErrMetadataUnresolvable = errors.New("metadata unresolvable")

	// ErrCacheMiss signals that no live cache entry exists.
	ErrCacheMiss = errors.New("cache miss")
)

// ChainUnavailableError wraps the underlying head query failure.
type ChainUnavailableError struct {
	Err error
}

func (e *ChainUnavailableError) Error() string {
	return fmt.Sprintf("%s: %v", ErrChainUnavailable, e.Err)
}

func (e *ChainUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrChainUnavailable) hold for any ChainUnavailableError.
func (e *ChainUnavailableError) Is(target error) bool {
	return target == ErrChainUnavailable
}

// WindowError describes a failed window query.
type WindowError struct {
	FromBlock uint64
	ToBlock   uint64
	Err       error
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s [%d, %d]: %v", ErrWindowQueryFailed, e.FromBlock, e.ToBlock, e.Err)
}

func (e *WindowError) Unwrap() error {
	return e.Err
}

func (e *WindowError) Is(target error) bool {
	return target == ErrWindowQueryFailed
}
