package sweep

import (
	"errors"
	"fmt"
)

// ErrInvalidRange indicates a sweep range that cannot be sampled.
var ErrInvalidRange = errors.New("sweep: invalid range")

// SampleError records a failed evaluation inside a sweep.
type SampleError struct {
	Index   int
	N       float64
	Wrapped error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (N=%.4f): %v", e.Index, e.N, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
