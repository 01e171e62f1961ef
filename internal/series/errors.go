package series

import (
	"errors"
	"fmt"
)

// ErrInvalidSample matches any InvalidSampleError via errors.Is.
var ErrInvalidSample = errors.New("invalid sample")

// InvalidSampleError reports a rejected non-finite value.
type InvalidSampleError struct {
	Key   string
	Value float64
}

func (e *InvalidSampleError) Error() string {
	return fmt.Sprintf("invalid sample for %q: %v is not finite", e.Key, e.Value)
}

func (e *InvalidSampleError) Is(target error) bool {
	return target == ErrInvalidSample
}
