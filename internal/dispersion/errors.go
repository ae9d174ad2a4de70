package dispersion

import (
	"errors"
	"fmt"
)

// ErrDomain indicates an input outside the mathematically valid domain of
// the selected formula.
var ErrDomain = errors.New("dispersion: input outside valid domain")

// DomainError wraps ErrDomain with the operation and the offending input.
type DomainError struct {
	Op     string
	Param  string
	Value  float64
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("dispersion: %s: %s=%g: %s", e.Op, e.Param, e.Value, e.Reason)
}

func (e *DomainError) Unwrap() error {
	return ErrDomain
}

func domainErr(op, param string, value float64, reason string) error {
	return &DomainError{Op: op, Param: param, Value: value, Reason: reason}
}
