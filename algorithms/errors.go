package algorithms

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSolution means a probabilistic search gave up.
	ErrNoSolution = errors.New("could not find a solution")
	// ErrNoPeriod means period finding did not settle on a true period.
	ErrNoPeriod = errors.New("could not find period")
	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("invalid input")
)

// InputError reports an argument an algorithm cannot work with.
type InputError struct {
	Algorithm string
	Reason    string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Algorithm, e.Reason)
}

func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
