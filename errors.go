package qubits

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidBitQualifier is matched by every *InvalidBitQualifierError.
	ErrInvalidBitQualifier = errors.New("invalid bit qualifier")
	// ErrOverlappingBits is matched by every *OverlappingBitsError.
	ErrOverlappingBits = errors.New("control and target bits must not be the same nor overlap")
	// ErrDimensionMismatch is matched by every *DimensionMismatchError.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrWrongArity is matched by every *WrongArityError.
	ErrWrongArity = errors.New("wrong number of arguments")
	// ErrInvalidKet is matched by every *InvalidKetError.
	ErrInvalidKet = errors.New("invalid ket literal")
	// ErrZeroState is returned when an operation needs a non-zero norm,
	// such as normalizing or measuring a state without live amplitudes.
	ErrZeroState = errors.New("state has no non-zero amplitudes")
)

/*
InvalidBitQualifierError reports a qualifier that could not be resolved
against the qubit count of a state.
*/
type InvalidBitQualifierError struct {
	Qualifier BitQualifier
	NumBits   int
	Reason    string
}

func (e *InvalidBitQualifierError) Error() string {
	return fmt.Sprintf("invalid bit qualifier %v for %d qubits: %s", e.Qualifier, e.NumBits, e.Reason)
}

func (e *InvalidBitQualifierError) Is(target error) bool { return target == ErrInvalidBitQualifier }

/*
OverlappingBitsError reports control and target sets sharing a qubit.
*/
type OverlappingBitsError struct {
	Control []int
	Target  []int
}

func (e *OverlappingBitsError) Error() string {
	return fmt.Sprintf("%s: control %v, target %v", ErrOverlappingBits, e.Control, e.Target)
}

func (e *OverlappingBitsError) Is(target error) bool { return target == ErrOverlappingBits }

/*
DimensionMismatchError reports operands or indices that do not fit the
qubit count of a state.
*/
type DimensionMismatchError struct {
	Operation string
	Expected  int
	Actual    int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("%s: dimension mismatch: expected %d, got %d", e.Operation, e.Expected, e.Actual)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// WrongArityError reports a variadic call with too few arguments.
type WrongArityError struct {
	Operation string
	Min       int
	Got       int
}

func (e *WrongArityError) Error() string {
	return fmt.Sprintf("%s: needs at least %d arguments, got %d", e.Operation, e.Min, e.Got)
}

func (e *WrongArityError) Is(target error) bool { return target == ErrWrongArity }

// InvalidKetError reports a malformed |...> literal.
type InvalidKetError struct {
	Literal string
	Reason  string
}

func (e *InvalidKetError) Error() string {
	return fmt.Sprintf("invalid ket %q: %s", e.Literal, e.Reason)
}

func (e *InvalidKetError) Is(target error) bool { return target == ErrInvalidKet }
