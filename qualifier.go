package qubits

import "fmt"

/*
BitQualifier names one or more qubit positions. The only implementations
are Bit, BitRange, Bits and ALL; resolution against a concrete qubit count
happens inside each operation, before any state is produced.
*/
type BitQualifier interface {
	qualifier()
}

// Bit names a single qubit.
type Bit int

// BitRange names the qubits From..To inclusive.
type BitRange struct {
	From int
	To   int
}

// Bits names an explicit list of qubits. Order is kept as given.
type Bits []int

type allBits struct{}

// ALL names every qubit of the state it is applied to.
var ALL BitQualifier = allBits{}

func (Bit) qualifier()      {}
func (BitRange) qualifier() {}
func (Bits) qualifier()     {}
func (allBits) qualifier()  {}

func (allBits) String() string { return "ALL" }

func (r BitRange) String() string { return fmt.Sprintf("{from: %d, to: %d}", r.From, r.To) }

// Range is shorthand for BitRange{From: from, To: to}.
func Range(from, to int) BitRange {
	return BitRange{From: from, To: to}
}

func invalidQualifier(q BitQualifier, numBits int, reason string) error {
	return &InvalidBitQualifierError{Qualifier: q, NumBits: numBits, Reason: reason}
}

func checkIndex(q BitQualifier, numBits, index int) error {
	if index < 0 || index >= numBits {
		return invalidQualifier(q, numBits, fmt.Sprintf("bit %d out of range", index))
	}
	return nil
}

/*
resolveRange turns a qualifier into a contiguous inclusive range. Explicit
lists are rejected because they need not be contiguous.
*/
func resolveRange(q BitQualifier, numBits int) (BitRange, error) {
	switch b := q.(type) {
	case nil:
		return BitRange{}, invalidQualifier(q, numBits, "bit qualification must be supplied")
	case allBits:
		if numBits == 0 {
			return BitRange{}, invalidQualifier(q, numBits, "state has no qubits")
		}
		return BitRange{From: 0, To: numBits - 1}, nil
	case Bit:
		if err := checkIndex(q, numBits, int(b)); err != nil {
			return BitRange{}, err
		}
		return BitRange{From: int(b), To: int(b)}, nil
	case BitRange:
		if b.From > b.To {
			return BitRange{}, invalidQualifier(q, numBits, `bit range must have "from" being less than or equal to "to"`)
		}
		if err := checkIndex(q, numBits, b.From); err != nil {
			return BitRange{}, err
		}
		if err := checkIndex(q, numBits, b.To); err != nil {
			return BitRange{}, err
		}
		return b, nil
	default:
		return BitRange{}, invalidQualifier(q, numBits, "bit qualification must be either: a Bit, ALL, or a BitRange")
	}
}

/*
resolveBits turns a qualifier into a list of indices. Ranges and ALL
resolve in ascending order; explicit lists pass through as given.
*/
func resolveBits(q BitQualifier, numBits int) ([]int, error) {
	switch b := q.(type) {
	case nil:
		return nil, invalidQualifier(q, numBits, "bit qualification must be supplied")
	case Bits:
		if len(b) == 0 {
			return nil, invalidQualifier(q, numBits, "bit list is empty")
		}
		out := make([]int, len(b))
		for i, index := range b {
			if err := checkIndex(q, numBits, index); err != nil {
				return nil, err
			}
			out[i] = index
		}
		return out, nil
	default:
		r, err := resolveRange(q, numBits)
		if err != nil {
			return nil, err
		}
		return rangeBits(r), nil
	}
}

func bitMask(bits []int) uint64 {
	var mask uint64
	for _, b := range bits {
		mask |= 1 << uint(b)
	}
	return mask
}

func overlaps(control, target []int) bool {
	mask := bitMask(control)
	for _, t := range target {
		if mask&(1<<uint(t)) != 0 {
			return true
		}
	}
	return false
}
