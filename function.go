package qubits

/*
ApplyFunction implements the oracle |x>|y> -> |x>|y XOR f(x)>, where x is
read from the input bit range and f(x) is XOR-ed into the target bit range.
Bits of f(x) that do not fit the target range are discarded. The two ranges
must not overlap.
*/
func (s *QState) ApplyFunction(input, target BitQualifier, f func(int) int) (*QState, error) {
	inputRange, err := resolveRange(input, s.numBits)
	if err != nil {
		return nil, err
	}
	targetRange, err := resolveRange(target, s.numBits)
	if err != nil {
		return nil, err
	}
	if inputRange.To >= targetRange.From && targetRange.To >= inputRange.From {
		return nil, &OverlappingBitsError{
			Control: rangeBits(inputRange),
			Target:  rangeBits(targetRange),
		}
	}

	highBitMask := uint64(1)<<uint(inputRange.To+1) - 1
	targetWidth := uint(targetRange.To - targetRange.From + 1)
	targetMask := (uint64(1)<<targetWidth - 1) << uint(targetRange.From)

	// XOR by f(x) leaves x alone, so this is a permutation of indices.
	amps := newAmplitudes(s.amps.len())
	for index, amplitude := range s.amps.all() {
		x := int((uint64(index) & highBitMask) >> uint(inputRange.From))
		flip := (uint64(f(x)) << uint(targetRange.From)) & targetMask
		amps.assign(uint32(uint64(index)^flip), amplitude)
	}

	return s.newState(amps), nil
}

func rangeBits(r BitRange) []int {
	out := make([]int, 0, r.To-r.From+1)
	for i := r.From; i <= r.To; i++ {
		out = append(out, i)
	}
	return out
}
