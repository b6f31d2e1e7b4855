package qubits

// must unwraps a state returning operation inside a test chain.
func must(state *QState, err error) *QState {
	if err != nil {
		panic(err)
	}
	return state
}
