package qubits

import (
	"sync/atomic"

	"github.com/theapemachine/errnie"
)

var verbose atomic.Bool

/*
SetVerbose switches errnie info logging of measurements and transforms on
or off. It is off by default so that gate loops stay silent.
*/
func SetVerbose(on bool) {
	verbose.Store(on)
}

func logf(format string, args ...any) {
	if verbose.Load() {
		errnie.Info(format, args...)
	}
}
