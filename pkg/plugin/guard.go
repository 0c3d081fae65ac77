package plugin

import "sync/atomic"

// borrowGuard backs the host's promise that process, flush and deactivate
// never overlap, and that destroy is not issued from inside a capability
// call. It only checks in debug builds.
type borrowGuard struct {
	processor atomic.Int32
	main      atomic.Int32
}

// tryLockProcessor takes exclusive use of the audio processor. Release
// builds always succeed.
func (g *borrowGuard) tryLockProcessor() bool {
	return !debugChecks || g.processor.CompareAndSwap(0, 1)
}

// lockProcessor is tryLockProcessor that panics on overlap.
func (g *borrowGuard) lockProcessor(op string) {
	if !g.tryLockProcessor() {
		panic(overlapMessage(op))
	}
}

func overlapMessage(op string) string {
	return "plugin: " + op + " overlaps another use of the audio processor"
}

func (g *borrowGuard) unlockProcessor() {
	if debugChecks {
		g.processor.Store(0)
	}
}

func (g *borrowGuard) enterMain() {
	if debugChecks {
		g.main.Add(1)
	}
}

func (g *borrowGuard) exitMain() {
	if debugChecks {
		g.main.Add(-1)
	}
}

// checkIdle panics when op would pull state out from under a borrower.
func (g *borrowGuard) checkIdle(op string) {
	if !debugChecks {
		return
	}
	if g.processor.Load() != 0 {
		panic("plugin: " + op + " while the audio processor is in use")
	}
	if g.main.Load() != 0 {
		panic("plugin: " + op + " from inside a capability call")
	}
}
