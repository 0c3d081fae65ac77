package extension

import (
	"fmt"
	"sync"

	"github.com/justyntemme/clapgo/pkg/clap"
)

type report struct {
	op  string
	err error
}

// fakeBinder stands in for the runtime.
type fakeBinder struct {
	raw        clap.Plugin
	instance   any
	processor  any
	activating bool

	mu      sync.Mutex
	depth   int
	reports []report
}

func (b *fakeBinder) Raw() *clap.Plugin { return &b.raw }
func (b *fakeBinder) Activated() bool   { return b.processor != nil }
func (b *fakeBinder) Activating() bool  { return b.activating }

func (b *fakeBinder) EnterMain() any {
	b.depth++
	return b.instance
}

func (b *fakeBinder) ExitMain() { b.depth-- }

func (b *fakeBinder) EnterShared() (any, any) {
	b.mu.Lock()
	b.depth++
	return b.instance, b.processor
}

func (b *fakeBinder) ExitShared() {
	b.depth--
	b.mu.Unlock()
}

func (b *fakeBinder) EnterAudio() any {
	b.depth++
	return b.processor
}

func (b *fakeBinder) ExitAudio() { b.depth-- }

func (b *fakeBinder) Report(op string, err error) {
	b.reports = append(b.reports, report{op: op, err: err})
}

func (b *fakeBinder) Recover(op string) {
	if v := recover(); v != nil {
		b.Report(op, fmt.Errorf("panic: %v", v))
	}
}

func (b *fakeBinder) RecoverAudio(op string) {
	if v := recover(); v != nil {
		b.Report(op, fmt.Errorf("audio panic: %v", v))
	}
}
