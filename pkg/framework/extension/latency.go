package extension

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// LatencyProvider is implemented by plugin instances that introduce latency.
type LatencyProvider interface {
	Latency() uint32
}

// TailProvider is implemented by audio processors with a tail.
type TailProvider interface {
	Tail() uint32
}

// Latency is the clap.latency capability. The host may only query it while
// the plugin is activated or being activated.
type Latency struct{}

func (Latency) ID() string { return clap.ExtLatency }

func (Latency) Bind(b Binder) unsafe.Pointer {
	return unsafe.Pointer(&clap.PluginLatency{
		Get: func(*clap.Plugin) uint32 {
			defer b.Recover("latency.get")
			if !b.Activated() && !b.Activating() {
				b.Report("latency.get", NewNotActivatedError("latency.get"))
				return 0
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			if p, ok := inst.(LatencyProvider); ok {
				return p.Latency()
			}
			return 0
		},
	})
}

// Tail is the clap.tail capability, queried from the audio thread.
type Tail struct{}

func (Tail) ID() string { return clap.ExtTail }

func (Tail) Bind(b Binder) unsafe.Pointer {
	return unsafe.Pointer(&clap.PluginTail{
		Get: func(*clap.Plugin) uint32 {
			defer b.RecoverAudio("tail.get")
			proc := b.EnterAudio()
			defer b.ExitAudio()
			if p, ok := proc.(TailProvider); ok {
				return p.Tail()
			}
			return 0
		},
	})
}
