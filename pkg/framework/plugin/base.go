package plugin

import (
	"io"
	"sync/atomic"

	"github.com/justyntemme/clapgo/pkg/framework/bus"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
	"github.com/justyntemme/clapgo/pkg/framework/state"
)

// Base provides core functionality for all plugins. Embedding it makes a
// plugin instance answer the audio ports, params, state and latency
// capabilities from its bus layout, parameter registry and state document.
type Base struct {
	Info    Info
	params  *param.Registry
	buses   *bus.Configuration
	state   *state.Document
	latency atomic.Uint32
}

// NewBase creates a plugin base. A nil bus layout means stereo in/out.
func NewBase(info Info, buses *bus.Configuration) *Base {
	if buses == nil {
		buses = bus.NewStereoConfiguration()
	}
	params := param.NewRegistry()
	return &Base{
		Info:   info,
		params: params,
		buses:  buses,
		state:  state.NewDocument(params),
	}
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry { return b.params }

// Buses returns the bus layout.
func (b *Base) Buses() *bus.Configuration { return b.buses }

// State returns the state document, for custom chunks and versioning.
func (b *Base) State() *state.Document { return b.state }

// SetLatency sets the latency reported to the host, in frames. Callers tell
// the host through HostLatency.Changed.
func (b *Base) SetLatency(frames uint32) { b.latency.Store(frames) }

func (b *Base) Latency() uint32 { return b.latency.Load() }

func (b *Base) AudioPortsCount(isInput bool) uint32 { return b.buses.AudioPortsCount(isInput) }

func (b *Base) AudioPortsGet(index uint32, isInput bool) (extension.AudioPortInfo, bool) {
	return b.buses.AudioPortsGet(index, isInput)
}

func (b *Base) ParamsCount() uint32 { return b.params.ParamsCount() }

func (b *Base) ParamInfo(index uint32) (extension.ParamInfo, bool) {
	return b.params.ParamInfo(index)
}

func (b *Base) ParamValue(id uint32) (float64, bool) { return b.params.ParamValue(id) }

func (b *Base) ParamValueText(id uint32, value float64) (string, bool) {
	return b.params.ParamValueText(id, value)
}

func (b *Base) ParamTextValue(id uint32, text string) (float64, bool) {
	return b.params.ParamTextValue(id, text)
}

// FlushParams applies parameter events while deactivated.
func (b *Base) FlushParams(in process.InputEvents, out *process.OutputEvents) {
	b.params.FlushParams(in, out)
}

func (b *Base) SaveState(w io.Writer) error { return b.state.Save(w) }

func (b *Base) LoadState(r io.Reader) error { return b.state.Load(r) }

var (
	_ extension.AudioPortsProvider = (*Base)(nil)
	_ extension.ParamsProvider     = (*Base)(nil)
	_ extension.ParamsFormatter    = (*Base)(nil)
	_ extension.ParamsFlusher      = (*Base)(nil)
	_ extension.StateProvider      = (*Base)(nil)
	_ extension.LatencyProvider    = (*Base)(nil)
)
