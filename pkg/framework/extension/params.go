package extension

import (
	"strconv"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// ParamInfo describes one parameter. Values are plain, not normalized.
type ParamInfo struct {
	ID           uint32
	Flags        uint32
	Name         string
	Module       string
	MinValue     float64
	MaxValue     float64
	DefaultValue float64
}

// ParamsProvider is implemented by plugin instances that expose parameters.
// It is only called on the main thread.
type ParamsProvider interface {
	ParamsCount() uint32
	ParamInfo(index uint32) (ParamInfo, bool)
	ParamValue(id uint32) (float64, bool)
}

// ParamsFormatter optionally converts values to and from display text.
type ParamsFormatter interface {
	ParamValueText(id uint32, value float64) (string, bool)
	ParamTextValue(id uint32, text string) (float64, bool)
}

// ParamsFlusher applies parameter events outside of process. While the
// plugin is activated flush goes to the audio processor, otherwise to the
// plugin instance.
type ParamsFlusher interface {
	FlushParams(in process.InputEvents, out *process.OutputEvents)
}

// Params is the clap.params capability.
type Params struct{}

func (Params) ID() string { return clap.ExtParams }

func (Params) Bind(b Binder) unsafe.Pointer {
	// flush never runs concurrently with itself or with process
	var sink process.OutputEvents

	return unsafe.Pointer(&clap.PluginParams{
		Count: func(*clap.Plugin) uint32 {
			defer b.Recover("params.count")
			inst := b.EnterMain()
			defer b.ExitMain()
			if p, ok := inst.(ParamsProvider); ok {
				return p.ParamsCount()
			}
			return 0
		},
		GetInfo: func(_ *clap.Plugin, index uint32, info *clap.ParamInfo) bool {
			defer b.Recover("params.get_info")
			if info == nil {
				b.Report("params.get_info", NewNilArgumentError("params.get_info", "info"))
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			p, ok := inst.(ParamsProvider)
			if !ok {
				return false
			}
			pi, ok := p.ParamInfo(index)
			if !ok {
				return false
			}
			info.ID = pi.ID
			info.Flags = pi.Flags
			info.Cookie = nil
			clap.CopyString(info.Name[:], pi.Name)
			clap.CopyString(info.Module[:], pi.Module)
			info.MinValue = pi.MinValue
			info.MaxValue = pi.MaxValue
			info.DefaultValue = pi.DefaultValue
			return true
		},
		GetValue: func(_ *clap.Plugin, id uint32, value *float64) bool {
			defer b.Recover("params.get_value")
			if value == nil {
				b.Report("params.get_value", NewNilArgumentError("params.get_value", "value"))
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			p, ok := inst.(ParamsProvider)
			if !ok {
				return false
			}
			v, ok := p.ParamValue(id)
			if ok {
				*value = v
			}
			return ok
		},
		ValueToText: func(_ *clap.Plugin, id uint32, value float64, out *byte, capacity uint32) bool {
			defer b.Recover("params.value_to_text")
			if out == nil || capacity == 0 {
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			text, ok := valueText(inst, id, value)
			if !ok {
				return false
			}
			clap.CopyString(unsafe.Slice(out, capacity), text)
			return true
		},
		TextToValue: func(_ *clap.Plugin, id uint32, text *byte, value *float64) bool {
			defer b.Recover("params.text_to_value")
			if text == nil || value == nil {
				return false
			}
			inst := b.EnterMain()
			defer b.ExitMain()
			v, ok := textValue(inst, id, clap.GoString(text))
			if ok {
				*value = v
			}
			return ok
		},
		Flush: func(_ *clap.Plugin, in *clap.InputEvents, out *clap.OutputEvents) {
			defer b.RecoverAudio("params.flush")
			inst, proc := b.EnterShared()
			defer b.ExitShared()
			events := process.WrapInputEvents(in)
			sink.Reset(out)
			if proc != nil {
				if f, ok := proc.(ParamsFlusher); ok {
					f.FlushParams(events, &sink)
				}
				return
			}
			if f, ok := inst.(ParamsFlusher); ok {
				f.FlushParams(events, &sink)
			}
		},
	})
}

func valueText(inst any, id uint32, value float64) (string, bool) {
	if f, ok := inst.(ParamsFormatter); ok {
		return f.ParamValueText(id, value)
	}
	if !knownParam(inst, id) {
		return "", false
	}
	return strconv.FormatFloat(value, 'f', 2, 64), true
}

func textValue(inst any, id uint32, text string) (float64, bool) {
	if f, ok := inst.(ParamsFormatter); ok {
		return f.ParamTextValue(id, text)
	}
	if !knownParam(inst, id) {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	return v, err == nil
}

func knownParam(inst any, id uint32) bool {
	p, ok := inst.(ParamsProvider)
	if !ok {
		return false
	}
	_, ok = p.ParamValue(id)
	return ok
}
