package param

import (
	"strings"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new automatable parameter with range 0-1.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:    id,
			Name:  name,
			Min:   0,
			Max:   1,
			Flags: clap.ParamIsAutomatable,
		},
	}
}

// Module sets the "/"-separated group path shown by hosts.
func (b *Builder) Module(path string) *Builder {
	b.param.Module = path
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default plain value.
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Unit sets the unit string
func (b *Builder) Unit(unit string) *Builder {
	b.param.Unit = unit
	return b
}

// Steps sets the number of discrete steps
func (b *Builder) Steps(count int32) *Builder {
	b.param.StepCount = count
	return b
}

// Flags replaces the parameter flags.
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Toggle creates an on/off parameter.
func (b *Builder) Toggle() *Builder {
	b.param.Min = 0
	b.param.Max = 1
	b.param.StepCount = 1
	b.param.DefaultValue = 0
	return b.Formatter(OnOff.Text, OnOff.Parse)
}

// ReadOnly marks the parameter as read-only
func (b *Builder) ReadOnly() *Builder {
	b.param.Flags |= clap.ParamIsReadonly
	b.param.Flags &^= clap.ParamIsAutomatable
	return b
}

// Hidden marks the parameter as hidden
func (b *Builder) Hidden() *Builder {
	b.param.Flags |= clap.ParamIsHidden
	return b
}

// Bypass marks this as the bypass parameter
func (b *Builder) Bypass() *Builder {
	b.param.Flags |= clap.ParamIsBypass
	return b.Toggle()
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.format = format
	b.param.parse = parse
	return b
}

// Format applies one of the predefined formats.
func (b *Builder) Format(f Format) *Builder {
	return b.Formatter(f.Text, f.Parse)
}

// Build returns the configured parameter holding its default value.
func (b *Builder) Build() *Parameter {
	b.param.Reset()
	return b.param
}

// Gain creates a decibel parameter from GainFloor to +12 dB.
func Gain(id uint32, name string) *Builder {
	return New(id, name).
		Range(GainFloor, 12).
		Default(0).
		Unit("dB").
		Format(Decibels(GainFloor))
}

// Mix creates a 0-100% dry/wet parameter.
func Mix(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 100).
		Default(100).
		Unit("%").
		Format(Percent)
}

// Choice creates a stepped parameter whose positions are labelled by names.
func Choice(id uint32, name string, names ...string) *Builder {
	last := float64(len(names) - 1)
	if last < 0 {
		last = 0
	}
	return New(id, name).
		Range(0, last).
		Steps(int32(last)).
		Formatter(func(v float64) string {
			i := int(v + 0.5)
			if i < 0 || i >= len(names) {
				return "?"
			}
			return names[i]
		}, func(s string) (float64, error) {
			s = strings.TrimSpace(s)
			for i, n := range names {
				if strings.EqualFold(s, n) {
					return float64(i), nil
				}
			}
			return parseNumber(s, "")
		})
}
