// Package param provides parameter management for CLAP plugins.
//
// Values are kept in the plugin's plain range. The current value is stored
// atomically so the audio thread and the main thread can both read it
// without locking.
package param

import (
	"math"
	"strconv"
	"sync/atomic"

	"github.com/justyntemme/clapgo/pkg/clap"
	"github.com/justyntemme/clapgo/pkg/framework/extension"
)

// Parameter represents a plugin parameter
type Parameter struct {
	ID           uint32
	Name         string
	Module       string
	Unit         string
	Min          float64
	Max          float64
	DefaultValue float64
	// StepCount > 0 marks a stepped parameter with StepCount+1 positions.
	StepCount int32
	Flags     uint32

	value atomic.Uint64

	format func(float64) string
	parse  func(string) (float64, error)
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue stores value clamped to [Min, Max]. Stepped parameters are
// rounded to the nearest step.
func (p *Parameter) SetValue(value float64) {
	p.value.Store(math.Float64bits(p.Clamp(value)))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.DefaultValue)
}

// Clamp limits value to the parameter range.
func (p *Parameter) Clamp(value float64) float64 {
	if math.IsNaN(value) {
		return p.DefaultValue
	}
	if value < p.Min {
		value = p.Min
	} else if value > p.Max {
		value = p.Max
	}
	if p.StepCount > 0 {
		value = math.Round(value)
	}
	return value
}

// Normalized returns the current value mapped to 0-1.
func (p *Parameter) Normalized() float64 {
	if p.Max <= p.Min {
		return 0
	}
	return (p.Value() - p.Min) / (p.Max - p.Min)
}

// SetFormatter sets custom value formatting
func (p *Parameter) SetFormatter(format func(float64) string, parse func(string) (float64, error)) {
	p.format = format
	p.parse = parse
}

// FormatValue returns display text for a plain value.
func (p *Parameter) FormatValue(value float64) string {
	if p.format != nil {
		return p.format(value)
	}
	if p.StepCount > 0 {
		return strconv.FormatFloat(value, 'f', 0, 64)
	}
	text := strconv.FormatFloat(value, 'f', 2, 64)
	if p.Unit != "" {
		text += " " + p.Unit
	}
	return text
}

// ParseValue converts display text back to a clamped plain value.
func (p *Parameter) ParseValue(text string) (float64, error) {
	var (
		v   float64
		err error
	)
	if p.parse != nil {
		v, err = p.parse(text)
	} else {
		v, err = parseNumber(text, p.Unit)
	}
	if err != nil {
		return 0, NewParseError(p.ID, text, err)
	}
	return p.Clamp(v), nil
}

// Info describes the parameter for the params capability.
func (p *Parameter) Info() extension.ParamInfo {
	flags := p.Flags
	if p.StepCount > 0 {
		flags |= clap.ParamIsStepped
	}
	return extension.ParamInfo{
		ID:           p.ID,
		Flags:        flags,
		Name:         p.Name,
		Module:       p.Module,
		MinValue:     p.Min,
		MaxValue:     p.Max,
		DefaultValue: p.DefaultValue,
	}
}
