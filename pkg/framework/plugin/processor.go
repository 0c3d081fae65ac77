package plugin

import (
	"sync/atomic"

	"github.com/justyntemme/clapgo/pkg/framework/param"
	"github.com/justyntemme/clapgo/pkg/framework/process"
)

// BaseProcessor provides common functionality for audio processors. It
// remembers the activation settings, applies parameter events to the
// plugin's registry and carries the optional processing hooks.
type BaseProcessor struct {
	params     *param.Registry
	sampleRate float64
	maxFrames  uint32
	tail       atomic.Uint32

	// Optional callbacks for customization
	onReset func()
	onStart func() error
	onStop  func()
}

// NewBaseProcessor creates a base for one activation.
func NewBaseProcessor(params *param.Registry, sampleRate float64, maxFrames uint32) *BaseProcessor {
	if params == nil {
		params = param.NewRegistry()
	}
	return &BaseProcessor{
		params:     params,
		sampleRate: sampleRate,
		maxFrames:  maxFrames,
	}
}

// SampleRate returns the activation sample rate
func (b *BaseProcessor) SampleRate() float64 { return b.sampleRate }

// MaxFrames returns the largest block the host will send.
func (b *BaseProcessor) MaxFrames() uint32 { return b.maxFrames }

// Parameters returns the shared parameter registry
func (b *BaseProcessor) Parameters() *param.Registry { return b.params }

// SetTail sets the tail length in frames. Safe from any thread.
func (b *BaseProcessor) SetTail(frames uint32) { b.tail.Store(frames) }

// Tail implements extension.TailProvider.
func (b *BaseProcessor) Tail() uint32 { return b.tail.Load() }

// ApplyParams applies the block's parameter events up front and returns
// how many changed a value. Processors that need sample accurate
// automation walk v.Frames() instead.
func (b *BaseProcessor) ApplyParams(v *process.View) int {
	return b.params.ApplyEvents(v.InputEvents())
}

// FlushParams applies parameter events while activated but not processing.
func (b *BaseProcessor) FlushParams(in process.InputEvents, _ *process.OutputEvents) {
	b.params.ApplyEvents(in)
}

// Reset clears processing state. It runs on the audio thread.
func (b *BaseProcessor) Reset() {
	if b.onReset != nil {
		b.onReset()
	}
}

// StartProcessing runs on the audio thread before the first process call.
func (b *BaseProcessor) StartProcessing() error {
	if b.onStart != nil {
		return b.onStart()
	}
	return nil
}

// StopProcessing runs on the audio thread after the last process call.
func (b *BaseProcessor) StopProcessing() {
	if b.onStop != nil {
		b.onStop()
	}
}

// OnReset sets a callback for when the processor should reset its state
func (b *BaseProcessor) OnReset(fn func()) { b.onReset = fn }

// OnStartProcessing sets a callback for start_processing.
func (b *BaseProcessor) OnStartProcessing(fn func() error) { b.onStart = fn }

// OnStopProcessing sets a callback for stop_processing.
func (b *BaseProcessor) OnStopProcessing(fn func()) { b.onStop = fn }
