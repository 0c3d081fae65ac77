// Package process provides the per-call process view handed to audio processors.
//
// A View wraps one host process block without copying it. The runtime owns a
// single View per instance, rebinds it at the start of every process call and
// releases it at the end, so nothing on this path allocates. Ports, event lists
// and frames derived from a View are only valid during that call.
package process

import (
	"fmt"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// View is the processor's window onto one process block.
type View struct {
	raw  *clap.Process
	gen  uint64
	live bool

	out     OutputEvents
	walker  FrameWalker
	walking bool

	// Pre-allocated work buffers
	workBuffer []float32
	tempBuffer []float32
}

// NewView creates a view with scratch buffers for blocks of up to maxFrames.
func NewView(maxFrames uint32) *View {
	return &View{
		workBuffer: make([]float32, maxFrames),
		tempBuffer: make([]float32, maxFrames),
	}
}

// Bind points the view at p for the duration of one process call.
func (v *View) Bind(p *clap.Process) *View {
	v.gen++
	v.raw = p
	v.live = true
	v.out.Reset(p.OutEvents)
	v.walking = false
	return v
}

// Release ends the current call. Anything derived from the view is stale
// afterwards.
func (v *View) Release() {
	v.gen++
	v.raw = nil
	v.live = false
}

// Live reports whether the view is bound to a process call.
func (v *View) Live() bool { return v.live }

// Raw returns the underlying process block.
func (v *View) Raw() *clap.Process {
	v.checkLive()
	return v.raw
}

func (v *View) checkLive() {
	if debugChecks && !v.live {
		panic(errStaleView)
	}
}

func (v *View) checkGen(gen uint64) {
	if debugChecks && (!v.live || gen != v.gen) {
		panic(errStaleView)
	}
}

// SteadyTime is the host's sample clock, or -1 when unavailable.
func (v *View) SteadyTime() int64 {
	v.checkLive()
	return v.raw.SteadyTime
}

// FrameCount is the number of frames in this block.
func (v *View) FrameCount() uint32 {
	v.checkLive()
	return v.raw.FramesCount
}

// NumSamples is FrameCount as an int, for slicing.
func (v *View) NumSamples() int {
	return int(v.FrameCount())
}

// AudioInputCount returns the number of input ports.
func (v *View) AudioInputCount() uint32 {
	v.checkLive()
	return v.raw.AudioInputsCount
}

// AudioOutputCount returns the number of output ports.
func (v *View) AudioOutputCount() uint32 {
	v.checkLive()
	return v.raw.AudioOutputsCount
}

// AudioInput returns input port n. It panics when n is out of range, which is
// always a caller bug since the port layout is declared by the plugin.
func (v *View) AudioInput(n uint32) Port {
	p, ok := v.TryAudioInput(n)
	if !ok {
		panic(fmt.Sprintf("process: audio input %d out of range (%d inputs)", n, v.raw.AudioInputsCount))
	}
	return p
}

// AudioOutput returns output port n. It panics when n is out of range.
func (v *View) AudioOutput(n uint32) Port {
	p, ok := v.TryAudioOutput(n)
	if !ok {
		panic(fmt.Sprintf("process: audio output %d out of range (%d outputs)", n, v.raw.AudioOutputsCount))
	}
	return p
}

// TryAudioInput returns input port n, or false when it does not exist.
func (v *View) TryAudioInput(n uint32) (Port, bool) {
	v.checkLive()
	if n >= v.raw.AudioInputsCount {
		return Port{}, false
	}
	return v.port(v.raw.AudioInputs, v.raw.AudioInputsCount, n, true), true
}

// TryAudioOutput returns output port n, or false when it does not exist.
func (v *View) TryAudioOutput(n uint32) (Port, bool) {
	v.checkLive()
	if n >= v.raw.AudioOutputsCount {
		return Port{}, false
	}
	return v.port(v.raw.AudioOutputs, v.raw.AudioOutputsCount, n, false), true
}

func (v *View) port(base *clap.AudioBuffer, count, n uint32, input bool) Port {
	if debugChecks && base == nil {
		panic("process: host passed a nil audio port array with a non-zero count")
	}
	return Port{
		buf:    &unsafe.Slice(base, count)[n],
		frames: v.raw.FramesCount,
		input:  input,
		view:   v,
		gen:    v.gen,
	}
}

// InputEvents returns the block's input event list.
func (v *View) InputEvents() InputEvents {
	v.checkLive()
	return InputEvents{raw: v.raw.InEvents}
}

// OutputEvents returns the block's output event sink.
func (v *View) OutputEvents() *OutputEvents {
	v.checkLive()
	return &v.out
}

// Frames returns the frame walker for this call. The walker is forward only;
// calling Frames again in the same call returns the same walker at its
// current position.
func (v *View) Frames() *FrameWalker {
	v.checkLive()
	if !v.walking {
		v.walking = true
		v.walker.reset(v)
	}
	return &v.walker
}

// Transport returns the block's transport snapshot when the host supplied one.
func (v *View) Transport() (Transport, bool) {
	v.checkLive()
	if v.raw.Transport == nil {
		return Transport{}, false
	}
	return Transport{raw: v.raw.Transport}, true
}

// WorkBuffer returns a slice of the pre-allocated work buffer
// sized to the current block.
func (v *View) WorkBuffer() []float32 {
	return v.workBuffer[:v.scratchLen()]
}

// TempBuffer returns a slice of the pre-allocated temp buffer
// sized to the current block.
func (v *View) TempBuffer() []float32 {
	return v.tempBuffer[:v.scratchLen()]
}

func (v *View) scratchLen() int {
	n := v.NumSamples()
	if n > len(v.workBuffer) {
		n = len(v.workBuffer)
	}
	return n
}

// Transport is the host's transport state for one block.
type Transport struct {
	raw *clap.EventTransport
}

// Raw returns the underlying transport event.
func (t Transport) Raw() *clap.EventTransport { return t.raw }

// Flags returns the transport flag bits.
func (t Transport) Flags() uint32 { return t.raw.Flags }

// IsPlaying reports whether the host transport is running.
func (t Transport) IsPlaying() bool { return t.raw.Flags&clap.TransportIsPlaying != 0 }

// IsRecording reports whether the host is recording.
func (t Transport) IsRecording() bool { return t.raw.Flags&clap.TransportIsRecording != 0 }

// Tempo returns the tempo in BPM if the host supplied one.
func (t Transport) Tempo() (float64, bool) {
	if t.raw.Flags&clap.TransportHasTempo == 0 {
		return 0, false
	}
	return t.raw.Tempo, true
}

// SongPositionBeats returns the song position in beats.
func (t Transport) SongPositionBeats() (float64, bool) {
	if t.raw.Flags&clap.TransportHasBeatsTimeline == 0 {
		return 0, false
	}
	return float64(t.raw.SongPosBeats) / clap.FixedPointFactor, true
}

// SongPositionSeconds returns the song position in seconds.
func (t Transport) SongPositionSeconds() (float64, bool) {
	if t.raw.Flags&clap.TransportHasSecondsTimeline == 0 {
		return 0, false
	}
	return float64(t.raw.SongPosSeconds) / clap.FixedPointFactor, true
}

// TimeSignature returns numerator and denominator.
func (t Transport) TimeSignature() (num, denom uint16, ok bool) {
	if t.raw.Flags&clap.TransportHasTimeSignature == 0 {
		return 0, 0, false
	}
	return t.raw.TSigNum, t.raw.TSigDenom, true
}
