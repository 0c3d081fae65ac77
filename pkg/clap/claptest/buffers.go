package claptest

import "github.com/justyntemme/clapgo/pkg/clap"

// Width selects the sample width of a Buffers set.
type Width int

const (
	Width32 Width = 32
	Width64 Width = 64
)

// Buffers owns Go slices for every channel of every port and the clap
// AudioBuffer tables pointing at them.
type Buffers struct {
	Frames uint32

	ins  []clap.AudioBuffer
	outs []clap.AudioBuffer

	in32, out32 [][][]float32
	in64, out64 [][][]float64

	// keep the pointer arrays reachable
	ptr32 [][]*float32
	ptr64 [][]*float64
}

// NewBuffers allocates ports with the given channel counts.
func NewBuffers(w Width, frames uint32, inChannels, outChannels []uint32) *Buffers {
	b := &Buffers{Frames: frames}
	b.ins, b.in32, b.in64 = b.ports(w, inChannels)
	b.outs, b.out32, b.out64 = b.ports(w, outChannels)
	return b
}

// NewStereo is a 32-bit single stereo input and output.
func NewStereo(frames uint32) *Buffers {
	return NewBuffers(Width32, frames, []uint32{2}, []uint32{2})
}

func (b *Buffers) ports(w Width, channels []uint32) ([]clap.AudioBuffer, [][][]float32, [][][]float64) {
	bufs := make([]clap.AudioBuffer, len(channels))
	d32 := make([][][]float32, len(channels))
	d64 := make([][][]float64, len(channels))
	for i, n := range channels {
		bufs[i].ChannelCount = n
		if n == 0 {
			continue
		}
		switch w {
		case Width64:
			ptrs := make([]*float64, n)
			d64[i] = make([][]float64, n)
			for ch := range ptrs {
				d64[i][ch] = make([]float64, b.Frames+1)
				ptrs[ch] = &d64[i][ch][0]
				d64[i][ch] = d64[i][ch][:b.Frames]
			}
			b.ptr64 = append(b.ptr64, ptrs)
			bufs[i].Data64 = &ptrs[0]
		default:
			ptrs := make([]*float32, n)
			d32[i] = make([][]float32, n)
			for ch := range ptrs {
				d32[i][ch] = make([]float32, b.Frames+1)
				ptrs[ch] = &d32[i][ch][0]
				d32[i][ch] = d32[i][ch][:b.Frames]
			}
			b.ptr32 = append(b.ptr32, ptrs)
			bufs[i].Data32 = &ptrs[0]
		}
	}
	return bufs, d32, d64
}

// Input32 returns the backing slice of an input channel.
func (b *Buffers) Input32(port, ch int) []float32 { return b.in32[port][ch] }

// Output32 returns the backing slice of an output channel.
func (b *Buffers) Output32(port, ch int) []float32 { return b.out32[port][ch] }

// Input64 returns the backing slice of a 64-bit input channel.
func (b *Buffers) Input64(port, ch int) []float64 { return b.in64[port][ch] }

// Output64 returns the backing slice of a 64-bit output channel.
func (b *Buffers) Output64(port, ch int) []float64 { return b.out64[port][ch] }

// InputPort exposes the raw table of an input port.
func (b *Buffers) InputPort(port int) *clap.AudioBuffer { return &b.ins[port] }

// OutputPort exposes the raw table of an output port.
func (b *Buffers) OutputPort(port int) *clap.AudioBuffer { return &b.outs[port] }

// Fill writes fn(port, ch, frame) into every 32-bit input sample.
func (b *Buffers) Fill(fn func(port, ch, frame int) float32) {
	for p, chans := range b.in32 {
		for ch, data := range chans {
			for i := range data {
				data[i] = fn(p, ch, i)
			}
		}
	}
}

// Process builds a process block over b and the given event lists, either
// of which may be nil.
func (b *Buffers) Process(in, out *EventList) *clap.Process {
	p := &clap.Process{
		SteadyTime:        -1,
		FramesCount:       b.Frames,
		AudioInputsCount:  uint32(len(b.ins)),
		AudioOutputsCount: uint32(len(b.outs)),
	}
	if len(b.ins) > 0 {
		p.AudioInputs = &b.ins[0]
	}
	if len(b.outs) > 0 {
		p.AudioOutputs = &b.outs[0]
	}
	if in != nil {
		p.InEvents = in.Input()
	}
	if out != nil {
		p.OutEvents = out.Output()
	}
	return p
}
