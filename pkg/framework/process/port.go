package process

import (
	"fmt"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// Port is one audio port of the current block. Channel slices alias host
// memory and have exactly FrameCount samples.
type Port struct {
	buf    *clap.AudioBuffer
	frames uint32
	input  bool
	view   *View
	gen    uint64
}

func (p Port) check() {
	if debugChecks {
		p.view.checkGen(p.gen)
	}
}

func (p Port) side() string {
	if p.input {
		return "input"
	}
	return "output"
}

// IsInput reports whether this is an input port.
func (p Port) IsInput() bool { return p.input }

// ChannelCount returns the number of channels.
func (p Port) ChannelCount() uint32 {
	p.check()
	return p.buf.ChannelCount
}

// FrameCount returns the length of every channel slice.
func (p Port) FrameCount() uint32 { return p.frames }

// Latency is the host-reported latency of this port.
func (p Port) Latency() uint32 {
	p.check()
	return p.buf.Latency
}

// ConstantMask has bit n set when channel n holds a constant value.
func (p Port) ConstantMask() uint64 {
	p.check()
	return p.buf.ConstantMask
}

// IsConstant reports whether channel ch is flagged constant.
func (p Port) IsConstant(ch uint32) bool {
	return ch < 64 && p.ConstantMask()&(1<<ch) != 0
}

// Has32 reports whether the host supplied 32-bit buffers.
func (p Port) Has32() bool {
	p.check()
	return p.buf.Data32 != nil
}

// Has64 reports whether the host supplied 64-bit buffers.
func (p Port) Has64() bool {
	p.check()
	return p.buf.Data64 != nil
}

// Channel32 returns channel ch as 32-bit samples. It panics when ch is out
// of range or the host supplied no 32-bit buffers.
func (p Port) Channel32(ch uint32) []float32 {
	s, ok := p.TryChannel32(ch)
	if !ok {
		panic(p.channelPanic(ch, 32))
	}
	return s
}

// TryChannel32 returns channel ch, or false when it does not exist.
func (p Port) TryChannel32(ch uint32) ([]float32, bool) {
	p.check()
	if ch >= p.buf.ChannelCount || p.buf.Data32 == nil {
		return nil, false
	}
	return p.UncheckedChannel32(ch), true
}

// UncheckedChannel32 returns channel ch without range checks. The caller
// guarantees ch < ChannelCount and Has32; only debug builds verify it.
func (p Port) UncheckedChannel32(ch uint32) []float32 {
	if debugChecks {
		p.check()
		if ch >= p.buf.ChannelCount || p.buf.Data32 == nil {
			panic(p.channelPanic(ch, 32))
		}
	}
	ptr := unsafe.Slice(p.buf.Data32, p.buf.ChannelCount)[ch]
	if debugChecks && ptr == nil && p.frames > 0 {
		panic("process: host passed a nil channel buffer")
	}
	return unsafe.Slice(ptr, p.frames)
}

// Channel64 returns channel ch as 64-bit samples. It panics when ch is out
// of range or the host supplied no 64-bit buffers.
func (p Port) Channel64(ch uint32) []float64 {
	s, ok := p.TryChannel64(ch)
	if !ok {
		panic(p.channelPanic(ch, 64))
	}
	return s
}

// TryChannel64 returns channel ch, or false when it does not exist.
func (p Port) TryChannel64(ch uint32) ([]float64, bool) {
	p.check()
	if ch >= p.buf.ChannelCount || p.buf.Data64 == nil {
		return nil, false
	}
	return p.UncheckedChannel64(ch), true
}

// UncheckedChannel64 is the 64-bit counterpart of UncheckedChannel32.
func (p Port) UncheckedChannel64(ch uint32) []float64 {
	if debugChecks {
		p.check()
		if ch >= p.buf.ChannelCount || p.buf.Data64 == nil {
			panic(p.channelPanic(ch, 64))
		}
	}
	ptr := unsafe.Slice(p.buf.Data64, p.buf.ChannelCount)[ch]
	if debugChecks && ptr == nil && p.frames > 0 {
		panic("process: host passed a nil channel buffer")
	}
	return unsafe.Slice(ptr, p.frames)
}

func (p Port) channelPanic(ch uint32, bits int) string {
	if ch < p.buf.ChannelCount {
		return fmt.Sprintf("process: audio %s port has no %d-bit buffers", p.side(), bits)
	}
	return fmt.Sprintf("process: audio %s channel %d out of range (%d channels)", p.side(), ch, p.buf.ChannelCount)
}
