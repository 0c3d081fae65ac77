package claptest

import (
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// InStream serves Data to a plugin in chunks of at most Chunk bytes.
type InStream struct {
	Raw   clap.IStream
	Data  []byte
	Chunk int

	// FailAt makes Read return -1 once this many bytes were served; <0 never.
	FailAt int
	Calls  int

	pos int
}

// NewInStream returns a stream over data.
func NewInStream(data []byte, chunk int) *InStream {
	s := &InStream{Data: data, Chunk: chunk, FailAt: -1}
	s.Raw.Read = func(_ *clap.IStream, buf unsafe.Pointer, size uint64) int64 {
		s.Calls++
		if s.FailAt >= 0 && s.pos >= s.FailAt {
			return -1
		}
		n := len(s.Data) - s.pos
		if uint64(n) > size {
			n = int(size)
		}
		if s.Chunk > 0 && n > s.Chunk {
			n = s.Chunk
		}
		if n == 0 {
			return 0
		}
		copy(unsafe.Slice((*byte)(buf), n), s.Data[s.pos:s.pos+n])
		s.pos += n
		return int64(n)
	}
	return s
}

// OutStream accepts at most Chunk bytes per Write call.
type OutStream struct {
	Raw   clap.OStream
	Data  []byte
	Chunk int

	// Limit caps the total bytes accepted, after which Write returns 0; <0 never.
	Limit int
	// Fail makes every Write return -1.
	Fail  bool
	Calls int
}

// NewOutStream returns an empty sink.
func NewOutStream(chunk int) *OutStream {
	s := &OutStream{Chunk: chunk, Limit: -1}
	s.Raw.Write = func(_ *clap.OStream, buf unsafe.Pointer, size uint64) int64 {
		s.Calls++
		if s.Fail {
			return -1
		}
		n := int(size)
		if s.Chunk > 0 && n > s.Chunk {
			n = s.Chunk
		}
		if s.Limit >= 0 && len(s.Data)+n > s.Limit {
			n = s.Limit - len(s.Data)
		}
		if n <= 0 {
			return 0
		}
		s.Data = append(s.Data, unsafe.Slice((*byte)(buf), n)...)
		return int64(n)
	}
	return s
}
