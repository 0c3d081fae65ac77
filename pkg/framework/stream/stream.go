// Package stream adapts the host's state streams to io.Reader and io.Writer.
//
// Host streams may transfer fewer bytes than requested. Reader performs one
// host call per Read and leaves looping to io.ReadFull or ReadFull; Writer
// loops until every byte is accepted. Binary helpers are little-endian.
package stream

import (
	"encoding/binary"
	"io"
	"math"
	"unsafe"

	"github.com/justyntemme/clapgo/pkg/clap"
)

// MaxStringLen bounds length-prefixed strings and blobs read back from a host.
const MaxStringLen = 16 << 20

// Reader wraps a host input stream.
type Reader struct {
	raw     *clap.IStream
	scratch [8]byte
	n       int64
}

// NewReader returns nil when s is nil.
func NewReader(s *clap.IStream) *Reader {
	if s == nil || s.Read == nil {
		return nil
	}
	return &Reader{raw: s}
}

// Read reads up to len(p) bytes with a single host call. A zero return from
// the host is io.EOF.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := r.raw.Read(r.raw, unsafe.Pointer(&p[0]), uint64(len(p)))
	switch {
	case n == 0:
		return 0, io.EOF
	case n < 0:
		return 0, NewIOError("read", n)
	case n > int64(len(p)):
		return 0, NewHostOverrunError("read", len(p), n)
	}
	r.n += n
	return int(n), nil
}

// BytesRead returns the total number of bytes read so far.
func (r *Reader) BytesRead() int64 { return r.n }

// ReadFull fills p, turning an early end of stream into a truncation error.
func (r *Reader) ReadFull(p []byte) error {
	got, err := io.ReadFull(r, p)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return NewTruncatedError(len(p), got, err)
	}
	return err
}

// ReadUint32 reads a uint32 from the stream
func (r *Reader) ReadUint32() (uint32, error) {
	buf := r.scratch[:4]
	if err := r.ReadFull(buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadInt32 reads an int32 from the stream
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint64 reads a uint64 from the stream
func (r *Reader) ReadUint64() (uint64, error) {
	buf := r.scratch[:8]
	if err := r.ReadFull(buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// ReadFloat64 reads a float64 from the stream
func (r *Reader) ReadFloat64() (float64, error) {
	bits, err := r.ReadUint64()
	return math.Float64frombits(bits), err
}

// ReadBytes reads a length-prefixed byte slice.
func (r *Reader) ReadBytes() ([]byte, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return nil, err
	}
	if length > MaxStringLen {
		return nil, NewInvalidLengthError(int64(length), MaxStringLen)
	}
	buf := make([]byte, length)
	if err := r.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// ReadString reads a string from the stream with length prefix
func (r *Reader) ReadString() (string, error) {
	b, err := r.ReadBytes()
	return string(b), err
}

// ReadAll reads until the host reports end of stream.
func (r *Reader) ReadAll() ([]byte, error) {
	return io.ReadAll(r)
}

// Writer wraps a host output stream.
type Writer struct {
	raw     *clap.OStream
	scratch [8]byte
	n       int64
}

// NewWriter returns nil when s is nil.
func NewWriter(s *clap.OStream) *Writer {
	if s == nil || s.Write == nil {
		return nil
	}
	return &Writer{raw: s}
}

// Write hands p to the host, calling it repeatedly until every byte is
// accepted. A host that accepts nothing yields a short write error.
func (w *Writer) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		remaining := len(p) - written
		n := w.raw.Write(w.raw, unsafe.Pointer(&p[written]), uint64(remaining))
		switch {
		case n == 0:
			return written, NewShortWriteError(len(p), written)
		case n < 0:
			return written, NewIOError("write", n)
		case n > int64(remaining):
			return written, NewHostOverrunError("write", remaining, n)
		}
		written += int(n)
		w.n += n
	}
	return written, nil
}

// BytesWritten returns the total number of bytes accepted so far.
func (w *Writer) BytesWritten() int64 { return w.n }

// WriteUint32 writes a uint32 to the stream
func (w *Writer) WriteUint32(v uint32) error {
	buf := w.scratch[:4]
	binary.LittleEndian.PutUint32(buf, v)
	_, err := w.Write(buf)
	return err
}

// WriteInt32 writes an int32 to the stream
func (w *Writer) WriteInt32(v int32) error {
	return w.WriteUint32(uint32(v))
}

// WriteUint64 writes a uint64 to the stream
func (w *Writer) WriteUint64(v uint64) error {
	buf := w.scratch[:8]
	binary.LittleEndian.PutUint64(buf, v)
	_, err := w.Write(buf)
	return err
}

// WriteFloat64 writes a float64 to the stream
func (w *Writer) WriteFloat64(v float64) error {
	return w.WriteUint64(math.Float64bits(v))
}

// WriteBytes writes a length-prefixed byte slice.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) > MaxStringLen {
		return NewInvalidLengthError(int64(len(b)), MaxStringLen)
	}
	if err := w.WriteUint32(uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// WriteString writes a string to the stream with length prefix
func (w *Writer) WriteString(s string) error {
	return w.WriteBytes([]byte(s))
}
