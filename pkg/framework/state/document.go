// Package state persists plugin state through the host's state streams.
package state

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/justyntemme/clapgo/pkg/framework/param"
)

// Magic opens every saved document.
const Magic = "CLAPGO"

// MaxCustomSize bounds the custom section accepted by Load.
const MaxCustomSize = 64 << 20

// Document saves parameter values plus an optional custom section.
//
// Layout, little endian: magic, version u32, parameter count u32,
// (id u32, value f64) per parameter, custom length u32, custom bytes.
type Document struct {
	version  uint32
	registry *param.Registry

	saveCustom func(w io.Writer) error
	loadCustom func(r io.Reader) error
}

// NewDocument creates a version 1 document over registry.
func NewDocument(registry *param.Registry) *Document {
	return &Document{version: 1, registry: registry}
}

// SetVersion sets the version written by Save and the newest one Load
// accepts.
func (d *Document) SetVersion(v uint32) { d.version = v }

// Version returns the document version.
func (d *Document) Version() uint32 { return d.version }

// SetCustom installs hooks for state that is not a parameter. load reads
// exactly the bytes save produced.
func (d *Document) SetCustom(save func(w io.Writer) error, load func(r io.Reader) error) {
	d.saveCustom = save
	d.loadCustom = load
}

// Save writes the document to w.
func (d *Document) Save(w io.Writer) error {
	var custom []byte
	if d.saveCustom != nil {
		var buf bytes.Buffer
		if err := d.saveCustom(&buf); err != nil {
			return NewCustomError("save", err)
		}
		custom = buf.Bytes()
	}

	params := d.registry.All()
	out := make([]byte, 0, len(Magic)+12+len(params)*12+len(custom))
	out = append(out, Magic...)
	out = binary.LittleEndian.AppendUint32(out, d.version)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(params)))
	for _, p := range params {
		out = binary.LittleEndian.AppendUint32(out, p.ID)
		out = binary.LittleEndian.AppendUint64(out, math.Float64bits(p.Value()))
	}
	out = binary.LittleEndian.AppendUint32(out, uint32(len(custom)))
	out = append(out, custom...)

	if _, err := w.Write(out); err != nil {
		return NewWriteError(err)
	}
	return nil
}

// Load reads a document from r. Values for unknown parameter ids are
// ignored so older plugins can read newer parameter sets. Nothing is
// applied unless the whole document decodes.
func (d *Document) Load(r io.Reader) error {
	header := make([]byte, len(Magic)+8)
	if _, err := io.ReadFull(r, header); err != nil {
		return NewTruncatedError("header", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return NewBadMagicError(header[:len(Magic)])
	}
	version := binary.LittleEndian.Uint32(header[len(Magic):])
	if version > d.version {
		return NewVersionError(version, d.version)
	}
	count := binary.LittleEndian.Uint32(header[len(Magic)+4:])
	if count > d.registry.Count()+maxForeignParams {
		return NewCorruptError("parameter count", count)
	}

	type entry struct {
		id    uint32
		value float64
	}
	entries := make([]entry, count)
	var rec [12]byte
	for i := range entries {
		if _, err := io.ReadFull(r, rec[:]); err != nil {
			return NewTruncatedError("parameters", err)
		}
		entries[i] = entry{
			id:    binary.LittleEndian.Uint32(rec[:4]),
			value: math.Float64frombits(binary.LittleEndian.Uint64(rec[4:])),
		}
	}

	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return NewTruncatedError("custom length", err)
	}
	size := binary.LittleEndian.Uint32(lenBuf[:])
	if size > MaxCustomSize {
		return NewCorruptError("custom length", size)
	}
	custom := make([]byte, size)
	if _, err := io.ReadFull(r, custom); err != nil {
		return NewTruncatedError("custom", err)
	}

	for _, e := range entries {
		if p := d.registry.Get(e.id); p != nil {
			p.SetValue(e.value)
		}
	}
	if size > 0 && d.loadCustom != nil {
		if err := d.loadCustom(bytes.NewReader(custom)); err != nil {
			return NewCustomError("load", err)
		}
	}
	return nil
}

// maxForeignParams is how many more parameters than registered a document
// may carry before it is treated as corrupt.
const maxForeignParams = 4096
