package clap

import "unsafe"

// IStream is a host-owned input byte stream. Read returns the number of
// bytes read, 0 at end of stream, or a negative value on error. It may read
// fewer bytes than requested.
type IStream struct {
	Ctx  unsafe.Pointer
	Read func(s *IStream, buffer unsafe.Pointer, size uint64) int64
}

// OStream is a host-owned output byte stream. Write returns the number of
// bytes written or a negative value on error. It may write fewer bytes than
// requested.
type OStream struct {
	Ctx   unsafe.Pointer
	Write func(s *OStream, buffer unsafe.Pointer, size uint64) int64
}
