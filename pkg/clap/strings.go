package clap

import (
	"unicode/utf8"
	"unsafe"
)

// MaxStringScan bounds every scan for a NUL terminator.
const MaxStringScan = 1 << 16

// StrLen returns the length of the NUL-terminated string at p, scanning at
// most limit bytes. ok is false when no terminator was found within limit.
func StrLen(p *byte, limit int) (n int, ok bool) {
	if p == nil {
		return 0, false
	}
	base := unsafe.Pointer(p)
	for n = 0; n < limit; n++ {
		if *(*byte)(unsafe.Add(base, n)) == 0 {
			return n, true
		}
	}
	return limit, false
}

// BytesFrom views the NUL-terminated string at p without copying. It returns
// nil when p is nil or unterminated within limit bytes.
func BytesFrom(p *byte, limit int) []byte {
	n, ok := StrLen(p, limit)
	if !ok {
		return nil
	}
	return unsafe.Slice(p, n)
}

// Bytes is BytesFrom bounded by MaxStringScan.
func Bytes(p *byte) []byte {
	return BytesFrom(p, MaxStringScan)
}

// GoString copies the NUL-terminated string at p into a Go string.
func GoString(p *byte) string {
	return string(Bytes(p))
}

// Equal reports whether the NUL-terminated string at p is exactly s. It reads
// at most len(s)+1 bytes and never allocates.
func Equal(p *byte, s string) bool {
	if p == nil {
		return false
	}
	base := unsafe.Pointer(p)
	for i := 0; i < len(s); i++ {
		b := *(*byte)(unsafe.Add(base, i))
		if b != s[i] {
			return false
		}
	}
	return *(*byte)(unsafe.Add(base, len(s))) == 0
}

// CString returns a pointer to a NUL-terminated copy of s. The memory is
// owned by the Go heap; callers keep the result reachable for as long as the
// host may read it.
func CString(s string) *byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// CStrings builds a NULL-terminated array of NUL-terminated strings.
func CStrings(ss []string) **byte {
	arr := make([]*byte, len(ss)+1)
	for i, s := range ss {
		arr[i] = CString(s)
	}
	return &arr[0]
}

// GoStrings reads a NULL-terminated array of strings.
func GoStrings(pp **byte) []string {
	if pp == nil {
		return nil
	}
	var out []string
	base := unsafe.Pointer(pp)
	for i := 0; ; i++ {
		p := *(**byte)(unsafe.Add(base, i*int(unsafe.Sizeof(pp))))
		if p == nil {
			return out
		}
		out = append(out, GoString(p))
	}
}

// CopyString writes s into the fixed buffer dst, truncating on a rune
// boundary and always leaving a terminator.
func CopyString(dst []byte, s string) {
	if len(dst) == 0 {
		return
	}
	n := len(s)
	if n > len(dst)-1 {
		n = len(dst) - 1
		for n > 0 && !utf8.RuneStart(s[n]) {
			n--
		}
	}
	copy(dst, s[:n])
	dst[n] = 0
}

// FixedString reads a NUL-terminated string out of a fixed buffer.
func FixedString(src []byte) string {
	for i, b := range src {
		if b == 0 {
			return string(src[:i])
		}
	}
	return string(src)
}
