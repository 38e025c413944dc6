package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"

	"github.com/wippyai/cef-bridge/errors"
)

// Foreign strings are UTF-16 in host byte order.
var utf16Encoding = unicode.UTF16(nativeEndian(), unicode.IgnoreBOM)

func nativeEndian() unicode.Endianness {
	var one uint16 = 1
	if *(*byte)(unsafe.Pointer(&one)) == 1 {
		return unicode.LittleEndian
	}
	return unicode.BigEndian
}

// String owns a foreign UTF-16 string. When the string carries a destructor
// its buffer belongs to the foreign allocator and Free must be called once
// the String is no longer needed. A String dropped without Free is cleared by
// the garbage collector while leak cleanup is enabled (see SetLeakCleanup).
//
// A String is not safe for concurrent use.
type String struct {
	s       *C.cef_string_t
	cleanup runtime.Cleanup
	tracked bool
}

var leakedStrings atomic.Int64

func freeLeakedString(p *C.cef_string_t) {
	leakedStrings.Add(1)
	Logger().Warn("freeing leaked foreign string", zap.Int("length", int(p.length)))
	C.cef_string_utf16_clear(p)
	C.free(unsafe.Pointer(p))
}

// newString allocates an empty struct outside the Go heap so the collector
// can clear it after the String is gone.
func newString() *String {
	p := (*C.cef_string_t)(C.calloc(1, C.size_t(unsafe.Sizeof(C.cef_string_t{}))))
	if p == nil {
		panic(errors.AllocationFailed(errors.PhaseMarshal, unsafe.Sizeof(C.cef_string_t{})))
	}
	str := &String{s: p}
	if leakCleanup.Load() {
		str.cleanup = runtime.AddCleanup(str, freeLeakedString, p)
		str.tracked = true
	}
	return str
}

// NewString copies s into a foreign-owned UTF-16 buffer. Invalid UTF-8 is
// replaced with U+FFFD. Allocation failure panics.
func NewString(s string) *String {
	str := newString()
	setString(str.s, s)
	return str
}

// ConsumeUserfree copies a userfree string into a new String and frees the
// userfree allocation. The caller must not use u afterwards, and must not
// pass the same u twice; neither is checked.
func ConsumeUserfree(u Userfree) (*String, error) {
	if u == nil {
		return nil, errors.NilPointer(errors.PhaseMarshal, "cef_string_userfree_t")
	}
	defer C.cef_string_userfree_utf16_free(u)
	str := newString()
	if C.cef_string_utf16_set(u.str, u.length, str.s, 1) == 0 {
		str.Free()
		return nil, errors.AllocationFailed(errors.PhaseMarshal, uintptr(u.length)*2)
	}
	return str, nil
}

// String decodes the foreign buffer. Unpaired surrogates become U+FFFD.
func (s *String) String() string {
	if s == nil {
		return ""
	}
	defer runtime.KeepAlive(s)
	return goString(s.s)
}

// Len returns the length in UTF-16 code units.
func (s *String) Len() int {
	if s == nil || s.s == nil {
		return 0
	}
	defer runtime.KeepAlive(s)
	return int(s.s.length)
}

// Set replaces the contents, releasing the previous buffer first.
// Setting a freed String panics.
func (s *String) Set(v string) {
	if s.s == nil {
		panic(errors.Released(errors.PhaseMarshal, "cef_string_t"))
	}
	defer runtime.KeepAlive(s)
	setString(s.s, v)
}

// Owned reports whether the buffer carries a destructor.
func (s *String) Owned() bool {
	if s == nil || s.s == nil {
		return false
	}
	defer runtime.KeepAlive(s)
	return s.s.dtor != nil
}

// Raw returns the struct for passing to foreign calls. The String keeps
// ownership and must stay reachable while the pointer is in use.
// It returns nil once the String is freed.
func (s *String) Raw() *StringStruct {
	return s.s
}

// Free runs the destructor, if any, and releases the struct. Calling it again is a no-op.
func (s *String) Free() {
	if s == nil || s.s == nil {
		return
	}
	if s.tracked {
		s.cleanup.Stop()
		s.tracked = false
	}
	C.cef_string_utf16_clear(s.s)
	C.free(unsafe.Pointer(s.s))
	s.s = nil
}

func encodeUTF16(v string) []byte {
	if v == "" {
		return nil
	}
	out, err := utf16Encoding.NewEncoder().String(v)
	if err != nil {
		Logger().Warn("utf-16 encode", zap.Error(err))
	}
	return []byte(out)
}

func decodeUTF16(units unsafe.Pointer, n int) string {
	if units == nil || n == 0 {
		return ""
	}
	raw := unsafe.Slice((*byte)(units), n*2)
	out, err := utf16Encoding.NewDecoder().Bytes(raw)
	if err != nil {
		Logger().Warn("utf-16 decode", zap.Error(err))
	}
	return string(out)
}

// goString copies a borrowed foreign string.
func goString(p *C.cef_string_t) string {
	if p == nil {
		return ""
	}
	return decodeUTF16(unsafe.Pointer(p.str), int(p.length))
}

// setString assigns v to a foreign string, freeing its previous buffer.
func setString(dst *C.cef_string_t, v string) {
	units := encodeUTF16(v)
	var src *C.cef_char16_t
	if len(units) > 0 {
		src = (*C.cef_char16_t)(unsafe.Pointer(&units[0]))
	}
	if C.cef_string_utf16_set(src, C.size_t(len(units)/2), dst, 1) == 0 {
		panic(errors.AllocationFailed(errors.PhaseMarshal, uintptr(len(units))))
	}
}

// withString runs fn with a temporary foreign copy of v.
func withString(v string, fn func(*C.cef_string_t)) {
	var tmp C.cef_string_t
	setString(&tmp, v)
	defer C.cef_string_utf16_clear(&tmp)
	fn(&tmp)
}
