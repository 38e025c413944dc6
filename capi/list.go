package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"github.com/wippyai/cef-bridge/errors"
)

// StringListHandle is the foreign string list type.
type StringListHandle = C.cef_string_list_t

// StringList owns a foreign string list. Free must be called when done.
type StringList struct {
	l C.cef_string_list_t
}

// NewStringList allocates a foreign list holding copies of values.
func NewStringList(values ...string) *StringList {
	l := C.cef_string_list_alloc()
	if l == nil {
		panic(errors.AllocationFailed(errors.PhaseMarshal, 0))
	}
	list := &StringList{l: l}
	for _, v := range values {
		list.Append(v)
	}
	return list
}

// Append copies v to the end of the list.
func (l *StringList) Append(v string) {
	withString(v, func(s *C.cef_string_t) {
		C.cef_string_list_append(l.l, s)
	})
}

// Len returns the number of entries.
func (l *StringList) Len() int {
	if l == nil || l.l == nil {
		return 0
	}
	return int(C.cef_string_list_size(l.l))
}

// Value returns the entry at index i.
func (l *StringList) Value(i int) (string, error) {
	n := l.Len()
	if i < 0 || i >= n {
		return "", errors.OutOfBounds(errors.PhaseMarshal, "cef_string_list_t", i, n)
	}
	return stringListValue(l.l, i), nil
}

// Values copies every entry into a Go slice.
func (l *StringList) Values() []string {
	if l == nil {
		return nil
	}
	return stringListValues(l.l)
}

// Raw returns the list for passing to foreign calls. The StringList keeps ownership.
func (l *StringList) Raw() StringListHandle {
	if l == nil {
		return nil
	}
	return l.l
}

// Free releases the list and every string in it. Calling it again is a no-op.
func (l *StringList) Free() {
	if l == nil || l.l == nil {
		return
	}
	C.cef_string_list_free(l.l)
	l.l = nil
}

func stringListValue(l C.cef_string_list_t, i int) string {
	var v C.cef_string_t
	if C.cef_string_list_value(l, C.size_t(i), &v) == 0 {
		return ""
	}
	s := goString(&v)
	C.cef_string_utf16_clear(&v)
	return s
}

// stringListValues copies a borrowed list.
func stringListValues(l C.cef_string_list_t) []string {
	if l == nil {
		return nil
	}
	n := int(C.cef_string_list_size(l))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, stringListValue(l, i))
	}
	return out
}
