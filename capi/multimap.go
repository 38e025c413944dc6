package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"github.com/wippyai/cef-bridge/errors"
)

// Pair is one key/value entry of a Multimap.
type Pair struct {
	Key   string
	Value string
}

// Multimap is an ordered multi-valued string map, the host form of
// cef_string_multimap_t. Entries keep the order in which they were added.
type Multimap []Pair

// Add appends an entry.
func (m *Multimap) Add(key, value string) {
	*m = append(*m, Pair{Key: key, Value: value})
}

// Get returns the first value for key.
func (m Multimap) Get(key string) (string, bool) {
	for _, p := range m {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Values returns every value for key in order.
func (m Multimap) Values(key string) []string {
	var out []string
	for _, p := range m {
		if p.Key == key {
			out = append(out, p.Value)
		}
	}
	return out
}

// Keys returns the distinct keys in first-seen order.
func (m Multimap) Keys() []string {
	seen := make(map[string]struct{}, len(m))
	var out []string
	for _, p := range m {
		if _, ok := seen[p.Key]; ok {
			continue
		}
		seen[p.Key] = struct{}{}
		out = append(out, p.Key)
	}
	return out
}

// StringMultimapHandle is the foreign multimap type.
type StringMultimapHandle = C.cef_string_multimap_t

// StringMultimap owns a foreign multimap. Free must be called when done.
type StringMultimap struct {
	m C.cef_string_multimap_t
}

// NewStringMultimap allocates a foreign multimap holding copies of m.
func NewStringMultimap(m Multimap) *StringMultimap {
	h := C.cef_string_multimap_alloc()
	if h == nil {
		panic(errors.AllocationFailed(errors.PhaseMarshal, 0))
	}
	out := &StringMultimap{m: h}
	for _, p := range m {
		out.Append(p.Key, p.Value)
	}
	return out
}

// Append copies one entry into the map.
func (s *StringMultimap) Append(key, value string) {
	withString(key, func(k *C.cef_string_t) {
		withString(value, func(v *C.cef_string_t) {
			if C.cef_string_multimap_append(s.m, k, v) == 0 {
				panic(errors.AllocationFailed(errors.PhaseMarshal, 0))
			}
		})
	})
}

// Len returns the number of entries.
func (s *StringMultimap) Len() int {
	if s == nil || s.m == nil {
		return 0
	}
	return int(C.cef_string_multimap_size(s.m))
}

// FindCount returns the number of values stored under key.
func (s *StringMultimap) FindCount(key string) int {
	if s == nil || s.m == nil {
		return 0
	}
	var n C.size_t
	withString(key, func(k *C.cef_string_t) {
		n = C.cef_string_multimap_find_count(s.m, k)
	})
	return int(n)
}

// Multimap copies every entry into a host Multimap.
func (s *StringMultimap) Multimap() Multimap {
	if s == nil {
		return nil
	}
	return multimapValues(s.m)
}

// Raw returns the map for passing to foreign calls. The StringMultimap keeps ownership.
func (s *StringMultimap) Raw() StringMultimapHandle {
	if s == nil {
		return nil
	}
	return s.m
}

// Free releases the map. Calling it again is a no-op.
func (s *StringMultimap) Free() {
	if s == nil || s.m == nil {
		return
	}
	C.cef_string_multimap_free(s.m)
	s.m = nil
}

// multimapValues copies a borrowed multimap.
func multimapValues(m C.cef_string_multimap_t) Multimap {
	if m == nil {
		return nil
	}
	n := int(C.cef_string_multimap_size(m))
	out := make(Multimap, 0, n)
	for i := 0; i < n; i++ {
		var k, v C.cef_string_t
		C.cef_string_multimap_key(m, C.size_t(i), &k)
		C.cef_string_multimap_value(m, C.size_t(i), &v)
		out = append(out, Pair{Key: goString(&k), Value: goString(&v)})
		C.cef_string_utf16_clear(&k)
		C.cef_string_utf16_clear(&v)
	}
	return out
}
