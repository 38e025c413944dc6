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

	"github.com/wippyai/cef-bridge/errors"
)

var leakCleanup atomic.Bool

func init() {
	leakCleanup.Store(true)
}

// SetLeakCleanup controls whether handles created from now on release their
// reference when they become unreachable without Release or IntoRaw.
func SetLeakCleanup(enabled bool) {
	leakCleanup.Store(enabled)
}

// Ref is an owning handle over one reference to a foreign object.
//
// Each Ref represents exactly one count on the foreign side. Clone adds a
// count and returns a new Ref; Release gives this Ref's count back. A nil
// *Ref stands for "no object" wherever an optional object is expected.
//
// Refs are safe for concurrent use. The foreign object's add_ref and release
// entry points are required to be callable from any thread.
//
// Raw returns a borrowed pointer that stays valid only while the Ref is
// reachable; use runtime.KeepAlive when a Ref's last use precedes a foreign
// call on its raw pointer.
type Ref[T Foreign] struct {
	ptr     atomic.Pointer[T]
	cleanup runtime.Cleanup
	tracked bool
}

type leakedRef struct {
	ptr  unsafe.Pointer
	name string
}

func releaseLeaked(l leakedRef) {
	Logger().Warn("releasing leaked foreign reference",
		zap.String("interface", l.name),
		zap.Uintptr("ptr", uintptr(l.ptr)))
	C.capi_release((*C.cef_base_ref_counted_t)(l.ptr))
}

func newRef[T Foreign](p *T) *Ref[T] {
	r := &Ref[T]{}
	r.ptr.Store(p)
	if leakCleanup.Load() {
		r.cleanup = runtime.AddCleanup(r, releaseLeaked, leakedRef{
			ptr:  unsafe.Pointer(p),
			name: Name[T](),
		})
		r.tracked = true
	}
	return r
}

// WrapNew adopts a reference the caller already owns, typically the +1
// returned by a foreign factory. It makes no foreign calls. A nil pointer is
// a caller bug and panics.
func WrapNew[T Foreign](p *T) *Ref[T] {
	if p == nil {
		panic(errors.NilPointer(errors.PhaseLifecycle, Name[T]()))
	}
	return newRef(p)
}

// WrapExisting is WrapNew for pointers that may legitimately be NULL.
func WrapExisting[T Foreign](p *T) *Ref[T] {
	if p == nil {
		return nil
	}
	return newRef(p)
}

// WrapAndAddRef takes a new reference to a borrowed pointer, for example a
// parameter that must outlive the call it arrived in.
func WrapAndAddRef[T Foreign](p *T) *Ref[T] {
	if p == nil {
		return nil
	}
	C.capi_add_ref(headerOf(p))
	return newRef(p)
}

func (r *Ref[T]) load() *T {
	p := r.ptr.Load()
	if p == nil {
		panic(errors.Released(errors.PhaseLifecycle, Name[T]()))
	}
	return p
}

func (r *Ref[T]) stopCleanup() {
	if r.tracked {
		r.cleanup.Stop()
	}
}

// Clone adds a foreign reference and returns a new handle to the same object.
func (r *Ref[T]) Clone() *Ref[T] {
	defer runtime.KeepAlive(r)
	p := r.load()
	C.capi_add_ref(headerOf(p))
	return newRef(p)
}

// Release gives back this handle's reference. It reports whether the call
// observed the last reference, in which case the object has been freed.
// Releasing a nil or already released handle is a no-op.
func (r *Ref[T]) Release() bool {
	if r == nil {
		return false
	}
	p := r.ptr.Swap(nil)
	if p == nil {
		return false
	}
	r.stopCleanup()
	return C.capi_release(headerOf(p)) != 0
}

// Raw returns the object pointer without changing the count.
// It returns nil for a nil or released handle.
func (r *Ref[T]) Raw() *T {
	if r == nil {
		return nil
	}
	return r.ptr.Load()
}

// IntoRaw transfers this handle's reference to the caller, usually the
// foreign runtime, and leaves the handle empty.
func (r *Ref[T]) IntoRaw() *T {
	if r == nil {
		return nil
	}
	p := r.ptr.Swap(nil)
	if p == nil {
		panic(errors.Released(errors.PhaseLifecycle, Name[T]()))
	}
	r.stopCleanup()
	return p
}

// Base returns the header view of the object.
// The header is only valid while r is reachable.
func (r *Ref[T]) Base() *Base {
	defer runtime.KeepAlive(r)
	return headerOf(r.load())
}

// Size returns the struct size recorded in the header.
func (r *Ref[T]) Size() uintptr {
	defer runtime.KeepAlive(r)
	return uintptr(r.Base().size)
}

// HasOneRef reports whether the foreign count is exactly one.
func (r *Ref[T]) HasOneRef() bool {
	defer runtime.KeepAlive(r)
	return C.capi_has_one_ref(headerOf(r.load())) != 0
}

// HasAtLeastOneRef reports whether the foreign count is at least one.
func (r *Ref[T]) HasAtLeastOneRef() bool {
	defer runtime.KeepAlive(r)
	return C.capi_has_at_least_one_ref(headerOf(r.load())) != 0
}

// Validate reports every lifecycle entry point the object left unset.
func (r *Ref[T]) Validate() error {
	defer runtime.KeepAlive(r)
	p := r.ptr.Load()
	if p == nil {
		return errors.Released(errors.PhaseLifecycle, Name[T]())
	}
	return validateBase(headerOf(p))
}

func validateBase(base *C.cef_base_ref_counted_t) error {
	missing := C.capi_missing_base_entries(base)
	if missing == 0 {
		return nil
	}
	var entries []string
	for _, e := range []struct {
		bit  C.int
		name string
	}{
		{C.int(C.CAPI_MISSING_ADD_REF), "add_ref"},
		{C.int(C.CAPI_MISSING_RELEASE), "release"},
		{C.int(C.CAPI_MISSING_HAS_ONE_REF), "has_one_ref"},
		{C.int(C.CAPI_MISSING_HAS_AT_LEAST_ONE_REF), "has_at_least_one_ref"},
	} {
		if missing&e.bit != 0 {
			entries = append(entries, "cef_base_ref_counted_t#"+e.name)
		}
	}
	return errors.NewMissingEntryPointsError(entries)
}
