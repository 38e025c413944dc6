package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/wippyai/cef-bridge/errors"
	"github.com/wippyai/cef-bridge/resource"
)

// A wrapped object is one calloc block:
//
//	[ ABI struct T | pad to 8 | trailer ]
//
// The header's size field is sizeof(T), so every thunk can find the trailer
// from the pointer the foreign runtime hands it.
type trailer struct {
	refs   atomic.Int64
	value  resource.Handle
	typeID uint32
}

const trailerAlign = 8

var (
	hostValues = resource.NewTable()
	liveBlocks atomic.Int64
)

func trailerOffset(size uintptr) uintptr {
	return (size + trailerAlign - 1) &^ (trailerAlign - 1)
}

func trailerOf(base *C.cef_base_ref_counted_t) *trailer {
	return (*trailer)(unsafe.Add(unsafe.Pointer(base), trailerOffset(uintptr(base.size))))
}

// wrap allocates a foreign object whose behavior is value. install fills in
// the interface's behavior thunks; the lifecycle thunks are installed here.
// The returned Ref holds the creator's reference.
func wrap[T Foreign](typeID uint32, value any, install func(*T)) *Ref[T] {
	size := unsafe.Sizeof(*new(T))
	off := trailerOffset(size)
	total := off + unsafe.Sizeof(trailer{})

	mem := C.calloc(1, C.size_t(total))
	if mem == nil {
		panic(errors.AllocationFailed(errors.PhaseWrap, total))
	}

	handle := hostValues.Insert(typeID, value)

	p := (*T)(mem)
	C.capi_install_base(headerOf(p), C.size_t(size))
	install(p)

	t := (*trailer)(unsafe.Add(mem, off))
	t.refs.Store(1)
	t.value = handle
	t.typeID = typeID
	liveBlocks.Add(1)

	Logger().Debug("wrapped host value",
		zap.String("interface", Name[T]()),
		zap.Uint32("handle", uint32(handle)),
		zap.Uintptr("ptr", uintptr(mem)))

	return WrapNew(p)
}

// hostValue recovers the Go value behind a wrapped object. It is only valid
// inside a thunk invoked on that exact object and never changes the count.
// typeID and entry name the thunk asking; a miss is logged and reported as
// false so the thunk returns its zero value.
func hostValue[V any](self unsafe.Pointer, typeID uint32, entry string) (V, bool) {
	var zero V
	t := trailerOf((*C.cef_base_ref_counted_t)(self))
	v, ok := hostValues.Lookup(t.value, typeID)
	if !ok {
		Logger().Error("host value lookup failed", zap.Error(errors.New(errors.PhaseThunk, errors.KindNotFound).
			Interface(resource.TypeName(typeID)).
			Entry(entry).
			Detail("no host value for handle %d (object type %s)", t.value, resource.TypeName(t.typeID)).
			Build()))
		return zero, false
	}
	typed, ok := v.(V)
	if !ok {
		err := errors.TypeMismatch(errors.PhaseThunk, resource.TypeName(typeID), fmt.Sprintf("%T", v))
		err.Entry = entry
		Logger().Error("host value has unexpected type", zap.Error(err))
		return zero, false
	}
	return typed, true
}

// LiveWrapped returns the number of wrapped objects not yet freed.
func LiveWrapped() int64 {
	return liveBlocks.Load()
}

// Subscribe registers an observer for wrapped host values being created and
// dropped. Events are delivered on the thread that caused them.
func Subscribe(o resource.Observer) {
	hostValues.Subscribe(o)
}

// Unsubscribe removes an observer added with Subscribe.
func Unsubscribe(o resource.Observer) {
	hostValues.Unsubscribe(o)
}

// freeBlock runs on the zero transition. The block is freed even when the
// host value's Drop panics.
func freeBlock(self *C.cef_base_ref_counted_t, t *trailer) {
	handle := t.value
	typeID := t.typeID
	t.value = 0
	dropHostValue(handle, typeID)
	C.free(unsafe.Pointer(self))
	liveBlocks.Add(-1)

	Logger().Debug("freed wrapped object",
		zap.String("interface", resource.TypeName(typeID)),
		zap.Uint32("handle", uint32(handle)))
}

func dropHostValue(handle resource.Handle, typeID uint32) {
	defer recoverThunk(resource.TypeName(typeID), "drop")
	hostValues.Remove(handle)
}

//export capiBaseAddRef
func capiBaseAddRef(self *C.cef_base_ref_counted_t) {
	defer recoverThunk("cef_base_ref_counted_t", "add_ref")
	trailerOf(self).refs.Add(1)
}

//export capiBaseRelease
func capiBaseRelease(self *C.cef_base_ref_counted_t) C.int {
	defer recoverThunk("cef_base_ref_counted_t", "release")
	t := trailerOf(self)
	// sync/atomic operations are sequentially consistent: the decrement that
	// reaches zero happens after every other thread's earlier decrement, so
	// their writes are visible before the block is freed.
	n := t.refs.Add(-1)
	if n > 0 {
		return 0
	}
	if n < 0 {
		Logger().Error("release below zero on wrapped object",
			zap.String("interface", resource.TypeName(t.typeID)),
			zap.Int64("refs", n))
		return 0
	}
	freeBlock(self, t)
	return 1
}

//export capiBaseHasOneRef
func capiBaseHasOneRef(self *C.cef_base_ref_counted_t) C.int {
	defer recoverThunk("cef_base_ref_counted_t", "has_one_ref")
	return cbool(trailerOf(self).refs.Load() == 1)
}

//export capiBaseHasAtLeastOneRef
func capiBaseHasAtLeastOneRef(self *C.cef_base_ref_counted_t) C.int {
	defer recoverThunk("cef_base_ref_counted_t", "has_at_least_one_ref")
	return cbool(trailerOf(self).refs.Load() >= 1)
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
