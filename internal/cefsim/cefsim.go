//go:build !windows

// Package cefsim is an instrumented stand-in for the browser runtime's side
// of the C ABI. It creates foreign objects whose reference counts and
// allocations can be inspected, and calls host objects strictly through
// their function pointers, optionally from native threads.
//
// Pointers cross this package as unsafe.Pointer; callers convert them to
// their own ABI struct types.
package cefsim

/*
#cgo CFLAGS: -I${SRCDIR}/../../capi/include
#cgo LDFLAGS: -lpthread
#include <stdlib.h>
#include "cefsim.h"
*/
import "C"

import (
	"unicode/utf16"
	"unsafe"
)

// Omit flags for NewObject.
const (
	OmitAddRef           = C.CEFSIM_NO_ADD_REF
	OmitRelease          = C.CEFSIM_NO_RELEASE
	OmitHasOneRef        = C.CEFSIM_NO_HAS_ONE_REF
	OmitHasAtLeastOneRef = C.CEFSIM_NO_HAS_AT_LEAST_ONE_REF
)

// Reset zeroes the allocation counters.
func Reset() { C.cefsim_reset() }

// Allocs returns the number of objects created since the last Reset.
func Allocs() int64 { return int64(C.cefsim_allocs()) }

// Frees returns the number of objects freed since the last Reset.
func Frees() int64 { return int64(C.cefsim_frees()) }

// BuffersFreed returns the number of userfree string buffers released.
func BuffersFreed() int64 { return int64(C.cefsim_buffers_freed()) }

func base(p unsafe.Pointer) *C.cef_base_ref_counted_t {
	return (*C.cef_base_ref_counted_t)(p)
}

// NewObject creates a bare ref-counted object holding one reference.
// omit clears the named lifecycle entry points.
func NewObject(omit int) unsafe.Pointer {
	return unsafe.Pointer(C.cefsim_new_object(C.int(omit)))
}

// RefCount reads the count of an object created by this package.
func RefCount(p unsafe.Pointer) int64 {
	return int64(C.cefsim_ref_count(base(p)))
}

// AddRef calls the object's add_ref entry point.
func AddRef(p unsafe.Pointer) { C.cefsim_add_ref(base(p)) }

// Release calls the object's release entry point.
func Release(p unsafe.Pointer) bool { return C.cefsim_release(base(p)) != 0 }

// HasOneRef calls the object's has_one_ref entry point.
func HasOneRef(p unsafe.Pointer) bool { return C.cefsim_has_one_ref(base(p)) != 0 }

// HasAtLeastOneRef calls the object's has_at_least_one_ref entry point.
func HasAtLeastOneRef(p unsafe.Pointer) bool {
	return C.cefsim_has_at_least_one_ref(base(p)) != 0
}

// NewCallback creates a cef_callback_t. Without withCancel the cancel entry
// point is left unset.
func NewCallback(withCancel bool) unsafe.Pointer {
	return unsafe.Pointer(C.cefsim_new_callback(cbool(withCancel)))
}

// ContCalls returns how often cont ran on a callback from NewCallback.
func ContCalls(p unsafe.Pointer) int64 {
	return int64(C.cefsim_cont_calls((*C.cef_callback_t)(p)))
}

// CancelCalls returns how often cancel ran on a callback from NewCallback.
func CancelCalls(p unsafe.Pointer) int64 {
	return int64(C.cefsim_cancel_calls((*C.cef_callback_t)(p)))
}

// NewProcessMessage creates a cef_process_message_t named name. Without
// withCopy the copy entry point is left unset.
func NewProcessMessage(name string, withCopy bool) unsafe.Pointer {
	units := UTF16(name)
	return unsafe.Pointer(C.cefsim_new_process_message(unitsPtr(units), C.size_t(len(units)), cbool(withCopy)))
}

// NewUserfree creates a userfree string whose buffer free is counted by
// BuffersFreed.
func NewUserfree(units []uint16) unsafe.Pointer {
	return unsafe.Pointer(C.cefsim_new_userfree(unitsPtr(units), C.size_t(len(units))))
}

// Complete calls on_complete.
func Complete(p unsafe.Pointer) {
	C.cefsim_complete((*C.cef_completion_callback_t)(p))
}

// CompleteOnThread calls on_complete and then release from a new native
// thread, as the runtime does when it finishes work on its own thread.
func CompleteOnThread(p unsafe.Pointer) bool {
	return C.cefsim_complete_on_thread((*C.cef_completion_callback_t)(p)) != 0
}

// Visit calls visit with a borrowed string holding units.
func Visit(p unsafe.Pointer, units []uint16) {
	C.cefsim_visit((*C.cef_string_visitor_t)(p), unitsPtr(units), C.size_t(len(units)))
}

// Execute calls execute.
func Execute(p unsafe.Pointer) {
	C.cefsim_execute((*C.cef_task_t)(p))
}

// Resolve calls on_resolve_completed with a caller-owned string list.
func Resolve(p unsafe.Pointer, code int, list unsafe.Pointer) {
	C.cefsim_resolve((*C.cef_resolve_callback_t)(p), C.int(code), C.cef_string_list_t(list))
}

// LocalizedString calls get_localized_string and returns the units written
// to the out-parameter, freeing them through their destructor.
func LocalizedString(p unsafe.Pointer, id int) ([]uint16, bool) {
	var out C.cef_string_t
	handled := C.cefsim_localized_string((*C.cef_resource_bundle_handler_t)(p), C.int(id), &out) != 0
	defer C.cefsim_free_string(&out)
	if out.str == nil || out.length == 0 {
		return nil, handled
	}
	units := unsafe.Slice((*uint16)(unsafe.Pointer(out.str)), int(out.length))
	return append([]uint16(nil), units...), handled
}

// DataResource reports whether either data resource entry point claimed id.
func DataResource(p unsafe.Pointer, id int) bool {
	return C.cefsim_data_resource((*C.cef_resource_bundle_handler_t)(p), C.int(id)) != 0
}

// BeforeCommandLine calls on_before_command_line_processing.
func BeforeCommandLine(p unsafe.Pointer, processType string) {
	units := UTF16(processType)
	C.cefsim_app_before_command_line((*C.cef_app_t)(p), unitsPtr(units), C.size_t(len(units)))
}

// RegisterCustomSchemes calls on_register_custom_schemes with no registrar.
func RegisterCustomSchemes(p unsafe.Pointer) {
	C.cefsim_app_register_custom_schemes((*C.cef_app_t)(p))
}

// ResourceBundleHandler calls get_resource_bundle_handler. The result, if
// any, carries a reference owned by the caller.
func ResourceBundleHandler(p unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(C.cefsim_app_resource_bundle_handler((*C.cef_app_t)(p)))
}

// HasProcessHandlers reports whether the app returned a browser or render
// process handler.
func HasProcessHandlers(p unsafe.Pointer) bool {
	return C.cefsim_app_has_process_handlers((*C.cef_app_t)(p)) != 0
}

// Stress runs threads native threads that each add and release a reference
// iterations times. It returns the number of releases that reported the
// object freed, or -1 if the threads could not be started.
func Stress(p unsafe.Pointer, threads, iterations int) int {
	return int(C.cefsim_stress(base(p), C.int(threads), C.int(iterations)))
}

// ReleaseOnThreads releases p once from each of threads native threads at
// the same time. It returns the number of releases that reported the object
// freed, or -1 if the threads could not be started.
func ReleaseOnThreads(p unsafe.Pointer, threads int) int {
	return int(C.cefsim_release_on_threads(base(p), C.int(threads)))
}

// UTF16 encodes s independently of the bridge's own codec.
func UTF16(s string) []uint16 { return utf16.Encode([]rune(s)) }

// String decodes units independently of the bridge's own codec.
func String(units []uint16) string { return string(utf16.Decode(units)) }

func unitsPtr(units []uint16) *C.cef_char16_t {
	if len(units) == 0 {
		return nil
	}
	return (*C.cef_char16_t)(unsafe.Pointer(&units[0]))
}

func cbool(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
