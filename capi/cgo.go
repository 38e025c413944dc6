package capi

/*
#cgo CFLAGS: -I${SRCDIR}/include -I${SRCDIR}
#include "bridge.h"
*/
import "C"

import "unsafe"

// ABI struct types. The aliases let code outside cgo-enabled files name them.
type (
	Base                        = C.cef_base_ref_counted_t
	StringStruct                = C.cef_string_t
	Userfree                    = C.cef_string_userfree_t
	CompletionCallbackStruct    = C.cef_completion_callback_t
	StringVisitorStruct         = C.cef_string_visitor_t
	TaskStruct                  = C.cef_task_t
	ResolveCallbackStruct       = C.cef_resolve_callback_t
	ResourceBundleHandlerStruct = C.cef_resource_bundle_handler_t
	AppStruct                   = C.cef_app_t
	CallbackStruct              = C.cef_callback_t
	ProcessMessageStruct        = C.cef_process_message_t
)

// Foreign is the set of ABI structs whose first field is the base header.
// Ref and the wrapping machinery only accept these types, so a pointer to
// any of them can be reinterpreted as a *Base without an offset.
type Foreign interface {
	Base |
		CompletionCallbackStruct |
		StringVisitorStruct |
		TaskStruct |
		ResolveCallbackStruct |
		ResourceBundleHandlerStruct |
		AppStruct |
		CallbackStruct |
		ProcessMessageStruct
}

func headerOf[T Foreign](p *T) *Base {
	return (*Base)(unsafe.Pointer(p))
}

// Name returns the C struct name of T, used in errors and logs.
func Name[T Foreign]() string {
	var zero *T
	switch any(zero).(type) {
	case *Base:
		return "cef_base_ref_counted_t"
	case *CompletionCallbackStruct:
		return "cef_completion_callback_t"
	case *StringVisitorStruct:
		return "cef_string_visitor_t"
	case *TaskStruct:
		return "cef_task_t"
	case *ResolveCallbackStruct:
		return "cef_resolve_callback_t"
	case *ResourceBundleHandlerStruct:
		return "cef_resource_bundle_handler_t"
	case *AppStruct:
		return "cef_app_t"
	case *CallbackStruct:
		return "cef_callback_t"
	case *ProcessMessageStruct:
		return "cef_process_message_t"
	}
	return "unknown"
}
