package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// ErrorCode mirrors cef_errorcode_t.
type ErrorCode int

const (
	ErrNone            ErrorCode = C.ERR_NONE
	ErrFailed          ErrorCode = C.ERR_FAILED
	ErrAborted         ErrorCode = C.ERR_ABORTED
	ErrTimedOut        ErrorCode = C.ERR_TIMED_OUT
	ErrNameNotResolved ErrorCode = C.ERR_NAME_NOT_RESOLVED
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "ERR_NONE"
	case ErrFailed:
		return "ERR_FAILED"
	case ErrAborted:
		return "ERR_ABORTED"
	case ErrTimedOut:
		return "ERR_TIMED_OUT"
	case ErrNameNotResolved:
		return "ERR_NAME_NOT_RESOLVED"
	default:
		return fmt.Sprintf("ERR(%d)", int(c))
	}
}

// ResolveCallback receives the result of a host name resolution.
type ResolveCallback interface {
	OnResolveCompleted(result ErrorCode, addresses []string)
}

// ResolveCallbackFunc adapts a function to ResolveCallback.
type ResolveCallbackFunc func(result ErrorCode, addresses []string)

func (f ResolveCallbackFunc) OnResolveCompleted(result ErrorCode, addresses []string) {
	f(result, addresses)
}

// NewResolveCallback wraps cb as a cef_resolve_callback_t.
func NewResolveCallback(cb ResolveCallback) *Ref[ResolveCallbackStruct] {
	return wrap(resource.TypeResolveCallback, cb, func(p *ResolveCallbackStruct) {
		C.capi_install_resolve_callback(p)
	})
}

//export capiResolveCallbackOnResolveCompleted
func capiResolveCallbackOnResolveCompleted(self *C.cef_resolve_callback_t, result C.cef_errorcode_t, addresses C.cef_string_list_t) {
	defer recoverThunk("cef_resolve_callback_t", "on_resolve_completed")
	cb, ok := hostValue[ResolveCallback](unsafe.Pointer(self), resource.TypeResolveCallback, "on_resolve_completed")
	if !ok {
		return
	}
	// The list belongs to the caller and is only valid for this call.
	cb.OnResolveCompleted(ErrorCode(result), stringListValues(addresses))
}
