package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// oneShot holds a closure that may run at most once.
type oneShot struct {
	mu sync.Mutex
	fn func()
}

// take removes the closure, leaving nothing behind.
func (o *oneShot) take() func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn := o.fn
	o.fn = nil
	return fn
}

// NewCompletionCallback wraps fn as a cef_completion_callback_t. The foreign
// runtime calls on_complete once; any later call does nothing.
func NewCompletionCallback(fn func()) *Ref[CompletionCallbackStruct] {
	return wrap(resource.TypeCompletionCallback, &oneShot{fn: fn}, func(p *CompletionCallbackStruct) {
		C.capi_install_completion_callback(p)
	})
}

//export capiCompletionCallbackOnComplete
func capiCompletionCallbackOnComplete(self *C.cef_completion_callback_t) {
	defer recoverThunk("cef_completion_callback_t", "on_complete")
	cell, ok := hostValue[*oneShot](unsafe.Pointer(self), resource.TypeCompletionCallback, "on_complete")
	if !ok {
		return
	}
	if fn := cell.take(); fn != nil {
		fn()
	}
}
