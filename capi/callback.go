package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime"

	"github.com/wippyai/cef-bridge/errors"
)

// Callback is a foreign cef_callback_t used to continue or cancel a pending
// request.
type Callback struct {
	ref *Ref[CallbackStruct]
}

// NewCallback adopts a +1 reference to a foreign callback. It returns nil for
// a nil pointer.
func NewCallback(p *CallbackStruct) *Callback {
	ref := WrapExisting(p)
	if ref == nil {
		return nil
	}
	return &Callback{ref: ref}
}

// Cont continues the request.
func (c *Callback) Cont() error {
	defer runtime.KeepAlive(c.ref)
	p := c.ref.load()
	if C.capi_callback_cont(p) == 0 {
		return errors.MissingEntryPoint(errors.PhaseDispatch, "cef_callback_t", "cont")
	}
	return nil
}

// Cancel cancels the request.
func (c *Callback) Cancel() error {
	defer runtime.KeepAlive(c.ref)
	p := c.ref.load()
	if C.capi_callback_cancel(p) == 0 {
		return errors.MissingEntryPoint(errors.PhaseDispatch, "cef_callback_t", "cancel")
	}
	return nil
}

// Ref returns the underlying handle.
func (c *Callback) Ref() *Ref[CallbackStruct] { return c.ref }

// Release gives back the reference held by c.
func (c *Callback) Release() bool {
	if c == nil {
		return false
	}
	return c.ref.Release()
}
