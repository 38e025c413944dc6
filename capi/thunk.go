package capi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/cef-bridge/errors"
)

var (
	panicCount   atomic.Int64
	panicHandler atomic.Pointer[func(*errors.Error)]
)

// SetPanicHandler installs a function that receives every panic recovered at a
// thunk boundary. It runs on the foreign thread that invoked the thunk.
func SetPanicHandler(fn func(*errors.Error)) {
	if fn == nil {
		panicHandler.Store(nil)
		return
	}
	panicHandler.Store(&fn)
}

// PanicCount returns the number of panics recovered at thunk boundaries.
func PanicCount() int64 {
	return panicCount.Load()
}

// recoverThunk must be deferred directly by every exported thunk. A panic
// must not unwind into foreign frames, so it is logged and swallowed; the
// thunk then returns the zero value of its result (not handled, false, NULL).
func recoverThunk(iface, entry string) {
	v := recover()
	if v == nil {
		return
	}
	panicCount.Add(1)
	err := errors.Panic(iface, entry, v)
	Logger().Error("panic in foreign callback",
		zap.String("interface", iface),
		zap.String("entry", entry),
		zap.Error(err),
		zap.Stack("stack"))
	if h := panicHandler.Load(); h != nil {
		(*h)(err)
	}
}
