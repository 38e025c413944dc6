// Package capi is the cgo core of the bridge: the C ABI header, the owning
// handle Ref for foreign reference-counted objects, the wrapping mechanism
// that exposes Go values to the foreign runtime as native objects, string
// and collection marshalling, and the per-interface bindings built on them.
//
// # Foreign objects
//
// Every foreign object starts with cef_base_ref_counted_t. A Ref owns exactly
// one count on such an object:
//
//	cb := capi.NewCallback(raw)  // adopts the +1 the runtime handed over
//	defer cb.Release()
//	if err := cb.Cont(); err != nil { ... }
//
// # Wrapped objects
//
// NewTask, NewCompletionCallback and the other New* constructors allocate a
// C struct whose function pointers are Go thunks. The Go value is kept in a
// process-wide handle table; the C allocation stores only the handle, next to
// an atomic reference count. Passing the object to the runtime hands over a
// reference with IntoRaw:
//
//	task := capi.NewTask(capi.TaskFunc(work))
//	postTask(threadID, task.IntoRaw())
//
// The object, and the Go value with it, is freed when the last reference is
// released, whichever side releases it. A panic inside a thunk is recovered,
// logged and reported to the handler set with SetPanicHandler; the thunk then
// returns its zero result.
//
// # Strings
//
// Foreign strings are UTF-16. String owns one; ConsumeUserfree takes over a
// userfree string returned by the runtime. StringList and StringMultimap own
// the opaque collection types.
//
// # Build modes
//
// By default the package compiles a small C implementation of the runtime's
// string functions so it can be used and tested without the browser library.
// Build with -tags libcef to link against libcef instead.
package capi
