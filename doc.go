// Package cefbridge connects Go to the Chromium Embedded Framework C API.
//
// The bridge covers the two directions in which objects cross the boundary:
// foreign objects held by Go through reference-counted handles, and Go values
// exposed to the runtime as foreign objects whose function pointers call
// back into Go.
//
// # Architecture Overview
//
//	cefbridge/           Root package with process-wide Setup
//	├── capi/            cgo core: Ref, wrapped objects, strings, bindings
//	├── resource/        Handle table holding Go values behind wrapped objects
//	├── errors/          Structured error types for debugging
//	├── internal/cefsim  Instrumented stand-in runtime used by tests
//	└── cmd/refcheck     Lifecycle checks against the stand-in
//
// # Quick Start
//
// Configure logging once at process start:
//
//	logger, _ := zap.NewProduction()
//	if err := cefbridge.Setup(cefbridge.WithLogger(logger)); err != nil {
//	    log.Fatal(err)
//	}
//
// Hand a Go callback to the runtime:
//
//	cb := capi.NewCompletionCallback(func() { close(done) })
//	cookieManager.flushStore(cb.IntoRaw())
//
// Hold a foreign object:
//
//	msg := capi.NewProcessMessage(raw)
//	defer msg.Release()
//	name, err := msg.Name()
//
// # Reference Counting
//
// Each capi.Ref owns one reference. Clone takes another, Release gives one
// back, and IntoRaw transfers the reference to the foreign side. The object
// is freed by whichever call drops the last reference, on whatever thread it
// happens. Handles dropped without Release are released when the garbage
// collector finds them, unless disabled with WithLeakCleanup(false).
//
// # Error Handling
//
// Errors use the structured types in the errors package:
//
//	var e *errors.Error
//	if stderrors.As(err, &e) && e.Kind == errors.KindMissingEntryPoint {
//	    log.Printf("%s does not implement %s", e.Interface, e.Entry)
//	}
//
// Contract violations such as wrapping a nil pointer panic with an
// *errors.Error rather than returning one.
package cefbridge
