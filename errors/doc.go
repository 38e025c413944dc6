// Package errors provides structured error types for the cef-bridge library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the foreign interface and entry point involved, the Go type
// found on the host side when it was not the expected one, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDispatch, errors.KindMissingEntryPoint).
//		Interface("cef_callback_t").
//		Entry("cancel").
//		Detail("function pointer left unset by the foreign runtime").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.MissingEntryPoint(errors.PhaseDispatch, "cef_callback_t", "cancel")
//	err := errors.NilPointer(errors.PhaseMarshal, "cef_string_userfree_t")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
