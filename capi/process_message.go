package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"runtime"

	"github.com/wippyai/cef-bridge/errors"
)

const processMessageName = "cef_process_message_t"

// ProcessMessage is a foreign cef_process_message_t sent between processes.
type ProcessMessage struct {
	ref *Ref[ProcessMessageStruct]
}

// NewProcessMessage adopts a +1 reference to a foreign message. It returns
// nil for a nil pointer.
func NewProcessMessage(p *ProcessMessageStruct) *ProcessMessage {
	ref := WrapExisting(p)
	if ref == nil {
		return nil
	}
	return &ProcessMessage{ref: ref}
}

// IsValid reports whether the message can still be used.
func (m *ProcessMessage) IsValid() (bool, error) {
	defer runtime.KeepAlive(m.ref)
	var out C.int
	if C.capi_process_message_is_valid(m.ref.load(), &out) == 0 {
		return false, errors.MissingEntryPoint(errors.PhaseDispatch, processMessageName, "is_valid")
	}
	return out != 0, nil
}

// IsReadOnly reports whether the message values can be modified.
func (m *ProcessMessage) IsReadOnly() (bool, error) {
	defer runtime.KeepAlive(m.ref)
	var out C.int
	if C.capi_process_message_is_read_only(m.ref.load(), &out) == 0 {
		return false, errors.MissingEntryPoint(errors.PhaseDispatch, processMessageName, "is_read_only")
	}
	return out != 0, nil
}

// Copy returns a writable copy of the message, or nil if the foreign side
// returned none.
func (m *ProcessMessage) Copy() (*ProcessMessage, error) {
	defer runtime.KeepAlive(m.ref)
	var out *C.cef_process_message_t
	if C.capi_process_message_copy(m.ref.load(), &out) == 0 {
		return nil, errors.MissingEntryPoint(errors.PhaseDispatch, processMessageName, "copy")
	}
	return NewProcessMessage(out), nil
}

// Name returns the message name.
func (m *ProcessMessage) Name() (string, error) {
	defer runtime.KeepAlive(m.ref)
	var out C.cef_string_userfree_t
	if C.capi_process_message_get_name(m.ref.load(), &out) == 0 {
		return "", errors.MissingEntryPoint(errors.PhaseDispatch, processMessageName, "get_name")
	}
	if out == nil {
		return "", nil
	}
	s, err := ConsumeUserfree(out)
	if err != nil {
		return "", err
	}
	defer s.Free()
	return s.String(), nil
}

// Ref returns the underlying handle.
func (m *ProcessMessage) Ref() *Ref[ProcessMessageStruct] { return m.ref }

// Release gives back the reference held by m.
func (m *ProcessMessage) Release() bool {
	if m == nil {
		return false
	}
	return m.ref.Release()
}
