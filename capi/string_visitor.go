package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// StringVisitor receives string contents produced asynchronously by the
// foreign runtime, such as page source or text.
type StringVisitor interface {
	Visit(s string)
}

// StringVisitorFunc adapts a function to StringVisitor.
type StringVisitorFunc func(s string)

func (f StringVisitorFunc) Visit(s string) { f(s) }

// NewStringVisitor wraps v as a cef_string_visitor_t.
func NewStringVisitor(v StringVisitor) *Ref[StringVisitorStruct] {
	return wrap(resource.TypeStringVisitor, v, func(p *StringVisitorStruct) {
		C.capi_install_string_visitor(p)
	})
}

//export capiStringVisitorVisit
func capiStringVisitorVisit(self *C.cef_string_visitor_t, str *C.cef_string_t) {
	defer recoverThunk("cef_string_visitor_t", "visit")
	v, ok := hostValue[StringVisitor](unsafe.Pointer(self), resource.TypeStringVisitor, "visit")
	if !ok {
		return
	}
	v.Visit(goString(str))
}
