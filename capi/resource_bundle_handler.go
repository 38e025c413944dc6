package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// ResourceBundleHandler overrides localized strings loaded from the resource
// bundle.
type ResourceBundleHandler interface {
	// LocalizedString returns the replacement for string id, or false to
	// keep the bundled value.
	LocalizedString(id int) (string, bool)
}

// LocalizedStrings is a ResourceBundleHandler backed by a map.
type LocalizedStrings map[int]string

func (m LocalizedStrings) LocalizedString(id int) (string, bool) {
	s, ok := m[id]
	return s, ok
}

// NewResourceBundleHandler wraps h as a cef_resource_bundle_handler_t.
func NewResourceBundleHandler(h ResourceBundleHandler) *Ref[ResourceBundleHandlerStruct] {
	return wrap(resource.TypeResourceBundleHandler, h, func(p *ResourceBundleHandlerStruct) {
		C.capi_install_resource_bundle_handler(p)
	})
}

//export capiResourceBundleHandlerGetLocalizedString
func capiResourceBundleHandlerGetLocalizedString(self *C.cef_resource_bundle_handler_t, id C.int, out *C.cef_string_t) C.int {
	defer recoverThunk("cef_resource_bundle_handler_t", "get_localized_string")
	h, ok := hostValue[ResourceBundleHandler](unsafe.Pointer(self), resource.TypeResourceBundleHandler, "get_localized_string")
	if !ok || out == nil {
		return 0
	}
	s, ok := h.LocalizedString(int(id))
	if !ok {
		return 0
	}
	setString(out, s)
	return 1
}

// Data resources must stay resident for the life of the process, which a
// collected Go slice cannot promise, so these are never handled.

//export capiResourceBundleHandlerGetDataResource
func capiResourceBundleHandlerGetDataResource(self *C.cef_resource_bundle_handler_t, id C.int, data *unsafe.Pointer, size *C.size_t) C.int {
	defer recoverThunk("cef_resource_bundle_handler_t", "get_data_resource")
	return 0
}

//export capiResourceBundleHandlerGetDataResourceForScale
func capiResourceBundleHandlerGetDataResourceForScale(self *C.cef_resource_bundle_handler_t, id C.int, scale C.int, data *unsafe.Pointer, size *C.size_t) C.int {
	defer recoverThunk("cef_resource_bundle_handler_t", "get_data_resource_for_scale")
	return 0
}
