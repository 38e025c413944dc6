package capi

/*
#include "bridge.h"
*/
import "C"

import (
	"unsafe"

	"github.com/wippyai/cef-bridge/resource"
)

// App is the process-level handler passed to cef_initialize and
// cef_execute_process.
type App interface {
	// OnBeforeCommandLineProcessing runs before the command line is parsed.
	// processType is empty in the browser process.
	OnBeforeCommandLineProcessing(processType string)

	// ResourceBundleHandler returns the handler for resource bundle
	// requests, or nil for none.
	ResourceBundleHandler() ResourceBundleHandler
}

// NewApp wraps a as a cef_app_t.
func NewApp(a App) *Ref[AppStruct] {
	return wrap(resource.TypeApp, a, func(p *AppStruct) {
		C.capi_install_app(p)
	})
}

//export capiAppOnBeforeCommandLineProcessing
func capiAppOnBeforeCommandLineProcessing(self *C.cef_app_t, processType *C.cef_string_t, commandLine *C.struct__cef_command_line_t) {
	defer recoverThunk("cef_app_t", "on_before_command_line_processing")
	a, ok := hostValue[App](unsafe.Pointer(self), resource.TypeApp, "on_before_command_line_processing")
	if !ok {
		return
	}
	a.OnBeforeCommandLineProcessing(goString(processType))
}

//export capiAppOnRegisterCustomSchemes
func capiAppOnRegisterCustomSchemes(self *C.cef_app_t, registrar *C.struct__cef_scheme_registrar_t) {
	defer recoverThunk("cef_app_t", "on_register_custom_schemes")
}

// The returned handler carries a fresh reference that the caller adopts.
//
//export capiAppGetResourceBundleHandler
func capiAppGetResourceBundleHandler(self *C.cef_app_t) *C.cef_resource_bundle_handler_t {
	defer recoverThunk("cef_app_t", "get_resource_bundle_handler")
	a, ok := hostValue[App](unsafe.Pointer(self), resource.TypeApp, "get_resource_bundle_handler")
	if !ok {
		return nil
	}
	h := a.ResourceBundleHandler()
	if h == nil {
		return nil
	}
	return NewResourceBundleHandler(h).IntoRaw()
}

//export capiAppGetBrowserProcessHandler
func capiAppGetBrowserProcessHandler(self *C.cef_app_t) *C.struct__cef_browser_process_handler_t {
	defer recoverThunk("cef_app_t", "get_browser_process_handler")
	return nil
}

//export capiAppGetRenderProcessHandler
func capiAppGetRenderProcessHandler(self *C.cef_app_t) *C.struct__cef_render_process_handler_t {
	defer recoverThunk("cef_app_t", "get_render_process_handler")
	return nil
}
