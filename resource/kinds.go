package resource

// Type IDs for the foreign interfaces that can carry host values.
const (
	TypeUnknown uint32 = iota
	TypeCompletionCallback
	TypeStringVisitor
	TypeTask
	TypeResolveCallback
	TypeResourceBundleHandler
	TypeApp
)

var typeNames = map[uint32]string{
	TypeCompletionCallback:    "cef_completion_callback_t",
	TypeStringVisitor:         "cef_string_visitor_t",
	TypeTask:                  "cef_task_t",
	TypeResolveCallback:       "cef_resolve_callback_t",
	TypeResourceBundleHandler: "cef_resource_bundle_handler_t",
	TypeApp:                   "cef_app_t",
}

// TypeName returns the foreign struct name for a type ID.
func TypeName(typeID uint32) string {
	if name, ok := typeNames[typeID]; ok {
		return name
	}
	return "unknown"
}
