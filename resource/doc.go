// Package resource provides the host-value table behind wrapped foreign objects.
//
// Memory handed to the foreign runtime must not contain Go pointers, so a wrapped
// object stores a small integer handle next to its function-pointer table. The
// handle resolves to the Go value (closure or interface implementation) in a
// process-wide table owned by the capi package.
//
// # Handle Table
//
// A Table maps integer handles to Go values. Every value is stored under the
// type ID of the foreign interface it backs, and lookups must name it:
//
//	table := resource.NewTable()
//	handle := table.Insert(resource.TypeTask, myTask)
//
//	value, ok := table.Lookup(handle, resource.TypeTask)               // ok
//	value, ok = table.Lookup(handle, resource.TypeCompletionCallback) // !ok
//
//	// the last foreign reference is gone
//	value, ok = table.Remove(handle)
//
// Handle 0 is reserved and never issued. Handles of removed values are reused.
//
// # Observers
//
// Register observers to track wrapped-object lifecycle events:
//
//	table.Subscribe(resource.ObserverFunc(func(event resource.Event) {
//	    switch event.Type {
//	    case resource.EventCreated:
//	        log.Printf("%s %d created", resource.TypeName(event.TypeID), event.Handle)
//	    case resource.EventDropped:
//	        log.Printf("%s %d dropped", resource.TypeName(event.TypeID), event.Handle)
//	    }
//	}))
//
// # Memory Management
//
// Values are not garbage collected while their handle is live. Remove is called
// by the release thunk when the foreign reference count reaches zero. Values
// implementing Dropper get their Drop method called at that point.
package resource
