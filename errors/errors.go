package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseWrap      Phase = "wrap"      // host value to foreign object
	PhaseMarshal   Phase = "marshal"   // string and collection conversion
	PhaseDispatch  Phase = "dispatch"  // calls through foreign function pointers
	PhaseLifecycle Phase = "lifecycle" // add_ref/release bookkeeping
	PhaseThunk     Phase = "thunk"     // foreign runtime calling host code
	PhaseSetup     Phase = "setup"     // process-wide configuration
)

// Kind categorizes the error
type Kind string

const (
	KindNilPointer        Kind = "nil_pointer"
	KindMissingEntryPoint Kind = "missing_entry_point"
	KindReleased          Kind = "released"
	KindAllocation        Kind = "allocation"
	KindPanic             Kind = "panic"
	KindTypeMismatch      Kind = "type_mismatch"
	KindOutOfBounds       Kind = "out_of_bounds"
	KindNotFound          Kind = "not_found"
	KindInvalidInput      Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Interface string // foreign struct name, e.g. cef_callback_t
	Entry     string // function-pointer field, e.g. cont
	GoType    string
	Detail    string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Interface != "" || e.Entry != "" {
		b.WriteString(" at ")
		switch {
		case e.Interface != "" && e.Entry != "":
			b.WriteString(e.Interface)
			b.WriteByte('.')
			b.WriteString(e.Entry)
		case e.Interface != "":
			b.WriteString(e.Interface)
		default:
			b.WriteString(e.Entry)
		}
	}

	if e.GoType != "" {
		b.WriteString(": Go type ")
		b.WriteString(e.GoType)
	}

	if e.Detail != "" {
		if e.GoType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Interface sets the foreign struct name
func (b *Builder) Interface(name string) *Builder {
	b.err.Interface = name
	return b
}

// Entry sets the function-pointer field name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, iface string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindNilPointer,
		Interface: iface,
		Detail:    "nil pointer",
	}
}

// MissingEntryPoint reports a function pointer the foreign side left unset
func MissingEntryPoint(phase Phase, iface, entry string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindMissingEntryPoint,
		Interface: iface,
		Entry:     entry,
		Detail:    "function pointer not set",
	}
}

// Released reports use of a handle after it was released or transferred
func Released(phase Phase, iface string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindReleased,
		Interface: iface,
		Detail:    "handle already released",
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uintptr) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// Panic records a recovered panic at a foreign call boundary
func Panic(iface, entry string, value any) *Error {
	err := &Error{
		Phase:     PhaseThunk,
		Kind:      KindPanic,
		Interface: iface,
		Entry:     entry,
		Value:     value,
		Detail:    fmt.Sprintf("%v", value),
	}
	if cause, ok := value.(error); ok {
		err.Cause = cause
	}
	return err
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, iface, goType string) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindTypeMismatch,
		Interface: iface,
		GoType:    goType,
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, iface string, index, length int) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Interface: iface,
		Detail:    fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:     index,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// MissingEntry identifies one unset function pointer
type MissingEntry struct {
	Interface string // e.g., "cef_base_ref_counted_t"
	Entry     string // e.g., "has_one_ref"
}

// MissingEntryPointsError is returned when a foreign vtable is only partially populated
type MissingEntryPointsError struct {
	Entries []MissingEntry
}

// NewMissingEntryPointsError creates an error from a list of "interface#entry" strings
func NewMissingEntryPointsError(entries []string) *MissingEntryPointsError {
	result := &MissingEntryPointsError{
		Entries: make([]MissingEntry, 0, len(entries)),
	}
	for _, e := range entries {
		iface, entry := parseEntryKey(e)
		result.Entries = append(result.Entries, MissingEntry{
			Interface: iface,
			Entry:     entry,
		})
	}
	return result
}

func parseEntryKey(key string) (iface, entry string) {
	i, e, found := strings.Cut(key, "#")
	if found {
		return i, e
	}
	return key, ""
}

func (e *MissingEntryPointsError) Error() string {
	if len(e.Entries) == 0 {
		return "[dispatch] missing_entry_point: no entries specified"
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("missing %d entry point(s):\n", len(e.Entries)))

	// Group by interface for cleaner output
	byIface := make(map[string][]string)
	var order []string
	for _, m := range e.Entries {
		if _, exists := byIface[m.Interface]; !exists {
			order = append(order, m.Interface)
		}
		byIface[m.Interface] = append(byIface[m.Interface], m.Entry)
	}

	for _, iface := range order {
		b.WriteString("\n  ")
		b.WriteString(iface)
		b.WriteString(":\n")
		for _, entry := range byIface[iface] {
			b.WriteString("    - ")
			b.WriteString(entry)
			b.WriteByte('\n')
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// Is reports whether target matches this error type. A MissingEntryPointsError
// also matches the single-entry *Error of kind missing_entry_point.
func (e *MissingEntryPointsError) Is(target error) bool {
	switch t := target.(type) {
	case *MissingEntryPointsError:
		return true
	case *Error:
		return t.Kind == KindMissingEntryPoint
	}
	return false
}
