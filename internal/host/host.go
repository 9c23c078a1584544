// Package host defines the boundary to the application that owns the
// capture sources. The tracking subsystem consumes sources through these
// interfaces only; the owning application's object model and rendering
// pipeline live behind them.
package host

import "strings"

// Source is the host's view of one capture source.
type Source interface {
	// Name returns the source's stable, unique name
	Name() string

	// TypeID returns the source type identifier (e.g. "window_capture")
	TypeID() string

	// Active reports whether the host currently renders this source to
	// an output
	Active() bool

	// Setting returns a value from the source's current configuration,
	// or "" if the key is unset
	Setting(key string) string
}

// EventKind identifies a source lifecycle transition.
type EventKind int

const (
	SourceCreated EventKind = iota
	SourceRemoved
	SourceActivated
	SourceDeactivated
)

func (k EventKind) String() string {
	switch k {
	case SourceCreated:
		return "created"
	case SourceRemoved:
		return "removed"
	case SourceActivated:
		return "activated"
	case SourceDeactivated:
		return "deactivated"
	}
	return "unknown"
}

// Event is a source lifecycle notification.
type Event struct {
	Kind   EventKind
	Source Source
}

// Handler receives lifecycle events. Handlers are invoked synchronously
// on the goroutine performing the mutation and must not block.
type Handler func(Event)

// Model is the host's source object model.
type Model interface {
	// Enumerate visits every current source; visit returns false to stop
	Enumerate(visit func(Source) bool)

	// Subscribe registers a lifecycle handler and returns a cancel func
	Subscribe(h Handler) (cancel func())

	// CreateSource creates a new source of the given type. Fails if a
	// source with the same name already exists.
	CreateSource(typeID, name string, settings map[string]string) (Source, error)

	// SourceByName looks up a source by its unique name
	SourceByName(name string) (Source, bool)
}

// Capture source type identifiers, one per platform capture backend.
const (
	TypeWindowCaptureWin32 = "window_capture"                 // Windows
	TypeXComposite         = "xcomposite_input"               // Linux X11
	TypePipeWire           = "pipewire-screen-capture-source" // Linux Wayland
	TypeScreenCaptureKit   = "screen_capture"                 // macOS
)

// IsCaptureSourceType reports whether a source type identifies a
// window/application capture source worth tracking.
func IsCaptureSourceType(typeID string) bool {
	switch typeID {
	case TypeWindowCaptureWin32, TypeXComposite, TypePipeWire, TypeScreenCaptureKit:
		return true
	}
	return strings.Contains(typeID, "window")
}

// TargetSettingKey returns the settings key under which a capture source
// of the given type stores its target application identifier.
func TargetSettingKey(typeID string) string {
	switch typeID {
	case TypeScreenCaptureKit:
		return "application"
	case TypeXComposite:
		return "capture_window"
	default:
		return "window"
	}
}
