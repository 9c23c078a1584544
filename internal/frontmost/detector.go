// Package frontmost resolves which application currently holds input
// focus. Detection strategy differs per platform and is probed once at
// startup: X11 reads the active window's class, Windows resolves the
// foreground window's process image, and Wayland cannot answer at all,
// which forces the caller into manual capture mode.
package frontmost

import (
	"os"

	"github.com/p-doom/crowd-cast/internal/logger"
)

// Detector defines the interface for frontmost application detection
// backends (X11, Win32, etc.)
type Detector interface {
	// Detect returns the identifier of the currently focused application:
	// a WM_CLASS on X11, an executable name on Windows. ok is false when
	// no frontmost application can be determined this instant.
	Detect() (id string, ok bool)

	// Name returns the backend name (e.g. "x11", "win32")
	Name() string

	// Close releases any display-server connection held by the backend
	Close() error
}

// unavailable is the detector for platforms where frontmost detection is
// structurally impossible.
type unavailable struct{}

func (unavailable) Detect() (string, bool) { return "", false }
func (unavailable) Name() string           { return "none" }
func (unavailable) Close() error           { return nil }

// Unavailable returns a detector that never resolves a frontmost
// application.
func Unavailable() Detector {
	return unavailable{}
}

// IsWaylandSession reports whether this process runs inside a Wayland
// session. Wayland's security model does not expose the active window to
// ordinary clients, so detection falls back to manual mode there.
func IsWaylandSession() bool {
	if os.Getenv("XDG_SESSION_TYPE") == "wayland" {
		return true
	}

	// WAYLAND_DISPLAY alone is only conclusive when no X display exists;
	// XWayland sessions set both and the X path still works.
	if os.Getenv("WAYLAND_DISPLAY") != "" && os.Getenv("DISPLAY") == "" {
		return true
	}

	return false
}

func logManualMode(reason string) {
	logger.WithComponent("frontmost").Info().
		Str("reason", reason).
		Msg("Frontmost detection unavailable, using manual capture mode")
}
