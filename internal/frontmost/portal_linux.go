//go:build linux

package frontmost

import (
	"github.com/godbus/dbus/v5"
)

const portalService = "org.freedesktop.portal.Desktop"

// ScreenCastPortalPresent reports whether the xdg-desktop-portal service
// is reachable on the session bus. On Wayland this is what window capture
// itself goes through, so its absence is worth surfacing when we drop
// into manual mode.
func ScreenCastPortalPresent() bool {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return false
	}
	defer conn.Close()

	var names []string
	if err := conn.BusObject().Call("org.freedesktop.DBus.ListNames", 0).Store(&names); err != nil {
		return false
	}

	for _, name := range names {
		if name == portalService {
			return true
		}
	}
	return false
}
