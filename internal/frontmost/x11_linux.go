//go:build linux

package frontmost

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// X11Detector implements the Detector interface by reading the window
// manager's _NET_ACTIVE_WINDOW property and resolving the active window's
// WM_CLASS.
type X11Detector struct {
	conn       *xgb.Conn
	root       xproto.Window
	activeAtom xproto.Atom
	classAtom  xproto.Atom
}

// NewX11Detector connects to the X server and interns the atoms needed
// for active-window lookups.
func NewX11Detector() (*X11Detector, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	activeAtom, err := internAtom(conn, "_NET_ACTIVE_WINDOW")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}
	classAtom, err := internAtom(conn, "WM_CLASS")
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to intern WM_CLASS: %w", err)
	}

	return &X11Detector{
		conn:       conn,
		root:       root,
		activeAtom: activeAtom,
		classAtom:  classAtom,
	}, nil
}

// Name returns the backend name
func (d *X11Detector) Name() string {
	return "x11"
}

// Close closes the X11 connection
func (d *X11Detector) Close() error {
	d.conn.Close()
	return nil
}

// Detect returns the WM_CLASS of the window manager's active window.
func (d *X11Detector) Detect() (string, bool) {
	active, err := d.activeWindow()
	if err != nil || active == xproto.WindowNone {
		return "", false
	}

	class, err := d.windowClass(active)
	if err != nil || class == "" {
		return "", false
	}
	return class, true
}

// activeWindow reads _NET_ACTIVE_WINDOW from the root window.
func (d *X11Detector) activeWindow() (xproto.Window, error) {
	reply, err := xproto.GetProperty(
		d.conn, false, d.root, d.activeAtom, xproto.AtomWindow, 0, 1,
	).Reply()
	if err != nil {
		return xproto.WindowNone, err
	}
	if reply.ValueLen == 0 || len(reply.Value) < 4 {
		return xproto.WindowNone, fmt.Errorf("no active window")
	}

	win := xproto.Window(uint32(reply.Value[0]) |
		uint32(reply.Value[1])<<8 |
		uint32(reply.Value[2])<<16 |
		uint32(reply.Value[3])<<24)
	return win, nil
}

// windowClass resolves a window's WM_CLASS. The property holds two
// null-terminated strings (instance, class); the class name is the
// application identifier.
func (d *X11Detector) windowClass(win xproto.Window) (string, error) {
	reply, err := xproto.GetProperty(
		d.conn, false, win, d.classAtom, xproto.AtomString, 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return "", err
	}
	if reply.ValueLen == 0 {
		return "", fmt.Errorf("empty WM_CLASS")
	}

	parts := strings.Split(string(reply.Value), "\x00")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1], nil
	}
	if len(parts) >= 1 {
		return parts[0], nil
	}
	return "", fmt.Errorf("malformed WM_CLASS")
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}
