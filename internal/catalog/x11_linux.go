//go:build linux

package catalog

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/p-doom/crowd-cast/internal/frontmost"
	"github.com/p-doom/crowd-cast/internal/logger"
)

// X11Lister enumerates windows via the EWMH _NET_CLIENT_LIST property,
// falling back to a QueryTree walk on window managers that don't
// maintain it.
type X11Lister struct {
	conn *xgb.Conn
	root xproto.Window
}

// NewLister returns the window lister for this session. Wayland sessions
// get an empty lister: enumeration there goes through the portal at
// capture time and cannot be listed up front.
func NewLister() Lister {
	if frontmost.IsWaylandSession() {
		return emptyLister{}
	}

	l, err := NewX11Lister()
	if err != nil {
		logger.WithComponent("catalog").Warn().Err(err).
			Msg("Window enumeration unavailable")
		return emptyLister{}
	}
	return l
}

// NewX11Lister connects to the X server.
func NewX11Lister() (*X11Lister, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	return &X11Lister{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}, nil
}

// Name returns the lister name
func (l *X11Lister) Name() string {
	return "x11"
}

// Close closes the X11 connection
func (l *X11Lister) Close() error {
	l.conn.Close()
	return nil
}

// ListWindows returns all windows with a title or class.
func (l *X11Lister) ListWindows() ([]Window, error) {
	windows, err := l.listEWMH()
	if err == nil && len(windows) > 0 {
		return windows, nil
	}
	return l.listQueryTree()
}

// listEWMH reads _NET_CLIENT_LIST from the root window.
func (l *X11Lister) listEWMH() ([]Window, error) {
	clientListAtom, err := l.getAtom("_NET_CLIENT_LIST")
	if err != nil {
		return nil, fmt.Errorf("failed to get _NET_CLIENT_LIST atom: %w", err)
	}

	reply, err := xproto.GetProperty(
		l.conn, false, l.root, clientListAtom,
		xproto.GetPropertyTypeAny, 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get _NET_CLIENT_LIST property: %w", err)
	}
	if reply.ValueLen == 0 {
		return nil, fmt.Errorf("_NET_CLIENT_LIST is empty")
	}

	windows := make([]Window, 0, len(reply.Value)/4)
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		winID := xproto.Window(uint32(reply.Value[i]) |
			uint32(reply.Value[i+1])<<8 |
			uint32(reply.Value[i+2])<<16 |
			uint32(reply.Value[i+3])<<24)
		if w, ok := l.describe(winID); ok {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// listQueryTree walks the root window's children.
func (l *X11Lister) listQueryTree() ([]Window, error) {
	tree, err := xproto.QueryTree(l.conn, l.root).Reply()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0)
	for _, child := range tree.Children {
		if w, ok := l.describe(child); ok {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// describe builds a Window entry; windows with neither title nor class
// are usually not user windows and get skipped.
func (l *X11Lister) describe(win xproto.Window) (Window, bool) {
	title := l.windowTitle(win)
	class := l.windowClass(win)
	if title == "" && class == "" {
		return Window{}, false
	}

	// xcomposite_input identifies capture targets as "0xHEX class".
	id := fmt.Sprintf("0x%x %s", uint32(win), class)
	if title == "" {
		title = class
	}

	return Window{
		ID:      id,
		Title:   title,
		AppName: class,
	}, true
}

func (l *X11Lister) windowTitle(win xproto.Window) string {
	if title, err := l.stringProperty(win, "_NET_WM_NAME"); err == nil && title != "" {
		return title
	}
	if title, err := l.stringProperty(win, "WM_NAME"); err == nil {
		return title
	}
	return ""
}

func (l *X11Lister) windowClass(win xproto.Window) string {
	value, err := l.stringProperty(win, "WM_CLASS")
	if err != nil {
		return ""
	}
	parts := strings.Split(value, "\x00")
	if len(parts) >= 2 && parts[1] != "" {
		return parts[1]
	}
	return parts[0]
}

func (l *X11Lister) stringProperty(win xproto.Window, name string) (string, error) {
	atom, err := l.getAtom(name)
	if err != nil {
		return "", err
	}

	reply, err := xproto.GetProperty(
		l.conn, false, win, atom,
		xproto.GetPropertyTypeAny, 0, (1<<32)-1,
	).Reply()
	if err != nil {
		return "", err
	}
	if reply.ValueLen == 0 {
		return "", fmt.Errorf("empty property")
	}
	return strings.TrimRight(string(reply.Value), "\x00"), nil
}

func (l *X11Lister) getAtom(name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(l.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}
