// Package catalog enumerates windows that can be offered as capture
// targets and knows which capture source type each platform uses.
package catalog

import (
	"runtime"
	"strings"

	"github.com/p-doom/crowd-cast/internal/frontmost"
	"github.com/p-doom/crowd-cast/internal/host"
)

// Window is one candidate capture target.
type Window struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	AppName   string `json:"app_name"`
	Suggested bool   `json:"suggested"`
}

// Lister enumerates the window system's current windows.
type Lister interface {
	// ListWindows returns all candidate capture targets
	ListWindows() ([]Window, error)

	// Name returns the lister name (e.g. "x11")
	Name() string

	// Close releases any display-server connection
	Close() error
}

// emptyLister is used where no window enumerator exists; the catalogue
// degrades to empty lists rather than errors.
type emptyLister struct{}

func (emptyLister) ListWindows() ([]Window, error) { return nil, nil }
func (emptyLister) Name() string                   { return "none" }
func (emptyLister) Close() error                   { return nil }

// SourceTypeID returns the capture source type for this platform and
// session.
func SourceTypeID() string {
	switch runtime.GOOS {
	case "windows":
		return host.TypeWindowCaptureWin32
	case "darwin":
		return host.TypeScreenCaptureKit
	default:
		if frontmost.IsWaylandSession() {
			return host.TypePipeWire
		}
		return host.TypeXComposite
	}
}

// WindowProperty returns the settings key that carries the capture
// target on this platform's source type.
func WindowProperty() string {
	return host.TargetSettingKey(SourceTypeID())
}

// SourceSettings builds the settings for a new capture source targeting
// windowID.
func SourceSettings(windowID string) map[string]string {
	settings := map[string]string{
		WindowProperty(): windowID,
		"cursor":         "true",
	}
	if SourceTypeID() == host.TypeScreenCaptureKit {
		// Application-level capture, not a single window or display.
		settings["type"] = "2"
		settings["show_cursor"] = "true"
	}
	return settings
}

// suggestedApps are application names worth surfacing first when an
// operator picks capture targets: browsers, editors, document viewers,
// terminals. Matching is case-insensitive substring.
var suggestedApps = []string{
	// Browsers
	"firefox", "chrome", "chromium", "safari", "brave", "edge", "opera", "vivaldi",
	// IDEs and editors
	"cursor", "code", "codium", "idea", "webstorm", "pycharm", "goland", "clion",
	"sublime_text", "sublime", "atom", "vim", "nvim", "emacs", "notepad++",
	// PDF and document viewers
	"preview", "evince", "okular", "acrobat", "reader", "foxit", "zathura",
	// Terminals
	"terminal", "iterm", "iterm2", "alacritty", "kitty", "wezterm", "hyper",
	"gnome-terminal", "konsole", "xterm",
}

// IsSuggestedApp reports whether name matches the suggested-apps list.
func IsSuggestedApp(name string, extra []string) bool {
	if name == "" {
		return false
	}
	lower := strings.ToLower(name)
	for _, s := range suggestedApps {
		if strings.Contains(lower, s) {
			return true
		}
	}
	for _, s := range extra {
		if s != "" && strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}

// AppNameFromTitle extracts the likely application name from a window
// title. Titles commonly read "document - Application" or
// "Application: detail"; everything from the first separator on is
// dropped.
func AppNameFromTitle(title string) string {
	name := title
	for _, sep := range []string{" - ", " — ", ":"} {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = name[:idx]
			break
		}
	}
	return strings.TrimRight(name, " \t")
}

// Annotate fills each window's AppName and Suggested fields and returns
// the suggested subset.
func Annotate(windows []Window, extraSuggested []string) []Window {
	suggested := make([]Window, 0)
	for i := range windows {
		if windows[i].AppName == "" {
			windows[i].AppName = AppNameFromTitle(windows[i].Title)
		}
		windows[i].Suggested = IsSuggestedApp(windows[i].AppName, extraSuggested) ||
			IsSuggestedApp(windows[i].Title, extraSuggested)
		if windows[i].Suggested {
			suggested = append(suggested, windows[i])
		}
	}
	return suggested
}
