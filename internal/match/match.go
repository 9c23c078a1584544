// Package match decides whether a detected frontmost application
// identifier corresponds to a capture source's configured target.
//
// Identifiers vary by platform: bundle IDs on macOS
// ("com.microsoft.VSCode"), executable names on Windows ("Code.exe"),
// WM_CLASS values on X11 ("code"). Target values stored in capture source
// settings vary too (window titles, classes, executable names), so the
// comparison is deliberately permissive.
package match

import "strings"

// Matches reports whether frontmost and target identify the same
// application. Rules are applied in order, first hit wins:
//
//  1. case-insensitive equality
//  2. case-insensitive substring containment, either direction
//  3. same as 2 after stripping a trailing ".exe" from either side
//
// An empty value on either side never matches.
func Matches(frontmost, target string) bool {
	if frontmost == "" || target == "" {
		return false
	}

	f := strings.ToLower(frontmost)
	t := strings.ToLower(target)

	if f == t {
		return true
	}
	if strings.Contains(f, t) || strings.Contains(t, f) {
		return true
	}

	// Windows reports executable names ("Code.exe") while targets often
	// carry the bare application name embedded in a title.
	fs := strings.TrimSuffix(f, ".exe")
	ts := strings.TrimSuffix(t, ".exe")
	if fs == f && ts == t {
		return false
	}
	return fs == ts || strings.Contains(fs, ts) || strings.Contains(ts, fs)
}
