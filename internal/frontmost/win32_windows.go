//go:build windows

package frontmost

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/p-doom/crowd-cast/internal/logger"
)

var (
	modUser32                    = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = modUser32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = modUser32.NewProc("GetWindowThreadProcessId")
)

// Win32Detector implements the Detector interface by resolving the
// foreground window's owning process and extracting its executable name.
type Win32Detector struct{}

// NewWin32Detector creates a Win32 foreground-window detector.
func NewWin32Detector() *Win32Detector {
	return &Win32Detector{}
}

// Name returns the backend name
func (d *Win32Detector) Name() string {
	return "win32"
}

// Close is a no-op; the Win32 backend holds no connection.
func (d *Win32Detector) Close() error {
	return nil
}

// Detect returns the executable name (e.g. "Code.exe") of the process
// owning the foreground window. Any failure along the way (no foreground
// window, process exited mid-query, access denied) yields ok=false.
func (d *Win32Detector) Detect() (string, bool) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return "", false
	}

	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return "", false
	}

	proc, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", false
	}
	defer windows.CloseHandle(proc)

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(proc, 0, &buf[0], &size); err != nil {
		return "", false
	}

	exe := filepath.Base(windows.UTF16ToString(buf[:size]))
	if exe == "" || exe == "." {
		return "", false
	}
	return exe, true
}

// Probe selects the detection backend for this session. Foreground-window
// tracking is always available on Windows.
func Probe() (Detector, bool) {
	det := NewWin32Detector()
	logger.WithComponent("frontmost").Info().
		Str("backend", det.Name()).
		Msg("Frontmost detection enabled")
	return det, true
}
