//go:build !linux && !windows

package frontmost

// Probe selects the detection backend for this session. No detection
// backend exists for this platform, so the caller runs in manual capture
// mode.
func Probe() (Detector, bool) {
	logManualMode("unsupported platform")
	return Unavailable(), false
}
