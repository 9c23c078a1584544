//go:build linux

package frontmost

import (
	"github.com/p-doom/crowd-cast/internal/logger"
)

// Probe selects the detection backend for this session. The second return
// value reports whether automatic detection is available; when false the
// caller must run in manual capture mode.
func Probe() (Detector, bool) {
	log := logger.WithComponent("frontmost")

	if IsWaylandSession() {
		log.Info().
			Bool("portal_present", ScreenCastPortalPresent()).
			Msg("Wayland session detected")
		logManualMode("wayland")
		return Unavailable(), false
	}

	det, err := NewX11Detector()
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize X11 detector")
		logManualMode("no X11 connection")
		return Unavailable(), false
	}

	log.Info().Str("backend", det.Name()).Msg("Frontmost detection enabled")
	return det, true
}
