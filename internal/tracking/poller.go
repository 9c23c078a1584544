package tracking

import (
	"sync/atomic"
	"time"

	"github.com/p-doom/crowd-cast/internal/frontmost"
	"github.com/p-doom/crowd-cast/internal/logger"
	"github.com/p-doom/crowd-cast/internal/match"
)

// DefaultInterval is the poll tick interval.
const DefaultInterval = 200 * time.Millisecond

// Mode selects how hooked flags are computed.
type Mode string

const (
	// ModeAutomatic derives hooked flags from frontmost detection
	ModeAutomatic Mode = "automatic"
	// ModeManual derives hooked flags from the caller-set override flag
	ModeManual Mode = "manual"
)

// Notifier receives the new aggregate value whenever it flips.
type Notifier func(anyHooked bool)

// Poller recomputes hooked flags for every registry entry on a fixed
// interval. The mode is latched at construction from detector capability
// and does not change for the process lifetime.
type Poller struct {
	reg      *Registry
	det      frontmost.Detector
	mode     Mode
	interval time.Duration
	notify   Notifier

	// manual override flag, consulted only in ModeManual. Defaults to
	// enabled so untracked platforms report capture as on until an
	// operator says otherwise.
	manual atomic.Bool

	stop chan struct{}
	done chan struct{}
}

// NewPoller creates a poller over reg. When automatic is false the
// detector is never consulted and hooked flags follow the manual
// override flag.
func NewPoller(reg *Registry, det frontmost.Detector, automatic bool, interval time.Duration, notify Notifier) *Poller {
	if det == nil {
		det = frontmost.Unavailable()
		automatic = false
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	mode := ModeManual
	if automatic {
		mode = ModeAutomatic
	}

	p := &Poller{
		reg:      reg,
		det:      det,
		mode:     mode,
		interval: interval,
		notify:   notify,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	p.manual.Store(true)
	return p
}

// Mode returns the latched polling mode.
func (p *Poller) Mode() Mode {
	return p.mode
}

// Start launches the polling goroutine.
func (p *Poller) Start() {
	logger.WithComponent("poller").Info().
		Str("mode", string(p.mode)).
		Dur("interval", p.interval).
		Msg("Polling loop started")
	go p.run()
}

// Stop signals the polling goroutine and waits for it to finish. A tick
// in flight completes first, so shutdown latency is bounded by one
// interval.
func (p *Poller) Stop() {
	close(p.stop)
	<-p.done
	logger.WithComponent("poller").Info().Msg("Polling loop stopped")
}

func (p *Poller) run() {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.tick()
		}
	}
}

// tick recomputes every hooked flag and raises a notification if the
// aggregate flipped. Detection happens before the registry lock is
// taken; only the resolved identifier crosses into the locked pass.
func (p *Poller) tick() {
	var before, after bool

	if p.mode == ModeManual {
		enabled := p.manual.Load()
		before, after = p.reg.Rehook(func(string, string) bool {
			return enabled
		})
	} else {
		id, ok := p.det.Detect()
		before, after = p.reg.Rehook(func(_, target string) bool {
			if !ok {
				return false
			}
			return match.Matches(id, target)
		})
	}

	if before != after {
		logger.WithComponent("poller").Info().
			Bool("any_hooked", after).
			Msg("Capture state changed")
		p.emit(after)
	}
}

// SetCaptureEnabled stores the manual override flag. In manual mode the
// hooked flags are recomputed and a notification raised before this
// returns, so operator toggles feel instantaneous; in automatic mode the
// flag is stored but has no effect on the aggregate.
func (p *Poller) SetCaptureEnabled(enabled bool) (bool, Mode) {
	p.manual.Store(enabled)

	if p.mode == ModeManual {
		_, after := p.reg.Rehook(func(string, string) bool {
			return enabled
		})
		p.emit(after)
	}

	logger.WithComponent("poller").Info().
		Bool("enabled", enabled).
		Str("mode", string(p.mode)).
		Msg("Manual capture override set")
	return enabled, p.mode
}

// CaptureEnabled returns the manual override flag.
func (p *Poller) CaptureEnabled() bool {
	return p.manual.Load()
}

func (p *Poller) emit(anyHooked bool) {
	if p.notify != nil {
		p.notify(anyHooked)
	}
}
