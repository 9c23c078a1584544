package tracking

import (
	"time"

	"github.com/p-doom/crowd-cast/internal/frontmost"
	"github.com/p-doom/crowd-cast/internal/host"
	"github.com/p-doom/crowd-cast/internal/logger"
)

// Config configures a tracking Service.
type Config struct {
	// Detector resolves the frontmost application. Nil forces manual mode.
	Detector frontmost.Detector

	// Automatic enables detector-driven polling. False forces manual mode
	// regardless of Detector.
	Automatic bool

	// Interval is the poll tick interval; zero means DefaultInterval.
	Interval time.Duration

	// Capacity bounds the registry; zero means DefaultCapacity.
	Capacity int

	// OnChange receives the aggregate on every edge transition.
	OnChange Notifier
}

// Service owns the source registry and polling loop and keeps both in
// sync with the host object model's lifecycle events.
type Service struct {
	reg    *Registry
	poller *Poller
	model  host.Model
	cancel func()
}

// New creates a tracking service over the given host model.
func New(model host.Model, cfg Config) *Service {
	reg := NewRegistry(cfg.Capacity)
	return &Service{
		reg:    reg,
		poller: NewPoller(reg, cfg.Detector, cfg.Automatic, cfg.Interval, cfg.OnChange),
		model:  model,
	}
}

// Start enumerates the host's current sources, subscribes to its
// lifecycle events, and starts the polling loop.
func (s *Service) Start() {
	s.model.Enumerate(func(src host.Source) bool {
		s.register(src)
		return true
	})
	s.cancel = s.model.Subscribe(s.onEvent)
	s.poller.Start()
}

// Stop unsubscribes from the host, joins the polling loop, and clears
// the registry. The join happens before the clear so no tick observes a
// torn-down registry.
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.poller.Stop()
	s.reg.Clear()
}

// Snapshot returns the tracked sources and the aggregate, consistently.
func (s *Service) Snapshot() ([]SourceState, bool) {
	return s.reg.Snapshot()
}

// Mode returns the latched polling mode.
func (s *Service) Mode() Mode {
	return s.poller.Mode()
}

// SetCaptureEnabled applies the manual capture override.
func (s *Service) SetCaptureEnabled(enabled bool) (bool, Mode) {
	return s.poller.SetCaptureEnabled(enabled)
}

// onEvent applies one host lifecycle event to the registry. Events may
// arrive concurrently with each other and with poll ticks; each branch
// is a single short locked registry operation.
func (s *Service) onEvent(ev host.Event) {
	if ev.Source == nil {
		return
	}
	name := ev.Source.Name()
	if name == "" {
		return
	}

	switch ev.Kind {
	case host.SourceCreated:
		s.register(ev.Source)
	case host.SourceRemoved:
		s.reg.Remove(name)
	case host.SourceActivated:
		s.reg.SetActive(name, true)
	case host.SourceDeactivated:
		s.reg.SetActive(name, false)
	}
}

// register tracks a source if its type identifies it as a window capture
// source. Host introspection (type, settings, active flag) runs before
// the registry lock is taken, never under it.
func (s *Service) register(src host.Source) {
	typeID := src.TypeID()
	if !host.IsCaptureSourceType(typeID) {
		return
	}

	name := src.Name()
	if name == "" {
		return
	}
	target := src.Setting(host.TargetSettingKey(typeID))
	active := src.Active()

	if !s.reg.Upsert(name, target, active) {
		// Registry full: the source simply goes untracked.
		logger.WithComponent("tracking").Debug().
			Str("name", name).
			Msg("Registry at capacity, source not tracked")
		return
	}

	logger.WithComponent("tracking").Info().
		Str("name", name).
		Str("target_app", target).
		Bool("active", active).
		Msg("Tracking source")
}
