package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDetector is a settable frontmost detector for tests.
type fakeDetector struct {
	mu sync.Mutex
	id string
	ok bool
}

func (f *fakeDetector) Detect() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id, f.ok
}

func (f *fakeDetector) Name() string { return "fake" }
func (f *fakeDetector) Close() error { return nil }

func (f *fakeDetector) set(id string, ok bool) {
	f.mu.Lock()
	f.id = id
	f.ok = ok
	f.mu.Unlock()
}

// recorder collects aggregate notifications.
type recorder struct {
	mu     sync.Mutex
	values []bool
}

func (rec *recorder) notify(anyHooked bool) {
	rec.mu.Lock()
	rec.values = append(rec.values, anyHooked)
	rec.mu.Unlock()
}

func (rec *recorder) snapshot() []bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	out := make([]bool, len(rec.values))
	copy(out, rec.values)
	return out
}

func TestPollerAutomaticEdgeNotifications(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("cap", "firefox", true)

	det := &fakeDetector{}
	rec := &recorder{}
	p := NewPoller(reg, det, true, DefaultInterval, rec.notify)
	require.Equal(t, ModeAutomatic, p.Mode())

	// Nothing frontmost: no edge.
	p.tick()
	assert.Empty(t, rec.snapshot())

	// Target comes frontmost: one true edge.
	det.set("firefox", true)
	p.tick()
	assert.Equal(t, []bool{true}, rec.snapshot())

	// Ten more ticks with unchanged state: still one notification.
	for i := 0; i < 10; i++ {
		p.tick()
	}
	assert.Equal(t, []bool{true}, rec.snapshot())

	// Focus moves away: one false edge.
	det.set("emacs", true)
	p.tick()
	assert.Equal(t, []bool{true, false}, rec.snapshot())
}

func TestPollerDetectionFailureClearsHooked(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("cap", "firefox", true)

	det := &fakeDetector{}
	det.set("firefox", true)
	p := NewPoller(reg, det, true, DefaultInterval, nil)

	p.tick()
	states, any := reg.Snapshot()
	require.True(t, states[0].Hooked)
	require.True(t, any)

	// Detector outage must not leave a stale hooked flag behind.
	det.set("", false)
	p.tick()
	states, any = reg.Snapshot()
	assert.False(t, states[0].Hooked)
	assert.False(t, any)
}

func TestPollerEmptyTargetNeverHooks(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("cap", "", true)

	det := &fakeDetector{}
	det.set("firefox", true)
	p := NewPoller(reg, det, true, DefaultInterval, nil)

	p.tick()
	states, _ := reg.Snapshot()
	assert.False(t, states[0].Hooked)
}

func TestPollerManualMode(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("a", "firefox", true)
	reg.Upsert("b", "", true)

	rec := &recorder{}
	p := NewPoller(reg, nil, false, DefaultInterval, rec.notify)
	require.Equal(t, ModeManual, p.Mode())
	require.True(t, p.CaptureEnabled(), "manual override defaults to enabled")

	// Manual mode hooks every entry, configured target or not.
	p.tick()
	states, any := reg.Snapshot()
	assert.True(t, states[0].Hooked)
	assert.True(t, states[1].Hooked)
	assert.True(t, any)
	assert.Equal(t, []bool{true}, rec.snapshot())

	// Toggle off: notification raised synchronously, before any tick.
	enabled, mode := p.SetCaptureEnabled(false)
	assert.False(t, enabled)
	assert.Equal(t, ModeManual, mode)
	assert.Equal(t, []bool{true, false}, rec.snapshot())

	states, any = reg.Snapshot()
	assert.False(t, states[0].Hooked)
	assert.False(t, any)

	// The next tick sees no further change and stays quiet.
	p.tick()
	assert.Equal(t, []bool{true, false}, rec.snapshot())
}

func TestPollerManualOverrideIgnoredInAutomaticMode(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("cap", "firefox", true)

	det := &fakeDetector{}
	rec := &recorder{}
	p := NewPoller(reg, det, true, DefaultInterval, rec.notify)

	enabled, mode := p.SetCaptureEnabled(true)
	assert.True(t, enabled)
	assert.Equal(t, ModeAutomatic, mode)
	assert.Empty(t, rec.snapshot(), "no aggregate change, no notification")

	_, any := reg.Snapshot()
	assert.False(t, any)
}

func TestPollerStartStop(t *testing.T) {
	reg := NewRegistry(8)
	reg.Upsert("cap", "firefox", true)

	det := &fakeDetector{}
	det.set("firefox", true)

	notified := make(chan bool, 1)
	p := NewPoller(reg, det, true, 5*time.Millisecond, func(any bool) {
		select {
		case notified <- any:
		default:
		}
	})

	p.Start()
	select {
	case any := <-notified:
		assert.True(t, any)
	case <-time.After(2 * time.Second):
		t.Fatal("no notification from running poll loop")
	}
	p.Stop()

	// After Stop returns, the loop is joined and no further tick runs.
	reg.Clear()
	time.Sleep(20 * time.Millisecond)
	states, _ := reg.Snapshot()
	assert.Empty(t, states)
}
