package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCreateSource(t *testing.T) {
	m := NewMemory()

	src, err := m.CreateSource(TypeXComposite, "cap-1", map[string]string{
		"capture_window": "firefox",
	})
	require.NoError(t, err)

	assert.Equal(t, "cap-1", src.Name())
	assert.Equal(t, TypeXComposite, src.TypeID())
	assert.True(t, src.Active(), "new sources start active")
	assert.Equal(t, "firefox", src.Setting("capture_window"))
	assert.Equal(t, "", src.Setting("missing"))

	_, err = m.CreateSource(TypeXComposite, "cap-1", nil)
	assert.Error(t, err, "duplicate names must be rejected")

	_, err = m.CreateSource(TypeXComposite, "", nil)
	assert.Error(t, err)
}

func TestMemoryLifecycleEvents(t *testing.T) {
	m := NewMemory()

	var events []Event
	cancel := m.Subscribe(func(ev Event) {
		events = append(events, ev)
	})
	defer cancel()

	_, err := m.CreateSource(TypeWindowCaptureWin32, "cap-1", nil)
	require.NoError(t, err)
	m.SetActive("cap-1", false)
	m.SetActive("cap-1", false) // no transition, no event
	m.SetActive("cap-1", true)
	m.RemoveSource("cap-1")
	m.RemoveSource("cap-1") // idempotent

	require.Len(t, events, 4)
	assert.Equal(t, SourceCreated, events[0].Kind)
	assert.Equal(t, SourceDeactivated, events[1].Kind)
	assert.Equal(t, SourceActivated, events[2].Kind)
	assert.Equal(t, SourceRemoved, events[3].Kind)
	for _, ev := range events {
		assert.Equal(t, "cap-1", ev.Source.Name())
	}
}

func TestMemorySubscribeCancel(t *testing.T) {
	m := NewMemory()

	count := 0
	cancel := m.Subscribe(func(Event) { count++ })

	_, err := m.CreateSource(TypeXComposite, "a", nil)
	require.NoError(t, err)
	cancel()
	_, err = m.CreateSource(TypeXComposite, "b", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, count)
}

func TestMemoryEnumerateOrder(t *testing.T) {
	m := NewMemory()
	for _, name := range []string{"a", "b", "c"} {
		_, err := m.CreateSource(TypeXComposite, name, nil)
		require.NoError(t, err)
	}
	m.RemoveSource("b")

	var names []string
	m.Enumerate(func(s Source) bool {
		names = append(names, s.Name())
		return true
	})
	assert.Equal(t, []string{"a", "c"}, names)
}

func TestIsCaptureSourceType(t *testing.T) {
	assert.True(t, IsCaptureSourceType(TypeWindowCaptureWin32))
	assert.True(t, IsCaptureSourceType(TypeXComposite))
	assert.True(t, IsCaptureSourceType(TypePipeWire))
	assert.True(t, IsCaptureSourceType(TypeScreenCaptureKit))
	assert.True(t, IsCaptureSourceType("game_window_capture"))
	assert.False(t, IsCaptureSourceType("ffmpeg_source"))
}

func TestTargetSettingKey(t *testing.T) {
	assert.Equal(t, "application", TargetSettingKey(TypeScreenCaptureKit))
	assert.Equal(t, "capture_window", TargetSettingKey(TypeXComposite))
	assert.Equal(t, "window", TargetSettingKey(TypeWindowCaptureWin32))
	assert.Equal(t, "window", TargetSettingKey(TypePipeWire))
}
