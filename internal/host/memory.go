package host

import (
	"fmt"
	"sort"
	"sync"

	"github.com/p-doom/crowd-cast/internal/logger"
)

// memSource is a source held by the in-memory model. Field access goes
// through the owning model's lock.
type memSource struct {
	model    *Memory
	name     string
	typeID   string
	settings map[string]string
	active   bool
}

func (s *memSource) Name() string   { return s.name }
func (s *memSource) TypeID() string { return s.typeID }

func (s *memSource) Active() bool {
	s.model.mu.RLock()
	defer s.model.mu.RUnlock()
	return s.active
}

func (s *memSource) Setting(key string) string {
	s.model.mu.RLock()
	defer s.model.mu.RUnlock()
	return s.settings[key]
}

// Memory is a thread-safe in-memory source model. It stands in for a
// full host application: externally driven source creation and
// activation flow through it and out to subscribers as lifecycle events.
type Memory struct {
	mu       sync.RWMutex
	sources  map[string]*memSource
	order    []string
	handlers map[int]Handler
	nextID   int
}

// NewMemory creates an empty in-memory source model.
func NewMemory() *Memory {
	return &Memory{
		sources:  make(map[string]*memSource),
		handlers: make(map[int]Handler),
	}
}

// Enumerate visits sources in creation order.
func (m *Memory) Enumerate(visit func(Source) bool) {
	m.mu.RLock()
	srcs := make([]*memSource, 0, len(m.order))
	for _, name := range m.order {
		if s, ok := m.sources[name]; ok {
			srcs = append(srcs, s)
		}
	}
	m.mu.RUnlock()

	for _, s := range srcs {
		if !visit(s) {
			return
		}
	}
}

// Subscribe registers a lifecycle handler.
func (m *Memory) Subscribe(h Handler) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.handlers[id] = h
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.handlers, id)
		m.mu.Unlock()
	}
}

// CreateSource creates a new source. New sources start active, matching
// hosts that add created capture sources straight to a rendered scene.
func (m *Memory) CreateSource(typeID, name string, settings map[string]string) (Source, error) {
	if name == "" {
		return nil, fmt.Errorf("source name must not be empty")
	}

	m.mu.Lock()
	if _, exists := m.sources[name]; exists {
		m.mu.Unlock()
		return nil, fmt.Errorf("source %q already exists", name)
	}

	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}
	s := &memSource{
		model:    m,
		name:     name,
		typeID:   typeID,
		settings: copied,
		active:   true,
	}
	m.sources[name] = s
	m.order = append(m.order, name)
	m.mu.Unlock()

	logger.WithComponent("host").Debug().
		Str("name", name).
		Str("type", typeID).
		Msg("Source created")

	m.emit(Event{Kind: SourceCreated, Source: s})
	return s, nil
}

// RemoveSource removes a source by name; no-op if absent.
func (m *Memory) RemoveSource(name string) {
	m.mu.Lock()
	s, ok := m.sources[name]
	if ok {
		delete(m.sources, name)
		for i, n := range m.order {
			if n == name {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if ok {
		m.emit(Event{Kind: SourceRemoved, Source: s})
	}
}

// SetActive flips a source's active flag, emitting the matching
// lifecycle event on a true transition.
func (m *Memory) SetActive(name string, active bool) {
	m.mu.Lock()
	s, ok := m.sources[name]
	changed := ok && s.active != active
	if changed {
		s.active = active
	}
	m.mu.Unlock()

	if !changed {
		return
	}
	kind := SourceDeactivated
	if active {
		kind = SourceActivated
	}
	m.emit(Event{Kind: kind, Source: s})
}

// SourceByName looks up a source by name.
func (m *Memory) SourceByName(name string) (Source, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sources[name]
	return s, ok
}

func (m *Memory) emit(ev Event) {
	m.mu.RLock()
	ids := make([]int, 0, len(m.handlers))
	for id := range m.handlers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	handlers := make([]Handler, 0, len(ids))
	for _, id := range ids {
		handlers = append(handlers, m.handlers[id])
	}
	m.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
