// Package tracking maintains the live hooked/active state of window
// capture sources: a bounded registry mutated by host lifecycle events
// and a polling loop that matches the frontmost application against each
// source's configured target.
package tracking

import (
	"sync"
)

// DefaultCapacity bounds the registry when no capacity is configured.
const DefaultCapacity = 64

// SourceState is the externally visible state of one tracked source.
type SourceState struct {
	Name      string `json:"name"`
	TargetApp string `json:"target_app"`
	Hooked    bool   `json:"hooked"`
	Active    bool   `json:"active"`
}

type entry struct {
	name      string
	targetApp string
	hooked    bool
	active    bool
	inUse     bool
}

// Registry is a bounded table of tracked sources keyed by name. Entries
// are soft-deleted: removal tombstones the slot and a later upsert may
// reuse it. Once every slot is taken the registry silently stops
// accepting new sources; the host object model remains the source of
// truth, so an untracked source is a degraded indicator, not a failure.
type Registry struct {
	mu       sync.Mutex
	entries  []entry
	capacity int
}

// NewRegistry creates an empty registry with the given capacity.
// Non-positive capacities fall back to DefaultCapacity.
func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		entries:  make([]entry, 0, capacity),
		capacity: capacity,
	}
}

// Upsert finds or creates the entry for name, setting its target and
// active flags and resetting hooked. Returns false when the registry is
// full and the source cannot be tracked.
func (r *Registry) Upsert(name, targetApp string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e := r.findLocked(name); e != nil {
		e.targetApp = targetApp
		e.active = active
		e.hooked = false
		return true
	}

	// Reuse a tombstoned slot before growing toward capacity.
	for i := range r.entries {
		if !r.entries[i].inUse {
			r.entries[i] = entry{
				name:      name,
				targetApp: targetApp,
				active:    active,
				inUse:     true,
			}
			return true
		}
	}

	if len(r.entries) >= r.capacity {
		return false
	}
	r.entries = append(r.entries, entry{
		name:      name,
		targetApp: targetApp,
		active:    active,
		inUse:     true,
	})
	return true
}

// Remove tombstones the entry for name; no-op if absent.
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e := r.findLocked(name); e != nil {
		e.inUse = false
	}
}

// SetActive updates the active flag for name; no-op if untracked.
func (r *Registry) SetActive(name string, active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e := r.findLocked(name); e != nil {
		e.active = active
	}
}

// Contains reports whether name is currently tracked.
func (r *Registry) Contains(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.findLocked(name) != nil
}

// Rehook recomputes every entry's hooked flag via eval and returns the
// aggregate before and after the pass. The whole pass runs under one lock
// acquisition; eval must not block.
func (r *Registry) Rehook(eval func(name, targetApp string) bool) (before, after bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before = r.anyHookedLocked()
	for i := range r.entries {
		if !r.entries[i].inUse {
			continue
		}
		r.entries[i].hooked = eval(r.entries[i].name, r.entries[i].targetApp)
	}
	after = r.anyHookedLocked()
	return before, after
}

// Snapshot returns all tracked sources in table order together with the
// aggregate, computed under the same lock acquisition so the two are
// always consistent.
func (r *Registry) Snapshot() ([]SourceState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make([]SourceState, 0, len(r.entries))
	for i := range r.entries {
		if !r.entries[i].inUse {
			continue
		}
		states = append(states, SourceState{
			Name:      r.entries[i].name,
			TargetApp: r.entries[i].targetApp,
			Hooked:    r.entries[i].hooked,
			Active:    r.entries[i].active,
		})
	}
	return states, r.anyHookedLocked()
}

// AnyHooked returns the current aggregate.
func (r *Registry) AnyHooked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.anyHookedLocked()
}

// Clear drops every entry. Called at shutdown after the polling loop has
// been joined.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = r.entries[:0]
}

func (r *Registry) findLocked(name string) *entry {
	for i := range r.entries {
		if r.entries[i].inUse && r.entries[i].name == name {
			return &r.entries[i]
		}
	}
	return nil
}

func (r *Registry) anyHookedLocked() bool {
	for i := range r.entries {
		if !r.entries[i].inUse {
			continue
		}
		if r.entries[i].hooked && r.entries[i].active {
			return true
		}
	}
	return false
}
