package bridge

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks the live host per session so other parts of the
// server can push frames to a connected surface. At most one surface
// per session; a newer connection evicts the older host.
type Registry struct {
	mu    sync.RWMutex
	hosts map[uuid.UUID]*Host
}

func NewRegistry() *Registry {
	return &Registry{hosts: map[uuid.UUID]*Host{}}
}

// Register installs the host and returns the one it displaced, if any.
func (r *Registry) Register(h *Host) *Host {
	r.mu.Lock()
	defer r.mu.Unlock()
	old := r.hosts[h.sessionID]
	r.hosts[h.sessionID] = h
	return old
}

// Unregister removes the host only if it is still the current one.
func (r *Registry) Unregister(h *Host) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hosts[h.sessionID] == h {
		delete(r.hosts, h.sessionID)
	}
}

// Get returns the live host for a session, nil when no surface is
// connected.
func (r *Registry) Get(sessionID uuid.UUID) *Host {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.hosts[sessionID]
}

// RequestSubmit asks the surface connected to a session, when one is,
// to flush its current drawing. Absent surfaces are fine.
func (r *Registry) RequestSubmit(ctx context.Context, sessionID uuid.UUID) {
	if h := r.Get(sessionID); h != nil {
		h.RequestSubmit(ctx)
	}
}

// ClearAnswer tells the surface connected to a session, when one is, to
// wipe its canvas.
func (r *Registry) ClearAnswer(ctx context.Context, sessionID uuid.UUID) {
	if h := r.Get(sessionID); h != nil {
		h.ClearAnswer(ctx)
	}
}
