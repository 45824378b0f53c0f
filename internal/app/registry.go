package app

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

// ErrAlreadyRegistered signals a duplicate connection id. It should not
// occur under correct lifecycle use.
var ErrAlreadyRegistered = errors.New("connection already registered")

type connEntry struct {
	Participant *domain.Participant
	Signal      core.SignalConnection
	Cancel      context.CancelFunc
}

// Registry exclusively owns participant records, keyed by connection id.
// It also binds each connection's signal transport so routers can resolve
// a live connection at delivery time.
type Registry struct {
	mu    sync.RWMutex
	conns map[domain.ConnID]*connEntry
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[domain.ConnID]*connEntry)}
}

// Register creates a participant with a generated display identity and
// binds the connection's transport.
func (r *Registry) Register(cid domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) (*domain.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.conns[cid]; ok {
		return nil, ErrAlreadyRegistered
	}
	p := domain.NewParticipant(cid)
	r.conns[cid] = &connEntry{Participant: p, Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Str("username", p.Username).Msg("registered connection")
	return p, nil
}

func (r *Registry) Lookup(cid domain.ConnID) (*domain.Participant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[cid]; ok {
		return e.Participant, true
	}
	return nil, false
}

// Signal resolves the live transport for a connection, if any.
func (r *Registry) Signal(cid domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.conns[cid]; ok {
		return e.Signal, true
	}
	return nil, false
}

// Unregister removes the record. It is a no-op for unknown ids.
func (r *Registry) Unregister(cid domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, cid)
	log.Info().Str("module", "app.registry").Str("cid", string(cid)).Msg("unregistered connection")
}

// Cancel stops the connection's pumps via the bound cancel func.
func (r *Registry) Cancel(cid domain.ConnID) bool {
	r.mu.RLock()
	e, ok := r.conns[cid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}
