package core

import "github.com/akarsh286/Syncpad/internal/domain"

// Frame is a marshaled outbound message.
type Frame []byte

// SignalConnection abstracts a system messaging transport.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// RosterEntry is a read-only view of a room member for clients
// (no transport fields).
type RosterEntry struct {
	ID       domain.ConnID `json:"id"`
	Username string        `json:"username"`
	Color    string        `json:"color"`
}
