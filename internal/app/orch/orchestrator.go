// Package orch coordinates connection lifecycle, room membership and
// message fan-out. All room and registry state is injected, never global.
package orch

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/app"
	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

type Orchestrator struct {
	Registry *app.Registry
	Rooms    *app.Directory
}

func New(reg *app.Registry, rooms *app.Directory) *Orchestrator {
	return &Orchestrator{Registry: reg, Rooms: rooms}
}

// Connect registers a new connection and returns its generated identity.
func (o *Orchestrator) Connect(cid domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) (*domain.Participant, error) {
	return o.Registry.Register(cid, sig, cancel)
}

// JoinRoom adds the connection to the room and rebroadcasts the roster to
// every member, including the joiner. A rejoin still re-emits the roster.
func (o *Orchestrator) JoinRoom(cid domain.ConnID, room domain.RoomID) {
	if _, ok := o.Registry.Lookup(cid); !ok {
		log.Warn().Str("module", "orch").Str("cid", string(cid)).Msg("join from unknown connection")
		return
	}
	o.Rooms.Join(room, cid)
	o.broadcastRoster(room)
}

// Disconnect runs the terminal cleanup path: the connection leaves every
// room it is in and the remaining members get a fresh roster, then the
// registry record is dropped. Roster broadcasts happen before unregister
// so the departing identity is still resolvable while they run.
func (o *Orchestrator) Disconnect(cid domain.ConnID) {
	for _, room := range o.Rooms.RoomsOf(cid) {
		o.Rooms.Leave(room, cid)
		o.broadcastRoster(room)
	}
	o.Registry.Cancel(cid)
	o.Registry.Unregister(cid)
	log.Info().Str("module", "orch").Str("cid", string(cid)).Msg("disconnected")
}

// RoomExists is a side-effect-free existence check for prospective joiners.
func (o *Orchestrator) RoomExists(room domain.RoomID) bool {
	return o.Rooms.Exists(room)
}
