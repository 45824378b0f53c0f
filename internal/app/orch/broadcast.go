package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

// CodeChange fans the buffer content out to every member of the room
// except the sender. Delivery is best-effort: members whose connection is
// gone or saturated are skipped, membership correction happens on their
// own disconnect path. Concurrent edits resolve last-writer-wins on the
// clients.
func (o *Orchestrator) CodeChange(from domain.ConnID, room domain.RoomID, code string) {
	frame, err := json.Marshal(receiveCodeMsg{Type: MsgReceiveCode, Code: code})
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal receive_code")
		return
	}

	sent := 0
	for _, cid := range o.Rooms.Members(room) {
		if cid == from {
			continue
		}
		if o.deliver(cid, frame) {
			sent++
		}
	}
	log.Debug().Str("module", "orch").Str("room", string(room)).Str("from", string(from)).Int("sent_to", sent).Msg("code change relayed")
}

// broadcastRoster recomputes the room's member list and delivers it to
// every current member, the trigger included, so late joiners see
// themselves.
func (o *Orchestrator) broadcastRoster(room domain.RoomID) {
	members := o.Rooms.Members(room)
	roster := make([]core.RosterEntry, 0, len(members))
	for _, cid := range members {
		p, ok := o.Registry.Lookup(cid)
		if !ok {
			continue
		}
		roster = append(roster, core.RosterEntry{ID: p.ID, Username: p.Username, Color: p.Color})
	}

	frame, err := json.Marshal(roomUpdateMsg{Type: MsgRoomUpdate, Members: roster})
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal room_update")
		return
	}
	for _, cid := range members {
		o.deliver(cid, frame)
	}
	log.Debug().Str("module", "orch").Str("room", string(room)).Int("members", len(roster)).Msg("roster broadcast")
}

// deliver sends to the subset of addressees that resolve to a live
// connection at delivery time. Stale or saturated targets are dropped.
func (o *Orchestrator) deliver(cid domain.ConnID, frame core.Frame) bool {
	sig, ok := o.Registry.Signal(cid)
	if !ok {
		return false
	}
	if err := sig.TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "orch").Str("cid", string(cid)).Msg("dropped frame")
		return false
	}
	return true
}
