package orch

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/domain"
)

// RelayOffer forwards an SDP offer to the addressed connection, stamped
// with the sender's id. The payload is opaque to this layer.
func (o *Orchestrator) RelayOffer(from, to domain.ConnID, sdp string) {
	o.relay(to, sdpMsg{Type: MsgOffer, SDP: sdp, From: from})
}

// RelayAnswer forwards an SDP answer to the addressed connection.
func (o *Orchestrator) RelayAnswer(from, to domain.ConnID, sdp string) {
	o.relay(to, sdpMsg{Type: MsgAnswer, SDP: sdp, From: from})
}

// RelayCandidate forwards an ICE candidate, uninterpreted, to the
// addressed connection.
func (o *Orchestrator) RelayCandidate(from, to domain.ConnID, candidate json.RawMessage) {
	o.relay(to, candidateMsg{Type: MsgICECandidate, Candidate: candidate, From: from})
}

// relay delivers a directed envelope once, fire-and-forget. A target that
// is not currently connected means a silent drop: the peer negotiation
// simply times out on the sender's side.
func (o *Orchestrator) relay(to domain.ConnID, msg any) {
	frame, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Str("module", "orch").Msg("marshal signaling message")
		return
	}
	if !o.deliver(to, frame) {
		log.Debug().Str("module", "orch").Str("to", string(to)).Msg("signaling target not connected, dropped")
	}
}
