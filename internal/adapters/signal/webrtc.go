package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/domain"
)

// The server never interprets SDP or candidate payloads: peers negotiate
// their voice link directly, this layer only forwards envelopes to the
// addressed connection.

type sdpPayload struct {
	Type string `json:"type"`
	To   string `json:"to"`
	SDP  string `json:"sdp"`
}

func (ctl *Controller) handleOffer(cid domain.ConnID, data []byte) {
	var p sdpPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad webrtc_offer payload")
		return
	}
	if p.To == "" {
		log.Warn().Str("module", "signal").Str("cid", string(cid)).Msg("webrtc_offer without recipient")
		return
	}
	ctl.Orch.RelayOffer(cid, domain.ConnID(p.To), p.SDP)
}

func (ctl *Controller) handleAnswer(cid domain.ConnID, data []byte) {
	var p sdpPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad webrtc_answer payload")
		return
	}
	if p.To == "" {
		log.Warn().Str("module", "signal").Str("cid", string(cid)).Msg("webrtc_answer without recipient")
		return
	}
	ctl.Orch.RelayAnswer(cid, domain.ConnID(p.To), p.SDP)
}

func (ctl *Controller) handleCandidate(cid domain.ConnID, data []byte) {
	var p struct {
		Type      string          `json:"type"`
		To        string          `json:"to"`
		Candidate json.RawMessage `json:"candidate"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad webrtc_ice_candidate payload")
		return
	}
	if p.To == "" {
		log.Warn().Str("module", "signal").Str("cid", string(cid)).Msg("webrtc_ice_candidate without recipient")
		return
	}
	ctl.Orch.RelayCandidate(cid, domain.ConnID(p.To), p.Candidate)
}
