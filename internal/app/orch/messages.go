package orch

import (
	"encoding/json"

	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

// Outbound message types.
const (
	MsgReceiveCode  = "receive_code"
	MsgRoomUpdate   = "room_update"
	MsgOffer        = "webrtc_offer"
	MsgAnswer       = "webrtc_answer"
	MsgICECandidate = "webrtc_ice_candidate"
)

type receiveCodeMsg struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

type roomUpdateMsg struct {
	Type    string             `json:"type"`
	Members []core.RosterEntry `json:"members"`
}

type sdpMsg struct {
	Type string        `json:"type"`
	SDP  string        `json:"sdp"`
	From domain.ConnID `json:"from"`
}

type candidateMsg struct {
	Type      string          `json:"type"`
	Candidate json.RawMessage `json:"candidate"`
	From      domain.ConnID   `json:"from"`
}
