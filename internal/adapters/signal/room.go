package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/domain"
)

func (ctl *Controller) handleJoinRoom(cid domain.ConnID, data []byte) {
	var p struct {
		Type string `json:"type"`
		Room string `json:"room"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad join_room payload")
		return
	}
	if p.Room == "" || len(p.Room) > domain.MaxRoomIDLen {
		log.Warn().Str("module", "signal").Str("cid", string(cid)).Msg("join_room with invalid room id")
		return
	}

	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("room", p.Room).Msg("join_room")
	ctl.Orch.JoinRoom(cid, domain.RoomID(p.Room))
}

func (ctl *Controller) handleCodeChange(cid domain.ConnID, data []byte) {
	var p struct {
		Type string `json:"type"`
		Room string `json:"room"`
		Code string `json:"code"`
	}
	if err := json.Unmarshal(data, &p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Msg("bad code_change payload")
		return
	}
	if p.Room == "" {
		log.Warn().Str("module", "signal").Str("cid", string(cid)).Msg("code_change without room")
		return
	}

	ctl.Orch.CodeChange(cid, domain.RoomID(p.Room), p.Code)
}
