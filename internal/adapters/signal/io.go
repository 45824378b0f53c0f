package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/domain"
)

const writeDeadline = 5 * time.Second

func (ctl *Controller) writePump(ctx context.Context, c *wsSignalConn) {
	ping := time.NewTicker(ctl.pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("module", "signal").Msg("writePump ctx done")
			return
		case <-ping.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug().Err(err).Str("module", "signal").Msg("writePump ping failed")
				return
			}
		case data, ok := <-c.send:
			if !ok {
				log.Debug().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeDeadline)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

// readPump owns the inbound side. Every frame is handled to completion
// before the next one is read, so events from one connection apply in
// transport order. When the read loop ends, for any reason, the
// connection goes through the single disconnect path.
func (ctl *Controller) readPump(ctx context.Context, cid domain.ConnID, c *wsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("cid", string(cid)).Msg("readPump closing")
		ctl.Orch.Disconnect(cid)
		c.Close()
	}()

	c.conn.SetReadLimit(ctl.readLimit)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Error().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("readPump read error")
				}
				return
			}
			ctl.handleFrame(cid, data)
		}
	}
}

// handleFrame dispatches an inbound envelope on its type. Malformed or
// unknown frames are logged and dropped, never fatal.
func (ctl *Controller) handleFrame(cid domain.ConnID, data []byte) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("bad json")
		return
	}

	switch env.Type {
	case "join_room":
		ctl.handleJoinRoom(cid, data)
	case "code_change":
		ctl.handleCodeChange(cid, data)
	case "webrtc_offer":
		ctl.handleOffer(cid, data)
	case "webrtc_answer":
		ctl.handleAnswer(cid, data)
	case "webrtc_ice_candidate":
		ctl.handleCandidate(cid, data)
	default:
		log.Warn().Str("module", "signal").Str("type", env.Type).Msg("unknown message type")
	}
}
