package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/akarsh286/Syncpad/internal/app/orch"
	"github.com/akarsh286/Syncpad/internal/config"
	"github.com/akarsh286/Syncpad/internal/core"
	"github.com/akarsh286/Syncpad/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	Orch *orch.Orchestrator

	upgrader   websocket.Upgrader
	readLimit  int64
	pingPeriod time.Duration
}

func NewController(o *orch.Orchestrator, cfg *config.Config) *Controller {
	allowed := cfg.AllowedOrigin
	return &Controller{
		Orch: o,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if allowed == "" {
					return true
				}
				return r.Header.Get("Origin") == allowed
			},
		},
		readLimit:  cfg.ReadLimit,
		pingPeriod: cfg.PingPeriod,
	}
}

// wsSignalConn wraps a websocket with a buffered outbound channel.
// TrySend never blocks: a saturated or closed connection reports an
// error and the caller drops the frame.
type wsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *wsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

// HandleSignal upgrades the request and starts the connection's pumps.
// The participant identity is generated here and lives exactly as long
// as the websocket.
func (ctl *Controller) HandleSignal(ctx context.Context, c *gin.Context) {
	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	cid := domain.ConnID(uuid.NewString())
	conn := &wsSignalConn{
		conn: ws,
		send: make(chan core.Frame, 32),
	}

	ctx, cancel := context.WithCancel(ctx)
	p, err := ctl.Orch.Connect(cid, conn, cancel)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("cid", string(cid)).Msg("connect rejected")
		cancel()
		conn.Close()
		return
	}
	log.Info().Str("module", "signal").Str("cid", string(cid)).Str("username", p.Username).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cid, conn)
}
