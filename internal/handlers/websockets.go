package handlers

import (
	"net/http"
	"time"

	"campervan_catalog/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12 // 4 KB

	msgTypeView = "view"
)

// Envelope used for WebSocket messages. HTML is the rendered list fragment.
type wsEnvelope struct {
	Type  string        `json:"type"`
	Data  *catalog.View `json:"data,omitempty"`
	HTML  string        `json:"html,omitempty"`
	Error string        `json:"error,omitempty"`
}

// Same-origin pages only; the token is the real gate.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      View stream
// @Description  Sends the current view, then one message per state or filter change
// @Tags         session
// @Param        token  query  string  true  "Session token"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Failure      410  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	sess, code, msg := h.resolveSession(c.Query("token"))
	if sess == nil {
		c.JSON(code, gin.H{"error": msg})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	// Subscribe before the first send so no change slips between them.
	updates, cancel := sess.Subscribe()
	defer cancel()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := h.sendView(conn, sess.View()); err != nil {
		if h.log != nil {
			h.log.Infow("ws_write_failed_initial", "session", sess.ID, "err", err)
		}
		return
	}

	for {
		select {
		case <-done:
			return
		case <-c.Request.Context().Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case v, ok := <-updates:
			if !ok {
				// session expired
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, errSessionGone))
				return
			}
			if err := h.sendView(conn, v); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "session", sess.ID, "err", err)
				}
				return
			}
		}
	}
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Debugw("ws_read_closed", "err", err)
			}
			return
		}
	}
}

// sendView writes one view with its rendered fragment under a write deadline.
func (h *Handler) sendView(conn *websocket.Conn, v catalog.View) error {
	html, err := h.renderList(v)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_render_failed", "err", err)
		}
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(wsEnvelope{Type: msgTypeView, Data: &v, HTML: html})
}
