package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/vmoranv/pokebattle/internal/constants"
	"github.com/vmoranv/pokebattle/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The stream is read-only public battle data; origins are not checked.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHub fan-outs resolved turn logs to websocket subscribers, keyed
// by battle UUID.
type StreamHub struct {
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]bool
}

func NewStreamHub() *StreamHub {
	return &StreamHub{subs: make(map[string]map[*websocket.Conn]bool)}
}

func (hub *StreamHub) subscribe(battleUUID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if hub.subs[battleUUID] == nil {
		hub.subs[battleUUID] = make(map[*websocket.Conn]bool)
	}
	hub.subs[battleUUID][conn] = true
}

func (hub *StreamHub) unsubscribe(battleUUID string, conn *websocket.Conn) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if conns := hub.subs[battleUUID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(hub.subs, battleUUID)
		}
	}
}

// Publish sends the payload to every subscriber of the battle. Dead
// connections are dropped.
func (hub *StreamHub) Publish(battleUUID string, payload interface{}) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for conn := range hub.subs[battleUUID] {
		if err := conn.WriteJSON(payload); err != nil {
			conn.Close()
			delete(hub.subs[battleUUID], conn)
		}
	}
}

// StreamBattle upgrades the connection and streams each resolved turn
// log for the battle until the client disconnects.
func (h *BattleHandler) StreamBattle(c *gin.Context) {
	battleUUID := c.Param("battleUUID")
	if _, err := h.repo.GetBattleByUUID(battleUUID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: battleUUID})
		return
	}
	h.hub.subscribe(battleUUID, conn)
	logging.Debug("stream subscriber attached", logging.Fields{constants.LogFieldBattleID: battleUUID})

	// Clients do not send data; the read loop only detects the close.
	go func() {
		defer func() {
			h.hub.unsubscribe(battleUUID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
