package cartControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans cart updates out to the websocket connections of one session
// (the header badge and the drawer both subscribe).
type Hub struct {
	mu    sync.Mutex
	conns map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) register(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[sessionID] == nil {
		h.conns[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.conns[sessionID][conn] = true
}

func (h *Hub) unregister(sessionID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[sessionID], conn)
	if len(h.conns[sessionID]) == 0 {
		delete(h.conns, sessionID)
	}
}

// Broadcast pushes a payload to every connection of the session.
func (h *Hub) Broadcast(sessionID string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[sessionID] {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// GET /cart/ws
func CartWebSocketHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		hub.register(sessionID, conn)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				hub.unregister(sessionID, conn)
				break
			}
		}
	}
}
