package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/techcrush-lms/storefront-api/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// orderFeed holds the admin feed connections. Handler goroutines add and
// drop connections while checkout broadcasts from request goroutines, so
// every access goes through the mutex.
type orderFeed struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

var feed = &orderFeed{conns: make(map[*websocket.Conn]bool)}

func (f *orderFeed) add(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conns[conn] = true
}

func (f *orderFeed) remove(conn *websocket.Conn) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.conns, conn)
}

func (f *orderFeed) broadcast(data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for conn := range f.conns {
		conn.WriteMessage(websocket.TextMessage, data)
	}
}

// GET /admin/orders/ws — live feed of newly placed orders.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()
	feed.add(conn)
	defer feed.remove(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// BroadcastNewOrder pushes a freshly placed order to connected admins.
func BroadcastNewOrder(order models.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		return
	}
	feed.broadcast(data)
}
