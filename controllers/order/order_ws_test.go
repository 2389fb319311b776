package orderControllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techcrush-lms/storefront-api/models"
)

func TestOrderFeed_ConcurrentBroadcastAndChurn(t *testing.T) {
	serverUpgrader := websocket.Upgrader{}
	received := make(chan []byte, 64)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := serverUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			select {
			case received <- msg:
			default:
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conns := make([]*websocket.Conn, 0, 4)
	for i := 0; i < 4; i++ {
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		defer conn.Close()
		feed.add(conn)
		conns = append(conns, conn)
	}
	defer func() {
		for _, conn := range conns {
			feed.remove(conn)
		}
	}()

	// broadcasts and connection churn race against each other
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			BroadcastNewOrder(models.Order{Reference: "ref-feed"})
		}()
	}
	for _, conn := range conns[:2] {
		wg.Add(1)
		go func(c *websocket.Conn) {
			defer wg.Done()
			feed.remove(c)
		}(conn)
	}
	wg.Wait()

	msg := <-received
	assert.Contains(t, string(msg), "ref-feed")
}
