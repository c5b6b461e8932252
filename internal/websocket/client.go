package websocket

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

// Client is one connected summary listener. Incoming frames are month
// requests ("2024-03"); outgoing frames are SummaryUpdate JSON.
type Client struct {
	userID string
	conn   *websocket.Conn
	send   chan []byte
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the connection and blocks until the client goes away.
// refresh is called with a "YYYY-MM" string whenever the client asks for
// that month to be recomputed and pushed.
func ServeWS(w http.ResponseWriter, r *http.Request, hub *Hub, userID string, refresh func(month string)) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "websocket upgrade failed", http.StatusBadRequest)
		return
	}
	client := &Client{
		userID: userID,
		conn:   conn,
		send:   make(chan []byte, 10),
	}
	hub.Register(userID, client)
	go client.writePump(hub)
	client.readPump(hub, refresh)
}

func (c *Client) readPump(hub *Hub, refresh func(month string)) {
	defer func() {
		hub.Unregister(c.userID, c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(64)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		kind, payload, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		if kind != websocket.TextMessage || refresh == nil {
			continue
		}
		if month := strings.TrimSpace(string(payload)); month != "" {
			refresh(month)
		}
	}
}

func (c *Client) writePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hub.Unregister(c.userID, c)
		_ = c.conn.Close()
	}()
	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
