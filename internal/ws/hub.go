// Package ws streams map snapshots to websocket clients.
package ws

import (
	"context"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"autoborder/internal/editor"
)

// Hub fans snapshot messages out to every connected client.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
	latest  []byte
	logger  *log.Logger
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Hub{clients: make(map[*websocket.Conn]struct{}), logger: logger}
}

func (h *Hub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
}

// join sends the latest snapshot to conn and registers it in one step, so
// no broadcast can reach conn ahead of an older message.
func (h *Hub) join(ctx context.Context, conn *websocket.Conn) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := conn.Write(ctx, websocket.MessageText, h.latest)
		cancel()
		if err != nil {
			return err
		}
	}
	h.clients[conn] = struct{}{}
	return nil
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Latest returns the last broadcast message, or nil before the first.
func (h *Hub) Latest() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.latest
}

// Broadcast sends message to every client and remembers it for clients
// that connect later. Clients that fail to keep up are dropped.
func (h *Hub) Broadcast(message []byte) {
	h.mu.Lock()
	h.latest = message
	for conn := range h.clients {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := conn.Write(ctx, websocket.MessageText, message)
		cancel()
		if err != nil {
			_ = conn.Close(websocket.StatusNormalClosure, "")
			delete(h.clients, conn)
		}
	}
	h.mu.Unlock()
}

// Pump broadcasts every new document version received on ch until ch is
// closed.
func (h *Hub) Pump(ch editor.RenderChan) {
	var last uint64
	sent := false
	for st := range ch {
		if sent && st.Version == last {
			continue
		}
		data, err := editor.MarshalState(st)
		if err != nil {
			h.logger.Printf("encode snapshot: %v", err)
			continue
		}
		last, sent = st.Version, true
		h.Broadcast(data)
	}
}

// Handler upgrades requests to websockets. Each client gets the latest
// snapshot straight away and every later one as it is broadcast; messages
// from the client are ignored.
func (h *Hub) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			h.logger.Printf("websocket accept: %v", err)
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		if err := h.join(r.Context(), conn); err != nil {
			return
		}
		defer h.Remove(conn)

		for {
			if _, _, err := conn.Read(r.Context()); err != nil {
				return
			}
		}
	}
}
