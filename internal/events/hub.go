package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	sendQueue = 64
)

// subscriber owns one websocket connection. Only its writePump writes to conn.
type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts booking events to every connected websocket client.
// Publish only enqueues; a client whose queue is full is dropped.
type Hub struct {
	subscribers map[string]*subscriber
	mutex       sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]*subscriber),
	}
}

// Register adds conn, starts its write pump and returns the id to
// unregister it with.
func (h *Hub) Register(conn *websocket.Conn) string {
	id := uuid.NewString()
	sub := &subscriber{conn: conn, send: make(chan []byte, sendQueue)}

	h.mutex.Lock()
	h.subscribers[id] = sub
	h.mutex.Unlock()

	go writePump(sub)
	return id
}

// Unregister closes the subscriber's queue; its write pump then closes the
// connection.
func (h *Hub) Unregister(id string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.remove(id)
}

// remove expects h.mutex to be held for writing.
func (h *Hub) remove(id string) {
	if sub, exists := h.subscribers[id]; exists {
		close(sub.send)
		delete(h.subscribers, id)
	}
}

// Publish never blocks on the network.
func (h *Hub) Publish(_ context.Context, evt BookingEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	var slow []string
	h.mutex.RLock()
	for id, sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			slow = append(slow, id)
		}
	}
	h.mutex.RUnlock()

	if len(slow) > 0 {
		h.mutex.Lock()
		for _, id := range slow {
			h.remove(id)
		}
		h.mutex.Unlock()
	}
	return nil
}

func (h *Hub) Count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.subscribers)
}

func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id := range h.subscribers {
		h.remove(id)
	}
}

func writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
