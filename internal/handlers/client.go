package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mossy-p/drawsync/internal/models"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = 54 * time.Second

	// A single stroke can carry a long point sequence.
	maxMessageSize = 256 * 1024
)

// Client is one websocket connection. RoomID is the room it currently
// belongs to, empty while unjoined; it is only touched from the
// client's own read goroutine.
type Client struct {
	ID     string
	RoomID string
	Conn   *websocket.Conn
	Send   chan []byte

	hub *Hub
}

func (c *Client) readPump() {
	defer func() {
		c.hub.leaveRoom(c)
		c.Conn.Close()
		log.Printf("Client %s disconnected", c.ID)
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		var ev models.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("Failed to parse event from client %s: %v", c.ID, err)
			continue
		}

		c.hub.dispatch(c, ev, raw)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("Failed to write message: %v", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// sendEvent marshals payload into an event envelope and queues it for
// this client only.
func (c *Client) sendEvent(eventType string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", eventType, err)
		return
	}
	msg, err := json.Marshal(models.Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", eventType, err)
		return
	}

	select {
	case c.Send <- msg:
	default:
		log.Printf("Failed to send %s to client %s, buffer full", eventType, c.ID)
	}
}
