package handlers

import (
	"encoding/json"
	"log"
	"time"

	"github.com/mossy-p/drawsync/internal/models"
)

// dispatch routes one inbound event. raw is the full message as
// received; relayed events are re-broadcast byte for byte so every peer
// sees exactly what the sender sent.
func (h *Hub) dispatch(c *Client, ev models.Event, raw []byte) {
	switch ev.Type {
	case models.EventCreateRoom:
		h.handleCreateRoom(c)
	case models.EventJoinRoom:
		h.handleJoinRoom(c, ev.Data)
	case models.EventDrawing:
		h.handleDrawing(c, ev.Data, raw)
	case models.EventClearCanvas:
		h.handleClearCanvas(c, ev.Data, raw)
	case models.EventToggleEraser:
		h.handleToggleEraser(c, ev.Data, raw)
	case models.EventUpdateSettings:
		h.handleUpdateSettings(c, ev.Data, raw)
	default:
		log.Printf("Unknown event type %q from client %s", ev.Type, c.ID)
	}
}

func (h *Hub) handleCreateRoom(c *Client) {
	roomID := h.registry.Create()
	h.store.Initialize(roomID)
	h.joinRoom(c, roomID)
	h.mirrorRoom(roomID, time.Now())

	c.sendEvent(models.EventRoomCreated, roomID)
	log.Printf("Room created: %s by client %s", roomID, c.ID)
}

func (h *Hub) handleJoinRoom(c *Client, data json.RawMessage) {
	var p models.JoinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		log.Printf("Malformed joinRoom from client %s", c.ID)
		return
	}

	if !h.registry.Exists(p.RoomID) {
		c.sendEvent(models.EventRoomNotFound, p.RoomID)
		log.Printf("Room %s not found for client %s", p.RoomID, c.ID)
		return
	}

	h.store.Initialize(p.RoomID)
	h.joinRoom(c, p.RoomID)

	// Membership is added before the snapshot is read, so a stroke
	// racing this join can arrive both inside roomState and as a
	// relayed drawing event. Duplicates are possible, loss is not.
	c.sendEvent(models.EventRoomJoined, p.RoomID)
	c.sendEvent(models.EventRoomState, models.RoomStatePayload{
		Drawings: h.store.Drawings(p.RoomID),
		Settings: h.store.Settings(p.RoomID),
	})

	log.Printf("Client %s joined room %s", c.ID, p.RoomID)
}

func (h *Hub) handleDrawing(c *Client, data json.RawMessage, raw []byte) {
	var ev models.DrawEvent
	if err := json.Unmarshal(data, &ev); err != nil || ev.RoomID == "" {
		return
	}
	if !h.registry.Exists(ev.RoomID) {
		return
	}

	h.store.AppendDraw(ev.RoomID, ev)

	// The sender has already applied the stroke locally.
	if room := h.room(ev.RoomID); room != nil {
		room.broadcast(raw, c.ID)
	}
}

func (h *Hub) handleClearCanvas(c *Client, data json.RawMessage, raw []byte) {
	var roomID string
	if err := json.Unmarshal(data, &roomID); err != nil || roomID == "" {
		return
	}
	if !h.registry.Exists(roomID) {
		return
	}

	h.store.Clear(roomID)

	// Everyone, sender included: clearing is destructive and must be
	// confirmed by the server round-trip so all members converge.
	if room := h.room(roomID); room != nil {
		room.broadcast(raw, "")
	}
	log.Printf("Canvas cleared for room %s", roomID)
}

func (h *Hub) handleToggleEraser(c *Client, data json.RawMessage, raw []byte) {
	var p models.ToggleEraserPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		return
	}
	if !h.registry.Exists(p.RoomID) {
		return
	}

	h.store.SetErasing(p.RoomID, p.Erasing)

	if room := h.room(p.RoomID); room != nil {
		room.broadcast(raw, c.ID)
	}
}

func (h *Hub) handleUpdateSettings(c *Client, data json.RawMessage, raw []byte) {
	var p models.UpdateSettingsPayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		return
	}
	if !h.registry.Exists(p.RoomID) {
		return
	}

	h.store.MergeSettings(p.RoomID, p.Settings)

	if room := h.room(p.RoomID); room != nil {
		room.broadcast(raw, c.ID)
	}
}
