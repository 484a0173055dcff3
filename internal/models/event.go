package models

import "encoding/json"

// Event is the envelope for every message exchanged over the canvas
// websocket. Data holds the type-specific payload.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Event types understood by the synchronization service.
const (
	EventCreateRoom     = "createRoom"
	EventRoomCreated    = "roomCreated"
	EventJoinRoom       = "joinRoom"
	EventRoomJoined     = "roomJoined"
	EventRoomNotFound   = "roomNotFound"
	EventRoomState      = "roomState"
	EventDrawing        = "drawing"
	EventClearCanvas    = "clearCanvas"
	EventToggleEraser   = "toggleEraser"
	EventUpdateSettings = "updateBrushSettings"
)

// JoinRoomPayload is sent by a client asking to enter a room.
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
}

// ToggleEraserPayload switches a room's eraser flag.
type ToggleEraserPayload struct {
	RoomID  string `json:"roomId"`
	Erasing bool   `json:"erasing"`
}

// UpdateSettingsPayload carries a partial brush-settings update.
type UpdateSettingsPayload struct {
	RoomID   string        `json:"roomId"`
	Settings SettingsPatch `json:"settings"`
}

// RoomStatePayload is the full snapshot sent to a client that just
// joined: everything drawn so far plus the room's current settings.
type RoomStatePayload struct {
	Drawings []DrawEvent   `json:"drawings"`
	Settings BrushSettings `json:"settings"`
}
