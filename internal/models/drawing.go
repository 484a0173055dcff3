package models

import "time"

// Point is a single canvas coordinate within a stroke.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PenStyle is the line pattern applied to a stroke.
type PenStyle string

const (
	PenSolid  PenStyle = "solid"
	PenDashed PenStyle = "dashed"
	PenDotted PenStyle = "dotted"
)

// BrushStyle selects the rendering algorithm the client applies to a stroke.
type BrushStyle string

const (
	BrushPen         BrushStyle = "pen"
	BrushHighlighter BrushStyle = "highlighter"
	BrushSpray       BrushStyle = "spray"
	BrushShiny       BrushStyle = "shiny"
)

// BrushSettings is the single brush configuration a room holds at any
// moment. Updates replace fields individually, never the whole value.
type BrushSettings struct {
	Color      string     `json:"color"`
	Opacity    float64    `json:"opacity"`
	Thickness  float64    `json:"thickness"`
	PenStyle   PenStyle   `json:"penStyle"`
	BrushStyle BrushStyle `json:"brushStyle"`
}

// DefaultBrushSettings returns the canonical settings every room starts with.
func DefaultBrushSettings() BrushSettings {
	return BrushSettings{
		Color:      "#000000",
		Opacity:    1,
		Thickness:  5,
		PenStyle:   PenSolid,
		BrushStyle: BrushPen,
	}
}

// SettingsPatch is a partial BrushSettings update. Nil fields leave the
// room's current value untouched.
type SettingsPatch struct {
	Color      *string     `json:"color,omitempty"`
	Opacity    *float64    `json:"opacity,omitempty"`
	Thickness  *float64    `json:"thickness,omitempty"`
	PenStyle   *PenStyle   `json:"penStyle,omitempty"`
	BrushStyle *BrushStyle `json:"brushStyle,omitempty"`
}

// DrawEvent is one completed stroke with the brush parameters that were
// active when it was drawn. Immutable once appended to a room's log.
type DrawEvent struct {
	RoomID     string     `json:"roomId"`
	Points     []Point    `json:"points"`
	BrushStyle BrushStyle `json:"brushStyle"`
	Color      string     `json:"color"`
	Thickness  float64    `json:"thickness"`
	Opacity    float64    `json:"opacity"`
}

// RoomInfo describes a room for the management API.
type RoomInfo struct {
	ID         string    `json:"id"`
	PeerCount  int       `json:"peerCount"`
	EventCount int       `json:"eventCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
