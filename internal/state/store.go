// Package state holds the per-room canvas state: the accumulated
// drawing log, the current brush settings and the eraser flag.
package state

import (
	"sync"

	"github.com/mossy-p/drawsync/internal/models"
)

type roomState struct {
	drawings []models.DrawEvent
	settings models.BrushSettings
	erasing  bool
}

// Store maps room ids to their mutable canvas state. Writes lazily
// initialize a room to its canonical defaults; reads on an unknown room
// return those defaults without creating anything. All read-modify-write
// sequences run under the store lock, so the store is safe for use from
// concurrent connection goroutines.
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*roomState
}

func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*roomState),
	}
}

// init returns the state for roomID, creating it with canonical defaults
// if absent. Caller must hold the write lock.
func (s *Store) init(roomID string) *roomState {
	st, ok := s.rooms[roomID]
	if !ok {
		st = &roomState{
			drawings: []models.DrawEvent{},
			settings: models.DefaultBrushSettings(),
		}
		s.rooms[roomID] = st
	}
	return st
}

// Initialize creates the room's state if it does not exist yet.
// Initializing an existing room is a no-op.
func (s *Store) Initialize(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init(roomID)
}

// AppendDraw adds one stroke to the room's drawing log.
func (s *Store) AppendDraw(roomID string, ev models.DrawEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.init(roomID)
	st.drawings = append(st.drawings, ev)
}

// Drawings returns a copy of the room's full ordered drawing log.
// Mutating the returned events cannot affect the store.
func (s *Store) Drawings(roomID string) []models.DrawEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.rooms[roomID]
	if !ok {
		return []models.DrawEvent{}
	}

	out := make([]models.DrawEvent, len(st.drawings))
	for i, ev := range st.drawings {
		points := make([]models.Point, len(ev.Points))
		copy(points, ev.Points)
		ev.Points = points
		out[i] = ev
	}
	return out
}

// MergeSettings overwrites only the fields present in patch.
func (s *Store) MergeSettings(roomID string, patch models.SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.init(roomID)
	if patch.Color != nil {
		st.settings.Color = *patch.Color
	}
	if patch.Opacity != nil {
		st.settings.Opacity = *patch.Opacity
	}
	if patch.Thickness != nil {
		st.settings.Thickness = *patch.Thickness
	}
	if patch.PenStyle != nil {
		st.settings.PenStyle = *patch.PenStyle
	}
	if patch.BrushStyle != nil {
		st.settings.BrushStyle = *patch.BrushStyle
	}
}

// Settings returns the room's current brush settings.
func (s *Store) Settings(roomID string) models.BrushSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.rooms[roomID]; ok {
		return st.settings
	}
	return models.DefaultBrushSettings()
}

// Clear empties the room's drawing log. Settings and the eraser flag
// are untouched.
func (s *Store) Clear(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.rooms[roomID]; ok {
		st.drawings = []models.DrawEvent{}
	}
}

// SetErasing flips the room's eraser flag.
func (s *Store) SetErasing(roomID string, erasing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.init(roomID)
	st.erasing = erasing
}

// Erasing returns the room's eraser flag.
func (s *Store) Erasing(roomID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.rooms[roomID]; ok {
		return st.erasing
	}
	return false
}

// EventCount returns the length of the room's drawing log.
func (s *Store) EventCount(roomID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.rooms[roomID]; ok {
		return len(st.drawings)
	}
	return 0
}

// Destroy drops all state for the room. Afterwards the room behaves as
// if it had never been initialized.
func (s *Store) Destroy(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, roomID)
}
