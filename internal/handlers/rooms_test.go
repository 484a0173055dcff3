package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pierrec/lz4/v4"

	"github.com/mossy-p/drawsync/internal/models"
	"github.com/mossy-p/drawsync/internal/rooms"
	"github.com/mossy-p/drawsync/internal/state"
)

func newAPIRouter(t *testing.T) (*gin.Engine, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub(rooms.NewRegistry(), state.NewStore(), nil, time.Hour, time.Minute)

	router := gin.New()
	api := router.Group("/api")
	api.GET("/rooms", hub.ListRooms)
	api.GET("/rooms/:roomId", hub.GetRoom)
	api.DELETE("/rooms/:roomId", hub.DeleteRoom)
	api.GET("/rooms/:roomId/snapshot", hub.Snapshot)
	api.GET("/rooms/:roomId/export.pdf", hub.ExportPDF)
	return router, hub
}

func doRequest(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestGetRoomInfo(t *testing.T) {
	router, hub := newAPIRouter(t)
	roomID := hub.registry.Create()
	hub.store.AppendDraw(roomID, models.DrawEvent{RoomID: roomID, Points: []models.Point{{X: 1, Y: 1}}})

	w := doRequest(router, http.MethodGet, "/api/rooms/"+roomID)
	if w.Code != http.StatusOK {
		t.Fatalf("GET room status = %d, want 200", w.Code)
	}

	var info models.RoomInfo
	if err := json.Unmarshal(w.Body.Bytes(), &info); err != nil {
		t.Fatalf("failed to decode room info: %v", err)
	}
	if info.ID != roomID || info.EventCount != 1 || info.PeerCount != 0 {
		t.Errorf("room info = %+v, want id=%s eventCount=1 peerCount=0", info, roomID)
	}

	if w := doRequest(router, http.MethodGet, "/api/rooms/unknown"); w.Code != http.StatusNotFound {
		t.Errorf("GET unknown room status = %d, want 404", w.Code)
	}
}

func TestDeleteRoomTearsDownState(t *testing.T) {
	router, hub := newAPIRouter(t)
	roomID := hub.registry.Create()
	color := "#123456"
	hub.store.MergeSettings(roomID, models.SettingsPatch{Color: &color})

	w := doRequest(router, http.MethodDelete, "/api/rooms/"+roomID)
	if w.Code != http.StatusOK {
		t.Fatalf("DELETE status = %d, want 200", w.Code)
	}

	if hub.registry.Exists(roomID) {
		t.Error("registry still knows the room after delete")
	}
	if got, want := hub.store.Settings(roomID), models.DefaultBrushSettings(); got != want {
		t.Errorf("settings after delete = %+v, want canonical defaults", got)
	}

	if w := doRequest(router, http.MethodDelete, "/api/rooms/"+roomID); w.Code != http.StatusNotFound {
		t.Errorf("second DELETE status = %d, want 404", w.Code)
	}
}

func TestListRooms(t *testing.T) {
	router, hub := newAPIRouter(t)
	a := hub.registry.Create()
	b := hub.registry.Create()

	w := doRequest(router, http.MethodGet, "/api/rooms")
	if w.Code != http.StatusOK {
		t.Fatalf("GET rooms status = %d, want 200", w.Code)
	}

	var resp struct {
		Rooms []models.RoomInfo `json:"rooms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode room list: %v", err)
	}
	if len(resp.Rooms) != 2 {
		t.Fatalf("listed %d rooms, want 2", len(resp.Rooms))
	}
	found := map[string]bool{}
	for _, info := range resp.Rooms {
		found[info.ID] = true
	}
	if !found[a] || !found[b] {
		t.Errorf("room list %v missing %s or %s", resp.Rooms, a, b)
	}
}

func TestSnapshotRoundTripsThroughLZ4(t *testing.T) {
	router, hub := newAPIRouter(t)
	roomID := hub.registry.Create()
	hub.store.AppendDraw(roomID, models.DrawEvent{
		RoomID:     roomID,
		Points:     []models.Point{{X: 0, Y: 0}, {X: 10, Y: 10}},
		BrushStyle: models.BrushHighlighter,
		Color:      "#ffff00",
		Thickness:  12,
		Opacity:    0.4,
	})

	w := doRequest(router, http.MethodGet, "/api/rooms/"+roomID+"/snapshot")
	if w.Code != http.StatusOK {
		t.Fatalf("GET snapshot status = %d, want 200", w.Code)
	}
	if got := w.Header().Get("X-Uncompressed-Length"); got == "" {
		t.Error("snapshot response missing X-Uncompressed-Length header")
	}

	decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("failed to decompress snapshot: %v", err)
	}

	var drawings []models.DrawEvent
	if err := json.Unmarshal(decompressed, &drawings); err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if len(drawings) != 1 || drawings[0].Color != "#ffff00" {
		t.Errorf("snapshot drawings = %+v, want the one appended stroke", drawings)
	}

	if w := doRequest(router, http.MethodGet, "/api/rooms/unknown/snapshot"); w.Code != http.StatusNotFound {
		t.Errorf("snapshot of unknown room status = %d, want 404", w.Code)
	}
}

func TestExportPDFEndpoint(t *testing.T) {
	router, hub := newAPIRouter(t)
	roomID := hub.registry.Create()
	hub.store.AppendDraw(roomID, models.DrawEvent{
		RoomID:    roomID,
		Points:    []models.Point{{X: 0, Y: 0}, {X: 50, Y: 50}},
		Color:     "#ff0000",
		Thickness: 3,
		Opacity:   1,
	})

	w := doRequest(router, http.MethodGet, "/api/rooms/"+roomID+"/export.pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("GET export status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %s, want application/pdf", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("export body does not start with a PDF header")
	}
}
