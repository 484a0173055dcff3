package handlers

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pierrec/lz4/v4"

	"github.com/mossy-p/drawsync/internal/export"
	"github.com/mossy-p/drawsync/internal/models"
)

// ListRooms returns every live room with basic counters. Diagnostics
// only, not part of the sync hot path.
func (h *Hub) ListRooms(c *gin.Context) {
	ids := h.registry.ListAll()
	infos := make([]models.RoomInfo, 0, len(ids))
	for _, id := range ids {
		infos = append(infos, h.roomInfo(id))
	}
	c.JSON(http.StatusOK, gin.H{"rooms": infos})
}

// GetRoom returns one room's counters.
func (h *Hub) GetRoom(c *gin.Context) {
	roomID := c.Param("roomId")
	if !h.registry.Exists(roomID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, h.roomInfo(roomID))
}

// DeleteRoom is the explicit teardown path: the id is invalidated and
// all canvas state dropped. Members still connected are not kicked;
// their next event fails validation and is dropped.
func (h *Hub) DeleteRoom(c *gin.Context) {
	roomID := c.Param("roomId")
	if !h.registry.Exists(roomID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	h.registry.Remove(roomID)
	h.store.Destroy(roomID)
	h.unmirrorRoom(roomID)

	h.mu.Lock()
	delete(h.emptySince, roomID)
	h.mu.Unlock()

	log.Printf("Room deleted: %s", roomID)
	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// Snapshot returns the room's drawing log as lz4-compressed JSON, for
// archival before a clear or teardown.
func (h *Hub) Snapshot(c *gin.Context) {
	roomID := c.Param("roomId")
	if !h.registry.Exists(roomID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	payload, err := json.Marshal(h.store.Drawings(roomID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to encode drawing log"})
		return
	}

	compressed, err := compressLZ4(payload)
	if err != nil {
		log.Printf("Failed to compress snapshot for room %s: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compress drawing log"})
		return
	}

	c.Header("X-Uncompressed-Length", strconv.Itoa(len(payload)))
	c.Data(http.StatusOK, "application/octet-stream", compressed)
}

// ExportPDF renders the room's drawing log as a PDF document.
func (h *Hub) ExportPDF(c *gin.Context) {
	roomID := c.Param("roomId")
	if !h.registry.Exists(roomID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var buf bytes.Buffer
	if err := export.PDF(&buf, h.store.Drawings(roomID)); err != nil {
		log.Printf("Failed to export room %s as PDF: %v", roomID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render PDF"})
		return
	}

	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *Hub) roomInfo(roomID string) models.RoomInfo {
	createdAt, _ := h.registry.CreatedAt(roomID)
	return models.RoomInfo{
		ID:         roomID,
		PeerCount:  h.peerCount(roomID),
		EventCount: h.store.EventCount(roomID),
		CreatedAt:  createdAt,
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	var compressed bytes.Buffer
	writer := lz4.NewWriter(&compressed)

	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return compressed.Bytes(), nil
}
