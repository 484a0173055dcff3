package handlers

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mossy-p/drawsync/internal/rooms"
	"github.com/mossy-p/drawsync/internal/state"
)

const presenceTTL = 24 * time.Hour

// Hub is the synchronization service: it owns room membership, validates
// every inbound canvas event against the registry, mutates the state
// store and fans events out to the right audience. The registry and
// store are injected so multiple independent hubs can exist side by side.
type Hub struct {
	registry *rooms.Registry
	store    *state.Store
	rdb      *redis.Client // optional presence mirror, may be nil

	mu         sync.RWMutex
	rooms      map[string]*Room
	emptySince map[string]time.Time

	idleTTL      time.Duration
	reapInterval time.Duration
}

func NewHub(registry *rooms.Registry, store *state.Store, rdb *redis.Client, idleTTL, reapInterval time.Duration) *Hub {
	return &Hub{
		registry:     registry,
		store:        store,
		rdb:          rdb,
		rooms:        make(map[string]*Room),
		emptySince:   make(map[string]time.Time),
		idleTTL:      idleTTL,
		reapInterval: reapInterval,
	}
}

// Room holds the live members of one canvas room.
type Room struct {
	ID    string
	mu    sync.RWMutex
	Peers map[string]*Client
}

func (r *Room) addClient(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Peers[client.ID] = client
}

// removeClient drops the client and reports how many members remain.
func (r *Room) removeClient(client *Client) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Peers, client.ID)
	return len(r.Peers)
}

func (r *Room) peerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Peers)
}

// broadcast sends data to every member of the room except excludeID.
// An empty excludeID delivers to everyone, sender included.
func (r *Room) broadcast(data []byte, excludeID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for peerID, client := range r.Peers {
		if peerID == excludeID {
			continue
		}
		select {
		case client.Send <- data:
		default:
			log.Printf("Failed to send message to client %s, buffer full", peerID)
		}
	}
}

func (h *Hub) room(roomID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[roomID]
}

// joinRoom moves the client into roomID. A connection belongs to at
// most one room, so any current membership is dropped first. The
// lookup-or-create and the member add happen under the hub lock, so a
// join can never land in a room entry a concurrent leave is deleting.
func (h *Hub) joinRoom(c *Client, roomID string) {
	h.leaveRoom(c)

	h.mu.Lock()
	room, exists := h.rooms[roomID]
	if !exists {
		room = &Room{
			ID:    roomID,
			Peers: make(map[string]*Client),
		}
		h.rooms[roomID] = room
	}
	delete(h.emptySince, roomID)
	room.addClient(c)
	h.mu.Unlock()

	c.RoomID = roomID
	h.presenceAdd(roomID, c.ID)
}

// leaveRoom drops the client's membership, if any. The room's canvas
// state stays put; the reaper tears it down later if nobody comes back.
// The empty check and the map delete share one hub critical section
// with joinRoom's add, so the count can never go stale in between.
func (h *Hub) leaveRoom(c *Client) {
	if c.RoomID == "" {
		return
	}
	roomID := c.RoomID
	c.RoomID = ""

	h.mu.Lock()
	room := h.rooms[roomID]
	if room == nil {
		h.mu.Unlock()
		return
	}
	remaining := room.removeClient(c)
	if remaining == 0 {
		delete(h.rooms, roomID)
		if h.registry.Exists(roomID) {
			h.emptySince[roomID] = time.Now()
		}
	}
	h.mu.Unlock()

	h.presenceRemove(roomID, c.ID)
	if remaining == 0 {
		log.Printf("Room %s is now empty", roomID)
	}
}

func (h *Hub) peerCount(roomID string) int {
	if room := h.room(roomID); room != nil {
		return room.peerCount()
	}
	return 0
}

// Run drives the idle-room reaper until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.reapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			h.reapIdle(now)
		}
	}
}

// reapIdle tears down rooms that have had no members for longer than
// the idle TTL. A room with live members is never touched; removal runs
// under the hub lock so a rejoin cannot race the teardown.
func (h *Hub) reapIdle(now time.Time) {
	var reaped []string

	h.mu.Lock()
	for roomID, since := range h.emptySince {
		if _, live := h.rooms[roomID]; live {
			delete(h.emptySince, roomID)
			continue
		}
		if now.Sub(since) < h.idleTTL {
			continue
		}
		delete(h.emptySince, roomID)
		h.registry.Remove(roomID)
		h.store.Destroy(roomID)
		reaped = append(reaped, roomID)
	}
	h.mu.Unlock()

	for _, roomID := range reaped {
		h.unmirrorRoom(roomID)
		log.Printf("Reaped idle room %s", roomID)
	}
}

// idleSince reports when the room last became empty, for tests and
// diagnostics.
func (h *Hub) idleSince(roomID string) (time.Time, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	since, ok := h.emptySince[roomID]
	return since, ok
}

// Redis presence mirror. In-memory state is authoritative; these keys
// exist so external tooling can inspect live rooms. All calls are
// no-ops without a client.

func (h *Hub) presenceAdd(roomID, clientID string) {
	if h.rdb == nil {
		return
	}
	ctx := context.Background()
	h.rdb.SAdd(ctx, "room:"+roomID+":peers", clientID)
	h.rdb.Expire(ctx, "room:"+roomID+":peers", presenceTTL)
}

func (h *Hub) presenceRemove(roomID, clientID string) {
	if h.rdb == nil {
		return
	}
	h.rdb.SRem(context.Background(), "room:"+roomID+":peers", clientID)
}

func (h *Hub) mirrorRoom(roomID string, createdAt time.Time) {
	if h.rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]any{"id": roomID, "createdAt": createdAt})
	if err != nil {
		log.Printf("Failed to marshal room mirror for %s: %v", roomID, err)
		return
	}
	if err := h.rdb.Set(context.Background(), "room:"+roomID, data, presenceTTL).Err(); err != nil {
		log.Printf("Failed to mirror room %s to Redis: %v", roomID, err)
	}
}

func (h *Hub) unmirrorRoom(roomID string) {
	if h.rdb == nil {
		return
	}
	ctx := context.Background()
	h.rdb.Del(ctx, "room:"+roomID)
	h.rdb.Del(ctx, "room:"+roomID+":peers")
}
