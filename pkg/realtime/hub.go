package realtime

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Hub routes broadcast payloads to the clients subscribed to a device room.
// Rooms are keyed by public device id. Membership is the only shared state
// and the only thing the lock protects: broadcasts snapshot the room under a
// read lock and then write outside it, so a slow client never blocks
// membership changes.
type Hub struct {
	mu     sync.RWMutex
	rooms  map[string]map[*Client]struct{}
	logger *logrus.Entry
}

func NewHub(logger *logrus.Entry) *Hub {
	return &Hub{
		rooms:  map[string]map[*Client]struct{}{},
		logger: logger,
	}
}

// Subscribe adds the client to the device room. Subscribing twice is a no-op.
func (h *Hub) Subscribe(client *Client, publicDeviceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[publicDeviceID]
	if !ok {
		room = map[*Client]struct{}{}
		h.rooms[publicDeviceID] = room
	}

	room[client] = struct{}{}
	h.logger.Debugf("client subscribed to device %s (%d subscribers)", publicDeviceID, len(room))
}

// Unsubscribe removes the client from the device room. Unsubscribing a client
// that never subscribed is a no-op.
func (h *Hub) Unsubscribe(client *Client, publicDeviceID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeLocked(client, publicDeviceID)
}

// UnsubscribeAll removes the client from every room it joined. Called on
// disconnect.
func (h *Hub) UnsubscribeAll(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for publicDeviceID := range h.rooms {
		h.removeLocked(client, publicDeviceID)
	}
}

func (h *Hub) removeLocked(client *Client, publicDeviceID string) {
	room, ok := h.rooms[publicDeviceID]
	if !ok {
		return
	}

	delete(room, client)
	if len(room) == 0 {
		delete(h.rooms, publicDeviceID)
	}
}

// Broadcast delivers the payload to every current subscriber of the device
// room, at most once each. Delivery is best effort: a failed write drops that
// client and never surfaces to the caller.
func (h *Hub) Broadcast(publicDeviceID string, payload []byte) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.rooms[publicDeviceID]))
	for client := range h.rooms[publicDeviceID] {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		err := client.send(payload)
		if err != nil {
			h.logger.Warnf("dropping client of device %s room after failed write: %s", publicDeviceID, err)
			h.UnsubscribeAll(client)
			client.close()
		}
	}
}

// SubscriberCount reports the current size of a device room.
func (h *Hub) SubscriberCount(publicDeviceID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.rooms[publicDeviceID])
}
