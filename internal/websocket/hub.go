package websocket

import (
	"encoding/json"
	"sync"
)

// SummaryUpdate is pushed to a user's connected clients after a write
// changes their monthly picture. Delivery is best effort; if nobody is
// listening the update is dropped.
type SummaryUpdate struct {
	Month            string `json:"month"`
	TotalSpent       string `json:"total_spent"`
	TransactionCount int    `json:"transaction_count"`
	TotalBudget      string `json:"total_budget"`
	Remaining        string `json:"remaining"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]struct{})
	}
	h.clients[userID][client] = struct{}{}
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		return
	}
	delete(h.clients[userID], client)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

func (h *Hub) BroadcastSummary(userID string, update SummaryUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
		}
	}
}
