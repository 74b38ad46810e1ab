package websocket

import (
	"encoding/json"
	"sync"

	"github.com/autopartshop/autoparts-backend/internal/app/model"
	"github.com/autopartshop/autoparts-backend/pkg/logger"
)

// OrderEvent is pushed to connected admin clients when an order changes.
type OrderEvent struct {
	Type  string       `json:"type"` // order_created
	Order *model.Order `json:"order"`
}

// Hub fans orders out to connected admin clients. One hub per process;
// Run owns the client set.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		broadcast:  make(chan []byte, 256),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Order feed client connected", map[string]interface{}{
				"user_id": client.UserID,
				"total":   total,
			})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			logger.Info("Order feed client disconnected", map[string]interface{}{
				"user_id": client.UserID,
				"total":   total,
			})

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// send buffer full, drop the client
					go h.Unregister(client)
					logger.Warn("Order feed client send buffer full, disconnecting", map[string]interface{}{
						"user_id": client.UserID,
					})
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) Register(client *Client) {
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// BroadcastNewOrder pushes a created order to every connected client.
// Messages are dropped rather than blocking checkout.
func (h *Hub) BroadcastNewOrder(order *model.Order) {
	data, err := json.Marshal(OrderEvent{Type: "order_created", Order: order})
	if err != nil {
		logger.Error("Failed to marshal order event", err, map[string]interface{}{
			"order_id": order.ID,
		})
		return
	}

	select {
	case h.broadcast <- data:
	default:
		logger.Warn("Order feed broadcast channel full, event dropped", map[string]interface{}{
			"order_id": order.ID,
		})
	}
}
