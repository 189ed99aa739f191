package websocket

import (
	"encoding/json"
	"log"

	"github.com/dmadera/habit-tracker-backend/internal/domain"
	"github.com/google/uuid"
)

type EventType string

const (
	EventHabitCreated EventType = "habit.created"
	EventHabitUpdated EventType = "habit.updated"
	EventHabitDeleted EventType = "habit.deleted"
	EventHabitToggled EventType = "habit.toggled"
)

// Event is pushed to a user's connected dashboard clients after one of their
// habits changes. Habit is nil for deletions; HabitID is always set.
type Event struct {
	Type    EventType     `json:"type"`
	HabitID string        `json:"habitId"`
	Habit   *domain.Habit `json:"habit,omitempty"`
}

type userEvent struct {
	userID uuid.UUID
	data   []byte
}

// Hub fans habit events out to the owning user's connections. All maps are
// confined to the Run goroutine.
type Hub struct {
	clients    map[uuid.UUID]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	publish    chan userEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan userEvent, 64),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			conns := h.clients[client.userID]
			if conns == nil {
				conns = make(map[*Client]bool)
				h.clients[client.userID] = conns
			}
			conns[client] = true

		case client := <-h.unregister:
			if conns, ok := h.clients[client.userID]; ok {
				if _, ok := conns[client]; ok {
					delete(conns, client)
					close(client.send)
					if len(conns) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}

		case ev := <-h.publish:
			for client := range h.clients[ev.userID] {
				select {
				case client.send <- ev.data:
				default:
					// Slow client, drop it
					delete(h.clients[ev.userID], client)
					close(client.send)
				}
			}
		}
	}
}

// Publish delivers an event to every connection the user currently holds.
// Delivery is best-effort; the REST response is the source of truth.
func (h *Hub) Publish(userID uuid.UUID, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("failed to marshal habit event: %v", err)
		return
	}
	h.publish <- userEvent{userID: userID, data: data}
}
