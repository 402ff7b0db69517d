package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"github.com/nattapon-dev/learnhub_backend/models"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// BookingEvent is pushed to every connected client whenever a booking is
// created or changes status.
type BookingEvent struct {
	BookingID    uuid.UUID `json:"booking_id"`
	UserID       uuid.UUID `json:"user_id"`
	ScheduleID   uuid.UUID `json:"schedule_id"`
	Status       string    `json:"status"`
	LearningMode string    `json:"learning_mode"`
}

var clients = make(map[*websocket.Conn]uuid.UUID)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan BookingEvent, 64)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.Conn] = client.UserID
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client unregistered: %s", client.UserID)
			clientsMu.Lock()
			delete(clients, client.Conn)
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []*websocket.Conn
			for conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending booking event: %v", err)
					conn.Close()
					dead = append(dead, conn)
				}
			}
			clientsMu.RUnlock()

			if len(dead) > 0 {
				clientsMu.Lock()
				for _, conn := range dead {
					delete(clients, conn)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// PublishBookingEvent never blocks; events are dropped when the hub buffer
// is full or the hub is not running.
func PublishBookingEvent(b *models.Booking) {
	event := BookingEvent{
		BookingID:    b.ID,
		UserID:       b.UserID,
		ScheduleID:   b.ScheduleID,
		Status:       b.Status,
		LearningMode: b.LearningMode,
	}
	select {
	case Broadcast <- event:
	default:
	}
}
