package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"nestira/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected dashboard clients with mutex for thread safety
var (
	feedClients   = make(map[*websocket.Conn]bool)
	feedBroadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
	feedMutex     = &sync.Mutex{}
	feedOnce      sync.Once
)

// OrderEvent is pushed to connected dashboards on order lifecycle changes.
type OrderEvent struct {
	Type        string             `json:"type"`
	OrderCode   string             `json:"order_code"`
	Status      models.OrderStatus `json:"status"`
	TotalAmount float64            `json:"total_amount"`
}

// publishOrderEvent queues an event for the feed. Never blocks the caller.
func publishOrderEvent(eventType string, order *models.Order) {
	event := OrderEvent{
		Type:        eventType,
		OrderCode:   order.OrderCode,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}
	select {
	case feedBroadcast <- payload:
	default:
		log.Println("Order feed backlog full, dropping event")
	}
}

func runFeedBroadcaster() {
	for message := range feedBroadcast {
		feedMutex.Lock()
		for client := range feedClients {
			if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("WebSocket write error: %v", err)
				client.Close()
				delete(feedClients, client)
			}
		}
		feedMutex.Unlock()
	}
}

func orderFeedHandler() fiber.Handler {
	feedOnce.Do(func() { go runFeedBroadcaster() })

	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		feedMutex.Lock()
		feedClients[conn] = true
		feedMutex.Unlock()
		log.Println("Order feed client connected:", conn.RemoteAddr())

		// The feed is one-way; reads only detect disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				feedMutex.Lock()
				delete(feedClients, conn)
				feedMutex.Unlock()
				log.Println("Order feed client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}
