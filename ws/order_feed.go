package ws

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"tableserve/services"
)

// OrderHub fans order events out to owner dashboards subscribed per
// restaurant. It implements services.OrderNotifier.
type OrderHub struct {
	clients    map[uint]map[*websocket.Conn]bool // restaurantID -> set of clients
	broadcast  chan broadcastEvent
	register   chan subscription
	unregister chan subscription
	mu         sync.Mutex
	log        *slog.Logger
}

type subscription struct {
	Conn         *websocket.Conn
	RestaurantID uint
}

type broadcastEvent struct {
	RestaurantID uint
	Event        services.OrderEvent
}

func NewOrderHub(log *slog.Logger) *OrderHub {
	return &OrderHub{
		clients:    make(map[uint]map[*websocket.Conn]bool),
		broadcast:  make(chan broadcastEvent, 64),
		register:   make(chan subscription),
		unregister: make(chan subscription),
		log:        log,
	}
}

func (h *OrderHub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			if h.clients[sub.RestaurantID] == nil {
				h.clients[sub.RestaurantID] = make(map[*websocket.Conn]bool)
			}
			h.clients[sub.RestaurantID][sub.Conn] = true
			h.mu.Unlock()

		case sub := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[sub.RestaurantID][sub.Conn]; ok {
				delete(h.clients[sub.RestaurantID], sub.Conn)
				sub.Conn.Close()
			}
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for conn := range h.clients[ev.RestaurantID] {
				if err := conn.WriteJSON(ev.Event); err != nil {
					h.log.Warn("order feed write failed", "error", err)
					conn.Close()
					delete(h.clients[ev.RestaurantID], conn)
				}
			}
			h.mu.Unlock()
		}
	}
}

// PublishOrderEvent hands the event to the hub without blocking the
// order path; the feed drops events when the buffer is full.
func (h *OrderHub) PublishOrderEvent(restaurantID uint, event services.OrderEvent) {
	select {
	case h.broadcast <- broadcastEvent{RestaurantID: restaurantID, Event: event}:
	default:
		h.log.Warn("order feed buffer full, dropping event", "restaurantId", restaurantID)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the connection and keeps it registered until the
// client goes away. Ownership must be checked by the caller before
// handing off here.
func (h *OrderHub) Serve(c *gin.Context, restaurantID uint) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	sub := subscription{Conn: conn, RestaurantID: restaurantID}
	h.register <- sub

	// Drain control frames; any read error means the client is gone.
	go func() {
		defer func() { h.unregister <- sub }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
