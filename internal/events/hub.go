package events

import (
	"encoding/json"
	"log"

	"arendago/backend/internal/storage"
)

// Hub fans listing events out to connected WebSocket clients. Events
// arrive over Redis Pub/Sub, so several instances share one feed.
type Hub struct {
	clients map[*WSClient]struct{}

	RegisterCh   chan *WSClient
	UnregisterCh chan *WSClient
	broadcastCh  chan ListingEvent

	Storage *storage.Service
}

func NewHub(s *storage.Service) *Hub {
	return &Hub{
		clients:      make(map[*WSClient]struct{}),
		RegisterCh:   make(chan *WSClient),
		UnregisterCh: make(chan *WSClient),
		broadcastCh:  make(chan ListingEvent),
		Storage:      s,
	}
}

// startPubSubListener слушает Redis-канал событий объявлений.
func (h *Hub) startPubSubListener() {
	pubsub := h.Storage.SubscribeEvents()
	if pubsub == nil {
		log.Println("WARN: Redis is not configured, live feed is disabled")
		return
	}
	go func() {
		defer pubsub.Close()
		for msg := range pubsub.Channel() {
			var ev ListingEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("ERROR: Failed to unmarshal listing event: %v", err)
				continue
			}
			h.broadcastCh <- ev
		}
	}()
}

// Run — главный цикл хаба: регистрация клиентов и рассылка событий.
func (h *Hub) Run() {
	h.startPubSubListener()

	for {
		select {
		case client := <-h.RegisterCh:
			h.clients[client] = struct{}{}
			log.Printf("INFO: Live feed client connected (%d online)", len(h.clients))

		case client := <-h.UnregisterCh:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}

		case ev := <-h.broadcastCh:
			for client := range h.clients {
				select {
				case client.Send <- ev:
				default:
					// Медленный клиент не должен тормозить ленту.
					delete(h.clients, client)
					client.Close()
				}
			}
		}
	}
}
