package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and delivers activity
// messages to them. Client membership is mutated only inside Run, so
// no locking is needed.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound messages targeted at a single user's feed.
	deliver chan targetedMessage

	// A map of user IDs to the set of clients watching that feed.
	feeds map[string]map[*Client]bool
}

type targetedMessage struct {
	userID  string
	payload []byte
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		deliver:    make(chan targetedMessage, 64),
		clients:    make(map[*Client]bool),
		feeds:      make(map[string]map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			h.addToFeed(client)
			log.Info().Int("total_clients", len(h.clients)).Msg("Activity feed client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.removeFromFeed(client)
				log.Info().Int("total_clients", len(h.clients)).Msg("Activity feed client disconnected")
			}
		case msg := <-h.deliver:
			for client := range h.feeds[msg.userID] {
				select {
				case client.Send <- msg.payload:
				default:
					close(client.Send)
					delete(h.clients, client)
					h.removeFromFeed(client)
				}
			}
		}
	}
}

// BroadcastToUser queues a message for every client subscribed to the
// given user's feed. Safe to call from any goroutine.
func (h *Hub) BroadcastToUser(userID string, message []byte) {
	h.deliver <- targetedMessage{userID: userID, payload: message}
}

func (h *Hub) addToFeed(client *Client) {
	if h.feeds[client.UserID] == nil {
		h.feeds[client.UserID] = make(map[*Client]bool)
	}
	h.feeds[client.UserID][client] = true
}

func (h *Hub) removeFromFeed(client *Client) {
	if subs, ok := h.feeds[client.UserID]; ok {
		delete(subs, client)
		if len(subs) == 0 {
			delete(h.feeds, client.UserID)
		}
	}
}
