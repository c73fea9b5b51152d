package hub

import (
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/devimrittika/Green-Planet/internal/event"
	"github.com/devimrittika/Green-Planet/internal/model"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const shardCount = 16

type clientBucket struct {
	sync.RWMutex
	rooms map[string]map[string]*Client
}

// Hub fans activity feed events out to websocket subscribers grouped
// by topic. Implements service.FeedPublisher.
type Hub struct {
	shards     [shardCount]*clientBucket
	register   chan *Client
	unregister chan *Client
	upgrader   websocket.Upgrader
	logger     *zap.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewHub(allowedOrigins []string, logger *zap.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	h := &Hub{
		register:   make(chan *Client, 256),
		unregister: make(chan *Client, 256),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}

	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     originChecker(allowedOrigins),
	}

	for i := 0; i < shardCount; i++ {
		h.shards[i] = &clientBucket{
			rooms: make(map[string]map[string]*Client),
		}
	}

	go h.run()
	return h
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// PublishActivity pushes a new ledger entry to the community topic.
func (h *Hub) PublishActivity(userName string, entry model.ActivityEntry) {
	payload, err := json.Marshal(event.FeedActivity{
		UserName:  userName,
		Type:      entry.Type,
		Message:   entry.Message,
		CreatedAt: entry.CreatedAt,
	})
	if err != nil {
		h.logger.Error("failed to marshal feed activity", zap.Error(err))
		return
	}

	h.publishToTopic(event.WsEvent{
		Event:   event.EventFeedActivity,
		Topic:   event.DefaultTopic,
		Message: payload,
	})
}

func (h *Hub) publishToTopic(ev event.WsEvent) {
	b := h.shards[getShard(ev.Topic)]

	b.RLock()
	room, ok := b.rooms[ev.Topic]
	if !ok || len(room) == 0 {
		b.RUnlock()
		return
	}
	clients := make([]*Client, 0, len(room))
	for _, c := range room {
		clients = append(clients, c)
	}
	b.RUnlock()

	// deliver without holding the lock
	for _, c := range clients {
		if c.IsClosed() {
			continue
		}
		select {
		case c.egress <- ev:
		case <-time.After(sendTimeout):
			h.logger.Warn("egress full, dropping feed client",
				zap.String("client_id", c.ID), zap.String("topic", ev.Topic))
			h.unregister <- c
		case <-c.ctx.Done():
		}
	}
}

func getShard(topic string) uint32 {
	if topic == "" {
		return 0
	}
	sum := sha1.Sum([]byte(topic))
	return binary.BigEndian.Uint32(sum[:4]) % shardCount
}

func (h *Hub) addClient(c *Client) {
	b := h.shards[getShard(c.topic)]
	b.Lock()
	defer b.Unlock()

	room, ok := b.rooms[c.topic]
	if !ok {
		room = make(map[string]*Client)
		b.rooms[c.topic] = room
	}
	room[c.ID] = c
}

func (h *Hub) removeClient(c *Client) {
	b := h.shards[getShard(c.topic)]
	b.Lock()
	defer b.Unlock()

	if room, ok := b.rooms[c.topic]; ok {
		delete(room, c.ID)
		if len(room) == 0 {
			delete(b.rooms, c.topic)
		}
		c.Close()
	}
}

func (h *Hub) run() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case c := <-h.register:
			h.addClient(c)
		case c := <-h.unregister:
			h.removeClient(c)
		}
	}
}

// Stop closes every client and halts the manager loop.
func (h *Hub) Stop() {
	h.cancel()

	for _, shard := range h.shards {
		shard.RLock()
		for _, room := range shard.rooms {
			for _, client := range room {
				client.Close()
			}
		}
		shard.RUnlock()
	}
}

// ServeWS upgrades the request and registers the caller on the topic.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, userID, topic string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	RegisterClient(userID, topic, conn, h)
}
