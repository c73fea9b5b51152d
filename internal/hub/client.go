package hub

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/devimrittika/Green-Planet/internal/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	// tuning parameters
	writeWait         = 10 * time.Second    // time allowed to write a message to the peer
	pongWait          = 20 * time.Second    // time allowed to read the next pong message from the peer
	pingInterval      = (pongWait * 9) / 10 // send pings to peer with this period
	maxMessageSize    = 16 * 1024           // max inbound message size
	sendBufSize       = 64                  // per-connection outbound buffer size
	sendTimeout       = 2 * time.Second     // timeout for enqueuing outbound messages
	registerTimeout   = 5 * time.Second     // timeout for client registration
	unregisterTimeout = 5 * time.Second     // timeout for client unregistration
)

// Client is one websocket subscriber of the activity feed. The feed
// is one-way: inbound frames other than subscription requests are
// ignored.
type Client struct {
	ID     string
	userID string
	topic  string

	conn    *websocket.Conn
	manager *Hub
	egress  chan event.WsEvent

	ctx            context.Context
	cancel         context.CancelFunc
	once           sync.Once
	connClosed     chan struct{}
	connClosedOnce sync.Once
	closed         bool
	closedMu       sync.RWMutex
}

// RegisterClient creates a client for the connection and joins it to
// the topic. Returns nil when the hub cannot accept it in time.
func RegisterClient(userID, topic string, conn *websocket.Conn, h *Hub) *Client {
	if topic == "" {
		topic = event.DefaultTopic
	}

	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		ID:             uuid.New().String(),
		userID:         userID,
		topic:          topic,
		conn:           conn,
		manager:        h,
		egress:         make(chan event.WsEvent, sendBufSize),
		ctx:            ctx,
		cancel:         cancel,
		connClosed:     make(chan struct{}),
	}

	select {
	case h.register <- client:
		go client.readLoop()
		go client.writeLoop()
		h.logger.Info("feed client registered",
			zap.String("client_id", client.ID),
			zap.String("user_id", userID),
			zap.String("topic", topic),
		)
		return client
	case <-time.After(registerTimeout):
		h.logger.Warn("feed client registration timed out", zap.String("client_id", client.ID))
		cancel()
		conn.Close()
		return nil
	}
}

func (c *Client) readLoop() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-time.After(unregisterTimeout):
			c.manager.logger.Warn("failed to unregister feed client", zap.String("client_id", c.ID))
		}
		c.Close()
	}()

	c.conn.SetReadLimit(int64(maxMessageSize))
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			var ev event.WsEvent
			if err := c.conn.ReadJSON(&ev); err != nil {
				if websocket.IsCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					return
				}
				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					c.manager.logger.Info("feed client timed out", zap.String("client_id", c.ID))
					return
				}
				c.manager.logger.Warn("feed read error",
					zap.String("client_id", c.ID), zap.Error(err))
				return
			}
			// The feed pushes only; inbound frames are ignored.
		}
	}
}

func (c *Client) writeLoop() {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()
		c.connClosedOnce.Do(func() {
			close(c.connClosed)
		})
	}()

	for {
		select {
		case <-c.ctx.Done():
			_ = c.conn.WriteMessage(websocket.CloseMessage, nil)
			return
		case ev := <-c.egress:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.manager.logger.Warn("feed write error",
					zap.String("client_id", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *Client) pongHandler(string) error {
	return c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// Close tears the client down exactly once. egress is never closed:
// the hub may still hold a reference to it in a publish snapshot, so
// teardown is signalled through ctx and buffered events are dropped.
func (c *Client) Close() {
	c.once.Do(func() {
		c.closedMu.Lock()
		c.closed = true
		c.closedMu.Unlock()

		c.cancel()

		// Wait for writeLoop to close conn, or force close after timeout.
		go func() {
			select {
			case <-c.connClosed:
			case <-time.After(5 * time.Second):
				_ = c.conn.Close()
			}
		}()
	})
}

// IsClosed reports whether the client has been torn down.
func (c *Client) IsClosed() bool {
	c.closedMu.RLock()
	defer c.closedMu.RUnlock()
	return c.closed
}
