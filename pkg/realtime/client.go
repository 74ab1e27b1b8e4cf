package realtime

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

// wsConn is the slice of *websocket.Conn the client uses.
type wsConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// controlMessage is what subscribers send over the socket to manage their
// room memberships.
type controlMessage struct {
	Action   string `json:"action"`
	DeviceID string `json:"deviceId"`
}

type Client struct {
	hub    *Hub
	conn   wsConn
	logger *logrus.Entry

	// gorilla allows a single concurrent writer per conn
	writeMu sync.Mutex

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn wsConn, logger *logrus.Entry) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		logger: logger,
	}
}

// Run consumes control messages until the connection drops, then detaches the
// client from every room. Malformed messages are logged and skipped, they do
// not kill the connection.
func (c *Client) Run() {
	defer func() {
		c.hub.UnsubscribeAll(c)
		c.close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			c.logger.Debugf("client disconnected: %s", err)
			return
		}

		var msg controlMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warnf("skipping malformed control message: %s", err)
			continue
		}

		if msg.DeviceID == "" {
			c.logger.Warnf("skipping control message without deviceId")
			continue
		}

		switch msg.Action {
		case actionSubscribe:
			c.hub.Subscribe(c, msg.DeviceID)
		case actionUnsubscribe:
			c.hub.Unsubscribe(c, msg.DeviceID)
		default:
			c.logger.Warnf("skipping control message with unknown action %q", msg.Action)
		}
	}
}

func (c *Client) send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}
