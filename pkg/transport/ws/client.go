// Package ws implements the transport boundary over a websocket session.
//
// The client frames protocol nodes as canonical XML text and finalized
// messages as JSON, one frame each. Delivery acknowledgments arrive on the
// read side and are observed by the host session, not here.
package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/tinyland-inc/waclaw/pkg/logger"
	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/node"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// Config holds websocket transport configuration.
type Config struct {
	URL         string
	DialTimeout time.Duration
	Header      http.Header
}

// Client is a websocket-backed Dispatcher and ChatStateSignaler.
type Client struct {
	config Config
	mu     sync.Mutex
	conn   *websocket.Conn
}

// NewClient creates a disconnected Client. Call Connect before dispatching.
func NewClient(cfg Config) *Client {
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = 10 * time.Second
	}
	return &Client{config: cfg}
}

// Connect dials the websocket endpoint.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.config.DialTimeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.config.URL, c.config.Header)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.config.URL, err)
	}
	c.conn = conn

	logger.InfoCF("transport", "Connected", map[string]any{"url": c.config.URL})
	return nil
}

// Close tears down the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

func (c *Client) writeFrame(ctx context.Context, messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("transport not connected")
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = c.conn.SetWriteDeadline(deadline)
	} else {
		_ = c.conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
	}
	return c.conn.WriteMessage(messageType, data)
}

// SendNode dispatches one protocol node as an XML text frame.
func (c *Client) SendNode(ctx context.Context, n *node.Node) error {
	rendered := n.XMLString()
	logger.DebugCF("transport", "Sending node", map[string]any{"node": rendered})
	return c.writeFrame(ctx, websocket.TextMessage, []byte(rendered))
}

// SendMessage hands a finalized message to the session as a JSON frame.
func (c *Client) SendMessage(ctx context.Context, msg *message.Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode message %s: %w", msg.Key.ID, err)
	}
	logger.DebugCF("transport", "Sending message", map[string]any{
		"id": msg.Key.ID,
		"to": msg.To.String(),
	})
	return c.writeFrame(ctx, websocket.TextMessage, data)
}

// GenerateID returns a fresh transport-level stanza id.
func (c *Client) GenerateID() string {
	return uuid.NewString()
}

func (c *Client) sendChatState(ctx context.Context, state string, chat wid.WID) error {
	n := node.New("chatstate", map[string]string{"to": chat.ToLegacyString()},
		node.New(state, nil))
	return c.SendNode(ctx, n)
}

// MarkComposing signals the typing indicator for a chat.
func (c *Client) MarkComposing(ctx context.Context, chat wid.WID) error {
	return c.sendChatState(ctx, "composing", chat)
}

// MarkRecording signals the voice-note recording indicator for a chat.
func (c *Client) MarkRecording(ctx context.Context, chat wid.WID) error {
	return c.sendChatState(ctx, "recording", chat)
}

// MarkPaused clears the activity indicator for a chat.
func (c *Client) MarkPaused(ctx context.Context, chat wid.WID) error {
	return c.sendChatState(ctx, "paused", chat)
}
