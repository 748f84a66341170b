// Package transport defines the boundary between the action composer and
// the underlying real-time session: node dispatch, finalized message
// delivery, activity-indicator signaling and end-to-end session setup.
// Implementations own connection lifecycle, encryption and retries; the
// composer only hands them finished objects.
package transport

import (
	"context"

	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/node"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// Dispatcher delivers finished protocol nodes and finalized messages.
type Dispatcher interface {
	// SendNode dispatches one protocol node and resolves when the transport
	// accepts or rejects it.
	SendNode(ctx context.Context, n *node.Node) error
	// SendMessage hands a finalized message to the transport for delivery.
	SendMessage(ctx context.Context, msg *message.Message) error
	// GenerateID returns a fresh transport-level stanza id.
	GenerateID() string
}

// SessionManager ensures end-to-end encrypted sessions exist with a peer set
// before control stanzas addressed to them are built.
type SessionManager interface {
	EnsureE2ESessions(ctx context.Context, peers []wid.WID) error
}

// SessionFunc adapts a function to the SessionManager interface.
type SessionFunc func(ctx context.Context, peers []wid.WID) error

func (f SessionFunc) EnsureE2ESessions(ctx context.Context, peers []wid.WID) error {
	return f(ctx, peers)
}

// NopSessions is a SessionManager for transports whose underlying engine
// owns session establishment.
var NopSessions SessionManager = SessionFunc(func(context.Context, []wid.WID) error {
	return nil
})

// ChatStateSignaler emits advisory activity indicators for a chat. Signals
// are best-effort: the last signal wins and failures are not correctness
// hazards.
type ChatStateSignaler interface {
	MarkComposing(ctx context.Context, chat wid.WID) error
	MarkRecording(ctx context.Context, chat wid.WID) error
	MarkPaused(ctx context.Context, chat wid.WID) error
}
