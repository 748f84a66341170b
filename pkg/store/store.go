// Package store defines the externally-owned chat, call and bot-profile
// registries consumed by the composer. The composer only reads this state;
// mutation is the host environment's job. Registries are injected as
// interfaces so tests can run against deterministic in-memory fakes.
package store

import (
	"context"

	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// Chat is a messaging thread, individual or group. Read-only to the core.
type Chat struct {
	ID      wid.WID
	Name    string
	IsGroup bool

	// Ephemeral (disappearing message) configuration. A zero duration means
	// ephemeral mode is disabled.
	EphemeralDuration         uint32
	EphemeralSettingTimestamp int64
	EphemeralTrigger          string
}

// CallState is the lifecycle position of a call.
type CallState string

const (
	CallStateIncomingRing    CallState = "INCOMING_RING"
	CallStateOutgoingCalling CallState = "OUTGOING_CALLING"
	CallStateOutgoingRing    CallState = "OUTGOING_RING"
	CallStateActive          CallState = "ACTIVE"
	CallStateTerminated      CallState = "TERMINATED"
)

// Call is a voice/video call known to the call registry. The composer never
// mutates call state directly; transitions are driven by the remote end
// acknowledging control stanzas.
type Call struct {
	ID      string
	PeerJID wid.WID
	State   CallState
	IsGroup bool
}

// BotProfile is the persona registration for a bot recipient.
type BotProfile struct {
	PersonaID string
}

// ChatRegistry is keyed read access to known chats.
type ChatRegistry interface {
	Get(id wid.WID) (*Chat, bool)
}

// CallRegistry is keyed read access to currently known calls, plus a
// first-match scan in store iteration order.
type CallRegistry interface {
	Get(id string) (*Call, bool)
	FindFirst(pred func(*Call) bool) (*Call, bool)
}

// BotProfileRegistry resolves the persona registered for a bot chat.
type BotProfileRegistry interface {
	Get(id wid.WID) (*BotProfile, bool)
}

// ParticipantDirectory lists the current participants of a group chat.
type ParticipantDirectory interface {
	Participants(ctx context.Context, chatID wid.WID) ([]wid.WID, error)
}
