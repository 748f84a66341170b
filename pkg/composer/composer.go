// Package composer turns high-level send intents into fully validated,
// protocol-ready objects. It exposes two operations: composing an outbound
// message for a chat, and ending a call. Both run a validation and
// enrichment chain against injected registries before anything reaches the
// transport.
package composer

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"io"
	"time"

	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/transport"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// Deps are the external collaborators the composer reads from and dispatches
// to. All state is owned by the host environment; the composer never mutates
// it.
type Deps struct {
	Chats        store.ChatRegistry
	Calls        store.CallRegistry
	Bots         store.BotProfileRegistry
	Participants store.ParticipantDirectory
	Messages     store.MessageRegistry
	Dispatcher   transport.Dispatcher
	Sessions     transport.SessionManager
	Signaler     transport.ChatStateSignaler

	// Self is the current user identity stamped as the message sender.
	Self wid.WID
}

// Composer orchestrates the outbound action pipeline.
type Composer struct {
	deps Deps

	canReply  func(*message.Message) bool
	botSecret func(secret []byte, personaID string) ([]byte, error)
	now       func() time.Time
	random    io.Reader
}

// Option customizes a Composer.
type Option func(*Composer)

// WithClock replaces the timestamp source. For tests.
func WithClock(now func() time.Time) Option {
	return func(c *Composer) { c.now = now }
}

// WithRandom replaces the random source used for message ids and secrets.
// For tests; production composers draw from crypto/rand.
func WithRandom(r io.Reader) Option {
	return func(c *Composer) { c.random = r }
}

// WithCanReply replaces the reply-eligibility predicate.
func WithCanReply(pred func(*message.Message) bool) Option {
	return func(c *Composer) { c.canReply = pred }
}

// WithBotSecretDerivation replaces the bot message secret derivation.
func WithBotSecretDerivation(fn func(secret []byte, personaID string) ([]byte, error)) Option {
	return func(c *Composer) { c.botSecret = fn }
}

// New creates a Composer over the given collaborators.
func New(deps Deps, opts ...Option) *Composer {
	c := &Composer{
		deps:      deps,
		canReply:  defaultCanReply,
		botSecret: deriveBotSecret,
		now:       time.Now,
		random:    rand.Reader,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultCanReply rejects quoting control and undecryptable messages.
func defaultCanReply(m *message.Message) bool {
	switch m.Kind {
	case message.KindProtocol, message.KindCiphertext, message.KindRevoked:
		return false
	}
	return true
}

// deriveBotSecret transforms a raw message secret into a bot message secret
// keyed by the recipient's persona id.
func deriveBotSecret(secret []byte, personaID string) ([]byte, error) {
	mac := hmac.New(sha256.New, []byte(personaID))
	mac.Write(secret)
	return mac.Sum(nil), nil
}

// SendOptions are the recognized composition options. MessageID accepts a
// serialized key or a message.MsgKey; MentionedList accepts []string or
// []wid.WID; QuotedMsg accepts a serialized key, a message.MsgKey or a
// resolved *message.Message.
type SendOptions struct {
	CreateChat      bool
	Delay           time.Duration
	IsPtt           bool
	MarkIsRead      bool
	WaitForAck      bool
	DetectMentioned bool
	MessageID       any
	MentionedList   any
	QuotedMsg       any
}

// DefaultSendOptions is the fixed default-options table. Callers override
// individual fields on the returned value; unset fields keep these defaults.
func DefaultSendOptions() SendOptions {
	return SendOptions{
		CreateChat:      false,
		Delay:           0,
		DetectMentioned: true,
		MarkIsRead:      true,
		WaitForAck:      true,
	}
}

// mergeOptions applies the default-options table when the caller passed nil.
func mergeOptions(opts *SendOptions) SendOptions {
	if opts == nil {
		return DefaultSendOptions()
	}
	return *opts
}
