package composer

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/node"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// fakeDispatcher records dispatched nodes and messages.
type fakeDispatcher struct {
	mu       sync.Mutex
	nodes    []*node.Node
	messages []*message.Message
	nextID   string
	sendErr  error
}

func (d *fakeDispatcher) SendNode(_ context.Context, n *node.Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sendErr != nil {
		return d.sendErr
	}
	d.nodes = append(d.nodes, n)
	return nil
}

func (d *fakeDispatcher) SendMessage(_ context.Context, msg *message.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.sendErr != nil {
		return d.sendErr
	}
	d.messages = append(d.messages, msg)
	return nil
}

func (d *fakeDispatcher) GenerateID() string {
	if d.nextID == "" {
		return "stanza-1"
	}
	return d.nextID
}

// fakeSignaler records the order of activity indicator signals.
type fakeSignaler struct {
	mu      sync.Mutex
	signals []string
	err     error
}

func (s *fakeSignaler) record(signal string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.signals = append(s.signals, signal)
	return nil
}

func (s *fakeSignaler) MarkComposing(context.Context, wid.WID) error { return s.record("composing") }
func (s *fakeSignaler) MarkRecording(context.Context, wid.WID) error { return s.record("recording") }
func (s *fakeSignaler) MarkPaused(context.Context, wid.WID) error    { return s.record("paused") }

func (s *fakeSignaler) recorded() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.signals...)
}

// fakeSessions records peers passed to EnsureE2ESessions.
type fakeSessions struct {
	peers [][]wid.WID
	err   error
}

func (s *fakeSessions) EnsureE2ESessions(_ context.Context, peers []wid.WID) error {
	if s.err != nil {
		return s.err
	}
	s.peers = append(s.peers, peers)
	return nil
}

// env bundles a composer with all its fakes for one test.
type env struct {
	composer     *Composer
	chats        *store.MemoryChats
	calls        *store.MemoryCalls
	bots         *store.MemoryBotProfiles
	participants *store.MemoryParticipants
	messages     *store.MemoryMessages
	dispatcher   *fakeDispatcher
	signaler     *fakeSignaler
	sessions     *fakeSessions
}

var (
	testSelf = wid.MustParse("5511000000000@c.us")
	testTime = time.Unix(1700000000, 0)
)

func newEnv(opts ...Option) *env {
	e := &env{
		chats:        store.NewMemoryChats(),
		calls:        store.NewMemoryCalls(),
		bots:         store.NewMemoryBotProfiles(),
		participants: store.NewMemoryParticipants(),
		messages:     store.NewMemoryMessages(),
		dispatcher:   &fakeDispatcher{},
		signaler:     &fakeSignaler{},
		sessions:     &fakeSessions{},
	}

	base := []Option{
		WithClock(func() time.Time { return testTime }),
		WithRandom(fixedRandom()),
	}
	e.composer = New(Deps{
		Chats:        e.chats,
		Calls:        e.calls,
		Bots:         e.bots,
		Participants: e.participants,
		Messages:     e.messages,
		Dispatcher:   e.dispatcher,
		Sessions:     e.sessions,
		Signaler:     e.signaler,
		Self:         testSelf,
	}, append(base, opts...)...)
	return e
}

// fixedRandom yields a deterministic byte stream long enough for any single
// compose call (32-byte secret + 8-byte id).
func fixedRandom() *bytes.Reader {
	buf := make([]byte, 256)
	for i := range buf {
		buf[i] = byte(i + 1)
	}
	return bytes.NewReader(buf)
}

func userChat(s string) *store.Chat {
	return &store.Chat{ID: wid.MustParse(s)}
}

func groupChat(s string) *store.Chat {
	return &store.Chat{ID: wid.MustParse(s), IsGroup: true}
}

var errExternal = errors.New("external failure")
