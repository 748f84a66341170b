package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tinyland-inc/waclaw/pkg/composer"
	"github.com/tinyland-inc/waclaw/pkg/message"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/transport"
	"github.com/tinyland-inc/waclaw/pkg/transport/ws"
	"github.com/tinyland-inc/waclaw/pkg/werrors"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// harness wires a composer against real in-memory registries and a live
// websocket transport backed by a local test server.
type harness struct {
	composer *composer.Composer
	client   *ws.Client
	chats    *store.MemoryChats
	calls    *store.MemoryCalls
	frames   chan string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	frames := make(chan string, 16)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			frames <- string(data)
		}
	}))
	t.Cleanup(srv.Close)

	client := ws.NewClient(ws.Config{
		URL:         "ws" + strings.TrimPrefix(srv.URL, "http"),
		DialTimeout: 2 * time.Second,
	})
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	chats := store.NewMemoryChats()
	calls := store.NewMemoryCalls()

	comp := composer.New(composer.Deps{
		Chats:        chats,
		Calls:        calls,
		Bots:         store.NewMemoryBotProfiles(),
		Participants: store.NewMemoryParticipants(),
		Messages:     store.NewMemoryMessages(),
		Dispatcher:   client,
		Sessions:     transport.NopSessions,
		Signaler:     client,
		Self:         wid.MustParse("5511000000000@c.us"),
	})

	return &harness{composer: comp, client: client, chats: chats, calls: calls, frames: frames}
}

func (h *harness) recvFrame(t *testing.T) string {
	t.Helper()
	select {
	case f := <-h.frames:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("no frame received")
		return ""
	}
}

func TestSendFlow(t *testing.T) {
	h := newHarness(t)
	chat := &store.Chat{ID: wid.MustParse("5511999999999@c.us")}
	h.chats.Put(chat)

	ctx := context.Background()
	msg, err := h.composer.ComposeOutboundMessage(ctx, chat,
		&message.Message{Kind: message.KindChat, Body: "hello"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.client.SendMessage(ctx, msg); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(h.recvFrame(t)), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["body"] != "hello" {
		t.Errorf("frame: %v", decoded)
	}
	if decoded["self"] != "out" {
		t.Errorf("directionality: %v", decoded["self"])
	}
}

func TestSendFlow_WithDelaySignals(t *testing.T) {
	h := newHarness(t)
	chat := &store.Chat{ID: wid.MustParse("5511999999999@c.us")}
	h.chats.Put(chat)

	opts := composer.DefaultSendOptions()
	opts.Delay = 20 * time.Millisecond

	ctx := context.Background()
	msg, err := h.composer.ComposeOutboundMessage(ctx, chat,
		&message.Message{Kind: message.KindChat, Body: "typing..."}, &opts)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.client.SendMessage(ctx, msg); err != nil {
		t.Fatal(err)
	}

	composing := h.recvFrame(t)
	if !strings.Contains(composing, "<composing/>") {
		t.Errorf("first frame: %s", composing)
	}
	paused := h.recvFrame(t)
	if !strings.Contains(paused, "<paused/>") {
		t.Errorf("second frame: %s", paused)
	}
	final := h.recvFrame(t)
	if !strings.Contains(final, "typing...") {
		t.Errorf("final frame: %s", final)
	}
}

func TestEndCallFlow(t *testing.T) {
	h := newHarness(t)
	h.calls.Put(&store.Call{
		ID:      "CALL9",
		PeerJID: wid.MustParse("5511999999999@c.us"),
		State:   store.CallStateOutgoingCalling,
	})

	ok, err := h.composer.EndCall(context.Background(), "")
	if err != nil || !ok {
		t.Fatalf("EndCall: %v %v", ok, err)
	}

	frame := h.recvFrame(t)
	if !strings.HasPrefix(frame, "<call ") {
		t.Errorf("frame: %s", frame)
	}
	if !strings.Contains(frame, `call-id="CALL9"`) {
		t.Errorf("frame: %s", frame)
	}
	if !strings.Contains(frame, `call-creator="5511999999999@c.us"`) {
		t.Errorf("frame: %s", frame)
	}
}

func TestEndCallFlow_SecondEndFails(t *testing.T) {
	h := newHarness(t)
	call := &store.Call{
		ID:      "CALL9",
		PeerJID: wid.MustParse("5511999999999@c.us"),
		State:   store.CallStateActive,
	}
	h.calls.Put(call)

	if _, err := h.composer.EndCall(context.Background(), ""); err != nil {
		t.Fatal(err)
	}
	call.State = store.CallStateTerminated
	h.calls.Put(call)

	_, err := h.composer.EndCall(context.Background(), "")
	if werrors.KindOf(err) != werrors.KindCallNotFound {
		t.Errorf("kind = %q (err: %v)", werrors.KindOf(err), err)
	}
}
