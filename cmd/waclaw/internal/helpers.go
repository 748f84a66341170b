package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/tinyland-inc/waclaw/pkg/composer"
	"github.com/tinyland-inc/waclaw/pkg/config"
	"github.com/tinyland-inc/waclaw/pkg/logger"
	"github.com/tinyland-inc/waclaw/pkg/store"
	"github.com/tinyland-inc/waclaw/pkg/transport"
	"github.com/tinyland-inc/waclaw/pkg/transport/ws"
	"github.com/tinyland-inc/waclaw/pkg/wid"
)

var (
	version   = "dev"
	gitCommit string
)

func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".waclaw", "config.json")
}

// LoadConfig loads .env (if present), then the JSON config with environment
// overrides.
func LoadConfig() (*config.Config, error) {
	_ = godotenv.Load()
	return config.LoadConfig(GetConfigPath())
}

// FormatVersion returns the version string with optional git commit.
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// Session bundles a connected transport with a composer wired against
// in-memory registries seeded by the command flags.
type Session struct {
	Client       *ws.Client
	Composer     *composer.Composer
	Chats        *store.MemoryChats
	Calls        *store.MemoryCalls
	Participants *store.MemoryParticipants
}

// OpenSession connects the websocket transport and wires a composer around
// it.
func OpenSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.SetDebug(cfg.Debug)

	self, err := wid.Parse(cfg.SelfJID)
	if err != nil {
		return nil, err
	}

	client := ws.NewClient(ws.Config{URL: cfg.Endpoint, DialTimeout: cfg.DialTimeout})
	if err := client.Connect(ctx); err != nil {
		return nil, err
	}

	chats := store.NewMemoryChats()
	calls := store.NewMemoryCalls()
	participants := store.NewMemoryParticipants()

	comp := composer.New(composer.Deps{
		Chats:        chats,
		Calls:        calls,
		Bots:         store.NewMemoryBotProfiles(),
		Participants: participants,
		Messages:     store.NewMemoryMessages(),
		Dispatcher:   client,
		Sessions:     transport.NopSessions,
		Signaler:     client,
		Self:         self,
	})

	return &Session{
		Client:       client,
		Composer:     comp,
		Chats:        chats,
		Calls:        calls,
		Participants: participants,
	}, nil
}

// Close tears down the session transport.
func (s *Session) Close() {
	if err := s.Client.Close(); err != nil {
		logger.WarnCF("cli", "Close failed", map[string]any{"error": err.Error()})
	}
}
