package store

import (
	"context"
	"sync"

	"github.com/tinyland-inc/waclaw/pkg/wid"
)

// MemoryChats is an in-memory ChatRegistry.
type MemoryChats struct {
	mu    sync.RWMutex
	chats map[string]*Chat
}

func NewMemoryChats() *MemoryChats {
	return &MemoryChats{chats: make(map[string]*Chat)}
}

func (m *MemoryChats) Put(c *Chat) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats[c.ID.String()] = c
}

func (m *MemoryChats) Get(id wid.WID) (*Chat, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chats[id.String()]
	return c, ok
}

// MemoryCalls is an in-memory CallRegistry. FindFirst scans calls in
// insertion order, matching the iteration order of the live call store.
type MemoryCalls struct {
	mu    sync.RWMutex
	calls map[string]*Call
	order []string
}

func NewMemoryCalls() *MemoryCalls {
	return &MemoryCalls{calls: make(map[string]*Call)}
}

func (m *MemoryCalls) Put(c *Call) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.calls[c.ID]; !exists {
		m.order = append(m.order, c.ID)
	}
	m.calls[c.ID] = c
}

func (m *MemoryCalls) Get(id string) (*Call, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.calls[id]
	return c, ok
}

func (m *MemoryCalls) FindFirst(pred func(*Call) bool) (*Call, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, id := range m.order {
		if c := m.calls[id]; pred(c) {
			return c, true
		}
	}
	return nil, false
}

// MemoryBotProfiles is an in-memory BotProfileRegistry.
type MemoryBotProfiles struct {
	mu       sync.RWMutex
	profiles map[string]*BotProfile
}

func NewMemoryBotProfiles() *MemoryBotProfiles {
	return &MemoryBotProfiles{profiles: make(map[string]*BotProfile)}
}

func (m *MemoryBotProfiles) Put(id wid.WID, p *BotProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[id.String()] = p
}

func (m *MemoryBotProfiles) Get(id wid.WID) (*BotProfile, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.profiles[id.String()]
	return p, ok
}

// MemoryParticipants is an in-memory ParticipantDirectory.
type MemoryParticipants struct {
	mu      sync.RWMutex
	members map[string][]wid.WID
}

func NewMemoryParticipants() *MemoryParticipants {
	return &MemoryParticipants{members: make(map[string][]wid.WID)}
}

func (m *MemoryParticipants) Put(chatID wid.WID, participants ...wid.WID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.members[chatID.String()] = append(m.members[chatID.String()], participants...)
}

func (m *MemoryParticipants) Participants(_ context.Context, chatID wid.WID) ([]wid.WID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := m.members[chatID.String()]
	out := make([]wid.WID, len(list))
	copy(out, list)
	return out, nil
}
