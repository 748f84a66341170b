package store

import (
	"context"
	"sync"

	"github.com/tinyland-inc/waclaw/pkg/message"
)

// MessageRegistry resolves full message records by key. Owned by the host
// environment; the composer uses it to resolve quoted messages.
type MessageRegistry interface {
	GetMessageByKey(ctx context.Context, key message.MsgKey) (*message.Message, error)
}

// MemoryMessages is an in-memory MessageRegistry.
type MemoryMessages struct {
	mu       sync.RWMutex
	messages map[string]*message.Message
}

func NewMemoryMessages() *MemoryMessages {
	return &MemoryMessages{messages: make(map[string]*message.Message)}
}

func (m *MemoryMessages) Put(msg *message.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[msg.Key.String()] = msg
}

func (m *MemoryMessages) GetMessageByKey(_ context.Context, key message.MsgKey) (*message.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.messages[key.String()], nil
}
