package state

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Store is the persistence contract used by the decision engine. State lives
// for the process lifetime only; there is no durable backend.
type Store interface {
	Load(ctx context.Context, conversationID string) (*Conversation, error)
	Save(ctx context.Context, c *Conversation) error
	Delete(ctx context.Context, conversationID string) error
}

// MemoryStore keeps conversations in an in-process map. Independent
// conversation identifiers can be accessed concurrently; a single
// conversation's messages are serialized by the caller.
type MemoryStore struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	now           func() time.Time
}

// StoreOption customizes MemoryStore.
type StoreOption func(*MemoryStore)

// WithClock injects a deterministic clock for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		conversations: make(map[string]*Conversation),
		now:           time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Load returns the stored conversation, or ErrNotFound when the identifier
// has never been seen.
func (s *MemoryStore) Load(_ context.Context, conversationID string) (*Conversation, error) {
	if strings.TrimSpace(conversationID) == "" {
		return nil, ErrNoID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	if c.RuleData != nil {
		clone.RuleData = make(map[string]string, len(c.RuleData))
		for k, v := range c.RuleData {
			clone.RuleData[k] = v
		}
	}
	clone.History = append([]string(nil), c.History...)
	return &clone, nil
}

// LoadOrCreate returns the stored conversation, creating an empty one on
// first contact.
func (s *MemoryStore) LoadOrCreate(ctx context.Context, conversationID string) (*Conversation, error) {
	c, err := s.Load(ctx, conversationID)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return nil, err
	}
	return New(conversationID, s.now()), nil
}

func (s *MemoryStore) Save(_ context.Context, c *Conversation) error {
	if c == nil {
		return ErrNilState
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrNoID
	}
	clone := *c
	s.mu.Lock()
	s.conversations[c.ID] = &clone
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, conversationID string) error {
	if strings.TrimSpace(conversationID) == "" {
		return ErrNoID
	}
	s.mu.Lock()
	delete(s.conversations, conversationID)
	s.mu.Unlock()
	return nil
}

// Len reports how many conversations are held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}
