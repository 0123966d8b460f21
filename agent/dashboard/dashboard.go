// Package dashboard keeps an in-process view of live calls for the
// operations screens.
package dashboard

import (
	"sync"
	"time"
)

// Call statuses as shown on the board.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Snapshot is one conversation's row on the board.
type Snapshot struct {
	ID         string            `json:"id"`
	Stage      string            `json:"stage"`
	Collected  map[string]string `json:"collected_data"`
	Transcript []string          `json:"transcript"`
	Status     string            `json:"status"`
	Price      string            `json:"price,omitempty"`
	BookingRef string            `json:"booking_ref,omitempty"`
	UpdatedAt  time.Time         `json:"timestamp"`
}

// UserView is the reception screen payload.
type UserView struct {
	ActiveCalls int        `json:"active_calls"`
	LiveCalls   []Snapshot `json:"live_calls"`
	TotalCalls  int        `json:"total_calls"`
	HasData     bool       `json:"has_data"`
	Timestamp   time.Time  `json:"timestamp"`
}

// ManagerView adds conversion analytics for the manager screen.
type ManagerView struct {
	TotalCalls       int            `json:"total_calls"`
	CompletedCalls   int            `json:"completed_calls"`
	ConversionRate   float64        `json:"conversion_rate"`
	ServiceBreakdown map[string]int `json:"service_breakdown"`
	RecentCalls      []Snapshot     `json:"recent_calls"`
	ActiveCalls      []Snapshot     `json:"active_calls"`
	Timestamp        time.Time      `json:"timestamp"`
}

const (
	userViewLimit    = 10
	managerViewLimit = 20
)

// Board holds the live-call snapshots. Safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	calls map[string]Snapshot
	order []string
	now   func() time.Time
}

// Option customizes a Board.
type Option func(*Board)

// WithClock injects a deterministic clock for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBoard(opts ...Option) *Board {
	b := &Board{
		calls: make(map[string]Snapshot),
		now:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Update upserts a conversation's snapshot. Insertion order is kept so the
// views can show the most recent calls.
func (b *Board) Update(s Snapshot) {
	if s.ID == "" {
		return
	}
	s.UpdatedAt = b.now()
	if s.Status == "" {
		s.Status = StatusActive
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, seen := b.calls[s.ID]; !seen {
		b.order = append(b.order, s.ID)
	}
	b.calls[s.ID] = s
}

// User builds the reception screen payload.
func (b *Board) User() UserView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	active := 0
	for _, s := range b.calls {
		if s.Status == StatusActive {
			active++
		}
	}
	return UserView{
		ActiveCalls: active,
		LiveCalls:   b.recentLocked(userViewLimit),
		TotalCalls:  len(b.calls),
		HasData:     len(b.calls) > 0,
		Timestamp:   b.now(),
	}
}

// Manager builds the manager screen payload.
func (b *Board) Manager() ManagerView {
	b.mu.RLock()
	defer b.mu.RUnlock()

	completed := 0
	breakdown := make(map[string]int)
	var active []Snapshot
	for _, s := range b.calls {
		if s.Status == StatusCompleted {
			completed++
		} else {
			active = append(active, s)
		}
		service := s.Collected["service"]
		if service == "" {
			service = "unknown"
		}
		breakdown[service]++
	}

	total := len(b.calls)
	rate := 0.0
	if total > 0 {
		rate = float64(completed) / float64(total) * 100
	}
	return ManagerView{
		TotalCalls:       total,
		CompletedCalls:   completed,
		ConversionRate:   rate,
		ServiceBreakdown: breakdown,
		RecentCalls:      b.recentLocked(managerViewLimit),
		ActiveCalls:      active,
		Timestamp:        b.now(),
	}
}

func (b *Board) recentLocked(limit int) []Snapshot {
	start := 0
	if len(b.order) > limit {
		start = len(b.order) - limit
	}
	out := make([]Snapshot, 0, len(b.order)-start)
	for _, id := range b.order[start:] {
		out = append(out, b.calls[id])
	}
	return out
}
