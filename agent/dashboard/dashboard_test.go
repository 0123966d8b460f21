package dashboard

import (
	"testing"
	"time"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestBoardViews(t *testing.T) {
	b := NewBoard(WithClock(fixedClock()))

	b.Update(Snapshot{ID: "c1", Stage: "collecting_info", Collected: map[string]string{"service": "skip"}})
	b.Update(Snapshot{ID: "c2", Stage: "completed", Status: StatusCompleted, Collected: map[string]string{"service": "mav"}})

	user := b.User()
	if user.TotalCalls != 2 || user.ActiveCalls != 1 || !user.HasData {
		t.Fatalf("user view = %+v", user)
	}

	mgr := b.Manager()
	if mgr.CompletedCalls != 1 || mgr.ConversionRate != 50 {
		t.Fatalf("manager view = %+v", mgr)
	}
	if mgr.ServiceBreakdown["skip"] != 1 || mgr.ServiceBreakdown["mav"] != 1 {
		t.Fatalf("breakdown = %v", mgr.ServiceBreakdown)
	}
}

func TestBoardUpsertKeepsOneRowPerConversation(t *testing.T) {
	b := NewBoard(WithClock(fixedClock()))
	b.Update(Snapshot{ID: "c1", Stage: "collecting_info"})
	b.Update(Snapshot{ID: "c1", Stage: "booking"})

	user := b.User()
	if user.TotalCalls != 1 {
		t.Fatalf("total = %d, want 1", user.TotalCalls)
	}
	if user.LiveCalls[0].Stage != "booking" {
		t.Fatalf("stage = %q, want latest", user.LiveCalls[0].Stage)
	}
}

func TestBoardRecentLimit(t *testing.T) {
	b := NewBoard(WithClock(fixedClock()))
	for i := 0; i < 15; i++ {
		b.Update(Snapshot{ID: string(rune('a' + i)), Stage: "collecting_info"})
	}
	user := b.User()
	if len(user.LiveCalls) != 10 {
		t.Fatalf("live calls = %d, want the last 10", len(user.LiveCalls))
	}
	if user.TotalCalls != 15 {
		t.Fatalf("total = %d", user.TotalCalls)
	}
}

func TestBoardIgnoresEmptyID(t *testing.T) {
	b := NewBoard()
	b.Update(Snapshot{Stage: "collecting_info"})
	if b.User().TotalCalls != 0 {
		t.Fatal("snapshot without id must be dropped")
	}
}
