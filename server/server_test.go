package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/kanchang12/wastekingjennifer-sub000/agent/dashboard"
)

type fakeRouter struct {
	replies []string
	ids     []string
}

func (f *fakeRouter) Route(_ context.Context, conversationID, message string) string {
	f.ids = append(f.ids, conversationID)
	f.replies = append(f.replies, message)
	return "We can help you with that"
}

func newTestServer() (*Server, *fakeRouter) {
	router := &fakeRouter{}
	return New(Config{Addr: ":0"}, router, dashboard.NewBoard()), router
}

func TestHandleMessage(t *testing.T) {
	srv, router := newTestServer()

	body := strings.NewReader(`{"customerquestion": "I need a skip", "conversation_id": "c1"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/wasteking", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp messageResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success || resp.Message == "" || resp.ConversationID != "c1" {
		t.Fatalf("response = %+v", resp)
	}
	if len(router.ids) != 1 || router.ids[0] != "c1" {
		t.Fatalf("router ids = %v", router.ids)
	}
}

func TestHandleMessageDefaultsConversationID(t *testing.T) {
	srv, router := newTestServer()

	body := strings.NewReader(`{"customerquestion": "hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/wasteking", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if router.ids[0] != "default" {
		t.Fatalf("conversation id = %q, want default", router.ids[0])
	}
}

func TestHandleMessageValidation(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/wasteking", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET status = %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/wasteking", strings.NewReader(`{"customerquestion": ""}`))
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty question status = %d", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDashboard(t *testing.T) {
	board := dashboard.NewBoard()
	board.Update(dashboard.Snapshot{ID: "c1", Stage: "collecting_info"})
	srv := New(Config{Addr: ":0"}, &fakeRouter{}, board)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var view dashboard.UserView
	if err := json.NewDecoder(rec.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	if view.TotalCalls != 1 || !view.HasData || view.ActiveCalls != 1 {
		t.Fatalf("view = %+v", view)
	}
}
