package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

func newTestWebhook(t *testing.T, handler http.HandlerFunc) (*Client, *[]Event) {
	t.Helper()
	var events []Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var e Event
		if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
			t.Errorf("decode event: %v", err)
		}
		events = append(events, e)
		if handler != nil {
			handler(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{URL: srv.URL})
	if err != nil {
		t.Fatal(err)
	}
	return client, &events
}

func TestRequestCallbackPayload(t *testing.T) {
	client, events := newTestWebhook(t, nil)

	err := client.RequestCallback(context.Background(), "c1", "director_request", contractx.CallbackDetails{
		FirstName: "John",
		Phone:     "07911123456",
		Postcode:  "SE12AB",
		Service:   "skip",
		Notes:     "escalation: director_request",
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(*events) != 1 {
		t.Fatalf("events = %d, want 1", len(*events))
	}
	e := (*events)[0]
	if e.ConversationID != "c1" || e.ActionType != "director_request" {
		t.Fatalf("event = %+v", e)
	}
	if !e.RequiresCallback {
		t.Fatal("callback event must set requires_callback")
	}
	if e.Priority != "high" {
		t.Fatalf("priority = %q, want high for director_request", e.Priority)
	}
	if e.EventID == "" {
		t.Fatal("event id must be set")
	}
}

func TestTransferReturnsHoldMessage(t *testing.T) {
	client, events := newTestWebhook(t, nil)

	msg, err := client.Transfer(context.Background(), "c1", "price_threshold", contractx.CallbackDetails{})
	if err != nil {
		t.Fatal(err)
	}
	if msg == "" {
		t.Fatal("transfer must return a hold message")
	}

	e := (*events)[0]
	if e.RequiresCallback {
		t.Fatal("live transfer must not set requires_callback")
	}
	if e.Priority != "normal" {
		t.Fatalf("priority = %q, want normal for price_threshold", e.Priority)
	}
	if e.CustomerName != "Not provided" {
		t.Fatalf("customer name = %q, want the placeholder", e.CustomerName)
	}
}

func TestDeliveryFailure(t *testing.T) {
	client, _ := newTestWebhook(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := client.RequestCallback(context.Background(), "c1", "complaint", contractx.CallbackDetails{})
	if !errors.Is(err, contractx.ErrGateway) {
		t.Fatalf("err = %v, want ErrGateway", err)
	}
}
