// Package webhook posts transfer and callback events to the operations
// automation endpoint. It implements the transferer contract used by the
// decision engine.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

// Reasons flagged as high priority on the operator side.
var highPriorityReasons = map[string]struct{}{
	"complaint":        {},
	"director_request": {},
}

type Config struct {
	URL     string        `split_words:"true" required:"true"`
	Timeout time.Duration `split_words:"true" default:"10s"`
}

// Event is the payload delivered for every transfer or callback.
type Event struct {
	EventID          string `json:"event_id"`
	ConversationID   string `json:"conversation_id"`
	Timestamp        string `json:"timestamp"`
	ActionType       string `json:"action_type"`
	CustomerName     string `json:"customer_name"`
	CustomerPhone    string `json:"customer_phone"`
	CustomerPostcode string `json:"customer_postcode"`
	ServiceRequested string `json:"service_requested"`
	InternalNotes    string `json:"internal_notes"`
	RequiresCallback bool   `json:"requires_callback"`
	Priority         string `json:"priority"`
}

type Client struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

var _ contractx.Transferer = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	endpoint := strings.TrimSpace(cfg.URL)
	if endpoint == "" {
		return nil, errors.New("webhook url is required")
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		url: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// Transfer notifies the operator desk of a live handoff and returns the hold
// message to relay.
func (c *Client) Transfer(ctx context.Context, conversationID, reason string, d contractx.CallbackDetails) (string, error) {
	if err := c.send(ctx, conversationID, reason, d, false); err != nil {
		return "", err
	}
	return "Please bear with me while I transfer you now.", nil
}

// RequestCallback records that the customer is waiting for a callback.
func (c *Client) RequestCallback(ctx context.Context, conversationID, reason string, d contractx.CallbackDetails) error {
	return c.send(ctx, conversationID, reason, d, true)
}

func (c *Client) send(ctx context.Context, conversationID, reason string, d contractx.CallbackDetails, callback bool) error {
	event := Event{
		EventID:          uuid.NewString(),
		ConversationID:   conversationID,
		Timestamp:        c.now().UTC().Format(time.RFC3339),
		ActionType:       reason,
		CustomerName:     orDefault(d.FirstName, "Not provided"),
		CustomerPhone:    orDefault(d.Phone, "Not provided"),
		CustomerPostcode: orDefault(d.Postcode, "Not provided"),
		ServiceRequested: orDefault(d.Service, "Not specified"),
		InternalNotes:    d.Notes,
		RequiresCallback: callback,
		Priority:         priorityFor(reason),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal webhook event: %v", contractx.ErrGateway, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build webhook request: %v", contractx.ErrGateway, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: webhook post: %v", contractx.ErrGateway, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Debug().Err(cerr).Msg("close webhook response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: webhook returned status %d", contractx.ErrGateway, resp.StatusCode)
	}

	log.Info().
		Str("event_id", event.EventID).
		Str("conversation_id", conversationID).
		Str("reason", reason).
		Bool("requires_callback", callback).
		Msg("webhook event delivered")
	return nil
}

func priorityFor(reason string) string {
	if _, ok := highPriorityReasons[reason]; ok {
		return "high"
	}
	return "normal"
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
