// Package wasteking is a thin client for the WasteKing booking and pricing
// API. It implements the pricing and booking gateway contracts used by the
// decision engine.
package wasteking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/rules"
)

const (
	createEndpoint   = "api/booking/create"
	priceEndpoint    = "api/booking/price"
	completeEndpoint = "api/booking/complete"

	authHeader = "x-wasteking-request"

	maxResponseSizeBytes = 1 << 20
)

type Config struct {
	BaseURL     string        `split_words:"true" default:"https://wk-smp-api-dev.azurewebsites.net"`
	AccessToken string        `split_words:"true" required:"true"`
	Timeout     time.Duration `split_words:"true" default:"15s"`
}

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

var (
	_ contractx.PricingGateway = (*Client)(nil)
	_ contractx.BookingGateway = (*Client)(nil)
)

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("wasteking base url is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.AccessToken) == "" {
		return nil, errors.New("wasteking access token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: strings.TrimSpace(cfg.AccessToken),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

type createResponse struct {
	BookingRef    string `json:"bookingRef"`
	BookingRefAlt string `json:"booking_ref"`
}

// Create opens a new booking and returns its reference.
func (c *Client) Create(ctx context.Context) (string, error) {
	payload := map[string]string{
		"type":   "chatbot",
		"source": "wasteking.co.uk",
	}
	var resp createResponse
	if err := c.post(ctx, createEndpoint, payload, &resp); err != nil {
		return "", err
	}

	ref := resp.BookingRef
	if ref == "" {
		ref = resp.BookingRefAlt
	}
	if ref == "" {
		return "", fmt.Errorf("%w: create response has no booking reference", contractx.ErrGateway)
	}
	return ref, nil
}

type priceResponse struct {
	Price string `json:"price"`
	Type  string `json:"type"`
}

// Quote fetches a fixed price for a booking reference. A "call" marker, a
// zero price, or anything unparsable yields ErrNoFixedPrice.
func (c *Client) Quote(ctx context.Context, req contractx.QuoteRequest) (contractx.Quote, error) {
	payload := map[string]string{
		"bookingRef": req.BookingRef,
		"postcode":   req.Postcode,
		"service":    string(req.Service),
		"type":       req.Type,
	}
	var resp priceResponse
	if err := c.post(ctx, priceEndpoint, payload, &resp); err != nil {
		return contractx.Quote{}, err
	}

	price := strings.TrimSpace(resp.Price)
	if price == "" || strings.EqualFold(price, "call") {
		return contractx.Quote{}, fmt.Errorf("%w: price=%q", contractx.ErrNoFixedPrice, price)
	}
	amount := rules.ParsePrice(price)
	if amount <= 0 {
		return contractx.Quote{}, fmt.Errorf("%w: price=%q", contractx.ErrNoFixedPrice, price)
	}

	return contractx.Quote{
		Price:  price,
		Amount: amount,
		Type:   strings.TrimSpace(resp.Type),
	}, nil
}

type completeResponse struct {
	BookingRef  string `json:"bookingRef"`
	Price       string `json:"price"`
	PaymentLink string `json:"paymentLink"`
}

// Complete finalizes a booking with the customer record.
func (c *Client) Complete(ctx context.Context, req contractx.CompletionRequest) (contractx.Confirmation, error) {
	payload := map[string]string{
		"bookingRef": req.BookingRef,
		"firstName":  req.FirstName,
		"phone":      req.Phone,
		"postcode":   req.Postcode,
		"service":    string(req.Service),
		"type":       req.Type,
	}
	var resp completeResponse
	if err := c.post(ctx, completeEndpoint, payload, &resp); err != nil {
		return contractx.Confirmation{}, err
	}

	ref := resp.BookingRef
	if ref == "" {
		ref = req.BookingRef
	}
	return contractx.Confirmation{
		BookingRef:  ref,
		Price:       strings.TrimSpace(resp.Price),
		PaymentLink: strings.TrimSpace(resp.PaymentLink),
	}, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal %s payload: %v", contractx.ErrGateway, endpoint, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build %s request: %v", contractx.ErrGateway, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(authHeader, c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", contractx.ErrGateway, endpoint, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			log.Debug().Err(cerr).Str("endpoint", endpoint).Msg("close response body")
		}
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("%w: read %s response: %v", contractx.ErrGateway, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("%w: %s returned status %d", contractx.ErrGateway, endpoint, resp.StatusCode)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: decode %s response: %v", contractx.ErrGateway, endpoint, err)
		}
	}
	return nil
}
