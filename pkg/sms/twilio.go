// Package sms delivers payment links by SMS through Twilio. It implements
// the notifier contract; delivery is best effort and only changes the
// confirmation copy shown to the customer.
package sms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

type Config struct {
	AccountSID string `split_words:"true" required:"true"`
	AuthToken  string `split_words:"true" required:"true"`
	FromNumber string `split_words:"true" required:"true"`
}

type Client struct {
	client *twilio.RestClient
	from   string
}

var _ contractx.Notifier = (*Client)(nil)

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.AccountSID) == "" || strings.TrimSpace(cfg.AuthToken) == "" {
		return nil, errors.New("twilio account sid and auth token are required")
	}
	if strings.TrimSpace(cfg.FromNumber) == "" {
		return nil, errors.New("twilio from number is required")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})

	return &Client{
		client: client,
		from:   strings.TrimSpace(cfg.FromNumber),
	}, nil
}

func MustNew(cfg Config) *Client {
	client, err := NewClient(cfg)
	if err != nil {
		panic(err)
	}
	return client
}

// SendPaymentLink texts the payment link to the customer.
func (c *Client) SendPaymentLink(_ context.Context, n contractx.PaymentNotice) error {
	body := fmt.Sprintf("Hi %s, your %s booking is confirmed! Ref: %s, Price: %s. Pay here: %s",
		n.FirstName, n.Service, n.BookingRef, n.Price, n.PaymentLink)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(normalizeUK(n.Phone))
	params.SetFrom(c.from)
	params.SetBody(body)

	if _, err := c.client.Api.CreateMessage(params); err != nil {
		log.Warn().Err(err).Str("booking_ref", n.BookingRef).Msg("payment link sms failed")
		return fmt.Errorf("%w: send sms: %v", contractx.ErrGateway, err)
	}

	log.Info().Str("booking_ref", n.BookingRef).Msg("payment link sms sent")
	return nil
}

// normalizeUK rewrites a national 0-prefixed number as +44.
func normalizeUK(phone string) string {
	trimmed := strings.TrimSpace(phone)
	if strings.HasPrefix(trimmed, "0") {
		return "+44" + trimmed[1:]
	}
	return trimmed
}
