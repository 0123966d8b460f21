// Package state holds the per-conversation field set and its store. A
// conversation accumulates monotonically: merges only add fields or replace
// them with non-empty values, never clear them.
package state

import (
	"errors"
	"strings"
	"time"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	extractx "github.com/kanchang12/wastekingjennifer-sub000/agent/extract"
)

// Field names the required customer fields in ask-order terms.
type Field string

const (
	FieldName     Field = "firstName"
	FieldPostcode Field = "postcode"
	FieldPhone    Field = "phone"
	FieldService  Field = "service"
)

var (
	ErrNotFound = errors.New("conversation not found")
	ErrNilState = errors.New("conversation is nil")
	ErrNoID     = errors.New("conversation id is empty")
)

// Conversation is the accumulated state for one caller, keyed by the opaque
// conversation identifier. Price and BookingRef are set together by the
// pricing flow or not at all; BookingCompleted is terminal.
type Conversation struct {
	ID string `json:"id"`

	FirstName string               `json:"firstName,omitempty"`
	Phone     string               `json:"phone,omitempty"`
	Postcode  string               `json:"postcode,omitempty"`
	Service   contractx.ServiceType `json:"service,omitempty"`
	Type      string               `json:"type,omitempty"`

	WasteType string `json:"waste_type,omitempty"`
	Location  string `json:"location,omitempty"`

	Price       string  `json:"price,omitempty"`
	PriceAmount float64 `json:"price_amount,omitempty"`
	BookingRef  string  `json:"booking_ref,omitempty"`

	BookingCompleted bool `json:"booking_completed,omitempty"`

	// Qualifying-agent scratch: which category script is mid-flight and how
	// far through its questions the caller is.
	QualifyingRule string            `json:"qualifying_rule,omitempty"`
	QuestionIndex  int               `json:"question_index,omitempty"`
	RuleData       map[string]string `json:"rule_data,omitempty"`

	History []string `json:"history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty conversation for id.
func New(id string, now time.Time) *Conversation {
	return &Conversation{
		ID:        id,
		CreatedAt: now.UTC(),
		UpdatedAt: now.UTC(),
	}
}

// Merge folds an extraction result into the conversation. Only non-empty,
// non-whitespace values replace what is stored; a field once set can never be
// cleared by a later merge.
func (c *Conversation) Merge(f extractx.Fields, now time.Time) {
	setString(&c.FirstName, f.FirstName)
	setString(&c.Phone, f.Phone)
	setString(&c.Postcode, f.Postcode)
	setString(&c.Type, f.Type)
	setString(&c.WasteType, f.WasteType)
	setString(&c.Location, f.Location)
	if strings.TrimSpace(string(f.Service)) != "" {
		c.Service = f.Service
	}
	c.UpdatedAt = now.UTC()
}

func setString(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// Get returns the stored value for a required field.
func (c *Conversation) Get(f Field) string {
	switch f {
	case FieldName:
		return c.FirstName
	case FieldPostcode:
		return c.Postcode
	case FieldPhone:
		return c.Phone
	case FieldService:
		return string(c.Service)
	}
	return ""
}

// RequiredComplete reports whether all four fields that gate a pricing
// attempt are present.
func (c *Conversation) RequiredComplete() bool {
	return c.FirstName != "" && c.Phone != "" && c.Postcode != "" && c.Service != ""
}

// FirstMissing walks the given ask-order and returns the first required field
// that is still empty.
func (c *Conversation) FirstMissing(order []Field) (Field, bool) {
	for _, f := range order {
		if strings.TrimSpace(c.Get(f)) == "" {
			return f, true
		}
	}
	return "", false
}

// HasQuote reports whether pricing is known. Price and BookingRef are only
// ever written together.
func (c *Conversation) HasQuote() bool {
	return c.Price != "" && c.BookingRef != ""
}

// SetQuote records a successful pricing result.
func (c *Conversation) SetQuote(q contractx.Quote, bookingRef string, now time.Time) {
	c.Price = q.Price
	c.PriceAmount = q.Amount
	if q.Type != "" {
		c.Type = q.Type
	}
	c.BookingRef = bookingRef
	c.UpdatedAt = now.UTC()
}

// Record appends a transcript line.
func (c *Conversation) Record(line string) {
	c.History = append(c.History, line)
}

// KnownFields returns the required fields that are already filled, for
// question writers and operator callbacks.
func (c *Conversation) KnownFields() map[string]string {
	known := make(map[string]string, 4)
	for _, f := range []Field{FieldName, FieldPostcode, FieldPhone, FieldService} {
		if v := c.Get(f); v != "" {
			known[string(f)] = v
		}
	}
	return known
}

// Details builds the operator-facing snapshot for transfers and callbacks.
func (c *Conversation) Details(notes string) contractx.CallbackDetails {
	return contractx.CallbackDetails{
		FirstName: c.FirstName,
		Phone:     c.Phone,
		Postcode:  c.Postcode,
		Service:   string(c.Service),
		Notes:     notes,
	}
}
