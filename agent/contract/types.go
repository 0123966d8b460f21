package contract

// ServiceType identifies one of the service lines a conversation can be
// handled under. ServiceQualifying is the catch-all used when the caller has
// not named a bookable service yet.
type ServiceType string

const (
	ServiceSkip       ServiceType = "skip"
	ServiceManAndVan  ServiceType = "mav"
	ServiceGrab       ServiceType = "grab"
	ServiceQualifying ServiceType = "qualifying"
)

// QuoteRequest asks the pricing gateway for a fixed price against an already
// created booking reference.
type QuoteRequest struct {
	BookingRef string      `json:"booking_ref"`
	Postcode   string      `json:"postcode"`
	Service    ServiceType `json:"service"`
	Type       string      `json:"type,omitempty"`
}

// Quote is a successful pricing response. Price keeps the gateway's
// currency-formatted string for display; Amount is the parsed numeric value
// used for threshold checks. Type is the resolved size/capacity code, which
// may differ from the one requested.
type Quote struct {
	Price  string  `json:"price"`
	Amount float64 `json:"amount"`
	Type   string  `json:"type,omitempty"`
}

// CompletionRequest carries the customer record needed to finalize a booking.
type CompletionRequest struct {
	BookingRef string      `json:"booking_ref"`
	FirstName  string      `json:"firstName"`
	Phone      string      `json:"phone"`
	Postcode   string      `json:"postcode"`
	Service    ServiceType `json:"service"`
	Type       string      `json:"type,omitempty"`
}

// Confirmation is a successful booking completion.
type Confirmation struct {
	BookingRef  string `json:"booking_ref"`
	Price       string `json:"price"`
	PaymentLink string `json:"payment_link,omitempty"`
}

// PaymentNotice is the outbound SMS sent after a completed booking.
type PaymentNotice struct {
	FirstName   string
	Phone       string
	Service     string
	BookingRef  string
	Price       string
	PaymentLink string
}

// CallbackDetails is the customer snapshot attached to transfer and callback
// events so the operator picking up the case has context.
type CallbackDetails struct {
	FirstName string
	Phone     string
	Postcode  string
	Service   string
	Notes     string
}

// QuestionRequest asks a question writer to phrase the next missing-field
// question. Scripted is the exact fallback text; writers may rephrase it but
// never change which field is being asked for.
type QuestionRequest struct {
	Field    string
	Scripted string
	Known    map[string]string
	History  []string
}
