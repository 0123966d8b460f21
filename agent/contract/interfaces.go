package contract

import "context"

// PricingGateway quotes a price for an existing booking reference.
type PricingGateway interface {
	Quote(ctx context.Context, req QuoteRequest) (Quote, error)
}

// BookingGateway creates booking references and finalizes bookings.
type BookingGateway interface {
	Create(ctx context.Context) (string, error)
	Complete(ctx context.Context, req CompletionRequest) (Confirmation, error)
}

// Notifier delivers the payment link to the customer out of band. Failures
// are logged by implementations and never surfaced to the caller.
type Notifier interface {
	SendPaymentLink(ctx context.Context, n PaymentNotice) error
}

// Transferer hands a caller to a live operator, or books a callback when a
// live handoff is not possible. Transfer returns the message to relay to the
// caller; its own success or failure is opaque to the decision engine.
type Transferer interface {
	Transfer(ctx context.Context, conversationID, reason string, d CallbackDetails) (string, error)
	RequestCallback(ctx context.Context, conversationID, reason string, d CallbackDetails) error
}

// QuestionWriter phrases the next missing-field question. Implementations
// must return a single question; the decision engine falls back to the
// scripted text on any error.
type QuestionWriter interface {
	NextQuestion(ctx context.Context, req QuestionRequest) (string, error)
}
