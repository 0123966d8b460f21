package rules

import (
	"fmt"
	"strings"
)

// Fixed conversation copy.
const (
	Greeting = "We can help you with that"
	Closing  = "Is there anything else I can help with? Thanks for trusting Waste King"

	CreateFailureMessage     = "Unable to create a booking reference right now. Please bear with us and try again in a moment."
	CompletionFailureMessage = "Unable to complete booking. Our team will call you back."
	FallbackPrompt           = "How can I help with skip hire, man & van, or grab services?"
)

// Scripted questions for the required fields, keyed by field name.
var fieldQuestions = map[string]string{
	"firstName": "What's your name?",
	"postcode":  "What's your postcode?",
	"phone":     "What's your phone number?",
	"service":   "What service do you need - skip hire, man & van, or grab hire?",
}

// FieldQuestion returns the scripted question for a required field.
func FieldQuestion(field string) string {
	if q, ok := fieldQuestions[field]; ok {
		return q
	}
	return FallbackPrompt
}

// Explicit booking phrases checked before the general affirmatives.
var bookingWords = []string{
	"book", "booking", "yes", "confirm", "proceed", "ok",
	"payment link", "booking link", "send payment", "send link",
	"complete booking", "finalize", "go ahead", "continue",
}

var affirmativeWords = []string{
	"sure", "sounds good", "perfect", "great", "lets do it", "agree",
}

// BookingIntent reports whether a message expresses the wish to book.
func BookingIntent(message string) bool {
	lower := strings.ToLower(message)
	return containsAny(lower, bookingWords) || containsAny(lower, affirmativeWords)
}

// PresentPrice builds the quote presentation line.
func PresentPrice(typeCode, serviceName, postcode, price string) string {
	return fmt.Sprintf("%s %s at %s: %s. Would you like to book this?", typeCode, serviceName, postcode, price)
}

// RepeatPrice re-presents a quote the caller has already seen.
func RepeatPrice(price string) string {
	return fmt.Sprintf("Your quote is %s. Would you like to book this?", price)
}

// ReconfirmPostcode asks the caller to check the postcode after a pricing
// miss. The copy differs when no postcode was captured at all.
func ReconfirmPostcode(postcode string) string {
	if strings.TrimSpace(postcode) == "" {
		return "I couldn't look up pricing without a postcode. What's your postcode?"
	}
	return fmt.Sprintf("I couldn't find a fixed price for %s. Could you double-check your postcode for me?", postcode)
}

// ConfirmBooking builds the completion confirmation. smsSent switches the
// payment-link suffix between the SMS notice and the save-it-yourself nudge.
func ConfirmBooking(bookingRef, price, paymentLink, phone string, smsSent bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Booking confirmed! Ref: %s, Price: %s", bookingRef, price)
	if paymentLink == "" {
		b.WriteString(". Payment processing in progress.")
		return b.String()
	}
	fmt.Fprintf(&b, ". Payment link: %s", paymentLink)
	if smsSent {
		fmt.Fprintf(&b, " Payment link sent to %s via SMS.", phone)
	} else {
		b.WriteString(" Please save the payment link above.")
	}
	return b.String()
}
