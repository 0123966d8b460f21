package rules

import (
	"strconv"
	"strings"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
)

// ActionKind tags what an escalation or category rule does once triggered.
type ActionKind string

const (
	// ActionTransferNow hands the caller to a live operator immediately.
	ActionTransferNow ActionKind = "transfer_now"
	// ActionTakeDetails collects the caller's details for a callback.
	ActionTakeDetails ActionKind = "take_details"
	// ActionQuoteAndBook continues down the normal pricing flow.
	ActionQuoteAndBook ActionKind = "quote_and_book"
	// ActionInfo answers with a fixed informational script.
	ActionInfo ActionKind = "info"
)

// Rule is one row of the escalation table. Triggers are matched as
// case-insensitive substrings. OfficeHours and OutOfHours carry the
// customer-facing copy for the two time-of-day states; the action may also
// differ between them.
type Rule struct {
	Category         string
	Triggers         []string
	OfficeAction     ActionKind
	OutOfHoursAction ActionKind
	OfficeHours      string
	OutOfHours       string
}

// Outcome is a matched escalation, resolved for the current time-of-day.
type Outcome struct {
	Category string
	Action   ActionKind
	Message  string
}

// Table is an ordered escalation rule list, evaluated top to bottom with
// first match winning.
type Table []Rule

// DefaultTable holds the three escalation categories. Director requests are
// never a live transfer; Glenn screens his own calls. Complaints and
// specialist services transfer live during office hours only.
var DefaultTable = Table{
	{
		Category:         "director_request",
		Triggers:         []string{"glenn currie", "director", "speak to glenn"},
		OfficeAction:     ActionTakeDetails,
		OutOfHoursAction: ActionTakeDetails,
		OfficeHours:      "I am sorry, Glenn is not available, may I take your details and Glenn will call you back?",
		OutOfHours:       "I can take your details and have our director call you back first thing tomorrow",
	},
	{
		Category:         "complaint",
		Triggers:         []string{"complaint", "complain", "unhappy", "disappointed", "frustrated", "angry"},
		OfficeAction:     ActionTransferNow,
		OutOfHoursAction: ActionTakeDetails,
		OfficeHours:      "I understand your frustration, please bear with me while I transfer you to the appropriate person.",
		OutOfHours:       "I understand your frustration. I can take your details and have our customer service team call you back first thing tomorrow.",
	},
	{
		Category: "specialist_service",
		Triggers: []string{
			"hazardous waste disposal", "asbestos removal", "asbestos collection",
			"weee electrical waste", "chemical disposal", "medical waste", "trade waste",
		},
		OfficeAction:     ActionTransferNow,
		OutOfHoursAction: ActionTakeDetails,
		OfficeHours:      "That needs our specialist team. Please bear with me while I transfer you now.",
		OutOfHours:       "Our specialist team has finished for the day. I can take your details and have them call you back first thing tomorrow.",
	},
}

// Match evaluates the table against a message. Categories earlier in the
// table shadow later ones for the same message.
func (t Table) Match(message string, officeHours bool) (Outcome, bool) {
	lower := strings.ToLower(message)
	for _, r := range t {
		if !containsAny(lower, r.Triggers) {
			continue
		}
		out := Outcome{Category: r.Category}
		if officeHours {
			out.Action = r.OfficeAction
			out.Message = r.OfficeHours
		} else {
			out.Action = r.OutOfHoursAction
			out.Message = r.OutOfHours
		}
		return out, true
	}
	return Outcome{}, false
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// Price thresholds per service, in pounds. Quotes at or above the threshold
// are escalated to a specialist, but only during office hours; out of hours
// the system always tries to close the sale itself. Skip hire has no
// threshold.
var priceThresholds = map[contractx.ServiceType]float64{
	contractx.ServiceManAndVan: 500,
	contractx.ServiceGrab:      300,
}

// Threshold returns the escalation threshold for a service. ok is false when
// the service never escalates on price.
func Threshold(service contractx.ServiceType) (float64, bool) {
	limit, ok := priceThresholds[service]
	return limit, ok
}

// BreachesThreshold reports whether a quoted amount must be escalated.
func BreachesThreshold(service contractx.ServiceType, amount float64, officeHours bool) bool {
	if !officeHours {
		return false
	}
	limit, ok := Threshold(service)
	return ok && amount >= limit
}

// ParsePrice strips currency formatting from a gateway price string. It
// returns 0 for anything that is not a number, including the gateway's
// "call" marker.
func ParsePrice(price string) float64 {
	cleaned := strings.TrimSpace(price)
	cleaned = strings.ReplaceAll(cleaned, "£", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}
