package agents

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/rules"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

// runPricing is the shared quote flow: create a booking reference, fetch a
// price against it, persist both together, then either escalate on the price
// threshold, complete immediately on prior booking intent, or present the
// quote.
func (a *Agent) runPricing(ctx context.Context, st *statex.Conversation, intent, officeHours bool) (string, string) {
	ref, err := a.deps.Booking.Create(ctx)
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", st.ID).Msg("booking create failed")
		return rules.CreateFailureMessage, stageCollecting
	}

	quote, err := a.deps.Pricing.Quote(ctx, contractx.QuoteRequest{
		BookingRef: ref,
		Postcode:   st.Postcode,
		Service:    st.Service,
		Type:       st.Type,
	})
	if err != nil || quote.Amount <= 0 {
		if err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Str("postcode", st.Postcode).Msg("pricing failed")
		}
		return rules.ReconfirmPostcode(st.Postcode), stageCollecting
	}

	// Persist the quote before anything else happens this turn so a
	// follow-up message sees price and reference together.
	st.SetQuote(quote, ref, a.now())
	if err := a.deps.Store.Save(ctx, st); err != nil {
		log.Error().Err(err).Str("conversation_id", st.ID).Msg("save quoted state")
	}

	if rules.BreachesThreshold(st.Service, quote.Amount, officeHours) {
		details := st.Details("price threshold: " + st.Price)
		if _, err := a.deps.Transfer.Transfer(ctx, st.ID, "price_threshold", details); err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Msg("threshold transfer failed")
		}
		return a.profile.ThresholdMessage, stageTransfer
	}

	if intent {
		return a.completeBooking(ctx, st)
	}

	return rules.PresentPrice(st.Type, a.profile.DisplayName, st.Postcode, st.Price), stageBooking
}
