package agents

import (
	"context"

	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/rules"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

// completeBooking finalizes the booking and fires the payment-link SMS. The
// SMS is best effort and only changes the confirmation copy.
func (a *Agent) completeBooking(ctx context.Context, st *statex.Conversation) (string, string) {
	conf, err := a.deps.Booking.Complete(ctx, contractx.CompletionRequest{
		BookingRef: st.BookingRef,
		FirstName:  st.FirstName,
		Phone:      st.Phone,
		Postcode:   st.Postcode,
		Service:    st.Service,
		Type:       st.Type,
	})
	if err != nil {
		log.Warn().Err(err).Str("conversation_id", st.ID).Str("booking_ref", st.BookingRef).Msg("booking completion failed")
		return rules.CompletionFailureMessage, stageBooking
	}

	st.BookingCompleted = true
	st.BookingRef = conf.BookingRef
	st.Price = conf.Price
	st.PriceAmount = rules.ParsePrice(conf.Price)

	smsSent := false
	if a.deps.Notifier != nil && st.Phone != "" && conf.PaymentLink != "" {
		err := a.deps.Notifier.SendPaymentLink(ctx, contractx.PaymentNotice{
			FirstName:   st.FirstName,
			Phone:       st.Phone,
			Service:     a.profile.DisplayName,
			BookingRef:  conf.BookingRef,
			Price:       conf.Price,
			PaymentLink: conf.PaymentLink,
		})
		if err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Msg("payment link sms failed")
		} else {
			smsSent = true
		}
	}

	return rules.ConfirmBooking(conf.BookingRef, conf.Price, conf.PaymentLink, st.Phone, smsSent), stageCompleted
}
