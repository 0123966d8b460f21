// Package agents holds the per-service decision engines and the router that
// dispatches incoming messages to them. Every path through an agent yields a
// customer-facing response string; gateway failures degrade to fallback copy
// and are never surfaced raw.
package agents

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/dashboard"
	extractx "github.com/kanchang12/wastekingjennifer-sub000/agent/extract"
	"github.com/kanchang12/wastekingjennifer-sub000/agent/rules"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

// Dialogue stages reported to the dashboard.
const (
	stageCollecting = "collecting_info"
	stageBooking    = "booking"
	stageCompleted  = "completed"
	stageTransfer   = "transfer_completed"
)

// Deps are the collaborators shared by all agents. Board and Questions are
// optional; Now defaults to time.Now.
type Deps struct {
	Store     statex.Store
	Pricing   contractx.PricingGateway
	Booking   contractx.BookingGateway
	Notifier  contractx.Notifier
	Transfer  contractx.Transferer
	Questions contractx.QuestionWriter
	Table     rules.Table
	Hours     rules.Schedule
	Board     *dashboard.Board
	Now       func() time.Time
}

func (d *Deps) defaults() {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Hours == nil {
		d.Hours = rules.DefaultSchedule
	}
	if d.Table == nil {
		d.Table = rules.DefaultTable
	}
}

// Agent is the shared decision engine, specialized per service by Profile.
type Agent struct {
	profile Profile
	deps    Deps
}

func New(profile Profile, deps Deps) *Agent {
	deps.defaults()
	return &Agent{profile: profile, deps: deps}
}

func (a *Agent) now() time.Time { return a.deps.Now() }

// Respond handles one customer message and returns the reply.
func (a *Agent) Respond(ctx context.Context, conversationID, message string) string {
	return a.respondWith(ctx, conversationID, message, a.decide)
}

type decideFunc func(ctx context.Context, st *statex.Conversation, message string) (string, string)

// respondWith runs the shared per-turn plumbing around a decision procedure:
// load, merge extraction, decide, persist, publish.
func (a *Agent) respondWith(ctx context.Context, conversationID, message string, decide decideFunc) string {
	st, err := a.loadOrCreate(ctx, conversationID)
	if err != nil {
		log.Error().Err(err).Str("conversation_id", conversationID).Msg("load conversation state")
		return rules.FallbackPrompt
	}

	st.Merge(extractx.Extract(message), a.now())
	st.Record("Customer: " + message)

	reply, stage := decide(ctx, st, message)

	// Conversation standard: a new customer's first collecting reply opens
	// with the greeting. Escalations and info scripts carry their own copy.
	if stage == stageCollecting && len(st.History) == 1 {
		reply = rules.Greeting + ". " + reply
	}

	st.Record("Agent: " + reply)
	if err := a.deps.Store.Save(ctx, st); err != nil {
		log.Error().Err(err).Str("conversation_id", st.ID).Msg("save conversation state")
	}
	a.publish(st, stage)

	log.Info().
		Str("conversation_id", st.ID).
		Str("service", string(a.profile.Service)).
		Str("stage", stage).
		Msg("turn handled")
	return reply
}

// decide is the per-turn algorithm. Order matters: escalation first, then
// booking intent against a known quote, then pricing once the required
// fields are complete, then exactly one missing-field question.
func (a *Agent) decide(ctx context.Context, st *statex.Conversation, message string) (string, string) {
	officeHours := a.deps.Hours.Open(a.now())

	if out, ok := a.deps.Table.Match(message, officeHours); ok {
		return a.escalate(ctx, st, out), stageTransfer
	}

	if st.BookingCompleted {
		return rules.Closing, stageCompleted
	}

	a.applyDefaults(st)
	intent := rules.BookingIntent(message)

	if intent && st.HasQuote() {
		return a.completeBooking(ctx, st)
	}

	if st.RequiredComplete() && !st.HasQuote() {
		return a.runPricing(ctx, st, intent, officeHours)
	}

	if field, ok := st.FirstMissing(a.profile.FieldOrder); ok {
		return a.askFor(ctx, st, field), stageCollecting
	}

	if st.HasQuote() {
		return rules.RepeatPrice(st.Price), stageBooking
	}

	return rules.FallbackPrompt, stageCollecting
}

// applyDefaults fills the implied service and type for a concrete agent once
// the caller has identified themselves. The qualifying agent implies nothing.
func (a *Agent) applyDefaults(st *statex.Conversation) {
	if a.profile.Service == contractx.ServiceQualifying {
		return
	}
	if st.Service == "" && st.FirstName != "" && st.Postcode != "" {
		st.Service = a.profile.Service
	}
	if st.Service == a.profile.Service && st.Type == "" {
		st.Type = a.profile.DefaultType
	}
}

// escalate performs the matched escalation's side effect and returns its
// customer copy. Transfer and callback failures are logged only; the caller
// still gets the scripted response.
func (a *Agent) escalate(ctx context.Context, st *statex.Conversation, out rules.Outcome) string {
	details := st.Details("escalation: " + out.Category)
	switch out.Action {
	case rules.ActionTransferNow:
		if _, err := a.deps.Transfer.Transfer(ctx, st.ID, out.Category, details); err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Str("category", out.Category).Msg("live transfer failed")
		}
	default:
		if err := a.deps.Transfer.RequestCallback(ctx, st.ID, out.Category, details); err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Str("category", out.Category).Msg("callback request failed")
		}
	}
	return out.Message
}

// askFor phrases the question for one missing field. The question writer may
// fail or return junk; the scripted copy always stands in.
func (a *Agent) askFor(ctx context.Context, st *statex.Conversation, field statex.Field) string {
	scripted := rules.FieldQuestion(string(field))
	if a.deps.Questions == nil {
		return scripted
	}
	q, err := a.deps.Questions.NextQuestion(ctx, contractx.QuestionRequest{
		Field:    string(field),
		Scripted: scripted,
		Known:    st.KnownFields(),
		History:  st.History,
	})
	if err != nil || strings.TrimSpace(q) == "" {
		if err != nil {
			log.Debug().Err(err).Str("field", string(field)).Msg("question writer fell back to script")
		}
		return scripted
	}
	return q
}

func (a *Agent) loadOrCreate(ctx context.Context, conversationID string) (*statex.Conversation, error) {
	st, err := a.deps.Store.Load(ctx, conversationID)
	if err == nil {
		return st, nil
	}
	if err == statex.ErrNotFound {
		return statex.New(conversationID, a.now()), nil
	}
	return nil, err
}

func (a *Agent) publish(st *statex.Conversation, stage string) {
	if a.deps.Board == nil {
		return
	}
	status := dashboard.StatusActive
	if stage == stageCompleted || stage == stageTransfer {
		status = dashboard.StatusCompleted
	}
	a.deps.Board.Update(dashboard.Snapshot{
		ID:         st.ID,
		Stage:      stage,
		Collected:  st.KnownFields(),
		Transcript: st.History,
		Status:     status,
		Price:      st.Price,
		BookingRef: st.BookingRef,
	})
}
