package agents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kanchang12/wastekingjennifer-sub000/agent/rules"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

const specialistIntro = "I will take some information from you before passing onto our specialist team to give you a cost and availability."

const wasteBagsInfo = "Our skip bags are for light waste only. Is this for light waste and our man and van service will collect the rubbish? " +
	"We can deliver a bag out to you and you can fill it and then we collect and recycle the rubbish. " +
	"We have 3 sizes: 1.5, 3.6, 4.5 cubic yards bags. Bags are great as there's no time limit and we collect when you're ready"

// CategoryRule is one qualifying category: trigger phrases, the scripted
// question sequence, and what happens once the questions are answered.
// Questions use snake_case keys; the caller sees them humanized.
type CategoryRule struct {
	Name      string
	Triggers  []string
	Questions []string
	Action    rules.ActionKind
	Script    string
}

// DefaultCategories is the ordered qualifying table. First trigger match
// wins; messages matching nothing fall through to the normal quote-and-book
// flow.
var DefaultCategories = []CategoryRule{
	{
		Name:      "road_sweeper",
		Triggers:  []string{"road sweeper", "road sweeping", "street sweeping"},
		Questions: []string{"postcode", "hours_required", "tipping_location", "when_required"},
		Action:    rules.ActionTakeDetails,
		Script:    specialistIntro,
	},
	{
		Name:      "toilet_hire",
		Triggers:  []string{"toilet hire", "portaloo", "portable toilet"},
		Questions: []string{"postcode", "number_required", "event_or_longterm", "duration", "delivery_date"},
		Action:    rules.ActionTakeDetails,
		Script:    specialistIntro,
	},
	{
		Name:     "asbestos",
		Triggers: []string{"asbestos"},
		Action:   rules.ActionTakeDetails,
		Script:   "Asbestos requires specialist handling. Let me arrange for our certified team to call you back.",
	},
	{
		Name:      "hazardous_waste",
		Triggers:  []string{"hazardous waste", "chemical waste", "dangerous waste"},
		Questions: []string{"postcode", "description", "data_sheet"},
		Action:    rules.ActionTakeDetails,
		Script:    specialistIntro,
	},
	{
		Name:      "wheelie_bins",
		Triggers:  []string{"wheelie bin", "wheelie bins", "bin hire"},
		Questions: []string{"postcode", "domestic_or_commercial", "waste_type", "bin_size", "number_bins", "collection_frequency", "duration"},
		Action:    rules.ActionTakeDetails,
		Script:    specialistIntro,
	},
	{
		Name:     "waste_bags",
		Triggers: []string{"skip bag", "waste bag", "skip sack"},
		Action:   rules.ActionInfo,
		Script:   wasteBagsInfo,
	},
	{
		Name:     "sofa_disposal",
		Triggers: []string{"sofa"},
		Action:   rules.ActionQuoteAndBook,
		Script:   "No, sofa is not allowed in a skip as it's upholstered furniture. We can help with Man & Van service. We charge extra due to EA regulations.",
	},
}

// Qualifier is the catch-all agent. It classifies messages into category
// rules and walks their question scripts; anything unclassified runs the
// shared quote-and-book engine.
type Qualifier struct {
	*Agent
	categories []CategoryRule
	newRef     func() string
}

// QualifierOption customizes a Qualifier.
type QualifierOption func(*Qualifier)

// WithCategories replaces the default category table.
func WithCategories(categories []CategoryRule) QualifierOption {
	return func(q *Qualifier) {
		if len(categories) > 0 {
			q.categories = categories
		}
	}
}

// WithReferenceFunc injects a deterministic reference generator for tests.
func WithReferenceFunc(fn func() string) QualifierOption {
	return func(q *Qualifier) {
		if fn != nil {
			q.newRef = fn
		}
	}
}

func NewQualifier(deps Deps, opts ...QualifierOption) *Qualifier {
	q := &Qualifier{
		Agent:      New(QualifyingProfile(), deps),
		categories: DefaultCategories,
		newRef:     newCaseReference,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

func newCaseReference() string {
	return "WK-" + strings.ToUpper(uuid.NewString()[:8])
}

func (q *Qualifier) Respond(ctx context.Context, conversationID, message string) string {
	return q.respondWith(ctx, conversationID, message, q.decideQualifying)
}

func (q *Qualifier) decideQualifying(ctx context.Context, st *statex.Conversation, message string) (string, string) {
	officeHours := q.deps.Hours.Open(q.now())

	if out, ok := q.deps.Table.Match(message, officeHours); ok {
		return q.escalate(ctx, st, out), stageTransfer
	}

	if rule, fresh, ok := q.activeCategory(st, message); ok {
		return q.runCategory(ctx, st, rule, message, fresh)
	}

	return q.decide(ctx, st, message)
}

// activeCategory resumes a mid-flight category script, or classifies the
// message into a new one. fresh marks a first match, whose message is the
// trigger rather than an answer.
func (q *Qualifier) activeCategory(st *statex.Conversation, message string) (CategoryRule, bool, bool) {
	if st.QualifyingRule != "" {
		for _, rule := range q.categories {
			if rule.Name == st.QualifyingRule {
				return rule, false, true
			}
		}
		// Stored rule no longer exists in the table; drop it.
		st.QualifyingRule = ""
		st.QuestionIndex = 0
	}

	if rule, ok := matchCategory(q.categories, strings.ToLower(message)); ok {
		return rule, true, true
	}
	return CategoryRule{}, false, false
}

// matchCategory classifies a lowercased message against a category table.
// The router uses it too, so category enquiries reach the qualifying agent
// from any conversation.
func matchCategory(categories []CategoryRule, lower string) (CategoryRule, bool) {
	for _, rule := range categories {
		for _, trigger := range rule.Triggers {
			if strings.Contains(lower, trigger) {
				return rule, true
			}
		}
	}
	return CategoryRule{}, false
}

func (q *Qualifier) runCategory(ctx context.Context, st *statex.Conversation, rule CategoryRule, message string, fresh bool) (string, string) {
	if rule.Action == rules.ActionInfo {
		return rule.Script, stageCompleted
	}

	// Quote-and-book categories answer the enquiry and carry straight on
	// with the normal sales flow.
	if rule.Action == rules.ActionQuoteAndBook {
		reply, stage := q.decide(ctx, st, message)
		if rule.Script != "" {
			reply = rule.Script + " " + reply
		}
		return reply, stage
	}

	if len(rule.Questions) == 0 {
		if err := q.deps.Transfer.RequestCallback(ctx, st.ID, rule.Name, st.Details("qualifying: "+rule.Name)); err != nil {
			log.Warn().Err(err).Str("conversation_id", st.ID).Str("rule", rule.Name).Msg("callback request failed")
		}
		return rule.Script, stageTransfer
	}

	if fresh {
		st.QualifyingRule = rule.Name
		st.QuestionIndex = 0
	} else if st.QuestionIndex > 0 && st.QuestionIndex <= len(rule.Questions) {
		answered := rule.Questions[st.QuestionIndex-1]
		if st.RuleData == nil {
			st.RuleData = make(map[string]string)
		}
		st.RuleData[answered] = message
	}

	if st.QuestionIndex < len(rule.Questions) {
		next := rule.Questions[st.QuestionIndex]
		st.QuestionIndex++
		prompt := fmt.Sprintf("I need some information: %s?", humanize(next))
		if fresh {
			prompt = rule.Script + " " + prompt
		}
		return prompt, stageCollecting
	}

	// Question script exhausted: hand everything to the specialist team.
	ref := q.newRef()
	notes := fmt.Sprintf("qualifying: %s, ref %s, answers: %s", rule.Name, ref, formatAnswers(rule.Questions, st.RuleData))
	if err := q.deps.Transfer.RequestCallback(ctx, st.ID, rule.Name, st.Details(notes)); err != nil {
		log.Warn().Err(err).Str("conversation_id", st.ID).Str("rule", rule.Name).Msg("callback request failed")
	}
	st.QualifyingRule = ""
	st.QuestionIndex = 0

	reply := fmt.Sprintf("Thanks, I've passed everything to our specialist team and they will call you back with a cost and availability. Your reference is %s.", ref)
	return reply, stageTransfer
}

func humanize(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatAnswers(questions []string, answers map[string]string) string {
	var parts []string
	for _, qn := range questions {
		if v, ok := answers[qn]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", qn, v))
		}
	}
	return strings.Join(parts, "; ")
}
