package agents

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	contractx "github.com/kanchang12/wastekingjennifer-sub000/agent/contract"
	statex "github.com/kanchang12/wastekingjennifer-sub000/agent/state"
)

// DefaultConversationID is used when the surface does not supply one.
const DefaultConversationID = "default"

// Responder handles one customer message for a conversation.
type Responder interface {
	Respond(ctx context.Context, conversationID, message string) string
}

// Explicit routing vocabularies. Only an explicit mention moves a
// conversation to a concrete agent; everything else goes to the pinned
// service or the qualifying agent.
var (
	skipRouteWords = []string{"skip hire", "yard skip", "cubic yard", "skip"}
	mavRouteWords  = []string{"man and van", "man & van", "mav", "van collection", "small van", "medium van", "large van"}
	grabRouteWords = []string{"grab hire", "grab lorry", "grab"}
)

// Router dispatches messages to the service agents. Messages for the same
// conversation are serialized; different conversations run concurrently.
type Router struct {
	skip       Responder
	mav        Responder
	grab       Responder
	qualifying Responder
	store      statex.Store
	categories []CategoryRule

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRouter(skip, mav, grab, qualifying Responder, store statex.Store) *Router {
	r := &Router{
		skip:       skip,
		mav:        mav,
		grab:       grab,
		qualifying: qualifying,
		store:      store,
		categories: DefaultCategories,
		locks:      make(map[string]*sync.Mutex),
	}
	if q, ok := qualifying.(*Qualifier); ok {
		r.categories = q.categories
	}
	return r
}

// Route picks the agent for a message and runs it. An empty conversation
// identifier falls back to single-conversation mode.
func (r *Router) Route(ctx context.Context, conversationID, message string) string {
	if strings.TrimSpace(conversationID) == "" {
		conversationID = DefaultConversationID
	}

	lock := r.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	target, service := r.pick(ctx, conversationID, message)
	log.Debug().Str("conversation_id", conversationID).Str("service", service).Msg("routed message")
	return target.Respond(ctx, conversationID, message)
}

func (r *Router) pick(ctx context.Context, conversationID, message string) (Responder, string) {
	lower := strings.ToLower(message)

	st, stErr := r.store.Load(ctx, conversationID)

	// Category enquiries and mid-script answers go to the qualifying agent
	// before any service keyword applies; "skip bag" is a waste-bags
	// question, not skip hire.
	if stErr == nil && st.QualifyingRule != "" {
		return r.qualifying, string(contractx.ServiceQualifying)
	}
	if _, ok := matchCategory(r.categories, lower); ok {
		return r.qualifying, string(contractx.ServiceQualifying)
	}

	switch {
	case containsAnyWord(lower, skipRouteWords):
		return r.skip, string(contractx.ServiceSkip)
	case containsAnyWord(lower, mavRouteWords):
		return r.mav, string(contractx.ServiceManAndVan)
	case containsAnyWord(lower, grabRouteWords):
		return r.grab, string(contractx.ServiceGrab)
	}

	// No explicit mention: stay with the service the conversation is
	// already pinned to.
	if stErr == nil {
		switch st.Service {
		case contractx.ServiceSkip:
			return r.skip, string(contractx.ServiceSkip)
		case contractx.ServiceManAndVan:
			return r.mav, string(contractx.ServiceManAndVan)
		case contractx.ServiceGrab:
			return r.grab, string(contractx.ServiceGrab)
		}
	}

	return r.qualifying, string(contractx.ServiceQualifying)
}

func (r *Router) conversationLock(conversationID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[conversationID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[conversationID] = lock
	}
	return lock
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
