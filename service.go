package lookapp

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/MrPergite/lookapp-sub001/styles"
)

// SearchQuery is one shopper query. Text may be empty when Image carries a
// photo (base64 or URL); at least one must be set.
type SearchQuery struct {
	Text  string
	Image string
}

// apologyMessage is the AI message synthesized when a search fails outright
// and no gateway-composed response exists.
const apologyMessage = "Sorry, something went wrong while searching. Please try again."

// Assistant orchestrates one session's searches: it owns the dispatch
// sequence around the gateway round-trip and serializes searches so that a
// second query cannot interleave with one still in flight.
type Assistant struct {
	mu      sync.Mutex
	store   *Store
	gateway SearchGateway
	hooks   *HookRegistry
	styles  *styles.Registry
	logger  *slog.Logger
}

// NewAssistant creates an orchestrator bound to a store.
func NewAssistant(store *Store, gateway SearchGateway, hooks *HookRegistry, profiles *styles.Registry, logger *slog.Logger) *Assistant {
	if hooks == nil {
		hooks = NewHookRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assistant{
		store:   store,
		gateway: gateway,
		hooks:   hooks,
		styles:  profiles,
		logger:  logger,
	}
}

// Store returns the conversation store this assistant drives.
func (a *Assistant) Store() *Store {
	return a.store
}

// Search runs the full query orchestration: record the query, compose the
// search phrase, fetch products, and append the normalized batch to the new
// group. On any failure the store ends up with the error surfaced, an
// apologetic AI message on the group, and loading cleared.
//
// Searches on the same assistant are serialized; a caller issuing a second
// query while one is in flight blocks until the first settles.
func (a *Assistant) Search(ctx context.Context, query SearchQuery) (ConversationGroup, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if query.Text == "" && query.Image == "" {
		return ConversationGroup{}, NewValidationError("query needs text or an image")
	}

	inputType := InputText
	if query.Image != "" {
		inputType = InputImage
	}

	a.store.Dispatch(SetInputType{Kind: inputType})
	a.store.Dispatch(AddUserMessage{Text: query.Text, Image: query.Image})
	a.store.Dispatch(SetError{})
	a.store.Dispatch(SetLoading{Loading: true})

	state := a.store.State()
	payload := SearchPartRequest{
		ChatHistory:     a.gatewayHistory(state, query),
		UsedItems:       state.UsedItems,
		Personalization: state.Personalization,
		InputType:       inputType,
		SessionID:       state.SessionID,
	}

	pre := &PreSearchRequest{
		Query:    query,
		Payload:  &payload,
		Metadata: map[string]any{},
	}
	if err := a.hooks.runPre(ctx, pre); err != nil {
		return a.fail("a pre-search hook rejected the query", err)
	}

	part, err := a.gateway.SearchPart(ctx, payload)
	if err != nil {
		a.logger.Error("search phrase composition failed", "error", err)
		return a.fail("the search service is unavailable", err)
	}

	phrase := strings.TrimSpace(part.ConversationResponse)
	if strings.Contains(phrase, "Sorry") {
		// The gateway declined the query. Terminal: the refusal is the AI
		// message, no product fetch and no retry.
		a.store.Dispatch(AddAIMessage{Text: phrase})
		a.store.Dispatch(SetError{Message: phrase})
		a.store.Dispatch(SetLoading{Loading: false})
		group, _ := a.store.ActiveGroup()
		return group, NewError(ErrCodeGateway, "query declined", ErrGatewayRefusal)
	}

	a.store.Dispatch(AddAIMessage{Text: phrase})

	prodResp, err := a.gateway.SearchProducts(ctx, SearchProductsRequest{
		ChatHistory:     append(payload.ChatHistory, GatewayMessage{Role: string(RoleAssistant), Content: phrase}),
		UsedItems:       payload.UsedItems,
		Personalization: payload.Personalization,
		SessionID:       state.SessionID,
	})
	if err != nil {
		a.logger.Error("product search failed", "error", err)
		return a.fail("product search failed", err)
	}

	post := &PostSearchRequest{
		Query:     query,
		Phrase:    phrase,
		Products:  NormalizeProducts(prodResp.ShoppingResults),
		SessionID: prodResp.SessionID,
		Metadata:  pre.Metadata,
	}
	if err := a.hooks.runPost(ctx, post); err != nil {
		return a.fail("a post-search hook rejected the results", err)
	}

	a.store.Dispatch(AddProducts{Products: post.Products, SessionID: post.SessionID})
	a.store.Dispatch(SetLoading{Loading: false})

	a.logger.Info("search completed",
		slog.String("phrase", phrase),
		slog.Int("results", len(post.Products)),
	)

	group, _ := a.store.ActiveGroup()
	return group, nil
}

// LoadMore reveals the next pagination slice of a group.
func (a *Assistant) LoadMore(groupID string) (ConversationGroup, error) {
	if _, ok := a.store.Group(groupID); !ok {
		return ConversationGroup{}, NewNotFoundError("conversation group", groupID)
	}
	a.store.Dispatch(GetMoreProducts{GroupID: groupID})
	group, _ := a.store.Group(groupID)
	return group, nil
}

// Reset drops the conversation back to its initial state.
func (a *Assistant) Reset() {
	a.store.Dispatch(Reset{})
}

// fail settles a failed search: surface the error, put an apology on the
// active group, and clear the loading flag.
func (a *Assistant) fail(message string, err error) (ConversationGroup, error) {
	a.store.Dispatch(SetError{Message: message})
	a.store.Dispatch(AddAIMessage{Text: apologyMessage})
	a.store.Dispatch(SetLoading{Loading: false})
	group, _ := a.store.ActiveGroup()
	if _, ok := err.(*Error); ok {
		return group, err
	}
	return group, NewGatewayError(message, err)
}

// gatewayHistory flattens the conversation groups into the message list the
// gateway expects. When personalization is on and a style profile matches
// the query, its instructions lead the history as a system message.
func (a *Assistant) gatewayHistory(state State, query SearchQuery) []GatewayMessage {
	var history []GatewayMessage

	if state.Personalization && a.styles != nil {
		if profile, ok := a.styles.Match(query.Text); ok {
			history = append(history, GatewayMessage{
				Role:    "system",
				Content: styleInstructions(profile),
			})
		}
	}

	for _, group := range state.Groups {
		if group.UserMessage != nil {
			history = append(history, GatewayMessage{
				Role:    string(RoleUser),
				Content: group.UserMessage.Text,
				Image:   group.UserMessage.Image,
			})
		}
		if group.AIMessage != nil {
			history = append(history, GatewayMessage{
				Role:    string(RoleAssistant),
				Content: group.AIMessage.Text,
			})
		}
	}
	return history
}

func styleInstructions(p *styles.Profile) string {
	var b strings.Builder
	b.WriteString(p.Instructions)
	if len(p.PreferredBrands) > 0 {
		b.WriteString(" Preferred brands: ")
		b.WriteString(strings.Join(p.PreferredBrands, ", "))
		b.WriteString(".")
	}
	return b.String()
}
