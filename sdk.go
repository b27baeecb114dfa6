// Package lookapp is a conversational shopping backend: a reducer-based
// conversation store that aggregates chat turns and product search results
// into conversation groups, a search gateway that turns chat context into
// products, and the supporting shopping list, wardrobe, and try-on services.
package lookapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/MrPergite/lookapp-sub001/shoppinglist"
	"github.com/MrPergite/lookapp-sub001/wardrobe"
)

// SDK is the main entry point. One instance serves many concurrent chat
// sessions, each with its own conversation store and assistant.
type SDK struct {
	config   Config
	gateway  SearchGateway
	sessions *sessionRegistry
	shopping shoppinglist.Store
	wardrobe wardrobe.Store
	tryon    *TryOnClient
	hooks    *HookRegistry
	logger   *slog.Logger
}

// New creates a new SDK instance with the given configuration.
func New(cfg Config) (*SDK, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &SDK{
		config:   cfg,
		gateway:  cfg.Gateway,
		shopping: cfg.ShoppingList,
		wardrobe: cfg.Wardrobe,
		tryon:    cfg.TryOn,
		hooks:    cfg.Hooks,
		logger:   cfg.Logger,
	}
	s.sessions = newSessionRegistry(func(id string) *Session {
		store := NewStore()
		return &Session{
			ID:        id,
			Store:     store,
			Assistant: NewAssistant(store, s.gateway, s.hooks, cfg.Styles, s.logger),
			CreatedAt: time.Now(),
		}
	})
	return s, nil
}

// Session returns the session for id, creating it on first use. A fresh id
// is generated when id is empty.
func (s *SDK) Session(id string) *Session {
	return s.sessions.getOrCreate(id)
}

// ChatResult is the outcome of one chat or load-more call.
type ChatResult struct {
	// SessionID identifies the session, newly generated on first use.
	SessionID string

	// Group is the conversation group the call affected.
	Group ConversationGroup

	// State is the full conversation snapshot after the call.
	State State
}

// Chat submits a query on a session, creating the session when sessionID is
// empty or unknown. The returned result carries the new conversation group
// with its AI response and first page of products.
func (s *SDK) Chat(ctx context.Context, sessionID string, query SearchQuery) (*ChatResult, error) {
	session := s.sessions.getOrCreate(sessionID)

	ctx, cancel := context.WithTimeout(ctx, s.config.RequestTimeout)
	defer cancel()

	group, err := session.Assistant.Search(ctx, query)
	if err != nil {
		// A refusal or transport failure still leaves a group with the
		// surfaced error; return it alongside the error.
		return &ChatResult{
			SessionID: session.ID,
			Group:     group,
			State:     session.Store.State(),
		}, err
	}

	return &ChatResult{
		SessionID: session.ID,
		Group:     group,
		State:     session.Store.State(),
	}, nil
}

// LoadMore reveals the next pagination slice of a group.
func (s *SDK) LoadMore(sessionID, groupID string) (*ChatResult, error) {
	session, ok := s.sessions.get(sessionID)
	if !ok {
		return nil, NewError(ErrCodeNotFound, "session not found", ErrSessionNotFound)
	}

	group, err := session.Assistant.LoadMore(groupID)
	if err != nil {
		return nil, err
	}

	return &ChatResult{
		SessionID: session.ID,
		Group:     group,
		State:     session.Store.State(),
	}, nil
}

// SessionState returns a session's conversation snapshot.
func (s *SDK) SessionState(sessionID string) (State, error) {
	session, ok := s.sessions.get(sessionID)
	if !ok {
		return State{}, NewError(ErrCodeNotFound, "session not found", ErrSessionNotFound)
	}
	return session.Store.State(), nil
}

// ResetSession restores a session to its initial state and drops it from
// the registry.
func (s *SDK) ResetSession(sessionID string) error {
	session, ok := s.sessions.get(sessionID)
	if !ok {
		return NewError(ErrCodeNotFound, "session not found", ErrSessionNotFound)
	}
	session.Assistant.Reset()
	s.sessions.remove(sessionID)
	return nil
}

// Dispatch applies an action directly to a session's store. Used for the
// toggle actions that need no orchestration.
func (s *SDK) Dispatch(sessionID string, action Action) error {
	session, ok := s.sessions.get(sessionID)
	if !ok {
		return NewError(ErrCodeNotFound, "session not found", ErrSessionNotFound)
	}
	session.Store.Dispatch(action)
	return nil
}

// ShoppingList returns the saved-items backend.
func (s *SDK) ShoppingList() shoppinglist.Store {
	return s.shopping
}

// Wardrobe returns the wardrobe backend.
func (s *SDK) Wardrobe() wardrobe.Store {
	return s.wardrobe
}

// TryOn returns the try-on client, or nil when not configured.
func (s *SDK) TryOn() *TryOnClient {
	return s.tryon
}

// HTTPHandler returns the HTTP surface for the SDK.
func (s *SDK) HTTPHandler() http.Handler {
	return newHTTPRouter(s)
}
