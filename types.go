package lookapp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role identifies the author of a chat message.
type Role string

const (
	// RoleUser marks messages written by the shopper.
	RoleUser Role = "user"

	// RoleAssistant marks messages composed by the AI stylist.
	RoleAssistant Role = "assistant"
)

// InputType describes how the shopper entered their query.
type InputType string

const (
	// InputText is a plain text query.
	InputText InputType = "text"

	// InputImage is a query that included a photo.
	InputImage InputType = "image"
)

// Message is one chat turn in a conversation group.
type Message struct {
	// Role is who authored the message.
	Role Role `json:"role"`

	// Text is the message content.
	Text string `json:"text"`

	// Image is an optional attached image payload (base64 or URL).
	// Present only on user messages that included a photo.
	Image string `json:"image,omitempty"`

	// Timestamp is when the message was inserted into the store.
	Timestamp time.Time `json:"timestamp"`
}

// Product is a single normalized search result.
type Product struct {
	// ID is unique within a result set. Provider-supplied, or synthesized
	// when the provider omits one.
	ID string `json:"id"`

	// Brand is the product brand or designer.
	Brand string `json:"brand"`

	// Name is the display name.
	Name string `json:"name"`

	// Price is the display price string (e.g. "$129.00").
	Price string `json:"price"`

	// Image is the normalized absolute image URL.
	Image string `json:"image"`

	// URL is the merchant link.
	URL string `json:"url"`

	// ProductInfo is the raw provider item, carried verbatim for
	// downstream calls (save-to-list, reactions). The store never
	// interprets it.
	ProductInfo json.RawMessage `json:"product_info,omitempty"`

	// IsSaved is a UI hint only. The authoritative save state lives in
	// the shopping list store.
	IsSaved bool `json:"isSaved,omitempty"`
}

// Pagination tracks how much of a group's product list has been revealed.
type Pagination struct {
	// Page counts reveal steps applied to the current batch. It resets to
	// 1 whenever a new batch is appended.
	Page int `json:"page"`

	// Limit is the reveal step size, fixed at group creation.
	Limit int `json:"limit"`
}

// DefaultPageLimit is the reveal step size assigned to every new group.
const DefaultPageLimit = 4

// ConversationGroup aggregates one user query, the AI response it produced,
// and the accumulated product results.
type ConversationGroup struct {
	// ID is generated at creation and never changes.
	ID string `json:"id"`

	// UserMessage is the triggering query. Never nil once the group exists.
	UserMessage *Message `json:"userMessage"`

	// AIMessage is the AI-composed response. Nil until the search-phrase
	// step completes.
	AIMessage *Message `json:"aiMessage"`

	// Products is the full accumulated result list. Append-only.
	Products []Product `json:"products"`

	// UIProducts is the prefix of Products currently revealed to the
	// presentation layer. Grows via pagination, never past len(Products).
	UIProducts []Product `json:"uiProductsList"`

	// Pagination is the reveal cursor for this group.
	Pagination Pagination `json:"pagination"`

	// Expanded is a UI-only flag.
	Expanded bool `json:"expanded"`
}

// State is the full conversation store state. Values returned by the store
// are snapshots; mutating them has no effect on the store.
type State struct {
	// SessionID is the opaque correlation id returned by the search
	// gateway, threaded into subsequent requests.
	SessionID string `json:"sessionId,omitempty"`

	// Groups is the ordered conversation group list. Insertion order is
	// chronological order.
	Groups []ConversationGroup `json:"conversationGroups"`

	// ActiveGroupID is the id of the group currently accepting AI and
	// product updates. Empty when no query has been issued yet.
	ActiveGroupID string `json:"activeConversationGroup,omitempty"`

	// IsLoading is true while a search round-trip is in flight.
	IsLoading bool `json:"isLoading"`

	// Error is the last surfaced error message, empty when none.
	Error string `json:"error,omitempty"`

	// UsedItems toggles second-hand results in gateway requests.
	UsedItems bool `json:"usedItems"`

	// Personalization toggles profile-aware search.
	Personalization bool `json:"personalization"`

	// InputType is how the current query was entered.
	InputType InputType `json:"inputType"`

	// ShowSignInModal is a UI flag raised when an action needs auth.
	ShowSignInModal bool `json:"showSignInModal"`
}

// NewGroupID generates a new conversation group id.
func NewGroupID() string {
	return uuid.New().String()
}

// NewProductID generates an id for a raw result that arrived without one.
func NewProductID() string {
	return uuid.New().String()
}

// NewSessionID generates a new chat session id.
func NewSessionID() string {
	return uuid.New().String()
}

// initialState returns the store's default state.
func initialState() State {
	return State{InputType: InputText}
}

// group returns a pointer to the group with the given id, or nil.
func (s *State) group(id string) *ConversationGroup {
	if id == "" {
		return nil
	}
	for i := range s.Groups {
		if s.Groups[i].ID == id {
			return &s.Groups[i]
		}
	}
	return nil
}

// activeGroup returns the group currently accepting updates, or nil.
func (s *State) activeGroup() *ConversationGroup {
	return s.group(s.ActiveGroupID)
}

// clone deep-copies the state so snapshots cannot alias store internals.
func (s State) clone() State {
	out := s
	out.Groups = make([]ConversationGroup, len(s.Groups))
	for i, g := range s.Groups {
		out.Groups[i] = g.clone()
	}
	return out
}

func (g ConversationGroup) clone() ConversationGroup {
	out := g
	if g.UserMessage != nil {
		m := *g.UserMessage
		out.UserMessage = &m
	}
	if g.AIMessage != nil {
		m := *g.AIMessage
		out.AIMessage = &m
	}
	out.Products = append([]Product(nil), g.Products...)
	out.UIProducts = append([]Product(nil), g.UIProducts...)
	return out
}
