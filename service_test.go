package lookapp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/MrPergite/lookapp-sub001/styles"
)

// mockGateway is a scriptable SearchGateway for testing.
type mockGateway struct {
	phrase     string
	partErr    error
	products   []RawProduct
	sessionID  string
	searchErr  error
	partCalls  int
	lastPart   SearchPartRequest
	lastSearch SearchProductsRequest
}

func (m *mockGateway) SearchPart(_ context.Context, req SearchPartRequest) (*SearchPartResponse, error) {
	m.partCalls++
	m.lastPart = req
	if m.partErr != nil {
		return nil, m.partErr
	}
	return &SearchPartResponse{ConversationResponse: m.phrase}, nil
}

func (m *mockGateway) SearchProducts(_ context.Context, req SearchProductsRequest) (*SearchProductsResponse, error) {
	m.lastSearch = req
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return &SearchProductsResponse{ShoppingResults: m.products, SessionID: m.sessionID}, nil
}

func rawBatch(n int) []RawProduct {
	batch := make([]RawProduct, n)
	for i := range batch {
		batch[i] = RawProduct{ID: fmt.Sprintf("raw-%d", i), Name: "Item", Price: "$5"}
	}
	return batch
}

func TestAssistantSearch(t *testing.T) {
	t.Run("happy path populates the group", func(t *testing.T) {
		gw := &mockGateway{phrase: "black ankle boots", products: rawBatch(6), sessionID: "sess-1"}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		group, err := assistant.Search(context.Background(), SearchQuery{Text: "boots for autumn"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}

		if group.UserMessage == nil || group.UserMessage.Text != "boots for autumn" {
			t.Errorf("user message = %+v", group.UserMessage)
		}
		if group.AIMessage == nil || group.AIMessage.Text != "black ankle boots" {
			t.Errorf("AI message = %+v", group.AIMessage)
		}
		if len(group.Products) != 6 {
			t.Errorf("products = %d, want 6", len(group.Products))
		}
		if len(group.UIProducts) != DefaultPageLimit {
			t.Errorf("revealed = %d, want %d", len(group.UIProducts), DefaultPageLimit)
		}

		state := store.State()
		if state.IsLoading {
			t.Error("loading should be cleared")
		}
		if state.Error != "" {
			t.Errorf("error = %q, want empty", state.Error)
		}
		if state.SessionID != "sess-1" {
			t.Errorf("session id = %q", state.SessionID)
		}
	})

	t.Run("phrase rides into the product request", func(t *testing.T) {
		gw := &mockGateway{phrase: "linen trousers", products: rawBatch(1)}
		assistant := NewAssistant(NewStore(), gw, nil, nil, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "trousers"}); err != nil {
			t.Fatalf("Search: %v", err)
		}

		history := gw.lastSearch.ChatHistory
		if len(history) == 0 {
			t.Fatal("product request carries no history")
		}
		last := history[len(history)-1]
		if last.Role != string(RoleAssistant) || last.Content != "linen trousers" {
			t.Errorf("last history entry = %+v, want the composed phrase", last)
		}
	})

	t.Run("image query switches the input type", func(t *testing.T) {
		gw := &mockGateway{phrase: "similar jacket", products: rawBatch(1)}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Image: "data:image/jpeg;base64,abc"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got := store.State().InputType; got != InputImage {
			t.Errorf("input type = %q, want %q", got, InputImage)
		}
		if gw.lastPart.InputType != InputImage {
			t.Errorf("payload input type = %q", gw.lastPart.InputType)
		}
	})

	t.Run("empty query is rejected before any dispatch", func(t *testing.T) {
		store := NewStore()
		assistant := NewAssistant(store, &mockGateway{}, nil, nil, nil)

		_, err := assistant.Search(context.Background(), SearchQuery{})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
		if len(store.State().Groups) != 0 {
			t.Error("rejected query should not create a group")
		}
	})

	t.Run("refusal is terminal with the refusal as the AI message", func(t *testing.T) {
		gw := &mockGateway{phrase: "Sorry, I can only help with fashion."}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		group, err := assistant.Search(context.Background(), SearchQuery{Text: "stock tips"})
		if !errors.Is(err, ErrGatewayRefusal) {
			t.Fatalf("err = %v, want ErrGatewayRefusal", err)
		}

		if group.AIMessage == nil || group.AIMessage.Text != "Sorry, I can only help with fashion." {
			t.Errorf("AI message = %+v", group.AIMessage)
		}
		if len(group.Products) != 0 {
			t.Error("refusal must not fetch products")
		}
		if gw.lastSearch.ChatHistory != nil {
			t.Error("SearchProducts should not have been called")
		}

		state := store.State()
		if state.Error == "" {
			t.Error("refusal should surface an error")
		}
		if state.IsLoading {
			t.Error("loading should be cleared")
		}
	})

	t.Run("phrase failure synthesizes an apology", func(t *testing.T) {
		gw := &mockGateway{partErr: NewGatewayError("boom", nil)}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		group, err := assistant.Search(context.Background(), SearchQuery{Text: "boots"})
		if err == nil {
			t.Fatal("expected error")
		}
		if group.AIMessage == nil || group.AIMessage.Text != apologyMessage {
			t.Errorf("AI message = %+v, want the apology", group.AIMessage)
		}

		state := store.State()
		if state.Error == "" || state.IsLoading {
			t.Errorf("failure should surface error and clear loading: %+v", state)
		}
	})

	t.Run("product failure synthesizes an apology after the phrase", func(t *testing.T) {
		gw := &mockGateway{phrase: "suede loafers", searchErr: NewGatewayError("boom", nil)}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		_, err := assistant.Search(context.Background(), SearchQuery{Text: "loafers"})
		if err == nil {
			t.Fatal("expected error")
		}

		state := store.State()
		if state.Error == "" || state.IsLoading {
			t.Errorf("failure should surface error and clear loading: %+v", state)
		}
		// The composed phrase landed before the failure; the apology
		// replaces it as the group's AI message.
		group := state.Groups[0]
		if group.AIMessage == nil || group.AIMessage.Text != apologyMessage {
			t.Errorf("AI message = %+v, want the apology", group.AIMessage)
		}
	})

	t.Run("a later search clears the previous error", func(t *testing.T) {
		gw := &mockGateway{partErr: NewGatewayError("boom", nil)}
		store := NewStore()
		assistant := NewAssistant(store, gw, nil, nil, nil)

		assistant.Search(context.Background(), SearchQuery{Text: "boots"})
		if store.State().Error == "" {
			t.Fatal("first search should have failed")
		}

		gw.partErr = nil
		gw.phrase = "chelsea boots"
		gw.products = rawBatch(2)
		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "boots again"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if got := store.State().Error; got != "" {
			t.Errorf("error = %q, want cleared", got)
		}
	})
}

func TestAssistantLoadMore(t *testing.T) {
	gw := &mockGateway{phrase: "jeans", products: rawBatch(10)}
	store := NewStore()
	assistant := NewAssistant(store, gw, nil, nil, nil)

	group, err := assistant.Search(context.Background(), SearchQuery{Text: "jeans"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	more, err := assistant.LoadMore(group.ID)
	if err != nil {
		t.Fatalf("LoadMore: %v", err)
	}
	if len(more.UIProducts) != 2*DefaultPageLimit {
		t.Errorf("revealed = %d, want %d", len(more.UIProducts), 2*DefaultPageLimit)
	}
	if more.Pagination.Page != 2 {
		t.Errorf("page = %d, want 2", more.Pagination.Page)
	}

	if _, err := assistant.LoadMore("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestAssistantReset(t *testing.T) {
	gw := &mockGateway{phrase: "jeans", products: rawBatch(3), sessionID: "sess"}
	store := NewStore()
	assistant := NewAssistant(store, gw, nil, nil, nil)

	assistant.Search(context.Background(), SearchQuery{Text: "jeans"})
	assistant.Reset()

	state := store.State()
	if len(state.Groups) != 0 || state.SessionID != "" {
		t.Errorf("reset should drop everything: %+v", state)
	}
}

func TestAssistantPersonalization(t *testing.T) {
	registry := styles.NewRegistry()
	registry.Register(&styles.Profile{
		ID:              "minimal",
		Triggers:        []string{"minimal"},
		Instructions:    "Favor clean silhouettes.",
		PreferredBrands: []string{"COS"},
	})

	t.Run("matched profile leads the history when personalization is on", func(t *testing.T) {
		gw := &mockGateway{phrase: "phrase", products: rawBatch(1)}
		store := NewStore()
		store.Dispatch(TogglePersonalization{})
		assistant := NewAssistant(store, gw, nil, registry, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "something minimal"}); err != nil {
			t.Fatalf("Search: %v", err)
		}

		history := gw.lastPart.ChatHistory
		if history[0].Role != "system" {
			t.Fatalf("first entry = %+v, want system instructions", history[0])
		}
		if history[0].Content != "Favor clean silhouettes. Preferred brands: COS." {
			t.Errorf("instructions = %q", history[0].Content)
		}
		if !gw.lastPart.Personalization {
			t.Error("personalization flag missing from the payload")
		}
	})

	t.Run("profiles are ignored when personalization is off", func(t *testing.T) {
		gw := &mockGateway{phrase: "phrase", products: rawBatch(1)}
		assistant := NewAssistant(NewStore(), gw, nil, registry, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "something minimal"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if gw.lastPart.ChatHistory[0].Role == "system" {
			t.Error("system instructions should not be injected")
		}
	})
}

func TestAssistantHistory(t *testing.T) {
	gw := &mockGateway{phrase: "phrase", products: rawBatch(1)}
	store := NewStore()
	assistant := NewAssistant(store, gw, nil, nil, nil)

	assistant.Search(context.Background(), SearchQuery{Text: "first"})
	gw.phrase = "second phrase"
	assistant.Search(context.Background(), SearchQuery{Text: "second"})

	// The second payload carries the full conversation: first turn pair
	// plus the new query.
	history := gw.lastPart.ChatHistory
	if len(history) != 3 {
		t.Fatalf("history = %d entries, want 3", len(history))
	}
	if history[0].Content != "first" || history[1].Content != "phrase" || history[2].Content != "second" {
		t.Errorf("unexpected history: %+v", history)
	}
}
