package lookapp

import (
	"context"
	"errors"
	"testing"
)

func TestHooksAroundSearch(t *testing.T) {
	t.Run("pre hook can rewrite the payload", func(t *testing.T) {
		hooks := NewHookRegistry().WithPreSearch(func(_ context.Context, req *PreSearchRequest) error {
			req.Payload.ChatHistory = append([]GatewayMessage{
				{Role: "system", Content: "prefer sustainable brands"},
			}, req.Payload.ChatHistory...)
			return nil
		})

		gw := &mockGateway{phrase: "organic cotton tee", products: rawBatch(1)}
		assistant := NewAssistant(NewStore(), gw, hooks, nil, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "tee"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if gw.lastPart.ChatHistory[0].Content != "prefer sustainable brands" {
			t.Errorf("payload not rewritten: %+v", gw.lastPart.ChatHistory)
		}
	})

	t.Run("post hook can filter the batch", func(t *testing.T) {
		hooks := NewHookRegistry().WithPostSearch(func(_ context.Context, req *PostSearchRequest) error {
			req.Products = req.Products[:1]
			return nil
		})

		gw := &mockGateway{phrase: "tee", products: rawBatch(5)}
		store := NewStore()
		assistant := NewAssistant(store, gw, hooks, nil, nil)

		group, err := assistant.Search(context.Background(), SearchQuery{Text: "tee"})
		if err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(group.Products) != 1 {
			t.Errorf("products = %d, want 1 after filtering", len(group.Products))
		}
	})

	t.Run("metadata flows from pre to post", func(t *testing.T) {
		var sawMarker bool
		hooks := NewHookRegistry().
			WithPreSearch(func(_ context.Context, req *PreSearchRequest) error {
				req.Metadata["marker"] = "set"
				return nil
			}).
			WithPostSearch(func(_ context.Context, req *PostSearchRequest) error {
				sawMarker = req.Metadata["marker"] == "set"
				return nil
			})

		gw := &mockGateway{phrase: "tee", products: rawBatch(1)}
		assistant := NewAssistant(NewStore(), gw, hooks, nil, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "tee"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if !sawMarker {
			t.Error("post hook did not see pre hook metadata")
		}
	})

	t.Run("pre hook error aborts before the gateway", func(t *testing.T) {
		hookErr := errors.New("blocked")
		hooks := NewHookRegistry().WithPreSearch(func(context.Context, *PreSearchRequest) error {
			return hookErr
		})

		gw := &mockGateway{phrase: "tee"}
		store := NewStore()
		assistant := NewAssistant(store, gw, hooks, nil, nil)

		_, err := assistant.Search(context.Background(), SearchQuery{Text: "tee"})
		if !errors.Is(err, hookErr) {
			t.Fatalf("err = %v, want the hook error", err)
		}
		if gw.partCalls != 0 {
			t.Error("gateway should not have been called")
		}
		if state := store.State(); state.IsLoading || state.Error == "" {
			t.Errorf("failure should settle the store: %+v", state)
		}
	})

	t.Run("hooks run in registration order", func(t *testing.T) {
		var order []int
		hooks := NewHookRegistry()
		for i := 1; i <= 3; i++ {
			i := i
			hooks.RegisterPreSearch(func(context.Context, *PreSearchRequest) error {
				order = append(order, i)
				return nil
			})
		}

		gw := &mockGateway{phrase: "tee", products: rawBatch(1)}
		assistant := NewAssistant(NewStore(), gw, hooks, nil, nil)

		if _, err := assistant.Search(context.Background(), SearchQuery{Text: "tee"}); err != nil {
			t.Fatalf("Search: %v", err)
		}
		if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
			t.Errorf("order = %v", order)
		}
	})
}
