package lookapp

import "context"

// PreSearchHook runs before the gateway round-trip. It can modify the
// outgoing payload or stash values for the post hook.
type PreSearchHook func(ctx context.Context, req *PreSearchRequest) error

// PostSearchHook runs after normalization, before results enter the store.
// It can filter or annotate the product batch.
type PostSearchHook func(ctx context.Context, req *PostSearchRequest) error

// PreSearchRequest contains data available before the gateway call.
type PreSearchRequest struct {
	// Query is the shopper's submitted query.
	Query SearchQuery

	// Payload is the outgoing search-phrase request (modifiable).
	Payload *SearchPartRequest

	// Metadata allows passing data between pre and post hooks.
	Metadata map[string]any
}

// PostSearchRequest contains data available after the product fetch.
type PostSearchRequest struct {
	// Query is the shopper's submitted query.
	Query SearchQuery

	// Phrase is the AI-composed search phrase.
	Phrase string

	// Products is the normalized batch about to enter the store
	// (modifiable).
	Products []Product

	// SessionID is the gateway session id returned with the batch.
	SessionID string

	// Metadata from preprocessing.
	Metadata map[string]any
}

// HookRegistry holds the hooks applied around every search.
type HookRegistry struct {
	pre  []PreSearchHook
	post []PostSearchHook
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry() *HookRegistry {
	return &HookRegistry{}
}

// RegisterPreSearch appends a pre-search hook.
func (r *HookRegistry) RegisterPreSearch(hook PreSearchHook) {
	r.pre = append(r.pre, hook)
}

// RegisterPostSearch appends a post-search hook.
func (r *HookRegistry) RegisterPostSearch(hook PostSearchHook) {
	r.post = append(r.post, hook)
}

// WithPreSearch is a fluent method to register a pre-search hook.
func (r *HookRegistry) WithPreSearch(hook PreSearchHook) *HookRegistry {
	r.RegisterPreSearch(hook)
	return r
}

// WithPostSearch is a fluent method to register a post-search hook.
func (r *HookRegistry) WithPostSearch(hook PostSearchHook) *HookRegistry {
	r.RegisterPostSearch(hook)
	return r
}

func (r *HookRegistry) runPre(ctx context.Context, req *PreSearchRequest) error {
	for _, hook := range r.pre {
		if err := hook(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

func (r *HookRegistry) runPost(ctx context.Context, req *PostSearchRequest) error {
	for _, hook := range r.post {
		if err := hook(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
