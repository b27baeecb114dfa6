// Package styles holds personalization profiles: named style preferences
// that shape how the gateway composes search phrases when the shopper has
// personalization enabled. Profiles are defined in YAML and loaded from a
// directory.
package styles

import "strings"

// Profile is one style profile.
type Profile struct {
	// ID uniquely identifies the profile.
	ID string

	// Name is the human-readable profile name.
	Name string

	// Triggers are keywords that select this profile from a query.
	Triggers []string

	// Instructions bias the phrase composer toward this style.
	Instructions string

	// PreferredBrands are brands to favor in results.
	PreferredBrands []string
}

// Registry holds loaded profiles.
type Registry struct {
	profiles map[string]*Profile
	order    []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register adds a profile, replacing any previous one with the same id.
func (r *Registry) Register(p *Profile) {
	if _, exists := r.profiles[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.profiles[p.ID] = p
}

// Get returns a profile by id.
func (r *Registry) Get(id string) (*Profile, bool) {
	p, ok := r.profiles[id]
	return p, ok
}

// All returns all profiles in registration order.
func (r *Registry) All() []*Profile {
	out := make([]*Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

// Match returns the first profile whose trigger appears in the message, or
// false when none matches.
func (r *Registry) Match(message string) (*Profile, bool) {
	lower := strings.ToLower(message)
	for _, id := range r.order {
		p := r.profiles[id]
		for _, trigger := range p.Triggers {
			if strings.Contains(lower, strings.ToLower(trigger)) {
				return p, true
			}
		}
	}
	return nil, false
}
