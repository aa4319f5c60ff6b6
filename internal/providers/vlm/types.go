// Package vlm normalizes the two vision-language providers behind one
// capability: submit an image plus a text prompt, get back a text completion.
package vlm

import (
	"context"

	"lariskan-server/internal/domain"
)

// Generator is the contract implemented by every backend variant.
type Generator interface {
	Generate(ctx context.Context, imageURL, prompt string) (string, error)
}

// Selector resolves a caller's stored preference to a concrete backend.
type Selector interface {
	// Select returns the generator for the preferred model, or the default
	// backend when the preference is absent or unrecognized. The second
	// return value names the backend actually chosen.
	Select(preferred domain.ModelID) (Generator, domain.ModelID)
}

// Registry is a closed set of registered backends with an explicit default.
// Adding a provider means registering a new variant, not branching at call
// sites.
type Registry struct {
	generators map[domain.ModelID]Generator
	fallback   domain.ModelID
}

// NewRegistry creates an empty registry whose Select falls back to the given
// model id.
func NewRegistry(fallback domain.ModelID) *Registry {
	return &Registry{
		generators: make(map[domain.ModelID]Generator),
		fallback:   fallback,
	}
}

// Register adds or replaces a backend variant.
func (r *Registry) Register(id domain.ModelID, g Generator) {
	r.generators[id] = g
}

// Select implements Selector.
func (r *Registry) Select(preferred domain.ModelID) (Generator, domain.ModelID) {
	if g, ok := r.generators[preferred]; ok {
		return g, preferred
	}
	return r.generators[r.fallback], r.fallback
}

var _ Selector = (*Registry)(nil)
