// Package suggest provides completion candidates for console input.
// Providers are keyed by TypeKey; the Engine decides which provider serves the
// token under the cursor.
package suggest

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var log = logger.NewStyledLogger("suggest")

// Registry maps type keys to suggestion providers.
type Registry struct {
	mu        sync.RWMutex
	providers map[consoletypes.TypeKey]consoletypes.SuggestionProvider
	frozen    bool
}

// NewRegistry creates a registry holding custom first, then every built-in provider
// whose key is still free. Custom providers therefore take precedence.
func NewRegistry(custom ...consoletypes.SuggestionProvider) *Registry {
	r := &Registry{
		providers: make(map[consoletypes.TypeKey]consoletypes.SuggestionProvider),
	}
	for _, p := range custom {
		_ = r.Register(p)
	}
	for _, p := range Builtins() {
		if _, taken := r.Lookup(p.Key()); !taken {
			_ = r.Register(p)
		}
	}
	return r
}

// Register adds a provider. The first registration for a key wins; later ones are
// logged and rejected with a DuplicateRegistrationError.
func (r *Registry) Register(p consoletypes.SuggestionProvider) error {
	if p == nil {
		return fmt.Errorf("suggestion provider cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return consoletypes.ErrRegistryFrozen
	}

	key := p.Key()
	if _, exists := r.providers[key]; exists {
		err := &consoletypes.DuplicateRegistrationError{Kind: "suggestion", Key: string(key)}
		log.Warn("Suggestion provider registration rejected", "key", key, "error", err)
		return err
	}

	r.providers[key] = p
	log.Debug("Registered", "kind", "suggestion", "key", string(key))
	return nil
}

// Lookup returns the provider for key.
func (r *Registry) Lookup(key consoletypes.TypeKey) (consoletypes.SuggestionProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[key]
	return p, ok
}

// Keys returns the registered keys in sorted order.
func (r *Registry) Keys() []consoletypes.TypeKey {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]consoletypes.TypeKey, 0, len(r.providers))
	for k := range r.providers {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Suggest asks the provider of t for candidates. ok is false when no provider serves t.
// A panicking provider is logged and yields no candidates.
func (r *Registry) Suggest(t reflect.Type, partial string) (candidates []string, ok bool) {
	p, found := r.Lookup(consoletypes.KeyOf(t))
	if !found {
		return nil, false
	}
	return r.call(p, t, partial), true
}

// SuggestKey asks the provider registered under key, passing a nil target type.
func (r *Registry) SuggestKey(key consoletypes.TypeKey, partial string) ([]string, bool) {
	p, found := r.Lookup(key)
	if !found {
		return nil, false
	}
	return r.call(p, nil, partial), true
}

func (r *Registry) call(p consoletypes.SuggestionProvider, t reflect.Type, partial string) (candidates []string) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Error("Suggestion provider panicked", "key", p.Key(), "error", rec)
			candidates = nil
		}
	}()
	return p.Suggest(t, partial)
}
