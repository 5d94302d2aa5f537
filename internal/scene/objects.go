package scene

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"devconsole/internal/parser"
	"devconsole/internal/suggest"
	"devconsole/pkg/consoletypes"
)

// ObjectConverter converts between object names and active objects of a scene.
type ObjectConverter struct {
	scene *Scene
}

// NewObjectConverter creates a converter looking objects up in sc.
func NewObjectConverter(sc *Scene) *ObjectConverter {
	return &ObjectConverter{scene: sc}
}

// Key returns the TypeKey of *Object.
func (c *ObjectConverter) Key() consoletypes.TypeKey {
	return consoletypes.KeyFor[*Object]()
}

// Parse finds the active object with the unquoted name.
func (c *ObjectConverter) Parse(text string, _ reflect.Type) (any, error) {
	name := parser.Unquote(text)
	obj, ok := c.scene.Find(name)
	if !ok {
		return nil, fmt.Errorf("no active object named %q", name)
	}
	return obj, nil
}

// Format returns the object name, quoted when it contains a space.
func (c *ObjectConverter) Format(value any) (string, error) {
	obj, ok := value.(*Object)
	if !ok || obj == nil {
		return "", fmt.Errorf("expected *scene.Object, got %T", value)
	}
	return parser.Quote(obj.Name), nil
}

// ObjectSuggestions suggests names of active objects.
// The name list is read once and reused until a request with an empty partial arrives.
type ObjectSuggestions struct {
	scene *Scene

	mu     sync.Mutex
	cached []string
}

// NewObjectSuggestions creates a provider over sc.
func NewObjectSuggestions(sc *Scene) *ObjectSuggestions {
	return &ObjectSuggestions{scene: sc}
}

// Key returns the TypeKey of *Object.
func (p *ObjectSuggestions) Key() consoletypes.TypeKey {
	return consoletypes.KeyFor[*Object]()
}

// Suggest returns the matching names in order, quoting names with spaces.
// An empty partial clears the cache and suggests nothing.
func (p *ObjectSuggestions) Suggest(_ reflect.Type, partial string) []string {
	partial = parser.Unquote(partial)

	p.mu.Lock()
	if strings.TrimSpace(partial) == "" {
		p.cached = nil
		p.mu.Unlock()
		return []string{}
	}
	if len(p.cached) == 0 {
		p.cached = p.scene.Names()
	}
	names := p.cached
	p.mu.Unlock()

	matches := suggest.FilterPrefix(names, partial)
	for i, name := range matches {
		matches[i] = parser.Quote(name)
	}
	return matches
}
