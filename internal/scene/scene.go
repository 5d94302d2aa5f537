package scene

import (
	"reflect"
	"sync"

	"github.com/google/uuid"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var objectType = reflect.TypeFor[*Object]()

// Scene holds the objects commands run against. It implements consoletypes.TargetResolver.
type Scene struct {
	mu      sync.RWMutex
	objects []*Object
	newID   func() uuid.UUID
}

// Option configures a Scene.
type Option func(*Scene)

// WithIDGenerator sets the function that assigns IDs to added objects. Defaults to uuid.New.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(s *Scene) {
		s.newID = gen
	}
}

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{newID: uuid.New}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends objects to the scene, assigning an ID to those without one.
func (s *Scene) Add(objects ...*Object) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, obj := range objects {
		if obj.ID == uuid.Nil {
			obj.ID = s.newID()
		}
	}
	s.objects = append(s.objects, objects...)
}

// Spawn creates an active object and adds it to the scene.
func (s *Scene) Spawn(name string, position consoletypes.Vector3, shape Shape) *Object {
	obj := NewObject(name, position, shape)
	s.Add(obj)
	logger.Debug("Object spawned", "component", "scene", "name", name, "id", obj.ID)
	return obj
}

// Find returns the first active object named name.
func (s *Scene) Find(name string) (*Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, obj := range s.objects {
		if obj.Active && obj.Name == name {
			return obj, true
		}
	}
	return nil, false
}

// Objects returns every object in insertion order.
func (s *Scene) Objects() []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*Object(nil), s.objects...)
}

// Names returns the names of the active objects in insertion order.
func (s *Scene) Names() []string {
	var names []string
	for _, obj := range s.eligible(false) {
		names = append(names, obj.Name)
	}
	return names
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Resolve returns the objects, or the components of type owner, eligible under policy.
// Inactive objects are only considered by the *IncludeInactive policies.
func (s *Scene) Resolve(owner reflect.Type, policy consoletypes.TargetPolicy) []any {
	var targets []any
	for _, obj := range s.eligible(policy.IncludesInactive()) {
		if owner == objectType {
			targets = append(targets, obj)
			continue
		}
		targets = append(targets, obj.componentsOfType(owner)...)
	}
	return targets
}

func (s *Scene) eligible(includeInactive bool) []*Object {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Object
	for _, obj := range s.objects {
		if obj.Active || includeInactive {
			out = append(out, obj)
		}
	}
	return out
}
