// Package scene is a small in-memory host for the console: named objects with
// components that instance commands run against.
package scene

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"devconsole/pkg/consoletypes"
)

// Component is behavior attached to an object.
type Component interface {
	// Object returns the object the component is attached to.
	Object() *Object
	attach(o *Object)
}

type base struct {
	object *Object
}

func (b *base) Object() *Object  { return b.object }
func (b *base) attach(o *Object) { b.object = o }

// CubeMover moves its object along waypoints.
type CubeMover struct {
	base
	Speed     float32
	Waypoints []consoletypes.Vector3
}

// Clock scales the simulation time of the scene.
type Clock struct {
	base
	TimeScale float32
	paused    float32
}

// Pause stores the current time scale and stops time.
func (c *Clock) Pause() {
	if c.TimeScale == 0 {
		return
	}
	c.paused = c.TimeScale
	c.TimeScale = 0
}

// Resume restores the time scale saved by Pause.
func (c *Clock) Resume() {
	if c.TimeScale != 0 {
		return
	}
	c.TimeScale = c.paused
}

// Tester exposes values used to try the console.
type Tester struct {
	base
	Enum TestEnum
}

// Object is a named entity of the scene.
type Object struct {
	ID       uuid.UUID
	Name     string
	Active   bool
	Position consoletypes.Vector3
	Shape    Shape
	// Tag is the label of the last move.
	Tag string

	components []Component
}

// NewObject creates an active object. The ID is assigned when the object is added to a scene.
func NewObject(name string, position consoletypes.Vector3, shape Shape) *Object {
	return &Object{
		Name:     name,
		Active:   true,
		Position: position,
		Shape:    shape,
	}
}

// AddComponent attaches c to the object and returns the object.
func (o *Object) AddComponent(c Component) *Object {
	c.attach(o)
	o.components = append(o.components, c)
	return o
}

// Components returns the attached components in order.
func (o *Object) Components() []Component {
	return append([]Component(nil), o.components...)
}

// ComponentOf returns the first component of type T attached to o.
func ComponentOf[T Component](o *Object) (T, bool) {
	for _, c := range o.components {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	var zero T
	return zero, false
}

func (o *Object) componentsOfType(t reflect.Type) []any {
	var out []any
	for _, c := range o.components {
		if reflect.TypeOf(c) == t {
			out = append(out, c)
		}
	}
	return out
}

// String describes the object on one line.
func (o *Object) String() string {
	state := "active"
	if !o.Active {
		state = "inactive"
	}
	return fmt.Sprintf("%s (%s) at %g,%g,%g, %s, %d components",
		o.Name, o.Shape, o.Position.X, o.Position.Y, o.Position.Z, state, len(o.components))
}
