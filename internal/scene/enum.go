package scene

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"devconsole/pkg/consoletypes"
)

// Shape is the mesh of an object.
type Shape int

const (
	Cube Shape = iota
	Sphere
	Capsule
)

var shapeNames = []string{"Cube", "Sphere", "Capsule"}

func (s Shape) String() string {
	if s >= 0 && int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// EnumValues returns every shape.
func (Shape) EnumValues() []consoletypes.Enum {
	return []consoletypes.Enum{Cube, Sphere, Capsule}
}

// ParseShape matches a shape name case-insensitively.
func ParseShape(name string) (Shape, error) {
	for i, n := range shapeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Shape(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape %q", name)
}

// UnmarshalYAML reads a shape name.
func (s *Shape) UnmarshalYAML(value *yaml.Node) error {
	shape, err := ParseShape(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = shape
	return nil
}

// MarshalYAML writes the shape name.
func (s Shape) MarshalYAML() (any, error) {
	return s.String(), nil
}

// TestEnum is a three-valued enum for trying enum arguments.
type TestEnum int

const (
	Value1 TestEnum = iota
	Value2
	Value3
)

func (e TestEnum) String() string {
	switch e {
	case Value1:
		return "Value1"
	case Value2:
		return "Value2"
	case Value3:
		return "Value3"
	default:
		return fmt.Sprintf("TestEnum(%d)", int(e))
	}
}

// EnumValues returns every TestEnum member.
func (TestEnum) EnumValues() []consoletypes.Enum {
	return []consoletypes.Enum{Value1, Value2, Value3}
}
