package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"devconsole/internal/data/embedded"
	"devconsole/pkg/consoletypes"
)

type sceneFile struct {
	Objects []objectDef `yaml:"objects"`
}

type objectDef struct {
	Name     string    `yaml:"name"`
	Active   *bool     `yaml:"active"`
	Shape    Shape     `yaml:"shape"`
	Position []float32 `yaml:"position"`
	Mover    *moverDef `yaml:"mover"`
	Clock    *clockDef `yaml:"clock"`
	Tester   bool      `yaml:"tester"`
}

type moverDef struct {
	Speed     float32     `yaml:"speed"`
	Waypoints [][]float32 `yaml:"waypoints"`
}

type clockDef struct {
	TimeScale float32 `yaml:"time_scale"`
}

// Load reads a scene from YAML.
func Load(r io.Reader, opts ...Option) (*Scene, error) {
	var file sceneFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	sc := New(opts...)
	for i, def := range file.Objects {
		obj, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		sc.Add(obj)
	}
	return sc, nil
}

// LoadFile reads a scene from a YAML file.
func LoadFile(path string, opts ...Option) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, opts...)
}

// Default returns the embedded default scene.
func Default(opts ...Option) (*Scene, error) {
	return Load(bytes.NewReader(embedded.DefaultSceneData), opts...)
}

func (def objectDef) build() (*Object, error) {
	if def.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	position, err := vector3(def.Position)
	if err != nil {
		return nil, fmt.Errorf("%s: position: %w", def.Name, err)
	}

	obj := NewObject(def.Name, position, def.Shape)
	if def.Active != nil {
		obj.Active = *def.Active
	}

	if def.Mover != nil {
		mover := &CubeMover{Speed: def.Mover.Speed}
		for _, wp := range def.Mover.Waypoints {
			v, err := vector3(wp)
			if err != nil {
				return nil, fmt.Errorf("%s: waypoint: %w", def.Name, err)
			}
			mover.Waypoints = append(mover.Waypoints, v)
		}
		obj.AddComponent(mover)
	}
	if def.Clock != nil {
		obj.AddComponent(&Clock{TimeScale: def.Clock.TimeScale})
	}
	if def.Tester {
		obj.AddComponent(&Tester{})
	}
	return obj, nil
}

// vector3 accepts an absent value as the origin.
func vector3(values []float32) (consoletypes.Vector3, error) {
	switch len(values) {
	case 0:
		return consoletypes.Vector3{}, nil
	case 3:
		return consoletypes.Vector3{X: values[0], Y: values[1], Z: values[2]}, nil
	default:
		return consoletypes.Vector3{}, fmt.Errorf("expected 3 components, got %d", len(values))
	}
}
