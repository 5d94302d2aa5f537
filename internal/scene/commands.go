package scene

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"devconsole/internal/commands"
	"devconsole/internal/convert"
	"devconsole/internal/logger"
	"devconsole/internal/suggest"
	"devconsole/pkg/consoletypes"
)

// Command groups.
const (
	GroupCube  = "Cube"
	GroupScene = "Scene"
	GroupTime  = "Time"
	GroupTest  = "Test"
)

var (
	moverType  = reflect.TypeFor[*CubeMover]()
	clockType  = reflect.TypeFor[*Clock]()
	testerType = reflect.TypeFor[*Tester]()
)

// Install registers the object converter, the object suggestions and the scene commands.
func Install(conv *convert.Registry, providers *suggest.Registry, cmds *commands.Registry, sc *Scene) error {
	if err := conv.Register(NewObjectConverter(sc)); err != nil {
		return fmt.Errorf("object converter: %w", err)
	}
	if err := providers.Register(NewObjectSuggestions(sc)); err != nil {
		return fmt.Errorf("object suggestions: %w", err)
	}
	cmds.SetTargetResolver(sc)
	return RegisterCommands(cmds, sc)
}

// RegisterCommands registers the scene commands into reg.
func RegisterCommands(reg *commands.Registry, sc *Scene) error {
	var all []*commands.Command
	add := func(cmds ...*commands.Command) {
		all = append(all, cmds...)
	}
	var errs []error
	check := func(cmds []*commands.Command, err error) []*commands.Command {
		if err != nil {
			errs = append(errs, err)
		}
		return cmds
	}
	one := func(cmd *commands.Command, err error) *commands.Command {
		if err != nil {
			errs = append(errs, err)
		}
		return cmd
	}

	add(check(commands.NewProperty(
		commands.Declaration{Name: "cube-speed", Description: "cube speed", Group: GroupCube,
			Target: consoletypes.TargetAll, Owner: moverType},
		reflect.TypeFor[float32](),
		func(target any) (any, error) {
			return target.(*CubeMover).Speed, nil
		},
		func(target any, value any) error {
			target.(*CubeMover).Speed = value.(float32)
			return nil
		},
	))...)

	add(one(commands.NewAction(
		commands.Declaration{Name: "cubes-set-speed", Description: "Set the speed of a cube", Group: GroupCube,
			Target: consoletypes.TargetSingle, Static: true},
		[]commands.Argument{
			commands.Param[*Object]("cube"),
			commands.Param[float32]("speed"),
		},
		func(_ any, args []any) (any, error) {
			mover, err := moverOf(args[0].(*Object))
			if err != nil {
				return nil, err
			}
			mover.Speed = args[1].(float32)
			return nil, nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "cube-add-way-point", Description: "Add a waypoint to a cube", Group: GroupCube,
			Target: consoletypes.TargetSingle, Static: true},
		[]commands.Argument{
			commands.Param[*Object]("cube"),
			commands.Param[consoletypes.Vector3]("position"),
		},
		func(_ any, args []any) (any, error) {
			mover, err := moverOf(args[0].(*Object))
			if err != nil {
				return nil, err
			}
			mover.Waypoints = append(mover.Waypoints, args[1].(consoletypes.Vector3))
			return len(mover.Waypoints), nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "move", Description: "Move a cube by an offset and tag it", Group: GroupCube,
			Target: consoletypes.TargetSingle, Owner: moverType},
		[]commands.Argument{
			commands.Param[consoletypes.Vector3]("position"),
			commands.ParamDefault("label", "pt"),
		},
		func(target any, args []any) (any, error) {
			obj := target.(*CubeMover).Object()
			obj.Position = obj.Position.Add(args[0].(consoletypes.Vector3))
			obj.Tag = args[1].(string)
			return obj.Position, nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "spawn", Description: "Create an object", Group: GroupScene,
			Target: consoletypes.TargetSingle, Static: true},
		[]commands.Argument{
			commands.Param[string]("name"),
			commands.Param[consoletypes.Vector3]("position"),
			commands.ParamDefault("shape", Cube),
		},
		func(_ any, args []any) (any, error) {
			name := args[0].(string)
			if strings.TrimSpace(name) == "" {
				return nil, errors.New("object name cannot be empty")
			}
			return sc.Spawn(name, args[1].(consoletypes.Vector3), args[2].(Shape)).String(), nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "find", Description: "Describe an active object", Group: GroupScene,
			Target: consoletypes.TargetSingle, Static: true},
		[]commands.Argument{commands.Param[string]("name")},
		func(_ any, args []any) (any, error) {
			name := args[0].(string)
			obj, ok := sc.Find(name)
			if !ok {
				return nil, fmt.Errorf("no active object named %q", name)
			}
			return obj.String(), nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "object-id", Description: "Show the ID of an active object", Group: GroupScene,
			Target: consoletypes.TargetSingle, Static: true},
		[]commands.Argument{commands.Param[*Object]("object")},
		func(_ any, args []any) (any, error) {
			return args[0].(*Object).ID, nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "objects", Description: "List every object", Group: GroupScene,
			Target: consoletypes.TargetSingle, Static: true},
		nil,
		func(_ any, _ []any) (any, error) {
			lines := make([]string, 0, sc.Len())
			for _, obj := range sc.Objects() {
				lines = append(lines, obj.String())
			}
			return strings.Join(lines, "\n"), nil
		},
	)))

	add(check(commands.NewProperty(
		commands.Declaration{Name: "time-scale", Description: "time scale", Group: GroupTime,
			Target: consoletypes.TargetSingle, Owner: clockType},
		reflect.TypeFor[float32](),
		func(target any) (any, error) {
			return target.(*Clock).TimeScale, nil
		},
		func(target any, value any) error {
			scale := value.(float32)
			if scale < 0 {
				return fmt.Errorf("time scale cannot be negative, got %g", scale)
			}
			target.(*Clock).TimeScale = scale
			return nil
		},
	))...)

	add(one(commands.NewAction(
		commands.Declaration{Name: "pause", Description: "Stop time", Group: GroupTime,
			Target: consoletypes.TargetSingle, Owner: clockType},
		nil,
		func(target any, _ []any) (any, error) {
			target.(*Clock).Pause()
			return nil, nil
		},
	)))

	add(one(commands.NewAction(
		commands.Declaration{Name: "resume", Description: "Restore the time scale saved by pause", Group: GroupTime,
			Target: consoletypes.TargetSingle, Owner: clockType},
		nil,
		func(target any, _ []any) (any, error) {
			target.(*Clock).Resume()
			return nil, nil
		},
	)))

	add(check(commands.NewProperty(
		commands.Declaration{Name: "test-enum", Description: "test enum", Group: GroupTest,
			Target: consoletypes.TargetSingle, Owner: testerType},
		reflect.TypeFor[TestEnum](),
		func(target any) (any, error) {
			return target.(*Tester).Enum, nil
		},
		func(target any, value any) error {
			target.(*Tester).Enum = value.(TestEnum)
			return nil
		},
	))...)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	if err := reg.RegisterAll(all...); err != nil {
		return err
	}
	logger.Debug("Scene commands registered", "component", "scene", "count", len(all))
	return nil
}

func moverOf(obj *Object) (*CubeMover, error) {
	mover, ok := ComponentOf[*CubeMover](obj)
	if !ok {
		return nil, fmt.Errorf("object %s has no CubeMover component", obj.Name)
	}
	return mover, nil
}
