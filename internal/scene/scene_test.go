package scene

import (
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/internal/commands"
	"devconsole/internal/convert"
	"devconsole/internal/suggest"
	"devconsole/pkg/consoletypes"
)

func testScene() *Scene {
	sc := New()
	sc.Add(
		NewObject("Cube", consoletypes.Vector3{}, Cube).AddComponent(&CubeMover{Speed: 5}),
		NewObject("Second Cube", consoletypes.Vector3{X: 2}, Cube).AddComponent(&CubeMover{Speed: 2}),
		NewObject("Ball", consoletypes.Vector3{}, Sphere),
		NewObject("Game", consoletypes.Vector3{}, Cube).
			AddComponent(&Clock{TimeScale: 1}).
			AddComponent(&Tester{}),
	)
	hidden := NewObject("Hidden", consoletypes.Vector3{}, Capsule).AddComponent(&CubeMover{Speed: 1})
	hidden.Active = false
	sc.Add(hidden)
	return sc
}

// installed returns registries with the scene installed.
func installed(t *testing.T, sc *Scene) (*commands.Registry, *convert.Registry, *suggest.Registry) {
	t.Helper()
	cmds := commands.NewRegistry()
	conv := convert.NewRegistry()
	providers := suggest.NewRegistry()
	require.NoError(t, Install(conv, providers, cmds, sc))
	return cmds, conv, providers
}

func run(t *testing.T, cmds *commands.Registry, conv *convert.Registry, line string) (*commands.Execution, error) {
	t.Helper()
	fields := strings.Fields(line)
	return cmds.ResolveAndExecute(fields[0], fields[1:], conv)
}

func TestResolve(t *testing.T) {
	sc := testScene()

	tests := []struct {
		name     string
		owner    reflect.Type
		policy   consoletypes.TargetPolicy
		expected int
	}{
		{"active movers", moverType, consoletypes.TargetAll, 2},
		{"all movers", moverType, consoletypes.TargetAllIncludeInactive, 3},
		{"clock", clockType, consoletypes.TargetSingle, 1},
		{"active objects", objectType, consoletypes.TargetAll, 4},
		{"every object", objectType, consoletypes.TargetSingleIncludeInactive, 5},
		{"unknown owner", reflect.TypeFor[*strings.Builder](), consoletypes.TargetAll, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, sc.Resolve(tt.owner, tt.policy), tt.expected)
		})
	}
}

func TestFind(t *testing.T) {
	sc := testScene()

	obj, ok := sc.Find("Second Cube")
	require.True(t, ok)
	assert.Equal(t, float32(2), obj.Position.X)

	_, ok = sc.Find("Hidden")
	assert.False(t, ok, "inactive objects are not found")

	assert.Equal(t, []string{"Cube", "Second Cube", "Ball", "Game"}, sc.Names())
}

func TestComponentOf(t *testing.T) {
	sc := testScene()
	game, _ := sc.Find("Game")

	clock, ok := ComponentOf[*Clock](game)
	require.True(t, ok)
	assert.Same(t, game, clock.Object())

	_, ok = ComponentOf[*CubeMover](game)
	assert.False(t, ok)
}

func TestClockPauseResume(t *testing.T) {
	clock := &Clock{TimeScale: 2}

	clock.Pause()
	assert.Equal(t, float32(0), clock.TimeScale)
	clock.Pause()
	clock.Resume()
	assert.Equal(t, float32(2), clock.TimeScale)
}

func TestShapeEnum(t *testing.T) {
	assert.Equal(t, "Sphere", Sphere.String())
	assert.Equal(t, "Shape(7)", Shape(7).String())
	assert.True(t, consoletypes.IsEnum(reflect.TypeFor[Shape]()))
	assert.Len(t, consoletypes.EnumValuesOf(reflect.TypeFor[TestEnum]()), 3)

	shape, err := ParseShape("capsule")
	require.NoError(t, err)
	assert.Equal(t, Capsule, shape)

	_, err = ParseShape("cone")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	sc, err := Load(strings.NewReader(`
objects:
  - name: Mover
    shape: sphere
    position: [1, 2, 3]
    mover:
      speed: 3
      waypoints:
        - [0, 0, 1]
  - name: Off
    active: false
`))
	require.NoError(t, err)
	require.Equal(t, 2, sc.Len())

	objs := sc.Objects()
	assert.Equal(t, Sphere, objs[0].Shape)
	assert.Equal(t, consoletypes.Vector3{X: 1, Y: 2, Z: 3}, objs[0].Position)
	mover, ok := ComponentOf[*CubeMover](objs[0])
	require.True(t, ok)
	assert.Equal(t, float32(3), mover.Speed)
	assert.Equal(t, []consoletypes.Vector3{{Z: 1}}, mover.Waypoints)
	assert.False(t, objs[1].Active)
	assert.NotEqual(t, objs[0].ID, objs[1].ID)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"missing name", "objects:\n  - shape: Cube\n", "name is required"},
		{"bad position", "objects:\n  - name: A\n    position: [1, 2]\n", "expected 3 components"},
		{"bad shape", "objects:\n  - name: A\n    shape: Cone\n", "unknown shape"},
		{"unknown field", "objects:\n  - name: A\n    colour: red\n", "colour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Empty(t *testing.T) {
	sc, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, sc.Len())
}

func TestDefault(t *testing.T) {
	sc, err := Default()
	require.NoError(t, err)

	assert.Contains(t, sc.Names(), "Cube")
	assert.Len(t, sc.Resolve(clockType, consoletypes.TargetSingle), 1)
	assert.Len(t, sc.Resolve(testerType, consoletypes.TargetSingle), 1)
}

func TestObjectConverter(t *testing.T) {
	sc := testScene()
	conv := NewObjectConverter(sc)

	v, err := conv.Parse(`"Second Cube"`, objectType)
	require.NoError(t, err)
	obj := v.(*Object)
	assert.Equal(t, "Second Cube", obj.Name)

	text, err := conv.Format(obj)
	require.NoError(t, err)
	assert.Equal(t, `"Second Cube"`, text)

	_, err = conv.Parse("Hidden", objectType)
	assert.Error(t, err)

	_, err = conv.Format("Cube")
	assert.Error(t, err)
}

func TestObjectSuggestions(t *testing.T) {
	sc := testScene()
	p := NewObjectSuggestions(sc)

	assert.Empty(t, p.Suggest(objectType, ""))
	assert.Equal(t, []string{"Cube"}, p.Suggest(objectType, "cu"))
	assert.Equal(t, []string{`"Second Cube"`}, p.Suggest(objectType, `"Se`))

	sc.Spawn("Cursor", consoletypes.Vector3{}, Cube)
	assert.Equal(t, []string{"Cube"}, p.Suggest(objectType, "cu"), "cached names are reused")

	assert.Empty(t, p.Suggest(objectType, ""))
	assert.Equal(t, []string{"Cube", "Cursor"}, p.Suggest(objectType, "cu"), "empty input refreshes the cache")
}

func TestInstall_CommandNames(t *testing.T) {
	cmds, _, _ := installed(t, testScene())

	for _, name := range []string{
		"cube-speed", "cubes-set-speed", "cube-add-way-point", "move", "spawn",
		"find", "object-id", "objects", "time-scale", "pause", "resume", "test-enum",
	} {
		assert.NotEmpty(t, cmds.FindByName(name), name)
	}
	assert.Len(t, cmds.FindByName("cube-speed"), 2)
}

func TestCommands_CubeSpeedAppliesToAll(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	_, err := run(t, cmds, conv, "cube-speed 9")
	require.NoError(t, err)

	for _, target := range sc.Resolve(moverType, consoletypes.TargetAll) {
		assert.Equal(t, float32(9), target.(*CubeMover).Speed)
	}
	hidden := sc.Objects()[4]
	mover, _ := ComponentOf[*CubeMover](hidden)
	assert.Equal(t, float32(1), mover.Speed, "inactive objects are untouched")

	exec, err := run(t, cmds, conv, "cube-speed")
	require.NoError(t, err)
	assert.Equal(t, float32(9), exec.Value)
}

func TestCommands_CubesSetSpeed(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	exec, err := cmds.ResolveAndExecute("cubes-set-speed", []string{`"Second Cube"`, "7.5"}, conv)
	require.NoError(t, err)
	require.NoError(t, exec.Failure)

	obj, _ := sc.Find("Second Cube")
	mover, _ := ComponentOf[*CubeMover](obj)
	assert.Equal(t, float32(7.5), mover.Speed)

	exec, err = run(t, cmds, conv, "cubes-set-speed Ball 1")
	require.NoError(t, err)
	assert.ErrorContains(t, exec.Failure, "has no CubeMover")

	_, err = run(t, cmds, conv, "cubes-set-speed Nobody 1")
	var noMatch *consoletypes.NoMatchingOverloadError
	assert.ErrorAs(t, err, &noMatch)
}

func TestCommands_CubeAddWayPoint(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	exec, err := run(t, cmds, conv, "cube-add-way-point Cube 1,0,1")
	require.NoError(t, err)
	assert.Equal(t, 1, exec.Value)

	obj, _ := sc.Find("Cube")
	mover, _ := ComponentOf[*CubeMover](obj)
	assert.Equal(t, []consoletypes.Vector3{{X: 1, Z: 1}}, mover.Waypoints)
}

func TestCommands_Move(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	exec, err := run(t, cmds, conv, "move 1,2,3")
	require.NoError(t, err)
	require.NoError(t, exec.Failure)

	obj, _ := sc.Find("Cube")
	assert.Equal(t, consoletypes.Vector3{X: 1, Y: 2, Z: 3}, obj.Position)
	assert.Equal(t, "pt", obj.Tag)
	assert.Equal(t, obj.Position, exec.Value)

	second, _ := sc.Find("Second Cube")
	assert.Equal(t, consoletypes.Vector3{X: 2}, second.Position, "single policy moves one cube")

	_, err = run(t, cmds, conv, "move 1,2")
	var formatErr *consoletypes.FormatError
	assert.ErrorAs(t, err, &formatErr)

	_, err = run(t, cmds, conv, `move "4,5,6"`)
	var convErr *consoletypes.ConversionError
	assert.ErrorAs(t, err, &convErr, "a quoted token is a string, not a vector")
	assert.Equal(t, consoletypes.Vector3{X: 1, Y: 2, Z: 3}, obj.Position)
}

func TestCommands_Spawn(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	exec, err := cmds.ResolveAndExecute("spawn", []string{`"New Object"`, "1,2,3"}, conv)
	require.NoError(t, err)
	require.NoError(t, exec.Failure)
	assert.Equal(t, "New Object (Cube) at 1,2,3, active, 0 components", exec.Value)

	_, err = run(t, cmds, conv, "spawn Orb 0,0,0 sphere")
	require.NoError(t, err)
	orb, ok := sc.Find("Orb")
	require.True(t, ok)
	assert.Equal(t, Sphere, orb.Shape)

	_, err = run(t, cmds, conv, "spawn Orb 0,0,0 cone")
	assert.Error(t, err)
}

func TestCommands_FindAndObjects(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)

	exec, err := run(t, cmds, conv, "find Ball")
	require.NoError(t, err)
	assert.Equal(t, "Ball (Sphere) at 0,0,0, active, 0 components", exec.Value)

	exec, err = run(t, cmds, conv, "find Hidden")
	require.NoError(t, err)
	assert.ErrorContains(t, exec.Failure, `no active object named "Hidden"`)

	exec, err = run(t, cmds, conv, "objects")
	require.NoError(t, err)
	assert.Len(t, strings.Split(exec.Value.(string), "\n"), 5)
}

func TestCommands_TimeScale(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)
	game, _ := sc.Find("Game")
	clock, _ := ComponentOf[*Clock](game)

	_, err := run(t, cmds, conv, "time-scale 0.5")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), clock.TimeScale)

	_, err = run(t, cmds, conv, "pause")
	require.NoError(t, err)
	assert.Equal(t, float32(0), clock.TimeScale)

	_, err = run(t, cmds, conv, "resume")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), clock.TimeScale)

	exec, err := run(t, cmds, conv, "time-scale -1")
	require.NoError(t, err)
	assert.Error(t, exec.Failure)
	assert.Equal(t, float32(0.5), clock.TimeScale)
}

func TestCommands_TestEnum(t *testing.T) {
	sc := testScene()
	cmds, conv, _ := installed(t, sc)
	game, _ := sc.Find("Game")
	tester, _ := ComponentOf[*Tester](game)

	_, err := run(t, cmds, conv, "test-enum value3")
	require.NoError(t, err)
	assert.Equal(t, Value3, tester.Enum)

	_, err = run(t, cmds, conv, "test-enum 1")
	require.NoError(t, err)
	assert.Equal(t, Value2, tester.Enum)

	exec, err := run(t, cmds, conv, "test-enum")
	require.NoError(t, err)
	assert.Equal(t, Value2, exec.Value)

	_, err = run(t, cmds, conv, "test-enum Value9")
	assert.Error(t, err)
}

func TestSuggestions_ThroughEngine(t *testing.T) {
	sc := testScene()
	cmds, _, providers := installed(t, sc)
	engine := suggest.NewEngine(cmds, providers)

	assert.Equal(t, []string{"Cube"}, engine.Suggest("cubes-set-speed Cu", 18))
	assert.Equal(t, []string{"Capsule", "Cube", "Sphere"}, engine.Suggest("spawn x 0,0,0 ", 14))
	assert.Equal(t, []string{"Value1", "Value2", "Value3"}, engine.Suggest("test-enum V", 11))
}

func TestScene_IDGenerator(t *testing.T) {
	next := 0
	sc := New(WithIDGenerator(func() uuid.UUID {
		next++
		return uuid.UUID{15: byte(next)}
	}))

	preset := NewObject("Preset", consoletypes.Vector3{}, Cube)
	preset.ID = uuid.UUID{0: 0xff}
	sc.Add(NewObject("First", consoletypes.Vector3{}, Cube), preset)
	spawned := sc.Spawn("Second", consoletypes.Vector3{}, Sphere)

	objs := sc.Objects()
	assert.Equal(t, uuid.UUID{15: 1}, objs[0].ID)
	assert.Equal(t, uuid.UUID{0: 0xff}, objs[1].ID, "existing IDs are kept")
	assert.Equal(t, uuid.UUID{15: 2}, spawned.ID)

	cmds, conv, _ := installed(t, sc)
	exec, err := run(t, cmds, conv, "object-id First")
	require.NoError(t, err)
	assert.Equal(t, uuid.UUID{15: 1}, exec.Value)
}
