package commands

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devconsole/pkg/consoletypes"
)

// newMockCommand builds a static action returning its name and arity.
func newMockCommand(t *testing.T, name, group string, arity int) *Command {
	t.Helper()
	params := make([]Argument, arity)
	for i := range params {
		params[i] = Param[int](fmt.Sprintf("arg%d", i+1))
	}
	cmd, err := NewAction(Declaration{Name: name, Description: "mock " + name, Group: group, Static: true}, params,
		func(_ any, args []any) (any, error) {
			return fmt.Sprintf("%s/%d", name, len(args)), nil
		})
	require.NoError(t, err)
	return cmd
}

func TestRegistry_NewRegistry(t *testing.T) {
	registry := NewRegistry()

	assert.NotNil(t, registry)
	assert.NotNil(t, registry.commands)
	assert.Equal(t, 0, registry.Len())
	assert.Nil(t, registry.TargetResolver())
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name    string
		command *Command
		wantErr bool
		errMsg  string
	}{
		{
			name:    "register valid command",
			command: newMockCommand(t, "test", "", 0),
		},
		{
			name:    "register overload with different arity",
			command: newMockCommand(t, "test", "", 1),
		},
		{
			name:    "register same name and arity",
			command: newMockCommand(t, "test", "", 1),
			wantErr: true,
			errMsg:  "command test/1 already registered",
		},
		{
			name:    "register nil command",
			command: nil,
			wantErr: true,
			errMsg:  "command cannot be nil",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.command)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			got, ok := registry.Get(tt.command.Key())
			require.True(t, ok)
			assert.Same(t, tt.command, got)
		})
	}

	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_RegisterDuplicateKeepsFirst(t *testing.T) {
	registry := NewRegistry()
	first := newMockCommand(t, "spawn", "", 2)
	second := newMockCommand(t, "spawn", "Other", 2)

	require.NoError(t, registry.Register(first))
	err := registry.Register(second)

	var dup *consoletypes.DuplicateRegistrationError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "command", dup.Kind)
	assert.Equal(t, "spawn/2", dup.Key)

	got, ok := registry.Get(consoletypes.NewCommandKey("spawn", 2))
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestRegistry_RegisterAll(t *testing.T) {
	registry := NewRegistry()
	err := registry.RegisterAll(
		newMockCommand(t, "a", "", 0),
		newMockCommand(t, "b", "", 0),
		newMockCommand(t, "a", "", 0),
	)

	assert.Error(t, err)
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_Freeze(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.Register(newMockCommand(t, "a", "", 0)))
	registry.Freeze()

	err := registry.Register(newMockCommand(t, "b", "", 0))
	assert.ErrorIs(t, err, consoletypes.ErrRegistryFrozen)
	assert.Len(t, registry.All(), 1)
}

func TestRegistry_FindByName(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterAll(
		newMockCommand(t, "foo", "", 2),
		newMockCommand(t, "foo", "", 0),
		newMockCommand(t, "bar", "", 1),
		newMockCommand(t, "foo", "", 1),
	))

	found := registry.FindByName("foo")
	require.Len(t, found, 3)
	for i, cmd := range found {
		assert.Equal(t, "foo", cmd.Name())
		assert.Equal(t, i, cmd.Arity())
	}

	assert.Empty(t, registry.FindByName("missing"))
	assert.Equal(t, []string{"bar", "foo"}, registry.Names())
}

func TestRegistry_Groups(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterAll(
		newMockCommand(t, "zeta", "Scene", 0),
		newMockCommand(t, "alpha", "Scene", 1),
		newMockCommand(t, "alpha", "Scene", 0),
		newMockCommand(t, "help", "", 0),
	))

	scene := registry.FindByGroup("Scene")
	require.Len(t, scene, 3)
	assert.Equal(t, "alpha/0", scene[0].String())
	assert.Equal(t, "alpha/1", scene[1].String())
	assert.Equal(t, "zeta/0", scene[2].String())

	assert.Equal(t, []string{consoletypes.DefaultGroup, "Scene"}, registry.Groups())
	grouped := registry.Grouped()
	assert.Len(t, grouped[consoletypes.DefaultGroup], 1)
	assert.Len(t, grouped["Scene"], 3)

	all := registry.All()
	require.Len(t, all, 4)
	assert.Equal(t, "alpha", all[0].Name())
	assert.Equal(t, "zeta", all[3].Name())
}

func TestRegistry_SetTargetResolver(t *testing.T) {
	resolver := consoletypes.TargetResolverFunc(func(reflect.Type, consoletypes.TargetPolicy) []any { return nil })
	registry := NewRegistry()
	registry.SetTargetResolver(resolver)
	assert.NotNil(t, registry.TargetResolver())

	withOption := NewRegistry(WithTargetResolver(resolver))
	assert.NotNil(t, withOption.TargetResolver())
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd, err := NewAction(Declaration{Name: fmt.Sprintf("cmd-%d", i), Static: true}, nil,
				func(any, []any) (any, error) { return nil, nil })
			if err == nil {
				_ = registry.Register(cmd)
			}
			_ = registry.FindByName("cmd-0")
			_ = registry.All()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, registry.Len())
}
