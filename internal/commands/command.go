package commands

import (
	"fmt"
	"reflect"
	"strings"

	"devconsole/pkg/consoletypes"
)

// Kind is the closed set of command variants.
type Kind int

const (
	// KindAction is a method-like command with any number of parameters.
	KindAction Kind = iota
	// KindPropertyGetter reads a value and takes no parameters.
	KindPropertyGetter
	// KindPropertySetter writes a value and takes exactly one parameter.
	KindPropertySetter
)

// String returns the variant name.
func (k Kind) String() string {
	switch k {
	case KindAction:
		return "action"
	case KindPropertyGetter:
		return "getter"
	case KindPropertySetter:
		return "setter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Argument describes one formal parameter of a command.
type Argument struct {
	Name       string
	Type       reflect.Type
	HasDefault bool
	Default    any
}

// Param declares a required parameter of type T.
func Param[T any](name string) Argument {
	return Argument{Name: name, Type: reflect.TypeFor[T]()}
}

// ParamDefault declares a parameter of type T that falls back to def when no token is supplied.
func ParamDefault[T any](name string, def T) Argument {
	return Argument{Name: name, Type: reflect.TypeFor[T](), HasDefault: true, Default: def}
}

// Declaration is the metadata a host attaches to a command at registration time.
type Declaration struct {
	Name        string
	Description string
	// Group defaults to consoletypes.DefaultGroup when blank.
	Group string
	// Target is ignored for static commands.
	Target consoletypes.TargetPolicy
	Static bool
	// Owner is the declaring type; instance commands resolve their targets by it.
	Owner reflect.Type
}

// Func is the host callable behind a command.
// target is nil for static commands; args always holds one value per declared parameter.
type Func func(target any, args []any) (any, error)

// Command is a named, typed, invocable unit stored in the registry.
// Commands are immutable after construction.
type Command struct {
	kind        Kind
	name        string
	description string
	group       string
	target      consoletypes.TargetPolicy
	static      bool
	owner       reflect.Type
	args        []Argument
	fn          Func
}

// NewAction builds a method-like command.
// Invalid declarations are programmer errors and are reported as errors rather than logged.
func NewAction(decl Declaration, params []Argument, fn Func) (*Command, error) {
	return newCommand(KindAction, decl, decl.Description, params, fn)
}

// NewProperty builds the getter and/or setter commands of a property of type valueType.
// Either accessor may be nil, but not both.
func NewProperty(
	decl Declaration,
	valueType reflect.Type,
	get func(target any) (any, error),
	set func(target any, value any) error,
) ([]*Command, error) {
	if get == nil && set == nil {
		return nil, fmt.Errorf("property %q needs a getter or a setter", decl.Name)
	}
	if valueType == nil {
		return nil, fmt.Errorf("property %q has no value type", decl.Name)
	}

	var cmds []*Command
	if get != nil {
		getter, err := newCommand(KindPropertyGetter, decl, "Get "+decl.Description, nil,
			func(target any, _ []any) (any, error) {
				return get(target)
			})
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, getter)
	}
	if set != nil {
		params := []Argument{{Name: "value", Type: valueType}}
		setter, err := newCommand(KindPropertySetter, decl, "Set "+decl.Description, params,
			func(target any, args []any) (any, error) {
				return nil, set(target, args[0])
			})
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, setter)
	}
	return cmds, nil
}

// Must panics if err is non-nil. It is meant for static registration tables.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func newCommand(kind Kind, decl Declaration, description string, params []Argument, fn Func) (*Command, error) {
	if fn == nil {
		return nil, fmt.Errorf("command %q has no function", decl.Name)
	}

	name, err := NormalizeName(decl.Name)
	if err != nil {
		return nil, err
	}
	if name != decl.Name {
		log.Warn("Command name normalized", "name", decl.Name, "normalized", name)
	}

	switch kind {
	case KindPropertyGetter:
		if len(params) != 0 {
			return nil, fmt.Errorf("getter %s cannot take parameters", name)
		}
	case KindPropertySetter:
		if len(params) != 1 || params[0].HasDefault {
			return nil, fmt.Errorf("setter %s takes exactly one parameter without default", name)
		}
	}

	if !decl.Static && decl.Owner == nil {
		return nil, fmt.Errorf("instance command %s needs an owner type", name)
	}

	args := make([]Argument, len(params))
	for i, p := range params {
		if err := validateArgument(p); err != nil {
			return nil, fmt.Errorf("command %s parameter %d: %w", name, i+1, err)
		}
		args[i] = p
	}

	group := strings.TrimSpace(decl.Group)
	if group == "" {
		group = consoletypes.DefaultGroup
	}

	return &Command{
		kind:        kind,
		name:        name,
		description: description,
		group:       group,
		target:      decl.Target,
		static:      decl.Static,
		owner:       decl.Owner,
		args:        args,
		fn:          fn,
	}, nil
}

func validateArgument(a Argument) error {
	if a.Type == nil {
		return fmt.Errorf("%q has no type", a.Name)
	}
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("parameter of type %s has no name", a.Type)
	}
	if a.HasDefault && !assignable(a.Default, a.Type) {
		return fmt.Errorf("default %v of %q is not a %s", a.Default, a.Name, a.Type)
	}
	return nil
}

// assignable reports whether v can be passed where t is declared.
func assignable(v any, t reflect.Type) bool {
	if v == nil {
		switch t.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return true
		default:
			return false
		}
	}
	return reflect.TypeOf(v).AssignableTo(t)
}

// Kind returns the command variant.
func (c *Command) Kind() Kind { return c.kind }

// Name returns the normalized command name.
func (c *Command) Name() string { return c.name }

// Description returns the human-readable description.
func (c *Command) Description() string { return c.description }

// Group returns the listing group.
func (c *Command) Group() string { return c.group }

// Target returns the target policy.
func (c *Command) Target() consoletypes.TargetPolicy { return c.target }

// Static reports whether the command runs without a target instance.
func (c *Command) Static() bool { return c.static }

// Owner returns the declaring type, nil for static commands declared without one.
func (c *Command) Owner() reflect.Type { return c.owner }

// Arity returns the number of declared parameters.
func (c *Command) Arity() int { return len(c.args) }

// Key returns the registry identity of the command.
func (c *Command) Key() consoletypes.CommandKey {
	return consoletypes.NewCommandKey(c.name, len(c.args))
}

// Arguments returns a copy of the declared parameters.
func (c *Command) Arguments() []Argument {
	out := make([]Argument, len(c.args))
	copy(out, c.args)
	return out
}

// Argument returns the parameter at position i.
func (c *Command) Argument(i int) (Argument, bool) {
	if i < 0 || i >= len(c.args) {
		return Argument{}, false
	}
	return c.args[i], true
}

// ArgumentNames returns the parameter names in order.
func (c *Command) ArgumentNames() []string {
	names := make([]string, len(c.args))
	for i, a := range c.args {
		names[i] = a.Name
	}
	return names
}

// Signature renders "name arg1 arg2".
func (c *Command) Signature() string {
	if len(c.args) == 0 {
		return c.name
	}
	return c.name + " " + strings.Join(c.ArgumentNames(), " ")
}

func (c *Command) String() string {
	return c.Key().String()
}
