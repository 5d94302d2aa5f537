package commands

import (
	"errors"
	"fmt"
	"reflect"

	"devconsole/pkg/consoletypes"
)

// ArgumentConverter converts raw tokens into typed values, all or nothing.
// *convert.Registry satisfies it.
type ArgumentConverter interface {
	ConvertArguments(tokens []string, types []reflect.Type) ([]any, error)
}

// Bind converts tokens against the leading parameters and fills the rest from defaults.
// It fails when more tokens than parameters are supplied, when a trailing parameter
// has no default, or when any token fails to convert.
func (c *Command) Bind(tokens []string, conv ArgumentConverter) ([]any, error) {
	if len(tokens) > len(c.args) {
		return nil, fmt.Errorf("%s takes at most %d arguments, got %d", c.name, len(c.args), len(tokens))
	}
	for _, a := range c.args[len(tokens):] {
		if !a.HasDefault {
			return nil, fmt.Errorf("%s: missing argument %q", c.name, a.Name)
		}
	}

	types := make([]reflect.Type, len(tokens))
	for i := range tokens {
		types[i] = c.args[i].Type
	}
	converted, err := conv.ConvertArguments(tokens, types)
	if err != nil {
		return nil, err
	}

	return c.fillDefaults(converted), nil
}

// CanExecute reports whether the command would accept already-typed supplied values,
// applying the same eligibility rule as Bind without calling anything.
func (c *Command) CanExecute(supplied []any) bool {
	if len(supplied) > len(c.args) {
		return false
	}
	for i, v := range supplied {
		if !assignable(v, c.args[i].Type) {
			return false
		}
	}
	for _, a := range c.args[len(supplied):] {
		if !a.HasDefault {
			return false
		}
	}
	return true
}

func (c *Command) fillDefaults(supplied []any) []any {
	values := make([]any, len(c.args))
	copy(values, supplied)
	for i := len(supplied); i < len(c.args); i++ {
		values[i] = c.args[i].Default
	}
	return values
}

// Execute runs the command with a full argument list.
// Static commands run once without a target. Single policies run against the first
// resolved instance; All policies run against each instance in order and only the last
// result is returned. A failing invocation stops the iteration.
func (c *Command) Execute(resolver consoletypes.TargetResolver, args []any) (any, error) {
	if c.static {
		return c.invoke(nil, args)
	}

	var result any
	for _, target := range c.targets(resolver) {
		v, err := c.invoke(target, args)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// ExecuteEach runs the command like Execute but collects the result of every target.
// Failures do not stop the iteration; they are joined into the returned error.
func (c *Command) ExecuteEach(resolver consoletypes.TargetResolver, args []any) ([]any, error) {
	if c.static {
		v, err := c.invoke(nil, args)
		return []any{v}, err
	}

	targets := c.targets(resolver)
	results := make([]any, len(targets))
	var errs []error
	for i, target := range targets {
		v, err := c.invoke(target, args)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results[i] = v
	}
	return results, errors.Join(errs...)
}

func (c *Command) targets(resolver consoletypes.TargetResolver) []any {
	if resolver == nil {
		log.Warn("No target resolver for instance command", "command", c.name)
		return nil
	}
	targets := resolver.Resolve(c.owner, c.target)
	if len(targets) == 0 {
		log.Debug("No targets resolved", "command", c.name, "owner", c.owner, "policy", c.target)
		return nil
	}
	if c.target.IsSingle() {
		return targets[:1]
	}
	return targets
}

// invoke calls the host function, turning errors and panics into an InvocationError.
func (c *Command) invoke(target any, args []any) (v any, err error) {
	defer func() {
		if p := recover(); p != nil {
			v = nil
			err = &consoletypes.InvocationError{Command: c.name, Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	v, err = c.fn(target, args)
	if err != nil {
		return nil, &consoletypes.InvocationError{Command: c.name, Err: err}
	}
	return v, nil
}
