// Package commands provides command registration, overload resolution and execution for devconsole.
// Commands are keyed by name and arity; several overloads may share a name.
package commands

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"devconsole/internal/logger"
	"devconsole/pkg/consoletypes"
)

var log = logger.NewStyledLogger("commands")

// Registry manages command registration and lookup.
// It provides thread-safe registration and retrieval of commands by CommandKey.
type Registry struct {
	mu       sync.RWMutex
	commands map[consoletypes.CommandKey]*Command
	resolver consoletypes.TargetResolver
	frozen   bool
}

// Option configures a Registry.
type Option func(*Registry)

// WithTargetResolver sets the collaborator that finds instances for non-static commands.
func WithTargetResolver(resolver consoletypes.TargetResolver) Option {
	return func(r *Registry) {
		r.resolver = resolver
	}
}

// NewRegistry creates a new command registry with an empty command map.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[consoletypes.CommandKey]*Command),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SetTargetResolver replaces the target resolver.
func (r *Registry) SetTargetResolver(resolver consoletypes.TargetResolver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resolver = resolver
}

// TargetResolver returns the configured target resolver, possibly nil.
func (r *Registry) TargetResolver() consoletypes.TargetResolver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolver
}

// Register adds a command under its CommandKey. A collision is logged and the
// new command is dropped with a DuplicateRegistrationError.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return consoletypes.ErrRegistryFrozen
	}

	key := cmd.Key()
	if _, exists := r.commands[key]; exists {
		err := &consoletypes.DuplicateRegistrationError{Kind: "command", Key: key.String()}
		log.Warn("Command registration rejected", "key", key.String(), "error", err)
		return err
	}

	r.commands[key] = cmd
	log.Debug("Registered", "kind", "command", "key", key.String())
	return nil
}

// RegisterAll registers every command, continuing past failures.
// The returned error joins every rejection.
func (r *Registry) RegisterAll(cmds ...*Command) error {
	var errs []error
	for _, cmd := range cmds {
		if err := r.Register(cmd); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Get retrieves the overload with the given key.
func (r *Registry) Get(key consoletypes.CommandKey) (*Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, ok := r.commands[key]
	return cmd, ok
}

// FindByName returns every overload of name ordered by arity.
func (r *Registry) FindByName(name string) []*Command {
	return r.filter(func(c *Command) bool { return c.name == name })
}

// FindByGroup returns every command of group ordered by name then arity.
func (r *Registry) FindByGroup(group string) []*Command {
	return r.filter(func(c *Command) bool { return c.group == group })
}

// All returns every command ordered by name then arity.
func (r *Registry) All() []*Command {
	return r.filter(func(*Command) bool { return true })
}

// Grouped returns the commands of each group, each list ordered by name then arity.
func (r *Registry) Grouped() map[string][]*Command {
	grouped := make(map[string][]*Command)
	for _, cmd := range r.All() {
		grouped[cmd.group] = append(grouped[cmd.group], cmd)
	}
	return grouped
}

// Groups returns the group names in sorted order.
func (r *Registry) Groups() []string {
	grouped := r.Grouped()
	groups := make([]string, 0, len(grouped))
	for g := range grouped {
		groups = append(groups, g)
	}
	sort.Strings(groups)
	return groups
}

// Names returns the distinct command names in sorted order.
func (r *Registry) Names() []string {
	var names []string
	for _, cmd := range r.All() {
		if len(names) == 0 || names[len(names)-1] != cmd.name {
			names = append(names, cmd.name)
		}
	}
	return names
}

// Len returns the number of registered overloads.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

func (r *Registry) filter(keep func(*Command) bool) []*Command {
	r.mu.RLock()
	var out []*Command
	for _, cmd := range r.commands {
		if keep(cmd) {
			out = append(out, cmd)
		}
	}
	r.mu.RUnlock()

	sortCommands(out)
	return out
}

// sortCommands orders commands by name then arity.
func sortCommands(cmds []*Command) {
	sort.Slice(cmds, func(i, j int) bool {
		if cmds[i].name != cmds[j].name {
			return cmds[i].name < cmds[j].name
		}
		return len(cmds[i].args) < len(cmds[j].args)
	})
}
