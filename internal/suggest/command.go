package suggest

import (
	"reflect"
	"strings"

	"devconsole/internal/commands"
	"devconsole/pkg/consoletypes"
)

// CommandNameProvider suggests registered commands whose name starts with the partial text.
type CommandNameProvider struct {
	registry *commands.Registry
}

// NewCommandNameProvider creates a provider over registry.
func NewCommandNameProvider(registry *commands.Registry) *CommandNameProvider {
	return &CommandNameProvider{registry: registry}
}

// Key returns consoletypes.TypeKeyCommand.
func (p *CommandNameProvider) Key() consoletypes.TypeKey {
	return consoletypes.TypeKeyCommand
}

// Suggest returns one "name args - description" line per matching overload, ordered by name then arity.
func (p *CommandNameProvider) Suggest(_ reflect.Type, partial string) []string {
	matches := p.Match(partial)
	lines := make([]string, len(matches))
	for i, cmd := range matches {
		lines[i] = cmd.Signature() + " - " + cmd.Description()
	}
	return lines
}

// Match returns the overloads whose name starts with partial, ignoring case, ordered by name then arity.
func (p *CommandNameProvider) Match(partial string) []*commands.Command {
	lower := strings.ToLower(partial)
	var matches []*commands.Command
	for _, cmd := range p.registry.All() {
		if strings.HasPrefix(cmd.Name(), lower) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// Names returns the distinct matching command names in sorted order.
func (p *CommandNameProvider) Names(partial string) []string {
	var names []string
	for _, cmd := range p.Match(partial) {
		if len(names) == 0 || names[len(names)-1] != cmd.Name() {
			names = append(names, cmd.Name())
		}
	}
	return names
}
