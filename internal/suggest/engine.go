package suggest

import (
	"strings"

	"devconsole/internal/commands"
	"devconsole/internal/parser"
	"devconsole/pkg/consoletypes"
)

// Engine answers suggestion and completion requests for a raw input line and cursor offset.
type Engine struct {
	commands  *commands.Registry
	providers *Registry
	names     *CommandNameProvider
}

// Completion is an input line rewritten with an accepted suggestion.
type Completion struct {
	Line       string
	Cursor     int
	Suggestion string
}

// NewEngine creates an engine over the command and provider registries.
// A command-name provider is registered under consoletypes.TypeKeyCommand unless one exists.
func NewEngine(cmds *commands.Registry, providers *Registry) *Engine {
	names := NewCommandNameProvider(cmds)
	if _, ok := providers.Lookup(consoletypes.TypeKeyCommand); !ok {
		if err := providers.Register(names); err != nil {
			log.Warn("Command name provider not registered", "error", err)
		}
	}
	return &Engine{commands: cmds, providers: providers, names: names}
}

// Suggest returns the candidates for the token under the cursor.
// Slot 0 yields command lines "name args - description"; later slots yield values from
// the provider of the best-fit overload's parameter type.
func (e *Engine) Suggest(input string, cursor int) []string {
	input, cursor = trimLeading(input, cursor)
	name, args := split(input)
	_, index := parser.CursorArgumentIndex(input, cursor)

	if index == 0 {
		lines, _ := e.providers.SuggestKey(consoletypes.TypeKeyCommand, name)
		return lines
	}

	arg, ok := e.argumentAt(name, args, index)
	if !ok {
		return nil
	}

	partial := ""
	if index-1 < len(args) {
		partial = args[index-1]
	}
	candidates, found := e.providers.Suggest(arg.Type, partial)
	if !found {
		log.Debug("No suggestion provider", "type", consoletypes.KeyOf(arg.Type))
	}
	return candidates
}

// CommandNames returns the distinct command names starting with partial.
func (e *Engine) CommandNames(partial string) []string {
	return e.names.Names(partial)
}

// Complete rewrites the token under the cursor with the top suggestion.
// Only that token changes; the result must tokenize back to the rewritten tokens,
// otherwise ok is false. Leading spaces are dropped from the rewritten line.
func (e *Engine) Complete(input string, cursor int) (Completion, bool) {
	input, cursor = trimLeading(input, cursor)
	name, args := split(input)
	if name == "" {
		return Completion{}, false
	}
	_, index := parser.CursorArgumentIndex(input, cursor)

	var suggestion string
	if index == 0 {
		cmd, ok := e.completeName(name, len(args))
		if !ok {
			return Completion{}, false
		}
		suggestion = cmd.Name()
		name = suggestion
	} else {
		candidates := e.Suggest(input, cursor)
		if len(candidates) == 0 {
			return Completion{}, false
		}
		suggestion = candidates[0]
		args = parser.ReplaceArg(args, index-1, suggestion)
	}

	rewritten := &parser.Command{Name: name, Args: args}
	line := rewritten.String()
	reparsed, err := parser.ParseCommand(line)
	if err != nil || !parser.Equal(rewritten, reparsed) {
		log.Debug("Completion is not round-trip stable", "line", line)
		return Completion{}, false
	}

	end := len(name)
	if index > 0 {
		end = len(parser.Join(name, args[:index]))
	}
	return Completion{Line: line, Cursor: end, Suggestion: suggestion}, true
}

// completeName picks the first prefix-matching overload able to take count arguments.
func (e *Engine) completeName(partial string, count int) (*commands.Command, bool) {
	matches := e.names.Match(partial)
	for _, cmd := range matches {
		if cmd.Arity() >= count {
			return cmd, true
		}
	}
	if len(matches) > 0 {
		return matches[0], true
	}
	return nil, false
}

// argumentAt finds the declared parameter at slot index of the best-fit overload.
func (e *Engine) argumentAt(name string, args []string, index int) (commands.Argument, bool) {
	if name == "" {
		return commands.Argument{}, false
	}
	cmd, ok := e.commands.BestFit(name, max(index, len(args)), index)
	if !ok {
		return commands.Argument{}, false
	}
	return cmd.Argument(index - 1)
}

// trimLeading drops leading spaces from input and moves cursor back by the same amount.
func trimLeading(input string, cursor int) (string, int) {
	trimmed := strings.TrimLeft(input, " ")
	cursor -= len(input) - len(trimmed)
	if cursor < 0 {
		cursor = 0
	}
	return trimmed, cursor
}

func split(input string) (string, []string) {
	cmd, err := parser.ParseCommand(input)
	if err != nil {
		return "", nil
	}
	return cmd.Name, cmd.Args
}
