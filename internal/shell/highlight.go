package shell

import (
	"strings"

	"devconsole/internal/console"
	"devconsole/internal/output"
)

// Highlighter implements readline.Painter. It colors the command name of the
// line being typed: known names as commands, unknown ones as errors.
type Highlighter struct {
	console *console.Console
}

// NewHighlighter creates a highlighter backed by c.
func NewHighlighter(c *console.Console) *Highlighter {
	return &Highlighter{console: c}
}

// Paint implements the readline.Painter interface.
func (h *Highlighter) Paint(line []rune, _ int) []rune {
	printer := h.console.Printer()
	if !printer.IsStylable() {
		return line
	}

	input := string(line)
	leading := len(input) - len(strings.TrimLeft(input, " "))
	rest := input[leading:]
	end := strings.IndexByte(rest, ' ')
	if end < 0 {
		end = len(rest)
	}
	name := rest[:end]
	if name == "" {
		return line
	}

	semantic := output.SemanticError
	if len(h.console.Commands().FindByName(name)) > 0 {
		semantic = output.SemanticCommand
	}
	return []rune(input[:leading] + printer.Styled(semantic, name) + rest[end:])
}
