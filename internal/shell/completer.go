package shell

import (
	"strings"

	"devconsole/internal/console"
	"devconsole/internal/parser"
)

// Completer provides tab completion for the interactive shell.
// It implements the readline.AutoCompleter interface.
type Completer struct {
	console *console.Console
}

// NewCompleter creates a completer backed by c.
func NewCompleter(c *console.Console) *Completer {
	return &Completer{console: c}
}

// Do implements the readline.AutoCompleter interface.
// It returns the suffixes that complete the word under the cursor and the length of that word.
func (a *Completer) Do(line []rune, pos int) (newLine [][]rune, offset int) {
	if pos > len(line) {
		pos = len(line)
	}
	text := string(line[:pos])

	wordStart := findWordStart(text)
	currentWord := text[wordStart:]

	var suggestions [][]rune
	for _, completion := range a.completions(text, currentWord) {
		if strings.HasPrefix(completion, currentWord) && completion != currentWord {
			suggestions = append(suggestions, []rune(strings.TrimPrefix(completion, currentWord)))
		}
	}
	return suggestions, len([]rune(currentWord))
}

// completions returns command names in the name slot and argument suggestions after it.
func (a *Completer) completions(text, currentWord string) []string {
	trimmed := strings.TrimLeft(text, " ")
	if _, index := parser.CursorArgumentIndex(trimmed, len(trimmed)); index == 0 {
		return a.console.CommandNames(strings.TrimLeft(currentWord, " "))
	}
	return a.console.Suggest(text, len(text))
}

// findWordStart returns the byte offset just after the last space of text.
func findWordStart(text string) int {
	return strings.LastIndexByte(text, ' ') + 1
}
