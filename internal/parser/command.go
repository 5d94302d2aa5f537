// Package parser splits console input lines into a command name and positional argument tokens.
package parser

import (
	"regexp"
	"strings"
	"unicode"

	"devconsole/pkg/consoletypes"
)

// tokenPattern treats a double-quoted run as one token and any other run of non-space characters as one token.
var tokenPattern = regexp.MustCompile(`"[^"]+"|[^ ]+`)

// Command is a tokenized input line. Argument tokens keep their quotes; converters strip them.
type Command struct {
	Name string
	Args []string
}

// ParseCommand tokenizes a raw input line.
// Returns consoletypes.ErrEmptyInput when the trimmed line is empty.
func ParseCommand(input string) (*Command, error) {
	tokens := Tokens(input)
	if len(tokens) == 0 {
		return nil, consoletypes.ErrEmptyInput
	}

	return &Command{
		Name: tokens[0],
		Args: tokens[1:],
	}, nil
}

// Tokens returns every token of the line in order, the command name included.
func Tokens(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	return tokenPattern.FindAllString(input, -1)
}

// Join is the inverse of ParseCommand for tokens without embedded token-breaking characters.
func Join(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

// String renders the command back into an input line.
func (c *Command) String() string {
	return Join(c.Name, c.Args)
}

// CleanLine trims whitespace and zero-width spaces at both ends of a submitted line.
func CleanLine(input string) string {
	return strings.TrimFunc(input, func(r rune) bool {
		return r == '\u200B' || unicode.IsSpace(r)
	})
}

// Unquote removes surrounding double quotes from a token.
func Unquote(token string) string {
	return strings.Trim(strings.TrimSpace(token), `"`)
}

// Quote wraps text in double quotes when it contains a space.
func Quote(text string) string {
	if strings.Contains(text, " ") {
		return `"` + text + `"`
	}
	return text
}
