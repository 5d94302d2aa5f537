// Package console wires the command, conversion and suggestion registries into an
// interactive engine: it executes submitted lines, reports outcomes through a printer,
// keeps the input history and answers completion requests.
package console

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"devconsole/internal/commands"
	"devconsole/internal/config"
	"devconsole/internal/convert"
	"devconsole/internal/logger"
	"devconsole/internal/output"
	"devconsole/internal/parser"
	"devconsole/internal/suggest"
	"devconsole/pkg/consoletypes"
)

var log = logger.NewStyledLogger("console")

// Status classifies the outcome of an executed line.
type Status int

const (
	// StatusEmpty means the line was blank and nothing ran.
	StatusEmpty Status = iota
	// StatusOK means a command ran to completion.
	StatusOK
	// StatusNotFound means no command has the submitted name.
	StatusNotFound
	// StatusNoMatch means no overload accepted the arguments.
	StatusNoMatch
	// StatusFailed means the command ran and reported an error.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not-found"
	case StatusNoMatch:
		return "no-match"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome describes what happened to one submitted line.
type Outcome struct {
	Line    string
	Status  Status
	Command *commands.Command
	Value   any
	// Output is the rendered result, empty when the command produced no value.
	Output string
	Err    error
	// Suggestions lists close command names when the name was not found.
	Suggestions []string
}

// Console is the engine facade used by shells and batch runners.
type Console struct {
	cfg        *config.Config
	converters *convert.Registry
	commands   *commands.Registry
	providers  *suggest.Registry
	engine     *suggest.Engine
	printer    *output.Printer
	history    *History
	resolver   consoletypes.TargetResolver
}

// Option configures a Console.
type Option func(*Console)

// WithCommandRegistry uses an existing command registry.
func WithCommandRegistry(r *commands.Registry) Option {
	return func(c *Console) {
		c.commands = r
	}
}

// WithConverters uses an existing conversion registry.
func WithConverters(r *convert.Registry) Option {
	return func(c *Console) {
		c.converters = r
	}
}

// WithSuggestions uses an existing suggestion provider registry.
func WithSuggestions(r *suggest.Registry) Option {
	return func(c *Console) {
		c.providers = r
	}
}

// WithPrinter sets the printer messages are written to.
func WithPrinter(p *output.Printer) Option {
	return func(c *Console) {
		c.printer = p
	}
}

// WithTargetResolver sets the resolver instance commands run against.
func WithTargetResolver(resolver consoletypes.TargetResolver) Option {
	return func(c *Console) {
		c.resolver = resolver
	}
}

// New builds a console and registers its built-in commands.
// A nil cfg uses config.Default.
func New(cfg *config.Config, opts ...Option) (*Console, error) {
	if cfg == nil {
		def := config.Default()
		cfg = &def
	}

	c := &Console{cfg: cfg}
	for _, opt := range opts {
		opt(c)
	}

	if c.converters == nil {
		c.converters = convert.NewRegistry(convert.WithOverride(cfg.AllowOverride))
	}
	if c.commands == nil {
		c.commands = commands.NewRegistry()
	}
	if c.providers == nil {
		c.providers = suggest.NewRegistry()
	}
	if c.printer == nil {
		c.printer = NewPrinter(cfg)
	}
	if c.resolver != nil {
		c.commands.SetTargetResolver(c.resolver)
	}
	c.history = NewHistory(cfg.HistorySize)

	if err := c.registerBuiltins(); err != nil {
		return nil, err
	}
	c.engine = suggest.NewEngine(c.commands, c.providers)

	log.Debug("Console initialized", "commands", c.commands.Len(), "converters", c.converters.Len())
	return c, nil
}

// NewPrinter returns the printer matching the output settings of cfg.
func NewPrinter(cfg *config.Config) *output.Printer {
	switch {
	case cfg.TestMode:
		return output.NewPrinter(output.TestMode())
	case cfg.Plain:
		return output.NewPrinter(output.PlainText())
	default:
		return output.NewPrinter(output.WithStyles(output.DefaultTheme()))
	}
}

// Config returns the settings the console was built with.
func (c *Console) Config() *config.Config { return c.cfg }

// Commands returns the command registry.
func (c *Console) Commands() *commands.Registry { return c.commands }

// Converters returns the conversion registry.
func (c *Console) Converters() *convert.Registry { return c.converters }

// Suggestions returns the suggestion provider registry.
func (c *Console) Suggestions() *suggest.Registry { return c.providers }

// Printer returns the printer.
func (c *Console) Printer() *output.Printer { return c.printer }

// History returns the input history.
func (c *Console) History() *History { return c.history }

// Freeze makes every registry read-only.
func (c *Console) Freeze() {
	c.converters.Freeze()
	c.commands.Freeze()
	c.providers.Freeze()
	log.Debug("Registries frozen")
}

// Execute runs one submitted line and reports the outcome through the printer.
// Blank lines are ignored. Failures never escape as panics; they are printed and returned in Outcome.Err.
func (c *Console) Execute(line string) Outcome {
	line = parser.CleanLine(line)
	cmd, err := parser.ParseCommand(line)
	if err != nil {
		return Outcome{Line: line, Status: StatusEmpty}
	}

	c.printer.Echo(line)
	outcome := Outcome{Line: line}

	exec, err := c.commands.ResolveAndExecute(cmd.Name, cmd.Args, c.converters)
	if err != nil {
		outcome.Err = err
		var notFound *consoletypes.CommandNotFoundError
		if errors.As(err, &notFound) {
			outcome.Status = StatusNotFound
			outcome.Suggestions = c.didYouMean(cmd.Name)
			c.printer.Error("Command not found: " + cmd.Name)
			if len(outcome.Suggestions) > 0 {
				c.printer.Info("Did you mean: " + strings.Join(outcome.Suggestions, ", ") + "?")
			}
			return outcome
		}

		outcome.Status = StatusNoMatch
		c.printer.Error(fmt.Sprintf("Failed to execute command %s with arguments %s",
			cmd.Name, strings.Join(cmd.Args, ", ")))
		var noMatch *consoletypes.NoMatchingOverloadError
		if errors.As(err, &noMatch) {
			for _, failure := range noMatch.Failures {
				c.printer.Println(c.printer.Styled(output.SemanticMuted, "  "+failure.Error()))
			}
		}
		return outcome
	}

	outcome.Command = exec.Command
	c.history.Add(line)

	if exec.Failure != nil {
		outcome.Status = StatusFailed
		outcome.Err = exec.Failure
		c.printer.Error(exec.Failure.Error())
		return outcome
	}

	outcome.Status = StatusOK
	outcome.Value = exec.Value
	if !isAbsent(exec.Value) {
		outcome.Output = c.render(exec.Value)
		c.printer.Result(outcome.Output)
	}
	return outcome
}

// render formats a command result with its converter, falling back to fmt.
// Strings are printed as they are.
func (c *Console) render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if text, ok := c.converters.ToString(v); ok {
		return text
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

// Suggest returns completion candidates for input at cursor.
func (c *Console) Suggest(input string, cursor int) []string {
	return c.engine.Suggest(input, cursor)
}

// Complete applies the best candidate for the token at cursor.
func (c *Console) Complete(input string, cursor int) (suggest.Completion, bool) {
	return c.engine.Complete(input, cursor)
}

// CommandNames returns the command names starting with partial.
func (c *Console) CommandNames(partial string) []string {
	return c.engine.CommandNames(partial)
}

// isAbsent reports whether v is nil or a nil pointer, map, slice, func or interface.
func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
