// Package shell provides the interactive shell and the script runner of devconsole.
// It reads lines with readline and hands them to a console.Console.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"devconsole/internal/console"
	"devconsole/internal/logger"
	"devconsole/internal/version"
)

// LineReader is the part of *readline.Instance the shell loop uses.
type LineReader interface {
	Readline() (string, error)
	SaveHistory(content string) error
	Close() error
}

// Shell is an interactive read-execute loop over a console.
type Shell struct {
	console *console.Console
	prompt  string
	stdin   io.ReadCloser
	stdout  io.Writer
	banner  bool
}

// Option configures a Shell.
type Option func(*Shell)

// WithIO sets the streams readline reads from and writes to.
func WithIO(stdin io.ReadCloser, stdout io.Writer) Option {
	return func(s *Shell) {
		s.stdin = stdin
		s.stdout = stdout
	}
}

// WithoutBanner suppresses the greeting printed when the loop starts.
func WithoutBanner() Option {
	return func(s *Shell) {
		s.banner = false
	}
}

// New creates a shell over c using the prompt of the console configuration.
func New(c *console.Console, opts ...Option) *Shell {
	s := &Shell{
		console: c,
		prompt:  c.Config().Prompt,
		banner:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run starts readline and loops until exit, quit or end of input.
func (s *Shell) Run() error {
	cfg := &readline.Config{
		Prompt:                 s.prompt,
		AutoComplete:           NewCompleter(s.console),
		Painter:                NewHighlighter(s.console),
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		DisableAutoSaveHistory: true,
		HistorySearchFold:      true,
		Stdin:                  s.stdin,
		Stdout:                 s.stdout,
	}
	if limit := s.console.Config().HistorySize; limit > 0 {
		cfg.HistoryLimit = limit
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fmt.Errorf("failed to start readline: %w", err)
	}

	printer := s.console.Printer()
	previous := printer.Writer()
	printer.SetWriter(rl.Stdout())
	defer printer.SetWriter(previous)

	return s.Loop(rl)
}

// Loop reads and executes lines from rl until exit, quit or end of input, then closes rl.
func (s *Shell) Loop(rl LineReader) error {
	defer func() { _ = rl.Close() }()

	printer := s.console.Printer()
	if s.banner {
		printer.Info(fmt.Sprintf("devconsole v%s - type 'list-commands' for commands or 'exit' to quit", version.Version))
	}
	logger.Info("Shell started", "component", "shell", "prompt", s.prompt)

	for {
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			logger.Info("Shell input closed", "component", "shell")
			return nil
		case err != nil:
			return fmt.Errorf("failed to read input: %w", err)
		}

		if isExit(line) {
			logger.Info("Shell exited", "component", "shell")
			return nil
		}

		outcome := s.console.Execute(line)
		if outcome.Status != console.StatusEmpty {
			if err := rl.SaveHistory(outcome.Line); err != nil {
				logger.Warn("Failed to save readline history", "component", "shell", "error", err)
			}
		}
	}
}

func isExit(line string) bool {
	switch strings.TrimSpace(line) {
	case "exit", "quit":
		return true
	default:
		return false
	}
}

// ScriptResult summarizes a script run.
type ScriptResult struct {
	Executed int
	Failed   int
}

// RunScript executes every line of r through c.
// Blank lines and lines starting with # are skipped, and an exit or quit line stops the script.
// Failed lines are counted and the script carries on; the returned error only reports read failures.
func RunScript(c *console.Console, r io.Reader) (ScriptResult, error) {
	var result ScriptResult
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if isExit(line) {
			break
		}

		outcome := c.Execute(line)
		result.Executed++
		if outcome.Err != nil {
			result.Failed++
			logger.Debug("Script line failed", "component", "shell", "line", lineNo,
				"status", outcome.Status.String(), "error", outcome.Err)
		}
	}
	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("failed to read script: %w", err)
	}

	logger.Debug("Script finished", "component", "shell", "executed", result.Executed, "failed", result.Failed)
	return result, nil
}
