package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Printer is the output handler of the console. It renders semantic messages
// with the configured StyleProvider, or as plain text with ANSI sequences stripped.
type Printer struct {
	styleProvider StyleProvider
	markdown      *MarkdownRenderer
	writer        io.Writer
	mode          Mode
	forcePlain    bool
	silent        bool

	mu sync.Mutex
}

// NewPrinter creates a new Printer with the given options.
// By default, it writes to os.Stdout with automatic mode detection.
func NewPrinter(options ...Option) *Printer {
	p := &Printer{
		writer: os.Stdout,
		mode:   ModeAuto,
	}

	for _, opt := range options {
		opt(p)
	}

	return p
}

// Print outputs text without any semantic styling.
func (p *Printer) Print(text string) {
	p.output(SemanticPlain, text, false)
}

// Println outputs text with a newline without any semantic styling.
func (p *Printer) Println(text string) {
	p.output(SemanticPlain, text, true)
}

// Info outputs informational text.
func (p *Printer) Info(text string) {
	p.output(SemanticInfo, text, true)
}

// Success outputs success text.
func (p *Printer) Success(text string) {
	p.output(SemanticSuccess, text, true)
}

// Warning outputs warning text.
func (p *Printer) Warning(text string) {
	p.output(SemanticWarning, text, true)
}

// Error outputs error text.
func (p *Printer) Error(text string) {
	p.output(SemanticError, text, true)
}

// Echo outputs a submitted input line.
func (p *Printer) Echo(line string) {
	p.output(SemanticEcho, "> "+line, true)
}

// Result outputs the rendered result of a command.
func (p *Printer) Result(text string) {
	p.output(SemanticResult, text, true)
}

// Heading outputs a section heading.
func (p *Printer) Heading(text string) {
	p.output(SemanticHeading, text, true)
}

// Styled renders text with the style of semantic without writing it.
func (p *Printer) Styled(semantic SemanticType, text string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.render(semantic, text)
}

// Markdown renders markdown through glamour when styled, and writes it verbatim otherwise.
func (p *Printer) Markdown(text string) {
	if p.IsStylable() {
		p.mu.Lock()
		if p.markdown == nil {
			p.markdown = NewMarkdownRenderer(80)
		}
		renderer := p.markdown
		p.mu.Unlock()

		if rendered, err := renderer.Render(text); err == nil {
			p.output(SemanticPlain, rendered, true)
			return
		}
	}
	p.output(SemanticPlain, text, true)
}

// output is the core output method that handles all rendering logic.
func (p *Printer) output(semantic SemanticType, text string, addNewline bool) {
	if p.silent {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	finalText := p.render(semantic, text)
	if addNewline && !strings.HasSuffix(finalText, "\n") {
		finalText += "\n"
	}

	_, _ = fmt.Fprint(p.writer, finalText)
}

func (p *Printer) render(semantic SemanticType, text string) string {
	if p.stylable() && p.mode != ModePlain {
		return p.styleProvider.Style(semantic).Render(text)
	}
	return NewPlainStyleProvider().Style(semantic).Render(ansi.Strip(text))
}

func (p *Printer) stylable() bool {
	return !p.forcePlain && p.styleProvider != nil && p.styleProvider.IsAvailable()
}

// SetWriter changes the output writer.
func (p *Printer) SetWriter(writer io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = writer
}

// Writer returns the current output writer.
func (p *Printer) Writer() io.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writer
}

// IsStylable returns true if the printer applies styles.
func (p *Printer) IsStylable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stylable() && p.mode != ModePlain
}

// String returns a string representation for debugging.
func (p *Printer) String() string {
	hasStyles := "no"
	if p.IsStylable() {
		hasStyles = "yes"
	}
	return fmt.Sprintf("Printer{mode: %v, styles: %s, writer: %T}", p.mode, hasStyles, p.writer)
}
