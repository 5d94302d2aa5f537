// Package output provides the console output system for devconsole.
// Printers render semantic messages either styled (lipgloss) or as plain text.
package output

// StyleProvider supplies a TextStyle for each semantic type.
// The printer depends only on this interface, so themes can be swapped or disabled.
type StyleProvider interface {
	// Style returns the TextStyle for the given semantic type.
	Style(semantic SemanticType) TextStyle

	// IsAvailable returns true if the provider can render styles in the current terminal.
	IsAvailable() bool
}

// TextStyle represents the capability to render text with styling.
// lipgloss.Style satisfies it.
type TextStyle interface {
	Render(strs ...string) string
}

// Mode defines the output modes a printer can operate in.
type Mode int

const (
	// ModeAuto styles output when a style provider is available.
	ModeAuto Mode = iota

	// ModeStyled forces styled output.
	ModeStyled

	// ModePlain forces plain text output with ANSI sequences stripped.
	ModePlain
)

// SemanticType defines the semantic meaning of output for consistent styling.
type SemanticType string

const (
	// SemanticPlain represents plain text without any semantic meaning.
	SemanticPlain SemanticType = "plain"
	// SemanticInfo represents informational text.
	SemanticInfo SemanticType = "info"
	// SemanticSuccess represents success or completion text.
	SemanticSuccess SemanticType = "success"
	// SemanticWarning represents warning text.
	SemanticWarning SemanticType = "warning"
	// SemanticError represents error text.
	SemanticError SemanticType = "error"

	// SemanticEcho represents an echoed input line.
	SemanticEcho SemanticType = "echo"
	// SemanticCommand represents a command name.
	SemanticCommand SemanticType = "command"
	// SemanticResult represents the rendered result of a command.
	SemanticResult SemanticType = "result"
	// SemanticHeading represents a section heading such as a command group.
	SemanticHeading SemanticType = "heading"
	// SemanticMuted represents secondary text such as descriptions.
	SemanticMuted SemanticType = "muted"
)
