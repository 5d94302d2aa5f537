package output

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a lipgloss-backed StyleProvider.
type Theme struct {
	styles map[SemanticType]lipgloss.Style
}

// DefaultTheme returns the console's default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		styles: map[SemanticType]lipgloss.Style{
			SemanticPlain:   lipgloss.NewStyle(),
			SemanticInfo:    lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "25", Dark: "39"}),
			SemanticSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			SemanticWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			SemanticError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
			SemanticEcho:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			SemanticCommand: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
			SemanticResult:  lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "0", Dark: "15"}),
			SemanticHeading: lipgloss.NewStyle().Bold(true).Underline(true),
			SemanticMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		},
	}
}

// Style returns the style for semantic, or an unstyled one for unknown types.
func (t *Theme) Style(semantic SemanticType) TextStyle {
	if style, ok := t.styles[semantic]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// IsAvailable reports whether the terminal supports colors.
func (t *Theme) IsAvailable() bool {
	return lipgloss.ColorProfile() != termenv.Ascii
}
