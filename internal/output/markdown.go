package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"devconsole/internal/logger"
)

// MarkdownRenderer renders markdown to ANSI terminal output using glamour.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer with auto-detected style and the given word wrap.
// A renderer that failed to initialize renders nothing and reports an error.
func NewMarkdownRenderer(wordWrap int) *MarkdownRenderer {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		logger.Debug("Markdown renderer unavailable", "error", err)
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{renderer: renderer}
}

// Render renders markdown content.
func (m *MarkdownRenderer) Render(markdown string) (string, error) {
	if m.renderer == nil {
		return "", fmt.Errorf("markdown renderer not initialized")
	}
	if strings.TrimSpace(markdown) == "" {
		return "", fmt.Errorf("markdown content cannot be empty")
	}

	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}
