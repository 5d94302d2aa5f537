package output

import "strings"

// PlainTextStyle implements TextStyle for plain text output without any styling.
type PlainTextStyle struct {
	prefix string
}

// NewPlainTextStyle creates a new plain text style with an optional prefix.
func NewPlainTextStyle(prefix string) *PlainTextStyle {
	return &PlainTextStyle{prefix: prefix}
}

// Render returns the joined text with the optional prefix.
func (p *PlainTextStyle) Render(strs ...string) string {
	return p.prefix + strings.Join(strs, " ")
}

// PlainStyleProvider implements StyleProvider for plain text output.
// Only warnings and errors carry a marker so transcripts stay readable.
type PlainStyleProvider struct{}

// NewPlainStyleProvider creates a new plain style provider.
func NewPlainStyleProvider() *PlainStyleProvider {
	return &PlainStyleProvider{}
}

// Style returns a prefixing style for warnings and errors and a bare style for everything else.
func (p *PlainStyleProvider) Style(semantic SemanticType) TextStyle {
	switch semantic {
	case SemanticWarning:
		return NewPlainTextStyle("warning: ")
	case SemanticError:
		return NewPlainTextStyle("error: ")
	default:
		return NewPlainTextStyle("")
	}
}

// IsAvailable always returns true.
func (p *PlainStyleProvider) IsAvailable() bool {
	return true
}

// String returns a string representation for debugging.
func (p *PlainStyleProvider) String() string {
	return "PlainStyleProvider{}"
}
