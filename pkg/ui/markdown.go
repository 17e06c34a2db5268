package ui

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown reference pages for the terminal.
type MarkdownRenderer struct {
	Style string // "auto", a glamour standard style such as "dark" or "notty", or a style file path
	Width int    // word wrap width, 0 keeps glamour's default
}

// NewMarkdownRenderer creates a markdown renderer using glamour with auto-detection
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: "auto"}
}

// Render converts markdown for the given format. Only terminal output is
// rendered; every other format gets the source unchanged.
func (r *MarkdownRenderer) Render(content string, format Format) string {
	if format != FormatTerminal {
		return content
	}

	var options []glamour.TermRendererOption
	switch r.Style {
	case "", "auto":
		options = append(options, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		options = append(options, glamour.WithStandardStyle(r.Style))
	default:
		options = append(options, glamour.WithStylePath(r.Style))
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
