package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// MarkdownRenderMargin is the left margin used for terminal markdown rendering.
const MarkdownRenderMargin = 2

// RenderMarkdown renders a note body for terminal display.
func RenderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = DefaultTermWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(noteMarkdownStyle()),
		glamour.WithWordWrap(width-MarkdownRenderMargin),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// glamour adds trailing newlines; normalize to a single trailing newline.
	return strings.TrimRight(rendered, "\n") + "\n", nil
}

// noteMarkdownStyle is glamour's dark style with headings in the accent color.
func noteMarkdownStyle() ansi.StyleConfig {
	style := styles.DarkStyleConfig
	style.Document.Margin = mdUintPtr(MarkdownRenderMargin)

	if color, ok := AccentColor(); ok {
		style.Heading.Color = mdStringPtr(color)
		style.H1.Color = mdStringPtr(color)
		style.H1.BackgroundColor = nil
		style.Link.Color = mdStringPtr(color)
	}
	return style
}

func mdStringPtr(v string) *string { return &v }

func mdUintPtr(v uint) *uint { return &v }
