package main

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

var (
	markdownMu       sync.Mutex
	markdownRenderer *glamour.TermRenderer
	markdownErr      error
	markdownStyle    = themeDark
	markdownWordWrap = 56
)

// RenderMarkdown returns glamour output for the given Markdown, or the
// source unchanged when no renderer could be built.
func RenderMarkdown(content string) string {
	renderer := ensureMarkdownRenderer()
	if renderer == nil {
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return out
}

func ensureMarkdownRenderer() *glamour.TermRenderer {
	markdownMu.Lock()
	defer markdownMu.Unlock()
	if markdownRenderer != nil && markdownErr == nil {
		return markdownRenderer
	}
	options := []glamour.TermRendererOption{
		glamour.WithStandardStyle(string(markdownStyle)),
		glamour.WithWordWrap(markdownWordWrap),
	}
	markdownRenderer, markdownErr = glamour.NewTermRenderer(options...)
	if markdownErr != nil {
		return nil
	}
	return markdownRenderer
}

func setMarkdownWordWrap(width int) {
	markdownMu.Lock()
	if width < 20 {
		width = 20
	}
	if markdownWordWrap != width {
		markdownWordWrap = width
		markdownRenderer = nil
		markdownErr = nil
	}
	markdownMu.Unlock()
}

func setMarkdownTheme(theme uiTheme) {
	markdownMu.Lock()
	if markdownStyle != theme {
		markdownStyle = theme
		markdownRenderer = nil
		markdownErr = nil
	}
	markdownMu.Unlock()
}

const paymentModalMarkdown = `# Upgrade Plan

**Credits Expiring Soon**

Your 450,000 credits are at risk. Upgrade to Pro.

| Plan | Price | |
|---|---|---|
| Pro Monthly | $29/mo | |
| Pro Annual | $279/yr | Save 20% |

🔒 Secure SSL Payment
`
