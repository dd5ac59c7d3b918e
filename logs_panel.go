package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

const (
	logPanelHeight = 8
	maxLogLines    = 400
)

// logPanel shows export notices and hook job output in a scrolling
// viewport with a one-cell scroll bar on the left.
type logPanel struct {
	title    string
	lines    []string
	viewport viewport.Model
	width    int
	height   int
}

func newLogPanel() *logPanel {
	vp := viewport.New(0, logPanelHeight)
	return &logPanel{
		title:    "Export / Hook Log",
		viewport: vp,
		height:   logPanelHeight,
	}
}

func (p *logPanel) Append(line string) {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return
	}
	p.lines = append(p.lines, line)
	if len(p.lines) > maxLogLines {
		p.lines = p.lines[len(p.lines)-maxLogLines:]
	}
	p.viewport.SetContent(strings.Join(p.lines, "\n"))
	p.viewport.GotoBottom()
}

func (p *logPanel) Lines() []string {
	return append([]string(nil), p.lines...)
}

func (p *logPanel) SetSize(width, height int) {
	if height < 3 {
		height = 3
	}
	p.width = width
	p.height = height
	// border, title row and the scroll bar column
	p.viewport.Width = max(width-3, 1)
	p.viewport.Height = max(height-3, 1)
}

func (p *logPanel) View(s styles) string {
	title := s.columnTitle.Render(p.title)
	if total := len(p.lines); total > 0 {
		title += s.statusHint.Render(fmt.Sprintf(" %d lines", total))
	}
	height := p.viewport.Height
	lines := strings.Split(p.viewport.View(), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	bar := p.renderScrollBar(s, height)
	for i := range lines {
		lines[i] = bar[i] + lines[i]
	}
	body := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))
	return s.panel.Width(max(p.width-2, 1)).Render(body)
}

func (p *logPanel) renderScrollBar(s styles, height int) []string {
	track := s.statusHint.Render("│")
	thumb := s.cmdPrompt.Copy().Foreground(s.palette.accent).Render("┃")
	start, size := scrollThumb(p.viewport.TotalLineCount(), p.viewport.Height, p.viewport.YOffset, height)
	bar := make([]string, height)
	for i := range bar {
		bar[i] = track
		if i >= start && i < start+size {
			bar[i] = thumb
		}
	}
	return bar
}

// scrollThumb places the thumb of a rows-tall bar for a window of visible
// lines at offset into total lines. size is 0 when everything fits.
func scrollThumb(total, visible, offset, rows int) (start, size int) {
	if rows <= 0 || visible <= 0 || total <= visible {
		return 0, 0
	}
	size = max(rows*visible/total, 1)
	hidden := total - visible
	offset = min(max(offset, 0), hidden)
	start = (rows - size) * offset / hidden
	return start, size
}
