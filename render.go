package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bekirdag/bitscale-grid/internal/grid"
)

const (
	bannerText      = "Payment failed. 450,000 credits will permanently expire in 30 days"
	emptySheetText  = "This sheet is empty"
	emptyResultText = "No rows match the current search or filter"
)

// layout sizes the grid to whatever the chrome leaves over.
func (m *model) layout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.help.Width = max(m.width-4, 0)
	m.progress.Width = min(24, max(m.width/5, 8))
	m.search.Width = min(28, max(m.width/4, 10))
	m.editor.Width = min(48, max(m.width-16, 16))
	setMarkdownWordWrap(min(60, m.width-8))

	// header, banner, toolbar, footer, status
	chrome := 5
	chrome += lipgloss.Height(m.help.View(m.keys))
	if m.showLogs {
		m.logs.SetSize(m.width, logPanelHeight+2)
		chrome += logPanelHeight + 2
	}
	// table header row and its rule
	m.table.SetSize(m.width, max(m.height-chrome-2, 4))
}

func (m *model) View() string {
	var builder strings.Builder

	builder.WriteString(m.renderHeader())
	builder.WriteRune('\n')
	builder.WriteString(m.renderBanner())
	builder.WriteRune('\n')
	builder.WriteString(m.renderToolbar())
	builder.WriteRune('\n')
	builder.WriteString(m.renderGrid())
	builder.WriteRune('\n')
	builder.WriteString(m.renderFooter())
	builder.WriteRune('\n')

	if m.showLogs {
		builder.WriteString(m.logs.View(m.styles))
		builder.WriteRune('\n')
	}

	if helpView := m.help.View(m.keys); helpView != "" {
		builder.WriteString(helpView)
		if !strings.HasSuffix(helpView, "\n") {
			builder.WriteRune('\n')
		}
	}
	builder.WriteString(m.renderStatus())

	switch m.mode {
	case modeEdit:
		builder.WriteString("\n")
		builder.WriteString(m.placeOverlay(m.renderEditOverlay()))
	case modePayment:
		builder.WriteString("\n")
		builder.WriteString(m.placeOverlay(m.renderPaymentModal()))
	}

	return m.styles.app.Render(builder.String())
}

func (m *model) placeOverlay(overlay string) string {
	if m.width <= 0 || m.height <= 0 {
		return overlay
	}
	return lipgloss.Place(m.width, m.height/2, lipgloss.Center, lipgloss.Center, overlay)
}

func (m *model) renderHeader() string {
	s := m.styles
	status := m.run.Status()
	statusStyle := s.runIdle
	switch status {
	case grid.RunRunning:
		statusStyle = s.runActive
	case grid.RunCompleted:
		statusStyle = s.runDone
	}
	label := status.Label()
	if status == grid.RunRunning {
		label = m.spinner.View() + " " + label
	}
	credits := fmt.Sprintf("%d / %d Credits", m.store.RowCount(m.store.ActiveSheetID()), creditLimit)

	parts := []string{
		s.title.Render("Bitscale") + s.badge.Render(" • "+m.activeSheetName()),
		statusStyle.Render(label),
		m.progress.ViewAs(float64(m.run.Progress()) / float64(grid.ProgressMax)),
		s.badge.Render(credits),
		s.plan.Render("Free Plan"),
		s.badge.Render(m.theme.label()),
	}
	return s.topBar.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m *model) renderBanner() string {
	s := m.styles
	text := s.banner.Render("⚠ " + bannerText)
	action := s.bannerAction.Render("Pay Now (p)")
	line := lipgloss.JoinHorizontal(lipgloss.Top, text, " ", action)
	if m.width > 0 {
		return s.banner.Width(m.width).Render(line)
	}
	return line
}

func (m *model) renderToolbar() string {
	s := m.styles
	visible := len(m.visibleFields())
	items := []string{
		m.search.View(),
		s.toolItem.Render(fmt.Sprintf("View: %d/%d columns", visible, len(grid.AllFields))),
		s.toolItem.Render("Sort: " + m.viewCfg.Sort.String()),
		s.toolItem.Render("Filter: " + m.viewCfg.Filter.String()),
	}
	if n := m.selection.Len(); n > 0 {
		items = append(items, s.toolDanger.Render(fmt.Sprintf("Delete (%d)", n)))
	}
	if m.run.Running() {
		items = append(items, s.toolAction.Render(m.spinner.View()+" Enriching…"))
	} else {
		items = append(items, s.toolAction.Render("⚡ Enrich Data"))
	}
	return s.toolbar.Width(m.width).Render(strings.Join(items, " "))
}

func (m *model) renderGrid() string {
	s := m.styles
	if m.table.Empty() {
		text := emptySheetText + "\nPress a to add a row."
		if m.store.RowCount(m.store.ActiveSheetID()) > 0 {
			text = emptyResultText
		}
		height := max(m.table.height+2, 3)
		return s.empty.Width(max(m.width, 20)).Height(height).Render(text)
	}
	return m.table.View()
}

func (m *model) renderFooter() string {
	s := m.styles
	active := m.store.ActiveSheetID()
	var tabs []string
	for _, sheet := range m.store.Sheets() {
		if sheet.ID == active {
			tabs = append(tabs, s.tabActive.Render(sheet.Name))
		} else {
			tabs = append(tabs, s.tabInactive.Render(sheet.Name))
		}
	}
	tabs = append(tabs, s.footerItem.Render("+ (n)"))
	items := []string{strings.Join(tabs, ""), s.footerItem.Render("+ Row (a)")}
	if m.run.Running() {
		items = append(items, s.toolDanger.Render("■ Stop (x)"))
	}
	items = append(items, s.footerItem.Render("Auto-run: "+ternary(m.autoRun, "on", "off")))
	return s.statusBar.Width(m.width).Render(strings.Join(items, " │ "))
}

func (m *model) renderStatus() string {
	s := m.styles
	segments := []string{
		s.statusSeg.Render(fmt.Sprintf("Rows: %d", len(m.view))),
	}
	if dr, ok := m.table.Current(); ok {
		cell := fmt.Sprintf("Row %d", dr.Index)
		if f, ok := m.table.CurrentField(); ok {
			cell += " • " + f.Label()
		}
		segments = append(segments, s.statusSeg.Render(cell))
	}
	if n := m.selection.Len(); n > 0 {
		segments = append(segments, s.statusSeg.Render(fmt.Sprintf("Selected: %d", n)))
	}
	if term := strings.TrimSpace(m.viewCfg.SearchTerm); term != "" {
		segments = append(segments, s.statusSeg.Render(fmt.Sprintf("Search: %q", term)))
	}
	segments = append(segments, s.statusSeg.Render(fmt.Sprintf("Logs: %s", ternary(m.showLogs, "on", "off"))))
	if m.jobs.Running() {
		segments = append(segments, s.statusSeg.Render("Hook running"))
	}
	if m.toastMessage != "" {
		if m.now().After(m.toastExpires) {
			m.toastMessage = ""
		} else {
			segments = append(segments, s.statusSeg.Render(m.toastMessage))
		}
	}
	content := strings.Join(segments, lipgloss.NewStyle().Render("│"))
	return s.statusBar.Width(m.width).Render(content)
}

func (m *model) renderEditOverlay() string {
	s := m.styles
	var b strings.Builder
	b.WriteString(s.cmdPrompt.Render("Edit " + m.editField.Label()))
	b.WriteRune('\n')
	b.WriteString(m.editor.View())
	b.WriteRune('\n')
	b.WriteString(s.cmdHint.Render("enter save • esc cancel"))
	return s.cmdOverlay.Render(b.String())
}

func (m *model) renderPaymentModal() string {
	s := m.styles
	body := strings.TrimRight(RenderMarkdown(paymentModalMarkdown), "\n")
	actions := lipgloss.JoinHorizontal(lipgloss.Top,
		s.toolItem.Render("Cancel (esc)"),
		" ",
		s.toolAction.Render("Proceed to Payment (enter)"),
	)
	return s.cmdOverlay.Render(lipgloss.JoinVertical(lipgloss.Left, body, "", actions))
}
