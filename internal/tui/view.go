package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
)

// View renders the current model state
func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.renderHelpView()
	}
	return m.renderEditorView()
}

// renderEditorView renders the field list with the active settings
func (m Model) renderEditorView() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var content strings.Builder

	content.WriteString(m.renderHeader())
	content.WriteString("\n")

	if m.showError {
		content.WriteString(errorBannerStyle.Render("❌ " + m.errorMsg))
		content.WriteString("\n")
	}

	content.WriteString(m.renderFields())
	content.WriteString("\n")

	if m.mode == ModeEdit || m.mode == ModeName {
		content.WriteString(itemStyle.Render(m.input.View()))
		content.WriteString("\n")
	}

	content.WriteString(m.renderFooter())

	return content.String()
}

// renderHeader renders the title and the view settings summary
func (m Model) renderHeader() string {
	title := titleStyle.Render("⚽ SportVisual")
	view := m.session.View()

	format := view.Format
	if f, err := catalog.LookupFormat(view.Format); err == nil {
		format = fmt.Sprintf("%s %dx%d", f.Name, f.Width, f.Height)
	}

	settings := settingsStyle.Render(fmt.Sprintf(
		"template %s · format %s · pattern %s · effect %s (%d) · filter %s · club %s · season %s · zoom %.0f%%",
		view.Template, format, view.Pattern, view.Effect, view.EffectIntensity,
		view.Filter, view.Club, view.Season, view.Zoom*100,
	))

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, settings))
}

// renderFields renders the editable rows of the active template
func (m Model) renderFields() string {
	rows := m.fields()
	if len(rows) == 0 {
		return itemStyle.Render("No editable fields.")
	}

	var lines []string
	lastMatch := -1
	for i, f := range rows {
		if f.match >= 0 && f.match != lastMatch {
			lastMatch = f.match
			lines = append(lines, itemStyle.Render(settingsStyle.Render(fmt.Sprintf("Match %d", f.match+1))))
		}

		value := m.value(f)
		if f.spec.Kind == catalog.KindTextArea {
			value = escapeLines(value)
		}
		if f.spec.Kind == catalog.KindImage {
			value = abbreviate(value, 40)
		}

		line := labelStyle.Render(f.spec.Label) + valueStyle.Render(value)
		if i == m.cursor {
			lines = append(lines, selectedStyle(m.session.UITheme()).Render(line))
		} else {
			lines = append(lines, itemStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// renderFooter renders history availability, status and key hints
func (m Model) renderFooter() string {
	state := m.session.HistoryState()

	undo := disabledStyle.Render("↶ undo")
	if state.CanUndo {
		undo = enabledStyle.Render("↶ undo")
	}
	redo := disabledStyle.Render("↷ redo")
	if state.CanRedo {
		redo = enabledStyle.Render("↷ redo")
	}

	status := undo + "  " + redo
	if m.busy {
		status += "  " + busyStyle.Render(m.spinner.View()+" Rendering...")
	}
	if m.notice != "" {
		status += "  " + noticeStyle.Render(m.notice)
	}
	if m.session.Degraded() {
		status += "  " + busyStyle.Render("⚠ storage unavailable, changes kept in memory")
	}

	hints := "↑/↓: navigate • enter: edit • tab: template • r: export • y: copy • w: save template • ?: help • q: quit"
	if m.mode == ModeEdit || m.mode == ModeName {
		hints = "enter: confirm • esc: cancel"
	}

	return footerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, status, hints))
}

// renderHelpView renders the key binding overlay
func (m Model) renderHelpView() string {
	bindings := [][2]string{
		{"↑/k ↓/j", "Move between fields"},
		{"enter", "Edit the selected field"},
		{"tab", "Next template"},
		{"f", "Next format"},
		{"p", "Next pattern"},
		{"e", "Next text effect"},
		{"+ / -", "Effect intensity"},
		{"i", "Next filter"},
		{"c", "Next club theme"},
		{"s", "Next seasonal theme"},
		{"[ / ] / 0", "Zoom out, in, reset"},
		{"u / U", "Undo, redo"},
		{"w", "Save as template"},
		{"r", "Export PNG"},
		{"y", "Copy PNG to clipboard"},
		{"t", "Toggle light/dark"},
		{"x", "Dismiss error"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	for _, kv := range bindings {
		b.WriteString(helpKeyStyle.Render(kv[0]))
		b.WriteString(helpDescStyle.Render(kv[1]))
		b.WriteString("\n")
	}

	b.WriteString(settingsStyle.Render(fmt.Sprintf("\n%d editable fields • ?/esc: close", len(m.fields()))))

	return helpBoxStyle.Render(b.String())
}

func abbreviate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}
