package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/editor"
)

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		if m.width < minWidth || m.height < minHeight {
			m.showError = true
			m.errorMsg = fmt.Sprintf("Terminal too small (min %dx%d). Current: %dx%d",
				minWidth, minHeight, m.width, m.height)
		} else if m.showError && strings.HasPrefix(m.errorMsg, "Terminal too small") {
			m.showError = false
			m.errorMsg = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RenderCompleteMsg:
		m.finishRender()
		notice := msg.Notice
		if msg.Path != "" {
			notice = fmt.Sprintf("%s %s", notice, msg.Path)
		}
		return m.announce(notice)

	case RenderErrorMsg:
		m.finishRender()
		return m.fail(msg.Err), nil

	case RenderCancelledMsg:
		m.finishRender()
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	if m.mode == ModeEdit || m.mode == ModeName {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKeyPress routes key presses by mode
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeEdit, ModeName:
		return m.handleInputKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	default:
		return m.handleBrowseKeys(msg)
	}
}

// handleBrowseKeys handles keys in the field list
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	view := m.session.View()

	switch msg.String() {
	// Clear error banner
	case "x":
		m.showError = false
		m.errorMsg = ""
		return m, nil

	case "q", "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "?":
		m.mode = ModeHelp
		return m, nil

	// Navigation
	case "up", "k":
		m.MoveCursorUp()
		return m, nil

	case "down", "j":
		m.MoveCursorDown()
		return m, nil

	case "enter":
		f, ok := m.selected()
		if !ok {
			return m, nil
		}
		value := m.value(f)
		if f.spec.Kind == catalog.KindTextArea {
			value = escapeLines(value)
		}
		m.input.SetValue(value)
		m.input.Placeholder = f.spec.Label
		m.input.CursorEnd()
		m.mode = ModeEdit
		cmd := m.input.Focus()
		return m, cmd

	// View settings
	case "tab":
		next := catalog.Next(document.VariantNames(), string(view.Template))
		if err := m.session.SetTemplate(document.Variant(next)); err != nil {
			return m.fail(err), nil
		}
		m.cursor = 0
		return m, nil

	case "f":
		return m.apply(m.session.SetFormat(catalog.Next(catalog.FormatNames(), view.Format)))

	case "p":
		return m.apply(m.session.SetPattern(catalog.Next(catalog.Patterns, view.Pattern)))

	case "e":
		return m.apply(m.session.SetEffect(catalog.Next(catalog.Effects, view.Effect)))

	case "+", "=":
		m.session.SetIntensity(view.EffectIntensity + 1)
		return m, nil

	case "-":
		m.session.SetIntensity(view.EffectIntensity - 1)
		return m, nil

	case "i":
		return m.apply(m.session.SetFilter(catalog.Next(catalog.Filters, view.Filter)))

	case "c":
		notice, err := m.session.SetClub(catalog.Next(catalog.ClubKeys(), view.Club))
		if err != nil {
			return m.fail(err), nil
		}
		return m.announce(notice)

	case "s":
		notice, err := m.session.SetSeason(catalog.Next(catalog.SeasonKeys(), view.Season))
		if err != nil {
			return m.fail(err), nil
		}
		return m.announce(notice)

	case "]":
		m.session.Zoom(document.ZoomStep)
		return m, nil

	case "[":
		m.session.Zoom(-document.ZoomStep)
		return m, nil

	case "0":
		m.session.ZoomReset()
		return m, nil

	case "t":
		theme := editor.ThemeDark
		if m.session.UITheme() == editor.ThemeDark {
			theme = editor.ThemeLight
		}
		return m.apply(m.session.SetUITheme(theme))

	// History
	case "ctrl+z", "u":
		if m.session.Undo() {
			m.clampCursor()
		}
		return m, nil

	case "ctrl+y", "U":
		if m.session.Redo() {
			m.clampCursor()
		}
		return m, nil

	// Templates
	case "w":
		m.input.SetValue("")
		m.input.Placeholder = "Nom du template"
		m.mode = ModeName
		cmd := m.input.Focus()
		return m, cmd

	// Export
	case "r":
		return m.startRender(ExportSave)

	case "y":
		return m.startRender(ExportCopy)
	}

	return m, nil
}

// handleInputKeys handles keys while a text input is focused
func (m Model) handleInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.mode = ModeBrowse
		return m, nil

	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case "enter":
		if m.mode == ModeName {
			return m.commitTemplateName()
		}
		return m.commitEdit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleHelpKeys handles keys in the help overlay
func (m Model) handleHelpKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?", "esc", "enter":
		m.mode = ModeBrowse
	}
	return m, nil
}

// commitEdit stores the edited value and records a history entry.
func (m Model) commitEdit() (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.mode = ModeBrowse

	f, ok := m.selected()
	if !ok {
		return m, nil
	}
	if err := m.store(f, m.input.Value()); err != nil {
		return m.fail(err), nil
	}
	m.session.Checkpoint()
	m.clampCursor()
	return m, nil
}

func (m Model) commitTemplateName() (tea.Model, tea.Cmd) {
	m.input.Blur()
	m.mode = ModeBrowse

	saved, err := m.session.SaveTemplate(m.input.Value())
	if err != nil {
		return m.fail(err), nil
	}
	return m.announce(fmt.Sprintf("💾 Template \"%s\" sauvegardé !", saved.Name))
}

// startRender launches a background render unless one is in flight.
func (m Model) startRender(action ExportAction) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	m.busy = true
	m.cancel = cancel
	return m, tea.Batch(
		m.spinner.Tick,
		renderCmd(ctx, m.renderer, m.exporter, m.session.Snapshot(), action),
	)
}

func (m *Model) finishRender() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.busy = false
}

// apply reports err, if any, and otherwise leaves the model unchanged.
func (m Model) apply(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		return m.fail(err), nil
	}
	return m, nil
}

// announce shows notice until it expires. An empty notice is ignored.
func (m Model) announce(notice string) (tea.Model, tea.Cmd) {
	if notice == "" {
		return m, nil
	}
	m.noticeSeq++
	m.notice = notice
	return m, expireNoticeCmd(m.noticeSeq)
}

func (m Model) fail(err error) Model {
	m.showError = true
	m.errorMsg = err.Error()
	return m
}
