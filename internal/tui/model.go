// Package tui is the interactive terminal editor: a field list for the active
// template, keyboard shortcuts for every view setting, and background export.
package tui

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/sportvisual/internal/canvas"
	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/editor"
	"github.com/alexisbeaulieu97/sportvisual/internal/export"
)

const (
	defaultTimeout = 10 * time.Second
	noticeDuration = 3 * time.Second

	minWidth  = 70
	minHeight = 20
)

// Renderer produces the final raster of a snapshot.
type Renderer interface {
	Render(ctx context.Context, snap document.Snapshot) (*canvas.Raster, error)
}

// Exporter delivers a rendered image.
type Exporter interface {
	Save(img image.Image, variant document.Variant, format string) (string, error)
	Copy(ctx context.Context, img image.Image, variant document.Variant, format string) (export.Result, error)
}

// Options configures NewModel.
type Options struct {
	Session  *editor.Session
	Renderer Renderer
	Exporter Exporter
	// Timeout bounds one render including image decoding.
	Timeout time.Duration
}

// field is one editable row. match is the fixture index, or -1 for a field
// of the active record.
type field struct {
	spec  catalog.FieldSpec
	match int
}

// Model is the editor model
type Model struct {
	session  *editor.Session
	renderer Renderer
	exporter Exporter
	timeout  time.Duration

	// UI state
	mode   Mode
	cursor int
	input  textinput.Model

	// Component state
	spinner spinner.Model

	// Operation state
	busy      bool
	cancel    context.CancelFunc
	notice    string
	noticeSeq int
	showError bool
	errorMsg  string

	// Dimensions
	width  int
	height int
}

// NewModel creates a new editor model
func NewModel(opts Options) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	in := textinput.New()
	in.CharLimit = 0
	in.Width = 48

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return Model{
		session:  opts.Session,
		renderer: opts.Renderer,
		exporter: opts.Exporter,
		timeout:  timeout,
		mode:     ModeBrowse,
		input:    in,
		spinner:  s,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// fields lists the rows of the active template. UpNext appends one group of
// rows per visible fixture.
func (m Model) fields() []field {
	snap := m.session.Snapshot()

	var rows []field
	for _, spec := range catalog.Fields(string(snap.Template)) {
		rows = append(rows, field{spec: spec, match: -1})
	}
	if snap.Template == document.VariantUpNext {
		for i := range snap.Data.UpNext.Visible() {
			for _, spec := range catalog.MatchEntryFields {
				rows = append(rows, field{spec: spec, match: i})
			}
		}
	}
	return rows
}

// selected returns the row under the cursor.
func (m Model) selected() (field, bool) {
	rows := m.fields()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return field{}, false
	}
	return rows[m.cursor], true
}

// value reads the current string form of a row.
func (m Model) value(f field) string {
	var (
		v   string
		err error
	)
	if f.match >= 0 {
		snap := m.session.Snapshot()
		v, err = snap.Data.MatchField(f.match, f.spec.Key)
	} else {
		v, err = m.session.Field(f.spec.Key)
	}
	if err != nil {
		return ""
	}
	return v
}

// store writes a row back into the session.
func (m Model) store(f field, value string) error {
	if f.match >= 0 {
		return m.session.SetMatchField(f.match, f.spec.Key, value)
	}
	return m.session.SetField(f.spec.Key, value)
}

// clampCursor keeps the cursor on a row after the row set changed.
func (m *Model) clampCursor() {
	n := len(m.fields())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveCursorUp moves the cursor up one row
func (m *Model) MoveCursorUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveCursorDown moves the cursor down one row
func (m *Model) MoveCursorDown() {
	if m.cursor < len(m.fields())-1 {
		m.cursor++
	}
}

// Cursor returns the selected row index.
func (m Model) Cursor() int {
	return m.cursor
}

// Busy reports whether a render is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Notice returns the transient status message.
func (m Model) Notice() string {
	return m.notice
}

// escapeLines turns a multi-line value into one editable line. The document
// turns the escapes back into line breaks on assignment.
func escapeLines(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
