// Package editor holds the editing session: the document, its view settings,
// the undo history and everything that is persisted between runs.
package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/history"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	"github.com/alexisbeaulieu97/sportvisual/internal/storage"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// UI themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Options configures a Session.
type Options struct {
	Store        storage.Store
	Logger       *logger.Logger
	HistoryLimit int
}

// Session is one editing session. It is not safe for concurrent use.
type Session struct {
	snap      document.Snapshot
	history   *history.Log
	store     storage.Store
	templates *storage.Templates
	log       *logger.Logger
	uiTheme   string
	degraded  bool
	now       func() time.Time
}

// New starts a session from the default document merged with whatever the
// store holds, and records it as the first history entry.
func New(opts Options) *Session {
	s := &Session{
		snap:    document.New(),
		history: history.New(opts.HistoryLimit),
		store:   opts.Store,
		log:     opts.Logger,
		uiTheme: ThemeLight,
		now:     time.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.store == nil {
		s.store = storage.NewMemoryStore()
	}
	s.templates = storage.NewTemplates(s.store)

	s.loadDocument()
	s.loadUITheme()
	s.checkpoint()
	return s
}

func (s *Session) loadDocument() {
	data, ok, err := s.store.Load(storage.KeyData)
	if err != nil {
		s.storageFailed(err)
		return
	}
	if !ok {
		return
	}

	doc, err := document.DecodeDocument(data)
	if err != nil {
		s.log.WithField("key", storage.KeyData).Warn(err, "ignoring unreadable saved document")
		return
	}
	s.snap.Data = doc
}

func (s *Session) loadUITheme() {
	data, ok, err := s.store.Load(storage.KeyUITheme)
	if err != nil {
		s.storageFailed(err)
		return
	}
	if ok && (string(data) == ThemeLight || string(data) == ThemeDark) {
		s.uiTheme = string(data)
	}
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() document.Snapshot {
	return s.snap.Clone()
}

// View returns the current view settings.
func (s *Session) View() document.ViewSettings {
	return s.snap.ViewSettings
}

// Degraded reports whether persistence failed and the session fell back to memory.
func (s *Session) Degraded() bool {
	return s.degraded
}

// SetTemplate switches the active variant. Other records are untouched.
func (s *Session) SetTemplate(v document.Variant) error {
	if _, err := document.ParseVariant(string(v)); err != nil {
		return sverrors.NewValidationError("template", err.Error(), err)
	}
	s.snap.Template = v
	return nil
}

// SetFormat selects an output preset.
func (s *Session) SetFormat(name string) error {
	if _, err := catalog.LookupFormat(name); err != nil {
		return sverrors.NewValidationError("format", err.Error(), err)
	}
	s.snap.Format = name
	return nil
}

// SetFont selects the font family used for every label.
func (s *Session) SetFont(family string) error {
	if family == "" {
		return sverrors.NewValidationError("font", "must not be empty", nil)
	}
	s.snap.Font = family
	return nil
}

// SetPattern selects the background pattern and records a history entry.
func (s *Session) SetPattern(name string) error {
	if err := oneOf("pattern", name, catalog.Patterns); err != nil {
		return err
	}
	s.snap.Pattern = name
	s.checkpoint()
	return nil
}

// SetEffect selects the text effect and records a history entry.
func (s *Session) SetEffect(name string) error {
	if err := oneOf("effect", name, catalog.Effects); err != nil {
		return err
	}
	s.snap.Effect = name
	s.checkpoint()
	return nil
}

// SetIntensity sets the effect intensity, clamped to its range.
func (s *Session) SetIntensity(i int) {
	s.snap.EffectIntensity = document.ClampIntensity(i)
}

// SetFilter selects the post-processing filter and records a history entry.
func (s *Session) SetFilter(name string) error {
	if err := oneOf("filter", name, catalog.Filters); err != nil {
		return err
	}
	s.snap.Filter = name
	s.checkpoint()
	return nil
}

// SetClub applies a club theme to the active record and returns the notice
// to show. NoClub only records the selection.
func (s *Session) SetClub(key string) (string, error) {
	if key == catalog.NoClub {
		s.snap.Club = key
		return "", nil
	}

	theme, ok := catalog.LookupClub(key)
	if !ok {
		return "", sverrors.NewValidationError("club", fmt.Sprintf("unknown club %q", key), nil)
	}

	s.snap.Club = key
	if err := s.snap.Data.ApplyColors(s.snap.Template, theme.Color1, theme.Color2); err != nil {
		return "", err
	}
	s.persist()
	s.checkpoint()
	return fmt.Sprintf("🏆 Thème %s appliqué !", theme.Name), nil
}

// SetSeason applies a seasonal theme and returns the notice to show.
// NoSeason clears the decorations and still records a history entry.
func (s *Session) SetSeason(key string) (string, error) {
	if key == catalog.NoSeason {
		s.snap.Season = key
		s.checkpoint()
		return "", nil
	}

	theme, ok := catalog.LookupSeason(key)
	if !ok {
		return "", sverrors.NewValidationError("season", fmt.Sprintf("unknown season %q", key), nil)
	}

	s.snap.Season = key
	if err := s.snap.Data.ApplyColors(s.snap.Template, theme.Color1, theme.Color2); err != nil {
		return "", err
	}
	s.persist()
	s.checkpoint()
	return fmt.Sprintf("%s Thème %s appliqué !", theme.Emoji, theme.Label), nil
}

// SetField edits a field of the active record and persists the document.
// It does not record a history entry; call Checkpoint when an edit is committed.
func (s *Session) SetField(key, value string) error {
	if err := s.snap.Data.SetField(s.snap.Template, key, value); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Field reads a field of the active record.
func (s *Session) Field(key string) (string, error) {
	return s.snap.Data.Field(s.snap.Template, key)
}

// SetMatchField edits one fixture of the UpNext list and persists the document.
func (s *Session) SetMatchField(index int, key, value string) error {
	if err := s.snap.Data.SetMatchField(index, key, value); err != nil {
		return err
	}
	s.persist()
	return nil
}

// SetNumMatches resizes the UpNext list and persists the document.
func (s *Session) SetNumMatches(n int) error {
	if err := s.snap.Data.SetNumMatches(n); err != nil {
		return err
	}
	s.persist()
	return nil
}

// Checkpoint records the current state as a history entry.
func (s *Session) Checkpoint() {
	s.checkpoint()
}

func (s *Session) checkpoint() {
	if _, err := s.history.Push(s.snap); err != nil {
		s.log.Error(err, "failed to record history entry")
	}
}

// Undo restores the previous history entry. It reports false when there is none.
func (s *Session) Undo() bool {
	snap, err := s.history.Undo()
	return s.restored(snap, err)
}

// Redo restores the next history entry. It reports false when there is none.
func (s *Session) Redo() bool {
	snap, err := s.history.Redo()
	return s.restored(snap, err)
}

func (s *Session) restored(snap document.Snapshot, err error) bool {
	if err != nil {
		if !errors.Is(err, sverrors.ErrNoHistory) {
			s.log.Error(err, "failed to restore history entry")
		}
		return false
	}
	s.restore(snap)
	return true
}

// restore replaces the document and every view setting.
func (s *Session) restore(snap document.Snapshot) {
	s.snap = snap.Clone()
	s.snap.ViewSettings.Normalize()
	s.persist()
}

// CanUndo reports whether Undo would succeed.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether Redo would succeed.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// HistoryState returns both availability flags.
func (s *Session) HistoryState() history.State { return s.history.State() }

// Zoom adjusts the preview zoom by delta and returns the new value.
func (s *Session) Zoom(delta float64) float64 {
	s.snap.Zoom = document.ClampZoom(s.snap.Zoom + delta)
	return s.snap.Zoom
}

// ZoomReset sets the preview zoom back to 1.
func (s *Session) ZoomReset() {
	s.snap.Zoom = 1
}

// Templates lists the saved templates, newest first.
func (s *Session) Templates() ([]storage.SavedTemplate, error) {
	return s.templates.List()
}

// SaveTemplate stores the current state under name. An empty name becomes
// <template>-<unix ms>.
func (s *Session) SaveTemplate(name string) (storage.SavedTemplate, error) {
	if name == "" {
		name = fmt.Sprintf("%s-%d", s.snap.Template, s.now().UnixMilli())
	}
	saved, err := s.templates.Add(name, s.snap)
	if err != nil {
		s.storageFailed(err)
		return s.templates.Add(name, s.snap)
	}
	return saved, nil
}

// LoadTemplate restores a saved template and records it in the history.
func (s *Session) LoadTemplate(index int) error {
	saved, err := s.templates.Get(index)
	if err != nil {
		return err
	}
	s.restore(saved.Snapshot)
	s.checkpoint()
	return nil
}

// DeleteTemplate removes a saved template.
func (s *Session) DeleteTemplate(index int) error {
	return s.templates.Delete(index)
}

// Reset forgets the persisted document and starts over from the defaults.
func (s *Session) Reset() error {
	if err := s.store.Delete(storage.KeyData); err != nil {
		s.storageFailed(err)
	}
	s.snap = document.New()
	s.history.Reset()
	s.checkpoint()
	return nil
}

// UITheme returns the persisted interface theme.
func (s *Session) UITheme() string {
	return s.uiTheme
}

// SetUITheme switches between ThemeLight and ThemeDark.
func (s *Session) SetUITheme(theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return sverrors.NewValidationError("uiTheme", fmt.Sprintf("must be %s or %s", ThemeLight, ThemeDark), nil)
	}
	s.uiTheme = theme
	if err := s.store.Save(storage.KeyUITheme, []byte(theme)); err != nil {
		s.storageFailed(err)
	}
	return nil
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}

func (s *Session) persist() {
	data, err := json.Marshal(s.snap.Data)
	if err != nil {
		s.log.Error(err, "failed to encode document")
		return
	}
	if err := s.store.Save(storage.KeyData, data); err != nil {
		s.storageFailed(err)
		_ = s.store.Save(storage.KeyData, data)
	}
}

// storageFailed switches the session to in-memory storage. Only the first
// failure is logged.
func (s *Session) storageFailed(err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.log.Warn(err, "storage unavailable, continuing in memory")

	_ = s.store.Close()
	s.store = storage.NewMemoryStore()
	s.templates = storage.NewTemplates(s.store)
}

func oneOf(field, value string, allowed []string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return sverrors.NewValidationError(field, fmt.Sprintf("must be one of %v", allowed), nil)
}
