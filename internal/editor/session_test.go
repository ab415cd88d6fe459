package editor

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	"github.com/alexisbeaulieu97/sportvisual/internal/storage"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

type brokenStore struct {
	closed bool
}

func (b *brokenStore) Load(key string) ([]byte, bool, error) {
	return nil, false, sverrors.NewStorageError("load", key, errors.New("disk gone"))
}

func (b *brokenStore) Save(key string, _ []byte) error {
	return sverrors.NewStorageError("save", key, errors.New("disk gone"))
}

func (b *brokenStore) Delete(key string) error {
	return sverrors.NewStorageError("delete", key, errors.New("disk gone"))
}

func (b *brokenStore) Close() error {
	b.closed = true
	return nil
}

func newSession(t *testing.T, store storage.Store) *Session {
	t.Helper()
	return New(Options{Store: store, Logger: logger.Nop()})
}

func TestNewSessionStartsWithOneEntry(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	require.False(t, s.CanUndo())
	require.False(t, s.CanRedo())
	require.Equal(t, document.New(), s.Snapshot())
	require.Equal(t, ThemeLight, s.UITheme())
}

func TestNewSessionMergesPersistedDocument(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.KeyData, []byte(`{"score":{"homeScore":7}}`)))
	require.NoError(t, store.Save(storage.KeyUITheme, []byte(ThemeDark)))

	s := newSession(t, store)
	snap := s.Snapshot()
	require.Equal(t, 7, snap.Data.Score.HomeScore)
	require.Equal(t, "FC GENÈVE", snap.Data.Score.HomeTeam)
	require.Equal(t, "FC GENÈVE", snap.Data.Match.HomeTeam)
	require.Equal(t, ThemeDark, s.UITheme())
}

func TestCorruptPersistedDocumentIsIgnored(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	require.NoError(t, store.Save(storage.KeyData, []byte(`{broken`)))

	s := newSession(t, store)
	require.Equal(t, document.Defaults(), s.Snapshot().Data)
}

func TestHistoryPushingActions(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)

	require.NoError(t, s.SetTemplate(document.VariantScore))
	require.NoError(t, s.SetFormat("story"))
	require.NoError(t, s.SetFont("Oswald"))
	s.SetIntensity(8)
	require.NoError(t, s.SetField("homeTeam", "SERVETTE"))
	require.False(t, s.CanUndo())

	require.NoError(t, s.SetPattern("dots"))
	require.True(t, s.CanUndo())
	require.NoError(t, s.SetEffect("glow"))
	require.NoError(t, s.SetFilter("sepia"))

	require.True(t, s.Undo())
	require.Equal(t, "none", s.View().Filter)
	require.Equal(t, "glow", s.View().Effect)
	require.True(t, s.CanRedo())

	require.True(t, s.Redo())
	require.Equal(t, "sepia", s.View().Filter)
	require.False(t, s.Redo())
}

func TestUndoRestoresDeepCopy(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	require.NoError(t, s.SetTemplate(document.VariantMatch))
	require.NoError(t, s.SetField("homeTeam", "TEAM 1"))
	s.Checkpoint()
	require.NoError(t, s.SetField("homeTeam", "TEAM 2"))
	s.Checkpoint()

	require.True(t, s.Undo())
	require.Equal(t, "TEAM 1", s.Snapshot().Data.Match.HomeTeam)

	require.NoError(t, s.SetField("homeTeam", "EDITED"))
	require.True(t, s.Redo())
	require.Equal(t, "TEAM 2", s.Snapshot().Data.Match.HomeTeam)

	require.True(t, s.Undo())
	require.Equal(t, "TEAM 1", s.Snapshot().Data.Match.HomeTeam)
}

func TestUndoWithoutHistoryReportsFalse(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	require.False(t, s.Undo())
	require.False(t, s.Redo())
}

func TestClubThemeAppliesColors(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	notice, err := s.SetClub("psg")
	require.NoError(t, err)
	require.Equal(t, "🏆 Thème Paris Saint-Germain appliqué !", notice)

	snap := s.Snapshot()
	require.Equal(t, "#004170", snap.Data.Match.Color1)
	require.Equal(t, "#E30613", snap.Data.Match.Color2)
	require.Equal(t, "#10B981", snap.Data.Score.Color1)
	require.True(t, s.CanUndo())

	require.NoError(t, s.SetTemplate(document.VariantUpNext))
	_, err = s.SetClub("ol")
	require.NoError(t, err)
	require.Equal(t, "#DA000C", s.Snapshot().Data.UpNext.ColorHeader)
	require.Equal(t, "#FFFFFF", s.Snapshot().Data.UpNext.ColorPanel)

	before := s.HistoryState()
	notice, err = s.SetClub("custom")
	require.NoError(t, err)
	require.Empty(t, notice)
	require.Equal(t, "custom", s.View().Club)
	require.Equal(t, before, s.HistoryState())

	_, err = s.SetClub("barca")
	require.Error(t, err)
}

func TestSeasonTheme(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	notice, err := s.SetSeason("halloween")
	require.NoError(t, err)
	require.Equal(t, "🎃 Thème Halloween appliqué !", notice)
	require.Equal(t, "#FF6600", s.Snapshot().Data.Match.Color1)

	notice, err = s.SetSeason("none")
	require.NoError(t, err)
	require.Empty(t, notice)
	require.True(t, s.Undo())
	require.Equal(t, "halloween", s.View().Season)
}

func TestInvalidSelectionsAreRejected(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	var validationErr *sverrors.ValidationError
	require.ErrorAs(t, s.SetPattern("zigzag"), &validationErr)
	require.Equal(t, "pattern", validationErr.Field)
	require.Error(t, s.SetEffect("blink"))
	require.Error(t, s.SetFilter("vintage"))
	require.Error(t, s.SetFormat("banner"))
	require.Error(t, s.SetTemplate("poster"))
	require.Error(t, s.SetFont(""))
	require.Error(t, s.SetUITheme("sepia"))
	require.False(t, s.CanUndo())
}

func TestIntensityAndZoomClamp(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	s.SetIntensity(42)
	require.Equal(t, 10, s.View().EffectIntensity)
	s.SetIntensity(-1)
	require.Equal(t, 0, s.View().EffectIntensity)

	for i := 0; i < 20; i++ {
		s.Zoom(0.1)
	}
	require.Equal(t, 2.0, s.View().Zoom)
	require.Equal(t, 0.5, s.Zoom(-5))
	s.ZoomReset()
	require.Equal(t, 1.0, s.View().Zoom)
}

func TestFieldEditsPersist(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	s := newSession(t, store)
	require.NoError(t, s.SetTemplate(document.VariantUpNext))
	require.NoError(t, s.SetNumMatches(4))
	require.NoError(t, s.SetMatchField(3, "stadium", "WANKDORF"))

	reopened := newSession(t, store)
	upnext := reopened.Snapshot().Data.UpNext
	require.Equal(t, 4, upnext.NumMatches)
	require.Len(t, upnext.Matches, 4)
	require.Equal(t, "WANKDORF", upnext.Matches[3].Stadium)

	require.Error(t, s.SetNumMatches(9))
}

func TestSavedTemplates(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }

	saved, err := s.SaveTemplate("")
	require.NoError(t, err)
	require.Equal(t, "match-1700000000000", saved.Name)

	require.NoError(t, s.SetTemplate(document.VariantRanking))
	require.NoError(t, s.SetPattern("grid"))
	_, err = s.SaveTemplate("ranking grid")
	require.NoError(t, err)

	list, err := s.Templates()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "ranking grid", list[0].Name)

	require.NoError(t, s.LoadTemplate(1))
	require.Equal(t, document.VariantMatch, s.View().Template)
	require.Equal(t, "none", s.View().Pattern)
	require.True(t, s.Undo())
	require.Equal(t, "grid", s.View().Pattern)

	require.NoError(t, s.DeleteTemplate(0))
	list, err = s.Templates()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Error(t, s.LoadTemplate(5))
}

func TestSavedTemplatesAreCapped(t *testing.T) {
	t.Parallel()

	s := newSession(t, nil)
	for i := 0; i < storage.MaxTemplates+3; i++ {
		_, err := s.SaveTemplate(fmt.Sprintf("t%d", i))
		require.NoError(t, err)
	}
	list, err := s.Templates()
	require.NoError(t, err)
	require.Len(t, list, storage.MaxTemplates)
}

func TestResetForgetsDocument(t *testing.T) {
	t.Parallel()

	store := storage.NewMemoryStore()
	s := newSession(t, store)
	require.NoError(t, s.SetField("homeTeam", "CHANGED"))
	require.NoError(t, s.SetPattern("stripes"))

	require.NoError(t, s.Reset())
	require.Equal(t, document.New(), s.Snapshot())
	require.False(t, s.CanUndo())

	_, ok, err := store.Load(storage.KeyData)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBrokenStoreFallsBackToMemory(t *testing.T) {
	t.Parallel()

	broken := &brokenStore{}
	s := newSession(t, broken)
	require.True(t, s.Degraded())
	require.True(t, broken.closed)

	require.NoError(t, s.SetField("homeTeam", "STILL WORKS"))
	_, err := s.SaveTemplate("kept in memory")
	require.NoError(t, err)
	list, err := s.Templates()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NoError(t, s.SetUITheme(ThemeDark))
	require.Equal(t, ThemeDark, s.UITheme())
}
