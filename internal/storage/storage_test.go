package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

func TestBoltStoreRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "sportvisual.db")
	store, err := OpenBolt(path)
	require.NoError(t, err)

	_, ok, err := store.Load(KeyData)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Save(KeyData, []byte(`{"match":{}}`)))
	require.NoError(t, store.Save(KeyData, []byte(`{"score":{}}`)))

	data, ok, err := store.Load(KeyData)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"score":{}}`, string(data))
	require.NoError(t, store.Close())

	reopened, err := OpenBolt(path)
	require.NoError(t, err)
	defer reopened.Close()

	data, ok, err = reopened.Load(KeyData)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"score":{}}`, string(data))

	require.NoError(t, reopened.Delete(KeyData))
	_, ok, err = reopened.Load(KeyData)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestOpenFallsBackToMemory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store, durable := Open(filepath.Join(blocker, "db", "sportvisual.db"), logger.Nop())
	require.False(t, durable)
	require.IsType(t, &MemoryStore{}, store)

	store, durable = Open("", logger.Nop())
	require.False(t, durable)
	require.IsType(t, &MemoryStore{}, store)

	store, durable = Open(filepath.Join(dir, "ok.db"), logger.Nop())
	require.True(t, durable)
	require.NoError(t, store.Close())
}

func TestOpenBoltReportsStorageError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := OpenBolt(filepath.Join(blocker, "sportvisual.db"))
	var storageErr *sverrors.StorageError
	require.ErrorAs(t, err, &storageErr)
	require.Equal(t, "open", storageErr.Op)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	value := []byte("dark")
	require.NoError(t, store.Save(KeyUITheme, value))
	value[0] = 'X'

	got, ok, err := store.Load(KeyUITheme)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "dark", string(got))
}

func TestTemplatesNewestFirstAndCapped(t *testing.T) {
	t.Parallel()

	templates := NewTemplates(NewMemoryStore())
	templates.now = func() time.Time { return time.Date(2025, 12, 14, 15, 4, 5, 0, time.UTC) }

	for i := 0; i < MaxTemplates+2; i++ {
		snap := document.New()
		snap.Data.Match.HomeTeam = fmt.Sprintf("TEAM %d", i)
		_, err := templates.Add(fmt.Sprintf("t%d", i), snap)
		require.NoError(t, err)
	}

	list, err := templates.List()
	require.NoError(t, err)
	require.Len(t, list, MaxTemplates)
	require.Equal(t, "t11", list[0].Name)
	require.Equal(t, "TEAM 11", list[0].Data.Match.HomeTeam)
	require.Equal(t, "t2", list[MaxTemplates-1].Name)
	require.Equal(t, "14/12/2025 15:04:05", list[0].Date)
	require.NotEqual(t, list[0].ID, list[1].ID)
}

func TestTemplatesGetAndDelete(t *testing.T) {
	t.Parallel()

	templates := NewTemplates(NewMemoryStore())
	snap := document.New()
	snap.Template = document.VariantScore
	snap.EffectIntensity = 0

	_, err := templates.Add("first", snap)
	require.NoError(t, err)
	_, err = templates.Add("second", document.New())
	require.NoError(t, err)

	got, err := templates.Get(1)
	require.NoError(t, err)
	require.Equal(t, "first", got.Name)
	require.Equal(t, document.VariantScore, got.Template)
	require.Equal(t, 0, got.EffectIntensity)

	_, err = templates.Get(2)
	require.Error(t, err)

	require.NoError(t, templates.Delete(0))
	list, err := templates.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "first", list[0].Name)

	require.Error(t, templates.Delete(-1))
}

func TestTemplatesReadLegacyEntriesOverDefaults(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	legacy := `[{"name":"old","date":"01/12/2025 10:00:00","data":{"match":{"homeTeam":"FC SION"}},"template":"match","format":"story"}]`
	require.NoError(t, store.Save(KeyTemplates, []byte(legacy)))

	list, err := NewTemplates(store).List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "old", list[0].Name)
	require.Equal(t, "FC SION", list[0].Data.Match.HomeTeam)
	require.Equal(t, "FC LAUSANNE", list[0].Data.Match.AwayTeam)
	require.Equal(t, "story", list[0].Format)
	require.Equal(t, "none", list[0].Pattern)
	require.Equal(t, document.DefaultIntensity, list[0].EffectIntensity)
}

func TestTemplatesCorruptListReadsEmpty(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	require.NoError(t, store.Save(KeyTemplates, []byte("{not json")))

	templates := NewTemplates(store)
	list, err := templates.List()
	require.NoError(t, err)
	require.Empty(t, list)

	_, err = templates.Add("fresh", document.New())
	require.NoError(t, err)
	list, err = templates.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
}
