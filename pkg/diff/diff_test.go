package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

func TestLinesIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("line1\nline2\nline3\n")
	require.Empty(t, Lines(content, content, "saved", "current"))
}

func TestLinesReportsChangedLinesWithPositions(t *testing.T) {
	t.Parallel()

	before := []byte("a\nb\nc\nd\n")
	after := []byte("a\nB\nc\nd\ne\n")

	got := Lines(before, after, "saved", "current")

	require.Equal(t, strings.Join([]string{
		"--- saved",
		"+++ current",
		"@@ -2 +2 @@",
		"-b",
		"+B",
		"@@ -5 +5 @@",
		"+e",
		"",
	}, "\n"), got)
}

func TestLinesTruncatesLongDiffs(t *testing.T) {
	t.Parallel()

	var before, after strings.Builder
	for i := 0; i < maxDiffLines; i++ {
		before.WriteString("x\n")
		after.WriteString("y\n")
	}

	got := Lines([]byte(before.String()), []byte(after.String()), "a", "b")
	require.True(t, strings.HasSuffix(got, truncateMessage+"\n"))
	require.LessOrEqual(t, strings.Count(got, "\n"), maxDiffLines+1)
}

func TestSnapshotsShowsThemeChange(t *testing.T) {
	t.Parallel()

	before := document.New()
	after := before.Clone()
	after.Pattern = "hexagons"
	after.Data.Match.HomeTeam = "FC SION"

	got, err := Snapshots(before, after, "template 1", "document")
	require.NoError(t, err)
	require.Contains(t, got, "--- template 1")
	require.Contains(t, got, "-pattern: none")
	require.Contains(t, got, "+pattern: hexagons")
	require.Contains(t, got, "+        homeTeam: FC SION")

	same, err := Snapshots(before, before.Clone(), "a", "b")
	require.NoError(t, err)
	require.Empty(t, same)
}
