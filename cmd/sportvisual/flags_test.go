package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
)

func TestParseAssignments(t *testing.T) {
	t.Parallel()

	got, err := parseAssignments([]string{"homeTeam=FC SION", "matches[2].date=SAM 21 OCT", "stats=Buts: 2 | Passes: 1=x"})
	require.NoError(t, err)
	require.Equal(t, []assignment{
		{key: "homeTeam", value: "FC SION", match: -1},
		{key: "date", value: "SAM 21 OCT", match: 2},
		{key: "stats", value: "Buts: 2 | Passes: 1=x", match: -1},
	}, got)

	_, err = parseAssignments([]string{"=value"})
	require.Error(t, err)
}

func TestParseIndex(t *testing.T) {
	t.Parallel()

	idx, err := parseIndex("3")
	require.NoError(t, err)
	require.Equal(t, 2, idx)

	_, err = parseIndex("0")
	require.Error(t, err)
	_, err = parseIndex("first")
	require.Error(t, err)
}

func TestViewFlagsApply(t *testing.T) {
	t.Parallel()

	snap := document.New()
	flags := viewFlags{template: "player", effect: "glow", intensity: 14, season: "halloween"}
	require.NoError(t, flags.apply(&snap))

	require.Equal(t, document.VariantPlayer, snap.Template)
	require.Equal(t, "glow", snap.Effect)
	require.Equal(t, 10, snap.EffectIntensity)
	require.Equal(t, "halloween", snap.Season)
	require.Equal(t, "#FF6600", snap.Data.Player.Color1)
	require.Equal(t, "#0051D5", snap.Data.Match.Color2, "other records keep their colors")
}

func TestViewFlagsRejectUnknownValues(t *testing.T) {
	t.Parallel()

	snap := document.New()
	flags := viewFlags{intensity: -1, club: "barca"}
	require.Error(t, flags.apply(&snap))

	snap = document.New()
	flags = viewFlags{intensity: -1, template: "poster"}
	require.Error(t, flags.apply(&snap))
}
