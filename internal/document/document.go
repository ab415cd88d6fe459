// Package document models the editable content of every template variant,
// the orthogonal view settings, and the snapshots the history log stores.
package document

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

const (
	// MinMatches and MaxMatches bound the UpNext fixture count.
	MinMatches = 2
	MaxMatches = 5
)

// Document holds one record per variant. Switching the active variant never
// touches the other records.
type Document struct {
	Match   MatchRecord   `json:"match" yaml:"match"`
	Score   ScoreRecord   `json:"score" yaml:"score"`
	Player  PlayerRecord  `json:"player" yaml:"player"`
	Ranking RankingRecord `json:"ranking" yaml:"ranking"`
	UpNext  UpNextRecord  `json:"upnext" yaml:"upnext"`
}

// Defaults returns a fully populated document.
func Defaults() Document {
	return Document{
		Match: MatchRecord{
			HomeTeam: "FC GENÈVE", AwayTeam: "FC LAUSANNE",
			Date: "Samedi 14 Décembre", Time: "15:00", Stadium: "Stade de Genève",
			Color1: "#007AFF", Color2: "#0051D5", TextSize: 80,
		},
		Score: ScoreRecord{
			HomeTeam: "FC GENÈVE", AwayTeam: "FC LAUSANNE", HomeScore: 3, AwayScore: 1,
			Competition: "Championnat Régional", Date: "03 Décembre 2025",
			Color1: "#10B981", Color2: "#059669", TextSize: 48,
		},
		Player: PlayerRecord{
			PlayerName: "THOMAS MULLER", Number: "10", Position: "Attaquant",
			Stats: "Buts: 2 | Passes: 1", Team: "FC GENÈVE",
			Color1: "#FF3B30", Color2: "#C7221F", TextSize: 70,
		},
		Ranking: RankingRecord{
			Title: "CLASSEMENT", Competition: "Ligue 1",
			Teams: strings.Join([]string{
				"1. FC Genève - 45 pts",
				"2. FC Lausanne - 42 pts",
				"3. FC Sion - 38 pts",
				"4. Servette FC - 35 pts",
				"5. Young Boys - 32 pts",
			}, "\n"),
			Color1: "#5856D6", Color2: "#3634A3", TextSize: 32,
		},
		UpNext: UpNextRecord{
			NumMatches:  3,
			ColorHeader: "#D32F2F",
			ColorPanel:  "#FFFFFF",
			ColorText:   "#1f2937",
			Matches: []MatchEntry{
				{HomeTeam: "FC GENÈVE", AwayTeam: "FC LAUSANNE", Date: "SAM 14 OCT", Time: "14H00", Stadium: "STADE DE GENÈVE"},
				{HomeTeam: "FC SION", AwayTeam: "SERVETTE FC", Date: "DIM 15 OCT", Time: "16H30", Stadium: "TOURBILLON"},
				{HomeTeam: "YOUNG BOYS", AwayTeam: "FC BÂLE", Date: "SAM 21 OCT", Time: "18H00", Stadium: "WANKDORF"},
			},
		},
	}
}

// DefaultMatchEntry is appended when the fixture count grows.
func DefaultMatchEntry() MatchEntry {
	return MatchEntry{HomeTeam: "ÉQUIPE A", AwayTeam: "ÉQUIPE B", Date: "SAM 14 OCT", Time: "14H00", Stadium: "STADE"}
}

// Clone returns a deep copy sharing no memory with d.
func (d Document) Clone() Document {
	out := d
	if d.UpNext.Matches != nil {
		out.UpNext.Matches = make([]MatchEntry, len(d.UpNext.Matches))
		copy(out.UpNext.Matches, d.UpNext.Matches)
	}
	return out
}

// Record returns the live payload of a variant.
func (d *Document) Record(v Variant) (Record, error) {
	switch v {
	case VariantMatch:
		return &d.Match, nil
	case VariantScore:
		return &d.Score, nil
	case VariantPlayer:
		return &d.Player, nil
	case VariantRanking:
		return &d.Ranking, nil
	case VariantUpNext:
		return &d.UpNext, nil
	default:
		return nil, fmt.Errorf("unknown template %q", v)
	}
}

// ApplyColors overwrites the theme colors of a variant's record. The UpNext
// record only takes color1, as its header color. No other field changes.
func (d *Document) ApplyColors(v Variant, color1, color2 string) error {
	switch v {
	case VariantMatch:
		d.Match.Color1, d.Match.Color2 = color1, color2
	case VariantScore:
		d.Score.Color1, d.Score.Color2 = color1, color2
	case VariantPlayer:
		d.Player.Color1, d.Player.Color2 = color1, color2
	case VariantRanking:
		d.Ranking.Color1, d.Ranking.Color2 = color1, color2
	case VariantUpNext:
		d.UpNext.ColorHeader = color1
	default:
		return fmt.Errorf("unknown template %q", v)
	}
	return nil
}

// SetNumMatches resizes the fixture list. Growing appends default entries,
// shrinking truncates and discards the tail.
func (d *Document) SetNumMatches(n int) error {
	if n < MinMatches || n > MaxMatches {
		return sverrors.NewValidationError("upnext.numMatches", fmt.Sprintf("must be between %d and %d", MinMatches, MaxMatches), nil)
	}
	d.UpNext.NumMatches = n
	d.UpNext.resize()
	return nil
}

func (r *UpNextRecord) resize() {
	if len(r.Matches) > r.NumMatches {
		r.Matches = r.Matches[:r.NumMatches:r.NumMatches]
		return
	}
	for len(r.Matches) < r.NumMatches {
		r.Matches = append(r.Matches, DefaultMatchEntry())
	}
}

// Field returns the string form of a variant field.
func (d *Document) Field(v Variant, key string) (string, error) {
	rec, err := d.Record(v)
	if err != nil {
		return "", err
	}
	ptr, ok := rec.fields()[key]
	if !ok {
		return "", unknownField(v, key)
	}
	return formatField(ptr), nil
}

// SetField parses value according to the field kind and stores it.
func (d *Document) SetField(v Variant, key, value string) error {
	if v == VariantUpNext && key == "numMatches" {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return sverrors.NewValidationError("upnext.numMatches", "must be an integer", err)
		}
		return d.SetNumMatches(n)
	}

	rec, err := d.Record(v)
	if err != nil {
		return err
	}
	ptr, ok := rec.fields()[key]
	if !ok {
		return unknownField(v, key)
	}
	spec, _ := catalog.Field(string(v), key)
	return assignField(fmt.Sprintf("%s.%s", v, key), spec, ptr, value)
}

// MatchField returns one field of a fixture entry.
func (d *Document) MatchField(index int, key string) (string, error) {
	entry, err := d.entry(index)
	if err != nil {
		return "", err
	}
	ptr, ok := entry.fields()[key]
	if !ok {
		return "", unknownField(VariantUpNext, "matches."+key)
	}
	return formatField(ptr), nil
}

// SetMatchField stores one field of a fixture entry.
func (d *Document) SetMatchField(index int, key, value string) error {
	entry, err := d.entry(index)
	if err != nil {
		return err
	}
	ptr, ok := entry.fields()[key]
	if !ok {
		return unknownField(VariantUpNext, "matches."+key)
	}
	return assignField(fmt.Sprintf("upnext.matches[%d].%s", index, key), catalog.FieldSpec{Kind: catalog.KindText}, ptr, value)
}

func (d *Document) entry(index int) (*MatchEntry, error) {
	if index < 0 || index >= len(d.UpNext.Matches) || index >= d.UpNext.NumMatches {
		return nil, sverrors.NewValidationError("upnext.matches", fmt.Sprintf("no match at index %d", index), nil)
	}
	return &d.UpNext.Matches[index], nil
}

func unknownField(v Variant, key string) error {
	return sverrors.NewValidationError(fmt.Sprintf("%s.%s", v, key), "unknown field", nil)
}

func formatField(ptr any) string {
	switch p := ptr.(type) {
	case *string:
		return *p
	case *int:
		return strconv.Itoa(*p)
	default:
		return ""
	}
}

func assignField(path string, spec catalog.FieldSpec, ptr any, value string) error {
	switch p := ptr.(type) {
	case *int:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return sverrors.NewValidationError(path, "must be an integer", err)
		}
		if spec.Kind == catalog.KindRange || spec.Kind == catalog.KindNumber {
			if n < spec.Min || (spec.Max > 0 && n > spec.Max) {
				return sverrors.NewValidationError(path, fmt.Sprintf("must be between %d and %d", spec.Min, spec.Max), nil)
			}
		}
		*p = n
	case *string:
		if spec.Kind == catalog.KindColor {
			if err := validatorInstance().Var(value, "hexcolor"); err != nil {
				return sverrors.NewValidationError(path, "must be a hex color", err)
			}
		}
		if spec.Kind == catalog.KindTextArea {
			value = strings.ReplaceAll(value, `\n`, "\n")
		}
		*p = value
	}
	return nil
}
