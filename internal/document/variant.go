package document

import (
	"fmt"
	"strings"
)

// Variant names one of the template kinds.
type Variant string

const (
	VariantMatch   Variant = "match"
	VariantScore   Variant = "score"
	VariantPlayer  Variant = "player"
	VariantRanking Variant = "ranking"
	VariantUpNext  Variant = "upnext"
)

var variants = []Variant{VariantMatch, VariantScore, VariantPlayer, VariantRanking, VariantUpNext}

// Variants returns every variant in display order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// VariantNames returns the variant names in display order.
func VariantNames() []string {
	names := make([]string, 0, len(variants))
	for _, v := range variants {
		names = append(names, string(v))
	}
	return names
}

// ParseVariant converts a user supplied name into a Variant.
func ParseVariant(name string) (Variant, error) {
	candidate := Variant(strings.ToLower(strings.TrimSpace(name)))
	for _, v := range variants {
		if v == candidate {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown template %q", name)
}

// Record is the payload of one variant. The set of implementations is closed:
// *MatchRecord, *ScoreRecord, *PlayerRecord, *RankingRecord and *UpNextRecord.
type Record interface {
	Variant() Variant
	fields() map[string]any
}

// MatchRecord is the content of a match announcement.
type MatchRecord struct {
	HomeTeam string `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam string `json:"awayTeam" yaml:"awayTeam"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Stadium  string `json:"stadium" yaml:"stadium"`
	Color1   string `json:"color1" yaml:"color1" validate:"hexcolor"`
	Color2   string `json:"color2" yaml:"color2" validate:"hexcolor"`
	BgImage  string `json:"bgImage,omitempty" yaml:"bgImage,omitempty"`
	TextSize int    `json:"textSize" yaml:"textSize" validate:"min=40,max=120"`
}

func (*MatchRecord) Variant() Variant { return VariantMatch }

func (r *MatchRecord) fields() map[string]any {
	return map[string]any{
		"homeTeam": &r.HomeTeam, "awayTeam": &r.AwayTeam, "date": &r.Date, "time": &r.Time,
		"stadium": &r.Stadium, "color1": &r.Color1, "color2": &r.Color2, "bgImage": &r.BgImage,
		"textSize": &r.TextSize,
	}
}

// ScoreRecord is the content of a final score card.
type ScoreRecord struct {
	HomeTeam    string `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam    string `json:"awayTeam" yaml:"awayTeam"`
	HomeScore   int    `json:"homeScore" yaml:"homeScore" validate:"min=0"`
	AwayScore   int    `json:"awayScore" yaml:"awayScore" validate:"min=0"`
	Competition string `json:"competition" yaml:"competition"`
	Date        string `json:"date" yaml:"date"`
	Color1      string `json:"color1" yaml:"color1" validate:"hexcolor"`
	Color2      string `json:"color2" yaml:"color2" validate:"hexcolor"`
	HomeLogo    string `json:"homeLogo,omitempty" yaml:"homeLogo,omitempty"`
	AwayLogo    string `json:"awayLogo,omitempty" yaml:"awayLogo,omitempty"`
	TextSize    int    `json:"textSize" yaml:"textSize" validate:"min=24,max=72"`
}

func (*ScoreRecord) Variant() Variant { return VariantScore }

func (r *ScoreRecord) fields() map[string]any {
	return map[string]any{
		"homeTeam": &r.HomeTeam, "awayTeam": &r.AwayTeam, "homeScore": &r.HomeScore,
		"awayScore": &r.AwayScore, "competition": &r.Competition, "date": &r.Date,
		"color1": &r.Color1, "color2": &r.Color2, "homeLogo": &r.HomeLogo, "awayLogo": &r.AwayLogo,
		"textSize": &r.TextSize,
	}
}

// PlayerRecord is the content of a player spotlight.
type PlayerRecord struct {
	PlayerName  string `json:"playerName" yaml:"playerName"`
	Number      string `json:"number" yaml:"number"`
	Position    string `json:"position" yaml:"position"`
	Stats       string `json:"stats" yaml:"stats"`
	Team        string `json:"team" yaml:"team"`
	PlayerPhoto string `json:"playerPhoto,omitempty" yaml:"playerPhoto,omitempty"`
	Color1      string `json:"color1" yaml:"color1" validate:"hexcolor"`
	Color2      string `json:"color2" yaml:"color2" validate:"hexcolor"`
	TextSize    int    `json:"textSize" yaml:"textSize" validate:"min=40,max=100"`
}

func (*PlayerRecord) Variant() Variant { return VariantPlayer }

func (r *PlayerRecord) fields() map[string]any {
	return map[string]any{
		"playerName": &r.PlayerName, "number": &r.Number, "position": &r.Position,
		"stats": &r.Stats, "team": &r.Team, "playerPhoto": &r.PlayerPhoto,
		"color1": &r.Color1, "color2": &r.Color2, "textSize": &r.TextSize,
	}
}

// RankingRecord is the content of a league table. Teams holds one line per team.
type RankingRecord struct {
	Title       string `json:"title" yaml:"title"`
	Competition string `json:"competition" yaml:"competition"`
	Teams       string `json:"teams" yaml:"teams"`
	Color1      string `json:"color1" yaml:"color1" validate:"hexcolor"`
	Color2      string `json:"color2" yaml:"color2" validate:"hexcolor"`
	TextSize    int    `json:"textSize" yaml:"textSize" validate:"min=20,max=48"`
}

func (*RankingRecord) Variant() Variant { return VariantRanking }

func (r *RankingRecord) fields() map[string]any {
	return map[string]any{
		"title": &r.Title, "competition": &r.Competition, "teams": &r.Teams,
		"color1": &r.Color1, "color2": &r.Color2, "textSize": &r.TextSize,
	}
}

// Lines returns the non-blank team lines in order.
func (r *RankingRecord) Lines() []string {
	var lines []string
	for _, line := range strings.Split(r.Teams, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// MatchEntry is one fixture of the UpNext list.
type MatchEntry struct {
	HomeTeam string `json:"homeTeam" yaml:"homeTeam"`
	AwayTeam string `json:"awayTeam" yaml:"awayTeam"`
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Stadium  string `json:"stadium" yaml:"stadium"`
	HomeLogo string `json:"homeLogo,omitempty" yaml:"homeLogo,omitempty"`
	AwayLogo string `json:"awayLogo,omitempty" yaml:"awayLogo,omitempty"`
}

func (e *MatchEntry) fields() map[string]any {
	return map[string]any{
		"homeTeam": &e.HomeTeam, "awayTeam": &e.AwayTeam, "date": &e.Date, "time": &e.Time,
		"stadium": &e.Stadium, "homeLogo": &e.HomeLogo, "awayLogo": &e.AwayLogo,
	}
}

// UpNextRecord is the content of a fixture list.
type UpNextRecord struct {
	NumMatches  int          `json:"numMatches" yaml:"numMatches" validate:"min=2,max=5"`
	ColorHeader string       `json:"colorHeader" yaml:"colorHeader" validate:"hexcolor"`
	ColorPanel  string       `json:"colorPanel" yaml:"colorPanel" validate:"hexcolor"`
	ColorText   string       `json:"colorText" yaml:"colorText" validate:"hexcolor"`
	Matches     []MatchEntry `json:"matches" yaml:"matches" validate:"dive"`
}

func (*UpNextRecord) Variant() Variant { return VariantUpNext }

func (r *UpNextRecord) fields() map[string]any {
	return map[string]any{
		"numMatches": &r.NumMatches, "colorHeader": &r.ColorHeader,
		"colorPanel": &r.ColorPanel, "colorText": &r.ColorText,
	}
}

// Visible returns the entries that are drawn, numMatches of them at most.
func (r *UpNextRecord) Visible() []MatchEntry {
	n := min(r.NumMatches, len(r.Matches))
	if n < 0 {
		n = 0
	}
	return r.Matches[:n]
}
