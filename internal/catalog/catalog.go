// Package catalog holds the static lookup tables shared by the document model
// and the renderer: output formats, club and season themes, and editor field sets.
package catalog

import (
	"fmt"
	"slices"
)

// Format is an output-size preset.
type Format struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Label  string `json:"label"`
}

// ClubTheme is a named club color pair.
type ClubTheme struct {
	Key    string `json:"key"`
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
	Name   string `json:"name"`
}

// SeasonTheme is a seasonal color pair with its decoration emoji.
type SeasonTheme struct {
	Key    string `json:"key"`
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
	Emoji  string `json:"emoji"`
	Label  string `json:"label"`
}

const (
	// NoClub is the club tag meaning no club theme is applied.
	NoClub = "custom"
	// NoSeason is the season tag meaning no seasonal theme is applied.
	NoSeason = "none"
)

var formats = []Format{
	{Name: "square", Width: 1080, Height: 1080, Label: "1080 x 1080"},
	{Name: "portrait", Width: 1080, Height: 1350, Label: "1080 x 1350"},
	{Name: "story", Width: 1080, Height: 1920, Label: "1080 x 1920"},
}

var clubs = []ClubTheme{
	{Key: "psg", Color1: "#004170", Color2: "#E30613", Name: "Paris Saint-Germain"},
	{Key: "om", Color1: "#2FAEE0", Color2: "#FFFFFF", Name: "Olympique de Marseille"},
	{Key: "ol", Color1: "#DA000C", Color2: "#003C7D", Name: "Olympique Lyonnais"},
	{Key: "asse", Color1: "#00965E", Color2: "#FFFFFF", Name: "AS Saint-Étienne"},
	{Key: "losc", Color1: "#CC0000", Color2: "#000033", Name: "LOSC Lille"},
	{Key: "monaco", Color1: "#CC0000", Color2: "#FFFFFF", Name: "AS Monaco"},
	{Key: "rennes", Color1: "#E50027", Color2: "#000000", Name: "Stade Rennais"},
}

var seasons = []SeasonTheme{
	{Key: "christmas", Color1: "#C41E3A", Color2: "#165B33", Emoji: "🎄", Label: "Noël"},
	{Key: "summer", Color1: "#FFD700", Color2: "#FF6B35", Emoji: "☀️", Label: "Été"},
	{Key: "playoffs", Color1: "#FFD700", Color2: "#000000", Emoji: "🏆", Label: "Playoffs"},
	{Key: "halloween", Color1: "#FF6600", Color2: "#1a1a1a", Emoji: "🎃", Label: "Halloween"},
	{Key: "valentine", Color1: "#FF1493", Color2: "#C71585", Emoji: "❤️", Label: "St-Valentin"},
}

// Values accepted for the cyclable view settings, in display order.
var (
	Patterns = []string{"none", "stripes", "dots", "hexagons", "grid"}
	Effects  = []string{"none", "shadow", "glow", "neon"}
	Filters  = []string{"none", "grayscale", "sepia", "contrast", "brightness"}
	Fonts    = []string{"Inter", "Roboto", "Montserrat", "Oswald", "Bebas Neue"}
)

// Formats returns the output presets in display order.
func Formats() []Format {
	return slices.Clone(formats)
}

// FormatNames returns the preset names in display order.
func FormatNames() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.Name)
	}
	return names
}

// LookupFormat resolves a preset by name.
func LookupFormat(name string) (Format, error) {
	for _, f := range formats {
		if f.Name == name {
			return f, nil
		}
	}
	return Format{}, fmt.Errorf("unknown format %q", name)
}

// Clubs returns the club themes in display order.
func Clubs() []ClubTheme {
	return slices.Clone(clubs)
}

// ClubKeys returns NoClub followed by every club key.
func ClubKeys() []string {
	keys := []string{NoClub}
	for _, c := range clubs {
		keys = append(keys, c.Key)
	}
	return keys
}

// LookupClub resolves a club theme. NoClub and unknown keys report false.
func LookupClub(key string) (ClubTheme, bool) {
	for _, c := range clubs {
		if c.Key == key {
			return c, true
		}
	}
	return ClubTheme{}, false
}

// Seasons returns the seasonal themes in display order.
func Seasons() []SeasonTheme {
	return slices.Clone(seasons)
}

// SeasonKeys returns NoSeason followed by every season key.
func SeasonKeys() []string {
	keys := []string{NoSeason}
	for _, s := range seasons {
		keys = append(keys, s.Key)
	}
	return keys
}

// LookupSeason resolves a seasonal theme. NoSeason and unknown keys report false.
func LookupSeason(key string) (SeasonTheme, bool) {
	for _, s := range seasons {
		if s.Key == key {
			return s, true
		}
	}
	return SeasonTheme{}, false
}

// Next returns the value following current in values, wrapping around.
// An unknown current value yields the first entry.
func Next(values []string, current string) string {
	if len(values) == 0 {
		return current
	}
	idx := slices.Index(values, current)
	return values[(idx+1)%len(values)]
}
