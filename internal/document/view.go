package document

import "github.com/alexisbeaulieu97/sportvisual/internal/catalog"

const (
	MinZoom  = 0.5
	MaxZoom  = 2.0
	ZoomStep = 0.1

	DefaultIntensity = 5
	MaxIntensity     = 10
)

// ViewSettings are the presentation parameters that sit beside the document.
type ViewSettings struct {
	Template        Variant `json:"template" yaml:"template" validate:"variant"`
	Format          string  `json:"format" yaml:"format" validate:"format"`
	Font            string  `json:"font" yaml:"font" validate:"required"`
	Pattern         string  `json:"pattern" yaml:"pattern" validate:"oneof=none stripes dots hexagons grid"`
	Effect          string  `json:"effect" yaml:"effect" validate:"oneof=none shadow glow neon"`
	EffectIntensity int     `json:"effectIntensity" yaml:"effectIntensity" validate:"min=0,max=10"`
	Filter          string  `json:"filter" yaml:"filter" validate:"oneof=none grayscale sepia contrast brightness"`
	Club            string  `json:"club" yaml:"club" validate:"club"`
	Season          string  `json:"season" yaml:"season" validate:"season"`
	Zoom            float64 `json:"zoom" yaml:"zoom" validate:"min=0.5,max=2"`
}

// DefaultView returns the settings a fresh session starts with.
func DefaultView() ViewSettings {
	return ViewSettings{
		Template:        VariantMatch,
		Format:          "square",
		Font:            "Inter",
		Pattern:         "none",
		Effect:          "none",
		EffectIntensity: DefaultIntensity,
		Filter:          "none",
		Club:            catalog.NoClub,
		Season:          catalog.NoSeason,
		Zoom:            1,
	}
}

// Normalize fills unset settings with their defaults. An intensity of 0 is a
// legitimate value and is kept.
func (v *ViewSettings) Normalize() {
	def := DefaultView()
	if v.Template == "" {
		v.Template = def.Template
	}
	if v.Format == "" {
		v.Format = def.Format
	}
	if v.Font == "" {
		v.Font = def.Font
	}
	if v.Pattern == "" {
		v.Pattern = def.Pattern
	}
	if v.Effect == "" {
		v.Effect = def.Effect
	}
	if v.Filter == "" {
		v.Filter = def.Filter
	}
	if v.Club == "" {
		v.Club = def.Club
	}
	if v.Season == "" {
		v.Season = def.Season
	}
	if v.Zoom == 0 {
		v.Zoom = def.Zoom
	}
}

// ClampZoom bounds a zoom factor to [MinZoom, MaxZoom], rounded to one decimal.
func ClampZoom(z float64) float64 {
	z = float64(int(z*10+0.5)) / 10
	return min(MaxZoom, max(MinZoom, z))
}

// ClampIntensity bounds an effect intensity to [0, MaxIntensity].
func ClampIntensity(i int) int {
	return min(MaxIntensity, max(0, i))
}
