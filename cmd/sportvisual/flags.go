package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/sportvisual/internal/catalog"
	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

var matchFieldRegex = regexp.MustCompile(`^matches\[(\d+)\]\.(\w+)$`)

// viewFlags override view settings of a snapshot before it is drawn.
type viewFlags struct {
	template  string
	format    string
	font      string
	pattern   string
	effect    string
	intensity int
	filter    string
	club      string
	season    string
}

func (f *viewFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "Template: "+strings.Join(document.VariantNames(), ", "))
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: "+strings.Join(catalog.FormatNames(), ", "))
	cmd.Flags().StringVar(&f.font, "font", "", "Font family")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "Background pattern: "+strings.Join(catalog.Patterns, ", "))
	cmd.Flags().StringVar(&f.effect, "effect", "", "Text effect: "+strings.Join(catalog.Effects, ", "))
	cmd.Flags().IntVar(&f.intensity, "intensity", -1, "Effect intensity (0-10)")
	cmd.Flags().StringVar(&f.filter, "filter", "", "Filter: "+strings.Join(catalog.Filters, ", "))
	cmd.Flags().StringVar(&f.club, "club", "", "Club theme: "+strings.Join(catalog.ClubKeys(), ", "))
	cmd.Flags().StringVar(&f.season, "season", "", "Seasonal theme: "+strings.Join(catalog.SeasonKeys(), ", "))
}

// apply writes the set flags into snap and validates the result. Club and
// season themes recolor the active record the way the editor does.
func (f *viewFlags) apply(snap *document.Snapshot) error {
	if f.template != "" {
		v, err := document.ParseVariant(f.template)
		if err != nil {
			return sverrors.NewValidationError("template", err.Error(), err)
		}
		snap.Template = v
	}
	if f.format != "" {
		snap.Format = f.format
	}
	if f.font != "" {
		snap.Font = f.font
	}
	if f.pattern != "" {
		snap.Pattern = f.pattern
	}
	if f.effect != "" {
		snap.Effect = f.effect
	}
	if f.intensity >= 0 {
		snap.EffectIntensity = document.ClampIntensity(f.intensity)
	}
	if f.filter != "" {
		snap.Filter = f.filter
	}
	if f.club != "" {
		snap.Club = f.club
		if theme, ok := catalog.LookupClub(f.club); ok {
			if err := snap.Data.ApplyColors(snap.Template, theme.Color1, theme.Color2); err != nil {
				return err
			}
		}
	}
	if f.season != "" {
		snap.Season = f.season
		if theme, ok := catalog.LookupSeason(f.season); ok {
			if err := snap.Data.ApplyColors(snap.Template, theme.Color1, theme.Color2); err != nil {
				return err
			}
		}
	}
	return document.Validate(snap)
}

// assignment is one key=value argument. match is the fixture index for
// matches[N].key, or -1.
type assignment struct {
	key   string
	value string
	match int
}

func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", arg)
		}
		key = strings.TrimSpace(key)

		a := assignment{key: key, value: value, match: -1}
		if m := matchFieldRegex.FindStringSubmatch(key); m != nil {
			idx, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, fmt.Errorf("invalid match index in %q: %w", key, err)
			}
			a.key = m[2]
			a.match = idx
		}
		out = append(out, a)
	}
	return out, nil
}

// parseIndex converts a 1-based list position into a 0-based index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid template number %q", arg)
	}
	return n - 1, nil
}

// escapeLinesForTable keeps multi-line values on one table row.
func escapeLinesForTable(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}
