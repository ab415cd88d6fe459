package document

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// Snapshot is the full editor state at one point in time. Its JSON form is
// {"data": {...}, "template": ..., "format": ..., ...}.
type Snapshot struct {
	Data         Document `json:"data" yaml:"data"`
	ViewSettings `yaml:",inline"`
}

// New returns a snapshot of the default document and settings.
func New() Snapshot {
	return Snapshot{Data: Defaults(), ViewSettings: DefaultView()}
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	s.Data = s.Data.Clone()
	return s
}

// Active returns the record of the active template.
func (s *Snapshot) Active() Record {
	rec, err := s.Data.Record(s.Template)
	if err != nil {
		return &s.Data.Match
	}
	return rec
}

// Marshal encodes the snapshot as JSON.
func (s Snapshot) Marshal() ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes a JSON snapshot produced by Marshal. Missing fields keep
// their defaults.
func Unmarshal(data []byte) (Snapshot, error) {
	snap := New()
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, err
	}
	snap.normalize()
	return snap, nil
}

// DecodeSnapshot decodes a YAML or JSON snapshot over the defaults, then
// normalizes and validates it. source names the input in errors.
func DecodeSnapshot(source string, data []byte) (Snapshot, error) {
	snap := New()
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, sverrors.NewParseError(source, extractLine(err), err)
	}
	snap.normalize()

	if err := Validate(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ParseSnapshot loads a snapshot file from disk.
func ParseSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, sverrors.NewParseError(path, 0, err)
	}
	return DecodeSnapshot(path, data)
}

// DecodeDocument decodes a persisted document over the defaults.
func DecodeDocument(data []byte) (Document, error) {
	doc := Defaults()
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, err
	}
	if doc.UpNext.NumMatches >= MinMatches && doc.UpNext.NumMatches <= MaxMatches {
		doc.UpNext.resize()
	}
	return doc, nil
}

func (s *Snapshot) normalize() {
	s.ViewSettings.Normalize()
	if s.Data.UpNext.NumMatches >= MinMatches && s.Data.UpNext.NumMatches <= MaxMatches {
		s.Data.UpNext.resize()
	}
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	if _, scanErr := fmt.Sscanf(matches[1], "%d", &line); scanErr != nil {
		return 0
	}

	return line
}
