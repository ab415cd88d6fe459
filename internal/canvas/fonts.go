package canvas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
)

// EmojiFamily selects a color emoji font when one is installed.
const EmojiFamily = "emoji"

var emojiFiles = []string{
	"NotoColorEmoji.ttf",
	"NotoEmoji-Regular.ttf",
	"seguiemj.ttf",
	"AppleColorEmoji.ttf",
	"Symbola.ttf",
}

type sourceKey struct {
	family string
	style  string
}

type faceKey struct {
	sourceKey
	size float64
}

// FontBook resolves Font values to text faces. Families are looked up in the
// configured directories, then among system fonts, and finally fall back to
// the embedded Go fonts. It is safe for concurrent use.
type FontBook struct {
	dirs []string
	log  *logger.Logger

	mu      sync.Mutex
	sources map[sourceKey]*text.FontSource
	faces   map[faceKey]text.Face
	origins map[sourceKey]string
}

// NewFontBook creates a FontBook searching dirs first.
func NewFontBook(dirs []string, log *logger.Logger) *FontBook {
	return &FontBook{
		dirs:    dirs,
		log:     log,
		sources: make(map[sourceKey]*text.FontSource),
		faces:   make(map[faceKey]text.Face),
		origins: make(map[sourceKey]string),
	}
}

// Face returns the face for f. It only returns nil if the embedded fallback
// itself fails to parse.
func (b *FontBook) Face(f Font) text.Face {
	key := sourceKey{family: f.Family, style: styleName(f.Weight)}

	b.mu.Lock()
	defer b.mu.Unlock()

	fk := faceKey{sourceKey: key, size: f.Size}
	if face, ok := b.faces[fk]; ok {
		return face
	}

	src, ok := b.sources[key]
	if !ok {
		src = b.load(key, f.Weight)
		if src == nil {
			return nil
		}
		b.sources[key] = src
	}

	face := src.Face(f.Size)
	b.faces[fk] = face
	return face
}

// Origin reports where the face for f was loaded from, "embedded:<name>" for
// the built-in fallback. It is empty until the face was first requested.
func (b *FontBook) Origin(f Font) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.origins[sourceKey{family: f.Family, style: styleName(f.Weight)}]
}

func (b *FontBook) load(key sourceKey, weight int) *text.FontSource {
	for _, name := range candidateFiles(key) {
		path := b.locate(name)
		if path == "" {
			continue
		}
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			b.log.WithField("path", path).Warn(err, "font file could not be parsed")
			continue
		}
		b.origins[key] = path
		return src
	}

	name, data := embeddedFont(weight)
	src, err := text.NewFontSource(data)
	if err != nil {
		b.log.Error(err, "embedded font could not be parsed")
		return nil
	}
	b.origins[key] = "embedded:" + name
	b.log.WithFields(map[string]any{"family": key.family, "style": key.style}).Debug("using embedded font")
	return src
}

func (b *FontBook) locate(name string) string {
	for _, dir := range b.dirs {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	if path, err := findfont.Find(name); err == nil {
		return path
	}
	return ""
}

func candidateFiles(key sourceKey) []string {
	if key.family == EmojiFamily {
		return emojiFiles
	}

	family := strings.TrimSpace(key.family)
	if family == "" || family == "sans-serif" {
		return nil
	}
	compact := strings.ReplaceAll(family, " ", "")

	var names []string
	for _, base := range []string{family, compact} {
		for _, ext := range []string{".ttf", ".otf"} {
			names = append(names, fmt.Sprintf("%s-%s%s", base, key.style, ext))
		}
	}
	if key.style == "Regular" {
		names = append(names, family+".ttf", compact+".ttf")
	}
	return names
}

func styleName(weight int) string {
	switch {
	case weight >= 900:
		return "Black"
	case weight >= 800:
		return "ExtraBold"
	case weight >= 700:
		return "Bold"
	case weight >= 600:
		return "SemiBold"
	case weight >= 500:
		return "Medium"
	default:
		return "Regular"
	}
}

func embeddedFont(weight int) (string, []byte) {
	switch {
	case weight >= 700:
		return "gobold", gobold.TTF
	case weight >= 500:
		return "gomedium", gomedium.TTF
	default:
		return "goregular", goregular.TTF
	}
}
