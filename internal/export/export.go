// Package export turns rendered images into files, data URIs, previews and
// clipboard contents.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/vincent-petithory/dataurl"

	"github.com/alexisbeaulieu97/sportvisual/internal/document"
	"github.com/alexisbeaulieu97/sportvisual/internal/logger"
	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// Notices shown after a copy request.
const (
	NoticeCopied     = "✅ Image copiée dans le presse-papiers !"
	NoticeDownloaded = "🔗 Image téléchargée !"
)

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// PNGBytes returns img encoded as PNG.
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI returns img as a base64 data:image/png URI.
func DataURI(img image.Image) (string, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return "", err
	}
	return dataurl.New(data, "image/png").String(), nil
}

// FileName is the download name for a render taken at t.
func FileName(variant document.Variant, format string, t time.Time) string {
	return fmt.Sprintf("sportvisual-%s-%s-%d.png", variant, format, t.UnixMilli())
}

// Preview scales img by zoom, clamped to the editor's zoom range.
func Preview(img image.Image, zoom float64) *image.NRGBA {
	zoom = document.ClampZoom(zoom)
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*zoom+0.5))
	h := max(1, int(float64(b.Dy())*zoom+0.5))
	return imaging.Resize(img, w, h, imaging.Lanczos)
}

// Result reports where an exported image went.
type Result struct {
	Copied bool
	Path   string
	Notice string
}

// Exporter writes renders to a directory and to the clipboard.
type Exporter struct {
	Dir       string
	Clipboard Clipboard
	Logger    *logger.Logger

	now func() time.Time
}

// NewExporter creates an Exporter writing into dir. A nil clipboard disables copying.
func NewExporter(dir string, clip Clipboard, log *logger.Logger) *Exporter {
	return &Exporter{Dir: dir, Clipboard: clip, Logger: log, now: time.Now}
}

// Save writes img under its download name and returns the path.
func (e *Exporter) Save(img image.Image, variant document.Variant, format string) (string, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return "", err
	}
	return e.write(data, variant, format)
}

// Copy places img on the clipboard. When the clipboard is unavailable the
// image is saved as a file instead and the result carries the download notice.
func (e *Exporter) Copy(ctx context.Context, img image.Image, variant document.Variant, format string) (Result, error) {
	data, err := PNGBytes(img)
	if err != nil {
		return Result{}, err
	}

	clipErr := sverrors.NewClipboardError(nil)
	if e.Clipboard != nil {
		clipErr = e.Clipboard.CopyPNG(ctx, data)
		if clipErr == nil {
			return Result{Copied: true, Notice: NoticeCopied}, nil
		}
	}
	if !errors.Is(clipErr, sverrors.ErrClipboardUnavailable) {
		clipErr = sverrors.NewClipboardError(clipErr)
	}
	e.Logger.Warn(clipErr, "clipboard unavailable, saving file instead")

	path, err := e.write(data, variant, format)
	if err != nil {
		return Result{}, err
	}
	return Result{Path: path, Notice: NoticeDownloaded}, nil
}

func (e *Exporter) write(data []byte, variant document.Variant, format string) (string, error) {
	now := time.Now
	if e.now != nil {
		now = e.now
	}

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(variant, format, now()))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
