// Package imageref turns opaque image references (data URIs or file paths)
// into decoded images, asynchronously.
package imageref

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/vincent-petithory/dataurl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	sverrors "github.com/alexisbeaulieu97/sportvisual/pkg/errors"
)

// MaxBytes bounds the encoded size of a single image reference.
const MaxBytes = 32 << 20

// Decoder resolves a reference to a decoded image.
type Decoder interface {
	Decode(ctx context.Context, ref string) (image.Image, error)
}

// FileDecoder decodes data URIs and files. Relative paths resolve against BaseDir.
type FileDecoder struct {
	BaseDir string
}

// Decode implements Decoder. Every failure is a *errors.DecodeError.
func (d FileDecoder) Decode(ctx context.Context, ref string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, sverrors.NewDecodeError(ref, err)
	}

	data, err := d.read(ref)
	if err != nil {
		return nil, sverrors.NewDecodeError(ref, err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, sverrors.NewDecodeError(ref, err)
	}
	return img, nil
}

func (d FileDecoder) read(ref string) ([]byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty image reference")
	}

	if strings.HasPrefix(ref, "data:") {
		parsed, err := dataurl.DecodeString(ref)
		if err != nil {
			return nil, err
		}
		if parsed.Type != "image" {
			return nil, fmt.Errorf("data URI has media type %s, not an image", parsed.ContentType())
		}
		return parsed.Data, nil
	}

	path := strings.TrimPrefix(ref, "file://")
	if !filepath.IsAbs(path) && d.BaseDir != "" {
		path = filepath.Join(d.BaseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxBytes {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", info.Size(), MaxBytes)
	}
	return os.ReadFile(path)
}
