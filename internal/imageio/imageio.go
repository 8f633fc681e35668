// Package imageio loads source images and writes crop results.
package imageio

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNotImage is returned when input cannot be decoded as any known format.
var ErrNotImage = errors.New("not an image")

// Decode reads an image in any registered format and applies its EXIF
// orientation so the result is upright.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, ErrNotImage
		}
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// DecodeBytes is Decode over an in-memory buffer.
func DecodeBytes(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrNotImage
	}
	return Decode(bytes.NewReader(data))
}

// Load opens and decodes the image at path.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// EncodePNG writes img as PNG, keeping its alpha channel.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// Save writes img to path, creating parent directories. The format follows
// the file extension; paths without a known one get PNG. JPEG output drops
// transparency so round crops should be saved as PNG.
func Save(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		format = imaging.PNG
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := imaging.Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// OutputName derives the default result file name for a source path,
// e.g. "photo.jpg" becomes "photo-crop.png".
func OutputName(src string) string {
	base := filepath.Base(src)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "image"
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + "-crop.png"
}
