package imaging

import (
	"fmt"
	"image"
	"os"

	// Raster formats accepted by the image strategy.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode reads and decodes a raster image file. The supported formats are
// PNG, JPEG, GIF, BMP, TIFF, and WebP; anything else fails with the
// decoder's error.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}
