package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"golang.org/x/image/draw"
)

const (
	// maxDimension is the bounding box for the first resize pass.
	maxDimension = 1600
	// softTargetBytes is the intermediate compression goal; overshooting
	// it triggers exactly one corrective rescale.
	softTargetBytes = 2 * 1024 * 1024
	// maxRescale caps the corrective rescale factor.
	maxRescale = 0.95
)

// ErrBudgetExceeded is returned when an image cannot be encoded within the
// caller's hard size ceiling.
var ErrBudgetExceeded = errors.New("could not optimize image to target size")

// Optimize prepares img for attachment: bounded to 1600 px on its larger
// side, flattened to an opaque form, PNG-encoded within maxSizeMB
// megabytes. It returns the final image and its encoded bytes. The result
// is deterministic for identical input.
func Optimize(img image.Image, maxSizeMB int) (image.Image, []byte, error) {
	maxBytes := int64(maxSizeMB) * 1024 * 1024

	if w, h := dimensions(img); w > maxDimension || h > maxDimension {
		nw, nh := fitWithin(w, h, maxDimension)
		img = resize(img, nw, nh)
	}
	img = flatten(img)

	buf, err := encodePNG(img)
	if err != nil {
		return nil, nil, err
	}

	if int64(len(buf)) > softTargetBytes {
		w, h := dimensions(img)
		scale := math.Min(maxRescale, math.Sqrt(float64(softTargetBytes)/float64(len(buf))))
		img = resize(img, int(float64(w)*scale), int(float64(h)*scale))
		buf, err = encodePNG(img)
		if err != nil {
			return nil, nil, err
		}
	}

	if int64(len(buf)) > maxBytes {
		return nil, nil, fmt.Errorf("%w: %d > %d bytes", ErrBudgetExceeded, len(buf), maxBytes)
	}
	return img, buf, nil
}

func dimensions(img image.Image) (int, int) {
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

// fitWithin scales (w, h) preserving aspect ratio so the larger dimension
// equals bound.
func fitWithin(w, h, bound int) (int, int) {
	if w >= h {
		return bound, int(math.Round(float64(h) * float64(bound) / float64(w)))
	}
	return int(math.Round(float64(w) * float64(bound) / float64(h))), bound
}

// resize scales img to exactly w x h with a triangle (bilinear) filter.
func resize(img image.Image, w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// flatten composites img onto an opaque white background when it carries
// an alpha channel, so the PNG encoder emits a 3-channel image.
func flatten(img image.Image) image.Image {
	if op, ok := img.(interface{ Opaque() bool }); ok && op.Opaque() {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("png encode: %w", err)
	}
	return buf.Bytes(), nil
}
