/*
Copyright 2024-2026 the shrink authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package quantize reduces an image to a limited color palette. This is
// the one lossy transform in the repository: the reduction is
// irreversible and offers no round-trip contract. The palette itself
// comes from a median-cut quantizer; this package only validates the
// target color count and repaints the image onto the reduced palette.
package quantize

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	_ "image/gif"  // register decoders for Decode
	_ "image/jpeg" //

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/shrinklab/shrink"
)

const (
	MinColors = 2
	MaxColors = 256
)

// Reduce returns src repainted with a median-cut palette of at most
// colors entries. The color count must lie in [2, 256]; a paletted
// image cannot exceed 256 entries and a single color would discard the
// image entirely.
func Reduce(src image.Image, colors int) (*image.Paletted, error) {
	if colors < MinColors || colors > MaxColors {
		return nil, fmt.Errorf("%w: color count %d outside [%d, %d]", shrink.ErrInvalidParameter, colors, MinColors, MaxColors)
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, colors), src)

	dst := image.NewPaletted(src.Bounds(), palette)
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst, nil
}

// Decode reads a PNG, GIF or JPEG image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// EncodePNG writes img as PNG; paletted input stays paletted, which is
// where the size reduction comes from.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
