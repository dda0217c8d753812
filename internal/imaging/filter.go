// Package imaging holds the bitmap post-processing for generated logos:
// white-background removal and the resize to the canonical thumbnail.
package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// whiteThreshold is the exclusive per-channel floor for a pixel to count as
// background. Exactly 200 stays opaque.
const whiteThreshold = 200

// ToRGBA returns the image as RGBA, copying only when needed.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// WhiteToTransparent returns a copy of src where every near-white pixel
// (R, G and B each strictly above 200) becomes fully transparent white, and
// every other pixel keeps its color at full opacity.
//
// The transform is per-pixel with no edge awareness, so cutouts are
// hard-edged and legitimately near-white artwork (highlights, snow) gets
// punched out too. That is the intended behavior, not a defect.
// Applying the filter twice yields the same bitmap as applying it once.
func WhiteToTransparent(src *image.RGBA) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.RGBAAt(x, y)
			if c.R > whiteThreshold && c.G > whiteThreshold && c.B > whiteThreshold {
				dst.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 0})
			} else {
				dst.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
			}
		}
	}

	return dst
}

// ResizeSquash scales src to exactly width x height with CatmullRom
// resampling. Aspect ratio is not preserved: non-square sources are squashed,
// never cropped or padded.
func ResizeSquash(src image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}
