package utils

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

// PrepareBoardImage normalizes a board capture before cell sampling. Images
// larger than maxDim on their longest edge are downscaled; pass maxDim <= 0
// to keep the size. blurSigma sets the gaussian blur that suppresses grid
// lines and camera noise.
// Ideal start: 0.6-1.2 for photographed boards; 0 (off) for clean
// screenshots. Too high bleeds neighboring cell colors into each other.
func PrepareBoardImage(img image.Image, maxDim int, blurSigma float32) image.Image {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		img = resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
	}
	if blurSigma <= 0 {
		return img
	}

	g := gift.New(gift.GaussianBlur(blurSigma))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
