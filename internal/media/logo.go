package media

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	MaxLogoSide  = 512
	MaxLogoBytes = 5 << 20

	LogoContentType = "image/webp"
)

var (
	ErrInvalidImage = errors.New("invalid_image")
	ErrImageTooBig  = errors.New("image_too_big")
)

// ProcessLogo decodifica png/jpeg/webp, reduz para caber em
// MaxLogoSide x MaxLogoSide e reencoda em WebP.
func ProcessLogo(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return nil, err
	}
	if len(raw) > MaxLogoBytes {
		return nil, ErrImageTooBig
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImage
	}

	img := Fit(src, MaxLogoSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: 85}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Fit reduz mantendo a proporção. Imagens menores voltam sem cópia.
func Fit(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return src
	}

	if w >= h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
