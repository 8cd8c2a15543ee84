package service

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/layout"
	"github.com/Badsnus/qr-studio/pkg/card"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
)

func scaled(size int, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return int(math.Round(float64(size) * scale))
}

// CodeVisual is the code alone. It is the only visual with a vector form.
type CodeVisual struct {
	Options   qr.Options
	Watermark string
}

func (v CodeVisual) Raster(_ context.Context, size int, scale float64) (image.Image, error) {
	opts := v.Options
	opts.Size = scaled(size, scale)
	img, err := opts.Image()
	if err != nil {
		return nil, err
	}
	return card.Stamp(img, v.Watermark, scale), nil
}

func (v CodeVisual) Vector(_ context.Context, size int) ([]byte, error) {
	opts := v.Options
	opts.Size = size
	data, err := opts.SVG()
	if err != nil {
		return nil, err
	}
	return card.StampSVG(data, v.Watermark, size), nil
}

// CardVisual is the code composed into its card template.
type CardVisual struct {
	Code      qr.Options
	Template  entity.CardTemplate
	Images    card.ImageSource
	Watermark string
	Now       func() time.Time
}

func (v CardVisual) Raster(_ context.Context, size int, scale float64) (image.Image, error) {
	opts := v.Code
	opts.Size = scaled(size, scale)
	code, err := opts.Image()
	if err != nil {
		return nil, err
	}

	comp := layout.Layout(v.Template, layout.CodeBlock{Width: float64(size), Height: float64(size)}, layout.Options{Now: v.Now})
	frame := card.Frame{
		Composition: comp,
		Code:        code,
		Scale:       scale,
		Images:      v.Images,
		Watermark:   v.Watermark,
	}
	return frame.Image()
}
