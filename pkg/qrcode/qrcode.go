package qr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/skip2/go-qrcode"
)

type DotShape string

const (
	DotSquare        DotShape = "square"
	DotDots          DotShape = "dots"
	DotRounded       DotShape = "rounded"
	DotExtraRounded  DotShape = "extra-rounded"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
)

type CornerShape string

const (
	CornerSquare       CornerShape = "square"
	CornerDot          CornerShape = "dot"
	CornerExtraRounded CornerShape = "extra-rounded"
)

// Stop is a gradient color stop, Offset in [0,1].
type Stop struct {
	Offset float64
	Color  color.Color
}

type Gradient struct {
	Radial   bool
	Rotation float64 // degrees, linear only
	Stops    []Stop
}

// Corner styles one of the finder pattern layers.
type Corner struct {
	Shape    CornerShape
	Color    color.Color
	Gradient *Gradient
}

// Options is a fully resolved description of a code. The renderer applies
// it as given and does not fill defaults or enforce scannability limits.
type Options struct {
	Content       string
	Size          int
	RecoveryLevel qrcode.RecoveryLevel
	QuietZone     int // in modules

	Background         color.Color
	Foreground         color.Color
	BackgroundGradient *Gradient
	DotsGradient       *Gradient
	DotShape           DotShape
	CornerSquare       Corner
	CornerDot          Corner
	Circle             bool

	Logo               image.Image
	LogoScale          float64 // share of the symbol area
	LogoMargin         int     // px around the logo
	HideBackgroundDots bool
}

// Image draws the code.
func (o *Options) Image() (image.Image, error) {
	g, err := o.layout()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(o.Size, o.Size)
	dc.SetFillRuleEvenOdd()

	// Background
	if g.circle {
		dc.DrawCircle(float64(o.Size)/2, float64(o.Size)/2, float64(o.Size)/2)
	} else {
		dc.DrawRectangle(0, 0, float64(o.Size), float64(o.Size))
	}
	dc.SetFillStyle(pattern(o.BackgroundGradient, o.Background, 0, 0, float64(o.Size), float64(o.Size)))
	dc.Fill()

	// Dots
	g.drawDots(dc, o.DotShape)
	sx, sy, side := g.symbolRect()
	dc.SetFillStyle(pattern(o.DotsGradient, o.Foreground, sx, sy, side, side))
	dc.Fill()

	// Finder patterns
	for _, f := range g.finders() {
		fx, fy := g.px(f[0], f[1])
		span := 7 * g.module

		drawCornerSquare(dc, o.CornerSquare.Shape, fx, fy, g.module)
		dc.SetFillStyle(pattern(o.CornerSquare.Gradient, o.CornerSquare.Color, fx, fy, span, span))
		dc.Fill()

		drawCornerDot(dc, o.CornerDot.Shape, fx+2*g.module, fy+2*g.module, g.module)
		dc.SetFillStyle(pattern(o.CornerDot.Gradient, o.CornerDot.Color, fx, fy, span, span))
		dc.Fill()
	}

	// Logo
	if o.Logo != nil && g.logoW > 0 {
		x, y, w, h := g.logoRect(o.LogoMargin)
		if w > 0 && h > 0 {
			fitted := fit(o.Logo, uint(w), uint(h))
			dc.DrawImageAnchored(fitted, int(x+w/2), int(y+h/2), 0.5, 0.5)
		}
	}

	return dc.Image(), nil
}

// Generate creates a code with the given options and returns it as PNG bytes.
func (o *Options) Generate() ([]byte, error) {
	img, err := o.Image()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (o *Options) layout() (*geometry, error) {
	if o.Size <= 0 {
		return nil, fmt.Errorf("invalid size %d", o.Size)
	}
	code, err := qrcode.New(o.Content, o.RecoveryLevel)
	if err != nil {
		return nil, err
	}
	code.DisableBorder = true

	aspect := 1.0
	if o.Logo != nil {
		b := o.Logo.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			aspect = float64(b.Dx()) / float64(b.Dy())
		}
	}
	hasLogo := o.Logo != nil && o.LogoScale > 0
	return newGeometry(code.Bitmap(), o.Size, o.QuietZone, o.Circle, hasLogo, o.LogoScale, aspect, o.HideBackgroundDots), nil
}

// fit scales img down (or up) to fit into w x h keeping its aspect ratio.
func fit(img image.Image, w, h uint) image.Image {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return img
	}
	if float64(b.Dx())/float64(b.Dy()) > float64(w)/float64(h) {
		return resize.Resize(w, 0, img, resize.Lanczos3)
	}
	return resize.Resize(0, h, img, resize.Lanczos3)
}

func pattern(g *Gradient, solid color.Color, x, y, w, h float64) gg.Pattern {
	if g == nil || len(g.Stops) < 2 {
		if solid == nil {
			solid = color.Transparent
		}
		return gg.NewSolidPattern(solid)
	}

	var grad gg.Gradient
	if g.Radial {
		cx, cy := x+w/2, y+h/2
		r := w / 2
		if h/2 > r {
			r = h / 2
		}
		grad = gg.NewRadialGradient(cx, cy, 0, cx, cy, r)
	} else {
		x0, y0, x1, y1 := linearEnds(g.Rotation, x, y, w, h)
		grad = gg.NewLinearGradient(x0, y0, x1, y1)
	}
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, s.Color)
	}
	return grad
}
