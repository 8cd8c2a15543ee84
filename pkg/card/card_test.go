package card

import (
	"image"
	"image/color"
	"image/draw"
	"testing"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return img
}

func template(pos entity.QRPosition) entity.CardTemplate {
	t := entity.DefaultTemplate()
	t.QRPosition = pos
	t.Shadow = entity.ShadowNone
	t.Title = "Grand opening"
	t.Subtitle = "Scan for the menu"
	t.Fields = []entity.CustomField{
		{ID: "1", Content: entity.LabelField{Text: "NEW"}, Style: entity.FieldStyle{Background: "#fde68a", Radius: 4, Padding: 4}},
		{ID: "2", Content: entity.DividerField{}},
		{ID: "3", Content: entity.DateField{}},
		{ID: "4", Content: entity.TextField{Text: "spaced"}, Style: entity.FieldStyle{LetterSpacing: 2}},
		{ID: "5", Content: entity.LogoField{Image: "logo"}},
	}
	t.CTA = &entity.CallToAction{Text: "Order now", Radius: 8}
	return t
}

func compose(t entity.CardTemplate, code image.Image) layout.Composition {
	b := code.Bounds()
	return layout.Layout(t, layout.CodeBlock{Width: float64(b.Dx()), Height: float64(b.Dy())}, layout.Options{
		Now: func() time.Time { return time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC) },
	})
}

func dark(c color.Color) bool {
	r, g, b, a := c.RGBA()
	return a > 0xf000 && r < 0x1000 && g < 0x1000 && b < 0x1000
}

func TestVerticalCard(t *testing.T) {
	code := solid(100, 100, color.Black)
	card := &Frame{
		Composition: compose(template(entity.PositionTop), code),
		Code:        code,
		Scale:       1,
		Images:      Images{"logo": solid(10, 10, color.RGBA{R: 255, A: 255})},
		Watermark:   "qr-studio",
	}
	img, err := card.Image()
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, 248, b.Dx())
	assert.GreaterOrEqual(t, b.Dy(), 310)

	// code sits centered at the top
	assert.True(t, dark(img.At(24+50+50, 24+50)))
	// rounded corner is cut out
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
}

func TestHorizontalCard(t *testing.T) {
	code := solid(100, 100, color.Black)
	for _, pos := range []entity.QRPosition{entity.PositionLeft, entity.PositionRight} {
		t.Run(string(pos), func(t *testing.T) {
			card := &Frame{Composition: compose(template(pos), code), Code: code, Scale: 1}
			img, err := card.Image()
			require.NoError(t, err)
			assert.Equal(t, 24+100+24+200+24, img.Bounds().Dx())
		})
	}
}

func TestScaleDoublesOutput(t *testing.T) {
	tpl := template(entity.PositionCenter)
	tpl.Decorative = entity.DecorGeometric
	tpl.BackgroundGradient = &entity.BackgroundGradient{From: "#111827", To: "#4f46e5", Direction: entity.ToBottomRight}
	tpl.Border = &entity.Border{Color: "#000", Width: 2}

	one, err := (&Frame{Composition: compose(tpl, solid(100, 100, color.Black)), Code: solid(100, 100, color.Black), Scale: 1}).Image()
	require.NoError(t, err)
	two, err := (&Frame{Composition: compose(tpl, solid(100, 100, color.Black)), Code: solid(200, 200, color.Black), Scale: 2}).Image()
	require.NoError(t, err)

	assert.Equal(t, one.Bounds().Dx()*2, two.Bounds().Dx())
}

func TestCardRequiresCode(t *testing.T) {
	_, err := (&Frame{}).Image()
	assert.Error(t, err)
}

func TestMissingImageIsSkipped(t *testing.T) {
	code := solid(50, 50, color.Black)
	card := &Frame{Composition: compose(template(entity.PositionBottom), code), Code: code, Images: Images{}}
	_, err := card.Image()
	assert.NoError(t, err)
}

func TestStamp(t *testing.T) {
	white := solid(200, 200, color.White)

	assert.Equal(t, white, Stamp(white, "", 1))

	stamped := Stamp(white, "qr-studio", 1)
	require.Equal(t, white.Bounds(), stamped.Bounds())

	inked := false
	for y := 150; y < 200 && !inked; y++ {
		for x := 100; x < 200; x++ {
			if r, _, _, _ := stamped.At(x, y).RGBA(); r < 0xffff {
				inked = true
				break
			}
		}
	}
	assert.True(t, inked, "watermark is drawn in the bottom-right corner")

	r, _, _, _ := stamped.At(10, 10).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}
