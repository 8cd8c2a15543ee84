package layout

import (
	"image/color"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/colors"
)

// Overlay returns the decorative background layer for style. It depends on
// nothing but the style and the accent color and never touches content layout.
func Overlay(style entity.DecorativeStyle, accent color.RGBA) []Shape {
	switch style {
	case entity.DecorCircles:
		return circles(accent)
	case entity.DecorDots:
		return dots(accent)
	case entity.DecorLines:
		return lines(accent)
	case entity.DecorGeometric:
		return geometric(accent)
	case entity.DecorGrid:
		return grid(accent)
	default:
		return nil
	}
}

func circles(accent color.RGBA) []Shape {
	return []Shape{
		{Kind: ShapeCircle, X: 1, Y: 0, R: 0.35, Color: colors.WithOpacity(accent, 0.12)},
		{Kind: ShapeCircle, X: 0, Y: 1, R: 0.28, Color: colors.WithOpacity(accent, 0.10)},
		{Kind: ShapeCircle, X: 0.88, Y: 0.92, R: 0.1, Color: colors.WithOpacity(accent, 0.08)},
	}
}

func dots(accent color.RGBA) []Shape {
	c := colors.WithOpacity(accent, 0.15)
	var out []Shape
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			out = append(out, Shape{
				Kind:  ShapeCircle,
				X:     0.72 + float64(col)*0.06,
				Y:     0.04 + float64(row)*0.045,
				R:     0.008,
				Color: c,
			})
		}
	}
	return out
}

func lines(accent color.RGBA) []Shape {
	c := colors.WithOpacity(accent, 0.1)
	var out []Shape
	for i := 0; i < 8; i++ {
		start := -0.5 + float64(i)*0.2
		out = append(out, Shape{Kind: ShapeLine, X: start, Y: 0, X2: start + 1, Y2: 1, Stroke: 2, Color: c})
	}
	return out
}

func geometric(accent color.RGBA) []Shape {
	return []Shape{
		{Kind: ShapeRect, X: 0.78, Y: -0.06, W: 0.3, H: 0.3, Rotation: 45, Color: colors.WithOpacity(accent, 0.12)},
		{Kind: ShapeRect, X: -0.08, Y: 0.82, W: 0.22, H: 0.22, Rotation: 30, Color: colors.WithOpacity(accent, 0.1)},
		{Kind: ShapeRect, X: 0.06, Y: 0.06, W: 0.08, H: 0.08, Rotation: 15, Stroke: 2, Color: colors.WithOpacity(accent, 0.2)},
	}
}

func grid(accent color.RGBA) []Shape {
	c := colors.WithOpacity(accent, 0.08)
	var out []Shape
	for i := 1; i < 10; i++ {
		p := float64(i) / 10
		out = append(out,
			Shape{Kind: ShapeLine, X: p, Y: 0, X2: p, Y2: 1, Stroke: 1, Color: c},
			Shape{Kind: ShapeLine, X: 0, Y: p, X2: 1, Y2: p, Stroke: 1, Color: c},
		)
	}
	return out
}
