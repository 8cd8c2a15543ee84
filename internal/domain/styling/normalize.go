package styling

import (
	"math"
	"sort"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

const (
	DefaultForeground = "#000000"
	DefaultBackground = "#ffffff"
	DefaultSize       = 300
	DefaultLevel      = entity.LevelMedium

	DefaultLogoSize   = 0.2
	DefaultLogoMargin = 0
)

// Normalize fills every unset part of a partial style with its default and
// returns a new, render-ready record. The input is never modified and
// Normalize(Normalize(s)) equals Normalize(s).
func Normalize(partial entity.StyleConfig) entity.StyleConfig {
	s := partial.Clone()

	if s.Foreground == "" {
		s.Foreground = DefaultForeground
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	if s.Size <= 0 {
		s.Size = DefaultSize
	}
	if !s.Level.Valid() {
		s.Level = DefaultLevel
	}
	if s.IncludeMargin == nil {
		margin := true
		s.IncludeMargin = &margin
	}
	switch s.DotShape {
	case entity.DotSquare, entity.DotDots, entity.DotRounded, entity.DotExtraRounded,
		entity.DotClassy, entity.DotClassyRounded:
	default:
		s.DotShape = entity.DotSquare
	}
	if s.Silhouette != entity.SilhouetteCircle {
		s.Silhouette = entity.SilhouetteSquare
	}

	s.CornerSquare = normalizeCornerSquare(s.CornerSquare, s.Foreground)
	s.CornerDot = normalizeCornerDot(s.CornerDot, s.Foreground)
	s.LogoOptions = normalizeLogo(s.Logo, s.LogoOptions)
	s.DotsGradient = normalizeGradient(s.DotsGradient)
	s.BackgroundGradient = normalizeGradient(s.BackgroundGradient)

	return s
}

func normalizeCornerSquare(c *entity.CornerSquareStyle, fg string) *entity.CornerSquareStyle {
	if c == nil {
		c = &entity.CornerSquareStyle{}
	}
	if c.Color == "" {
		c.Color = fg
	}
	switch c.Shape {
	case entity.CornerSquareSquare, entity.CornerSquareDot, entity.CornerSquareExtraRounded:
	default:
		c.Shape = entity.CornerSquareSquare
	}
	c.Gradient = normalizeGradient(c.Gradient)
	return c
}

func normalizeCornerDot(c *entity.CornerDotStyle, fg string) *entity.CornerDotStyle {
	if c == nil {
		c = &entity.CornerDotStyle{}
	}
	if c.Color == "" {
		c.Color = fg
	}
	if c.Shape != entity.CornerDotDot {
		c.Shape = entity.CornerDotSquare
	}
	c.Gradient = normalizeGradient(c.Gradient)
	return c
}

func normalizeLogo(logo string, opts *entity.LogoOptions) *entity.LogoOptions {
	if logo == "" {
		return nil
	}
	if opts == nil {
		opts = &entity.LogoOptions{}
	}
	if opts.HideBackgroundDots == nil {
		hide := true
		opts.HideBackgroundDots = &hide
	}
	if opts.ImageSize == nil || *opts.ImageSize <= 0 || math.IsNaN(*opts.ImageSize) {
		size := DefaultLogoSize
		opts.ImageSize = &size
	}
	if opts.Margin == nil || *opts.Margin < 0 {
		margin := DefaultLogoMargin
		opts.Margin = &margin
	}
	return opts
}

// normalizeGradient sorts stops, clamps offsets into [0,1] and drops
// gradients that cannot be drawn.
func normalizeGradient(g *entity.Gradient) *entity.Gradient {
	if g == nil {
		return nil
	}
	stops := make([]entity.ColorStop, 0, len(g.Stops))
	for _, s := range g.Stops {
		if s.Color == "" || math.IsNaN(s.Offset) {
			continue
		}
		s.Offset = math.Min(1, math.Max(0, s.Offset))
		stops = append(stops, s)
	}
	if len(stops) < 2 {
		return nil
	}
	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Offset < stops[j].Offset })
	g.Stops = stops

	if g.Kind != entity.GradientRadial {
		g.Kind = entity.GradientLinear
		g.Rotation = math.Mod(g.Rotation, 360)
		if g.Rotation < 0 {
			g.Rotation += 360
		}
		// tiny negative angles round up to 360 above
		if g.Rotation >= 360 {
			g.Rotation = 0
		}
		if math.IsNaN(g.Rotation) || math.IsInf(g.Rotation, 0) {
			g.Rotation = 0
		}
	} else {
		g.Rotation = 0
	}
	return g
}
