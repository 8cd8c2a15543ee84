package entity

// ErrorCorrectionLevel is a redundancy tier of the encoded symbol, in increasing order.
type ErrorCorrectionLevel string

const (
	LevelLow      ErrorCorrectionLevel = "L"
	LevelMedium   ErrorCorrectionLevel = "M"
	LevelQuartile ErrorCorrectionLevel = "Q"
	LevelHigh     ErrorCorrectionLevel = "H"
)

// Rank returns the position of the level in increasing redundancy order, -1 for unknown levels.
func (l ErrorCorrectionLevel) Rank() int {
	switch l {
	case LevelLow:
		return 0
	case LevelMedium:
		return 1
	case LevelQuartile:
		return 2
	case LevelHigh:
		return 3
	default:
		return -1
	}
}

func (l ErrorCorrectionLevel) Valid() bool {
	return l.Rank() >= 0
}

type DotShape string

const (
	DotSquare        DotShape = "square"
	DotDots          DotShape = "dots"
	DotRounded       DotShape = "rounded"
	DotExtraRounded  DotShape = "extra-rounded"
	DotClassy        DotShape = "classy"
	DotClassyRounded DotShape = "classy-rounded"
)

type CornerSquareShape string

const (
	CornerSquareSquare       CornerSquareShape = "square"
	CornerSquareDot          CornerSquareShape = "dot"
	CornerSquareExtraRounded CornerSquareShape = "extra-rounded"
)

type CornerDotShape string

const (
	CornerDotSquare CornerDotShape = "square"
	CornerDotDot    CornerDotShape = "dot"
)

type Silhouette string

const (
	SilhouetteSquare Silhouette = "square"
	SilhouetteCircle Silhouette = "circle"
)

type GradientKind string

const (
	GradientLinear GradientKind = "linear"
	GradientRadial GradientKind = "radial"
)

// ColorStop is a point of a gradient, Offset is in [0,1].
type ColorStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

type Gradient struct {
	Kind GradientKind `json:"type"`
	// Rotation in degrees, used by linear gradients only.
	Rotation float64     `json:"rotation"`
	Stops    []ColorStop `json:"colorStops"`
}

func (g *Gradient) Clone() *Gradient {
	if g == nil {
		return nil
	}
	c := *g
	c.Stops = append([]ColorStop(nil), g.Stops...)
	return &c
}

type LogoOptions struct {
	HideBackgroundDots *bool    `json:"hideBackgroundDots,omitempty"`
	ImageSize          *float64 `json:"imageSize,omitempty"`
	Margin             *int     `json:"margin,omitempty"`
}

type CornerSquareStyle struct {
	Color    string            `json:"color,omitempty"`
	Shape    CornerSquareShape `json:"type,omitempty"`
	Gradient *Gradient         `json:"gradient,omitempty"`
}

type CornerDotStyle struct {
	Color    string         `json:"color,omitempty"`
	Shape    CornerDotShape `json:"type,omitempty"`
	Gradient *Gradient      `json:"gradient,omitempty"`
}

// StyleConfig describes how a code looks. Optional parts are nil when unset,
// which is also what a partial (not yet normalized) config looks like.
type StyleConfig struct {
	Foreground         string               `json:"fgColor,omitempty"`
	Background         string               `json:"bgColor,omitempty"`
	Size               int                  `json:"size,omitempty"`
	Level              ErrorCorrectionLevel `json:"level,omitempty"`
	IncludeMargin      *bool                `json:"includeMargin,omitempty"`
	DotShape           DotShape             `json:"dotsType,omitempty"`
	Logo               string               `json:"logoImage,omitempty"`
	LogoOptions        *LogoOptions         `json:"logoOptions,omitempty"`
	CornerSquare       *CornerSquareStyle   `json:"cornersSquareOptions,omitempty"`
	CornerDot          *CornerDotStyle      `json:"cornersDotOptions,omitempty"`
	Silhouette         Silhouette           `json:"shape,omitempty"`
	DotsGradient       *Gradient            `json:"dotsGradient,omitempty"`
	BackgroundGradient *Gradient            `json:"backgroundGradient,omitempty"`
}

// HasLogo reports whether an embedded logo is configured.
func (s StyleConfig) HasLogo() bool {
	return s.Logo != ""
}

// HasGradient reports whether any layer of the code is drawn with a gradient.
func (s StyleConfig) HasGradient() bool {
	if s.DotsGradient != nil || s.BackgroundGradient != nil {
		return true
	}
	if s.CornerSquare != nil && s.CornerSquare.Gradient != nil {
		return true
	}
	return s.CornerDot != nil && s.CornerDot.Gradient != nil
}

// Clone returns a deep copy so that callers can never observe in-place mutation.
func (s StyleConfig) Clone() StyleConfig {
	c := s
	if s.IncludeMargin != nil {
		v := *s.IncludeMargin
		c.IncludeMargin = &v
	}
	if s.LogoOptions != nil {
		lo := LogoOptions{}
		if s.LogoOptions.HideBackgroundDots != nil {
			v := *s.LogoOptions.HideBackgroundDots
			lo.HideBackgroundDots = &v
		}
		if s.LogoOptions.ImageSize != nil {
			v := *s.LogoOptions.ImageSize
			lo.ImageSize = &v
		}
		if s.LogoOptions.Margin != nil {
			v := *s.LogoOptions.Margin
			lo.Margin = &v
		}
		c.LogoOptions = &lo
	}
	if s.CornerSquare != nil {
		cs := *s.CornerSquare
		cs.Gradient = s.CornerSquare.Gradient.Clone()
		c.CornerSquare = &cs
	}
	if s.CornerDot != nil {
		cd := *s.CornerDot
		cd.Gradient = s.CornerDot.Gradient.Clone()
		c.CornerDot = &cd
	}
	c.DotsGradient = s.DotsGradient.Clone()
	c.BackgroundGradient = s.BackgroundGradient.Clone()
	return c
}
