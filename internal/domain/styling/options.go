package styling

import (
	"image/color"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/colors"
	qr "github.com/Badsnus/qr-studio/pkg/qrcode"
	"github.com/skip2/go-qrcode"
)

// QuietZoneModules is the margin drawn around the symbol when the margin flag is set.
const QuietZoneModules = 4

// Assembled is what the renderer receives plus what the policy layer decided.
type Assembled struct {
	Options qr.Options
	// LogoRef is the logo image reference; the caller loads it into Options.Logo.
	LogoRef string
	// Requested is the level stored in the style, Level the one in effect.
	Requested entity.ErrorCorrectionLevel
	Level     entity.ErrorCorrectionLevel
}

// Overridden reports whether the policy replaced the requested level.
func (a Assembled) Overridden() bool {
	return a.Requested != a.Level
}

// Assemble normalizes the style and turns it into renderer options for payload.
// The logo size ceiling is enforced here regardless of what the style stores.
func Assemble(style entity.StyleConfig, payload string) Assembled {
	s := Normalize(style)
	level := ResolveLevel(s.Level, s.HasLogo(), s.HasGradient())

	fg := colors.Or(s.Foreground, color.RGBA{A: 255})
	opts := qr.Options{
		Content:            payload,
		Size:               s.Size,
		RecoveryLevel:      recoveryLevel(level),
		Background:         colors.Or(s.Background, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		Foreground:         fg,
		BackgroundGradient: gradient(s.BackgroundGradient),
		DotsGradient:       gradient(s.DotsGradient),
		DotShape:           qr.DotShape(s.DotShape),
		CornerSquare: qr.Corner{
			Shape:    qr.CornerShape(s.CornerSquare.Shape),
			Color:    colors.Or(s.CornerSquare.Color, fg),
			Gradient: gradient(s.CornerSquare.Gradient),
		},
		CornerDot: qr.Corner{
			Shape:    qr.CornerShape(s.CornerDot.Shape),
			Color:    colors.Or(s.CornerDot.Color, fg),
			Gradient: gradient(s.CornerDot.Gradient),
		},
		Circle: s.Silhouette == entity.SilhouetteCircle,
	}
	if *s.IncludeMargin && !opts.Circle {
		opts.QuietZone = QuietZoneModules
	}
	if s.LogoOptions != nil {
		opts.LogoScale = ClampLogoSize(*s.LogoOptions.ImageSize)
		opts.LogoMargin = *s.LogoOptions.Margin
		opts.HideBackgroundDots = *s.LogoOptions.HideBackgroundDots
	}

	return Assembled{
		Options:   opts,
		LogoRef:   s.Logo,
		Requested: s.Level,
		Level:     level,
	}
}

func recoveryLevel(l entity.ErrorCorrectionLevel) qrcode.RecoveryLevel {
	switch l {
	case entity.LevelLow:
		return qrcode.Low
	case entity.LevelQuartile:
		return qrcode.High
	case entity.LevelHigh:
		return qrcode.Highest
	default:
		return qrcode.Medium
	}
}

func gradient(g *entity.Gradient) *qr.Gradient {
	if g == nil {
		return nil
	}
	out := &qr.Gradient{
		Radial:   g.Kind == entity.GradientRadial,
		Rotation: g.Rotation,
		Stops:    make([]qr.Stop, 0, len(g.Stops)),
	}
	for _, s := range g.Stops {
		out.Stops = append(out.Stops, qr.Stop{
			Offset: s.Offset,
			Color:  colors.Or(s.Color, color.RGBA{A: 255}),
		})
	}
	return out
}
