package studio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/colors"
)

var errStyleUsage = errors.New("invalid style command")

// applyStyle returns a copy of style with one setting changed.
func applyStyle(style entity.StyleConfig, key, value string) (entity.StyleConfig, error) {
	s := style.Clone()
	value = strings.TrimSpace(value)

	switch strings.ToLower(key) {
	case "fg":
		if _, ok := colors.Parse(value); !ok {
			return style, fmt.Errorf("%w: bad color %q", errStyleUsage, value)
		}
		s.Foreground = value
	case "bg":
		if _, ok := colors.Parse(value); !ok {
			return style, fmt.Errorf("%w: bad color %q", errStyleUsage, value)
		}
		s.Background = value
	case "dots":
		s.DotShape = entity.DotShape(value)
	case "corners":
		if s.CornerSquare == nil {
			s.CornerSquare = &entity.CornerSquareStyle{}
		}
		s.CornerSquare.Shape = entity.CornerSquareShape(value)
	case "cornerdots":
		if s.CornerDot == nil {
			s.CornerDot = &entity.CornerDotStyle{}
		}
		s.CornerDot.Shape = entity.CornerDotShape(value)
	case "level":
		level := entity.ErrorCorrectionLevel(strings.ToUpper(value))
		if !level.Valid() {
			return style, fmt.Errorf("%w: bad level %q", errStyleUsage, value)
		}
		s.Level = level
	case "shape":
		s.Silhouette = entity.Silhouette(value)
	case "margin":
		on := value == "on" || value == "true"
		s.IncludeMargin = &on
	case "size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 64 || size > 4096 {
			return style, fmt.Errorf("%w: bad size %q", errStyleUsage, value)
		}
		s.Size = size
	case "gradient":
		if value == "off" {
			s.DotsGradient = nil
			break
		}
		g, err := parseGradient(value)
		if err != nil {
			return style, err
		}
		s.DotsGradient = g
	default:
		return style, fmt.Errorf("%w: unknown key %q", errStyleUsage, key)
	}
	return s, nil
}

// parseGradient reads "<from> <to> [rotation|radial]".
func parseGradient(value string) (*entity.Gradient, error) {
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: gradient needs two colors", errStyleUsage)
	}
	for _, c := range parts[:2] {
		if _, ok := colors.Parse(c); !ok {
			return nil, fmt.Errorf("%w: bad color %q", errStyleUsage, c)
		}
	}
	g := &entity.Gradient{
		Kind: entity.GradientLinear,
		Stops: []entity.ColorStop{
			{Offset: 0, Color: parts[0]},
			{Offset: 1, Color: parts[1]},
		},
	}
	if len(parts) > 2 {
		if parts[2] == "radial" {
			g.Kind = entity.GradientRadial
		} else if rotation, err := strconv.ParseFloat(parts[2], 64); err == nil {
			g.Rotation = rotation
		}
	}
	return g, nil
}
