package styling

import (
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func partials() map[string]entity.StyleConfig {
	return map[string]entity.StyleConfig{
		"empty": {},
		"colors only": {
			Foreground: "#ff0000",
			Background: "#00ff00",
		},
		"logo without options": {
			Logo: "https://cdn.example.com/logo.png",
		},
		"logo with oversized options": {
			Logo:        "logo.png",
			LogoOptions: &entity.LogoOptions{ImageSize: ptr(0.6)},
		},
		"orphan logo options": {
			LogoOptions: &entity.LogoOptions{ImageSize: ptr(0.3)},
		},
		"corner styles partially set": {
			Foreground:   "#123456",
			CornerSquare: &entity.CornerSquareStyle{Shape: entity.CornerSquareDot},
			CornerDot:    &entity.CornerDotStyle{Color: "#abcdef"},
		},
		"tiny negative rotation": {
			DotsGradient: &entity.Gradient{
				Rotation: -1e-14,
				Stops: []entity.ColorStop{
					{Offset: 0, Color: "#000"},
					{Offset: 1, Color: "#fff"},
				},
			},
		},
		"messy gradient": {
			DotsGradient: &entity.Gradient{
				Rotation: -90,
				Stops: []entity.ColorStop{
					{Offset: 1.5, Color: "#000"},
					{Offset: -1, Color: "#fff"},
					{Offset: 0.5, Color: ""},
				},
			},
		},
		"single stop gradient": {
			BackgroundGradient: &entity.Gradient{
				Kind:  entity.GradientRadial,
				Stops: []entity.ColorStop{{Offset: 0, Color: "#fff"}},
			},
		},
		"unknown enums": {
			Level:      "X",
			DotShape:   "stars",
			Silhouette: "hexagon",
		},
	}
}

func TestNormalizeIsTotal(t *testing.T) {
	for name, partial := range partials() {
		t.Run(name, func(t *testing.T) {
			s := Normalize(partial)
			assert.NotEmpty(t, s.Foreground)
			assert.NotEmpty(t, s.Background)
			assert.Positive(t, s.Size)
			assert.True(t, s.Level.Valid())
			require.NotNil(t, s.IncludeMargin)
			assert.NotEmpty(t, s.DotShape)
			assert.NotEmpty(t, s.Silhouette)
			require.NotNil(t, s.CornerSquare)
			assert.NotEmpty(t, s.CornerSquare.Color)
			assert.NotEmpty(t, s.CornerSquare.Shape)
			require.NotNil(t, s.CornerDot)
			assert.NotEmpty(t, s.CornerDot.Color)
			assert.NotEmpty(t, s.CornerDot.Shape)

			if s.HasLogo() {
				require.NotNil(t, s.LogoOptions)
				assert.NotNil(t, s.LogoOptions.HideBackgroundDots)
				assert.NotNil(t, s.LogoOptions.ImageSize)
				assert.NotNil(t, s.LogoOptions.Margin)
			} else {
				assert.Nil(t, s.LogoOptions)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	for name, partial := range partials() {
		t.Run(name, func(t *testing.T) {
			once := Normalize(partial)
			assert.Equal(t, once, Normalize(once))
		})
	}
}

func TestNormalizeRotationStaysBelowFullTurn(t *testing.T) {
	for _, rotation := range []float64{-1e-14, -360, 360, 720.5} {
		s := Normalize(entity.StyleConfig{DotsGradient: &entity.Gradient{
			Rotation: rotation,
			Stops:    []entity.ColorStop{{Offset: 0, Color: "#000"}, {Offset: 1, Color: "#fff"}},
		}})
		require.NotNil(t, s.DotsGradient)
		assert.GreaterOrEqual(t, s.DotsGradient.Rotation, 0.0)
		assert.Less(t, s.DotsGradient.Rotation, 360.0)
	}
}

func TestNormalizeDoesNotMutateInput(t *testing.T) {
	in := entity.StyleConfig{
		Logo:        "logo.png",
		LogoOptions: &entity.LogoOptions{},
		DotsGradient: &entity.Gradient{Stops: []entity.ColorStop{
			{Offset: 1, Color: "#000"},
			{Offset: 0, Color: "#fff"},
		}},
	}
	Normalize(in)

	assert.Nil(t, in.LogoOptions.ImageSize)
	assert.Nil(t, in.CornerSquare)
	assert.Equal(t, 1.0, in.DotsGradient.Stops[0].Offset)
	assert.Empty(t, in.Foreground)
}

func TestNormalizeDefaults(t *testing.T) {
	s := Normalize(entity.StyleConfig{Foreground: "#123456", Logo: "logo.png"})

	assert.Equal(t, "#123456", s.CornerSquare.Color)
	assert.Equal(t, "#123456", s.CornerDot.Color)
	assert.Equal(t, entity.CornerSquareSquare, s.CornerSquare.Shape)
	assert.Equal(t, entity.CornerDotSquare, s.CornerDot.Shape)
	assert.Equal(t, entity.SilhouetteSquare, s.Silhouette)
	assert.Equal(t, entity.LevelMedium, s.Level)
	assert.True(t, *s.LogoOptions.HideBackgroundDots)
	assert.Equal(t, 0.2, *s.LogoOptions.ImageSize)
	assert.Equal(t, 0, *s.LogoOptions.Margin)
}

func TestNormalizeGradient(t *testing.T) {
	s := Normalize(partials()["messy gradient"])
	require.NotNil(t, s.DotsGradient)
	assert.Equal(t, entity.GradientLinear, s.DotsGradient.Kind)
	assert.Equal(t, 270.0, s.DotsGradient.Rotation)
	assert.Equal(t, []entity.ColorStop{{Offset: 0, Color: "#fff"}, {Offset: 1, Color: "#000"}}, s.DotsGradient.Stops)

	s = Normalize(partials()["single stop gradient"])
	assert.Nil(t, s.BackgroundGradient)
}

func TestResolveLevel(t *testing.T) {
	levels := []entity.ErrorCorrectionLevel{"", entity.LevelLow, entity.LevelMedium, entity.LevelQuartile, entity.LevelHigh}
	for _, requested := range levels {
		assert.Equal(t, entity.LevelHigh, ResolveLevel(requested, true, false))
		assert.Equal(t, entity.LevelHigh, ResolveLevel(requested, false, true))
		assert.Equal(t, entity.LevelHigh, ResolveLevel(requested, true, true))
	}
	assert.Equal(t, entity.LevelLow, ResolveLevel(entity.LevelLow, false, false))
	assert.Equal(t, entity.LevelQuartile, ResolveLevel(entity.LevelQuartile, false, false))
	assert.Equal(t, entity.LevelMedium, ResolveLevel("", false, false))
}

func TestAssembleClampsLogo(t *testing.T) {
	for _, size := range []float64{0.26, 0.5, 1, 10} {
		a := Assemble(entity.StyleConfig{
			Logo:        "logo.png",
			LogoOptions: &entity.LogoOptions{ImageSize: ptr(size)},
		}, "hello")
		assert.LessOrEqual(t, a.Options.LogoScale, MaxLogoSize)
	}

	a := Assemble(entity.StyleConfig{Logo: "logo.png", LogoOptions: &entity.LogoOptions{ImageSize: ptr(0.1)}}, "hello")
	assert.Equal(t, 0.1, a.Options.LogoScale)
}

func TestAssembleSurfacesLevelOverride(t *testing.T) {
	a := Assemble(entity.StyleConfig{Level: entity.LevelLow, Logo: "logo.png"}, "hello")
	assert.Equal(t, entity.LevelLow, a.Requested)
	assert.Equal(t, entity.LevelHigh, a.Level)
	assert.True(t, a.Overridden())
	assert.Equal(t, qrcode.Highest, a.Options.RecoveryLevel)
	assert.Equal(t, "logo.png", a.LogoRef)

	a = Assemble(entity.StyleConfig{Level: entity.LevelQuartile}, "hello")
	assert.False(t, a.Overridden())
	assert.Equal(t, qrcode.High, a.Options.RecoveryLevel)
	assert.Equal(t, QuietZoneModules, a.Options.QuietZone)
	assert.Equal(t, "hello", a.Options.Content)
}

func TestAssembleCircleHasNoQuietZone(t *testing.T) {
	a := Assemble(entity.StyleConfig{Silhouette: entity.SilhouetteCircle}, "hello")
	assert.True(t, a.Options.Circle)
	assert.Zero(t, a.Options.QuietZone)
}
