package studio

import (
	"testing"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStyle(t *testing.T) {
	base := entity.StyleConfig{Foreground: "#000000", Background: "#ffffff", Level: entity.ErrorCorrectionLevel("M")}

	tests := []struct {
		key, value string
		check      func(t *testing.T, s entity.StyleConfig)
	}{
		{"fg", "#ff0000", func(t *testing.T, s entity.StyleConfig) { assert.Equal(t, "#ff0000", s.Foreground) }},
		{"bg", "#00ff00", func(t *testing.T, s entity.StyleConfig) { assert.Equal(t, "#00ff00", s.Background) }},
		{"dots", "rounded", func(t *testing.T, s entity.StyleConfig) { assert.Equal(t, entity.DotShape("rounded"), s.DotShape) }},
		{"corners", "dot", func(t *testing.T, s entity.StyleConfig) {
			require.NotNil(t, s.CornerSquare)
			assert.Equal(t, entity.CornerSquareShape("dot"), s.CornerSquare.Shape)
		}},
		{"cornerdots", "square", func(t *testing.T, s entity.StyleConfig) {
			require.NotNil(t, s.CornerDot)
			assert.Equal(t, entity.CornerDotShape("square"), s.CornerDot.Shape)
		}},
		{"level", "h", func(t *testing.T, s entity.StyleConfig) { assert.Equal(t, entity.ErrorCorrectionLevel("H"), s.Level) }},
		{"margin", "off", func(t *testing.T, s entity.StyleConfig) {
			require.NotNil(t, s.IncludeMargin)
			assert.False(t, *s.IncludeMargin)
		}},
		{"size", "512", func(t *testing.T, s entity.StyleConfig) { assert.Equal(t, 512, s.Size) }},
		{"gradient", "#ff0000 #0000ff 45", func(t *testing.T, s entity.StyleConfig) {
			require.NotNil(t, s.DotsGradient)
			assert.Equal(t, entity.GradientLinear, s.DotsGradient.Kind)
			assert.Equal(t, 45.0, s.DotsGradient.Rotation)
			require.Len(t, s.DotsGradient.Stops, 2)
			assert.Equal(t, "#0000ff", s.DotsGradient.Stops[1].Color)
		}},
		{"gradient", "#ff0000 #0000ff radial", func(t *testing.T, s entity.StyleConfig) {
			require.NotNil(t, s.DotsGradient)
			assert.Equal(t, entity.GradientRadial, s.DotsGradient.Kind)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key+" "+tt.value, func(t *testing.T) {
			s, err := applyStyle(base, tt.key, tt.value)
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestApplyStyleRejects(t *testing.T) {
	base := entity.StyleConfig{Foreground: "#000000"}

	for _, tt := range []struct{ key, value string }{
		{"fg", "not-a-color"},
		{"level", "Z"},
		{"size", "10"},
		{"size", "abc"},
		{"gradient", "#ff0000"},
		{"unknown", "x"},
	} {
		s, err := applyStyle(base, tt.key, tt.value)
		assert.ErrorIs(t, err, errStyleUsage, tt.key)
		assert.Equal(t, base, s)
	}
}

func TestApplyStyleDoesNotMutateInput(t *testing.T) {
	base := entity.StyleConfig{CornerSquare: &entity.CornerSquareStyle{Shape: "square"}}

	_, err := applyStyle(base, "corners", "dot")
	require.NoError(t, err)
	assert.Equal(t, entity.CornerSquareShape("square"), base.CornerSquare.Shape)

	s, err := applyStyle(entity.StyleConfig{DotsGradient: &entity.Gradient{}}, "gradient", "off")
	require.NoError(t, err)
	assert.Nil(t, s.DotsGradient)
}
