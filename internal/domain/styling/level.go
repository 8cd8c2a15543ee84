package styling

import "github.com/Badsnus/qr-studio/internal/domain/entity"

// MaxLogoSize is the largest share of the code area a logo may cover.
const MaxLogoSize = 0.25

// ResolveLevel returns the error-correction level actually used. Logos and
// gradients hide or recolor modules, so either forces the highest tier.
func ResolveLevel(requested entity.ErrorCorrectionLevel, hasLogo, hasAnyGradient bool) entity.ErrorCorrectionLevel {
	if hasLogo || hasAnyGradient {
		return entity.LevelHigh
	}
	if !requested.Valid() {
		return DefaultLevel
	}
	return requested
}

// ClampLogoSize caps a relative logo size at MaxLogoSize.
func ClampLogoSize(size float64) float64 {
	if size > MaxLogoSize {
		return MaxLogoSize
	}
	if size < 0 {
		return 0
	}
	return size
}
