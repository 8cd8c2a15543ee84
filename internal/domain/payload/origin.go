package payload

import (
	"errors"
	"strings"
)

// FallbackOrigin is used when neither a configured nor a current origin is known.
const FallbackOrigin = "https://qr-studio.app"

var errNoOrigin = errors.New("no origin available")

// OriginResolver returns the scheme+host prefix redirect links are built on.
type OriginResolver interface {
	Origin() (string, error)
}

// OriginFunc adapts a function to OriginResolver.
type OriginFunc func() (string, error)

func (f OriginFunc) Origin() (string, error) {
	return f()
}

// OriginChain tries the configured deployment origin, then the origin of the
// current request, then Fallback. The first non-empty candidate wins.
type OriginChain struct {
	Configured string
	Current    string
	Fallback   string
}

// NewOriginChain returns a chain with FallbackOrigin as the last resort.
func NewOriginChain(configured, current string) OriginChain {
	return OriginChain{
		Configured: configured,
		Current:    current,
		Fallback:   FallbackOrigin,
	}
}

func (c OriginChain) Origin() (string, error) {
	for _, candidate := range []string{c.Configured, c.Current, c.Fallback} {
		candidate = strings.TrimRight(strings.TrimSpace(candidate), "/")
		if candidate != "" {
			return candidate, nil
		}
	}
	return "", errNoOrigin
}
