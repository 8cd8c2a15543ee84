package colors

import (
	"image/color"
	"strconv"
	"strings"
)

var named = map[string]color.RGBA{
	"black":       {A: 255},
	"white":       {R: 255, G: 255, B: 255, A: 255},
	"transparent": {},
	"red":         {R: 255, A: 255},
	"green":       {G: 128, A: 255},
	"blue":        {B: 255, A: 255},
	"gray":        {R: 128, G: 128, B: 128, A: 255},
	"grey":        {R: 128, G: 128, B: 128, A: 255},
}

// Parse converts a CSS-like hex color (#rgb, #rgba, #rrggbb, #rrggbbaa) or one
// of a few names into RGBA. The second value is false when s is not a color.
func Parse(s string) (color.RGBA, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, true
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, false
	}
	hex := s[1:]
	switch len(hex) {
	case 3, 4:
		var expanded strings.Builder
		for _, r := range hex {
			expanded.WriteRune(r)
			expanded.WriteRune(r)
		}
		hex = expanded.String()
	case 6, 8:
	default:
		return color.RGBA{}, false
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, true
}

// Or parses s and falls back to def when s is empty or malformed.
func Or(s string, def color.RGBA) color.RGBA {
	if c, ok := Parse(s); ok {
		return c
	}
	return def
}

// WithOpacity scales the alpha channel by opacity in [0,1].
// Channels are premultiplied, so color channels are scaled as well.
func WithOpacity(c color.RGBA, opacity float64) color.RGBA {
	if opacity >= 1 {
		return c
	}
	if opacity <= 0 {
		return color.RGBA{}
	}
	return color.RGBA{
		R: uint8(float64(c.R) * opacity),
		G: uint8(float64(c.G) * opacity),
		B: uint8(float64(c.B) * opacity),
		A: uint8(float64(c.A) * opacity),
	}
}

// Hex formats c as #rrggbb, or #rrggbbaa when not fully opaque.
func Hex(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0xffff {
		return "#" + byteHex(r>>8) + byteHex(g>>8) + byteHex(b>>8)
	}
	if a == 0 {
		return "#00000000"
	}
	// un-premultiply
	r = r * 0xffff / a
	g = g * 0xffff / a
	b = b * 0xffff / a
	return "#" + byteHex(r>>8) + byteHex(g>>8) + byteHex(b>>8) + byteHex(a>>8)
}

func byteHex(v uint32) string {
	s := strconv.FormatUint(uint64(v&0xff), 16)
	if len(s) == 1 {
		return "0" + s
	}
	return s
}
