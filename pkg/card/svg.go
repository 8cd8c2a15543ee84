package card

import (
	"bytes"
	"fmt"
	"html"
)

// StampSVG adds the watermark text to an SVG document of the given side,
// at the same spot Stamp uses for bitmaps. svg is returned as is when text is empty.
func StampSVG(svg []byte, text string, size int) []byte {
	end := bytes.LastIndex(svg, []byte("</svg>"))
	if text == "" || end < 0 {
		return svg
	}
	side := float64(size)

	var out bytes.Buffer
	out.Write(svg[:end])
	fmt.Fprintf(&out, `<text x="%.2f" y="%.2f" text-anchor="end" font-family="sans-serif" font-size="11" fill="rgb(60,60,60)" fill-opacity="0.59">%s</text>`,
		side-8, side-8, html.EscapeString(text))
	out.Write(svg[end:])
	return out.Bytes()
}
