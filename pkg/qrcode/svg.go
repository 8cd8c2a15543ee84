package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"strings"
)

// pathRecorder records pen operations as SVG path data.
type pathRecorder struct {
	commands []string
}

func (r *pathRecorder) MoveTo(x, y float64) {
	r.commands = append(r.commands, fmt.Sprintf("M%.2f %.2f", x, y))
}

func (r *pathRecorder) LineTo(x, y float64) {
	r.commands = append(r.commands, fmt.Sprintf("L%.2f %.2f", x, y))
}

func (r *pathRecorder) QuadraticTo(x1, y1, x2, y2 float64) {
	r.commands = append(r.commands, fmt.Sprintf("Q%.2f %.2f %.2f %.2f", x1, y1, x2, y2))
}

func (r *pathRecorder) ClosePath() {
	r.commands = append(r.commands, "Z")
}

func (r *pathRecorder) DrawCircle(cx, cy, radius float64) {
	r.commands = append(r.commands,
		fmt.Sprintf("M%.2f %.2f A%.2f %.2f 0 1 1 %.2f %.2f A%.2f %.2f 0 1 1 %.2f %.2f Z",
			cx+radius, cy, radius, radius, cx-radius, cy, radius, radius, cx+radius, cy))
}

func (r *pathRecorder) DrawRectangle(x, y, w, h float64) {
	r.commands = append(r.commands,
		fmt.Sprintf("M%.2f %.2f L%.2f %.2f L%.2f %.2f L%.2f %.2f Z", x, y, x+w, y, x+w, y+h, x, y+h))
}

func (r *pathRecorder) take() string {
	d := strings.Join(r.commands, " ")
	r.commands = nil
	return d
}

type svgWriter struct {
	defs   strings.Builder
	body   strings.Builder
	nextID int
}

// paint returns the fill attribute value, registering a gradient definition when needed.
func (w *svgWriter) paint(g *Gradient, solid color.Color, x, y, width, height float64) string {
	if g == nil || len(g.Stops) < 2 {
		if solid == nil {
			return "none"
		}
		return svgColor(solid)
	}
	w.nextID++
	id := fmt.Sprintf("g%d", w.nextID)
	if g.Radial {
		r := width / 2
		if height/2 > r {
			r = height / 2
		}
		fmt.Fprintf(&w.defs, `<radialGradient id="%s" gradientUnits="userSpaceOnUse" cx="%.2f" cy="%.2f" r="%.2f">`,
			id, x+width/2, y+height/2, r)
		writeStops(&w.defs, g.Stops)
		w.defs.WriteString(`</radialGradient>`)
	} else {
		x0, y0, x1, y1 := linearEnds(g.Rotation, x, y, width, height)
		fmt.Fprintf(&w.defs, `<linearGradient id="%s" gradientUnits="userSpaceOnUse" x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f">`,
			id, x0, y0, x1, y1)
		writeStops(&w.defs, g.Stops)
		w.defs.WriteString(`</linearGradient>`)
	}
	return fmt.Sprintf("url(#%s)", id)
}

func writeStops(b *strings.Builder, stops []Stop) {
	for _, s := range stops {
		r, g, bl, a := s.Color.RGBA()
		if a == 0 {
			fmt.Fprintf(b, `<stop offset="%.4f" stop-color="#000000" stop-opacity="0"/>`, s.Offset)
			continue
		}
		fmt.Fprintf(b, `<stop offset="%.4f" stop-color="#%02x%02x%02x" stop-opacity="%.3f"/>`,
			s.Offset, uint8(r*0xffff/a>>8), uint8(g*0xffff/a>>8), uint8(bl*0xffff/a>>8), float64(a)/0xffff)
	}
}

func (w *svgWriter) path(d, fill string) {
	if d == "" {
		return
	}
	fmt.Fprintf(&w.body, `<path fill-rule="evenodd" fill="%s" d="%s"/>`, fill, d)
}

// SVG renders the code as a standalone SVG document.
func (o *Options) SVG() ([]byte, error) {
	g, err := o.layout()
	if err != nil {
		return nil, err
	}

	size := float64(o.Size)
	w := &svgWriter{}
	rec := &pathRecorder{}

	bg := w.paint(o.BackgroundGradient, o.Background, 0, 0, size, size)
	if g.circle {
		rec.DrawCircle(size/2, size/2, size/2)
	} else {
		rec.DrawRectangle(0, 0, size, size)
	}
	w.path(rec.take(), bg)

	g.drawDots(rec, o.DotShape)
	sx, sy, side := g.symbolRect()
	w.path(rec.take(), w.paint(o.DotsGradient, o.Foreground, sx, sy, side, side))

	for _, f := range g.finders() {
		fx, fy := g.px(f[0], f[1])
		span := 7 * g.module

		drawCornerSquare(rec, o.CornerSquare.Shape, fx, fy, g.module)
		w.path(rec.take(), w.paint(o.CornerSquare.Gradient, o.CornerSquare.Color, fx, fy, span, span))

		drawCornerDot(rec, o.CornerDot.Shape, fx+2*g.module, fy+2*g.module, g.module)
		w.path(rec.take(), w.paint(o.CornerDot.Gradient, o.CornerDot.Color, fx, fy, span, span))
	}

	if o.Logo != nil && g.logoW > 0 {
		x, y, lw, lh := g.logoRect(o.LogoMargin)
		if lw > 0 && lh > 0 {
			var buf bytes.Buffer
			if err = png.Encode(&buf, fit(o.Logo, uint(lw), uint(lh))); err != nil {
				return nil, err
			}
			fmt.Fprintf(&w.body, `<image x="%.2f" y="%.2f" width="%.2f" height="%.2f" preserveAspectRatio="xMidYMid meet" href="data:image/png;base64,%s"/>`,
				x, y, lw, lh, base64.StdEncoding.EncodeToString(buf.Bytes()))
		}
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, o.Size, o.Size, o.Size, o.Size)
	if w.defs.Len() > 0 {
		out.WriteString("<defs>")
		out.WriteString(w.defs.String())
		out.WriteString("</defs>")
	}
	out.WriteString(w.body.String())
	out.WriteString("</svg>")
	return out.Bytes(), nil
}

func svgColor(c color.Color) string {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "none"
	}
	if a == 0xffff {
		return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r*0xffff/a>>8, g*0xffff/a>>8, b*0xffff/a>>8, float64(a)/0xffff)
}
