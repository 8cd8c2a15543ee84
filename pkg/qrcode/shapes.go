package qr

// pen is the path-building subset shared by gg.Context and the SVG recorder.
type pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(x1, y1, x2, y2 float64)
	ClosePath()
	DrawCircle(x, y, r float64)
	DrawRectangle(x, y, w, h float64)
}

type neighbours struct {
	top, right, bottom, left bool
}

func drawDot(p pen, shape DotShape, x, y, s float64, n neighbours) {
	switch shape {
	case DotDots:
		p.DrawCircle(x+s/2, y+s/2, s/2)
	case DotRounded:
		r := s * 0.3
		roundedRect(p, x, y, s, s, free(r, n.top, n.left), free(r, n.top, n.right), free(r, n.bottom, n.right), free(r, n.bottom, n.left))
	case DotExtraRounded:
		r := s / 2
		roundedRect(p, x, y, s, s, free(r, n.top, n.left), free(r, n.top, n.right), free(r, n.bottom, n.right), free(r, n.bottom, n.left))
	case DotClassy:
		r := s / 2
		roundedRect(p, x, y, s, s, free(r, n.top, n.left), 0, free(r, n.bottom, n.right), 0)
	case DotClassyRounded:
		r := s / 2
		roundedRect(p, x, y, s, s, free(r, n.top, n.left), free(r/2, n.top, n.right), free(r, n.bottom, n.right), free(r/2, n.bottom, n.left))
	default:
		p.DrawRectangle(x, y, s, s)
	}
}

// free returns r when the corner between the two sides has no neighbours.
func free(r float64, a, b bool) float64 {
	if a || b {
		return 0
	}
	return r
}

// drawCornerSquare draws the 7x7 outer ring of a finder pattern at (x, y).
// The ring relies on the even-odd fill rule.
func drawCornerSquare(p pen, shape CornerShape, x, y, s float64) {
	switch shape {
	case CornerDot:
		p.DrawCircle(x+3.5*s, y+3.5*s, 3.5*s)
		p.DrawCircle(x+3.5*s, y+3.5*s, 2.5*s)
	case CornerExtraRounded:
		roundedRect(p, x, y, 7*s, 7*s, 2.5*s, 2.5*s, 2.5*s, 2.5*s)
		roundedRect(p, x+s, y+s, 5*s, 5*s, 1.5*s, 1.5*s, 1.5*s, 1.5*s)
	default:
		p.DrawRectangle(x, y, 7*s, 7*s)
		p.DrawRectangle(x+s, y+s, 5*s, 5*s)
	}
}

// drawCornerDot draws the 3x3 center of a finder pattern at (x, y).
func drawCornerDot(p pen, shape CornerShape, x, y, s float64) {
	if shape == CornerDot {
		p.DrawCircle(x+1.5*s, y+1.5*s, 1.5*s)
		return
	}
	p.DrawRectangle(x, y, 3*s, 3*s)
}

func roundedRect(p pen, x, y, w, h, tl, tr, br, bl float64) {
	p.MoveTo(x+tl, y)
	p.LineTo(x+w-tr, y)
	if tr > 0 {
		p.QuadraticTo(x+w, y, x+w, y+tr)
	}
	p.LineTo(x+w, y+h-br)
	if br > 0 {
		p.QuadraticTo(x+w, y+h, x+w-br, y+h)
	}
	p.LineTo(x+bl, y+h)
	if bl > 0 {
		p.QuadraticTo(x, y+h, x, y+h-bl)
	}
	p.LineTo(x, y+tl)
	if tl > 0 {
		p.QuadraticTo(x, y, x+tl, y)
	}
	p.ClosePath()
}
