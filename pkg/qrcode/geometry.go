package qr

import "math"

type geometry struct {
	bitmap [][]bool
	count  int
	module float64
	// top-left corner of the symbol in px
	offsetX, offsetY float64
	circle           bool

	// logo area in modules; zero width means no logo
	logoCol, logoRow int
	logoW, logoH     int
	hideUnderLogo    bool
}

func newGeometry(bitmap [][]bool, size, quietZone int, circle, hasLogo bool, logoScale, aspect float64, hide bool) *geometry {
	g := &geometry{
		bitmap:        bitmap,
		count:         len(bitmap),
		circle:        circle,
		hideUnderLogo: hide,
	}

	if circle {
		// the symbol is inscribed in the disc
		side := float64(size) / math.Sqrt2
		g.module = side / float64(g.count)
		g.offsetX = (float64(size) - side) / 2
		g.offsetY = g.offsetX
	} else {
		if quietZone < 0 {
			quietZone = 0
		}
		g.module = float64(size) / float64(g.count+2*quietZone)
		g.offsetX = float64(quietZone) * g.module
		g.offsetY = g.offsetX
	}

	if hasLogo {
		g.logoW, g.logoH = logoModules(g.count, logoScale, aspect)
		g.logoCol = (g.count - g.logoW) / 2
		g.logoRow = (g.count - g.logoH) / 2
	}
	return g
}

// logoModules returns the logo box size in modules. The box covers at most
// scale of the symbol area, keeps the image aspect ratio, has the parity of
// count so that it stays centered, and never reaches the finder patterns.
func logoModules(count int, scale, aspect float64) (int, int) {
	if scale <= 0 || count <= 0 {
		return 0, 0
	}
	limit := count - 14
	area := scale * float64(count*count)
	h := int(math.Floor(math.Sqrt(area / aspect)))
	w := int(math.Floor(area / math.Max(float64(h), 1)))

	adjust := func(v int) int {
		if v > limit {
			v = limit
		}
		if v%2 != count%2 {
			v--
		}
		if v < 0 {
			v = 0
		}
		return v
	}
	w, h = adjust(w), adjust(h)
	if w == 0 || h == 0 {
		return 0, 0
	}
	return w, h
}

func (g *geometry) px(row, col int) (float64, float64) {
	return g.offsetX + float64(col)*g.module, g.offsetY + float64(row)*g.module
}

func (g *geometry) symbolRect() (float64, float64, float64) {
	return g.offsetX, g.offsetY, float64(g.count) * g.module
}

// finders returns the top-left module of each finder pattern.
func (g *geometry) finders() [][2]int {
	return [][2]int{{0, 0}, {0, g.count - 7}, {g.count - 7, 0}}
}

func (g *geometry) inFinder(row, col int) bool {
	n := g.count
	return (row < 7 && col < 7) || (row < 7 && col >= n-7) || (row >= n-7 && col < 7)
}

func (g *geometry) underLogo(row, col int) bool {
	if g.logoW == 0 {
		return false
	}
	return row >= g.logoRow && row < g.logoRow+g.logoH && col >= g.logoCol && col < g.logoCol+g.logoW
}

// dark reports whether the module is drawn as a regular dot.
func (g *geometry) dark(row, col int) bool {
	if row < 0 || col < 0 || row >= g.count || col >= g.count {
		return false
	}
	if !g.bitmap[row][col] || g.inFinder(row, col) {
		return false
	}
	return !(g.hideUnderLogo && g.underLogo(row, col))
}

// logoRect is the px rectangle the logo image is fitted into.
func (g *geometry) logoRect(margin int) (x, y, w, h float64) {
	x, y = g.px(g.logoRow, g.logoCol)
	w = float64(g.logoW)*g.module - 2*float64(margin)
	h = float64(g.logoH)*g.module - 2*float64(margin)
	return x + float64(margin), y + float64(margin), w, h
}

func (g *geometry) drawDots(p pen, shape DotShape) {
	s := g.module
	for row := 0; row < g.count; row++ {
		for col := 0; col < g.count; col++ {
			if !g.dark(row, col) {
				continue
			}
			x, y := g.px(row, col)
			n := neighbours{
				top:    g.dark(row-1, col),
				right:  g.dark(row, col+1),
				bottom: g.dark(row+1, col),
				left:   g.dark(row, col-1),
			}
			drawDot(p, shape, x, y, s, n)
		}
	}
}

// linearEnds returns the gradient line for a rotation in degrees across the box.
func linearEnds(rotation, x, y, w, h float64) (x0, y0, x1, y1 float64) {
	rad := rotation * math.Pi / 180
	dx, dy := math.Cos(rad), math.Sin(rad)
	half := (math.Abs(dx)*w + math.Abs(dy)*h) / 2
	cx, cy := x+w/2, y+h/2
	return cx - dx*half, cy - dy*half, cx + dx*half, cy + dy*half
}
