package card

import (
	"errors"
	"image"
	"image/color"
	"math"
	"unicode/utf8"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/layout"
	"github.com/Badsnus/qr-studio/internal/domain/utils/colors"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
)

const (
	lineHeight   = 1.3
	minTextWidth = 200.0
	columnGutter = 24.0
	portrait     = 1.25
	dividerSpace = 9.0
)

// ImageSource resolves image references used by image nodes.
type ImageSource interface {
	Image(ref string) (image.Image, error)
}

// Images is an ImageSource over preloaded images.
type Images map[string]image.Image

func (m Images) Image(ref string) (image.Image, error) {
	img, ok := m[ref]
	if !ok {
		return nil, errors.New("image not loaded: " + ref)
	}
	return img, nil
}

// Frame rasterizes a composition around an already rendered code.
type Frame struct {
	Composition layout.Composition
	// Code is drawn as-is; it is expected to be rendered at Scale already.
	Code      image.Image
	Scale     float64
	Images    ImageSource
	Watermark string
}

type painter struct {
	dc     *gg.Context
	s      float64
	faces  *faceCache
	code   image.Image
	images ImageSource
}

// Image draws the card.
func (c *Frame) Image() (image.Image, error) {
	if c.Code == nil {
		return nil, errors.New("code image is required")
	}
	s := c.Scale
	if s <= 0 {
		s = 1
	}
	comp := c.Composition
	p := &painter{dc: gg.NewContext(1, 1), s: s, faces: newFaceCache(), code: c.Code, images: c.Images}

	pad := comp.Padding * s
	var (
		w, h     float64
		innerW   float64
		contentH float64
	)
	if comp.Horizontal {
		for _, col := range comp.Root.Children {
			cw := p.columnWidth(col)
			innerW += cw
			contentH = math.Max(contentH, p.measure(col, cw))
		}
		if n := len(comp.Root.Children); n > 1 {
			innerW += float64(n-1) * columnGutter * s
		}
		w = innerW + 2*pad
		h = contentH + 2*pad
	} else {
		innerW = math.Max(float64(c.Code.Bounds().Dx()), minTextWidth*s)
		contentH = p.measure(comp.Root, innerW)
		w = innerW + 2*pad
		h = math.Max(contentH+2*pad, math.Round(w*portrait))
	}

	margin := math.Ceil((comp.Shadow.Blur + comp.Shadow.OffsetY) * s)
	dc := gg.NewContext(int(math.Ceil(w+2*margin)), int(math.Ceil(h+2*margin)))
	p.dc = dc
	x0, y0 := margin, margin
	radius := comp.CornerRadius * s

	p.shadow(comp.Shadow, x0, y0, w, h, radius)

	dc.DrawRoundedRectangle(x0, y0, w, h, radius)
	dc.Clip()
	p.background(comp.Background, x0, y0, w, h)
	p.overlay(comp.Overlay, x0, y0, w, h)

	if comp.Horizontal {
		x := x0 + pad
		for _, col := range comp.Root.Children {
			cw := p.columnWidth(col)
			ch := p.measure(col, cw)
			p.draw(col, x, y0+pad+(h-2*pad-ch)/2, cw, ch)
			x += cw + columnGutter*s
		}
	} else {
		p.draw(comp.Root, x0+pad, y0+pad, innerW, h-2*pad)
	}

	if c.Watermark != "" {
		watermark(dc, p.faces, c.Watermark, x0+w, y0+h, s)
	}
	dc.ResetClip()

	if b := comp.Border; b != nil {
		bw := b.Width * s
		dc.DrawRoundedRectangle(x0+bw/2, y0+bw/2, w-bw, h-bw, math.Max(0, radius-bw/2))
		dc.SetColor(b.Color)
		dc.SetLineWidth(bw)
		dc.Stroke()
	}

	return dc.Image(), nil
}

// Stamp returns a copy of img with text in the bottom-right corner.
func Stamp(img image.Image, text string, scale float64) image.Image {
	if text == "" {
		return img
	}
	if scale <= 0 {
		scale = 1
	}
	dc := gg.NewContextForImage(img)
	watermark(dc, newFaceCache(), text, float64(dc.Width()), float64(dc.Height()), scale)
	return dc.Image()
}

// watermark anchors text at the bottom-right corner (right, bottom).
func watermark(dc *gg.Context, faces *faceCache, text string, right, bottom, s float64) {
	dc.SetFontFace(faces.face(400, false, 11*s))
	dc.SetColor(color.RGBA{R: 60, G: 60, B: 60, A: 150})
	dc.DrawStringAnchored(text, right-8*s, bottom-8*s, 1, 0)
}

func (p *painter) columnWidth(col layout.Node) float64 {
	if col.Role == layout.RoleCodeBlock {
		return float64(p.code.Bounds().Dx())
	}
	return math.Max(float64(p.code.Bounds().Dx()), minTextWidth*p.s)
}

func (p *painter) shadow(sh layout.Shadow, x, y, w, h, r float64) {
	if sh.Opacity <= 0 {
		return
	}
	steps := int(math.Max(1, math.Ceil(sh.Blur)))
	alpha := sh.Opacity / float64(steps)
	for i := 0; i < steps; i++ {
		grow := sh.Blur * p.s * float64(steps-i) / float64(steps)
		p.dc.DrawRoundedRectangle(x-grow/2, y+sh.OffsetY*p.s-grow/2, w+grow, h+grow, r+grow/2)
		p.dc.SetColor(color.RGBA{A: uint8(255 * alpha)})
		p.dc.Fill()
	}
}

func (p *painter) background(bg layout.Background, x, y, w, h float64) {
	p.dc.DrawRectangle(x, y, w, h)
	if g := bg.Gradient; g != nil {
		// CSS angles: 0deg points up, 90deg points right
		rad := g.Angle * math.Pi / 180
		dx, dy := math.Sin(rad), -math.Cos(rad)
		half := (math.Abs(w*dx) + math.Abs(h*dy)) / 2
		cx, cy := x+w/2, y+h/2
		grad := gg.NewLinearGradient(cx-dx*half, cy-dy*half, cx+dx*half, cy+dy*half)
		grad.AddColorStop(0, g.From)
		grad.AddColorStop(1, g.To)
		p.dc.SetFillStyle(grad)
	} else {
		p.dc.SetColor(bg.Color)
	}
	p.dc.Fill()
}

func (p *painter) overlay(shapes []layout.Shape, x, y, w, h float64) {
	dc := p.dc
	for _, sh := range shapes {
		dc.SetColor(sh.Color)
		switch sh.Kind {
		case layout.ShapeCircle:
			dc.DrawCircle(x+sh.X*w, y+sh.Y*h, sh.R*w)
		case layout.ShapeRect:
			rx, ry, rw, rh := x+sh.X*w, y+sh.Y*h, sh.W*w, sh.H*w
			dc.Push()
			dc.RotateAbout(gg.Radians(sh.Rotation), rx+rw/2, ry+rh/2)
			dc.DrawRectangle(rx, ry, rw, rh)
			p.finish(sh.Stroke)
			dc.Pop()
			continue
		case layout.ShapeLine:
			dc.DrawLine(x+sh.X*w, y+sh.Y*h, x+sh.X2*w, y+sh.Y2*h)
		}
		p.finish(sh.Stroke)
	}
}

func (p *painter) finish(stroke float64) {
	if stroke > 0 {
		p.dc.SetLineWidth(stroke * p.s)
		p.dc.Stroke()
		return
	}
	p.dc.Fill()
}

// measure returns the natural height of n laid out in width w.
func (p *painter) measure(n layout.Node, w float64) float64 {
	s := p.s
	switch n.Kind {
	case layout.KindStack:
		total := 0.0
		for i, child := range n.Children {
			total += p.measure(child, w)
			if i < len(n.Children)-1 {
				total += child.Gap * s
			}
		}
		return total
	case layout.KindRow:
		m := 0.0
		for _, child := range n.Children {
			m = math.Max(m, p.measure(child, p.columnWidth(child)))
		}
		return m
	case layout.KindCode:
		return float64(p.code.Bounds().Dy())
	case layout.KindText:
		p.useFace(n.Style)
		pad := n.Style.Padding * s
		lines := p.dc.WordWrap(n.Text, math.Max(1, w-2*pad))
		return float64(len(lines))*n.Style.Size*s*lineHeight + 2*pad
	case layout.KindButton:
		return n.Style.Size*s*lineHeight + 2*n.Style.Padding*s
	case layout.KindDivider:
		return dividerSpace * s
	case layout.KindImage:
		return n.Style.Size * s
	default:
		return 0
	}
}

// draw lays n out in the box (x, y, w, h).
func (p *painter) draw(n layout.Node, x, y, w, h float64) {
	s := p.s
	dc := p.dc
	switch n.Kind {
	case layout.KindStack:
		natural := p.measure(n, w)
		extra := math.Max(0, h-natural)
		expanders := 0
		for _, child := range n.Children {
			if child.Expand {
				expanders++
			}
		}
		if expanders == 0 {
			// nothing absorbs the slack, center the content
			y += extra / 2
		}
		for _, child := range n.Children {
			ch := p.measure(child, w)
			if child.Expand {
				ch += extra / float64(expanders)
			}
			p.draw(child, x, y, w, ch)
			y += ch + child.Gap*s
		}
	case layout.KindCode:
		b := p.code.Bounds()
		dc.DrawImage(p.code, int(math.Round(x+(w-float64(b.Dx()))/2)), int(math.Round(y)))
	case layout.KindText:
		p.text(n, x, y, w)
	case layout.KindButton:
		p.button(n, x, y, w)
	case layout.KindDivider:
		dc.SetColor(colors.WithOpacity(n.Style.Color, n.Style.Opacity))
		dc.SetLineWidth(math.Max(1, s))
		mid := y + dividerSpace*s/2
		dc.DrawLine(x, mid, x+w, mid)
		dc.Stroke()
	case layout.KindImage:
		p.image(n, x, y, w)
	}
}

func (p *painter) useFace(st layout.TextStyle) {
	p.dc.SetFontFace(p.faces.face(st.Weight, st.Italic, st.Size*p.s))
}

func (p *painter) text(n layout.Node, x, y, w float64) {
	s := p.s
	dc := p.dc
	st := n.Style
	p.useFace(st)

	pad := st.Padding * s
	lines := dc.WordWrap(n.Text, math.Max(1, w-2*pad))
	lh := st.Size * s * lineHeight

	widest := 0.0
	for _, line := range lines {
		lw, _ := dc.MeasureString(line)
		widest = math.Max(widest, lw+st.LetterSpacing*s*float64(utf8.RuneCountInString(line)))
	}

	if st.Background.A > 0 {
		boxW := math.Min(w, widest+2*pad)
		boxX := x
		switch st.Align {
		case entity.AlignCenter:
			boxX = x + (w-boxW)/2
		case entity.AlignRight:
			boxX = x + w - boxW
		}
		dc.DrawRoundedRectangle(boxX, y, boxW, float64(len(lines))*lh+2*pad, st.Radius*s)
		dc.SetColor(colors.WithOpacity(st.Background, st.Opacity))
		dc.Fill()
	}

	dc.SetColor(colors.WithOpacity(st.Color, st.Opacity))
	for i, line := range lines {
		ly := y + pad + float64(i)*lh + lh/2
		switch st.Align {
		case entity.AlignLeft:
			p.line(line, x+pad, ly, 0, st.LetterSpacing*s)
		case entity.AlignRight:
			p.line(line, x+w-pad, ly, 1, st.LetterSpacing*s)
		default:
			p.line(line, x+w/2, ly, 0.5, st.LetterSpacing*s)
		}
	}
}

// line draws a single line anchored horizontally by ax, with extra spacing between runes.
func (p *painter) line(text string, x, y, ax, spacing float64) {
	if spacing == 0 {
		p.dc.DrawStringAnchored(text, x, y, ax, 0.35)
		return
	}
	total, _ := p.dc.MeasureString(text)
	total += spacing * float64(utf8.RuneCountInString(text)-1)
	cx := x - ax*total
	for _, r := range text {
		ch := string(r)
		p.dc.DrawStringAnchored(ch, cx, y, 0, 0.35)
		cw, _ := p.dc.MeasureString(ch)
		cx += cw + spacing
	}
}

func (p *painter) button(n layout.Node, x, y, w float64) {
	s := p.s
	dc := p.dc
	st := n.Style
	p.useFace(st)

	pad := st.Padding * s
	tw, _ := dc.MeasureString(n.Text)
	bw := math.Min(w, tw+4*pad)
	bh := st.Size*s*lineHeight + 2*pad
	bx := x + (w-bw)/2

	dc.DrawRoundedRectangle(bx, y, bw, bh, st.Radius*s)
	dc.SetColor(colors.WithOpacity(st.Background, st.Opacity))
	dc.Fill()

	dc.SetColor(colors.WithOpacity(st.Color, st.Opacity))
	p.line(n.Text, bx+bw/2, y+bh/2, 0.5, st.LetterSpacing*s)
}

func (p *painter) image(n layout.Node, x, y, w float64) {
	if p.images == nil || n.Image == "" {
		return
	}
	img, err := p.images.Image(n.Image)
	if err != nil || img == nil {
		return
	}
	side := uint(n.Style.Size * p.s)
	if side == 0 {
		return
	}
	fitted := resize.Thumbnail(side, side, img, resize.Lanczos3)
	b := fitted.Bounds()
	p.dc.DrawImage(fitted, int(math.Round(x+(w-float64(b.Dx()))/2)), int(math.Round(y+(float64(side)-float64(b.Dy()))/2)))
}
