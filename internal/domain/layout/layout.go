package layout

import (
	"image/color"
	"time"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/colors"
)

var weights = map[entity.FontWeight]int{
	entity.WeightNormal:   400,
	entity.WeightMedium:   500,
	entity.WeightSemibold: 600,
	entity.WeightBold:     700,
}

// Weight maps a weight name to its numeric value, 400 for unknown names.
func Weight(w entity.FontWeight) int {
	if v, ok := weights[w]; ok {
		return v
	}
	return 400
}

var angles = map[entity.GradientDirection]float64{
	entity.ToBottom:      180,
	entity.ToRight:       90,
	entity.ToBottomRight: 135,
	entity.ToTopRight:    45,
}

// GradientAngle maps a direction name to degrees, 180 for unknown names.
func GradientAngle(d entity.GradientDirection) float64 {
	if v, ok := angles[d]; ok {
		return v
	}
	return 180
}

// CodeBlock is the size of the already rendered code.
type CodeBlock struct {
	Width, Height float64
}

type Options struct {
	// Now is used for date and time fields without a value.
	Now func() time.Time
}

var (
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	ink   = color.RGBA{R: 17, G: 24, B: 39, A: 255}

	defaultAccent = color.RGBA{R: 99, G: 102, B: 241, A: 255}
)

const (
	titleSize    = 24.0
	subtitleSize = 16.0
	fieldSize    = 14.0
	labelSize    = 12.0
	buttonSize   = 14.0

	titleGap   = 8.0
	defaultGap = 6.0
	blockGap   = 16.0
	defaultPad = 24.0
)

var shadows = map[entity.ShadowTier]Shadow{
	entity.ShadowNone: {},
	entity.ShadowSm:   {Blur: 2, OffsetY: 1, Opacity: 0.05},
	entity.ShadowMd:   {Blur: 6, OffsetY: 4, Opacity: 0.1},
	entity.ShadowLg:   {Blur: 15, OffsetY: 10, Opacity: 0.1},
	entity.ShadowXl:   {Blur: 25, OffsetY: 20, Opacity: 0.15},
}

// Layout resolves the card geometry of t around an already rendered code.
// It is a pure function of its inputs.
func Layout(t entity.CardTemplate, code CodeBlock, opts Options) Composition {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	textColor := colors.Or(t.TextColor, ink)
	accent := colors.Or(t.AccentColor, defaultAccent)

	c := Composition{
		Background:   background(t),
		Overlay:      Overlay(t.Decorative, accent),
		CornerRadius: t.CornerRadius,
		Padding:      t.Padding,
		Shadow:       shadows[t.Shadow],
		Accent:       accent,
		TextColor:    textColor,
	}
	if c.Padding <= 0 {
		c.Padding = defaultPad
	}
	if t.Border != nil && t.Border.Width > 0 {
		c.Border = &Border{Color: colors.Or(t.Border.Color, textColor), Width: t.Border.Width}
	}

	b := builder{t: t, text: textColor, accent: accent, now: opts.Now}
	codeBlock := b.codeBlock(code)
	cta, hasCTA := b.cta()

	switch t.QRPosition {
	case entity.PositionLeft, entity.PositionRight:
		c.Horizontal = true
		text := b.textBlock()
		if hasCTA {
			text.Children = append(text.Children, cta)
		}
		row := Node{Kind: KindRow}
		if t.QRPosition == entity.PositionLeft {
			row.Children = []Node{codeBlock, text}
		} else {
			row.Children = []Node{text, codeBlock}
		}
		c.Root = row
	case entity.PositionCenter:
		group := Node{Kind: KindStack, Role: RoleCodeGroup, Expand: true, Children: []Node{codeBlock}}
		if hasCTA {
			group.Children = append(group.Children, cta)
		}
		c.Root = stack(b.textBlock(), group)
	case entity.PositionBottom:
		c.Root = stack(b.textBlock(), spacer(), codeBlock)
		if hasCTA {
			c.Root.Children = append(c.Root.Children, cta)
		}
	default:
		c.Root = stack(codeBlock, spacer(), b.textBlock())
		if hasCTA {
			c.Root.Children = append(c.Root.Children, cta)
		}
	}
	return c
}

func stack(children ...Node) Node {
	return Node{Kind: KindStack, Children: children}
}

func spacer() Node {
	return Node{Kind: KindSpacer, Expand: true}
}

func background(t entity.CardTemplate) Background {
	bg := Background{Color: colors.Or(t.BackgroundColor, white)}
	if g := t.BackgroundGradient; g != nil {
		from, okFrom := colors.Parse(g.From)
		to, okTo := colors.Parse(g.To)
		if okFrom && okTo {
			bg.Gradient = &LinearGradient{Angle: GradientAngle(g.Direction), From: from, To: to}
		}
	}
	return bg
}

type builder struct {
	t      entity.CardTemplate
	text   color.RGBA
	accent color.RGBA
	now    func() time.Time
}

func (b builder) codeBlock(code CodeBlock) Node {
	block := Node{
		Kind: KindStack,
		Role: RoleCodeBlock,
		Children: []Node{{
			Kind:   KindCode,
			Width:  code.Width,
			Height: code.Height,
		}},
	}
	if b.t.QRLabel != "" {
		block.Children[0].Gap = defaultGap
		block.Children = append(block.Children, Node{
			Kind:  KindText,
			Role:  RoleCodeLabel,
			Text:  b.t.QRLabel,
			Style: TextStyle{Size: labelSize, Weight: 500, Color: b.text, Opacity: 0.8, Align: entity.AlignCenter},
		})
	}
	return block
}

func (b builder) cta() (Node, bool) {
	if b.t.CTA == nil || b.t.CTA.Text == "" {
		return Node{}, false
	}
	return Node{
		Kind: KindButton,
		Role: RoleCTA,
		Text: b.t.CTA.Text,
		Style: TextStyle{
			Size:       buttonSize,
			Weight:     600,
			Color:      colors.Or(b.t.CTA.TextColor, white),
			Background: colors.Or(b.t.CTA.Color, b.accent),
			Opacity:    1,
			Radius:     b.t.CTA.Radius,
			Padding:    12,
			Align:      entity.AlignCenter,
		},
	}, true
}

// textBlock orders labels first, then title and subtitle, then every other field in list order.
func (b builder) textBlock() Node {
	block := Node{Kind: KindStack, Role: RoleTextBlock, Gap: blockGap}

	for _, f := range b.t.Fields {
		if f.Kind() == entity.FieldLabel {
			block.Children = append(block.Children, b.field(f))
		}
	}
	if b.t.Title != "" {
		block.Children = append(block.Children, b.heading(RoleTitle, b.t.Title, b.t.TitleStyle, titleSize, entity.WeightBold, titleGap))
	}
	if b.t.Subtitle != "" {
		block.Children = append(block.Children, b.heading(RoleSubtitle, b.t.Subtitle, b.t.SubtitleStyle, subtitleSize, entity.WeightNormal, defaultGap))
	}
	for _, f := range b.t.Fields {
		if f.Kind() != entity.FieldLabel {
			block.Children = append(block.Children, b.field(f))
		}
	}
	return block
}

func (b builder) heading(role Role, text string, o entity.TextOverrides, size float64, weight entity.FontWeight, gap float64) Node {
	style := TextStyle{
		Size:          size,
		Weight:        Weight(weight),
		Color:         b.text,
		Opacity:       1,
		LetterSpacing: o.LetterSpacing,
		Align:         o.Align,
	}
	if o.Size > 0 {
		style.Size = o.Size
	}
	if o.Weight != "" {
		style.Weight = Weight(o.Weight)
	}
	if style.Align == "" {
		style.Align = entity.AlignCenter
	}
	if o.Spacing > 0 {
		gap = o.Spacing
	}
	return Node{Kind: KindText, Role: role, Text: text, Style: style, Gap: gap}
}

func (b builder) field(f entity.CustomField) Node {
	n := Node{Role: RoleField, FieldID: f.ID, Gap: defaultGap}

	size, weight := fieldSize, 400
	switch c := f.Content.(type) {
	case entity.DividerField:
		n.Kind = KindDivider
		n.Style = TextStyle{Color: colors.Or(f.Style.Color, b.text), Opacity: opacity(f.Style.Opacity, 0.2)}
		return n
	case entity.LogoField:
		n.Kind = KindImage
		n.Image = c.Image
		n.Style = TextStyle{Size: orDefault(f.Style.Size, 48), Opacity: opacity(f.Style.Opacity, 1), Radius: f.Style.Radius, Align: entity.AlignCenter}
		return n
	case entity.ButtonField:
		n.Kind = KindButton
		n.Text = c.Text
		n.Style = TextStyle{
			Size:          orDefault(f.Style.Size, buttonSize),
			Weight:        weightOr(f.Style.Weight, 600),
			Color:         colors.Or(f.Style.Color, white),
			Background:    colors.Or(f.Style.Background, b.accent),
			LetterSpacing: f.Style.LetterSpacing,
			Italic:        f.Style.Italic,
			Opacity:       opacity(f.Style.Opacity, 1),
			Radius:        f.Style.Radius,
			Padding:       orDefault(f.Style.Padding, 10),
			Align:         entity.AlignCenter,
		}
		return n
	case entity.LabelField:
		n.Text = c.Text
		size, weight = labelSize, 600
	case entity.TitleField:
		n.Text = c.Text
		size, weight = titleSize*0.85, 700
	case entity.SubtitleField:
		n.Text = c.Text
		size = subtitleSize
	case entity.DateField:
		n.Text = c.Value
		if n.Text == "" {
			n.Text = b.now().Format("02.01.2006")
		}
	case entity.TimeField:
		n.Text = c.Value
		if n.Text == "" {
			n.Text = b.now().Format("15:04")
		}
	default:
		n.Text = f.Value()
	}

	n.Kind = KindText
	n.Style = TextStyle{
		Size:          orDefault(f.Style.Size, size),
		Weight:        weightOr(f.Style.Weight, weight),
		Color:         colors.Or(f.Style.Color, b.text),
		LetterSpacing: f.Style.LetterSpacing,
		Italic:        f.Style.Italic,
		Opacity:       opacity(f.Style.Opacity, 1),
		Radius:        f.Style.Radius,
		Padding:       f.Style.Padding,
		Align:         entity.AlignCenter,
	}
	if bg, ok := colors.Parse(f.Style.Background); ok {
		n.Style.Background = bg
	}
	return n
}

func orDefault(v, def float64) float64 {
	if v > 0 {
		return v
	}
	return def
}

func weightOr(w entity.FontWeight, def int) int {
	if w == "" {
		return def
	}
	return Weight(w)
}

func opacity(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	if *v < 0 {
		return 0
	}
	if *v > 1 {
		return 1
	}
	return *v
}
