package entity

type FontWeight string

const (
	WeightNormal   FontWeight = "normal"
	WeightMedium   FontWeight = "medium"
	WeightSemibold FontWeight = "semibold"
	WeightBold     FontWeight = "bold"
)

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

type QRPosition string

const (
	PositionTop    QRPosition = "top"
	PositionCenter QRPosition = "center"
	PositionBottom QRPosition = "bottom"
	PositionLeft   QRPosition = "left"
	PositionRight  QRPosition = "right"
)

type GradientDirection string

const (
	ToBottom      GradientDirection = "to-bottom"
	ToRight       GradientDirection = "to-right"
	ToBottomRight GradientDirection = "to-bottom-right"
	ToTopRight    GradientDirection = "to-top-right"
)

type ShadowTier string

const (
	ShadowNone ShadowTier = "none"
	ShadowSm   ShadowTier = "sm"
	ShadowMd   ShadowTier = "md"
	ShadowLg   ShadowTier = "lg"
	ShadowXl   ShadowTier = "xl"
)

type DecorativeStyle string

const (
	DecorNone      DecorativeStyle = "none"
	DecorCircles   DecorativeStyle = "circles"
	DecorDots      DecorativeStyle = "dots"
	DecorLines     DecorativeStyle = "lines"
	DecorGeometric DecorativeStyle = "geometric"
	DecorGrid      DecorativeStyle = "grid"
)

// TextOverrides adjusts how the title or subtitle is drawn. Zero values mean "use default".
type TextOverrides struct {
	Size          float64    `json:"fontSize,omitempty"`
	Weight        FontWeight `json:"fontWeight,omitempty"`
	Align         TextAlign  `json:"textAlign,omitempty"`
	LetterSpacing float64    `json:"letterSpacing,omitempty"`
	Spacing       float64    `json:"spacing,omitempty"`
}

type BackgroundGradient struct {
	From      string            `json:"from"`
	To        string            `json:"to"`
	Direction GradientDirection `json:"direction,omitempty"`
}

type Border struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type CallToAction struct {
	Text      string  `json:"text"`
	Color     string  `json:"color,omitempty"`
	TextColor string  `json:"textColor,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
}

type CardTemplate struct {
	BackgroundColor    string              `json:"backgroundColor,omitempty"`
	TextColor          string              `json:"textColor,omitempty"`
	Title              string              `json:"title,omitempty"`
	Subtitle           string              `json:"subtitle,omitempty"`
	Fields             []CustomField       `json:"customFields,omitempty"`
	TitleStyle         TextOverrides       `json:"titleStyle"`
	SubtitleStyle      TextOverrides       `json:"subtitleStyle"`
	QRPosition         QRPosition          `json:"qrPosition,omitempty"`
	CornerRadius       float64             `json:"borderRadius,omitempty"`
	Padding            float64             `json:"padding,omitempty"`
	BackgroundGradient *BackgroundGradient `json:"gradient,omitempty"`
	Border             *Border             `json:"border,omitempty"`
	Shadow             ShadowTier          `json:"shadow,omitempty"`
	Decorative         DecorativeStyle     `json:"decorativeStyle,omitempty"`
	AccentColor        string              `json:"accentColor,omitempty"`
	CTA                *CallToAction       `json:"cta,omitempty"`
	QRLabel            string              `json:"qrLabel,omitempty"`
}

// Clone returns a deep copy of the template.
func (t CardTemplate) Clone() CardTemplate {
	c := t
	c.Fields = append([]CustomField(nil), t.Fields...)
	if t.BackgroundGradient != nil {
		g := *t.BackgroundGradient
		c.BackgroundGradient = &g
	}
	if t.Border != nil {
		b := *t.Border
		c.Border = &b
	}
	if t.CTA != nil {
		cta := *t.CTA
		c.CTA = &cta
	}
	return c
}

// DefaultTemplate is the card a new editing session starts with.
func DefaultTemplate() CardTemplate {
	return CardTemplate{
		BackgroundColor: "#ffffff",
		TextColor:       "#111827",
		QRPosition:      PositionTop,
		CornerRadius:    16,
		Padding:         24,
		Shadow:          ShadowMd,
		Decorative:      DecorNone,
		AccentColor:     "#6366f1",
	}
}
