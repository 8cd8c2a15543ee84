package layout

import (
	"image/color"

	"github.com/Badsnus/qr-studio/internal/domain/entity"
)

type NodeKind string

const (
	KindStack   NodeKind = "stack"
	KindRow     NodeKind = "row"
	KindCode    NodeKind = "code"
	KindText    NodeKind = "text"
	KindButton  NodeKind = "button"
	KindDivider NodeKind = "divider"
	KindImage   NodeKind = "image"
	KindSpacer  NodeKind = "spacer"
)

// Role tells what a node was built from.
type Role string

const (
	RoleTitle     Role = "title"
	RoleSubtitle  Role = "subtitle"
	RoleField     Role = "field"
	RoleCodeLabel Role = "code-label"
	RoleCTA       Role = "cta"
	RoleTextBlock Role = "text-block"
	RoleCodeBlock Role = "code-block"
	RoleCodeGroup Role = "code-group"
)

// TextStyle is a fully resolved text style.
type TextStyle struct {
	Size          float64
	Weight        int
	Color         color.RGBA
	Background    color.RGBA
	LetterSpacing float64
	Italic        bool
	Opacity       float64
	Radius        float64
	Padding       float64
	Align         entity.TextAlign
}

type Node struct {
	Kind    NodeKind
	Role    Role
	FieldID string
	Text    string
	Image   string // asset reference of image nodes
	Style   TextStyle

	// Gap is the space kept after the node inside its parent.
	Gap float64
	// Expand nodes share the space left in a vertical stack.
	Expand bool
	// Width and Height are set on code nodes only.
	Width, Height float64

	Children []Node
}

type LinearGradient struct {
	Angle    float64
	From, To color.RGBA
}

type Background struct {
	Color    color.RGBA
	Gradient *LinearGradient
}

type Border struct {
	Color color.RGBA
	Width float64
}

type Shadow struct {
	Blur    float64
	OffsetY float64
	Opacity float64
}

type ShapeKind string

const (
	ShapeCircle ShapeKind = "circle"
	ShapeRect   ShapeKind = "rect"
	ShapeLine   ShapeKind = "line"
)

// Shape is a decorative primitive in card-relative coordinates (0..1 of width and height).
type Shape struct {
	Kind ShapeKind

	// Circle: center X,Y, radius R relative to width.
	// Rect: top-left X,Y and size W,H, rotated by Rotation degrees around its center.
	// Line: from X,Y to X2,Y2.
	X, Y, X2, Y2, W, H, R float64

	Rotation float64
	Stroke   float64 // 0 means filled
	Color    color.RGBA
}

// Composition is the ordered description of a card, consumed by the rasterizer.
type Composition struct {
	Horizontal   bool
	Root         Node
	Background   Background
	Overlay      []Shape
	CornerRadius float64
	Padding      float64
	Border       *Border
	Shadow       Shadow
	Accent       color.RGBA
	TextColor    color.RGBA
}

// Walk visits the nodes in document order.
func (n Node) Walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Flatten returns the leaf nodes in document order.
func (n Node) Flatten() []Node {
	var out []Node
	n.Walk(func(node Node) {
		if node.Kind != KindStack && node.Kind != KindRow {
			out = append(out, node)
		}
	})
	return out
}
