package entity

import (
	"encoding/json"
	"fmt"
)

type FieldKind string

const (
	FieldLabel    FieldKind = "label"
	FieldTitle    FieldKind = "title"
	FieldSubtitle FieldKind = "subtitle"
	FieldText     FieldKind = "text"
	FieldDate     FieldKind = "date"
	FieldTime     FieldKind = "time"
	FieldButton   FieldKind = "button"
	FieldDivider  FieldKind = "divider"
	FieldLogo     FieldKind = "logo"
)

// FieldContent is the closed set of custom field variants.
type FieldContent interface {
	Kind() FieldKind
	isFieldContent()
}

type LabelField struct{ Text string }
type TitleField struct{ Text string }
type SubtitleField struct{ Text string }
type TextField struct{ Text string }

// DateField renders the current date when Value is empty.
type DateField struct{ Value string }

// TimeField renders the current time when Value is empty.
type TimeField struct{ Value string }
type ButtonField struct{ Text string }
type DividerField struct{}
type LogoField struct{ Image string }

func (LabelField) Kind() FieldKind    { return FieldLabel }
func (TitleField) Kind() FieldKind    { return FieldTitle }
func (SubtitleField) Kind() FieldKind { return FieldSubtitle }
func (TextField) Kind() FieldKind     { return FieldText }
func (DateField) Kind() FieldKind     { return FieldDate }
func (TimeField) Kind() FieldKind     { return FieldTime }
func (ButtonField) Kind() FieldKind   { return FieldButton }
func (DividerField) Kind() FieldKind  { return FieldDivider }
func (LogoField) Kind() FieldKind     { return FieldLogo }

func (LabelField) isFieldContent()    {}
func (TitleField) isFieldContent()    {}
func (SubtitleField) isFieldContent() {}
func (TextField) isFieldContent()     {}
func (DateField) isFieldContent()     {}
func (TimeField) isFieldContent()     {}
func (ButtonField) isFieldContent()   {}
func (DividerField) isFieldContent()  {}
func (LogoField) isFieldContent()     {}

// FieldStyle is the per-field style override. Zero values mean "inherit".
type FieldStyle struct {
	Size          float64    `json:"fontSize,omitempty"`
	Weight        FontWeight `json:"fontWeight,omitempty"`
	Color         string     `json:"color,omitempty"`
	Background    string     `json:"backgroundColor,omitempty"`
	LetterSpacing float64    `json:"letterSpacing,omitempty"`
	Italic        bool       `json:"italic,omitempty"`
	Opacity       *float64   `json:"opacity,omitempty"`
	Radius        float64    `json:"borderRadius,omitempty"`
	Padding       float64    `json:"padding,omitempty"`
}

type CustomField struct {
	ID      string
	Content FieldContent
	Style   FieldStyle
}

func (f CustomField) Kind() FieldKind {
	if f.Content == nil {
		return FieldText
	}
	return f.Content.Kind()
}

// Value returns the textual payload of the field. Dividers have none.
func (f CustomField) Value() string {
	switch c := f.Content.(type) {
	case LabelField:
		return c.Text
	case TitleField:
		return c.Text
	case SubtitleField:
		return c.Text
	case TextField:
		return c.Text
	case DateField:
		return c.Value
	case TimeField:
		return c.Value
	case ButtonField:
		return c.Text
	case LogoField:
		return c.Image
	default:
		return ""
	}
}

// NewFieldContent builds the variant for kind carrying value.
func NewFieldContent(kind FieldKind, value string) (FieldContent, error) {
	switch kind {
	case FieldLabel:
		return LabelField{Text: value}, nil
	case FieldTitle:
		return TitleField{Text: value}, nil
	case FieldSubtitle:
		return SubtitleField{Text: value}, nil
	case FieldText:
		return TextField{Text: value}, nil
	case FieldDate:
		return DateField{Value: value}, nil
	case FieldTime:
		return TimeField{Value: value}, nil
	case FieldButton:
		return ButtonField{Text: value}, nil
	case FieldDivider:
		return DividerField{}, nil
	case FieldLogo:
		return LogoField{Image: value}, nil
	default:
		return nil, fmt.Errorf("unknown field type %q", kind)
	}
}

type customFieldJSON struct {
	ID    string     `json:"id"`
	Type  FieldKind  `json:"type"`
	Value string     `json:"value,omitempty"`
	Style FieldStyle `json:"style"`
}

func (f CustomField) MarshalJSON() ([]byte, error) {
	return json.Marshal(customFieldJSON{
		ID:    f.ID,
		Type:  f.Kind(),
		Value: f.Value(),
		Style: f.Style,
	})
}

func (f *CustomField) UnmarshalJSON(data []byte) error {
	var raw customFieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	content, err := NewFieldContent(raw.Type, raw.Value)
	if err != nil {
		return err
	}
	f.ID = raw.ID
	f.Content = content
	f.Style = raw.Style
	return nil
}
