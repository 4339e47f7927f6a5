package style

import (
	"errors"
	"fmt"
)

var (
	// ErrDirectionWithoutFont is returned when RTL is requested without a
	// complex-script font.
	ErrDirectionWithoutFont = errors.New("rtl direction requires a complex-script font")
	// ErrFontWithoutDirection is returned when a complex-script font is set
	// on a left-to-right spec.
	ErrFontWithoutDirection = errors.New("complex-script font requires rtl direction")
)

// Spec is the full visual description of a node. The zero value is a valid
// empty spec that inherits everything.
type Spec struct {
	Fill        Color
	Borders     BorderSet
	Font        Font
	ComplexFont string
	Language    string
	HAlign      HAlign
	VAlign      VAlign
	Direction   Direction
	Spacing     Spacing
	Outline     *Outline
	Shadow      *Shadow
}

// Validate checks the spec for invalid combinations.
func (s Spec) Validate() error {
	if s.Fill.IsSet() && !s.Fill.Valid() {
		return fmt.Errorf("fill color %q is not 6-digit hex", s.Fill)
	}
	if err := s.Borders.Validate(); err != nil {
		return err
	}
	if err := s.Font.validate(); err != nil {
		return err
	}
	if s.Direction == RTL && s.ComplexFont == "" {
		return ErrDirectionWithoutFont
	}
	if s.Direction != RTL && s.ComplexFont != "" {
		return ErrFontWithoutDirection
	}
	if s.Outline != nil && s.Outline.Color.IsSet() && !s.Outline.Color.Valid() {
		return fmt.Errorf("outline color %q is not 6-digit hex", s.Outline.Color)
	}
	if s.Shadow != nil && (s.Shadow.Alpha < 0 || s.Shadow.Alpha > 100) {
		return fmt.Errorf("shadow alpha %d out of range [0,100]", s.Shadow.Alpha)
	}
	return nil
}

// IsRTL reports whether the spec flows right to left.
func (s Spec) IsRTL() bool {
	return s.Direction == RTL
}

// IsLTR reports whether left-to-right flow was set explicitly.
func (s Spec) IsLTR() bool {
	return s.Direction == LTR
}

// Inherit fills text-level fields that s leaves unset from parent. Fill,
// borders, vertical alignment, outline and shadow belong to the node they
// are declared on and are never inherited.
func (s Spec) Inherit(parent Spec) Spec {
	s.Font = s.Font.inherit(parent.Font)
	if s.Direction == DirectionUnset {
		s.Direction = parent.Direction
		s.ComplexFont = parent.ComplexFont
	}
	if s.Language == "" {
		s.Language = parent.Language
	}
	if s.HAlign == AlignUnset {
		s.HAlign = parent.HAlign
	}
	if s.Spacing.IsZero() {
		s.Spacing = parent.Spacing
	}
	return s
}

func (s Spec) WithFill(c Color) Spec {
	s.Fill = c
	return s
}

func (s Spec) WithBorder(e Edge, b Border) Spec {
	s.Borders = s.Borders.With(e, b)
	return s
}

func (s Spec) WithBorders(set BorderSet) Spec {
	s.Borders = set
	return s
}

func (s Spec) WithFont(f Font) Spec {
	s.Font = f
	return s
}

func (s Spec) WithFontFamily(family string) Spec {
	s.Font.Family = family
	return s
}

func (s Spec) WithFontSize(halfPoints int) Spec {
	s.Font.Size = halfPoints
	return s
}

func (s Spec) WithBold(b bool) Spec {
	s.Font.Bold = b
	return s
}

func (s Spec) WithTextColor(c Color) Spec {
	s.Font.Color = c
	return s
}

// WithRTL sets right-to-left flow together with the complex-script font.
func (s Spec) WithRTL(complexFont string) Spec {
	s.Direction = RTL
	s.ComplexFont = complexFont
	return s
}

// WithLTR sets explicit left-to-right flow and clears the complex-script
// font.
func (s Spec) WithLTR() Spec {
	s.Direction = LTR
	s.ComplexFont = ""
	return s
}

func (s Spec) WithLanguage(tag string) Spec {
	s.Language = tag
	return s
}

func (s Spec) WithAlign(a HAlign) Spec {
	s.HAlign = a
	return s
}

func (s Spec) WithVAlign(a VAlign) Spec {
	s.VAlign = a
	return s
}

func (s Spec) WithSpacing(sp Spacing) Spec {
	s.Spacing = sp
	return s
}

func (s Spec) WithOutline(o Outline) Spec {
	s.Outline = &o
	return s
}

func (s Spec) WithShadow(sh Shadow) Spec {
	s.Shadow = &sh
	return s
}
