package docforge

import (
	"fmt"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

// Theme holds the visual constants of a document design. It is a plain
// value: callers copy it, change fields and pass it to WithTheme.
type Theme struct {
	// Wordprocessing palette.
	HeaderFill style.Color
	HeaderText style.Color
	LabelFill  style.Color
	ValueFill  style.Color
	SceneFill  style.Color
	TextColor  style.Color
	Watermark  style.Color
	Highlight  style.Color

	BodyFont       string
	HeaderFont     string
	FooterFont     string
	Language       string
	BodySize       int
	HeaderSize     int
	FooterSize     int
	PageHeaderSize int

	Page tree.PageSetup
	// Column grids of the reference tables.
	MetaGrid     []layout.Length
	QuestionGrid []layout.Length
	SceneGrid    []layout.Length

	OuterBorder     style.Border
	InnerBorder     style.Border
	HeaderRowHeight layout.Length
	CellMargins     tree.CellMargins

	// Presentation palette.
	SlideWidth     layout.Length
	SlideHeight    layout.Length
	Primary        style.Color
	SlideText      style.Color
	Accent         style.Color
	DarkBackground style.Color
	CardFill       style.Color
	CardBorder     style.Color
	Success        style.Color
	Danger         style.Color
	Warning        style.Color

	TitleFont    string
	SlideFont    string
	FallbackFont string
	TextInsets   tree.Insets
	Shadow       style.Shadow
}

// DefaultTheme returns the storyboard design: A4 landscape Arabic
// documents and 16:9 lecture slides.
func DefaultTheme() Theme {
	shadow := style.DefaultShadow()
	shadow.Color = style.MustColor("E0E0E0")
	return Theme{
		HeaderFill: style.MustColor("31849B"),
		HeaderText: style.White,
		LabelFill:  style.MustColor("DBE5F1"),
		ValueFill:  style.White,
		SceneFill:  style.MustColor("CFE2F3"),
		TextColor:  style.Black,
		Watermark:  style.MustColor("007A37"),
		Highlight:  style.MustColor("FF0000"),

		BodyFont:       "Sakkal Majalla",
		HeaderFont:     "Helvetica Neue",
		FooterFont:     "Tahoma",
		Language:       "ar-JO",
		BodySize:       style.Pt(12),
		HeaderSize:     style.Pt(14),
		FooterSize:     style.Pt(8),
		PageHeaderSize: style.Pt(10),

		Page:         tree.A4Landscape(),
		MetaGrid:     twips(4050, 9900),
		QuestionGrid: twips(3240, 4433, 4050, 2955),
		SceneGrid:    twips(3490, 3002, 4418, 3050),

		OuterBorder:     style.NewBorder(4, style.Black),
		InnerBorder:     style.NewBorder(18, style.White),
		HeaderRowHeight: layout.Twips(1400),
		CellMargins: tree.CellMargins{
			Top:    layout.Twips(57),
			Bottom: layout.Twips(57),
			Left:   layout.Twips(85),
			Right:  layout.Twips(85),
		},

		SlideWidth:     tree.DefaultSlideWidth,
		SlideHeight:    tree.DefaultSlideHeight,
		Primary:        style.MustColor("2D588C"),
		SlideText:      style.MustColor("333333"),
		Accent:         style.MustColor("009688"),
		DarkBackground: style.MustColor("1A1A2E"),
		CardFill:       style.MustColor("F5F7FA"),
		CardBorder:     style.MustColor("E0E5EC"),
		Success:        style.MustColor("4CAF50"),
		Danger:         style.MustColor("F44336"),
		Warning:        style.MustColor("FF9800"),

		TitleFont:    "Tajawal ExtraBold",
		SlideFont:    "Tajawal Medium",
		FallbackFont: "Sakkal Majalla",
		TextInsets: tree.Insets{
			Left:   layout.Cm(0.25),
			Right:  layout.Cm(0.25),
			Top:    layout.Cm(0.13),
			Bottom: layout.Cm(0.13),
		},
		Shadow: shadow,
	}
}

func twips(values ...int) []layout.Length {
	out := make([]layout.Length, len(values))
	for i, v := range values {
		out[i] = layout.Twips(v)
	}
	return out
}

// Validate checks every color and border of the theme.
func (t Theme) Validate() error {
	colors := map[string]style.Color{
		"HeaderFill": t.HeaderFill, "HeaderText": t.HeaderText, "LabelFill": t.LabelFill,
		"ValueFill": t.ValueFill, "SceneFill": t.SceneFill, "TextColor": t.TextColor,
		"Primary": t.Primary, "SlideText": t.SlideText, "CardFill": t.CardFill,
		"CardBorder": t.CardBorder,
	}
	for name, c := range colors {
		if !c.Valid() {
			return fmt.Errorf("theme %s: invalid color %q", name, c)
		}
	}
	for _, b := range []style.Border{t.OuterBorder, t.InnerBorder} {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("theme border: %w", err)
		}
	}
	if t.BodyFont == "" {
		return fmt.Errorf("theme body font is empty")
	}
	if t.SlideWidth <= 0 || t.SlideHeight <= 0 {
		return fmt.Errorf("theme slide size %dx%d is not positive", t.SlideWidth, t.SlideHeight)
	}
	return nil
}

// TableBorders is the default border set of every table: a thin outer
// frame and inner separators in the value color, which hide them.
func (t Theme) TableBorders() style.BorderSet {
	set := style.BorderSet{}
	for _, e := range style.OuterEdges {
		set = set.With(e, t.OuterBorder)
	}
	return set.With(style.EdgeInsideH, t.InnerBorder).With(style.EdgeInsideV, t.InnerBorder)
}

// Body is the right-to-left body text style.
func (t Theme) Body() style.Spec {
	return style.Spec{}.
		WithRTL(t.BodyFont).
		WithFont(style.Font{Family: t.BodyFont, Size: t.BodySize, Color: t.TextColor}).
		WithLanguage(t.Language).
		WithAlign(style.AlignRight)
}

// HeaderCell is the style of a teal table header cell.
func (t Theme) HeaderCell() style.Spec {
	return t.Body().
		WithFill(t.HeaderFill).
		WithFont(style.Font{Family: t.BodyFont, Size: t.HeaderSize, Bold: true, Color: t.HeaderText}).
		WithAlign(style.AlignCenter).
		WithVAlign(style.VAlignCenter)
}

// LabelCell is the style of the label column of a key/value table.
func (t Theme) LabelCell() style.Spec {
	return t.Body().
		WithFill(t.LabelFill).
		WithBold(true).
		WithVAlign(style.VAlignCenter)
}

// ValueCell is the style of the value column of a key/value table.
func (t Theme) ValueCell() style.Spec {
	return t.Body().WithFill(t.ValueFill).WithVAlign(style.VAlignCenter)
}

// Footer is the style of footer text.
func (t Theme) Footer() style.Spec {
	return t.Body().
		WithFont(style.Font{Family: t.FooterFont, Size: t.FooterSize, Color: t.TextColor}).
		WithAlign(style.AlignCenter)
}

// SlideTitle is the style of a slide heading.
func (t Theme) SlideTitle(halfPoints int) style.Spec {
	return style.Spec{}.
		WithRTL(t.TitleFont).
		WithFont(style.Font{Family: t.TitleFont, Size: halfPoints, Bold: true, Color: t.Primary}).
		WithLanguage(t.Language).
		WithAlign(style.AlignRight)
}

// SlideBody is the style of slide body text.
func (t Theme) SlideBody(halfPoints int) style.Spec {
	return style.Spec{}.
		WithRTL(t.SlideFont).
		WithFont(style.Font{Family: t.SlideFont, Size: halfPoints, Color: t.SlideText}).
		WithLanguage(t.Language).
		WithAlign(style.AlignRight)
}

// Card is the style of a content card: light fill, thin border and a soft
// shadow.
func (t Theme) Card() style.Spec {
	return style.Spec{}.
		WithFill(t.CardFill).
		WithOutline(style.Outline{Color: t.CardBorder, Width: layout.Pt(1).EMU()}).
		WithShadow(t.Shadow)
}

// AccentCard is a card filled with a light tint of the accent color, used
// to single out one card in a row.
func (t Theme) AccentCard() style.Spec {
	return t.Card().
		WithFill(t.Accent.Tint(0.85)).
		WithOutline(style.Outline{Color: t.Accent, Width: layout.Pt(1).EMU()})
}

// Button is the style of a navigation shape: primary fill with a darker
// rim.
func (t Theme) Button() style.Spec {
	return style.Spec{}.
		WithFill(t.Primary).
		WithOutline(style.Outline{Color: t.Primary.Shade(0.3), Width: layout.Pt(1.5).EMU()})
}
