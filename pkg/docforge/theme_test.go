package docforge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
)

func TestDefaultThemeIsValid(t *testing.T) {
	theme := DefaultTheme()
	require.NoError(t, theme.Validate())

	for _, spec := range []style.Spec{
		theme.Body(), theme.HeaderCell(), theme.LabelCell(), theme.ValueCell(), theme.Footer(),
		theme.SlideTitle(style.Pt(28)), theme.SlideBody(style.Pt(18)), theme.Card(),
		theme.AccentCard(), theme.Button(),
	} {
		assert.NoError(t, spec.Validate())
	}
}

func TestDefaultThemeGrids(t *testing.T) {
	theme := DefaultTheme()
	sum := func(grid []layout.Length) int {
		total := 0
		for _, w := range grid {
			total += w.Twips()
		}
		return total
	}
	assert.Equal(t, 13950, sum(theme.MetaGrid))
	assert.Equal(t, 14678, sum(theme.QuestionGrid))
	assert.Equal(t, 13960, sum(theme.SceneGrid))
	assert.Equal(t, 1400, theme.HeaderRowHeight.Twips())
}

func TestThemeTableBorders(t *testing.T) {
	theme := DefaultTheme()
	set := theme.TableBorders()
	for _, e := range style.OuterEdges {
		b := set.Get(e)
		require.NotNil(t, b, e.String())
		assert.Equal(t, theme.OuterBorder, *b)
	}
	require.NotNil(t, set.Get(style.EdgeInsideH))
	assert.Equal(t, theme.InnerBorder, *set.Get(style.EdgeInsideV))
}

func TestThemeStyles(t *testing.T) {
	theme := DefaultTheme()

	header := theme.HeaderCell()
	assert.True(t, header.IsRTL())
	assert.Equal(t, theme.HeaderFill, header.Fill)
	assert.True(t, header.Font.Bold)
	assert.Equal(t, style.AlignCenter, header.HAlign)

	assert.Equal(t, style.Pt(8), theme.Footer().Font.Size)
	assert.Equal(t, theme.Primary, theme.SlideTitle(style.Pt(28)).Font.Color)

	card := theme.Card()
	require.NotNil(t, card.Shadow)
	require.NotNil(t, card.Outline)
	assert.Equal(t, theme.CardBorder, card.Outline.Color)

	accent := theme.AccentCard()
	require.NotNil(t, accent.Outline)
	assert.Equal(t, theme.Accent, accent.Outline.Color)
	assert.Equal(t, theme.Accent.Tint(0.85), accent.Fill)
	assert.NotEqual(t, theme.Accent, accent.Fill)
	assert.NotNil(t, accent.Shadow, "accent card keeps the card shadow")
	assert.NoError(t, accent.Validate())

	button := theme.Button()
	assert.Equal(t, theme.Primary, button.Fill)
	require.NotNil(t, button.Outline)
	assert.Equal(t, theme.Primary.Shade(0.3), button.Outline.Color)
	assert.True(t, button.Outline.Color.Valid())
	assert.NoError(t, button.Validate())
}

func TestThemeValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Theme)
	}{
		{"bad color", func(th *Theme) { th.HeaderFill = "teal" }},
		{"no body font", func(th *Theme) { th.BodyFont = "" }},
		{"no slide size", func(th *Theme) { th.SlideWidth = 0 }},
		{"bad border", func(th *Theme) { th.OuterBorder = style.NewBorder(-1, style.Black) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			theme := DefaultTheme()
			tt.mutate(&theme)
			assert.Error(t, theme.Validate())
		})
	}
}
