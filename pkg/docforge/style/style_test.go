package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{name: "upper case", input: "31849B", want: "31849B"},
		{name: "lower case with marker", input: "#dbe5f1", want: "DBE5F1"},
		{name: "surrounding space", input: " ffffff ", want: White},
		{name: "too short", input: "12345", wantErr: true},
		{name: "not hex", input: "GGGGGG", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseColor(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColorBlend(t *testing.T) {
	c := MustColor("31849B")
	assert.Equal(t, c, c.Tint(0))
	assert.Equal(t, White, c.Tint(1))
	assert.Equal(t, Black, c.Shade(1))
	assert.True(t, c.Tint(0.5).Valid())
	assert.Equal(t, Color(""), Color("").Tint(0.5))
}

func TestContrast(t *testing.T) {
	assert.Equal(t, White, Contrast(MustColor("31849B")))
	assert.Equal(t, Black, Contrast(MustColor("DBE5F1")))
}

func TestBorderSet(t *testing.T) {
	thin := NewBorder(4, Black)
	set := BorderSet{}.With(EdgeTop, thin)

	assert.False(t, set.IsEmpty())
	require.NotNil(t, set.Get(EdgeTop))
	assert.Nil(t, set.Get(EdgeLeft))

	fallback := AllBorders(NewBorder(18, White))
	merged := set.Merge(fallback)
	assert.Equal(t, 4, merged.Get(EdgeTop).Size)
	assert.Equal(t, 18, merged.Get(EdgeLeft).Size)
	assert.Equal(t, 18, merged.Get(EdgeInsideV).Size)

	// With copies the border, so later edits of the argument do not leak.
	b := NewBorder(8, Black)
	set = set.With(EdgeBottom, b)
	b.Size = 24
	assert.Equal(t, 8, set.Get(EdgeBottom).Size)

	assert.True(t, set.Without(EdgeTop).Without(EdgeBottom).IsEmpty())
}

func TestBorderValidate(t *testing.T) {
	assert.NoError(t, NewBorder(12, Black).Validate())
	assert.NoError(t, NoBorder().Validate())
	assert.Error(t, Border{}.Validate())
	assert.Error(t, NewBorder(200, Black).Validate())
	assert.Error(t, NewBorder(4, "12").Validate())
}

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		spec    Spec
		wantErr error
	}{
		{name: "empty", spec: Spec{}},
		{name: "rtl with font", spec: Spec{}.WithRTL("Sakkal Majalla")},
		{name: "rtl without font", spec: Spec{Direction: RTL}, wantErr: ErrDirectionWithoutFont},
		{name: "font without rtl", spec: Spec{ComplexFont: "Tahoma"}, wantErr: ErrFontWithoutDirection},
		{name: "ltr clears both", spec: Spec{}.WithRTL("Tahoma").WithLTR()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	assert.Error(t, Spec{Fill: "zzzzzz"}.Validate())
	assert.Error(t, Spec{}.WithFontSize(-1).Validate())
	assert.Error(t, Spec{}.WithBorder(EdgeTop, NewBorder(-1, Black)).Validate())
	assert.Error(t, Spec{}.WithShadow(Shadow{Alpha: 140}).Validate())
}

func TestSpecInherit(t *testing.T) {
	parent := Spec{}.
		WithRTL("Sakkal Majalla").
		WithLanguage("ar-JO").
		WithFont(Font{Family: "Sakkal Majalla", Size: Pt(14), Bold: true}).
		WithFill(MustColor("DBE5F1")).
		WithAlign(AlignRight)

	child := Spec{}.WithFontSize(Pt(8)).Inherit(parent)

	assert.Equal(t, RTL, child.Direction)
	assert.Equal(t, "Sakkal Majalla", child.ComplexFont)
	assert.Equal(t, "Sakkal Majalla", child.Font.Family)
	assert.Equal(t, 16, child.Font.Size)
	assert.True(t, child.Font.Bold)
	assert.Equal(t, "ar-JO", child.Language)
	assert.Equal(t, AlignRight, child.HAlign)
	assert.False(t, child.Fill.IsSet(), "fill is not inherited")
	assert.NoError(t, child.Validate())

	own := Spec{}.WithRTL("Tahoma").Inherit(parent)
	assert.Equal(t, "Tahoma", own.ComplexFont)

	ltr := Spec{}.WithLTR().WithFontFamily("Consolas").Inherit(parent)
	assert.Equal(t, LTR, ltr.Direction, "explicit ltr is kept")
	assert.True(t, ltr.IsLTR())
	assert.Empty(t, ltr.ComplexFont)
	assert.Equal(t, "Consolas", ltr.Font.Family)
	assert.NoError(t, ltr.Validate())

	assert.Equal(t, DirectionUnset, Spec{}.Direction)
	assert.Equal(t, DirectionUnset, Spec{}.Inherit(Spec{}).Direction)
	assert.Equal(t, LTR, Spec{}.Inherit(Spec{}.WithLTR()).Direction)
}

func TestSpecWithIsCopy(t *testing.T) {
	base := Spec{}.WithFill(White)
	derived := base.WithFill(Black).WithShadow(DefaultShadow())

	assert.Equal(t, White, base.Fill)
	assert.Nil(t, base.Shadow)
	assert.Equal(t, Black, derived.Fill)
	require.NotNil(t, derived.Shadow)
	assert.Equal(t, 75, derived.Shadow.Alpha)
}
