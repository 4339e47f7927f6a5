package xml

import (
	"strconv"
)

// Builders for DrawingML fragments. Every call returns new, detached
// elements, so a fragment is never shared between two parents.

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}

// SolidFill builds a:solidFill with an sRGB color. alpha is the opacity in
// percent; 100 omits the alpha element.
func SolidFill(color string, alpha int) *Element {
	return New("a:solidFill").Add(RGB(color, alpha))
}

// RGB builds a:srgbClr with an optional alpha in percent.
func RGB(color string, alpha int) *Element {
	clr := New("a:srgbClr", A("val", color))
	if alpha >= 0 && alpha < 100 {
		clr.Add(New("a:alpha", A("val", strconv.Itoa(alpha*1000))))
	}
	return clr
}

// NoFill builds a:noFill.
func NoFill() *Element {
	return New("a:noFill")
}

// Xfrm builds an a:xfrm transform with offset and extent in EMU.
func Xfrm(x, y, cx, cy int64) *Element {
	return New("a:xfrm").Add(
		New("a:off", A("x", itoa(x)), A("y", itoa(y))),
		New("a:ext", A("cx", itoa(cx)), A("cy", itoa(cy))),
	)
}

// GroupXfrm builds the transform of a group, whose child coordinate space
// equals its own.
func GroupXfrm(x, y, cx, cy int64) *Element {
	return New("a:xfrm").Add(
		New("a:off", A("x", itoa(x)), A("y", itoa(y))),
		New("a:ext", A("cx", itoa(cx)), A("cy", itoa(cy))),
		New("a:chOff", A("x", itoa(x)), A("y", itoa(y))),
		New("a:chExt", A("cx", itoa(cx)), A("cy", itoa(cy))),
	)
}

// PresetGeometry builds a:prstGeom. adj is the first adjustment value in
// 1/100000 units, or negative for the preset default.
func PresetGeometry(prst string, adj int) *Element {
	av := New("a:avLst")
	if adj >= 0 {
		av.Add(New("a:gd", A("name", "adj"), A("fmla", "val "+strconv.Itoa(adj))))
	}
	return New("a:prstGeom", A("prst", prst)).Add(av)
}

// Outline builds a:ln with a solid color. A zero width lets the consumer
// pick its default.
func Outline(width int64, color string) *Element {
	ln := New("a:ln")
	if width > 0 {
		ln.SetAttr("w", itoa(width))
	}
	return ln.Add(SolidFill(color, 100))
}

// NoOutline builds a:ln with no line.
func NoOutline() *Element {
	return New("a:ln").Add(NoFill())
}

// OuterShadow builds a:effectLst with one outer shadow. alpha is the
// opacity of the shadow color in percent.
func OuterShadow(blur, dist int64, dir int, color string, alpha int) *Element {
	shadow := New("a:outerShdw",
		A("blurRad", itoa(blur)),
		A("dist", itoa(dist)),
		A("dir", strconv.Itoa(dir)),
		A("algn", "ctr"),
		A("rotWithShape", "0"),
	).Add(RGB(color, alpha))
	return New("a:effectLst").Add(shadow)
}

// SlideJump builds a click action that navigates to the slide behind rid.
func SlideJump(rid string) *Element {
	return New("a:hlinkClick", A("r:id", rid), A("action", "ppaction://hlinksldjump"))
}

// BlipFill builds the picture fill of p:pic (prefix "p") or pic:pic
// (prefix "pic").
func BlipFill(prefix, rid string) *Element {
	return New(prefix+":blipFill").Add(
		New("a:blip", A("r:embed", rid)),
		New("a:stretch").Add(New("a:fillRect")),
	)
}

// InlinePicture builds the w:drawing of an inline picture in a run.
func InlinePicture(rid string, id int, name, descr string, cx, cy int64) *Element {
	docPr := New("wp:docPr", A("id", strconv.Itoa(id)), A("name", name))
	if descr != "" {
		docPr.SetAttr("descr", descr)
	}
	pic := New("pic:pic", A("xmlns:pic", NamespacePic)).Add(
		New("pic:nvPicPr").Add(
			New("pic:cNvPr", A("id", strconv.Itoa(id)), A("name", name)),
			New("pic:cNvPicPr"),
		),
		BlipFill("pic", rid),
		New("pic:spPr").Add(
			Xfrm(0, 0, cx, cy),
			PresetGeometry("rect", -1),
		),
	)
	inline := New("wp:inline", A("distT", "0"), A("distB", "0"), A("distL", "0"), A("distR", "0")).Add(
		New("wp:extent", A("cx", itoa(cx)), A("cy", itoa(cy))),
		New("wp:effectExtent", A("l", "0"), A("t", "0"), A("r", "0"), A("b", "0")),
		docPr,
		New("wp:cNvGraphicFramePr").Add(New("a:graphicFrameLocks", A("xmlns:a", NamespaceA), A("noChangeAspect", "1"))),
		New("a:graphic", A("xmlns:a", NamespaceA)).Add(
			New("a:graphicData", A("uri", NamespacePic)).Add(pic),
		),
	)
	return New("w:drawing").Add(inline)
}
