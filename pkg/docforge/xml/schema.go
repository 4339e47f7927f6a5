package xml

import "strings"

// Schema is the child sequence of one container element. Each rank lists
// the element names allowed at that position; names sharing a rank are
// alternatives of a choice and exclude each other in a PropertySet.
type Schema struct {
	Container string
	ranks     map[string]int
	names     [][]string
	// content marks the ranks that may repeat (paragraphs in a cell, runs
	// in a paragraph). Alternatives in a content rank may be mixed.
	content map[int]bool
}

// newSchema builds a schema from rank specs. "a|b" declares a choice, a
// leading "*" marks a repeating content rank.
func newSchema(container string, specs ...string) *Schema {
	s := &Schema{Container: container, ranks: make(map[string]int), content: make(map[int]bool)}
	for i, spec := range specs {
		if strings.HasPrefix(spec, "*") {
			s.content[i] = true
			spec = spec[1:]
		}
		names := strings.Split(spec, "|")
		s.names = append(s.names, names)
		for _, n := range names {
			s.ranks[n] = i
		}
	}
	return s
}

// Rank returns the position of name in the sequence.
func (s *Schema) Rank(name string) (int, bool) {
	r, ok := s.ranks[name]
	return r, ok
}

// Alternatives returns the other names of a choice rank.
func (s *Schema) Alternatives(name string) []string {
	r, ok := s.ranks[name]
	if !ok || s.content[r] {
		return nil
	}
	var out []string
	for _, n := range s.names[r] {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}

// Repeats reports whether the rank of name may occur more than once.
func (s *Schema) Repeats(name string) bool {
	r, ok := s.ranks[name]
	return ok && s.content[r]
}

func qualify(prefix string, specs []string) []string {
	out := make([]string, len(specs))
	for i, spec := range specs {
		star := ""
		if strings.HasPrefix(spec, "*") {
			star, spec = "*", spec[1:]
		}
		parts := strings.Split(spec, "|")
		for j, p := range parts {
			if !strings.Contains(p, ":") {
				parts[j] = prefix + ":" + p
			}
		}
		out[i] = star + strings.Join(parts, "|")
	}
	return out
}

var schemas = map[string]*Schema{}

func register(container, prefix string, specs ...string) {
	schemas[container] = newSchema(container, qualify(prefix, specs)...)
}

// SchemaFor returns the registered schema of a container.
func SchemaFor(container string) (*Schema, bool) {
	s, ok := schemas[container]
	return s, ok
}

const fillChoice = "noFill|solidFill|gradFill|blipFill|pattFill|grpFill"

func init() {
	// WordprocessingML property containers.
	register("w:pPr", "w",
		"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl",
		"numPr", "suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens",
		"kinsoku", "wordWrap", "overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN",
		"bidi", "adjustRightInd", "snapToGrid", "spacing", "ind", "contextualSpacing",
		"mirrorIndents", "suppressOverlap", "jc", "textDirection", "textAlignment",
		"textboxTightWrap", "outlineLvl", "divId", "cnfStyle", "rPr", "sectPr", "pPrChange")
	register("w:rPr", "w",
		"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
		"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish", "webHidden",
		"color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
		"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
		"specVanish", "oMath")
	register("w:tblPr", "w",
		"tblStyle", "tblpPr", "tblOverlap", "bidiVisual", "tblStyleRowBandSize",
		"tblStyleColBandSize", "tblW", "jc", "tblCellSpacing", "tblInd", "tblBorders", "shd",
		"tblLayout", "tblCellMar", "tblLook", "tblCaption", "tblDescription")
	register("w:trPr", "w",
		"cnfStyle", "divId", "gridBefore", "gridAfter", "wBefore", "wAfter", "cantSplit",
		"trHeight", "tblHeader", "tblCellSpacing", "jc", "hidden")
	register("w:tcPr", "w",
		"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd", "noWrap",
		"tcMar", "textDirection", "tcFitText", "vAlign", "hideMark")
	register("w:tcBorders", "w", "top", "start|left", "bottom", "end|right", "insideH", "insideV", "tl2br", "tr2bl")
	register("w:tblBorders", "w", "top", "start|left", "bottom", "end|right", "insideH", "insideV")
	register("w:pBdr", "w", "top", "left", "bottom", "right", "between", "bar")
	register("w:tcMar", "w", "top", "start|left", "bottom", "end|right")
	register("w:tblCellMar", "w", "top", "start|left", "bottom", "end|right")
	register("w:sectPr", "w",
		"headerReference", "footerReference", "footnotePr", "endnotePr", "type", "pgSz",
		"pgMar", "paperSrc", "pgBorders", "lnNumType", "pgNumType", "cols", "formProt",
		"vAlign", "noEndnote", "titlePg", "textDirection", "bidi", "rtlGutter", "docGrid",
		"printerSettings")

	// WordprocessingML structure.
	register("w:body", "w", "*p|tbl", "sectPr")
	register("w:hdr", "w", "*p|tbl")
	register("w:ftr", "w", "*p|tbl")
	register("w:tbl", "w", "tblPr", "tblGrid", "*tr")
	register("w:tr", "w", "tblPrEx", "trPr", "*tc")
	register("w:tc", "w", "tcPr", "*p|tbl")
	register("w:p", "w", "pPr", "*r|hyperlink|fldSimple|bookmarkStart|bookmarkEnd")
	register("w:r", "w", "rPr", "*t|br|tab|fldChar|instrText|drawing|sym")

	// DrawingML text and shape properties.
	register("a:pPr", "a",
		"lnSpc", "spcBef", "spcAft", "buClrTx|buClr", "buSzTx|buSzPct|buSzPts",
		"buFontTx|buFont", "buNone|buAutoNum|buChar|buBlip", "tabLst", "defRPr", "extLst")
	rPr := []string{"ln", fillChoice, "effectLst|effectDag", "highlight", "uLnTx|uLn",
		"uFillTx|uFill", "latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst"}
	register("a:rPr", "a", rPr...)
	register("a:endParaRPr", "a", rPr...)
	register("a:bodyPr", "a", "prstTxWarp", "noAutofit|normAutofit|spAutoFit", "scene3d", "sp3d|flatTx", "extLst")
	register("a:ln", "a", "noFill|solidFill|gradFill|pattFill", "prstDash|custDash", "round|bevel|miter", "headEnd", "tailEnd", "extLst")
	register("a:tcPr", "a", "lnL", "lnR", "lnT", "lnB", "lnTlToBr", "lnBlToTr", "cell3D", fillChoice, "headers", "extLst")
	register("a:tblPr", "a", fillChoice, "effectLst|effectDag", "tableStyle|tableStyleId", "extLst")
	register("a:tbl", "a", "tblPr", "tblGrid", "*tr")
	register("a:tr", "a", "*tc")
	register("a:tc", "a", "txBody", "tcPr", "extLst")
	register("a:p", "a", "pPr", "*r|br|fld", "endParaRPr")
	register("a:r", "a", "rPr", "t")
	register("p:spPr", "a",
		"xfrm", "custGeom|prstGeom", fillChoice, "ln", "effectLst|effectDag", "scene3d", "sp3d", "extLst")
	register("p:grpSpPr", "a", "xfrm", fillChoice, "effectLst|effectDag", "scene3d", "extLst")

	// PresentationML structure.
	register("p:sp", "p", "nvSpPr", "spPr", "style", "txBody", "extLst")
	register("p:pic", "p", "nvPicPr", "blipFill", "spPr", "style", "extLst")
	register("p:grpSp", "p", "nvGrpSpPr", "grpSpPr", "*sp|grpSp|graphicFrame|cxnSp|pic", "extLst")
	register("p:spTree", "p", "nvGrpSpPr", "grpSpPr", "*sp|grpSp|graphicFrame|cxnSp|pic", "extLst")
	register("p:cNvPr", "a", "hlinkClick", "hlinkHover", "extLst")
	register("p:txBody", "a", "bodyPr", "lstStyle", "*p")
	register("a:txBody", "a", "bodyPr", "lstStyle", "*p")
	register("p:cSld", "p", "bg", "spTree", "custDataLst", "controls", "extLst")
	register("p:sld", "p", "cSld", "clrMapOvr", "transition", "timing", "extLst")
	register("p:notes", "p", "cSld", "clrMapOvr", "extLst")
}
