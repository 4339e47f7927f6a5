package xml

import (
	"encoding/xml"
)

// Namespace URIs used by the emitted parts.
const (
	NamespaceW   = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NamespaceR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NamespaceA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NamespaceP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NamespaceWP  = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NamespacePic = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Header is the XML declaration written at the top of every part.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// BodyElement represents any element that can appear in a document body
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// RunContent represents any content that can appear in a run
type RunContent interface {
	isRunContent()
}

// A builds an attribute with a prefixed local name.
func A(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// Namespaces returns xmlns declarations for the given prefixes.
func Namespaces(prefixes ...string) []xml.Attr {
	uris := map[string]string{
		"w":   NamespaceW,
		"r":   NamespaceR,
		"a":   NamespaceA,
		"p":   NamespaceP,
		"wp":  NamespaceWP,
		"pic": NamespacePic,
	}
	out := make([]xml.Attr, 0, len(prefixes))
	for _, p := range prefixes {
		if uri, ok := uris[p]; ok {
			out = append(out, A("xmlns:"+p, uri))
		}
	}
	return out
}
