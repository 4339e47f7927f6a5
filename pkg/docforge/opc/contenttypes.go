package opc

import (
	"encoding/xml"
	"path"
	"sort"
	"strings"
)

// NamespaceContentTypes is the namespace of [Content_Types].xml.
const NamespaceContentTypes = "http://schemas.openxmlformats.org/package/2006/content-types"

// ContentTypesPart is the name of the content type manifest.
const ContentTypesPart = "[Content_Types].xml"

// Content types of the parts the engine emits.
const (
	TypeRelationships = "application/vnd.openxmlformats-package.relationships+xml"
	TypeXML           = "application/xml"
	TypeCore          = "application/vnd.openxmlformats-package.core-properties+xml"
	TypeExtended      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	TypeDocument      = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	TypeStyles        = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	TypeSettings      = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	TypeHeader        = "application/vnd.openxmlformats-officedocument.wordprocessingml.header+xml"
	TypeFooter        = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
	TypePresentation  = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	TypeSlide         = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	TypeSlideLayout   = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	TypeSlideMaster   = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	TypeNotesSlide    = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	TypeNotesMaster   = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
	TypePresProps     = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	TypeViewProps     = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	TypeTableStyles   = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	TypeTheme         = "application/vnd.openxmlformats-officedocument.theme+xml"
)

// ContentTypeDefault maps a file extension to a content type.
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps one part to a content type.
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypes is the content type manifest of a package.
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

// NewContentTypes creates a manifest with the defaults every package needs.
func NewContentTypes() *ContentTypes {
	ct := &ContentTypes{Namespace: NamespaceContentTypes}
	ct.AddDefault("rels", TypeRelationships)
	ct.AddDefault("xml", TypeXML)
	return ct
}

// AddDefault registers an extension. An existing entry is kept.
func (ct *ContentTypes) AddDefault(ext, contentType string) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return
		}
	}
	ct.Defaults = append(ct.Defaults, ContentTypeDefault{Extension: ext, ContentType: contentType})
}

// AddOverride registers one part, replacing an earlier entry for it.
func (ct *ContentTypes) AddOverride(partName, contentType string) {
	name := "/" + strings.TrimPrefix(partName, "/")
	for i, o := range ct.Overrides {
		if o.PartName == name {
			ct.Overrides[i].ContentType = contentType
			return
		}
	}
	ct.Overrides = append(ct.Overrides, ContentTypeOverride{PartName: name, ContentType: contentType})
}

// ContentTypeFor returns the declared content type of a part: its override
// or else the default of its extension.
func (ct *ContentTypes) ContentTypeFor(partName string) (string, bool) {
	name := "/" + strings.TrimPrefix(partName, "/")
	for _, o := range ct.Overrides {
		if strings.EqualFold(o.PartName, name) {
			return o.ContentType, true
		}
	}
	ext := strings.TrimPrefix(path.Ext(partName), ".")
	for _, d := range ct.Defaults {
		if strings.EqualFold(d.Extension, ext) {
			return d.ContentType, true
		}
	}
	return "", false
}

// OverrideParts returns the part names with an override, without the
// leading slash.
func (ct *ContentTypes) OverrideParts() []string {
	out := make([]string, 0, len(ct.Overrides))
	for _, o := range ct.Overrides {
		out = append(out, strings.TrimPrefix(o.PartName, "/"))
	}
	sort.Strings(out)
	return out
}

// sorted returns a copy with defaults and overrides in a stable order.
func (ct *ContentTypes) sorted() *ContentTypes {
	out := &ContentTypes{Namespace: NamespaceContentTypes}
	out.Defaults = append(out.Defaults, ct.Defaults...)
	out.Overrides = append(out.Overrides, ct.Overrides...)
	sort.Slice(out.Defaults, func(i, j int) bool { return out.Defaults[i].Extension < out.Defaults[j].Extension })
	sort.Slice(out.Overrides, func(i, j int) bool { return out.Overrides[i].PartName < out.Overrides[j].PartName })
	return out
}
