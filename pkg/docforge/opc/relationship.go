package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// Relationship type URIs used by the engine.
const (
	RelOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	RelCoreProperties = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	RelExtendedProps  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	RelStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	RelSettings       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	RelHeader         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/header"
	RelFooter         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	RelImage          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	RelTheme          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	RelSlide          = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	RelSlideLayout    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	RelSlideMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	RelNotesSlide     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	RelNotesMaster    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"
	RelPresProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	RelViewProps      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	RelTableStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
)

// NamespaceRelationships is the namespace of .rels parts.
const NamespaceRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"

// Relationship represents a relationship in the package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// IsExternal reports whether the target lies outside the package.
func (r Relationship) IsExternal() bool {
	return r.TargetMode == "External"
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

// NewRelationships creates an empty relationship collection.
func NewRelationships() *Relationships {
	return &Relationships{Namespace: NamespaceRelationships}
}

// Add appends a relationship and returns its new id.
func (rels *Relationships) Add(relType, target string) string {
	id := rels.nextID()
	rels.Relationship = append(rels.Relationship, Relationship{ID: id, Type: relType, Target: target})
	return id
}

// Find returns the relationship with the given id.
func (rels *Relationships) Find(id string) (Relationship, bool) {
	for _, r := range rels.Relationship {
		if r.ID == id {
			return r, true
		}
	}
	return Relationship{}, false
}

// ByType returns the relationships of one type in order.
func (rels *Relationships) ByType(relType string) []Relationship {
	var out []Relationship
	for _, r := range rels.Relationship {
		if r.Type == relType {
			out = append(out, r)
		}
	}
	return out
}

// nextID generates the next available relationship ID
func (rels *Relationships) nextID() string {
	maxID := 0
	for _, rel := range rels.Relationship {
		if strings.HasPrefix(rel.ID, "rId") {
			if id, err := strconv.Atoi(rel.ID[3:]); err == nil && id > maxID {
				maxID = id
			}
		}
	}
	return fmt.Sprintf("rId%d", maxID+1)
}

// RelsPathFor converts a part name to the name of its relationships part,
// e.g. "word/document.xml" -> "word/_rels/document.xml.rels". The empty
// name is the package root.
func RelsPathFor(partName string) string {
	dir := ""
	base := partName
	if idx := strings.LastIndex(partName, "/"); idx != -1 {
		dir = partName[:idx]
		base = partName[idx+1:]
	}
	if dir == "" {
		return fmt.Sprintf("_rels/%s.rels", base)
	}
	return fmt.Sprintf("%s/_rels/%s.rels", dir, base)
}

// ResolveTarget returns the part name a relationship target points to.
// Targets are relative to the directory of the source part unless they
// start with "/".
func ResolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	return strings.TrimPrefix(path.Join(path.Dir(source), target), "./")
}

// RelativeTarget returns target as seen from source, the inverse of
// ResolveTarget.
func RelativeTarget(source, target string) string {
	from := path.Dir(source)
	if from == "." {
		return target
	}
	fromParts := strings.Split(from, "/")
	toParts := strings.Split(target, "/")
	i := 0
	for i < len(fromParts) && i < len(toParts)-1 && fromParts[i] == toParts[i] {
		i++
	}
	up := strings.Repeat("../", len(fromParts)-i)
	return up + strings.Join(toParts[i:], "/")
}
