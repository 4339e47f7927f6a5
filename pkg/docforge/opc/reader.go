package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Reader gives access to the parts of an existing package.
type Reader struct {
	reader *zip.Reader
	Parts  map[string]*zip.File
}

// NewReader opens a package and checks for its content type manifest.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read zip file")
	}

	pr := &Reader{
		reader: zipReader,
		Parts:  make(map[string]*zip.File),
	}

	// Index all parts by name
	for _, file := range zipReader.File {
		pr.Parts[file.Name] = file
	}

	if _, ok := pr.Parts[ContentTypesPart]; !ok {
		return nil, errors.Errorf("not a valid package: missing %s", ContentTypesPart)
	}

	return pr, nil
}

// ReadFile opens a package from a file path.
func ReadFile(path string) (*Reader, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read file")
	}
	return NewReader(bytes.NewReader(content), int64(len(content)))
}

// GetPart retrieves the content of a specific part
func (pr *Reader) GetPart(partName string) ([]byte, error) {
	file, ok := pr.Parts[partName]
	if !ok {
		return nil, errors.Errorf("part %s not found", partName)
	}

	rc, err := file.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open part %s", partName)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read part %s", partName)
	}

	return content, nil
}

// GetRelationships retrieves relationships for a given part. The empty name
// is the package root. A part without a relationships part has none.
func (pr *Reader) GetRelationships(partName string) ([]Relationship, error) {
	relPath := RelsPathFor(partName)
	if _, ok := pr.Parts[relPath]; !ok {
		return []Relationship{}, nil
	}

	content, err := pr.GetPart(relPath)
	if err != nil {
		return nil, err
	}

	var rels Relationships
	if err := xml.Unmarshal(content, &rels); err != nil {
		return nil, errors.Wrapf(err, "failed to parse relationships of %q", partName)
	}

	return rels.Relationship, nil
}

// ContentTypes parses the content type manifest.
func (pr *Reader) ContentTypes() (*ContentTypes, error) {
	content, err := pr.GetPart(ContentTypesPart)
	if err != nil {
		return nil, err
	}
	var ct ContentTypes
	if err := xml.Unmarshal(content, &ct); err != nil {
		return nil, errors.Wrap(err, "failed to parse content types")
	}
	return &ct, nil
}

// ListParts returns the content part names in sorted order. The manifest
// and relationship parts are left out.
func (pr *Reader) ListParts() []string {
	parts := make([]string, 0, len(pr.Parts))
	for name := range pr.Parts {
		if name == ContentTypesPart || strings.HasSuffix(name, ".rels") {
			continue
		}
		parts = append(parts, name)
	}
	sort.Strings(parts)
	return parts
}

// Reachable follows the relationship graph from the package root and
// returns every internal target in sorted order.
func (pr *Reader) Reachable() ([]string, error) {
	seen := make(map[string]bool)
	queue := []string{""}
	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]
		rels, err := pr.GetRelationships(source)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			if rel.IsExternal() {
				continue
			}
			target := ResolveTarget(source, rel.Target)
			if seen[target] {
				continue
			}
			seen[target] = true
			if _, ok := pr.Parts[target]; ok {
				queue = append(queue, target)
			}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}
