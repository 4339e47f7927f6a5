package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// zipTime is the modification time of every archive entry.
var zipTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// ManifestError lists every problem Verify found.
type ManifestError struct {
	Problems []string
}

func (e *ManifestError) Error() string {
	return fmt.Sprintf("invalid package manifest: %s", strings.Join(e.Problems, "; "))
}

// Package is an in-memory OPC container.
type Package struct {
	parts map[string][]byte
	rels  map[string]*Relationships
	types *ContentTypes
}

// New creates an empty package.
func New() *Package {
	return &Package{
		parts: make(map[string][]byte),
		rels:  make(map[string]*Relationships),
		types: NewContentTypes(),
	}
}

// AddPart stores a part and registers its content type as an override.
// An empty content type relies on the extension default.
func (p *Package) AddPart(name, contentType string, data []byte) error {
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == ContentTypesPart || strings.HasSuffix(name, ".rels") {
		return errors.Errorf("part name %q is reserved", name)
	}
	if _, exists := p.parts[name]; exists {
		return errors.Errorf("part %s already exists", name)
	}
	p.parts[name] = data
	if contentType != "" {
		p.types.AddOverride(name, contentType)
	}
	return nil
}

// AddDefault registers a content type for an extension, e.g. for media.
func (p *Package) AddDefault(ext, contentType string) {
	p.types.AddDefault(ext, contentType)
}

// Part returns the data of a part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// PartNames returns the stored part names, relationship parts excluded,
// in sorted order.
func (p *Package) PartNames() []string {
	names := make([]string, 0, len(p.parts))
	for n := range p.parts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Relationships returns the relationships of a part, creating the
// collection on first use. The empty name is the package root.
func (p *Package) Relationships(source string) *Relationships {
	rels, ok := p.rels[source]
	if !ok {
		rels = NewRelationships()
		p.rels[source] = rels
	}
	return rels
}

// Relate adds a relationship from source to the part named target and
// returns its id. The stored target is relative to source.
func (p *Package) Relate(source, relType, target string) string {
	return p.Relationships(source).Add(relType, RelativeTarget(source, target))
}

// ContentTypes returns the manifest.
func (p *Package) ContentTypes() *ContentTypes {
	return p.types
}

// Manifest returns every archive entry name in write order.
func (p *Package) Manifest() []string {
	names := []string{ContentTypesPart}
	rest := p.PartNames()
	for source, rels := range p.rels {
		if len(rels.Relationship) > 0 {
			rest = append(rest, RelsPathFor(source))
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Verify checks the manifest and the relationship graph: every part has a
// content type, every override and internal relationship target exists,
// and every part is reachable from the package root.
func (p *Package) Verify() error {
	var problems []string

	for _, name := range p.PartNames() {
		if _, ok := p.types.ContentTypeFor(name); !ok {
			problems = append(problems, fmt.Sprintf("part %s has no content type", name))
		}
	}
	for _, name := range p.types.OverrideParts() {
		if _, ok := p.parts[name]; !ok {
			problems = append(problems, fmt.Sprintf("content type override for missing part %s", name))
		}
	}

	sources := make([]string, 0, len(p.rels))
	for s := range p.rels {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	for _, source := range sources {
		if source != "" {
			if _, ok := p.parts[source]; !ok && len(p.rels[source].Relationship) > 0 {
				problems = append(problems, fmt.Sprintf("relationships for missing part %s", source))
			}
		}
		for _, rel := range p.rels[source].Relationship {
			if rel.IsExternal() {
				continue
			}
			target := ResolveTarget(source, rel.Target)
			if _, ok := p.parts[target]; !ok {
				problems = append(problems, fmt.Sprintf("relationship %s of %q points to missing part %s", rel.ID, source, target))
			}
		}
	}

	reached := p.reachable()
	for _, name := range p.PartNames() {
		if !reached[name] {
			problems = append(problems, fmt.Sprintf("part %s is not reachable from the package root", name))
		}
	}

	if len(problems) > 0 {
		return &ManifestError{Problems: problems}
	}
	return nil
}

// reachable walks the relationship graph from the package root.
func (p *Package) reachable() map[string]bool {
	seen := make(map[string]bool)
	queue := []string{""}
	for len(queue) > 0 {
		source := queue[0]
		queue = queue[1:]
		rels, ok := p.rels[source]
		if !ok {
			continue
		}
		for _, rel := range rels.Relationship {
			if rel.IsExternal() {
				continue
			}
			target := ResolveTarget(source, rel.Target)
			if !seen[target] {
				seen[target] = true
				queue = append(queue, target)
			}
		}
	}
	return seen
}

// WriteTo writes the package as a zip archive. The content type manifest
// comes first; all other entries follow in name order with a fixed
// timestamp.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	entries := map[string][]byte{}
	ct, err := xml.Marshal(p.types.sorted())
	if err != nil {
		return cw.n, errors.Wrap(err, "marshal content types")
	}
	entries[ContentTypesPart] = append([]byte(xmlHeader), ct...)
	for name, data := range p.parts {
		entries[name] = data
	}
	for source, rels := range p.rels {
		if len(rels.Relationship) == 0 {
			continue
		}
		data, err := xml.Marshal(rels)
		if err != nil {
			return cw.n, errors.Wrapf(err, "marshal relationships of %q", source)
		}
		entries[RelsPathFor(source)] = append([]byte(xmlHeader), data...)
	}

	for _, name := range p.Manifest() {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: zipTime,
		})
		if err != nil {
			return cw.n, errors.Wrapf(err, "create %s", name)
		}
		if _, err := fw.Write(entries[name]); err != nil {
			return cw.n, errors.Wrapf(err, "write %s", name)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, errors.Wrap(err, "close zip writer")
	}
	return cw.n, nil
}

// Bytes returns the archive.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := p.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// MediaName returns the n-th media part name under dir with the extension
// of source, e.g. "word/media/image3.png".
func MediaName(dir string, n int, source string) string {
	ext := strings.ToLower(path.Ext(source))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	return fmt.Sprintf("%s/image%d%s", dir, n, ext)
}
