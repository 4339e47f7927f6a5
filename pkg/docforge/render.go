package docforge

import (
	"fmt"
	"strconv"
	"time"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/layout"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/media"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/opc"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/resolve"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
	docxml "github.com/benjaminschreck/go-docforge/pkg/docforge/xml"
)

// Namespaces of the document property parts.
const (
	namespaceCore     = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	namespaceDC       = "http://purl.org/dc/elements/1.1/"
	namespaceDCTerms  = "http://purl.org/dc/terms/"
	namespaceDCMIType = "http://purl.org/dc/dcmitype/"
	namespaceXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	namespaceExtended = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	namespaceVT       = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
)

const (
	corePart = "docProps/core.xml"
	appPart  = "docProps/app.xml"

	// applicationName is written to the extended properties.
	applicationName = "docforge"

	// pixelEMU is the size of one pixel at 96 dpi.
	pixelEMU layout.Length = 9525
)

// renderer holds the state of one document being serialized.
type renderer struct {
	engine *Engine
	theme  Theme
	log    *Logger
	res    *resolve.Resolver
	pkg    *opc.Package
	doc    *tree.Document

	mediaDir string
	media    map[string]string // source path -> media part
	embedded map[string]string // part + source path -> relationship id
}

func newRenderer(e *Engine, doc *tree.Document, log *Logger) *renderer {
	return &renderer{
		engine: e,
		theme:  e.theme,
		log:    log,
		res: resolve.New(
			resolve.WithReporter(log),
			resolve.WithStrict(e.config.StrictMode),
			resolve.WithDefaultBorders(e.theme.TableBorders()),
		),
		pkg:      opc.New(),
		doc:      doc,
		media:    make(map[string]string),
		embedded: make(map[string]string),
	}
}

// addPart serializes a part root, checks it against the container schemas
// and stores it.
func (r *renderer) addPart(name, contentType string, v interface{}) error {
	data, err := docxml.Marshal(v)
	if err != nil {
		return &SchemaError{Part: name, Cause: err}
	}
	if err := docxml.ValidatePart(data); err != nil {
		return &SchemaError{Part: name, Cause: err}
	}
	if err := r.pkg.AddPart(name, contentType, data); err != nil {
		return NewDocumentError("add part", name, err)
	}
	r.log.Debug("added part %s (%d bytes)", name, len(data))
	return nil
}

// embed loads the image of a picture, stores it as a media part and relates
// it to source. ok is false when the picture is dropped: a missing file is
// reported as info, an unreadable one as a warning.
func (r *renderer) embed(source string, pic *tree.Picture) (asset *media.Asset, rid string, ok bool, err error) {
	asset, err = r.engine.assets.Load(pic.Path)
	if err != nil {
		if media.IsNotExist(err) {
			r.res.Info(pic, "picture %s not found, dropped", pic.Path)
			r.log.Info("dropping missing picture %s", pic.Path)
			return nil, "", false, nil
		}
		return nil, "", false, r.res.Warn(pic, "picture dropped: %v", err)
	}

	part, seen := r.media[pic.Path]
	if !seen {
		part = opc.MediaName(r.mediaDir, len(r.media)+1, "."+asset.Ext())
		r.pkg.AddDefault(asset.Ext(), asset.ContentType())
		if err := r.pkg.AddPart(part, "", asset.Data); err != nil {
			return nil, "", false, NewDocumentError("embed", pic.Path, err)
		}
		r.media[pic.Path] = part
	}

	key := source + "\x00" + pic.Path
	if rid, seen = r.embedded[key]; !seen {
		rid = r.pkg.Relate(source, opc.RelImage, part)
		r.embedded[key] = rid
	}
	return asset, rid, true, nil
}

// naturalSize is the size of an image shown at 96 dpi.
func naturalSize(a *media.Asset) (layout.Length, layout.Length) {
	return layout.Length(a.Width) * pixelEMU, layout.Length(a.Height) * pixelEMU
}

// pictureGeometry returns the placement of a picture: its declared box,
// aspect-fitted when requested, or the natural image size at its offset.
func pictureGeometry(pic *tree.Picture, a *media.Asset) layout.Geometry {
	g, ok := pic.Geometry()
	if !ok || g.Width <= 0 || g.Height <= 0 {
		w, h := naturalSize(a)
		return layout.Box(g.X, g.Y, w, h)
	}
	if pic.Fit {
		return layout.AspectFit(a.Width, a.Height, g)
	}
	return g
}

// properties adds the core and extended property parts.
func (r *renderer) properties(extra ...*docxml.Element) error {
	r.pkg.Relate("", opc.RelCoreProperties, corePart)
	r.pkg.Relate("", opc.RelExtendedProps, appPart)

	core := docxml.New("cp:coreProperties",
		docxml.A("xmlns:cp", namespaceCore),
		docxml.A("xmlns:dc", namespaceDC),
		docxml.A("xmlns:dcterms", namespaceDCTerms),
		docxml.A("xmlns:dcmitype", namespaceDCMIType),
		docxml.A("xmlns:xsi", namespaceXSI),
	)
	if r.doc.Title != "" {
		core.Add(docxml.New("dc:title").SetText(r.doc.Title))
	}
	if r.doc.Subject != "" {
		core.Add(docxml.New("dc:subject").SetText(r.doc.Subject))
	}
	if r.doc.Creator != "" {
		core.Add(docxml.New("dc:creator").SetText(r.doc.Creator))
	}
	if !r.doc.Created.IsZero() {
		ts := r.doc.Created.UTC().Format(time.RFC3339)
		core.Add(
			docxml.New("dcterms:created", docxml.A("xsi:type", "dcterms:W3CDTF")).SetText(ts),
			docxml.New("dcterms:modified", docxml.A("xsi:type", "dcterms:W3CDTF")).SetText(ts),
		)
	}
	if err := r.addPart(corePart, opc.TypeCore, core); err != nil {
		return err
	}

	app := docxml.New("Properties",
		docxml.A("xmlns", namespaceExtended),
		docxml.A("xmlns:vt", namespaceVT),
	).Add(docxml.New("Application").SetText(applicationName))
	app.Add(extra...)
	return r.addPart(appPart, opc.TypeExtended, app)
}

// nodeName returns the explicit name of a node or a numbered fallback.
func nodeName(n tree.Node, fallback string, id int) string {
	if name := n.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("%s %d", fallback, id)
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

func emu(l layout.Length) string {
	return strconv.FormatInt(l.EMU(), 10)
}
