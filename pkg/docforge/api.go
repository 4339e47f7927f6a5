// Package docforge assembles visually exact office documents from an
// in-memory element tree. A tree of sections, tables and paragraphs
// becomes a .docx package; a tree of slides, shapes and pictures becomes a
// .pptx package.
//
// Basic Usage:
//
//	theme := docforge.DefaultTheme()
//	doc := tree.NewDocument(tree.Wordprocessing)
//	sec := tree.NewSection(theme.Page)
//	_ = tree.AppendChild(doc, sec)
//
//	table := tree.NewTable(theme.MetaGrid...)
//	// ... rows, cells and paragraphs
//	_ = tree.AppendChild(sec, table)
//
//	engine := docforge.New()
//	result, err := engine.Save(doc, "out/storyboard.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, d := range result.Diagnostics {
//	    log.Println(d)
//	}
//
// Formatting is declared with style.Spec values on the nodes and resolved
// into schema-ordered attribute sets by package resolve. Conflicting
// explicit overrides are reported as diagnostics, or as errors in strict
// mode.
package docforge

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/inspect"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/media"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/resolve"
	"github.com/benjaminschreck/go-docforge/pkg/docforge/tree"
)

// Engine renders element trees into packages. An engine may render several
// documents concurrently; the only state shared between them is the image
// cache.
type Engine struct {
	config *Config
	theme  Theme
	logger *Logger
	assets *media.AssetCache
}

// Result is a rendered package.
type Result struct {
	Format tree.Format
	Data   []byte
	// Parts lists the archive entries in write order.
	Parts       []string
	Diagnostics []resolve.Diagnostic
	Duration    time.Duration
}

// Size returns the package size in bytes.
func (r *Result) Size() int {
	return len(r.Data)
}

// WriteTo writes the package to w.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.Data)
	return int64(n), err
}

// Warnings returns the warning diagnostics.
func (r *Result) Warnings() []resolve.Diagnostic {
	var out []resolve.Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == resolve.SeverityWarning {
			out = append(out, d)
		}
	}
	return out
}

// Option represents a configuration option for the engine.
type Option func(*Engine)

// WithConfig returns an option that sets the engine configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) {
		e.config = NewConfigWithDefaults(config)
	}
}

// WithTheme returns an option that replaces the default theme.
func WithTheme(theme Theme) Option {
	return func(e *Engine) {
		e.theme = theme
	}
}

// WithLogger returns an option that sets the logger.
func WithLogger(logger *Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithStrictMode returns an option that turns warnings into errors.
func WithStrictMode(strict bool) Option {
	return func(e *Engine) {
		e.config.StrictMode = strict
	}
}

// WithAssetCache returns an option that sets the image cache size (0
// disables caching).
func WithAssetCache(maxSize int) Option {
	return func(e *Engine) {
		e.config.AssetCacheSize = maxSize
	}
}

// New creates an engine with the global configuration and the default
// theme.
func New(opts ...Option) *Engine {
	return NewWithConfig(GetGlobalConfig(), opts...)
}

// NewWithConfig creates an engine with a custom configuration. The
// configuration is copied.
func NewWithConfig(config *Config, opts ...Option) *Engine {
	cfg := *NewConfigWithDefaults(config)
	e := &Engine{
		config: &cfg,
		theme:  DefaultTheme(),
		logger: GetLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.assets = media.NewAssetCache(media.CacheConfig{
		MaxSize: e.config.AssetCacheSize,
		TTL:     e.config.AssetCacheTTL,
	})
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config
}

// Theme returns the engine's theme.
func (e *Engine) Theme() Theme {
	return e.theme
}

// ClearCache drops every cached image.
func (e *Engine) ClearCache() {
	e.assets.Clear()
}

// Render serializes doc into a package. The tree is normalized in place
// first. Schema or manifest failures abort with a *SchemaError; missing
// pictures are dropped and reported in Result.Diagnostics.
func (e *Engine) Render(doc *tree.Document) (result *Result, err error) {
	if doc == nil {
		return nil, NewDocumentError("render", "", fmt.Errorf("document is nil"))
	}
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = NewDocumentError("render", doc.Title, RecoverError(r))
		}
	}()

	start := time.Now()
	log := e.logger.WithFields(Fields{"format": doc.Format.String(), "title": doc.Title})
	if merged := tree.Normalize(doc); merged > 0 {
		log.Debug("normalized %d runs", merged)
	}

	r := newRenderer(e, doc, log)
	switch doc.Format {
	case tree.Presentation:
		err = r.presentation()
	default:
		err = r.wordprocessing()
	}
	if err != nil {
		return nil, err
	}

	if err := r.pkg.Verify(); err != nil {
		return nil, &SchemaError{Cause: err}
	}
	data, err := r.pkg.Bytes()
	if err != nil {
		return nil, NewDocumentError("package", doc.Title, err)
	}
	if e.config.VerifyOutput {
		if err := verify(doc, data, log); err != nil {
			return nil, err
		}
	}

	result = &Result{
		Format:      doc.Format,
		Data:        data,
		Parts:       r.pkg.Manifest(),
		Diagnostics: r.res.Diagnostics(),
		Duration:    time.Since(start),
	}
	log.Debug("rendered %d parts, %s in %v", len(result.Parts), humanize.Bytes(uint64(len(data))), result.Duration)
	return result, nil
}

// verify reads the package back and compares its structure with the tree.
func verify(doc *tree.Document, data []byte, log *Logger) error {
	summary, err := inspect.Read(data)
	if err != nil {
		return &SchemaError{Cause: err}
	}
	for _, note := range summary.Notes {
		log.Debug("read back: %s", note)
	}
	if len(summary.Unreachable) > 0 {
		return &SchemaError{Cause: fmt.Errorf("unreachable parts %v", summary.Unreachable)}
	}
	switch doc.Format {
	case tree.Presentation:
		if want := len(doc.Slides()); summary.Slides != want {
			return &SchemaError{Part: presentationPart, Cause: fmt.Errorf("read back %d slides, want %d", summary.Slides, want)}
		}
	default:
		want := 0
		for _, sec := range doc.Sections() {
			for _, c := range sec.Children() {
				if c.Kind() == tree.KindTable {
					want++
				}
			}
		}
		if len(summary.Tables) != want {
			return &SchemaError{Part: documentPart, Cause: fmt.Errorf("read back %d tables, want %d", len(summary.Tables), want)}
		}
	}
	return nil
}

// Save renders doc and writes it to path, creating parent directories.
func (e *Engine) Save(doc *tree.Document, path string) (*Result, error) {
	result, err := e.Render(doc)
	if err != nil {
		return nil, err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, NewDocumentError("save", path, err)
		}
	}
	if err := os.WriteFile(path, result.Data, 0o644); err != nil {
		return nil, NewDocumentError("save", path, err)
	}
	e.logger.WithField("path", path).Info("saved %s (%s, %d warnings)",
		filepath.Base(path), humanize.Bytes(uint64(result.Size())), len(result.Warnings()))
	return result, nil
}

// RenderBatch renders documents concurrently. Results keep the input
// order; a failed document leaves a nil result and its error is collected
// in the returned *MultiError.
func (e *Engine) RenderBatch(docs []*tree.Document) ([]*Result, error) {
	results := make([]*Result, len(docs))
	errs := make([]error, len(docs))

	var wg sync.WaitGroup
	for i, doc := range docs {
		wg.Add(1)
		go func(i int, doc *tree.Document) {
			defer wg.Done()
			results[i], errs[i] = e.Render(doc)
		}(i, doc)
	}
	wg.Wait()

	multi := NewMultiError()
	for i, err := range errs {
		if err != nil {
			multi.Add(fmt.Errorf("document %d: %w", i, err))
		}
	}
	return results, multi.Err()
}

// Bytes renders doc and returns the raw package.
func (e *Engine) Bytes(doc *tree.Document) ([]byte, error) {
	result, err := e.Render(doc)
	if err != nil {
		return nil, err
	}
	return bytes.Clone(result.Data), nil
}
