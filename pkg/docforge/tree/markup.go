package tree

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/benjaminschreck/go-docforge/pkg/docforge/style"
)

// legalTags defines the set of supported inline markup tags
var legalTags = map[string]bool{
	"b":      true,
	"strong": true,
	"i":      true,
	"em":     true,
	"u":      true,
	"span":   true,
	"br":     true,
}

// RunsFromMarkup converts a small inline markup subset into styled runs.
// Every run starts from base; b/strong, i/em and u toggle font flags, span
// accepts a color declaration in its style attribute and br emits a line
// break. Unsupported tags are an error.
func RunsFromMarkup(markup string, base style.Spec) ([]*Run, error) {
	if markup == "" {
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<body>" + markup + "</body>"))
	if err != nil {
		return nil, fmt.Errorf("invalid markup: %w", err)
	}

	var runs []*Run
	var walkErr error
	var walk func(sel *goquery.Selection, spec style.Spec)
	walk = func(sel *goquery.Selection, spec style.Spec) {
		sel.Contents().Each(func(_ int, s *goquery.Selection) {
			if walkErr != nil {
				return
			}
			tag := goquery.NodeName(s)
			switch tag {
			case "#text":
				if text := s.Text(); text != "" {
					r := NewRun(text)
					r.spec = spec
					runs = append(runs, r)
				}
				return
			case "#comment":
				return
			}

			if !legalTags[tag] {
				walkErr = fmt.Errorf("unsupported markup tag: %s", tag)
				return
			}

			child := spec
			switch tag {
			case "b", "strong":
				child.Font.Bold = true
			case "i", "em":
				child.Font.Italic = true
			case "u":
				child.Font.Underline = true
			case "br":
				r := NewBreak()
				r.spec = spec
				runs = append(runs, r)
				return
			case "span":
				if css, ok := s.Attr("style"); ok {
					if c, ok := parseColorDeclaration(css); ok {
						child.Font.Color = c
					}
				}
			}
			walk(s, child)
		})
	}
	walk(doc.Find("body"), base)

	if walkErr != nil {
		return nil, walkErr
	}
	return runs, nil
}

func parseColorDeclaration(css string) (style.Color, bool) {
	for _, decl := range strings.Split(css, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 || strings.TrimSpace(strings.ToLower(kv[0])) != "color" {
			continue
		}
		c, err := style.ParseColor(kv[1])
		if err != nil {
			return "", false
		}
		return c, true
	}
	return "", false
}

// ParagraphFromMarkup is RunsFromMarkup wrapped in a paragraph.
func ParagraphFromMarkup(markup string, base style.Spec) (*Paragraph, error) {
	runs, err := RunsFromMarkup(markup, base)
	if err != nil {
		return nil, err
	}
	return NewParagraph(runs...), nil
}
