package memdom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	lineHeight            = 18
	controlHeight         = 24
	controlWidth          = 160
	charWidth             = 8
)

type parseConfig struct {
	width, height float64
	url           string
}

// ParseOption customizes Parse.
type ParseOption func(*parseConfig)

// WithViewport sets the synthetic viewport size.
func WithViewport(w, h float64) ParseOption {
	return func(c *parseConfig) { c.width, c.height = w, h }
}

// WithURL sets the document's reported URL.
func WithURL(u string) ParseOption {
	return func(c *parseConfig) { c.url = u }
}

// Parse reads an HTML document and builds a memdom Document. A small flow
// layout assigns every rendered element and text node a rectangle (blocks
// stack vertically, text wraps at the viewport width) so geometry-dependent
// operations behave sensibly on saved pages. It is an approximation, not a
// rendering engine.
func Parse(r io.Reader, opts ...ParseOption) (*Document, error) {
	cfg := parseConfig{width: defaultViewportWidth, height: defaultViewportHeight}
	for _, opt := range opts {
		opt(&cfg)
	}

	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	d := &Document{url: cfg.url}
	var htmlNode *Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			htmlNode = convert(d, c)
			break
		}
	}
	if htmlNode == nil {
		htmlNode = New().root
		htmlNode.doc = d
	}
	d.root = htmlNode

	if t := findTag(htmlNode, "title"); t != nil {
		d.title = strings.TrimSpace(t.Text())
	}

	height := layout(htmlNode, 0, 0, cfg.width)
	d.root.SetClientSize(cfg.width, cfg.height)
	d.root.SetScrollSize(cfg.width, max(height, cfg.height))
	d.viewport = dom.Viewport{Width: cfg.width, Height: cfg.height, Scale: 1}
	return d, nil
}

// convert maps an x/net/html subtree onto memdom nodes, keeping element and
// non-blank text nodes and recording inline style declarations.
func convert(d *Document, src *html.Node) *Node {
	n := d.CreateElement(src.Data)
	for _, a := range src.Attr {
		n.attrs = append(n.attrs, dom.Attr{Name: strings.ToLower(a.Key), Value: a.Val})
	}
	if style, ok := n.Attr("style"); ok {
		for prop, val := range parseInlineStyle(style) {
			n.SetStyle(prop, val)
		}
	}
	for c := src.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			n.Append(convert(d, c))
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				n.Append(d.CreateText(c.Data))
			}
		}
	}
	return n
}

func parseInlineStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		prop, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.TrimSpace(strings.ToLower(prop))] = strings.TrimSpace(val)
	}
	return out
}

func findTag(n *Node, tag string) *Node {
	if n.typ == dom.ElementNode && n.tag == tag {
		return n
	}
	for _, c := range n.children {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// unrendered tags never get layout boxes.
var unrendered = map[string]bool{
	"head": true, "script": true, "style": true, "title": true,
	"meta": true, "link": true, "template": true, "noscript": true,
}

// layout assigns rectangles by stacking content vertically from y and
// returns the height consumed. Options stay unrendered until their select
// is expanded, matching closed native dropdowns.
func layout(n *Node, x, y, width float64) float64 {
	if n.typ == dom.TextNode {
		chars := float64(len(strings.TrimSpace(n.data)))
		if chars == 0 {
			return 0
		}
		lines := 1.0
		if chars*charWidth > width && width > 0 {
			lines = float64(int(chars*charWidth/width)) + 1
		}
		w := min(chars*charWidth, width)
		n.rects = []dom.Rect{dom.NewRect(x, y, w, lines*lineHeight)}
		return lines * lineHeight
	}

	if unrendered[n.tag] || n.styles["display"] == "none" {
		return 0
	}
	if _, hidden := n.Attr("hidden"); hidden {
		return 0
	}
	if n.tag == "input" {
		if t, _ := n.Attr("type"); strings.EqualFold(t, "hidden") {
			return 0
		}
	}

	childY := y
	if n.tag != "select" {
		for _, c := range n.children {
			childY += layout(c, x, childY, width)
		}
		if n.shadow != nil {
			for _, c := range n.shadow.children {
				childY += layout(c, x, childY, width)
			}
		}
	}

	h := childY - y
	w := width
	switch n.tag {
	case "input", "button", "select", "textarea":
		if h < controlHeight {
			h = controlHeight
		}
		w = controlWidth
	case "img":
		if h == 0 {
			h = 100
			w = 100
		}
	case "br", "hr":
		h = lineHeight
	}
	if h == 0 {
		return 0
	}
	n.rects = []dom.Rect{dom.NewRect(x, y, w, h)}
	return h
}
