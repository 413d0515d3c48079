// Package memdom implements an in-memory dom.Document host. Tests build
// documents with the node builder and control geometry directly; Parse
// builds one from static HTML with a small synthetic layout so the engine
// can run against saved pages without a browser.
package memdom

import (
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// Document is a synthetic page.
type Document struct {
	root     *Node
	url      string
	title    string
	active   *Node
	viewport dom.Viewport
}

// Node is one synthetic tree position.
type Node struct {
	doc      *Document
	typ      dom.NodeType
	tag      string
	data     string
	attrs    []dom.Attr
	parent   *Node
	children []*Node
	shadow   *Node

	rects            []dom.Rect
	styles           map[string]string
	clientW, clientH float64
	scrollW, scrollH float64
	hasClient        bool
	hasScroll        bool
}

// New creates an empty document with an html/head/body skeleton.
func New() *Document {
	d := &Document{}
	root := d.CreateElement("html")
	root.Append(d.CreateElement("head"), d.CreateElement("body"))
	d.root = root
	return d
}

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string, attrs ...dom.Attr) *Node {
	return &Node{doc: d, typ: dom.ElementNode, tag: strings.ToLower(tag), attrs: attrs}
}

// CreateText creates a detached text node.
func (d *Document) CreateText(data string) *Node {
	return &Node{doc: d, typ: dom.TextNode, tag: "#text", data: data}
}

// SetURL sets the document's reported URL.
func (d *Document) SetURL(u string) { d.url = u }

// SetTitle sets the document's reported title.
func (d *Document) SetTitle(t string) { d.title = t }

// SetVisualViewport sets the visual-viewport fields reported by the host.
func (d *Document) SetVisualViewport(v dom.Viewport) { d.viewport = v }

// Focus marks n as the active element. Passing nil clears focus.
func (d *Document) Focus(n *Node) { d.active = n }

func (d *Document) Root() dom.Node { return d.root }

func (d *Document) Body() dom.Node {
	for _, c := range d.root.children {
		if c.typ == dom.ElementNode && c.tag == "body" {
			return c
		}
	}
	return nil
}

// ElementFromPoint approximates paint order by document order: among all
// rendered elements whose rectangles contain the point, the last one in
// traversal order (deepest, latest sibling) wins.
func (d *Document) ElementFromPoint(x, y float64) dom.Node {
	var hit *Node
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.typ == dom.ElementNode && n.styles["display"] != "none" {
			for _, r := range n.rects {
				if r.Contains(x, y) {
					hit = n
					break
				}
			}
		}
		for _, c := range n.children {
			visit(c)
		}
		if n.shadow != nil {
			visit(n.shadow)
		}
	}
	visit(d.root)
	if hit == nil {
		return nil
	}
	return hit
}

func (d *Document) ActiveElement() dom.Node {
	if d.active == nil {
		return nil
	}
	return d.active
}

func (d *Document) VisualViewport() dom.Viewport { return d.viewport }

func (d *Document) URL() string   { return d.url }
func (d *Document) Title() string { return d.title }

// Append attaches children and returns n for chaining.
func (n *Node) Append(children ...*Node) *Node {
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return n
}

// Remove detaches n from its parent.
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// AttachShadow creates and returns an open shadow root on n.
func (n *Node) AttachShadow() *Node {
	n.shadow = &Node{doc: n.doc, typ: dom.FragmentNode, tag: "#shadow-root", parent: n}
	return n.shadow
}

// SetRects sets the node's client rectangles.
func (n *Node) SetRects(rects ...dom.Rect) *Node {
	n.rects = rects
	return n
}

// SetStyle sets a computed style property.
func (n *Node) SetStyle(prop, val string) *Node {
	if n.styles == nil {
		n.styles = map[string]string{}
	}
	n.styles[prop] = val
	return n
}

// SetClientSize overrides the derived client extent.
func (n *Node) SetClientSize(w, h float64) *Node {
	n.clientW, n.clientH = w, h
	n.hasClient = true
	return n
}

// SetScrollSize overrides the derived scroll extent.
func (n *Node) SetScrollSize(w, h float64) *Node {
	n.scrollW, n.scrollH = w, h
	n.hasScroll = true
	return n
}

func (n *Node) Type() dom.NodeType { return n.typ }
func (n *Node) Tag() string        { return n.tag }
func (n *Node) Data() string       { return n.data }

func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) SetAttr(name, value string) {
	for i, a := range n.attrs {
		if a.Name == name {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, dom.Attr{Name: name, Value: value})
}

func (n *Node) Attrs() []dom.Attr { return n.attrs }

func (n *Node) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) ChildNodes() []dom.Node {
	out := make([]dom.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) ShadowRoot() dom.Node {
	if n.shadow == nil {
		return nil
	}
	return n.shadow
}

func (n *Node) Text() string {
	var sb strings.Builder
	var visit func(n *Node)
	visit = func(n *Node) {
		if n.typ == dom.TextNode {
			sb.WriteString(n.data)
			return
		}
		for _, c := range n.children {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func (n *Node) BoundingRect() dom.Rect {
	if len(n.rects) == 0 {
		return dom.Rect{}
	}
	u := n.rects[0]
	for _, r := range n.rects[1:] {
		u = u.Union(r)
	}
	return u
}

func (n *Node) ClientRects() []dom.Rect { return n.rects }

func (n *Node) ClientSize() (w, h float64) {
	if n.hasClient {
		return n.clientW, n.clientH
	}
	b := n.BoundingRect()
	return b.Width, b.Height
}

func (n *Node) ScrollSize() (w, h float64) {
	if n.hasScroll {
		return n.scrollW, n.scrollH
	}
	return n.ClientSize()
}

func (n *Node) OffsetSize() (w, h float64) {
	b := n.BoundingRect()
	return b.Width, b.Height
}

func (n *Node) Style(prop string) string { return n.styles[prop] }
