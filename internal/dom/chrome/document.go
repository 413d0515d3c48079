package chrome

import (
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// Document wraps one loaded tab. Node wrappers are cached per CDP backend
// node id so the same page node always yields the same Go pointer; the
// engine relies on that for identity deduplication.
type Document struct {
	page *rod.Page

	mu    sync.Mutex
	nodes map[proto.DOMBackendNodeID]*Node
}

func newDocument(page *rod.Page) *Document {
	return &Document{
		page:  page,
		nodes: make(map[proto.DOMBackendNodeID]*Node),
	}
}

// Page exposes the underlying rod page for callers that need to drive it
// (navigation, input) outside the inspection surface.
func (d *Document) Page() *rod.Page { return d.page }

func (d *Document) Root() dom.Node {
	return d.elementNode(`() => document.documentElement`)
}

func (d *Document) Body() dom.Node {
	return d.elementNode(`() => document.body`)
}

func (d *Document) ElementFromPoint(x, y float64) dom.Node {
	el, err := d.page.ElementByJS(rod.Eval(`(x, y) => document.elementFromPoint(x, y)`, x, y))
	if err != nil || el == nil {
		return nil
	}
	n := d.wrap(el)
	if n == nil {
		return nil
	}
	return n
}

func (d *Document) ActiveElement() dom.Node {
	return d.elementNode(`() => document.activeElement`)
}

// VisualViewport reads window.visualViewport. An old or restricted host
// that cannot answer reports zeros.
func (d *Document) VisualViewport() dom.Viewport {
	obj, err := d.page.Eval(`() => {
		const v = window.visualViewport;
		if (!v) return null;
		return {
			height: v.height, width: v.width,
			offsetLeft: v.offsetLeft, offsetTop: v.offsetTop,
			pageLeft: v.pageLeft, pageTop: v.pageTop,
			scale: v.scale,
		};
	}`)
	if err != nil || obj.Value.Nil() {
		return dom.Viewport{}
	}
	v := obj.Value
	return dom.Viewport{
		Height:     v.Get("height").Num(),
		Width:      v.Get("width").Num(),
		OffsetLeft: v.Get("offsetLeft").Num(),
		OffsetTop:  v.Get("offsetTop").Num(),
		PageLeft:   v.Get("pageLeft").Num(),
		PageTop:    v.Get("pageTop").Num(),
		Scale:      v.Get("scale").Num(),
	}
}

func (d *Document) URL() string {
	info, err := d.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (d *Document) Title() string {
	info, err := d.page.Info()
	if err != nil {
		return ""
	}
	return info.Title
}

func (d *Document) elementNode(js string) dom.Node {
	el, err := d.page.ElementByJS(rod.Eval(js))
	if err != nil || el == nil {
		return nil
	}
	n := d.wrap(el)
	if n == nil {
		return nil
	}
	return n
}

// wrap returns the cached wrapper for el, creating one on first sight.
func (d *Document) wrap(el *rod.Element) *Node {
	desc, err := el.Describe(0, false)
	if err != nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if n, ok := d.nodes[desc.BackendNodeID]; ok {
		return n
	}

	n := &Node{doc: d, el: el, typ: dom.ElementNode}
	name := strings.ToLower(desc.NodeName)
	if strings.HasPrefix(name, "#") {
		// shadow roots arrive as #document-fragment
		n.typ = dom.FragmentNode
	} else {
		n.tag = name
	}
	d.nodes[desc.BackendNodeID] = n
	return n
}

// Node is one live page node. Element and fragment nodes hold a remote
// handle and answer queries by evaluating in the page; text nodes are
// materialized eagerly by their parent's ChildNodes call.
type Node struct {
	doc *Document
	el  *rod.Element
	typ dom.NodeType
	tag string

	// text nodes only
	data  string
	rects []dom.Rect

	parent *Node

	mu         sync.Mutex
	children   []*Node
	childrenOK bool
	shadow     *Node
	shadowOK   bool
}

func (n *Node) Type() dom.NodeType { return n.typ }
func (n *Node) Tag() string        { return n.tag }
func (n *Node) Data() string       { return n.data }

func (n *Node) Attr(name string) (string, bool) {
	if n.el == nil {
		return "", false
	}
	v, err := n.el.Attribute(name)
	if err != nil || v == nil {
		return "", false
	}
	return *v, true
}

func (n *Node) SetAttr(name, value string) {
	if n.el == nil {
		return
	}
	_, _ = n.el.Eval(`(name, value) => this.setAttribute(name, value)`, name, value)
}

func (n *Node) Attrs() []dom.Attr {
	if n.el == nil {
		return nil
	}
	obj, err := n.el.Eval(`() => Array.from(this.attributes || []).map(a => [a.name, a.value])`)
	if err != nil {
		return nil
	}
	var out []dom.Attr
	for _, pair := range obj.Value.Arr() {
		kv := pair.Arr()
		if len(kv) == 2 {
			out = append(out, dom.Attr{Name: kv[0].Str(), Value: kv[1].Str()})
		}
	}
	return out
}

func (n *Node) Parent() dom.Node {
	if n.parent != nil {
		return n.parent
	}
	if n.el == nil {
		return nil
	}
	parent, err := n.el.Parent()
	if err != nil || parent == nil {
		return nil
	}
	p := n.doc.wrap(parent)
	if p == nil {
		return nil
	}
	n.parent = p
	return p
}

// ChildNodes materializes element and text children in document order. The
// result is cached: the engine only mutates attributes, never structure.
func (n *Node) ChildNodes() []dom.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.childrenOK {
		n.children = n.fetchChildren()
		n.childrenOK = true
	}
	out := make([]dom.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) fetchChildren() []*Node {
	if n.el == nil {
		return nil
	}

	// One pass over childNodes: text nodes carry their data and range
	// rects, element entries are placeholders matched up with the handle
	// list below.
	obj, err := n.el.Eval(`() => Array.from(this.childNodes).map(node => {
		if (node.nodeType === Node.TEXT_NODE) {
			const range = document.createRange();
			range.selectNode(node);
			return {
				kind: "text",
				data: node.data,
				rects: Array.from(range.getClientRects()).map(r => ({
					x: r.x, y: r.y, w: r.width, h: r.height,
				})),
			};
		}
		return {kind: node.nodeType === Node.ELEMENT_NODE ? "element" : "other"};
	})`)
	if err != nil {
		return nil
	}

	elems, err := n.el.ElementsByJS(rod.Eval(`() => Array.from(this.children)`))
	if err != nil {
		elems = nil
	}

	var out []*Node
	next := 0
	for _, entry := range obj.Value.Arr() {
		switch entry.Get("kind").Str() {
		case "element":
			if next < len(elems) {
				if c := n.doc.wrap(elems[next]); c != nil {
					c.parent = n
					out = append(out, c)
				}
				next++
			}
		case "text":
			out = append(out, &Node{
				doc:    n.doc,
				typ:    dom.TextNode,
				data:   entry.Get("data").Str(),
				rects:  decodeRects(entry.Get("rects")),
				parent: n,
			})
		}
	}
	return out
}

func (n *Node) ShadowRoot() dom.Node {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.shadowOK {
		n.shadowOK = true
		if n.el != nil {
			if root, err := n.el.ShadowRoot(); err == nil && root != nil {
				if s := n.doc.wrap(root); s != nil {
					s.parent = n
					n.shadow = s
				}
			}
		}
	}
	if n.shadow == nil {
		return nil
	}
	return n.shadow
}

func (n *Node) Text() string {
	if n.typ == dom.TextNode {
		return n.data
	}
	if n.el == nil {
		return ""
	}
	obj, err := n.el.Eval(`() => this.textContent || ""`)
	if err != nil {
		return ""
	}
	return obj.Value.Str()
}

func (n *Node) BoundingRect() dom.Rect {
	if n.typ == dom.TextNode {
		var u dom.Rect
		for i, r := range n.rects {
			if i == 0 {
				u = r
			} else {
				u = u.Union(r)
			}
		}
		return u
	}
	obj, err := n.el.Eval(`() => {
		const r = this.getBoundingClientRect();
		return {x: r.x, y: r.y, w: r.width, h: r.height};
	}`)
	if err != nil {
		return dom.Rect{}
	}
	return decodeRect(obj.Value)
}

func (n *Node) ClientRects() []dom.Rect {
	if n.typ == dom.TextNode {
		return n.rects
	}
	obj, err := n.el.Eval(`() => Array.from(this.getClientRects()).map(r => ({
		x: r.x, y: r.y, w: r.width, h: r.height,
	}))`)
	if err != nil {
		return nil
	}
	return decodeRects(obj.Value)
}

func (n *Node) ClientSize() (w, h float64) {
	return n.sizePair(`() => [this.clientWidth || 0, this.clientHeight || 0]`)
}

func (n *Node) ScrollSize() (w, h float64) {
	return n.sizePair(`() => [this.scrollWidth || 0, this.scrollHeight || 0]`)
}

func (n *Node) OffsetSize() (w, h float64) {
	return n.sizePair(`() => [this.offsetWidth || 0, this.offsetHeight || 0]`)
}

func (n *Node) sizePair(js string) (w, h float64) {
	if n.el == nil {
		return 0, 0
	}
	obj, err := n.el.Eval(js)
	if err != nil {
		return 0, 0
	}
	pair := obj.Value.Arr()
	if len(pair) != 2 {
		return 0, 0
	}
	return pair[0].Num(), pair[1].Num()
}

func (n *Node) Style(prop string) string {
	if n.el == nil {
		return ""
	}
	obj, err := n.el.Eval(`(prop) => getComputedStyle(this).getPropertyValue(prop)`, prop)
	if err != nil {
		return ""
	}
	return obj.Value.Str()
}

func decodeRect(v gson.JSON) dom.Rect {
	return dom.NewRect(v.Get("x").Num(), v.Get("y").Num(), v.Get("w").Num(), v.Get("h").Num())
}

func decodeRects(v gson.JSON) []dom.Rect {
	var out []dom.Rect
	for _, r := range v.Arr() {
		out = append(out, decodeRect(r))
	}
	return out
}
