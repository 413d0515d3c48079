// Package dom defines the boundary between the inspection engine and the
// host document it inspects. A host is anything that can answer tree,
// geometry, and style queries about a rendered page: a live browser tab
// (internal/dom/chrome) or a synthetic in-memory document (internal/dom/memdom).
// The engine in internal/inspect only ever talks to these interfaces.
package dom

// NodeType distinguishes the node kinds the engine cares about.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
	FragmentNode // shadow roots and other container fragments
)

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Node is one position in the live document tree. Implementations must be
// comparable (pointer receivers) so the engine can deduplicate by identity.
// A Node is owned by its Document and must not be retained across
// navigations.
type Node interface {
	Type() NodeType

	// Tag returns the lower-case tag name for element nodes and "" otherwise.
	Tag() string

	// Data returns the character data of a text node and "" otherwise.
	Data() string

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	Attrs() []Attr

	Parent() Node

	// ChildNodes returns element and text children in document order.
	ChildNodes() []Node

	// ShadowRoot returns the node's open shadow root, or nil. Closed shadow
	// roots are not reachable through this interface.
	ShadowRoot() Node

	// Text returns the recursive text content of the subtree.
	Text() string

	// BoundingRect returns the union bounding box in viewport coordinates.
	BoundingRect() Rect

	// ClientRects returns the individual layout rectangles. A node that is
	// not rendered returns none.
	ClientRects() []Rect

	// ClientSize returns clientWidth/clientHeight.
	ClientSize() (w, h float64)

	// ScrollSize returns scrollWidth/scrollHeight.
	ScrollSize() (w, h float64)

	// OffsetSize returns offsetWidth/offsetHeight.
	OffsetSize() (w, h float64)

	// Style returns the computed value of a single style property, or ""
	// when the host cannot resolve it.
	Style(prop string) string
}

// Document is a handle to one loaded page.
type Document interface {
	// Root returns the document element.
	Root() Node

	// Body returns the main content root, or nil before it exists.
	Body() Node

	// ElementFromPoint returns the topmost painted element at the given
	// viewport coordinates, or nil when nothing is painted there.
	ElementFromPoint(x, y float64) Node

	// ActiveElement returns the currently focused node, or nil.
	ActiveElement() Node

	// VisualViewport reports the host's visual viewport. Fields the host
	// cannot report are zero.
	VisualViewport() Viewport

	URL() string
	Title() string
}

// Elements filters child nodes down to element nodes.
func Elements(n Node) []Node {
	var out []Node
	for _, c := range n.ChildNodes() {
		if c.Type() == ElementNode {
			out = append(out, c)
		}
	}
	return out
}
