// Package inspect turns a rendered page into structured, machine-consumable
// snapshots: the interactive-element map, viewport state, page metadata,
// visible text, and a simplified markdown rendering. It owns the heuristics
// (interactivity classification, role/name inference, occlusion testing) and
// talks to the page only through the dom host interfaces, so it runs the
// same against a live browser tab or a synthetic document.
package inspect

import (
	"strconv"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// idAttr is the attribute stamped onto labeled nodes. It is the only
// mutation the engine performs on the page.
const idAttr = "__elementId"

// idBase is the first identifier a fresh counter hands out.
const idBase = 10

// Counter generates page-lifetime element identifiers: monotonically
// increasing, never reused, scoped to one document lifetime. It is an
// explicit object rather than package state so tests can isolate it.
type Counter struct {
	next int
}

// NewCounter returns a counter starting at the fixed base.
func NewCounter() *Counter {
	return &Counter{next: idBase}
}

// Next returns the next identifier and advances the counter.
func (c *Counter) Next() int {
	n := c.next
	c.next++
	return n
}

// Region describes one interactive node: its tag class, approximate
// accessible role and name, whether it scrolls vertically, and its visible
// non-occluded rectangles. Field names match the wire format the
// orchestrator consumes.
type Region struct {
	TagName     string     `yaml:"tag_name"     json:"tag_name"`
	Role        string     `yaml:"role"         json:"role"`
	AriaName    string     `yaml:"aria-name"    json:"aria-name"`
	VScrollable bool       `yaml:"v-scrollable" json:"v-scrollable"`
	Rects       []dom.Rect `yaml:"rects"        json:"rects"`
}

// Element is the array-form record: a Region plus its identifier.
type Element struct {
	ID     string `yaml:"id" json:"id"`
	Region `yaml:",inline"`
}

// Inspector inspects one document. All snapshot methods are synchronous
// reads of current document state; the only side effect is identifier
// stamping, which is idempotent.
type Inspector struct {
	doc     dom.Document
	counter *Counter
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithCounter shares an existing identifier counter, e.g. across inspectors
// of the same page lifetime.
func WithCounter(c *Counter) Option {
	return func(ins *Inspector) { ins.counter = c }
}

// New creates an Inspector over doc with a fresh identifier counter.
func New(doc dom.Document, opts ...Option) *Inspector {
	ins := &Inspector{doc: doc, counter: NewCounter()}
	for _, opt := range opts {
		opt(ins)
	}
	return ins
}

// Doc returns the inspected document.
func (ins *Inspector) Doc() dom.Document { return ins.doc }

// nodeID returns the stamped identifier of a labeled node.
func nodeID(n dom.Node) (string, bool) {
	return n.Attr(idAttr)
}

// stamp labels a node with the next identifier if it has none. Re-labeling
// an already-labeled node is a no-op.
func (ins *Inspector) stamp(n dom.Node) {
	if _, ok := n.Attr(idAttr); !ok {
		n.SetAttr(idAttr, strconv.Itoa(ins.counter.Next()))
	}
}
