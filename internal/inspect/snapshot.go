package inspect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// InteractiveRects labels all interactive elements, then returns the
// interactive snapshot keyed by string-encoded identifier.
func (ins *Inspector) InteractiveRects() map[string]Region {
	nodes := ins.labelAll()
	out := make(map[string]Region, len(nodes))
	for _, n := range nodes {
		if n.Tag() == "option" && !ins.optionIncluded(n) {
			continue
		}
		id, ok := nodeID(n)
		if !ok {
			// Appeared between stamping and recomputation; it will be
			// labeled on the next call.
			continue
		}
		out[id] = ins.region(n)
	}
	return out
}

// InteractiveElements returns the same snapshot in array form, ordered by
// identifier.
func (ins *Inspector) InteractiveElements() []Element {
	rects := ins.InteractiveRects()
	out := make([]Element, 0, len(rects))
	for id, r := range rects {
		out = append(out, Element{ID: id, Region: r})
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out
}

func (ins *Inspector) region(n dom.Node) Region {
	role, class := resolveRole(n)
	return Region{
		TagName:     class,
		Role:        role,
		AriaName:    resolveName(ins.doc, n),
		VScrollable: verticallyScrollable(n),
		Rects:       visibleRects(ins.doc, n),
	}
}

// optionIncluded applies the option special case: a gathered option is kept
// only if its owning select is focused, the option is independently
// visible, or the select is in an explicitly expanded state.
func (ins *Inspector) optionIncluded(n dom.Node) bool {
	sel := owningSelect(n)
	if sel != nil && ins.doc.ActiveElement() == sel {
		return true
	}
	if IsVisible(n) {
		return true
	}
	if sel != nil && isExpanded(sel) {
		return true
	}
	return false
}

func owningSelect(n dom.Node) dom.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == dom.ElementNode && p.Tag() == "select" {
			return p
		}
	}
	return nil
}

func isExpanded(n dom.Node) bool {
	if v, ok := n.Attr("aria-expanded"); ok && strings.EqualFold(v, "true") {
		return true
	}
	_, open := n.Attr("open")
	return open
}

// VisualViewport returns a best-effort viewport snapshot: the host's visual
// viewport fields plus the document element's client and scroll extents.
// Fields the host cannot report stay zero.
func (ins *Inspector) VisualViewport() dom.Viewport {
	v := ins.doc.VisualViewport()
	if root := ins.doc.Root(); root != nil {
		v.ClientWidth, v.ClientHeight = root.ClientSize()
		v.ScrollWidth, v.ScrollHeight = root.ScrollSize()
	}
	return v
}

// FocusedElementID walks up from the focused node to the nearest labeled
// ancestor and returns its identifier. ok is false when nothing labeled has
// focus.
func (ins *Inspector) FocusedElementID() (id string, ok bool) {
	for n := ins.doc.ActiveElement(); n != nil; n = n.Parent() {
		if id, ok := nodeID(n); ok {
			return id, true
		}
	}
	return "", false
}
