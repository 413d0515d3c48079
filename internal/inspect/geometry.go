package inspect

import "github.com/Aaron-Ben/Magentic-mini/internal/dom"

// IsVisible reports whether the node occupies rendered layout space: a
// non-zero offset extent or at least one client rectangle. Nodes positioned
// off-screen but still rendered pass; display:none-style collapse fails.
func IsVisible(n dom.Node) bool {
	w, h := n.OffsetSize()
	if w > 0 || h > 0 {
		return true
	}
	return len(n.ClientRects()) > 0
}

// IsTopmost hit-tests a single point: it asks the host which element is
// painted at (x, y) and walks that element's ancestor chain looking for n.
// When the host reports nothing at the point at all, the point is treated
// as outside any paint surface and assumed unoccluded.
func IsTopmost(doc dom.Document, n dom.Node, x, y float64) bool {
	hit := doc.ElementFromPoint(x, y)
	if hit == nil {
		return true
	}
	for e := hit; e != nil; e = e.Parent() {
		if e == n {
			return true
		}
	}
	return false
}

// visibleRects returns the node's client rectangles that occupy space and
// are topmost at their center point. Testing only the center trades
// completeness for speed; one oracle consultation per rectangle.
func visibleRects(doc dom.Document, n dom.Node) []dom.Rect {
	var out []dom.Rect
	for _, r := range n.ClientRects() {
		if r.Width <= 0 && r.Height <= 0 {
			continue
		}
		cx, cy := r.Center()
		if IsTopmost(doc, n, cx, cy) {
			out = append(out, r)
		}
	}
	return out
}

// verticallyScrollable reports whether the node's scroll extent exceeds its
// visible extent by at least one unit.
func verticallyScrollable(n dom.Node) bool {
	_, sh := n.ScrollSize()
	_, ch := n.ClientSize()
	return sh-ch >= 1
}
