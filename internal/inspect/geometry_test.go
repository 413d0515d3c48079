package inspect

import (
	"testing"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

func TestIsVisible_CollapsedNodeFails(t *testing.T) {
	d := memdom.New()
	el := d.CreateElement("button")
	body(d).Append(el)
	if IsVisible(el) {
		t.Error("node with no layout boxes should not be visible")
	}
}

func TestIsVisible_OffscreenStillPasses(t *testing.T) {
	d := memdom.New()
	el := d.CreateElement("button").SetRects(dom.NewRect(-5000, -5000, 80, 20))
	body(d).Append(el)
	if !IsVisible(el) {
		t.Error("off-screen but rendered node should be visible")
	}
}

func TestIsTopmost_NoElementAtPointAssumesUnoccluded(t *testing.T) {
	d := memdom.New()
	el := d.CreateElement("button").SetRects(dom.NewRect(10, 10, 80, 20))
	body(d).Append(el)
	// Nothing is painted at (5000, 5000).
	if !IsTopmost(d, el, 5000, 5000) {
		t.Error("point outside any paint surface should be treated as unoccluded")
	}
}

func TestIsTopmost_MatchesThroughAncestorChain(t *testing.T) {
	d := memdom.New()
	outer := d.CreateElement("div").SetRects(dom.NewRect(0, 0, 200, 200))
	inner := d.CreateElement("span").SetRects(dom.NewRect(50, 50, 100, 100))
	outer.Append(inner)
	body(d).Append(outer)

	// The hit test lands on inner; outer is topmost via the parent walk.
	if !IsTopmost(d, outer, 100, 100) {
		t.Error("ancestor of the painted element should count as topmost")
	}
}

func TestOcclusion_CoveredRectDropped(t *testing.T) {
	d := memdom.New()
	buried := button(d, 10, 10, 100, 40)
	cover := d.CreateElement("div", dom.Attr{Name: "onclick", Value: "x()"}).
		SetRects(dom.NewRect(0, 0, 200, 100))
	// cover comes after buried in document order, so it paints on top.
	body(d).Append(buried, cover)

	rects := New(d).InteractiveRects()

	var buriedRects, coverRects int
	buriedID, _ := buried.Attr("__elementId")
	coverID, _ := cover.Attr("__elementId")
	if r, ok := rects[buriedID]; ok {
		buriedRects = len(r.Rects)
	}
	if r, ok := rects[coverID]; ok {
		coverRects = len(r.Rects)
	}
	if buriedRects != 0 {
		t.Errorf("fully covered node reported %d rects, want 0", buriedRects)
	}
	if coverRects != 1 {
		t.Errorf("covering node reported %d rects, want 1", coverRects)
	}
}

func TestVerticallyScrollable(t *testing.T) {
	d := memdom.New()
	el := d.CreateElement("div").
		SetRects(dom.NewRect(0, 0, 300, 200)).
		SetClientSize(300, 200).
		SetScrollSize(300, 600)
	if !verticallyScrollable(el) {
		t.Error("scroll extent 600 over client 200 should be scrollable")
	}

	flat := d.CreateElement("div").SetRects(dom.NewRect(0, 0, 300, 200))
	if verticallyScrollable(flat) {
		t.Error("node without overflow should not be scrollable")
	}
}
