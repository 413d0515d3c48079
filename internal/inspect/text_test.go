package inspect

import (
	"strings"
	"testing"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

// textBlock builds a p element containing one positioned text node.
func textBlock(d *memdom.Document, text string, y float64) *memdom.Node {
	p := d.CreateElement("p").SetRects(dom.NewRect(0, y, 400, 20))
	tn := d.CreateText(text)
	tn.SetRects(dom.NewRect(0, y, 300, 20))
	p.Append(tn)
	return p
}

func viewportDoc(w, h float64) *memdom.Document {
	d := memdom.New()
	d.Root().(*memdom.Node).SetClientSize(w, h)
	return d
}

func TestVisibleText_InViewport(t *testing.T) {
	d := viewportDoc(800, 600)
	body(d).Append(
		textBlock(d, "first line", 10),
		textBlock(d, "second line", 40),
	)

	got := New(d).VisibleText()
	if !strings.Contains(got, "first line") || !strings.Contains(got, "second line") {
		t.Errorf("visible text missing content: %q", got)
	}
}

func TestVisibleText_BelowViewportExcluded(t *testing.T) {
	d := viewportDoc(800, 600)
	body(d).Append(
		textBlock(d, "above the fold", 10),
		textBlock(d, "below the fold", 2000),
	)

	got := New(d).VisibleText()
	if !strings.Contains(got, "above the fold") {
		t.Errorf("in-viewport text missing: %q", got)
	}
	if strings.Contains(got, "below the fold") {
		t.Errorf("off-viewport text should be excluded: %q", got)
	}
}

func TestVisibleText_BlockBreaks(t *testing.T) {
	d := viewportDoc(800, 600)
	body(d).Append(
		textBlock(d, "para one", 10),
		textBlock(d, "para two", 40),
	)

	got := New(d).VisibleText()
	if !strings.Contains(got, "para one\n") {
		t.Errorf("block-level text should end with a line break: %q", got)
	}
}

func TestVisibleText_ScriptSkipped(t *testing.T) {
	d := viewportDoc(800, 600)
	script := d.CreateElement("script")
	code := d.CreateText("var x = 1;")
	code.SetRects(dom.NewRect(0, 0, 100, 20))
	script.Append(code)
	body(d).Append(script, textBlock(d, "real content", 10))

	got := New(d).VisibleText()
	if strings.Contains(got, "var x") {
		t.Errorf("script text should be skipped: %q", got)
	}
}

func TestVisibleText_BlankLinesCollapsed(t *testing.T) {
	d := viewportDoc(800, 600)
	body(d).Append(
		textBlock(d, "a", 10),
		textBlock(d, "\n\n", 40),
		textBlock(d, "\n\n", 70),
		textBlock(d, "b", 100),
	)

	got := New(d).VisibleText()
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("blank-line runs should be collapsed: %q", got)
	}
}
