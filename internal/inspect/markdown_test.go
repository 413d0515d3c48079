package inspect

import (
	"strings"
	"testing"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

func mdDoc(t *testing.T, src string) *memdom.Document {
	t.Helper()
	d, err := memdom.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return d
}

func TestPageMarkdown_RoundTripSanity(t *testing.T) {
	d := mdDoc(t, `<h1>Title</h1><p>Body text</p><ul><li>a</li><li>b</li></ul>`)
	got := New(d).PageMarkdown()

	title := strings.Index(got, "# Title")
	bodyText := strings.Index(got, "Body text")
	itemA := strings.Index(got, "- a")
	itemB := strings.Index(got, "- b")
	if title < 0 || bodyText < 0 || itemA < 0 || itemB < 0 {
		t.Fatalf("missing structure in: %q", got)
	}
	if !(title < bodyText && bodyText < itemA && itemA < itemB) {
		t.Errorf("relative order wrong in: %q", got)
	}
	if strings.Contains(got, "\n\n\n") {
		t.Errorf("triple-blank-line run in: %q", got)
	}
}

func TestPageMarkdown_Headings(t *testing.T) {
	d := mdDoc(t, `<h2>Two</h2><h3>Three</h3>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "## Two") {
		t.Errorf("h2 not rendered: %q", got)
	}
	if !strings.Contains(got, "### Three") {
		t.Errorf("h3 not rendered: %q", got)
	}
}

func TestPageMarkdown_Links(t *testing.T) {
	d := mdDoc(t, `<p>See <a href="https://example.com/docs">the docs</a> here</p>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "[the docs](https://example.com/docs)") {
		t.Errorf("link not rendered: %q", got)
	}
}

func TestPageMarkdown_InlineAndFenced(t *testing.T) {
	d := mdDoc(t, `<p><strong>bold</strong> and <em>soft</em> and <code>x=1</code></p><pre>line one
line two</pre>`)
	got := New(d).PageMarkdown()
	for _, want := range []string{"**bold**", "*soft*", "`x=1`", "```"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in: %q", want, got)
		}
	}
}

func TestPageMarkdown_OrderedList(t *testing.T) {
	d := mdDoc(t, `<ol><li>first</li><li>second</li></ol>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "1. first") || !strings.Contains(got, "2. second") {
		t.Errorf("ordered list not rendered: %q", got)
	}
}

func TestPageMarkdown_Blockquote(t *testing.T) {
	d := mdDoc(t, `<blockquote>quoted words</blockquote>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "> quoted words") {
		t.Errorf("blockquote not rendered: %q", got)
	}
}

func TestPageMarkdown_StripsChrome(t *testing.T) {
	d := mdDoc(t, `<nav>menu items</nav><p>content</p><footer>copyright</footer><aside>ads</aside>`)
	got := New(d).PageMarkdown()
	if strings.Contains(got, "menu items") || strings.Contains(got, "copyright") || strings.Contains(got, "ads") {
		t.Errorf("chrome subtrees should be stripped: %q", got)
	}
	if !strings.Contains(got, "content") {
		t.Errorf("content lost: %q", got)
	}
}

func TestPageMarkdown_HorizontalRuleAndBreak(t *testing.T) {
	d := mdDoc(t, `<p>a<br>b</p><hr><p>c</p>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "---") {
		t.Errorf("hr not rendered: %q", got)
	}
}

func TestPageMarkdown_GenericContainersRecurse(t *testing.T) {
	d := mdDoc(t, `<div><section><span>deep text</span></section></div>`)
	got := New(d).PageMarkdown()
	if !strings.Contains(got, "deep text") {
		t.Errorf("generic containers should recurse: %q", got)
	}
	if strings.Contains(got, "<") {
		t.Errorf("no markup should leak: %q", got)
	}
}

func TestPageMarkdown_NeverPanics(t *testing.T) {
	// A document with a nil body exercises the diagnostic path end to end.
	got := New(panicDoc{}).PageMarkdown()
	if !strings.Contains(got, "error generating markdown") {
		t.Errorf("internal failure should become a diagnostic string, got %q", got)
	}
}

// panicDoc is a host whose tree queries blow up.
type panicDoc struct{}

func (panicDoc) Root() dom.Node                          { panic("host gone") }
func (panicDoc) Body() dom.Node                          { panic("host gone") }
func (panicDoc) ElementFromPoint(x, y float64) dom.Node  { panic("host gone") }
func (panicDoc) ActiveElement() dom.Node                 { return nil }
func (panicDoc) VisualViewport() dom.Viewport            { return dom.Viewport{} }
func (panicDoc) URL() string                             { return "" }
func (panicDoc) Title() string                           { return "" }
