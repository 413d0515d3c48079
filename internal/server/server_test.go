package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
	"github.com/Aaron-Ben/Magentic-mini/internal/output"
)

const testPage = `<!doctype html>
<html><head><title>Checkout</title></head>
<body>
<h1>Checkout</h1>
<p>Review your order below.</p>
<button>Place order</button>
<a href="/cancel">Cancel</a>
</body></html>`

// memOpener parses the fixture page regardless of URL, the way the CLI
// opener would drive a browser.
func memOpener(t *testing.T) Opener {
	t.Helper()
	return func(url string) (dom.Document, error) {
		return memdom.Parse(strings.NewReader(testPage), memdom.WithURL(url))
	}
}

func newTestServer(t *testing.T, ttl time.Duration) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(memOpener(t), ttl).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func visit(t *testing.T, ts *httptest.Server, url string) {
	t.Helper()
	body := strings.NewReader(`{"url": "` + url + `"}`)
	resp, err := http.Post(ts.URL+"/page", "application/json", body)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("visit status = %d, want 200", resp.StatusCode)
	}
}

func getJSON(t *testing.T, ts *httptest.Server, path string, v interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp
}

func TestRoutesBeforeVisitConflict(t *testing.T) {
	ts := newTestServer(t, 0)

	for _, path := range []string{
		"/page/rects", "/page/elements", "/page/viewport", "/page/focused",
		"/page/metadata", "/page/text", "/page/markdown",
	} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusConflict {
			t.Errorf("%s status = %d, want %d", path, resp.StatusCode, http.StatusConflict)
		}
	}
}

func TestVisitThenElements(t *testing.T) {
	ts := newTestServer(t, 0)
	visit(t, ts, "https://shop.example/checkout")

	var result output.ElementsResult
	resp := getJSON(t, ts, "/page/elements", &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if result.URL != "https://shop.example/checkout" {
		t.Errorf("url = %q", result.URL)
	}
	if result.Title != "Checkout" {
		t.Errorf("title = %q, want Checkout", result.Title)
	}
	if len(result.Elements) != 2 {
		t.Fatalf("elements = %d, want 2 (button and link)", len(result.Elements))
	}
	if result.Elements[0].ID != "10" || result.Elements[1].ID != "11" {
		t.Errorf("ids = %q, %q, want 10, 11", result.Elements[0].ID, result.Elements[1].ID)
	}
}

func TestRectsKeyedByID(t *testing.T) {
	ts := newTestServer(t, 0)
	visit(t, ts, "https://shop.example/checkout")

	var result output.RectsResult
	getJSON(t, ts, "/page/rects", &result)
	if len(result.Rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(result.Rects))
	}
	r, ok := result.Rects["10"]
	if !ok {
		t.Fatal("rects missing key 10")
	}
	if r.TagName != "button" {
		t.Errorf("tag_name = %q, want button", r.TagName)
	}
}

func TestFocusedNullWithoutFocus(t *testing.T) {
	ts := newTestServer(t, 0)
	visit(t, ts, "https://shop.example/checkout")

	var result output.FocusedResult
	getJSON(t, ts, "/page/focused", &result)
	if result.ID != nil {
		t.Errorf("id = %v, want null", *result.ID)
	}
}

func TestTextAndMarkdown(t *testing.T) {
	ts := newTestServer(t, 0)
	visit(t, ts, "https://shop.example/checkout")

	var text output.TextResult
	getJSON(t, ts, "/page/text", &text)
	if !strings.Contains(text.Text, "Review your order below.") {
		t.Errorf("text missing paragraph:\n%s", text.Text)
	}

	var md output.MarkdownResult
	getJSON(t, ts, "/page/markdown", &md)
	if !strings.Contains(md.Markdown, "# Checkout") {
		t.Errorf("markdown missing heading:\n%s", md.Markdown)
	}
	if !strings.Contains(md.Markdown, "[Cancel](/cancel)") {
		t.Errorf("markdown missing link:\n%s", md.Markdown)
	}
}

func TestMarkdownMaxChars(t *testing.T) {
	ts := newTestServer(t, 0)
	visit(t, ts, "https://shop.example/checkout")

	var md output.MarkdownResult
	getJSON(t, ts, "/page/markdown?max_chars=5", &md)
	if md.Markdown != "# Che" {
		t.Errorf("markdown = %q, want %q", md.Markdown, "# Che")
	}

	resp := getJSON(t, ts, "/page/markdown?max_chars=nope", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestVisitRejectsMissingURL(t *testing.T) {
	ts := newTestServer(t, 0)
	resp, err := http.Post(ts.URL+"/page", "application/json", strings.NewReader(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestCachedPayloadReused(t *testing.T) {
	ts := newTestServer(t, time.Minute)
	visit(t, ts, "https://shop.example/checkout")

	var first, second output.ElementsResult
	getJSON(t, ts, "/page/elements", &first)
	getJSON(t, ts, "/page/elements", &second)
	// Same cached payload, so identical timestamps.
	if first.TS != second.TS {
		t.Errorf("cached ts differ: %d vs %d", first.TS, second.TS)
	}

	// Navigation invalidates.
	visit(t, ts, "https://shop.example/other")
	var after output.ElementsResult
	getJSON(t, ts, "/page/elements", &after)
	if after.URL != "https://shop.example/other" {
		t.Errorf("url after revisit = %q", after.URL)
	}
}
