package inspect

import (
	"testing"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

func ldScript(d *memdom.Document, body string) *memdom.Node {
	s := d.CreateElement("script", dom.Attr{Name: "type", Value: "application/ld+json"})
	s.Append(d.CreateText(body))
	return s
}

func TestJSONLD_Parsed(t *testing.T) {
	d := memdom.New()
	body(d).Append(ldScript(d, `{"@type": "Article", "headline": "Hello"}`))

	meta := New(d).PageMetadata()
	obj, ok := meta.JSONLD.(map[string]any)
	if !ok {
		t.Fatalf("jsonld = %T, want parsed object", meta.JSONLD)
	}
	if obj["headline"] != "Hello" {
		t.Errorf("headline = %v", obj["headline"])
	}
}

func TestJSONLD_InvalidFallsBackToRawString(t *testing.T) {
	raw := `{"@type": "Article", "headline": }`
	d := memdom.New()
	body(d).Append(ldScript(d, raw))

	meta := New(d).PageMetadata()
	got, ok := meta.JSONLD.(string)
	if !ok {
		t.Fatalf("jsonld = %T, want raw string on parse failure", meta.JSONLD)
	}
	if got != raw {
		t.Errorf("jsonld = %q, want the original raw string", got)
	}
}

func TestJSONLD_MultipleBlocksCombined(t *testing.T) {
	d := memdom.New()
	body(d).Append(
		ldScript(d, `{"a": 1}`),
		ldScript(d, `{"b": 2}`),
	)

	meta := New(d).PageMetadata()
	list, ok := meta.JSONLD.([]any)
	if !ok {
		t.Fatalf("jsonld = %T, want combined array", meta.JSONLD)
	}
	if len(list) != 2 {
		t.Errorf("combined parse yielded %d entries, want 2", len(list))
	}
}

func TestJSONLD_AbsentWhenNoScripts(t *testing.T) {
	d := memdom.New()
	if meta := New(d).PageMetadata(); meta.JSONLD != nil {
		t.Errorf("jsonld should be absent, got %v", meta.JSONLD)
	}
}

func TestMetaTags_NameAndProperty(t *testing.T) {
	d := memdom.New()
	head := d.Root().(*memdom.Node).ChildNodes()[0].(*memdom.Node)
	head.Append(
		d.CreateElement("meta",
			dom.Attr{Name: "name", Value: "description"},
			dom.Attr{Name: "content", Value: "A page"}),
		d.CreateElement("meta",
			dom.Attr{Name: "property", Value: "og:title"},
			dom.Attr{Name: "content", Value: "Hello"}),
		d.CreateElement("meta", dom.Attr{Name: "charset", Value: "utf-8"}),
	)

	meta := New(d).PageMetadata()
	if meta.MetaTags["description"] != "A page" {
		t.Errorf("description = %q", meta.MetaTags["description"])
	}
	if meta.MetaTags["og:title"] != "Hello" {
		t.Errorf("og:title = %q", meta.MetaTags["og:title"])
	}
	if len(meta.MetaTags) != 2 {
		t.Errorf("charset-only meta should be skipped, got %v", meta.MetaTags)
	}
}

func TestMicrodata_PropertiesAndPromotion(t *testing.T) {
	d := memdom.New()
	scope := d.CreateElement("div",
		dom.Attr{Name: "itemscope", Value: ""},
		dom.Attr{Name: "itemtype", Value: "https://schema.org/Person"})
	name := d.CreateElement("span", dom.Attr{Name: "itemprop", Value: "name"})
	name.Append(d.CreateText("Ada"))
	url1 := d.CreateElement("a",
		dom.Attr{Name: "itemprop", Value: "url"},
		dom.Attr{Name: "href", Value: "https://a.example"})
	url2 := d.CreateElement("a",
		dom.Attr{Name: "itemprop", Value: "url"},
		dom.Attr{Name: "href", Value: "https://b.example"})
	scope.Append(name, url1, url2)
	body(d).Append(scope)

	meta := New(d).PageMetadata()
	if len(meta.Microdata) != 1 {
		t.Fatalf("want 1 item, got %d", len(meta.Microdata))
	}
	item := meta.Microdata[0]
	if item["type"] != "https://schema.org/Person" {
		t.Errorf("type = %v", item["type"])
	}
	props := item["properties"].(map[string]any)
	if props["name"] != "Ada" {
		t.Errorf("name = %v", props["name"])
	}
	urls, ok := props["url"].([]any)
	if !ok {
		t.Fatalf("second occurrence should promote url to a list, got %T", props["url"])
	}
	if len(urls) != 2 || urls[0] != "https://a.example" || urls[1] != "https://b.example" {
		t.Errorf("urls = %v", urls)
	}
}

func TestMicrodata_NestedScope(t *testing.T) {
	d := memdom.New()
	outer := d.CreateElement("div", dom.Attr{Name: "itemscope", Value: ""})
	inner := d.CreateElement("div",
		dom.Attr{Name: "itemscope", Value: ""},
		dom.Attr{Name: "itemprop", Value: "address"})
	street := d.CreateElement("span", dom.Attr{Name: "itemprop", Value: "street"})
	street.Append(d.CreateText("Main St"))
	inner.Append(street)
	outer.Append(inner)
	body(d).Append(outer)

	meta := New(d).PageMetadata()
	if len(meta.Microdata) != 1 {
		t.Fatalf("nested scope should not be a top-level item, got %d items", len(meta.Microdata))
	}
	props := meta.Microdata[0]["properties"].(map[string]any)
	nested, ok := props["address"].(map[string]any)
	if !ok {
		t.Fatalf("address = %T, want nested item", props["address"])
	}
	nestedProps := nested["properties"].(map[string]any)
	if nestedProps["street"] != "Main St" {
		t.Errorf("street = %v", nestedProps["street"])
	}
}
