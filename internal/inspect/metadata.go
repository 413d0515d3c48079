package inspect

import (
	"encoding/json"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// Metadata is the structured-data snapshot of a page. Fields are present
// only when that source yields something.
type Metadata struct {
	JSONLD    any               `yaml:"jsonld,omitempty"    json:"jsonld,omitempty"`
	MetaTags  map[string]string `yaml:"meta_tags,omitempty" json:"meta_tags,omitempty"`
	Microdata []map[string]any  `yaml:"microdata,omitempty" json:"microdata,omitempty"`
}

var jsonLDSelectors = parseSelectors("script[type=application/ld+json]")
var metaSelectors = parseSelectors("meta")
var itemScopeSelectors = parseSelectors("[itemscope]")

// PageMetadata extracts JSON-LD blocks, flattened meta tags, and microdata
// items from the document.
func (ins *Inspector) PageMetadata() Metadata {
	return Metadata{
		JSONLD:    ins.jsonLD(),
		MetaTags:  ins.metaTags(),
		Microdata: ins.microdata(),
	}
}

// jsonLD collects ld+json script bodies and attempts a single combined
// parse. A parse failure is recoverable: the raw un-parsed strings are
// returned instead.
func (ins *Inspector) jsonLD() any {
	var raw []string
	for _, s := range gatherAll(jsonLDSelectors, ins.doc.Root()) {
		if body := strings.TrimSpace(s.Text()); body != "" {
			raw = append(raw, body)
		}
	}
	if len(raw) == 0 {
		return nil
	}
	var parsed []any
	combined := "[" + strings.Join(raw, ",") + "]"
	if err := json.Unmarshal([]byte(combined), &parsed); err != nil {
		if len(raw) == 1 {
			return raw[0]
		}
		return raw
	}
	if len(parsed) == 1 {
		return parsed[0]
	}
	return parsed
}

// metaTags flattens meta name/property -> content pairs.
func (ins *Inspector) metaTags() map[string]string {
	out := map[string]string{}
	for _, m := range gatherAll(metaSelectors, ins.doc.Root()) {
		key, ok := m.Attr("name")
		if !ok || key == "" {
			key, ok = m.Attr("property")
		}
		if !ok || key == "" {
			continue
		}
		content, _ := m.Attr("content")
		out[key] = content
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// microdata extracts top-level itemscope items; nested scopes become nested
// item values.
func (ins *Inspector) microdata() []map[string]any {
	var items []map[string]any
	for _, el := range gatherAll(itemScopeSelectors, ins.doc.Root()) {
		if inItemScope(el) {
			continue // captured as a nested item by its ancestor
		}
		items = append(items, microdataItem(el))
	}
	return items
}

func inItemScope(n dom.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.Attr("itemscope"); ok {
			return true
		}
	}
	return false
}

// microdataItem builds one item: its type plus each itemprop aggregated
// into a single value, promoted to a list when the same property name
// occurs again.
func microdataItem(scope dom.Node) map[string]any {
	item := map[string]any{}
	if t, ok := scope.Attr("itemtype"); ok && t != "" {
		item["type"] = t
	}
	props := map[string]any{}
	var visit func(dom.Node)
	visit = func(n dom.Node) {
		for _, c := range n.ChildNodes() {
			if c.Type() != dom.ElementNode {
				continue
			}
			var value any
			if _, nested := c.Attr("itemscope"); nested {
				value = microdataItem(c)
			}
			if prop, ok := c.Attr("itemprop"); ok && prop != "" {
				if value == nil {
					value = microdataValue(c)
				}
				addProperty(props, prop, value)
			}
			if value == nil {
				visit(c)
			}
		}
	}
	visit(scope)
	if len(props) > 0 {
		item["properties"] = props
	}
	return item
}

func microdataValue(n dom.Node) any {
	switch n.Tag() {
	case "meta":
		v, _ := n.Attr("content")
		return v
	case "a", "area", "link":
		v, _ := n.Attr("href")
		return v
	case "img", "audio", "video", "source", "iframe", "embed":
		v, _ := n.Attr("src")
		return v
	case "time":
		if v, ok := n.Attr("datetime"); ok {
			return v
		}
	case "data", "meter":
		if v, ok := n.Attr("value"); ok {
			return v
		}
	}
	return strings.TrimSpace(n.Text())
}

func addProperty(props map[string]any, name string, value any) {
	existing, ok := props[name]
	if !ok {
		props[name] = value
		return
	}
	if list, isList := existing.([]any); isList {
		props[name] = append(list, value)
		return
	}
	props[name] = []any{existing, value}
}
