package inspect

import (
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// attrTest is one [name] or [name=value] condition.
type attrTest struct {
	name  string
	value string
	exact bool
}

// simpleSelector is a parsed compound selector: an optional tag plus
// attribute conditions. This covers what the engine itself needs
// (tag, [attr], [attr=value], comma unions); it is not general CSS.
type simpleSelector struct {
	tag   string // "" matches any tag
	attrs []attrTest
}

// parseSelectors parses a comma-separated selector list. Malformed pieces
// are dropped rather than propagated.
func parseSelectors(s string) []simpleSelector {
	var sels []simpleSelector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var sel simpleSelector
		if i := strings.IndexByte(part, '['); i != 0 {
			if i < 0 {
				sel.tag = strings.ToLower(part)
				part = ""
			} else {
				sel.tag = strings.ToLower(part[:i])
				part = part[i:]
			}
		}
		bad := false
		for len(part) > 0 {
			if part[0] != '[' {
				bad = true
				break
			}
			end := strings.IndexByte(part, ']')
			if end < 0 {
				bad = true
				break
			}
			body := part[1:end]
			part = part[end+1:]
			name, val, hasVal := strings.Cut(body, "=")
			test := attrTest{name: strings.ToLower(strings.TrimSpace(name))}
			if hasVal {
				test.exact = true
				test.value = strings.Trim(strings.TrimSpace(val), `"'`)
			}
			sel.attrs = append(sel.attrs, test)
		}
		if bad {
			continue
		}
		if sel.tag == "*" {
			sel.tag = ""
		}
		sels = append(sels, sel)
	}
	return sels
}

func (s simpleSelector) matches(n dom.Node) bool {
	if n.Type() != dom.ElementNode {
		return false
	}
	if s.tag != "" && n.Tag() != s.tag {
		return false
	}
	for _, t := range s.attrs {
		v, ok := n.Attr(t.name)
		if !ok {
			return false
		}
		if t.exact && !strings.EqualFold(v, t.value) {
			return false
		}
	}
	return true
}

func matchAny(sels []simpleSelector, n dom.Node) bool {
	for _, s := range sels {
		if s.matches(n) {
			return true
		}
	}
	return false
}

// gatherAll enumerates elements matching sels across the tree rooted at
// root and every open shadow root reachable from it. Traversal is
// stack-based: each discovered shadow root becomes a new scope matched with
// the same selector set. Closed shadow roots are unreachable and silently
// skipped. Order is not guaranteed stable if the document mutates between
// calls.
func gatherAll(sels []simpleSelector, root dom.Node) []dom.Node {
	if root == nil {
		return nil
	}
	var out []dom.Node
	stack := []dom.Node{root}
	for len(stack) > 0 {
		scope := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		walkScope(scope, func(el dom.Node) {
			if matchAny(sels, el) {
				out = append(out, el)
			}
			if sr := el.ShadowRoot(); sr != nil {
				stack = append(stack, sr)
			}
		})
	}
	return out
}

// walkScope visits every element in one scope depth-first, without crossing
// shadow boundaries. The scope node itself is visited when it is an element.
func walkScope(scope dom.Node, visit func(dom.Node)) {
	if scope.Type() == dom.ElementNode {
		visit(scope)
	}
	for _, c := range scope.ChildNodes() {
		if c.Type() == dom.ElementNode {
			walkScope(c, visit)
		}
	}
}
