package inspect

import (
	"regexp"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// textSkipTags never contribute visible text.
var textSkipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// blockTags are treated as block-level containers when the host cannot
// resolve a computed display value.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"div": true, "dl": true, "dd": true, "dt": true, "fieldset": true,
	"figure": true, "figcaption": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true,
	"ol": true, "p": true, "pre": true, "section": true, "table": true,
	"tr": true, "ul": true,
}

var blankRuns = regexp.MustCompile(`\n\s*\n(\s*\n)+`)

// VisibleText walks the text nodes under the main content root and returns
// the concatenation of those with at least one layout rectangle
// intersecting the current viewport. Text inside a block-level container
// gets a trailing line break; runs of blank lines are collapsed.
func (ins *Inspector) VisibleText() string {
	root := ins.doc.Body()
	if root == nil {
		root = ins.doc.Root()
	}
	if root == nil {
		return ""
	}

	cw, ch := ins.doc.Root().ClientSize()
	viewport := dom.NewRect(0, 0, cw, ch)

	var sb strings.Builder
	var visit func(dom.Node)
	visit = func(n dom.Node) {
		if n.Type() == dom.ElementNode && textSkipTags[n.Tag()] {
			return
		}
		for _, c := range n.ChildNodes() {
			if c.Type() == dom.TextNode {
				if intersectsViewport(c, viewport) {
					sb.WriteString(c.Data())
					if isBlockLevel(n) {
						sb.WriteString("\n")
					}
				}
				continue
			}
			visit(c)
		}
	}
	visit(root)

	return blankRuns.ReplaceAllString(sb.String(), "\n\n")
}

func intersectsViewport(n dom.Node, viewport dom.Rect) bool {
	for _, r := range n.ClientRects() {
		if r.Intersects(viewport) {
			return true
		}
	}
	return false
}

// isBlockLevel prefers the computed display value and falls back to the
// tag's default display.
func isBlockLevel(n dom.Node) bool {
	if n.Type() != dom.ElementNode {
		return false
	}
	switch n.Style("display") {
	case "block", "flex", "grid", "list-item", "table", "table-row", "flow-root":
		return true
	case "":
		return blockTags[n.Tag()]
	}
	return false
}
