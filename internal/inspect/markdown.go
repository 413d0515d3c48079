package inspect

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// markdownSkipTags are stripped before rendering: chrome and non-content
// subtrees the orchestrator has no use for.
var markdownSkipTags = map[string]bool{
	"script": true, "style": true, "nav": true, "footer": true,
	"aside": true, "noscript": true, "template": true, "head": true,
}

var (
	wsRun        = regexp.MustCompile(`[ \t\r\n]+`)
	spaceRun     = regexp.MustCompile(`[ \t]{2,}`)
	edgeSpace    = regexp.MustCompile(`[ \t]*\n[ \t]*`)
	newlineRun   = regexp.MustCompile(`\n{3,}`)
	headingLevel = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}
)

// PageMarkdown renders the main content root as simplified markdown: enough
// structure for machine consumption, not document-perfect fidelity. It
// never raises; an internal failure is converted into a diagnostic string
// result so one failing extraction cannot abort a snapshot.
func (ins *Inspector) PageMarkdown() (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fmt.Sprintf("error generating markdown: %v", r)
		}
	}()

	root := ins.doc.Body()
	if root == nil {
		root = ins.doc.Root()
	}
	if root == nil {
		return ""
	}

	var sb strings.Builder
	renderMarkdown(&sb, root)
	return normalizeMarkdown(sb.String())
}

func renderMarkdown(sb *strings.Builder, n dom.Node) {
	if n.Type() == dom.TextNode {
		sb.WriteString(wsRun.ReplaceAllString(n.Data(), " "))
		return
	}

	tag := n.Tag()
	if markdownSkipTags[tag] {
		return
	}

	switch {
	case headingLevel[tag] > 0:
		sb.WriteString("\n\n" + strings.Repeat("#", headingLevel[tag]) + " ")
		renderChildren(sb, n)
		sb.WriteString("\n\n")
	case tag == "p":
		sb.WriteString("\n\n")
		renderChildren(sb, n)
		sb.WriteString("\n\n")
	case tag == "a":
		if href, ok := n.Attr("href"); ok && href != "" {
			sb.WriteString("[")
			renderChildren(sb, n)
			sb.WriteString("](" + href + ")")
		} else {
			renderChildren(sb, n)
		}
	case tag == "strong" || tag == "b":
		sb.WriteString("**")
		renderChildren(sb, n)
		sb.WriteString("**")
	case tag == "em" || tag == "i":
		sb.WriteString("*")
		renderChildren(sb, n)
		sb.WriteString("*")
	case tag == "code":
		sb.WriteString("`" + strings.TrimSpace(n.Text()) + "`")
	case tag == "pre":
		sb.WriteString("\n\n```\n" + strings.Trim(n.Text(), "\n") + "\n```\n\n")
	case tag == "ul" || tag == "ol":
		renderList(sb, n, tag == "ol")
	case tag == "li":
		// Stray list item outside a list container.
		sb.WriteString("\n- ")
		renderChildren(sb, n)
	case tag == "blockquote":
		var inner strings.Builder
		renderChildren(&inner, n)
		sb.WriteString("\n\n")
		for _, line := range strings.Split(strings.TrimSpace(inner.String()), "\n") {
			sb.WriteString("> " + strings.TrimSpace(line) + "\n")
		}
		sb.WriteString("\n")
	case tag == "br":
		sb.WriteString("\n")
	case tag == "hr":
		sb.WriteString("\n\n---\n\n")
	default:
		// Generic container: recurse without emitting markup of its own.
		renderChildren(sb, n)
	}
}

func renderChildren(sb *strings.Builder, n dom.Node) {
	for _, c := range n.ChildNodes() {
		renderMarkdown(sb, c)
	}
}

func renderList(sb *strings.Builder, list dom.Node, ordered bool) {
	sb.WriteString("\n")
	i := 0
	for _, c := range list.ChildNodes() {
		if c.Type() != dom.ElementNode || c.Tag() != "li" {
			continue
		}
		i++
		if ordered {
			fmt.Fprintf(sb, "%d. ", i)
		} else {
			sb.WriteString("- ")
		}
		renderChildren(sb, c)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// normalizeMarkdown collapses runs of spaces and tabs, trims space around
// line breaks, collapses 3+ newlines down to 2, and trims the ends.
func normalizeMarkdown(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = edgeSpace.ReplaceAllString(s, "\n")
	s = newlineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
