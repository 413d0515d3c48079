package inspect

import (
	"regexp"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// nameStrategy is one labeling mechanism; it returns "" when the mechanism
// yields nothing for the node.
type nameStrategy func(doc dom.Document, n dom.Node) string

// nameCascade is the fixed authority ranking of labeling mechanisms. The
// first non-empty result wins. The explicit aria-label check appears twice
// (positions 1 and 4); the ordering is preserved exactly for behavioral
// compatibility, duplicate included.
var nameCascade = []nameStrategy{
	ariaLabelAttr,
	nestedLabelClass,
	referencedLabels,
	ariaLabelAttr,
	externalForLabels,
	nameAttr,
	ancestorLabel,
	altAttr,
	titleAttr,
	ownText,
}

// resolveName approximates the node's human-readable accessible name.
func resolveName(doc dom.Document, n dom.Node) string {
	for _, strategy := range nameCascade {
		if name := strategy(doc, n); name != "" {
			return name
		}
	}
	return ""
}

func ariaLabelAttr(_ dom.Document, n dom.Node) string {
	v, _ := n.Attr("aria-label")
	return strings.TrimSpace(v)
}

// nestedLabelClass finds a descendant whose class list contains "label" and
// uses its text.
func nestedLabelClass(_ dom.Document, n dom.Node) string {
	var found dom.Node
	var visit func(dom.Node) bool
	visit = func(e dom.Node) bool {
		for _, c := range e.ChildNodes() {
			if c.Type() != dom.ElementNode {
				continue
			}
			if hasClass(c, "label") {
				found = c
				return true
			}
			if visit(c) {
				return true
			}
		}
		return false
	}
	visit(n)
	if found == nil {
		return ""
	}
	return strings.TrimSpace(found.Text())
}

func hasClass(n dom.Node, class string) bool {
	v, ok := n.Attr("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// referencedLabels joins the text of the elements named by aria-labelledby
// with single spaces.
func referencedLabels(doc dom.Document, n dom.Node) string {
	refs, ok := n.Attr("aria-labelledby")
	if !ok {
		return ""
	}
	var parts []string
	for _, id := range strings.Fields(refs) {
		if el := elementByID(doc, id); el != nil {
			if t := strings.TrimSpace(el.Text()); t != "" {
				parts = append(parts, t)
			}
		}
	}
	return strings.Join(parts, " ")
}

// safeIdentifier matches identifier values safe to use as selector text.
// Anything else is treated as "no label" rather than risking a malformed
// lookup.
var safeIdentifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.:-]*$`)

// externalForLabels joins the text of label elements whose for attribute
// names this node's id.
func externalForLabels(doc dom.Document, n dom.Node) string {
	id, ok := n.Attr("id")
	if !ok || !safeIdentifier.MatchString(id) {
		return ""
	}
	var parts []string
	for _, l := range gatherAll(parseSelectors("label[for="+id+"]"), doc.Root()) {
		if t := strings.TrimSpace(l.Text()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func nameAttr(_ dom.Document, n dom.Node) string {
	v, _ := n.Attr("name")
	return strings.TrimSpace(v)
}

// ancestorLabel uses the text of an enclosing label element, for controls
// nested directly inside their label.
func ancestorLabel(_ dom.Document, n dom.Node) string {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if p.Type() == dom.ElementNode && p.Tag() == "label" {
			return strings.TrimSpace(p.Text())
		}
	}
	return ""
}

func altAttr(_ dom.Document, n dom.Node) string {
	v, _ := n.Attr("alt")
	return strings.TrimSpace(v)
}

func titleAttr(_ dom.Document, n dom.Node) string {
	v, _ := n.Attr("title")
	return strings.TrimSpace(v)
}

func ownText(_ dom.Document, n dom.Node) string {
	return strings.TrimSpace(n.Text())
}

// elementByID finds the element with the given id anywhere in the document,
// including open shadow roots.
func elementByID(doc dom.Document, id string) dom.Node {
	if !safeIdentifier.MatchString(id) {
		return nil
	}
	matches := gatherAll(parseSelectors("[id="+id+"]"), doc.Root())
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}
