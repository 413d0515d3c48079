package inspect

import (
	"strconv"
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// widgetRoles is the allow-list of explicit accessibility roles that mark a
// node as a user-actionable control.
var widgetRoles = map[string]bool{
	"button": true, "checkbox": true, "combobox": true, "gridcell": true,
	"link": true, "listbox": true, "menu": true, "menubar": true,
	"menuitem": true, "menuitemcheckbox": true, "menuitemradio": true,
	"option": true, "progressbar": true, "radio": true, "radiogroup": true,
	"scrollbar": true, "searchbox": true, "slider": true, "spinbutton": true,
	"switch": true, "tab": true, "tablist": true, "textbox": true,
	"tree": true, "treegrid": true, "treeitem": true,
}

// inertCursors are cursor values that do not signal interactivity. Anything
// else (pointer, grab, move, ...) does.
var inertCursors = map[string]bool{
	"default": true, "auto": true, "none": true, "text": true,
	"vertical-text": true, "not-allowed": true, "no-drop": true,
}

// hiddenControlSelectors are matched with the shadow-aware walker in a
// second pass and included unconditionally: file inputs and options are
// frequently hidden or styled away yet must still be actionable.
var hiddenControlSelectors = parseSelectors("input[type=file], option")

// allElementSelectors gathers every element as a classification candidate.
var allElementSelectors = parseSelectors("*")

// isDisabled reports whether the node is disabled natively or via ARIA.
func isDisabled(n dom.Node) bool {
	if _, ok := n.Attr("disabled"); ok {
		return true
	}
	v, _ := n.Attr("aria-disabled")
	return strings.EqualFold(v, "true")
}

// structurallyInteractive is rule 1: natively-interactive markup. Form
// controls, anchors with a target, click handlers, editable regions, and
// non-negative tab indexes.
func structurallyInteractive(n dom.Node) bool {
	switch n.Tag() {
	case "button", "select", "textarea", "summary":
		return true
	case "input":
		t, _ := n.Attr("type")
		return !strings.EqualFold(t, "hidden")
	case "a", "area":
		_, ok := n.Attr("href")
		return ok
	}
	if _, ok := n.Attr("onclick"); ok {
		return true
	}
	if v, ok := n.Attr("contenteditable"); ok && !strings.EqualFold(v, "false") {
		return true
	}
	if v, ok := n.Attr("tabindex"); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && i >= 0 {
			return true
		}
	}
	return false
}

// declaredRoleInteractive is rule 2: an explicit widget role.
func declaredRoleInteractive(n dom.Node) bool {
	r, ok := n.Attr("role")
	return ok && widgetRoles[strings.ToLower(strings.TrimSpace(r))]
}

// cursorInteractive is rule 3: the computed cursor signals an affordance.
func cursorInteractive(n dom.Node) bool {
	c := n.Style("cursor")
	return c != "" && !inertCursors[c]
}

// collapseCursorChain walks up a contiguous ancestor chain sharing the same
// cursor value and returns its highest member, so only the outermost
// interactive-looking container is reported rather than every descendant.
func collapseCursorChain(n dom.Node) dom.Node {
	cursor := n.Style("cursor")
	top := n
	for p := n.Parent(); p != nil && p.Type() == dom.ElementNode; p = p.Parent() {
		if p.Style("cursor") != cursor {
			break
		}
		top = p
	}
	return top
}

// interactiveNodes classifies every element in the document (and its open
// shadow roots) and returns the distinct interactive nodes in discovery
// order. The three rules are evaluated as a union deduplicated by node
// identity; the hidden-control pass then adds file inputs and options
// bypassing the visibility and disabled checks.
func interactiveNodes(doc dom.Document) []dom.Node {
	seen := map[dom.Node]bool{}
	var out []dom.Node
	add := func(n dom.Node) {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}

	for _, n := range gatherAll(allElementSelectors, doc.Root()) {
		if isDisabled(n) || !IsVisible(n) {
			continue
		}
		switch {
		case structurallyInteractive(n):
			add(n)
		case declaredRoleInteractive(n):
			add(n)
		case cursorInteractive(n):
			add(collapseCursorChain(n))
		}
	}

	for _, n := range gatherAll(hiddenControlSelectors, doc.Root()) {
		add(n)
	}
	return out
}
