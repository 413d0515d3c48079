package inspect

import (
	"strings"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
)

// roleTable maps tag classes to approximate accessible roles. Input-like
// tags are refined by their type attribute using the "tag,type=..." key
// form, which is also the tag class reported for those nodes.
var roleTable = map[string]string{
	"a":                   "link",
	"area":                "link",
	"button":              "button",
	"input,type=button":   "button",
	"input,type=checkbox": "checkbox",
	"input,type=email":    "textbox",
	"input,type=file":     "button",
	"input,type=image":    "button",
	"input,type=number":   "spinbutton",
	"input,type=password": "textbox",
	"input,type=radio":    "radio",
	"input,type=range":    "slider",
	"input,type=reset":    "button",
	"input,type=search":   "searchbox",
	"input,type=submit":   "button",
	"input,type=tel":      "textbox",
	"input,type=text":     "textbox",
	"input,type=url":      "textbox",
	"input":               "textbox",
	"option":              "option",
	"select":              "combobox",
	"summary":             "button",
	"textarea":            "textbox",
}

// tagClass returns the tag identifier used in snapshots: the lower-case tag
// name, refined by the type attribute for inputs.
func tagClass(n dom.Node) string {
	tag := n.Tag()
	if tag == "input" {
		if t, ok := n.Attr("type"); ok && t != "" {
			return tag + ",type=" + strings.ToLower(t)
		}
	}
	return tag
}

// resolveRole returns the node's explicit role attribute when present,
// otherwise the table role for its tag class, otherwise an empty role. The
// tag class is returned alongside in all cases.
func resolveRole(n dom.Node) (role, class string) {
	class = tagClass(n)
	if r, ok := n.Attr("role"); ok && r != "" {
		return r, class
	}
	if r, ok := roleTable[class]; ok {
		return r, class
	}
	return "", class
}
