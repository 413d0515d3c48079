package inspect

import (
	"testing"

	"github.com/Aaron-Ben/Magentic-mini/internal/dom"
	"github.com/Aaron-Ben/Magentic-mini/internal/dom/memdom"
)

func TestResolveRole_ExplicitRoleWins(t *testing.T) {
	d := memdom.New()
	el := d.CreateElement("a",
		dom.Attr{Name: "href", Value: "/x"},
		dom.Attr{Name: "role", Value: "tab"})
	role, class := resolveRole(el)
	if role != "tab" {
		t.Errorf("role = %q, want explicit tab", role)
	}
	if class != "a" {
		t.Errorf("class = %q, want a", class)
	}
}

func TestResolveRole_TableLookup(t *testing.T) {
	d := memdom.New()
	role, class := resolveRole(d.CreateElement("select"))
	if role != "combobox" || class != "select" {
		t.Errorf("got (%q, %q), want (combobox, select)", role, class)
	}
}

func TestResolveRole_InputRefinedByType(t *testing.T) {
	d := memdom.New()
	checkbox := d.CreateElement("input", dom.Attr{Name: "type", Value: "checkbox"})
	role, class := resolveRole(checkbox)
	if role != "checkbox" {
		t.Errorf("role = %q, want checkbox", role)
	}
	if class != "input,type=checkbox" {
		t.Errorf("class = %q, want input,type=checkbox", class)
	}

	bare := d.CreateElement("input")
	role, class = resolveRole(bare)
	if role != "textbox" || class != "input" {
		t.Errorf("bare input got (%q, %q), want (textbox, input)", role, class)
	}
}

func TestResolveRole_UnknownTagEmptyRole(t *testing.T) {
	d := memdom.New()
	role, class := resolveRole(d.CreateElement("custom-widget"))
	if role != "" {
		t.Errorf("unknown tag role = %q, want empty", role)
	}
	if class != "custom-widget" {
		t.Errorf("class = %q, want raw tag", class)
	}
}
