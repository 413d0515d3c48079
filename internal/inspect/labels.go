package inspect

import "github.com/Aaron-Ben/Magentic-mini/internal/dom"

// labelAll stamps every not-yet-labeled interactive node with the next
// counter value, then returns a freshly recomputed interactive list rather
// than echoing the input: labeling may interleave with document mutation by
// unrelated host activity, so the returned set reflects the tree as it
// stands after stamping. Idempotent for already-labeled nodes.
func (ins *Inspector) labelAll() []dom.Node {
	for _, n := range interactiveNodes(ins.doc) {
		ins.stamp(n)
	}
	return interactiveNodes(ins.doc)
}
