package render

import (
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// keying classifies a child list by the keys of its non-nil entries.
type keying uint8

const (
	keyingNone keying = iota // no non-nil entries
	keyingUnkeyed
	keyingKeyed
	keyingMixed
)

func classify(list []*vdom.VNode) keying {
	k := keyingNone
	for _, v := range list {
		if v == nil {
			continue
		}
		next := keyingUnkeyed
		if v.Keyed() {
			next = keyingKeyed
		}
		if k == keyingNone {
			k = next
		} else if k != next {
			return keyingMixed
		}
	}
	return k
}

// sameList reports whether a and b are the same slice.
func sameList(a, b []*vdom.VNode) bool {
	if len(a) != len(b) {
		return false
	}
	return len(a) == 0 || &a[0] == &b[0]
}

// updateNodes reconciles the children of parent. nextSibling is the DOM node
// that must stay after everything in the list, or nil to append.
func (p *pass) updateNodes(parent dom.Node, old, vnodes []*vdom.VNode, nextSibling dom.Node, ns string) {
	switch {
	case sameList(old, vnodes):
		return
	case len(old) == 0:
		p.createNodes(parent, vnodes, 0, len(vnodes), nextSibling, ns)
		return
	case len(vnodes) == 0:
		p.removeNodes(parent, old, 0, len(old))
		return
	}

	ko, kn := classify(old), classify(vnodes)
	switch {
	case ko == keyingMixed || kn == keyingMixed || (ko == keyingKeyed) != (kn == keyingKeyed):
		p.removeNodes(parent, old, 0, len(old))
		p.createNodes(parent, vnodes, 0, len(vnodes), nextSibling, ns)
	case kn == keyingKeyed:
		p.updateKeyed(parent, compact(old), compact(vnodes), nextSibling, ns)
	default:
		p.updateUnkeyed(parent, old, vnodes, nextSibling, ns)
	}
}

// updateUnkeyed pairs children by position. Leading holes are skipped on
// both sides and the scan rewinds to the earlier of the two first non-nil
// positions.
func (p *pass) updateUnkeyed(parent dom.Node, old, vnodes []*vdom.VNode, nextSibling dom.Node, ns string) {
	start, oldStart := 0, 0
	for oldStart < len(old) && old[oldStart] == nil {
		oldStart++
	}
	for start < len(vnodes) && vnodes[start] == nil {
		start++
	}
	common := min(len(old), len(vnodes))
	start = min(start, oldStart)
	for ; start < common; start++ {
		o, v := old[start], vnodes[start]
		switch {
		case o == v:
		case o == nil:
			p.createNode(parent, v, p.nextSibling(old, start+1, nextSibling), ns)
		case v == nil:
			p.removeNode(parent, o)
		default:
			p.updateNode(parent, o, v, p.nextSibling(old, start+1, nextSibling), ns)
		}
	}
	if len(old) > common {
		p.removeNodes(parent, old, start, len(old))
	}
	if len(vnodes) > common {
		p.createNodes(parent, vnodes, start, len(vnodes), nextSibling, ns)
	}
}

// updateKeyed reconciles two hole-free keyed lists. Matching runs at both
// ends are handled first, then swapped ends, and whatever remains is placed
// by moving only the nodes outside a longest increasing subsequence of their
// old positions.
func (p *pass) updateKeyed(parent dom.Node, old, vnodes []*vdom.VNode, nextSibling dom.Node, ns string) {
	oldStart, start := 0, 0
	oldEnd, end := len(old)-1, len(vnodes)-1

	// Common suffix.
	for oldEnd >= oldStart && end >= start {
		oe, ve := old[oldEnd], vnodes[end]
		if oe.Key != ve.Key {
			break
		}
		if oe != ve {
			p.updateNode(parent, oe, ve, nextSibling, ns)
		}
		if ve.DOM != nil {
			nextSibling = ve.DOM
		}
		oldEnd--
		end--
	}

	// Common prefix.
	for oldEnd >= oldStart && end >= start {
		o, v := old[oldStart], vnodes[start]
		if o.Key != v.Key {
			break
		}
		oldStart++
		start++
		if o != v {
			p.updateNode(parent, o, v, p.nextSibling(old, oldStart, nextSibling), ns)
		}
	}

	// Swapped ends. Each step costs up to two moves, which is only minimal
	// while something between the pair still matches.
	common := -1
	for oldEnd >= oldStart && end >= start && start != end {
		o, v := old[oldStart], vnodes[start]
		oe, ve := old[oldEnd], vnodes[end]
		if o.Key != ve.Key || oe.Key != v.Key {
			break
		}
		if common < 0 {
			common = countCommon(old[oldStart:oldEnd+1], vnodes[start:end+1])
		}
		if common-2 == 0 && start+1 <= end-1 {
			break
		}
		common -= 2

		top := p.nextSibling(old, oldStart, nextSibling)
		p.moveDOM(parent, oe, top)
		if oe != v {
			p.updateNode(parent, oe, v, top, ns)
		}
		start++
		end--
		if start <= end {
			p.moveDOM(parent, o, nextSibling)
		}
		if o != ve {
			p.updateNode(parent, o, ve, nextSibling, ns)
		}
		if ve.DOM != nil {
			nextSibling = ve.DOM
		}
		oldStart++
		oldEnd--
	}

	// Common suffix once more.
	for oldEnd >= oldStart && end >= start {
		oe, ve := old[oldEnd], vnodes[end]
		if oe.Key != ve.Key {
			break
		}
		if oe != ve {
			p.updateNode(parent, oe, ve, nextSibling, ns)
		}
		if ve.DOM != nil {
			nextSibling = ve.DOM
		}
		oldEnd--
		end--
	}

	switch {
	case start > end:
		p.removeNodes(parent, old, oldStart, oldEnd+1)
		return
	case oldStart > oldEnd:
		p.createNodes(parent, vnodes, start, end+1, nextSibling, ns)
		return
	}

	// General case.
	index := make(map[string]int, oldEnd-oldStart+1)
	for i := oldStart; i <= oldEnd; i++ {
		index[old[i].Key] = i
	}
	// Matching only records positions. Updates wait for the placement loop
	// so that any DOM they create lands before an already placed sibling.
	consumed := make([]bool, len(old))
	oldIndices := make([]int, end-start+1)
	replaced := make([]bool, end-start+1)
	pos := len(old)
	matched := 0
	for i := end; i >= start; i-- {
		ve := vnodes[i]
		oldIndices[i-start] = -1
		oi, ok := index[ve.Key]
		if !ok || consumed[oi] {
			continue
		}
		if oi < pos {
			pos = oi
		} else {
			pos = -1
		}
		oldIndices[i-start] = oi
		consumed[oi] = true
		if oe := old[oi]; oe != ve && (oe.DOM == nil || !sameType(oe, ve)) {
			replaced[i-start] = true
		}
		matched++
	}

	if matched != oldEnd-oldStart+1 {
		for i := oldStart; i <= oldEnd; i++ {
			if !consumed[i] {
				p.removeNode(parent, old[i])
			}
		}
	}
	if matched == 0 {
		p.createNodes(parent, vnodes, start, end+1, nextSibling, ns)
		return
	}

	// Nodes getting new DOM have no position worth keeping.
	var lis []int
	li := -1
	if pos == -1 {
		stable := make([]int, len(oldIndices))
		for i, oi := range oldIndices {
			if replaced[i] {
				oi = -1
			}
			stable[i] = oi
		}
		lis = lisIndices(stable)
		li = len(lis) - 1
	}
	for i := end; i >= start; i-- {
		v := vnodes[i]
		oi := oldIndices[i-start]
		switch {
		case oi == -1:
			p.createNode(parent, v, nextSibling, ns)
		case replaced[i-start]:
			p.updateNode(parent, old[oi], v, nextSibling, ns)
		default:
			oe := old[oi]
			if pos == -1 {
				if li >= 0 && lis[li] == i-start {
					li--
				} else {
					p.moveDOM(parent, oe, nextSibling)
				}
			}
			if oe != v {
				p.updateNode(parent, oe, v, nextSibling, ns)
			}
		}
		if v.DOM != nil {
			nextSibling = v.DOM
		}
	}
}

// countCommon returns how many keys of vnodes also appear in old.
func countCommon(old, vnodes []*vdom.VNode) int {
	keys := make(map[string]struct{}, len(old))
	for _, o := range old {
		keys[o.Key] = struct{}{}
	}
	n := 0
	for _, v := range vnodes {
		if _, ok := keys[v.Key]; ok {
			n++
		}
	}
	return n
}

// lisIndices returns the positions of a longest strictly increasing
// subsequence of a, skipping entries equal to -1.
func lisIndices(a []int) []int {
	var tails []int
	prev := make([]int, len(a))
	for i, x := range a {
		if x == -1 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := int(uint(lo+hi) >> 1)
			if a[tails[mid]] < x {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		prev[i] = -1
		if lo > 0 {
			prev[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}
	out := make([]int, len(tails))
	if len(tails) == 0 {
		return out
	}
	for k, i := len(tails)-1, tails[len(tails)-1]; k >= 0; k-- {
		out[k] = i
		i = prev[i]
	}
	return out
}

func compact(list []*vdom.VNode) []*vdom.VNode {
	out := make([]*vdom.VNode, 0, len(list))
	for _, v := range list {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// nextSibling returns the first DOM node of the first entry at or after i
// that has one, or fallback.
func (p *pass) nextSibling(list []*vdom.VNode, i int, fallback dom.Node) dom.Node {
	for ; i < len(list); i++ {
		if list[i] != nil && list[i].DOM != nil {
			return list[i].DOM
		}
	}
	return fallback
}

func (p *pass) createNodes(parent dom.Node, vnodes []*vdom.VNode, start, end int, nextSibling dom.Node, ns string) {
	for i := start; i < end; i++ {
		if v := vnodes[i]; v != nil {
			p.createNode(parent, v, nextSibling, ns)
		}
	}
}

func (p *pass) removeNodes(parent dom.Node, vnodes []*vdom.VNode, start, end int) {
	for i := start; i < end; i++ {
		if v := vnodes[i]; v != nil {
			p.removeNode(parent, v)
		}
	}
}

// moveDOM moves the live DOM of v before nextSibling. Multi-node subtrees
// travel through a temporary fragment. Moving v before its own first node
// leaves it where it is.
func (p *pass) moveDOM(parent dom.Node, v *vdom.VNode, nextSibling dom.Node) {
	if v.DOM == nil || v.DOM == nextSibling {
		return
	}
	p.stats.Moved++
	if v.DOMSize <= 1 {
		insertDOM(parent, v.DOM, nextSibling)
		return
	}
	frag := p.doc.CreateDocumentFragment()
	for _, n := range p.r.domFor(v, 0) {
		frag.AppendChild(n)
	}
	insertDOM(parent, frag, nextSibling)
}

func insertDOM(parent, n, nextSibling dom.Node) {
	parent.InsertBefore(n, nextSibling)
}
