package render_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/internal/keyfuzz"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
	. "github.com/vango-dev/vdom/pkg/vdom"
)

func keyed(keys ...string) []*VNode {
	out := make([]*VNode, len(keys))
	for i, k := range keys {
		out[i] = Li(Key(k), k)
	}
	return out
}

// order returns the text of root's children joined by spaces.
func order(root dom.Node) string {
	var parts []string
	for _, c := range root.ChildNodes() {
		parts = append(parts, c.TextContent())
	}
	return strings.Join(parts, " ")
}

func byText(root dom.Node) map[string]dom.Node {
	out := make(map[string]dom.Node)
	for _, c := range root.ChildNodes() {
		out[c.TextContent()] = c
	}
	return out
}

func TestKeyedReorders(t *testing.T) {
	tests := []struct {
		name      string
		from, to  []string
		wantMoves int
	}{
		{"identity", []string{"a", "b", "c"}, []string{"a", "b", "c"}, 0},
		{"append", []string{"a", "b"}, []string{"a", "b", "c"}, 0},
		{"prepend", []string{"b", "c"}, []string{"a", "b", "c"}, 0},
		{"insert middle", []string{"a", "c"}, []string{"a", "b", "c"}, 0},
		{"remove middle", []string{"a", "b", "c"}, []string{"a", "c"}, 0},
		{"swap two", []string{"a", "b"}, []string{"b", "a"}, 1},
		{"swap ends", []string{"a", "b", "c", "d"}, []string{"d", "b", "c", "a"}, 2},
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 3},
		{"rotate left", []string{"a", "b", "c", "d"}, []string{"b", "c", "d", "a"}, 1},
		{"rotate right", []string{"a", "b", "c", "d"}, []string{"d", "a", "b", "c"}, 1},
		{"swap ends with replaced middle", []string{"a", "x", "b"}, []string{"b", "y", "a"}, 1},
		{"all new", []string{"a", "b"}, []string{"c", "d"}, 0},
		{"shuffle", []string{"a", "b", "c", "d", "e", "f"}, []string{"c", "a", "f", "b", "e", "d"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, root, r := setup(t)
			mustRender(t, r, root, keyed(tt.from...))
			nodes := byText(root)

			before := d.Stats()
			mustRender(t, r, root, keyed(tt.to...))
			if got, want := order(root), strings.Join(tt.to, " "); got != want {
				t.Fatalf("order = %q, want %q", got, want)
			}
			for k, n := range byText(root) {
				if old, ok := nodes[k]; ok && old != n {
					t.Errorf("node %q was recreated", k)
				}
			}
			if moves := d.Stats().Sub(before).Moves; moves != tt.wantMoves {
				t.Errorf("moves = %d, want %d", moves, tt.wantMoves)
			}
		})
	}
}

// A reversal of n keyed nodes needs n-1 single-node moves; anything less
// would leave two nodes in their old relative order.
func TestKeyedReverseIsMinimal(t *testing.T) {
	d, root, r := setup(t)
	mustRender(t, r, root, keyed("a", "b", "c", "d"))
	before := d.Stats()
	mustRender(t, r, root, keyed("d", "c", "b", "a"))
	s := d.Stats().Sub(before)
	if s.Moves != 3 || s.Inserts != 0 || s.Removes != 0 {
		t.Errorf("stats = %+v, want 3 moves only", s)
	}
}

func TestKeyedDuplicateKeys(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, keyed("a", "b"))
	mustRender(t, r, root, keyed("b", "b", "a"))
	if got := order(root); got != "b b a" {
		t.Errorf("order = %q", got)
	}
}

func TestKeyedHoles(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, []*VNode{Li(Key("a"), "a"), nil, Li(Key("b"), "b")})
	a := root.FirstChild()
	mustRender(t, r, root, []*VNode{nil, Li(Key("b"), "b"), Li(Key("a"), "a"), nil})
	if got := order(root); got != "b a" {
		t.Errorf("order = %q", got)
	}
	if root.ChildNodes()[1] != a {
		t.Error("keyed node behind a hole was recreated")
	}
}

func TestKeyedFragmentsMove(t *testing.T) {
	_, root, r := setup(t)
	frag := func(k string) *VNode {
		return Fragment(Key(k), Span(k+"1"), Span(k+"2"))
	}
	mustRender(t, r, root, []*VNode{frag("a"), frag("b"), frag("c")})
	mustRender(t, r, root, []*VNode{frag("c"), frag("a"), frag("b")})
	if got := order(root); got != "c1 c2 a1 a2 b1 b2" {
		t.Errorf("order = %q", got)
	}
}

func TestKeyedKindChangeKeepsOrder(t *testing.T) {
	tests := []struct {
		name     string
		from, to []*VNode
		want     string
	}{
		{
			"tag change",
			[]*VNode{Span(Key(6), "6"), Li(Key(10), "10"), Li(Key(1), "1")},
			[]*VNode{Li(Key(10), "10"), Span(Key(1), "1"), Span(Key(6), "6")},
			"10 1 6",
		},
		{
			"empty fragment gains a child",
			[]*VNode{Span(Key(6), "6"), Li(Key(10), "10"), Fragment(Key(1))},
			[]*VNode{Li(Key(10), "10"), Fragment(Key(1), Span("1-1")), Span(Key(6), "6")},
			"10 1-1 6",
		},
		{
			"fragment markup replaced",
			[]*VNode{Fragment(Key(6), Trust("<b>6</b>")), Li(Key(10), "10"), Fragment(Key(1), Trust("<i>1</i>"))},
			[]*VNode{Li(Key(10), "10"), Fragment(Key(1), Trust("<b>1</b>")), Fragment(Key(6), Trust("<b>6</b>"))},
			"10 1 6",
		},
		{
			"element becomes fragment",
			[]*VNode{Li(Key("a"), "a"), Li(Key("b"), "b"), Li(Key("c"), "c")},
			[]*VNode{Li(Key("c"), "c"), Fragment(Key("a"), Span("a1"), Span("a2")), Li(Key("b"), "b")},
			"c a1 a2 b",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root, r := setup(t)
			mustRender(t, r, root, tt.from)
			nodes := byText(root)
			mustRender(t, r, root, tt.to)
			if got := order(root); got != tt.want {
				t.Fatalf("order = %q, want %q", got, tt.want)
			}
			for _, k := range []string{"10", "b", "c"} {
				if old, ok := nodes[k]; ok && byText(root)[k] != old {
					t.Errorf("node %q was recreated", k)
				}
			}
		})
	}
}

func TestKeyedFuzzMixedKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 200; round++ {
		_, root, r := setup(t)

		next := 0
		var list []string
		for i := rng.Intn(8); i >= 0; i-- {
			next++
			list = append(list, fmt.Sprintf("k%d", next))
		}
		shapes := keyfuzz.Reshape(rng, list, nil)
		mustRender(t, r, root, keyfuzz.Build(list, shapes))

		for step := 0; step < 10; step++ {
			to := keyfuzz.Mutate(rng, list, &next)
			toShapes := keyfuzz.Reshape(rng, to, shapes)
			nodes := byText(root)
			mustRender(t, r, root, keyfuzz.Build(to, toShapes))

			if got, want := order(root), keyfuzz.Expected(to, toShapes); got != want {
				t.Fatalf("round %d step %d: %v %v -> %v %v: order = %q, want %q",
					round, step, list, shapes, to, toShapes, got, want)
			}
			now := byText(root)
			for _, k := range to {
				s, ok := shapes[k]
				if !ok || s != toShapes[k] || s == keyfuzz.ShapeMarkup {
					continue
				}
				for _, text := range strings.Fields(keyfuzz.Expected([]string{k}, toShapes)) {
					if nodes[text] != now[text] {
						t.Fatalf("round %d step %d: node %q recreated", round, step, text)
					}
				}
			}
			list, shapes = to, toShapes
		}
	}
}

func TestKeyedUnkeyedTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from, to []*VNode
		want     string
	}{
		{"keyed to unkeyed", keyed("a", "b"), []*VNode{Li("a"), Li("b")}, "a b"},
		{"unkeyed to keyed", []*VNode{Li("a"), Li("b")}, keyed("a", "b"), "a b"},
		{"mixed new list", keyed("a", "b"), []*VNode{Li(Key("a"), "a"), Li("b")}, "a b"},
		{"mixed old list", []*VNode{Li(Key("a"), "a"), Li("b")}, keyed("a", "b"), "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root, r := setup(t)
			mustRender(t, r, root, tt.from)
			first := root.FirstChild()
			mustRender(t, r, root, tt.to)
			if got := order(root); got != tt.want {
				t.Errorf("order = %q, want %q", got, tt.want)
			}
			if root.FirstChild() == first {
				t.Error("list was patched instead of rebuilt")
			}
		})
	}
}

func TestUnkeyedPositional(t *testing.T) {
	d, root, r := setup(t)
	mustRender(t, r, root, []*VNode{Li("a"), Li("b"), Li("c")})
	nodes := root.ChildNodes()
	before := d.Stats()
	mustRender(t, r, root, []*VNode{Li("c"), Li("b")})
	if got := order(root); got != "c b" {
		t.Errorf("order = %q", got)
	}
	if root.FirstChild() != nodes[0] {
		t.Error("positional node was recreated")
	}
	if s := d.Stats().Sub(before); s.Moves != 0 || s.Removes != 1 || s.TextWrites != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestUnkeyedHoles(t *testing.T) {
	tests := []struct {
		name     string
		from, to []*VNode
		want     string
	}{
		{"fill leading hole", []*VNode{nil, Li("b")}, []*VNode{Li("a"), Li("b")}, "a b"},
		{"open leading hole", []*VNode{Li("a"), Li("b")}, []*VNode{nil, Li("b")}, "b"},
		{"leading runs differ", []*VNode{nil, nil, Li("c")}, []*VNode{nil, Li("b"), Li("c")}, "b c"},
		{"trailing run", []*VNode{Li("a"), nil, nil}, []*VNode{Li("a"), Li("b"), Li("c")}, "a b c"},
		{"all holes to items", []*VNode{nil, nil}, []*VNode{Li("a"), Li("b")}, "a b"},
		{"items to all holes", []*VNode{Li("a"), Li("b")}, []*VNode{nil, nil}, ""},
		{"shrink past holes", []*VNode{nil, nil, Li("c"), Li("d")}, []*VNode{Li("x")}, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, root, r := setup(t)
			mustRender(t, r, root, tt.from)
			mustRender(t, r, root, tt.to)
			if got := order(root); got != tt.want {
				t.Errorf("order = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnkeyedHoleKeepsSiblingIdentity(t *testing.T) {
	_, root, r := setup(t)
	mustRender(t, r, root, []*VNode{nil, Li("b"), Li("c")})
	b := root.FirstChild()
	mustRender(t, r, root, []*VNode{Li("a"), Li("b"), Li("c")})
	if root.ChildNodes()[1] != b {
		t.Error("node after the filled hole was recreated")
	}
	if got := order(root); got != "a b c" {
		t.Errorf("order = %q", got)
	}
}

// lisLen is a quadratic reference implementation.
func lisLen(a []int) int {
	best := make([]int, len(a))
	n := 0
	for i := range a {
		best[i] = 1
		for j := 0; j < i; j++ {
			if a[j] < a[i] && best[j]+1 > best[i] {
				best[i] = best[j] + 1
			}
		}
		n = max(n, best[i])
	}
	return n
}

// expectedMoves is the number of single-node moves needed to turn from into
// to: every retained node outside a longest increasing run of old positions.
func expectedMoves(from, to []string) int {
	pos := make(map[string]int, len(from))
	for i, k := range from {
		pos[k] = i
	}
	var seq []int
	for _, k := range to {
		if i, ok := pos[k]; ok {
			seq = append(seq, i)
		}
	}
	return len(seq) - lisLen(seq)
}

func TestKeyedFuzzMinimalMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for round := 0; round < 200; round++ {
		d := htmldoc.New()
		root := d.CreateElement("ul", "")
		d.Body().AppendChild(root)
		r := render.New()

		next := 0
		var list []string
		for i := rng.Intn(8); i >= 0; i-- {
			next++
			list = append(list, fmt.Sprintf("k%d", next))
		}
		mustRender(t, r, root, keyed(list...))

		for step := 0; step < 10; step++ {
			to := keyfuzz.Mutate(rng, list, &next)
			nodes := byText(root)
			before := d.Stats()
			mustRender(t, r, root, keyed(to...))

			if got, want := order(root), strings.Join(to, " "); got != want {
				t.Fatalf("round %d step %d: %v -> %v: order = %q", round, step, list, to, got)
			}
			for k, n := range byText(root) {
				if old, ok := nodes[k]; ok && old != n {
					t.Fatalf("round %d step %d: node %q recreated", round, step, k)
				}
			}
			if got, want := d.Stats().Sub(before).Moves, expectedMoves(list, to); got != want {
				t.Fatalf("round %d step %d: %v -> %v: moves = %d, want %d", round, step, list, to, got, want)
			}
			list = to
		}
	}
}

func TestKeyedSwapAfterEmptyFragment(t *testing.T) {
	_, root, r := setup(t)
	pair := func(k string) *VNode { return Fragment(Key(k), Span(k+"1"), Span(k+"2")) }
	mustRender(t, r, root, []*VNode{Fragment(Key("a")), pair("b")})
	mustRender(t, r, root, []*VNode{pair("b"), Fragment(Key("a"), Span("a1"))})
	if got := order(root); got != "b1 b2 a1" {
		t.Errorf("order = %q, want %q", got, "b1 b2 a1")
	}
}
