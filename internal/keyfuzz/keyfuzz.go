// Package keyfuzz checks the keyed child differ against random edits.
//
// Every round renders a keyed list, then applies random deletes, inserts,
// moves and occasional shuffles. After each pass the document must list
// the new keys in order and keep the node of every retained key. Plain
// lists must also have performed exactly as many moves as the edit
// requires: the retained nodes outside a longest increasing run of their
// old positions. Mixed lists render entries as elements, fragments, empty
// fragments and trusted markup, and reshape some of them on every pass.
package keyfuzz

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/render"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Config controls a fuzz run.
type Config struct {
	// Size is the length of the initial list.
	Size int

	// Iterations is the number of independent rounds.
	Iterations int

	// Steps is the number of edits applied per round (default: 10).
	Steps int

	// Seed seeds the random source.
	Seed int64

	// Mixed renders entries in random shapes that change between passes.
	// The move count is not checked in this mode.
	Mixed bool
}

// Report summarizes a successful run.
type Report struct {
	Rounds  int
	Passes  int
	Moves   int
	Inserts int
	Removes int
}

// Shape selects how a keyed entry is rendered.
type Shape uint8

const (
	ShapeItem   Shape = iota // <li>
	ShapeSpan                // <span>
	ShapePair                // fragment of two spans
	ShapeEmpty               // fragment without children
	ShapeMarkup              // fragment holding trusted markup

	numShapes
)

// Run executes the rounds described by cfg. The first failed check is
// returned as an E141 error naming the round, step and both lists.
func Run(cfg Config, opts ...render.Option) (Report, error) {
	if cfg.Steps <= 0 {
		cfg.Steps = 10
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	var rep Report

	for round := 0; round < cfg.Iterations; round++ {
		doc := htmldoc.New()
		root := doc.CreateElement("ul", "")
		doc.Body().AppendChild(root)
		r := render.New(opts...)

		next := 0
		list := make([]string, cfg.Size)
		for i := range list {
			next++
			list[i] = key(next)
		}
		shapes := map[string]Shape{}
		if cfg.Mixed {
			shapes = Reshape(rng, list, shapes)
		}
		if err := r.Render(root, Build(list, shapes), nil); err != nil {
			return rep, err
		}
		rep.Passes++

		for step := 0; step < cfg.Steps; step++ {
			to := Mutate(rng, list, &next)
			toShapes := shapes
			if cfg.Mixed {
				toShapes = Reshape(rng, to, shapes)
			}
			nodes := byText(root)
			before := doc.Stats()
			if err := r.Render(root, Build(to, toShapes), nil); err != nil {
				return rep, err
			}
			diff := doc.Stats().Sub(before)
			rep.Passes++
			rep.Moves += diff.Moves
			rep.Inserts += diff.Inserts
			rep.Removes += diff.Removes

			fail := func(format string, args ...any) error {
				return errors.New("E141").WithDetailf("round %d step %d: %s -> %s: %s",
					round, step, describe(list, shapes), describe(to, toShapes), fmt.Sprintf(format, args...))
			}
			if got, want := order(root), Expected(to, toShapes); got != want {
				return rep, fail("order = %q, want %q", got, want)
			}
			now := byText(root)
			for _, k := range to {
				if !kept(list, k) {
					continue
				}
				s := shapes[k]
				if s != toShapes[k] || s == ShapeMarkup {
					continue
				}
				for _, text := range texts(k, s) {
					if nodes[text] != now[text] {
						return rep, fail("node %q recreated", text)
					}
				}
			}
			if !cfg.Mixed {
				if got, want := diff.Moves, ExpectedMoves(list, to); got != want {
					return rep, fail("moves = %d, want %d", got, want)
				}
			}
			list, shapes = to, toShapes
		}
		rep.Rounds++
	}
	return rep, nil
}

func key(n int) string { return fmt.Sprintf("k%d", n) }

func kept(list []string, k string) bool {
	for _, o := range list {
		if o == k {
			return true
		}
	}
	return false
}

// Items renders keys as keyed list items whose text is the key.
func Items(keys []string) []*vdom.VNode {
	return Build(keys, nil)
}

// Build renders keys in their shapes. Keys missing from shapes are items.
func Build(keys []string, shapes map[string]Shape) []*vdom.VNode {
	out := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		out[i] = Node(k, shapes[k])
	}
	return out
}

// Node renders a single keyed entry.
func Node(k string, s Shape) *vdom.VNode {
	switch s {
	case ShapeSpan:
		return vdom.Span(vdom.Key(k), k)
	case ShapePair:
		return vdom.Fragment(vdom.Key(k), vdom.Span(k+"-1"), vdom.Span(k+"-2"))
	case ShapeEmpty:
		return vdom.Fragment(vdom.Key(k))
	case ShapeMarkup:
		return vdom.Fragment(vdom.Key(k), vdom.Trust("<b>"+k+"</b>"))
	}
	return vdom.Li(vdom.Key(k), k)
}

// texts lists the text of each top-level DOM node an entry renders.
func texts(k string, s Shape) []string {
	switch s {
	case ShapePair:
		return []string{k + "-1", k + "-2"}
	case ShapeEmpty:
		return nil
	}
	return []string{k}
}

// Expected is the space-joined text the root must show after rendering
// keys in their shapes.
func Expected(keys []string, shapes map[string]Shape) string {
	var parts []string
	for _, k := range keys {
		parts = append(parts, texts(k, shapes[k])...)
	}
	return strings.Join(parts, " ")
}

// Reshape assigns shapes for keys. New keys get a random shape and about a
// quarter of the others change theirs. from is not modified.
func Reshape(rng *rand.Rand, keys []string, from map[string]Shape) map[string]Shape {
	out := make(map[string]Shape, len(keys))
	for _, k := range keys {
		s, ok := from[k]
		if !ok || rng.Intn(4) == 0 {
			s = Shape(rng.Intn(int(numShapes)))
		}
		out[k] = s
	}
	return out
}

func describe(keys []string, shapes map[string]Shape) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s/%d", k, shapes[k])
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Mutate returns a random edit of from. New keys are numbered after *next.
func Mutate(rng *rand.Rand, from []string, next *int) []string {
	out := append([]string(nil), from...)
	for i := rng.Intn(4); i >= 0; i-- {
		switch op := rng.Intn(3); {
		case op == 0 && len(out) > 0:
			j := rng.Intn(len(out))
			out = append(out[:j], out[j+1:]...)
		case op == 1:
			*next++
			j := rng.Intn(len(out) + 1)
			out = append(out[:j], append([]string{key(*next)}, out[j:]...)...)
		case len(out) > 1:
			j, k := rng.Intn(len(out)), rng.Intn(len(out))
			item := out[j]
			out = append(out[:j], out[j+1:]...)
			if k > len(out) {
				k = len(out)
			}
			out = append(out[:k], append([]string{item}, out[k:]...)...)
		}
	}
	if rng.Intn(5) == 0 {
		rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

// ExpectedMoves is the number of single-node moves needed to turn from into
// to: every retained key outside a longest increasing run of old positions.
func ExpectedMoves(from, to []string) int {
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

// lisLen returns the length of a longest strictly increasing subsequence.
func lisLen(a []int) int {
	var tails []int
	for _, x := range a {
		i := sort.SearchInts(tails, x)
		if i == len(tails) {
			tails = append(tails, x)
		} else {
			tails[i] = x
		}
	}
	return len(tails)
}

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
