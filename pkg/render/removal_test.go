package render_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/pkg/future"
	"github.com/vango-dev/vdom/pkg/render"
	. "github.com/vango-dev/vdom/pkg/vdom"
)

func blockedFragment(key string, f *future.Future) *VNode {
	return Fragment(Key(key),
		OnBeforeRemove(func(*VNode) *future.Future { return f }),
		Span(key+"1"), Span(key+"2"),
	)
}

func TestDeferredRemovalOrders(t *testing.T) {
	orders := [][]string{
		{"a", "b", "c"}, {"a", "c", "b"},
		{"b", "a", "c"}, {"b", "c", "a"},
		{"c", "a", "b"}, {"c", "b", "a"},
	}
	for _, resolve := range orders {
		t.Run(strings.Join(resolve, ""), func(t *testing.T) {
			_, root, r := setup(t)
			blockers := map[string]*future.Future{
				"a": future.New(), "b": future.New(), "c": future.New(),
			}
			mustRender(t, r, root, []*VNode{
				blockedFragment("a", blockers["a"]),
				blockedFragment("b", blockers["b"]),
				blockedFragment("c", blockers["c"]),
			})
			mustRender(t, r, root, nil)
			if got := order(root); got != "a1 a2 b1 b2 c1 c2" {
				t.Fatalf("zombies = %q", got)
			}
			if r.Pending() != 6 {
				t.Errorf("Pending() = %d, want 6", r.Pending())
			}

			left := map[string]bool{"a": true, "b": true, "c": true}
			for _, k := range resolve {
				blockers[k].Resolve(nil)
				left[k] = false
				var want []string
				for _, x := range []string{"a", "b", "c"} {
					if left[x] {
						want = append(want, x+"1", x+"2")
					}
				}
				if got := order(root); got != strings.Join(want, " ") {
					t.Fatalf("after resolving %s: order = %q, want %q", k, got, strings.Join(want, " "))
				}
			}
			if r.Pending() != 0 {
				t.Errorf("Pending() = %d after all settled", r.Pending())
			}
		})
	}
}

// A pending node is invisible to later passes: keyed moves position the
// live nodes around it and it is detached once its blocker settles.
func TestDeferredRemovalSkippedByLaterPasses(t *testing.T) {
	d, root, r := setup(t)
	f := future.New()
	removed := 0
	b := func() *VNode {
		return Li(Key("b"), "b",
			OnBeforeRemove(func(*VNode) *future.Future { return f }),
			OnRemove(func(*VNode) { removed++ }),
		)
	}
	mustRender(t, r, root, []*VNode{Li(Key("a"), "a"), b(), Li(Key("c"), "c")})
	mustRender(t, r, root, keyed("a", "c"))
	if got := order(root); got != "a b c" {
		t.Fatalf("order = %q", got)
	}
	if removed != 0 {
		t.Fatal("onremove ran before the blocker settled")
	}

	before := d.Stats()
	mustRender(t, r, root, keyed("c", "a"))
	if got := order(root); got != "c a b" {
		t.Fatalf("order = %q", got)
	}
	if moves := d.Stats().Sub(before).Moves; moves != 1 {
		t.Errorf("moves = %d, want 1", moves)
	}

	mustRender(t, r, root, keyed("c", "a", "d"))
	if got := order(root); got != "c a b d" {
		t.Fatalf("order = %q", got)
	}

	f.Resolve(nil)
	if got := order(root); got != "c a d" {
		t.Errorf("order after settle = %q", got)
	}
	if removed != 1 {
		t.Errorf("onremove calls = %d, want 1", removed)
	}
}

// Nodes deferred in different passes are told apart by generation: a
// fragment removed later does not take an earlier zombie with it.
func TestDeferredRemovalGenerations(t *testing.T) {
	_, root, r := setup(t)
	fy, ff := future.New(), future.New()
	y := func() *VNode {
		return Span("y", OnBeforeRemove(func(*VNode) *future.Future { return fy }))
	}
	frag := func(children ...any) *VNode {
		args := append([]any{OnBeforeRemove(func(*VNode) *future.Future { return ff })}, children...)
		return Fragment(args...)
	}

	mustRender(t, r, root, frag(Span("x"), y()))
	mustRender(t, r, root, frag(Span("x")))
	if got := order(root); got != "x y" {
		t.Fatalf("order = %q", got)
	}
	mustRender(t, r, root, nil)
	if got := order(root); got != "x y" {
		t.Fatalf("order = %q", got)
	}

	ff.Resolve(nil)
	if got := order(root); got != "y" {
		t.Fatalf("after fragment settled: order = %q, want y", got)
	}
	fy.Resolve(nil)
	if got := order(root); got != "" {
		t.Errorf("after y settled: order = %q", got)
	}
}

func TestDeferredRemovalWaitsForEveryBlocker(t *testing.T) {
	fs, fa := future.New(), future.New()
	removed := 0
	def := Define("guarded", func(*VNode) Component {
		return &removable{blocker: fs, removed: &removed}
	})
	_, root, r := setup(t)
	mustRender(t, r, root, Comp(def, OnBeforeRemove(func(*VNode) *future.Future { return fa })))
	mustRender(t, r, root, nil)

	fs.Reject(errors.New("animation aborted"))
	if got := inner(root); got != "<p>bye</p>" {
		t.Fatalf("removed before every blocker settled: %q", got)
	}
	fa.Resolve(nil)
	if got := inner(root); got != "" {
		t.Errorf("innerHTML = %q", got)
	}
	if removed != 1 {
		t.Errorf("onremove calls = %d, want 1", removed)
	}
}

type removable struct {
	blocker *future.Future
	removed *int
}

func (s *removable) View(*VNode) any { return P("bye") }

func (s *removable) OnBeforeRemove(*VNode) *future.Future { return s.blocker }

func (s *removable) OnRemove(*VNode) { *s.removed++ }

// Settling a blocker while a pass is running finishes the removal only
// after the pass, through the dispatcher.
func TestDeferredRemovalSettledDuringPass(t *testing.T) {
	var queued []func()
	_, root, r := setup(t, render.WithDispatcher(func(fn func()) { queued = append(queued, fn) }))
	f := future.New()
	mustRender(t, r, root, keyed("a"))
	mustRender(t, r, root, []*VNode{Li(Key("a"), "a", OnBeforeRemove(func(*VNode) *future.Future { return f }))})

	var during string
	mustRender(t, r, root, []*VNode{Li(Key("b"), "b", OnCreate(func(*VNode) {
		f.Resolve(nil)
		during = order(root)
	}))})
	if during != "a b" {
		t.Errorf("during the pass order = %q, want a b", during)
	}
	if len(queued) != 1 {
		t.Fatalf("dispatched %d continuations, want 1", len(queued))
	}
	if got := order(root); got != "a b" {
		t.Fatalf("removal finished before dispatch: %q", got)
	}
	queued[0]()
	if got := order(root); got != "b" {
		t.Errorf("order = %q", got)
	}
}

func TestRemoveHooksRunParentFirst(t *testing.T) {
	var log []string
	hook := func(name string) Hook { return func(*VNode) { log = append(log, name) } }
	_, root, r := setup(t)
	mustRender(t, r, root, Ul(OnRemove(hook("ul")),
		Li(OnRemove(hook("li1")), Span(OnRemove(hook("span")))),
		Li(OnRemove(hook("li2"))),
	))
	mustRender(t, r, root, nil)
	if got := strings.Join(log, " "); got != "ul li1 span li2" {
		t.Errorf("onremove order = %q", got)
	}
}
