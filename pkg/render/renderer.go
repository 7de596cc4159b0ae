package render

import (
	"context"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// DefaultTracerName is the tracer used when no tracer option is given.
const DefaultTracerName = "github.com/vango-dev/vdom/pkg/render"

var (
	// ErrInvalidRoot matches, with errors.Is, the error returned when Render
	// is given something other than an element or document fragment.
	ErrInvalidRoot = vdomerrors.New("E200")

	// ErrReentrant matches the error returned when Render is called for a
	// root that overlaps a root that is mid-render.
	ErrReentrant = vdomerrors.New("E201")
)

// baselineKey is the user-data key under which a root's last rendered
// children are stored.
type baselineKey struct{}

type baseline struct {
	children []*vdom.VNode
}

// Renderer reconciles vnode trees into host documents.
type Renderer struct {
	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
	dispatch func(fn func())

	// Roots that are mid-render, innermost last.
	mu        sync.Mutex
	rendering []dom.Node
	deferred  []func()

	pass uint64

	// DOM nodes whose removal is waiting on onbeforeremove, mapped to the
	// pass that deferred them. npending mirrors its size for readers on
	// other goroutines.
	pending  map[dom.Node]uint64
	npending atomic.Int64

	// Definitions whose constructor or view is currently executing.
	locks map[*vdom.Definition]bool
}

// New creates a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		logger:   slog.Default(),
		tracer:   otel.Tracer(DefaultTracerName),
		dispatch: func(fn func()) { fn() },
		pending:  make(map[dom.Node]uint64),
		locks:    make(map[*vdom.Definition]bool),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render reconciles children into root. See RenderContext.
func (r *Renderer) Render(root dom.Node, children any, redraw func()) error {
	return r.RenderContext(context.Background(), root, children, redraw)
}

// RenderContext reconciles children into root.
//
// children is anything vdom.NormalizeChildren accepts. The first render into
// a root clears its existing content. redraw, when non-nil, is invoked after
// event handlers run and when futures returned from oninit or handlers
// settle.
//
// Errors raised by views and hooks do not abort the pass; they are combined
// and returned once the pass completes.
func (r *Renderer) RenderContext(ctx context.Context, root dom.Node, children any, redraw func()) error {
	if isNil(root) {
		return vdomerrors.New("E200").WithDetail("The render target is nil.")
	}
	if t := root.Type(); t != dom.ElementNode && t != dom.FragmentNode {
		return vdomerrors.New("E200").WithDetailf("Cannot render into a %s node.", t)
	}

	vnodes, err := vdom.NormalizeChildren(children)
	if err != nil {
		return err
	}

	if err := r.lock(root); err != nil {
		return err
	}
	defer r.unlock(root)

	r.pass++
	p := &pass{
		r:      r,
		doc:    root.OwnerDocument(),
		gen:    r.pass,
		redraw: redraw,
	}
	p.stats.Pass = p.gen

	ctx, span := r.tracer.Start(ctx, "vdom.render",
		trace.WithAttributes(attribute.Int64("vdom.pass", int64(p.gen))),
	)
	defer span.End()

	start := time.Now()
	ns := ""
	if el, ok := root.(dom.Element); ok && el.NamespaceURI() != dom.NamespaceHTML {
		ns = el.NamespaceURI()
	}

	var active dom.Element
	if p.doc != nil {
		active = p.doc.ActiveElement()
	}

	base, _ := root.UserData(baselineKey{}).(*baseline)
	if base == nil {
		root.SetTextContent("")
		base = &baseline{}
	}

	p.updateNodes(root, base.children, vnodes, nil, ns)
	root.SetUserData(baselineKey{}, &baseline{children: vnodes})

	if active != nil && p.doc.ActiveElement() != active {
		active.Focus()
	}
	for i := 0; i < len(p.hooks); i++ {
		p.hooks[i]()
	}

	p.stats.Duration = time.Since(start)
	p.stats.Errors = len(multierr.Errors(p.err))
	span.SetAttributes(
		attribute.Int("vdom.created", p.stats.Created),
		attribute.Int("vdom.updated", p.stats.Updated),
		attribute.Int("vdom.removed", p.stats.Removed),
		attribute.Int("vdom.moved", p.stats.Moved),
	)
	if p.err != nil {
		span.RecordError(p.err)
		span.SetStatus(codes.Error, p.err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	r.logger.LogAttrs(ctx, slog.LevelDebug, "render pass",
		slog.Uint64("pass", p.gen),
		slog.Int("created", p.stats.Created),
		slog.Int("updated", p.stats.Updated),
		slog.Int("removed", p.stats.Removed),
		slog.Int("deferred", p.stats.Deferred),
		slog.Int("moved", p.stats.Moved),
		slog.Duration("duration", p.stats.Duration),
	)
	if r.observer != nil {
		r.observer.ObservePass(p.stats)
	}
	return p.err
}

// Pending returns the number of DOM nodes whose removal is deferred. It is
// safe to call from any goroutine.
func (r *Renderer) Pending() int {
	return int(r.npending.Load())
}

// Rendered returns the children last rendered into root, or nil.
func (r *Renderer) Rendered(root dom.Node) []*vdom.VNode {
	if base, ok := root.UserData(baselineKey{}).(*baseline); ok {
		return base.children
	}
	return nil
}

func (r *Renderer) lock(root dom.Node) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, busy := range r.rendering {
		if busy.Contains(root) || root.Contains(busy) {
			return vdomerrors.New("E201").WithDetailf("Cannot render into <%s> while <%s> is rendering.",
				root.NodeName(), busy.NodeName())
		}
	}
	r.rendering = append(r.rendering, root)
	return nil
}

func (r *Renderer) unlock(root dom.Node) {
	r.mu.Lock()
	for i := len(r.rendering) - 1; i >= 0; i-- {
		if r.rendering[i] == root {
			r.rendering = append(r.rendering[:i], r.rendering[i+1:]...)
			break
		}
	}
	var run []func()
	if len(r.rendering) == 0 {
		run, r.deferred = r.deferred, nil
	}
	r.mu.Unlock()

	for _, fn := range run {
		r.dispatch(fn)
	}
}

// schedule runs fn through the dispatcher, or after the outermost pass if a
// pass is in progress.
func (r *Renderer) schedule(fn func()) {
	r.mu.Lock()
	if len(r.rendering) > 0 {
		r.deferred = append(r.deferred, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	r.dispatch(fn)
}

// requestRedraw schedules redraw, if any.
func (r *Renderer) requestRedraw(redraw func()) {
	if redraw != nil {
		r.schedule(redraw)
	}
}

func isNil(n dom.Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}
