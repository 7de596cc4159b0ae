package inspect

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/internal/treefile"
	"github.com/vango-dev/vdom/pkg/dom"
	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
	"github.com/vango-dev/vdom/pkg/metrics"
	"github.com/vango-dev/vdom/pkg/render"
)

// maxTreeSize bounds POST /render bodies.
const maxTreeSize = 1 << 20

// ServerOptions configures the inspection server.
type ServerOptions struct {
	// Config is the CLI configuration.
	Config *config.Config

	// Logger receives request and render logs. Default: slog.Default().
	Logger *slog.Logger

	// Registry holds the render metrics. Default: a fresh registry.
	Registry *prometheus.Registry
}

// RenderResult is the response body of POST /render.
type RenderResult struct {
	Pass      uint64 `json:"pass"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Removed   int    `json:"removed"`
	Moved     int    `json:"moved"`
	Mutations int    `json:"mutations"`
	Error     string `json:"error,omitempty"`
}

// Server keeps one live document. Trees posted to it are rendered as
// successive passes into the same root and the resulting mutations are
// streamed to WebSocket clients.
type Server struct {
	config   *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry

	mu       sync.Mutex
	doc      *htmldoc.Document
	root     dom.Element
	renderer *render.Renderer
	last     render.PassStats

	hub        *Hub
	recorder   *Recorder
	httpServer *http.Server
}

// NewServer creates an inspection server with an empty document.
func NewServer(options ServerOptions) *Server {
	cfg := options.Config
	if cfg == nil {
		cfg = config.New()
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := options.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	s := &Server{
		config:   cfg,
		logger:   logger,
		registry: reg,
		doc:      htmldoc.New(),
	}
	s.root = s.doc.CreateElement("div", "")
	s.root.SetAttribute("id", "root")
	s.doc.Body().AppendChild(s.root)

	collector := metrics.New(
		metrics.WithRegistry(reg),
		metrics.WithNamespace(cfg.Metrics.Namespace),
		metrics.WithSubsystem(cfg.Metrics.Subsystem),
	)
	s.renderer = render.New(
		render.WithLogger(logger),
		render.WithTracerName(cfg.Tracing.TracerName),
		render.WithObserver(render.ObserverFunc(func(st render.PassStats) {
			s.last = st
			collector.ObservePass(st)
		})),
	)
	collector.TrackPending(s.renderer)

	s.hub = NewHub(
		WithLogger(logger),
		WithAllowedOrigins(cfg.Serve.AllowedOrigins),
		WithSnapshot(s.HTML),
	)
	s.recorder = s.hub.Record(s.doc)
	return s
}

// HTML returns the root's current markup.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root.(*htmldoc.Element).InnerHTML()
}

// Render runs one pass of tree into the live root and publishes its
// mutations.
func (s *Server) Render(ctx context.Context, tree []*treefile.Node) (RenderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.renderer.RenderContext(ctx, s.root, treefile.Build(tree), nil)
	res := RenderResult{
		Pass:    s.last.Pass,
		Created: s.last.Created,
		Updated: s.last.Updated,
		Removed: s.last.Removed,
		Moved:   s.last.Moved,
	}
	res.Mutations = s.recorder.Flush(int(s.last.Pass))
	if err != nil {
		res.Error = err.Error()
		s.hub.NotifyError(err)
	}
	return res, err
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handleHTML)
	r.Post("/render", s.handleRender)
	r.Get("/ws", s.hub.HandleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHTML(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, s.HTML())
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxTreeSize))
	if err != nil {
		writeJSON(w, http.StatusRequestEntityTooLarge, RenderResult{Error: err.Error()})
		return
	}
	tree, err := treefile.Parse(data)
	if err != nil {
		s.hub.NotifyError(err)
		writeJSON(w, http.StatusBadRequest, RenderResult{Error: err.Error()})
		return
	}

	res, err := s.Render(r.Context(), tree)
	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
		if errors.CategoryOf(err) == errors.CategoryReentrancy {
			status = http.StatusConflict
		}
	}
	writeJSON(w, status, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Start serves on the configured address until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Serve.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("inspection server running", "addr", s.config.Serve.Addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		return err
	}
}

// Stop closes client connections and shuts the HTTP server down.
func (s *Server) Stop() {
	s.hub.Close()
	s.recorder.Close()
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}
