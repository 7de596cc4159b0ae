package inspect

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/treefile"
)

const firstTree = `
tag: ul
children:
  - {tag: li, key: a, children: [A]}
  - {tag: li, key: b, children: [B]}
`

const secondTree = `
tag: ul
children:
  - {tag: li, key: b, children: [B]}
  - {tag: li, key: a, children: [A]}
`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.New()
	cfg.Metrics.Namespace = "test"
	s := NewServer(ServerOptions{Config: cfg})
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		srv.Close()
		s.Stop()
	})
	return s, srv
}

func postTree(t *testing.T, srv *httptest.Server, body string) (int, RenderResult) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/render", "application/yaml", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var res RenderResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	return resp.StatusCode, res
}

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestServerRenderPasses(t *testing.T) {
	_, srv := newTestServer(t)
	assert.Equal(t, "", get(t, srv.URL+"/"))

	status, res := postTree(t, srv, firstTree)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(1), res.Pass)
	assert.Greater(t, res.Created, 0)
	assert.Equal(t, "<ul><li>A</li><li>B</li></ul>", get(t, srv.URL+"/"))

	status, res = postTree(t, srv, secondTree)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, uint64(2), res.Pass)
	assert.Equal(t, 1, res.Moved)
	assert.Equal(t, 1, res.Mutations)
	assert.Equal(t, "<ul><li>B</li><li>A</li></ul>", get(t, srv.URL+"/"))
}

func TestServerRejectsInvalidTree(t *testing.T) {
	_, srv := newTestServer(t)
	status, res := postTree(t, srv, "{tag: p, text: x}")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, res.Error, "E140")
}

func TestServerStreamsMutations(t *testing.T) {
	s, srv := newTestServer(t)
	conn := dial(t, srv, "/ws", nil)
	msg := readMessage(t, conn)
	assert.Equal(t, TypeSnapshot, msg.Type)
	waitClients(t, s.hub, 1)

	_, res := postTree(t, srv, firstTree)
	msg = readMessage(t, conn)
	assert.Equal(t, TypeMutations, msg.Type)
	assert.Equal(t, int(res.Pass), msg.Pass)
	assert.Len(t, msg.Mutations, res.Mutations)
}

func TestServerMetrics(t *testing.T) {
	_, srv := newTestServer(t)
	postTree(t, srv, firstTree)
	postTree(t, srv, secondTree)

	body := get(t, srv.URL+"/metrics")
	assert.Contains(t, body, `test_render_passes_total{status="success"} 2`)
	assert.Contains(t, body, "test_render_pending_removals 0")
}

func TestServerRenderDirect(t *testing.T) {
	s := NewServer(ServerOptions{})
	defer s.Stop()
	tree, err := treefile.Parse([]byte(firstTree))
	require.NoError(t, err)

	res, err := s.Render(context.Background(), tree)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.Pass)
	assert.Equal(t, "<ul><li>A</li><li>B</li></ul>", s.HTML())
}
