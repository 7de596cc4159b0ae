package inspect

import (
	"sync"

	"github.com/vango-dev/vdom/pkg/dom/htmldoc"
)

// Recorder buffers the mutations of one document until Flush.
type Recorder struct {
	hub    *Hub
	cancel func()

	mu      sync.Mutex
	pending []htmldoc.Mutation
}

// Record starts buffering the mutations of doc.
func (h *Hub) Record(doc *htmldoc.Document) *Recorder {
	rec := &Recorder{hub: h}
	rec.cancel = doc.Observe(rec.add)
	return rec
}

func (r *Recorder) add(m htmldoc.Mutation) {
	r.mu.Lock()
	r.pending = append(r.pending, m)
	r.mu.Unlock()
}

// Len returns the number of buffered mutations.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

// Flush publishes the buffered mutations as one message tagged with pass
// and returns how many were sent. Nothing is published when the buffer is
// empty.
func (r *Recorder) Flush(pass int) int {
	r.mu.Lock()
	batch := r.pending
	r.pending = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return 0
	}
	r.hub.Publish(Message{Type: TypeMutations, Pass: pass, Mutations: batch})
	return len(batch)
}

// Close stops recording. Buffered mutations are discarded.
func (r *Recorder) Close() {
	r.cancel()
	r.mu.Lock()
	r.pending = nil
	r.mu.Unlock()
}
