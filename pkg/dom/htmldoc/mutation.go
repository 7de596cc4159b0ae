package htmldoc

// MutationOp names a kind of live-tree mutation.
type MutationOp string

const (
	OpInsert    MutationOp = "insert"
	OpMove      MutationOp = "move"
	OpRemove    MutationOp = "remove"
	OpText      MutationOp = "text"
	OpAttr      MutationOp = "attr"
	OpRemAttr   MutationOp = "removeAttr"
	OpProp      MutationOp = "prop"
	OpStyle     MutationOp = "style"
	OpInnerHTML MutationOp = "innerHTML"
)

// Mutation describes one change to the document. Node, Parent and Ref are
// node IDs (see Element.ID); zero means none.
type Mutation struct {
	Op     MutationOp `json:"op"`
	Node   uint64     `json:"node"`
	Parent uint64     `json:"parent,omitempty"`
	Ref    uint64     `json:"ref,omitempty"`
	Name   string     `json:"name,omitempty"`
	Value  string     `json:"value,omitempty"`
}

// Stats counts operations performed on a document.
type Stats struct {
	Creates         int
	Inserts         int
	Moves           int
	Removes         int
	TextWrites      int
	AttrWrites      int
	PropWrites      int
	StyleWrites     int
	InnerHTMLWrites int
	ListenerAdds    int
	ListenerRemoves int
}

// Mutations returns the number of operations that changed the live tree.
// Node creation and listener bookkeeping are not counted.
func (s Stats) Mutations() int {
	return s.Inserts + s.Moves + s.Removes + s.TextWrites + s.AttrWrites +
		s.PropWrites + s.StyleWrites + s.InnerHTMLWrites
}

// Sub returns s minus o, field by field.
func (s Stats) Sub(o Stats) Stats {
	return Stats{
		Creates:         s.Creates - o.Creates,
		Inserts:         s.Inserts - o.Inserts,
		Moves:           s.Moves - o.Moves,
		Removes:         s.Removes - o.Removes,
		TextWrites:      s.TextWrites - o.TextWrites,
		AttrWrites:      s.AttrWrites - o.AttrWrites,
		PropWrites:      s.PropWrites - o.PropWrites,
		StyleWrites:     s.StyleWrites - o.StyleWrites,
		InnerHTMLWrites: s.InnerHTMLWrites - o.InnerHTMLWrites,
		ListenerAdds:    s.ListenerAdds - o.ListenerAdds,
		ListenerRemoves: s.ListenerRemoves - o.ListenerRemoves,
	}
}

// Stats returns the operation counters accumulated since New or ResetStats.
func (d *Document) Stats() Stats { return d.stats }

// ResetStats zeroes the operation counters.
func (d *Document) ResetStats() { d.stats = Stats{} }

// Observe registers fn to receive every mutation. The returned function
// unregisters it.
func (d *Document) Observe(fn func(Mutation)) (cancel func()) {
	d.nextObs++
	id := d.nextObs
	d.observers[id] = fn
	return func() { delete(d.observers, id) }
}

func (d *Document) record(m Mutation) {
	for _, fn := range d.observers {
		fn(m)
	}
}
