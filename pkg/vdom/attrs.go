package vdom

import (
	"strings"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
)

// Attrs is an ordered attribute map. Iteration follows insertion order so
// that DOM writes are deterministic.
//
// A static Attrs is immutable and may be shared between nodes and across
// renders; the renderer skips diffing it against itself.
type Attrs struct {
	keys   []string
	values map[string]any
	static bool
}

// NewAttrs builds a mutable attrs object from attributes.
func NewAttrs(attrs ...Attr) *Attrs {
	a := &Attrs{values: make(map[string]any, len(attrs))}
	for _, at := range attrs {
		if !at.IsEmpty() {
			a.set(at.Key, at.Value)
		}
	}
	return a
}

// Static builds an immutable attrs object. The class attribute is folded
// into className up front.
func Static(attrs ...Attr) *Attrs {
	a := NewAttrs(attrs...)
	a.normalizeClass()
	a.static = true
	return a
}

// Freeze returns an immutable copy of a.
func (a *Attrs) Freeze() *Attrs {
	if a == nil {
		return nil
	}
	if a.static {
		return a
	}
	c := a.clone()
	c.normalizeClass()
	c.static = true
	return c
}

// IsStatic reports whether a is immutable.
func (a *Attrs) IsStatic() bool { return a != nil && a.static }

// Len returns the number of keys.
func (a *Attrs) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the keys in insertion order.
func (a *Attrs) Keys() []string {
	if a == nil {
		return nil
	}
	return a.keys
}

// Get returns the value of key and whether it is present. A key that is
// present may still hold nil.
func (a *Attrs) Get(key string) (any, bool) {
	if a == nil {
		return nil, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value of key, or nil.
func (a *Attrs) Value(key string) any {
	v, _ := a.Get(key)
	return v
}

// Has reports whether key is present with a non-nil value.
func (a *Attrs) Has(key string) bool {
	return a.Value(key) != nil
}

// Set assigns key. It fails with E205 on a static attrs object.
func (a *Attrs) Set(key string, value any) error {
	if a.static {
		return vdomerrors.New("E205").WithDetailf("cannot set %q", key)
	}
	a.set(key, value)
	return nil
}

// Delete removes key. It fails with E205 on a static attrs object.
func (a *Attrs) Delete(key string) error {
	if a.static {
		return vdomerrors.New("E205").WithDetailf("cannot delete %q", key)
	}
	if _, ok := a.values[key]; !ok {
		return nil
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
	return nil
}

// Range calls fn for every key in order until fn returns false.
func (a *Attrs) Range(fn func(key string, value any) bool) {
	if a == nil {
		return
	}
	for _, k := range a.keys {
		if !fn(k, a.values[k]) {
			return
		}
	}
}

func (a *Attrs) set(key string, value any) {
	if a.values == nil {
		a.values = make(map[string]any)
	}
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attrs) clone() *Attrs {
	c := &Attrs{
		keys:   append([]string(nil), a.keys...),
		values: make(map[string]any, len(a.values)),
	}
	for k, v := range a.values {
		c.values[k] = v
	}
	return c
}

// normalizeClass folds "class" into "className" and leaves a nil "class"
// tombstone so that a later removal of the class attribute is still seen.
// className keeps its own position if it was set, otherwise it takes the
// position of class. The tombstone goes last.
func (a *Attrs) normalizeClass() {
	cls, ok := a.values["class"]
	if !ok || cls == nil {
		return
	}
	parts := make([]string, 0, 2)
	cn, hasName := a.values["className"]
	if s, ok := cn.(string); ok && s != "" {
		parts = append(parts, s)
	}
	if s, ok := cls.(string); ok && s != "" {
		parts = append(parts, s)
	}
	keys := make([]string, 0, len(a.keys)+1)
	for _, k := range a.keys {
		switch {
		case k != "class":
			keys = append(keys, k)
		case !hasName:
			keys = append(keys, "className")
		}
	}
	a.keys = append(keys, "class")
	a.values["className"] = strings.Join(parts, " ")
	a.values["class"] = nil
}
