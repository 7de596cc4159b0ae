package vdom

import (
	"errors"
	"slices"
	"testing"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
)

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
		if node.Attrs != nil {
			t.Errorf("Attrs = %v, want nil", node.Attrs)
		}
	})

	t.Run("class folds into className", func(t *testing.T) {
		node := Div(Class("card"), ID("main"))
		if got := node.Attr("className"); got != "card" {
			t.Errorf("className = %v, want card", got)
		}
		v, ok := node.Attrs.Get("class")
		if !ok || v != nil {
			t.Errorf("class = %v (present %v), want nil tombstone", v, ok)
		}
		if got := node.Attr("id"); got != "main" {
			t.Errorf("id = %v, want main", got)
		}
	})

	t.Run("class merges with className", func(t *testing.T) {
		node := Div(ClassName("a"), Class("b"))
		if got := node.Attr("className"); got != "a b" {
			t.Errorf("className = %q, want %q", got, "a b")
		}
	})

	t.Run("className takes the place of class", func(t *testing.T) {
		node := Ul(Class("items"), StyleAttr("color: red"))
		want := []string{"className", "style", "class"}
		if got := node.Attrs.Keys(); !slices.Equal(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
		node = Div(ID("x"), ClassName("a"), TitleAttr("t"), Class("b"))
		want = []string{"id", "className", "title", "class"}
		if got := node.Attrs.Keys(); !slices.Equal(got, want) {
			t.Errorf("Keys() = %v, want %v", got, want)
		}
	})

	t.Run("nil argument is a hole", func(t *testing.T) {
		node := Ul(Li("a"), nil, Li("b"))
		if len(node.Children) != 3 || node.Children[1] != nil {
			t.Errorf("Children = %v, want li, hole, li", node.Children)
		}
	})

	t.Run("attributes keep insertion order", func(t *testing.T) {
		node := Input(Value("x"), Type("text"), Name("n"))
		want := []string{"value", "type", "name"}
		got := node.Attrs.Keys()
		if len(got) != len(want) {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Keys()[%d] = %s, want %s", i, got[i], want[i])
			}
		}
	})

	t.Run("children of every shape", func(t *testing.T) {
		node := Ul(Li("a"), []*VNode{Li("b"), nil}, []any{"c", 4, []any{true, Li("e")}})
		want := []string{"<li>", "<li>", "", "c", "4", "", "<li>"}
		if len(node.Children) != len(want) {
			t.Fatalf("Children len = %d, want %d", len(node.Children), len(want))
		}
		for i, w := range want {
			c := node.Children[i]
			switch {
			case w == "":
				if c != nil {
					t.Errorf("child %d = %v, want hole", i, c.Name())
				}
			case c == nil:
				t.Errorf("child %d is a hole, want %s", i, w)
			case c.Kind == KindText:
				if c.Text != w {
					t.Errorf("child %d text = %q, want %q", i, c.Text, w)
				}
			case c.Name() != w:
				t.Errorf("child %d = %s, want %s", i, c.Name(), w)
			}
		}
	})

	t.Run("with event handler", func(t *testing.T) {
		handler := func() {}
		node := Button(OnClick(handler))
		if node.Attr("onclick") == nil {
			t.Error("onclick handler not set")
		}
	})

	t.Run("key from attribute", func(t *testing.T) {
		node := Li(Key(7), Text("x"))
		if node.Key != "7" {
			t.Errorf("Key = %q, want 7", node.Key)
		}
		if other := Li(Key("7")); other.Key != node.Key {
			t.Errorf("Key(7) = %q and Key(\"7\") = %q, want the same key", node.Key, other.Key)
		}
		if !node.Keyed() {
			t.Error("Keyed() = false")
		}
	})

	t.Run("invalid child panics", func(t *testing.T) {
		defer func() {
			r := recover()
			err, ok := r.(error)
			if !ok || !errors.Is(err, vdomerrors.New("E206")) {
				t.Errorf("recover() = %v, want E206", r)
			}
		}()
		Div(struct{}{})
	})
}

func TestStaticAttrsShared(t *testing.T) {
	shared := Static(Class("btn"), Type("button"))
	a := Button(shared)
	b := Button(shared)
	if a.Attrs != shared || b.Attrs != shared {
		t.Fatal("a lone static attrs object should be used as-is")
	}
	if got := shared.Value("className"); got != "btn" {
		t.Errorf("className = %v, want btn", got)
	}

	c := Button(shared, ID("x"))
	if c.Attrs == shared {
		t.Fatal("extra attributes must copy the shared object")
	}
	if c.Attrs.IsStatic() {
		t.Error("copy should be mutable")
	}
	if c.Attr("type") != "button" || c.Attr("id") != "x" {
		t.Errorf("merged attrs = %v", c.Attrs.Keys())
	}
}

func TestVoidElements(t *testing.T) {
	tests := []struct {
		tag  string
		want bool
	}{
		{"br", true},
		{"input", true},
		{"div", false},
		{"x-widget", false},
	}
	for _, tt := range tests {
		if got := IsVoidElement(tt.tag); got != tt.want {
			t.Errorf("IsVoidElement(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestCustomElement(t *testing.T) {
	node := CustomElement("x-widget", IsAttr("fancy"), Attribute("config", 1))
	if node.Tag != "x-widget" {
		t.Errorf("Tag = %v, want x-widget", node.Tag)
	}
	if node.Is() != "fancy" {
		t.Errorf("Is() = %q, want fancy", node.Is())
	}
	if node.Attr("config") != 1 {
		t.Errorf("config = %v, want 1", node.Attr("config"))
	}
}
