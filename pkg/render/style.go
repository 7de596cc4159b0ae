package render

import (
	"reflect"
	"sort"
	"strings"
	"unicode"

	"github.com/vango-dev/vdom/pkg/dom"
)

// normalizeKey converts a camelCase style key to its CSS property name.
// Custom properties are left alone.
func normalizeKey(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	if key == "cssFloat" {
		return "float"
	}
	var b strings.Builder
	for _, r := range key {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// styleMap converts a map style value into a property map. ok is false for
// values that are not maps.
func styleMap(value any) (props map[string]any, ok bool) {
	switch m := value.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		props = make(map[string]any, len(m))
		for k, v := range m {
			props[k] = v
		}
		return props, true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	props = make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		props[iter.Key().String()] = iter.Value().Interface()
	}
	return props, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sameMap(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	return ra.Kind() == reflect.Map && rb.Kind() == reflect.Map &&
		ra.Type() == rb.Type() && ra.Pointer() == rb.Pointer()
}

// updateStyle reconciles an element's inline style. Style values may be CSS
// text or maps from property names to values.
func updateStyle(el dom.Element, old, style any) {
	if sameMap(old, style) || equal(old, style) {
		return
	}
	if style == nil {
		el.Style().SetCSSText("")
		return
	}
	next, isMap := styleMap(style)
	if !isMap {
		el.Style().SetCSSText(stringify(style))
		return
	}
	prev, wasMap := styleMap(old)
	s := el.Style()
	if old == nil || !wasMap {
		s.SetCSSText("")
		for _, k := range sortedKeys(next) {
			if v := next[k]; v != nil {
				s.SetProperty(normalizeKey(k), stringify(v))
			}
		}
		return
	}

	for _, k := range sortedKeys(prev) {
		if prev[k] != nil && next[k] == nil {
			s.RemoveProperty(normalizeKey(k))
		}
	}
	for _, k := range sortedKeys(next) {
		v := next[k]
		if v == nil {
			continue
		}
		if sv := stringify(v); prev[k] == nil || sv != stringify(prev[k]) {
			s.SetProperty(normalizeKey(k), sv)
		}
	}
}
