package vdom

import (
	"fmt"
	"reflect"
	"strconv"

	vdomerrors "github.com/vango-dev/vdom/internal/errors"
)

// Normalize converts x into a single node. Strings and numbers become text,
// nil and booleans become nil, and slices become a fragment of their
// normalized elements.
func Normalize(x any) (*VNode, error) {
	if isSlice(x) {
		children, err := NormalizeChildren(x)
		if err != nil {
			return nil, err
		}
		return &VNode{Kind: KindFragment, Children: children}, nil
	}
	return normalizeOne(x)
}

// NormalizeChildren flattens x into an ordered list of nodes. Nested slices
// are spliced in place; nil entries mark holes that render nothing. A
// []*VNode is already normalized and is returned as-is.
func NormalizeChildren(x any) ([]*VNode, error) {
	switch v := x.(type) {
	case nil:
		return nil, nil
	case []*VNode:
		return v, nil
	}
	var out []*VNode
	if err := appendNormalized(&out, x); err != nil {
		return nil, err
	}
	return out, nil
}

// MustNormalizeChildren is like NormalizeChildren but panics on error.
func MustNormalizeChildren(x any) []*VNode {
	out, err := NormalizeChildren(x)
	if err != nil {
		panic(err)
	}
	return out
}

func appendNormalized(out *[]*VNode, x any) error {
	switch v := x.(type) {
	case []*VNode:
		*out = append(*out, v...)
		return nil
	case []any:
		for _, e := range v {
			if err := appendNormalized(out, e); err != nil {
				return err
			}
		}
		return nil
	}
	if isSlice(x) {
		rv := reflect.ValueOf(x)
		for i := 0; i < rv.Len(); i++ {
			if err := appendNormalized(out, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	n, err := normalizeOne(x)
	if err != nil {
		return err
	}
	*out = append(*out, n)
	return nil
}

func normalizeOne(x any) (*VNode, error) {
	switch v := x.(type) {
	case nil, bool:
		return nil, nil
	case *VNode:
		return v, nil
	case string:
		return Text(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return Text(fmt.Sprint(v)), nil
	case float32:
		return Text(strconv.FormatFloat(float64(v), 'f', -1, 32)), nil
	case float64:
		return Text(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case fmt.Stringer:
		return Text(v.String()), nil
	default:
		return nil, vdomerrors.New("E206").WithDetailf("unsupported value of type %T", x)
	}
}

func isSlice(x any) bool {
	if x == nil {
		return false
	}
	k := reflect.TypeOf(x).Kind()
	return k == reflect.Slice || k == reflect.Array
}
