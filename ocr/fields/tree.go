package fields

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse when the payload is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON payload")

// Tree is a read-only view over a node of a provider's JSON response.
//
// The zero Tree is the absent node: every lookup on it yields another absent
// node, so chains of Get never fail regardless of where the path breaks.
type Tree struct {
	res gjson.Result
}

// Parse validates raw and returns its root node.
func Parse(raw []byte) (Tree, error) {
	if !gjson.ValidBytes(raw) {
		return Tree{}, ErrInvalidJSON
	}
	return Tree{res: gjson.ParseBytes(raw)}, nil
}

// SafeGet walks keys one level at a time starting at t.
// A missing key, a missing sub-tree or a non-object along the way yields the absent node.
func SafeGet(t Tree, keys ...string) Tree {
	for _, key := range keys {
		t = t.Get(key)
	}
	return t
}

// Get returns the child stored under key, matched literally.
func (t Tree) Get(key string) Tree {
	if !t.res.IsObject() {
		return Tree{}
	}
	return Tree{res: t.res.Get(escapeKey(key))}
}

// Exists reports whether the node is present and not JSON null.
func (t Tree) Exists() bool {
	return t.res.Exists() && t.res.Type != gjson.Null
}

// IsObject reports whether the node is a JSON object.
func (t Tree) IsObject() bool {
	return t.res.IsObject()
}

// String returns the scalar value of the node as text, or nil when the node is
// absent, null, an object or an array. Numbers keep their JSON spelling.
func (t Tree) String() *string {
	switch t.res.Type {
	case gjson.String:
		s := t.res.Str
		return &s
	case gjson.Number:
		s := t.res.Raw
		return &s
	case gjson.True, gjson.False:
		s := t.res.Raw
		return &s
	default:
		return nil
	}
}

// Float returns the node as a float64. JSON numbers are taken as is and
// strings go through ToNumber.
func (t Tree) Float() (*float64, error) {
	if t.res.Type == gjson.Number {
		v := t.res.Num
		return &v, nil
	}
	return ToNumber[float64](t.String())
}

// Int returns the node as an int64.
func (t Tree) Int() (*int64, error) {
	return ToNumber[int64](t.String())
}

// Array returns the elements of a JSON array in document order.
// Any other node yields an empty slice.
func (t Tree) Array() []Tree {
	if !t.res.IsArray() {
		return []Tree{}
	}
	items := t.res.Array()
	out := make([]Tree, 0, len(items))
	for _, item := range items {
		out = append(out, Tree{res: item})
	}
	return out
}

// Raw returns the JSON text of the node, nil when absent.
func (t Tree) Raw() json.RawMessage {
	if !t.res.Exists() {
		return nil
	}
	return json.RawMessage(t.res.Raw)
}

// escapeKey makes a single object key safe to use as a gjson path component.
func escapeKey(key string) string {
	if key == "" {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 4)
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !isPlainKeyChar(c) {
			b.WriteByte('\\')
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isPlainKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '-' || c == ':' ||
		c <= ' ' || c > '~'
}
