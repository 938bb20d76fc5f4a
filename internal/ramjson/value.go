// Package ramjson provides canonical, content-addressed serialization of
// RAM trees, adapted from the store's canonical-JSON discipline: sorted
// object keys, NFC-normalized strings, no HTML escaping. Unlike that
// discipline it does not forbid floats — RAM float constants are a
// legitimate domain value here — so floats are canonicalized via Go's
// shortest round-tripping decimal form for determinism across runs.
package ramjson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Value is a sealed interface over the canonical value alphabet used to
// encode a RAM tree: Null, String, Int, Float, Bool, Array, Object.
type Value interface {
	ramValue()
}

type Null struct{}

func (Null) ramValue() {}

type String string

func (String) ramValue() {}

type Int int64

func (Int) ramValue() {}

type Float float64

func (Float) ramValue() {}

type Bool bool

func (Bool) ramValue() {}

type Array []Value

func (Array) ramValue() {}

// Object is an ordered-on-marshal map of string keys to Values. Keys are
// sorted by UTF-16 code unit at marshal time (RFC 8785 discipline), not at
// construction time.
type Object map[string]Value

func (Object) ramValue() {}

// Node is a small builder for tagged Objects: every encoded RAM node
// carries a "type" field naming its Go type, plus its fields.
func Node(typeName string, fields Object) Object {
	out := make(Object, len(fields)+1)
	out["type"] = String(typeName)
	for k, v := range fields {
		out[k] = v
	}
	return out
}

func sortedKeys(obj Object) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	n := len(a16)
	if len(b16) < n {
		n = len(b16)
	}
	for i := 0; i < n; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	return len(a16) - len(b16)
}

// Marshal produces canonical JSON bytes for v, suitable for hashing:
// sorted keys, NFC-normalized strings, no HTML escaping.
func Marshal(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case String:
		return marshalString(string(val))
	case Int:
		return []byte(strconv.FormatInt(int64(val), 10)), nil
	case Float:
		return marshalFloat(float64(val))
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Array:
		return marshalArray(val)
	case Object:
		return marshalObject(val)
	default:
		return nil, fmt.Errorf("ramjson: unsupported value type %T", v)
	}
}

func marshalFloat(f float64) ([]byte, error) {
	if f != f { // NaN
		return nil, fmt.Errorf("ramjson: NaN is forbidden in canonical form")
	}
	return []byte(strconv.FormatFloat(f, 'g', -1, 64)), nil
}

func marshalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalArray(arr Array) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := Marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalObject(obj Object) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	keys := sortedKeys(obj)
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := Marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
