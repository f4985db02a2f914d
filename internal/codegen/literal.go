package codegen

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Literal encodes v as a TSX expression. Strings become quoted literals,
// numbers and booleans become bare tokens, slices and string-keyed maps
// recurse. The second result is false for values with no literal form; such
// values are skipped at the top level and rendered as null when nested.
func Literal(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return quote(val), true
	case bool:
		return strconv.FormatBool(val), true
	case json.Number:
		return val.String(), true
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case []any:
		return listLiteral(len(val), func(i int) any { return val[i] }), true
	case map[string]any:
		return mapLiteral(val), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32, reflect.Float64:
		return formatFloat(rv.Float())
	case reflect.String:
		return quote(rv.String()), true
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), true
	case reflect.Slice, reflect.Array:
		return listLiteral(rv.Len(), func(i int) any { return rv.Index(i).Interface() }), true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return "", false
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return mapLiteral(m), true
	}
	return "", false
}

func nested(v any) string {
	if lit, ok := Literal(v); ok {
		return lit
	}
	return "null"
}

func listLiteral(n int, at func(int) any) string {
	items := make([]string, n)
	for i := 0; i < n; i++ {
		items[i] = nested(at(i))
	}
	return "[" + strings.Join(items, ", ") + "]"
}

func mapLiteral(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]string, len(keys))
	for i, k := range keys {
		entries[i] = quote(k) + ": " + nested(m[k])
	}
	return "{ " + strings.Join(entries, ", ") + " }"
}

func formatFloat(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// quote produces a JSON string literal without HTML escaping, which is also a
// valid JavaScript string literal.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
