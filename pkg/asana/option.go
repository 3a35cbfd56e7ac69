package asana

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// ValueKind identifies which variant an OptionValue holds.
type ValueKind uint8

const (
	StringValue ValueKind = iota + 1
	BoolValue
	IntValue
	ListValue
	UintValue
	FloatValue
)

// OptionValue is a tagged union of the value shapes the API accepts for
// options and query parameters. The zero value holds nothing and encodes as
// JSON null.
type OptionValue struct {
	kind ValueKind
	str  string
	b    bool
	n    int64
	u    uint64
	f    float64
	list []string
}

// String wraps a string option value.
func String(s string) OptionValue { return OptionValue{kind: StringValue, str: s} }

// Bool wraps a boolean option value.
func Bool(b bool) OptionValue { return OptionValue{kind: BoolValue, b: b} }

// Int wraps an integer option value.
func Int(n int64) OptionValue { return OptionValue{kind: IntValue, n: n} }

// Uint wraps an unsigned integer option value.
func Uint(n uint64) OptionValue { return OptionValue{kind: UintValue, u: n} }

// Float wraps a floating point option value.
func Float(f float64) OptionValue { return OptionValue{kind: FloatValue, f: f} }

// List wraps an ordered list of strings, e.g. a field selection.
func List(items ...string) OptionValue {
	return OptionValue{kind: ListValue, list: append([]string{}, items...)}
}

// ValueOf converts a Go value into an OptionValue. Slices and arrays become
// lists, each element rendered as its scalar text. Types with a String
// method use it; anything else falls back to its fmt text.
func ValueOf(v any) OptionValue {
	switch val := v.(type) {
	case OptionValue:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case []string:
		return List(val...)
	case []byte:
		return String(string(val))
	case fmt.Stringer:
		return String(val.String())
	case nil:
		return String(fmt.Sprint(val))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return Uint(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float())
	case reflect.Slice, reflect.Array:
		items := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			items = append(items, ValueOf(rv.Index(i).Interface()).text())
		}
		return List(items...)
	default:
		return String(fmt.Sprint(v))
	}
}

// text is the unescaped scalar form of v; lists join with commas.
func (v OptionValue) text() string {
	switch v.kind {
	case StringValue:
		return v.str
	case BoolValue:
		return strconv.FormatBool(v.b)
	case IntValue:
		return strconv.FormatInt(v.n, 10)
	case UintValue:
		return strconv.FormatUint(v.u, 10)
	case FloatValue:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case ListValue:
		return strings.Join(v.list, ",")
	default:
		return ""
	}
}

// Kind reports the variant held by v; zero for an empty value.
func (v OptionValue) Kind() ValueKind { return v.kind }

// Items returns a copy of the list variant, nil for other kinds.
func (v OptionValue) Items() []string {
	if v.kind != ListValue {
		return nil
	}
	return append([]string{}, v.list...)
}

// QueryString renders v for a URL query. List items are escaped one by one
// and joined with literal commas.
func (v OptionValue) QueryString() string {
	if v.kind != ListValue {
		return url.QueryEscape(v.text())
	}
	escaped := make([]string, len(v.list))
	for i, item := range v.list {
		escaped[i] = url.QueryEscape(item)
	}
	return strings.Join(escaped, ",")
}

// isEmptyList reports a list variant with no items.
func (v OptionValue) isEmptyList() bool {
	return v.kind == ListValue && len(v.list) == 0
}

// MarshalJSON renders v for a request body: scalars as JSON scalars, lists
// as arrays.
func (v OptionValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case StringValue:
		return json.Marshal(v.str)
	case BoolValue:
		return json.Marshal(v.b)
	case IntValue:
		return json.Marshal(v.n)
	case UintValue:
		return json.Marshal(v.u)
	case FloatValue:
		return json.Marshal(v.f)
	case ListValue:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (k ValueKind) String() string {
	switch k {
	case StringValue:
		return "string"
	case BoolValue:
		return "bool"
	case IntValue:
		return "int"
	case ListValue:
		return "list"
	case UintValue:
		return "uint"
	case FloatValue:
		return "float"
	default:
		return "empty"
	}
}
