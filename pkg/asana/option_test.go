package asana

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOfPicksVariant(t *testing.T) {
	assert.Equal(t, StringValue, ValueOf("x").Kind())
	assert.Equal(t, BoolValue, ValueOf(true).Kind())
	assert.Equal(t, IntValue, ValueOf(5).Kind())
	assert.Equal(t, IntValue, ValueOf(int64(5)).Kind())
	assert.Equal(t, ListValue, ValueOf([]string{"a"}).Kind())
	assert.Equal(t, ListValue, ValueOf([]any{"a", 1}).Kind())
	assert.Equal(t, BoolValue, ValueOf(Bool(false)).Kind())
}

type priority int

func TestValueOfTable(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		kind  ValueKind
		query string
	}{
		{"stringer wins over int kind", time.Second, StringValue, "1s"},
		{"named int", priority(3), IntValue, "3"},
		{"uint64", uint64(5), UintValue, "5"},
		{"max uint64", uint64(1<<64 - 1), UintValue, "18446744073709551615"},
		{"uint8", uint8(7), UintValue, "7"},
		{"float64", 1.5, FloatValue, "1.5"},
		{"float32", float32(0.25), FloatValue, "0.25"},
		{"int slice", []int{1, 2}, ListValue, "1,2"},
		{"uint64 array", [2]uint64{3, 4}, ListValue, "3,4"},
		{"float slice", []float64{0.5, 2}, ListValue, "0.5,2"},
		{"mixed any slice", []any{"a b", 1, true}, ListValue, "a+b,1,true"},
		{"bytes are text", []byte("hi"), StringValue, "hi"},
		{"struct falls back to fmt", struct{ A int }{1}, StringValue, "%7B1%7D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValueOf(tt.in)
			assert.Equal(t, tt.kind, v.Kind())
			assert.Equal(t, tt.query, v.QueryString())
		})
	}
}

func TestQueryStringJoinsListsWithCommas(t *testing.T) {
	assert.Equal(t, "name,notes", List("name", "notes").QueryString())
	assert.Equal(t, "a+b,c%26d", List("a b", "c&d").QueryString())
	assert.Equal(t, "true", Bool(true).QueryString())
	assert.Equal(t, "42", Int(42).QueryString())
	assert.Equal(t, "x%3Dy", String("x=y").QueryString())
	assert.Equal(t, "", OptionValue{}.QueryString())
}

func TestOptionValueJSON(t *testing.T) {
	raw, err := json.Marshal(map[string]OptionValue{
		"empty":  {},
		"expand": List("projects"),
		"fields": List(),
		"ids":    ValueOf([]int{1, 2}),
		"limit":  Int(10),
		"max":    ValueOf(uint64(5)),
		"pretty": Bool(true),
		"q":      String("x"),
		"ratio":  ValueOf(1.5),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"empty":null,"expand":["projects"],"fields":[],"ids":["1","2"],"limit":10,"max":5,"pretty":true,"q":"x","ratio":1.5}`, string(raw))
}

func TestItemsReturnsCopy(t *testing.T) {
	v := List("a", "b")
	items := v.Items()
	items[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, v.Items())
	assert.Nil(t, String("a").Items())
}
