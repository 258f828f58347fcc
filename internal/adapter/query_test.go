package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeQuery_EmptyMapping(t *testing.T) {
	assert.Equal(t, "", encodeQuery(nil))
	assert.Equal(t, "", encodeQuery(map[string]any{}))
}

func TestEncodeQuery_AllValuesNil(t *testing.T) {
	var author *int64
	got := encodeQuery(map[string]any{
		"author": author,
		"search": nil,
	})
	assert.Equal(t, "", got)
}

func TestEncodeQuery_KeysSorted(t *testing.T) {
	got := encodeQuery(map[string]any{
		"page":   2,
		"limit":  10,
		"author": int64(7),
	})
	assert.Equal(t, "?author=7&limit=10&page=2", got)
}

func TestEncodeQuery_NilValuesDropped(t *testing.T) {
	var search *string
	got := encodeQuery(map[string]any{
		"page":   1,
		"search": search,
		"author": nil,
	})
	assert.Equal(t, "?page=1", got)
}

func TestEncodeQuery_SpacesAsPercent20(t *testing.T) {
	got := encodeQuery(map[string]any{"search": "hello world"})
	assert.Equal(t, "?search=hello%20world", got)
	assert.NotContains(t, got, "+")
}

func TestEncodeQuery_ReservedCharactersEscaped(t *testing.T) {
	got := encodeQuery(map[string]any{"search": "a&b=c?d"})
	assert.Equal(t, "?search=a%26b%3Dc%3Fd", got)
}

func TestEncodeQuery_ScalarRendering(t *testing.T) {
	s := "golang"
	n := int64(42)

	got := encodeQuery(map[string]any{
		"bool":  true,
		"float": 1.5,
		"int":   3,
		"pint":  &n,
		"pstr":  &s,
	})
	assert.Equal(t, "?bool=true&float=1.5&int=3&pint=42&pstr=golang", got)
}

func TestEncodeQuery_Deterministic(t *testing.T) {
	params := map[string]any{"b": 2, "a": 1, "c": 3}
	first := encodeQuery(params)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, encodeQuery(params))
	}
}

func TestPostQuery_ShapeKey(t *testing.T) {
	q := PostQuery{Page: 0, Limit: 10, Search: "cats"}
	same := PostQuery{Page: 0, Limit: 10, Search: "cats"}
	other := PostQuery{Page: 1, Limit: 10, Search: "cats"}

	assert.Equal(t, q.ShapeKey(), same.ShapeKey())
	assert.NotEqual(t, q.ShapeKey(), other.ShapeKey())
}

func TestPostQuery_ParamsDefaultLimit(t *testing.T) {
	q := PostQuery{Page: 3}
	assert.Equal(t, "?limit=10&page=3", encodeQuery(q.params()))
}
