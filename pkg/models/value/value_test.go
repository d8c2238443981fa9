package value

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_KeepsKeyOrder(t *testing.T) {
	v, err := Decode(strings.NewReader(`{"z":1,"a":{"y":"two","b":[true,null,2.5]},"m":null}`))
	require.NoError(t, err)

	m, ok := v.(*Map)
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a", "m"}, m.Keys())

	child, ok := m.GetMap("a")
	require.True(t, ok)
	s, ok := child.GetString("y")
	assert.True(t, ok)
	assert.Equal(t, "two", s)

	list, ok := child.Get("b")
	require.True(t, ok)
	assert.Equal(t, List{Bool(true), Null{}, Number(2.5)}, list)

	nullValue, _ := m.Get("m")
	assert.Equal(t, Null{}, nullValue)
}

func TestDecode_RejectsTrailingData(t *testing.T) {
	_, err := Parse([]byte(`{"a":1} {"b":2}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := `{"z":1,"a":{"y":"two","b":[true,null,2.5]},"m":null,"l":[]}`
	v, err := Parse([]byte(doc))
	require.NoError(t, err)

	out, err := json.Marshal(v)

	require.NoError(t, err)
	assert.Equal(t, doc, string(out))
}

func TestNumber_String(t *testing.T) {
	assert.Equal(t, "120", Number(120).String())
	assert.Equal(t, "62.5", Number(62.5).String())
}

func TestFrom(t *testing.T) {
	v, err := From(struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}{"boxes", 3})
	require.NoError(t, err)

	m := v.(*Map)
	assert.Equal(t, []string{"name", "count"}, m.Keys())
	count, _ := m.Get("count")
	assert.Equal(t, Number(3), count)
}

func TestMap_SetOverwritesInPlace(t *testing.T) {
	m := NewMap()
	m.Set("a", Number(1))
	m.Set("b", Number(2))
	m.Set("a", String("x"))

	var seen []string
	m.Each(func(key string, v Value) { seen = append(seen, key) })
	assert.Equal(t, []string{"a", "b"}, seen)
	assert.Equal(t, 2, m.Len())
	_, ok := m.GetString("b")
	assert.False(t, ok)
}
