package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/core"
)

func TestCollection_RoundTrip(t *testing.T) {
	in := core.Collection{
		{ID: "a", Content: "<p>Hello</p>"},
		{ID: "b", Content: `<p>quotes " and <code>&amp;</code> é 日本</p>`},
		{ID: "c", Content: ""},
	}

	data, err := in.MarshalSlot()
	require.NoError(t, err)

	out, err := core.UnmarshalCollection(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCollection_NilMarshalsAsEmptyArray(t *testing.T) {
	var c core.Collection
	data, err := c.MarshalSlot()
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestCollection_Find(t *testing.T) {
	c := core.Collection{{ID: "a", Content: "1"}, {ID: "b", Content: "2"}}

	n, ok := c.Find("b")
	assert.True(t, ok)
	assert.Equal(t, "2", n.Content)

	_, ok = c.Find("z")
	assert.False(t, ok)
	assert.True(t, c.Has("a"))
}

func TestEvent_String(t *testing.T) {
	e := core.Event{Type: core.EventModify, Key: "myData", Timestamp: 0}
	assert.Equal(t, "MODIFY myData at 1970-01-01T00:00:00Z", e.String())
}
