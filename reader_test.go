package squirreljson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewNavigation(t *testing.T) {
	d, err := Scan([]byte(`{"a":1,"b":[2,3],"c":"x"}`))
	require.NoError(t, err)

	root := d.Root()
	require.Equal(t, ObjectBegin, root.Kind())

	it, err := root.AsObject()
	require.NoError(t, err)

	key, val, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, "a", string(key))
	assert.Equal(t, Number, val.Kind())
	assert.Equal(t, "1", string(val.RawBytes()))

	key, val, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "b", string(key))
	assert.Equal(t, ArrayBegin, val.Kind())

	arr, err := val.AsArray()
	require.NoError(t, err)
	elem, ok := arr.Next()
	require.True(t, ok)
	assert.Equal(t, "2", string(elem.RawBytes()))
	elem, ok = arr.Next()
	require.True(t, ok)
	assert.Equal(t, "3", string(elem.RawBytes()))
	_, ok = arr.Next()
	assert.False(t, ok)

	key, val, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, "c", string(key))
	assert.Equal(t, String, val.Kind())
	assert.Equal(t, `"x"`, string(val.RawBytes()))

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestViewSkipContainer(t *testing.T) {
	d, err := Scan([]byte(`{"a":{"nested":true},"b":42}`))
	require.NoError(t, err)

	it, err := d.Root().AsObject()
	require.NoError(t, err)

	_, aVal, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, ObjectBegin, aVal.Kind())

	afterA := aVal.Skip()
	// afterA should point directly at the "b" key, skipping over the
	// nested object's contents entirely.
	require.Equal(t, Key, afterA.Kind())
	if string(afterA.RawBytes()) != `"b"` {
		t.Fatalf("Skip landed on %q, want the \"b\" key", afterA.RawBytes())
	}
}

func TestViewAsObjectWrongKind(t *testing.T) {
	d, err := Scan([]byte(`{"a":1}`))
	require.NoError(t, err)
	it, err := d.Root().AsObject()
	require.NoError(t, err)
	_, val, ok := it.Next()
	require.True(t, ok)

	_, err = val.AsObject()
	assert.Error(t, err)
	_, err = val.AsArray()
	assert.Error(t, err)
}

func TestViewOwnedBytesCopies(t *testing.T) {
	input := []byte(`{"a":"hello"}`)
	d, err := Scan(input)
	require.NoError(t, err)
	it, err := d.Root().AsObject()
	require.NoError(t, err)
	_, val, ok := it.Next()
	require.True(t, ok)

	owned := val.OwnedBytes(true)
	raw := val.RawBytes()
	require.Equal(t, raw, owned)

	// Mutating the copy must not affect the underlying buffer.
	owned[0] = 'X'
	assert.NotEqual(t, owned[0], raw[0])
}

func TestDocumentClone(t *testing.T) {
	d, err := Scan([]byte(`{"a":1}`))
	require.NoError(t, err)
	c := d.Clone()
	assert.Equal(t, d.Tape.Records, c.Tape.Records)
	assert.Equal(t, d.Buffer, c.Buffer)

	c.Buffer[0] = 'X'
	assert.NotEqual(t, d.Buffer[0], c.Buffer[0])
}
