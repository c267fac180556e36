package situation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/simpop/situation"
)

// TestDecodeYAML_OrderPreserved keeps mapping keys in document order;
// the order decides instance indexes downstream.
func TestDecodeYAML_OrderPreserved(t *testing.T) {
	doc := []byte(`
persons:
  Zoe: {}
  Alicia: {}
  Mike: {}
  Bob: {}
`)
	root, err := situation.DecodeYAML(doc)
	require.NoError(t, err)
	obj := root.(*situation.Object)
	raw, ok := obj.Get("persons")
	require.True(t, ok)
	assert.Equal(t, []string{"Zoe", "Alicia", "Mike", "Bob"}, raw.(*situation.Object).Keys())
}

// TestDecodeYAML_Scalars keeps natural Go scalar types.
func TestDecodeYAML_Scalars(t *testing.T) {
	doc := []byte(`
count: 3
rate: 0.5
name: salary
flag: true
empty: null
`)
	root, err := situation.DecodeYAML(doc)
	require.NoError(t, err)
	obj := root.(*situation.Object)

	v, _ := obj.Get("count")
	assert.Equal(t, 3, v)
	v, _ = obj.Get("rate")
	assert.Equal(t, 0.5, v)
	v, _ = obj.Get("name")
	assert.Equal(t, "salary", v)
	v, _ = obj.Get("flag")
	assert.Equal(t, true, v)
	v, ok := obj.Get("empty")
	assert.True(t, ok)
	assert.Nil(t, v)
}

// TestDecodeYAML_Sequences decodes nested sequences of mappings.
func TestDecodeYAML_Sequences(t *testing.T) {
	doc := []byte(`
axes:
  - - name: salary
      count: 10
      min: 0
      max: 3000
`)
	root, err := situation.DecodeYAML(doc)
	require.NoError(t, err)
	obj := root.(*situation.Object)
	raw, _ := obj.Get("axes")
	groups := raw.([]any)
	require.Len(t, groups, 1)
	axes := groups[0].([]any)
	require.Len(t, axes, 1)
	ax := axes[0].(*situation.Object)
	assert.Equal(t, []string{"name", "count", "min", "max"}, ax.Keys())
}

// TestDecodeYAML_JSON accepts JSON, it being a YAML subset.
func TestDecodeYAML_JSON(t *testing.T) {
	root, err := situation.DecodeYAML([]byte(`{"salary": {"2024-01": 2000}}`))
	require.NoError(t, err)
	obj := root.(*situation.Object)
	raw, _ := obj.Get("salary")
	v, _ := raw.(*situation.Object).Get("2024-01")
	assert.Equal(t, 2000, v)
}

// TestDecodeYAML_Errors reports malformed documents; an empty document
// decodes to nil.
func TestDecodeYAML_Errors(t *testing.T) {
	_, err := situation.DecodeYAML([]byte("key: [unclosed"))
	assert.Error(t, err)

	root, err := situation.DecodeYAML(nil)
	require.NoError(t, err)
	assert.Nil(t, root)
}
