package formatters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	var m map[string]interface{}
	require.NoError(t, DecodeObject(`{"a":1}`, &m))
	assert.Equal(t, 1.0, m["a"])

	m = nil
	require.NoError(t, DecodeObject("Here you go:\n```json\n{\"a\":{\"b\":2}}\n```\nThanks", &m))
	assert.Equal(t, map[string]interface{}{"b": 2.0}, m["a"])

	assert.Error(t, DecodeObject("no json here", &m))
	assert.Error(t, DecodeObject("} backwards {", &m))
}
