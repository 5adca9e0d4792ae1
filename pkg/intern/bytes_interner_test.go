package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesInterner_RepeatedGet_SameKey(t *testing.T) {
	c := New()
	bi := NewBytesInterner(c)

	h1, err := bi.Get([]byte("repeat"))
	require.NoError(t, err)
	h2, err := bi.Get([]byte("repeat"))
	require.NoError(t, err)

	assert.Equal(t, h1.Key(), h2.Key())
	assert.Equal(t, "repeat", h2.View())
}

func TestBytesInterner_DistinctValues_DistinctKeys(t *testing.T) {
	c := New()
	bi := NewBytesInterner(c)

	h1, _ := bi.Get([]byte("a"))
	h2, _ := bi.Get([]byte("b"))

	assert.NotEqual(t, h1.Key(), h2.Key())
}
