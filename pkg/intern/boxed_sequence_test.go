package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxedSequence_RoundTrip(t *testing.T) {
	seq := newBoxedSequence([]byte("hello"))
	assert.Equal(t, "hello", seq.view())
	assert.Equal(t, []byte("hello"), seq.encodeAsBytes())
}

func TestBoxedSequence_Empty(t *testing.T) {
	seq := newBoxedSequence(nil)
	assert.Equal(t, "", seq.view())
	assert.Equal(t, 0, len(seq.encodeAsBytes()))
}

func TestBoxedSequence_FromString_NoCopy(t *testing.T) {
	s := "borrowed-or-not-this-is-immutable"
	seq := boxedSequenceFromString(s)
	assert.Equal(t, s, seq.view())
}

func TestBoxedSequence_AliasIndependentOfForgetFree(t *testing.T) {
	seq := newBoxedSequence([]byte("aliased"))
	alias := seq.alias()

	// forget/free are named no-ops under a tracing collector; calling
	// either must never disturb the other's view.
	seq.forget()
	assert.Equal(t, "aliased", alias.view())
	alias.free()
	assert.Equal(t, "aliased", seq.view())
}
