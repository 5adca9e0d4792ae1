package intern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_Intern_NewKeyEachDistinctSequence(t *testing.T) {
	store := newReplicatedStore()
	ops := newOpChannel()
	w := newWriter(store, ops)

	k1, err := w.intern(newBoxedSequence([]byte("abc")))
	require.NoError(t, err)

	k2, err := w.intern(newBoxedSequence([]byte("def")))
	require.NoError(t, err)

	assert.NotEqual(t, k1, k2)
	assert.Equal(t, uint64(2), w.stats().Interned)
}

func TestWriter_Intern_DrainsQueuedRetainRelease(t *testing.T) {
	store := newReplicatedStore()
	ops := newOpChannel()
	w := newWriter(store, ops)

	key, err := w.intern(newBoxedSequence([]byte("abc")))
	require.NoError(t, err)

	ops.send(channelOp{kind: channelRelease, key: key})

	_, err = w.intern(newBoxedSequence([]byte("def")))
	require.NoError(t, err)

	r := store.newReader()
	g := r.enter()
	_, ok := g.inner().get(key)
	g.leave()
	assert.False(t, ok, "queued release should have dropped the entry by the next intern's DropUnused pass")
}

func TestWriter_CollectGarbage_ReclaimsReleasedEntry(t *testing.T) {
	store := newReplicatedStore()
	ops := newOpChannel()
	w := newWriter(store, ops)

	key, err := w.intern(newBoxedSequence([]byte("abc")))
	require.NoError(t, err)

	ops.send(channelOp{kind: channelRelease, key: key})

	require.NoError(t, w.collectGarbage())
	assert.Equal(t, uint64(1), w.stats().Collected)

	r := store.newReader()
	g := r.enter()
	_, ok := g.inner().get(key)
	g.leave()
	assert.False(t, ok)
}

func TestWriter_ReentrantCall_Panics(t *testing.T) {
	store := newReplicatedStore()
	ops := newOpChannel()
	w := newWriter(store, ops)

	w.mu.Lock()
	w.reentered = true
	w.mu.Unlock()

	assert.Panics(t, func() {
		_, _ = w.intern(newBoxedSequence([]byte("abc")))
	})
}

func TestWriter_PoisonedAfterPanic_FailsFast(t *testing.T) {
	store := newReplicatedStore()
	ops := newOpChannel()
	w := newWriter(store, ops)

	w.mu.Lock()
	w.poisoned = true
	w.mu.Unlock()

	_, err := w.intern(newBoxedSequence([]byte("abc")))
	assert.ErrorIs(t, err, ErrWriterPoisoned)

	err = w.collectGarbage()
	assert.ErrorIs(t, err, ErrWriterPoisoned)
}
