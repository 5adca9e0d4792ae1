package intern

// storedEntry is the refcounted wrapper around a boxedSequence that lives
// in InnerStore.entries.
//
// strong is signed rather than unsigned. Retain and Release arrive at the
// writer from the lock-free op channel in whatever order the writer
// happened to drain them, which need not match the order goroutines
// issued them in: a Release can be absorbed before its matching Retain.
// That transiently drives strong negative between op-log batches;
// isDroppable must only ever treat exactly zero as the trigger for
// reclamation, and dropUnused re-checks it rather than trusting a stale
// pendingFree entry.
type storedEntry struct {
	seq    boxedSequence
	strong int64
}

// newStoredEntry creates an entry for a freshly interned sequence with an
// initial strong count of one, matching the one implicit owner the
// Insert op's caller already holds.
func newStoredEntry(seq boxedSequence) *storedEntry {
	return &storedEntry{seq: seq, strong: 1}
}

func (e *storedEntry) retain() {
	e.strong++
}

func (e *storedEntry) release() {
	e.strong--
}

// isDroppable reports whether this entry's refcount has fallen to
// exactly zero. Never treat "< 1" as the trigger: a transient negative
// count (see above) must still wait for a Retain to bring it back before
// it is reclaimed.
func (e *storedEntry) isDroppable() bool {
	return e.strong == 0
}
