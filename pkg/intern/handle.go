package intern

// Handle is the opaque, refcounted value standing in for an interned
// sequence. Two Handles obtained from byte-equal sequences always share
// the same Key. The zero Handle is never returned by a successful Intern
// or InternString call (only alongside an error) and must not be used.
//
// Handle is intentionally a thin value type: it owns no memory of its
// own (the Go runtime's garbage collector owns the backing string), so
// releasing one is nothing more than an explicit Close call that
// enqueues a Release. Handle carries no finalizer — forgetting to Close
// one keeps its entry from ever being reclaimed, but never corrupts
// state.
type Handle struct {
	key   Key
	coord *Coordinator
}

// View returns the interned sequence's contents. O(1), but not lock-free:
// it borrows a reader from the Coordinator's pool, which takes the pool's
// free-list mutex. ReaderLocal.Read is the lock-free, wait-free path.
func (h Handle) View() string {
	r := h.coord.store.acquireReader()
	g := r.enter()
	e, ok := g.inner().get(h.key)
	g.leave()
	h.coord.store.releaseReader(r)

	if !ok {
		panic("intern: Handle.View called with no live entry for its key")
	}
	return e.seq.view()
}

// Clone returns a second Handle referring to the same interned
// sequence. O(1), lock-free: it only enqueues a Retain, never touches
// the writer or any reader replica.
func (h Handle) Clone() Handle {
	h.coord.ops.send(channelOp{kind: channelRetain, key: h.key})
	return Handle{key: h.key, coord: h.coord}
}

// Close releases this Handle's claim on its interned sequence. O(1),
// lock-free. h must not be used again after Close.
func (h Handle) Close() {
	h.coord.ops.send(channelOp{kind: channelRelease, key: h.key})
}

// Key returns the opaque identifier backing h.
func (h Handle) Key() Key {
	return h.key
}
