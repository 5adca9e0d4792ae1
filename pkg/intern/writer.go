package intern

import (
	"sync"
	"sync/atomic"
)

// writer is the Coordinator's single mutator: it owns key allocation,
// batches ops before publication, drains the op channel, and runs
// garbage collection. Every exported entry point takes writer.mu, so at
// most one goroutine is ever inside intern's write path or
// collectGarbage at a time — the "single writer" half of the single-
// writer/many-reader discipline.
type writer struct {
	mu sync.Mutex

	store   *replicatedStore
	ops     *opChannel
	pending []op

	nextKey Key

	poisoned  bool
	reentered bool

	// Accounting, read by Coordinator.Stats without taking mu: interned
	// only grows inside intern's write path; returned grows on every cache
	// hit, from the lock-free read path or from intern's re-check under
	// mu; collected grows by however
	// many entries each DropUnused pass actually reclaims.
	interned  atomic.Uint64
	returned  atomic.Uint64
	collected atomic.Uint64
}

func newWriter(store *replicatedStore, ops *opChannel) *writer {
	return &writer{
		store:   store,
		ops:     ops,
		nextKey: invalidKey + 1,
	}
}

// drainChannelOps folds every channelOp currently queued by readers into
// the pending op batch, translating a channel Retain/Release into the
// corresponding op. Must be called with mu held.
func (w *writer) drainChannelOps() {
	for {
		co, ok := w.ops.recv()
		if !ok {
			return
		}
		switch co.kind {
		case channelRetain:
			w.pending = w.store.append(w.pending, retainOp(co.key))
		case channelRelease:
			w.pending = w.store.append(w.pending, releaseOp(co.key))
		}
	}
}

// intern is entered only after a reader-side lookup has missed: it
// drains the channel, re-checks for seq (publishing a Retain if another
// writer call inserted it meanwhile), otherwise allocates the next key,
// appends Insert then DropUnused, and publishes. Publication blocks until every reader has
// left the replica that is about to be mutated a second time.
func (w *writer) intern(seq boxedSequence) (Key, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.poisoned {
		return invalidKey, ErrWriterPoisoned
	}
	if w.reentered {
		panic(errReentrantWrite)
	}
	w.reentered = true
	defer func() {
		w.reentered = false
		if r := recover(); r != nil {
			w.poisoned = true
			panic(r)
		}
	}()

	w.drainChannelOps()

	// Another goroutine may have interned seq between this caller's
	// read-side miss and acquiring mu; account for it as a hit instead
	// of inserting the sequence a second time.
	if key, ok := w.store.writeTarget().lookup(seq.encodeAsBytes()); ok {
		w.pending = w.store.append(w.pending, retainOp(key))
		w.store.publish(w.pending)
		w.pending = w.pending[:0]
		w.returned.Add(1)
		return key, nil
	}

	if w.nextKey == 0 {
		// wrapped past math.MaxUint32: every Key has been issued.
		return invalidKey, ErrKeysExhausted
	}
	key := w.nextKey
	w.nextKey++

	w.pending = w.store.append(w.pending, insertOp(key, seq))
	w.pending = w.store.append(w.pending, dropUnusedOp())

	collected := w.store.publish(w.pending)
	w.pending = w.pending[:0]

	w.interned.Add(1)
	w.collected.Add(uint64(collected))

	return key, nil
}

// collectGarbage drains the channel, appends DropUnused, and publishes —
// the same suspension points as a miss on intern, without allocating a
// new key.
func (w *writer) collectGarbage() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.poisoned {
		return ErrWriterPoisoned
	}
	if w.reentered {
		panic(errReentrantWrite)
	}
	w.reentered = true
	defer func() {
		w.reentered = false
		if r := recover(); r != nil {
			w.poisoned = true
			panic(r)
		}
	}()

	w.drainChannelOps()
	w.pending = w.store.append(w.pending, dropUnusedOp())
	collected := w.store.publish(w.pending)
	w.pending = w.pending[:0]

	w.collected.Add(uint64(collected))

	return nil
}

func (w *writer) stats() Stats {
	return Stats{
		Interned:  w.interned.Load(),
		Returned:  w.returned.Load(),
		Collected: w.collected.Load(),
	}
}
