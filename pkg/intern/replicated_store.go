package intern

import (
	"sync"
	"sync/atomic"
	"time"
)

// replicatedStore is a writer/reader-replica pair built on the
// epoch-counter left-right technique: two fixed replicas, an
// atomically-swapped "active" pointer readers dereference, and a
// snapshot-then-spin wait for every reader whose epoch was odd (meaning
// "currently inside enter") at the moment of the swap.
//
// Callers of append/publish must serialise themselves (this type does
// not provide its own write-side mutex — Writer owns that, because the
// single-writer discipline is a property of the whole Coordinator, not
// just of this primitive).
type replicatedStore struct {
	replicas [2]*innerStore
	active   atomic.Pointer[innerStore]
	writeIdx int // index into replicas currently being written to; writer-owned only

	readersMu sync.Mutex
	readers   map[*readerReplica]struct{}

	// freeMu/free is a small free list of readerReplica instances
	// available for transient, single-call borrowing (Coordinator.Intern,
	// Handle.View and friends). It exists so that code which doesn't hold
	// a long-lived *ReaderLocal still gets a stable, already-registered
	// reader instead of registering (and, worse, never deregistering) a
	// fresh one on every call. Modelled on the mutex-guarded free list
	// pointerstore.Store uses for its own Alloc/Free.
	freeMu sync.Mutex
	free   []*readerReplica
}

func newReplicatedStore() *replicatedStore {
	s := &replicatedStore{
		replicas: [2]*innerStore{newInnerStore(), newInnerStore()},
		readers:  make(map[*readerReplica]struct{}),
	}
	s.active.Store(s.replicas[0])
	s.writeIdx = 1
	return s
}

func (s *replicatedStore) writeTarget() *innerStore {
	return s.replicas[s.writeIdx]
}

// append applies op to the current write target (the replica readers
// cannot yet see) via absorbFirst, then records op so publish can also
// apply it to the other replica once it stops being visible to readers.
func (s *replicatedStore) append(pending []op, o op) []op {
	s.writeTarget().absorbFirst(&o)
	return append(pending, o)
}

// publish swaps the active replica, waits for every reader that was
// inside the previously-active replica to leave it, then applies every
// op recorded since the last publish to that now-inactive replica via
// absorbSecond. Blocks until all readers have moved off the stale
// replica; the only suspension point on the write path.
//
// Returns how many entries DropUnused ops in pending actually reclaimed,
// for Stats.
func (s *replicatedStore) publish(pending []op) int {
	newActive := s.writeTarget()
	s.active.Store(newActive)
	s.writeIdx = 1 - s.writeIdx

	s.waitForReaders()

	nowInactive := s.writeTarget()
	collected := 0
	for _, o := range pending {
		collected += nowInactive.absorbSecond(o)
	}
	return collected
}

// newReader registers and returns a fresh reader replica. Safe to call
// from any goroutine; the returned *readerReplica must only ever be
// entered by one goroutine at a time, since its epoch counter assumes a
// single caller in flight.
func (s *replicatedStore) newReader() *readerReplica {
	r := &readerReplica{store: s}

	s.readersMu.Lock()
	s.readers[r] = struct{}{}
	s.readersMu.Unlock()

	return r
}

// acquireReader borrows a reader replica for one transient read, pulling
// from the free list if one is idle rather than registering a new one.
// Must be paired with releaseReader once the borrower is done (it must
// not still be "entered" at that point).
func (s *replicatedStore) acquireReader() *readerReplica {
	s.freeMu.Lock()
	if n := len(s.free); n > 0 {
		r := s.free[n-1]
		s.free[n-1] = nil
		s.free = s.free[:n-1]
		s.freeMu.Unlock()
		return r
	}
	s.freeMu.Unlock()

	return s.newReader()
}

func (s *replicatedStore) releaseReader(r *readerReplica) {
	s.freeMu.Lock()
	s.free = append(s.free, r)
	s.freeMu.Unlock()
}

func (s *replicatedStore) waitForReaders() {
	s.readersMu.Lock()
	inFlight := make(map[*readerReplica]uint64, len(s.readers))
	for r := range s.readers {
		if epoch := r.epoch.Load(); epoch%2 == 1 {
			inFlight[r] = epoch
		}
	}
	s.readersMu.Unlock()

	if len(inFlight) == 0 {
		return
	}

	delay := time.Microsecond
	const maxDelay = 5 * time.Millisecond

	for len(inFlight) > 0 {
		for r, epoch := range inFlight {
			if r.epoch.Load() != epoch {
				delete(inFlight, r)
			}
		}

		if len(inFlight) == 0 {
			return
		}

		time.Sleep(delay)
		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

// readerReplica is a single reader's handle onto the replicated store. It
// never blocks, never allocates in steady state, and performs no atomic
// writes beyond the epoch counter it flips on Enter/Leave.
type readerReplica struct {
	store *replicatedStore
	epoch atomic.Uint64
}

// storeGuard is the value returned by Enter, giving read-only access to
// whichever InnerStore happened to be active at that moment.
type storeGuard struct {
	reader *readerReplica
	store  *innerStore
}

// enter begins a read-side critical section: O(1), wait-free, the only
// atomic write is incrementing this reader's own epoch counter.
func (r *readerReplica) enter() *storeGuard {
	r.epoch.Add(1)
	return &storeGuard{reader: r, store: r.store.active.Load()}
}

func (g *storeGuard) inner() *innerStore {
	return g.store
}

// leave ends the critical section begun by enter.
func (g *storeGuard) leave() {
	g.reader.epoch.Add(1)
}
