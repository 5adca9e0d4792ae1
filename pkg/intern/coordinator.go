package intern

import "github.com/fmstephe/flib/funsafe"

// Coordinator is a process-wide interning facility: the writer, the
// replicated store and the op channel bound together behind the small
// surface callers actually need — Intern/InternString, CollectGarbage,
// Stats, and per-goroutine ReaderLocal access.
//
// Construction is cheap. Most callers never construct one directly: the
// package-level functions (Intern, InternString, CollectGarbage,
// NewReaderLocal) all operate against Default, the process-wide
// singleton. New exists for tests and for programs that want two
// independent interned sets rather than sharing the default one.
type Coordinator struct {
	store *replicatedStore
	ops   *opChannel
	w     *writer
}

// New constructs an independent Coordinator with its own store, op
// channel, and writer.
func New() *Coordinator {
	store := newReplicatedStore()
	ops := newOpChannel()
	return &Coordinator{
		store: store,
		ops:   ops,
		w:     newWriter(store, ops),
	}
}

var defaultCoordinator = New()

// Default returns the process-wide Coordinator singleton used by the
// package-level Intern/InternString/CollectGarbage/NewReaderLocal
// functions.
func Default() *Coordinator {
	return defaultCoordinator
}

// NewReaderLocal returns a reader handle for exclusive use by the
// calling goroutine. Go has no implicit per-goroutine storage, so this
// is the explicit equivalent: call it once per long-lived goroutine that
// interns or reads frequently, and hold onto the result rather than
// calling this repeatedly.
func (c *Coordinator) NewReaderLocal() *ReaderLocal {
	return &ReaderLocal{
		coord:   c,
		replica: c.store.newReader(),
	}
}

// Intern returns a Handle for seq, using a transiently pooled reader for
// the lookup fast path. Prefer a held *ReaderLocal on any goroutine that
// interns or reads at a high rate, to skip the pool's free-list mutex.
func (c *Coordinator) Intern(seq []byte) (Handle, error) {
	r := c.store.acquireReader()
	g := r.enter()
	key, hit := g.inner().lookup(seq)
	g.leave()
	c.store.releaseReader(r)

	if hit {
		c.returnHit(key)
		return Handle{key: key, coord: c}, nil
	}

	key, err := c.w.intern(newBoxedSequence(seq))
	if err != nil {
		return Handle{}, err
	}
	return Handle{key: key, coord: c}, nil
}

// InternString is Intern for a Go string, avoiding a copy on the miss
// path since a Go string is already immutable.
func (c *Coordinator) InternString(s string) (Handle, error) {
	seq := funsafe.StringToBytes(s)

	r := c.store.acquireReader()
	g := r.enter()
	key, hit := g.inner().lookup(seq)
	g.leave()
	c.store.releaseReader(r)

	if hit {
		c.returnHit(key)
		return Handle{key: key, coord: c}, nil
	}

	key, err := c.w.intern(boxedSequenceFromString(s))
	if err != nil {
		return Handle{}, err
	}
	return Handle{key: key, coord: c}, nil
}

// CollectGarbage forces an immediate reclamation pass over every entry
// whose refcount has dropped to zero since the last pass, instead of
// waiting for the next Intern miss to carry one. Safe to call from any
// goroutine; blocks behind the writer's mutex like any other write.
func (c *Coordinator) CollectGarbage() error {
	return c.w.collectGarbage()
}

// Stats reports interning activity and current live-entry count.
func (c *Coordinator) Stats() StatsSummary {
	r := c.store.acquireReader()
	g := r.enter()
	live := g.inner().size()
	g.leave()
	c.store.releaseReader(r)

	return StatsSummary{Stats: c.w.stats(), Live: live}
}

// returnHit accounts for a lookup that found seq already interned: it
// enqueues the Retain this new Handle's share of the refcount depends on
// (see §2/§4.7 — a cache hit never touches the writer directly, only the
// channel) and bumps the hit counter for Stats.
func (c *Coordinator) returnHit(key Key) {
	c.ops.send(channelOp{kind: channelRetain, key: key})
	c.w.returned.Add(1)
}

// Intern interns seq against the default, process-wide Coordinator.
func Intern(seq []byte) (Handle, error) { return defaultCoordinator.Intern(seq) }

// InternString interns s against the default, process-wide Coordinator.
func InternString(s string) (Handle, error) { return defaultCoordinator.InternString(s) }

// CollectGarbage runs a reclamation pass against the default,
// process-wide Coordinator.
func CollectGarbage() error { return defaultCoordinator.CollectGarbage() }

// NewReaderLocal returns a reader handle onto the default, process-wide
// Coordinator for exclusive use by the calling goroutine.
func NewReaderLocal() *ReaderLocal { return defaultCoordinator.NewReaderLocal() }
