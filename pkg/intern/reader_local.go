package intern

import "github.com/fmstephe/flib/funsafe"

// ReaderLocal is a single goroutine's private view onto the interned
// set: its own reader replica for the lock-free read path, plus access
// to the shared op channel and writer for retain/release/miss traffic.
//
// Go has no implicit per-goroutine storage, so ReaderLocal makes the
// ownership explicit: call Coordinator.NewReaderLocal once per goroutine
// that will intern or read at a high rate, keep the result, and never
// share it with another goroutine — its epoch counter assumes a single
// caller in flight at a time. Callers that only touch the interner
// occasionally can use the Coordinator- or package-level functions
// instead, which borrow a reader from a small internal pool per call.
//
// Lookup, Read, Retain and Release are lock-free; Intern and InternString
// are too on a hit, but take the writer's mutex on a miss. Lookup and
// Read never touch the writer's mutex; Retain and Release only ever push
// onto the op channel, and each push (like each Intern hit) allocates one
// queue node.
type ReaderLocal struct {
	coord   *Coordinator
	replica *readerReplica
}

// Lookup is the read-path half of Intern: O(length of seq), wait-free. A
// hit returns the existing key without ever touching the writer.
func (r *ReaderLocal) Lookup(seq []byte) (Key, bool) {
	g := r.replica.enter()
	defer g.leave()

	return g.inner().lookup(seq)
}

// Read returns the sequence stored under key. Safe to call for as long
// as some live Handle names key: that invariant is what keeps the entry
// from being collected out from under this call.
func (r *ReaderLocal) Read(key Key) (string, bool) {
	g := r.replica.enter()
	defer g.leave()

	e, ok := g.inner().get(key)
	if !ok {
		return "", false
	}
	return e.seq.view(), true
}

// Retain enqueues a Retain for key. Never blocks.
func (r *ReaderLocal) Retain(key Key) {
	r.coord.ops.send(channelOp{kind: channelRetain, key: key})
}

// Release enqueues a Release for key. Never blocks.
func (r *ReaderLocal) Release(key Key) {
	r.coord.ops.send(channelOp{kind: channelRelease, key: key})
}

// Intern returns a Handle for seq, copying seq's bytes into a freshly
// owned string only on a miss. On a hit this never touches the writer:
// it only enqueues a Retain.
func (r *ReaderLocal) Intern(seq []byte) (Handle, error) {
	if key, ok := r.Lookup(seq); ok {
		r.coord.returnHit(key)
		return Handle{key: key, coord: r.coord}, nil
	}

	key, err := r.coord.w.intern(newBoxedSequence(seq))
	if err != nil {
		return Handle{}, err
	}
	return Handle{key: key, coord: r.coord}, nil
}

// InternString is Intern for a Go string, avoiding a copy on the miss
// path since a Go string is already immutable.
func (r *ReaderLocal) InternString(s string) (Handle, error) {
	seq := funsafe.StringToBytes(s)
	if key, ok := r.Lookup(seq); ok {
		r.coord.returnHit(key)
		return Handle{key: key, coord: r.coord}, nil
	}

	key, err := r.coord.w.intern(boxedSequenceFromString(s))
	if err != nil {
		return Handle{}, err
	}
	return Handle{key: key, coord: r.coord}, nil
}
