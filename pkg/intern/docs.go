// Package intern is a process-wide string interning facility.
//
// It hands callers a Handle: a small, cheaply-copyable value standing in
// for an immutable byte sequence. Two Handles compare equal (by Key)
// exactly when the sequences they were interned from are byte-equal.
// Reading the sequence back out is O(1). Through a ReaderLocal it is
// lock-free and wait-free, and scales linearly with the number of reading
// goroutines; Handle.View instead borrows a pooled reader under a short
// mutex.
//
// Internally the package keeps a single writer and arbitrarily many
// concurrent readers, each holding its own private replica of the
// interned set. A miss on the read path (the sequence has never been
// interned before) acquires a single global mutex and blocks until every
// reader has moved off the stale replica; a hit never blocks and never
// touches the writer at all. Retain/release traffic from Clone and Close
// is batched onto a lock-free queue and only flushed the next time the
// writer runs, so creating and dropping Handles at a high rate on reader
// goroutines never takes a lock.
//
// Reclamation is lazy: an interned sequence whose last Handle has been
// dropped is not removed until the next Intern miss or explicit call to
// CollectGarbage.
package intern
