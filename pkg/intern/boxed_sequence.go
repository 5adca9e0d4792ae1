package intern

import (
	"github.com/fmstephe/flib/funsafe"
)

// boxedSequence is an owned, immutable byte sequence.
//
// A Go string is already an immutable, reference-counted-by-the-runtime
// view of a backing byte array, so sharing one between two replicas is
// just copying the (pointer, length) pair: the runtime frees the backing
// array once nothing holds it any more. boxedSequence keeps alias/
// forget/free as named operations, called from the same absorbFirst/
// absorbSecond call sites a manually-managed allocation would need them
// from, so the component boundary between "the other replica still
// needs this" and "nothing needs this any more" stays explicit in the
// code — but under a tracing collector their bodies collapse to
// nothing.
type boxedSequence struct {
	s string
}

// newBoxedSequence copies data into a freshly owned sequence.
func newBoxedSequence(data []byte) boxedSequence {
	return boxedSequence{s: string(data)}
}

// boxedSequenceFromString takes ownership of a string's backing array
// without copying. Safe because Go strings are already immutable.
func boxedSequenceFromString(s string) boxedSequence {
	return boxedSequence{s: s}
}

// alias returns a second boxedSequence sharing the same backing array as
// b. Used by absorbFirst's Insert arm so the inactive replica and the
// still-live op both carry a valid sequence across the window between
// absorbFirst and absorbSecond.
func (b boxedSequence) alias() boxedSequence {
	return b
}

// forget drops this handle to the sequence without freeing the backing
// array, because another alias of it is still responsible for it (or,
// under the garbage collector, because there is nothing to do at all).
func (b boxedSequence) forget() {
	_ = b
}

// free releases this handle's claim on the backing array. Under manual
// memory management this is the one call site per reclamation that
// actually deallocates; under the garbage collector it is a no-op and
// the array is reclaimed once every boxedSequence copy of it is gone.
func (b boxedSequence) free() {
	_ = b
}

// view returns the sequence's contents. The returned string is valid for
// as long as some owner of this boxedSequence (directly, or through the
// entry that stores it) is reachable.
func (b boxedSequence) view() string {
	return b.s
}

// encodeAsBytes returns a zero-copy []byte view of the sequence, for use
// as a trie key. The caller must not retain or mutate the result past the
// lifetime of b.
func (b boxedSequence) encodeAsBytes() []byte {
	return funsafe.StringToBytes(b.s)
}
