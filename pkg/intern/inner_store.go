package intern

import (
	iradix "github.com/hashicorp/go-immutable-radix"
)

// innerStore is the single-replica payload the replicated store keeps
// two copies of: a radix trie from sequence bytes to Key, a map from Key
// to storedEntry, and a list of keys whose refcount may have dropped to
// zero since the last DropUnused pass.
//
// Quiescent invariants (true once every published op has been absorbed,
// never assumed mid-absorb):
//
//   - trie and entries agree: for every (seq, key) in trie, entries[key]
//     exists and holds seq, and vice versa.
//   - every storedEntry in entries has strong >= 0.
//   - pendingFree may name any subset of keys whose most recently
//     absorbed state had strong == 0; DropUnused tolerates and filters
//     stale names.
//
// innerStore is mutated only from inside absorbFirst/absorbSecond, which
// only run while holding the write mutex on a replica that currently has
// no readers entered.
type innerStore struct {
	trie        *iradix.Tree
	entries     map[Key]*storedEntry
	pendingFree []Key
}

func newInnerStore() *innerStore {
	return &innerStore{
		trie:    iradix.New(),
		entries: make(map[Key]*storedEntry),
	}
}

// lookup is the read-path trie lookup: O(length of seq), no allocation.
func (s *innerStore) lookup(seq []byte) (Key, bool) {
	v, ok := s.trie.Get(seq)
	if !ok {
		return invalidKey, false
	}
	return v.(Key), true
}

func (s *innerStore) get(key Key) (*storedEntry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

func (s *innerStore) size() int {
	return len(s.entries)
}

// absorbFirst applies o to s, the first (currently-inactive) replica to
// see it. op is still live afterwards: absorbSecond will see the same
// value applied to the other replica. The Insert arm therefore aliases
// its sequence rather than consuming it outright — see boxedSequence.
func (s *innerStore) absorbFirst(o *op) {
	switch o.kind {
	case opInsert:
		s.insert(o.key, o.seq.alias())
	case opRetain:
		s.retain(o.key)
	case opRelease:
		s.release(o.key)
	case opDropUnused:
		s.dropUnused(firstPass)
	}
}

// absorbSecond applies o to s, the second (now-active) replica, fully
// consuming it. Returns how many entries a DropUnused op actually
// reclaimed (zero for every other op kind), so the writer can tally
// collection stats without this type needing to know about Stats.
func (s *innerStore) absorbSecond(o op) int {
	switch o.kind {
	case opInsert:
		s.insert(o.key, o.seq)
	case opRetain:
		s.retain(o.key)
	case opRelease:
		s.release(o.key)
	case opDropUnused:
		return s.dropUnused(secondPass)
	}
	return 0
}

func (s *innerStore) insert(key Key, seq boxedSequence) {
	bytes := seq.encodeAsBytes()

	newTrie, _, hadPrevious := s.trie.Insert(bytes, key)
	invariantCheck(!hadPrevious, "Insert for a sequence already present in the trie")
	s.trie = newTrie

	_, exists := s.entries[key]
	invariantCheck(!exists, "Insert for a key already present in the map")
	s.entries[key] = newStoredEntry(seq)
}

func (s *innerStore) retain(key Key) {
	e, ok := s.entries[key]
	invariantCheck(ok, "Retain for a key with no entry")
	e.retain()
}

func (s *innerStore) release(key Key) {
	e, ok := s.entries[key]
	invariantCheck(ok, "Release for a key with no entry")
	e.release()
	if e.isDroppable() {
		s.pendingFree = append(s.pendingFree, key)
	}
}

// reclaimPass distinguishes the absorbFirst pass (where the sequence's
// bytes must only be forgotten, because the other replica still holds an
// alias) from the absorbSecond pass (where they can finally be freed).
type reclaimPass bool

const (
	firstPass  reclaimPass = false
	secondPass reclaimPass = true
)

// dropUnused drains pendingFree, removing every key whose refcount is
// still exactly zero from both the map and the trie, and returns how
// many keys it actually removed. A key may have been resurrected by an
// interleaved Retain since it was queued, so the droppable check is
// repeated here rather than trusted from when the key was queued.
func (s *innerStore) dropUnused(pass reclaimPass) int {
	pending := s.pendingFree
	s.pendingFree = nil

	removed := 0
	for _, key := range pending {
		e, ok := s.entries[key]
		if !ok {
			// Already reclaimed by an earlier pass over the same
			// pendingFree entry (can happen if a key is queued
			// more than once before a DropUnused runs).
			continue
		}

		delete(s.entries, key)

		if !e.isDroppable() {
			// Resurrected by a Retain absorbed after this key was
			// queued for possible reclamation, or driven transiently
			// negative by a Release absorbed before its Retain. Put it
			// back.
			s.entries[key] = e
			continue
		}

		newTrie, _, ok2 := s.trie.Delete(e.seq.encodeAsBytes())
		invariantCheck(ok2, "DropUnused removing a key absent from the trie")
		s.trie = newTrie

		if pass == firstPass {
			e.seq.forget()
		} else {
			e.seq.free()
			removed++
		}
	}
	return removed
}

// syncWith resets s to reflect first's contents. replicatedStore does not
// call it: both of its replicas start out empty. Because the trie
// is a persistent structure, sharing its root pointer is always safe;
// the entries map is copied shallowly (storedEntry values, not their
// sequences) so each replica can mutate its own refcounts independently.
func (s *innerStore) syncWith(first *innerStore) {
	s.trie = first.trie
	s.entries = make(map[Key]*storedEntry, len(first.entries))
	for k, e := range first.entries {
		s.entries[k] = &storedEntry{seq: e.seq, strong: e.strong}
	}
	s.pendingFree = nil
}
