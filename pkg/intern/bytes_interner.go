package intern

import "github.com/cespare/xxhash/v2"

// BytesInterner is a convenience wrapper around a ReaderLocal for
// callers who want memoized []byte-to-Handle lookups without managing
// Coordinator plumbing themselves. It is not safe for concurrent use:
// construct one per goroutine, the same way a ReaderLocal is meant to be
// used.
//
// Unlike a bare Handle, BytesInterner holds its own Clone of the first
// Handle it returned for each xxhash of the input bytes, so a repeated
// Get for an already-seen value skips the trie lookup and the writer: it
// only Views and Clones the cached Handle. BytesInterner has no Close, so
// those retains are never released and the cached entries are never
// reclaimed.
type BytesInterner struct {
	reader *ReaderLocal
	cache  map[uint64]Handle
}

// NewBytesInterner builds a BytesInterner against coord, or against
// Default() if coord is nil.
func NewBytesInterner(coord *Coordinator) *BytesInterner {
	if coord == nil {
		coord = Default()
	}
	return &BytesInterner{
		reader: coord.NewReaderLocal(),
		cache:  make(map[uint64]Handle),
	}
}

// Get returns a Handle for data, consulting this interner's local cache
// before falling through to the shared Coordinator.
func (b *BytesInterner) Get(data []byte) (Handle, error) {
	hash := xxhash.Sum64(data)

	if h, ok := b.cache[hash]; ok && h.View() == string(data) {
		return h.Clone(), nil
	}

	h, err := b.reader.Intern(data)
	if err != nil {
		return Handle{}, err
	}

	if _, exists := b.cache[hash]; !exists {
		b.cache[hash] = h.Clone()
	}

	return h, nil
}
