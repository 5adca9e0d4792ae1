package intern

import "github.com/cespare/xxhash/v2"

// StringInterner is BytesInterner's counterpart for Go strings: it uses
// InternString on a miss, so the string's own backing array is reused
// rather than copied. Not safe for concurrent use.
type StringInterner struct {
	reader *ReaderLocal
	cache  map[uint64]Handle
}

// NewStringInterner builds a StringInterner against coord, or against
// Default() if coord is nil.
func NewStringInterner(coord *Coordinator) *StringInterner {
	if coord == nil {
		coord = Default()
	}
	return &StringInterner{
		reader: coord.NewReaderLocal(),
		cache:  make(map[uint64]Handle),
	}
}

// Get returns a Handle for s, consulting this interner's local cache
// before falling through to the shared Coordinator.
func (si *StringInterner) Get(s string) (Handle, error) {
	hash := xxhash.Sum64String(s)

	if h, ok := si.cache[hash]; ok && h.View() == s {
		return h.Clone(), nil
	}

	h, err := si.reader.InternString(s)
	if err != nil {
		return Handle{}, err
	}

	if _, exists := si.cache[hash]; !exists {
		si.cache[hash] = h.Clone()
	}

	return h, nil
}
