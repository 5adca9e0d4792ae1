package intern

import "strconv"

// Int64Interner interns the base-formatted text of int64 values,
// memoizing one retained Handle per distinct value it has ever seen so
// that a hot set of repeated values (status codes, small counters) never
// touches the Coordinator's trie after the first sighting. Not safe for
// concurrent use.
type Int64Interner struct {
	reader *ReaderLocal
	base   int
	cache  map[int64]Handle
}

// NewInt64Interner builds an Int64Interner formatting values in base
// (e.g. 10, 16), against coord or Default() if coord is nil.
func NewInt64Interner(coord *Coordinator, base int) *Int64Interner {
	if coord == nil {
		coord = Default()
	}
	return &Int64Interner{
		reader: coord.NewReaderLocal(),
		base:   base,
		cache:  make(map[int64]Handle),
	}
}

// Get returns a Handle for strconv.FormatInt(value, base).
func (ii *Int64Interner) Get(value int64) (Handle, error) {
	if h, ok := ii.cache[value]; ok {
		return h.Clone(), nil
	}

	h, err := ii.reader.InternString(strconv.FormatInt(value, ii.base))
	if err != nil {
		return Handle{}, err
	}

	ii.cache[value] = h.Clone()
	return h, nil
}
