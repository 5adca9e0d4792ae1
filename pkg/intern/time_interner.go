package intern

import "time"

// TimeInterner interns the formatted text of time.Time values, keyed on
// UnixNano. Times in different locations with the same instant and the
// same nanosecond value are treated as identical; run one TimeInterner
// per location if that's not acceptable. Not safe for concurrent use.
type TimeInterner struct {
	reader *ReaderLocal
	format string
	cache  map[int64]Handle
}

// NewTimeInterner builds a TimeInterner formatting values via
// value.Format(format), against coord or Default() if coord is nil.
func NewTimeInterner(coord *Coordinator, format string) *TimeInterner {
	if coord == nil {
		coord = Default()
	}
	return &TimeInterner{
		reader: coord.NewReaderLocal(),
		format: format,
		cache:  make(map[int64]Handle),
	}
}

// Get returns a Handle for value.Format(the interner's format string).
func (ti *TimeInterner) Get(value time.Time) (Handle, error) {
	nanos := value.UnixNano()
	if h, ok := ti.cache[nanos]; ok {
		return h.Clone(), nil
	}

	h, err := ti.reader.InternString(value.Format(ti.format))
	if err != nil {
		return Handle{}, err
	}

	ti.cache[nanos] = h.Clone()
	return h, nil
}
