package intern

import (
	"math"
	"strconv"
)

// Float64Interner interns the formatted text of float64 values the same
// way Int64Interner does for integers. NaN is never cached, since NaN
// never compares equal to itself as a map key — every NaN falls through
// to the Coordinator. Not safe for concurrent use.
type Float64Interner struct {
	reader  *ReaderLocal
	fmt     byte
	prec    int
	bitSize int
	cache   map[float64]Handle
}

// NewFloat64Interner builds a Float64Interner formatting values via
// strconv.FormatFloat(value, fmt, prec, bitSize), against coord or
// Default() if coord is nil.
func NewFloat64Interner(coord *Coordinator, fmt byte, prec, bitSize int) *Float64Interner {
	if coord == nil {
		coord = Default()
	}
	return &Float64Interner{
		reader:  coord.NewReaderLocal(),
		fmt:     fmt,
		prec:    prec,
		bitSize: bitSize,
		cache:   make(map[float64]Handle),
	}
}

// Get returns a Handle for the formatted text of value.
func (fi *Float64Interner) Get(value float64) (Handle, error) {
	if h, ok := fi.cache[value]; ok {
		return h.Clone(), nil
	}

	h, err := fi.reader.InternString(strconv.FormatFloat(value, fi.fmt, fi.prec, fi.bitSize))
	if err != nil {
		return Handle{}, err
	}

	if !math.IsNaN(value) {
		fi.cache[value] = h.Clone()
	}
	return h, nil
}
