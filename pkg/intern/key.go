package intern

// Key is the opaque identifier carried inside a Handle. It is unique for
// the life of the process, up to exhaustion (ErrKeysExhausted); freed
// keys are never reused.
type Key uint32

// invalidKey is never handed out by the writer (key allocation starts at
// 1) so it's safe to use as the zero value of a Handle, catching use of
// an uninitialised Handle rather than silently aliasing key 0.
const invalidKey Key = 0
