package intern

// debugAssertions gates invariantCheck. Flip to false to compile the
// checks out of a release build entirely.
const debugAssertions = true

// invariantCheck panics with msg if cond is false and debugAssertions is
// enabled. These guard innerStore invariants that would otherwise
// indicate a programmer error or memory corruption, never conditions
// that can arise from ordinary concurrent use.
func invariantCheck(cond bool, msg string) {
	if debugAssertions && !cond {
		panic("intern: invariant violated: " + msg)
	}
}
