package intern

// opKind identifies which mutation an op applies to InnerStore.
type opKind uint8

const (
	opInsert opKind = iota
	opRetain
	opRelease
	opDropUnused
)

// op is a single entry in the writer's batched op log, applied to both
// replicas via absorbFirst then absorbSecond.
//
// Insert ops always precede any Retain/Release for the same key within a
// batch: Insert is only ever appended by Intern's write path, which
// drains the channel of pending Retain/Release ops before appending its
// own Insert. Ordering across keys, or across different batches, is not
// guaranteed and absorb must not rely on it.
type op struct {
	kind opKind
	key  Key
	seq  boxedSequence // only meaningful for opInsert
}

func insertOp(key Key, seq boxedSequence) op {
	return op{kind: opInsert, key: key, seq: seq}
}

func retainOp(key Key) op {
	return op{kind: opRetain, key: key}
}

func releaseOp(key Key) op {
	return op{kind: opRelease, key: key}
}

func dropUnusedOp() op {
	return op{kind: opDropUnused}
}

// channelOpKind identifies a retain/release request a reader has queued
// for the writer to fold into the next batch.
type channelOpKind uint8

const (
	channelRetain channelOpKind = iota
	channelRelease
)

// channelOp is what ReaderLocal enqueues on the writer's op channel.
// These are absorbed into the op log in whatever order the writer drains
// them, not necessarily the order callers issued them in — see
// storedEntry's comment on the signed strong counter.
type channelOp struct {
	kind channelOpKind
	key  Key
}
