package intern

import "sync/atomic"

// opChannelNode is a single link in the op channel's queue.
type opChannelNode struct {
	next  atomic.Pointer[opChannelNode]
	value channelOp
}

// opChannel is the unbounded, lock-free multi-producer/single-consumer
// queue that carries Retain/Release requests from reader goroutines to
// the writer, never applying backpressure to a producer.
//
// This is the classic Michael & Scott lock-free queue: enqueue is
// lock-free via a CAS loop on the tail pointer, usable from any number of
// producers; dequeue needs no CAS at all because only the writer ever
// calls recv, so the consumer side reduces to a plain load-and-advance.
type opChannel struct {
	head atomic.Pointer[opChannelNode]
	tail atomic.Pointer[opChannelNode]
}

func newOpChannel() *opChannel {
	dummy := &opChannelNode{}
	c := &opChannel{}
	c.head.Store(dummy)
	c.tail.Store(dummy)
	return c
}

// send enqueues op. Never blocks, never allocates beyond the single node
// for op, and never fails: this is the operation ReaderLocal.retain and
// ReaderLocal.release are built on.
func (c *opChannel) send(o channelOp) {
	n := &opChannelNode{value: o}
	for {
		tail := c.tail.Load()
		next := tail.next.Load()
		if tail != c.tail.Load() {
			continue
		}
		if next == nil {
			if tail.next.CompareAndSwap(nil, n) {
				c.tail.CompareAndSwap(tail, n)
				return
			}
			continue
		}
		// Tail was lagging behind a link another producer already
		// installed; help it catch up before retrying.
		c.tail.CompareAndSwap(tail, next)
	}
}

// recv dequeues the next queued channelOp, if any. Only the writer may
// call this; it is not safe for concurrent consumers.
func (c *opChannel) recv() (channelOp, bool) {
	head := c.head.Load()
	next := head.next.Load()
	if next == nil {
		return channelOp{}, false
	}
	value := next.value
	c.head.Store(next)
	return value, true
}
