package intern

import "errors"

// ErrKeysExhausted is returned by Intern when every possible Key has
// already been handed out. Keys are never reused once freed, so a
// long-running process that interns enough distinct sequences will
// eventually see this.
var ErrKeysExhausted = errors.New("intern: key space exhausted")

// ErrWriterPoisoned is returned by Intern and CollectGarbage once the
// writer goroutine has panicked while holding the write mutex. There is
// no recovery path: the batched op log may be in an indeterminate state,
// so every subsequent writer call fails the same way.
var ErrWriterPoisoned = errors.New("intern: writer is poisoned by an earlier panic")

// errReentrantWrite is the panic value raised when Intern or
// CollectGarbage is invoked (directly or transitively) from inside an
// absorb callback. The replicated store's contract assumes absorb
// callbacks never re-enter the public API; this is enforced defensively
// rather than silently corrupting the op log.
var errReentrantWrite = errors.New("intern: reentrant call into the writer from inside absorb")
