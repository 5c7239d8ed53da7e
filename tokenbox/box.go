package tokenbox

import (
	"sync"

	"github.com/vinayprograms/asynckit/exec"
)

// entry pairs a token with the tag it was appended under. Untagged
// tokens carry a nil tag and are only reachable through CancelAll.
type entry struct {
	tok exec.Token
	tag any
}

// Box collects cancellation tokens from launched tasks so a whole set,
// or a tagged subset, can be canceled in one call. A zero Box is ready
// to use. All methods are safe for concurrent use.
type Box struct {
	mu      sync.Mutex
	entries []entry
}

// New returns an empty Box.
func New() *Box {
	return &Box{}
}

// Append stores a token for later bulk cancellation. Nil tokens are
// ignored.
func (b *Box) Append(tok exec.Token) {
	b.append(tok, nil)
}

// AppendTagged stores a token under a tag so it can be canceled or
// released as part of that tagged group. Nil tokens are ignored.
func (b *Box) AppendTagged(tok exec.Token, tag any) {
	b.append(tok, tag)
}

func (b *Box) append(tok exec.Token, tag any) {
	if tok == nil {
		return
	}
	b.mu.Lock()
	b.entries = append(b.entries, entry{tok: tok, tag: tag})
	b.mu.Unlock()
}

// Cancel cancels every token appended under tag and removes them from
// the box. An unknown tag is a no-op.
func (b *Box) Cancel(tag any) {
	for _, e := range b.take(func(e entry) bool { return e.tag == tag }) {
		e.tok.Cancel()
	}
}

// CancelAll cancels every token in the box, tagged or not, and empties
// it. Cancellation is idempotent, so tokens whose tasks already
// finished are unaffected.
func (b *Box) CancelAll() {
	for _, e := range b.take(func(entry) bool { return true }) {
		e.tok.Cancel()
	}
}

// Release removes every token appended under tag without canceling
// them. An unknown tag is a no-op.
func (b *Box) Release(tag any) {
	b.take(func(e entry) bool { return e.tag == tag })
}

// Len reports how many tokens the box currently holds.
func (b *Box) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Tokens returns the held tokens in insertion order.
func (b *Box) Tokens() []exec.Token {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]exec.Token, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.tok
	}
	return out
}

// take removes and returns all entries matching the predicate,
// preserving insertion order of both the removed and remaining
// entries. Tokens are canceled outside the lock so a callback running
// on another goroutine can touch the box without deadlocking.
func (b *Box) take(match func(entry) bool) []entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	var taken []entry
	kept := b.entries[:0]
	for _, e := range b.entries {
		if match(e) {
			taken = append(taken, e)
		} else {
			kept = append(kept, e)
		}
	}
	b.entries = kept
	return taken
}
