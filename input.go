// Copyright 2024-2025 Moritz Hagen <mhagen.dev@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

package gnaw

import "fmt"

// A Buffer is the shared, append-only token store backing a single parsing
// session. All cursors derived from a Buffer reference the same storage;
// appends must be serialized by the caller.
//
type Buffer[T comparable] struct {
	toks []T
	eos  bool
}

// NewBuffer creates a Buffer holding the given initial tokens. The slice is
// copied so callers may reuse their storage.
//
func NewBuffer[T comparable](toks []T) *Buffer[T] {
	b := &Buffer[T]{}
	if len(toks) > 0 {
		b.toks = append(b.toks, toks...)
	}
	return b
}

// Append adds tokens to the end of the buffer. Append panics if called after
// Finish: once end of stream has been asserted the buffer length is frozen.
//
func (b *Buffer[T]) Append(toks []T) {
	if b.eos {
		panic("gnaw: Append after Finish")
	}
	b.toks = append(b.toks, toks...)
}

// Finish asserts that no further data will ever arrive. It is idempotent.
//
func (b *Buffer[T]) Finish() {
	b.eos = true
}

// Finished reports whether end of stream has been asserted.
//
func (b *Buffer[T]) Finished() bool {
	return b.eos
}

// Len returns the total number of buffered tokens.
//
func (b *Buffer[T]) Len() int {
	return len(b.toks)
}

// A Mark is an O(1) checkpoint of a cursor position, used by alternation to
// retry an alternative from the same starting point. Marks must be re-taken
// after an Incomplete resumption.
//
type Mark int

// An Input is a positioned view over a shared token buffer. Inputs are cheap
// values: forking one is a copy of two words, never of the buffer. Primitive
// parsers advance the position; only the streaming session extends the buffer.
//
type Input[T comparable] struct {
	buf *Buffer[T]
	pos int
}

// NewInput returns a cursor over b positioned at pos. It panics if pos is
// outside [0, b.Len()].
//
func NewInput[T comparable](b *Buffer[T], pos int) Input[T] {
	if pos < 0 || pos > len(b.toks) {
		panic(fmt.Sprintf("gnaw: cursor position %d outside buffer of length %d", pos, len(b.toks)))
	}
	return Input[T]{buf: b, pos: pos}
}

// Pos returns the current read position as an offset from the start of the
// stream.
//
func (in Input[T]) Pos() int {
	return in.pos
}

// Len returns the number of buffered tokens remaining past the read position.
//
func (in Input[T]) Len() int {
	return len(in.buf.toks) - in.pos
}

// Finished reports whether end of stream has been asserted for the underlying
// buffer.
//
func (in Input[T]) Finished() bool {
	return in.buf.eos
}

// AtEnd reports whether the cursor sits at the confirmed end of the stream:
// no buffered token remains and no more data will ever arrive.
//
func (in Input[T]) AtEnd() bool {
	return in.buf.eos && in.pos == len(in.buf.toks)
}

// Peek returns the next token without advancing. The boolean is false when no
// buffered token remains; check Finished to tell "wait for more" from "truly
// the end".
//
func (in Input[T]) Peek() (T, bool) {
	if in.pos < len(in.buf.toks) {
		return in.buf.toks[in.pos], true
	}
	var zero T
	return zero, false
}

// Advance moves the position forward by n tokens. Exceeding the buffered
// tokens is an invariant violation and panics; parsers must check Len first.
//
func (in Input[T]) Advance(n int) Input[T] {
	if n < 0 || n > in.Len() {
		panic(fmt.Sprintf("gnaw: advance by %d with %d tokens buffered", n, in.Len()))
	}
	return Input[T]{buf: in.buf, pos: in.pos + n}
}

// ConsumeWhile advances past a maximal run of tokens satisfying pred and
// returns the advanced cursor along with the run. The boolean is false when
// the run reaches the end of the buffer with end of stream unset: the run
// could extend into data not yet received, so no answer is possible yet.
//
func (in Input[T]) ConsumeWhile(pred func(T) bool) (Input[T], []T, bool) {
	toks := in.buf.toks[in.pos:]
	for i, t := range toks {
		if !pred(t) {
			return in.Advance(i), toks[:i:i], true
		}
	}
	if in.buf.eos {
		return in.Advance(len(toks)), toks, true
	}
	return in, nil, false
}

// Mark returns a checkpoint of the current position.
//
func (in Input[T]) Mark() Mark {
	return Mark(in.pos)
}

// Restore returns a cursor rolled back to the checkpoint m. Both operations
// are O(1); the buffer is shared, never copied.
//
func (in Input[T]) Restore(m Mark) Input[T] {
	return NewInput(in.buf, int(m))
}

// window returns the tokens between position a and the current position.
func (in Input[T]) window(a int) []T {
	return in.buf.toks[a:in.pos:in.pos]
}
