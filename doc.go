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

/*
Package gnaw provides monadic-style parser combinators over streams of
tokens that may arrive incrementally.

A parser is a pure function from a cursor to a three-way result:

	type Parser[T, A] func(Input[T]) Result[T, A]

Result is Done with a value and the advanced cursor, an Error with a
position and a context-label stack, or Incomplete with a resumable
continuation. Incomplete is a first-class outcome, not an exception: it
propagates through composition exactly like an error does, and it means "no
answer is possible until more input arrives". A parser never guesses across
a buffer boundary; TakeWhile, for instance, reports Incomplete rather than
silently truncating a token run where the buffered data happens to stop.

Parsers compose with Bind, Map and Or, and with the repetition combinators
built on them (Many, SepBy, ...). Repetition is implemented as explicit
iteration over the result algebra, so parsing long inputs uses constant
control-stack space.

The one law that makes backtracking and streaming coexist: alternation
never discards a pending Incomplete. Or resolves an alternative only after
it commits to Done or Error; when the first branch stalls waiting for data,
Or stalls with it, because nothing can know whether the missing bytes would
have made that branch succeed.

# Token polymorphism

The engine is generic over the token type, requiring only comparability.
Byte parsing is the common case (see the ascii subpackage for byte-level
helpers), but a Parser[rune, A] or a parser over a caller-defined token
struct works the same way.

# Complete and incremental input

For input that is available up front, ParseOnly runs a parser in one call:

	digits := gnaw.TakeWhile1(func(b byte) bool { return b >= '0' && b <= '9' })
	v, err := gnaw.ParseOnly(digits, []byte("421x"))

For input that arrives in chunks, the stream subpackage owns the buffer and
drives the suspend/resume protocol: a Session holds the continuation of a
stalled parse, the caller appends data as it arrives, and asserting end of
stream forces the final decision.

# Writing new primitives

The building blocks are exported: Input exposes Peek, Advance, ConsumeWhile,
Mark/Restore and Finished, and results are built with Done, Failed and
Suspend. A custom primitive that can stall must pass a continuation to
Suspend (usually itself) so the parse can resume as an ordinary call once
the buffer has grown.
*/
package gnaw
