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

// ParseOnly runs p against a complete input: toks is the whole stream and
// end of stream is asserted up front, so p can never be Incomplete. Trailing
// unconsumed tokens are not an error; parsers that require full consumption
// compose with End.
//
// A parser reporting Incomplete against a finished stream violates the
// incremental contract; ParseOnly surfaces that as a ProtocolViolation error.
//
func ParseOnly[T comparable, A any](p Parser[T, A], toks []T) (A, error) {
	b := NewBuffer(toks)
	b.Finish()
	r := p(NewInput(b, 0))
	switch {
	case r.IsDone():
		return r.Value(), nil
	case r.IsIncomplete():
		var zero A
		return zero, NewError[T](ProtocolViolation, r.Rest().Pos())
	}
	var zero A
	return zero, r.Err()
}
