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

package ascii

import "github.com/mhagen/gnaw"

// QuotedString consumes a double-quoted string literal and returns its
// decoded contents. Supported escapes: \" \\ \/ \n \r \t \b \f. The literal
// must be closed before the end of the stream.
//
// This is written directly against the cursor primitives: escape decoding
// accumulates into a scratch buffer, which the combinator vocabulary has no
// affordance for. On a stall the parser re-scans the literal from its start,
// like the take-while family does.
//
func QuotedString() gnaw.Parser[byte, string] {
	var p gnaw.Parser[byte, string]
	p = func(in gnaw.Input[byte]) gnaw.Result[byte, string] {
		cur := in
		c, ok := cur.Peek()
		switch {
		case !ok && cur.Finished():
			return gnaw.Failed[byte, string](gnaw.NewError[byte](gnaw.UnexpectedEndOfInput, cur.Pos()), in)
		case !ok:
			// opening quote, one content byte or the closing quote
			return gnaw.Suspend(2, in, p)
		case c != '"':
			e := gnaw.NewError[byte](gnaw.TokenMismatch, cur.Pos())
			e.Expected, e.Actual, e.HasToken = '"', c, true
			return gnaw.Failed[byte, string](e, in)
		}
		cur = cur.Advance(1)

		buf := make([]byte, 0, 64)
		for {
			c, ok := cur.Peek()
			switch {
			case !ok && cur.Finished():
				return gnaw.Failed[byte, string](gnaw.NewError[byte](gnaw.UnexpectedEndOfInput, cur.Pos()), in)
			case !ok:
				return gnaw.Suspend(1, in, p)
			}
			cur = cur.Advance(1)
			switch c {
			case '"':
				return gnaw.Done(string(buf), cur)
			case '\\':
				esc, ok := cur.Peek()
				switch {
				case !ok && cur.Finished():
					return gnaw.Failed[byte, string](gnaw.NewError[byte](gnaw.UnexpectedEndOfInput, cur.Pos()), in)
				case !ok:
					return gnaw.Suspend(1, in, p)
				}
				cur = cur.Advance(1)
				switch esc {
				case '"', '\\', '/':
					buf = append(buf, esc)
				case 'n':
					buf = append(buf, '\n')
				case 'r':
					buf = append(buf, '\r')
				case 't':
					buf = append(buf, '\t')
				case 'b':
					buf = append(buf, '\b')
				case 'f':
					buf = append(buf, '\f')
				default:
					e := gnaw.NewError[byte](gnaw.PredicateFailed, cur.Pos()-1)
					e.Actual, e.HasToken = esc, true
					return gnaw.Failed[byte, string](e.WithContext("string escape"), in)
				}
			default:
				buf = append(buf, c)
			}
		}
	}
	return p
}
