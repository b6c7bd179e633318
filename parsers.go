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

// Ret succeeds with v without consuming input.
//
func Ret[T comparable, A any](v A) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		return Done(v, in)
	}
}

// FailWith fails with an error of the given kind at the current position
// without consuming input.
//
func FailWith[T comparable, A any](kind Kind) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		return Failed[T, A](NewError[T](kind, in.Pos()), in)
	}
}

// Satisfy consumes exactly one token if pred holds for it, failing with
// PredicateFailed otherwise without advancing. With no token buffered it is
// Incomplete until end of stream is asserted, then UnexpectedEndOfInput.
//
func Satisfy[T comparable](pred func(T) bool) Parser[T, T] {
	var p Parser[T, T]
	p = func(in Input[T]) Result[T, T] {
		t, ok := in.Peek()
		switch {
		case !ok && in.Finished():
			return Failed[T, T](endOfInput[T](in.Pos()), in)
		case !ok:
			return Suspend(1, in, p)
		case !pred(t):
			return Failed[T, T](rejected(in.Pos(), t), in)
		}
		return Done(t, in.Advance(1))
	}
	return p
}

// SatisfyWith applies f to the next token and consumes it if pred holds for
// the mapped value, which becomes the parser's result.
//
func SatisfyWith[T comparable, A any](f func(T) A, pred func(A) bool) Parser[T, A] {
	var p Parser[T, A]
	p = func(in Input[T]) Result[T, A] {
		t, ok := in.Peek()
		switch {
		case !ok && in.Finished():
			return Failed[T, A](endOfInput[T](in.Pos()), in)
		case !ok:
			return Suspend(1, in, p)
		}
		v := f(t)
		if !pred(v) {
			return Failed[T, A](rejected(in.Pos(), t), in)
		}
		return Done(v, in.Advance(1))
	}
	return p
}

// Token consumes the next token if it equals tok, failing with TokenMismatch
// naming both tokens otherwise.
//
func Token[T comparable](tok T) Parser[T, T] {
	var p Parser[T, T]
	p = func(in Input[T]) Result[T, T] {
		t, ok := in.Peek()
		switch {
		case !ok && in.Finished():
			return Failed[T, T](endOfInput[T](in.Pos()), in)
		case !ok:
			return Suspend(1, in, p)
		case t != tok:
			return Failed[T, T](mismatch(in.Pos(), tok, t), in)
		}
		return Done(t, in.Advance(1))
	}
	return p
}

// NotToken consumes the next token if it does not equal tok.
//
func NotToken[T comparable](tok T) Parser[T, T] {
	return Satisfy(func(t T) bool { return t != tok })
}

// Any consumes and returns the next token, whatever it is.
//
func Any[T comparable]() Parser[T, T] {
	return Satisfy(func(T) bool { return true })
}

// Peek returns the next token without consuming it.
//
func Peek[T comparable]() Parser[T, T] {
	var p Parser[T, T]
	p = func(in Input[T]) Result[T, T] {
		t, ok := in.Peek()
		switch {
		case !ok && in.Finished():
			return Failed[T, T](endOfInput[T](in.Pos()), in)
		case !ok:
			return Suspend(1, in, p)
		}
		return Done(t, in)
	}
	return p
}

// Take consumes exactly n tokens. The Incomplete hint is the exact shortfall.
//
func Take[T comparable](n int) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		if n <= 0 {
			return Done([]T{}, in)
		}
		if in.Len() < n {
			if in.Finished() {
				return Failed[T, []T](endOfInput[T](in.Pos()+in.Len()), in)
			}
			return Suspend(n-in.Len(), in, p)
		}
		out := in.Advance(n)
		return Done(out.window(in.Pos()), out)
	}
	return p
}

// TakeWhile consumes a maximal (possibly empty) run of tokens satisfying
// pred. If the run reaches the end of the buffer before end of stream is
// asserted the parser is Incomplete rather than guessing the run is over.
//
func TakeWhile[T comparable](pred func(T) bool) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		out, run, ok := in.ConsumeWhile(pred)
		if !ok {
			return Suspend(1, in, p)
		}
		return Done(run, out)
	}
	return p
}

// TakeWhile1 is TakeWhile but fails with PredicateFailed on an empty run.
//
func TakeWhile1[T comparable](pred func(T) bool) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		out, run, ok := in.ConsumeWhile(pred)
		switch {
		case !ok:
			return Suspend(1, in, p)
		case len(run) == 0:
			if t, have := in.Peek(); have {
				return Failed[T, []T](rejected(in.Pos(), t), in)
			}
			return Failed[T, []T](endOfInput[T](in.Pos()), in)
		}
		return Done(run, out)
	}
	return p
}

// TakeTill consumes tokens up to, but not including, the first token
// satisfying pred. Reaching the confirmed end of stream without such a token
// is an error: the terminator was required.
//
func TakeTill[T comparable](pred func(T) bool) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		out, run, ok := in.ConsumeWhile(func(t T) bool { return !pred(t) })
		switch {
		case !ok:
			return Suspend(1, in, p)
		case out.AtEnd():
			return Failed[T, []T](endOfInput[T](out.Pos()), in)
		}
		return Done(run, out)
	}
	return p
}

// SkipWhile consumes a maximal run of tokens satisfying pred, discarding it.
//
func SkipWhile[T comparable](pred func(T) bool) Parser[T, Unit] {
	var p Parser[T, Unit]
	p = func(in Input[T]) Result[T, Unit] {
		out, _, ok := in.ConsumeWhile(pred)
		if !ok {
			return Suspend(1, in, p)
		}
		return Done(Unit{}, out)
	}
	return p
}

// TakeRemainder consumes everything up to the end of the stream. It resolves
// only once end of stream is asserted.
//
func TakeRemainder[T comparable]() Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		if !in.Finished() {
			return Suspend(1, in, p)
		}
		out := in.Advance(in.Len())
		return Done(out.window(in.Pos()), out)
	}
	return p
}

// Match consumes tokens equal to seq, in order. On a mismatch it fails with
// TokenMismatch at the offending position. Comparison runs over whatever is
// buffered before deciding to wait, so a mismatch is reported as soon as it
// is known even when the full sequence has not arrived.
//
func Match[T comparable](seq []T) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		n := in.Len()
		for i, want := range seq {
			if i >= n {
				if in.Finished() {
					return Failed[T, []T](endOfInput[T](in.Pos()+n), in)
				}
				return Suspend(len(seq)-n, in, p)
			}
			got, _ := in.Advance(i).Peek()
			if got != want {
				return Failed[T, []T](mismatch(in.Pos()+i, want, got), in)
			}
		}
		out := in.Advance(len(seq))
		return Done(out.window(in.Pos()), out)
	}
	return p
}

// Scan consumes a run of tokens like TakeWhile, threading a state value
// through step; the run ends when step returns false. The state restarts
// from seed on every invocation, so resumption after Incomplete re-scans
// from the original position with the original seed.
//
func Scan[T comparable, S any](seed S, step func(S, T) (S, bool)) Parser[T, []T] {
	var p Parser[T, []T]
	p = func(in Input[T]) Result[T, []T] {
		s := seed
		out, run, ok := in.ConsumeWhile(func(t T) bool {
			next, cont := step(s, t)
			if cont {
				s = next
			}
			return cont
		})
		if !ok {
			return Suspend(1, in, p)
		}
		return Done(run, out)
	}
	return p
}

// End succeeds only at the confirmed end of the stream: no token remains and
// no more data will arrive. With tokens remaining it fails; with an empty
// buffer but end of stream unset it is Incomplete.
//
func End[T comparable]() Parser[T, Unit] {
	var p Parser[T, Unit]
	p = func(in Input[T]) Result[T, Unit] {
		if t, ok := in.Peek(); ok {
			return Failed[T, Unit](rejected(in.Pos(), t), in)
		}
		if !in.Finished() {
			return Suspend(1, in, p)
		}
		return Done(Unit{}, in)
	}
	return p
}
