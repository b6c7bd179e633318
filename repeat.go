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

// Repetition combinators. All of these iterate with an explicit loop and
// accumulator over the result algebra: parsing an input of length N must not
// consume O(N) control-stack frames. An Incomplete from the repeated parser
// suspends the whole loop; the suspension's continuation finishes the stalled
// iteration and then falls back into the loop.

package gnaw

// chain isolates an accumulator before it escapes into a continuation: the
// full slice expression caps capacity so a later append copies instead of
// writing into storage shared with a retried alternative.
func chain[A any](acc []A) []A {
	return acc[:len(acc):len(acc)]
}

// Many applies p repeatedly, accumulating the values in order, and succeeds
// with the (possibly empty) accumulated sequence once p fails. Each
// iteration starts from a mark that is restored when p fails, so the failed
// attempt consumes nothing. An Incomplete from p propagates: with the end of
// stream unconfirmed the loop cannot know whether the run has ended.
//
// Many panics if p succeeds without consuming input, since the loop would
// never terminate.
//
func Many[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	return manyLoop(p, nil)
}

// Many1 is Many but requires at least one iteration, failing with
// EmptyRepetition (wrapping p's error) when the first attempt fails.
//
func Many1[T comparable, A any](p Parser[T, A]) Parser[T, []A] {
	return repeat1(p, p)
}

func manyLoop[T comparable, A any](p Parser[T, A], acc []A) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		vals := chain(acc)
		for {
			m := in.Mark()
			r := p(in)
			switch {
			case r.IsDone():
				rest := r.Rest()
				if rest.Pos() == int(m) {
					panic("gnaw: repetition over a parser that consumes no input")
				}
				vals = append(vals, r.Value())
				in = rest
			case r.IsIncomplete():
				return Suspend(r.Needed(), r.Rest(), manyResume(r.k, p, vals, m))
			case r.err.Kind == ProtocolViolation:
				return Failed[T, []A](r.err, r.Rest())
			default:
				if vals == nil {
					vals = []A{}
				}
				return Done(vals, in.Restore(m))
			}
		}
	}
}

func manyResume[T comparable, A any](k, p Parser[T, A], acc []A, m Mark) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		r := k(in)
		switch {
		case r.IsDone():
			rest := r.Rest()
			if rest.Pos() == int(m) {
				panic("gnaw: repetition over a parser that consumes no input")
			}
			return manyLoop(p, append(chain(acc), r.Value()))(rest)
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), manyResume(r.k, p, acc, m))
		case r.err.Kind == ProtocolViolation:
			return Failed[T, []A](r.err, r.Rest())
		}
		vals := chain(acc)
		if vals == nil {
			vals = []A{}
		}
		return Done(vals, in.Restore(m))
	}
}

// repeat1 runs first once, then loops rest. Shared by Many1 and SepBy1.
func repeat1[T comparable, A any](first, rest Parser[T, A]) Parser[T, []A] {
	var lead func(k Parser[T, A]) Parser[T, []A]
	lead = func(k Parser[T, A]) Parser[T, []A] {
		return func(in Input[T]) Result[T, []A] {
			r := k(in)
			switch {
			case r.IsDone():
				return manyLoop(rest, []A{r.Value()})(r.Rest())
			case r.IsIncomplete():
				return Suspend(r.Needed(), r.Rest(), lead(r.k))
			case r.err.Kind == ProtocolViolation:
				return Failed[T, []A](r.err, r.Rest())
			}
			return Failed[T, []A](emptyRepetition[T](r.err.At, r.err), r.Rest())
		}
	}
	return lead(first)
}

// SkipMany applies p repeatedly like Many but discards the values, avoiding
// accumulation cost for whitespace-style consumption.
//
func SkipMany[T comparable, A any](p Parser[T, A]) Parser[T, Unit] {
	var loop Parser[T, Unit]
	var resume func(k Parser[T, A], m Mark) Parser[T, Unit]
	loop = func(in Input[T]) Result[T, Unit] {
		for {
			m := in.Mark()
			r := p(in)
			switch {
			case r.IsDone():
				rest := r.Rest()
				if rest.Pos() == int(m) {
					panic("gnaw: repetition over a parser that consumes no input")
				}
				in = rest
			case r.IsIncomplete():
				return Suspend(r.Needed(), r.Rest(), resume(r.k, m))
			case r.err.Kind == ProtocolViolation:
				return Failed[T, Unit](r.err, r.Rest())
			default:
				return Done(Unit{}, in.Restore(m))
			}
		}
	}
	resume = func(k Parser[T, A], m Mark) Parser[T, Unit] {
		return func(in Input[T]) Result[T, Unit] {
			r := k(in)
			switch {
			case r.IsDone():
				rest := r.Rest()
				if rest.Pos() == int(m) {
					panic("gnaw: repetition over a parser that consumes no input")
				}
				return loop(rest)
			case r.IsIncomplete():
				return Suspend(r.Needed(), r.Rest(), resume(r.k, m))
			case r.err.Kind == ProtocolViolation:
				return Failed[T, Unit](r.err, r.Rest())
			}
			return Done(Unit{}, in.Restore(m))
		}
	}
	return loop
}

// SkipMany1 is SkipMany but requires at least one iteration.
//
func SkipMany1[T comparable, A any](p Parser[T, A]) Parser[T, Unit] {
	return Then(p, SkipMany(p))
}

// SepBy parses zero or more items separated by sep, terminating cleanly when
// sep fails to match after an item. The separators are discarded.
//
func SepBy[T comparable, A, S any](item Parser[T, A], sep Parser[T, S]) Parser[T, []A] {
	return Or(SepBy1(item, sep), Ret[T]([]A{}))
}

// SepBy1 is SepBy but requires at least one item, failing with
// EmptyRepetition when the first item does not match.
//
func SepBy1[T comparable, A, S any](item Parser[T, A], sep Parser[T, S]) Parser[T, []A] {
	return repeat1(item, Then(sep, item))
}

// ManyTill applies p repeatedly until end matches, accumulating p's values.
// Each iteration first tries end from a mark; when end fails the mark is
// restored and p runs. A failure of p propagates as the error.
//
func ManyTill[T comparable, A, B any](p Parser[T, A], end Parser[T, B]) Parser[T, []A] {
	return tillLoop(p, end, nil)
}

func tillLoop[T comparable, A, B any](p Parser[T, A], end Parser[T, B], acc []A) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		vals := chain(acc)
		for {
			m := in.Mark()
			re := end(in)
			switch {
			case re.IsDone():
				if vals == nil {
					vals = []A{}
				}
				return Done(vals, re.Rest())
			case re.IsIncomplete():
				return Suspend(re.Needed(), re.Rest(), tillEndResume(p, end, re.k, vals, m))
			case re.err.Kind == ProtocolViolation:
				return Failed[T, []A](re.err, re.Rest())
			}

			r := p(in.Restore(m))
			switch {
			case r.IsDone():
				rest := r.Rest()
				if rest.Pos() == int(m) {
					panic("gnaw: repetition over a parser that consumes no input")
				}
				vals = append(vals, r.Value())
				in = rest
			case r.IsIncomplete():
				return Suspend(r.Needed(), r.Rest(), tillItemResume(p, end, r.k, vals, m))
			default:
				return Failed[T, []A](r.err, r.Rest())
			}
		}
	}
}

// tillEndResume finishes a stalled end attempt; when it fails, the item
// parser gets its turn from the iteration mark.
func tillEndResume[T comparable, A, B any](p Parser[T, A], end, ke Parser[T, B], acc []A, m Mark) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		re := ke(in)
		switch {
		case re.IsDone():
			vals := chain(acc)
			if vals == nil {
				vals = []A{}
			}
			return Done(vals, re.Rest())
		case re.IsIncomplete():
			return Suspend(re.Needed(), re.Rest(), tillEndResume(p, end, re.k, acc, m))
		case re.err.Kind == ProtocolViolation:
			return Failed[T, []A](re.err, re.Rest())
		}

		r := p(in.Restore(m))
		switch {
		case r.IsDone():
			rest := r.Rest()
			if rest.Pos() == int(m) {
				panic("gnaw: repetition over a parser that consumes no input")
			}
			return tillLoop(p, end, append(chain(acc), r.Value()))(rest)
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), tillItemResume(p, end, r.k, acc, m))
		}
		return Failed[T, []A](r.err, r.Rest())
	}
}

// tillItemResume finishes a stalled item attempt and rejoins the loop.
func tillItemResume[T comparable, A, B any](p Parser[T, A], end Parser[T, B], ki Parser[T, A], acc []A, m Mark) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		r := ki(in)
		switch {
		case r.IsDone():
			rest := r.Rest()
			if rest.Pos() == int(m) {
				panic("gnaw: repetition over a parser that consumes no input")
			}
			return tillLoop(p, end, append(chain(acc), r.Value()))(rest)
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), tillItemResume(p, end, r.k, acc, m))
		}
		return Failed[T, []A](r.err, r.Rest())
	}
}

// Count applies p exactly n times, accumulating the values in order.
//
func Count[T comparable, A any](n int, p Parser[T, A]) Parser[T, []A] {
	return countLoop(n, p, nil)
}

func countLoop[T comparable, A any](n int, p Parser[T, A], acc []A) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		vals := chain(acc)
		for len(vals) < n {
			r := p(in)
			switch {
			case r.IsDone():
				vals = append(vals, r.Value())
				in = r.Rest()
			case r.IsIncomplete():
				remaining := n - len(vals)
				return Suspend(r.Needed(), r.Rest(), countResume(remaining, r.k, p, vals))
			default:
				return Failed[T, []A](r.err, r.Rest())
			}
		}
		if vals == nil {
			vals = []A{}
		}
		return Done(vals, in)
	}
}

// countResume finishes a stalled iteration with remaining occurrences of p
// still owed, the stalled one included.
func countResume[T comparable, A any](remaining int, k, p Parser[T, A], acc []A) Parser[T, []A] {
	return func(in Input[T]) Result[T, []A] {
		r := k(in)
		switch {
		case r.IsDone():
			return countLoop(len(acc)+remaining, p, append(chain(acc), r.Value()))(r.Rest())
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), countResume(remaining, r.k, p, acc))
		}
		return Failed[T, []A](r.err, r.Rest())
	}
}
