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

// Bind sequences two parsing steps: it runs p and, on success, feeds the
// value into f to obtain the parser for the next step, run against the
// advanced cursor. Error and Incomplete short-circuit and propagate
// unchanged; in particular the failure position is preserved and the cursor
// is never rewound here. Only Or rewinds.
//
func Bind[T comparable, A, B any](p Parser[T, A], f func(A) Parser[T, B]) Parser[T, B] {
	return func(in Input[T]) Result[T, B] {
		r := p(in)
		switch {
		case r.IsDone():
			return f(r.Value())(r.Rest())
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), Bind(r.k, f))
		}
		return Failed[T, B](r.err, r.Rest())
	}
}

// Map applies f to the value of a successful parse, leaving the cursor and
// the other variants untouched.
//
func Map[T comparable, A, B any](p Parser[T, A], f func(A) B) Parser[T, B] {
	return func(in Input[T]) Result[T, B] {
		r := p(in)
		switch {
		case r.IsDone():
			return Done(f(r.Value()), r.Rest())
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), Map(r.k, f))
		}
		return Failed[T, B](r.err, r.Rest())
	}
}

// Then runs p, discards its value and runs q.
//
func Then[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, B] {
	return Bind(p, func(A) Parser[T, B] { return q })
}

// Skip runs p then q, keeping p's value.
//
func Skip[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, A] {
	return Bind(p, func(a A) Parser[T, A] {
		return Map(q, func(B) A { return a })
	})
}

// Or runs p against a marked cursor; if p fails, the mark is restored and q
// runs from the original position. The law of streaming alternation:
// alternation never discards a pending Incomplete. If p stalls, Or stalls:
// more input could still let p succeed, so q must not be tried speculatively.
// When the resumed p eventually fails, q still runs from the original mark.
// A ProtocolViolation from p is fatal and is not recovered.
//
func Or[T comparable, A any](p, q Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		return orFrom(p, q, in.Mark())(in)
	}
}

func orFrom[T comparable, A any](p, q Parser[T, A], m Mark) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		r := p(in)
		switch {
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), orFrom(r.k, q, m))
		case r.IsError() && r.err.Kind != ProtocolViolation:
			return q(in.Restore(m))
		}
		return r
	}
}

// Choice tries each parser in turn from the same position, yielding the
// first success. It panics when called with no parsers.
//
func Choice[T comparable, A any](ps ...Parser[T, A]) Parser[T, A] {
	if len(ps) == 0 {
		panic("gnaw: Choice with no alternatives")
	}
	p := ps[len(ps)-1]
	for i := len(ps) - 2; i >= 0; i-- {
		p = Or(ps[i], p)
	}
	return p
}

// Option runs p and succeeds with def if p fails, deferring to Incomplete
// when p cannot yet decide.
//
func Option[T comparable, A any](p Parser[T, A], def A) Parser[T, A] {
	return Or(p, Ret[T](def))
}

// Either holds the result of EitherOr: Left when the first alternative
// matched, Right otherwise.
//
type Either[A, B any] struct {
	Left    A
	Right   B
	IsRight bool
}

// EitherOr is Or over two parsers of different result types.
//
func EitherOr[T comparable, A, B any](p Parser[T, A], q Parser[T, B]) Parser[T, Either[A, B]] {
	return Or(
		Map(p, func(a A) Either[A, B] { return Either[A, B]{Left: a} }),
		Map(q, func(b B) Either[A, B] { return Either[A, B]{Right: b, IsRight: true} }),
	)
}

// Matched pairs a parsed value with the tokens the parser consumed.
//
type Matched[T comparable, A any] struct {
	Tokens []T
	Value  A
}

// MatchedBy runs p and returns its value together with the consumed tokens.
//
func MatchedBy[T comparable, A any](p Parser[T, A]) Parser[T, Matched[T, A]] {
	return func(in Input[T]) Result[T, Matched[T, A]] {
		return matchedFrom(p, in.Pos())(in)
	}
}

func matchedFrom[T comparable, A any](p Parser[T, A], start int) Parser[T, Matched[T, A]] {
	return func(in Input[T]) Result[T, Matched[T, A]] {
		r := p(in)
		switch {
		case r.IsDone():
			rest := r.Rest()
			return Done(Matched[T, A]{Tokens: rest.window(start), Value: r.Value()}, rest)
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), matchedFrom(r.k, start))
		}
		return Failed[T, Matched[T, A]](r.err, r.Rest())
	}
}

// Expect runs p and, on failure, reports an error of the given kind at p's
// starting position instead, keeping p's own error as the cause. Useful when
// a composite parser's internal failure would mislead: a missing list is
// better reported as one error at the list's start than as a token mismatch
// three elements in. ProtocolViolation is fatal and passes through.
//
func Expect[T comparable, A any](kind Kind, p Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		return expectFrom(kind, p, in.Pos())(in)
	}
}

func expectFrom[T comparable, A any](kind Kind, p Parser[T, A], start int) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		r := p(in)
		switch {
		case r.IsError() && r.err.Kind != ProtocolViolation:
			e := NewError[T](kind, start)
			e.cause = r.err
			return Failed[T, A](e, r.Rest())
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), expectFrom(kind, r.k, start))
		}
		return r
	}
}

// Label attaches a diagnostic name to p. Errors propagating out of p gain
// the label, innermost first; success and Incomplete pass through.
//
func Label[T comparable, A any](name string, p Parser[T, A]) Parser[T, A] {
	return func(in Input[T]) Result[T, A] {
		r := p(in)
		switch {
		case r.IsError():
			return Failed[T, A](r.err.WithContext(name), r.Rest())
		case r.IsIncomplete():
			return Suspend(r.Needed(), r.Rest(), Label(name, r.k))
		}
		return r
	}
}
