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

// A Parser is a pure function from a cursor to a Result. Parsers carry no
// mutable state between invocations; composition produces new parser values
// and never mutates existing ones.
//
type Parser[T comparable, A any] func(Input[T]) Result[T, A]

// Unit is the value type of parsers run purely for their consumption effect.
//
type Unit struct{}

type status uint8

const (
	statusDone status = iota
	statusError
	statusIncomplete
)

// A Result is the three-way outcome of a parser invocation: Done with a value
// and the advanced cursor, an Error with the failure position, or Incomplete
// with a minimum-token hint and a continuation that re-attempts the parse
// once the buffer has been extended. Exactly one variant is active.
//
type Result[T comparable, A any] struct {
	st     status
	value  A
	at     Input[T] // Done: advanced cursor; Error/Incomplete: cursor at failure or stall
	err    *Error[T]
	needed int
	k      Parser[T, A]
}

// Done returns a successful result carrying value and the advanced cursor.
//
func Done[T comparable, A any](value A, rest Input[T]) Result[T, A] {
	return Result[T, A]{st: statusDone, value: value, at: rest}
}

// Failed returns an error result positioned at the given cursor. The cursor
// is the diagnostic position only; callers that backtrack restore their own
// mark, never this cursor.
//
func Failed[T comparable, A any](err *Error[T], at Input[T]) Result[T, A] {
	return Result[T, A]{st: statusError, err: err, at: at}
}

// Suspend returns an Incomplete result. The hint needed is a non-binding
// minimum (at least 1) of further tokens required; k is invoked against the
// extended cursor to resume the parse from where it stalled.
//
func Suspend[T comparable, A any](needed int, at Input[T], k Parser[T, A]) Result[T, A] {
	if needed < 1 {
		needed = 1
	}
	return Result[T, A]{st: statusIncomplete, needed: needed, at: at, k: k}
}

// IsDone reports whether the parse succeeded.
//
func (r Result[T, A]) IsDone() bool { return r.st == statusDone }

// IsError reports whether the parse failed.
//
func (r Result[T, A]) IsError() bool { return r.st == statusError }

// IsIncomplete reports whether the parse stalled waiting for more input.
//
func (r Result[T, A]) IsIncomplete() bool { return r.st == statusIncomplete }

// Value returns the parsed value of a Done result.
//
func (r Result[T, A]) Value() A { return r.value }

// Rest returns the result's cursor: the advanced cursor for Done, the
// failure position for Error, the stall position for Incomplete.
//
func (r Result[T, A]) Rest() Input[T] { return r.at }

// Err returns the error of a failed result, nil otherwise.
//
func (r Result[T, A]) Err() *Error[T] {
	if r.st != statusError {
		return nil
	}
	return r.err
}

// Needed returns the minimum-token hint of an Incomplete result.
//
func (r Result[T, A]) Needed() int { return r.needed }

// Resume re-attempts an Incomplete parse against in, which must view the
// same stream extended with new tokens (or with end of stream now asserted).
// Resume panics on any other variant.
//
func (r Result[T, A]) Resume(in Input[T]) Result[T, A] {
	if r.st != statusIncomplete {
		panic("gnaw: Resume on a settled result")
	}
	return r.k(in)
}
