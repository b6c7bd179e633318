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

import (
	"fmt"
	"strings"
)

// Kind classifies a parse error.
//
type Kind int

// Error kinds.
const (
	// TokenMismatch: an exact-match parser saw a different token than it
	// expected.
	TokenMismatch Kind = iota
	// PredicateFailed: a predicate rejected the token at the error position.
	PredicateFailed
	// UnexpectedEndOfInput: end of stream was reached where more input was
	// required.
	UnexpectedEndOfInput
	// EmptyRepetition: a repetition requiring at least one item matched zero.
	EmptyRepetition
	// ProtocolViolation: a continuation reported Incomplete after end of
	// stream was confirmed. This is a bug in a parser implementation, not a
	// data error, and is never recovered by Or.
	ProtocolViolation
)

func (k Kind) String() string {
	switch k {
	case TokenMismatch:
		return "token mismatch"
	case PredicateFailed:
		return "predicate failed"
	case UnexpectedEndOfInput:
		return "unexpected end of input"
	case EmptyRepetition:
		return "empty repetition"
	case ProtocolViolation:
		return "protocol violation"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// An Error describes why and where a parse failed. For TokenMismatch the
// Expected and Actual fields hold the tokens involved; for PredicateFailed
// only Actual is meaningful. Context holds the labels attached by Label as
// the error propagated outward, innermost first. Context is diagnostic only:
// no combinator inspects it for control flow.
//
type Error[T comparable] struct {
	Kind     Kind
	At       int // stream offset of the failure
	Expected T
	Actual   T
	HasToken bool     // Expected/Actual are meaningful
	Context  []string // innermost label first
	cause    error
}

// NewError returns an Error of the given kind at the given stream offset.
//
func NewError[T comparable](kind Kind, at int) *Error[T] {
	return &Error[T]{Kind: kind, At: at}
}

func (e *Error[T]) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "gnaw: %s at %d", e.Kind, e.At)
	if e.HasToken {
		switch e.Kind {
		case TokenMismatch:
			fmt.Fprintf(&b, ": expected %v, got %v", e.Expected, e.Actual)
		default:
			fmt.Fprintf(&b, ": got %v", e.Actual)
		}
	}
	if len(e.Context) > 0 {
		fmt.Fprintf(&b, " (in %s)", strings.Join(e.Context, " < "))
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %s", e.cause)
	}
	return b.String()
}

// Unwrap returns the underlying error, if any. EmptyRepetition errors wrap
// the error of the failed first iteration.
//
func (e *Error[T]) Unwrap() error {
	return e.cause
}

// WithContext returns a copy of e with an outer label appended. The receiver
// is never mutated: errors may be shared between retried alternatives.
//
func (e *Error[T]) WithContext(name string) *Error[T] {
	c := *e
	c.Context = append(e.Context[:len(e.Context):len(e.Context)], name)
	return &c
}

func mismatch[T comparable](at int, expected, actual T) *Error[T] {
	return &Error[T]{Kind: TokenMismatch, At: at, Expected: expected, Actual: actual, HasToken: true}
}

func rejected[T comparable](at int, actual T) *Error[T] {
	return &Error[T]{Kind: PredicateFailed, At: at, Actual: actual, HasToken: true}
}

func endOfInput[T comparable](at int) *Error[T] {
	return &Error[T]{Kind: UnexpectedEndOfInput, At: at}
}

func emptyRepetition[T comparable](at int, cause error) *Error[T] {
	return &Error[T]{Kind: EmptyRepetition, At: at, cause: cause}
}
