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

// Package stream drives incremental parses over data that arrives in
// chunks. A Session owns the growing token buffer and walks the
// suspend/resume protocol step by step; Run and Parse are ready-made drivers
// for callback and io.Reader sources.
//
package stream

import (
	"errors"
	"fmt"
	"io"

	"github.com/mhagen/gnaw"
)

// State is the session's position in the incremental retry protocol.
//
type State int

// Protocol states. Running and Suspended are transient; Done and Failed are
// terminal.
const (
	Running State = iota
	Suspended
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "Running"
	case Suspended:
		return "Suspended"
	case Done:
		return "Done"
	case Failed:
		return "Failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ErrUnfinished is returned by Result while the session is still Running or
// Suspended.
var ErrUnfinished = errors.New("stream: parse has not finished")

// A Session owns the token buffer of one incremental parse and drives the
// suspend/resume protocol over it. A session is single-threaded: Append,
// Step and Finish must be serialized by the caller. Independent sessions
// share nothing and may run concurrently.
//
type Session[T comparable, A any] struct {
	buf    *gnaw.Buffer[T]
	pos    int // resume position of the pending parser
	k      gnaw.Parser[T, A]
	state  State
	needed int
	value  A
	err    error
}

// New creates a session that will run p over a stream starting with the
// initial tokens (which may be empty). The session starts Running: no parser
// invocation has happened yet.
//
func New[T comparable, A any](p gnaw.Parser[T, A], initial []T) *Session[T, A] {
	return &Session[T, A]{
		buf:   gnaw.NewBuffer(initial),
		k:     p,
		state: Running,
	}
}

// State returns the session's protocol state.
//
func (s *Session[T, A]) State() State {
	return s.state
}

// Needed returns the minimum number of further tokens hinted by the last
// Incomplete result. It is meaningful only while Suspended and is
// non-binding: the parse may still stall again after that many tokens.
//
func (s *Session[T, A]) Needed() int {
	return s.needed
}

// Buffered returns the total number of tokens accumulated by the session.
//
func (s *Session[T, A]) Buffered() int {
	return s.buf.Len()
}

// Step invokes the pending parser (or stored continuation) once and returns
// the resulting state. Step is a no-op unless the session is Running.
//
// A continuation that reports Incomplete after end of stream has been
// asserted violates the protocol; the session fails with a
// ProtocolViolation error rather than suspending forever.
//
func (s *Session[T, A]) Step() State {
	if s.state != Running {
		return s.state
	}
	r := s.k(gnaw.NewInput(s.buf, s.pos))
	switch {
	case r.IsDone():
		s.value = r.Value()
		s.state = Done
	case r.IsIncomplete():
		if s.buf.Finished() {
			s.err = gnaw.NewError[T](gnaw.ProtocolViolation, r.Rest().Pos())
			s.state = Failed
			break
		}
		s.k = r.Resume
		s.pos = r.Rest().Pos()
		s.needed = r.Needed()
		s.state = Suspended
	default:
		s.err = r.Err()
		s.state = Failed
	}
	return s.state
}

// Append adds tokens to the session's buffer. Appending at least one token
// to a Suspended session makes it Running again; the next Step re-invokes
// the stored continuation against the extended cursor. Append returns an
// error once the session has terminated or after Finish.
//
func (s *Session[T, A]) Append(toks []T) error {
	switch {
	case s.state == Done || s.state == Failed:
		return fmt.Errorf("stream: Append on a %s session", s.state)
	case s.buf.Finished():
		return errors.New("stream: Append after Finish")
	}
	s.buf.Append(toks)
	if s.state == Suspended && len(toks) > 0 {
		s.state = Running
	}
	return nil
}

// Finish asserts that no further data will ever arrive and forces the final
// decision of a pending parse: the parser or stored continuation is invoked
// once more with end of stream set and must resolve to Done or Failed. The
// resulting state is returned.
//
func (s *Session[T, A]) Finish() State {
	s.buf.Finish()
	if s.state == Suspended {
		s.state = Running
	}
	if s.state == Running {
		return s.Step()
	}
	return s.state
}

// Result returns the parsed value after Done, the parse error after Failed,
// and ErrUnfinished otherwise.
//
func (s *Session[T, A]) Result() (A, error) {
	switch s.state {
	case Done:
		return s.value, nil
	case Failed:
		var zero A
		return zero, s.err
	}
	var zero A
	return zero, ErrUnfinished
}

// Run drives p over a stream: the parse starts from the initial tokens and,
// whenever it suspends, more is called for the next chunk. A nil more, or a
// false second return value, is taken as end of stream. Run loops until the
// protocol reaches Done or Failed and returns the outcome.
//
func Run[T comparable, A any](p gnaw.Parser[T, A], initial []T, more func() ([]T, bool)) (A, error) {
	s := New(p, initial)
	empty := 0
	for s.Step() == Suspended {
		if more == nil {
			s.Finish()
			continue
		}
		toks, ok := more()
		if !ok {
			s.Finish()
			continue
		}
		// guard against a source that keeps yielding empty chunks
		if len(toks) == 0 {
			if empty++; empty >= 100 {
				var zero A
				return zero, io.ErrNoProgress
			}
			continue
		}
		empty = 0
		if err := s.Append(toks); err != nil {
			var zero A
			return zero, err
		}
	}
	return s.Result()
}
