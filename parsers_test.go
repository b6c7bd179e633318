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

package gnaw_test

import (
	"errors"
	"testing"

	"github.com/mhagen/gnaw"
)

// complete returns a cursor over toks with end of stream asserted.
func complete(toks []byte) gnaw.Input[byte] {
	b := gnaw.NewBuffer(toks)
	b.Finish()
	return gnaw.NewInput(b, 0)
}

// open returns a cursor over toks with the stream still open.
func open(toks []byte) gnaw.Input[byte] {
	return gnaw.NewInput(gnaw.NewBuffer(toks), 0)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func TestSatisfy(t *testing.T) {
	p := gnaw.Satisfy(isDigit)

	r := p(complete([]byte("7x")))
	if !r.IsDone() || r.Value() != '7' || r.Rest().Pos() != 1 {
		t.Fatalf("Satisfy on \"7x\": done %v, value %q, pos %d", r.IsDone(), r.Value(), r.Rest().Pos())
	}

	r = p(complete([]byte("x")))
	if !r.IsError() || r.Err().Kind != gnaw.PredicateFailed || r.Err().At != 0 {
		t.Fatalf("Satisfy on \"x\": %+v", r.Err())
	}

	r = p(complete(nil))
	if !r.IsError() || r.Err().Kind != gnaw.UnexpectedEndOfInput {
		t.Fatalf("Satisfy at EOS: %+v", r.Err())
	}

	r = p(open(nil))
	if !r.IsIncomplete() || r.Needed() != 1 {
		t.Fatalf("Satisfy on an open empty stream: incomplete %v, needed %d", r.IsIncomplete(), r.Needed())
	}
}

func TestTokenMismatchPosition(t *testing.T) {
	// input "b", parser token('a'): TokenMismatch at position 0
	r := gnaw.Token[byte]('a')(complete([]byte("b")))
	if !r.IsError() {
		t.Fatal("Token('a') succeeded on \"b\"")
	}
	e := r.Err()
	if e.Kind != gnaw.TokenMismatch || e.At != 0 || e.Expected != 'a' || e.Actual != 'b' {
		t.Fatalf("error = %+v", e)
	}
}

func TestTokenAdvancesByOne(t *testing.T) {
	for _, c := range []byte("abz0 \n") {
		in := complete([]byte{c, '!'})
		r := gnaw.Token(c)(in)
		if !r.IsDone() || r.Rest().Pos() != in.Pos()+1 {
			t.Fatalf("Token(%q): done %v, pos %d", c, r.IsDone(), r.Rest().Pos())
		}
	}
}

func TestTake(t *testing.T) {
	tests := []struct {
		name    string
		in      gnaw.Input[byte]
		n       int
		val     string
		needed  int // 0: not incomplete
		errKind gnaw.Kind
		isErr   bool
	}{
		{name: "exact", in: complete([]byte("abc")), n: 3, val: "abc"},
		{name: "prefix", in: complete([]byte("abc")), n: 2, val: "ab"},
		{name: "zero", in: complete([]byte("abc")), n: 0, val: ""},
		{name: "short at EOS", in: complete([]byte("ab")), n: 3, isErr: true, errKind: gnaw.UnexpectedEndOfInput},
		{name: "short open", in: open([]byte("ab")), n: 5, needed: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := gnaw.Take[byte](tc.n)(tc.in)
			switch {
			case tc.needed > 0:
				if !r.IsIncomplete() || r.Needed() != tc.needed {
					t.Fatalf("incomplete %v, needed %d, want %d", r.IsIncomplete(), r.Needed(), tc.needed)
				}
			case tc.isErr:
				if !r.IsError() || r.Err().Kind != tc.errKind {
					t.Fatalf("err = %+v", r.Err())
				}
			default:
				if !r.IsDone() || string(r.Value()) != tc.val {
					t.Fatalf("done %v, value %q, want %q", r.IsDone(), r.Value(), tc.val)
				}
			}
		})
	}
}

func TestTakeWhileBoundary(t *testing.T) {
	digits := gnaw.TakeWhile(isDigit)

	// decidable: the run ends inside the buffer
	r := digits(open([]byte("42x")))
	if !r.IsDone() || string(r.Value()) != "42" {
		t.Fatalf("TakeWhile on \"42x\": %v %q", r.IsDone(), r.Value())
	}

	// not decidable: the run touches the buffer end while the stream is open
	r = digits(open([]byte("42")))
	if !r.IsIncomplete() {
		t.Fatal("TakeWhile decided a run at an unconfirmed boundary")
	}

	// the continuation re-attempts once more data arrived
	b := gnaw.NewBuffer([]byte("42"))
	r = digits(gnaw.NewInput(b, 0))
	if !r.IsIncomplete() {
		t.Fatal("expected a stall at the buffer boundary")
	}
	b.Append([]byte("7x"))
	r = r.Resume(gnaw.NewInput(b, r.Rest().Pos()))
	if !r.IsDone() || string(r.Value()) != "427" || r.Rest().Pos() != 3 {
		t.Fatalf("resumed TakeWhile: %v %q pos %d", r.IsDone(), r.Value(), r.Rest().Pos())
	}
}

func TestTakeWhile1(t *testing.T) {
	p := gnaw.TakeWhile1(isDigit)
	r := p(complete([]byte("x1")))
	if !r.IsError() || r.Err().Kind != gnaw.PredicateFailed {
		t.Fatalf("TakeWhile1 on \"x1\": %+v", r.Err())
	}
	r = p(complete(nil))
	if !r.IsError() || r.Err().Kind != gnaw.UnexpectedEndOfInput {
		t.Fatalf("TakeWhile1 on empty EOS: %+v", r.Err())
	}
	r = p(complete([]byte("19")))
	if !r.IsDone() || string(r.Value()) != "19" {
		t.Fatalf("TakeWhile1 on \"19\": %v %q", r.IsDone(), r.Value())
	}
}

func TestTakeTill(t *testing.T) {
	p := gnaw.TakeTill(func(b byte) bool { return b == ';' })
	r := p(complete([]byte("ab;c")))
	if !r.IsDone() || string(r.Value()) != "ab" || r.Rest().Pos() != 2 {
		t.Fatalf("TakeTill: %v %q pos %d", r.IsDone(), r.Value(), r.Rest().Pos())
	}
	// terminator never arrives
	r = p(complete([]byte("abc")))
	if !r.IsError() || r.Err().Kind != gnaw.UnexpectedEndOfInput {
		t.Fatalf("TakeTill without terminator: %+v", r.Err())
	}
	r = p(open([]byte("abc")))
	if !r.IsIncomplete() {
		t.Fatal("TakeTill decided without a terminator on an open stream")
	}
}

func TestMatch(t *testing.T) {
	p := gnaw.Match([]byte("HTTP/"))

	r := p(complete([]byte("HTTP/1.1")))
	if !r.IsDone() || string(r.Value()) != "HTTP/" || r.Rest().Pos() != 5 {
		t.Fatalf("Match: %v %q pos %d", r.IsDone(), r.Value(), r.Rest().Pos())
	}

	// mismatch is reported as soon as it is known, even on a partial buffer
	r = p(open([]byte("HTX")))
	if !r.IsError() || r.Err().Kind != gnaw.TokenMismatch || r.Err().At != 2 {
		t.Fatalf("partial mismatch: %+v", r.Err())
	}

	// a matching prefix of a partial buffer is not a decision
	r = p(open([]byte("HT")))
	if !r.IsIncomplete() || r.Needed() != 3 {
		t.Fatalf("partial match: incomplete %v, needed %d", r.IsIncomplete(), r.Needed())
	}
}

func TestScan(t *testing.T) {
	// consume a digit run with at most one leading zero, via threaded state
	type st struct{ n int }
	p := gnaw.Scan(st{}, func(s st, b byte) (st, bool) {
		if !isDigit(b) || s.n >= 3 {
			return s, false
		}
		return st{n: s.n + 1}, true
	})
	r := p(complete([]byte("12345")))
	if !r.IsDone() || string(r.Value()) != "123" {
		t.Fatalf("Scan: %v %q", r.IsDone(), r.Value())
	}
}

func TestEnd(t *testing.T) {
	p := gnaw.End[byte]()
	if r := p(complete(nil)); !r.IsDone() {
		t.Fatal("End failed at the confirmed end of stream")
	}
	if r := p(complete([]byte("x"))); !r.IsError() {
		t.Fatal("End succeeded with tokens remaining")
	}
	if r := p(open(nil)); !r.IsIncomplete() {
		t.Fatal("End decided with the stream still open")
	}
}

func TestParseOnly(t *testing.T) {
	v, err := gnaw.ParseOnly(gnaw.TakeWhile1(isDigit), []byte("421x"))
	if err != nil {
		t.Fatal(err)
	}
	if string(v) != "421" {
		t.Fatalf("value = %q", v)
	}

	_, err = gnaw.ParseOnly(gnaw.Token[byte]('a'), []byte("b"))
	var perr *gnaw.Error[byte]
	if !errors.As(err, &perr) || perr.Kind != gnaw.TokenMismatch {
		t.Fatalf("err = %v", err)
	}
}
