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

// Package ascii provides byte-level predicates and parsers for the common
// case of parsing ASCII-framed data: digit runs, signed integers,
// whitespace, line endings and double-quoted strings. Everything here is
// built on the gnaw core and shares its incremental behavior: no parser in
// this package decides anything across an unconfirmed buffer boundary.
//
package ascii

import (
	"github.com/mhagen/gnaw"
)

// IsDigit reports whether b is an ASCII decimal digit.
//
func IsDigit(b byte) bool { return b >= '0' && b <= '9' }

// IsAlpha reports whether b is an ASCII letter.
//
func IsAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// IsAlphanumeric reports whether b is an ASCII letter or digit.
//
func IsAlphanumeric(b byte) bool { return IsDigit(b) || IsAlpha(b) }

// IsSpace reports whether b is ASCII whitespace.
//
func IsSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v'
}

// IsHorizontalSpace reports whether b is a space or tab.
//
func IsHorizontalSpace(b byte) bool { return b == ' ' || b == '\t' }

// IsEndOfLine reports whether b terminates a line.
//
func IsEndOfLine(b byte) bool { return b == '\n' || b == '\r' }

// Digit consumes a single decimal digit and returns its value.
//
func Digit() gnaw.Parser[byte, byte] {
	return gnaw.SatisfyWith(func(b byte) byte { return b - '0' }, func(v byte) bool { return v <= 9 })
}

// Decimal consumes one or more decimal digits and accumulates them into a
// uint64. Overflow wraps; bound the digits with Label/MaxBuffer upstream
// when parsing untrusted input.
//
func Decimal() gnaw.Parser[byte, uint64] {
	return gnaw.Map(gnaw.TakeWhile1(IsDigit), func(digits []byte) uint64 {
		var v uint64
		for _, d := range digits {
			v = v*10 + uint64(d-'0')
		}
		return v
	})
}

// Signed applies an optional leading sign to the unsigned parser p.
//
func Signed(p gnaw.Parser[byte, uint64]) gnaw.Parser[byte, int64] {
	neg := gnaw.Then(gnaw.Token[byte]('-'), gnaw.Map(p, func(v uint64) int64 { return -int64(v) }))
	pos := gnaw.Then(gnaw.Option(gnaw.Token[byte]('+'), 0), gnaw.Map(p, func(v uint64) int64 { return int64(v) }))
	return gnaw.Or(neg, pos)
}

// SkipSpace consumes a possibly empty run of whitespace.
//
func SkipSpace() gnaw.Parser[byte, gnaw.Unit] {
	return gnaw.SkipWhile(IsSpace)
}

// SkipHorizontalSpace consumes a possibly empty run of spaces and tabs.
//
func SkipHorizontalSpace() gnaw.Parser[byte, gnaw.Unit] {
	return gnaw.SkipWhile(IsHorizontalSpace)
}

// EndOfLine consumes "\r\n" or "\n".
//
func EndOfLine() gnaw.Parser[byte, gnaw.Unit] {
	return gnaw.Or(
		gnaw.Map(gnaw.Match([]byte("\r\n")), func([]byte) gnaw.Unit { return gnaw.Unit{} }),
		gnaw.Map(gnaw.Token[byte]('\n'), func(byte) gnaw.Unit { return gnaw.Unit{} }),
	)
}
