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

package stream

import (
	"fmt"
	"io"

	"github.com/mhagen/gnaw"
)

const defaultChunkSize = 4 << 10

type options struct {
	chunkSize int
	maxBuffer int
}

// Option configures Parse.
//
type Option func(*options)

// ChunkSize sets the read size per refill. Values below 1 fall back to the
// default (4 KiB).
//
func ChunkSize(n int) Option {
	return func(o *options) {
		o.chunkSize = n
	}
}

// MaxBuffer bounds the number of bytes the session may accumulate. A parse
// that suspends with more than n bytes already buffered fails instead of
// growing without limit. Zero (the default) means no bound.
//
func MaxBuffer(n int) Option {
	return func(o *options) {
		o.maxBuffer = n
	}
}

// Parse runs p over the bytes read from r, feeding the session on demand:
// nothing is read until the parse suspends, and reading stops as soon as the
// parse settles. io.EOF asserts end of stream; any other read error aborts
// the parse once the buffered data has been given its chance.
//
func Parse[A any](p gnaw.Parser[byte, A], r io.Reader, opts ...Option) (A, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.chunkSize < 1 {
		o.chunkSize = defaultChunkSize
	}

	s := New(p, nil)
	chunk := make([]byte, o.chunkSize)
	var readErr error
	for s.Step() == Suspended {
		if readErr != nil {
			var zero A
			return zero, fmt.Errorf("stream: read: %w", readErr)
		}
		if o.maxBuffer > 0 && s.Buffered() >= o.maxBuffer {
			var zero A
			return zero, fmt.Errorf("stream: buffer limit of %d bytes exceeded", o.maxBuffer)
		}

		var n int
		var err error
		for i := 0; i < 100; i++ {
			n, err = r.Read(chunk)
			if n > 0 || err != nil {
				break
			}
		}
		if n == 0 && err == nil {
			err = io.ErrNoProgress
		}
		if n > 0 {
			s.Append(chunk[:n])
		}
		switch {
		case err == io.EOF:
			s.Finish()
		case err != nil:
			// let the bytes just appended settle the parse before failing
			readErr = err
		}
	}
	return s.Result()
}
