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

package stream_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhagen/gnaw"
	"github.com/mhagen/gnaw/ascii"
	"github.com/mhagen/gnaw/stream"
)

func TestParseReader(t *testing.T) {
	v, err := stream.Parse(word(), strings.NewReader("streaming;"))
	require.NoError(t, err)
	assert.Equal(t, "streaming", v)
}

func TestParseReaderTinyChunks(t *testing.T) {
	// one byte per read exercises every suspension point
	v, err := stream.Parse(word(), strings.NewReader("chunked;"), stream.ChunkSize(1))
	require.NoError(t, err)
	assert.Equal(t, "chunked", v)
}

func TestParseReaderEOF(t *testing.T) {
	// io.EOF asserts end of stream, letting the open-ended run resolve
	v, err := stream.Parse(gnaw.TakeWhile1(ascii.IsDigit), strings.NewReader("12345"))
	require.NoError(t, err)
	assert.Equal(t, "12345", string(v))
}

func TestParseMaxBuffer(t *testing.T) {
	// the parser wants the whole stream, the limit stops it first
	r := bytes.NewReader(bytes.Repeat([]byte("x"), 1024))
	_, err := stream.Parse(gnaw.TakeRemainder[byte](), r,
		stream.ChunkSize(16), stream.MaxBuffer(64))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buffer limit")
}

// zeroReader always reads zero bytes without an error.
type zeroReader struct{}

func (zeroReader) Read([]byte) (int, error) { return 0, nil }

func TestParseZeroProgressReader(t *testing.T) {
	_, err := stream.Parse(word(), zeroReader{})
	require.ErrorIs(t, err, io.ErrNoProgress)
}

// failAfterReader yields its payload, then a non-EOF error.
type failAfterReader struct {
	data []byte
	err  error
}

func (r *failAfterReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, r.err
	}
	n := copy(p, r.data)
	r.data = r.data[n:]
	return n, nil
}

func TestParseReadError(t *testing.T) {
	errBroken := errors.New("wire torn")

	// the bytes read before the error settle the parse: no error surfaces
	v, err := stream.Parse(word(), &failAfterReader{data: []byte("done;"), err: errBroken})
	require.NoError(t, err)
	assert.Equal(t, "done", v)

	// the parse still needs input when the reader dies: the error surfaces
	_, err = stream.Parse(word(), &failAfterReader{data: []byte("half"), err: errBroken})
	require.ErrorIs(t, err, errBroken)
}
