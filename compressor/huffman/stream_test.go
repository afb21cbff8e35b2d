package huffman

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompressionWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewCompressionWriter(&out)
	_, err := w.Write([]byte("hello, "))
	require.NoError(t, err)
	_, err = w.Write([]byte("world"))
	require.NoError(t, err)
	require.Zero(t, out.Len())
	require.NoError(t, w.Close())
	require.Equal(t, Compress([]byte("hello, world")), out.Bytes())

	_, err = w.Write([]byte("late"))
	require.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestDecompressionReaderAndWriter(t *testing.T) {
	r, w := NewDecompressionReaderAndWriter()
	_, err := r.Read(make([]byte, 4))
	require.ErrorIs(t, err, ErrNotClosed)

	_, err = io.Copy(w, bytes.NewReader(Compress([]byte("streamed content"))))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "streamed content", string(got))
	require.NoError(t, r.Close())
}

func TestDecompressionWriterReportsFormatError(t *testing.T) {
	r, w := NewDecompressionReaderAndWriter()
	_, err := w.Write([]byte("not a container"))
	require.NoError(t, err)
	require.ErrorIs(t, w.Close(), ErrFormat)

	_, err = r.Read(make([]byte, 4))
	require.ErrorIs(t, err, ErrFormat)
}
