package huffman

import (
	"bytes"
	"errors"
	"io"
	"sync"
)

// ErrNotClosed is returned when decoded data is read before the compressed
// input was closed.
var ErrNotClosed = errors.New("huffman: input buffer not closed")

// CompressionWriter buffers everything written to it and writes a single
// container to the underlying writer on Close.
type CompressionWriter struct {
	w      io.Writer
	buf    bytes.Buffer
	closed bool
}

func NewCompressionWriter(writer io.Writer) io.WriteCloser {
	return &CompressionWriter{w: writer}
}

func (cw *CompressionWriter) Write(data []byte) (int, error) {
	if cw.closed {
		return 0, io.ErrClosedPipe
	}
	return cw.buf.Write(data)
}

func (cw *CompressionWriter) Close() error {
	if cw.closed {
		return nil
	}
	cw.closed = true
	_, err := cw.w.Write(Compress(cw.buf.Bytes()))
	return err
}

type decompressionCore struct {
	isInputBufferClosed bool
	err                 error
	lock                sync.Mutex
	inputBuffer         bytes.Buffer
	outputBuffer        bytes.Buffer
}

// DecompressionWriter accepts a serialized container; closing it decodes
// the container for the paired DecompressionReader.
type DecompressionWriter struct {
	core *decompressionCore
}

type DecompressionReader struct {
	core *decompressionCore
}

// NewDecompressionReaderAndWriter returns a connected reader and writer.
// The reader fails with ErrNotClosed until the writer is closed, and with
// the decode error if the container was invalid.
func NewDecompressionReaderAndWriter() (io.ReadCloser, io.WriteCloser) {
	core := new(decompressionCore)
	return &DecompressionReader{core: core}, &DecompressionWriter{core: core}
}

func (dw *DecompressionWriter) Write(data []byte) (int, error) {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return 0, io.ErrClosedPipe
	}
	return dw.core.inputBuffer.Write(data)
}

func (dw *DecompressionWriter) Close() error {
	dw.core.lock.Lock()
	defer dw.core.lock.Unlock()
	if dw.core.isInputBufferClosed {
		return dw.core.err
	}
	dw.core.isInputBufferClosed = true
	decompressedData, err := Decompress(dw.core.inputBuffer.Bytes())
	dw.core.inputBuffer.Reset()
	if err != nil {
		dw.core.err = err
		return err
	}
	dw.core.outputBuffer.Write(decompressedData)
	return nil
}

func (dr *DecompressionReader) Read(data []byte) (int, error) {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	if !dr.core.isInputBufferClosed {
		return 0, ErrNotClosed
	}
	if dr.core.err != nil {
		return 0, dr.core.err
	}
	return dr.core.outputBuffer.Read(data)
}

func (dr *DecompressionReader) Close() error {
	dr.core.lock.Lock()
	defer dr.core.lock.Unlock()
	dr.core.outputBuffer.Reset()
	return nil
}
