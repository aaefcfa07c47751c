package keyscan

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
	"github.com/ulikunitz/xz"
)

var gzipMagic = []byte{0x1f, 0x8b}
var bzip2Magic = []byte{0x42, 0x5a, 0x68}
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
var xzMagic = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

// NewFromFile reads typed input from a file, for replaying recorded input
// sessions. Compressed recordings (gzip, bzip2, zstd, xz) are detected by
// their magic bytes and decompressed transparently. Close the returned
// Reader to release the file.
func NewFromFile(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	contents, err := decompressed(file)
	if err != nil {
		file.Close()
		return nil, err
	}

	// The decompressor gets closed too when it wants that; zstd in
	// particular won't release its worker goroutines otherwise.
	closer := io.Closer(file)
	if decompressor, ok := contents.(io.Closer); ok {
		closer = closeBoth{decompressor, file}
	}

	return New(struct {
		io.Reader
		io.Closer
	}{contents, closer}), nil
}

// closeBoth releases the decompressor before the stream under it.
type closeBoth struct {
	first, second io.Closer
}

func (c closeBoth) Close() error {
	firstErr := c.first.Close()
	if err := c.second.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// decompressed wraps input in the matching decompressor, or returns it
// as-is when no compression magic is found. Detection peeks rather than
// reads, so the stream does not have to be seekable.
func decompressed(input io.Reader) (io.Reader, error) {
	buffered := bufio.NewReader(input)

	// A short peek near end of stream is fine, the prefix checks below
	// just won't match.
	magic, err := buffered.Peek(6)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to sniff input: %w", err)
	}

	switch {
	case bytes.HasPrefix(magic, gzipMagic):
		log.Debugf("Input is gzip compressed")
		return gzip.NewReader(buffered)

	case bytes.HasPrefix(magic, bzip2Magic):
		log.Debugf("Input is bzip2 compressed")
		return bzip2.NewReader(buffered), nil

	case bytes.HasPrefix(magic, zstdMagic):
		log.Debugf("Input is zstd compressed")
		decoder, err := zstd.NewReader(buffered)
		if err != nil {
			return nil, err
		}
		return decoder.IOReadCloser(), nil

	case bytes.HasPrefix(magic, xzMagic):
		log.Debugf("Input is xz compressed")
		return xz.NewReader(buffered)
	}

	return buffered, nil
}
