// Package keyscan reads typed values (integers, floats, big numbers,
// characters, whole lines) from interactive input streams, with bounded
// retry on malformed input and locale-aware numeric parsing.
package keyscan

import (
	"io"
	"os"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const defaultAttemptLimit = 1

// Reader reads typed values from an interactive input stream.
//
// Each typed read parses the next whitespace-delimited token as the
// requested type. A malformed token costs one attempt: the rest of the
// offending line is discarded and the read tries again on fresh input,
// until the attempt limit (default 1) is spent and the mismatch surfaces
// to the caller.
//
// The Reader also remembers when a token read left a line terminator
// behind, so that a following NextLine returns the next real line instead
// of that residue.
//
// Not safe for concurrent use; reads block until input arrives.
type Reader struct {
	tok          *tokenizer
	source       io.Reader
	lineInBuffer bool
	attemptLimit int
	locale       Locale
	interactive  bool
}

// New wraps source with the default configuration: attempt limit 1 and
// English numeric formatting.
func New(source io.Reader) *Reader {
	reader := &Reader{
		tok:          newTokenizer(source),
		source:       source,
		attemptLimit: defaultAttemptLimit,
		locale:       English,
	}

	if file, ok := source.(*os.File); ok {
		reader.interactive = term.IsTerminal(int(file.Fd()))
	}

	return reader
}

// NewStdin reads from the process's standard input.
func NewStdin() *Reader {
	reader := New(os.Stdin)
	if !reader.interactive {
		log.Debugf("stdin is not a terminal, input is piped or redirected")
	}
	return reader
}

// SetAttemptLimit changes how many attempts each typed read gets before
// surfacing a mismatch. Takes effect on the next read.
func (r *Reader) SetAttemptLimit(limit int) {
	r.attemptLimit = limit
}

// SetLocale changes the numeric formatting subsequent reads accept.
func (r *Reader) SetLocale(locale Locale) {
	r.locale = locale
}

// Interactive reports whether the source is a terminal.
func (r *Reader) Interactive() bool {
	return r.interactive
}

// NextLine returns the next full line of input without its terminator.
//
// A terminator left pending by an earlier token read is drained first, so
// a NextLine right after a NextInt32 returns the next physical line, never
// a spurious empty string.
func (r *Reader) NextLine() (string, error) {
	if err := r.cleanBuffer(); err != nil {
		return "", err
	}
	return r.tok.restOfLine()
}

func (r *Reader) cleanBuffer() error {
	if !r.lineInBuffer {
		return nil
	}

	residue, err := r.tok.restOfLine()
	if err != nil {
		return err
	}
	if residue != "" {
		log.Tracef("Dropping %d bytes of line residue left by a token read", len(residue))
	}

	r.lineInBuffer = false
	return nil
}

// NextChar reads the next line and returns its first character. An empty
// line costs one attempt, under the same budget as the token reads; no
// extra input is discarded since the empty line is already consumed.
func (r *Reader) NextChar() (rune, error) {
	for attempts := 0; ; {
		line, err := r.tok.restOfLine()
		if err != nil {
			return 0, err
		}

		// Reading a line drains any terminator a token read left pending
		r.lineInBuffer = false

		if line != "" {
			first, _ := utf8.DecodeRuneInString(line)
			return first, nil
		}

		attempts++
		log.Tracef("Empty line on character read, attempt %d/%d", attempts, r.attemptLimit)
		if attempts >= r.attemptLimit {
			return 0, ErrNoChar
		}
	}
}

// Close releases the underlying stream if it is closeable. The Reader must
// not be used afterwards.
func (r *Reader) Close() error {
	if closer, ok := r.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
