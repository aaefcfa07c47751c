package keyscan

import (
	"bufio"
	"io"
	"strings"
	"unicode"
)

// tokenizer pulls whitespace-delimited tokens and whole lines off a buffered
// stream. Unlike bufio.Scanner's word splitting it stops *before* the
// delimiter, so the caller can tell whether a line terminator is still
// pending after a token read.
type tokenizer struct {
	in *bufio.Reader
}

func newTokenizer(reader io.Reader) *tokenizer {
	return &tokenizer{in: bufio.NewReader(reader)}
}

// token skips leading whitespace, line terminators included, and returns the
// next run of non-whitespace runes. The delimiter after the token stays in
// the buffer. Returns io.EOF when the stream runs out before any token.
func (t *tokenizer) token() (string, error) {
	var current []rune
	for {
		char, _, err := t.in.ReadRune()
		if err == io.EOF {
			if len(current) > 0 {
				return string(current), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		if !unicode.IsSpace(char) {
			current = append(current, char)
			continue
		}

		if len(current) == 0 {
			// Still skipping leading whitespace
			continue
		}

		// Token ends here. Leave the delimiter in the buffer for the
		// line-residue bookkeeping.
		if err := t.in.UnreadRune(); err != nil {
			return "", err
		}
		return string(current), nil
	}
}

// restOfLine reads up to and including the next line terminator and returns
// everything before it, with any CR before the LF stripped. A final
// unterminated line comes back as-is; io.EOF means nothing was left.
func (t *tokenizer) restOfLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err == io.EOF {
		if len(line) > 0 {
			return line, nil
		}
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// swallowEOL consumes an immediately following run of blanks plus at most
// one line terminator. Used by reads whose contract is to consume through
// the terminator rather than leave it pending.
func (t *tokenizer) swallowEOL() error {
	for {
		char, _, err := t.in.ReadRune()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		switch char {
		case '\n':
			return nil
		case ' ', '\t', '\r':
			continue
		default:
			return t.in.UnreadRune()
		}
	}
}
