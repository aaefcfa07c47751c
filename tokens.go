package keyscan

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// nextToken is the shared bounded-retry read: parse the next token as the
// requested type, and on a mismatch discard the rest of the offending line
// and try again on fresh input until the attempt budget is spent. Stream
// exhaustion is not a mismatch and surfaces immediately as io.EOF.
//
// leavesTerminator selects the buffer bookkeeping. The fixed-width reads
// leave the line terminator pending for NextLine to drain; the big-number
// reads consume through it on the spot and never touch the pending flag.
func nextToken[T any](r *Reader, want string, leavesTerminator bool, parse func(string) (T, error)) (T, error) {
	var zero T
	for attempts := 0; ; {
		token, err := r.tok.token()
		if err != nil {
			return zero, err
		}

		value, parseErr := parse(token)
		if parseErr == nil {
			if !leavesTerminator {
				if err := r.tok.swallowEOL(); err != nil {
					return zero, err
				}
			}
			// Overwrite, don't just set: a read that consumed through the
			// terminator leaves nothing pending, even if an earlier read did.
			r.lineInBuffer = leavesTerminator
			return value, nil
		}

		attempts++
		log.Tracef("Token %q is not a valid %s, attempt %d/%d", token, want, attempts, r.attemptLimit)
		if _, err := r.tok.restOfLine(); err != nil && err != io.EOF {
			return zero, err
		}
		// The discard ran through any pending terminator
		r.lineInBuffer = false
		if attempts >= r.attemptLimit {
			return zero, fmt.Errorf("%w: %q is not a valid %s", ErrMismatch, token, want)
		}
	}
}

// NextInt8 reads the next token as a signed 8-bit integer.
func (r *Reader) NextInt8() (int8, error) {
	return nextToken(r, "int8", true, func(token string) (int8, error) {
		parsed, err := r.parseInt(token, 8)
		return int8(parsed), err
	})
}

// NextInt16 reads the next token as a signed 16-bit integer.
func (r *Reader) NextInt16() (int16, error) {
	return nextToken(r, "int16", true, func(token string) (int16, error) {
		parsed, err := r.parseInt(token, 16)
		return int16(parsed), err
	})
}

// NextInt32 reads the next token as a signed 32-bit integer.
func (r *Reader) NextInt32() (int32, error) {
	return nextToken(r, "int32", true, func(token string) (int32, error) {
		parsed, err := r.parseInt(token, 32)
		return int32(parsed), err
	})
}

// NextInt64 reads the next token as a signed 64-bit integer.
func (r *Reader) NextInt64() (int64, error) {
	return nextToken(r, "int64", true, func(token string) (int64, error) {
		return r.parseInt(token, 64)
	})
}

// NextFloat32 reads the next token as a 32-bit float.
func (r *Reader) NextFloat32() (float32, error) {
	return nextToken(r, "float32", true, func(token string) (float32, error) {
		parsed, err := r.parseFloat(token, 32)
		return float32(parsed), err
	})
}

// NextFloat64 reads the next token as a 64-bit float.
func (r *Reader) NextFloat64() (float64, error) {
	return nextToken(r, "float64", true, func(token string) (float64, error) {
		return r.parseFloat(token, 64)
	})
}

// NextBigInt reads the next token as an arbitrary-precision integer.
func (r *Reader) NextBigInt() (*big.Int, error) {
	return nextToken(r, "big integer", false, func(token string) (*big.Int, error) {
		normalized, err := r.locale.normalizeNumber(token, true)
		if err != nil {
			return nil, err
		}
		parsed, ok := new(big.Int).SetString(normalized, 10)
		if !ok {
			return nil, fmt.Errorf("not an integer: %q", token)
		}
		return parsed, nil
	})
}

// NextBigRat reads the next token as an exact arbitrary-precision decimal.
func (r *Reader) NextBigRat() (*big.Rat, error) {
	return nextToken(r, "big decimal", false, func(token string) (*big.Rat, error) {
		normalized, err := r.locale.normalizeNumber(token, false)
		if err != nil {
			return nil, err
		}
		parsed, ok := new(big.Rat).SetString(normalized)
		if !ok {
			return nil, fmt.Errorf("not a decimal number: %q", token)
		}
		return parsed, nil
	})
}

func (r *Reader) parseInt(token string, bitSize int) (int64, error) {
	normalized, err := r.locale.normalizeNumber(token, true)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(normalized, 10, bitSize)
}

func (r *Reader) parseFloat(token string, bitSize int) (float64, error) {
	normalized, err := r.locale.normalizeNumber(token, false)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(normalized, bitSize)
}
