package keyscan

import "errors"

// ErrMismatch is returned when a typed read runs out of attempts without a
// token parsing as the requested type. Reads wrap it with the offending
// token and target type, so match it with errors.Is.
var ErrMismatch = errors.New("input mismatch")

// ErrNoChar is returned when a character read runs out of attempts with
// only empty lines to take a character from.
var ErrNoChar = errors.New("no character available")
