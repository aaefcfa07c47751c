package keyscan

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"golang.org/x/text/language"
	"gotest.tools/v3/assert"
)

func TestTypedReads(t *testing.T) {
	testCases := []struct {
		input string
		read  func(*Reader) (any, error)
		want  any
	}{
		{"-128\n", func(r *Reader) (any, error) { return r.NextInt8() }, int8(-128)},
		{"32767\n", func(r *Reader) (any, error) { return r.NextInt16() }, int16(32767)},
		{"2147483647\n", func(r *Reader) (any, error) { return r.NextInt32() }, int32(2147483647)},
		{"9223372036854775807\n", func(r *Reader) (any, error) { return r.NextInt64() }, int64(9223372036854775807)},
		{"2.5\n", func(r *Reader) (any, error) { return r.NextFloat32() }, float32(2.5)},
		{"-0.125\n", func(r *Reader) (any, error) { return r.NextFloat64() }, -0.125},
	}

	for _, testCase := range testCases {
		reader := New(strings.NewReader(testCase.input))
		value, err := testCase.read(reader)
		assert.NilError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.want, value)
	}
}

func TestOverflowIsMismatch(t *testing.T) {
	testCases := []struct {
		input string
		read  func(*Reader) (any, error)
	}{
		{"128\n", func(r *Reader) (any, error) { return r.NextInt8() }},
		{"32768\n", func(r *Reader) (any, error) { return r.NextInt16() }},
		{"2147483648\n", func(r *Reader) (any, error) { return r.NextInt32() }},
		{"9223372036854775808\n", func(r *Reader) (any, error) { return r.NextInt64() }},
	}

	for _, testCase := range testCases {
		reader := New(strings.NewReader(testCase.input))
		_, err := testCase.read(reader)
		assert.Assert(t, errors.Is(err, ErrMismatch), "input %q", testCase.input)
	}
}

func TestGroupedInteger(t *testing.T) {
	reader := New(strings.NewReader("1,234,567\n"))

	value, err := reader.NextInt32()
	assert.NilError(t, err)
	assert.Equal(t, int32(1234567), value)
}

func TestMisgroupedInteger(t *testing.T) {
	reader := New(strings.NewReader("12,34\n"))

	_, err := reader.NextInt32()
	assert.Assert(t, errors.Is(err, ErrMismatch))
}

func TestFractionIsNotAnInteger(t *testing.T) {
	reader := New(strings.NewReader("1.5\n"))

	_, err := reader.NextInt32()
	assert.Assert(t, errors.Is(err, ErrMismatch))
}

func TestGermanFloats(t *testing.T) {
	reader := New(strings.NewReader("1.234,56\n"))
	reader.SetLocale(LocaleFor(language.German))

	value, err := reader.NextFloat64()
	assert.NilError(t, err)
	assert.Equal(t, 1234.56, value)
}

func TestGermanRejectsEnglishFormatting(t *testing.T) {
	reader := New(strings.NewReader("1,234.56\n"))
	reader.SetLocale(LocaleFor(language.German))

	_, err := reader.NextFloat64()
	assert.Assert(t, errors.Is(err, ErrMismatch))
}

func TestFloatRejectsTrailingGarbage(t *testing.T) {
	reader := New(strings.NewReader("1.5x\n"))

	_, err := reader.NextFloat64()
	assert.Assert(t, errors.Is(err, ErrMismatch))
}

func TestBigRat(t *testing.T) {
	reader := New(strings.NewReader("3.14\n"))

	value, err := reader.NextBigRat()
	assert.NilError(t, err)
	assert.Equal(t, 0, value.Cmp(big.NewRat(157, 50)))
}

func TestBigIntGrouped(t *testing.T) {
	reader := New(strings.NewReader("12,345,678,901,234,567,890\n"))

	value, err := reader.NextBigInt()
	assert.NilError(t, err)
	assert.Equal(t, "12345678901234567890", value.String())
}

func TestRetryBudgetBoundary(t *testing.T) {
	// With limit L, L-1 bad lines followed by a good token must succeed,
	// and L bad lines must fail.
	input := "bad1\nbad2\n42\n"

	reader := New(strings.NewReader(input))
	reader.SetAttemptLimit(3)
	value, err := reader.NextInt32()
	assert.NilError(t, err)
	assert.Equal(t, int32(42), value)

	reader = New(strings.NewReader(input))
	reader.SetAttemptLimit(2)
	_, err = reader.NextInt32()
	assert.Assert(t, errors.Is(err, ErrMismatch))
}
