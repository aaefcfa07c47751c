package keyscan

import (
	"testing"

	"golang.org/x/text/language"
	"gotest.tools/v3/assert"
)

func TestEnglishSeparators(t *testing.T) {
	assert.Equal(t, '.', English.decimal)
	assert.Equal(t, ',', English.group)
}

func TestGermanSeparators(t *testing.T) {
	locale := LocaleFor(language.German)
	assert.Equal(t, ',', locale.decimal)
	assert.Equal(t, '.', locale.group)
}

func TestFrenchDecimalSeparator(t *testing.T) {
	// The French group separator is some flavor of non-breaking space
	// depending on the CLDR version, only the decimal comma is stable
	// enough to assert on.
	locale := LocaleFor(language.French)
	assert.Equal(t, ',', locale.decimal)
}

func TestSystemLocaleFromEnvironment(t *testing.T) {
	t.Setenv("LANG", "en_US.UTF-8")
	t.Setenv("LC_NUMERIC", "de_DE.UTF-8")

	// LC_NUMERIC wins
	assert.Equal(t, ',', SystemLocale().decimal)
}

func TestSystemLocaleFallsBackToEnglish(t *testing.T) {
	t.Setenv("LANG", "")
	t.Setenv("LC_NUMERIC", "")

	assert.Equal(t, '.', SystemLocale().decimal)
}

func TestNormalizeNumber(t *testing.T) {
	testCases := []struct {
		token      string
		integer    bool
		normalized string // empty means the token must be rejected
	}{
		{"42", true, "42"},
		{"-42", true, "-42"},
		{"+42", true, "+42"},
		{"1,234", true, "1234"},
		{"1,234,567", true, "1234567"},
		{"1234,567", true, ""},
		{"12,34", true, ""},
		{"1.5", true, ""},
		{"1.5", false, "1.5"},
		{"-1,234.5", false, "-1234.5"},
		{"", true, ""},
		{"-", true, ""},
		{"abc", true, ""},
		{"1.2.3", false, ""},
		{".5", false, ""},
		{"5.", false, ""},
	}

	for _, testCase := range testCases {
		normalized, err := English.normalizeNumber(testCase.token, testCase.integer)
		if testCase.normalized == "" {
			assert.Assert(t, err != nil, "token %q should be rejected", testCase.token)
			continue
		}
		assert.NilError(t, err, "token %q", testCase.token)
		assert.Equal(t, testCase.normalized, normalized)
	}
}
