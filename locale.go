package keyscan

import (
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale carries the numeric separators of one language region, and governs
// how the numeric reads interpret their tokens.
//
// No separator tables live in this package. LocaleFor renders a probe value
// through x/text and reads the separators back, so whatever CLDR says is
// what tokens must look like.
type Locale struct {
	tag     language.Tag
	decimal rune
	group   rune // 0 when the locale does not group digits
}

// English is the locale every new Reader starts with.
var English = LocaleFor(language.English)

// LocaleFor derives the numeric separators for tag.
func LocaleFor(tag language.Tag) Locale {
	rendered := message.NewPrinter(tag).Sprint(number.Decimal(11111.5))

	locale := Locale{tag: tag, decimal: '.'}

	var separators []rune
	for _, char := range rendered {
		if !unicode.IsDigit(char) {
			separators = append(separators, char)
		}
	}
	if len(separators) == 0 {
		// Nothing rendered between the digits, keep the '.' fallback
		return locale
	}

	locale.decimal = separators[len(separators)-1]
	if len(separators) > 1 {
		locale.group = separators[0]
	}
	return locale
}

// SystemLocale resolves the process locale: LC_NUMERIC wins over LANG, and
// an unset or unparseable value falls back to English.
func SystemLocale() Locale {
	tag := language.Und

	if candidate := parseLocaleString(os.Getenv("LANG")); candidate != nil {
		tag = *candidate
	}
	if candidate := parseLocaleString(os.Getenv("LC_NUMERIC")); candidate != nil {
		tag = *candidate
	}

	if tag == language.Und {
		return English
	}
	return LocaleFor(tag)
}

func parseLocaleString(localeString string) *language.Tag {
	dotIndex := strings.IndexRune(localeString, '.')
	if dotIndex >= 0 {
		// Turns "sv_SE.UTF-8" into "sv_SE"
		localeString = localeString[:dotIndex]
	}

	candidate, err := language.Parse(localeString)
	if err != nil {
		return nil
	}

	if candidate == language.Und {
		return nil
	}

	return &candidate
}

func (l Locale) String() string {
	return l.tag.String()
}

// normalizeNumber rewrites a locale-formatted numeric token into the
// canonical form strconv and math/big accept: group separators validated
// and removed, the locale's decimal separator replaced by '.'. With integer
// set, a fractional part is a mismatch.
func (l Locale) normalizeNumber(token string, integer bool) (string, error) {
	sign := ""
	rest := token
	if strings.HasPrefix(rest, "+") || strings.HasPrefix(rest, "-") {
		sign = rest[:1]
		rest = rest[1:]
	}

	intPart := rest
	fracPart := ""
	if i := strings.IndexRune(rest, l.decimal); i >= 0 {
		if integer {
			return "", fmt.Errorf("unexpected fractional part in %q", token)
		}
		intPart = rest[:i]
		fracPart = rest[i+utf8.RuneLen(l.decimal):]
		if strings.ContainsRune(fracPart, l.decimal) {
			return "", fmt.Errorf("multiple decimal separators in %q", token)
		}
		if !allDigits(fracPart) {
			return "", fmt.Errorf("malformed fractional part in %q", token)
		}
	}

	joined, err := l.ungroup(intPart)
	if err != nil {
		return "", err
	}

	if fracPart == "" {
		return sign + joined, nil
	}
	return sign + joined + "." + fracPart, nil
}

// ungroup validates and removes group separators. Grouping must cut the
// digits into an initial group of one to three, then groups of exactly
// three: "1,234" is a number, "12,34" is not.
func (l Locale) ungroup(intPart string) (string, error) {
	if l.group == 0 || !strings.ContainsRune(intPart, l.group) {
		if !allDigits(intPart) {
			return "", fmt.Errorf("not a number: %q", intPart)
		}
		return intPart, nil
	}

	groups := strings.Split(intPart, string(l.group))
	for i, group := range groups {
		if !allDigits(group) {
			return "", fmt.Errorf("not a number: %q", intPart)
		}
		if i == 0 && len(group) <= 3 {
			continue
		}
		if len(group) != 3 {
			return "", fmt.Errorf("misplaced group separator in %q", intPart)
		}
	}
	return strings.Join(groups, ""), nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, char := range s {
		if char < '0' || char > '9' {
			return false
		}
	}
	return true
}
