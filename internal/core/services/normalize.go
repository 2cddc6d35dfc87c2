package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Devanagari digit zero. Digits ० to ९ are contiguous from here.
const devanagariZero = '०'

// ConvertNativeDigits replaces native-script decimal digits with ASCII digits.
// It must run before any filter that drops non-ASCII runes, otherwise
// quantities spoken in native script are lost.
func ConvertNativeDigits(text string) string {
	return strings.Map(func(r rune) rune {
		if r >= devanagariZero && r <= devanagariZero+9 {
			return '0' + (r - devanagariZero)
		}
		return r
	}, text)
}

// stripDiacritics removes combining marks, so "café" becomes "cafe".
// A new transformer is built per call since transform chains hold state.
func stripDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Normalize lowercases text, strips diacritics and punctuation, and collapses
// whitespace. Only a-z, 0-9 and single spaces survive. Normalize is total and
// idempotent.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	s := ConvertNativeDigits(text)
	s = strings.ToLower(s)
	s = stripDiacritics(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte(' ')
		}
	}

	return collapseSpaces(b.String())
}

// collapseSpaces joins whitespace-separated fields with single spaces.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
