package services

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// translatorPunctuation lists the runes the offline translator turns into spaces.
const translatorPunctuation = ".,/#!$%^&*;:{}=-_`~()?؟"

// OfflineTranslator maps native-script and romanized tokens to English
// using a static lexicon. It is safe for concurrent use.
type OfflineTranslator struct {
	dictionary       map[string]string
	transliterations []domain.Replacement
	suffixes         []string
	keywords         []string
}

// NewOfflineTranslator builds a translator from lex.
// Keys are NFC-normalised so precomposed and decomposed spellings agree.
func NewOfflineTranslator(lex *domain.Lexicon) *OfflineTranslator {
	t := &OfflineTranslator{
		dictionary: make(map[string]string),
	}
	if lex == nil {
		return t
	}

	for k, v := range lex.Dictionary {
		key := collapseSpaces(strings.ToLower(norm.NFC.String(k)))
		if key != "" {
			t.dictionary[key] = v
		}
	}

	t.transliterations = make([]domain.Replacement, 0, len(lex.Transliterations))
	for _, r := range lex.Transliterations {
		if r.From == "" {
			continue
		}
		t.transliterations = append(t.transliterations, domain.Replacement{
			From: norm.NFC.String(r.From),
			To:   r.To,
		})
	}
	// Longer sequences first so a shorter one never splits a longer word.
	sort.SliceStable(t.transliterations, func(i, j int) bool {
		return len(t.transliterations[i].From) > len(t.transliterations[j].From)
	})

	// Longest suffix first, matching the earliest-starting strip.
	t.suffixes = append([]string(nil), lex.Suffixes...)
	sort.SliceStable(t.suffixes, func(i, j int) bool {
		return len(t.suffixes[i]) > len(t.suffixes[j])
	})

	for _, kw := range lex.Keywords {
		if kw != "" {
			t.keywords = append(t.keywords, strings.ToLower(norm.NFC.String(kw)))
		}
	}

	return t
}

// NeedsTranslation reports whether text contains native-script runes or a
// known native-language keyword.
func (t *OfflineTranslator) NeedsTranslation(text string) bool {
	for _, r := range text {
		if unicode.Is(unicode.Devanagari, r) {
			return true
		}
	}
	lower := strings.ToLower(norm.NFC.String(text))
	for _, kw := range t.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Translate rewrites text token by token into English-ish text.
// Tokens without a mapping are kept as they are.
func (t *OfflineTranslator) Translate(text string) string {
	if text == "" {
		return ""
	}

	s := norm.NFC.String(strings.ToLower(text))
	for _, r := range t.transliterations {
		s = strings.ReplaceAll(s, r.From, r.To)
	}
	s = ConvertNativeDigits(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(translatorPunctuation, r) {
			return ' '
		}
		return r
	}, s)

	tokens := strings.Fields(s)
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+1 < len(tokens) {
			if v, ok := t.dictionary[tokens[i]+" "+tokens[i+1]]; ok {
				out = append(out, v)
				i++
				continue
			}
		}
		out = append(out, t.translateToken(tokens[i]))
	}

	return strings.Join(out, " ")
}

// translateToken looks a token up, retrying once without an inflection suffix.
func (t *OfflineTranslator) translateToken(tok string) string {
	if v, ok := t.dictionary[tok]; ok {
		return v
	}
	for _, suf := range t.suffixes {
		if len(tok) > len(suf) && strings.HasSuffix(tok, suf) {
			if v, ok := t.dictionary[strings.TrimSuffix(tok, suf)]; ok {
				return v
			}
			break
		}
	}
	return tok
}
