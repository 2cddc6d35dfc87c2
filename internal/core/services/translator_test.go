package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

func TestOfflineTranslator_Translate(t *testing.T) {
	tr := NewOfflineTranslator(testLexicon(t))

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"native milk add", "दूध जोड़ो", "milk add"},
		{"native without nukta", "दूध जोडो", "milk add"},
		{"romanized", "Milk Jodo!", "milk add"},
		{"native digits", "२ केला जोड़ो", "2 banana add"},
		{"two token key", "doodh ko hatao", "milk remove"},
		{"two token verb", "add karo 2 seb", "add 2 apple"},
		{"suffix stripped", "kelako nikalo", "banana remove"},
		{"direct suffixed key", "sebko", "apple"},
		{"unknown kept", "paani jodo", "paani add"},
		{"punctuation", "add: 2 (eggs)?", "add 2 eggs"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tr.Translate(tt.input))
		})
	}
}

func TestOfflineTranslator_EnglishUnchanged(t *testing.T) {
	tr := NewOfflineTranslator(testLexicon(t))

	inputs := []string{
		"add 2 bananas",
		"delete milk",
		"i want 3 eggs",
		"remove olive oil from cart",
	}
	for _, in := range inputs {
		assert.Equal(t, in, tr.Translate(in))
		assert.Equal(t, tr.Translate(in), tr.Translate(tr.Translate(in)))
	}
}

func TestOfflineTranslator_SuffixOnlyToken(t *testing.T) {
	tr := NewOfflineTranslator(testLexicon(t))

	// A token that is itself a suffix is never stripped to nothing.
	assert.Equal(t, "ko", tr.Translate("ko"))
	assert.Equal(t, "please", tr.Translate("please"))
}

func TestOfflineTranslator_NeedsTranslation(t *testing.T) {
	tr := NewOfflineTranslator(testLexicon(t))

	assert.True(t, tr.NeedsTranslation("दूध जोड़ो"))
	assert.True(t, tr.NeedsTranslation("milk हटाओ"))
	assert.True(t, tr.NeedsTranslation("add ३ apples"))
	assert.False(t, tr.NeedsTranslation("Add 2 bananas"))
	assert.False(t, tr.NeedsTranslation("milk jodo"))
	assert.False(t, tr.NeedsTranslation(""))
}

func TestOfflineTranslator_NilLexicon(t *testing.T) {
	tr := NewOfflineTranslator(nil)

	assert.Equal(t, "add 2 bananas", tr.Translate("Add 2 Bananas"))
	assert.False(t, tr.NeedsTranslation("milk"))
}

func TestOfflineTranslator_LongestTransliterationFirst(t *testing.T) {
	lex := &domain.Lexicon{
		Transliterations: []domain.Replacement{
			{From: "ab", To: "x"},
			{From: "abc", To: "y"},
		},
	}
	tr := NewOfflineTranslator(lex)

	assert.Equal(t, "y x", tr.Translate("abc ab"))
}
