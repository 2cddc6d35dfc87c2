package domain

// Replacement is a native-script to romanized substitution.
type Replacement struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Lexicon holds the static translation and synonym tables.
// It is loaded once at startup and never modified.
type Lexicon struct {
	// Dictionary maps native-script and romanized tokens to English.
	// Keys may span two tokens, e.g. "seb ko".
	Dictionary map[string]string `toml:"dictionary"`

	// Transliterations are applied before tokenisation, longest From first.
	Transliterations []Replacement `toml:"transliterations"`

	// Suffixes are inflection and politeness markers stripped from
	// unmapped tokens before a second lookup.
	Suffixes []string `toml:"suffixes"`

	// Keywords are native-language substrings that mark input as
	// needing translation.
	Keywords []string `toml:"keywords"`

	// Synonyms map colloquial romanized item names to catalog nouns.
	Synonyms map[string]string `toml:"synonyms"`
}

// Synonym returns the canonical noun for token, or token itself.
func (l *Lexicon) Synonym(token string) string {
	if l == nil {
		return token
	}
	if v, ok := l.Synonyms[token]; ok {
		return v
	}
	return token
}
