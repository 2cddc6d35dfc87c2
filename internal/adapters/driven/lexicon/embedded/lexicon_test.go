package embedded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Default(t *testing.T) {
	lex, err := New().Load()
	require.NoError(t, err)

	tests := map[string]string{
		"दूध":     "milk",
		"doodh":   "milk",
		"seb ko":  "apple",
		"जोड़ो":   "add",
		"add karo": "add",
		"hatao":   "remove",
		"roti":    "bread",
	}
	for key, want := range tests {
		got, ok := lex.Dictionary[key]
		assert.True(t, ok, "missing %q", key)
		assert.Equal(t, want, got, "key %q", key)
	}

	assert.Len(t, lex.Transliterations, 8)
	assert.Equal(t, []string{"karo", "ko", "ke", "ka", "ki", "se", "mein", "please"}, lex.Suffixes)
	assert.Contains(t, lex.Keywords, "हटाओ")
	assert.Equal(t, "lady finger", lex.Synonym("bhindi"))
	assert.Equal(t, "vegetable", lex.Synonym("sebjiyaan"))
}

func TestLoad_Custom(t *testing.T) {
	data := []byte(`
suffixes = ["ko"]

[dictionary]
paani = "water"
`)
	lex, err := FromBytes(data).Load()
	require.NoError(t, err)

	got, ok := lex.Dictionary["paani"]
	assert.True(t, ok)
	assert.Equal(t, "water", got)
	assert.NotNil(t, lex.Synonyms)
	assert.Empty(t, lex.Transliterations)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := FromBytes([]byte(`dictionary = "oops"`)).Load()
	assert.Error(t, err)

	_, err = FromBytes([]byte(`unknown_table = 1`)).Load()
	assert.Error(t, err)
}

func TestMustLoad(t *testing.T) {
	assert.NotPanics(t, func() { MustLoad() })
}
