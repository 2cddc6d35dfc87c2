package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskAPIKey(t *testing.T) {
	tests := map[string]string{
		"":                        "****",
		"abc123":                  "****",
		"12345678":                "****",
		"lt-1234567890abcd":       "lt-1...abcd",
		"libre-0f3a9c2e7b1d4e5f6": "libr...e5f6",
	}

	for key, want := range tests {
		assert.Equal(t, want, maskAPIKey(key), "key %q", key)
	}
}

func TestParseChoice(t *testing.T) {
	providers := 2
	tests := []struct {
		input string
		want  int
	}{
		{"", 2},
		{"1", 1},
		{"2", 2},
		{"0", 2},
		{"3", 2},
		{"-1", 2},
		{"libretranslate", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseChoice(tt.input, providers, 2), "input %q", tt.input)
	}
}

func resetTranslatorFlags() {
	translatorProvider = ""
	translatorURL = ""
	translatorAPIKey = ""
}

func TestSettingsCmd_ShowDefaults(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "", "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "[Translation]")
	assert.Contains(t, out, "Online: off")
	assert.Contains(t, out, "LibreTranslate")
	assert.Contains(t, out, "API Key: (not set)")
	assert.Contains(t, out, "[Matching]")
	assert.Contains(t, out, "API: local (in-memory)")
	assert.Contains(t, out, "Configuration is valid.")
}

func TestSettingsCmd_Online(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "", "settings", "online", "on")
	require.NoError(t, err)
	assert.Contains(t, out, "Online translation: on")

	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Online: on")
}

func TestSettingsCmd_OnlineInvalid(t *testing.T) {
	defer setupTestServices()()

	_, err := execute(t, "", "settings", "online", "maybe")

	require.Error(t, err)
	assert.Contains(t, err.Error(), `expected on or off, got "maybe"`)
}

func TestSettingsCmd_TranslatorFlags(t *testing.T) {
	defer setupTestServices()()
	defer resetTranslatorFlags()

	out, err := execute(t, "", "settings", "translator",
		"--provider", "libretranslate",
		"--url", "https://translate.example.com",
		"--api-key", "lt-1234567890abcd")
	require.NoError(t, err)
	assert.Contains(t, out, "Translation provider configured: LibreTranslate")

	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: https://translate.example.com")
	assert.Contains(t, out, "API Key: lt-1...abcd")
}

func TestSettingsCmd_TranslatorInvalidProvider(t *testing.T) {
	defer setupTestServices()()
	defer resetTranslatorFlags()

	_, err := execute(t, "", "settings", "translator", "--provider", "babelfish")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid translation provider")
}

func TestSettingsCmd_TranslatorInteractive(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "1\n", "settings", "translator")
	require.NoError(t, err)
	assert.Contains(t, out, "Select Translation Provider")
	assert.Contains(t, out, "Online translation disabled.")

	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Provider: None (offline lexicon only)")
}

func TestSettingsCmd_TranslatorInteractiveEndpoint(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "2\nhttp://localhost:5000\nsecret-key-42\n", "settings", "translator")
	require.NoError(t, err)
	assert.Contains(t, out, "Run 'cartvoice settings online on' to use it.")

	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Base URL: http://localhost:5000")
	assert.Contains(t, out, "API Key: secr...y-42")
}

func TestSettingsCmd_Cart(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "", "settings", "cart", "http://localhost:3000")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart API: http://localhost:3000")

	out, err = execute(t, "", "settings", "cart", "local")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart API: local (in-memory)")
}

func TestSettingsCmd_Thresholds(t *testing.T) {
	defer setupTestServices()()

	out, err := execute(t, "", "settings", "thresholds", "3", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Thresholds set: catalog 3, fallback 2")

	out, err = execute(t, "", "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog threshold: 3")
	assert.Contains(t, out, "Fallback threshold: 2")
}

func TestSettingsCmd_ThresholdsInvalid(t *testing.T) {
	defer setupTestServices()()

	_, err := execute(t, "", "settings", "thresholds", "three", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid catalog threshold "three"`)

	_, err = execute(t, "", "settings", "thresholds", "0", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "thresholds must be at least 1")
}

func TestSettingsCmd_NoService(t *testing.T) {
	SetServices(nil)

	_, err := execute(t, "", "settings", "show")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}

func TestOnOff(t *testing.T) {
	assert.Equal(t, "on", onOff(true))
	assert.Equal(t, "off", onOff(false))
}
