package domain

// Stage names a step of the interpretation fallback chain.
type Stage string

// Pipeline stages, in fallback order.
const (
	StageOnline   Stage = "online"
	StageOffline  Stage = "offline"
	StageParse    Stage = "parse"
	StageRawParse Stage = "raw-parse"
)

// StageResult is the tagged result of one recovery stage.
type StageResult struct {
	Stage Stage
	Text  string
	Err   error
}

// OK returns true if the stage succeeded.
func (r StageResult) OK() bool {
	return r.Err == nil
}

// InterpretOptions configures a single interpretation.
type InterpretOptions struct {
	// UseOnline enables the online translator when input needs it.
	UseOnline bool

	// Translate holds options forwarded to the online translator.
	Translate TranslateOptions
}

// TranslateOptions configures an online translation request.
type TranslateOptions struct {
	// Source is the source language, "auto" by default.
	Source string

	// Target is the target language, "en" by default.
	Target string
}

// CommandOutcome is the terminal artifact of the interpretation pipeline.
type CommandOutcome struct {
	// TranslatedText is the English-ish text the parser saw.
	TranslatedText string `json:"translated_text"`

	// Parsed is the extracted intent.
	Parsed ParsedIntent `json:"parsed"`

	// Match is the matched product, nil when none qualified or not matched.
	Match *MatchResult `json:"match,omitempty"`

	// UsedOnline is true when the online translator produced the text.
	UsedOnline bool `json:"used_online"`

	// Stage is the stage whose parse produced Parsed.
	Stage Stage `json:"stage"`
}
