package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyTranscript indicates the speech capture produced no text.
	ErrEmptyTranscript = errors.New("empty transcript")

	// Pipeline Errors.

	// ErrRecognitionUnavailable is reserved for speech capture adapters.
	// Front ends here take text transcripts, so nothing returns it yet.
	// Surfaced to the user, never retried.
	ErrRecognitionUnavailable = errors.New("speech recognition unavailable")

	// ErrTranslationFailed indicates the online translation call failed.
	// The pipeline recovers from it by translating offline.
	ErrTranslationFailed = errors.New("translation service failed")

	// ErrCircuitOpen indicates the translation service is failing fast
	// after repeated errors.
	ErrCircuitOpen = errors.New("translation circuit open")

	// ErrParseAmbiguous indicates no intent pattern matched the command.
	ErrParseAmbiguous = errors.New("command not understood")

	// ErrProductNotFound indicates no catalog or fallback product scored
	// above its threshold.
	ErrProductNotFound = errors.New("product not found")

	// ErrVoiceProcessingFailed indicates every recovery stage failed.
	ErrVoiceProcessingFailed = errors.New("voice processing failed")

	// Collaborator Errors.

	// ErrMutationFailed indicates the cart API rejected an add or delete.
	// Local cart state is rolled back before this is surfaced.
	ErrMutationFailed = errors.New("cart mutation failed")

	// ErrCatalogUnavailable indicates the catalog store could not be read.
	ErrCatalogUnavailable = errors.New("catalog unavailable")

	// ErrCatalogNotLoaded indicates the catalog snapshot was requested
	// before Load completed.
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)
