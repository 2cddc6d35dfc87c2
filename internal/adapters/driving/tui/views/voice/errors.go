package voice

import "errors"

// Error definitions for the voice view.
var (
	// ErrNoVoiceService indicates that no voice command service was provided.
	ErrNoVoiceService = errors.New("voice command service is required")
)
