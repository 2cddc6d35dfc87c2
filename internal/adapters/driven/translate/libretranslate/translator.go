// Package libretranslate provides an online translator adapter for
// LibreTranslate-compatible endpoints.
package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure Translator implements the interface.
var _ driven.OnlineTranslator = (*Translator)(nil)

// Default configuration values.
const (
	DefaultSource = "auto"
	DefaultTarget = "en"

	// maxErrorBody bounds how much of an error response is reported.
	maxErrorBody = 512
)

// Config holds configuration for the LibreTranslate adapter.
type Config struct {
	// BaseURL is the full translate endpoint, e.g. https://libretranslate.com/translate.
	BaseURL string

	// APIKey is sent as api_key when set.
	APIKey string

	// Timeout is the HTTP client timeout (default: domain.DefaultTranslationTimeout).
	Timeout time.Duration

	// RatePerSecond limits outgoing requests (default: domain.DefaultTranslationRate).
	RatePerSecond float64

	// BreakerTimeout is how long the breaker stays open (default: 30s).
	BreakerTimeout time.Duration
}

// Translator calls a LibreTranslate endpoint through a rate limiter and a
// circuit breaker.
type Translator struct {
	client  *http.Client
	baseURL string
	apiKey  string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// translateRequest is the LibreTranslate /translate request format.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

// New creates a LibreTranslate translator.
func New(cfg Config) *Translator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultTranslationURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultTranslationTimeout
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = domain.DefaultTranslationRate
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "libretranslate",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Translator{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		breaker: breaker,
	}
}

// Name returns the provider name.
func (t *Translator) Name() string {
	return string(domain.TranslationProviderLibreTranslate)
}

// Translate sends text to the endpoint and returns the translation.
// Errors wrap domain.ErrTranslationFailed, or domain.ErrCircuitOpen when
// the breaker rejects the call.
func (t *Translator) Translate(ctx context.Context, text string, opts domain.TranslateOptions) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: rate limit: %w", domain.ErrTranslationFailed, err)
	}

	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.do(ctx, text, opts)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return "", fmt.Errorf("%w: %w", domain.ErrCircuitOpen, err)
	}
	if err != nil {
		return "", err
	}

	translated, _ := out.(string)
	return translated, nil
}

func (t *Translator) do(ctx context.Context, text string, opts domain.TranslateOptions) (string, error) {
	reqBody := translateRequest{
		Q:      text,
		Source: opts.Source,
		Target: opts.Target,
		Format: "text",
		APIKey: t.apiKey,
	}
	if reqBody.Source == "" {
		reqBody.Source = DefaultSource
	}
	if reqBody.Target == "" {
		reqBody.Target = DefaultTarget
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", domain.ErrTranslationFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrTranslationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: send request: %w", domain.ErrTranslationFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logger.Debug("LibreTranslate error body: %s", strings.TrimSpace(string(body)))
		return "", fmt.Errorf("%w: status %d", domain.ErrTranslationFailed, resp.StatusCode)
	}

	translated, err := extractTranslation(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: decode response: %w", domain.ErrTranslationFailed, err)
	}
	if translated == "" {
		return text, nil
	}
	return translated, nil
}

// extractTranslation returns "translatedText" when present and non-empty,
// otherwise the first string-valued field of the response object in
// document order. Empty means no string field was found.
func extractTranslation(r io.Reader) (string, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", fmt.Errorf("expected object, got %v", tok)
	}

	var first string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", err
		}
		key, _ := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return "", err
		}

		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		if key == "translatedText" && s != "" {
			return s, nil
		}
		if first == "" {
			first = s
		}
	}
	return first, nil
}
