package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driven"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure Interpreter implements the interface.
var _ driving.Interpreter = (*Interpreter)(nil)

// Interpreter runs the voice command pipeline: translate, parse, match.
// Each recovery stage returns a tagged result so the fallback order is
// explicit. One Interpreter may serve concurrent commands.
type Interpreter struct {
	offline *OfflineTranslator
	online  driven.OnlineTranslator
	matcher driving.ProductMatcher
	timeout time.Duration

	// parse is ParseIntent, replaceable in tests.
	parse func(string) domain.ParsedIntent
}

// NewInterpreter creates an interpreter.
// online and matcher may be nil. A zero timeout uses the default.
func NewInterpreter(
	offline *OfflineTranslator,
	online driven.OnlineTranslator,
	matcher driving.ProductMatcher,
	timeout time.Duration,
) *Interpreter {
	if offline == nil {
		offline = NewOfflineTranslator(nil)
	}
	if timeout <= 0 {
		timeout = domain.DefaultTranslationTimeout
	}
	return &Interpreter{
		offline: offline,
		online:  online,
		matcher: matcher,
		timeout: timeout,
		parse:   ParseIntent,
	}
}

// Interpret turns a raw transcript into a command outcome.
// Translation and parse failures are recovered; the only error returned
// is the context's when it is done before the pipeline finishes.
func (i *Interpreter) Interpret(
	ctx context.Context,
	raw string,
	opts domain.InterpretOptions,
) (*domain.CommandOutcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Interpret")
	src := strings.TrimSpace(raw)
	logger.Debug("Transcript: %q", src)

	if src == "" {
		logger.Debug("Empty transcript, returning unknown intent")
		return &domain.CommandOutcome{
			Parsed: domain.UnknownIntent(""),
			Stage:  domain.StageParse,
		}, nil
	}

	needs := i.offline.NeedsTranslation(src)
	logger.Debug("Translation needed: %t, online enabled: %t", needs, opts.UseOnline)

	var translated domain.StageResult
	usedOnline := false
	if opts.UseOnline && needs && i.online != nil {
		translated = i.onlineStage(ctx, src, opts.Translate)
		if translated.OK() {
			usedOnline = true
		} else {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			logger.Warn("Online translation failed, falling back to offline: %v", translated.Err)
		}
	}
	if !usedOnline {
		translated = i.offlineStage(src)
	}

	text := collapseSpaces(translated.Text)
	parsed := i.parseStage(text)
	if needs {
		parsed.Lang = domain.LangHindi
	} else {
		parsed.Lang = domain.LangEnglish
	}

	outcome := &domain.CommandOutcome{
		TranslatedText: text,
		Parsed:         parsed,
		UsedOnline:     usedOnline,
		Stage:          translated.Stage,
	}

	if parsed.IsActionable() && i.matcher != nil {
		outcome.Match = i.matcher.Match(parsed.Item)
		if outcome.Match != nil {
			logger.Info("Matched %q -> %s (%s, score %d)",
				parsed.Item, outcome.Match.Product.Title, outcome.Match.Source, outcome.Match.Score)
		} else {
			logger.Info("No product matched %q", parsed.Item)
		}
	}

	return outcome, nil
}

// LastResort parses the raw transcript without any translation.
// Callers use it when Interpret itself could not complete.
func (i *Interpreter) LastResort(raw string) domain.ParsedIntent {
	parsed := i.parse(Normalize(raw))
	logger.Stage(string(domain.StageRawParse), true, parsed.Action.String())
	return parsed
}

func (i *Interpreter) onlineStage(ctx context.Context, src string, opts domain.TranslateOptions) domain.StageResult {
	res := domain.StageResult{Stage: domain.StageOnline}

	callCtx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	text, err := i.online.Translate(callCtx, src, opts)
	switch {
	case err != nil:
		res.Err = fmt.Errorf("%s: %w", i.online.Name(), err)
		if !errors.Is(err, domain.ErrTranslationFailed) && !errors.Is(err, domain.ErrCircuitOpen) {
			res.Err = fmt.Errorf("%w: %w", domain.ErrTranslationFailed, res.Err)
		}
	case strings.TrimSpace(text) == "":
		res.Err = fmt.Errorf("%w: empty translation", domain.ErrTranslationFailed)
	default:
		res.Text = text
	}

	logger.Stage(string(res.Stage), res.OK(), errDetail(res.Err))
	return res
}

func (i *Interpreter) offlineStage(src string) domain.StageResult {
	res := domain.StageResult{
		Stage: domain.StageOffline,
		Text:  i.offline.Translate(src),
	}
	logger.Stage(string(res.Stage), true, res.Text)
	return res
}

// parseStage runs the parser, turning a panic into an unknown intent that
// carries the translated text.
func (i *Interpreter) parseStage(text string) (parsed domain.ParsedIntent) {
	defer func() {
		if r := recover(); r != nil {
			logger.Stage(string(domain.StageParse), false, fmt.Sprint(r))
			parsed = domain.UnknownIntent(text)
		}
	}()

	parsed = i.parse(text)
	parsed.Quantity = domain.ClampQuantity(parsed.Quantity)
	if !parsed.Action.IsValid() {
		parsed.Action = domain.ActionUnknown
	}
	logger.Stage(string(domain.StageParse), true, parsed.Action.String())
	return parsed
}

func errDetail(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
