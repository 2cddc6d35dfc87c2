package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
	"github.com/custodia-labs/cartvoice/internal/core/ports/driving"
	"github.com/custodia-labs/cartvoice/internal/logger"
)

// Ensure VoiceCommandService implements the interface.
var _ driving.VoiceCommandService = (*VoiceCommandService)(nil)

// User-facing messages.
const (
	msgEmpty          = "No voice input detected"
	msgNotUnderstood  = "Couldn't understand. Try: 'Add 2 bananas' or 'Delete milk'."
	msgFallbackFailed = "Voice fallback failed"
)

// VoiceCommandService interprets voice commands and applies them to the cart.
type VoiceCommandService struct {
	interpreter driving.Interpreter
	matcher     driving.ProductMatcher
	cart        driving.CartService
	opts        domain.InterpretOptions
}

// NewVoiceCommandService creates a voice command service.
// opts is used for every interpretation.
func NewVoiceCommandService(
	interpreter driving.Interpreter,
	matcher driving.ProductMatcher,
	cart driving.CartService,
	opts domain.InterpretOptions,
) *VoiceCommandService {
	return &VoiceCommandService{
		interpreter: interpreter,
		matcher:     matcher,
		cart:        cart,
		opts:        opts,
	}
}

// Handle interprets raw and applies the intent to the cart.
// Failures the user can act on are described in the report; an error is
// returned only when ctx is done.
func (s *VoiceCommandService) Handle(ctx context.Context, raw string) (*domain.CommandReport, error) {
	if strings.TrimSpace(raw) == "" {
		return &domain.CommandReport{
			Status:  domain.StatusEmpty,
			Message: msgEmpty,
			Err:     domain.ErrEmptyTranscript,
		}, nil
	}

	outcome, err := s.Preview(ctx, raw)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return &domain.CommandReport{
			Status:  domain.StatusFailed,
			Message: msgFallbackFailed,
			Err:     err,
		}, nil
	}

	report := s.apply(ctx, outcome)
	report.Outcome = outcome
	logger.Info("Voice command: %s (%s)", report.Status, report.Message)
	return report, nil
}

// Preview interprets raw without touching the cart. When the pipeline
// cannot complete, the raw transcript is parsed directly.
func (s *VoiceCommandService) Preview(ctx context.Context, raw string) (*domain.CommandOutcome, error) {
	outcome, err := s.interpretSafely(ctx, raw)
	if err == nil {
		return outcome, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	logger.Warn("Interpretation failed, parsing raw transcript: %v", err)
	return s.lastResort(raw)
}

func (s *VoiceCommandService) interpretSafely(ctx context.Context, raw string) (outcome *domain.CommandOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome, err = nil, fmt.Errorf("interpreter panic: %v", r)
		}
	}()
	return s.interpreter.Interpret(ctx, raw, s.opts)
}

func (s *VoiceCommandService) lastResort(raw string) (outcome *domain.CommandOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Stage(string(domain.StageRawParse), false, fmt.Sprint(r))
			outcome, err = nil, fmt.Errorf("%w: %v", domain.ErrVoiceProcessingFailed, r)
		}
	}()

	parsed := s.interpreter.LastResort(raw)
	outcome = &domain.CommandOutcome{
		TranslatedText: Normalize(raw),
		Parsed:         parsed,
		Stage:          domain.StageRawParse,
	}
	if parsed.IsActionable() && s.matcher != nil {
		outcome.Match = s.matcher.Match(parsed.Item)
	}
	return outcome, nil
}

func (s *VoiceCommandService) apply(ctx context.Context, outcome *domain.CommandOutcome) *domain.CommandReport {
	p := outcome.Parsed
	switch {
	case p.Action == domain.ActionAdd && p.Item != "":
		return s.applyAdd(ctx, outcome)
	case p.Action == domain.ActionDelete && p.Item != "":
		return s.applyDelete(ctx, p.Item)
	default:
		return &domain.CommandReport{
			Status:  domain.StatusNotUnderstood,
			Message: msgNotUnderstood,
			Err:     domain.ErrParseAmbiguous,
		}
	}
}

func (s *VoiceCommandService) applyAdd(ctx context.Context, outcome *domain.CommandOutcome) *domain.CommandReport {
	item := outcome.Parsed.Item
	if outcome.Match == nil {
		return &domain.CommandReport{
			Status:  domain.StatusNotFound,
			Message: fmt.Sprintf("%q is out of stock or not available.", capitalize(item)),
			Err:     fmt.Errorf("%q: %w", item, domain.ErrProductNotFound),
		}
	}

	name := outcome.Match.Product.CartName()
	qty := domain.ClampQuantity(outcome.Parsed.Quantity)
	price := outcome.Match.Product.Price

	// The live price is best effort; the catalog price stands in.
	if live, err := s.cart.Price(ctx, name); err == nil && live > 0 {
		price = live
	} else if err != nil {
		logger.Debug("Price lookup for %q failed: %v", name, err)
	}

	line, err := s.cart.Add(ctx, domain.AddItemRequest{Name: name, Quantity: qty, Price: price})
	if err != nil {
		return &domain.CommandReport{
			Status:  domain.StatusFailed,
			Message: "Could not add item: " + err.Error(),
			Err:     err,
		}
	}

	return &domain.CommandReport{
		Status:  domain.StatusAdded,
		Message: fmt.Sprintf("Added %d × %s • %s", qty, name, domain.FormatINR(price)),
		Item:    line,
	}
}

func (s *VoiceCommandService) applyDelete(ctx context.Context, item string) *domain.CommandReport {
	notFound := &domain.CommandReport{
		Status:  domain.StatusNotFound,
		Message: "Item to delete not found: " + capitalize(item),
		Err:     fmt.Errorf("%q: %w", item, domain.ErrNotFound),
	}

	found, err := s.cart.FindByName(ctx, item)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound
	}
	if err != nil {
		return &domain.CommandReport{
			Status:  domain.StatusFailed,
			Message: "Could not load cart: " + err.Error(),
			Err:     err,
		}
	}

	deleted, err := s.cart.Delete(ctx, found.ID)
	if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrMutationFailed) {
		return notFound
	}
	if err != nil {
		return &domain.CommandReport{
			Status:  domain.StatusFailed,
			Message: "Delete failed: " + err.Error(),
			Err:     err,
		}
	}

	return &domain.CommandReport{
		Status:  domain.StatusDeleted,
		Message: "Deleted " + deleted.Name,
		Item:    deleted,
	}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
