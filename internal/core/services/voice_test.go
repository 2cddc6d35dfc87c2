package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// stubInterpreter fails Interpret and optionally panics in LastResort.
type stubInterpreter struct {
	err        error
	panicLast  bool
	panicFirst bool
}

func (s *stubInterpreter) Interpret(_ context.Context, _ string, _ domain.InterpretOptions) (*domain.CommandOutcome, error) {
	if s.panicFirst {
		panic("interpret exploded")
	}
	return nil, s.err
}

func (s *stubInterpreter) LastResort(raw string) domain.ParsedIntent {
	if s.panicLast {
		panic("parser exploded")
	}
	return ParseIntent(Normalize(raw))
}

func newTestVoice(t *testing.T, api *mockCartAPI) *VoiceCommandService {
	t.Helper()
	interp := newTestInterpreter(t, nil)
	return NewVoiceCommandService(interp, interp.matcher, NewCartService(api), domain.InterpretOptions{})
}

func TestVoice_Handle_Add(t *testing.T) {
	api := &mockCartAPI{}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "Add 2 bananas")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAdded, report.Status)
	assert.Equal(t, "Added 2 × Fresh Bananas (1 dozen) • ₹80.00", report.Message)
	require.NotNil(t, report.Item)
	assert.Equal(t, 2, report.Item.Quantity)
	require.NotNil(t, report.Outcome)
	assert.Equal(t, domain.StageOffline, report.Outcome.Stage)
	require.Len(t, api.rows, 1)
	assert.Equal(t, "Fresh Bananas (1 dozen)", api.rows[0].Name)
}

func TestVoice_Handle_AddUsesLivePrice(t *testing.T) {
	api := &mockCartAPI{prices: map[string]float64{"Sugar (1 kg)": 52.5}}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "add sugar")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAdded, report.Status)
	assert.Equal(t, "Added 1 × Sugar (1 kg) • ₹52.50", report.Message)
	assert.InDelta(t, 52.5, api.rows[0].Price, 0.0001)
}

func TestVoice_Handle_NativeScript(t *testing.T) {
	api := &mockCartAPI{}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "दूध जोड़ो")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusAdded, report.Status)
	assert.Equal(t, "milk add", report.Outcome.TranslatedText)
	assert.Equal(t, domain.LangHindi, report.Outcome.Parsed.Lang)
	assert.Equal(t, "Organic Milk (1L)", api.rows[0].Name)
}

func TestVoice_Handle_ProductNotFound(t *testing.T) {
	api := &mockCartAPI{}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "add 1 caviar")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNotFound, report.Status)
	assert.Equal(t, `"Caviar" is out of stock or not available.`, report.Message)
	assert.ErrorIs(t, report.Err, domain.ErrProductNotFound)
	assert.Empty(t, api.rows)
}

func TestVoice_Handle_AddFailure(t *testing.T) {
	api := &mockCartAPI{addErr: errors.New("503 unavailable")}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "add 2 bananas")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Contains(t, report.Message, "Could not add item: ")
	assert.Contains(t, report.Message, "503 unavailable")
	assert.ErrorIs(t, report.Err, domain.ErrMutationFailed)
}

func TestVoice_Handle_Delete(t *testing.T) {
	api := &mockCartAPI{rows: []domain.CartItem{
		{ID: "s1", Name: "Organic Milk (1L)", Quantity: 2, Price: 65},
		{ID: "s2", Name: "Sugar (1 kg)", Quantity: 1, Price: 48},
	}}
	svc := newTestVoice(t, api)

	report, err := svc.Handle(context.Background(), "Delete milk")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDeleted, report.Status)
	assert.Equal(t, "Deleted Organic Milk (1L)", report.Message)
	assert.Equal(t, []string{"s1"}, api.deleted)
}

func TestVoice_Handle_DeleteNotInCart(t *testing.T) {
	svc := newTestVoice(t, &mockCartAPI{})

	report, err := svc.Handle(context.Background(), "remove olive oil")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNotFound, report.Status)
	assert.Equal(t, "Item to delete not found: Olive oil", report.Message)
	assert.ErrorIs(t, report.Err, domain.ErrNotFound)
}

func TestVoice_Handle_DeleteCartUnavailable(t *testing.T) {
	svc := newTestVoice(t, &mockCartAPI{fetchErr: errors.New("connection refused")})

	report, err := svc.Handle(context.Background(), "delete milk")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Contains(t, report.Message, "connection refused")
}

func TestVoice_Handle_DeletePartialFailure(t *testing.T) {
	api := &mockCartAPI{
		rows: []domain.CartItem{
			{ID: "s1", Name: "Organic Milk (1L)", Quantity: 1, Price: 65},
			{ID: "s2", Name: "Organic Milk (1L)", Quantity: 1, Price: 65},
		},
		failIDs: map[string]error{"s2": fmt.Errorf("status 404: %w", domain.ErrNotFound)},
	}
	svc := newTestVoice(t, api)

	for range 2 {
		report, err := svc.Handle(context.Background(), "delete milk")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusFailed, report.Status)
		assert.Contains(t, report.Message, "Delete failed")
		assert.ErrorIs(t, report.Err, domain.ErrMutationFailed)
	}

	require.Len(t, api.rows, 1)
	assert.Equal(t, "s2", api.rows[0].ID)
	assert.Equal(t, []string{"s1"}, api.deleted)
}

func TestVoice_Handle_NotUnderstood(t *testing.T) {
	svc := newTestVoice(t, &mockCartAPI{})

	report, err := svc.Handle(context.Background(), "what is the weather")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusNotUnderstood, report.Status)
	assert.Equal(t, msgNotUnderstood, report.Message)
	assert.ErrorIs(t, report.Err, domain.ErrParseAmbiguous)
}

func TestVoice_Handle_Empty(t *testing.T) {
	svc := newTestVoice(t, &mockCartAPI{})

	report, err := svc.Handle(context.Background(), "   ")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusEmpty, report.Status)
	assert.Equal(t, msgEmpty, report.Message)
	assert.ErrorIs(t, report.Err, domain.ErrEmptyTranscript)
	assert.Nil(t, report.Outcome)
}

func TestVoice_Handle_CancelledContext(t *testing.T) {
	svc := newTestVoice(t, &mockCartAPI{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := svc.Handle(ctx, "add 2 bananas")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, report)
}

func TestVoice_LastResortOnInterpreterError(t *testing.T) {
	api := &mockCartAPI{}
	interp := newTestInterpreter(t, nil)
	svc := NewVoiceCommandService(
		&stubInterpreter{err: errors.New("pipeline broke")},
		interp.matcher,
		NewCartService(api),
		domain.InterpretOptions{},
	)

	report, err := svc.Handle(context.Background(), "Add 3 Eggs!")
	require.NoError(t, err)

	require.NotNil(t, report.Outcome)
	assert.Equal(t, domain.StageRawParse, report.Outcome.Stage)
	assert.Equal(t, "add 3 eggs", report.Outcome.TranslatedText)
	assert.Equal(t, domain.StatusAdded, report.Status)
	assert.Equal(t, "Brown Eggs (12 pcs)", api.rows[0].Name)
	assert.Equal(t, 3, api.rows[0].Quantity)
}

func TestVoice_LastResortOnInterpreterPanic(t *testing.T) {
	interp := newTestInterpreter(t, nil)
	svc := NewVoiceCommandService(
		&stubInterpreter{panicFirst: true},
		interp.matcher,
		NewCartService(&mockCartAPI{}),
		domain.InterpretOptions{},
	)

	outcome, err := svc.Preview(context.Background(), "delete sugar")
	require.NoError(t, err)
	assert.Equal(t, domain.StageRawParse, outcome.Stage)
	assert.Equal(t, domain.ActionDelete, outcome.Parsed.Action)
	assert.Equal(t, "sugar", outcome.Parsed.Item)
}

func TestVoice_LastResortPanics(t *testing.T) {
	svc := NewVoiceCommandService(
		&stubInterpreter{err: errors.New("pipeline broke"), panicLast: true},
		nil,
		NewCartService(&mockCartAPI{}),
		domain.InterpretOptions{},
	)

	report, err := svc.Handle(context.Background(), "add milk")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusFailed, report.Status)
	assert.Equal(t, msgFallbackFailed, report.Message)
	assert.ErrorIs(t, report.Err, domain.ErrVoiceProcessingFailed)
}

func TestVoice_Preview_DoesNotTouchCart(t *testing.T) {
	api := &mockCartAPI{}
	svc := newTestVoice(t, api)

	outcome, err := svc.Preview(context.Background(), "add 2 bananas")
	require.NoError(t, err)

	require.NotNil(t, outcome.Match)
	assert.Equal(t, "m1", outcome.Match.Product.ID)
	assert.Empty(t, api.rows)
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Milk", capitalize("milk"))
	assert.Equal(t, "", capitalize(""))
	assert.Equal(t, "दूध", capitalize("दूध"))
}
