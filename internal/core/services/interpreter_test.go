package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

var (
	offlineOpts = domain.InterpretOptions{UseOnline: false}
	onlineOpts  = domain.InterpretOptions{UseOnline: true}
)

func TestInterpreter_AddBananas(t *testing.T) {
	it := newTestInterpreter(t, nil)

	out, err := it.Interpret(context.Background(), "Add 2 bananas", offlineOpts)
	require.NoError(t, err)

	assert.Equal(t, "add 2 bananas", out.TranslatedText)
	assert.Equal(t, domain.ParsedIntent{
		Action:   domain.ActionAdd,
		Quantity: 2,
		Item:     "bananas",
		Lang:     domain.LangEnglish,
	}, out.Parsed)
	assert.False(t, out.UsedOnline)
	assert.Equal(t, domain.StageOffline, out.Stage)

	require.NotNil(t, out.Match)
	assert.Equal(t, "Fresh Bananas (1 dozen)", out.Match.Product.Title)
	assert.GreaterOrEqual(t, out.Match.Score, 2)
}

func TestInterpreter_DeleteMilk(t *testing.T) {
	it := newTestInterpreter(t, nil)

	out, err := it.Interpret(context.Background(), "Delete milk", offlineOpts)
	require.NoError(t, err)

	assert.Equal(t, domain.ActionDelete, out.Parsed.Action)
	assert.Equal(t, 1, out.Parsed.Quantity)
	assert.Equal(t, "milk", out.Parsed.Item)
}

func TestInterpreter_NativeScriptOffline(t *testing.T) {
	it := newTestInterpreter(t, nil)

	out, err := it.Interpret(context.Background(), "दूध जोड़ो", offlineOpts)
	require.NoError(t, err)

	assert.Equal(t, "milk add", out.TranslatedText)
	assert.Equal(t, domain.ActionAdd, out.Parsed.Action)
	assert.Equal(t, "milk", out.Parsed.Item)
	assert.Equal(t, domain.LangHindi, out.Parsed.Lang)
	assert.False(t, out.UsedOnline)
	require.NotNil(t, out.Match)
	assert.Equal(t, "m4", out.Match.Product.ID)
}

func TestInterpreter_Unrecognised(t *testing.T) {
	it := newTestInterpreter(t, nil)

	out, err := it.Interpret(context.Background(), "xyzzy qwerty", offlineOpts)
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUnknown, out.Parsed.Action)
	assert.Equal(t, "", out.Parsed.Item)
	assert.Nil(t, out.Match)
}

func TestInterpreter_EmptyInput(t *testing.T) {
	it := newTestInterpreter(t, nil)

	for _, in := range []string{"", "   ", "\n\t"} {
		out, err := it.Interpret(context.Background(), in, offlineOpts)
		require.NoError(t, err)
		assert.Equal(t, domain.UnknownIntent(""), out.Parsed)
		assert.Nil(t, out.Match)
		assert.False(t, out.UsedOnline)
	}
}

func TestInterpreter_ZeroQuantity(t *testing.T) {
	it := newTestInterpreter(t, nil)

	out, err := it.Interpret(context.Background(), "add 0 apples", offlineOpts)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Parsed.Quantity)
}

func TestInterpreter_EnglishNeverUsesOnline(t *testing.T) {
	online := &mockOnlineTranslator{text: "should not be used"}
	it := newTestInterpreter(t, online)

	for _, in := range []string{"Add 2 bananas", "delete milk", "milk jodo", "xyzzy"} {
		out, err := it.Interpret(context.Background(), in, onlineOpts)
		require.NoError(t, err)
		assert.False(t, out.UsedOnline, "input %q", in)
	}
	assert.Equal(t, 0, online.callCount())
}

func TestInterpreter_OnlineDisabled(t *testing.T) {
	online := &mockOnlineTranslator{text: "add milk"}
	it := newTestInterpreter(t, online)

	out, err := it.Interpret(context.Background(), "दूध जोड़ो", offlineOpts)
	require.NoError(t, err)
	assert.False(t, out.UsedOnline)
	assert.Equal(t, 0, online.callCount())
}

func TestInterpreter_OnlineSuccess(t *testing.T) {
	online := &mockOnlineTranslator{text: "Add  two milk"}
	it := newTestInterpreter(t, online)

	out, err := it.Interpret(context.Background(), "दूध जोड़ो", onlineOpts)
	require.NoError(t, err)

	assert.True(t, out.UsedOnline)
	assert.Equal(t, domain.StageOnline, out.Stage)
	assert.Equal(t, "Add two milk", out.TranslatedText)
	assert.Equal(t, domain.ActionAdd, out.Parsed.Action)
	assert.Equal(t, "two milk", out.Parsed.Item)
	assert.Equal(t, 1, online.callCount())
}

func TestInterpreter_OnlineFailureFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		online *mockOnlineTranslator
	}{
		{"error", &mockOnlineTranslator{err: errors.New("503 service unavailable")}},
		{"circuit open", &mockOnlineTranslator{err: domain.ErrCircuitOpen}},
		{"empty translation", &mockOnlineTranslator{text: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newTestInterpreter(t, tt.online)

			out, err := it.Interpret(context.Background(), "दूध जोड़ो", onlineOpts)
			require.NoError(t, err)

			assert.False(t, out.UsedOnline)
			assert.Equal(t, domain.StageOffline, out.Stage)
			assert.Equal(t, "milk add", out.TranslatedText)
			assert.Equal(t, domain.ActionAdd, out.Parsed.Action)
		})
	}
}

func TestInterpreter_OnlineTimeoutFallsBack(t *testing.T) {
	online := &mockOnlineTranslator{block: true}
	it := newTestInterpreter(t, online)
	it.timeout = 20 * time.Millisecond

	start := time.Now()
	out, err := it.Interpret(context.Background(), "दूध जोड़ो", onlineOpts)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.False(t, out.UsedOnline)
	assert.Equal(t, "milk add", out.TranslatedText)
}

func TestInterpreter_CancelledContext(t *testing.T) {
	it := newTestInterpreter(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := it.Interpret(ctx, "Add 2 bananas", offlineOpts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestInterpreter_CancelDuringOnlineCall(t *testing.T) {
	online := &mockOnlineTranslator{block: true}
	it := newTestInterpreter(t, online)
	it.timeout = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	out, err := it.Interpret(ctx, "दूध जोड़ो", onlineOpts)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, out)
}

func TestInterpreter_ParsePanicRecovered(t *testing.T) {
	it := newTestInterpreter(t, nil)
	it.parse = func(string) domain.ParsedIntent { panic("boom") }

	out, err := it.Interpret(context.Background(), "दूध जोड़ो", offlineOpts)
	require.NoError(t, err)

	assert.Equal(t, domain.ActionUnknown, out.Parsed.Action)
	assert.Equal(t, 1, out.Parsed.Quantity)
	assert.Equal(t, "milk add", out.Parsed.Item)
	assert.Nil(t, out.Match)
}

func TestInterpreter_Deterministic(t *testing.T) {
	it := newTestInterpreter(t, nil)

	for _, in := range []string{"Add 2 bananas", "दूध जोड़ो", "Delete milk", "xyzzy qwerty", "2 केला जोड़ो"} {
		first, err := it.Interpret(context.Background(), in, offlineOpts)
		require.NoError(t, err)
		second, err := it.Interpret(context.Background(), in, offlineOpts)
		require.NoError(t, err)
		assert.Equal(t, first, second, "input %q", in)
	}
}

func TestInterpreter_LastResort(t *testing.T) {
	it := newTestInterpreter(t, nil)

	assert.Equal(t, domain.ParsedIntent{Action: domain.ActionAdd, Quantity: 3, Item: "eggs"}, it.LastResort("Add 3 Eggs!"))
	assert.Equal(t, domain.ActionUnknown, it.LastResort("दूध जोड़ो").Action)
}
