package journal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trade-journal-go/internal/models"
)

func TestTradeRequest_ParseJSON(t *testing.T) {
	body := `{
		"dateEntry": "2024-10-01T09:30:00Z",
		"dateExit": "2024-10-01 12:00",
		"instrument": " xauusd ",
		"position": "SHORT",
		"entry": "2000",
		"exit": 1990,
		"lot": 0.5,
		"fees": null,
		"assetClass": "Metal"
	}`
	var req TradeRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	in, err := req.Parse()
	require.NoError(t, err)

	assert.Equal(t, "XAUUSD", in.Instrument)
	assert.Equal(t, models.Short, in.Position)
	assert.Equal(t, models.StatusClosed, in.Status)
	assert.True(t, in.Entry.Equal(decimal.NewFromInt(2000)))
	assert.True(t, in.Fees.IsZero())
	require.NotNil(t, in.DateExit)
	assert.Equal(t, time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC), *in.DateExit)
}

func TestTradeRequest_ParseOpenDropsExit(t *testing.T) {
	req := scenarioA()
	req.Status = "pending"
	req.DateExit = "not a date"

	in, err := req.Parse()
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, in.Status)
	assert.False(t, in.Exit.Valid)
	assert.Nil(t, in.DateExit)
}

func TestTradeRequest_ParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(r *TradeRequest)
		field string
	}{
		{"missing entry date", func(r *TradeRequest) { r.DateEntry = "" }, "dateEntry"},
		{"bad entry date", func(r *TradeRequest) { r.DateEntry = "yesterday" }, "dateEntry"},
		{"missing instrument", func(r *TradeRequest) { r.Instrument = "  " }, "instrument"},
		{"bad position", func(r *TradeRequest) { r.Position = "flat" }, "position"},
		{"bad status", func(r *TradeRequest) { r.Status = "Cancelled" }, "status"},
		{"missing entry", func(r *TradeRequest) { r.Entry = decimal.NullDecimal{} }, "entry"},
		{"zero lot", func(r *TradeRequest) { r.Lot = num("0") }, "lot"},
		{"missing exit", func(r *TradeRequest) { r.Exit = decimal.NullDecimal{} }, "exit"},
		{"exit before entry", func(r *TradeRequest) { r.DateExit = "2024-09-30" }, "dateExit"},
		{"negative rate", func(r *TradeRequest) { r.ConversionRate = num("-1") }, "conversionRate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenarioA()
			tt.edit(&req)

			_, err := req.Parse()
			require.Error(t, err)

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}
}

func TestTransactionRequest_Parse(t *testing.T) {
	in, err := TransactionRequest{Date: "2024-10-01", Type: "WITHDRAWAL", Amount: num("200"), Note: " rent "}.Parse()
	require.NoError(t, err)
	assert.Equal(t, models.Withdrawal, in.Type)
	assert.Equal(t, "rent", in.Note)

	_, err = TransactionRequest{}.Parse()
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs, 3)
}
