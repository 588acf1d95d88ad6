package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/pnl"
)

// Accepted timestamp layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TradeRequest is a trade as submitted by a form or API client. Numeric
// fields accept JSON numbers or numeric strings; null means absent.
type TradeRequest struct {
	DateEntry      string              `json:"dateEntry"`
	DateExit       string              `json:"dateExit"`
	Instrument     string              `json:"instrument"`
	Position       string              `json:"position"`
	Status         string              `json:"status"`
	Entry          decimal.NullDecimal `json:"entry"`
	Exit           decimal.NullDecimal `json:"exit"`
	TP             decimal.NullDecimal `json:"tp"`
	SL             decimal.NullDecimal `json:"sl"`
	Lot            decimal.NullDecimal `json:"lot"`
	Fees           decimal.NullDecimal `json:"fees"`
	AssetClass     string              `json:"assetClass"`
	QuoteCurrency  string              `json:"quoteCurrency"`
	ConversionRate decimal.NullDecimal `json:"conversionRate"`
	Setup          string              `json:"setup"`
	Timeframe      string              `json:"timeframe"`
	Notes          string              `json:"notes"`
}

// TradeInput is a validated, typed trade.
type TradeInput struct {
	DateEntry      time.Time
	DateExit       *time.Time
	Instrument     string
	Position       models.Position
	Status         models.Status
	Entry          decimal.Decimal
	Exit           decimal.NullDecimal
	TP             decimal.NullDecimal
	SL             decimal.NullDecimal
	Lot            decimal.Decimal
	Fees           decimal.Decimal
	AssetClass     pnl.AssetClass
	QuoteCurrency  string
	ConversionRate decimal.NullDecimal
	Setup          string
	Timeframe      string
	Notes          string
}

// Parse validates r. Exit price and exit date are required for closed
// trades and dropped for any other status.
func (r TradeRequest) Parse() (TradeInput, error) {
	var errs ValidationErrors
	in := TradeInput{
		Instrument:     strings.ToUpper(strings.TrimSpace(r.Instrument)),
		TP:             r.TP,
		SL:             r.SL,
		Fees:           decimal.Zero,
		AssetClass:     pnl.AssetClass(strings.TrimSpace(r.AssetClass)),
		QuoteCurrency:  strings.TrimSpace(r.QuoteCurrency),
		ConversionRate: r.ConversionRate,
		Setup:          strings.TrimSpace(r.Setup),
		Timeframe:      strings.TrimSpace(r.Timeframe),
		Notes:          r.Notes,
	}

	if strings.TrimSpace(r.DateEntry) == "" {
		errs.add("dateEntry", "is required")
	} else if t, ok := parseDate(r.DateEntry); ok {
		in.DateEntry = t
	} else {
		errs.add("dateEntry", "is not a valid date")
	}

	if in.Instrument == "" {
		errs.add("instrument", "is required")
	}

	in.Position = normalizePosition(r.Position)
	if !in.Position.Valid() {
		errs.add("position", "must be Long or Short")
	}

	in.Status = models.StatusClosed
	if s := strings.TrimSpace(r.Status); s != "" {
		in.Status = normalizeStatus(s)
		if !in.Status.Valid() {
			errs.add("status", "must be Closed, Running or Pending")
		}
	}

	if r.Entry.Valid {
		in.Entry = r.Entry.Decimal
	} else {
		errs.add("entry", "is required")
	}

	if !r.Lot.Valid {
		errs.add("lot", "is required")
	} else if r.Lot.Decimal.Sign() <= 0 {
		errs.add("lot", "must be greater than zero")
	} else {
		in.Lot = r.Lot.Decimal
	}

	if r.Fees.Valid {
		in.Fees = r.Fees.Decimal
	}

	if r.ConversionRate.Valid && r.ConversionRate.Decimal.Sign() <= 0 {
		errs.add("conversionRate", "must be greater than zero")
	}

	if in.Status == models.StatusClosed {
		if r.Exit.Valid {
			in.Exit = r.Exit
		} else {
			errs.add("exit", "is required for closed trades")
		}
		if strings.TrimSpace(r.DateExit) == "" {
			errs.add("dateExit", "is required for closed trades")
		} else if t, ok := parseDate(r.DateExit); !ok {
			errs.add("dateExit", "is not a valid date")
		} else if !in.DateEntry.IsZero() && t.Before(in.DateEntry) {
			errs.add("dateExit", "must not be before dateEntry")
		} else {
			in.DateExit = &t
		}
	}

	if err := errs.err(); err != nil {
		return TradeInput{}, err
	}
	return in, nil
}

// PnLInput maps the trade onto calculator arguments.
func (in TradeInput) PnLInput(conversionRate decimal.Decimal) pnl.Input {
	return pnl.Input{
		Entry:          decimal.NullDecimal{Decimal: in.Entry, Valid: true},
		Exit:           in.Exit,
		Lot:            decimal.NullDecimal{Decimal: in.Lot, Valid: true},
		Fees:           in.Fees,
		Position:       in.Position,
		AssetClass:     in.AssetClass,
		QuoteCurrency:  in.QuoteCurrency,
		ConversionRate: conversionRate,
	}
}

func normalizePosition(s string) models.Position {
	for _, p := range []models.Position{models.Long, models.Short} {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p
		}
	}
	return models.Position(s)
}

func normalizeStatus(s string) models.Status {
	for _, st := range []models.Status{models.StatusClosed, models.StatusRunning, models.StatusPending} {
		if strings.EqualFold(s, string(st)) {
			return st
		}
	}
	return models.Status(s)
}

// TransactionRequest is a deposit or withdrawal as submitted.
type TransactionRequest struct {
	Date   string              `json:"date"`
	Type   string              `json:"type"`
	Amount decimal.NullDecimal `json:"amount"`
	Note   string              `json:"note"`
}

// TransactionInput is a validated transaction.
type TransactionInput struct {
	Date   time.Time
	Type   models.TransactionType
	Amount decimal.Decimal
	Note   string
}

// Parse validates r. The amount must be positive; direction comes only
// from the type.
func (r TransactionRequest) Parse() (TransactionInput, error) {
	var errs ValidationErrors
	in := TransactionInput{Note: strings.TrimSpace(r.Note)}

	if strings.TrimSpace(r.Date) == "" {
		errs.add("date", "is required")
	} else if t, ok := parseDate(r.Date); ok {
		in.Date = t
	} else {
		errs.add("date", "is not a valid date")
	}

	for _, tt := range []models.TransactionType{models.Deposit, models.Withdrawal} {
		if strings.EqualFold(strings.TrimSpace(r.Type), string(tt)) {
			in.Type = tt
		}
	}
	if !in.Type.Valid() {
		errs.add("type", "must be Deposit or Withdrawal")
	}

	if !r.Amount.Valid {
		errs.add("amount", "is required")
	} else if r.Amount.Decimal.Sign() <= 0 {
		errs.add("amount", "must be greater than zero")
	} else {
		in.Amount = r.Amount.Decimal
	}

	if err := errs.err(); err != nil {
		return TransactionInput{}, err
	}
	return in, nil
}
