// Package pnl computes realized profit and loss for journaled trades.
package pnl

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"trade-journal-go/internal/models"
)

// AssetClass selects the contract size of one lot.
type AssetClass string

const (
	Forex  AssetClass = "Forex"
	Metal  AssetClass = "Metal"
	Crypto AssetClass = "Crypto"
	Index  AssetClass = "Index"
)

var contractSizes = map[AssetClass]decimal.Decimal{
	Forex:  decimal.NewFromInt(100000),
	Metal:  decimal.NewFromInt(100),
	Crypto: decimal.NewFromInt(1),
	Index:  decimal.NewFromInt(1),
}

// ContractSize returns the units per lot for a. Unknown classes use the
// Forex size.
func ContractSize(a AssetClass) decimal.Decimal {
	if size, ok := contractSizes[a]; ok {
		return size
	}
	return contractSizes[Forex]
}

// Conversion is how a quote-currency amount becomes USD.
type Conversion int

const (
	NoConversion Conversion = iota
	// Divide applies to currencies quoted as units per USD (USD/JPY).
	Divide
	// Multiply applies to currencies quoted as USD per unit (AUD/USD).
	Multiply
)

// ConversionFor classifies a quote currency code. Empty and USD need no
// conversion; anything outside JPY, CAD and CHF is treated like "Other".
func ConversionFor(quote string) Conversion {
	switch strings.ToUpper(strings.TrimSpace(quote)) {
	case "", "USD":
		return NoConversion
	case "JPY", "CAD", "CHF":
		return Divide
	default:
		return Multiply
	}
}

// Input holds the calculator arguments. Entry, Exit and Lot are nullable so
// a missing or non-finite value can be told apart from zero.
type Input struct {
	Entry          decimal.NullDecimal
	Exit           decimal.NullDecimal
	Lot            decimal.NullDecimal
	Fees           decimal.Decimal
	Position       models.Position
	AssetClass     AssetClass
	QuoteCurrency  string
	ConversionRate decimal.Decimal
}

// Result is the calculator output.
type Result struct {
	// Raw is the price-distance P&L in quote currency.
	Raw decimal.Decimal
	// Converted is Raw in USD, before fees.
	Converted decimal.Decimal
	// PnL is Converted minus fees, rounded to cents.
	PnL decimal.Decimal
	// Rate is the percent return on notional entry exposure
	// (entry x lot x contract size), rounded to 2 places.
	Rate    decimal.Decimal
	Outcome models.Outcome
}

var hundred = decimal.NewFromInt(100)

// Compute returns the realized P&L of a closed trade. ok is false when
// entry, exit or lot is missing.
func Compute(in Input) (res Result, ok bool) {
	if !in.Entry.Valid || !in.Exit.Valid || !in.Lot.Valid {
		return Result{}, false
	}
	entry, exit, lot := in.Entry.Decimal, in.Exit.Decimal, in.Lot.Decimal
	size := ContractSize(in.AssetClass)

	distance := exit.Sub(entry)
	if in.Position == models.Short {
		distance = entry.Sub(exit)
	}
	res.Raw = distance.Mul(lot).Mul(size)

	rate := in.ConversionRate
	if rate.IsZero() {
		rate = decimal.NewFromInt(1)
	}
	switch ConversionFor(in.QuoteCurrency) {
	case Divide:
		res.Converted = res.Raw.Div(rate)
	case Multiply:
		res.Converted = res.Raw.Mul(rate)
	default:
		res.Converted = res.Raw
	}

	final := res.Converted.Sub(in.Fees)
	res.PnL = final.Round(2)

	notional := entry.Mul(lot).Mul(size)
	if notional.IsZero() {
		res.Rate = decimal.Zero
	} else {
		res.Rate = final.Div(notional).Mul(hundred).Round(2)
	}

	if final.Sign() >= 0 {
		res.Outcome = models.Closed(models.ResultWin)
	} else {
		res.Outcome = models.Closed(models.ResultLoss)
	}
	return res, true
}

// Evaluate computes the result a trade in the given status carries. Trades
// that are not closed get zero pnl and rate with the status as outcome.
func Evaluate(status models.Status, in Input) (Result, bool) {
	if status != models.StatusClosed {
		return Result{PnL: decimal.Zero, Rate: decimal.Zero, Outcome: models.Open(status)}, true
	}
	return Compute(in)
}

// Float converts f to a nullable decimal; NaN and infinities are null.
func Float(f float64) decimal.NullDecimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: decimal.NewFromFloat(f), Valid: true}
}
